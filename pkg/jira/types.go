package jira

import "github.com/kubev2v/squad-to-scale-migrator/internal/models"

type SearchResponse struct {
	StartAt int     `json:"startAt"`
	Total   int     `json:"total"`
	Issues  []Issue `json:"issues"`
}

type Issue struct {
	ID     string `json:"id"`
	Key    string `json:"key"`
	Fields Fields `json:"fields"`
}

type Fields struct {
	Summary     string       `json:"summary"`
	Description string       `json:"description"`
	Labels      []string     `json:"labels"`
	Reporter    *User        `json:"reporter"`
	Status      *Status      `json:"status"`
	IssueLinks  []IssueLink  `json:"issuelinks"`
	Components  []Component  `json:"components"`
	Priority    *Priority    `json:"priority"`
	IssueType   *IssueType   `json:"issuetype"`
	Attachments []Attachment `json:"attachment"`
}

type User struct {
	Self         string `json:"self"`
	Name         string `json:"name"`
	Key          string `json:"key"`
	EmailAddress string `json:"emailAddress"`
	DisplayName  string `json:"displayName"`
	Active       bool   `json:"active"`
}

type Status struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Priority struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type IssueType struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Component struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type IssueLink struct {
	ID           string        `json:"id"`
	InwardIssue  *RelatedIssue `json:"inwardIssue"`
	OutwardIssue *RelatedIssue `json:"outwardIssue"`
}

type RelatedIssue struct {
	ID  string `json:"id"`
	Key string `json:"key"`
}

type Attachment struct {
	Self     string            `json:"self"`
	ID       models.FlexString `json:"id"`
	Filename string            `json:"filename"`
	Author   *User             `json:"author"`
	Created  string            `json:"created"`
	Size     models.FlexString `json:"size"`
	MimeType string            `json:"mimeType"`
}

type Project struct {
	ID          string   `json:"id"`
	Key         string   `json:"key"`
	ProjectKeys []string `json:"projectKeys"`
}

type renderRequest struct {
	RendererType     string `json:"rendererType"`
	UnrenderedMarkup string `json:"unrenderedMarkup"`
}
