package jira

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/kubev2v/squad-to-scale-migrator/pkg/httpclient"
)

const (
	searchEndpoint          = "/rest/api/2/search"
	assignableUsersEndpoint = "/rest/api/2/user/assignable/search"
	projectEndpoint         = "/rest/api/2/project/%s"
	issueEndpoint           = "/rest/api/2/issue/%s"
	renderEndpoint          = "/rest/api/1.0/render"
	wikiRenderer            = "atlassian-wiki-renderer"
	testIssuesByCreationJQL = "project = %s AND issuetype = Test ORDER BY createdDate ASC"
)

type Client struct {
	http *httpclient.Client
}

func NewClient(http *httpclient.Client) *Client {
	return &Client{http: http}
}

// FetchTotalIssues returns the number of Test issues of the project.
func (c *Client) FetchTotalIssues(ctx context.Context, projectKey string) (int, error) {
	resp, err := c.search(ctx, fmt.Sprintf(testIssuesByCreationJQL, projectKey), nil, nil)
	if err != nil {
		return 0, err
	}
	return resp.Total, nil
}

// FetchIssuesOrderedByCreatedDate returns one page of Test issues, oldest first.
func (c *Client) FetchIssuesOrderedByCreatedDate(ctx context.Context, projectKey string, startAt, maxResults int) ([]Issue, error) {
	resp, err := c.search(ctx, fmt.Sprintf(testIssuesByCreationJQL, projectKey), &startAt, &maxResults)
	if err != nil {
		return nil, err
	}
	return resp.Issues, nil
}

func (c *Client) search(ctx context.Context, jql string, startAt, maxResults *int) (*SearchResponse, error) {
	params := url.Values{}
	params.Set("jql", jql)
	if startAt != nil {
		params.Set("startAt", strconv.Itoa(*startAt))
	}
	if maxResults != nil {
		params.Set("maxResults", strconv.Itoa(*maxResults))
	}

	body, err := c.http.Get(ctx, searchEndpoint+"?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("failed to search issues: %w", err)
	}

	var resp SearchResponse
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		return nil, fmt.Errorf("failed to parse search response: %w", err)
	}
	return &resp, nil
}

// GetProject accepts either a project id or a project key.
func (c *Client) GetProject(ctx context.Context, idOrKey string) (*Project, error) {
	return c.getProject(ctx, fmt.Sprintf(projectEndpoint, url.PathEscape(idOrKey)))
}

func (c *Client) GetProjectWithHistoricalKeys(ctx context.Context, key string) (*Project, error) {
	return c.getProject(ctx, fmt.Sprintf(projectEndpoint, url.PathEscape(key))+"?expand=projectKeys")
}

func (c *Client) getProject(ctx context.Context, uri string) (*Project, error) {
	body, err := c.http.Get(ctx, uri)
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	var p Project
	if err := json.Unmarshal([]byte(body), &p); err != nil {
		return nil, fmt.Errorf("failed to parse project: %w", err)
	}
	return &p, nil
}

func (c *Client) GetIssue(ctx context.Context, id string) (*Issue, error) {
	body, err := c.http.Get(ctx, fmt.Sprintf(issueEndpoint, url.PathEscape(id)))
	if err != nil {
		return nil, fmt.Errorf("failed to get issue %s: %w", id, err)
	}

	var issue Issue
	if err := json.Unmarshal([]byte(body), &issue); err != nil {
		return nil, fmt.Errorf("failed to parse issue %s: %w", id, err)
	}
	return &issue, nil
}

func (c *Client) GetIssueAttachments(ctx context.Context, id string) ([]Attachment, error) {
	issue, err := c.GetIssue(ctx, id)
	if err != nil {
		return nil, err
	}
	return issue.Fields.Attachments, nil
}

// RenderWikiMarkup converts Jira wiki markup into HTML.
func (c *Client) RenderWikiMarkup(ctx context.Context, markup string) (string, error) {
	html, err := c.http.Post(ctx, renderEndpoint, renderRequest{
		RendererType:     wikiRenderer,
		UnrenderedMarkup: markup,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render wiki markup: %w", err)
	}
	return html, nil
}

func (c *Client) FindAssignableUsers(ctx context.Context, username, projectKey string) ([]User, error) {
	params := url.Values{}
	params.Set("username", username)
	params.Set("project", projectKey)

	body, err := c.http.Get(ctx, assignableUsersEndpoint+"?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("failed to search assignable users: %w", err)
	}

	var users []User
	if err := json.Unmarshal([]byte(body), &users); err != nil {
		return nil, fmt.Errorf("failed to parse assignable users: %w", err)
	}
	return users, nil
}
