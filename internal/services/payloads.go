package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kubev2v/squad-to-scale-migrator/pkg/jira"
	"github.com/kubev2v/squad-to-scale-migrator/pkg/scale"
	"github.com/kubev2v/squad-to-scale-migrator/pkg/squad"
)

const defaultPriority = "Medium"

var executionStatusTranslations = map[string]string{
	"wip":        "In Progress",
	"unexecuted": "Not Executed",
}

type TestCasePayloadBuilder struct {
	jira JiraAPI
}

func NewTestCasePayloadBuilder(jira JiraAPI) *TestCasePayloadBuilder {
	return &TestCasePayloadBuilder{jira: jira}
}

func (b *TestCasePayloadBuilder) Build(ctx context.Context, issue jira.Issue, projectKey string) (scale.TestCaseRequest, error) {
	objective, err := b.objective(ctx, issue.Fields.Description)
	if err != nil {
		return scale.TestCaseRequest{}, fmt.Errorf("failed to render description of issue %s: %w", issue.ID, err)
	}

	req := scale.TestCaseRequest{
		ProjectKey: projectKey,
		Name:       issue.Fields.Summary,
		Objective:  objective,
		Labels:     issue.Fields.Labels,
		IssueLinks: outwardLinkKeys(issue.Fields.IssueLinks),
		CustomFields: scale.TestCaseCustomFields{
			Components:    componentNames(issue.Fields.Components),
			SquadPriority: sanitizePriority(issue.Fields.Priority),
		},
	}
	if issue.Fields.Reporter != nil {
		req.Owner = issue.Fields.Reporter.Key
	}
	if issue.Fields.Status != nil {
		req.CustomFields.SquadStatus = issue.Fields.Status.Name
	}
	return req, nil
}

func (b *TestCasePayloadBuilder) objective(ctx context.Context, description string) (string, error) {
	if strings.TrimSpace(description) == "" {
		return description, nil
	}
	return b.jira.RenderWikiMarkup(ctx, description)
}

func sanitizePriority(p *jira.Priority) string {
	if p == nil {
		return defaultPriority
	}
	if strings.TrimSpace(p.Name) == "" {
		zap.S().Named("payloads").Warnw("priority has an empty name", "priority_id", p.ID)
		return ""
	}
	return p.Name
}

func outwardLinkKeys(links []jira.IssueLink) []string {
	keys := make([]string, 0, len(links))
	for _, l := range links {
		if l.OutwardIssue != nil {
			keys = append(keys, l.OutwardIssue.Key)
		}
	}
	return keys
}

func componentNames(components []jira.Component) string {
	names := make([]string, 0, len(components))
	for _, c := range components {
		names = append(names, c.Name)
	}
	return strings.Join(names, ",")
}

// ExecutionPayloadBuilder turns a Squad execution into a target test result.
type ExecutionPayloadBuilder struct {
	users *UserValidator
}

func NewExecutionPayloadBuilder(users *UserValidator) *ExecutionPayloadBuilder {
	return &ExecutionPayloadBuilder{users: users}
}

func (b *ExecutionPayloadBuilder) Build(ctx context.Context, scope *ProjectScope, exec squad.Execution, testCaseKey string) (scale.ExecutionRequest, error) {
	executedBy := squad.None
	ok, err := b.users.IsAssignable(ctx, scope, exec.CreatedByUserName)
	if err != nil {
		return scale.ExecutionRequest{}, err
	}
	if ok {
		executedBy = exec.CreatedBy
	}

	assignedTo := squad.None
	ok, err = b.users.IsAssignable(ctx, scope, exec.AssigneeUserName)
	if err != nil {
		return scale.ExecutionRequest{}, err
	}
	if ok {
		assignedTo = exec.AssignedTo
	}

	version := translateVersion(exec.VersionName)
	return scale.ExecutionRequest{
		Status:      translateStatus(exec.Status),
		TestCaseKey: testCaseKey,
		ExecutedBy:  executedBy,
		Comment:     exec.HTMLComment,
		Version:     version,
		CustomFields: scale.ExecutionCustomFields{
			ExecutedOn:     exec.ExecutedOn,
			AssignedTo:     assignedTo,
			SquadVersion:   version,
			SquadCycleName: exec.CycleName,
			FolderName:     exec.FolderName,
		},
	}, nil
}

func translateStatus(status string) string {
	if translated, ok := executionStatusTranslations[strings.ToLower(status)]; ok {
		return translated
	}
	return status
}
