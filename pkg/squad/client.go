package squad

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/kubev2v/squad-to-scale-migrator/internal/models"
	"github.com/kubev2v/squad-to-scale-migrator/pkg/httpclient"
)

const (
	testStepEndpoint    = "/rest/zapi/latest/teststep/%s"
	executionEndpoint   = "/rest/zapi/latest/execution?issueId=%s"
	attachmentsEndpoint = "/rest/zapi/latest/attachment/attachmentsByEntity?entityId=%s&entityType=%s"
	projectListEndpoint = "/rest/zapi/latest/util/project-list"

	EntityTypeExecution = "execution"

	None = "None"
)

var executionStatuses = map[string]string{
	"-1": "Unexecuted",
	"1":  "Pass",
	"2":  "Fail",
	"3":  "WIP",
	"4":  "Blocked",
	"5":  "Descoped",
	"6":  "Not Delivered Yet",
	"7":  "On Hold",
}

// ExecutionStatusName resolves a Squad status id. Unknown ids resolve to Unexecuted.
func ExecutionStatusName(id string) string {
	if name, ok := executionStatuses[strings.TrimSpace(id)]; ok {
		return name
	}
	return executionStatuses["-1"]
}

type Client struct {
	http *httpclient.Client
}

func NewClient(http *httpclient.Client) *Client {
	return &Client{http: http}
}

func (c *Client) GetAllProjects(ctx context.Context) ([]ProjectOption, error) {
	body, err := c.http.Get(ctx, projectListEndpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to list squad projects: %w", err)
	}

	var resp ProjectListResponse
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		return nil, fmt.Errorf("failed to parse squad project list: %w", err)
	}
	return resp.Options, nil
}

func (c *Client) FetchLatestTestSteps(ctx context.Context, issueID string) ([]TestStep, error) {
	body, err := c.http.Get(ctx, fmt.Sprintf(testStepEndpoint, url.PathEscape(issueID)))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch test steps of issue %s: %w", issueID, err)
	}

	var resp TestStepsResponse
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		return nil, fmt.Errorf("failed to parse test steps of issue %s: %w", issueID, err)
	}
	return resp.Steps, nil
}

func (c *Client) FetchLatestExecutions(ctx context.Context, issueID string) ([]Execution, error) {
	body, err := c.http.Get(ctx, fmt.Sprintf(executionEndpoint, url.QueryEscape(issueID)))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch executions of issue %s: %w", issueID, err)
	}

	var resp executionsResponse
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		return nil, fmt.Errorf("failed to parse executions of issue %s: %w", issueID, err)
	}

	executions := make([]Execution, 0, len(resp.Executions))
	for _, e := range resp.Executions {
		executions = append(executions, parseExecution(e))
	}
	return executions, nil
}

func parseExecution(e rawExecution) Execution {
	exec := Execution{
		ID:                e.ID.String(),
		Status:            ExecutionStatusName(e.ExecutionStatus.String()),
		CreatedBy:         e.CreatedBy.String(),
		CreatedByUserName: deref(e.CreatedByUserName),
		HTMLComment:       e.HTMLComment,
		CycleName:         e.CycleName,
		FolderName:        None,
		ExecutedOn:        None,
		AssignedTo:        e.AssignedTo.String(),
		AssignedToDisplay: deref(e.AssignedToDisplay),
		AssigneeUserName:  None,
	}
	if e.VersionName != nil {
		exec.VersionName = models.Some(*e.VersionName)
	}
	if e.FolderName != nil {
		exec.FolderName = *e.FolderName
	}
	if e.ExecutedOn != nil {
		exec.ExecutedOn = *e.ExecutedOn
	}
	if e.AssignedToUserName != nil && !strings.Contains(strings.ToLower(exec.AssignedToDisplay), "inactive") {
		exec.AssigneeUserName = *e.AssignedToUserName
	}
	return exec
}

func (c *Client) FetchExecutionAttachments(ctx context.Context, executionID string) ([]Attachment, error) {
	return c.fetchAttachments(ctx, executionID, EntityTypeExecution)
}

func (c *Client) fetchAttachments(ctx context.Context, entityID, entityType string) ([]Attachment, error) {
	body, err := c.http.Get(ctx, fmt.Sprintf(attachmentsEndpoint, url.QueryEscape(entityID), entityType))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch attachments of %s %s: %w", entityType, entityID, err)
	}

	var resp AttachmentsResponse
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		return nil, fmt.Errorf("failed to parse attachments of %s %s: %w", entityType, entityID, err)
	}
	return resp.Data, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
