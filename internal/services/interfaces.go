package services

import (
	"context"

	"github.com/kubev2v/squad-to-scale-migrator/internal/models"
	"github.com/kubev2v/squad-to-scale-migrator/pkg/jira"
	"github.com/kubev2v/squad-to-scale-migrator/pkg/scale"
	"github.com/kubev2v/squad-to-scale-migrator/pkg/squad"
)

type JiraAPI interface {
	FetchTotalIssues(ctx context.Context, projectKey string) (int, error)
	FetchIssuesOrderedByCreatedDate(ctx context.Context, projectKey string, startAt, maxResults int) ([]jira.Issue, error)
	GetProject(ctx context.Context, idOrKey string) (*jira.Project, error)
	GetProjectWithHistoricalKeys(ctx context.Context, key string) (*jira.Project, error)
	GetIssueAttachments(ctx context.Context, id string) ([]jira.Attachment, error)
	RenderWikiMarkup(ctx context.Context, markup string) (string, error)
	FindAssignableUsers(ctx context.Context, username, projectKey string) ([]jira.User, error)
}

type SquadAPI interface {
	GetAllProjects(ctx context.Context) ([]squad.ProjectOption, error)
	FetchLatestTestSteps(ctx context.Context, issueID string) ([]squad.TestStep, error)
	FetchLatestExecutions(ctx context.Context, issueID string) ([]squad.Execution, error)
	FetchExecutionAttachments(ctx context.Context, executionID string) ([]squad.Attachment, error)
}

type ScaleAPI interface {
	EnableProject(ctx context.Context, projectKey string) error
	CreateCustomField(ctx context.Context, projectKey, category, name string) error
	CreateTestCase(ctx context.Context, req scale.TestCaseRequest) (string, error)
	UpdateTestSteps(ctx context.Context, testCaseKey string, steps []scale.Step) error
	FetchTestSteps(ctx context.Context, testCaseKey string) (*scale.TestCase, error)
	CreateTestCycle(ctx context.Context, req scale.CycleRequest) (string, error)
	CreateTestExecution(ctx context.Context, cycleKey string, req scale.ExecutionRequest) (string, error)
}

// TestCaseFinder reads test cases persisted by the target.
type TestCaseFinder interface {
	GetByKey(ctx context.Context, key string) (*models.TestCaseEntity, error)
}

// AttachmentSink receives every association produced by one export.
type AttachmentSink interface {
	Dump(ctx context.Context, associations []models.AttachmentAssociation) error
}

// FileCopier moves legacy attachment files to the target attachment folder.
type FileCopier interface {
	CopyAttachments(ctx context.Context, scope *ProjectScope, associations []models.AttachmentAssociation) error
}

// AttachmentExporter maps and exports the attachments of the entities migrated by one page.
type AttachmentExporter interface {
	Export(ctx context.Context, scope *ProjectScope, entities models.EntitiesMap) error
}
