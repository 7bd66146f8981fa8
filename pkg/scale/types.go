package scale

import "github.com/kubev2v/squad-to-scale-migrator/internal/models"

const (
	CustomFieldCategoryTestCase      = "TEST_CASE"
	CustomFieldCategoryTestExecution = "TEST_EXECUTION"
	CustomFieldTypeSingleLineText    = "SINGLE_LINE_TEXT"
	TestScriptStepByStep             = "STEP_BY_STEP"
)

var (
	TestCaseCustomFieldNames      = []string{"components", "squadStatus", "squadPriority"}
	TestExecutionCustomFieldNames = []string{"executedOn", "assignedTo", "squadVersion", "squadCycleName", "folderName"}
)

type EnableProjectRequest struct {
	ProjectKey string `json:"projectKey"`
	Enabled    bool   `json:"enabled"`
}

type CustomFieldRequest struct {
	Name       string `json:"name"`
	Category   string `json:"category"`
	ProjectKey string `json:"projectKey"`
	Type       string `json:"type"`
}

type TestCaseRequest struct {
	ProjectKey   string               `json:"projectKey"`
	Name         string               `json:"name"`
	Objective    string               `json:"objective,omitempty"`
	Labels       []string             `json:"labels,omitempty"`
	Owner        string               `json:"owner,omitempty"`
	IssueLinks   []string             `json:"issueLinks"`
	CustomFields TestCaseCustomFields `json:"customFields"`
}

type TestCaseCustomFields struct {
	Components    string `json:"components"`
	SquadStatus   string `json:"squadStatus"`
	SquadPriority string `json:"squadPriority"`
}

type keyResponse struct {
	Key string `json:"key"`
}

// StepsRequest replaces the whole test script of a test case. Step id and index must stay unset.
type StepsRequest struct {
	TestScript TestScript `json:"testScript"`
}

type TestScript struct {
	Type  string `json:"type"`
	Steps []Step `json:"steps"`
}

type Step struct {
	Description    string            `json:"description"`
	TestData       string            `json:"testData"`
	ExpectedResult string            `json:"expectedResult"`
	ID             models.FlexString `json:"id,omitempty"`
	Index          models.FlexString `json:"index,omitempty"`
}

type TestCase struct {
	Key        string     `json:"key"`
	ProjectKey string     `json:"projectKey"`
	TestScript TestScript `json:"testScript"`
}

type CycleRequest struct {
	Version    models.Optional[string] `json:"version,omitzero"`
	Name       string                  `json:"name"`
	ProjectKey string                  `json:"projectKey"`
}

type ExecutionRequest struct {
	Status       string                  `json:"status"`
	TestCaseKey  string                  `json:"testCaseKey"`
	ExecutedBy   string                  `json:"executedBy"`
	Comment      string                  `json:"comment,omitempty"`
	Version      models.Optional[string] `json:"version,omitzero"`
	CustomFields ExecutionCustomFields   `json:"customFields"`
}

type ExecutionCustomFields struct {
	ExecutedOn     string                  `json:"executedOn"`
	AssignedTo     string                  `json:"assignedTo"`
	SquadVersion   models.Optional[string] `json:"squadVersion,omitzero"`
	SquadCycleName string                  `json:"squadCycleName"`
	FolderName     string                  `json:"folderName"`
}

type TestResult struct {
	ID models.FlexString `json:"id"`
}
