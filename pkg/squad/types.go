package squad

import "github.com/kubev2v/squad-to-scale-migrator/internal/models"

type TestStepsResponse struct {
	Steps []TestStep `json:"stepBeanCollection"`
}

type TestStep struct {
	ID          models.FlexString `json:"id"`
	OrderID     models.FlexString `json:"orderId"`
	HTMLStep    string            `json:"htmlStep"`
	HTMLData    string            `json:"htmlData"`
	HTMLResult  string            `json:"htmlResult"`
	Attachments []Attachment      `json:"attachmentsMap"`
}

type Attachment struct {
	FileName        string            `json:"fileName"`
	DateCreated     string            `json:"dateCreated"`
	HTMLComment     string            `json:"htmlComment"`
	FileSize        models.FlexString `json:"fileSize"`
	FileIcon        string            `json:"fileIcon"`
	Author          string            `json:"author"`
	FileIconAltText string            `json:"fileIconAltText"`
	Comment         string            `json:"comment"`
	FileID          models.FlexString `json:"fileId"`
}

type AttachmentsResponse struct {
	Data []Attachment `json:"data"`
}

type executionsResponse struct {
	IssueID      models.FlexString `json:"issueId"`
	RecordsCount int               `json:"recordsCount"`
	Executions   []rawExecution    `json:"executions"`
}

type rawExecution struct {
	ID                 models.FlexString `json:"id"`
	ExecutionStatus    models.FlexString `json:"executionStatus"`
	CreatedBy          models.FlexString `json:"createdBy"`
	CreatedByUserName  *string           `json:"createdByUserName"`
	VersionName        *string           `json:"versionName"`
	HTMLComment        string            `json:"htmlComment"`
	CycleName          string            `json:"cycleName"`
	FolderName         *string           `json:"folderName"`
	ExecutedOn         *string           `json:"executedOn"`
	AssignedTo         models.FlexString `json:"assignedTo"`
	AssignedToDisplay  *string           `json:"assignedToDisplay"`
	AssignedToUserName *string           `json:"assignedToUserName"`
}

// Execution is a Squad execution with its status resolved to a name and the
// optional fields defaulted the way they are migrated.
type Execution struct {
	ID                string
	Status            string
	CreatedBy         string
	CreatedByUserName string
	VersionName       models.Optional[string]
	HTMLComment       string
	CycleName         string
	FolderName        string
	ExecutedOn        string
	AssignedTo        string
	AssignedToDisplay string
	// AssigneeUserName is "None" when the execution is unassigned or assigned to an inactive user.
	AssigneeUserName string
}

type ProjectListResponse struct {
	Options []ProjectOption `json:"options"`
}

type ProjectOption struct {
	HasAccessToSoftware models.FlexString `json:"hasAccessToSoftware"`
	Label               string            `json:"label"`
	Type                string            `json:"type"`
	Value               models.FlexString `json:"value"`
}
