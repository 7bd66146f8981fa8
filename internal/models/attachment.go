package models

import "time"

type DestinationType string

const (
	DestinationTestCase      DestinationType = "TEST_CASE"
	DestinationTestStep      DestinationType = "TEST_STEP"
	DestinationTestExecution DestinationType = "TEST_EXECUTION"
)

// OriginEntity identifies the source entity an attachment belonged to. Key is only set for issues.
type OriginEntity struct {
	ID  string
	Key string
}

// AttachmentAssociation links a legacy attachment file to the target entity it must be attached to.
// FileName is the on-disk name in the legacy tree, AttachmentName the name users see.
type AttachmentAssociation struct {
	AttachmentName  string
	FileName        string
	Size            string
	AuthorKey       string
	CreatedOn       time.Time
	MimeType        Optional[string]
	ProjectID       string
	Temporary       bool
	DestinationType DestinationType
	DestinationID   string
	Origin          OriginEntity
}
