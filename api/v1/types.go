package v1

import "time"

type MigrationStatusState string

const (
	MigrationStatusStateIdle    MigrationStatusState = "idle"
	MigrationStatusStateRunning MigrationStatusState = "running"
	MigrationStatusStateNoData  MigrationStatusState = "no-data"
	MigrationStatusStateDone    MigrationStatusState = "done"
	MigrationStatusStateError   MigrationStatusState = "error"
)

type MigrationStatus struct {
	RunId           string               `json:"runId"`
	State           MigrationStatusState `json:"state"`
	CurrentProject  *string              `json:"currentProject,omitempty"`
	ProjectIndex    int                  `json:"projectIndex"`
	ProjectsTotal   int                  `json:"projectsTotal"`
	IssuesProcessed int                  `json:"issuesProcessed"`
	IssuesTotal     int                  `json:"issuesTotal"`
	StartedAt       *time.Time           `json:"startedAt,omitempty"`
	Error           *string              `json:"error,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
