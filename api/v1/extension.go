package v1

import (
	"github.com/kubev2v/squad-to-scale-migrator/internal/models"
)

// NewMigrationStatus converts a models.MigrationStatus to its API representation.
func NewMigrationStatus(status models.MigrationStatus) MigrationStatus {
	s := MigrationStatus{
		RunId:           status.RunID,
		ProjectIndex:    status.ProjectIndex,
		ProjectsTotal:   status.ProjectsTotal,
		IssuesProcessed: status.IssuesProcessed,
		IssuesTotal:     status.IssuesTotal,
	}

	switch status.State {
	case models.MigrationStateRunning:
		s.State = MigrationStatusStateRunning
	case models.MigrationStateNoData:
		s.State = MigrationStatusStateNoData
	case models.MigrationStateDone:
		s.State = MigrationStatusStateDone
	case models.MigrationStateError:
		s.State = MigrationStatusStateError
	default:
		s.State = MigrationStatusStateIdle
	}

	if status.CurrentProject != "" {
		p := status.CurrentProject
		s.CurrentProject = &p
	}
	if !status.StartedAt.IsZero() {
		t := status.StartedAt
		s.StartedAt = &t
	}
	if status.Error != nil {
		e := status.Error.Error()
		s.Error = &e
	}

	return s
}
