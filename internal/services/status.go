package services

import (
	"sync"
	"time"

	"github.com/kubev2v/squad-to-scale-migrator/internal/models"
)

// StatusTracker keeps the last published migration status. It is safe for concurrent use.
type StatusTracker struct {
	status models.MigrationStatus
	mu     sync.Mutex
}

func NewStatusTracker(runID string) *StatusTracker {
	return &StatusTracker{
		status: models.MigrationStatus{
			RunID: runID,
			State: models.MigrationStateIdle,
		},
	}
}

func (t *StatusTracker) Status() models.MigrationStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

func (t *StatusTracker) start(projectsTotal int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.status.State = models.MigrationStateRunning
	t.status.StartedAt = time.Now()
	t.status.ProjectsTotal = projectsTotal
	t.status.ProjectIndex = 0
	t.status.Error = nil
}

func (t *StatusTracker) project(index int, key string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.status.State = models.MigrationStateRunning
	t.status.ProjectIndex = index
	t.status.CurrentProject = key
	t.status.IssuesProcessed = 0
	t.status.IssuesTotal = 0
}

func (t *StatusTracker) issues(processed, total int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.status.IssuesProcessed = processed
	t.status.IssuesTotal = total
}

func (t *StatusTracker) finish(state models.MigrationState, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.status.State = state
	t.status.Error = err
}
