package models

import (
	"fmt"
	"time"
)

type MigrationState string

const (
	MigrationStateIdle    MigrationState = "idle"
	MigrationStateRunning MigrationState = "running"
	MigrationStateNoData  MigrationState = "no-data"
	MigrationStateDone    MigrationState = "done"
	MigrationStateError   MigrationState = "error"
)

func ParseMigrationState(s string) (MigrationState, error) {
	switch MigrationState(s) {
	case MigrationStateIdle, MigrationStateRunning, MigrationStateNoData, MigrationStateDone, MigrationStateError:
		return MigrationState(s), nil
	default:
		return "", fmt.Errorf("invalid migration state: %s", s)
	}
}

type MigrationStatus struct {
	RunID           string
	State           MigrationState
	CurrentProject  string
	ProjectIndex    int
	ProjectsTotal   int
	IssuesProcessed int
	IssuesTotal     int
	StartedAt       time.Time
	Error           error
}

// TestCaseEntity is a row of the target test case table.
type TestCaseEntity struct {
	ID  int64
	Key string
}
