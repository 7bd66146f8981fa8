// Package handlers implements the read-only HTTP API exposed while a migration runs.
//
// Handlers only read the status published by the migrator; they never start,
// stop or alter a migration.
//
// # API Endpoints
//
//	┌────────┬──────────┬─────────────────────────────────────────────┐
//	│ Method │ Endpoint │ Description                                 │
//	├────────┼──────────┼─────────────────────────────────────────────┤
//	│ GET    │ /status  │ Migration state, current project, progress  │
//	└────────┴──────────┴─────────────────────────────────────────────┘
//
// Routes are registered under /api/v1:
//
//	handlers.RegisterHandlers(router, handlers.New(tracker))
//
// # Response
//
//	{
//	  "runId": "5b0c...",
//	  "state": "running",
//	  "currentProject": "PROJ",
//	  "projectIndex": 0,
//	  "projectsTotal": 1,
//	  "issuesProcessed": 200,
//	  "issuesTotal": 250,
//	  "startedAt": "2024-03-01T10:20:30Z"
//	}
//
// error is only present once the migration failed.
package handlers
