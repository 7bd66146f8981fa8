// Package services implements the migration of Zephyr Squad data to Zephyr Scale.
//
// # Service Dependency Graph
//
//	cmd (migrate command)
//	    │
//	    ▼
//	Migrator ──────────────► Jira, Squad, Scale clients, StatusTracker
//	    ├── TestCasePayloadBuilder ──► Jira (wiki markup rendering)
//	    ├── ExecutionPayloadBuilder ─► UserValidator ──► Jira
//	    ├── CycleService ────────────► Scale
//	    └── AttachmentsMigrator ─────► Scheduler, TestCaseFinder (store)
//	            ├── AttachmentsCopier (legacy attachment tree)
//	            └── sinks: CSVExporter, XLSXExporter
//
// # Project scope
//
// Every project is migrated with a fresh ProjectScope. It holds the test cases
// created so far and which of them are processed, the cycles, the usernames
// known to be assignable or not, the project metadata and the outcome of the
// historical key resolution. Nothing leaks from one project to the next.
//
// # Migrator
//
// State machine per project:
//
//	┌──────────┐   total = 0   ┌─────────┐
//	│CountTotal│──────────────►│ No data │
//	└────┬─────┘               └─────────┘
//	     │
//	     ▼
//	┌─────────────┐   ┌──────────────┐   ┌───────┐   ┌──────┐
//	│EnableProject│──►│ CustomFields │──►│ Pages │──►│ Done │
//	└─────────────┘   └──────────────┘   └───────┘   └──────┘
//
// Pages are fetched by ascending creation date, batchSize issues at a time.
// Any error aborts the project. In batch mode it also aborts the remaining
// projects.
//
// # AttachmentsMigrator
//
// The attachments of test cases, test steps and executions of a page are mapped
// by three works submitted to the scheduler and joined with scheduler.WaitAll.
// When any of them fails nothing is copied and nothing is exported.
package services
