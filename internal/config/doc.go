// Package config defines the configuration of the migrator.
//
// Values are resolved in this order, the last one winning:
//
//  1. struct tag defaults (creasty/defaults)
//  2. app.properties and database.properties (viper, properties format)
//  3. SQUAD2SCALE_* environment variables, optionally loaded from .env (godotenv)
//
// Username, password and project key come from the command line.
//
// # Configuration Structure
//
//	Configuration
//	├── Jira        - Host, credentials and retry policy
//	├── Migration   - Batch size, cycle naming, attachment outputs, workers
//	├── Database    - Target database used to read test case ids
//	├── Server      - Optional status endpoint
//	├── LogFormat   - console or json
//	└── LogLevel    - debug, info, warn or error
//
// # app.properties
//
//	┌───────────────────────────┬──────────────────────────┬────────────────────────────────────┐
//	│ Key                       │ Default                  │ Description                        │
//	├───────────────────────────┼──────────────────────────┼────────────────────────────────────┤
//	│ host                      │ ""                       │ Jira base url (required)           │
//	│ httpVersion               │ "2"                      │ 1.1 or 2                           │
//	│ backoffBaseMs             │ 1000                     │ First retry wait                   │
//	│ backoffMultiplier         │ 2                        │ Growth of the retry wait           │
//	│ maxAttempts               │ 3                        │ Attempts per request               │
//	│ batchSize                 │ 100                      │ Issues per page                    │
//	│ cycleNamePlaceHolder      │ ""                       │ Replaces every cycle name when set │
//	│ attachmentsMappedCsvFile  │ AO_4D28DD_ATTACHMENT.csv │ Attachment mapping output          │
//	│ attachmentsMappedXlsxFile │ ""                       │ Optional xlsx copy of the mapping  │
//	│ attachmentsBaseFolder     │ ""                       │ Jira attachment root (required)    │
//	│ workers                   │ 3                        │ Scheduler workers, at least 3      │
//	│ database                  │ postgresql               │ Target database type               │
//	│ statusAddr                │ ""                       │ Status endpoint address            │
//	└───────────────────────────┴──────────────────────────┴────────────────────────────────────┘
//
// # database.properties
//
// Keys are prefixed with the selected database type:
//
//	postgresql.datasource.url=postgres://jira-db:5432/jira
//	postgresql.datasource.schema=public
//	postgresql.datasource.username=jira
//	postgresql.datasource.password=secret
//
// # Usage Example
//
//	cfg, err := config.Load(config.Files{App: "app.properties", Database: "database.properties", Env: ".env"})
//	if err != nil {
//	    return err
//	}
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
//	zap.S().Infow("configuration loaded", "config", cfg.DebugMap())
//
// DebugMap never contains the passwords.
package config
