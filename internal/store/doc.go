// Package store implements the read-only access to the database of the target.
//
// Zephyr Scale persists its test cases in the Jira database. The attachment
// mapping needs the numeric id of every test case created during the run, which
// the REST API does not return, so it is read from AO_4D28DD_TEST_CASE.
//
// # Architecture Overview
//
//	┌─────────────────────────────────────────────────────────────────┐
//	│                         Store (facade)                          │
//	├─────────────────────────────────────────────────────────────────┤
//	│                        TestCaseStore                            │
//	│                             ▼                                   │
//	│                AO_4D28DD_TEST_CASE (ID, KEY)                    │
//	├─────────────────────────────────────────────────────────────────┤
//	│                     Dialect (squirrel)                          │
//	│   placeholders, identifier quoting, schema prefix per database  │
//	└─────────────────────────────────────────────────────────────────┘
//
// # Supported Databases
//
//	┌────────────────────┬────────────┬─────────────┬────────────────────┐
//	│ database setting   │ Driver     │ Placeholder │ Driver package     │
//	├────────────────────┼────────────┼─────────────┼────────────────────┤
//	│ postgresql         │ pgx        │ $1          │ jackc/pgx/v5       │
//	│ oracle             │ oracle     │ :1          │ sijms/go-ora/v2    │
//	│ mssql, sqlserver   │ sqlserver  │ @p1         │ microsoft/go-mssqldb │
//	│ mysql              │ mysql      │ ?           │ go-sql-driver/mysql │
//	│ duckdb             │ duckdb     │ ?           │ duckdb-go/v2       │
//	└────────────────────┴────────────┴─────────────┴────────────────────┘
//
// DuckDB serves local replicas and tests. Its schema is created by the
// migrations subpackage; the other databases are owned by Jira and are never
// written to.
//
// # Connection
//
// Credentials from database.properties override the ones embedded in the url:
//
//	d, _ := store.NewDialect(store.PostgreSQL, "public")
//	db, err := store.NewDB(d, "postgres://jira-db:5432/jira", store.Credentials{
//	    Username: "jira",
//	    Password: "secret",
//	})
//	st := store.NewStore(db, d)
//	tc, err := st.TestCases().GetByKey(ctx, "PROJ-T1")
//
// # Errors
//
// GetByKey returns a MissingDependentRecordError when the key is unknown.
package store
