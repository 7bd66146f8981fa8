package store

import (
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	srvErrors "github.com/kubev2v/squad-to-scale-migrator/pkg/errors"
)

type DatabaseType string

const (
	PostgreSQL DatabaseType = "postgresql"
	Oracle     DatabaseType = "oracle"
	MSSQL      DatabaseType = "mssql"
	SQLServer  DatabaseType = "sqlserver"
	MySQL      DatabaseType = "mysql"
	DuckDB     DatabaseType = "duckdb"
)

// SupportedDatabaseTypes lists the accepted values of the database setting.
var SupportedDatabaseTypes = []DatabaseType{PostgreSQL, Oracle, MSSQL, SQLServer, MySQL, DuckDB}

func ParseDatabaseType(name string) (DatabaseType, error) {
	t := DatabaseType(strings.ToLower(strings.TrimSpace(name)))
	for _, s := range SupportedDatabaseTypes {
		if s == t {
			return t, nil
		}
	}
	return "", srvErrors.NewUnsupportedDatabaseError(name)
}

// Dialect holds what differs between the databases the target can run on.
type Dialect struct {
	Type        DatabaseType
	Driver      string
	Placeholder sq.PlaceholderFormat
	Schema      string
	openQuote   string
	closeQuote  string
}

func NewDialect(t DatabaseType, schema string) (Dialect, error) {
	d := Dialect{Type: t, Schema: strings.TrimSpace(schema), openQuote: `"`, closeQuote: `"`}
	switch t {
	case PostgreSQL:
		d.Driver = "pgx"
		d.Placeholder = sq.Dollar
	case Oracle:
		d.Driver = "oracle"
		d.Placeholder = sq.Colon
	case MSSQL, SQLServer:
		d.Driver = "sqlserver"
		d.Placeholder = sq.AtP
	case MySQL:
		d.Driver = "mysql"
		d.Placeholder = sq.Question
		d.openQuote, d.closeQuote = "`", "`"
	case DuckDB:
		d.Driver = "duckdb"
		d.Placeholder = sq.Question
	default:
		return Dialect{}, srvErrors.NewUnsupportedDatabaseError(string(t))
	}
	return d, nil
}

func (d Dialect) Quote(identifier string) string {
	return d.openQuote + identifier + d.closeQuote
}

// Table returns the quoted table name, prefixed with the schema when one is configured.
// SQL Server expects the schema and the table name unquoted.
func (d Dialect) Table(name string) string {
	switch d.Type {
	case MSSQL, SQLServer:
		if d.Schema == "" {
			return name
		}
		return fmt.Sprintf("%s.%s", d.Schema, name)
	}
	if d.Schema == "" {
		return d.Quote(name)
	}
	return d.Quote(d.Schema) + "." + d.Quote(name)
}
