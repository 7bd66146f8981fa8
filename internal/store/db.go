package store

import (
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/microsoft/go-mssqldb"
	_ "github.com/sijms/go-ora/v2"
)

// Credentials are kept apart from the connection url in database.properties.
type Credentials struct {
	Username string
	Password string
}

// NewDB opens a connection pool for the given dialect. Credentials, when set,
// override the ones embedded in dsn.
func NewDB(d Dialect, dsn string, creds Credentials) (*sql.DB, error) {
	full, err := withCredentials(d.Type, dsn, creds)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(d.Driver, full)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", d.Type, err)
	}
	return db, nil
}

func withCredentials(t DatabaseType, dsn string, creds Credentials) (string, error) {
	if creds.Username == "" {
		return dsn, nil
	}

	switch t {
	case MySQL:
		cfg, err := mysql.ParseDSN(dsn)
		if err != nil {
			return "", fmt.Errorf("invalid mysql dsn: %w", err)
		}
		cfg.User = creds.Username
		cfg.Passwd = creds.Password
		return cfg.FormatDSN(), nil
	case DuckDB:
		return dsn, nil
	}

	if !strings.Contains(dsn, "://") {
		// keyword/value connection strings carry their own credentials
		return dsn, nil
	}
	u, err := url.Parse(dsn)
	if err != nil {
		return "", fmt.Errorf("invalid %s dsn: %w", t, err)
	}
	u.User = url.UserPassword(creds.Username, creds.Password)
	return u.String(), nil
}
