package store

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"

	"github.com/kubev2v/squad-to-scale-migrator/internal/models"
	srvErrors "github.com/kubev2v/squad-to-scale-migrator/pkg/errors"
)

// TestCaseStore reads the test cases persisted by the target.
type TestCaseStore struct {
	db      *sql.DB
	dialect Dialect
}

func NewTestCaseStore(db *sql.DB, dialect Dialect) *TestCaseStore {
	return &TestCaseStore{db: db, dialect: dialect}
}

// GetByKey returns MissingDependentRecordError when no row carries the key.
func (s *TestCaseStore) GetByKey(ctx context.Context, key string) (*models.TestCaseEntity, error) {
	query, args, err := sq.Select(s.dialect.Quote(columnTestCaseID), s.dialect.Quote(columnTestCaseKey)).
		From(s.dialect.Table(tableTestCase)).
		Where(sq.Eq{s.dialect.Quote(columnTestCaseKey): key}).
		PlaceholderFormat(s.dialect.Placeholder).
		ToSql()
	if err != nil {
		return nil, err
	}

	var tc models.TestCaseEntity
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&tc.ID, &tc.Key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, srvErrors.NewMissingTestCaseError(key)
	}
	if err != nil {
		return nil, err
	}
	return &tc, nil
}
