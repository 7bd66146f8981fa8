package store

import "database/sql"

// Store provides access to all storage repositories.
type Store struct {
	db        *sql.DB
	testCases *TestCaseStore
}

func NewStore(db *sql.DB, dialect Dialect) *Store {
	return &Store{
		db:        db,
		testCases: NewTestCaseStore(db, dialect),
	}
}

func (s *Store) TestCases() *TestCaseStore {
	return s.testCases
}

func (s *Store) Close() error {
	return s.db.Close()
}
