package store

const (
	tableTestCase     = "AO_4D28DD_TEST_CASE"
	columnTestCaseID  = "ID"
	columnTestCaseKey = "KEY"
)
