package models

import (
	"slices"
	"strconv"
)

type TestCaseKey struct {
	IssueID  string
	IssueKey string
}

// TestCaseMap maps a source issue to the key of the test case created for it.
type TestCaseMap map[TestCaseKey]string

type TestCaseEntry struct {
	Source    TestCaseKey
	TargetKey string
}

// Ordered returns the entries sorted by ascending numeric issue id.
// Non numeric ids sort after numeric ones, lexicographically.
func (m TestCaseMap) Ordered() []TestCaseEntry {
	entries := make([]TestCaseEntry, 0, len(m))
	for k, v := range m {
		entries = append(entries, TestCaseEntry{Source: k, TargetKey: v})
	}

	slices.SortFunc(entries, func(a, b TestCaseEntry) int {
		return compareIssueIDs(a.Source.IssueID, b.Source.IssueID)
	})
	return entries
}

func compareIssueIDs(a, b string) int {
	na, errA := strconv.ParseInt(a, 10, 64)
	nb, errB := strconv.ParseInt(b, 10, 64)
	switch {
	case errA == nil && errB == nil:
		switch {
		case na < nb:
			return -1
		case na > nb:
			return 1
		}
		return 0
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

type TestStepKey struct {
	StepID    string
	StepOrder string
}

type StepAttachment struct {
	FileID      string
	FileName    string
	FileSize    string
	Author      string
	DateCreated string
}

// TestStepMap maps a target test case key to its source steps and their attachments.
type TestStepMap map[string]map[TestStepKey][]StepAttachment

func (m TestStepMap) Put(testCaseKey string, step TestStepKey, attachments []StepAttachment) {
	steps, ok := m[testCaseKey]
	if !ok {
		steps = make(map[TestStepKey][]StepAttachment)
		m[testCaseKey] = steps
	}
	steps[step] = attachments
}

// TestExecutionMap maps a source execution id to the id of the created test result.
type TestExecutionMap map[string]string

type EntitiesMap struct {
	TestCases      TestCaseMap
	TestSteps      TestStepMap
	TestExecutions TestExecutionMap
}

func NewEntitiesMap() EntitiesMap {
	return EntitiesMap{
		TestCases:      make(TestCaseMap),
		TestSteps:      make(TestStepMap),
		TestExecutions: make(TestExecutionMap),
	}
}

func (e EntitiesMap) Empty() bool {
	return len(e.TestCases) == 0 && len(e.TestSteps) == 0 && len(e.TestExecutions) == 0
}
