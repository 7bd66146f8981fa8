package services

import (
	"github.com/kubev2v/squad-to-scale-migrator/internal/models"
	"github.com/kubev2v/squad-to-scale-migrator/pkg/squad"
)

// ProjectScope holds every cache that is only valid while one project is migrated.
// It is written by the migrator goroutine only; attachment tasks read it.
type ProjectScope struct {
	Key string

	testCases models.TestCaseMap
	processed map[models.TestCaseKey]struct{}

	cycles       map[string]string
	assignable   map[string]struct{}
	unassignable map[string]struct{}

	project *models.Project

	keysResolved   bool
	historicalKeys *models.ProjectHistoricalKeys
	historicalErr  error
}

func NewProjectScope(projectKey string) *ProjectScope {
	return &ProjectScope{
		Key:          projectKey,
		testCases:    make(models.TestCaseMap),
		processed:    make(map[models.TestCaseKey]struct{}),
		cycles:       make(map[string]string),
		assignable:   make(map[string]struct{}),
		unassignable: map[string]struct{}{squad.None: {}},
	}
}

// TestCases returns every test case created so far for the project.
func (s *ProjectScope) TestCases() models.TestCaseMap {
	return s.testCases
}

func (s *ProjectScope) putTestCase(source models.TestCaseKey, targetKey string) {
	s.testCases[source] = targetKey
}

// pendingTestCases returns the test cases whose steps and executions were not
// migrated yet, by ascending issue id.
func (s *ProjectScope) pendingTestCases() []models.TestCaseEntry {
	var pending []models.TestCaseEntry
	for _, entry := range s.testCases.Ordered() {
		if _, done := s.processed[entry.Source]; !done {
			pending = append(pending, entry)
		}
	}
	return pending
}

func (s *ProjectScope) markProcessed(source models.TestCaseKey) {
	s.processed[source] = struct{}{}
}

// Project returns the project metadata cached by the first export, if any.
func (s *ProjectScope) Project() (*models.Project, bool) {
	return s.project, s.project != nil
}

func (s *ProjectScope) SetProject(p *models.Project) {
	s.project = p
}

// HistoricalKeys returns the cached resolution outcome. resolved is false until the
// resolution ran once, after which both success and failure are cached.
func (s *ProjectScope) HistoricalKeys() (keys *models.ProjectHistoricalKeys, resolved bool, err error) {
	return s.historicalKeys, s.keysResolved, s.historicalErr
}

func (s *ProjectScope) setHistoricalKeys(keys *models.ProjectHistoricalKeys, err error) {
	s.keysResolved = true
	s.historicalKeys = keys
	s.historicalErr = err
}

func (s *ProjectScope) cycleKey(name string) (string, bool) {
	key, ok := s.cycles[name]
	return key, ok
}

func (s *ProjectScope) putCycle(name, key string) {
	s.cycles[name] = key
}
