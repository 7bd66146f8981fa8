package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kubev2v/squad-to-scale-migrator/internal/models"
	"github.com/kubev2v/squad-to-scale-migrator/internal/util"
	"github.com/kubev2v/squad-to-scale-migrator/pkg/scale"
	"github.com/kubev2v/squad-to-scale-migrator/pkg/squad"
)

// migration custom fields, created in this order
var customFields = []struct {
	category string
	names    []string
}{
	{category: scale.CustomFieldCategoryTestCase, names: scale.TestCaseCustomFieldNames},
	{category: scale.CustomFieldCategoryTestExecution, names: scale.TestExecutionCustomFieldNames},
}

type MigratorOptions struct {
	BatchSize            int
	CycleNamePlaceholder string
}

// Migrator moves the Squad test cases of one or every project to Scale.
//
// Per project the work goes through:
//
//	CountTotal ──► (total = 0: no data) ──► EnableProject ──► CustomFields ──► Pages ──► Done
//
// Each page creates the test cases of its issues, then updates steps and posts
// executions for every test case not processed yet, then exports the attachments
// of the entities created by the page.
type Migrator struct {
	jira        JiraAPI
	squad       SquadAPI
	scale       ScaleAPI
	attachments AttachmentExporter
	tracker     *StatusTracker
	batchSize   int

	testCasePayloads  *TestCasePayloadBuilder
	executionPayloads *ExecutionPayloadBuilder
	cycles            *CycleService
}

func NewMigrator(jira JiraAPI, squad SquadAPI, scale ScaleAPI, attachments AttachmentExporter, tracker *StatusTracker, opts MigratorOptions) *Migrator {
	if opts.BatchSize <= 0 {
		opts.BatchSize = 100
	}
	return &Migrator{
		jira:              jira,
		squad:             squad,
		scale:             scale,
		attachments:       attachments,
		tracker:           tracker,
		batchSize:         opts.BatchSize,
		testCasePayloads:  NewTestCasePayloadBuilder(jira),
		executionPayloads: NewExecutionPayloadBuilder(NewUserValidator(jira)),
		cycles:            NewCycleService(scale, opts.CycleNamePlaceholder),
	}
}

// RunProject migrates a single project.
func (m *Migrator) RunProject(ctx context.Context, projectKey string) error {
	m.tracker.start(1)
	m.tracker.project(0, projectKey)

	hasData, err := m.migrateProject(ctx, projectKey)
	if err != nil {
		m.tracker.finish(models.MigrationStateError, err)
		return err
	}
	if !hasData {
		m.tracker.finish(models.MigrationStateNoData, nil)
		return nil
	}
	m.tracker.finish(models.MigrationStateDone, nil)
	return nil
}

// RunAll migrates every project listed by Squad, in order. The first failing
// project aborts the remaining ones.
func (m *Migrator) RunAll(ctx context.Context) error {
	log := zap.S().Named("migrator")

	options, err := m.squad.GetAllProjects(ctx)
	if err != nil {
		log.Errorw("failed to get project list", "error", err)
		m.tracker.finish(models.MigrationStateError, err)
		return fmt.Errorf("failed to get project list: %w", err)
	}

	m.tracker.start(len(options))
	started := time.Now()

	for i, opt := range options {
		log.Infof("Project progress: %s", util.ProgressBar(i, len(options), time.Since(started)))

		project, err := m.jira.GetProject(ctx, opt.Value.String())
		if err != nil {
			err = fmt.Errorf("failed to resolve project %s: %w", opt.Value, err)
			m.tracker.finish(models.MigrationStateError, err)
			return err
		}

		m.tracker.project(i, project.Key)
		if _, err := m.migrateProject(ctx, project.Key); err != nil {
			m.tracker.finish(models.MigrationStateError, err)
			return err
		}
	}

	log.Infof("Project progress: %s", util.ProgressBar(len(options), len(options), time.Since(started)))
	m.tracker.finish(models.MigrationStateDone, nil)
	return nil
}

func (m *Migrator) migrateProject(ctx context.Context, projectKey string) (bool, error) {
	log := zap.S().Named("migrator").With("project", projectKey)
	scope := NewProjectScope(projectKey)

	log.Info("fetching total issues")
	total, err := m.jira.FetchTotalIssues(ctx, projectKey)
	if err != nil {
		log.Errorw("failed to fetch total issues", "error", err)
		return false, fmt.Errorf("failed to count issues of project %s: %w", projectKey, err)
	}
	if total == 0 {
		log.Info("project doesn't have squad objects, skipping it")
		return false, nil
	}
	log.Infow("total issues", "total", total)
	m.tracker.issues(0, total)

	log.Info("enabling project in scale")
	if err := m.scale.EnableProject(ctx, projectKey); err != nil {
		return false, fmt.Errorf("failed to enable project %s: %w", projectKey, err)
	}

	if err := m.createCustomFields(ctx, projectKey); err != nil {
		return false, err
	}

	started := time.Now()
	for startAt := 0; startAt < total; startAt += m.batchSize {
		if err := ctx.Err(); err != nil {
			return false, err
		}

		log.Infof("Issue progress: %s", util.ProgressBar(startAt, total, time.Since(started)))
		if err := m.processPage(ctx, scope, startAt); err != nil {
			log.Errorw("failed to process page", "start_at", startAt, "error", err)
			return false, fmt.Errorf("failed to process page starting at %d of project %s: %w", startAt, projectKey, err)
		}
		m.tracker.issues(min(startAt+m.batchSize, total), total)
	}
	log.Infof("Issue progress: %s", util.ProgressBar(total, total, time.Since(started)))

	return true, nil
}

func (m *Migrator) createCustomFields(ctx context.Context, projectKey string) error {
	log := zap.S().Named("migrator")
	for _, group := range customFields {
		for _, name := range group.names {
			if err := m.scale.CreateCustomField(ctx, projectKey, group.category, name); err != nil {
				log.Errorw("failed to create migration custom field", "project", projectKey, "field", name, "error", err)
				return fmt.Errorf("failed to create custom field %s: %w", name, err)
			}
			log.Debugw("migration custom field ready", "project", projectKey, "field", name)
		}
	}
	return nil
}

func (m *Migrator) processPage(ctx context.Context, scope *ProjectScope, startAt int) error {
	log := zap.S().Named("migrator").With("project", scope.Key)

	issues, err := m.jira.FetchIssuesOrderedByCreatedDate(ctx, scope.Key, startAt, m.batchSize)
	if err != nil {
		return err
	}
	log.Infow("fetched issues", "start_at", startAt, "count", len(issues))

	entities := models.NewEntitiesMap()
	for _, issue := range issues {
		req, err := m.testCasePayloads.Build(ctx, issue, scope.Key)
		if err != nil {
			return err
		}
		key, err := m.scale.CreateTestCase(ctx, req)
		if err != nil {
			return fmt.Errorf("failed to create test case from issue %s: %w", issue.ID, err)
		}
		log.Debugw("test case created", "issue_id", issue.ID, "test_case", key)

		source := models.TestCaseKey{IssueID: issue.ID, IssueKey: issue.Key}
		scope.putTestCase(source, key)
		entities.TestCases[source] = key
	}

	for _, entry := range scope.pendingTestCases() {
		if err := m.updateSteps(ctx, entry, entities.TestSteps); err != nil {
			return err
		}
		if err := m.createExecutions(ctx, scope, entry, entities.TestExecutions); err != nil {
			return err
		}
		scope.markProcessed(entry.Source)
	}

	return m.attachments.Export(ctx, scope, entities)
}

func (m *Migrator) updateSteps(ctx context.Context, entry models.TestCaseEntry, steps models.TestStepMap) error {
	squadSteps, err := m.squad.FetchLatestTestSteps(ctx, entry.Source.IssueID)
	if err != nil {
		return fmt.Errorf("failed to fetch steps of issue %s: %w", entry.Source.IssueID, err)
	}
	if len(squadSteps) == 0 {
		return nil
	}

	script := make([]scale.Step, 0, len(squadSteps))
	for _, s := range squadSteps {
		script = append(script, scale.Step{
			Description:    s.HTMLStep,
			TestData:       s.HTMLData,
			ExpectedResult: s.HTMLResult,
		})
	}
	if err := m.scale.UpdateTestSteps(ctx, entry.TargetKey, script); err != nil {
		return fmt.Errorf("failed to update steps of test case %s: %w", entry.TargetKey, err)
	}

	for _, s := range squadSteps {
		steps.Put(entry.TargetKey, models.TestStepKey{StepID: s.ID.String(), StepOrder: s.OrderID.String()}, stepAttachments(s.Attachments))
	}
	return nil
}

func (m *Migrator) createExecutions(ctx context.Context, scope *ProjectScope, entry models.TestCaseEntry, executions models.TestExecutionMap) error {
	execs, err := m.squad.FetchLatestExecutions(ctx, entry.Source.IssueID)
	if err != nil {
		return fmt.Errorf("failed to fetch executions of issue %s: %w", entry.Source.IssueID, err)
	}
	if len(execs) == 0 {
		zap.S().Named("migrator").Debugw("test case doesn't have executions", "issue_id", entry.Source.IssueID)
		return nil
	}

	for _, exec := range execs {
		cycleKey, err := m.cycles.Resolve(ctx, scope, exec)
		if err != nil {
			return err
		}
		req, err := m.executionPayloads.Build(ctx, scope, exec, entry.TargetKey)
		if err != nil {
			return fmt.Errorf("failed to build execution %s: %w", exec.ID, err)
		}
		id, err := m.scale.CreateTestExecution(ctx, cycleKey, req)
		if err != nil {
			return fmt.Errorf("failed to create execution %s: %w", exec.ID, err)
		}
		executions[exec.ID] = id
	}
	return nil
}

func stepAttachments(in []squad.Attachment) []models.StepAttachment {
	out := make([]models.StepAttachment, 0, len(in))
	for _, a := range in {
		out = append(out, models.StepAttachment{
			FileID:      a.FileID.String(),
			FileName:    a.FileName,
			FileSize:    a.FileSize.String(),
			Author:      a.Author,
			DateCreated: a.DateCreated,
		})
	}
	return out
}
