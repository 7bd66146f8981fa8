package services

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/kubev2v/squad-to-scale-migrator/internal/models"
	"github.com/kubev2v/squad-to-scale-migrator/internal/util"
	"github.com/kubev2v/squad-to-scale-migrator/pkg/scheduler"
)

const progressEvery = 100

// AttachmentsMigrator maps the attachments of migrated entities to their target
// entities, copies the files and hands the mapping to the sinks.
//
// Test case, test step and execution attachments are mapped by three concurrent
// works. Nothing is copied or dumped unless the three of them succeed.
type AttachmentsMigrator struct {
	jira      JiraAPI
	squad     SquadAPI
	scale     ScaleAPI
	testCases TestCaseFinder
	scheduler *scheduler.Scheduler
	copier    FileCopier
	sinks     []AttachmentSink
	now       func() time.Time
}

func NewAttachmentsMigrator(jira JiraAPI, squad SquadAPI, scale ScaleAPI, testCases TestCaseFinder, s *scheduler.Scheduler, copier FileCopier, sinks ...AttachmentSink) *AttachmentsMigrator {
	return &AttachmentsMigrator{
		jira:      jira,
		squad:     squad,
		scale:     scale,
		testCases: testCases,
		scheduler: s,
		copier:    copier,
		sinks:     sinks,
		now:       time.Now,
	}
}

func (a *AttachmentsMigrator) Export(ctx context.Context, scope *ProjectScope, entities models.EntitiesMap) error {
	log := zap.S().Named("attachments").With("project", scope.Key)
	if entities.Empty() {
		log.Debug("nothing to export")
		return nil
	}

	project, err := a.project(ctx, scope)
	if err != nil {
		return err
	}

	cases := a.scheduler.AddWork(func(ctx context.Context) (any, error) {
		return a.mapTestCases(ctx, project.ID, entities.TestCases)
	})
	steps := a.scheduler.AddWork(func(ctx context.Context) (any, error) {
		return a.mapTestSteps(ctx, project.ID, entities.TestSteps)
	})
	executions := a.scheduler.AddWork(func(ctx context.Context) (any, error) {
		return a.mapTestExecutions(ctx, project.ID, entities.TestExecutions)
	})

	results, err := scheduler.WaitAll(ctx, cases, steps, executions)
	if err != nil {
		log.Errorw("failed to map attachments", "error", err)
		return fmt.Errorf("failed to map attachments of project %s: %w", scope.Key, err)
	}

	var associations []models.AttachmentAssociation
	for _, r := range results {
		associations = append(associations, r.([]models.AttachmentAssociation)...)
	}

	log.Infow("copying attachments", "count", len(associations))
	if err := a.copier.CopyAttachments(ctx, scope, associations); err != nil {
		return fmt.Errorf("failed to copy attachments of project %s: %w", scope.Key, err)
	}

	for _, sink := range a.sinks {
		if err := sink.Dump(ctx, associations); err != nil {
			return fmt.Errorf("failed to export attachment mapping of project %s: %w", scope.Key, err)
		}
	}
	log.Info("attachments export finished")
	return nil
}

// project fetches the project metadata once per scope.
func (a *AttachmentsMigrator) project(ctx context.Context, scope *ProjectScope) (*models.Project, error) {
	if p, ok := scope.Project(); ok {
		return p, nil
	}

	p, err := a.jira.GetProjectWithHistoricalKeys(ctx, scope.Key)
	if err != nil {
		return nil, fmt.Errorf("failed to get project %s: %w", scope.Key, err)
	}

	project := &models.Project{ID: p.ID, Key: p.Key, HistoricalKeys: p.ProjectKeys}
	if len(project.HistoricalKeys) == 0 {
		project.HistoricalKeys = []string{p.Key}
	}
	scope.SetProject(project)
	return project, nil
}

func (a *AttachmentsMigrator) mapTestCases(ctx context.Context, projectID string, testCases models.TestCaseMap) ([]models.AttachmentAssociation, error) {
	log := zap.S().Named("attachments")
	entries := testCases.Ordered()
	started := time.Now()

	var out []models.AttachmentAssociation
	for i, entry := range entries {
		if i%progressEvery == 0 {
			log.Infof("Test case attachment progress: %s", util.ProgressBar(i, len(entries), time.Since(started)))
		}

		entity, err := a.testCases.GetByKey(ctx, entry.TargetKey)
		if err != nil {
			return nil, err
		}

		attachments, err := a.jira.GetIssueAttachments(ctx, entry.Source.IssueID)
		if err != nil {
			return nil, fmt.Errorf("failed to get attachments of issue %s: %w", entry.Source.IssueID, err)
		}

		for _, att := range attachments {
			authorKey := ""
			if att.Author != nil {
				authorKey = att.Author.Key
			}
			out = append(out, models.AttachmentAssociation{
				AttachmentName:  att.Filename,
				FileName:        att.ID.String(),
				Size:            att.Size.String(),
				AuthorKey:       authorKey,
				CreatedOn:       a.now(),
				ProjectID:       projectID,
				DestinationType: models.DestinationTestCase,
				DestinationID:   strconv.FormatInt(entity.ID, 10),
				Origin:          models.OriginEntity{ID: entry.Source.IssueID, Key: entry.Source.IssueKey},
			})
		}
	}
	log.Infof("Test case attachment progress: %s", util.ProgressBar(len(entries), len(entries), time.Since(started)))
	return out, nil
}

func (a *AttachmentsMigrator) mapTestSteps(ctx context.Context, projectID string, testSteps models.TestStepMap) ([]models.AttachmentAssociation, error) {
	log := zap.S().Named("attachments")
	keys := make([]string, 0, len(testSteps))
	for k := range testSteps {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	started := time.Now()

	var out []models.AttachmentAssociation
	for i, testCaseKey := range keys {
		if i%progressEvery == 0 {
			log.Infof("Step attachment progress: %s", util.ProgressBar(i, len(keys), time.Since(started)))
		}

		testCase, err := a.scale.FetchTestSteps(ctx, testCaseKey)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch steps of test case %s: %w", testCaseKey, err)
		}

		stepIDs := make(map[int]string, len(testCase.TestScript.Steps))
		for _, s := range testCase.TestScript.Steps {
			index, err := strconv.Atoi(s.Index.String())
			if err != nil {
				return nil, fmt.Errorf("invalid index %q for step %s of test case %s: %w", s.Index, s.ID, testCaseKey, err)
			}
			stepIDs[index] = s.ID.String()
		}

		for _, step := range sortedSteps(testSteps[testCaseKey]) {
			order, err := strconv.Atoi(step.StepOrder)
			if err != nil {
				return nil, fmt.Errorf("invalid order %q for squad step %s: %w", step.StepOrder, step.StepID, err)
			}
			stepID, found := stepIDs[order-1]
			attachments := testSteps[testCaseKey][step]
			if !found {
				if len(attachments) > 0 {
					log.Warnw("no target step for squad step, skipping its attachments", "test_case", testCaseKey, "step_id", step.StepID, "order", order)
				}
				continue
			}

			for _, att := range attachments {
				out = append(out, models.AttachmentAssociation{
					AttachmentName:  att.FileName,
					FileName:        att.FileID,
					Size:            att.FileSize,
					AuthorKey:       att.Author,
					CreatedOn:       a.now(),
					ProjectID:       projectID,
					DestinationType: models.DestinationTestStep,
					DestinationID:   stepID,
					Origin:          models.OriginEntity{ID: step.StepID},
				})
			}
		}
	}
	return out, nil
}

func (a *AttachmentsMigrator) mapTestExecutions(ctx context.Context, projectID string, executions models.TestExecutionMap) ([]models.AttachmentAssociation, error) {
	log := zap.S().Named("attachments")
	ids := make([]string, 0, len(executions))
	for id := range executions {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	started := time.Now()

	var out []models.AttachmentAssociation
	for i, executionID := range ids {
		if i%progressEvery == 0 {
			log.Infof("Execution attachment progress: %s", util.ProgressBar(i, len(ids), time.Since(started)))
		}

		attachments, err := a.squad.FetchExecutionAttachments(ctx, executionID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch attachments of execution %s: %w", executionID, err)
		}

		for _, att := range attachments {
			out = append(out, models.AttachmentAssociation{
				AttachmentName:  att.FileName,
				FileName:        att.FileID.String(),
				Size:            att.FileSize.String(),
				AuthorKey:       att.Author,
				CreatedOn:       a.now(),
				ProjectID:       projectID,
				DestinationType: models.DestinationTestExecution,
				DestinationID:   executions[executionID],
				Origin:          models.OriginEntity{ID: executionID},
			})
		}
	}
	return out, nil
}

func sortedSteps(steps map[models.TestStepKey][]models.StepAttachment) []models.TestStepKey {
	keys := make([]models.TestStepKey, 0, len(steps))
	for k := range steps {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b models.TestStepKey) int {
		oa, _ := strconv.Atoi(a.StepOrder)
		ob, _ := strconv.Atoi(b.StepOrder)
		return oa - ob
	})
	return keys
}
