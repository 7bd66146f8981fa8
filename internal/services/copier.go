package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/kubev2v/squad-to-scale-migrator/internal/models"
	"github.com/kubev2v/squad-to-scale-migrator/internal/util"
	srvErrors "github.com/kubev2v/squad-to-scale-migrator/pkg/errors"
)

const (
	destinationDir  = "kanoahTests"
	testStepEntity  = "teststep"
	executionEntity = "schedule"
	fullPermission  = 0o777
)

var bucketDir = regexp.MustCompile(`^\d+$`)

// AttachmentsCopier copies legacy attachment files into the folder read by the target.
//
// Issue attachments live at {base}/{originalKey}/{bucket}/{originalKey}-{number}/{file},
// step and execution attachments at {base}/{key}/{teststep|schedule}/{id}/{file} under
// any key that holds Squad data.
type AttachmentsCopier struct {
	baseDir string
}

func NewAttachmentsCopier(baseDir string) *AttachmentsCopier {
	return &AttachmentsCopier{baseDir: baseDir}
}

func (c *AttachmentsCopier) CopyAttachments(ctx context.Context, scope *ProjectScope, associations []models.AttachmentAssociation) error {
	log := zap.S().Named("copier").With("project", scope.Key)

	keys, err := c.historicalKeys(scope)
	if err != nil {
		// already logged when resolved
		return nil
	}

	dest, err := c.setupDestination()
	if err != nil {
		return err
	}

	for _, a := range associations {
		if err := ctx.Err(); err != nil {
			return err
		}

		origin, err := c.originPath(keys, a)
		if err != nil {
			log.Warnw("attachment skipped", "attachment", a.FileName, "origin_id", a.Origin.ID, "error", err)
			continue
		}

		target := filepath.Join(dest, a.FileName)
		if err := copyFile(origin, target); err != nil {
			log.Errorw("error copying file", "from", origin, "to", target, "error", err)
		}
	}
	return nil
}

// historicalKeys resolves where the project attachments live, once per scope.
// A failed resolution is cached too and disables copying for the project.
func (c *AttachmentsCopier) historicalKeys(scope *ProjectScope) (*models.ProjectHistoricalKeys, error) {
	if keys, resolved, err := scope.HistoricalKeys(); resolved {
		return keys, err
	}

	historical := []string{scope.Key}
	if p, ok := scope.Project(); ok && len(p.HistoricalKeys) > 0 {
		historical = p.HistoricalKeys
	}

	keys, err := c.resolveKeys(scope.Key, historical)
	if err != nil {
		zap.S().Named("copier").Warnw("couldn't define the original project key, no attachments will be copied", "project", scope.Key, "error", err)
	}
	scope.setHistoricalKeys(keys, err)
	return keys, err
}

func (c *AttachmentsCopier) resolveKeys(current string, historical []string) (*models.ProjectHistoricalKeys, error) {
	if len(historical) == 1 {
		return &models.ProjectHistoricalKeys{
			CurrentKey:      current,
			OriginalKey:     current,
			KeysHoldingData: historical,
		}, nil
	}

	zap.S().Named("copier").Infow("project has changed keys, looking for the original one", "project", current, "keys", historical)

	keys := &models.ProjectHistoricalKeys{CurrentKey: current}
	for _, key := range historical {
		subdirs := listDirs(filepath.Join(c.baseDir, key))
		switch {
		case keys.OriginalKey == "" && slices.ContainsFunc(subdirs, bucketDir.MatchString):
			keys.OriginalKey = key
			keys.KeysHoldingData = append(keys.KeysHoldingData, key)
		case util.Contains(subdirs, testStepEntity) || util.Contains(subdirs, executionEntity):
			keys.KeysHoldingData = append(keys.KeysHoldingData, key)
		}
	}

	if keys.OriginalKey == "" {
		return nil, srvErrors.NewProjectKeyUnresolvedError(current, historical)
	}
	return keys, nil
}

func (c *AttachmentsCopier) originPath(keys *models.ProjectHistoricalKeys, a models.AttachmentAssociation) (string, error) {
	switch a.DestinationType {
	case models.DestinationTestCase:
		return c.issueAttachmentPath(keys.OriginalKey, a)
	case models.DestinationTestStep:
		return c.squadAttachmentPath(keys.KeysHoldingData, testStepEntity, a)
	case models.DestinationTestExecution:
		return c.squadAttachmentPath(keys.KeysHoldingData, executionEntity, a)
	default:
		return "", fmt.Errorf("unknown destination type %q", a.DestinationType)
	}
}

func (c *AttachmentsCopier) issueAttachmentPath(originalKey string, a models.AttachmentAssociation) (string, error) {
	idx := strings.LastIndex(a.Origin.Key, "-")
	if idx < 0 {
		return "", fmt.Errorf("invalid issue key %q", a.Origin.Key)
	}
	number, err := strconv.Atoi(a.Origin.Key[idx+1:])
	if err != nil {
		return "", fmt.Errorf("invalid issue key %q: %w", a.Origin.Key, err)
	}

	path := filepath.Join(
		c.baseDir,
		originalKey,
		strconv.Itoa(util.CalculateBucket(number)),
		fmt.Sprintf("%s-%d", originalKey, number),
		a.FileName,
	)
	if !exists(path) {
		return "", srvErrors.NewAttachmentNotFoundError(path)
	}
	return path, nil
}

func (c *AttachmentsCopier) squadAttachmentPath(keysHoldingData []string, entityType string, a models.AttachmentAssociation) (string, error) {
	for _, key := range keysHoldingData {
		path := filepath.Join(c.baseDir, key, entityType, a.Origin.ID, a.FileName)
		if exists(path) {
			return path, nil
		}
	}
	return "", srvErrors.NewAttachmentNotFoundError(filepath.Join(entityType, a.Origin.ID, a.FileName))
}

func (c *AttachmentsCopier) setupDestination() (string, error) {
	dest := filepath.Join(c.baseDir, destinationDir)
	if err := os.MkdirAll(dest, fullPermission); err != nil {
		return "", fmt.Errorf("failed to create attachments destination %s: %w", dest, err)
	}
	if err := os.Chmod(dest, fullPermission); err != nil {
		return "", fmt.Errorf("failed to set permissions on %s: %w", dest, err)
	}
	return dest, nil
}

func copyFile(from, to string) error {
	src, err := os.Open(from)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.OpenFile(to, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, fullPermission)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return err
	}
	if err := dst.Close(); err != nil {
		return err
	}
	return os.Chmod(to, fullPermission)
}

func listDirs(path string) []string {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil
	}
	dirs := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, e.Name())
		}
	}
	return dirs
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
