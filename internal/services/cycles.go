package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kubev2v/squad-to-scale-migrator/internal/models"
	"github.com/kubev2v/squad-to-scale-migrator/pkg/scale"
	"github.com/kubev2v/squad-to-scale-migrator/pkg/squad"
)

const unscheduledVersion = "unscheduled"

// CycleService creates target test cycles on demand, once per Squad cycle name and project.
type CycleService struct {
	scale       ScaleAPI
	placeholder string
}

func NewCycleService(scale ScaleAPI, cycleNamePlaceholder string) *CycleService {
	return &CycleService{scale: scale, placeholder: cycleNamePlaceholder}
}

// Resolve returns the key of the cycle that receives exec. The cache ignores the
// version: a second execution in the same cycle but another version reuses the
// first cycle.
func (c *CycleService) Resolve(ctx context.Context, scope *ProjectScope, exec squad.Execution) (string, error) {
	if key, ok := scope.cycleKey(exec.CycleName); ok {
		return key, nil
	}

	name := exec.CycleName
	if strings.TrimSpace(c.placeholder) != "" {
		name = c.placeholder
	}

	key, err := c.scale.CreateTestCycle(ctx, scale.CycleRequest{
		Version:    translateVersion(exec.VersionName),
		Name:       name,
		ProjectKey: scope.Key,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create cycle for squad cycle %q: %w", exec.CycleName, err)
	}

	zap.S().Named("cycles").Infow("test cycle created", "squad_cycle", exec.CycleName, "cycle", key, "project", scope.Key)
	scope.putCycle(exec.CycleName, key)
	return key, nil
}

// translateVersion drops the Squad placeholder version used for unscheduled executions.
func translateVersion(version models.Optional[string]) models.Optional[string] {
	v, ok := version.Get()
	if !ok || strings.EqualFold(strings.TrimSpace(v), unscheduledVersion) {
		return models.None[string]()
	}
	return version
}
