package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	srvErrors "github.com/kubev2v/squad-to-scale-migrator/pkg/errors"
)

// UserValidator tells whether a Squad username can be assigned in the target project.
// Answers are cached in the project scope so each username is looked up once.
type UserValidator struct {
	jira JiraAPI
}

func NewUserValidator(jira JiraAPI) *UserValidator {
	return &UserValidator{jira: jira}
}

func (v *UserValidator) IsAssignable(ctx context.Context, scope *ProjectScope, username string) (bool, error) {
	if strings.TrimSpace(username) == "" {
		return false, nil
	}
	if _, found := scope.unassignable[username]; found {
		return false, nil
	}
	if _, found := scope.assignable[username]; found {
		return true, nil
	}

	users, err := v.jira.FindAssignableUsers(ctx, username, scope.Key)
	if err != nil {
		return false, fmt.Errorf("failed to look up user %s: %w", username, err)
	}

	switch {
	case len(users) == 0:
		zap.S().Named("users").Debugw("user is not assignable", "username", username, "project", scope.Key)
		scope.unassignable[username] = struct{}{}
		return false, nil
	case len(users) > 1:
		return false, srvErrors.NewAmbiguousUserMatchError(username, len(users))
	case users[0].Name != username:
		return false, srvErrors.NewAmbiguousUserMatchError(username, 1)
	}

	scope.assignable[username] = struct{}{}
	return true, nil
}
