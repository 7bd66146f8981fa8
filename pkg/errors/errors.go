package errors

import (
	"errors"
	"fmt"
)

// APIError is returned when the remote side answered with a non-2xx status that is not retried.
type APIError struct {
	StatusCode int
	Body       string
	Endpoint   string
}

func (e *APIError) Error() string {
	if e.Endpoint == "" {
		return fmt.Sprintf("api request failed with status %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("api request to %s failed with status %d: %s", e.Endpoint, e.StatusCode, e.Body)
}

func NewAPIError(statusCode int, body, endpoint string) *APIError {
	return &APIError{StatusCode: statusCode, Body: body, Endpoint: endpoint}
}

func IsAPIError(err error) bool {
	var e *APIError
	return errors.As(err, &e)
}

// AsAPIError returns the APIError wrapped in err, if any.
func AsAPIError(err error) (*APIError, bool) {
	var e *APIError
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

type NoAnswerError struct {
	Attempts int
	Endpoint string
	cause    error
}

func (e *NoAnswerError) Error() string {
	return fmt.Sprintf("failed to execute api request to %s after %d attempts: no answer from server", e.Endpoint, e.Attempts)
}

func (e *NoAnswerError) Unwrap() error {
	return e.cause
}

func NewNoAnswerError(endpoint string, attempts int, cause error) *NoAnswerError {
	return &NoAnswerError{Endpoint: endpoint, Attempts: attempts, cause: cause}
}

func IsNoAnswerError(err error) bool {
	var e *NoAnswerError
	return errors.As(err, &e)
}

type DecodingError struct {
	Encoding string
	cause    error
}

func (e *DecodingError) Error() string {
	return fmt.Sprintf("failed to decode response body with encoding %q: %v", e.Encoding, e.cause)
}

func (e *DecodingError) Unwrap() error {
	return e.cause
}

func NewDecodingError(encoding string, cause error) *DecodingError {
	return &DecodingError{Encoding: encoding, cause: cause}
}

func IsDecodingError(err error) bool {
	var e *DecodingError
	return errors.As(err, &e)
}

// MissingDependentRecordError means an entity that must already exist in the target could not be found.
type MissingDependentRecordError struct {
	Kind string
	Key  string
}

func (e *MissingDependentRecordError) Error() string {
	return fmt.Sprintf("%s %q not found in target", e.Kind, e.Key)
}

func NewMissingTestCaseError(key string) *MissingDependentRecordError {
	return &MissingDependentRecordError{Kind: "test case", Key: key}
}

func IsMissingDependentRecordError(err error) bool {
	var e *MissingDependentRecordError
	return errors.As(err, &e)
}

type AmbiguousUserMatchError struct {
	Username string
	Matches  int
}

func (e *AmbiguousUserMatchError) Error() string {
	if e.Matches == 1 {
		return fmt.Sprintf("user lookup for %q returned a different user", e.Username)
	}
	return fmt.Sprintf("multiple users found for the same username: %s", e.Username)
}

func NewAmbiguousUserMatchError(username string, matches int) *AmbiguousUserMatchError {
	return &AmbiguousUserMatchError{Username: username, Matches: matches}
}

func IsAmbiguousUserMatchError(err error) bool {
	var e *AmbiguousUserMatchError
	return errors.As(err, &e)
}

type AttachmentNotFoundError struct {
	Path string
}

func (e *AttachmentNotFoundError) Error() string {
	return fmt.Sprintf("attachment not found at %s", e.Path)
}

func NewAttachmentNotFoundError(path string) *AttachmentNotFoundError {
	return &AttachmentNotFoundError{Path: path}
}

func IsAttachmentNotFoundError(err error) bool {
	var e *AttachmentNotFoundError
	return errors.As(err, &e)
}

type ProjectKeyUnresolvedError struct {
	ProjectKey string
	Keys       []string
}

func (e *ProjectKeyUnresolvedError) Error() string {
	return fmt.Sprintf("could not find the original key of project %s among %v", e.ProjectKey, e.Keys)
}

func NewProjectKeyUnresolvedError(projectKey string, keys []string) *ProjectKeyUnresolvedError {
	return &ProjectKeyUnresolvedError{ProjectKey: projectKey, Keys: keys}
}

func IsProjectKeyUnresolvedError(err error) bool {
	var e *ProjectKeyUnresolvedError
	return errors.As(err, &e)
}

type UnsupportedDatabaseError struct {
	Type string
}

func (e *UnsupportedDatabaseError) Error() string {
	return fmt.Sprintf("database type %q is not supported", e.Type)
}

func NewUnsupportedDatabaseError(dbType string) *UnsupportedDatabaseError {
	return &UnsupportedDatabaseError{Type: dbType}
}

func IsUnsupportedDatabaseError(err error) bool {
	var e *UnsupportedDatabaseError
	return errors.As(err, &e)
}
