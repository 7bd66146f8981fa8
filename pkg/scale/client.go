package scale

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	srvErrors "github.com/kubev2v/squad-to-scale-migrator/pkg/errors"
	"github.com/kubev2v/squad-to-scale-migrator/pkg/httpclient"
)

const (
	enableProjectEndpoint = "/rest/atm/1.0/project"
	customFieldEndpoint   = "/rest/atm/1.0/customfield"
	testCaseEndpoint      = "/rest/atm/1.0/testcase"
	testStepsEndpoint     = "/rest/atm/1.0/testcase/%s"
	testCycleEndpoint     = "/rest/atm/1.0/testrun"
	testResultsEndpoint   = "/rest/atm/1.0/testrun/%s/testresults"

	duplicatedCustomFieldMessage = "Custom field name is duplicated"
)

type Client struct {
	http *httpclient.Client
}

func NewClient(http *httpclient.Client) *Client {
	return &Client{http: http}
}

func (c *Client) EnableProject(ctx context.Context, projectKey string) error {
	_, err := c.http.Post(ctx, enableProjectEndpoint, EnableProjectRequest{ProjectKey: projectKey, Enabled: true})
	if err != nil {
		return logAndWrap(err, "error while enabling project as scale project at %s", enableProjectEndpoint)
	}
	return nil
}

// CreateCustomField creates a single line text field. A field that already exists is not an error.
func (c *Client) CreateCustomField(ctx context.Context, projectKey, category, name string) error {
	_, err := c.http.Post(ctx, customFieldEndpoint, CustomFieldRequest{
		Name:       name,
		Category:   category,
		ProjectKey: projectKey,
		Type:       CustomFieldTypeSingleLineText,
	})
	if err == nil {
		return nil
	}

	if apiErr, ok := srvErrors.AsAPIError(err); ok &&
		apiErr.StatusCode == http.StatusBadRequest &&
		strings.Contains(apiErr.Body, duplicatedCustomFieldMessage) {
		zap.S().Named("scale").Debugw("custom field already exists", "project", projectKey, "field", name)
		return nil
	}
	return logAndWrap(err, "error while creating custom fields at %s", customFieldEndpoint)
}

func (c *Client) CreateTestCase(ctx context.Context, req TestCaseRequest) (string, error) {
	body, err := c.http.Post(ctx, testCaseEndpoint, req)
	if err != nil {
		return "", logAndWrap(err, "error while creating test case at %s", testCaseEndpoint)
	}

	var resp keyResponse
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		return "", logAndWrap(err, "error while creating test case at %s - unexpected payload received: %s", testCaseEndpoint, body)
	}
	return resp.Key, nil
}

func (c *Client) UpdateTestSteps(ctx context.Context, testCaseKey string, steps []Step) error {
	req := StepsRequest{TestScript: TestScript{Type: TestScriptStepByStep, Steps: steps}}
	endpoint := fmt.Sprintf(testStepsEndpoint, url.PathEscape(testCaseKey))
	if _, err := c.http.Put(ctx, endpoint, req); err != nil {
		return logAndWrap(err, "error while creating test steps at %s", endpoint)
	}
	return nil
}

func (c *Client) FetchTestSteps(ctx context.Context, testCaseKey string) (*TestCase, error) {
	endpoint := fmt.Sprintf(testStepsEndpoint, url.PathEscape(testCaseKey))
	body, err := c.http.Get(ctx, endpoint)
	if err != nil {
		return nil, logAndWrap(err, "error while fetching test steps at %s", endpoint)
	}

	var tc TestCase
	if err := json.Unmarshal([]byte(body), &tc); err != nil {
		return nil, logAndWrap(err, "error while fetching test steps at %s", endpoint)
	}
	return &tc, nil
}

func (c *Client) CreateTestCycle(ctx context.Context, req CycleRequest) (string, error) {
	body, err := c.http.Post(ctx, testCycleEndpoint, req)
	if err != nil {
		return "", logAndWrap(err, "error while creating test cycle at %s", testCycleEndpoint)
	}

	var resp keyResponse
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		return "", logAndWrap(err, "error while creating test cycle at %s", testCycleEndpoint)
	}
	return resp.Key, nil
}

// CreateTestExecution posts a single test result. The endpoint only accepts lists.
func (c *Client) CreateTestExecution(ctx context.Context, cycleKey string, req ExecutionRequest) (string, error) {
	endpoint := fmt.Sprintf(testResultsEndpoint, url.PathEscape(cycleKey))
	body, err := c.http.Post(ctx, endpoint, []ExecutionRequest{req})
	if err != nil {
		return "", logAndWrap(err, "error while creating test results at %s", endpoint)
	}

	var results []TestResult
	if err := json.Unmarshal([]byte(body), &results); err != nil {
		return "", logAndWrap(err, "error while creating test results at %s", endpoint)
	}
	if len(results) == 0 {
		return "", logAndWrap(fmt.Errorf("empty response"), "error while creating test results at %s", endpoint)
	}
	return results[0].ID.String(), nil
}

func logAndWrap(err error, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	zap.S().Named("scale").Errorw(msg, "error", err)
	return fmt.Errorf("%s: %w", msg, err)
}
