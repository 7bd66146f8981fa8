package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/creasty/defaults"

	"github.com/kubev2v/squad-to-scale-migrator/internal/store"
	"github.com/kubev2v/squad-to-scale-migrator/pkg/httpclient"
)

// minWorkers is one worker per attachment correlation task (test cases, steps, executions).
const minWorkers = 3

type Configuration struct {
	Jira      Jira
	Migration Migration
	Database  Database
	Server    Server
	LogFormat string `default:"console"`
	LogLevel  string `default:"info"`
}

// Jira holds the connection settings shared by the Jira, Squad and Scale APIs, which live on the same host.
type Jira struct {
	Host              string
	Username          string
	Password          string
	HTTPVersion       string `default:"2"`
	BackoffBaseMs     int    `default:"1000"`
	BackoffMultiplier int    `default:"2"`
	MaxAttempts       uint   `default:"3"`
}

type Migration struct {
	ProjectKey                string
	BatchSize                 int `default:"100"`
	CycleNamePlaceHolder      string
	AttachmentsMappedCsvFile  string `default:"AO_4D28DD_ATTACHMENT.csv"`
	AttachmentsMappedXlsxFile string
	AttachmentsBaseFolder     string
	Workers                   int `default:"3"`
}

type Database struct {
	Type     string `default:"postgresql"`
	URL      string
	Schema   string
	Username string
	Password string
}

type Server struct {
	StatusAddr string
}

func NewConfigurationWithDefaults() (*Configuration, error) {
	cfg := &Configuration{}
	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("failed to set configuration defaults: %w", err)
	}
	return cfg, nil
}

// Validate checks the mandatory settings and normalizes host and attachments folder.
func (c *Configuration) Validate() error {
	var errs []error

	host := strings.TrimSpace(c.Jira.Host)
	if host == "" {
		errs = append(errs, errors.New("host address is required"))
	}
	c.Jira.Host = strings.TrimSuffix(host, "/")

	folder := strings.TrimSpace(c.Migration.AttachmentsBaseFolder)
	if folder == "" {
		errs = append(errs, errors.New("attachments base folder is required"))
	} else if !strings.HasSuffix(folder, "/") {
		folder += "/"
	}
	c.Migration.AttachmentsBaseFolder = folder

	if c.Jira.Username == "" || c.Jira.Password == "" {
		errs = append(errs, errors.New("username and password are required"))
	}
	if c.Migration.BatchSize <= 0 {
		errs = append(errs, fmt.Errorf("batch size must be positive, got %d", c.Migration.BatchSize))
	}
	if c.Migration.Workers < minWorkers {
		errs = append(errs, fmt.Errorf("workers must be at least %d, got %d", minWorkers, c.Migration.Workers))
	}
	if _, err := httpclient.ParseProtocol(c.Jira.HTTPVersion); err != nil {
		errs = append(errs, err)
	}
	if _, err := store.ParseDatabaseType(c.Database.Type); err != nil {
		errs = append(errs, err)
	}

	c.Migration.ProjectKey = strings.ToUpper(strings.TrimSpace(c.Migration.ProjectKey))

	return errors.Join(errs...)
}

// DebugMap returns the configuration for logging, without secrets.
func (c *Configuration) DebugMap() map[string]any {
	return map[string]any{
		"host":                      c.Jira.Host,
		"username":                  c.Jira.Username,
		"httpVersion":               c.Jira.HTTPVersion,
		"backoffBaseMs":             c.Jira.BackoffBaseMs,
		"backoffMultiplier":         c.Jira.BackoffMultiplier,
		"maxAttempts":               c.Jira.MaxAttempts,
		"projectKey":                c.Migration.ProjectKey,
		"batchSize":                 c.Migration.BatchSize,
		"cycleNamePlaceHolder":      c.Migration.CycleNamePlaceHolder,
		"attachmentsMappedCsvFile":  c.Migration.AttachmentsMappedCsvFile,
		"attachmentsMappedXlsxFile": c.Migration.AttachmentsMappedXlsxFile,
		"attachmentsBaseFolder":     c.Migration.AttachmentsBaseFolder,
		"workers":                   c.Migration.Workers,
		"database":                  c.Database.Type,
		"databaseSchema":            c.Database.Schema,
		"statusAddr":                c.Server.StatusAddr,
		"logFormat":                 c.LogFormat,
		"logLevel":                  c.LogLevel,
	}
}
