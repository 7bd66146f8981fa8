package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const EnvPrefix = "SQUAD2SCALE"

// Files locates the property files read by Load.
type Files struct {
	App      string
	Database string
	Env      string
}

// Load builds the configuration from defaults, the .env file, app.properties,
// database.properties and SQUAD2SCALE_* variables, in increasing precedence
// for the last three. Missing files are skipped.
func Load(files Files) (*Configuration, error) {
	if files.Env != "" {
		if err := godotenv.Load(files.Env); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", files.Env, err)
		}
	}

	cfg, err := NewConfigurationWithDefaults()
	if err != nil {
		return nil, err
	}

	app, err := readProperties(files.App)
	if err != nil {
		return nil, err
	}
	applyApp(cfg, app)

	db, err := readProperties(files.Database)
	if err != nil {
		return nil, err
	}
	applyDatabase(cfg, db)

	return cfg, nil
}

func readProperties(path string) (*viper.Viper, error) {
	v, err := newViper()
	if err != nil {
		return nil, err
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		return v, nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return v, nil
	}

	v.SetConfigFile(path)
	v.SetConfigType(propertiesFormat)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return v, nil
}

func applyApp(cfg *Configuration, v *viper.Viper) {
	setString(v, "host", &cfg.Jira.Host)
	setString(v, "username", &cfg.Jira.Username)
	setString(v, "password", &cfg.Jira.Password)
	setString(v, "httpVersion", &cfg.Jira.HTTPVersion)
	setInt(v, "backoffBaseMs", &cfg.Jira.BackoffBaseMs)
	setInt(v, "backoffMultiplier", &cfg.Jira.BackoffMultiplier)
	if v.IsSet("maxAttempts") {
		cfg.Jira.MaxAttempts = v.GetUint("maxAttempts")
	}

	setString(v, "projectKey", &cfg.Migration.ProjectKey)
	setInt(v, "batchSize", &cfg.Migration.BatchSize)
	setString(v, "cycleNamePlaceHolder", &cfg.Migration.CycleNamePlaceHolder)
	setString(v, "attachmentsMappedCsvFile", &cfg.Migration.AttachmentsMappedCsvFile)
	setString(v, "attachmentsMappedXlsxFile", &cfg.Migration.AttachmentsMappedXlsxFile)
	setString(v, "attachmentsBaseFolder", &cfg.Migration.AttachmentsBaseFolder)
	setInt(v, "workers", &cfg.Migration.Workers)

	setString(v, "database", &cfg.Database.Type)
	setString(v, "statusAddr", &cfg.Server.StatusAddr)
	setString(v, "logFormat", &cfg.LogFormat)
	setString(v, "logLevel", &cfg.LogLevel)
}

// applyDatabase reads the <type>.datasource.* keys of the selected database type.
func applyDatabase(cfg *Configuration, v *viper.Viper) {
	prefix := strings.ToLower(strings.TrimSpace(cfg.Database.Type)) + ".datasource."
	setString(v, prefix+"url", &cfg.Database.URL)
	setString(v, prefix+"schema", &cfg.Database.Schema)
	setString(v, prefix+"username", &cfg.Database.Username)
	setString(v, prefix+"password", &cfg.Database.Password)
}

func setString(v *viper.Viper, key string, dst *string) {
	if v.IsSet(key) {
		*dst = v.GetString(key)
	}
}

func setInt(v *viper.Viper, key string, dst *int) {
	if v.IsSet(key) {
		*dst = v.GetInt(key)
	}
}
