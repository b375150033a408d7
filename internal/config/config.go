// Package config loads the matelog configuration. Values are layered with
// koanf in increasing priority: defaults, the user file
// (~/.matelog/config.json), the project file (.matelog.json) and MATELOG_*
// environment variables. A .env file in the working directory is read first.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	kjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/thomas-vilte/matelog/internal/errors"
	"github.com/thomas-vilte/matelog/internal/render"
)

const (
	envPrefix         = "MATELOG_"
	userConfigDir     = ".matelog"
	userConfigFile    = "config.json"
	projectConfigFile = ".matelog.json"
	envFile           = ".env"
)

type Config struct {
	Language string `koanf:"language" json:"language"`
	// Title overrides the document title; empty uses the translated default.
	Title string `koanf:"title" json:"title,omitempty"`

	RepositoryURL   string `koanf:"repository_url" json:"repository_url,omitempty"`
	ComparePath     string `koanf:"compare_path" json:"compare_path"`
	IssueTrackerURL string `koanf:"issue_tracker_url" json:"issue_tracker_url,omitempty"`

	DeployTagPrefix   string `koanf:"deploy_tag_prefix" json:"deploy_tag_prefix"`
	VersionTagPattern string `koanf:"version_tag_pattern" json:"version_tag_pattern"`
	DefaultCurrent    string `koanf:"default_current" json:"default_current"`

	Output      string `koanf:"output" json:"output"`
	Format      string `koanf:"format" json:"format"`
	NewestFirst bool   `koanf:"newest_first" json:"newest_first"`

	// PathFile is where SaveConfig writes; it is never serialized.
	PathFile string `koanf:"-" json:"-"`
}

// LoadOptions overrides the file locations used by LoadWithOptions.
type LoadOptions struct {
	// UserConfigPath replaces ~/.matelog/config.json.
	UserConfigPath string
	// ProjectConfigPath replaces .matelog.json in the working directory.
	ProjectConfigPath string
	// EnvFile replaces .env in the working directory.
	EnvFile string
}

// LoadConfig loads the layered configuration. A non-empty path replaces the
// user config file, as the --config flag does.
func LoadConfig(path string) (*Config, error) {
	return LoadWithOptions(LoadOptions{UserConfigPath: path})
}

func LoadWithOptions(opts LoadOptions) (*Config, error) {
	userPath := opts.UserConfigPath
	if userPath == "" {
		var err error
		userPath, err = UserConfigPath()
		if err != nil {
			return nil, errors.ErrConfigLoad.WithError(err)
		}
	}
	projectPath := opts.ProjectConfigPath
	if projectPath == "" {
		projectPath = projectConfigFile
	}
	dotEnv := opts.EnvFile
	if dotEnv == "" {
		dotEnv = envFile
	}

	// a missing .env is fine
	_ = godotenv.Load(dotEnv)

	k := koanf.New(".")
	for key, value := range GetDefaults() {
		if err := k.Set(key, value); err != nil {
			return nil, errors.ErrConfigLoad.WithError(err)
		}
	}

	for _, path := range []string{userPath, projectPath} {
		if !fileExists(path) {
			continue
		}
		if err := k.Load(file.Provider(path), kjson.Parser()); err != nil {
			return nil, errors.ErrConfigLoad.WithError(err).WithContext("path", path)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envTransform), nil); err != nil {
		return nil, errors.ErrConfigLoad.WithError(fmt.Errorf("loading environment: %w", err))
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.ErrConfigLoad.WithError(err)
	}
	cfg.PathFile = userPath

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// InitConfig writes the default configuration to path. An existing file is
// only replaced when force is set.
func InitConfig(path string, force bool) (*Config, error) {
	if path == "" {
		var err error
		path, err = UserConfigPath()
		if err != nil {
			return nil, errors.ErrConfigLoad.WithError(err)
		}
	}

	if fileExists(path) && !force {
		return nil, errors.ErrConfigExists.WithContext("path", path)
	}

	cfg := Default()
	cfg.PathFile = path
	if err := SaveConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func SaveConfig(config *Config) error {
	if err := Validate(config); err != nil {
		return err
	}

	if config.PathFile == "" {
		return errors.ErrConfigInvalid.WithError(fmt.Errorf("config file path is not set"))
	}

	if err := os.MkdirAll(filepath.Dir(config.PathFile), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(config.PathFile, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Validate rejects an empty language, an unknown format and a compare path
// missing either placeholder.
func Validate(config *Config) error {
	if config.Language == "" {
		return errors.ErrConfigInvalid.WithError(fmt.Errorf("language cannot be empty"))
	}
	if _, err := render.ParseFormat(config.Format); err != nil {
		return errors.ErrConfigInvalid.WithError(err).WithContext("format", config.Format)
	}
	if !strings.Contains(config.ComparePath, "{from}") || !strings.Contains(config.ComparePath, "{to}") {
		return errors.ErrConfigInvalid.
			WithError(fmt.Errorf("compare_path must contain {from} and {to}")).
			WithContext("compare_path", config.ComparePath)
	}
	return nil
}

// Links returns the hyperlink bases configured for rendering.
func (c *Config) Links() render.Links {
	return render.Links{
		RepositoryURL:   c.RepositoryURL,
		ComparePath:     c.ComparePath,
		IssueTrackerURL: c.IssueTrackerURL,
	}
}

// UserConfigPath returns ~/.matelog/config.json.
func UserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, userConfigDir, userConfigFile), nil
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// MATELOG_DEPLOY_TAG_PREFIX -> deploy_tag_prefix
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, envPrefix))
}
