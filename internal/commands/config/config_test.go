package config

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thomas-vilte/matelog/internal/config"
	domainErrors "github.com/thomas-vilte/matelog/internal/errors"
	"github.com/thomas-vilte/matelog/internal/i18n"
	"github.com/urfave/cli/v3"
)

func init() {
	color.NoColor = true
}

func runConfigTest(t *testing.T, cfg *config.Config, args ...string) (string, error) {
	translations, err := i18n.NewTranslations("en", "")
	require.NoError(t, err)

	var out bytes.Buffer
	app := &cli.Command{
		Name:     "matelog",
		Writer:   &out,
		Commands: []*cli.Command{NewConfigCommandFactory().CreateCommand(translations, cfg)},
	}
	err = app.Run(context.Background(), append([]string{"matelog", "config"}, args...))
	return out.String(), err
}

func TestShowCommand(t *testing.T) {
	t.Run("prints every setting", func(t *testing.T) {
		cfg := config.Default()
		cfg.PathFile = "/home/dev/.matelog/config.json"
		cfg.IssueTrackerURL = "https://acme.atlassian.net/browse/"
		cfg.NewestFirst = true

		out, err := runConfigTest(t, cfg, "show")

		require.NoError(t, err)
		assert.Contains(t, out, "Effective configuration")
		assert.Contains(t, out, "   Config file: /home/dev/.matelog/config.json\n")
		assert.Contains(t, out, "   language: en\n")
		assert.Contains(t, out, "   compare_path: /compare/{from}...{to}\n")
		assert.Contains(t, out, "   issue_tracker_url: https://acme.atlassian.net/browse/\n")
		assert.Contains(t, out, "   deploy_tag_prefix: deploy-\n")
		assert.Contains(t, out, "   newest_first: true\n")
	})

	t.Run("empty values print a dash", func(t *testing.T) {
		out, err := runConfigTest(t, config.Default(), "show")

		require.NoError(t, err)
		assert.Contains(t, out, "   repository_url: -\n")
		assert.Contains(t, out, "   title: -\n")
	})
}

func TestInitCommand(t *testing.T) {
	t.Run("writes the defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "config.json")

		out, err := runConfigTest(t, config.Default(), "init", "--path", path)

		require.NoError(t, err)
		assert.Contains(t, out, "Configuration written to "+path)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		var saved map[string]interface{}
		require.NoError(t, json.Unmarshal(data, &saved))
		assert.Equal(t, "deploy-", saved["deploy_tag_prefix"])
		assert.Equal(t, "CHANGELOG.md", saved["output"])
	})

	t.Run("refuses to overwrite without force", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"language":"es"}`), 0644))

		_, err := runConfigTest(t, config.Default(), "init", "--path", path)

		require.Error(t, err)
		assert.True(t, errors.Is(err, domainErrors.ErrConfigExists))
		data, _ := os.ReadFile(path)
		assert.Equal(t, `{"language":"es"}`, string(data))
	})

	t.Run("overwrites with force", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"language":"es"}`), 0644))

		_, err := runConfigTest(t, config.Default(), "init", "--path", path, "--force")

		require.NoError(t, err)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"language": "en"`)
	})
}
