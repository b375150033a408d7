package config

import (
	"context"
	"fmt"
	"strconv"

	"github.com/thomas-vilte/matelog/internal/config"
	"github.com/thomas-vilte/matelog/internal/i18n"
	"github.com/thomas-vilte/matelog/internal/ui"
	"github.com/urfave/cli/v3"
)

func (c *ConfigCommandFactory) newShowCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:   "show",
		Usage:  t.GetMessage("config.show_usage", 0, nil),
		Action: showConfigAction(cfg, t),
	}
}

func showConfigAction(cfg *config.Config, t *i18n.Translations) cli.ActionFunc {
	return func(_ context.Context, cmd *cli.Command) error {
		w := cmd.Root().Writer

		_, _ = ui.Accent.Fprintln(w, t.GetMessage("config.show_header", 0, nil))
		_, _ = fmt.Fprintln(w, "━━━━━━━━━━━━━━━━━━━━━━━")

		ui.PrintKeyValue(w, t.GetMessage("config.path_label", 0, nil), cfg.PathFile)
		for _, field := range showFields(cfg) {
			ui.PrintKeyValue(w, field.key, field.value)
		}
		return nil
	}
}

type field struct {
	key   string
	value string
}

// showFields lists every setting by its config key; empty values print as "-".
func showFields(cfg *config.Config) []field {
	fields := []field{
		{"language", cfg.Language},
		{"title", cfg.Title},
		{"repository_url", cfg.RepositoryURL},
		{"compare_path", cfg.ComparePath},
		{"issue_tracker_url", cfg.IssueTrackerURL},
		{"deploy_tag_prefix", cfg.DeployTagPrefix},
		{"version_tag_pattern", cfg.VersionTagPattern},
		{"default_current", cfg.DefaultCurrent},
		{"output", cfg.Output},
		{"format", cfg.Format},
		{"newest_first", strconv.FormatBool(cfg.NewestFirst)},
	}
	for i := range fields {
		if fields[i].value == "" {
			fields[i].value = "-"
		}
	}
	return fields
}
