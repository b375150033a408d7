package stats

import (
	"context"
	"errors"
	"fmt"

	"github.com/thomas-vilte/matelog/internal/commands/completion_helper"
	"github.com/thomas-vilte/matelog/internal/config"
	domainErrors "github.com/thomas-vilte/matelog/internal/errors"
	"github.com/thomas-vilte/matelog/internal/git"
	"github.com/thomas-vilte/matelog/internal/i18n"
	"github.com/thomas-vilte/matelog/internal/models"
	"github.com/thomas-vilte/matelog/internal/services"
	"github.com/thomas-vilte/matelog/internal/ui"
	"github.com/urfave/cli/v3"
)

// changelogBuilder is a minimal interface for testing purposes
type changelogBuilder interface {
	Build(ctx context.Context, req services.GenerateRequest) (*models.Changelog, error)
}

type StatsCommand struct{}

func NewStatsCommand() *StatsCommand {
	return &StatsCommand{}
}

func (c *StatsCommand) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: t.GetMessage("stats.usage", 0, nil),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "current",
				Aliases: []string{"c"},
				Usage:   t.GetMessage("generate.current_flag", 0, nil),
			},
			&cli.StringFlag{
				Name:    "previous",
				Aliases: []string{"p"},
				Usage:   t.GetMessage("generate.previous_flag", 0, nil),
			},
			&cli.StringFlag{
				Name:  "repo",
				Usage: t.GetMessage("generate.repo_flag", 0, nil),
				Value: ".",
			},
		},
		ShellComplete: completion_helper.DefaultFlagComplete,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			svc := services.NewChangelogService(
				git.NewGitService(cmd.String("repo")),
				services.WithChangelogConfig(cfg),
				services.WithChangelogTranslations(t),
			)
			return statsAction(svc, t)(ctx, cmd)
		},
	}
}

// statsAction prints how many tickets and distinct messages each category
// of the range holds, without writing anything.
func statsAction(svc changelogBuilder, t *i18n.Translations) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		w := cmd.Root().Writer

		req := services.GenerateRequest{
			Current:  cmd.String("current"),
			Previous: cmd.String("previous"),
		}

		var cl *models.Changelog
		err := ui.WithSpinner(t.GetMessage("generate.reading_commits", 0, nil), func() error {
			var buildErr error
			cl, buildErr = svc.Build(ctx, req)
			return buildErr
		})
		if errors.Is(err, domainErrors.ErrNoCommits) {
			ui.PrintInfo(w, t.GetMessage("generate.no_commits", 0, map[string]interface{}{
				"Range": rangeOf(err),
			}))
			return nil
		}
		if err != nil {
			return err
		}

		_, _ = ui.Info.Fprintf(w, "\n📊 %s\n", t.GetMessage("stats.title", 0, map[string]interface{}{
			"Range": cl.Metadata.FromTag + ".." + cl.Metadata.ToTag,
		}))
		_, _ = fmt.Fprintln(w, "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")

		var totalTickets, totalMessages int
		for _, section := range cl.Sections {
			tickets, messages := countSection(section)
			if tickets == 0 {
				continue
			}
			totalTickets += tickets
			totalMessages += messages
			ui.PrintKeyValue(w, t.GetMessage("changelog.category."+section.Category.Key(), 0, nil), counts(t, tickets, messages))
		}

		_, _ = fmt.Fprintln(w, "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		ui.PrintKeyValue(w, t.GetMessage("stats.total_label", 0, nil), counts(t, totalTickets, totalMessages))
		return nil
	}
}

func countSection(section models.Section) (tickets, messages int) {
	for _, ticket := range section.Tickets {
		tickets++
		messages += ticket.Count()
	}
	return tickets, messages
}

func counts(t *i18n.Translations, tickets, messages int) string {
	return t.GetMessage("stats.counts", 0, map[string]interface{}{
		"Tickets":  tickets,
		"Messages": messages,
	})
}

func rangeOf(err error) string {
	var appErr *domainErrors.AppError
	if errors.As(err, &appErr) {
		if ref, ok := appErr.Context["ref"].(string); ok {
			return ref
		}
	}
	return ""
}
