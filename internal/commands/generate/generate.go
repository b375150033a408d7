package generate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/thomas-vilte/matelog/internal/commands/completion_helper"
	"github.com/thomas-vilte/matelog/internal/config"
	domainErrors "github.com/thomas-vilte/matelog/internal/errors"
	"github.com/thomas-vilte/matelog/internal/git"
	"github.com/thomas-vilte/matelog/internal/i18n"
	"github.com/thomas-vilte/matelog/internal/logger"
	"github.com/thomas-vilte/matelog/internal/models"
	"github.com/thomas-vilte/matelog/internal/render"
	"github.com/thomas-vilte/matelog/internal/services"
	"github.com/thomas-vilte/matelog/internal/ui"
	"github.com/urfave/cli/v3"
)

// changelogService is a minimal interface for testing purposes
type changelogService interface {
	Build(ctx context.Context, req services.GenerateRequest) (*models.Changelog, error)
	Render(ctx context.Context, cl *models.Changelog, format render.Format) (string, error)
	Write(ctx context.Context, path, content string, prepend bool) error
}

type GenerateCommandFactory struct{}

func NewGenerateCommandFactory() *GenerateCommandFactory {
	return &GenerateCommandFactory{}
}

func (f *GenerateCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:          "generate",
		Aliases:       []string{"g"},
		Usage:         t.GetMessage("generate.command_usage", 0, nil),
		Flags:         generateFlags(t),
		ShellComplete: completion_helper.DefaultFlagComplete,
		// cfg is read at run time: the root Before hook may reload it from --config.
		Action: func(ctx context.Context, cmd *cli.Command) error {
			svc := f.createChangelogService(cmd.String("repo"), cfg, t)
			return generateAction(svc, cfg, t)(ctx, cmd)
		},
	}
}

func generateFlags(t *i18n.Translations) []cli.Flag {
	return []cli.Flag{
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
		&cli.BoolFlag{
			Name:    "release",
			Aliases: []string{"r"},
			Usage:   t.GetMessage("generate.release_flag", 0, nil),
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   t.GetMessage("generate.output_flag", 0, nil),
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   t.GetMessage("generate.format_flag", 0, nil),
		},
		&cli.BoolFlag{
			Name:  "stdout",
			Usage: t.GetMessage("generate.stdout_flag", 0, nil),
		},
		&cli.StringFlag{
			Name:  "repo",
			Usage: t.GetMessage("generate.repo_flag", 0, nil),
			Value: ".",
		},
		&cli.BoolFlag{
			Name:  "prepend",
			Usage: t.GetMessage("generate.prepend_flag", 0, nil),
		},
	}
}

func (f *GenerateCommandFactory) createChangelogService(repoPath string, cfg *config.Config, t *i18n.Translations) *services.ChangelogService {
	return services.NewChangelogService(
		git.NewGitService(repoPath),
		services.WithChangelogConfig(cfg),
		services.WithChangelogTranslations(t),
	)
}

func generateAction(svc changelogService, cfg *config.Config, trans *i18n.Translations) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		log := logger.FromContext(ctx)
		start := time.Now()
		out := cmd.Root().Writer

		formatName := cfg.Format
		if cmd.IsSet("format") {
			formatName = cmd.String("format")
		}
		format, err := render.ParseFormat(formatName)
		if err != nil {
			return err
		}

		outputFile := cfg.Output
		if cmd.IsSet("output") {
			outputFile = cmd.String("output")
		}

		req := services.GenerateRequest{
			Current:  cmd.String("current"),
			Previous: cmd.String("previous"),
			Release:  cmd.Bool("release"),
		}

		log.Info("executing generate command",
			"current", req.Current,
			"previous", req.Previous,
			"release", req.Release,
			"format", string(format),
			"output_file", outputFile)

		var cl *models.Changelog
		err = ui.WithSpinner(trans.GetMessage("generate.reading_commits", 0, nil), func() error {
			var buildErr error
			cl, buildErr = svc.Build(ctx, req)
			return buildErr
		})
		if errors.Is(err, domainErrors.ErrNoCommits) {
			log.Info("empty range, nothing to write", "duration_ms", time.Since(start).Milliseconds())
			ui.PrintInfo(out, trans.GetMessage("generate.no_commits", 0, map[string]interface{}{
				"Range": rangeOf(err),
			}))
			return nil
		}
		if err != nil {
			log.Error("failed to build changelog",
				"error", err,
				"duration_ms", time.Since(start).Milliseconds())
			return err
		}

		content, err := svc.Render(ctx, cl, format)
		if err != nil {
			return err
		}

		if cmd.Bool("stdout") {
			_, err := fmt.Fprint(out, content)
			return err
		}

		prepend := cmd.Bool("prepend")
		if prepend && format != render.FormatMarkdown {
			ui.PrintWarning(out, trans.GetMessage("generate.prepend_ignored", 0, map[string]interface{}{
				"Format": string(format),
			}))
			prepend = false
		}

		if err := svc.Write(ctx, outputFile, content, prepend); err != nil {
			log.Error("failed to write changelog",
				"error", err,
				"output_file", outputFile)
			return err
		}

		ui.PrintSuccess(out, trans.GetMessage("generate.saved", 0, map[string]interface{}{
			"Version": cl.Metadata.Version,
			"File":    outputFile,
		}))

		log.Info("generate command completed successfully",
			"duration_ms", time.Since(start).Milliseconds())
		return nil
	}
}

// rangeOf returns the range recorded on an AppError, or "" when there is none.
func rangeOf(err error) string {
	var appErr *domainErrors.AppError
	if errors.As(err, &appErr) {
		if ref, ok := appErr.Context["ref"].(string); ok {
			return ref
		}
	}
	return ""
}
