package config

import (
	"context"

	"github.com/thomas-vilte/matelog/internal/commands/completion_helper"
	"github.com/thomas-vilte/matelog/internal/config"
	"github.com/thomas-vilte/matelog/internal/i18n"
	"github.com/thomas-vilte/matelog/internal/logger"
	"github.com/thomas-vilte/matelog/internal/ui"
	"github.com/urfave/cli/v3"
)

func (c *ConfigCommandFactory) newInitCommand(t *i18n.Translations) *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: t.GetMessage("config.init_usage", 0, nil),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "force",
				Usage: t.GetMessage("config.force_flag", 0, nil),
			},
			&cli.StringFlag{
				Name:  "path",
				Usage: t.GetMessage("config.path_flag", 0, nil),
			},
		},
		ShellComplete: completion_helper.DefaultFlagComplete,
		Action:        initConfigAction(t),
	}
}

func initConfigAction(t *i18n.Translations) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		cfg, err := config.InitConfig(cmd.String("path"), cmd.Bool("force"))
		if err != nil {
			return err
		}

		logger.Info(ctx, "configuration file written", "path", cfg.PathFile)
		ui.PrintSuccess(cmd.Root().Writer, t.GetMessage("config.created", 0, map[string]interface{}{
			"Path": cfg.PathFile,
		}))
		return nil
	}
}
