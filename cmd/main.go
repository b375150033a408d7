package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/thomas-vilte/matelog/internal/cli/registry"
	"github.com/thomas-vilte/matelog/internal/commands/completion"
	"github.com/thomas-vilte/matelog/internal/commands/config"
	"github.com/thomas-vilte/matelog/internal/commands/generate"
	"github.com/thomas-vilte/matelog/internal/commands/stats"
	cfg "github.com/thomas-vilte/matelog/internal/config"
	"github.com/thomas-vilte/matelog/internal/i18n"
	"github.com/thomas-vilte/matelog/internal/logger"
	"github.com/thomas-vilte/matelog/internal/services"
	"github.com/thomas-vilte/matelog/internal/ui"
	"github.com/thomas-vilte/matelog/internal/version"
	"github.com/urfave/cli/v3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, translations, err := initializeApp()
	if err != nil {
		ui.HandleAppError(err, translations)
		stop()
		os.Exit(1)
	}

	if err := app.Run(ctx, os.Args); err != nil {
		ui.HandleAppError(err, translations)
		stop()
		os.Exit(1)
	}

	services.NewVersionChecker(version.Version, translations).CheckForUpdates(ctx, os.Stderr)
}

func initializeApp() (*cli.Command, *i18n.Translations, error) {
	// A broken config file must not block "config init", so the load error
	// is reported from the Before hook instead.
	cfgApp, loadErr := cfg.LoadConfig("")
	if loadErr != nil {
		cfgApp = cfg.Default()
	}

	translations, err := i18n.NewTranslations(cfg.GetLocaleConfig(cfgApp.Language), "")
	if err != nil {
		return nil, nil, err
	}

	registerCommand := registry.NewRegistry(cfgApp, translations)

	if err := registerCommand.Register("generate", generate.NewGenerateCommandFactory()); err != nil {
		return nil, translations, err
	}
	if err := registerCommand.Register("config", config.NewConfigCommandFactory()); err != nil {
		return nil, translations, err
	}
	if err := registerCommand.Register("stats", stats.NewStatsCommand()); err != nil {
		return nil, translations, err
	}
	if err := registerCommand.Register("completion", completion.NewCompletionCommandFactory()); err != nil {
		return nil, translations, err
	}

	commands := registerCommand.CreateCommands()

	helpCommand := &cli.Command{
		Name:    "help",
		Aliases: []string{"h"},
		Usage:   translations.GetMessage("help_command_usage", 0, nil),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd.Root())
		},
	}
	commands = append(commands, helpCommand)

	return &cli.Command{
		Name:                  "matelog",
		Usage:                 translations.GetMessage("app_usage", 0, nil),
		Version:               version.Version,
		Description:           translations.GetMessage("app_description", 0, nil),
		Flags:                 globalFlags(translations),
		Before:                beforeAction(cfgApp, loadErr, translations),
		Commands:              commands,
		EnableShellCompletion: true,
	}, translations, nil
}

func globalFlags(t *i18n.Translations) []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "debug",
			Usage: t.GetMessage("debug_flag", 0, nil),
		},
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: t.GetMessage("verbose_flag", 0, nil),
		},
		&cli.StringFlag{
			Name:  "lang",
			Usage: t.GetMessage("lang_flag", 0, nil),
		},
		&cli.StringFlag{
			Name:  "config",
			Usage: t.GetMessage("config_flag", 0, nil),
		},
	}
}

// beforeAction applies the global flags: it reloads the configuration from
// --config into cfgApp, switches the language and installs the logger.
func beforeAction(cfgApp *cfg.Config, loadErr error, t *i18n.Translations) cli.BeforeFunc {
	return func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
		if path := cmd.String("config"); path != "" {
			reloaded, err := cfg.LoadConfig(path)
			if err != nil {
				return ctx, err
			}
			*cfgApp = *reloaded
		} else if loadErr != nil && !isConfigInit(cmd.Args().Slice()) {
			return ctx, loadErr
		}

		lang := cfgApp.Language
		if cmd.IsSet("lang") {
			lang = cmd.String("lang")
		}
		if err := t.SetLanguage(cfg.GetLocaleConfig(lang)); err != nil {
			return ctx, err
		}

		log := logger.Initialize(cmd.Bool("debug"), cmd.Bool("verbose"))
		log.Debug("matelog starting",
			"version", version.FullVersion(),
			"config", cfgApp.PathFile,
			"language", t.Language())

		return logger.WithLogger(ctx, log), nil
	}
}

func isConfigInit(args []string) bool {
	return len(args) >= 2 && args[0] == "config" && args[1] == "init"
}
