package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/tonimelisma/descriptorgen/internal/config"
	"github.com/tonimelisma/descriptorgen/internal/obslog"
)

// version is set at build time via ldflags.
var version = "dev"

// Global persistent flags, bound in newRootCmd.
var (
	flagConfigPath string
	flagLogLevel   string
	flagLogFormat  string
	flagThreads    int
)

// skipConfigAnnotation marks commands that do not need a resolved Config
// (currently only "version"). Commands without this annotation get one
// built for them in PersistentPreRunE.
const skipConfigAnnotation = "skipConfig"

// CLIContext bundles the resolved configuration and logger built once in
// PersistentPreRunE, the way the teacher's root.go avoids redundant
// buildLogger/loadConfig calls across RunE handlers.
type CLIContext struct {
	Cfg    *config.Config
	Logger *slog.Logger
}

type cliContextKey struct{}

func cliContextFrom(ctx context.Context) *CLIContext {
	cc, ok := ctx.Value(cliContextKey{}).(*CLIContext)
	if !ok {
		return nil
	}

	return cc
}

// mustCLIContext extracts the CLIContext or panics with an actionable
// message — a programmer error, since the command tree guarantees
// PersistentPreRunE populates it before any non-skipConfig RunE runs.
func mustCLIContext(ctx context.Context) *CLIContext {
	cc := cliContextFrom(ctx)
	if cc == nil {
		panic("BUG: CLIContext not found in context — command should not skip config loading")
	}

	return cc
}

// newRootCmd builds the fully-assembled root command with all subcommands
// registered. Called once from main().
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "descriptorgen",
		Short:         "Per-track descriptor generation core, CLI driver",
		Long:          "Drives the descriptor-generation core against a synthetic frame/track stream for demonstration and smoke testing.",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Annotations[skipConfigAnnotation] == "true" {
				return nil
			}

			return loadConfig(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "config file path (TOML)")
	cmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn, error")
	cmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "log format: text, json")
	cmd.PersistentFlags().IntVar(&flagThreads, "threads", 0, "override generator thread_count (0 = use config)")

	cmd.AddCommand(newRunCmd())
	cmd.AddCommand(newValidateConfigCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// loadConfig resolves the four-layer override chain and stores the result
// in the command's context for subcommands to retrieve.
func loadConfig(cmd *cobra.Command) error {
	bootstrap := bootstrapLogger()

	env := config.ReadEnvOverrides()

	cli := config.CLIOverrides{ConfigPath: flagConfigPath}
	if cmd.Flags().Changed("threads") {
		cli.ThreadCount = flagThreads
		cli.SetThread = true
	}

	if cmd.Flags().Changed("log-level") {
		env.LogLevel = flagLogLevel
	}

	cfg, err := config.Load(flagConfigPath, env, cli, bootstrap)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	format := cfg.Logging.LogFormat
	if cmd.Flags().Changed("log-format") {
		format = flagLogFormat
	}

	logger, err := obslog.New(cfg.Logging.LogLevel, format)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}

	cc := &CLIContext{Cfg: cfg, Logger: logger}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cmd.SetContext(context.WithValue(ctx, cliContextKey{}, cc))

	return nil
}

// bootstrapLogger returns a minimal logger for use before config is
// resolved (loadConfig needs somewhere to log config-resolution steps).
func bootstrapLogger() *slog.Logger {
	logger, err := obslog.New("warn", "text")
	if err != nil {
		return slog.Default()
	}

	return logger
}
