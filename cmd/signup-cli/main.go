package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-signup"
	"github.com/goliatone/go-signup/internal/config"
	"github.com/goliatone/go-signup/internal/logging"
	"github.com/goliatone/go-signup/pkg/client"
	"github.com/goliatone/go-signup/pkg/orchestrator"
	"github.com/goliatone/go-signup/pkg/renderers/tui"
)

type cliFlags struct {
	configPath     string
	envPath        string
	baseURL        string
	timeout        time.Duration
	logLevel       string
	output         string
	verbose        bool
	revealPassword bool
	noConfirm      bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout).ExecuteContext(ctx); err != nil {
		if errors.Is(err, tui.ErrAborted) {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	return buildRootCmd(out, &cliFlags{})
}

func buildRootCmd(out io.Writer, flags *cliFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "signup-cli",
		Short: "Sign up from the terminal",
		Long: `Prompt for first name, last name, email and password, validate them, then
fetch a profile image keyed by the last name length and create the user with it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd, flags)
			if err != nil {
				return err
			}
			err = run(cmd.Context(), cfg, out)
			if errors.Is(err, tui.ErrDeclined) {
				fmt.Fprintln(out, "Signup cancelled")
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&flags.configPath, "config", "c", "", "YAML config file")
	cmd.Flags().StringVar(&flags.envPath, "env-file", ".env", "dotenv file loaded before reading SIGNUP_* variables")
	cmd.Flags().StringVar(&flags.baseURL, "base-url", client.DefaultBaseURL, "API base URL")
	cmd.Flags().DurationVar(&flags.timeout, "timeout", client.DefaultTimeout, "per request timeout")
	cmd.Flags().StringVar(&flags.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "pretty", "outcome format (pretty, json)")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "development logging at debug level")
	cmd.Flags().BoolVar(&flags.revealPassword, "reveal-password", false, "show password input instead of masking it")
	cmd.Flags().BoolVar(&flags.noConfirm, "no-confirm", false, "submit without asking for confirmation")
	return cmd
}

// resolveConfig applies explicitly set flags on top of the loaded config.
func resolveConfig(cmd *cobra.Command, flags *cliFlags) (config.Config, error) {
	cfg, err := config.Load(flags.configPath, flags.envPath)
	if err != nil {
		return config.Config{}, err
	}
	changed := cmd.Flags().Changed
	if changed("base-url") {
		cfg.BaseURL = flags.baseURL
	}
	if changed("timeout") {
		cfg.Timeout = flags.timeout
	}
	if changed("log-level") {
		cfg.LogLevel = flags.logLevel
	}
	if changed("output") {
		cfg.Output = flags.output
	}
	if changed("reveal-password") {
		cfg.RevealPassword = flags.revealPassword
	}
	if changed("no-confirm") {
		cfg.ConfirmSubmit = !flags.noConfirm
	}
	if flags.verbose {
		cfg.Development = true
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func run(ctx context.Context, cfg config.Config, out io.Writer) error {
	logger, err := logging.New(cfg.LogLevel, cfg.Development)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	transport := client.New(
		client.WithBaseURL(cfg.BaseURL),
		client.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		client.WithLogger(logger.Named("client")),
	)

	pipeline, err := signup.NewPipeline(transport, orchestrator.WithLogger(logger.Named("orchestrator")))
	if err != nil {
		return err
	}

	session, err := tui.NewSession(pipeline.State, pipeline,
		tui.WithPromptDriver(tui.NewSurveyDriver(out)),
		tui.WithEngine(pipeline.Engine),
		tui.WithRevealPasswords(cfg.RevealPassword),
		tui.WithConfirmSubmit(cfg.ConfirmSubmit),
		tui.WithLogger(logger.Named("tui")),
	)
	if err != nil {
		return err
	}

	logger.Debug("starting signup session", zap.String("base_url", cfg.BaseURL), zap.Duration("timeout", cfg.Timeout))
	outcome, err := session.Run(ctx)
	if err != nil {
		return err
	}

	rendered, err := tui.FormatOutcome(outcome, tui.OutputFormat(cfg.Output))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(rendered))
	return err
}
