package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"poseclient/internal/builder"
	"poseclient/pkg/config"
	"poseclient/pkg/logger"

	"github.com/spf13/cobra"
)

type globalFlags struct {
	baseURL   string
	token     string
	backend   string
	timeout   time.Duration
	logLevel  string
	logFormat string
}

// env is filled by the root PersistentPreRunE and shared with subcommands.
type env struct {
	flags globalFlags
	app   *builder.App
}

// NewRootCmd builds the posectl command tree.
func NewRootCmd() *cobra.Command {
	e := &env{}

	root := &cobra.Command{
		Use:           "posectl",
		Short:         "Manage drama poses through the pose API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if e.app != nil {
				e.app.Close()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&e.flags.baseURL, "base-url", "", "API base URL (env POSE_API_BASE_URL)")
	pf.StringVar(&e.flags.token, "token", "", "bearer token (env POSE_API_TOKEN)")
	pf.StringVar(&e.flags.backend, "backend", "", "HTTP backend: resty or fiber (env POSE_HTTP_BACKEND)")
	pf.DurationVar(&e.flags.timeout, "timeout", 0, "per-request timeout (env POSE_REQUEST_TIMEOUT)")
	pf.StringVar(&e.flags.logLevel, "log-level", "", "debug, info, warn or error (env LOG_LEVEL)")
	pf.StringVar(&e.flags.logFormat, "log-format", "", "text or json (env LOG_FORMAT)")

	root.AddCommand(
		newListCmd(e),
		newCreateCmd(e),
		newUpdateCmd(e),
		newDeleteCmd(e),
		newGenerateCmd(e),
		newAssociateCmd(e),
		newExtractCmd(e),
		newTaskCmd(e),
	)
	return root
}

func (e *env) setup(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fl := cmd.Flags()
	if fl.Changed("base-url") {
		cfg.BaseURL = e.flags.baseURL
	}
	if fl.Changed("token") {
		cfg.AuthToken = e.flags.token
	}
	if fl.Changed("backend") {
		cfg.Backend = e.flags.backend
	}
	if fl.Changed("timeout") {
		cfg.RequestTimeout = e.flags.timeout
	}
	if fl.Changed("log-level") {
		cfg.LogLevel = e.flags.logLevel
	}
	if fl.Changed("log-format") {
		cfg.LogFormat = e.flags.logFormat
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Output: cmd.ErrOrStderr()})
	app, err := builder.New(cfg, log)
	if err != nil {
		return err
	}
	e.app = app
	return nil
}

// Execute runs posectl and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

func parseID(s string) (uint, error) {
	n, err := strconv.ParseUint(s, 10, strconv.IntSize)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return uint(n), nil
}

func parseIDs(args []string) ([]uint, error) {
	ids := make([]uint, 0, len(args))
	for _, a := range args {
		n, err := parseID(a)
		if err != nil {
			return nil, err
		}
		ids = append(ids, n)
	}
	return ids, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
