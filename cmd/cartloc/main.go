package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prebuy-ai/order-routing/internal/config"
	"github.com/prebuy-ai/order-routing/internal/logging"
	"github.com/prebuy-ai/order-routing/internal/port"
	"github.com/prebuy-ai/order-routing/internal/storefront"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type app struct {
	configPath string
	envFile    string
	baseURL    string
	verbose    bool

	newLogger func(level string) (*zap.Logger, error)

	cfg    *config.Config
	logger *zap.Logger
}

func newApp() *app {
	return &app{newLogger: logging.New}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := run(ctx, newApp(), os.Args[1:], os.Stdout)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// run executes the CLI and flushes the logger whether or not the command
// succeeded; cobra skips post-run hooks when RunE fails.
func run(ctx context.Context, a *app, args []string, out io.Writer) error {
	root := newRootCmd(a)
	root.SetOut(out)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if a.logger != nil {
		_ = a.logger.Sync()
	}

	return err
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "cartloc",
		Short:         "Tag storefront cart lines with a preferred fulfillment location",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "cartloc.yaml", "path to the YAML config file")
	flags.StringVar(&a.envFile, "env-file", ".env", "dotenv file loaded before the environment is read")
	flags.StringVar(&a.baseURL, "base-url", "", "storefront base URL (overrides config)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newAddCmd(a),
		newChangeCmd(a),
		newSnippetCmd(a),
		newRankCmd(a),
	)

	return root
}

func (a *app) init() error {
	if err := config.LoadEnvFile(a.envFile); err != nil {
		return err
	}

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.baseURL != "" {
		cfg.Storefront.BaseURL = a.baseURL
	}
	if a.verbose {
		cfg.Logging.Level = "debug"
	}

	logger, err := a.newLogger(cfg.Logging.Level)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger
	return nil
}

func (a *app) cartClient() (port.CartClient, error) {
	if err := a.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return storefront.NewCart(
		&http.Client{Timeout: a.cfg.GetTimeout()},
		a.cfg.Storefront.BaseURL,
		storefront.WithUserAgent(a.cfg.Storefront.UserAgent),
		storefront.WithLogger(a.logger),
	)
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
