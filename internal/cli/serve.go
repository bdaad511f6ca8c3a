package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yaklabco/modtex/internal/logging"
	"github.com/yaklabco/modtex/internal/server"
	"github.com/yaklabco/modtex/pkg/config"
	"github.com/yaklabco/modtex/pkg/module"
	"github.com/yaklabco/modtex/pkg/typeset"
)

func newServeCommand() *cobra.Command {
	var cfg config.Config

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve an HTTP render endpoint",
		Long: `Serve an HTTP endpoint that renders module text.

POST module text to /render and receive an HTML fragment. Add ?page=1 for a
standalone page or ?format=json for the fragment, title, and render stats.
GET /healthz reports the active math engine.

Examples:
  modtex serve
  modtex serve --addr :9000
  curl --data-binary @intro.txt http://127.0.0.1:8080/render`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, &cfg)
		},
	}

	cmd.Flags().StringVar(&cfg.Serve.Addr, "addr", "", "listen address (default 127.0.0.1:8080)")
	cmd.Flags().Int64Var(&cfg.Serve.MaxBodyBytes, "max-body-bytes", 0, "largest accepted request body")
	cmd.Flags().StringVar(&cfg.Engine, "engine", "", "math engine: mathml, client (default mathml)")

	return cmd
}

func runServe(cmd *cobra.Command, cliCfg *config.Config) error {
	logger := logging.Default()

	cfg, _, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}

	math, err := typeset.New(cfg.Engine, cfg.Macros)
	if err != nil {
		return fmt.Errorf("create math engine: %w", err)
	}

	srv := server.New(math, logger, server.Options{
		MaxBodyBytes: cfg.Serve.MaxBodyBytes,
		Page: module.PageOptions{
			Lang:       cfg.Page.Lang,
			Stylesheet: cfg.Page.Stylesheet,
		},
		NormalizeUnicode: cfg.NormalizeUnicode,
		Engine:           cfg.Engine,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.ListenAndServe(ctx, cfg.Serve.Addr)
}
