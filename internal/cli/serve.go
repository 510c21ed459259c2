package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/yildizm/vss-site/internal/config"
	"github.com/yildizm/vss-site/internal/disclosure"
	"github.com/yildizm/vss-site/internal/emoji"
	"github.com/yildizm/vss-site/internal/logger"
	"github.com/yildizm/vss-site/internal/site"
	"github.com/yildizm/vss-site/internal/web"
)

var (
	serveWatch   bool
	serveAddress string
)

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the landing page over HTTP",
		Long: `Serve the landing page and accept contact submissions.

The page is served under the configured base path. Forms post back to
<base>contact and JSON clients can submit to <base>api/contact.`,
		Example: `  # Serve the built-in content
  vss serve

  # Serve a content file and reload it on change
  vss serve --watch --config site.yaml

  # Listen on another address
  vss serve --addr :9000`,
		RunE: runServe,
	}

	cmd.Flags().BoolVarP(&serveWatch, "watch", "w", false, "reload content when the file changes")
	cmd.Flags().StringVar(&serveAddress, "addr", "", "listen address (overrides server.address)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveAddress != "" {
		cfg.Server.Address = serveAddress
	}
	watch := cfg.Site.Watch || serveWatch
	if watch && cfg.Site.ContentPath == "" {
		return fmt.Errorf("--watch requires site.content_path to be set")
	}

	log := newLogger(cfg)
	srv, err := newServer(cfg, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if watch {
		watcher := site.NewWatcher(cfg.Site.ContentPath,
			func(page *site.Page) {
				srv.SetPage(page)
				log.InfoWithFields("content reloaded", []logger.Field{logger.F("path", cfg.Site.ContentPath)})
			},
			func(err error) {
				log.WarnWithFields("content reload failed, keeping previous page", []logger.Field{logger.Error(err)})
			},
		)
		go func() {
			if err := watcher.Run(ctx); err != nil {
				log.ErrorWithFields("content watcher stopped", []logger.Field{logger.Error(err)})
			}
		}()
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s Serving %s at http://%s%s\n", emoji.GetEmoji("globe"), srv.Page().Brand.Name, cfg.Server.Address, cfg.Site.BasePath)
	if err := srv.Run(ctx); err != nil {
		return err
	}
	if isVerbose() {
		fmt.Fprintln(os.Stderr, "\nReceived interrupt signal, stopped serving")
	}
	return nil
}

// newServer loads the configured content and builds the HTTP server for it
func newServer(cfg *config.Config, log *logger.Logger) (*web.Server, error) {
	page, err := site.Load(cfg.Site.ContentPath)
	if err != nil {
		return nil, err
	}
	scope, err := disclosure.ParseScope(cfg.Disclosure.Scope)
	if err != nil {
		return nil, err
	}

	return web.NewServer(page, web.Options{
		Address:         cfg.Server.Address,
		BasePath:        cfg.Site.BasePath,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		RequestTimeout:  cfg.Server.RequestTimeout,
		DisclosureScope: scope,
		ClearOnSuccess:  cfg.Contact.ClearOnSuccess,
		Logger:          log,
	}), nil
}
