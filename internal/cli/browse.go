package cli

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/yildizm/vss-site/internal/config"
	"github.com/yildizm/vss-site/internal/contact"
	"github.com/yildizm/vss-site/internal/disclosure"
	"github.com/yildizm/vss-site/internal/site"
	"github.com/yildizm/vss-site/internal/ui"
)

var (
	browseWatch   bool
	browseLogFile string
	browseTheme   string
)

func newBrowseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the landing page in the terminal",
		Long: `Browse the landing page in an interactive terminal view.

Keys: 1-9 jump to a section, j/k and the mouse wheel scroll, tab moves
between links, panels and form fields, enter activates, m opens the menu
on narrow terminals and q quits.

Submissions go to the configured contact mode: simulated accepts every
valid enquiry locally, http posts it to a running "vss serve".`,
		Example: `  # Browse with simulated submissions
  vss browse

  # Submit to a running server
  VSS_CONTACT_MODE=http vss browse

  # Keep a debug log while browsing
  vss browse --verbose --log-file vss.log`,
		RunE: runBrowse,
	}

	cmd.Flags().BoolVarP(&browseWatch, "watch", "w", false, "reload content when the file changes")
	cmd.Flags().StringVar(&browseLogFile, "log-file", "", "write logs to this file while the browser owns the terminal")
	cmd.Flags().StringVar(&browseTheme, "theme", "", "color theme (vss, high-contrast, minimal)")

	return cmd
}

func runBrowse(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if browseTheme != "" {
		cfg.UI.Theme = browseTheme
	}
	if cfg.UI.Theme != "" && !ui.SetThemeByName(cfg.UI.Theme) {
		return fmt.Errorf("unknown theme: %s (available: %v)", cfg.UI.Theme, ui.GetAvailableThemes())
	}
	watch := cfg.Site.Watch || browseWatch
	if watch && cfg.Site.ContentPath == "" {
		return fmt.Errorf("--watch requires site.content_path to be set")
	}

	page, err := site.Load(cfg.Site.ContentPath)
	if err != nil {
		return err
	}
	scope, err := disclosure.ParseScope(cfg.Disclosure.Scope)
	if err != nil {
		return err
	}
	submitter, err := buildSubmitter(cfg)
	if err != nil {
		return err
	}

	log := newLogger(cfg)
	out, closeOut, err := openLogOutput(browseLogFile)
	if err != nil {
		return err
	}
	defer closeOut()
	log.SetOutput(out)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return ui.Run(ctx, ui.Options{
		Page:            page,
		ContentPath:     cfg.Site.ContentPath,
		Watch:           watch,
		Submitter:       submitter,
		SubmitTimeout:   cfg.Contact.Timeout,
		ClearOnSuccess:  cfg.Contact.ClearOnSuccess,
		DisclosureScope: scope,
		ScrollOffset:    cfg.UI.ScrollOffset,
		SmoothScroll:    cfg.UI.SmoothScroll,
		ScrollFrame:     cfg.UI.ScrollFrame,
		NarrowWidth:     cfg.UI.NarrowWidth,
		Logger:          log,
	})
}

// buildSubmitter creates the submitter for the configured contact mode
func buildSubmitter(cfg *config.Config) (contact.Submitter, error) {
	switch cfg.Contact.Mode {
	case "simulated", "":
		return contact.NewSimulatedSubmitter(cfg.Contact.SimulatedDelay), nil
	case "http":
		if cfg.Contact.Endpoint == "" {
			return nil, fmt.Errorf("contact endpoint is required in http mode")
		}
		return contact.NewHTTPSubmitter(cfg.Contact.Endpoint, &http.Client{Timeout: cfg.Contact.Timeout}), nil
	default:
		return nil, fmt.Errorf("unknown contact mode: %s", cfg.Contact.Mode)
	}
}

// openLogOutput returns where logs go while the terminal is in alt-screen
// mode. Without a file they are dropped.
func openLogOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return io.Discard, func() {}, nil
	}

	file, err := os.OpenFile(filepath.Clean(path), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return file, func() {
		if err := file.Close(); err != nil && isVerbose() {
			fmt.Fprintf(os.Stderr, "Warning: failed to close log file: %v\n", err)
		}
	}, nil
}
