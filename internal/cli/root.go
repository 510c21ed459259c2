package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/yildizm/vss-site/internal/config"
	"github.com/yildizm/vss-site/internal/emoji"
	"github.com/yildizm/vss-site/internal/logger"
	"github.com/yildizm/vss-site/internal/ui"
)

var (
	cfgFile   string
	verbose   bool
	noColor   bool
	noEmoji   bool
	outputFmt string
)

// NewRootCommand creates the root command
func NewRootCommand(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "vss",
		Short: "Venture Scholar Studio landing site",
		Long: `vss serves the Venture Scholar Studio landing page over HTTP, renders it
as a static file, or lets you browse it in the terminal.

The page tracks the section in view, collapses its navigation on narrow
screens, keeps one FAQ answer open at a time and accepts Entrepreneur in
Residence and contact enquiries.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Auto-disable emojis on Windows if not explicitly set
			if runtime.GOOS == "windows" && !cmd.Flag("no-emoji").Changed {
				noEmoji = true
			}
			// Set emoji state for all components
			emoji.SetEmojiDisabled(noEmoji)
			if noColor {
				ui.SetColorMode("never")
			}
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&noEmoji, "no-emoji", false, "disable emoji output (useful for Windows terminals)")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "", "output format (text, json, markdown, csv)")

	// Add subcommands
	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newBrowseCommand())
	rootCmd.AddCommand(newBuildCommand())
	rootCmd.AddCommand(newContentCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newVersionCommand(version, commit, date))

	return rootCmd
}

func newVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display version number, build commit, date, and runtime information",
		Run: func(cmd *cobra.Command, args []string) {
			displayVersion := version
			displayCommit := commit
			displayDate := date

			if version == "dev" || version == "" {
				displayVersion = "development"
			}
			if commit == "none" || commit == "" {
				displayCommit = "local-build"
			}
			if date == "unknown" || date == "" {
				displayDate = "local-build"
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "vss %s (%s) built on %s\n", displayVersion, displayCommit, displayDate)
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

// loadConfig loads the effective configuration and applies global flag overrides
func loadConfig() (*config.Config, error) {
	cfg, err := config.NewLoader().LoadConfig(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if verbose {
		cfg.Output.Verbose = true
	}
	if noColor {
		cfg.Output.ColorMode = "never"
	}
	ui.SetColorMode(cfg.Output.ColorMode)
	return cfg, nil
}

// newLogger creates the root logger for a command
func newLogger(cfg *config.Config) *logger.Logger {
	return logger.NewWithCallback("vss", func() bool {
		return isVerbose() || cfg.Output.Verbose
	})
}

// Global helpers
func isVerbose() bool {
	return verbose
}

func getOutputFormat(cfg *config.Config) string {
	if outputFmt != "" {
		return outputFmt
	}
	return cfg.Output.DefaultFormat
}

func useColor(cfg *config.Config) bool {
	switch cfg.Output.ColorMode {
	case "never":
		return false
	case "always":
		return true
	default:
		return !ui.IsColorDisabled()
	}
}
