package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/yildizm/vss-site/internal/config"
	"github.com/yildizm/vss-site/internal/emoji"
	"gopkg.in/yaml.v3"
)

// newConfigCommand creates the config command with subcommands
func newConfigCommand() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage vss configuration",
		Long: `Manage vss configuration files and settings.

The config command provides subcommands for initializing, viewing,
validating, and managing configuration files.`,
	}

	// Add subcommands
	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigShowCommand())
	configCmd.AddCommand(newConfigValidateCommand())
	configCmd.AddCommand(newConfigPathCommand())
	configCmd.AddCommand(newConfigEnvCommand())

	return configCmd
}

// newConfigInitCommand creates the config init subcommand
func newConfigInitCommand() *cobra.Command {
	var (
		outputPath string
		minimal    bool
		force      bool
	)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new configuration file",
		Long: `Initialize a new vss configuration file with default values.

By default, creates a full configuration file with all options and comments.
Use --minimal for a compact configuration with only essential settings.`,
		Example: `  # Create full config in current directory
  vss config init

  # Create minimal config
  vss config init --minimal

  # Create config at specific path
  vss config init --output ~/.config/vss/config.yaml

  # Overwrite existing config
  vss config init --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Determine output path
			if outputPath == "" {
				outputPath = ".vss.yaml"
			}

			// Check if file exists and not forcing
			if !force && fileExists(outputPath) {
				return fmt.Errorf("config file already exists at %s (use --force to overwrite)", outputPath)
			}

			// Create directory if needed
			dir := filepath.Dir(outputPath)
			if dir != "." && dir != "/" {
				if err := os.MkdirAll(dir, 0o750); err != nil {
					return fmt.Errorf("failed to create directory %s: %w", dir, err)
				}
			}

			// Get config content
			var content string
			if minimal {
				content = config.MinimalSampleConfig()
			} else {
				content = config.SampleConfig()
			}

			// Write config file
			if err := os.WriteFile(outputPath, []byte(content), 0o600); err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s Configuration file created at: %s\n", emoji.GetEmoji("success"), outputPath)
			if minimal {
				fmt.Fprintf(out, "%s Created minimal configuration with essential settings\n", emoji.GetEmoji("file"))
			} else {
				fmt.Fprintf(out, "%s Created full configuration with all options and documentation\n", emoji.GetEmoji("file"))
			}

			return nil
		},
	}

	initCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output path for config file (default: .vss.yaml)")
	initCmd.Flags().BoolVarP(&minimal, "minimal", "m", false, "create minimal configuration")
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite existing config file")

	return initCmd
}

// newConfigShowCommand creates the config show subcommand
func newConfigShowCommand() *cobra.Command {
	var (
		format  string
		section string
	)

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Long: `Display the current effective configuration after loading from all sources.

Shows the merged configuration from all sources including defaults,
config files, and environment variable overrides. Use --section to show
one of: site, server, contact, disclosure, ui, output.`,
		Example: `  # Show config in YAML format
  vss config show

  # Show the contact settings as JSON
  vss config show --section contact --format json

  # Show config from specific file
  vss config show --config /path/to/config.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewLoader().LoadConfig(cfgFile)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			value, err := configSection(cfg, section)
			if err != nil {
				return err
			}
			return printConfig(cmd.OutOrStdout(), value, format)
		},
	}

	showCmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format (yaml, json)")
	showCmd.Flags().StringVarP(&section, "section", "s", "", "show a single section")

	return showCmd
}

// configSection returns the named section of cfg, or cfg itself for ""
func configSection(cfg *config.Config, name string) (interface{}, error) {
	sections := map[string]interface{}{
		"":           cfg,
		"site":       cfg.Site,
		"server":     cfg.Server,
		"contact":    cfg.Contact,
		"disclosure": cfg.Disclosure,
		"ui":         cfg.UI,
		"output":     cfg.Output,
	}
	value, ok := sections[name]
	if !ok {
		return nil, fmt.Errorf("unknown config section: %s", name)
	}
	return value, nil
}

// printConfig writes value as YAML or JSON
func printConfig(w io.Writer, value interface{}, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(value, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal config to JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "yaml":
		data, err := yaml.Marshal(value)
		if err != nil {
			return fmt.Errorf("failed to marshal config to YAML: %w", err)
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("unsupported format: %s (use json or yaml)", format)
	}
}

// newConfigEnvCommand creates the config env subcommand
func newConfigEnvCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "List supported environment variables",
		Long: `List every environment variable that overrides a configuration value,
with its current value when set.`,
		Example: `  # List overrides
  vss config env`,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			for _, name := range config.EnvVars() {
				if value, ok := os.LookupEnv(name); ok && value != "" {
					fmt.Fprintf(out, "%s=%s\n", name, value)
				} else {
					fmt.Fprintf(out, "%s (unset)\n", name)
				}
			}
		},
	}
}

// newConfigValidateCommand creates the config validate subcommand
func newConfigValidateCommand() *cobra.Command {
	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validate a vss configuration file for syntax and semantic errors.

Checks the configuration file for:
- Valid YAML syntax
- Required fields
- Valid values for enums
- Proper data types`,
		Example: `  # Validate current config
  vss config validate

  # Validate specific config file
  vss config validate --config /path/to/config.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Load configuration
			out := cmd.OutOrStdout()
			loader := config.NewLoader()
			cfg, err := loader.LoadConfig(cfgFile)
			if err != nil {
				fmt.Fprintf(out, "%s Configuration validation failed:\n", emoji.GetEmoji("error"))
				fmt.Fprintf(out, "   %v\n", err)
				return err
			}

			// If we get here, validation passed
			fmt.Fprintf(out, "%s Configuration is valid\n", emoji.GetEmoji("success"))

			// Show some basic info about the config
			fmt.Fprintf(out, "%s Configuration summary:\n", emoji.GetEmoji("stats"))
			fmt.Fprintf(out, "   Version: %s\n", cfg.Version)
			fmt.Fprintf(out, "   Base Path: %s\n", cfg.Site.BasePath)
			fmt.Fprintf(out, "   Contact Mode: %s\n", cfg.Contact.Mode)
			fmt.Fprintf(out, "   Disclosure Scope: %s\n", cfg.Disclosure.Scope)
			fmt.Fprintf(out, "   Output Format: %s\n", cfg.Output.DefaultFormat)

			return nil
		},
	}

	return validateCmd
}

// newConfigPathCommand creates the config path subcommand
func newConfigPathCommand() *cobra.Command {
	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Show configuration file search paths",
		Long: `Display the list of paths vss searches for configuration files.

Shows the search order and indicates which files exist.`,
		Example: `  # Show config search paths
  vss config path`,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s Configuration file search paths (in priority order):\n", emoji.GetEmoji("folder"))
			fmt.Fprintln(out)

			paths := config.GetConfigPaths()
			for i, path := range paths {
				priority := []string{"Highest", "Medium", "Lowest"}
				exists := ""
				if fileExists(path) {
					exists = " " + emoji.GetEmoji("success") + " (exists)"
				} else {
					exists = " " + emoji.GetEmoji("error") + " (not found)"
				}

				fmt.Fprintf(out, "  %d. %s%s\n", i+1, path, exists)
				if i < len(priority) {
					fmt.Fprintf(out, "     Priority: %s\n", priority[i])
				}
				fmt.Fprintln(out)
			}

			// Show current config file being used
			if currentConfig, found := config.FindConfigFile(); found {
				fmt.Fprintf(out, "%s Current config file: %s\n", emoji.GetEmoji("target"), currentConfig)
			} else {
				fmt.Fprintf(out, "%s No config file found, using defaults\n", emoji.GetEmoji("file"))
			}

			fmt.Fprintln(out)
			fmt.Fprintf(out, "%s Environment variables with %s prefix will override file settings\n", emoji.GetEmoji("tip"), config.EnvPrefix)
		},
	}

	return pathCmd
}

// Helper function to check if file exists
func fileExists(filename string) bool {
	_, err := os.Stat(filename)
	return err == nil
}
