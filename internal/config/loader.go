package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/yildizm/vss-site/internal/logger"
	"gopkg.in/yaml.v3"
)

// ConfigPaths defines the config file search paths in priority order
var ConfigPaths = []string{
	"./.vss.yaml",               // Project-specific config (highest priority)
	"~/.config/vss/config.yaml", // User config
	"/etc/vss/config.yaml",      // System config (lowest priority)
}

// EnvPrefix prefixes every environment override
const EnvPrefix = "VSS_"

// Loader handles configuration loading with priority merging
type Loader struct {
	configPaths []string
	log         *logger.Logger
}

// NewLoader creates a new config loader
func NewLoader() *Loader {
	return &Loader{
		configPaths: ConfigPaths,
		log:         logger.New("config", nil),
	}
}

// LoadConfig loads configuration from multiple sources with priority order:
// 1. Command line flags (handled by caller)
// 2. Environment variables
// 3. ./.vss.yaml
// 4. ~/.config/vss/config.yaml
// 5. /etc/vss/config.yaml
// 6. Built-in defaults
func (l *Loader) LoadConfig(customPath string) (*Config, error) {
	config := DefaultConfig()

	// If custom path is provided, use only that path
	if customPath != "" {
		if err := validateConfigPath(customPath); err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		if err := l.loadFromFile(config, customPath); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", customPath, err)
		}
	} else {
		// Lowest priority first so later files win
		for i := len(l.configPaths) - 1; i >= 0; i-- {
			expandedPath := expandPath(l.configPaths[i])
			if !fileExists(expandedPath) {
				continue
			}
			if err := l.loadFromFile(config, expandedPath); err != nil {
				l.log.WarnWithFields("skipping config file", []logger.Field{
					logger.F("path", expandedPath), logger.Error(err),
				})
			}
		}
	}

	if err := l.applyEnvOverrides(config); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// loadFromFile decodes a YAML file onto config. yaml.v3 only assigns keys
// present in the document, so decoding onto the current values merges them.
func (l *Loader) loadFromFile(config *Config, path string) error {
	// #nosec G304 - path is validated by validateConfigPath() or comes from ConfigPaths
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	merged := *config
	if err := yaml.Unmarshal(data, &merged); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	*config = merged
	return nil
}

// envBindings maps every supported environment variable to a setter on config
func envBindings(config *Config) map[string]func(string) error {
	return map[string]func(string) error{
		// Site Config
		"VSS_SITE_CONTENT_PATH": func(v string) error { config.Site.ContentPath = v; return nil },
		"VSS_SITE_BASE_PATH":    func(v string) error { config.Site.BasePath = v; return nil },
		"VSS_SITE_WATCH":        func(v string) error { return parseBool(v, &config.Site.Watch) },

		// Server Config
		"VSS_SERVER_ADDRESS":          func(v string) error { config.Server.Address = v; return nil },
		"VSS_SERVER_READ_TIMEOUT":     func(v string) error { return parseDuration(v, &config.Server.ReadTimeout) },
		"VSS_SERVER_WRITE_TIMEOUT":    func(v string) error { return parseDuration(v, &config.Server.WriteTimeout) },
		"VSS_SERVER_SHUTDOWN_TIMEOUT": func(v string) error { return parseDuration(v, &config.Server.ShutdownTimeout) },
		"VSS_SERVER_REQUEST_TIMEOUT":  func(v string) error { return parseDuration(v, &config.Server.RequestTimeout) },

		// Contact Config
		"VSS_CONTACT_MODE":             func(v string) error { config.Contact.Mode = v; return nil },
		"VSS_CONTACT_ENDPOINT":         func(v string) error { config.Contact.Endpoint = v; return nil },
		"VSS_CONTACT_SIMULATED_DELAY":  func(v string) error { return parseDuration(v, &config.Contact.SimulatedDelay) },
		"VSS_CONTACT_TIMEOUT":          func(v string) error { return parseDuration(v, &config.Contact.Timeout) },
		"VSS_CONTACT_CLEAR_ON_SUCCESS": func(v string) error { return parseBool(v, &config.Contact.ClearOnSuccess) },

		// Disclosure Config
		"VSS_DISCLOSURE_SCOPE": func(v string) error { config.Disclosure.Scope = v; return nil },

		// UI Config
		"VSS_UI_THEME":         func(v string) error { config.UI.Theme = v; return nil },
		"VSS_UI_SCROLL_OFFSET": func(v string) error { return parseInt(v, &config.UI.ScrollOffset) },
		"VSS_UI_SMOOTH_SCROLL": func(v string) error { return parseBool(v, &config.UI.SmoothScroll) },
		"VSS_UI_SCROLL_FRAME":  func(v string) error { return parseDuration(v, &config.UI.ScrollFrame) },
		"VSS_UI_NARROW_WIDTH":  func(v string) error { return parseInt(v, &config.UI.NarrowWidth) },

		// Output Config
		"VSS_OUTPUT_DEFAULT_FORMAT": func(v string) error { config.Output.DefaultFormat = v; return nil },
		"VSS_OUTPUT_COLOR_MODE":     func(v string) error { config.Output.ColorMode = v; return nil },
		"VSS_OUTPUT_VERBOSE":        func(v string) error { return parseBool(v, &config.Output.Verbose) },
	}
}

// EnvVars returns the supported environment variable names, sorted
func EnvVars() []string {
	bindings := envBindings(&Config{})
	names := make([]string, 0, len(bindings))
	for name := range bindings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// applyEnvOverrides applies environment variable overrides to the config
func (l *Loader) applyEnvOverrides(config *Config) error {
	for envVar, setter := range envBindings(config) {
		if value := os.Getenv(envVar); value != "" {
			if err := setter(value); err != nil {
				return fmt.Errorf("invalid value for %s: %w", envVar, err)
			}
		}
	}

	return nil
}

// GetConfigPaths returns the list of configuration file paths that will be searched
func GetConfigPaths() []string {
	paths := make([]string, 0, len(ConfigPaths))
	for _, path := range ConfigPaths {
		paths = append(paths, expandPath(path))
	}
	return paths
}

// FindConfigFile finds the first existing config file in the search paths
func FindConfigFile() (string, bool) {
	for _, path := range ConfigPaths {
		expandedPath := expandPath(path)
		if fileExists(expandedPath) {
			return expandedPath, true
		}
	}
	return "", false
}

// Helper functions

// validateConfigPath validates that a config path is safe to read
func validateConfigPath(path string) error {
	cleanPath := filepath.Clean(path)

	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path traversal not allowed")
	}

	ext := strings.ToLower(filepath.Ext(cleanPath))
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("config file must have .yaml or .yml extension")
	}

	absPath, err := filepath.Abs(cleanPath)
	if err != nil {
		return fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	if strings.HasPrefix(absPath, "/proc/") || strings.HasPrefix(absPath, "/sys/") {
		return fmt.Errorf("access to system files not allowed")
	}

	return nil
}

// expandPath expands ~ to home directory
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

// fileExists checks if a file exists
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Type conversion helpers

func parseInt(s string, dst *int) error {
	val, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseBool(s string, dst *bool) error {
	val, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseDuration(s string, dst *time.Duration) error {
	val, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}
