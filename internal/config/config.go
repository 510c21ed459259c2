package config

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// Config holds the complete application configuration
type Config struct {
	Version    string           `yaml:"version" json:"version"`
	Site       SiteConfig       `yaml:"site" json:"site"`
	Server     ServerConfig     `yaml:"server" json:"server"`
	Contact    ContactConfig    `yaml:"contact" json:"contact"`
	Disclosure DisclosureConfig `yaml:"disclosure" json:"disclosure"`
	UI         UIConfig         `yaml:"ui" json:"ui"`
	Output     OutputConfig     `yaml:"output" json:"output"`
}

// SiteConfig configures where page content comes from and where it is served
type SiteConfig struct {
	ContentPath string `yaml:"content_path" json:"content_path"` // YAML content file, empty for built-in
	BasePath    string `yaml:"base_path" json:"base_path"`       // deployment base path, e.g. /vss-site/
	Watch       bool   `yaml:"watch" json:"watch"`               // reload content on change
}

// ServerConfig configures the HTTP server
type ServerConfig struct {
	Address         string        `yaml:"address" json:"address"`
	ReadTimeout     time.Duration `yaml:"read_timeout" json:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout" json:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" json:"shutdown_timeout"`
	RequestTimeout  time.Duration `yaml:"request_timeout" json:"request_timeout"`
}

// ContactConfig configures how contact forms are submitted
type ContactConfig struct {
	Mode           string        `yaml:"mode" json:"mode"`                       // simulated|http
	Endpoint       string        `yaml:"endpoint" json:"endpoint"`               // JSON endpoint for http mode
	SimulatedDelay time.Duration `yaml:"simulated_delay" json:"simulated_delay"` // simulated round-trip
	Timeout        time.Duration `yaml:"timeout" json:"timeout"`                 // per-submission deadline
	ClearOnSuccess bool          `yaml:"clear_on_success" json:"clear_on_success"`
}

// DisclosureConfig configures the accordion panels
type DisclosureConfig struct {
	Scope string `yaml:"scope" json:"scope"` // shared|per_list
}

// UIConfig configures the terminal browser
type UIConfig struct {
	Theme        string        `yaml:"theme" json:"theme"`                 // vss|high-contrast|minimal
	ScrollOffset int           `yaml:"scroll_offset" json:"scroll_offset"` // lines hidden under the nav bar
	SmoothScroll bool          `yaml:"smooth_scroll" json:"smooth_scroll"`
	ScrollFrame  time.Duration `yaml:"scroll_frame" json:"scroll_frame"` // smooth scroll tick interval
	NarrowWidth  int           `yaml:"narrow_width" json:"narrow_width"` // below this the nav collapses to a menu
}

// OutputConfig configures output formatting and display
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"` // json|text|markdown|csv
	ColorMode     string `yaml:"color_mode" json:"color_mode"`         // auto|always|never
	Verbose       bool   `yaml:"verbose" json:"verbose"`               // default verbosity
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0",
		Site: SiteConfig{
			ContentPath: "",
			BasePath:    "/vss-site/",
			Watch:       false,
		},
		Server: ServerConfig{
			Address:         "127.0.0.1:8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 5 * time.Second,
			RequestTimeout:  30 * time.Second,
		},
		Contact: ContactConfig{
			Mode:           "simulated",
			Endpoint:       "http://127.0.0.1:8080/vss-site/api/contact",
			SimulatedDelay: 800 * time.Millisecond,
			Timeout:        10 * time.Second,
		},
		Disclosure: DisclosureConfig{
			Scope: "shared",
		},
		UI: UIConfig{
			Theme:        "vss",
			ScrollOffset: 2,
			SmoothScroll: true,
			ScrollFrame:  16 * time.Millisecond,
			NarrowWidth:  100,
		},
		Output: OutputConfig{
			DefaultFormat: "text",
			ColorMode:     "auto",
			Verbose:       false,
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.validateSiteConfig(); err != nil {
		return err
	}
	if err := c.validateServerConfig(); err != nil {
		return err
	}
	if err := c.validateContactConfig(); err != nil {
		return err
	}
	if err := c.validateDisclosureConfig(); err != nil {
		return err
	}
	if err := c.validateUIConfig(); err != nil {
		return err
	}
	if err := c.validateOutputConfig(); err != nil {
		return err
	}
	return nil
}

// validateSiteConfig validates site-related configuration
func (c *Config) validateSiteConfig() error {
	if !strings.HasPrefix(c.Site.BasePath, "/") || !strings.HasSuffix(c.Site.BasePath, "/") {
		return fmt.Errorf("base_path must start and end with '/': %q", c.Site.BasePath)
	}
	if i := strings.IndexFunc(c.Site.BasePath, invalidBasePathRune); i >= 0 {
		return fmt.Errorf("base_path must not contain %q: %q", c.Site.BasePath[i], c.Site.BasePath)
	}
	if c.Site.Watch && c.Site.ContentPath == "" {
		return fmt.Errorf("watch requires content_path to be set")
	}
	return nil
}

// invalidBasePathRune reports runes the router would read as a pattern or that
// cannot appear unescaped in a URL path
func invalidBasePathRune(r rune) bool {
	return r == '{' || r == '}' || r == '*' || unicode.IsSpace(r)
}

// validateServerConfig validates server-related configuration
func (c *Config) validateServerConfig() error {
	if c.Server.Address == "" {
		return fmt.Errorf("server address must not be empty")
	}
	if c.Server.ReadTimeout < 0 {
		return fmt.Errorf("read_timeout must be non-negative")
	}
	if c.Server.WriteTimeout < 0 {
		return fmt.Errorf("write_timeout must be non-negative")
	}
	if c.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("shutdown_timeout must be non-negative")
	}
	if c.Server.RequestTimeout < 0 {
		return fmt.Errorf("request_timeout must be non-negative")
	}
	return nil
}

// validateContactConfig validates contact-related configuration
func (c *Config) validateContactConfig() error {
	validModes := map[string]bool{
		"simulated": true,
		"http":      true,
	}
	if !validModes[c.Contact.Mode] {
		return fmt.Errorf("invalid contact mode: %s (must be one of: simulated, http)", c.Contact.Mode)
	}
	if c.Contact.Mode == "http" && c.Contact.Endpoint == "" {
		return fmt.Errorf("contact endpoint is required in http mode")
	}
	if c.Contact.SimulatedDelay < 0 {
		return fmt.Errorf("simulated_delay must be non-negative")
	}
	if c.Contact.Timeout < 0 {
		return fmt.Errorf("contact timeout must be non-negative")
	}
	return nil
}

// validateDisclosureConfig validates accordion configuration
func (c *Config) validateDisclosureConfig() error {
	if c.Disclosure.Scope != "" && c.Disclosure.Scope != "shared" && c.Disclosure.Scope != "per_list" {
		return fmt.Errorf("invalid disclosure scope: %s (must be one of: shared, per_list)", c.Disclosure.Scope)
	}
	return nil
}

// validateUIConfig validates terminal browser configuration
func (c *Config) validateUIConfig() error {
	if c.UI.Theme != "" {
		validThemes := map[string]bool{
			"vss":           true,
			"high-contrast": true,
			"minimal":       true,
		}
		if !validThemes[c.UI.Theme] {
			return fmt.Errorf("invalid theme: %s (must be one of: vss, high-contrast, minimal)", c.UI.Theme)
		}
	}
	if c.UI.ScrollOffset < 0 {
		return fmt.Errorf("scroll_offset must be non-negative")
	}
	if c.UI.ScrollFrame <= 0 {
		return fmt.Errorf("scroll_frame must be greater than 0")
	}
	if c.UI.NarrowWidth < 0 {
		return fmt.Errorf("narrow_width must be non-negative")
	}
	return nil
}

// validateOutputConfig validates output-related configuration
func (c *Config) validateOutputConfig() error {
	if c.Output.DefaultFormat != "" {
		validFormats := map[string]bool{
			"json":     true,
			"text":     true,
			"markdown": true,
			"csv":      true,
		}
		if !validFormats[c.Output.DefaultFormat] {
			return fmt.Errorf("invalid output format: %s (must be one of: json, text, markdown, csv)", c.Output.DefaultFormat)
		}
	}
	if c.Output.ColorMode != "" {
		validColorModes := map[string]bool{
			"auto":   true,
			"always": true,
			"never":  true,
		}
		if !validColorModes[c.Output.ColorMode] {
			return fmt.Errorf("invalid color mode: %s (must be one of: auto, always, never)", c.Output.ColorMode)
		}
	}
	return nil
}
