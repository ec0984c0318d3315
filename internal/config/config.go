package config

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	AppName    string          `toml:"app_name"`
	AppID      string          `toml:"app_id"`
	SocketPath string          `toml:"socket_path"`
	LogFile    string          `toml:"log_file"`
	PidFile    string          `toml:"pid_file"`
	Window     WindowConfig    `toml:"window"`
	Evaluator  EvaluatorConfig `toml:"evaluator"`
	Keys       KeysConfig      `toml:"keys"`
	Styling    StylingConfig   `toml:"styling"`
	About      AboutConfig     `toml:"about"`
	Sway       SwayConfig      `toml:"sway"`
	DBus       DBusConfig      `toml:"dbus"`
}

type WindowConfig struct {
	Title         string `toml:"title"`
	Width         int    `toml:"width"`
	Height        int    `toml:"height"`
	Resizable     bool   `toml:"resizable"`
	ShowMenubar   bool   `toml:"show_menubar"`
	DisplayHeight int    `toml:"display_height"`
	ButtonWidth   int    `toml:"button_width"`
	ButtonHeight  int    `toml:"button_height"`
	Spacing       int    `toml:"spacing"`
}

type EvaluatorConfig struct {
	CacheSize int `toml:"cache_size"`
}

type KeysConfig struct {
	Evaluate []string `toml:"evaluate"`
	Clear    []string `toml:"clear"`
	Quit     []string `toml:"quit"`
}

type StylingConfig struct {
	BackgroundColor    string `toml:"background_color"`
	ForegroundColor    string `toml:"foreground_color"`
	DisplayBackground  string `toml:"display_background"`
	DisplayBorderColor string `toml:"display_border_color"`
	ButtonBackground   string `toml:"button_background"`
	ButtonHover        string `toml:"button_hover"`
	OperatorBackground string `toml:"operator_background"`
	AccentColor        string `toml:"accent_color"`
	BorderRadius       int    `toml:"border_radius"`
	FontFamily         string `toml:"font_family"`
	FontSize           int    `toml:"font_size"`
	// CustomCSS is an optional stylesheet path loaded after the generated one.
	CustomCSS          string `toml:"custom_css"`
}

type AboutConfig struct {
	Name       string `toml:"name"`
	Version    string `toml:"version"`
	Comments   string `toml:"comments"`
	Author     string `toml:"author"`
	Email      string `toml:"email"`
	License    string `toml:"license"`
	LicenseURL string `toml:"license_url"`
}

type SwayConfig struct {
	Float  bool `toml:"float"`
	Sticky bool `toml:"sticky"`
}

type DBusConfig struct {
	Enabled bool   `toml:"enabled"`
	Name    string `toml:"name"`
}

// DefaultPath is where the binaries look for the config file.
const DefaultPath = "~/.config/gocalc/config.toml"

var DefaultConfig = Config{
	AppName:    "gocalc",
	AppID:      "com.github.chess10kp.gocalc",
	SocketPath: "/tmp/gocalc_socket",
	LogFile:    "~/.cache/gocalc/gocalc.log",
	PidFile:    "/tmp/gocalc.pid",
	Window: WindowConfig{
		Title:         "GoCalc",
		Width:         235,
		Height:        235,
		Resizable:     false,
		ShowMenubar:   true,
		DisplayHeight: 35,
		ButtonWidth:   40,
		ButtonHeight:  35,
		Spacing:       4,
	},
	Evaluator: EvaluatorConfig{
		CacheSize: 128,
	},
	Keys: KeysConfig{
		Evaluate: []string{"Return", "KP_Enter"},
		Clear:    []string{"Escape", "Delete"},
		Quit:     []string{"Ctrl+Q"},
	},
	Styling: StylingConfig{
		BackgroundColor:    "#0e1419",
		ForegroundColor:    "#ebdbb2",
		DisplayBackground:  "#181825",
		DisplayBorderColor: "#313244",
		ButtonBackground:   "#282838",
		ButtonHover:        "#504945",
		OperatorBackground: "#458588",
		AccentColor:        "#89b4fa",
		BorderRadius:       4,
		FontFamily:         "Iosevka, monospace",
		FontSize:           14,
	},
	About: AboutConfig{
		Name:       "GoCalc",
		Version:    "0.1",
		Comments:   "A simple calculator.",
		Author:     "Andreas Schmid",
		Email:      "andreas.josef.schmid@rwth-aachen.de",
		License:    "GPL (GNU General Public License)",
		LicenseURL: "http://www.gnu.org/licenses/gpl.html",
	},
	Sway: SwayConfig{
		Float:  true,
		Sticky: false,
	},
	DBus: DBusConfig{
		Enabled: true,
		Name:    "com.github.chess10kp.gocalc",
	},
}

// LoadConfig reads a TOML file on top of DefaultConfig. A missing file
// yields the defaults.
func LoadConfig(path string) (*Config, error) {
	expandedPath := expandPath(path)

	if _, err := os.Stat(expandedPath); os.IsNotExist(err) {
		return Default(), nil
	}

	cfg := DefaultConfig
	cfg.Keys = cloneKeys(DefaultConfig.Keys)

	data, err := os.ReadFile(expandedPath)
	if err != nil {
		return nil, err
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", expandedPath, err)
	}

	cfg.expandPaths()
	return &cfg, nil
}

// Default returns a copy of DefaultConfig with its paths expanded.
func Default() *Config {
	cfg := DefaultConfig
	cfg.Keys = cloneKeys(DefaultConfig.Keys)
	cfg.expandPaths()
	return &cfg
}

func LoadAndValidateConfig(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) expandPaths() {
	c.SocketPath = expandPath(c.SocketPath)
	c.LogFile = expandPath(c.LogFile)
	c.PidFile = expandPath(c.PidFile)
	if c.Styling.CustomCSS != "" {
		c.Styling.CustomCSS = expandPath(c.Styling.CustomCSS)
	}
}

func cloneKeys(k KeysConfig) KeysConfig {
	return KeysConfig{
		Evaluate: append([]string(nil), k.Evaluate...),
		Clear:    append([]string(nil), k.Clear...),
		Quit:     append([]string(nil), k.Quit...),
	}
}

func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		usr, err := user.Current()
		if err == nil {
			return filepath.Join(usr.HomeDir, path[1:])
		}
	}
	return path
}

func SaveConfig(cfg *Config, path string) error {
	expandedPath := expandPath(path)

	dir := filepath.Dir(expandedPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(expandedPath, data, 0644)
}

func (c *Config) Validate() error {
	if err := c.validateWindow(); err != nil {
		return err
	}
	if err := c.validateEvaluator(); err != nil {
		return err
	}
	if err := c.validateKeys(); err != nil {
		return err
	}
	if err := c.validateAbout(); err != nil {
		return err
	}
	if err := c.validateDBus(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateWindow() error {
	w := c.Window
	if w.Width < 100 || w.Width > 4000 {
		return fmt.Errorf("invalid window width: %d (must be 100-4000)", w.Width)
	}
	if w.Height < 100 || w.Height > 4000 {
		return fmt.Errorf("invalid window height: %d (must be 100-4000)", w.Height)
	}
	if w.DisplayHeight < 10 || w.DisplayHeight > 200 {
		return fmt.Errorf("invalid display_height: %d (must be 10-200px)", w.DisplayHeight)
	}
	if w.ButtonWidth < 10 || w.ButtonWidth > 400 {
		return fmt.Errorf("invalid button_width: %d (must be 10-400px)", w.ButtonWidth)
	}
	if w.ButtonHeight < 10 || w.ButtonHeight > 400 {
		return fmt.Errorf("invalid button_height: %d (must be 10-400px)", w.ButtonHeight)
	}
	if w.Spacing < 0 || w.Spacing > 50 {
		return fmt.Errorf("invalid spacing: %d (must be 0-50px)", w.Spacing)
	}
	return nil
}

func (c *Config) validateEvaluator() error {
	if c.Evaluator.CacheSize < 1 || c.Evaluator.CacheSize > 100000 {
		return fmt.Errorf("invalid cache_size: %d (must be 1-100000)", c.Evaluator.CacheSize)
	}
	return nil
}

func (c *Config) validateKeys() error {
	if len(c.Keys.Evaluate) == 0 {
		return fmt.Errorf("keys.evaluate must list at least one key")
	}
	seen := make(map[string]string)
	for _, group := range []struct {
		name string
		keys []string
	}{
		{"evaluate", c.Keys.Evaluate},
		{"clear", c.Keys.Clear},
		{"quit", c.Keys.Quit},
	} {
		for _, k := range group.keys {
			if k == "" {
				return fmt.Errorf("empty key name in keys.%s", group.name)
			}
			if other, dup := seen[k]; dup && other != group.name {
				return fmt.Errorf("key %q bound to both %s and %s", k, other, group.name)
			}
			seen[k] = group.name
		}
	}
	return nil
}

func (c *Config) validateAbout() error {
	if c.About.Name == "" {
		return fmt.Errorf("about.name must not be empty")
	}
	if c.About.Version == "" {
		return fmt.Errorf("about.version must not be empty")
	}
	return nil
}

func (c *Config) validateDBus() error {
	if c.DBus.Enabled && c.DBus.Name == "" {
		return fmt.Errorf("dbus enabled but no bus name provided")
	}
	return nil
}

func ValidateConfig(path string) error {
	_, err := LoadAndValidateConfig(path)
	return err
}
