// Package config provides configuration management for vcprompt.
//
// Settings come from defaults, an optional TOML file and VCP_* environment
// variables, in increasing order of precedence. The result is loaded once at
// startup and handed to the formatter and runner.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "VCP"

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Shells whose prompts need escape sequences marked as zero-width.
const (
	ShellBash = "bash"
	ShellZsh  = "zsh"
)

// Validation errors.
var (
	ErrInvalidColorMode = errors.New("invalid color mode")
	ErrInvalidShell     = errors.New("invalid shell")
)

// Config holds all configuration for vcprompt.
type Config struct {
	Format   string         `mapstructure:"format"`
	Prefix   string         `mapstructure:"prefix"`
	Suffix   string         `mapstructure:"suffix"`
	Color    string         `mapstructure:"color"`
	Shell    string         `mapstructure:"shell"`
	Template TemplateConfig `mapstructure:"template"`
	Colors   ColorConfig    `mapstructure:"colors"`
	VCS      VCSConfig      `mapstructure:"vcs"`
}

// TemplateConfig holds the per-segment templates. {value} is replaced by
// the segment's value; the name template also understands {symbol} and {name}.
type TemplateConfig struct {
	Name       string `mapstructure:"name"`
	Branch     string `mapstructure:"branch"`
	Operations string `mapstructure:"operations"`
	Ahead      string `mapstructure:"ahead"`
	Behind     string `mapstructure:"behind"`
	Conflicts  string `mapstructure:"conflicts"`
	Staged     string `mapstructure:"staged"`
	Changed    string `mapstructure:"changed"`
	Untracked  string `mapstructure:"untracked"`
	Clean      string `mapstructure:"clean"`
	Commit     string `mapstructure:"commit"`
}

// ColorConfig holds the per-segment colors as ANSI numbers or hex strings.
// An empty color leaves the segment unstyled.
type ColorConfig struct {
	Name       string `mapstructure:"name"`
	Branch     string `mapstructure:"branch"`
	Operations string `mapstructure:"operations"`
	Ahead      string `mapstructure:"ahead"`
	Behind     string `mapstructure:"behind"`
	Conflicts  string `mapstructure:"conflicts"`
	Staged     string `mapstructure:"staged"`
	Changed    string `mapstructure:"changed"`
	Untracked  string `mapstructure:"untracked"`
	Clean      string `mapstructure:"clean"`
	Commit     string `mapstructure:"commit"`
}

// VCSConfig holds the executables used for status commands.
type VCSConfig struct {
	GitBinary string `mapstructure:"git_binary"`
	HgBinary  string `mapstructure:"hg_binary"`
}

// DefaultFormat is the outer template used when none is configured.
const DefaultFormat = "{name}{branch}{operations}{ahead}{behind}{conflicts}{staged}{changed}{untracked}{clean}"

// DefaultTemplateConfig returns the default segment templates.
func DefaultTemplateConfig() TemplateConfig {
	return TemplateConfig{
		Name:       "{symbol}",
		Branch:     "{value}",
		Operations: "|{value}",
		Ahead:      "↑{value}",
		Behind:     "↓{value}",
		Conflicts:  "✖{value}",
		Staged:     "●{value}",
		Changed:    "✚{value}",
		Untracked:  "…",
		Clean:      "✔",
		Commit:     "@{value}",
	}
}

// DefaultColorConfig returns the default segment colors.
func DefaultColorConfig() ColorConfig {
	return ColorConfig{
		Name:       "",
		Branch:     "5",
		Operations: "3",
		Ahead:      "6",
		Behind:     "6",
		Conflicts:  "1",
		Staged:     "2",
		Changed:    "3",
		Untracked:  "4",
		Clean:      "2",
		Commit:     "8",
	}
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Format:   DefaultFormat,
		Prefix:   " ",
		Suffix:   "",
		Color:    ColorAlways,
		Shell:    "",
		Template: DefaultTemplateConfig(),
		Colors:   DefaultColorConfig(),
		VCS: VCSConfig{
			GitBinary: "git",
			HgBinary:  "hg",
		},
	}
}

// Load reads the configuration. An empty path means the default location,
// which is optional; an explicit path must exist.
func Load(path string) (*Config, error) {
	v := newViper()

	explicit := path != ""
	if !explicit {
		if p, err := GetConfigPath(); err == nil {
			path = p
		}
	}

	if path != "" {
		_, statErr := os.Stat(path)
		switch {
		case statErr == nil:
			v.SetConfigFile(path)
			v.SetConfigType("toml")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		case explicit:
			return nil, fmt.Errorf("failed to read config: %w", statErr)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks values that cannot be expressed by the types alone.
func (c *Config) Validate() error {
	c.Color = strings.ToLower(c.Color)
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%w %q: want auto, always or never", ErrInvalidColorMode, c.Color)
	}

	c.Shell = strings.ToLower(c.Shell)
	switch c.Shell {
	case "", ShellBash, ShellZsh:
	default:
		return fmt.Errorf("%w %q: want bash, zsh or empty", ErrInvalidShell, c.Shell)
	}
	return nil
}

// Save writes the configuration as TOML to path, creating its directory.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	for key, value := range cfg.Settings() {
		v.Set(key, value)
	}

	return v.WriteConfigAs(path)
}

// Settings returns the configuration as flat viper keys.
func (c *Config) Settings() map[string]string {
	return map[string]string{
		"format":              c.Format,
		"prefix":              c.Prefix,
		"suffix":              c.Suffix,
		"color":               c.Color,
		"shell":               c.Shell,
		"template.name":       c.Template.Name,
		"template.branch":     c.Template.Branch,
		"template.operations": c.Template.Operations,
		"template.ahead":      c.Template.Ahead,
		"template.behind":     c.Template.Behind,
		"template.conflicts":  c.Template.Conflicts,
		"template.staged":     c.Template.Staged,
		"template.changed":    c.Template.Changed,
		"template.untracked":  c.Template.Untracked,
		"template.clean":      c.Template.Clean,
		"template.commit":     c.Template.Commit,
		"colors.name":         c.Colors.Name,
		"colors.branch":       c.Colors.Branch,
		"colors.operations":   c.Colors.Operations,
		"colors.ahead":        c.Colors.Ahead,
		"colors.behind":       c.Colors.Behind,
		"colors.conflicts":    c.Colors.Conflicts,
		"colors.staged":       c.Colors.Staged,
		"colors.changed":      c.Colors.Changed,
		"colors.untracked":    c.Colors.Untracked,
		"colors.clean":        c.Colors.Clean,
		"colors.commit":       c.Colors.Commit,
		"vcs.git_binary":      c.VCS.GitBinary,
		"vcs.hg_binary":       c.VCS.HgBinary,
	}
}

// GetConfigPath returns the path to the default config file.
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "vcprompt", "config.toml"), nil
}

// EnvName returns the environment variable overriding a viper key,
// e.g. "template.branch" -> "VCP_TEMPLATE_BRANCH".
func EnvName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(envReplacer.Replace(key))
}

var envReplacer = strings.NewReplacer(".", "_")

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(envReplacer)
	v.AllowEmptyEnv(true)
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// setDefaults registers every key so AutomaticEnv can override it.
func setDefaults(v *viper.Viper) {
	for key, value := range DefaultConfig().Settings() {
		v.SetDefault(key, value)
	}
}
