package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/tliron/commonlog"

	"github.com/edopro-tools/cardsmith/internal/artwork"
	"github.com/edopro-tools/cardsmith/internal/card"
)

var log = commonlog.GetLogger("cardsmith.config")

// EnvPrefix prefixes environment overrides, e.g. CARDSMITH_PICS_DIR.
const EnvPrefix = "CARDSMITH"

// Config represents the application configuration
type Config struct {
	Database     string   `toml:"database" mapstructure:"database"`
	ScriptDir    string   `toml:"script_dir" mapstructure:"script_dir"`
	PicsDir      string   `toml:"pics_dir" mapstructure:"pics_dir"`
	TemplatesDir string   `toml:"templates_dir,omitempty" mapstructure:"templates_dir"`
	IDStart      int64    `toml:"id_start" mapstructure:"id_start"`
	Download     Download `toml:"download" mapstructure:"download"`
}

// Download tunes artwork fetching.
type Download struct {
	Attempts  int    `toml:"attempts" mapstructure:"attempts"`
	Timeout   string `toml:"timeout" mapstructure:"timeout"`
	UserAgent string `toml:"user_agent" mapstructure:"user_agent"`
}

// TimeoutDuration parses Timeout.
func (d Download) TimeoutDuration() (time.Duration, error) {
	t, err := time.ParseDuration(d.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid download.timeout %q: %w", d.Timeout, err)
	}
	return t, nil
}

// Flags that override config keys when set on the command line.
var flagKeys = map[string]string{
	"database":      "db",
	"script_dir":    "script-dir",
	"pics_dir":      "pics-dir",
	"templates_dir": "templates-dir",
}

// GetXDGDataHome returns XDG_DATA_HOME or default path
func GetXDGDataHome() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return xdgData
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".local", "share")
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config")
}

// GetConfigFilePath returns the path to the config file
func GetConfigFilePath() string {
	return filepath.Join(GetXDGConfigHome(), "cardsmith", "config.toml")
}

// GetDataDir returns the default root for the database, scripts and pics.
// It mirrors an EDOPro install: expansions/, script/ and pics/.
func GetDataDir() string {
	return filepath.Join(GetXDGDataHome(), "cardsmith")
}

// Default returns the built-in configuration.
func Default() *Config {
	root := GetDataDir()
	return &Config{
		Database:  filepath.Join(root, "expansions", "cards.cdb"),
		ScriptDir: filepath.Join(root, "script"),
		PicsDir:   filepath.Join(root, "pics"),
		IDStart:   card.DefaultStart,
		Download: Download{
			Attempts:  artwork.DefaultAttempts,
			Timeout:   artwork.DefaultTimeout.String(),
			UserAgent: artwork.DefaultUserAgent,
		},
	}
}

// Load reads the config file, then CARDSMITH_* environment variables, then
// any flags in flags that were set. An empty path means the XDG location.
// A config file that does not exist yet is written with defaults first.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	if path == "" {
		path = GetConfigFilePath()
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := WriteDefault(path); err != nil {
			return nil, err
		}
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	def := Default()
	v.SetDefault("database", def.Database)
	v.SetDefault("script_dir", def.ScriptDir)
	v.SetDefault("pics_dir", def.PicsDir)
	v.SetDefault("templates_dir", def.TemplatesDir)
	v.SetDefault("id_start", def.IDStart)
	v.SetDefault("download.attempts", def.Download.Attempts)
	v.SetDefault("download.timeout", def.Download.Timeout)
	v.SetDefault("download.user_agent", def.Download.UserAgent)

	if flags != nil {
		for key, name := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("error binding flag --%s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks values that would only fail later, mid-operation.
func (c *Config) Validate() error {
	if c.Database == "" {
		return errors.New("database path is empty")
	}
	if c.IDStart <= 0 {
		return fmt.Errorf("id_start must be positive, got %d", c.IDStart)
	}
	if c.Download.Attempts < 1 {
		return fmt.Errorf("download.attempts must be at least 1, got %d", c.Download.Attempts)
	}
	if _, err := c.Download.TimeoutDuration(); err != nil {
		return err
	}
	return nil
}

// WriteDefault writes the built-in configuration to path.
func WriteDefault(path string) error {
	return Save(path, Default())
}

// Save encodes cfg as TOML at path, creating the directory.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating config file: %w", err)
	}
	defer file.Close()

	if err := toml.NewEncoder(file).Encode(cfg); err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}
	log.Infof("wrote config file: %s", path)
	return nil
}
