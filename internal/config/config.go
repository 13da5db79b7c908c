package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/rafaelmazzoni25-sys/Coletor-de-Arquivos/internal/fsutil"
)

// Config holds the persisted user preferences
type Config struct {
	// Copy settings
	Destination string `mapstructure:"destination"` // destination folder for copies
	Overwrite   bool   `mapstructure:"overwrite"`   // overwrite existing files at the destination
	DryRun      bool   `mapstructure:"dry_run"`     // simulate copies without touching the filesystem

	// Scan settings
	Roots          []string `mapstructure:"roots"`           // source roots to search
	Extensions     string   `mapstructure:"extensions"`      // raw extension text, e.g. "rar, zip"
	FollowSymlinks bool     `mapstructure:"follow_symlinks"` // follow symlinked directories during the walk
	MaxSize        string   `mapstructure:"max_size"`        // skip files larger than this ("650K", "1G"); empty = unlimited

	// Log settings
	LogCapacity int `mapstructure:"log_capacity"` // bounded log ring size
}

// LoadConfig loads preferences from the config file and environment
// variables, applying defaults. A missing or unreadable config file is not
// an error: the defaults apply.
func LoadConfig() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("destination", "")
	v.SetDefault("overwrite", false)
	v.SetDefault("dry_run", false)
	v.SetDefault("roots", []string{})
	v.SetDefault("extensions", ".rar")
	v.SetDefault("follow_symlinks", false)
	v.SetDefault("max_size", "")
	v.SetDefault("log_capacity", 1000)

	// Read environment variables
	v.SetEnvPrefix("COLETOR")
	v.AutomaticEnv()

	// Read the preference file when present; failures fall back to defaults
	if path, err := DefaultPath(); err == nil {
		v.SetConfigFile(path)
		_ = v.ReadInConfig()
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save persists the preferences to the config file, creating the directory
// when needed
func (c *Config) Save() error {
	path, err := DefaultPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	v := viper.New()
	v.Set("destination", c.Destination)
	v.Set("overwrite", c.Overwrite)
	v.Set("dry_run", c.DryRun)
	v.Set("roots", c.Roots)
	v.Set("extensions", c.Extensions)
	v.Set("follow_symlinks", c.FollowSymlinks)
	v.Set("max_size", c.MaxSize)
	v.Set("log_capacity", c.LogCapacity)

	return v.WriteConfigAs(path)
}

// DefaultPath returns the preference file location under the user config dir
func DefaultPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "coletor", "config.yaml"), nil
}

// MaxFileSize returns the parsed byte value of MaxSize; 0 means unlimited
func (c *Config) MaxFileSize() int64 {
	if c.MaxSize == "" {
		return 0
	}
	return fsutil.ParseSize(c.MaxSize)
}
