/*
Package config manages the TOML config for tagserve.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/bastiangx/tagserve/internal/utils"
	"github.com/charmbracelet/log"
)

// Config holds the entire config structure
type Config struct {
	Server ServerConfig `toml:"server"`
	Index  IndexConfig  `toml:"index"`
	CLI    CliConfig    `toml:"cli"`
}

// ServerConfig has options for the msgpack IPC server.
type ServerConfig struct {
	MaxLimit  int `toml:"max_limit"`
	MaxQuery  int `toml:"max_query"`
	CacheSize int `toml:"cache_size"`
}

// IndexConfig controls how input documents become tags.
type IndexConfig struct {
	Separators string `toml:"separators"`
	Lowercase  bool   `toml:"lowercase"`
	Format     string `toml:"format"`
}

// CliConfig holds interactive CLI options.
type CliConfig struct {
	DefaultLimit    int  `toml:"default_limit"`
	DefaultNoFilter bool `toml:"default_no_filter"`
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/tagserve
// 2. ~/Library/Application Support/tagserve (macOS)
// 3. dir of the executable
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		return utils.GetExecutableDir()
	}
	for _, dir := range []string{
		filepath.Join(homeDir, ".config", "tagserve"),
		filepath.Join(homeDir, "Library", "Application Support", "tagserve"),
	} {
		if st := utils.CheckDirStatus(dir); st.Writable {
			return dir, nil
		}
	}
	execDir, err := utils.GetExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from the -config flag
// 2. Default path from GetDefaultConfigPath
// 3. Builtin defaults
//
// The returned path is empty when builtin defaults are in use.
func LoadConfigWithPriority(customPath string) (*Config, string, error) {
	if customPath != "" {
		if _, statErr := os.Stat(customPath); statErr == nil {
			cfg, err := LoadConfig(customPath)
			if err == nil {
				log.Debugf("Loaded config from custom path: %s", customPath)
				return cfg, customPath, nil
			}
			log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customPath, err)
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customPath, statErr)
		}
	}

	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}
	cfg, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at %s: %v. Using built-in defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return cfg, defaultPath, nil
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			MaxLimit:  64,
			MaxQuery:  60,
			CacheSize: 1024,
		},
		Index: IndexConfig{
			Separators: " \t,.;:!?\"'()[]{}<>/",
			Lowercase:  true,
			Format:     "auto",
		},
		CLI: CliConfig{
			DefaultLimit:    5,
			DefaultNoFilter: false,
		},
	}
}

// InitConfig loads config from configPath, writing the defaults there first
// when the file is missing.
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)
	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		cfg := DefaultConfig()
		if err := SaveConfig(cfg, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return cfg, nil
	}
	return LoadConfig(configPath)
}

// LoadConfig loads from a TOML file. Keys missing from the file keep their
// defaults; a file that does not decode cleanly is salvaged key by key.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()
	if err := utils.LoadTOMLFile(configPath, cfg); err != nil {
		return tryPartialParse(configPath)
	}
	return cfg.normalize(), nil
}

func tryPartialParse(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	raw, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return cfg, nil
	}

	if section, ok := utils.ExtractSection(raw, "server"); ok {
		extractServerConfig(section, &cfg.Server)
	}
	if section, ok := utils.ExtractSection(raw, "index"); ok {
		extractIndexConfig(section, &cfg.Index)
	}
	if section, ok := utils.ExtractSection(raw, "cli"); ok {
		extractCliConfig(section, &cfg.CLI)
	}
	return cfg.normalize(), nil
}

func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt64(data, "max_limit"); ok {
		server.MaxLimit = val
	}
	if val, ok := utils.ExtractInt64(data, "max_query"); ok {
		server.MaxQuery = val
	}
	if val, ok := utils.ExtractInt64(data, "cache_size"); ok {
		server.CacheSize = val
	}
}

func extractIndexConfig(data map[string]any, index *IndexConfig) {
	if val, ok := utils.ExtractString(data, "separators"); ok {
		index.Separators = val
	}
	if val, ok := utils.ExtractBool(data, "lowercase"); ok {
		index.Lowercase = val
	}
	if val, ok := utils.ExtractString(data, "format"); ok {
		index.Format = val
	}
}

func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.ExtractInt64(data, "default_limit"); ok {
		cli.DefaultLimit = val
	}
	if val, ok := utils.ExtractBool(data, "default_no_filter"); ok {
		cli.DefaultNoFilter = val
	}
}

// normalize resets out-of-range numbers to their defaults.
func (c *Config) normalize() *Config {
	def := DefaultConfig()
	if c.Server.MaxLimit <= 0 {
		log.Warnf("server.max_limit must be positive, got %d. Using %d", c.Server.MaxLimit, def.Server.MaxLimit)
		c.Server.MaxLimit = def.Server.MaxLimit
	}
	if c.Server.MaxQuery <= 0 {
		log.Warnf("server.max_query must be positive, got %d. Using %d", c.Server.MaxQuery, def.Server.MaxQuery)
		c.Server.MaxQuery = def.Server.MaxQuery
	}
	if c.Server.CacheSize < 0 {
		c.Server.CacheSize = 0
	}
	if c.CLI.DefaultLimit <= 0 {
		c.CLI.DefaultLimit = def.CLI.DefaultLimit
	}
	return c
}

// GetActiveConfigPath returns the absolute path of the loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		return "built-in defaults"
	}
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(cfg *Config, configPath string) error {
	return utils.SaveTOMLFile(cfg, configPath)
}

// Update changes the server limits and saves to file. Nil leaves a value as is.
func (c *Config) Update(configPath string, maxLimit, maxQuery, cacheSize *int) error {
	if maxLimit != nil {
		c.Server.MaxLimit = *maxLimit
	}
	if maxQuery != nil {
		c.Server.MaxQuery = *maxQuery
	}
	if cacheSize != nil {
		c.Server.CacheSize = *cacheSize
	}
	c.normalize()
	return SaveConfig(c, configPath)
}
