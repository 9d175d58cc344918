package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

type Config struct {
	DBPath   string `mapstructure:"db_path"`
	Owner    string `mapstructure:"owner"`
	RepoName string `mapstructure:"repo_name"`
	Theme    string `mapstructure:"theme"`
}

var (
	configDir  string
	configFile string
)

func init() {
	base, err := os.UserConfigDir()
	if err != nil {
		home, herr := os.UserHomeDir()
		if herr != nil {
			panic(fmt.Sprintf("failed to locate config directory: %v", err))
		}
		base = filepath.Join(home, ".config")
	}

	configDir = filepath.Join(base, "taskdeck")
	configFile = filepath.Join(configDir, "config.yaml")
}

func GetConfigDir() string {
	return configDir
}

func GetConfigFile() string {
	return configFile
}

func ConfigExists() bool {
	_, err := os.Stat(configFile)
	return err == nil
}

func EnsureConfigDir() error {
	return os.MkdirAll(configDir, 0755)
}

// loads config from file, falling back to defaults when absent
func LoadConfig() (*Config, error) {
	if err := EnsureConfigDir(); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	if !ConfigExists() {
		return GetDefaultConfig(), nil
	}

	v := viper.New()
	v.SetConfigFile(configFile)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	defaults := GetDefaultConfig()
	if cfg.DBPath == "" {
		cfg.DBPath = defaults.DBPath
	}
	if cfg.Owner == "" {
		cfg.Owner = defaults.Owner
	}

	return &cfg, nil
}

// saves config to file
func SaveConfig(cfg *Config) error {
	if err := EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.Set("db_path", cfg.DBPath)
	v.Set("owner", cfg.Owner)
	v.Set("repo_name", cfg.RepoName)
	v.Set("theme", cfg.Theme)

	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func GetDefaultConfig() *Config {
	return &Config{
		DBPath: filepath.Join(configDir, "todos.db"),
		Owner:  "You",
	}
}
