package cli

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	APIBaseURL string `yaml:"api_base_url" mapstructure:"api_base_url"`
	Token      string `yaml:"token"        mapstructure:"token"`
	DBPath     string `yaml:"db_path"      mapstructure:"db_path"` // empty = in-memory store
}

func ensureDir(p string) error { return os.MkdirAll(p, 0o755) }

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".gge"), nil
}

func loadConfig(path string) (*Config, error) {
	if path == "" {
		dir, err := configDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, "config.yaml")
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Defaults
	v.SetDefault("api_base_url", "http://localhost:8080")
	v.SetDefault("token", "")
	v.SetDefault("db_path", "")

	// Env overrides: GGE_API_BASE_URL, GGE_TOKEN, GGE_DB_PATH
	v.SetEnvPrefix("GGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// Read file if it exists, otherwise return defaults without error
	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

func saveConfig(path string, c *Config) error {
	if path == "" {
		dir, err := configDir()
		if err != nil {
			return err
		}
		path = filepath.Join(dir, "config.yaml")
	}
	if err := ensureDir(filepath.Dir(path)); err != nil {
		return err
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.Set("api_base_url", c.APIBaseURL)
	v.Set("token", c.Token)
	v.Set("db_path", c.DBPath)

	if err := v.WriteConfigAs(path); err != nil {
		return err
	}

	// Token lives in here, owner only
	_ = os.Chmod(path, 0o600)
	return nil
}
