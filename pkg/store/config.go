package store

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	// DefaultQuota mirrors the 5MB browser local-storage ceiling.
	DefaultQuota    = 5 * 1024 * 1024
	DefaultPageSize = 50
)

// Config tells the store where and how much to write.
type Config interface {
	BasePath() string
	Quota() int64
}

// FileConfig is the resolved `.diary.yaml` / DIARY_* configuration.
type FileConfig struct {
	Path       string `json:"path"`
	QuotaBytes int64  `json:"quota"`
	PageSize   int    `json:"pageSize"`
	LogLevel   string `json:"logLevel"`
	LogFormat  string `json:"logFormat"`
	ShareBase  string `json:"shareBase"`
}

func (f *FileConfig) BasePath() string {
	return f.Path
}

func (f *FileConfig) Quota() int64 {
	return f.QuotaBytes
}

// LoadConfig reads `.diary.yaml` from $DIARY_CONFIG_PATH, the working
// directory or $HOME, overlaid with DIARY_* environment variables.
func LoadConfig() (*FileConfig, error) {
	v := viper.New()
	v.SetDefault("path", "~/.diary.db")
	v.SetDefault("quota", DefaultQuota)
	v.SetDefault("page-size", DefaultPageSize)
	v.SetDefault("log-level", "warn")
	v.SetDefault("log-format", "json")
	v.SetDefault("share-base", "https://diary.local/")
	v.SetConfigName(".diary") // .yaml is implicit
	v.SetEnvPrefix("DIARY")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if override := os.Getenv("DIARY_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("expand path: %w", err)
	}

	cfg := &FileConfig{
		Path:       path,
		QuotaBytes: v.GetInt64("quota"),
		PageSize:   v.GetInt("page-size"),
		LogLevel:   v.GetString("log-level"),
		LogFormat:  v.GetString("log-format"),
		ShareBase:  v.GetString("share-base"),
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	return cfg, nil
}
