package config

import (
	"fmt"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	App      AppConfig      `mapstructure:"app"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type DatabaseConfig struct {
	DSN string `mapstructure:"dsn"`
}

type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
}

// AppConfig carries the application-level knobs: the page size used by
// every paginated listing, where unauthenticated requests are sent, and
// where uploaded post images land.
type AppConfig struct {
	PerPage         int    `mapstructure:"per_page"`
	LoginURL        string `mapstructure:"login_url"`
	UploadDir       string `mapstructure:"upload_dir"`
	MaxUploadSizeMB int64  `mapstructure:"max_upload_size_mb"`
}

type LogConfig struct {
	Level          string `mapstructure:"level"`
	ProductionMode bool   `mapstructure:"production_mode"`
}

var GlobalConfig Config

func Init() error {
	return load("config")
}

// InitTest loads the test configuration (separate database DSN).
func InitTest() error {
	return load("config.test")
}

func load(name string) error {
	// Resolve the project root relative to this file so tests in any
	// package find the config directory.
	_, b, _, _ := runtime.Caller(0)
	basepath := filepath.Dir(filepath.Dir(filepath.Dir(b)))

	viper.SetConfigName(name)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(filepath.Join(basepath, "config"))

	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := viper.Unmarshal(&GlobalConfig); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return nil
}
