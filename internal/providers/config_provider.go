package providers

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/naka-gawa/github-profile-stats/internal/structures"
	"github.com/spf13/viper"
)

const AppName = "GitHubProfileStats"

func setDefaults(v *viper.Viper) {
	v.SetDefault("webServer.host", "0.0.0.0")
	v.SetDefault("webServer.port", 8080)
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.mode", 0644)
	v.SetDefault("logger.dir", "./logs")
	v.SetDefault("github.requestTimeout", 10*time.Second)
	v.SetDefault("github.maxRateLimitSleep", 30*time.Second)
	v.SetDefault("fetch.pageSize", 100)
	v.SetDefault("fetch.maxRepos", 500)
	v.SetDefault("fetch.maxPages", 5)
	v.SetDefault("database.backend", "sqlite")
	v.SetDefault("database.dsn", "./profile-stats.db")
	v.SetDefault("cache.ttl", 10*time.Minute)
}

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("unable to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	v.BindEnv("logger.level", "GPS_LOG_LEVEL")
	v.BindEnv("logger.dir", "GPS_LOG_DIR")
	v.BindEnv("webServer.port", "GPS_PORT")
	v.BindEnv("github.token", "GITHUB_TOKEN")
	v.BindEnv("fetch.maxRepos", "GPS_MAX_REPOS")
	v.BindEnv("database.backend", "GPS_DB_BACKEND")
	v.BindEnv("database.dsn", "GPS_DB_DSN")
	v.BindEnv("cache.enabled", "GPS_CACHE_ENABLED")
	v.BindEnv("cache.size", "GPS_CACHE_SIZE")
	v.BindEnv("metrics.enabled", "GPS_METRICS_ENABLED")

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = AppName
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
