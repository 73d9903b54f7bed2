package structures

import (
	"net/http"
	"time"
)

type CliFlags struct {
	ConfigPath string
	DebugMode  bool
}

type Route struct {
	Method  string
	Url     string
	Handler http.Handler
}

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

// GitHubConfig holds upstream access settings. Token is the shared application token,
// used when a request carries no provider token of its own.
type GitHubConfig struct {
	Token             string        `yaml:"token"`
	APIURL            string        `yaml:"apiUrl"`
	GraphQLURL        string        `yaml:"graphqlUrl"`
	RequestTimeout    time.Duration `yaml:"requestTimeout" validate:"required|min:1"`
	MaxRateLimitSleep time.Duration `yaml:"maxRateLimitSleep"`
}

type FetchConfig struct {
	PageSize int `yaml:"pageSize" validate:"required|min:1|max:100"`
	MaxRepos int `yaml:"maxRepos" validate:"required|min:1"`
	MaxPages int `yaml:"maxPages"`
}

type DatabaseConfig struct {
	Backend string `yaml:"backend" validate:"required|in:sqlite,mysql,postgresql"`
	DSN     string `yaml:"dsn"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName   string
	Debug     bool
	Path      string
	WebServer Server         `yaml:"webServer"`
	Logger    LoggerConfig   `yaml:"logger"`
	GitHub    GitHubConfig   `yaml:"github"`
	Fetch     FetchConfig    `yaml:"fetch"`
	Database  DatabaseConfig `yaml:"database"`
	Cache     CacheConfig    `yaml:"cache"`
	Metrics   MetricsConfig  `yaml:"metrics"`
}
