// Package config loads console and server settings from defaults, an
// optional catalog.yaml, a .env file, CATALOG_* environment variables and
// bound command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes every environment variable, e.g. CATALOG_API_BASEURL.
	EnvPrefix = "CATALOG"

	configName = "catalog"
)

// Keys shared with flag bindings.
const (
	KeyAPIBaseURL       = "api.baseURL"
	KeyAPITimeout       = "api.timeout"
	KeyAPIToken         = "api.token"
	KeyAPIRateLimit     = "api.rateLimit"
	KeyAPIBurst         = "api.burst"
	KeyUISearchDebounce = "ui.searchDebounce"
	KeyUIItemsPerPage   = "ui.itemsPerPage"
	KeyUILogFile        = "ui.logFile"
	KeyLogLevel         = "log.level"
	KeyServerAddress    = "server.address"
	KeyServerDatabase   = "server.databaseURL"
	KeyServerRedisAddr  = "server.redisAddr"
	KeyServerJWTSecret  = "server.jwtSecret"
	KeyServerCacheTTL   = "server.cacheTTL"
	KeyServerRateLimit  = "server.rateLimit"
	KeyServerBurst      = "server.burst"
)

var defaults = map[string]any{
	KeyAPIBaseURL:       "http://localhost:8080",
	KeyAPITimeout:       10 * time.Second,
	KeyAPIToken:         "",
	KeyAPIRateLimit:     20.0,
	KeyAPIBurst:         40,
	KeyUISearchDebounce: 300 * time.Millisecond,
	KeyUIItemsPerPage:   10,
	KeyUILogFile:        "",
	KeyLogLevel:         "info",
	KeyServerAddress:    ":8080",
	KeyServerDatabase:   "",
	KeyServerRedisAddr:  "",
	KeyServerJWTSecret:  "",
	KeyServerCacheTTL:   5 * time.Minute,
	KeyServerRateLimit:  10.0,
	KeyServerBurst:      20,
}

type Config struct {
	API    APIConfig    `mapstructure:"api"`
	UI     UIConfig     `mapstructure:"ui"`
	Log    LogConfig    `mapstructure:"log"`
	Server ServerConfig `mapstructure:"server"`
}

// APIConfig is how the console reaches the catalog API.
type APIConfig struct {
	BaseURL   string        `mapstructure:"baseURL"`
	Timeout   time.Duration `mapstructure:"timeout"`
	Token     string        `mapstructure:"token"`
	RateLimit float64       `mapstructure:"rateLimit"`
	Burst     int           `mapstructure:"burst"`
}

type UIConfig struct {
	SearchDebounce time.Duration `mapstructure:"searchDebounce"`
	ItemsPerPage   int           `mapstructure:"itemsPerPage"`
	// LogFile receives the console's logs. Empty discards them so the
	// terminal stays clean.
	LogFile string `mapstructure:"logFile"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// ServerConfig configures the reference API. Empty DatabaseURL and
// RedisAddr select the in-memory store and cache.
type ServerConfig struct {
	Address     string        `mapstructure:"address"`
	DatabaseURL string        `mapstructure:"databaseURL"`
	RedisAddr   string        `mapstructure:"redisAddr"`
	JWTSecret   string        `mapstructure:"jwtSecret"`
	CacheTTL    time.Duration `mapstructure:"cacheTTL"`
	RateLimit   float64       `mapstructure:"rateLimit"`
	Burst       int           `mapstructure:"burst"`
}

// NewViper returns a viper instance with defaults and environment lookup set
// up. Callers bind their flags to it before calling Load.
func NewViper() *viper.Viper {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// LoadDotEnv loads .env from the working directory if there is one. Values
// already present in the environment win.
func LoadDotEnv() {
	_ = godotenv.Load()
}

// Load reads the config file and decodes the merged settings. An empty
// configFile looks for catalog.yaml in the working directory and the user
// config directory and tolerates its absence; an explicit path must exist.
func Load(v *viper.Viper, configFile string) (Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/catalog")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings no component can run with.
func (c Config) Validate() error {
	var errs []error
	if u, err := url.Parse(c.API.BaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("%s: %q is not an http(s) URL", KeyAPIBaseURL, c.API.BaseURL))
	}
	if c.API.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive", KeyAPITimeout))
	}
	if c.UI.ItemsPerPage < 1 {
		errs = append(errs, fmt.Errorf("%s must be at least 1", KeyUIItemsPerPage))
	}
	if c.UI.SearchDebounce < 0 {
		errs = append(errs, fmt.Errorf("%s cannot be negative", KeyUISearchDebounce))
	}
	if c.Server.CacheTTL < 0 {
		errs = append(errs, fmt.Errorf("%s cannot be negative", KeyServerCacheTTL))
	}
	return errors.Join(errs...)
}
