package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/0nxb/my-weather-app/internal/models"
	"github.com/0nxb/my-weather-app/internal/ratelimit"
	"github.com/0nxb/my-weather-app/internal/store"
)

type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type StorageConfig struct {
	Backend string `mapstructure:"backend"`
	Path    string `mapstructure:"path"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// LocationConfig is the fixed position used where the platform has no
// geolocation. Set is false unless both coordinates were given.
type LocationConfig struct {
	Lat float64 `mapstructure:"lat"`
	Lon float64 `mapstructure:"lon"`
	Set bool    `mapstructure:"-"`
}

type WebConfig struct {
	Port           string   `mapstructure:"port"`
	Upstream       string   `mapstructure:"upstream"`
	DistDir        string   `mapstructure:"dist_dir"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	RateLimit      struct {
		RPS     float64 `mapstructure:"rps"`
		Burst   int     `mapstructure:"burst"`
		MaxKeys int     `mapstructure:"max_keys"`
	} `mapstructure:"rate_limit"`
	// TrustedProxies lists the CIDRs or addresses whose X-Forwarded-For
	// header is believed when keying the rate limiter.
	TrustedProxies []string `mapstructure:"trusted_proxies"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type Config struct {
	API      APIConfig      `mapstructure:"api"`
	Units    models.Units   `mapstructure:"units"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Location LocationConfig `mapstructure:"location"`
	Web      WebConfig      `mapstructure:"web"`
	Log      LogConfig      `mapstructure:"log"`
	// OTLPEndpoint enables trace export from either front end when set.
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", "http://localhost:8095")
	v.SetDefault("api.timeout", time.Duration(0))
	v.SetDefault("units", string(models.Metric))
	v.SetDefault("storage.backend", store.BackendFile)
	v.SetDefault("storage.path", "")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("web.port", "8080")
	v.SetDefault("web.upstream", "")
	v.SetDefault("web.dist_dir", "dist")
	v.SetDefault("web.allowed_origins", []string{"*"})
	v.SetDefault("web.rate_limit.rps", 5.0)
	v.SetDefault("web.rate_limit.burst", 10)
	v.SetDefault("web.rate_limit.max_keys", ratelimit.DefaultMaxKeys)
	v.SetDefault("web.trusted_proxies", []string{})
	v.SetDefault("otlp_endpoint", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Load reads an optional .env file, then the optional config file at path,
// then environment overrides (api.base_url is API_BASE_URL and so on).
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("location.lat")
	_ = v.BindEnv("location.lon")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Location.Set = v.IsSet("location.lat") && v.IsSet("location.lon")

	if cfg.Storage.Path == "" {
		switch cfg.Storage.Backend {
		case store.BackendFile:
			cfg.Storage.Path = "recent.json"
		case store.BackendSQLite:
			cfg.Storage.Path = "recent.db"
		}
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.Web.Port = port
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if !c.Units.Valid() {
		return fmt.Errorf("invalid units %q", c.Units)
	}
	switch c.Storage.Backend {
	case store.BackendMemory, store.BackendFile, store.BackendRedis, store.BackendSQLite:
	default:
		return fmt.Errorf("invalid storage backend %q", c.Storage.Backend)
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("invalid api timeout %s", c.API.Timeout)
	}
	if c.Web.RateLimit.RPS < 0 || c.Web.RateLimit.Burst < 0 || c.Web.RateLimit.MaxKeys < 0 {
		return errors.New("rate limit must not be negative")
	}
	if _, err := ratelimit.ParsePrefixes(c.Web.TrustedProxies); err != nil {
		return err
	}
	return nil
}

// StoreOptions maps the storage settings onto store.Open.
func (c *Config) StoreOptions() store.Options {
	return store.Options{
		Backend:       c.Storage.Backend,
		Path:          c.Storage.Path,
		RedisAddr:     c.Redis.Addr,
		RedisPassword: c.Redis.Password,
		RedisDB:       c.Redis.DB,
	}
}

// NewLogger builds the slog logger described by c, text unless the format is
// json.
func (c LogConfig) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(c.Level)}
	var handler slog.Handler = slog.NewTextHandler(w, opts)
	if strings.EqualFold(c.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	}
	return slog.New(handler)
}

func parseLevel(s string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
