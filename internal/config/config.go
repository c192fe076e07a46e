package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

const EnvPrefix = "SKILLMATCH"

type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Report   ReportConfig   `mapstructure:"report"`
	Log      LogConfig      `mapstructure:"log"`
}

type AppConfig struct {
	AppName     string `mapstructure:"name"`
	Environment string `mapstructure:"env"`
	HTTPPort    string `mapstructure:"http_port"`
}

type DatabaseConfig struct {
	DBHost     string `mapstructure:"host"`
	DBPort     string `mapstructure:"port"`
	DBName     string `mapstructure:"name"`
	DBUser     string `mapstructure:"user"`
	DBPassword string `mapstructure:"password"`
	DBSSLMode  string `mapstructure:"ssl_mode"`

	ConnectTimeout        time.Duration `mapstructure:"connect_timeout"`
	PoolMaxConns          int32         `mapstructure:"pool_max_conns"`
	PoolMinConns          int32         `mapstructure:"pool_min_conns"`
	PoolMaxConnLifetime   time.Duration `mapstructure:"pool_max_conn_lifetime"`
	PoolMaxConnIdleTime   time.Duration `mapstructure:"pool_max_conn_idle_time"`
	PoolHealthCheckPeriod time.Duration `mapstructure:"pool_health_check_period"`
}

type RedisConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	Addr      string        `mapstructure:"addr"`
	Password  string        `mapstructure:"password"`
	DB        int           `mapstructure:"db"`
	ScoreTTL  time.Duration `mapstructure:"score_ttl"`
	ReportTTL time.Duration `mapstructure:"report_ttl"`
}

type JWTConfig struct {
	Secret          string        `mapstructure:"secret"`
	AccessExpiresIn time.Duration `mapstructure:"access_expires_in"`
}

type ReportConfig struct {
	WindowDays int `mapstructure:"window_days"`
	TopSkills  int `mapstructure:"top_skills"`
}

type LogConfig struct {
	JSON  bool `mapstructure:"json"`
	Debug bool `mapstructure:"debug"`
}

// Requirement names a group of settings a command cannot run without.
type Requirement int

const (
	NeedDatabase Requirement = iota
	NeedJWT
)

var errMissingRequiredEnv = errors.New("missing required configuration")

var defaults = map[string]any{
	"app.name":      "skill-match",
	"app.env":       "development",
	"app.http_port": "8080",

	"database.host":                     "",
	"database.port":                     "5432",
	"database.name":                     "",
	"database.user":                     "",
	"database.password":                 "",
	"database.ssl_mode":                 "disable",
	"database.connect_timeout":          "5s",
	"database.pool_max_conns":           10,
	"database.pool_min_conns":           0,
	"database.pool_max_conn_lifetime":   "1h",
	"database.pool_max_conn_idle_time":  "30m",
	"database.pool_health_check_period": "1m",

	"redis.enabled":    false,
	"redis.addr":       "localhost:6379",
	"redis.password":   "",
	"redis.db":         0,
	"redis.score_ttl":  "10m",
	"redis.report_ttl": "1m",

	"jwt.secret":            "",
	"jwt.access_expires_in": "15m",

	"report.window_days": 180,
	"report.top_skills":  7,

	"log.json":  false,
	"log.debug": false,
}

// Load resolves configuration from (lowest to highest precedence) defaults,
// an optional config file, a .env file and SKILLMATCH_* environment variables.
// Nested keys map to env names with dots replaced by underscores, e.g.
// database.host -> SKILLMATCH_DATABASE_HOST.
func Load(v *viper.Viper) (Config, error) {
	if v == nil {
		v = viper.New()
	}

	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file := strings.TrimSpace(v.GetString("config")); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file %s: %w", file, err)
		}
	}

	var cfg Config
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
		),
		WeaklyTypedInput: true,
		Result:           &cfg,
		TagName:          "mapstructure",
	})
	if err != nil {
		return Config{}, err
	}
	if err := dec.Decode(v.AllSettings()); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	trimConfig(&cfg)
	return cfg, nil
}

// Validate reports every missing setting for the given requirements at once.
func (c Config) Validate(reqs ...Requirement) error {
	var missing []string
	req := func(key, value string) {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, envName(key))
		}
	}

	req("app.http_port", c.App.HTTPPort)
	for _, r := range reqs {
		switch r {
		case NeedDatabase:
			req("database.host", c.Database.DBHost)
			req("database.port", c.Database.DBPort)
			req("database.name", c.Database.DBName)
			req("database.user", c.Database.DBUser)
		case NeedJWT:
			req("jwt.secret", c.JWT.Secret)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	return nil
}

// ReportWindow is the default reporting window ending at now.
func (c Config) ReportWindow(now time.Time) (time.Time, time.Time) {
	days := c.Report.WindowDays
	if days <= 0 {
		days = 180
	}
	return now.AddDate(0, 0, -days), now
}

func envName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

func trimConfig(c *Config) {
	c.App.AppName = strings.TrimSpace(c.App.AppName)
	c.App.Environment = strings.TrimSpace(c.App.Environment)
	c.App.HTTPPort = strings.TrimSpace(c.App.HTTPPort)
	c.Database.DBHost = strings.TrimSpace(c.Database.DBHost)
	c.Database.DBPort = strings.TrimSpace(c.Database.DBPort)
	c.Database.DBName = strings.TrimSpace(c.Database.DBName)
	c.Database.DBUser = strings.TrimSpace(c.Database.DBUser)
	c.Database.DBSSLMode = strings.TrimSpace(c.Database.DBSSLMode)
	c.Redis.Addr = strings.TrimSpace(c.Redis.Addr)
}
