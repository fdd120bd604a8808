package env

import (
	"fmt"
	"os"
	"strings"
	"time"

	cenv "github.com/caarlos0/env/v11"
)

// Config is the typed process configuration.
type Config struct {
	AppHost      string `env:"APP_HOST" envDefault:"localhost"`
	AppPort      string `env:"APP_PORT" envDefault:"4000"`
	AppEnv       string `env:"APP_ENV" envDefault:"prod"`
	PublicDomain string `env:"PUBLIC_DOMAIN" envDefault:"http://localhost:3000"`

	DB    DBConfig
	Cache CacheConfig
	SMTP  SMTPConfig

	JWTSecret string `env:"SUPABASE_JWT_SECRET"`

	StripeSecretKey          string `env:"STRIPE_SECRET_KEY"`
	StripeBoostWebhookSecret string `env:"STRIPE_BOOST_WEBHOOK_SECRET"`
	BoostCurrency            string `env:"BOOST_CURRENCY" envDefault:"bgn"`

	DefaultLocale string `env:"DEFAULT_LOCALE" envDefault:"en"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat     string `env:"LOG_FORMAT" envDefault:"json"`

	BoostExpiryInterval time.Duration `env:"BOOST_EXPIRY_INTERVAL" envDefault:"5m"`
	RateLimitMax        int           `env:"RATE_LIMIT_MAX" envDefault:"60"`
	JobWorkers          int           `env:"JOB_WORKERS" envDefault:"2"`
}

type DBConfig struct {
	User     string `env:"DB_USER"`
	Password string `env:"DB_PASSWORD"`
	Host     string `env:"DB_HOST" envDefault:"127.0.0.1"`
	Port     string `env:"DB_PORT" envDefault:"3306"`
	Name     string `env:"DB_NAME"`
}

// DSN returns the go-sql-driver/mysql data source name.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		c.User, c.Password, c.Host, c.Port, c.Name)
}

// MigrateURL returns the golang-migrate database URL.
func (c DBConfig) MigrateURL() string {
	return fmt.Sprintf("mysql://%s:%s@tcp(%s:%s)/%s?multiStatements=true",
		c.User, c.Password, c.Host, c.Port, c.Name)
}

type CacheConfig struct {
	Host     string `env:"CACHE_HOST" envDefault:"localhost"`
	Port     int    `env:"CACHE_PORT" envDefault:"6379"`
	Password string `env:"CACHE_PASSWORD"`
	Disabled bool   `env:"CACHE_DISABLED" envDefault:"false"`
}

func (c CacheConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type SMTPConfig struct {
	Host     string `env:"SMTP_HOST"`
	Port     string `env:"SMTP_PORT" envDefault:"587"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	Sender   string `env:"SMTP_SENDER"`
}

// Enabled reports whether outgoing mail is configured.
func (c SMTPConfig) Enabled() bool {
	return strings.TrimSpace(c.Host) != ""
}

func (c Config) IsDev() bool {
	return c.AppEnv == "dev"
}

func (c Config) ListenAddr() string {
	return fmt.Sprintf("%s:%s", c.AppHost, c.AppPort)
}

// StripeEnabled reports whether paid boost checkout can be offered.
func (c Config) StripeEnabled() bool {
	return strings.TrimSpace(c.StripeSecretKey) != ""
}

// Load parses Config from the process environment overlaid with the values
// read by SetupEnvFile.
func Load() (Config, error) {
	environment := cenv.ToMap(os.Environ())
	for k, v := range Env {
		environment[k] = v
	}
	return LoadFrom(environment)
}

// LoadFrom parses Config from an explicit environment map.
func LoadFrom(environment map[string]string) (Config, error) {
	var cfg Config
	if err := cenv.ParseWithOptions(&cfg, cenv.Options{Environment: environment}); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	cfg.BoostCurrency = strings.ToLower(strings.TrimSpace(cfg.BoostCurrency))
	cfg.PublicDomain = strings.TrimRight(strings.TrimSpace(cfg.PublicDomain), "/")
	if cfg.BoostExpiryInterval <= 0 {
		return Config{}, fmt.Errorf("BOOST_EXPIRY_INTERVAL must be positive, got %s", cfg.BoostExpiryInterval)
	}
	return cfg, nil
}
