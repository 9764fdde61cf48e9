package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,       default=8080"`
	Env       string `env:"ENV,        default=development"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`
	LogPretty bool   `env:"LOG_PRETTY, default=false"`

	// BaseURL is the public address used in emailed links.
	BaseURL string `env:"BASE_URL, default=http://localhost:8080"`

	Token TokenConfig
	Blog  BlogConfig
	Mail  MailConfig
	Mongo MongoConfig
	Redis RedisConfig
}

type TokenConfig struct {
	SecretKey  string        `env:"SECRET_KEY,      required"`
	Algorithm  string        `env:"TOKEN_ALGORITHM, default=HS256"`
	Issuer     string        `env:"TOKEN_ISSUER,    default=inkwell"`
	TTL        time.Duration `env:"TOKEN_TTL,       default=1h"`
	SessionTTL time.Duration `env:"SESSION_TTL,     default=24h"`
}

type BlogConfig struct {
	// Admin is the email address that registers as Administrator.
	Admin        string `env:"BLOG_ADMIN"`
	PostsPerPage int    `env:"BLOG_POSTS_PER_PAGE, default=20"`
}

type MailConfig struct {
	// Server is the SMTP host. When empty, mail is written to the log.
	Server        string `env:"MAIL_SERVER"`
	Port          int    `env:"MAIL_PORT,           default=587"`
	Username      string `env:"MAIL_USERNAME"`
	Password      string `env:"MAIL_PASSWORD"`
	Sender        string `env:"MAIL_SENDER,         default=Inkwell Admin <noreply@inkwell.local>"`
	SubjectPrefix string `env:"MAIL_SUBJECT_PREFIX, default=[Inkwell]"`
	Workers       int    `env:"MAIL_WORKERS,        default=4"`
	// Timeout bounds each SMTP dial and command.
	Timeout time.Duration `env:"MAIL_TIMEOUT, default=15s"`
}

type MongoConfig struct {
	URI      string        `env:"MONGO_URI,     default=mongodb://localhost:27017"`
	Database string        `env:"MONGO_DB,      default=inkwell"`
	Timeout  time.Duration `env:"MONGO_TIMEOUT, default=10s"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

// IsProduction reports whether ENV is "production".
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadFrom(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadFrom reads configuration through lookuper.
func LoadFrom(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, err
	}
	if cfg.Blog.PostsPerPage <= 0 {
		return nil, fmt.Errorf("BLOG_POSTS_PER_PAGE must be positive, got %d", cfg.Blog.PostsPerPage)
	}
	return &cfg, nil
}
