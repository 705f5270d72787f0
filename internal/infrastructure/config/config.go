package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// DefaultJWTSecret is the development fallback. Production refuses to start with it.
const DefaultJWTSecret = "dev-secret-change-me"

type Config struct {
	Port      string `env:"PORT,       default=8080"`
	Env       string `env:"ENV,        default=development"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`
	LogPretty bool   `env:"LOG_PRETTY, default=false"`

	JWT        JWTConfig
	Mongo      MongoConfig
	Redis      RedisConfig
	Cache      CacheConfig
	Audit      AuditConfig
	Gateway    GatewayConfig
	Cloudinary CloudinaryConfig
}

type JWTConfig struct {
	Secret     string        `env:"JWT_SECRET,      default=dev-secret-change-me"`
	AccessTTL  time.Duration `env:"JWT_ACCESS_TTL,  default=15m"`
	RefreshTTL time.Duration `env:"JWT_REFRESH_TTL, default=168h"`
	Issuer     string        `env:"JWT_ISSUER,      default=prims-trade"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=prims_trade"`
}

type RedisConfig struct {
	URL  string `env:"REDIS_URL"`
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type CacheConfig struct {
	Driver     string `env:"CACHE_DRIVER,      default=memory"`
	TTLSeconds int    `env:"CACHE_TTL_SECONDS, default=300"`
}

// TTL returns the cache entry lifetime.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

type AuditConfig struct {
	Workers int `env:"AUDIT_WORKERS, default=4"`
}

type GatewayConfig struct {
	AuthServiceURL        string   `env:"AUTH_SERVICE_URL,         default=http://localhost:3001"`
	UserServiceURL        string   `env:"USER_SERVICE_URL,         default=http://localhost:3002"`
	TradeSignalServiceURL string   `env:"TRADE_SIGNAL_SERVICE_URL, default=http://localhost:3003"`
	RoutesFile            string   `env:"GATEWAY_ROUTES_FILE"`
	RateLimitWindowMS     int      `env:"RATE_LIMIT_WINDOW_MS,     default=900000"`
	RateLimitMax          int      `env:"RATE_LIMIT_MAX,           default=100"`
	AuthRateLimitMax      int      `env:"AUTH_RATE_LIMIT_MAX,      default=5"`
	CORSOrigins           []string `env:"CORS_ORIGINS,             default=*"`
}

// RateLimitWindow returns the rate limiter window.
func (g GatewayConfig) RateLimitWindow() time.Duration {
	return time.Duration(g.RateLimitWindowMS) * time.Millisecond
}

type CloudinaryConfig struct {
	CloudName string `env:"CLOUDINARY_CLOUD_NAME"`
	APIKey    string `env:"CLOUDINARY_API_KEY"`
	APISecret string `env:"CLOUDINARY_API_SECRET"`
}

// IsProduction reports whether ENV is production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads configuration through l and validates it.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET must not be empty")
	}
	if c.IsProduction() && c.JWT.Secret == DefaultJWTSecret {
		return errors.New("JWT_SECRET must be set in production")
	}
	if c.JWT.AccessTTL <= 0 || c.JWT.RefreshTTL <= 0 {
		return errors.New("JWT_ACCESS_TTL and JWT_REFRESH_TTL must be positive")
	}
	switch c.Cache.Driver {
	case "memory", "redis":
	default:
		return fmt.Errorf("CACHE_DRIVER must be memory or redis, got %q", c.Cache.Driver)
	}
	if c.Cache.TTLSeconds <= 0 {
		return errors.New("CACHE_TTL_SECONDS must be positive")
	}
	return nil
}
