package config

import (
	"strings"
	"time"

	"memories-backend/internal/utils"
)

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	Port string

	DBDriver         string
	DatabaseURL      string
	DBName           string
	DBConnectRetries int
	DBConnectTimeout time.Duration

	AppPassword      string
	AppPasswordHash  string
	RequireWriteAuth bool
	JWTSecret        string
	TokenTTL         time.Duration

	UploadDir    string
	PublicDir    string
	MaxUploadMB  int
	AssetMaxAge  int
	ShutdownWait time.Duration

	EnableUploads  bool
	ServeAssets    bool
	RequestLogging bool
	EnableLiveFeed bool

	LogLevel  string
	LogFormat string
}

// Load reads the process environment. Call utils.LoadEnv first to pick up a .env file.
func Load() *Config {
	cfg := &Config{
		Port:             utils.GetEnv("PORT", "3000"),
		DBDriver:         strings.ToLower(utils.GetEnv("DB_DRIVER", DriverMongo)),
		DBName:           utils.GetEnv("DB_NAME", ""),
		DBConnectRetries: utils.GetEnvInt("DB_CONNECT_RETRIES", 5),
		DBConnectTimeout: utils.GetEnvDuration("DB_CONNECT_TIMEOUT", 10*time.Second),

		AppPassword:      utils.GetEnv("APP_PASSWORD", ""),
		AppPasswordHash:  utils.GetEnv("APP_PASSWORD_HASH", ""),
		RequireWriteAuth: utils.GetEnvBool("REQUIRE_WRITE_AUTH", false),
		TokenTTL:         utils.GetEnvDuration("TOKEN_TTL", 72*time.Hour),

		UploadDir:    utils.GetEnv("UPLOAD_DIR", "Assets"),
		PublicDir:    utils.GetEnv("PUBLIC_DIR", "public"),
		MaxUploadMB:  utils.GetEnvInt("MAX_UPLOAD_MB", 50),
		AssetMaxAge:  utils.GetEnvInt("ASSET_MAX_AGE", 3600),
		ShutdownWait: utils.GetEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),

		EnableUploads:  utils.GetEnvBool("ENABLE_UPLOADS", true),
		ServeAssets:    utils.GetEnvBool("SERVE_ASSETS", true),
		RequestLogging: utils.GetEnvBool("REQUEST_LOGGING", true),
		EnableLiveFeed: utils.GetEnvBool("ENABLE_LIVE_FEED", true),

		LogLevel:  utils.GetEnv("LOG_LEVEL", "info"),
		LogFormat: utils.GetEnv("LOG_FORMAT", "console"),
	}

	cfg.JWTSecret = utils.GetEnv("JWT_SECRET", cfg.AppPassword)

	cfg.DatabaseURL = utils.GetEnv("DATABASE_URL", "")
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = BuildConnString(
			utils.GetEnv("DB_PREFIX", ""),
			utils.GetEnv("DB_USER", ""),
			utils.GetEnv("DB_PASSWORD", ""),
			utils.GetEnv("DB_HOST", ""),
			cfg.DBName,
			utils.GetEnv("DB_PARAMS", ""),
		)
	}
	return cfg
}

// BuildConnString assembles prefix + user:password + @host + /name + params.
// A host that already starts with "@" is used as is, so DB_HOST values written
// for the Atlas-style "@cluster0.example.net" layout keep working.
func BuildConnString(prefix, user, password, host, name, params string) string {
	var b strings.Builder
	b.WriteString(prefix)
	if user != "" {
		b.WriteString(user)
		b.WriteString(":")
		b.WriteString(password)
		if !strings.HasPrefix(host, "@") {
			b.WriteString("@")
		}
	} else {
		host = strings.TrimPrefix(host, "@")
	}
	b.WriteString(host)
	if name != "" {
		b.WriteString("/")
		b.WriteString(name)
	}
	b.WriteString(params)
	return b.String()
}

// BodyLimit is the Fiber request body limit in bytes.
func (c *Config) BodyLimit() int {
	if c.MaxUploadMB <= 0 {
		return 4 * 1024 * 1024
	}
	return c.MaxUploadMB * 1024 * 1024
}

// Addr is the listen address for Fiber.
func (c *Config) Addr() string {
	if strings.Contains(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}
