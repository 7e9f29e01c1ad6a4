package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort  string `mapstructure:"APP_PORT"`
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// Remote course-platform backend.
	APIBaseURL     string        `mapstructure:"API_BASE_URL"`
	AuthBasePath   string        `mapstructure:"AUTH_BASE_PATH"`
	BackendTimeout time.Duration `mapstructure:"BACKEND_TIMEOUT"`

	// Session cookie.
	SessionSecret string `mapstructure:"SESSION_SECRET"`
	SessionCookie string `mapstructure:"SESSION_COOKIE"`
	SessionMaxAge int    `mapstructure:"SESSION_MAX_AGE"`

	// Redis configuration.
	CacheEnabled  bool   `mapstructure:"CACHE_ENABLED"`
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`

	CatalogCacheTTL       time.Duration `mapstructure:"CATALOG_CACHE_TTL"`
	DraftTTL              time.Duration `mapstructure:"DRAFT_TTL"`
	CatalogPageSize       int           `mapstructure:"CATALOG_PAGE_SIZE"`
	RegisterRedirectDelay time.Duration `mapstructure:"REGISTER_REDIRECT_DELAY"`
	AuthRequestsPerMin    int           `mapstructure:"AUTH_REQUESTS_PER_MIN"`

	CSRFEnabled    bool   `mapstructure:"CSRF_ENABLED"`
	AllowedOrigins string `mapstructure:"ALLOWED_ORIGINS"`

	OTLPEndpoint string `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTLPInsecure bool   `mapstructure:"OTEL_EXPORTER_OTLP_INSECURE"`
}

var AppConfig Config

func LoadConfig() {
	// A local .env is optional; real environment variables win over it.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	SetDefaults()

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

// SetDefaults registers the default value of every key.
func SetDefaults() {
	viper.SetDefault("APP_PORT", "3000")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")

	viper.SetDefault("API_BASE_URL", "http://localhost:8080")
	viper.SetDefault("AUTH_BASE_PATH", "/cursos/auth")
	viper.SetDefault("BACKEND_TIMEOUT", 15*time.Second)

	viper.SetDefault("SESSION_SECRET", "putyoursadface")
	viper.SetDefault("SESSION_COOKIE", "user")
	viper.SetDefault("SESSION_MAX_AGE", 86400)

	viper.SetDefault("CACHE_ENABLED", false)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)

	viper.SetDefault("CATALOG_CACHE_TTL", 30*time.Second)
	viper.SetDefault("DRAFT_TTL", 2*time.Hour)
	viper.SetDefault("CATALOG_PAGE_SIZE", 6)
	viper.SetDefault("REGISTER_REDIRECT_DELAY", 3*time.Second)
	viper.SetDefault("AUTH_REQUESTS_PER_MIN", 30)

	viper.SetDefault("CSRF_ENABLED", false)
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:5173")

	viper.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	viper.SetDefault("OTEL_EXPORTER_OTLP_INSECURE", false)
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// Origins splits ALLOWED_ORIGINS on commas.
func Origins() []string {
	var out []string
	for _, o := range strings.Split(AppConfig.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
