package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Session   SessionConfig
	Cache     CacheConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Locale    LocaleConfig
	Webhook   WebhookConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host          string
	Port          string
	Name          string
	User          string
	Password      string
	MaxConns      int32
	MigrationsDir string
}

type JWTConfig struct {
	Secret             string
	AccessExpiryMin    int
	RefreshExpiryHours int
}

type SessionConfig struct {
	ExpiryHours int
	CookieName  string
}

type CacheConfig struct {
	TTLSeconds      int
	CleanupInterval int // seconds
}

type CORSConfig struct {
	AllowedOrigins []string
}

type RateLimitConfig struct {
	RequestsPerSecond int
	Burst             int
}

type LocaleConfig struct {
	DefaultLanguage string // "de" or "en"
}

type WebhookConfig struct {
	TimeoutSeconds int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("MIGRATIONS_DIR", "migrations")
	viper.SetDefault("JWT_ACCESS_EXPIRY_MINUTES", 30)
	viper.SetDefault("JWT_REFRESH_EXPIRY_HOURS", 168)
	viper.SetDefault("SESSION_EXPIRY_HOURS", 24)
	viper.SetDefault("SESSION_COOKIE_NAME", "bms_session")
	viper.SetDefault("CACHE_TTL_SECONDS", 60)
	viper.SetDefault("CACHE_CLEANUP_SECONDS", 120)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	viper.SetDefault("RATE_LIMIT_RPS", 20)
	viper.SetDefault("RATE_LIMIT_BURST", 40)
	viper.SetDefault("DEFAULT_LANGUAGE", "de")
	viper.SetDefault("WEBHOOK_TIMEOUT_SECONDS", 10)
	viper.SetDefault("LOG_PATH", "logs/")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:          viper.GetString("DB_HOST"),
			Port:          viper.GetString("DB_PORT"),
			Name:          viper.GetString("DB_NAME"),
			User:          viper.GetString("DB_USER"),
			Password:      viper.GetString("DB_PASS"),
			MaxConns:      viper.GetInt32("DB_MAX_CONNS"),
			MigrationsDir: viper.GetString("MIGRATIONS_DIR"),
		},
		JWT: JWTConfig{
			Secret:             viper.GetString("JWT_SECRET"),
			AccessExpiryMin:    viper.GetInt("JWT_ACCESS_EXPIRY_MINUTES"),
			RefreshExpiryHours: viper.GetInt("JWT_REFRESH_EXPIRY_HOURS"),
		},
		Session: SessionConfig{
			ExpiryHours: viper.GetInt("SESSION_EXPIRY_HOURS"),
			CookieName:  viper.GetString("SESSION_COOKIE_NAME"),
		},
		Cache: CacheConfig{
			TTLSeconds:      viper.GetInt("CACHE_TTL_SECONDS"),
			CleanupInterval: viper.GetInt("CACHE_CLEANUP_SECONDS"),
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: viper.GetInt("RATE_LIMIT_RPS"),
			Burst:             viper.GetInt("RATE_LIMIT_BURST"),
		},
		Locale: LocaleConfig{
			DefaultLanguage: viper.GetString("DEFAULT_LANGUAGE"),
		},
		Webhook: WebhookConfig{
			TimeoutSeconds: viper.GetInt("WEBHOOK_TIMEOUT_SECONDS"),
		},
	}

	return config, nil
}
