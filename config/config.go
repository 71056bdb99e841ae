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
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	// Comma separated proxy IPs/CIDRs whose X-Forwarded-For is honoured. Empty trusts none.
	TrustedProxies string `mapstructure:"TRUSTED_PROXIES"`

	// Credential verification key material. Issuing tokens is handled elsewhere.
	JWTSecret string `mapstructure:"JWT_SECRET"`

	// Persistence.
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`
	BookingStore string `mapstructure:"BOOKING_STORE"` // mongo | postgres | memory
	PostgresDSN  string `mapstructure:"POSTGRES_DSN"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisEventsDB int    `mapstructure:"REDIS_EVENTS_DB"`
	EventsChannel string `mapstructure:"EVENTS_CHANNEL"`

	// Booking lifecycle.
	LateGraceMinutes int `mapstructure:"LATE_GRACE_MINUTES"`

	MetricsNamespace string `mapstructure:"METRICS_NAMESPACE"`
}

var AppConfig Config

func LoadConfig() {
	// A missing .env is fine; the process environment still applies.
	_ = godotenv.Load()

	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	setDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 200)
	v.SetDefault("TRUSTED_PROXIES", "")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "petcare")
	v.SetDefault("BOOKING_STORE", "mongo")
	v.SetDefault("POSTGRES_DSN", "")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_EVENTS_DB", 3)
	v.SetDefault("EVENTS_CHANNEL", "booking-events")
	v.SetDefault("LATE_GRACE_MINUTES", 15)
	v.SetDefault("METRICS_NAMESPACE", "petcare")
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// GraceWindow is the time after confirmation within which starting a booking is on time.
func (c Config) GraceWindow() time.Duration {
	if c.LateGraceMinutes <= 0 {
		return 15 * time.Minute
	}
	return time.Duration(c.LateGraceMinutes) * time.Minute
}

// TrustedProxyList splits TRUSTED_PROXIES into entries for gin's SetTrustedProxies.
// An empty result means no proxy is trusted.
func (c Config) TrustedProxyList() []string {
	var proxies []string
	for _, p := range strings.Split(c.TrustedProxies, ",") {
		if p = strings.TrimSpace(p); p != "" {
			proxies = append(proxies, p)
		}
	}
	return proxies
}
