package config

import (
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool
	JWTSecret    string
	JWTIssuer    string

	// Kafka event publication
	KafkaEnabled bool
	KafkaBrokers []string
	KafkaTopic   string

	// Command worker pool
	WorkerCount   int
	QueueCapacity int

	// Rate limiting, limiter period notation (e.g. "100-M")
	RateLimit string
}

// LoadConfig loads configuration from environment variables and a .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_ISSUER", "bookkeeper-svc")
	viper.SetDefault("KAFKA_ENABLED", false)
	viper.SetDefault("KAFKA_BROKERS", "localhost:9092")
	viper.SetDefault("KAFKA_TOPIC", "bookkeeper.events")
	viper.SetDefault("WORKER_COUNT", 4)
	viper.SetDefault("QUEUE_CAPACITY", 256)
	viper.SetDefault("RATE_LIMIT", "300-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" && cfg.IsProduction {
		log.Println("Warning: JWT_SECRET is the insecure default in production.")
	}
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.KafkaEnabled = viper.GetBool("KAFKA_ENABLED")
	cfg.KafkaBrokers = strings.Split(viper.GetString("KAFKA_BROKERS"), ",")
	cfg.KafkaTopic = viper.GetString("KAFKA_TOPIC")

	cfg.WorkerCount = viper.GetInt("WORKER_COUNT")
	cfg.QueueCapacity = viper.GetInt("QUEUE_CAPACITY")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	return cfg, nil
}
