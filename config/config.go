package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
	DriverRedis    = "redis"

	SinkNone  = "none"
	SinkKafka = "kafka"
	SinkSNS   = "sns"
)

type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DB       string
	SSLMode  string
	TimeZone string
}

// DSN renders the connection string understood by the pgx driver.
func (p PostgresConfig) DSN() string {
	return "host=" + p.Host +
		" user=" + p.User +
		" password=" + p.Password +
		" dbname=" + p.DB +
		" port=" + p.Port +
		" sslmode=" + p.SSLMode +
		" TimeZone=" + p.TimeZone
}

type Config struct {
	Port           string
	Env            string
	StoreDriver    string
	Postgres       PostgresConfig
	SessionDriver  string
	RedisURL       string
	SessionTTL     time.Duration
	SessionCookie  string
	EventSink      string
	KafkaBrokers   []string
	KafkaTopic     string
	SNSTopicARN    string
	AWSRegion      string
	AWSEndpoint    string
	StrictStock    bool
	SeedFile       string
	RateLimitRPS   float64
	RateLimitBurst int
	RequestTimeout time.Duration
}

// Load reads an optional .env file and then the process environment.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("ENV", "development"),
		StoreDriver: getEnv("STORE_DRIVER", DriverPostgres),
		Postgres: PostgresConfig{
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Port:     getEnv("POSTGRES_PORT", "5432"),
			User:     getEnv("POSTGRES_USER", "postgres"),
			Password: getEnv("POSTGRES_PASSWORD", "postgres"),
			DB:       getEnv("POSTGRES_DB", "storefront"),
			SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
			TimeZone: getEnv("POSTGRES_TIMEZONE", "UTC"),
		},
		SessionDriver:  getEnv("SESSION_DRIVER", DriverRedis),
		RedisURL:       getEnv("REDIS_URL", "redis://localhost:6379"),
		SessionTTL:     getDuration("SESSION_TTL", 14*24*time.Hour),
		SessionCookie:  getEnv("SESSION_COOKIE", "session_id"),
		EventSink:      getEnv("EVENT_SINK", SinkNone),
		KafkaBrokers:   splitList(getEnv("KAFKA_BROKERS", "localhost:9092")),
		KafkaTopic:     getEnv("KAFKA_TOPIC", "order.placed"),
		SNSTopicARN:    getEnv("SNS_TOPIC_ARN", ""),
		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpoint:    getEnv("AWS_ENDPOINT", ""),
		StrictStock:    getBool("STRICT_STOCK_CHECK", false),
		SeedFile:       getEnv("SEED_FILE", ""),
		RateLimitRPS:   getFloat("RATE_LIMIT_RPS", 20),
		RateLimitBurst: getInt("RATE_LIMIT_BURST", 40),
		RequestTimeout: getDuration("REQUEST_TIMEOUT", 30*time.Second),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getInt(key string, defaultVal int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return defaultVal
}

func getFloat(key string, defaultVal float64) float64 {
	if v, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return v
	}
	return defaultVal
}

func getBool(key string, defaultVal bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return v
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return defaultVal
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
