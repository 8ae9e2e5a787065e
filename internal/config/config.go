package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DefaultJWTSecret is only suitable for local development.
const DefaultJWTSecret = "dev-secret-key"

type Config struct {
	HTTPAddr            string
	MySQLDSN            string
	SQLitePath          string
	JWTSecret           string
	RabbitMQURL         string
	RabbitExchange      string
	RabbitQueue         string
	RabbitRoutingKey    string
	RabbitConsumerTag   string
	RabbitPublishPrefix string
	SSEHeartbeat        time.Duration
	ListDefaultLimit    int
	ListMaxLimit        int
	ShutdownTimeout     time.Duration
	OTELServiceName     string
	OTLPEndpoint        string
	OTLPInsecure        bool
	LogLevel            string
	LogFile             string
}

func New() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		HTTPAddr:            ":8080",
		JWTSecret:           DefaultJWTSecret,
		SSEHeartbeat:        15 * time.Second,
		ListDefaultLimit:    50,
		ListMaxLimit:        100,
		ShutdownTimeout:     10 * time.Second,
		RabbitExchange:      "notifications",
		RabbitQueue:         "notifications.create",
		RabbitRoutingKey:    "notification.*",
		RabbitConsumerTag:   "notification-consumer",
		RabbitPublishPrefix: "notification",
		OTELServiceName:     "lumen-park-notifications",
		OTLPInsecure:        true,
		LogLevel:            "info",
		LogFile:             "logs/app.log",
	}

	if addr := os.Getenv("HTTP_ADDR"); addr != "" {
		cfg.HTTPAddr = addr
	} else if port := os.Getenv("PORT"); port != "" {
		cfg.HTTPAddr = ":" + port
	}

	cfg.MySQLDSN = os.Getenv("MYSQL_DSN")
	cfg.SQLitePath = os.Getenv("SQLITE_PATH")
	cfg.RabbitMQURL = os.Getenv("RABBITMQ_URL")

	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}

	if v := os.Getenv("RABBITMQ_EXCHANGE"); v != "" {
		cfg.RabbitExchange = v
	}
	if v := os.Getenv("RABBITMQ_QUEUE"); v != "" {
		cfg.RabbitQueue = v
	}
	if v := os.Getenv("RABBITMQ_ROUTING_KEY"); v != "" {
		cfg.RabbitRoutingKey = v
	}
	if v := os.Getenv("RABBITMQ_CONSUMER_TAG"); v != "" {
		cfg.RabbitConsumerTag = v
	}
	if v := os.Getenv("RABBITMQ_PUBLISH_PREFIX"); v != "" {
		cfg.RabbitPublishPrefix = v
	}

	if v := os.Getenv("OTEL_SERVICE_NAME"); v != "" {
		cfg.OTELServiceName = v
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); v != "" {
		cfg.OTLPEndpoint = v
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_INSECURE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.OTLPInsecure = b
		}
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("LOG_FILE"); v != "" {
		cfg.LogFile = v
	}

	if n, ok := positiveInt("SSE_HEARTBEAT_SECONDS"); ok {
		cfg.SSEHeartbeat = time.Duration(n) * time.Second
	}
	if n, ok := positiveInt("SHUTDOWN_TIMEOUT_SECONDS"); ok {
		cfg.ShutdownTimeout = time.Duration(n) * time.Second
	}
	if n, ok := positiveInt("LIST_MAX_LIMIT"); ok {
		cfg.ListMaxLimit = n
	}
	if n, ok := positiveInt("LIST_DEFAULT_LIMIT"); ok {
		cfg.ListDefaultLimit = n
	}
	if cfg.ListDefaultLimit > cfg.ListMaxLimit {
		cfg.ListDefaultLimit = cfg.ListMaxLimit
	}

	return cfg
}

func positiveInt(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
