package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// Gateways stores HTTP client settings for the external collaborators.
type Gateways struct {
	OrdersBaseURL    string
	LockersBaseURL   string
	LanesBaseURL     string
	TelemetryBaseURL string
	Timeout          time.Duration
	MaxAttempts      int
	BaseDelay        time.Duration
	MaxDelay         time.Duration
}

// Tracking stores poll loop intervals for tracking sessions.
type Tracking struct {
	StateInterval     time.Duration
	TelemetryInterval time.Duration
}

// Dispatch stores command dispatch settings.
type Dispatch struct {
	Timeout time.Duration
	// DefaultDroneID is used when a segment has no drone assigned.
	// The fallback is deliberate and logged on use.
	DefaultDroneID string
}

// DB stores database connection settings for the command audit log.
type DB struct {
	Host string
	Port string
	User string
	Pass string
	Name string
}

// DSN builds a postgres connection string.
func (d DB) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		d.User, d.Pass, d.Host, d.Port, d.Name)
}

// Kafka stores order-changed consumer settings. Empty brokers disable the consumer.
type Kafka struct {
	Brokers []string
	GroupID string
	Topic   string
}

// Pprof stores settings for the debug pprof listener.
type Pprof struct {
	Enabled bool
	Addr    string
	User    string
	Pass    string
}

// RateLimit stores settings for the dispatch endpoint limiter.
type RateLimit struct {
	Enabled    bool
	Rate       float64
	Burst      int
	TTL        time.Duration
	MaxBuckets int
}

// Config stores service-tracking settings.
type Config struct {
	Port      int
	Gateways  Gateways
	Tracking  Tracking
	Dispatch  Dispatch
	DB        DB
	Kafka     Kafka
	RateLimit RateLimit
	Pprof     Pprof
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: .env not loaded: %v", err)
	}
	return loadFrom(os.Args[1:], os.Getenv)
}

func loadFrom(args []string, getenv func(string) string) (*Config, error) {
	cfg := &Config{
		Port:      DefaultPort(),
		Gateways:  DefaultGateways(),
		Tracking:  DefaultTracking(),
		Dispatch:  DefaultDispatch(),
		DB:        DefaultDB(),
		Kafka:     DefaultKafka(),
		RateLimit: DefaultRateLimit(),
		Pprof:     DefaultPprof(),
	}

	applyEnv(cfg, getenv)

	fs := pflag.NewFlagSet("service-tracking", pflag.ContinueOnError)
	fs.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	fs.DurationVar(&cfg.Tracking.StateInterval, "state-interval", cfg.Tracking.StateInterval, "order state poll interval")
	fs.DurationVar(&cfg.Tracking.TelemetryInterval, "telemetry-interval", cfg.Tracking.TelemetryInterval, "drone telemetry poll interval")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port: %d", cfg.Port)
	}
	if cfg.Tracking.StateInterval <= 0 || cfg.Tracking.TelemetryInterval <= 0 {
		return nil, fmt.Errorf("poll intervals must be positive")
	}
	if cfg.Gateways.MaxAttempts < 1 {
		return nil, fmt.Errorf("gateway max attempts must be at least 1")
	}
	return cfg, nil
}

func applyEnv(cfg *Config, getenv func(string) string) {
	setStr := func(key string, dst *string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	setInt := func(key string, dst *int) {
		if v := getenv(key); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}
	setDur := func(key string, dst *time.Duration) {
		if v := getenv(key); v != "" {
			if d, err := time.ParseDuration(v); err == nil {
				*dst = d
			}
		}
	}

	setInt("PORT", &cfg.Port)

	setStr("ORDERS_BASE_URL", &cfg.Gateways.OrdersBaseURL)
	setStr("LOCKERS_BASE_URL", &cfg.Gateways.LockersBaseURL)
	setStr("LANES_BASE_URL", &cfg.Gateways.LanesBaseURL)
	setStr("TELEMETRY_BASE_URL", &cfg.Gateways.TelemetryBaseURL)
	setDur("GATEWAY_TIMEOUT", &cfg.Gateways.Timeout)
	setInt("GATEWAY_MAX_ATTEMPTS", &cfg.Gateways.MaxAttempts)
	setDur("GATEWAY_BASE_DELAY", &cfg.Gateways.BaseDelay)
	setDur("GATEWAY_MAX_DELAY", &cfg.Gateways.MaxDelay)

	setDur("TRACKING_STATE_INTERVAL", &cfg.Tracking.StateInterval)
	setDur("TRACKING_TELEMETRY_INTERVAL", &cfg.Tracking.TelemetryInterval)

	setDur("DISPATCH_TIMEOUT", &cfg.Dispatch.Timeout)
	setStr("DISPATCH_DEFAULT_DRONE_ID", &cfg.Dispatch.DefaultDroneID)

	setStr("DB_HOST", &cfg.DB.Host)
	setStr("DB_PORT", &cfg.DB.Port)
	setStr("DB_USER", &cfg.DB.User)
	setStr("DB_PASSWORD", &cfg.DB.Pass)
	setStr("DB_NAME", &cfg.DB.Name)

	if v := getenv("KAFKA_BROKERS"); v != "" {
		parts := strings.Split(v, ",")
		brokers := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				brokers = append(brokers, p)
			}
		}
		cfg.Kafka.Brokers = brokers
	}
	setStr("KAFKA_CONSUMER_GROUP", &cfg.Kafka.GroupID)
	setStr("KAFKA_ORDER_CHANGED_TOPIC", &cfg.Kafka.Topic)

	if v := getenv("PPROF_ENABLED"); v != "" {
		cfg.Pprof.Enabled = v == "true" || v == "1"
	}
	setStr("PPROF_ADDR", &cfg.Pprof.Addr)
	setStr("PPROF_USER", &cfg.Pprof.User)
	setStr("PPROF_PASS", &cfg.Pprof.Pass)

	if v := getenv("RATE_LIMIT_ENABLED"); v != "" {
		cfg.RateLimit.Enabled = v == "true" || v == "1"
	}
	setInt("RATE_LIMIT_BURST", &cfg.RateLimit.Burst)
}
