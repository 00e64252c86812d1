package config

import "time"

const defaultPort = 8080

var defaultGateways = Gateways{
	OrdersBaseURL:    "http://localhost:8081",
	LockersBaseURL:   "http://localhost:8082",
	LanesBaseURL:     "http://localhost:8083",
	TelemetryBaseURL: "http://localhost:8084",
	Timeout:          3 * time.Second,
	MaxAttempts:      4,
	BaseDelay:        150 * time.Millisecond,
	MaxDelay:         2 * time.Second,
}

var defaultTracking = Tracking{
	StateInterval:     5 * time.Second,
	TelemetryInterval: time.Second,
}

var defaultDispatch = Dispatch{
	Timeout:        3 * time.Second,
	DefaultDroneID: "GCS-FALLBACK-01",
}

var defaultDB = DB{
	Host: "127.0.0.1",
	Port: "5432",
	User: "tracking",
	Pass: "tracking",
	Name: "tracking",
}

var defaultKafka = Kafka{
	Brokers: nil,
	GroupID: "service-tracking",
	Topic:   "order-changed",
}

var defaultPprof = Pprof{
	Enabled: false,
	Addr:    "127.0.0.1:6060",
}

var defaultRateLimit = RateLimit{
	Enabled:    true,
	Rate:       5,
	Burst:      10,
	TTL:        10 * time.Minute,
	MaxBuckets: 10000,
}

// DefaultPort returns the default HTTP port.
func DefaultPort() int { return defaultPort }

// DefaultGateways returns the default gateway settings.
func DefaultGateways() Gateways { return defaultGateways }

// DefaultTracking returns the default tracking poller settings.
func DefaultTracking() Tracking { return defaultTracking }

// DefaultDispatch returns the default command dispatch settings.
func DefaultDispatch() Dispatch { return defaultDispatch }

// DefaultDB returns the default database settings.
func DefaultDB() DB { return defaultDB }

// DefaultKafka returns the default Kafka settings.
func DefaultKafka() Kafka { return defaultKafka }

// DefaultRateLimit returns the default rate limit settings.
func DefaultRateLimit() RateLimit { return defaultRateLimit }

// DefaultPprof returns the default pprof listener settings.
func DefaultPprof() Pprof { return defaultPprof }
