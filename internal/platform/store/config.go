package store

import "time"

// Config aggregates per backend configuration
type Config struct {
	// AppName and Tag annotate backend connections (pg application_name,
	// clickhouse client info)
	AppName string
	Tag     string

	PG PGConfig
	CH CHConfig
}

// PGConfig configures postgres connectivity and tracing
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	// Guard/boot knobs:
	ConnectRetries int           // ping attempts before giving up, default 20
	PingTimeout    time.Duration // per ping attempt, default 3s
}

// CHConfig configures clickhouse connectivity
type CHConfig struct {
	Enabled bool
	URL     string
}
