package module

import "stencil/internal/platform/config"

// Sink backends for detection events
const (
	SinkPostgres   = "postgres"
	SinkClickhouse = "clickhouse"
)

// Options holds configuration settings for the events module
type Options struct {
	// Sink selects the events backend, postgres or clickhouse
	Sink string
}

// FromConfig extracts Options from the given config.Conf
func FromConfig(cfg config.Conf) Options {
	ef := cfg.Prefix("CORE_EVENTS_")
	return Options{
		Sink: ef.MayEnum("SINK", SinkPostgres, SinkPostgres, SinkClickhouse),
	}
}
