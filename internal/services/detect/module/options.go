package module

import (
	"time"

	"stencil/internal/platform/config"
	"stencil/internal/services/detect/cache"
	"stencil/internal/services/detect/service"
)

// Options holds configuration settings for the detect module
type Options struct {
	// RegistryDeadline caps one registry lookup including all retries
	RegistryDeadline time.Duration

	// SessionLimit bounds how many session caches are kept before the
	// idlest is evicted
	SessionLimit int
}

// FromConfig extracts Options from the given config.Conf
func FromConfig(cfg config.Conf) Options {
	df := cfg.Prefix("CORE_DETECT_")
	return Options{
		RegistryDeadline: df.MayDuration("REGISTRY_DEADLINE", service.DefaultDeadline),
		SessionLimit:     df.MayInt("SESSION_LIMIT", cache.DefaultMaxSessions),
	}
}
