package service

import (
	"context"
	"errors"
	"time"

	"stencil/internal/adapters/registry"
	"stencil/internal/core/schema"
	perr "stencil/internal/platform/errors"
	"stencil/internal/platform/logger"
	"stencil/internal/services/detect/domain"
)

// DefaultDeadline bounds one registry lookup across all retries
const DefaultDeadline = 5 * time.Second

// defaultSchedule waits between rate limited attempts
var defaultSchedule = []time.Duration{2 * time.Second, 4 * time.Second, 8 * time.Second}

// Fetcher drives a SchemaSource under the detection retry policy: only
// rate limited responses retry, waits follow the fixed schedule, and the
// overall deadline is never slept past
type Fetcher struct {
	Source   domain.SchemaSource
	Deadline time.Duration
	Schedule []time.Duration

	log   logger.Logger
	now   func() time.Time
	sleep func(time.Duration)
}

// NewFetcher constructs a Fetcher with the standard schedule
func NewFetcher(source domain.SchemaSource, deadline time.Duration) *Fetcher {
	if source == nil {
		panic("detect.Fetcher requires a non nil SchemaSource")
	}
	if deadline <= 0 {
		deadline = DefaultDeadline
	}
	return &Fetcher{
		Source:   source,
		Deadline: deadline,
		Schedule: defaultSchedule,
		log:      *logger.Named("detect.fetcher"),
		now:      time.Now,
		sleep:    time.Sleep,
	}
}

// Fetch returns the parsed input schema for one model version.
//
// Error classes: DeadlineExceeded when the budget ran out, including a
// retry delay that would overrun it; TooManyRequests when the schedule
// was exhausted first; Forbidden, NotFound, MalformedUpstream, and
// Unavailable pass through from the source with zero retries
func (f *Fetcher) Fetch(ctx context.Context, name, version string) (*schema.Schema, error) {
	deadlineAt := f.now().Add(f.Deadline)

	for attempt := 0; ; attempt++ {
		raw, err := f.Source.ModelSchema(ctx, name, version)
		if err == nil {
			sch, parseErr := schema.Parse(raw)
			if parseErr != nil {
				// never partially trust an unparseable schema
				return nil, perr.MalformedUpstreamf("schema for model %q version %s: %v", name, version, parseErr)
			}
			return sch, nil
		}

		// the run context carries the same overall deadline, so hitting it
		// anywhere inside the source call is a timeout, not a failure
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, perr.DeadlineExceededf("registry lookup for %q exceeded %s budget", name, f.Deadline)
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		var rl *registry.RateLimitedError
		if !errors.As(err, &rl) {
			// not found, permission denied, malformed, unavailable: terminal
			return nil, err
		}
		if attempt >= len(f.Schedule) {
			return nil, perr.TooManyRequestsf("registry rate limited after %d retries", len(f.Schedule))
		}

		delay := f.Schedule[attempt]
		wait := delay
		if rl.RetryAfter > wait {
			// the server demands more patience than the schedule allows;
			// used only to fail fast, never to sleep longer
			wait = rl.RetryAfter
		}
		if f.now().Add(wait).After(deadlineAt) {
			return nil, perr.DeadlineExceededf("registry retry after %s would exceed %s budget for %q", wait, f.Deadline, name)
		}

		f.log.Debug().
			Str("model", name).
			Int("attempt", attempt).
			Dur("delay", delay).
			Dur("retry_after", rl.RetryAfter).
			Msg("registry rate limited backing off")
		f.sleep(delay)
	}
}
