// Package service implements the schema detection orchestrator
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"stencil/internal/core/classify"
	"stencil/internal/core/exemplar"
	perr "stencil/internal/platform/errors"
	"stencil/internal/platform/logger"
	"stencil/internal/services/detect/cache"
	"stencil/internal/services/detect/domain"
	eventsdom "stencil/internal/services/events/domain"
)

// Config for the detect service
type Config struct {
	RegistryDeadline time.Duration // overall classify and fetch budget
	MaxSessions      int           // LRU bound for session caches
}

// Service implements domain.ServicePort and domain.GuardPort.
//
// The state machine per request:
// CacheCheck, Classify, one of FastPath / RegistryLookup /
// ImmediateFallback, Generate, Log, Cache, Return. No error crosses the
// Detect boundary; every failure converges on a well formed Result
type Service struct {
	Meta     domain.MetadataPort
	Fetcher  domain.SchemaFetcher
	Events   eventsdom.SinkPort
	Sessions *cache.Manager
	Cfg      Config

	classifier *classify.Classifier
	log        logger.Logger
	now        func() time.Time
}

// New constructs the detect service
func New(ports domain.Ports, cfg Config) *Service {
	if ports.Metadata == nil || ports.Source == nil || ports.Events == nil {
		panic("detect.Service requires Metadata, Source, and Events ports")
	}
	if cfg.RegistryDeadline <= 0 {
		cfg.RegistryDeadline = DefaultDeadline
	}
	return &Service{
		Meta:       ports.Metadata,
		Fetcher:    NewFetcher(ports.Source, cfg.RegistryDeadline),
		Events:     ports.Events,
		Sessions:   cache.NewManager(cfg.MaxSessions),
		Cfg:        cfg,
		classifier: classify.New(),
		log:        *logger.Named("detect"),
		now:        time.Now,
	}
}

// Detect runs the detection state machine for one endpoint
func (s *Service) Detect(ctx context.Context, req domain.Request) domain.Result {
	start := s.now()
	if req.CorrelationID == "" {
		req.CorrelationID = uuid.NewString()
	}

	sess := s.Sessions.For(req.SessionID)
	if r, ok := sess.Get(req.EndpointName); ok {
		// cached results come back unchanged; the hit is log only
		s.log.Debug().
			Str("endpoint", req.EndpointName).
			Str("correlation_id", req.CorrelationID).
			Msg("detection cache hit")
		return r
	}

	// nothing observable has happened yet, so a caller that is already
	// gone leaves no trace: no event, no cache entry
	if ctx.Err() != nil {
		return s.finish(start, req, domain.Result{
			EndpointType: classify.Unknown,
			ExampleJSON:  exemplar.Fallback(),
			Status:       domain.StatusTimeout,
			ErrorMessage: "request canceled before detection started",
		})
	}

	// one ceiling over the whole classify and fetch sequence, retries
	// included; the deadline is never reset by a retry
	runCtx, cancelRun := context.WithTimeout(ctx, s.Cfg.RegistryDeadline)
	defer cancelRun()

	res := s.finish(start, req, s.run(runCtx, req))

	s.record(ctx, req, res)

	// a cancellation mid lookup says more about the caller's patience
	// than about the endpoint; it is logged above but never cached
	if ctx.Err() == nil {
		sess.Set(req.EndpointName, res)
	}
	return res
}

// ClearSession drops one session's cached results and invoke blocks
func (s *Service) ClearSession(sessionID string) { s.Sessions.Clear(sessionID) }

// InvokeBlocked implements domain.GuardPort
func (s *Service) InvokeBlocked(sessionID, endpointName string) bool {
	return s.Sessions.InvokeBlocked(sessionID, endpointName)
}

// run executes Classify and the branch it selects. The caller stamps
// identity and latency, then logs and caches
func (s *Service) run(ctx context.Context, req domain.Request) domain.Result {
	meta, err := s.Meta.Endpoint(ctx, req.EndpointName)
	if err != nil {
		return s.metaFailure(req, err)
	}

	switch s.classifier.Classify(meta) {
	case classify.ChatModel:
		// fast path: constant example, no schema, no further network
		return domain.Result{
			EndpointType: classify.ChatModel,
			ExampleJSON:  exemplar.Chat(),
			Status:       domain.StatusSuccess,
		}

	case classify.CustomModel:
		return s.registryLookup(ctx, meta)

	default:
		// no recognizable shape: deterministic fallback, no external call
		return domain.Result{
			EndpointType: classify.Unknown,
			ExampleJSON:  exemplar.Fallback(),
			Status:       domain.StatusFailure,
			ErrorMessage: "type not recognized",
		}
	}
}

// metaFailure maps an endpoint metadata lookup error onto a Result.
// Not found short circuits with a distinguished message and classification
// never runs
func (s *Service) metaFailure(req domain.Request, err error) domain.Result {
	r := domain.Result{
		EndpointType: classify.Unknown,
		ExampleJSON:  exemplar.Fallback(),
		Status:       domain.StatusFailure,
	}
	switch {
	case perr.IsCode(err, perr.ErrorCodeNotFound):
		r.ErrorMessage = fmt.Sprintf("endpoint not found: %s", req.EndpointName)
	case errors.Is(err, context.DeadlineExceeded):
		r.Status = domain.StatusTimeout
		r.ErrorMessage = fmt.Sprintf("endpoint metadata lookup timed out for %s", req.EndpointName)
	case errors.Is(err, context.Canceled):
		r.Status = domain.StatusTimeout
		r.ErrorMessage = "detection canceled"
	default:
		r.ErrorMessage = fmt.Sprintf("endpoint metadata lookup failed: %v", err)
	}
	return r
}

// registryLookup fetches and parses the model signature, then generates
// the example. Failures keep the caller usable with the fallback template
func (s *Service) registryLookup(ctx context.Context, meta classify.Metadata) domain.Result {
	sch, err := s.Fetcher.Fetch(ctx, meta.ModelName, meta.ModelVersion)
	if err == nil {
		example, genErr := exemplar.FromSchema(sch)
		if genErr != nil {
			return domain.Result{
				EndpointType: classify.CustomModel,
				ExampleJSON:  exemplar.Fallback(),
				Status:       domain.StatusFailure,
				ErrorMessage: fmt.Sprintf("schema for model %s yields no example: %v", meta.ModelName, genErr),
			}
		}
		return domain.Result{
			EndpointType: classify.CustomModel,
			Schema:       sch,
			ExampleJSON:  example,
			Status:       domain.StatusSuccess,
		}
	}

	r := domain.Result{
		EndpointType: classify.CustomModel,
		ExampleJSON:  exemplar.Fallback(),
		Status:       domain.StatusFailure,
		ErrorMessage: err.Error(),
	}
	switch {
	case perr.IsCode(err, perr.ErrorCodeDeadlineExceeded):
		r.Status = domain.StatusTimeout
	case errors.Is(err, context.Canceled):
		r.Status = domain.StatusTimeout
		r.ErrorMessage = "detection canceled during registry lookup"
	case perr.IsCode(err, perr.ErrorCodeForbidden):
		// the one failure class that crosses the boundary: the caller
		// must block invocation for this endpoint until the session resets
		r.PermissionDenied = true
		r.ErrorMessage = fmt.Sprintf("permission denied for model %s: invoking this endpoint is blocked", meta.ModelName)
	}
	return r
}

// finish stamps the request scoped fields every Result carries
func (s *Service) finish(start time.Time, req domain.Request, r domain.Result) domain.Result {
	r.EndpointName = req.EndpointName
	r.CorrelationID = req.CorrelationID
	r.LatencyMS = s.now().Sub(start).Milliseconds()
	r.DetectedAt = s.now().UTC()
	return r
}

// record appends exactly one event per non cache hit attempt. Sink
// failures are logged and swallowed: returning the result to the caller
// outranks the audit trail
func (s *Service) record(ctx context.Context, req domain.Request, res domain.Result) {
	var details *string
	if res.ErrorMessage != "" {
		details = &res.ErrorMessage
	}
	ev := eventsdom.DetectionEvent{
		ID:            uuid.New(),
		CorrelationID: res.CorrelationID,
		EndpointName:  res.EndpointName,
		DetectedType:  string(res.EndpointType),
		Status:        string(res.Status),
		LatencyMS:     res.LatencyMS,
		ErrorDetails:  details,
		ActorID:       req.ActorID,
		CreatedAt:     res.DetectedAt,
	}
	// the audit row should survive a caller that has already hung up
	if err := s.Events.Append(context.WithoutCancel(ctx), ev); err != nil {
		s.log.Warn().
			Err(err).
			Str("correlation_id", res.CorrelationID).
			Msg("detection event append failed")
	}
}
