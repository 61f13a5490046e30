// Package service contains invocation workflows
package service

import (
	"context"
	"encoding/json"
	"strings"

	perr "stencil/internal/platform/errors"
	"stencil/internal/services/api/invoke/domain"
)

// Service implements domain.ServicePort
type Service struct {
	Invoker domain.InvokerPort
	Guard   domain.GuardPort
}

// New creates a new invoke service
func New(ports domain.Ports) *Service {
	if ports.Invoker == nil || ports.Guard == nil {
		panic("invoke.Service requires Invoker and Guard ports")
	}
	return &Service{Invoker: ports.Invoker, Guard: ports.Guard}
}

// Invoke forwards the payload to the endpoint. A session endpoint pair
// that detection marked permission denied is refused here until the
// session cache is cleared
func (s *Service) Invoke(ctx context.Context, sessionID string, in domain.InvokeInput) (domain.InvokeResponse, error) {
	if s.Guard.InvokeBlocked(sessionID, in.EndpointName) {
		return domain.InvokeResponse{}, perr.Forbiddenf(
			"invoking %s is blocked for this session: schema detection was denied access to its model", in.EndpointName)
	}

	res, err := s.Invoker.Invoke(ctx, in.EndpointName, in.Payload)
	if err != nil {
		return domain.InvokeResponse{}, err
	}

	out := domain.InvokeResponse{
		Status:      res.Status,
		ContentType: res.ContentType,
		LatencyMS:   res.Latency.Milliseconds(),
	}
	out.Body = renderBody(res.ContentType, res.Body)
	return out, nil
}

// renderBody keeps JSON upstream bodies as JSON in the envelope and
// falls back to a string for anything else
func renderBody(contentType string, body []byte) any {
	if len(body) == 0 {
		return nil
	}
	if strings.Contains(contentType, "json") && json.Valid(body) {
		return json.RawMessage(body)
	}
	return string(body)
}
