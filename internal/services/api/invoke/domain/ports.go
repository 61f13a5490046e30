package domain

import (
	"context"

	"stencil/internal/adapters/serving"
)

// ServicePort defines the service contract for invocation
type ServicePort interface {
	Invoke(ctx context.Context, sessionID string, in InvokeInput) (InvokeResponse, error)
}

// InvokerPort is the slice of the serving client invocation needs
type InvokerPort interface {
	Invoke(ctx context.Context, name string, payload []byte) (serving.InvokeResult, error)
}

// GuardPort mirrors detect's guard: a permission denied detection blocks
// the session endpoint pair until the session cache is cleared
type GuardPort interface {
	InvokeBlocked(sessionID, endpointName string) bool
}

// Ports are dependencies injected into the invoke module
type Ports struct {
	Invoker InvokerPort // required
	Guard   GuardPort   // required
}
