package domain

// DetectInput asks for schema detection of one endpoint
type DetectInput struct {
	EndpointName  string `json:"endpoint_name" validate:"required,min=1,max=200" example:"support-chat"`
	CorrelationID string `json:"correlation_id,omitempty" validate:"omitempty,max=128" example:"6f1e8a02-4c63-4c9f-9f7e-2b1f2a9c0d11"`
}
