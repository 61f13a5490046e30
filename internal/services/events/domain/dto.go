package domain

// RecentInput filters the recent events listing
type RecentInput struct {
	EndpointName string `json:"endpoint_name,omitempty" validate:"omitempty,min=1,max=200" example:"support-chat"`
	Limit        int    `json:"limit,omitempty" validate:"omitempty,min=1,max=500" example:"100"`
}
