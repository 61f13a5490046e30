package serving

import (
	"time"

	tim "stencil/internal/platform/time"
)

// rawEndpoint mirrors the control plane wire shape for one endpoint
type rawEndpoint struct {
	Name              string `json:"name"`
	Creator           string `json:"creator"`
	Task              string `json:"task"`
	CreationTimestamp int64  `json:"creation_timestamp"`
	State             struct {
		Ready string `json:"ready"`
	} `json:"state"`
	Config struct {
		ServedEntities []servedEntity `json:"served_entities"`
	} `json:"config"`
}

type servedEntity struct {
	Name          string `json:"name"`
	EntityName    string `json:"entity_name"`
	EntityVersion string `json:"entity_version"`
}

// endpointsPage is one page of the list response
type endpointsPage struct {
	Endpoints     []rawEndpoint `json:"endpoints"`
	NextPageToken string        `json:"next_page_token"`
}

// Endpoint is the metadata shape the rest of the app consumes.
// ModelName and ModelVersion come from the first served entity and stay
// empty for endpoints that do not front a registered model.
// CreatedAt is nil when the control plane carries no creation timestamp
type Endpoint struct {
	Name         string     `json:"name"`
	State        string     `json:"state,omitempty"`
	Task         string     `json:"task,omitempty"`
	Creator      string     `json:"creator,omitempty"`
	ModelName    string     `json:"model_name,omitempty"`
	ModelVersion string     `json:"model_version,omitempty"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
}

// InvokeResult is the upstream response from an invocation, verbatim.
// Non-2xx statuses are data here, not errors: the workbench renders
// whatever the model returned
type InvokeResult struct {
	Status      int
	ContentType string
	Body        []byte
	Latency     time.Duration
}

func (r rawEndpoint) toEndpoint() Endpoint {
	e := Endpoint{
		Name:    r.Name,
		State:   r.State.Ready,
		Task:    r.Task,
		Creator: r.Creator,
	}
	if len(r.Config.ServedEntities) > 0 {
		e.ModelName = r.Config.ServedEntities[0].EntityName
		e.ModelVersion = r.Config.ServedEntities[0].EntityVersion
	}
	var created time.Time
	if r.CreationTimestamp > 0 {
		created = time.UnixMilli(r.CreationTimestamp).UTC()
	}
	e.CreatedAt = tim.Ptr(created)
	return e
}
