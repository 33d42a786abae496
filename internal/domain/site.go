package domain

type CtxKey string

const (
	KeyRequestID CtxKey = "RequestID"
	KeySubject   CtxKey = "Subject"
)

// SiteConfig is what the view layer needs to know about the deployment.
type SiteConfig struct {
	Editable bool `json:"editable"`
}

// HealthStatus is the body of the health endpoint.
type HealthStatus struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services"`
}
