package dto

// HealthResponse is the liveness payload served at the root route.
type HealthResponse struct {
	OK      bool   `json:"ok"`
	Service string `json:"service"`
}
