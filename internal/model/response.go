package model

// APIResponse is the wire envelope shared by every service: a human-readable
// message plus an optional payload. Validation failures additionally carry
// the failing detail in Error.
type APIResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}
