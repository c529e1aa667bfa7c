package responses

import "time"

// APIResponse is the envelope every JSON endpoint returns.
type APIResponse[T any] struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Data      *T        `json:"data,omitempty"`
	Error     string    `json:"error,omitempty"`
	// ConflictID carries the conflicting entity id on 409 responses so the
	// caller can resolve the conflict manually.
	ConflictID string `json:"conflict_id,omitempty"`
}
