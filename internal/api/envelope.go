package api

import "encoding/json"

// Envelope is the uniform response shape of every remote operation. A call
// either succeeds with a payload or declines with a human-readable message.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
}
