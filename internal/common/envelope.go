package common

// Envelope is the uniform response wrapper: every endpoint, success or
// failure, serializes to this shape.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func SuccessEnvelope(data any) Envelope {
	return Envelope{Success: true, Data: data}
}

func ErrorEnvelope(message string) Envelope {
	return Envelope{Success: false, Error: message}
}
