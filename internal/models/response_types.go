package models

import "time"

// APIResponse is the uniform JSON envelope for every endpoint.
type APIResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Data      any       `json:"data,omitempty"`
	ErrorCode string    `json:"errorCode,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// OK builds a success envelope. Pass nil data for message-only responses.
func OK(message string, data any) APIResponse {
	return APIResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// Fail builds an error envelope with a machine-readable code.
func Fail(message, errorCode string) APIResponse {
	return APIResponse{
		Success:   false,
		Message:   message,
		ErrorCode: errorCode,
		Timestamp: time.Now(),
	}
}
