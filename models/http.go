package models

import "time"

// Response is the envelope every API endpoint answers with.
type Response struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`
	Message string     `json:"message,omitempty"`
}

// ErrorBody is the machine-readable code plus a human message.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HealthResponse is returned by GET /api/health. It is not wrapped in
// [Response].
type HealthResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// OK builds a success envelope.
func OK(data any, message string) Response {
	return Response{Success: true, Data: data, Message: message}
}

// Fail builds an error envelope.
func Fail(code, message string) Response {
	return Response{Error: &ErrorBody{Code: code, Message: message}}
}
