// Package response writes the JSON envelope shared by every endpoint:
//
//	{"success": bool, "message": string, "data": ..., "error": ...}
package response

import (
	"github.com/labstack/echo/v4"
)

// Envelope is the body of every API response.
type Envelope struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Data      any    `json:"data,omitempty"`
	Error     any    `json:"error,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

// OK writes a success envelope.
func OK(c echo.Context, status int, message string, data any) error {
	return c.JSON(status, Envelope{Success: true, Message: message, Data: data})
}

// Fail writes a failure envelope. detail is omitted when nil.
func Fail(c echo.Context, status int, message string, detail any) error {
	return c.JSON(status, Envelope{Success: false, Message: message, Error: detail})
}
