package dto

import (
	"errors"
	"fmt"
)

// ErrUnexpectedResponseFormat is returned when the scanner responds 2xx but the
// body is not the expected envelope, or any record in the batch is malformed.
// The whole batch is rejected, never a partial result.
var ErrUnexpectedResponseFormat = errors.New("Unexpected response format")

// UpstreamStatusError is a non-2xx scanner response, carrying the status and
// the raw response body for display.
type UpstreamStatusError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamStatusError) Error() string {
	return fmt.Sprintf("Scanner request failed (%d)", e.StatusCode)
}

// ErrorResponse is the generic failure body returned by the API.
type ErrorResponse struct {
	Ok      bool   `json:"ok"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
