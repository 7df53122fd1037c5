package dto

import "time"

// ErrorResponse is the JSON body returned for every failed request.
//
// Fields:
//   - Message: human readable summary (e.g., "crypto is not supported: XYZ").
//   - ErrorDetails: underlying error text, omitted when empty.
//   - Timestamp: UTC time the error was produced.
type ErrorResponse struct {
	Message      string    `json:"message" example:"invalid date format"`
	ErrorDetails string    `json:"error,omitempty" example:"parsing time \"2022/01/01\""`
	Timestamp    time.Time `json:"timestamp" example:"2022-01-01T00:00:00Z"`
}

// Error implements the error interface so an ErrorResponse can be passed to c.Error.
func (e ErrorResponse) Error() string {
	if e.ErrorDetails == "" {
		return e.Message
	}
	return e.Message + ": " + e.ErrorDetails
}

// NewErrorResponse builds an ErrorResponse stamped with the current UTC time.
// err may be nil.
func NewErrorResponse(message string, err error) ErrorResponse {
	resp := ErrorResponse{
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
	if err != nil {
		resp.ErrorDetails = err.Error()
	}
	return resp
}
