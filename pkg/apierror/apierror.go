package apierror

import "fmt"

// APIError is an error that maps directly to an HTTP response: the message
// is safe to show the caller, the status picks the response code.
type APIError struct {
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}

	return fmt.Sprintf("%d: %s", e.HTTPStatus, e.Message)
}

func New(message string, status int) *APIError {
	return &APIError{Message: message, HTTPStatus: status}
}
