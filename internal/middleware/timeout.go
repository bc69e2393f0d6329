package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"microblog/internal/model"
)

const defaultRequestTimeout = 30 * time.Second

// Timeout cuts off handlers that outrun the request deadline and answers
// with the platform's JSON envelope.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	body, _ := json.Marshal(model.APIResponse{Message: "Request timed out"})

	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, timeout, string(body))
	}
}
