// Package authclient is the blog service's view of the identity provider:
// a single whoami-by-token call. The caller's bearer token is forwarded
// unmodified, so this service never holds credentials or a signing secret.
package authclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"microblog/internal/model"
	"microblog/pkg/apierror"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type meEnvelope struct {
	Message string          `json:"message"`
	Data    *model.AuthUser `json:"data"`
}

// Me resolves a bearer token to the identity it was issued for by calling
// GET {base}/api/users/me. An explicit upstream rejection comes back as an
// *apierror.APIError carrying the upstream status and message untouched;
// any transport failure (timeout, refused connection, bad payload) comes
// back as a plain error.
func (c *Client) Me(ctx context.Context, bearerToken string) (model.AuthUser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/users/me", nil)
	if err != nil {
		return model.AuthUser{}, fmt.Errorf("build whoami request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+bearerToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.AuthUser{}, fmt.Errorf("call identity provider: %w", err)
	}
	defer resp.Body.Close()

	var envelope meEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		if resp.StatusCode == http.StatusOK {
			return model.AuthUser{}, fmt.Errorf("decode whoami response: %w", err)
		}
		// Rejected without a readable body: keep the status, not the noise.
		return model.AuthUser{}, apierror.New("Authentication failed", resp.StatusCode)
	}

	if resp.StatusCode != http.StatusOK {
		return model.AuthUser{}, apierror.New(envelope.Message, resp.StatusCode)
	}

	if envelope.Data == nil || envelope.Data.ID == "" {
		return model.AuthUser{}, fmt.Errorf("whoami response missing identity")
	}

	return *envelope.Data, nil
}
