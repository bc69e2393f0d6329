package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"microblog/internal/authclient"
	"microblog/internal/config"
	"microblog/internal/handler"
	"microblog/internal/middleware"
	"microblog/internal/model"
	"microblog/internal/repository"
	"microblog/internal/router"
	"microblog/internal/service"
)

// newBlogServiceServer runs the blog router behind a remote guard whose
// upstream is a stub identity provider that accepts every token as John Doe.
func newBlogServiceServer(t *testing.T) *httptest.Server {
	t.Helper()

	identityStub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(model.APIResponse{
			Message: "Profile fetched successfully",
			Data:    model.AuthUser{ID: "user-1", Username: "John Doe", Email: "johndoe@example.com"},
		})
	}))
	t.Cleanup(identityStub.Close)

	cfg := &config.BlogService{
		RequestTimeout: 5 * time.Second,
		UserServiceURL: identityStub.URL,
		AuthTimeout:    time.Second,
	}

	guard := middleware.NewRemoteAuthMiddleware(authclient.New(identityStub.URL, time.Second))
	appRouter := router.NewBlogService(cfg, guard,
		handler.NewBlogHandler(service.NewBlogService(repository.NewMemoryBlogStore())),
		func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	server := httptest.NewServer(appRouter)
	t.Cleanup(server.Close)
	return server
}

func doAuthedJSON(t *testing.T, method string, url string, payload any) (*http.Response, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer any-token")
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func TestBlogCRUD(t *testing.T) {
	server := newBlogServiceServer(t)

	resp, body := doAuthedJSON(t, http.MethodPost, server.URL+"/api/blogs", map[string]any{
		"title":   "First post",
		"content": "Hello from the blog service.",
		"tags":    []string{"intro"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Equal(t, "Blog created successfully", body["message"])

	data := body["data"].(map[string]any)
	id := data["_id"].(string)
	require.Equal(t, "John Doe", data["author"])
	require.Equal(t, "user-1", data["authorId"])

	resp, body = doAuthedJSON(t, http.MethodGet, server.URL+"/api/blogs/"+id, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "Blog fetched successfully", body["message"])

	resp, body = doAuthedJSON(t, http.MethodPut, server.URL+"/api/blogs/"+id, map[string]any{
		"title": "Renamed post",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "Blog updated successfully", body["message"])
	require.Equal(t, "Renamed post", body["data"].(map[string]any)["title"])

	resp, body = doAuthedJSON(t, http.MethodDelete, server.URL+"/api/blogs/"+id, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "Blog deleted successfully", body["message"])

	resp, body = doAuthedJSON(t, http.MethodGet, server.URL+"/api/blogs/"+id, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Equal(t, "Blog not found", body["message"])
}

func TestBlogInvalidID(t *testing.T) {
	server := newBlogServiceServer(t)

	resp, body := doAuthedJSON(t, http.MethodGet, server.URL+"/api/blogs/not-a-uuid", nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "Request Validation Failed", body["message"])
}

func TestBlogCreateValidation(t *testing.T) {
	server := newBlogServiceServer(t)

	resp, body := doAuthedJSON(t, http.MethodPost, server.URL+"/api/blogs", map[string]any{
		"title":   "Hi",
		"content": "short",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "Request Validation Failed", body["message"])
	require.NotEmpty(t, body["error"])
}

func TestBlogRequiresAuth(t *testing.T) {
	server := newBlogServiceServer(t)

	resp, err := http.Get(server.URL + "/api/blogs")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "Unauthorized", body["message"])
}
