package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"connecta_backend/internal/services/dto"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(server.URL, WithHTTPClient(server.Client()))
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestLoginUnwrapsEnvelope(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/auth/login", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var req dto.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "fred@test.io", req.Email)

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"data": map[string]interface{}{
				"accessToken":  "jwt-abc",
				"refreshToken": "refresh-xyz",
				"user":         map[string]interface{}{"id": "u1", "email": "fred@test.io"},
			},
		})
	})

	resp, err := c.Login(context.Background(), dto.LoginRequest{Email: "fred@test.io", Password: "Password1!"})
	require.NoError(t, err)
	assert.Equal(t, "jwt-abc", resp.AccessToken)
	require.NotNil(t, resp.User)
	assert.Equal(t, "u1", resp.User.ID)
}

func TestFlattenedResponseTolerated(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		// No envelope at all, the payload is the body.
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"accessToken": "jwt-abc",
		})
	})

	resp, err := c.Login(context.Background(), dto.LoginRequest{Email: "fred@test.io", Password: "Password1!"})
	require.NoError(t, err)
	assert.Equal(t, "jwt-abc", resp.AccessToken)
}

func TestBearerTokenInjected(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer jwt-abc", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"data":    map[string]interface{}{"id": "u1"},
		})
	})
	c.SetToken("jwt-abc")

	user, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
}

func TestUnauthorizedFiresLogout(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]interface{}{
			"success": false,
			"message": "Token expired",
		})
	})

	loggedOut := false
	c.OnUnauthorized(func() { loggedOut = true })

	_, err := c.Me(context.Background())
	require.Error(t, err)
	assert.True(t, loggedOut)
	assert.ErrorIs(t, err, ErrUnauthorized)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Token expired", apiErr.Message)
}

func TestServerMessagePreferred(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusConflict, map[string]interface{}{
			"success": false,
			"message": "Jobs with proposals can only be closed, not deleted",
		})
	})

	err := c.do(context.Background(), http.MethodDelete, "/api/v1/jobs/j1", nil, nil, nil)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Jobs with proposals can only be closed, not deleted", apiErr.Message)
}

func TestEnvelopeFailureWithOKStatus(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": false,
			"error":   "something went sideways",
		})
	})

	_, err := c.Me(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "something went sideways", apiErr.Message)
}

func TestMyProfileMissingIsNil(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]interface{}{
			"success": false,
			"message": "Resource not found",
		})
	})

	profile, err := c.MyProfile(context.Background())
	require.NoError(t, err)
	assert.Nil(t, profile)
}

func TestSearchJobsQuery(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/jobs", r.URL.Path)
		assert.Equal(t, "go", r.URL.Query().Get("search"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"data": map[string]interface{}{
				"items":    []map[string]interface{}{{"id": "j1", "title": "Build a billing service"}},
				"total":    21,
				"page":     2,
				"pageSize": 20,
			},
		})
	})

	resp, err := c.SearchJobs(context.Background(), dto.JobSearchRequest{Search: "go", Page: 2, PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(21), resp.Total)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "j1", resp.Items[0].ID)
}
