package proxy

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoro11031/routegen/internal/config"
)

const testSecret = "test-secret"

// recordedRequest is what the fake backend saw.
type recordedRequest struct {
	Method        string
	Path          string
	Authorization string
	CacheControl  string
	ContentType   string
	RequestID     string
	Body          string
}

type fakeBackend struct {
	mu       sync.Mutex
	requests []recordedRequest
	status   int
	body     string
}

func newFakeBackend(t *testing.T, status int, body string) (*fakeBackend, *httptest.Server) {
	t.Helper()
	fb := &fakeBackend{status: status, body: body}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		fb.mu.Lock()
		fb.requests = append(fb.requests, recordedRequest{
			Method:        r.Method,
			Path:          r.URL.Path,
			Authorization: r.Header.Get("Authorization"),
			CacheControl:  r.Header.Get("Cache-Control"),
			ContentType:   r.Header.Get("Content-Type"),
			RequestID:     r.Header.Get("X-Request-ID"),
			Body:          string(data),
		})
		fb.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(fb.status)
		io.WriteString(w, fb.body)
	}))
	t.Cleanup(srv.Close)
	return fb, srv
}

func (fb *fakeBackend) calls() []recordedRequest {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return append([]recordedRequest(nil), fb.requests...)
}

func setupTestServer(t *testing.T, apiURL string) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s, err := NewServer(config.ServeSettings{
		APIURL:          apiURL,
		AuthSecret:      testSecret,
		ListenAddr:      ":3000",
		SessionCookie:   "next-auth.session-token",
		UpstreamTimeout: 2 * time.Second,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return s
}

func sessionCookie(t *testing.T, s *Server, session Session) *http.Cookie {
	t.Helper()
	token, err := s.Sessions().Sign(session, time.Hour)
	require.NoError(t, err)
	return &http.Cookie{Name: "next-auth.session-token", Value: token}
}

func serve(s *Server, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return out
}

func TestHandlersRequireSession(t *testing.T) {
	backend, upstream := newFakeBackend(t, http.StatusOK, `{}`)
	s := setupTestServer(t, upstream.URL)

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		t.Run(method+" without session returns 401", func(t *testing.T) {
			req := httptest.NewRequest(method, "/api/customers/7", strings.NewReader(`{}`))
			w := serve(s, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, "Unauthorized", decodeBody(t, w)["error"])
		})
	}

	t.Run("wrongly signed session returns 401", func(t *testing.T) {
		other := NewSessionResolver("another-secret", "next-auth.session-token")
		token, err := other.Sign(Session{UserID: "1"}, time.Hour)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/customers/7", nil)
		req.AddCookie(&http.Cookie{Name: "next-auth.session-token", Value: token})
		assert.Equal(t, http.StatusUnauthorized, serve(s, req).Code)
	})

	t.Run("expired session returns 401", func(t *testing.T) {
		token, err := s.Sessions().Sign(Session{UserID: "1"}, -time.Minute)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/customers/7", nil)
		req.AddCookie(&http.Cookie{Name: "next-auth.session-token", Value: token})
		assert.Equal(t, http.StatusUnauthorized, serve(s, req).Code)
	})

	t.Run("session without expiry returns 401", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"id":    "1",
			"token": "api-token",
		}).SignedString([]byte(testSecret))
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/customers/7", nil)
		req.AddCookie(&http.Cookie{Name: "next-auth.session-token", Value: token})
		assert.Equal(t, http.StatusUnauthorized, serve(s, req).Code)
	})

	assert.Empty(t, backend.calls(), "backend must not be contacted without a session")
}

func TestGetCustomer(t *testing.T) {
	backend, upstream := newFakeBackend(t, http.StatusOK, `{"data":{"id":7,"name":"Acme"}}`)
	s := setupTestServer(t, upstream.URL)

	req := httptest.NewRequest(http.MethodGet, "/api/customers/7", nil)
	req.AddCookie(sessionCookie(t, s, Session{Token: "api-token", UserID: "42"}))
	req.Header.Set("X-Request-ID", "req-123")
	w := serve(s, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"data":{"id":7,"name":"Acme"}}`, w.Body.String())
	assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))

	calls := backend.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, http.MethodGet, calls[0].Method)
	assert.Equal(t, "/api/customers/7", calls[0].Path)
	assert.Equal(t, "Bearer api-token", calls[0].Authorization)
	assert.Equal(t, "no-store", calls[0].CacheControl)
	assert.Equal(t, "req-123", calls[0].RequestID)
}

func TestGetCustomerNotFound(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusForbidden, http.StatusInternalServerError} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			_, upstream := newFakeBackend(t, status, `{"error":"nope"}`)
			s := setupTestServer(t, upstream.URL)

			req := httptest.NewRequest(http.MethodGet, "/api/customers/7", nil)
			req.AddCookie(sessionCookie(t, s, Session{UserID: "42"}))
			w := serve(s, req)

			assert.Equal(t, http.StatusNotFound, w.Code)
			assert.Equal(t, "Customer not found", decodeBody(t, w)["error"])
		})
	}
}

func TestGetCustomerInvalidUpstreamJSON(t *testing.T) {
	_, upstream := newFakeBackend(t, http.StatusOK, `<html>`)
	s := setupTestServer(t, upstream.URL)

	req := httptest.NewRequest(http.MethodGet, "/api/customers/7", nil)
	req.AddCookie(sessionCookie(t, s, Session{UserID: "42"}))
	w := serve(s, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal server error", decodeBody(t, w)["error"])
}

func TestGetCustomerInvalidID(t *testing.T) {
	backend, upstream := newFakeBackend(t, http.StatusOK, `{}`)
	s := setupTestServer(t, upstream.URL)

	req := httptest.NewRequest(http.MethodGet, "/api/customers/a%3Fb", nil)
	req.AddCookie(sessionCookie(t, s, Session{UserID: "42"}))
	w := serve(s, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, backend.calls())
}

func TestBearerTokenFallsBackToUserID(t *testing.T) {
	backend, upstream := newFakeBackend(t, http.StatusOK, `{}`)
	s := setupTestServer(t, upstream.URL)

	req := httptest.NewRequest(http.MethodGet, "/api/customers/7", nil)
	req.AddCookie(sessionCookie(t, s, Session{UserID: "42"}))
	require.Equal(t, http.StatusOK, serve(s, req).Code)

	calls := backend.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "Bearer 42", calls[0].Authorization)
}

func TestSessionFromAuthorizationHeader(t *testing.T) {
	backend, upstream := newFakeBackend(t, http.StatusOK, `{}`)
	s := setupTestServer(t, upstream.URL)

	token, err := s.Sessions().Sign(Session{Token: "header-token"}, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/customers/7", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	require.Equal(t, http.StatusOK, serve(s, req).Code)

	calls := backend.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "Bearer header-token", calls[0].Authorization)
}

func TestPutCustomer(t *testing.T) {
	backend, upstream := newFakeBackend(t, http.StatusOK, `{"data":{"id":7,"name":"Renamed"}}`)
	s := setupTestServer(t, upstream.URL)

	req := httptest.NewRequest(http.MethodPut, "/api/customers/7", strings.NewReader(`{"name":"Renamed"}`))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(sessionCookie(t, s, Session{Token: "api-token"}))
	w := serve(s, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"data":{"id":7,"name":"Renamed"}}`, w.Body.String())

	calls := backend.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, http.MethodPut, calls[0].Method)
	assert.Equal(t, "/api/customers/7", calls[0].Path)
	assert.Equal(t, "application/json", calls[0].ContentType)
	assert.Equal(t, "Bearer api-token", calls[0].Authorization)
	assert.JSONEq(t, `{"data":{"name":"Renamed"}}`, calls[0].Body)
	assert.NotEmpty(t, calls[0].RequestID, "request id should be generated")
}

func TestPutCustomerUpstreamFailure(t *testing.T) {
	_, upstream := newFakeBackend(t, http.StatusBadRequest, `{"error":"validation"}`)
	s := setupTestServer(t, upstream.URL)

	req := httptest.NewRequest(http.MethodPut, "/api/customers/7", strings.NewReader(`{"email":"bad"}`))
	req.AddCookie(sessionCookie(t, s, Session{Token: "api-token"}))
	w := serve(s, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Failed to update customer", decodeBody(t, w)["error"])
}

func TestPutCustomerInvalidBody(t *testing.T) {
	backend, upstream := newFakeBackend(t, http.StatusOK, `{}`)
	s := setupTestServer(t, upstream.URL)

	req := httptest.NewRequest(http.MethodPut, "/api/customers/7", strings.NewReader(`{not json`))
	req.AddCookie(sessionCookie(t, s, Session{Token: "api-token"}))
	w := serve(s, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal server error", decodeBody(t, w)["error"])
	assert.Empty(t, backend.calls())
}

func TestDeleteCustomer(t *testing.T) {
	backend, upstream := newFakeBackend(t, http.StatusNoContent, ``)
	s := setupTestServer(t, upstream.URL)

	req := httptest.NewRequest(http.MethodDelete, "/api/customers/7", nil)
	req.AddCookie(sessionCookie(t, s, Session{Token: "api-token"}))
	w := serve(s, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeBody(t, w)["success"])

	calls := backend.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, http.MethodDelete, calls[0].Method)
	assert.Equal(t, "/api/customers/7", calls[0].Path)
	assert.Equal(t, "Bearer api-token", calls[0].Authorization)
}

func TestDeleteCustomerUpstreamFailure(t *testing.T) {
	_, upstream := newFakeBackend(t, http.StatusForbidden, `{}`)
	s := setupTestServer(t, upstream.URL)

	req := httptest.NewRequest(http.MethodDelete, "/api/customers/7", nil)
	req.AddCookie(sessionCookie(t, s, Session{Token: "api-token"}))
	w := serve(s, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Failed to delete customer", decodeBody(t, w)["error"])
}

func TestUpstreamUnreachable(t *testing.T) {
	_, upstream := newFakeBackend(t, http.StatusOK, `{}`)
	url := upstream.URL
	upstream.Close()

	s := setupTestServer(t, url)

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		t.Run(method, func(t *testing.T) {
			req := httptest.NewRequest(method, "/api/customers/7", strings.NewReader(`{}`))
			req.AddCookie(sessionCookie(t, s, Session{Token: "api-token"}))
			w := serve(s, req)

			assert.Equal(t, http.StatusInternalServerError, w.Code)
			assert.Equal(t, "Internal server error", decodeBody(t, w)["error"])
		})
	}
}
