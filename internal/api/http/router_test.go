package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/hostel-cms/complaint-service/internal/api/http/handlers"
	"github.com/hostel-cms/complaint-service/internal/auth"
	"github.com/hostel-cms/complaint-service/internal/config"
	"github.com/hostel-cms/complaint-service/internal/events"
	"github.com/hostel-cms/complaint-service/internal/observability"
	"github.com/hostel-cms/complaint-service/internal/repository/memory"
	"github.com/hostel-cms/complaint-service/internal/service"
)

type testServer struct {
	app     *fiber.App
	auth    *service.AuthService
	metrics *observability.Metrics
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	logger := zap.NewNop()
	metrics := observability.NewMetrics()
	store := memory.NewStore()

	tokens := auth.NewTokenManager("test-secret", time.Hour)
	authService := service.NewAuthService(config.AuthConfig{BcryptCost: bcrypt.MinCost}, service.AuthDependencies{
		UserRepo: store.Users,
		Tokens:   tokens,
	})
	complaintService := service.NewComplaintService(service.ComplaintDependencies{
		ComplaintRepo: store.Complaints,
		UserRepo:      store.Users,
		Dispatcher:    events.NewInMemoryDispatcher(logger),
		Logger:        logger,
	})
	announcementService := service.NewAnnouncementService(store.Announcements, nil)

	app := NewApp("test", logger, metrics, 5*time.Second)
	RegisterRoutes(app, RouteConfig{
		Health:         handlers.NewHealthHandler("test", "dev", nil, metrics),
		Auth:           handlers.NewAuthHandler(authService),
		Users:          handlers.NewUsersHandler(authService),
		Complaints:     handlers.NewComplaintsHandler(complaintService),
		Announcements:  handlers.NewAnnouncementsHandler(announcementService),
		AuthMiddleware: auth.NewAuthMiddleware(tokens),
	})
	return &testServer{app: app, auth: authService, metrics: metrics}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

func (s *testServer) wardenToken(t *testing.T) string {
	t.Helper()
	_, err := s.auth.CreateWarden(context.Background(), "Warden Sharma", "warden@hostel.com", "warden123", "Block A")
	require.NoError(t, err)
	status, body := s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "warden@hostel.com", "password": "warden123",
	})
	require.Equal(t, http.StatusOK, status, string(body))
	return decode[map[string]any](t, body)["token"].(string)
}

func TestComplaintLifecycleScenario(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Student A", "email": "a@hostel.com", "password": "pass123",
		"roomNumber": "A-204", "hostel": "Block A", "rollNumber": "R-100",
	})
	require.Equal(t, http.StatusCreated, status, string(body))
	registered := decode[map[string]any](t, body)
	studentToken := registered["token"].(string)
	user := registered["user"].(map[string]any)
	assert.Equal(t, "student", user["role"])
	assert.NotContains(t, string(body), "password")

	status, body = s.do(t, http.MethodPost, "/api/complaints", studentToken, map[string]string{
		"title": "Fan broken", "description": "Ceiling fan stopped", "category": "Electrical",
	})
	require.Equal(t, http.StatusCreated, status, string(body))
	created := decode[map[string]any](t, body)
	assert.Equal(t, "pending", created["status"])
	assert.Equal(t, "medium", created["priority"])
	assert.Equal(t, "A-204", created["roomNumber"])
	assert.Nil(t, created["resolvedAt"])
	id := created["id"].(string)

	wardenToken := s.wardenToken(t)
	status, body = s.do(t, http.MethodPatch, "/api/complaints/"+id+"/status", wardenToken, map[string]string{
		"status": "resolved", "wardenComment": "Fixed",
	})
	require.Equal(t, http.StatusOK, status, string(body))
	assert.NotNil(t, decode[map[string]any](t, body)["resolvedAt"])

	status, body = s.do(t, http.MethodGet, "/api/complaints/"+id, studentToken, nil)
	require.Equal(t, http.StatusOK, status, string(body))
	seen := decode[map[string]any](t, body)
	assert.Equal(t, "resolved", seen["status"])
	assert.Equal(t, "Fixed", seen["wardenComment"])

	status, body = s.do(t, http.MethodGet, "/api/complaints/stats/overview", studentToken, nil)
	require.Equal(t, http.StatusOK, status)
	stats := decode[map[string]any](t, body)
	assert.EqualValues(t, 1, stats["total"])
	assert.EqualValues(t, 1, stats["resolved"])

	status, body = s.do(t, http.MethodDelete, "/api/complaints/"+id, studentToken, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_STATE", decode[map[string]any](t, body)["code"])
}

func TestAuthErrors(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, http.MethodGet, "/api/complaints", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHENTICATED", decode[map[string]any](t, body)["code"])

	status, body = s.do(t, http.MethodGet, "/api/complaints", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "INVALID_TOKEN", decode[map[string]any](t, body)["code"])

	status, body = s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "x@h.com", "password": "nope"})
	assert.Equal(t, http.StatusBadRequest, status)
	errBody := decode[map[string]any](t, body)
	assert.Equal(t, "INVALID_CREDENTIALS", errBody["code"])
	assert.Equal(t, "invalid credentials", errBody["error"])

	status, body = s.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{"email": "x@h.com"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_FAILED", decode[map[string]any](t, body)["code"])
}

func TestRoleGates(t *testing.T) {
	s := newTestServer(t)
	wardenToken := s.wardenToken(t)

	status, body := s.do(t, http.MethodPost, "/api/complaints", wardenToken, map[string]string{
		"title": "t", "description": "d", "category": "Food",
	})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", decode[map[string]any](t, body)["code"])

	status, body = s.do(t, http.MethodGet, "/api/users/students", wardenToken, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, []any{}, decode[[]any](t, body))

	status, _ = s.do(t, http.MethodGet, "/api/complaints/missing", wardenToken, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAnnouncementRoutesAndLegacyAliases(t *testing.T) {
	s := newTestServer(t)
	wardenToken := s.wardenToken(t)

	status, body := s.do(t, http.MethodPost, "/api/complaints/announcements", wardenToken, map[string]string{
		"title": "Water", "message": "Off at noon",
	})
	require.Equal(t, http.StatusCreated, status, string(body))
	assert.Equal(t, "All", decode[map[string]any](t, body)["hostel"])

	status, body = s.do(t, http.MethodPost, "/api/announcements", wardenToken, map[string]string{
		"title": "Mess", "message": "New menu", "hostel": "Block B",
	})
	require.Equal(t, http.StatusCreated, status, string(body))

	for _, path := range []string{"/api/announcements", "/api/complaints/announcements/all"} {
		status, body = s.do(t, http.MethodGet, path, wardenToken, nil)
		require.Equal(t, http.StatusOK, status, path)
		list := decode[[]map[string]any](t, body)
		require.Len(t, list, 2, path)
		assert.Equal(t, "Mess", list[0]["title"], path)
		assert.Equal(t, "Warden Sharma", list[0]["createdByName"], path)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "OK", decode[map[string]any](t, body)["status"])

	status, _ = s.do(t, http.MethodGet, "/health/ready", "", nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = s.do(t, http.MethodGet, "/api/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, body = s.do(t, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, status)
	snapshot := decode[observability.MetricsSnapshot](t, body)
	assert.NotEmpty(t, snapshot.Requests)
	assert.NotEmpty(t, snapshot.Errors)
}
