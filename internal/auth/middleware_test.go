package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostel-cms/complaint-service/internal/domain"
	apperrors "github.com/hostel-cms/complaint-service/pkg/util/errorutil"
)

func newTestApp(tm *TokenManager, extra ...fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{"error": domainErr.Message, "code": domainErr.Code})
		},
	})
	handlers := []fiber.Handler{NewAuthMiddleware(tm).Handle}
	handlers = append(handlers, extra...)
	handlers = append(handlers, func(c *fiber.Ctx) error {
		identity, err := MustIdentity(c)
		if err != nil {
			return err
		}
		return c.SendString(identity.ID + ":" + string(identity.Role))
	})
	app.Get("/protected", handlers...)
	return app
}

func TestAuthMiddleware(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)
	valid, _, err := tm.GenerateToken(testUser())
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic abc", wantStatus: http.StatusUnauthorized},
		{name: "empty bearer", header: "Bearer ", wantStatus: http.StatusUnauthorized},
		{name: "garbled token", header: "Bearer abc.def.ghi", wantStatus: http.StatusUnauthorized},
		{name: "valid token", header: "Bearer " + valid, wantStatus: http.StatusOK},
		{name: "lowercase scheme", header: "bearer " + valid, wantStatus: http.StatusOK},
	}

	app := newTestApp(tm)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

func TestRequireRoleHandler(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)
	studentToken, _, err := tm.GenerateToken(testUser())
	require.NoError(t, err)
	warden := &domain.User{ID: "warden-1", Name: "Dr. Kumar", Email: "warden@hostel.com", Role: domain.RoleWarden}
	wardenToken, _, err := tm.GenerateToken(warden)
	require.NoError(t, err)

	app := newTestApp(tm, RequireRoleHandler(domain.RoleWarden))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+studentToken)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+wardenToken)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireOwnerOrRole(t *testing.T) {
	student := domain.Identity{ID: "s1", Role: domain.RoleStudent}
	other := domain.Identity{ID: "s2", Role: domain.RoleStudent}
	warden := domain.Identity{ID: "w1", Role: domain.RoleWarden}

	assert.NoError(t, RequireOwnerOrRole(student, "s1", domain.RoleWarden))
	assert.NoError(t, RequireOwnerOrRole(warden, "s1", domain.RoleWarden))

	err := RequireOwnerOrRole(other, "s1", domain.RoleWarden)
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, http.StatusForbidden, domainErr.HTTPStatus)
}

func TestRequireRole(t *testing.T) {
	assert.NoError(t, RequireRole(domain.Identity{Role: domain.RoleWarden}, domain.RoleWarden))
	err := RequireRole(domain.Identity{Role: domain.RoleStudent}, domain.RoleWarden)
	assert.Equal(t, apperrors.CodeForbidden, apperrors.ToDomainError(err).Code)
}
