package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hostel-cms/complaint-service/internal/api/dto"
	"github.com/hostel-cms/complaint-service/internal/auth"
	"github.com/hostel-cms/complaint-service/internal/service"
)

// UsersHandler exposes account lookups.
type UsersHandler struct {
	auth *service.AuthService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService) *UsersHandler {
	return &UsersHandler{auth: authService}
}

// Students handles GET /api/users/students.
func (h *UsersHandler) Students(c *fiber.Ctx) error {
	identity, err := auth.MustIdentity(c)
	if err != nil {
		return err
	}
	students, err := h.auth.ListStudents(c.UserContext(), identity)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserListResponse(students))
}

// Profile handles GET /api/users/profile.
func (h *UsersHandler) Profile(c *fiber.Ctx) error {
	identity, err := auth.MustIdentity(c)
	if err != nil {
		return err
	}
	user, err := h.auth.GetProfile(c.UserContext(), identity)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponse(user))
}
