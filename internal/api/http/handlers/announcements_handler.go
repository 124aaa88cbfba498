package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/hostel-cms/complaint-service/internal/api/dto"
	"github.com/hostel-cms/complaint-service/internal/auth"
	"github.com/hostel-cms/complaint-service/internal/service"
	apperrors "github.com/hostel-cms/complaint-service/pkg/util/errorutil"
)

// AnnouncementsHandler exposes the bulletin.
type AnnouncementsHandler struct {
	service *service.AnnouncementService
}

// NewAnnouncementsHandler constructs handler.
func NewAnnouncementsHandler(announcementService *service.AnnouncementService) *AnnouncementsHandler {
	return &AnnouncementsHandler{service: announcementService}
}

// List GET /api/announcements.
func (h *AnnouncementsHandler) List(c *fiber.Ctx) error {
	items, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewAnnouncementListResponse(items))
}

// Create POST /api/announcements.
func (h *AnnouncementsHandler) Create(c *fiber.Ctx) error {
	identity, err := auth.MustIdentity(c)
	if err != nil {
		return err
	}
	var req dto.AnnouncementCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	announcement, err := h.service.Create(c.UserContext(), identity, service.AnnouncementInput{
		Title:   req.Title,
		Message: req.Message,
		Hostel:  req.Hostel,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewAnnouncementResponse(announcement))
}
