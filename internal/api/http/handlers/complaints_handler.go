package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/hostel-cms/complaint-service/internal/api/dto"
	"github.com/hostel-cms/complaint-service/internal/auth"
	"github.com/hostel-cms/complaint-service/internal/service"
	apperrors "github.com/hostel-cms/complaint-service/pkg/util/errorutil"
)

// ComplaintsHandler manages complaint endpoints for both roles.
type ComplaintsHandler struct {
	service *service.ComplaintService
}

// NewComplaintsHandler constructs handler.
func NewComplaintsHandler(complaintService *service.ComplaintService) *ComplaintsHandler {
	return &ComplaintsHandler{service: complaintService}
}

// List GET /api/complaints.
func (h *ComplaintsHandler) List(c *fiber.Ctx) error {
	identity, err := auth.MustIdentity(c)
	if err != nil {
		return err
	}
	var query dto.ComplaintListQuery
	if err := c.QueryParser(&query); err != nil {
		return apperrors.NewValidationError("invalid query", nil)
	}

	complaints, err := h.service.List(c.UserContext(), identity, service.ComplaintListFilter{
		Status:   query.Status,
		Category: query.Category,
		Priority: query.Priority,
		Search:   query.Search,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewComplaintListResponse(complaints))
}

// Stats GET /api/complaints/stats/overview.
func (h *ComplaintsHandler) Stats(c *fiber.Ctx) error {
	identity, err := auth.MustIdentity(c)
	if err != nil {
		return err
	}
	stats, err := h.service.Stats(c.UserContext(), identity)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewStatsResponse(stats))
}

// Get GET /api/complaints/:id.
func (h *ComplaintsHandler) Get(c *fiber.Ctx) error {
	identity, err := auth.MustIdentity(c)
	if err != nil {
		return err
	}
	complaint, err := h.service.Get(c.UserContext(), identity, utils.CopyString(c.Params("id")))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewComplaintResponse(complaint))
}

// Create POST /api/complaints.
func (h *ComplaintsHandler) Create(c *fiber.Ctx) error {
	identity, err := auth.MustIdentity(c)
	if err != nil {
		return err
	}
	var req dto.ComplaintCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	complaint, err := h.service.Create(c.UserContext(), identity, service.ComplaintCreateInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Priority:    req.Priority,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewComplaintResponse(complaint))
}

// UpdateStatus PATCH /api/complaints/:id/status.
func (h *ComplaintsHandler) UpdateStatus(c *fiber.Ctx) error {
	identity, err := auth.MustIdentity(c)
	if err != nil {
		return err
	}
	var req dto.ComplaintStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	complaint, err := h.service.UpdateStatus(c.UserContext(), identity, utils.CopyString(c.Params("id")), req.Status, req.WardenComment)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewComplaintResponse(complaint))
}

// Delete DELETE /api/complaints/:id.
func (h *ComplaintsHandler) Delete(c *fiber.Ctx) error {
	identity, err := auth.MustIdentity(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), identity, utils.CopyString(c.Params("id"))); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Deleted"})
}
