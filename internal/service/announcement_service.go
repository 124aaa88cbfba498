package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hostel-cms/complaint-service/internal/auth"
	"github.com/hostel-cms/complaint-service/internal/domain"
	"github.com/hostel-cms/complaint-service/internal/repository"
	apperrors "github.com/hostel-cms/complaint-service/pkg/util/errorutil"
)

// AnnouncementService manages the warden bulletin.
type AnnouncementService struct {
	announcements repository.AnnouncementRepository
	now           func() time.Time
}

// AnnouncementInput describes a new announcement. An empty Hostel targets everyone.
type AnnouncementInput struct {
	Title   string
	Message string
	Hostel  string
}

// NewAnnouncementService constructs the service.
func NewAnnouncementService(repo repository.AnnouncementRepository, now func() time.Time) *AnnouncementService {
	return &AnnouncementService{announcements: repo, now: clockOrDefault(now)}
}

// Create posts an announcement. Wardens only.
func (s *AnnouncementService) Create(ctx context.Context, identity domain.Identity, input AnnouncementInput) (*domain.Announcement, error) {
	if err := auth.RequireRole(identity, domain.RoleWarden); err != nil {
		return nil, err
	}
	title := strings.TrimSpace(input.Title)
	message := strings.TrimSpace(input.Message)
	if missing := blankFields(map[string]string{"title": title, "message": message}); len(missing) > 0 {
		return nil, apperrors.NewValidationError("title and message are required", map[string]any{"missing": missing})
	}
	hostel := strings.TrimSpace(input.Hostel)
	if hostel == "" {
		hostel = domain.AnnouncementAudienceAll
	}

	announcement := &domain.Announcement{
		ID:            uuid.NewString(),
		Title:         title,
		Message:       message,
		Hostel:        hostel,
		CreatedBy:     identity.ID,
		CreatedByName: identity.Name,
		CreatedAt:     s.now(),
	}
	if err := s.announcements.Create(ctx, announcement); err != nil {
		return nil, err
	}
	return announcement, nil
}

// List returns every announcement, newest first.
func (s *AnnouncementService) List(ctx context.Context) ([]domain.Announcement, error) {
	return s.announcements.List(ctx)
}
