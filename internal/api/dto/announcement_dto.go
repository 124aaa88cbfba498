package dto

import (
	"time"

	"github.com/hostel-cms/complaint-service/internal/domain"
)

// AnnouncementCreateRequest payload for posting an announcement.
type AnnouncementCreateRequest struct {
	Title   string `json:"title" validate:"required"`
	Message string `json:"message" validate:"required"`
	Hostel  string `json:"hostel"`
}

// AnnouncementResponse is the wire form of an announcement.
type AnnouncementResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Message       string    `json:"message"`
	Hostel        string    `json:"hostel"`
	CreatedBy     string    `json:"createdBy"`
	CreatedByName string    `json:"createdByName"`
	CreatedAt     time.Time `json:"createdAt"`
}

// NewAnnouncementResponse maps an announcement.
func NewAnnouncementResponse(a *domain.Announcement) AnnouncementResponse {
	return AnnouncementResponse{
		ID:            a.ID,
		Title:         a.Title,
		Message:       a.Message,
		Hostel:        a.Hostel,
		CreatedBy:     a.CreatedBy,
		CreatedByName: a.CreatedByName,
		CreatedAt:     a.CreatedAt,
	}
}

// NewAnnouncementListResponse maps a slice of announcements.
func NewAnnouncementListResponse(items []domain.Announcement) []AnnouncementResponse {
	out := make([]AnnouncementResponse, 0, len(items))
	for i := range items {
		out = append(out, NewAnnouncementResponse(&items[i]))
	}
	return out
}
