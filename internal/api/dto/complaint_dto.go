package dto

import (
	"time"

	"github.com/hostel-cms/complaint-service/internal/domain"
)

// ComplaintCreateRequest payload for filing a complaint.
type ComplaintCreateRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Category    string `json:"category" validate:"required"`
	Priority    string `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
}

// ComplaintStatusRequest payload for a warden status change.
type ComplaintStatusRequest struct {
	Status        string  `json:"status" validate:"required,oneof=pending in-progress resolved rejected"`
	WardenComment *string `json:"wardenComment"`
}

// ComplaintListQuery binds the listing query string.
type ComplaintListQuery struct {
	Status   string `query:"status"`
	Category string `query:"category"`
	Priority string `query:"priority"`
	Search   string `query:"search"`
}

// ComplaintResponse is the wire form of a complaint.
type ComplaintResponse struct {
	ID            string                   `json:"id"`
	Title         string                   `json:"title"`
	Description   string                   `json:"description"`
	Category      domain.ComplaintCategory `json:"category"`
	Priority      domain.ComplaintPriority `json:"priority"`
	Status        domain.ComplaintStatus   `json:"status"`
	StudentID     string                   `json:"studentId"`
	StudentName   string                   `json:"studentName"`
	RoomNumber    string                   `json:"roomNumber"`
	Hostel        string                   `json:"hostel"`
	RollNumber    string                   `json:"rollNumber"`
	WardenComment *string                  `json:"wardenComment"`
	ResolvedAt    *time.Time               `json:"resolvedAt"`
	CreatedAt     time.Time                `json:"createdAt"`
	UpdatedAt     time.Time                `json:"updatedAt"`
}

// StatsResponse is the dashboard aggregate.
type StatsResponse struct {
	Total      int                              `json:"total"`
	Pending    int                              `json:"pending"`
	InProgress int                              `json:"inProgress"`
	Resolved   int                              `json:"resolved"`
	Rejected   int                              `json:"rejected"`
	ByCategory map[domain.ComplaintCategory]int `json:"byCategory"`
	ByPriority map[domain.ComplaintPriority]int `json:"byPriority"`
}

// MessageResponse carries a plain confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// NewComplaintResponse maps a complaint.
func NewComplaintResponse(c *domain.Complaint) ComplaintResponse {
	return ComplaintResponse{
		ID:            c.ID,
		Title:         c.Title,
		Description:   c.Description,
		Category:      c.Category,
		Priority:      c.Priority,
		Status:        c.Status,
		StudentID:     c.StudentID,
		StudentName:   c.StudentName,
		RoomNumber:    c.RoomNumber,
		Hostel:        c.Hostel,
		RollNumber:    c.RollNumber,
		WardenComment: c.WardenComment,
		ResolvedAt:    c.ResolvedAt,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

// NewComplaintListResponse maps a slice of complaints.
func NewComplaintListResponse(complaints []domain.Complaint) []ComplaintResponse {
	out := make([]ComplaintResponse, 0, len(complaints))
	for i := range complaints {
		out = append(out, NewComplaintResponse(&complaints[i]))
	}
	return out
}

// NewStatsResponse maps the aggregate.
func NewStatsResponse(s domain.ComplaintStats) StatsResponse {
	return StatsResponse{
		Total:      s.Total,
		Pending:    s.Pending,
		InProgress: s.InProgress,
		Resolved:   s.Resolved,
		Rejected:   s.Rejected,
		ByCategory: s.ByCategory,
		ByPriority: s.ByPriority,
	}
}
