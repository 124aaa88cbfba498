package events

import (
	"time"

	"github.com/hostel-cms/complaint-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventComplaintCreated       EventType = "complaint.created"
	EventComplaintStatusChanged EventType = "complaint.status_changed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID          string    `json:"id"`
	Type        EventType `json:"type"`
	ComplaintID string    `json:"complaintId"`
	ActorID     string    `json:"actorId"`
	Timestamp   time.Time `json:"timestamp"`
	Payload     any       `json:"payload"`
}

// ComplaintNotification is the fixed payload delivered to notification sinks.
type ComplaintNotification struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StudentName string    `json:"studentName"`
	RoomNumber  string    `json:"roomNumber"`
	Hostel      string    `json:"hostel"`
	RollNumber  string    `json:"rollNumber"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// StatusChangedPayload accompanies EventComplaintStatusChanged.
type StatusChangedPayload struct {
	ComplaintNotification
	PreviousStatus string  `json:"previousStatus"`
	WardenComment  *string `json:"wardenComment,omitempty"`
}

// NewComplaintNotification snapshots the notification fields of c.
func NewComplaintNotification(c *domain.Complaint) ComplaintNotification {
	return ComplaintNotification{
		Title:       c.Title,
		Description: c.Description,
		StudentName: c.StudentName,
		RoomNumber:  c.RoomNumber,
		Hostel:      c.Hostel,
		RollNumber:  c.RollNumber,
		Status:      string(c.Status),
		CreatedAt:   c.CreatedAt,
	}
}
