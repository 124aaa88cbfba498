package domain

import (
	"strings"
	"time"
)

// ComplaintStatus enumerates lifecycle states for complaints.
type ComplaintStatus string

const (
	ComplaintStatusPending    ComplaintStatus = "pending"
	ComplaintStatusInProgress ComplaintStatus = "in-progress"
	ComplaintStatusResolved   ComplaintStatus = "resolved"
	ComplaintStatusRejected   ComplaintStatus = "rejected"
)

// ComplaintPriority enumerates urgency levels.
type ComplaintPriority string

const (
	ComplaintPriorityLow    ComplaintPriority = "low"
	ComplaintPriorityMedium ComplaintPriority = "medium"
	ComplaintPriorityHigh   ComplaintPriority = "high"
	ComplaintPriorityUrgent ComplaintPriority = "urgent"
)

// ComplaintCategory is the fixed set of maintenance areas.
type ComplaintCategory string

const (
	CategoryPlumbing    ComplaintCategory = "Plumbing"
	CategoryElectrical  ComplaintCategory = "Electrical"
	CategoryCleanliness ComplaintCategory = "Cleanliness"
	CategoryFood        ComplaintCategory = "Food"
	CategorySecurity    ComplaintCategory = "Security"
	CategoryInternet    ComplaintCategory = "Internet"
	CategoryFurniture   ComplaintCategory = "Furniture"
	CategoryOther       ComplaintCategory = "Other"
)

// Statuses lists every complaint status in lifecycle order.
var Statuses = []ComplaintStatus{
	ComplaintStatusPending,
	ComplaintStatusInProgress,
	ComplaintStatusResolved,
	ComplaintStatusRejected,
}

// Priorities lists every priority from least to most urgent.
var Priorities = []ComplaintPriority{
	ComplaintPriorityLow,
	ComplaintPriorityMedium,
	ComplaintPriorityHigh,
	ComplaintPriorityUrgent,
}

// Categories lists every complaint category.
var Categories = []ComplaintCategory{
	CategoryPlumbing,
	CategoryElectrical,
	CategoryCleanliness,
	CategoryFood,
	CategorySecurity,
	CategoryInternet,
	CategoryFurniture,
	CategoryOther,
}

// Valid reports whether s is a known status.
func (s ComplaintStatus) Valid() bool {
	for _, candidate := range Statuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// Valid reports whether p is a known priority.
func (p ComplaintPriority) Valid() bool {
	for _, candidate := range Priorities {
		if candidate == p {
			return true
		}
	}
	return false
}

// Valid reports whether c is a known category.
func (c ComplaintCategory) Valid() bool {
	for _, candidate := range Categories {
		if candidate == c {
			return true
		}
	}
	return false
}

// Complaint is a maintenance issue filed by a student.
//
// StudentName, RoomNumber, Hostel and RollNumber are copied from the student
// when the complaint is filed and are never refreshed afterwards.
type Complaint struct {
	ID            string
	Title         string
	Description   string
	Category      ComplaintCategory
	Priority      ComplaintPriority
	Status        ComplaintStatus
	StudentID     string
	StudentName   string
	RoomNumber    string
	Hostel        string
	RollNumber    string
	WardenComment *string
	ResolvedAt    *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OwnedBy reports whether the complaint was filed by userID.
func (c *Complaint) OwnedBy(userID string) bool {
	return c != nil && c.StudentID == userID
}

// ApplyStatus moves the complaint to status at time now.
//
// A blank comment keeps the previous warden comment; any other comment is
// stored as given. ResolvedAt is stamped only when the new status is resolved;
// moving away from resolved keeps the old stamp.
func (c *Complaint) ApplyStatus(status ComplaintStatus, comment string, now time.Time) {
	c.Status = status
	if strings.TrimSpace(comment) != "" {
		text := comment
		c.WardenComment = &text
	}
	if status == ComplaintStatusResolved {
		resolved := now
		c.ResolvedAt = &resolved
	}
	c.UpdatedAt = now
}

// Clone returns a deep copy so callers cannot alias stored pointers.
func (c *Complaint) Clone() *Complaint {
	if c == nil {
		return nil
	}
	out := *c
	if c.WardenComment != nil {
		comment := *c.WardenComment
		out.WardenComment = &comment
	}
	if c.ResolvedAt != nil {
		resolved := *c.ResolvedAt
		out.ResolvedAt = &resolved
	}
	return &out
}
