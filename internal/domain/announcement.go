package domain

import "time"

// AnnouncementAudienceAll targets every hostel block.
const AnnouncementAudienceAll = "All"

// Announcement is an append-only bulletin posted by a warden.
type Announcement struct {
	ID            string
	Title         string
	Message       string
	Hostel        string
	CreatedBy     string
	CreatedByName string
	CreatedAt     time.Time
}
