package domain

import (
	"sort"
	"strings"
)

// ComplaintFilter narrows a complaint listing. Empty fields match everything
// and set fields are AND-combined.
type ComplaintFilter struct {
	StudentID string
	Status    ComplaintStatus
	Category  ComplaintCategory
	Priority  ComplaintPriority
	Search    string
}

// Matches reports whether c satisfies every set predicate.
func (f ComplaintFilter) Matches(c *Complaint) bool {
	if c == nil {
		return false
	}
	if f.StudentID != "" && c.StudentID != f.StudentID {
		return false
	}
	if f.Status != "" && c.Status != f.Status {
		return false
	}
	if f.Category != "" && c.Category != f.Category {
		return false
	}
	if f.Priority != "" && c.Priority != f.Priority {
		return false
	}
	if term := strings.ToLower(f.Search); term != "" {
		if !strings.Contains(strings.ToLower(c.Title), term) &&
			!strings.Contains(strings.ToLower(c.Description), term) &&
			!strings.Contains(strings.ToLower(c.StudentName), term) {
			return false
		}
	}
	return true
}

// SortNewestFirst orders complaints by CreatedAt descending, keeping the
// relative order of equal timestamps.
func SortNewestFirst(complaints []Complaint) {
	sort.SliceStable(complaints, func(i, j int) bool {
		return complaints[i].CreatedAt.After(complaints[j].CreatedAt)
	})
}
