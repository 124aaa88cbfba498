package domain

// ComplaintStats summarizes a set of complaints for dashboards.
type ComplaintStats struct {
	Total      int
	Pending    int
	InProgress int
	Resolved   int
	Rejected   int
	ByCategory map[ComplaintCategory]int
	ByPriority map[ComplaintPriority]int
}

// ComputeStats aggregates complaints in a single pass. Category and priority
// keys appear only when at least one complaint carries them.
func ComputeStats(complaints []Complaint) ComplaintStats {
	stats := ComplaintStats{
		ByCategory: make(map[ComplaintCategory]int),
		ByPriority: make(map[ComplaintPriority]int),
	}
	for i := range complaints {
		c := &complaints[i]
		stats.Total++
		switch c.Status {
		case ComplaintStatusPending:
			stats.Pending++
		case ComplaintStatusInProgress:
			stats.InProgress++
		case ComplaintStatusResolved:
			stats.Resolved++
		case ComplaintStatusRejected:
			stats.Rejected++
		}
		stats.ByCategory[c.Category]++
		stats.ByPriority[c.Priority]++
	}
	return stats
}
