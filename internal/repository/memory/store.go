package memory

import "github.com/hostel-cms/complaint-service/internal/repository"

// NewStore returns a Store whose collections live in process memory.
func NewStore() *repository.Store {
	return repository.NewStore(
		NewUserRepository(),
		NewComplaintRepository(),
		NewAnnouncementRepository(),
		nil,
	)
}
