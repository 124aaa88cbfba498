package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/hostel-cms/complaint-service/internal/domain"
	"github.com/hostel-cms/complaint-service/internal/repository"
)

type announcementStore struct {
	mu    sync.RWMutex
	items []domain.Announcement
}

// NewAnnouncementRepository returns an in-memory AnnouncementRepository.
func NewAnnouncementRepository() repository.AnnouncementRepository {
	return &announcementStore{}
}

func (s *announcementStore) Create(_ context.Context, announcement *domain.Announcement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, *announcement)
	return nil
}

func (s *announcementStore) List(_ context.Context) ([]domain.Announcement, error) {
	s.mu.RLock()
	// Reversed so equal timestamps list the latest post first.
	result := make([]domain.Announcement, 0, len(s.items))
	for i := len(s.items) - 1; i >= 0; i-- {
		result = append(result, s.items[i])
	}
	s.mu.RUnlock()

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}
