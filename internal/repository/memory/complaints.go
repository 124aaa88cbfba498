package memory

import (
	"context"
	"sync"

	"github.com/hostel-cms/complaint-service/internal/domain"
	"github.com/hostel-cms/complaint-service/internal/repository"
)

type complaintStore struct {
	mu sync.RWMutex
	// order keeps insertion order so equal timestamps list stably.
	order []string
	byID  map[string]*domain.Complaint
}

// NewComplaintRepository returns an in-memory ComplaintRepository.
func NewComplaintRepository() repository.ComplaintRepository {
	return &complaintStore{byID: make(map[string]*domain.Complaint)}
}

func (s *complaintStore) Create(_ context.Context, complaint *domain.Complaint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byID[complaint.ID] = complaint.Clone()
	s.order = append(s.order, complaint.ID)
	return nil
}

func (s *complaintStore) GetByID(_ context.Context, id string) (*domain.Complaint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	complaint, ok := s.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return complaint.Clone(), nil
}

func (s *complaintStore) List(_ context.Context, filter domain.ComplaintFilter) ([]domain.Complaint, error) {
	s.mu.RLock()
	result := make([]domain.Complaint, 0, len(s.order))
	for _, id := range s.order {
		complaint := s.byID[id]
		if filter.Matches(complaint) {
			result = append(result, *complaint.Clone())
		}
	}
	s.mu.RUnlock()

	domain.SortNewestFirst(result)
	return result, nil
}

func (s *complaintStore) Update(_ context.Context, id string, mutate repository.ComplaintMutator) (*domain.Complaint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	working := current.Clone()
	if err := mutate(working); err != nil {
		return nil, err
	}
	s.byID[current.ID] = working
	return working.Clone(), nil
}

func (s *complaintStore) Delete(_ context.Context, id string, guard repository.ComplaintGuard) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	if guard != nil {
		if err := guard(current.Clone()); err != nil {
			return err
		}
	}
	delete(s.byID, current.ID)
	for i, candidate := range s.order {
		if candidate == current.ID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}
