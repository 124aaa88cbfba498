package repository

import (
	"context"

	"github.com/hostel-cms/complaint-service/internal/domain"
	apperrors "github.com/hostel-cms/complaint-service/pkg/util/errorutil"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = apperrors.ErrRecordNotFound
	// ErrDuplicateEmail is returned by UserRepository.Create for a taken email.
	ErrDuplicateEmail = apperrors.ErrEmailTaken
)

// UserRepository defines persistence access for hostel accounts.
type UserRepository interface {
	// Create inserts the user, failing with ErrDuplicateEmail if the email
	// exists. The check and the insert are atomic.
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ListByRole(ctx context.Context, role domain.Role) ([]domain.User, error)
}

// ComplaintMutator edits a complaint in place. Returning an error aborts the update.
type ComplaintMutator func(c *domain.Complaint) error

// ComplaintGuard inspects a complaint before deletion. Returning an error aborts the delete.
type ComplaintGuard func(c *domain.Complaint) error

// ComplaintRepository encapsulates complaint persistence.
type ComplaintRepository interface {
	Create(ctx context.Context, complaint *domain.Complaint) error
	GetByID(ctx context.Context, id string) (*domain.Complaint, error)
	// List returns complaints matching filter, newest first.
	List(ctx context.Context, filter domain.ComplaintFilter) ([]domain.Complaint, error)
	// Update loads the complaint, applies mutate and persists the result as
	// one atomic step.
	Update(ctx context.Context, id string, mutate ComplaintMutator) (*domain.Complaint, error)
	// Delete removes the complaint if guard allows it, atomically.
	Delete(ctx context.Context, id string, guard ComplaintGuard) error
}

// AnnouncementRepository stores the append-only bulletin.
type AnnouncementRepository interface {
	Create(ctx context.Context, announcement *domain.Announcement) error
	// List returns every announcement, newest first.
	List(ctx context.Context) ([]domain.Announcement, error)
}

// Store bundles the repositories of one backend.
type Store struct {
	Users         UserRepository
	Complaints    ComplaintRepository
	Announcements AnnouncementRepository
	closer        func() error
}

// NewStore assembles a Store. closer may be nil.
func NewStore(users UserRepository, complaints ComplaintRepository, announcements AnnouncementRepository, closer func() error) *Store {
	return &Store{Users: users, Complaints: complaints, Announcements: announcements, closer: closer}
}

// Close releases backend resources.
func (s *Store) Close() error {
	if s == nil || s.closer == nil {
		return nil
	}
	return s.closer()
}
