package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hostel-cms/complaint-service/internal/auth"
	"github.com/hostel-cms/complaint-service/internal/domain"
	"github.com/hostel-cms/complaint-service/internal/events"
	"github.com/hostel-cms/complaint-service/internal/repository"
	apperrors "github.com/hostel-cms/complaint-service/pkg/util/errorutil"
)

// snapshotFallback fills snapshot fields the student record does not provide.
const snapshotFallback = "N/A"

// ComplaintService coordinates the complaint lifecycle.
type ComplaintService struct {
	complaints repository.ComplaintRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
	policy     domain.TransitionPolicy
	logger     *zap.Logger
	now        func() time.Time
}

// ComplaintDependencies bundles what the complaint service needs.
type ComplaintDependencies struct {
	ComplaintRepo repository.ComplaintRepository
	UserRepo      repository.UserRepository
	Dispatcher    events.Dispatcher
	// Policy defaults to domain.PermissiveTransitions.
	Policy domain.TransitionPolicy
	Logger *zap.Logger
	Now    func() time.Time
}

// ComplaintCreateInput describes a new complaint.
type ComplaintCreateInput struct {
	Title       string
	Description string
	Category    string
	Priority    string
}

// ComplaintListFilter describes listing filters. Empty fields match everything.
type ComplaintListFilter struct {
	Status   string
	Category string
	Priority string
	Search   string
}

// NewComplaintService constructs the service.
func NewComplaintService(deps ComplaintDependencies) *ComplaintService {
	policy := deps.Policy
	if policy == nil {
		policy = domain.PermissiveTransitions
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ComplaintService{
		complaints: deps.ComplaintRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
		policy:     policy,
		logger:     logger,
		now:        clockOrDefault(deps.Now),
	}
}

// Create files a complaint for the calling student.
func (s *ComplaintService) Create(ctx context.Context, identity domain.Identity, input ComplaintCreateInput) (*domain.Complaint, error) {
	if err := auth.RequireRole(identity, domain.RoleStudent); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	category := domain.ComplaintCategory(strings.TrimSpace(input.Category))
	if missing := blankFields(map[string]string{
		"title":       title,
		"description": description,
		"category":    string(category),
	}); len(missing) > 0 {
		return nil, apperrors.NewValidationError("please provide all required fields", map[string]any{"missing": missing})
	}
	if !category.Valid() {
		return nil, apperrors.NewValidationError("invalid category", map[string]any{"category": category, "allowed": domain.Categories})
	}
	priority := domain.ComplaintPriority(strings.TrimSpace(input.Priority))
	if priority == "" {
		priority = domain.ComplaintPriorityMedium
	}
	if !priority.Valid() {
		return nil, apperrors.NewValidationError("invalid priority", map[string]any{"priority": priority, "allowed": domain.Priorities})
	}

	roomNumber, hostel, rollNumber := snapshotFallback, snapshotFallback, snapshotFallback
	student, err := s.users.GetByID(ctx, identity.ID)
	switch {
	case err == nil:
		roomNumber = orFallback(student.RoomNumber)
		hostel = orFallback(student.Hostel)
		rollNumber = orFallback(student.RollNumber)
	case !errors.Is(err, repository.ErrNotFound):
		return nil, err
	}

	now := s.now()
	complaint := &domain.Complaint{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Category:    category,
		Priority:    priority,
		Status:      domain.ComplaintStatusPending,
		StudentID:   identity.ID,
		StudentName: identity.Name,
		RoomNumber:  roomNumber,
		Hostel:      hostel,
		RollNumber:  rollNumber,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.complaints.Create(ctx, complaint); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:        events.EventComplaintCreated,
		ComplaintID: complaint.ID,
		ActorID:     identity.ID,
		Payload:     events.NewComplaintNotification(complaint),
	})
	return complaint, nil
}

// Get returns one complaint. Students may only read their own.
func (s *ComplaintService) Get(ctx context.Context, identity domain.Identity, id string) (*domain.Complaint, error) {
	complaint, err := s.complaints.GetByID(ctx, id)
	if err != nil {
		return nil, complaintLookupError(err)
	}
	if err := auth.RequireOwnerOrRole(identity, complaint.StudentID, domain.RoleWarden); err != nil {
		return nil, err
	}
	return complaint, nil
}

// List returns the complaints visible to the caller, newest first.
func (s *ComplaintService) List(ctx context.Context, identity domain.Identity, filter ComplaintListFilter) ([]domain.Complaint, error) {
	return s.complaints.List(ctx, s.scope(identity, domain.ComplaintFilter{
		Status:   domain.ComplaintStatus(strings.TrimSpace(filter.Status)),
		Category: domain.ComplaintCategory(strings.TrimSpace(filter.Category)),
		Priority: domain.ComplaintPriority(strings.TrimSpace(filter.Priority)),
		Search:   strings.TrimSpace(filter.Search),
	}))
}

// UpdateStatus moves a complaint to status. Wardens only.
func (s *ComplaintService) UpdateStatus(ctx context.Context, identity domain.Identity, id, status string, comment *string) (*domain.Complaint, error) {
	if err := auth.RequireRole(identity, domain.RoleWarden); err != nil {
		return nil, err
	}
	next := domain.ComplaintStatus(strings.TrimSpace(status))
	if !next.Valid() {
		return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": status, "allowed": domain.Statuses})
	}
	var text string
	if comment != nil {
		text = *comment
	}

	var previous domain.ComplaintStatus
	updated, err := s.complaints.Update(ctx, id, func(c *domain.Complaint) error {
		if err := s.policy(c.Status, next); err != nil {
			return apperrors.NewInvalidState(err.Error())
		}
		previous = c.Status
		c.ApplyStatus(next, text, s.now())
		return nil
	})
	if err != nil {
		return nil, complaintLookupError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:        events.EventComplaintStatusChanged,
		ComplaintID: updated.ID,
		ActorID:     identity.ID,
		Payload: events.StatusChangedPayload{
			ComplaintNotification: events.NewComplaintNotification(updated),
			PreviousStatus:        string(previous),
			WardenComment:         updated.WardenComment,
		},
	})
	return updated, nil
}

// Delete removes a complaint. Students may delete their own while it is
// pending; wardens may delete any complaint.
func (s *ComplaintService) Delete(ctx context.Context, identity domain.Identity, id string) error {
	err := s.complaints.Delete(ctx, id, func(c *domain.Complaint) error {
		if identity.IsWarden() {
			return nil
		}
		if !c.OwnedBy(identity.ID) {
			return apperrors.NewForbidden("not authorized to delete this complaint")
		}
		if c.Status != domain.ComplaintStatusPending {
			return apperrors.NewInvalidState("only pending complaints can be deleted")
		}
		return nil
	})
	return complaintLookupError(err)
}

// Stats aggregates the complaints visible to the caller.
func (s *ComplaintService) Stats(ctx context.Context, identity domain.Identity) (domain.ComplaintStats, error) {
	complaints, err := s.complaints.List(ctx, s.scope(identity, domain.ComplaintFilter{}))
	if err != nil {
		return domain.ComplaintStats{}, err
	}
	return domain.ComputeStats(complaints), nil
}

// scope restricts students to their own complaints.
func (s *ComplaintService) scope(identity domain.Identity, filter domain.ComplaintFilter) domain.ComplaintFilter {
	if !identity.IsWarden() {
		filter.StudentID = identity.ID
	}
	return filter
}

func (s *ComplaintService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = s.now()
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish complaint event",
			zap.String("event_type", string(event.Type)),
			zap.String("complaint_id", event.ComplaintID),
			zap.Error(err))
	}
}

func complaintLookupError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFound("complaint", nil)
	}
	return err
}

func orFallback(value string) string {
	if strings.TrimSpace(value) == "" {
		return snapshotFallback
	}
	return value
}
