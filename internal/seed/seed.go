// Package seed loads demo accounts, complaints and announcements into an empty store.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hostel-cms/complaint-service/internal/domain"
	"github.com/hostel-cms/complaint-service/internal/repository"
	"github.com/hostel-cms/complaint-service/internal/service"
)

const (
	WardenPassword  = "warden123"
	StudentPassword = "student123"
)

type account struct {
	name, email, hostel, room, roll string
}

var wardens = []account{
	{name: "Dr. Rajesh Kumar", email: "warden@hostel.com", hostel: "Block A"},
	{name: "Mrs. Priya Sharma", email: "warden2@hostel.com", hostel: "Block B"},
}

var students = []account{
	{name: "Arjun Patel", email: "student@hostel.com", hostel: "Block A", room: "A-204", roll: "CS2021001"},
	{name: "Sneha Gupta", email: "student2@hostel.com", hostel: "Block A", room: "A-301", roll: "CS2021002"},
	{name: "Rahul Singh", email: "student3@hostel.com", hostel: "Block B", room: "B-105", roll: "ME2021003"},
}

var complaints = []struct {
	title, description string
	category           domain.ComplaintCategory
	status             domain.ComplaintStatus
	priority           domain.ComplaintPriority
}{
	{"Water leaking from bathroom tap", "The tap in bathroom is constantly leaking for 3 days now.", domain.CategoryPlumbing, domain.ComplaintStatusPending, domain.ComplaintPriorityHigh},
	{"Room fan not working", "Ceiling fan stopped working suddenly.", domain.CategoryElectrical, domain.ComplaintStatusInProgress, domain.ComplaintPriorityMedium},
	{"Dirty corridor near room 204", "Corridor has not been cleaned for a week.", domain.CategoryCleanliness, domain.ComplaintStatusResolved, domain.ComplaintPriorityLow},
	{"Poor food quality in mess", "Food quality has deteriorated significantly this month.", domain.CategoryFood, domain.ComplaintStatusPending, domain.ComplaintPriorityMedium},
	{"WiFi not working in my room", "No internet connectivity since yesterday.", domain.CategoryInternet, domain.ComplaintStatusInProgress, domain.ComplaintPriorityHigh},
	{"Broken chair in room", "Study chair leg is broken.", domain.CategoryFurniture, domain.ComplaintStatusPending, domain.ComplaintPriorityLow},
}

var wardenComments = map[domain.ComplaintStatus]string{
	domain.ComplaintStatusResolved:   "Issue has been fixed by maintenance team.",
	domain.ComplaintStatusInProgress: "Our team is working on this.",
}

var announcements = []struct {
	title, message string
	age            time.Duration
}{
	{"Water Supply Interruption", "Water supply will be interrupted on Sunday 10 AM - 2 PM for maintenance.", 0},
	{"Mess Timing Change", "Dinner timing changed from 7:30 PM to 8:00 PM effective from next week.", 48 * time.Hour},
}

// Seeder writes demo data. Accounts go through AuthService so passwords are
// hashed; complaints and announcements are written directly to keep their
// backdated timestamps.
type Seeder struct {
	store  *repository.Store
	auth   *service.AuthService
	logger *zap.Logger
	now    func() time.Time
}

// NewSeeder builds a seeder. now may be nil.
func NewSeeder(store *repository.Store, authService *service.AuthService, logger *zap.Logger, now func() time.Time) *Seeder {
	if logger == nil {
		logger = zap.NewNop()
	}
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &Seeder{store: store, auth: authService, logger: logger, now: now}
}

// Run seeds the store unless it already holds wardens.
func (s *Seeder) Run(ctx context.Context) error {
	existing, err := s.store.Users.ListByRole(ctx, domain.RoleWarden)
	if err != nil {
		return fmt.Errorf("check existing wardens: %w", err)
	}
	if len(existing) > 0 {
		s.logger.Info("demo data already present; skipping seed", zap.Int("wardens", len(existing)))
		return nil
	}

	var firstWarden *domain.User
	for _, w := range wardens {
		user, err := s.auth.CreateWarden(ctx, w.name, w.email, WardenPassword, w.hostel)
		if err != nil {
			return fmt.Errorf("seed warden %s: %w", w.email, err)
		}
		if firstWarden == nil {
			firstWarden = user
		}
	}

	seededStudents := make([]*domain.User, 0, len(students))
	for _, st := range students {
		res, err := s.auth.Register(ctx, service.RegisterInput{
			Name:       st.name,
			Email:      st.email,
			Password:   StudentPassword,
			RoomNumber: st.room,
			Hostel:     st.hostel,
			RollNumber: st.roll,
		})
		if err != nil {
			return fmt.Errorf("seed student %s: %w", st.email, err)
		}
		seededStudents = append(seededStudents, res.User)
	}

	now := s.now()
	for i, sample := range complaints {
		student := seededStudents[i%len(seededStudents)]
		complaint := &domain.Complaint{
			ID:          uuid.NewString(),
			Title:       sample.title,
			Description: sample.description,
			Category:    sample.category,
			Priority:    sample.priority,
			Status:      domain.ComplaintStatusPending,
			StudentID:   student.ID,
			StudentName: student.Name,
			RoomNumber:  student.RoomNumber,
			Hostel:      student.Hostel,
			RollNumber:  student.RollNumber,
			CreatedAt:   now.Add(-time.Duration(i) * 24 * time.Hour),
		}
		complaint.ApplyStatus(sample.status, wardenComments[sample.status], now)
		if err := s.store.Complaints.Create(ctx, complaint); err != nil {
			return fmt.Errorf("seed complaint %q: %w", sample.title, err)
		}
	}

	for _, a := range announcements {
		if err := s.store.Announcements.Create(ctx, &domain.Announcement{
			ID:            uuid.NewString(),
			Title:         a.title,
			Message:       a.message,
			Hostel:        domain.AnnouncementAudienceAll,
			CreatedBy:     firstWarden.ID,
			CreatedByName: firstWarden.Name,
			CreatedAt:     now.Add(-a.age),
		}); err != nil {
			return fmt.Errorf("seed announcement %q: %w", a.title, err)
		}
	}

	s.logger.Info("demo data seeded",
		zap.Int("wardens", len(wardens)),
		zap.Int("students", len(seededStudents)),
		zap.Int("complaints", len(complaints)),
		zap.Int("announcements", len(announcements)))
	return nil
}
