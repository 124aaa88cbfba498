package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/hostel-cms/complaint-service/internal/config"
	"github.com/hostel-cms/complaint-service/internal/domain"
	"github.com/hostel-cms/complaint-service/internal/events"
	"github.com/hostel-cms/complaint-service/internal/repository"
	"github.com/hostel-cms/complaint-service/internal/repository/memory"
	apperrors "github.com/hostel-cms/complaint-service/pkg/util/errorutil"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) Events() []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]events.Event(nil), d.events...)
}

type fixture struct {
	store         *repository.Store
	clock         *fakeClock
	dispatcher    *recordingDispatcher
	auth          *AuthService
	complaints    *ComplaintService
	announcements *AnnouncementService
}

func newFixture(t *testing.T, policy domain.TransitionPolicy) *fixture {
	t.Helper()
	store := memory.NewStore()
	clock := newFakeClock()
	dispatcher := &recordingDispatcher{}

	authCfg := config.AuthConfig{JWTSecret: "test-secret", TokenTTL: time.Hour, BcryptCost: bcrypt.MinCost}
	return &fixture{
		store:      store,
		clock:      clock,
		dispatcher: dispatcher,
		auth:       NewAuthService(authCfg, AuthDependencies{UserRepo: store.Users, Now: clock.Now}),
		complaints: NewComplaintService(ComplaintDependencies{
			ComplaintRepo: store.Complaints,
			UserRepo:      store.Users,
			Dispatcher:    dispatcher,
			Policy:        policy,
			Now:           clock.Now,
		}),
		announcements: NewAnnouncementService(store.Announcements, clock.Now),
	}
}

func (f *fixture) student(t *testing.T, name, email string) domain.Identity {
	t.Helper()
	res, err := f.auth.Register(context.Background(), RegisterInput{
		Name:       name,
		Email:      email,
		Password:   "secret123",
		RoomNumber: "A-204",
		RollNumber: "R-" + name,
	})
	require.NoError(t, err)
	return identityOf(res.User)
}

func (f *fixture) warden(t *testing.T) domain.Identity {
	t.Helper()
	user, err := f.auth.CreateWarden(context.Background(), "Warden", "warden@hostel.com", "warden123", "Block A")
	require.NoError(t, err)
	return identityOf(user)
}

func (f *fixture) file(t *testing.T, who domain.Identity, title string, category domain.ComplaintCategory) *domain.Complaint {
	t.Helper()
	c, err := f.complaints.Create(context.Background(), who, ComplaintCreateInput{
		Title:       title,
		Description: title + " details",
		Category:    string(category),
	})
	require.NoError(t, err)
	f.clock.Advance(time.Minute)
	return c
}

func identityOf(u *domain.User) domain.Identity {
	return domain.Identity{ID: u.ID, Email: u.Email, Role: u.Role, Name: u.Name, Hostel: u.Hostel}
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, code, apperrors.ToDomainError(err).Code)
}
