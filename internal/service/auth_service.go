package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hostel-cms/complaint-service/internal/auth"
	"github.com/hostel-cms/complaint-service/internal/config"
	"github.com/hostel-cms/complaint-service/internal/domain"
	"github.com/hostel-cms/complaint-service/internal/repository"
	apperrors "github.com/hostel-cms/complaint-service/pkg/util/errorutil"
)

// maxPasswordBytes is the longest input bcrypt will hash.
const maxPasswordBytes = 72

// AuthService coordinates registration, login and account lookups.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
	now        func() time.Time
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	UserRepo repository.UserRepository
	// Tokens overrides the token manager built from config.
	Tokens *auth.TokenManager
	Now    func() time.Time
}

// RegisterInput carries a student self-registration.
type RegisterInput struct {
	Name       string
	Email      string
	Password   string
	RoomNumber string
	Hostel     string
	RollNumber string
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	tokens := deps.Tokens
	if tokens == nil {
		tokens = auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	}
	return &AuthService{
		users:      deps.UserRepo,
		tokenMgr:   tokens,
		bcryptCost: cfg.BcryptCost,
		now:        clockOrDefault(deps.Now),
	}
}

// Register creates a student account and signs a token for it.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	input = RegisterInput{
		Name:       strings.TrimSpace(input.Name),
		Email:      strings.TrimSpace(input.Email),
		Password:   input.Password,
		RoomNumber: strings.TrimSpace(input.RoomNumber),
		Hostel:     strings.TrimSpace(input.Hostel),
		RollNumber: strings.TrimSpace(input.RollNumber),
	}
	if missing := blankFields(map[string]string{
		"name":       input.Name,
		"email":      input.Email,
		"password":   strings.TrimSpace(input.Password),
		"roomNumber": input.RoomNumber,
		"rollNumber": input.RollNumber,
	}); len(missing) > 0 {
		return nil, apperrors.NewValidationError("please provide all required fields", map[string]any{"missing": missing})
	}
	if input.Hostel == "" {
		input.Hostel = domain.DefaultHostel
	}

	user, err := s.createUser(ctx, domain.User{
		Name:       input.Name,
		Email:      input.Email,
		Role:       domain.RoleStudent,
		Hostel:     input.Hostel,
		RoomNumber: input.RoomNumber,
		RollNumber: input.RollNumber,
	}, input.Password)
	if err != nil {
		return nil, err
	}
	return s.issue(user)
}

// Login verifies credentials. Unknown email and wrong password fail the same way.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, apperrors.NewValidationError("email and password are required", nil)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewInvalidCredentials()
	}
	if err != nil {
		return nil, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, apperrors.NewInvalidCredentials()
	}
	return s.issue(user)
}

// ListStudents returns every student account, oldest first. Wardens only.
func (s *AuthService) ListStudents(ctx context.Context, identity domain.Identity) ([]domain.User, error) {
	if err := auth.RequireRole(identity, domain.RoleWarden); err != nil {
		return nil, err
	}
	return s.users.ListByRole(ctx, domain.RoleStudent)
}

// GetProfile returns the caller's own account.
func (s *AuthService) GetProfile(ctx context.Context, identity domain.Identity) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, identity.ID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewNotFound("user", nil)
	}
	return user, err
}

// CreateWarden provisions a warden account. There is no public route for it;
// wardens come from the demo seeder or an operator.
func (s *AuthService) CreateWarden(ctx context.Context, name, email, password, hostel string) (*domain.User, error) {
	name, email, hostel = strings.TrimSpace(name), strings.TrimSpace(email), strings.TrimSpace(hostel)
	if missing := blankFields(map[string]string{"name": name, "email": email, "password": password}); len(missing) > 0 {
		return nil, apperrors.NewValidationError("please provide all required fields", map[string]any{"missing": missing})
	}
	if hostel == "" {
		hostel = domain.DefaultHostel
	}
	return s.createUser(ctx, domain.User{
		Name:   name,
		Email:  email,
		Role:   domain.RoleWarden,
		Hostel: hostel,
	}, password)
}

func (s *AuthService) createUser(ctx context.Context, user domain.User, password string) (*domain.User, error) {
	if len(password) > maxPasswordBytes {
		return nil, apperrors.NewValidationError("password is too long", map[string]any{"maxBytes": maxPasswordBytes})
	}
	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	user.ID = uuid.NewString()
	user.PasswordHash = hash
	user.CreatedAt = s.now()

	if err := s.users.Create(ctx, &user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperrors.NewDuplicateEmail()
		}
		return nil, err
	}
	return &user, nil
}

func (s *AuthService) issue(user *domain.User) (*AuthResult, error) {
	token, exp, err := s.tokenMgr.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token, ExpiresAt: exp}, nil
}
