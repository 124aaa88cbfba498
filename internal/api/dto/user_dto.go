package dto

import (
	"time"

	"github.com/hostel-cms/complaint-service/internal/domain"
)

// UserRegisterRequest payload for student self-registration.
type UserRegisterRequest struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required"`
	Password   string `json:"password" validate:"required"`
	RoomNumber string `json:"roomNumber" validate:"required"`
	Hostel     string `json:"hostel"`
	RollNumber string `json:"rollNumber" validate:"required"`
}

// UserLoginRequest payload for login.
type UserLoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserResponse is a user without credentials.
type UserResponse struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Email      string      `json:"email"`
	Role       domain.Role `json:"role"`
	Hostel     string      `json:"hostel"`
	RoomNumber string      `json:"roomNumber,omitempty"`
	RollNumber string      `json:"rollNumber,omitempty"`
	CreatedAt  time.Time   `json:"createdAt"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// NewUserResponse maps a user, dropping the password hash.
func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		Hostel:     u.Hostel,
		RoomNumber: u.RoomNumber,
		RollNumber: u.RollNumber,
		CreatedAt:  u.CreatedAt,
	}
}

// NewUserListResponse maps a slice of users.
func NewUserListResponse(users []domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, NewUserResponse(&users[i]))
	}
	return out
}
