package domain

import "time"

// Role enumerates the two kinds of hostel accounts.
type Role string

const (
	RoleStudent Role = "student"
	RoleWarden  Role = "warden"
)

// DefaultHostel is assigned to students who register without picking a block.
const DefaultHostel = "Block A"

// User is a hostel account. RoomNumber and RollNumber are only set for students.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Hostel       string
	RoomNumber   string
	RollNumber   string
	CreatedAt    time.Time
}
