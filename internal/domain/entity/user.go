package entity

import "time"

// User is the aggregate root for the accounts domain.
// Passwords are stored as bcrypt hashes in Password.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Profile roles. Every user has exactly one profile row, created
// together with the user.
const (
	RoleAdmin     = "Admin"
	RoleLibrarian = "Librarian"
	RoleMember    = "Member"
)

// ValidRole reports whether role is one of the known profile roles.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleLibrarian, RoleMember:
		return true
	}
	return false
}

// UserProfile extends User with library-specific attributes.
type UserProfile struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Role        string     `json:"role"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	PhotoURL    string     `json:"photo_url,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
