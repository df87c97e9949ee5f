package domain

import (
	"context"
	"time"
)

// User roles. Organizers may create venues and events; participants register
// and get checked in.
const (
	RoleParticipant = "participant"
	RoleOrganizer   = "organizer"
)

// User represents a registered user. Gender, Branch, and GraduationYear are
// optional demographic attributes used only as read-only dimensions by
// analytics grouping.
// swagger:model User
type User struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	Salt           string    `json:"-"`
	Role           string    `json:"role"`
	Gender         *string   `json:"gender,omitempty"`
	Branch         *string   `json:"branch,omitempty"`
	GraduationYear *int      `json:"graduation_year,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser returns a new User with the given fields. ID is typically set by the repository on create.
func NewUser(username, email, role string, createdAt, updatedAt time.Time) *User {
	return &User{
		Username:  username,
		Email:     email,
		Role:      role,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// PasswordHasher handles salt generation, hashing, and verification.
// Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(userID, email, role string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated principal.
type TokenVerifier interface {
	Verify(token string) (userID, role string, err error)
}

// UserRepository defines the interface for user storage
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
}

// AuthService defines signup and login for the identity gate. The rest of
// the application consumes only the principal carried by the token.
type AuthService interface {
	SignUp(ctx context.Context, in SignUpInput) (*User, error)
	Login(ctx context.Context, email, password string) (token string, user *User, err error)
	GetByID(ctx context.Context, id string) (*User, error)
}

// SignUpInput carries the fields accepted at signup.
type SignUpInput struct {
	Username       string
	Email          string
	Password       string
	Role           string
	Gender         *string
	Branch         *string
	GraduationYear *int
}
