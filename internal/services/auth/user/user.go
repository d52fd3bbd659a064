package user

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/louisbranch/talenthub/internal/platform/errors"
	"github.com/louisbranch/talenthub/internal/platform/id"
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 6

var (
	// ErrEmptyEmail indicates a missing email.
	ErrEmptyEmail = apperrors.EK(apperrors.KindInvalidInput, "auth.genericError", "email is required")
	// ErrInvalidEmail indicates an email that does not look like an address.
	ErrInvalidEmail = apperrors.EK(apperrors.KindInvalidInput, "auth.genericError", "email is not a valid address")
	// ErrWeakPassword indicates a password shorter than MinPasswordLength.
	ErrWeakPassword = apperrors.EK(apperrors.KindInvalidInput, "auth.genericError", "password is too short")

	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// Role is the account's privilege level.
type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

// ParseRole maps a stored value onto a Role, defaulting to member.
func ParseRole(value string) Role {
	if Role(strings.ToLower(strings.TrimSpace(value))) == RoleAdmin {
		return RoleAdmin
	}
	return RoleMember
}

// User is one registered account.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Role         Role
	ConfirmedAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Confirmed reports whether the email address has been confirmed.
func (u User) Confirmed() bool {
	return u.ConfirmedAt != nil
}

// IsAdmin reports whether the account may use the dashboard.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CreateUserInput describes a sign-up request.
type CreateUserInput struct {
	Email    string
	Password string
	Role     Role
	// Confirmed marks the email as confirmed at creation time.
	Confirmed bool
}

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail checks email shape after normalization.
func ValidateEmail(email string) error {
	if email == "" {
		return ErrEmptyEmail
	}
	if !emailPattern.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}

// CreateUser builds a new account with a bcrypt password hash.
func CreateUser(input CreateUserInput, now func() time.Time, idGenerator func() (string, error)) (User, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	email := NormalizeEmail(input.Email)
	if err := ValidateEmail(email); err != nil {
		return User{}, err
	}
	if len(input.Password) < MinPasswordLength {
		return User{}, ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}
	userID, err := idGenerator()
	if err != nil {
		return User{}, fmt.Errorf("generate user id: %w", err)
	}

	createdAt := now().UTC()
	created := User{
		ID:           userID,
		Email:        email,
		PasswordHash: string(hash),
		Role:         ParseRole(string(input.Role)),
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}
	if input.Confirmed {
		confirmedAt := createdAt
		created.ConfirmedAt = &confirmedAt
	}
	return created, nil
}

// CheckPassword reports whether password matches the stored hash.
func (u User) CheckPassword(password string) bool {
	if u.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}
