// Package domain defines the account entities behind credential issuance.
package domain

import (
	"time"

	"github.com/google/uuid"

	accessDomain "github.com/scholarvault/scholarvault/internal/access/domain"
	apperrors "github.com/scholarvault/scholarvault/internal/errors"
)

// User represents an account that can authenticate and receive bearer
// credentials. The role recorded here is stamped into issued tokens.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Role         accessDomain.Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Domain-specific errors for account operations.
var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = apperrors.Wrap(apperrors.ErrNotFound, "user not found")

	// ErrUserAlreadyExists indicates a user with the same email already exists.
	ErrUserAlreadyExists = apperrors.Wrap(apperrors.ErrConflict, "user already exists")

	// ErrInvalidCredentials indicates a failed login. The same error covers an
	// unknown email and a wrong password so login responses do not reveal
	// which accounts exist.
	ErrInvalidCredentials = apperrors.Wrap(apperrors.ErrUnauthorized, "invalid credentials")
)
