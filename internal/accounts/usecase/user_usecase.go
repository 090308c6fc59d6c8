// Package usecase implements account business logic: registration and the
// login flow that exchanges credentials for a bearer token.
package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/allisson/go-pwdhash"
	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	accessDomain "github.com/scholarvault/scholarvault/internal/access/domain"
	accessService "github.com/scholarvault/scholarvault/internal/access/service"
	"github.com/scholarvault/scholarvault/internal/accounts/domain"
	apperrors "github.com/scholarvault/scholarvault/internal/errors"
	appValidation "github.com/scholarvault/scholarvault/internal/validation"
)

// RegisterUserInput contains the input data for user registration.
type RegisterUserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// IssuedToken is the outcome of a successful login.
type IssuedToken struct {
	AccessToken string
	ExpiresAt   time.Time
}

// UserUseCase defines account business operations.
type UserUseCase interface {
	// RegisterUser creates an account with a hashed password.
	RegisterUser(ctx context.Context, input RegisterUserInput) (*domain.User, error)

	// Authenticate verifies credentials and issues a bearer token carrying
	// the account's identity and role. Unknown email and wrong password both
	// return ErrInvalidCredentials.
	Authenticate(ctx context.Context, email, password string) (IssuedToken, error)
}

// UserRepository defines account persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// userUseCase implements UserUseCase.
type userUseCase struct {
	userRepo       UserRepository
	bearerService  accessService.BearerService
	passwordHasher *pwdhash.PasswordHasher
}

// NewUserUseCase creates a new account use case. The password hasher uses the
// interactive Argon2id policy.
func NewUserUseCase(userRepo UserRepository, bearerService accessService.BearerService) (UserUseCase, error) {
	hasher, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyInteractive))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create password hasher")
	}

	return &userUseCase{
		userRepo:       userRepo,
		bearerService:  bearerService,
		passwordHasher: hasher,
	}, nil
}

// validateRegisterUserInput validates registration input.
func (uc *userUseCase) validateRegisterUserInput(input RegisterUserInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Name,
			validation.Required.Error("name is required"),
			appValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&input.Email,
			validation.Required.Error("email is required"),
			appValidation.NotBlank,
			appValidation.Email,
			validation.Length(5, 255),
		),
		validation.Field(&input.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 128),
			appValidation.PasswordStrength{
				MinLength:     8,
				RequireUpper:  true,
				RequireLower:  true,
				RequireNumber: true,
			},
		),
		validation.Field(&input.Role,
			validation.Required.Error("role is required"),
		),
	)
	return appValidation.WrapValidationError(err)
}

// RegisterUser creates an account with a hashed password.
func (uc *userUseCase) RegisterUser(ctx context.Context, input RegisterUserInput) (*domain.User, error) {
	if err := uc.validateRegisterUserInput(input); err != nil {
		return nil, err
	}

	role, err := accessDomain.ParseRole(input.Role)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "role must be one of student, faculty, staff, admin")
	}

	hashedPassword, err := uc.passwordHasher.Hash([]byte(input.Password))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to hash password")
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.Must(uuid.NewV7()),
		Name:         strings.TrimSpace(input.Name),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash: hashedPassword,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Authenticate verifies credentials and issues a bearer token.
func (uc *userUseCase) Authenticate(ctx context.Context, email, password string) (IssuedToken, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return IssuedToken{}, domain.ErrInvalidCredentials
	}

	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return IssuedToken{}, domain.ErrInvalidCredentials
		}
		return IssuedToken{}, err
	}

	ok, err := uc.passwordHasher.Verify([]byte(password), user.PasswordHash)
	if err != nil || !ok {
		return IssuedToken{}, domain.ErrInvalidCredentials
	}

	token, expiresAt, err := uc.bearerService.Issue(user.Email, user.Role, time.Now().UTC())
	if err != nil {
		return IssuedToken{}, apperrors.Wrap(err, "failed to issue bearer token")
	}

	return IssuedToken{AccessToken: token, ExpiresAt: expiresAt}, nil
}
