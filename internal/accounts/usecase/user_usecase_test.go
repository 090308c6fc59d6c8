package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	accessDomain "github.com/scholarvault/scholarvault/internal/access/domain"
	accessService "github.com/scholarvault/scholarvault/internal/access/service"
	"github.com/scholarvault/scholarvault/internal/accounts/domain"
	apperrors "github.com/scholarvault/scholarvault/internal/errors"
)

const testInstitutionDomain = "example.edu"

// fakeUserRepository is an in-memory UserRepository keyed by email.
type fakeUserRepository struct {
	users map[string]*domain.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[string]*domain.User)}
}

func (r *fakeUserRepository) Create(_ context.Context, user *domain.User) error {
	if _, exists := r.users[user.Email]; exists {
		return domain.ErrUserAlreadyExists
	}
	r.users[user.Email] = user
	return nil
}

func (r *fakeUserRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	for _, user := range r.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	user, ok := r.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func newTestUserUseCase(t *testing.T) (UserUseCase, accessService.BearerService) {
	t.Helper()

	bearerService := accessService.NewBearerService(
		accessDomain.BearerKey("bearer-test-key-0123456789abcdef"),
		testInstitutionDomain,
		time.Hour,
	)
	uc, err := NewUserUseCase(newFakeUserRepository(), bearerService)
	require.NoError(t, err)
	return uc, bearerService
}

func validRegisterInput() RegisterUserInput {
	return RegisterUserInput{
		Name:     "Alice Chen",
		Email:    "Alice@Example.EDU",
		Password: "Str0ngPassword",
		Role:     "faculty",
	}
}

func TestRegisterUser(t *testing.T) {
	uc, _ := newTestUserUseCase(t)

	user, err := uc.RegisterUser(context.Background(), validRegisterInput())
	require.NoError(t, err)
	assert.Equal(t, "Alice Chen", user.Name)
	assert.Equal(t, "alice@example.edu", user.Email)
	assert.Equal(t, accessDomain.RoleFaculty, user.Role)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "Str0ngPassword", user.PasswordHash)
}

func TestRegisterUser_ValidationFailures(t *testing.T) {
	uc, _ := newTestUserUseCase(t)

	tests := []struct {
		name  string
		setup func(input *RegisterUserInput)
	}{
		{"blank name", func(input *RegisterUserInput) { input.Name = "   " }},
		{"invalid email", func(input *RegisterUserInput) { input.Email = "not-an-email" }},
		{"short password", func(input *RegisterUserInput) { input.Password = "Sh0rt" }},
		{"password without upper", func(input *RegisterUserInput) { input.Password = "l0wercaseonly" }},
		{"password without number", func(input *RegisterUserInput) { input.Password = "NoNumbersHere" }},
		{"missing role", func(input *RegisterUserInput) { input.Role = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validRegisterInput()
			tt.setup(&input)

			_, err := uc.RegisterUser(context.Background(), input)
			require.Error(t, err)
			assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
		})
	}
}

func TestRegisterUser_UnknownRole(t *testing.T) {
	uc, _ := newTestUserUseCase(t)

	input := validRegisterInput()
	input.Role = "superuser"

	_, err := uc.RegisterUser(context.Background(), input)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
	assert.Contains(t, err.Error(), "role must be one of")
}

func TestRegisterUser_Duplicate(t *testing.T) {
	uc, _ := newTestUserUseCase(t)

	_, err := uc.RegisterUser(context.Background(), validRegisterInput())
	require.NoError(t, err)

	_, err = uc.RegisterUser(context.Background(), validRegisterInput())
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrConflict))
}

func TestAuthenticate(t *testing.T) {
	uc, bearerService := newTestUserUseCase(t)

	_, err := uc.RegisterUser(context.Background(), validRegisterInput())
	require.NoError(t, err)

	token, err := uc.Authenticate(context.Background(), "ALICE@example.edu", "Str0ngPassword")
	require.NoError(t, err)
	require.NotEmpty(t, token.AccessToken)
	assert.WithinDuration(t, time.Now().UTC().Add(time.Hour), token.ExpiresAt, 5*time.Second)

	// The issued token resolves to the account's identity and role.
	principal, err := bearerService.Resolve(token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.edu", principal.Identity)
	assert.Equal(t, accessDomain.RoleFaculty, principal.Role)
	assert.True(t, principal.Affiliated)
}

func TestAuthenticate_InvalidCredentials(t *testing.T) {
	uc, _ := newTestUserUseCase(t)

	_, err := uc.RegisterUser(context.Background(), validRegisterInput())
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"unknown email", "nobody@example.edu", "Str0ngPassword"},
		{"wrong password", "alice@example.edu", "WrongPassw0rd"},
		{"empty email", "", "Str0ngPassword"},
		{"empty password", "alice@example.edu", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Authenticate(context.Background(), tt.email, tt.password)
			require.Error(t, err)
			// Unknown email and wrong password are indistinguishable.
			assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
			assert.True(t, apperrors.Is(err, apperrors.ErrUnauthorized))
		})
	}
}
