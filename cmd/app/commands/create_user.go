package commands

import (
	"context"
	"fmt"
	"log/slog"

	accountsUseCase "github.com/scholarvault/scholarvault/internal/accounts/usecase"
	"github.com/scholarvault/scholarvault/internal/app"
	"github.com/scholarvault/scholarvault/internal/config"
)

// RunCreateUser creates an account through the account use case so the same
// validation and password hashing apply as for any other registration path.
func RunCreateUser(ctx context.Context, name, email, password, role string) error {
	cfg := config.Load()

	container := app.NewContainer(cfg)
	logger := container.Logger()

	defer closeContainer(container, logger)

	userUseCase, err := container.UserUseCase()
	if err != nil {
		return fmt.Errorf("failed to initialize user use case: %w", err)
	}

	user, err := userUseCase.RegisterUser(ctx, accountsUseCase.RegisterUserInput{
		Name:     name,
		Email:    email,
		Password: password,
		Role:     role,
	})
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	logger.Info("user created",
		slog.String("id", user.ID.String()),
		slog.String("email", user.Email),
		slog.String("role", string(user.Role)),
	)

	return nil
}
