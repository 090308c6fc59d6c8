package app

import (
	"fmt"

	accountsHTTP "github.com/scholarvault/scholarvault/internal/accounts/http"
	accountsRepository "github.com/scholarvault/scholarvault/internal/accounts/repository"
	accountsUseCase "github.com/scholarvault/scholarvault/internal/accounts/usecase"
)

// UserRepository returns the account repository for the configured database
// driver.
func (c *Container) UserRepository() (accountsUseCase.UserRepository, error) {
	c.userRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["userRepo"] = fmt.Errorf("failed to get database for user repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "mysql":
			c.userRepo = accountsRepository.NewMySQLUserRepository(db)
		case "postgres":
			c.userRepo = accountsRepository.NewPostgreSQLUserRepository(db)
		default:
			c.initErrors["userRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["userRepo"]; exists {
		return nil, storedErr
	}
	return c.userRepo, nil
}

// UserUseCase returns the account use case.
func (c *Container) UserUseCase() (accountsUseCase.UserUseCase, error) {
	c.userUseCaseInit.Do(func() {
		userRepo, err := c.UserRepository()
		if err != nil {
			c.initErrors["userUseCase"] = err
			return
		}

		bearerService, err := c.BearerService()
		if err != nil {
			c.initErrors["userUseCase"] = err
			return
		}

		useCase, err := accountsUseCase.NewUserUseCase(userRepo, bearerService)
		if err != nil {
			c.initErrors["userUseCase"] = fmt.Errorf("failed to create user use case: %w", err)
			return
		}
		c.userUseCase = useCase
	})
	if storedErr, exists := c.initErrors["userUseCase"]; exists {
		return nil, storedErr
	}
	return c.userUseCase, nil
}

// TokenHandler returns the login handler.
func (c *Container) TokenHandler() (*accountsHTTP.TokenHandler, error) {
	c.tokenHandlerInit.Do(func() {
		useCase, err := c.UserUseCase()
		if err != nil {
			c.initErrors["tokenHandler"] = err
			return
		}
		c.tokenHandler = accountsHTTP.NewTokenHandler(useCase, c.Logger())
	})
	if storedErr, exists := c.initErrors["tokenHandler"]; exists {
		return nil, storedErr
	}
	return c.tokenHandler, nil
}
