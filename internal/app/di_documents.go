package app

import (
	"context"
	"fmt"

	docsHTTP "github.com/scholarvault/scholarvault/internal/documents/http"
	docsRepository "github.com/scholarvault/scholarvault/internal/documents/repository"
	docsUseCase "github.com/scholarvault/scholarvault/internal/documents/usecase"
	storageService "github.com/scholarvault/scholarvault/internal/storage/service"
)

// FileStore returns the blob-backed artifact store.
func (c *Container) FileStore() (*storageService.BlobFileStore, error) {
	c.fileStoreInit.Do(func() {
		store, err := storageService.NewBlobFileStore(context.Background(), c.config.StorageBucketURL)
		if err != nil {
			c.initErrors["fileStore"] = fmt.Errorf("failed to open file store: %w", err)
			return
		}
		c.fileStore = store
	})
	if storedErr, exists := c.initErrors["fileStore"]; exists {
		return nil, storedErr
	}
	return c.fileStore, nil
}

// DocumentRepository returns the document repository for the configured
// database driver.
func (c *Container) DocumentRepository() (docsUseCase.DocumentRepository, error) {
	c.documentRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["documentRepo"] = fmt.Errorf("failed to get database for document repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "mysql":
			c.documentRepo = docsRepository.NewMySQLDocumentRepository(db)
		case "postgres":
			c.documentRepo = docsRepository.NewPostgreSQLDocumentRepository(db)
		default:
			c.initErrors["documentRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["documentRepo"]; exists {
		return nil, storedErr
	}
	return c.documentRepo, nil
}

// DocumentUseCase returns the document use case wrapped with metrics
// instrumentation.
func (c *Container) DocumentUseCase() (docsUseCase.DocumentUseCase, error) {
	c.documentUseCaseInit.Do(func() {
		repo, err := c.DocumentRepository()
		if err != nil {
			c.initErrors["documentUseCase"] = err
			return
		}

		store, err := c.FileStore()
		if err != nil {
			c.initErrors["documentUseCase"] = err
			return
		}

		capabilityService, err := c.CapabilityService()
		if err != nil {
			c.initErrors["documentUseCase"] = err
			return
		}

		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			c.initErrors["documentUseCase"] = err
			return
		}

		useCase := docsUseCase.NewDocumentUseCase(repo, store, capabilityService)
		c.documentUseCase = docsUseCase.NewDocumentUseCaseWithMetrics(useCase, businessMetrics)
	})
	if storedErr, exists := c.initErrors["documentUseCase"]; exists {
		return nil, storedErr
	}
	return c.documentUseCase, nil
}

// DocumentHandler returns the document metadata handler.
func (c *Container) DocumentHandler() (*docsHTTP.DocumentHandler, error) {
	c.documentHandlerInit.Do(func() {
		useCase, err := c.DocumentUseCase()
		if err != nil {
			c.initErrors["documentHandler"] = err
			return
		}
		c.documentHandler = docsHTTP.NewDocumentHandler(useCase, c.Logger())
	})
	if storedErr, exists := c.initErrors["documentHandler"]; exists {
		return nil, storedErr
	}
	return c.documentHandler, nil
}

// FileHandler returns the delivery gate handler.
func (c *Container) FileHandler() (*docsHTTP.FileHandler, error) {
	c.fileHandlerInit.Do(func() {
		useCase, err := c.DocumentUseCase()
		if err != nil {
			c.initErrors["fileHandler"] = err
			return
		}

		bearerService, err := c.BearerService()
		if err != nil {
			c.initErrors["fileHandler"] = err
			return
		}

		capabilityService, err := c.CapabilityService()
		if err != nil {
			c.initErrors["fileHandler"] = err
			return
		}

		c.fileHandler = docsHTTP.NewFileHandler(useCase, bearerService, capabilityService, c.Logger())
	})
	if storedErr, exists := c.initErrors["fileHandler"]; exists {
		return nil, storedErr
	}
	return c.fileHandler, nil
}
