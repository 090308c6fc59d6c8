package commands

import (
	"context"
	"fmt"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/scholarvault/scholarvault/internal/app"
	"github.com/scholarvault/scholarvault/internal/config"
	docsDomain "github.com/scholarvault/scholarvault/internal/documents/domain"
)

// CreateDocumentInput carries the ingest flags for a single document.
type CreateDocumentInput struct {
	FilePath       string
	Title          string
	Category       string
	Year           int
	Visibility     string
	EmbargoUntil   string
	AuthorEmail    string
	SubmitterEmail string
	AdviserEmail   string
	UploaderEmail  string
	AllowedViewers []string
	Status         string
}

// RunCreateDocument ingests an artifact: it uploads the bytes to the blob
// store, then records the document and its allow-list in one transaction so a
// failed insert never leaves a half-registered document behind.
func RunCreateDocument(ctx context.Context, input CreateDocumentInput) error {
	cfg := config.Load()

	container := app.NewContainer(cfg)
	logger := container.Logger()

	defer closeContainer(container, logger)

	doc, data, err := buildDocument(input)
	if err != nil {
		return err
	}

	fileStore, err := container.FileStore()
	if err != nil {
		return fmt.Errorf("failed to initialize file store: %w", err)
	}
	repo, err := container.DocumentRepository()
	if err != nil {
		return fmt.Errorf("failed to initialize document repository: %w", err)
	}
	txManager, err := container.TxManager()
	if err != nil {
		return fmt.Errorf("failed to initialize transaction manager: %w", err)
	}

	if err := fileStore.Write(ctx, doc.StorageKey, data, doc.ContentType); err != nil {
		return fmt.Errorf("failed to upload artifact bytes: %w", err)
	}

	err = txManager.WithTx(ctx, func(ctx context.Context) error {
		return repo.Create(ctx, doc)
	})
	if err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}

	logger.Info("document created",
		slog.String("id", doc.ID.String()),
		slog.String("title", doc.Title),
		slog.String("visibility", string(doc.Visibility)),
		slog.String("status", string(doc.Status)),
		slog.String("storage_key", doc.StorageKey),
	)

	return nil
}

// buildDocument reads the artifact from disk and assembles a validated
// document record for it.
func buildDocument(input CreateDocumentInput) (*docsDomain.Document, []byte, error) {
	data, err := os.ReadFile(input.FilePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read artifact file: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate document id: %w", err)
	}

	fileName := filepath.Base(input.FilePath)
	contentType := mime.TypeByExtension(filepath.Ext(fileName))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	var embargoUntil *time.Time
	if input.EmbargoUntil != "" {
		instant, err := time.Parse(time.RFC3339, input.EmbargoUntil)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to parse embargo instant: %w", err)
		}
		embargoUntil = &instant
	}

	now := time.Now().UTC()
	doc := &docsDomain.Document{
		ID:             id,
		Title:          input.Title,
		Category:       input.Category,
		Year:           input.Year,
		Visibility:     docsDomain.Visibility(input.Visibility),
		EmbargoUntil:   embargoUntil,
		AllowedViewers: input.AllowedViewers,
		AuthorEmail:    input.AuthorEmail,
		SubmitterEmail: input.SubmitterEmail,
		AdviserEmail:   input.AdviserEmail,
		UploaderEmail:  input.UploaderEmail,
		Status:         docsDomain.Status(input.Status),
		StorageKey:     fmt.Sprintf("documents/%s/%s", id, fileName),
		FileName:       fileName,
		ContentType:    contentType,
		FileSize:       int64(len(data)),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := doc.Validate(); err != nil {
		return nil, nil, err
	}

	return doc, data, nil
}
