package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nyaysaathi/legal-assistant/internal/core/domain"
	"github.com/nyaysaathi/legal-assistant/internal/core/ports"
)

// IngestUseCase accepts a source document, persists it, and hands it to the
// worker over the queue. Indexing happens asynchronously; the caller gets
// back a document in status "uploaded".
type IngestUseCase struct {
	storage ports.ObjectStorage
	repo    ports.DocumentRepository
	queue   ports.MessageQueue
	log     *slog.Logger
}

func NewIngestUseCase(storage ports.ObjectStorage, repo ports.DocumentRepository, queue ports.MessageQueue, log *slog.Logger) *IngestUseCase {
	if log == nil {
		log = slog.Default()
	}
	return &IngestUseCase{storage: storage, repo: repo, queue: queue, log: log}
}

var _ ports.DocumentIngestor = (*IngestUseCase)(nil)

var allowedExtensions = map[string]struct{}{
	".pdf": {}, ".txt": {}, ".md": {},
}

func (uc *IngestUseCase) Upload(ctx context.Context, filename, mimeType string, body io.Reader) (*domain.Document, error) {
	ext := strings.ToLower(path.Ext(filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return nil, domain.WrapError(domain.ErrInvalidInput, "ingest.upload",
			fmt.Errorf("unsupported file type %q", ext))
	}

	now := time.Now().UTC()
	doc := &domain.Document{
		ID:          uuid.NewString(),
		Filename:    filename,
		MimeType:    mimeType,
		StoragePath: "",
		Status:      domain.StatusUploaded,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	doc.StoragePath = doc.ID + ext

	if err := uc.storage.Save(ctx, doc.StoragePath, body); err != nil {
		return nil, domain.WrapError(domain.ErrTemporary, "ingest.store", err)
	}
	if err := uc.repo.Create(ctx, doc); err != nil {
		return nil, domain.WrapError(domain.ErrTemporary, "ingest.create", err)
	}
	if err := uc.queue.PublishDocumentIngested(ctx, doc.ID); err != nil {
		// The record exists; the operator can requeue. Surface the failure in
		// document state rather than dropping the upload.
		uc.log.ErrorContext(ctx, "publish ingested event failed",
			slog.String("document_id", doc.ID), slog.Any("error", err))
		_ = uc.repo.UpdateStatus(ctx, doc.ID, domain.StatusFailed, "queue publish failed: "+err.Error())
		return nil, domain.WrapError(domain.ErrTemporary, "ingest.publish", err)
	}

	uc.log.InfoContext(ctx, "document accepted",
		slog.String("document_id", doc.ID), slog.String("filename", filename))
	return doc, nil
}
