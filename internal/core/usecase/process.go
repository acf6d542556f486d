package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nyaysaathi/legal-assistant/internal/core/domain"
	"github.com/nyaysaathi/legal-assistant/internal/core/ports"
)

// ProcessUseCase runs the indexing pipeline for one uploaded document:
// extract, chunk, tag, embed, index. Every step failure lands in the
// document record so the API can report why a document never became ready.
type ProcessUseCase struct {
	repo      ports.DocumentRepository
	extractor ports.TextExtractor
	chunker   ports.Chunker
	tagger    ports.DocumentTagger
	embedder  ports.Embedder
	vectors   ports.VectorStore
	log       *slog.Logger
}

func NewProcessUseCase(
	repo ports.DocumentRepository,
	extractor ports.TextExtractor,
	chunker ports.Chunker,
	tagger ports.DocumentTagger,
	embedder ports.Embedder,
	vectors ports.VectorStore,
	log *slog.Logger,
) *ProcessUseCase {
	if log == nil {
		log = slog.Default()
	}
	return &ProcessUseCase{
		repo:      repo,
		extractor: extractor,
		chunker:   chunker,
		tagger:    tagger,
		embedder:  embedder,
		vectors:   vectors,
		log:       log,
	}
}

var _ ports.DocumentProcessor = (*ProcessUseCase)(nil)

func (uc *ProcessUseCase) ProcessByID(ctx context.Context, documentID string) error {
	doc, err := uc.repo.GetByID(ctx, documentID)
	if err != nil {
		return fmt.Errorf("load document %s: %w", documentID, err)
	}
	log := uc.log.With(slog.String("document_id", doc.ID))

	if err := uc.repo.UpdateStatus(ctx, doc.ID, domain.StatusProcessing, ""); err != nil {
		return fmt.Errorf("mark processing: %w", err)
	}

	text, err := uc.extractor.Extract(ctx, doc)
	if err != nil {
		return uc.fail(ctx, log, doc.ID, "extract", err)
	}
	if strings.TrimSpace(text) == "" {
		return uc.fail(ctx, log, doc.ID, "extract", fmt.Errorf("document produced no text"))
	}

	chunks := uc.chunker.Split(text)
	if len(chunks) == 0 {
		return uc.fail(ctx, log, doc.ID, "chunk", fmt.Errorf("no chunks produced"))
	}

	// Tagging is best effort: an untagged document is still searchable, it
	// just earns no citation bonuses at rerank time.
	if uc.tagger != nil {
		tags, err := uc.tagger.Tag(ctx, text)
		if err != nil {
			log.WarnContext(ctx, "tagging failed", slog.Any("error", err))
		} else {
			if err := uc.repo.SaveTags(ctx, doc.ID, tags); err != nil {
				log.WarnContext(ctx, "save tags failed", slog.Any("error", err))
			} else {
				doc.Title = tags.Title
				doc.Statute = tags.Statute
				doc.Tags = tags.Tags
				doc.Summary = tags.Summary
			}
		}
	}

	vectors, err := uc.embedder.Embed(ctx, chunks)
	if err != nil {
		return uc.fail(ctx, log, doc.ID, "embed", err)
	}
	if len(vectors) != len(chunks) {
		return uc.fail(ctx, log, doc.ID, "embed",
			fmt.Errorf("embedder returned %d vectors for %d chunks", len(vectors), len(chunks)))
	}

	// Replace-then-index keeps reprocessing idempotent.
	if err := uc.vectors.DeleteByDocID(ctx, doc.ID); err != nil {
		return uc.fail(ctx, log, doc.ID, "reindex", err)
	}
	if err := uc.vectors.IndexChunks(ctx, doc, chunks, vectors); err != nil {
		return uc.fail(ctx, log, doc.ID, "index", err)
	}

	if err := uc.repo.UpdateStatus(ctx, doc.ID, domain.StatusReady, ""); err != nil {
		return fmt.Errorf("mark ready: %w", err)
	}
	log.InfoContext(ctx, "document indexed", slog.Int("chunks", len(chunks)))
	return nil
}

func (uc *ProcessUseCase) fail(ctx context.Context, log *slog.Logger, id, step string, cause error) error {
	log.ErrorContext(ctx, "processing failed", slog.String("step", step), slog.Any("error", cause))
	msg := step + ": " + cause.Error()
	if err := uc.repo.UpdateStatus(ctx, id, domain.StatusFailed, msg); err != nil {
		log.ErrorContext(ctx, "mark failed errored", slog.Any("error", err))
	}
	return fmt.Errorf("%s document %s: %w", step, id, cause)
}
