package ports

import (
	"context"
	"io"

	"github.com/nyaysaathi/legal-assistant/internal/core/domain"
)

// LegalAnswerer is the inbound contract for the question answering core.
// Answer and AnswerStream always return a usable Answer; the only error they
// propagate is context cancellation.
type LegalAnswerer interface {
	RetrieveContext(ctx context.Context, query string, topK int) ([]domain.ContextChunk, error)
	Answer(ctx context.Context, query string) (domain.Answer, error)
	AnswerStream(ctx context.Context, query string, emit func(string) error) (domain.Answer, error)
}

// DocumentIngestor is the inbound contract for corpus upload orchestration.
type DocumentIngestor interface {
	Upload(ctx context.Context, filename, mimeType string, body io.Reader) (*domain.Document, error)
}

// DocumentProcessor is the inbound contract for asynchronous indexing.
type DocumentProcessor interface {
	ProcessByID(ctx context.Context, documentID string) error
}
