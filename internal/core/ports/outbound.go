package ports

import (
	"context"
	"io"

	"github.com/nyaysaathi/legal-assistant/internal/core/domain"
)

// Embedder builds vectors for chunks and query text. Initialization failure
// is domain.ErrEmbeddingUnavailable and is never retried by the core.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// VectorStore indexes chunks and performs semantic search. Search against a
// collection that does not exist yet returns an empty result, not an error.
type VectorStore interface {
	IndexChunks(ctx context.Context, doc *domain.Document, chunks []string, vectors [][]float32) error
	Search(ctx context.Context, queryVector []float32, limit int) ([]domain.ContextChunk, error)
	DeleteByDocID(ctx context.Context, docID string) error
}

// LLMProvider is the hosted language model boundary. StreamGenerate invokes
// onToken for each text delta; implementations stop on the first onToken
// error and return it.
type LLMProvider interface {
	Generate(ctx context.Context, messages []domain.PromptMessage, opts domain.GenerateOptions) (string, error)
	StreamGenerate(ctx context.Context, messages []domain.PromptMessage, opts domain.GenerateOptions, onToken func(string) error) error
}

// DocumentTagger extracts legal metadata from a document's text before
// indexing.
type DocumentTagger interface {
	Tag(ctx context.Context, text string) (domain.LegalTags, error)
}

// DocumentRepository persists document state and the admin approval flag.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, id string) (*domain.Document, error)
	UpdateStatus(ctx context.Context, id string, status domain.DocumentStatus, errMessage string) error
	SaveTags(ctx context.Context, id string, tags domain.LegalTags) error
	SetApproved(ctx context.Context, id string, approved bool) error
	ListApprovedDocumentIDs(ctx context.Context) (map[string]struct{}, error)
}

// ApprovalReader is the narrow read-side contract the answer pipeline needs:
// the fresh per-request approval set. An empty set disables gating.
type ApprovalReader interface {
	ListApprovedDocumentIDs(ctx context.Context) (map[string]struct{}, error)
}

// ObjectStorage stores source documents.
type ObjectStorage interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// MessageQueue publishes/consumes ingestion events.
type MessageQueue interface {
	PublishDocumentIngested(ctx context.Context, documentID string) error
	SubscribeDocumentIngested(ctx context.Context, handler func(context.Context, string) error) error
}

// TextExtractor extracts plain text from a stored document.
type TextExtractor interface {
	Extract(ctx context.Context, doc *domain.Document) (string, error)
}

// Chunker splits text into indexable chunks.
type Chunker interface {
	Split(text string) []string
}
