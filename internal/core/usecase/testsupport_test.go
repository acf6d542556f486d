package usecase

import (
	"context"
	"sync"

	"github.com/nyaysaathi/legal-assistant/internal/core/domain"
)

type fakeEmbedder struct {
	mu      sync.Mutex
	queries []string
	err     error
}

func (f *fakeEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{1}
	}
	return out, nil
}

func (f *fakeEmbedder) EmbedQuery(_ context.Context, text string) ([]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	f.queries = append(f.queries, text)
	f.mu.Unlock()
	return []float32{1}, nil
}

func (f *fakeEmbedder) queryCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queries)
}

type fakeVectorStore struct {
	mu       sync.Mutex
	results  []domain.ContextChunk
	searches int
	err      error
}

func (f *fakeVectorStore) IndexChunks(context.Context, *domain.Document, []string, [][]float32) error {
	return nil
}

func (f *fakeVectorStore) DeleteByDocID(context.Context, string) error { return nil }

func (f *fakeVectorStore) Search(_ context.Context, _ []float32, limit int) ([]domain.ContextChunk, error) {
	f.mu.Lock()
	f.searches++
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if limit < len(f.results) {
		return f.results[:limit], nil
	}
	return f.results, nil
}

func (f *fakeVectorStore) searchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.searches
}

// fakeLLM serves scripted replies; an empty script answers "ok", and the
// last reply is sticky. failures counts down errors before the first
// success; failAfter makes every call past that count fail.
type fakeLLM struct {
	mu        sync.Mutex
	replies   []string
	failures  int
	failAfter int
	err       error
	calls     int
	streamErr error
	lastMsgs  []domain.PromptMessage
}

func (f *fakeLLM) Generate(_ context.Context, messages []domain.PromptMessage, _ domain.GenerateOptions) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastMsgs = messages
	if f.failAfter > 0 && f.calls > f.failAfter {
		return "", errFakeLLM
	}
	if f.failures > 0 {
		f.failures--
		if f.err != nil {
			return "", f.err
		}
		return "", errFakeLLM
	}
	if len(f.replies) == 0 {
		return "ok", nil
	}
	reply := f.replies[0]
	if len(f.replies) > 1 {
		f.replies = f.replies[1:]
	}
	return reply, nil
}

func (f *fakeLLM) StreamGenerate(ctx context.Context, messages []domain.PromptMessage, opts domain.GenerateOptions, onToken func(string) error) error {
	if f.streamErr != nil {
		return f.streamErr
	}
	out, err := f.Generate(ctx, messages, opts)
	if err != nil {
		return err
	}
	return onToken(out)
}

func (f *fakeLLM) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeApprovals struct {
	ids map[string]struct{}
	err error
}

func (f *fakeApprovals) ListApprovedDocumentIDs(context.Context) (map[string]struct{}, error) {
	return f.ids, f.err
}

type scriptError string

func (e scriptError) Error() string { return string(e) }

const errFakeLLM = scriptError("llm unavailable")

func chunk(docID string, chunkID int, score float64, text string) domain.ContextChunk {
	return domain.ContextChunk{DocID: docID, ChunkID: chunkID, Score: score, Text: text}
}

// newTestUseCase wires fakes with zero retry backoff. A nil approvals fake
// disables gating entirely.
func newTestUseCase(emb *fakeEmbedder, vs *fakeVectorStore, llm *fakeLLM, approvals *fakeApprovals) *AnswerUseCase {
	cfg := AnswerConfig{RetryBackoffBase: -1}
	if approvals == nil {
		return NewAnswerUseCase(emb, vs, llm, nil, nil, nil, cfg)
	}
	return NewAnswerUseCase(emb, vs, llm, approvals, nil, nil, cfg)
}
