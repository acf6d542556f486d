package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/nyaysaathi/legal-assistant/internal/core/domain"
	"github.com/nyaysaathi/legal-assistant/internal/core/ports"
	"github.com/nyaysaathi/legal-assistant/internal/infrastructure/resilience"
)

const (
	defaultEmbeddingModel = "text-embedding-004"
	embedBatchSize        = 100
)

type EmbedderConfig struct {
	BaseURL           string
	APIKey            string
	Model             string
	Timeout           time.Duration
	RequestsPerSecond float64
}

func (c EmbedderConfig) normalize() EmbedderConfig {
	if c.BaseURL == "" {
		c.BaseURL = defaultBaseURL
	}
	if c.Model == "" {
		c.Model = defaultEmbeddingModel
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	return c
}

// Embedder implements ports.Embedder against the Gemini embedding endpoints.
type Embedder struct {
	cfg  EmbedderConfig
	t    *transport
	exec *resilience.Executor
}

func NewEmbedder(cfg EmbedderConfig, exec *resilience.Executor, log *slog.Logger) *Embedder {
	cfg = cfg.normalize()
	if exec == nil {
		exec = resilience.NewExecutor(resilience.DefaultPolicy(), log)
	}
	return &Embedder{
		cfg:  cfg,
		t:    newTransport(cfg.BaseURL, cfg.APIKey, &http.Client{Timeout: cfg.Timeout}, cfg.RequestsPerSecond),
		exec: exec,
	}
}

var _ ports.Embedder = (*Embedder)(nil)

type embedContentRequest struct {
	Model   string  `json:"model,omitempty"`
	Content content `json:"content"`
}

type embedContentResponse struct {
	Embedding struct {
		Values []float32 `json:"values"`
	} `json:"embedding"`
}

type batchEmbedRequest struct {
	Requests []embedContentRequest `json:"requests"`
}

type batchEmbedResponse struct {
	Embeddings []struct {
		Values []float32 `json:"values"`
	} `json:"embeddings"`
}

func (e *Embedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	payload := embedContentRequest{Content: content{Parts: []part{{Text: text}}}}
	var out embedContentResponse
	err := e.exec.Do(ctx, "gemini.embed_query", classifyError, func(ctx context.Context) error {
		out = embedContentResponse{}
		return e.t.postJSON(ctx, "/models/"+e.cfg.Model+":embedContent", payload, &out)
	})
	if err != nil {
		return nil, domain.WrapError(domain.ErrEmbeddingUnavailable, "embed query", err)
	}
	if len(out.Embedding.Values) == 0 {
		return nil, domain.WrapError(domain.ErrEmbeddingUnavailable, "embed query",
			fmt.Errorf("empty embedding returned"))
	}
	return out.Embedding.Values, nil
}

func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += embedBatchSize {
		end := min(start+embedBatchSize, len(texts))

		payload := batchEmbedRequest{Requests: make([]embedContentRequest, 0, end-start)}
		for _, text := range texts[start:end] {
			payload.Requests = append(payload.Requests, embedContentRequest{
				Model:   "models/" + e.cfg.Model,
				Content: content{Parts: []part{{Text: text}}},
			})
		}

		var out batchEmbedResponse
		err := e.exec.Do(ctx, "gemini.embed_batch", classifyError, func(ctx context.Context) error {
			out = batchEmbedResponse{}
			return e.t.postJSON(ctx, "/models/"+e.cfg.Model+":batchEmbedContents", payload, &out)
		})
		if err != nil {
			return nil, domain.WrapError(domain.ErrEmbeddingUnavailable, "embed batch", err)
		}
		if len(out.Embeddings) != end-start {
			return nil, domain.WrapError(domain.ErrEmbeddingUnavailable, "embed batch",
				fmt.Errorf("got %d embeddings for %d inputs", len(out.Embeddings), end-start))
		}
		for _, emb := range out.Embeddings {
			vectors = append(vectors, emb.Values)
		}
	}
	return vectors, nil
}
