package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/nyaysaathi/legal-assistant/internal/core/domain"
	"github.com/nyaysaathi/legal-assistant/internal/infrastructure/resilience"
)

func fastExec() *resilience.Executor {
	return resilience.NewExecutor(resilience.Policy{
		MaxAttempts:    2,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     time.Millisecond,
		Multiplier:     1,
		BreakerEnabled: false,
	}, nil)
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := NewClient(Config{BaseURL: srv.URL, APIKey: "test-key", Model: "gemini-2.0-flash"}, fastExec(), nil)
	return client, srv
}

func reply(w http.ResponseWriter, text string) {
	_ = json.NewEncoder(w).Encode(map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"role": "model", "parts": []map[string]any{{"text": text}}}},
		},
	})
}

func TestGenerateMapsRolesAndSystemInstruction(t *testing.T) {
	var got generateRequest
	var gotPath, gotKey string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Error(err)
		}
		reply(w, "answer")
	}))

	out, err := client.Generate(context.Background(), []domain.PromptMessage{
		{Role: domain.RoleSystem, Content: "be terse"},
		{Role: domain.RoleUser, Content: "question"},
		{Role: domain.RoleAssistant, Content: "earlier answer"},
	}, domain.GenerateOptions{Temperature: 0.2, MaxTokens: 100})
	if err != nil {
		t.Fatal(err)
	}
	if out != "answer" {
		t.Errorf("out = %q", out)
	}
	if gotPath != "/models/gemini-2.0-flash:generateContent" {
		t.Errorf("path = %q", gotPath)
	}
	if gotKey != "test-key" {
		t.Errorf("api key header = %q", gotKey)
	}
	if got.SystemInstruction == nil || got.SystemInstruction.Parts[0].Text != "be terse" {
		t.Errorf("system instruction = %+v", got.SystemInstruction)
	}
	if len(got.Contents) != 2 || got.Contents[0].Role != "user" || got.Contents[1].Role != "model" {
		t.Errorf("contents = %+v", got.Contents)
	}
	if got.GenerationConfig.MaxOutputTokens != 100 {
		t.Errorf("maxOutputTokens = %d", got.GenerationConfig.MaxOutputTokens)
	}
}

func TestGenerateWalksModelCandidatesOn404(t *testing.T) {
	var paths []string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		if strings.Contains(r.URL.Path, "gemini-2.0-flash-exp") {
			reply(w, "from fallback")
			return
		}
		http.Error(w, `{"error": {"message": "model not found"}}`, http.StatusNotFound)
	}))

	out, err := client.Generate(context.Background(), []domain.PromptMessage{
		{Role: domain.RoleUser, Content: "q"},
	}, domain.GenerateOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if out != "from fallback" {
		t.Errorf("out = %q", out)
	}
	if len(paths) != 2 {
		t.Errorf("paths = %v, want primary then fallback", paths)
	}

	// The working model is cached and tried first next time.
	paths = nil
	if _, err := client.Generate(context.Background(), []domain.PromptMessage{
		{Role: domain.RoleUser, Content: "q"},
	}, domain.GenerateOptions{}); err != nil {
		t.Fatal(err)
	}
	if len(paths) != 1 || !strings.Contains(paths[0], "gemini-2.0-flash-exp") {
		t.Errorf("cached model not preferred: %v", paths)
	}
}

func TestGenerateRetriesServerErrors(t *testing.T) {
	calls := 0
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			http.Error(w, "overloaded", http.StatusServiceUnavailable)
			return
		}
		reply(w, "recovered")
	}))

	out, err := client.Generate(context.Background(), []domain.PromptMessage{
		{Role: domain.RoleUser, Content: "q"},
	}, domain.GenerateOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if out != "recovered" || calls != 2 {
		t.Errorf("out = %q, calls = %d", out, calls)
	}
}

func TestStreamGenerateDeliversDeltas(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, ":streamGenerateContent") {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.URL.Query().Get("alt") != "sse" {
			t.Errorf("alt = %q", r.URL.Query().Get("alt"))
		}
		w.Header().Set("Content-Type", "text/event-stream")
		for _, text := range []string{"Hello ", "world"} {
			chunk, _ := json.Marshal(map[string]any{
				"candidates": []map[string]any{
					{"content": map[string]any{"parts": []map[string]any{{"text": text}}}},
				},
			})
			_, _ = w.Write([]byte("data: " + string(chunk) + "\n\n"))
		}
	}))

	var tokens []string
	err := client.StreamGenerate(context.Background(), []domain.PromptMessage{
		{Role: domain.RoleUser, Content: "q"},
	}, domain.GenerateOptions{}, func(tok string) error {
		tokens = append(tokens, tok)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(tokens, "") != "Hello world" {
		t.Errorf("tokens = %v", tokens)
	}
}

func TestEmbedderQueryAndBatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, ":embedContent"):
			_ = json.NewEncoder(w).Encode(map[string]any{
				"embedding": map[string]any{"values": []float32{0.1, 0.2}},
			})
		case strings.HasSuffix(r.URL.Path, ":batchEmbedContents"):
			var req batchEmbedRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			embs := make([]map[string]any, len(req.Requests))
			for i := range req.Requests {
				embs[i] = map[string]any{"values": []float32{float32(i)}}
			}
			_ = json.NewEncoder(w).Encode(map[string]any{"embeddings": embs})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()
	emb := NewEmbedder(EmbedderConfig{BaseURL: srv.URL, APIKey: "k"}, fastExec(), nil)

	vec, err := emb.EmbedQuery(context.Background(), "query")
	if err != nil {
		t.Fatal(err)
	}
	if len(vec) != 2 {
		t.Errorf("vec = %v", vec)
	}

	vecs, err := emb.Embed(context.Background(), []string{"a", "b", "c"})
	if err != nil {
		t.Fatal(err)
	}
	if len(vecs) != 3 {
		t.Errorf("got %d vectors", len(vecs))
	}
}

func TestEmbedderFailureWrapsKind(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad request", http.StatusBadRequest)
	}))
	defer srv.Close()
	emb := NewEmbedder(EmbedderConfig{BaseURL: srv.URL, APIKey: "k"}, fastExec(), nil)

	_, err := emb.EmbedQuery(context.Background(), "q")
	if !domain.IsKind(err, domain.ErrEmbeddingUnavailable) {
		t.Errorf("err = %v, want embedding unavailable kind", err)
	}
}

func TestTaggerParsesFencedJSON(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reply(w, "```json\n{\"title\": \"IT Act\", \"statute\": \"IT Act\", \"tags\": [\"blocking\"], \"summary\": \"Blocking powers.\"}\n```")
	}))
	tagger := NewTagger(client)

	tags, err := tagger.Tag(context.Background(), "Section 69A ...")
	if err != nil {
		t.Fatal(err)
	}
	if tags.Statute != "IT Act" || len(tags.Tags) != 1 || tags.Tags[0] != "blocking" {
		t.Errorf("tags = %+v", tags)
	}
}

func TestClassifyError(t *testing.T) {
	cases := []struct {
		status        int
		retryable     bool
		recordFailure bool
	}{
		{429, true, true},
		{503, true, true},
		{500, true, true},
		{404, false, false},
		{400, false, false},
		{401, false, true},
	}
	for _, tc := range cases {
		class := classifyError(&HTTPStatusError{StatusCode: tc.status})
		if class.Retryable != tc.retryable || class.RecordFailure != tc.recordFailure {
			t.Errorf("status %d: class = %+v", tc.status, class)
		}
	}
	if class := classifyError(context.Canceled); class.Retryable || class.RecordFailure {
		t.Errorf("cancellation must not retry or count: %+v", class)
	}
}
