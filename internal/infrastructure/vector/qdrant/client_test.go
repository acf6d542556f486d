package qdrant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/nyaysaathi/legal-assistant/internal/core/domain"
)

func TestIndexChunksEnsuresCollectionOncePerVectorSize(t *testing.T) {
	var ensureCalls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPut && r.URL.Path == "/collections/legal":
			atomic.AddInt32(&ensureCalls, 1)
			w.WriteHeader(http.StatusCreated)
		case r.Method == http.MethodPut && r.URL.Path == "/collections/legal/points":
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := New(server.URL, "legal")
	doc := &domain.Document{ID: "doc-1", Filename: "constitution.txt"}
	chunks := []string{"a", "b"}
	vectors := [][]float32{{0.1, 0.2}, {0.3, 0.4}}

	if err := client.IndexChunks(context.Background(), doc, chunks, vectors); err != nil {
		t.Fatalf("first IndexChunks() error = %v", err)
	}
	if err := client.IndexChunks(context.Background(), doc, chunks, vectors); err != nil {
		t.Fatalf("second IndexChunks() error = %v", err)
	}
	if got := atomic.LoadInt32(&ensureCalls); got != 1 {
		t.Fatalf("expected ensure collection called once, got %d", got)
	}
}

func TestIndexChunksCarriesLegalPayload(t *testing.T) {
	var upsert struct {
		Points []struct {
			Payload map[string]any `json:"payload"`
		} `json:"points"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPut && r.URL.Path == "/collections/legal":
			w.WriteHeader(http.StatusCreated)
		case r.Method == http.MethodPut && r.URL.Path == "/collections/legal/points":
			if err := json.NewDecoder(r.Body).Decode(&upsert); err != nil {
				t.Error(err)
			}
			w.WriteHeader(http.StatusOK)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := New(server.URL, "legal")
	doc := &domain.Document{
		ID:      "doc-1",
		Statute: "Constitution of India",
		Title:   "Part III",
		Tags:    []string{"safeguard"},
	}
	chunks := []string{"Article 21A. Right to education. The State shall provide..."}
	if err := client.IndexChunks(context.Background(), doc, chunks, [][]float32{{0.1}}); err != nil {
		t.Fatalf("IndexChunks() error = %v", err)
	}

	if len(upsert.Points) != 1 {
		t.Fatalf("got %d points", len(upsert.Points))
	}
	p := upsert.Points[0].Payload
	if p["doc_id"] != "doc-1" || p["statute"] != "Constitution of India" {
		t.Errorf("payload = %v", p)
	}
	if p["article"] != "21A" {
		t.Errorf("article = %v, want 21A", p["article"])
	}
}

func TestSearchDecodesChunks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/collections/legal/points/search" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"result": [
			{"score": 0.9, "payload": {"doc_id": "doc-1", "chunk_id": 3, "text": "Section 69A...",
				"section": "69A", "statute": "IT Act", "tags": ["blocking"]}},
			{"score": 0.5, "payload": {"doc_id": "doc-2", "chunk_id": 0, "text": "Article 19..."}}
		]}`))
	}))
	defer server.Close()

	client := New(server.URL, "legal")
	chunks, err := client.Search(context.Background(), []float32{0.1, 0.2}, 5)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(chunks) != 2 {
		t.Fatalf("got %d chunks", len(chunks))
	}
	first := chunks[0]
	if first.DocID != "doc-1" || first.ChunkID != 3 || first.Score != 0.9 {
		t.Errorf("chunk = %+v", first)
	}
	if first.Meta.Section != "69A" || first.Meta.Statute != "IT Act" || len(first.Meta.Tags) != 1 {
		t.Errorf("meta = %+v", first.Meta)
	}
}

func TestSearchMissingCollectionReturnsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	client := New(server.URL, "legal")
	chunks, err := client.Search(context.Background(), []float32{0.1}, 5)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(chunks) != 0 {
		t.Fatalf("expected empty result, got %d chunks", len(chunks))
	}
}

func TestDeleteByDocIDFiltersOnDocID(t *testing.T) {
	var filter struct {
		Filter struct {
			Must []struct {
				Key   string `json:"key"`
				Match struct {
					Value string `json:"value"`
				} `json:"match"`
			} `json:"must"`
		} `json:"filter"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/collections/legal/points/delete" {
			http.NotFound(w, r)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&filter); err != nil {
			t.Error(err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := New(server.URL, "legal")
	if err := client.DeleteByDocID(context.Background(), "doc-9"); err != nil {
		t.Fatalf("DeleteByDocID() error = %v", err)
	}
	if len(filter.Filter.Must) != 1 || filter.Filter.Must[0].Key != "doc_id" ||
		filter.Filter.Must[0].Match.Value != "doc-9" {
		t.Errorf("filter = %+v", filter.Filter)
	}
}

func TestEnsureCollectionIncludesResponseBodyInError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut && r.URL.Path == "/collections/legal" {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	client := New(server.URL, "legal")
	doc := &domain.Document{ID: "doc-1"}
	err := client.IndexChunks(context.Background(), doc, []string{"a"}, [][]float32{{0.1}})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Fatalf("expected error to include body, got %v", err)
	}
}

func TestDetectChunkMeta(t *testing.T) {
	meta := detectChunkMeta("PART III. CHAPTER II. Article 19(1) and Section 69a of the Act.")
	if meta.Article != "19(1)" {
		t.Errorf("article = %q", meta.Article)
	}
	if meta.Section != "69A" {
		t.Errorf("section = %q", meta.Section)
	}
	if meta.Part != "III" || meta.Chapter != "II" {
		t.Errorf("part = %q, chapter = %q", meta.Part, meta.Chapter)
	}
}
