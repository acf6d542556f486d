package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nyaysaathi/legal-assistant/internal/core/domain"
	"github.com/nyaysaathi/legal-assistant/internal/core/ports"
)

// Client implements ports.VectorStore against the qdrant REST API. The
// collection is created lazily on first index; searching before anything
// was indexed returns an empty result.
type Client struct {
	baseURL    string
	collection string
	httpClient *http.Client

	ensureMu          sync.Mutex
	ensuredCollection bool
	ensuredVectorSize int
}

func New(baseURL, collection string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		collection: collection,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

var _ ports.VectorStore = (*Client)(nil)

func (c *Client) IndexChunks(ctx context.Context, doc *domain.Document, chunks []string, vectors [][]float32) error {
	if len(chunks) == 0 || len(vectors) == 0 {
		return nil
	}
	if len(chunks) != len(vectors) {
		return fmt.Errorf("chunks/vectors mismatch: %d vs %d", len(chunks), len(vectors))
	}

	if err := c.ensureCollection(ctx, len(vectors[0])); err != nil {
		return err
	}

	type point struct {
		ID      string         `json:"id"`
		Vector  []float32      `json:"vector"`
		Payload map[string]any `json:"payload"`
	}

	points := make([]point, 0, len(chunks))
	for i := range chunks {
		meta := detectChunkMeta(chunks[i])
		payload := map[string]any{
			"doc_id":   doc.ID,
			"chunk_id": i,
			"text":     chunks[i],
			"statute":  doc.Statute,
			"title":    doc.Title,
		}
		if len(doc.Tags) > 0 {
			payload["tags"] = doc.Tags
		}
		if meta.Article != "" {
			payload["article"] = meta.Article
		}
		if meta.Section != "" {
			payload["section"] = meta.Section
		}
		if meta.Part != "" {
			payload["part"] = meta.Part
		}
		if meta.Chapter != "" {
			payload["chapter"] = meta.Chapter
		}
		points = append(points, point{
			ID:      uuid.NewString(),
			Vector:  vectors[i],
			Payload: payload,
		})
	}

	body, err := json.Marshal(map[string]any{"points": points})
	if err != nil {
		return fmt.Errorf("marshal upsert body: %w", err)
	}

	url := fmt.Sprintf("%s/collections/%s/points?wait=true", c.baseURL, c.collection)
	resp, err := c.do(ctx, http.MethodPut, url, body)
	if err != nil {
		return fmt.Errorf("qdrant upsert request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("qdrant upsert status: %s", resp.Status)
	}
	return nil
}

func (c *Client) Search(ctx context.Context, queryVector []float32, limit int) ([]domain.ContextChunk, error) {
	body, err := json.Marshal(map[string]any{
		"vector":       queryVector,
		"limit":        limit,
		"with_payload": true,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal search body: %w", err)
	}

	url := fmt.Sprintf("%s/collections/%s/points/search", c.baseURL, c.collection)
	resp, err := c.do(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, fmt.Errorf("qdrant search request: %w", err)
	}
	defer resp.Body.Close()

	// No collection yet means nothing was indexed.
	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("qdrant search status: %s", resp.Status)
	}

	var searchResp struct {
		Result []struct {
			Score   float64        `json:"score"`
			Payload map[string]any `json:"payload"`
		} `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	out := make([]domain.ContextChunk, 0, len(searchResp.Result))
	for _, r := range searchResp.Result {
		out = append(out, domain.ContextChunk{
			DocID:   getStringPayload(r.Payload, "doc_id"),
			ChunkID: getIntPayload(r.Payload, "chunk_id"),
			Text:    getStringPayload(r.Payload, "text"),
			Score:   r.Score,
			Meta: domain.ChunkMeta{
				Article: getStringPayload(r.Payload, "article"),
				Section: getStringPayload(r.Payload, "section"),
				Part:    getStringPayload(r.Payload, "part"),
				Chapter: getStringPayload(r.Payload, "chapter"),
				Statute: getStringPayload(r.Payload, "statute"),
				Title:   getStringPayload(r.Payload, "title"),
				Tags:    getStringSlicePayload(r.Payload, "tags"),
			},
		})
	}
	return out, nil
}

func (c *Client) DeleteByDocID(ctx context.Context, docID string) error {
	body, err := json.Marshal(map[string]any{
		"filter": map[string]any{
			"must": []map[string]any{
				{"key": "doc_id", "match": map[string]any{"value": docID}},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("marshal delete body: %w", err)
	}

	url := fmt.Sprintf("%s/collections/%s/points/delete?wait=true", c.baseURL, c.collection)
	resp, err := c.do(ctx, http.MethodPost, url, body)
	if err != nil {
		return fmt.Errorf("qdrant delete request: %w", err)
	}
	defer resp.Body.Close()

	// Nothing indexed for this document yet.
	if resp.StatusCode == http.StatusNotFound {
		return nil
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("qdrant delete status: %s", resp.Status)
	}
	return nil
}

func (c *Client) ensureCollection(ctx context.Context, vectorSize int) error {
	c.ensureMu.Lock()
	if c.ensuredCollection && c.ensuredVectorSize == vectorSize {
		c.ensureMu.Unlock()
		return nil
	}
	c.ensureMu.Unlock()

	body, err := json.Marshal(map[string]any{
		"vectors": map[string]any{
			"size":     vectorSize,
			"distance": "Cosine",
		},
	})
	if err != nil {
		return fmt.Errorf("marshal create collection body: %w", err)
	}

	url := fmt.Sprintf("%s/collections/%s", c.baseURL, c.collection)
	resp, err := c.do(ctx, http.MethodPut, url, body)
	if err != nil {
		return fmt.Errorf("qdrant ensure collection request: %w", err)
	}
	defer resp.Body.Close()

	// 200/201 for create, 409 if it already exists.
	if resp.StatusCode == http.StatusConflict {
		c.markCollectionEnsured(vectorSize)
		return nil
	}
	if resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		if s := strings.TrimSpace(string(msg)); s != "" {
			return fmt.Errorf("qdrant ensure collection status: %s: %s", resp.Status, s)
		}
		return fmt.Errorf("qdrant ensure collection status: %s", resp.Status)
	}
	c.markCollectionEnsured(vectorSize)
	return nil
}

func (c *Client) markCollectionEnsured(vectorSize int) {
	c.ensureMu.Lock()
	defer c.ensureMu.Unlock()
	c.ensuredCollection = true
	c.ensuredVectorSize = vectorSize
}

func (c *Client) do(ctx context.Context, method, url string, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.httpClient.Do(req)
}

var (
	chunkArticleRe = regexp.MustCompile(`(?i)\barticle\s+(\d+[A-Za-z]?(?:\([^)]+\))?)`)
	chunkSectionRe = regexp.MustCompile(`(?i)\bsection\s+(\d+[A-Za-z]?)`)
	chunkPartRe    = regexp.MustCompile(`(?i)\bpart\s+([IVXLC]+|\d+)`)
	chunkChapterRe = regexp.MustCompile(`(?i)\bchapter\s+([IVXLC]+|\d+)`)
)

// detectChunkMeta picks the first citation of each kind out of a chunk so
// searches can be reranked on exact citation matches. Heading-style chunks
// ("Article 21A. Right to education.") carry the signal in the first match.
func detectChunkMeta(text string) domain.ChunkMeta {
	var meta domain.ChunkMeta
	if m := chunkArticleRe.FindStringSubmatch(text); m != nil {
		meta.Article = normalizeCitation(m[1])
	}
	if m := chunkSectionRe.FindStringSubmatch(text); m != nil {
		meta.Section = normalizeCitation(m[1])
	}
	if m := chunkPartRe.FindStringSubmatch(text); m != nil {
		meta.Part = strings.ToUpper(m[1])
	}
	if m := chunkChapterRe.FindStringSubmatch(text); m != nil {
		meta.Chapter = strings.ToUpper(m[1])
	}
	return meta
}

// normalizeCitation uppercases a trailing schedule letter ("21a" -> "21A")
// while leaving clause suffixes like "19(1)" alone.
func normalizeCitation(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || strings.Contains(s, "(") {
		return strings.ToLower(strings.ReplaceAll(s, " ", ""))
	}
	last := s[len(s)-1]
	if last >= 'a' && last <= 'z' {
		return s[:len(s)-1] + strings.ToUpper(string(last))
	}
	if last >= 'A' && last <= 'Z' {
		return s
	}
	return s
}

func getStringPayload(payload map[string]any, key string) string {
	v, ok := payload[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func getIntPayload(payload map[string]any, key string) int {
	switch v := payload[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}

func getStringSlicePayload(payload map[string]any, key string) []string {
	raw, ok := payload[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
