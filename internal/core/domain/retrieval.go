package domain

import "fmt"

// ChunkMeta is the legal payload stored alongside each indexed chunk.
type ChunkMeta struct {
	Article  string   `json:"article,omitempty"`
	Section  string   `json:"section,omitempty"`
	Part     string   `json:"part,omitempty"`
	Chapter  string   `json:"chapter,omitempty"`
	Statute  string   `json:"statute,omitempty"`
	Title    string   `json:"title,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

// ContextChunk is one retrieved passage of the legal corpus. Identity is
// (DocID, ChunkID). A retrieved chunk is never rescored in place; the
// reranker emits a copy with the adjusted score.
type ContextChunk struct {
	DocID   string    `json:"doc_id"`
	ChunkID int       `json:"chunk_id"`
	Text    string    `json:"text"`
	Score   float64   `json:"score"`
	Meta    ChunkMeta `json:"meta"`
}

// Identity is the dedup key used when merging multi-query search results.
func (c ContextChunk) Identity() string {
	return fmt.Sprintf("%s:%d", c.DocID, c.ChunkID)
}
