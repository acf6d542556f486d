package domain

import "time"

type DocumentStatus string

const (
	StatusUploaded   DocumentStatus = "uploaded"
	StatusProcessing DocumentStatus = "processing"
	StatusReady      DocumentStatus = "ready"
	StatusFailed     DocumentStatus = "failed"
)

// Document is a source text of the legal corpus (a bare act, a constitutional
// part, a judgment) tracked through the ingestion pipeline. Approved is set
// by an administrator and gates whether the document's chunks may be cited.
type Document struct {
	ID          string         `json:"doc_id"`
	Filename    string         `json:"filename"`
	MimeType    string         `json:"mime_type"`
	StoragePath string         `json:"storage_path"`
	Title       string         `json:"title,omitempty"`
	Statute     string         `json:"statute,omitempty"`
	Tags        []string       `json:"tags,omitempty"`
	Summary     string         `json:"summary,omitempty"`
	Approved    bool           `json:"approved"`
	Status      DocumentStatus `json:"status"`
	Error       string         `json:"error,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// LegalTags is the metadata the tagger extracts from a document's text
// before indexing. Statute holds the short act name ("IT Act", "CrPC",
// "Constitution of India"); Tags carry retrieval signals such as
// "procedure" or "blocking" consumed by the reranker.
type LegalTags struct {
	Title   string   `json:"title"`
	Statute string   `json:"statute"`
	Tags    []string `json:"tags"`
	Summary string   `json:"summary"`
}
