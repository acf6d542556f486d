package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/nyaysaathi/legal-assistant/internal/core/domain"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "meta", "docs.json"))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestCreateGetRoundTrip(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	doc := &domain.Document{ID: "doc-1", Filename: "it-act.pdf", Status: domain.StatusUploaded}
	if err := s.Create(ctx, doc); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := s.GetByID(ctx, "doc-1")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Filename != "it-act.pdf" || got.Status != domain.StatusUploaded {
		t.Errorf("got = %+v", got)
	}
	if got.UpdatedAt.IsZero() {
		t.Error("UpdatedAt not set")
	}
}

func TestCreateReplacesSameID(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	_ = s.Create(ctx, &domain.Document{ID: "doc-1", Filename: "old.txt"})
	if err := s.Create(ctx, &domain.Document{ID: "doc-1", Filename: "new.txt"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := s.GetByID(ctx, "doc-1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Filename != "new.txt" {
		t.Errorf("Filename = %q, want new.txt", got.Filename)
	}
}

func TestGetByIDUnknownDocument(t *testing.T) {
	s := newStore(t)
	_, err := s.GetByID(context.Background(), "missing")
	if !errors.Is(err, domain.ErrDocumentNotFound) {
		t.Errorf("err = %v, want ErrDocumentNotFound", err)
	}
}

func TestUpdateStatusAndTags(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	_ = s.Create(ctx, &domain.Document{ID: "doc-1", Status: domain.StatusUploaded})

	if err := s.UpdateStatus(ctx, "doc-1", domain.StatusFailed, "extract: empty text"); err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}
	if err := s.SaveTags(ctx, "doc-1", domain.LegalTags{
		Title: "IT Act", Statute: "IT Act", Tags: []string{"blocking"},
	}); err != nil {
		t.Fatalf("SaveTags() error = %v", err)
	}

	got, _ := s.GetByID(ctx, "doc-1")
	if got.Status != domain.StatusFailed || got.Error != "extract: empty text" {
		t.Errorf("status = %q, error = %q", got.Status, got.Error)
	}
	if got.Statute != "IT Act" || len(got.Tags) != 1 {
		t.Errorf("tags not saved: %+v", got)
	}

	if err := s.UpdateStatus(ctx, "missing", domain.StatusReady, ""); !errors.Is(err, domain.ErrDocumentNotFound) {
		t.Errorf("err = %v, want ErrDocumentNotFound", err)
	}
}

func TestApprovalSetOnlyContainsApproved(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	_ = s.Create(ctx, &domain.Document{ID: "doc-1"})
	_ = s.Create(ctx, &domain.Document{ID: "doc-2"})

	if err := s.SetApproved(ctx, "doc-1", true); err != nil {
		t.Fatalf("SetApproved() error = %v", err)
	}

	ids, err := s.ListApprovedDocumentIDs(ctx)
	if err != nil {
		t.Fatalf("ListApprovedDocumentIDs() error = %v", err)
	}
	if _, ok := ids["doc-1"]; !ok {
		t.Error("doc-1 missing from approval set")
	}
	if _, ok := ids["doc-2"]; ok {
		t.Error("doc-2 must not be approved")
	}

	_ = s.SetApproved(ctx, "doc-1", false)
	ids, _ = s.ListApprovedDocumentIDs(ctx)
	if len(ids) != 0 {
		t.Errorf("approval set = %v, want empty", ids)
	}
}

func TestFileShapeIsDocumentsArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docs.json")
	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	_ = s.Create(context.Background(), &domain.Document{ID: "doc-1"})

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var shape struct {
		Documents []map[string]any `json:"documents"`
	}
	if err := json.Unmarshal(raw, &shape); err != nil {
		t.Fatalf("parse file: %v", err)
	}
	if len(shape.Documents) != 1 || shape.Documents[0]["doc_id"] != "doc-1" {
		t.Errorf("file shape = %s", raw)
	}
}
