package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/nyaysaathi/legal-assistant/internal/core/domain"
	"github.com/nyaysaathi/legal-assistant/internal/core/ports"
)

// Store persists document metadata in a single docs.json file. It is the
// small-deployment backend; every write rewrites the file atomically via a
// temp file rename so a crash never leaves a half-written catalog.
type Store struct {
	path string
	mu   sync.Mutex
}

type catalog struct {
	Documents []*domain.Document `json:"documents"`
}

func New(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create metadata dir: %w", err)
	}
	return &Store{path: path}, nil
}

var _ ports.DocumentRepository = (*Store)(nil)

func (s *Store) Create(_ context.Context, doc *domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load()
	if err != nil {
		return err
	}
	// Replace any record with the same ID.
	kept := data.Documents[:0]
	for _, d := range data.Documents {
		if d.ID != doc.ID {
			kept = append(kept, d)
		}
	}
	data.Documents = kept

	cp := *doc
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now().UTC()
	}
	cp.UpdatedAt = time.Now().UTC()
	data.Documents = append(data.Documents, &cp)
	return s.save(data)
}

func (s *Store) GetByID(_ context.Context, id string) (*domain.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load()
	if err != nil {
		return nil, err
	}
	for _, d := range data.Documents {
		if d.ID == id {
			cp := *d
			return &cp, nil
		}
	}
	return nil, domain.ErrDocumentNotFound
}

func (s *Store) UpdateStatus(ctx context.Context, id string, status domain.DocumentStatus, errMessage string) error {
	return s.update(ctx, id, func(d *domain.Document) {
		d.Status = status
		d.Error = errMessage
	})
}

func (s *Store) SaveTags(ctx context.Context, id string, tags domain.LegalTags) error {
	return s.update(ctx, id, func(d *domain.Document) {
		d.Title = tags.Title
		d.Statute = tags.Statute
		d.Tags = tags.Tags
		d.Summary = tags.Summary
	})
}

func (s *Store) SetApproved(ctx context.Context, id string, approved bool) error {
	return s.update(ctx, id, func(d *domain.Document) {
		d.Approved = approved
	})
}

func (s *Store) ListApprovedDocumentIDs(_ context.Context) (map[string]struct{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load()
	if err != nil {
		return nil, err
	}
	out := make(map[string]struct{})
	for _, d := range data.Documents {
		if d.Approved {
			out[d.ID] = struct{}{}
		}
	}
	return out, nil
}

func (s *Store) update(_ context.Context, id string, apply func(*domain.Document)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load()
	if err != nil {
		return err
	}
	for _, d := range data.Documents {
		if d.ID == id {
			apply(d)
			d.UpdatedAt = time.Now().UTC()
			return s.save(data)
		}
	}
	return domain.ErrDocumentNotFound
}

func (s *Store) load() (*catalog, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return &catalog{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read metadata file: %w", err)
	}
	var data catalog
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse metadata file: %w", err)
	}
	return &data, nil
}

func (s *Store) save(data *catalog) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write metadata temp file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace metadata file: %w", err)
	}
	return nil
}
