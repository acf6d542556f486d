package extractor

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/nyaysaathi/legal-assistant/internal/core/domain"
	"github.com/nyaysaathi/legal-assistant/internal/core/ports"
)

// Dispatcher routes extraction by file extension so the processing worker
// holds a single TextExtractor regardless of corpus format.
type Dispatcher struct {
	byExt map[string]ports.TextExtractor
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{byExt: make(map[string]ports.TextExtractor)}
}

// Register maps a lowercase extension (with dot, e.g. ".pdf") to an
// extractor.
func (d *Dispatcher) Register(ext string, e ports.TextExtractor) *Dispatcher {
	d.byExt[strings.ToLower(ext)] = e
	return d
}

var _ ports.TextExtractor = (*Dispatcher)(nil)

func (d *Dispatcher) Extract(ctx context.Context, doc *domain.Document) (string, error) {
	ext := strings.ToLower(filepath.Ext(doc.Filename))
	e, ok := d.byExt[ext]
	if !ok {
		return "", fmt.Errorf("no extractor for %q files: %w", ext, domain.ErrInvalidInput)
	}
	return e.Extract(ctx, doc)
}
