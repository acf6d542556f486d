package chunking

import (
	"strings"

	"github.com/nyaysaathi/legal-assistant/internal/core/ports"
)

// Splitter produces overlapping fixed-size chunks. Splits prefer paragraph
// boundaries near the target size so a provision and its heading stay in
// the same chunk; overlap keeps cross-boundary sentences retrievable.
type Splitter struct {
	ChunkSize int
	Overlap   int
}

func NewSplitter(chunkSize, overlap int) *Splitter {
	if chunkSize <= 0 {
		chunkSize = 1600
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= chunkSize {
		overlap = chunkSize / 4
	}
	return &Splitter{
		ChunkSize: chunkSize,
		Overlap:   overlap,
	}
}

var _ ports.Chunker = (*Splitter)(nil)

func (s *Splitter) Split(text string) []string {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}

	step := s.ChunkSize - s.Overlap
	if step <= 0 {
		step = s.ChunkSize
	}

	out := make([]string, 0, len(runes)/step+1)
	for start := 0; start < len(runes); {
		end := start + s.ChunkSize
		if end > len(runes) {
			end = len(runes)
		} else if adjusted := paragraphBreak(runes, start, end); adjusted > start {
			end = adjusted
		}
		chunk := strings.TrimSpace(string(runes[start:end]))
		if chunk != "" {
			out = append(out, chunk)
		}
		if end == len(runes) {
			break
		}
		next := end - s.Overlap
		if next <= start {
			next = start + step
		}
		start = next
	}
	return out
}

// paragraphBreak looks back from the hard cut for a blank line and returns
// the position just past it, or 0 if none falls in the last quarter of the
// window.
func paragraphBreak(runes []rune, start, end int) int {
	floor := start + (end-start)*3/4
	for i := end - 1; i > floor; i-- {
		if runes[i] == '\n' && i > 0 && runes[i-1] == '\n' {
			return i + 1
		}
	}
	return 0
}
