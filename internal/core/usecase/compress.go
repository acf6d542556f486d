package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/nyaysaathi/legal-assistant/internal/core/domain"
)

const (
	compressMaxChunks    = 8
	compressChunkBudget  = 800
	compressFallbackTake = 3
)

// compressContext condenses the reranked chunks into a single synthetic
// memo chunk the generation prompt can afford. When the model is down the
// fallback stitches the top snippets verbatim, so grounded answering keeps
// working with a worse context rather than none.
func (uc *AnswerUseCase) compressContext(ctx context.Context, query string, chunks []domain.ContextChunk) domain.ContextChunk {
	take := chunks
	if len(take) > compressMaxChunks {
		take = take[:compressMaxChunks]
	}

	var sb strings.Builder
	for i, c := range take {
		text := c.Text
		if len(text) > compressChunkBudget {
			text = text[:compressChunkBudget]
		}
		fmt.Fprintf(&sb, "[%d] %s %s\n%s\n\n", i+1, citationLabel(c.Meta), c.Meta.Title, text)
	}

	messages := []domain.PromptMessage{
		{Role: domain.RoleSystem, Content: "You compress legal source excerpts into a compact working memo. " +
			"Write terse bullet points. Keep every article number, section number, proviso, and safeguard " +
			"that bears on the question. Preserve exact citation labels. Do not answer the question."},
		{Role: domain.RoleUser, Content: "Question: " + query + "\n\nExcerpts:\n" + sb.String()},
	}
	memo, err := uc.llm.Generate(ctx, messages, domain.GenerateOptions{Temperature: 0.1, MaxTokens: 1024})
	if err == nil && strings.TrimSpace(memo) != "" {
		return domain.ContextChunk{DocID: "synth", Text: strings.TrimSpace(memo), Score: 1}
	}

	fallback := take
	if len(fallback) > compressFallbackTake {
		fallback = fallback[:compressFallbackTake]
	}
	snippets := make([]string, 0, len(fallback))
	for _, c := range fallback {
		text := c.Text
		if len(text) > compressChunkBudget {
			text = text[:compressChunkBudget]
		}
		snippets = append(snippets, text)
	}
	return domain.ContextChunk{DocID: "concat", Text: strings.Join(snippets, "\n\n"), Score: 1}
}

// citationLabel renders the canonical label for a chunk's source unit.
func citationLabel(meta domain.ChunkMeta) string {
	switch {
	case meta.Article != "":
		return "Article " + meta.Article
	case meta.Section != "" && meta.Statute != "":
		return "Section " + meta.Section + " " + meta.Statute
	case meta.Section != "":
		return "Section " + meta.Section
	case meta.Part != "":
		return "Part " + strings.ToUpper(meta.Part)
	case meta.Chapter != "":
		return "Chapter " + strings.ToUpper(meta.Chapter)
	default:
		return meta.Statute
	}
}
