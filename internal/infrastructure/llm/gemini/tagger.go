package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nyaysaathi/legal-assistant/internal/core/domain"
	"github.com/nyaysaathi/legal-assistant/internal/core/ports"
)

const taggerMaxInput = 6000

// Tagger extracts legal metadata from document text using the generation
// model in strict-JSON mode.
type Tagger struct {
	client *Client
}

func NewTagger(client *Client) *Tagger {
	return &Tagger{client: client}
}

var _ ports.DocumentTagger = (*Tagger)(nil)

type taggerPayload struct {
	Title   string   `json:"title"`
	Statute string   `json:"statute"`
	Tags    []string `json:"tags"`
	Summary string   `json:"summary"`
}

func (t *Tagger) Tag(ctx context.Context, text string) (domain.LegalTags, error) {
	if len(text) > taggerMaxInput {
		text = text[:taggerMaxInput]
	}

	messages := []domain.PromptMessage{
		{Role: domain.RoleSystem, Content: "You label Indian legal documents. Reply with a single JSON object and nothing else: " +
			`{"title": string, "statute": string, "tags": [string], "summary": string}. ` +
			"title is the document's own title. statute is the short statute name (e.g. \"IT Act\", \"Constitution of India\") or empty. " +
			"tags are lowercase doctrine keywords such as procedure, safeguard, blocking, interception. " +
			"summary is at most two sentences."},
		{Role: domain.RoleUser, Content: text},
	}
	raw, err := t.client.Generate(ctx, messages, domain.GenerateOptions{Temperature: 0, MaxTokens: 512})
	if err != nil {
		return domain.LegalTags{}, fmt.Errorf("tag document: %w", err)
	}

	var payload taggerPayload
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &payload); err != nil {
		return domain.LegalTags{}, fmt.Errorf("tag document: parse model output: %w", err)
	}
	return domain.LegalTags{
		Title:   strings.TrimSpace(payload.Title),
		Statute: strings.TrimSpace(payload.Statute),
		Tags:    payload.Tags,
		Summary: strings.TrimSpace(payload.Summary),
	}, nil
}

// stripCodeFence unwraps ```json fences the model sometimes adds despite the
// instructions.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
