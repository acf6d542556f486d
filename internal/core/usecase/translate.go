package usecase

import (
	"context"
	"strings"

	"github.com/nyaysaathi/legal-assistant/internal/core/domain"
)

// translateToEnglish rewrites a non-English query for retrieval against the
// English corpus. Any failure keeps the original text so retrieval still
// runs, just with weaker recall.
func (uc *AnswerUseCase) translateToEnglish(ctx context.Context, text string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}
	messages := []domain.PromptMessage{
		{Role: domain.RoleSystem, Content: "Translate the user text into English. Output only the translation, no explanations. " +
			"Preserve statute and case names and section/article numbers verbatim (e.g., Section 69A, Article 19(2))."},
		{Role: domain.RoleUser, Content: text},
	}
	out, err := uc.llm.Generate(ctx, messages, domain.GenerateOptions{Temperature: 0, MaxTokens: 1024})
	if err != nil || strings.TrimSpace(out) == "" {
		return text
	}
	return strings.TrimSpace(out)
}

// translateFromEnglish localizes a finished answer. On failure the English
// text is returned unchanged; a readable answer in the wrong language beats
// no answer.
func (uc *AnswerUseCase) translateFromEnglish(ctx context.Context, text, lang string) string {
	if lang == "en" || strings.TrimSpace(text) == "" {
		return text
	}
	name, ok := languageNames[lang]
	if !ok {
		return text
	}
	messages := []domain.PromptMessage{
		{Role: domain.RoleSystem, Content: "Translate the text into " + name + ". Output only the translation. " +
			"Keep statute and case names in English with section/article numbers verbatim (e.g., Section 69A, Article 19(2)). " +
			"Keep URLs unchanged. Do not add Markdown."},
		{Role: domain.RoleUser, Content: text},
	}
	out, err := uc.llm.Generate(ctx, messages, domain.GenerateOptions{Temperature: 0, MaxTokens: uc.cfg.MaxOutputTokens})
	if err != nil || strings.TrimSpace(out) == "" {
		return text
	}
	return strings.TrimSpace(out)
}
