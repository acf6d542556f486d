package domain

// PromptRole is the conversational role of a prompt message.
type PromptRole string

const (
	RoleSystem    PromptRole = "system"
	RoleUser      PromptRole = "user"
	RoleAssistant PromptRole = "assistant"
)

// PromptMessage is one entry of an LLM call payload.
type PromptMessage struct {
	Role    PromptRole `json:"role"`
	Content string     `json:"content"`
}

// GenerateOptions bound a single LLM call. Zero values mean provider
// defaults; TopP is a pointer because 0 is a meaningful value.
type GenerateOptions struct {
	Temperature float64
	TopP        *float64
	MaxTokens   int
}

// AnswerTier names the ladder rung that produced the final text. Every rung
// yields valid natural language; the ladder never surfaces a provider error.
type AnswerTier string

const (
	// TierGreeting answers smalltalk without touching retrieval.
	TierGreeting AnswerTier = "greeting"
	// TierDeterministic is a canned, hand-authored enumeration for a
	// recognized intent, independent of retrieval quality.
	TierDeterministic AnswerTier = "deterministic"
	// TierGrounded is the normal path: retrieval, compression, generation.
	TierGrounded AnswerTier = "grounded"
	// TierFreeMode is an ungrounded general-knowledge generation used when
	// retrieval came up empty or grounded generation kept failing.
	TierFreeMode AnswerTier = "free_mode"
	// TierGuidance is the terminal localized message pointing at official
	// sources, used when every generation attempt was exhausted.
	TierGuidance AnswerTier = "guidance"
)

// Answer is the final per-request result. It is created once and never
// persisted; queries are stateless.
type Answer struct {
	Text     string         `json:"text"`
	Language string         `json:"language"`
	Tier     AnswerTier     `json:"tier"`
	Sources  []ContextChunk `json:"sources,omitempty"`
}

// Degraded reports whether the answer came from a fallback rung rather than
// grounded generation or a deliberate shortcut.
func (a Answer) Degraded() bool {
	return a.Tier == TierFreeMode || a.Tier == TierGuidance
}
