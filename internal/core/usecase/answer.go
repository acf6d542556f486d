package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/nyaysaathi/legal-assistant/internal/core/domain"
	"github.com/nyaysaathi/legal-assistant/internal/core/ports"
)

// AnswerConfig tunes the answer pipeline. Normalize fills zero values.
type AnswerConfig struct {
	TopK              int
	MinScore          float64
	MarkdownOutput    bool
	FanoutConcurrency int
	RetryBackoffBase  time.Duration
	MaxOutputTokens   int
	FreeModeMaxTokens int
	LanguageLLMPass   bool
}

func (c AnswerConfig) normalize() AnswerConfig {
	if c.TopK <= 0 {
		c.TopK = 10
	}
	if c.MinScore <= 0 {
		c.MinScore = 0.35
	}
	if c.FanoutConcurrency <= 0 {
		c.FanoutConcurrency = 4
	}
	if c.RetryBackoffBase < 0 {
		c.RetryBackoffBase = 0
	} else if c.RetryBackoffBase == 0 {
		c.RetryBackoffBase = 250 * time.Millisecond
	}
	if c.MaxOutputTokens <= 0 {
		c.MaxOutputTokens = 2048
	}
	if c.FreeModeMaxTokens <= 0 {
		c.FreeModeMaxTokens = min(768, c.MaxOutputTokens)
	}
	return c
}

// AnswerUseCase orchestrates classification, retrieval, reranking,
// compression, generation, and the degradation ladder. Every exit produces a
// well-formed Answer; provider failure degrades the tier instead of erroring.
type AnswerUseCase struct {
	embedder  ports.Embedder
	vectors   ports.VectorStore
	llm       ports.LLMProvider
	approvals ports.ApprovalReader
	linkMap   *LinkMapCache
	log       *slog.Logger
	cfg       AnswerConfig
}

func NewAnswerUseCase(
	embedder ports.Embedder,
	vectors ports.VectorStore,
	llm ports.LLMProvider,
	approvals ports.ApprovalReader,
	linkMap *LinkMapCache,
	log *slog.Logger,
	cfg AnswerConfig,
) *AnswerUseCase {
	if linkMap == nil {
		linkMap = NewLinkMapCache("")
	}
	if log == nil {
		log = slog.Default()
	}
	return &AnswerUseCase{
		embedder:  embedder,
		vectors:   vectors,
		llm:       llm,
		approvals: approvals,
		linkMap:   linkMap,
		log:       log,
		cfg:       cfg.normalize(),
	}
}

var _ ports.LegalAnswerer = (*AnswerUseCase)(nil)

// RetrieveContext runs the full retrieval stage for a query: reference
// extraction, link expansion, fan-out, merge, approval gating, and rerank.
// No score floor is applied; callers decide what counts as strong.
func (uc *AnswerUseCase) RetrieveContext(ctx context.Context, query string, topK int) ([]domain.ContextChunk, error) {
	if topK <= 0 {
		topK = uc.cfg.TopK
	}
	refs := ExtractReferences(query)
	m := uc.linkMap.Get()
	expanded := ExpandQuery(query, refs, m)

	var (
		merged []domain.ContextChunk
		err    error
	)
	if DetectIntents(query)[domain.IntentFundamentalRightsAll] {
		merged, err = uc.retrieveFundamentalRights(ctx, topK)
	} else {
		merged, err = uc.retrieveGeneral(ctx, query, refs, expanded, topK)
	}
	if err != nil {
		return nil, err
	}

	merged = uc.filterApproved(ctx, merged)
	invoked := InvokedArticles(query, refs)
	reranked := Rerank(query, refs, invoked, m, merged, topK)

	uc.log.DebugContext(ctx, "retrieval complete",
		slog.String("expanded_query", expanded.Primary),
		slog.Int("merged", len(merged)),
		slog.Int("returned", len(reranked)))
	return reranked, nil
}

// filterApproved drops chunks from unapproved documents. An empty approval
// set, or a failing approval backend, leaves the list untouched.
func (uc *AnswerUseCase) filterApproved(ctx context.Context, chunks []domain.ContextChunk) []domain.ContextChunk {
	if uc.approvals == nil {
		return chunks
	}
	approved, err := uc.approvals.ListApprovedDocumentIDs(ctx)
	if err != nil {
		uc.log.WarnContext(ctx, "approval lookup failed, gating skipped", slog.Any("error", err))
		return chunks
	}
	if len(approved) == 0 {
		return chunks
	}
	out := chunks[:0]
	for _, c := range chunks {
		if _, ok := approved[c.DocID]; ok {
			out = append(out, c)
		}
	}
	return out
}

// Answer runs the non-streaming pipeline.
func (uc *AnswerUseCase) Answer(ctx context.Context, query string) (domain.Answer, error) {
	return uc.answer(ctx, query, nil)
}

// AnswerStream runs the pipeline with token streaming. Tokens are buffered
// and the sanitized final text is emitted as a single chunk, because
// sanitization and translation only make sense on the complete answer.
func (uc *AnswerUseCase) AnswerStream(ctx context.Context, query string, emit func(string) error) (domain.Answer, error) {
	return uc.answer(ctx, query, emit)
}

func (uc *AnswerUseCase) answer(ctx context.Context, query string, emit func(string) error) (domain.Answer, error) {
	var langLLM ports.LLMProvider
	if uc.cfg.LanguageLLMPass {
		langLLM = uc.llm
	}
	q := Classify(ctx, langLLM, query)
	log := uc.log.With(slog.String("lang", q.Language))

	if q.Smalltalk {
		return uc.finish(ctx, domain.Answer{
			Text:     GreetingResponse(q.Language),
			Language: q.Language,
			Tier:     domain.TierGreeting,
		}, emit)
	}

	searchQuery := query
	if q.Language != "en" {
		searchQuery = uc.translateToEnglish(ctx, query)
	}

	strong, sources := uc.retrieveStrong(ctx, searchQuery, log)

	// Deterministic intents outrank generation: enumeration answers must be
	// complete and identical across runs.
	if q.HasIntent(domain.IntentFundamentalRightsAll) {
		return uc.finish(ctx, domain.Answer{
			Text:     FundamentalRightsAnswer(q.Language),
			Language: q.Language,
			Tier:     domain.TierDeterministic,
			Sources:  sources,
		}, emit)
	}
	// The equality digest has no localized variants; it is served in English
	// whatever the query language.
	if q.HasIntent(domain.IntentRightToEquality) {
		return uc.finish(ctx, domain.Answer{
			Text:     RightToEqualityAnswer(),
			Language: "en",
			Tier:     domain.TierDeterministic,
			Sources:  sources,
		}, emit)
	}

	if len(strong) == 0 {
		return uc.freeMode(ctx, query, q.Language, emit, log)
	}

	synth := uc.compressContext(ctx, searchQuery, strong)
	messages := BuildGroundedPrompt(searchQuery, domain.Query{Language: "en", Intents: q.Intents}, []domain.ContextChunk{synth})
	opts := domain.GenerateOptions{Temperature: 0.2, TopP: ptr(0.8), MaxTokens: uc.cfg.MaxOutputTokens}

	raw, err := uc.generateBuffered(ctx, messages, opts, emit != nil, log)
	if err != nil {
		if ctx.Err() != nil {
			return domain.Answer{}, ctx.Err()
		}
		log.ErrorContext(ctx, "grounded generation failed", slog.Any("error", err))
		if ans, ok := uc.freeModeEnglish(ctx, query); ok {
			return uc.finish(ctx, ans, emit)
		}
		return uc.finish(ctx, domain.Answer{
			Text:     GuidanceMessage(q.Language, true),
			Language: q.Language,
			Tier:     domain.TierGuidance,
		}, emit)
	}

	text := CleanLegalResponse(raw)
	if q.Language != "en" {
		text = uc.translateFromEnglish(ctx, text, q.Language)
	}
	return uc.finishClean(ctx, domain.Answer{
		Text:     text,
		Language: q.Language,
		Tier:     domain.TierGrounded,
		Sources:  strong,
	}, emit)
}

// retrieveStrong retrieves, applies the score floor, and keeps the gated
// strong set both as generation context and as citable sources. Retrieval
// failure degrades to an empty set so the ladder can continue.
func (uc *AnswerUseCase) retrieveStrong(ctx context.Context, searchQuery string, log *slog.Logger) (strong, sources []domain.ContextChunk) {
	chunks, err := uc.RetrieveContext(ctx, searchQuery, uc.cfg.TopK)
	if err != nil {
		log.ErrorContext(ctx, "retrieval failed", slog.Any("error", err))
		return nil, nil
	}
	for _, c := range chunks {
		if c.Score >= uc.cfg.MinScore {
			strong = append(strong, c)
		}
	}
	return strong, strong
}

// freeMode answers from general knowledge when retrieval finds nothing
// strong: generate in English, translate back, and if every attempt fails
// fall to the localized guidance message.
func (uc *AnswerUseCase) freeMode(ctx context.Context, query, lang string, emit func(string) error, log *slog.Logger) (domain.Answer, error) {
	if ans, ok := uc.freeModeEnglish(ctx, query); ok {
		if lang != "en" {
			ans.Text = uc.translateFromEnglish(ctx, ans.Text, lang)
			ans.Language = lang
		}
		return uc.finishClean(ctx, ans, emit)
	}
	if ctx.Err() != nil {
		return domain.Answer{}, ctx.Err()
	}
	log.WarnContext(ctx, "free mode exhausted, serving guidance")
	return uc.finish(ctx, domain.Answer{
		Text:     GuidanceMessage(lang, false),
		Language: lang,
		Tier:     domain.TierGuidance,
	}, emit)
}

func (uc *AnswerUseCase) freeModeEnglish(ctx context.Context, query string) (domain.Answer, bool) {
	messages := BuildFreePrompt(query, "en")
	opts := domain.GenerateOptions{Temperature: 0.2, TopP: ptr(0.8), MaxTokens: uc.cfg.FreeModeMaxTokens}
	raw, err := uc.generateWithRetry(ctx, messages, opts)
	if err != nil {
		return domain.Answer{}, false
	}
	return domain.Answer{
		Text:     CleanLegalResponse(raw),
		Language: "en",
		Tier:     domain.TierFreeMode,
	}, true
}

// generateBuffered prefers the provider's streaming call when the caller is
// streaming, accumulating deltas into one buffer. Sanitization and
// translation need the whole text, so partial output is never delivered; a
// failed stream falls back to the non-stream retry path.
func (uc *AnswerUseCase) generateBuffered(ctx context.Context, messages []domain.PromptMessage, opts domain.GenerateOptions, streaming bool, log *slog.Logger) (string, error) {
	if streaming {
		var buf strings.Builder
		err := uc.llm.StreamGenerate(ctx, messages, opts, func(token string) error {
			buf.WriteString(token)
			return nil
		})
		if err == nil {
			return buf.String(), nil
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		log.WarnContext(ctx, "streaming generation failed, retrying non-stream", slog.Any("error", err))
	}
	return uc.generateWithRetry(ctx, messages, opts)
}

// generateWithRetry makes up to two attempts with exponential backoff.
// Cancellation aborts immediately.
func (uc *AnswerUseCase) generateWithRetry(ctx context.Context, messages []domain.PromptMessage, opts domain.GenerateOptions) (string, error) {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			backoff := uc.cfg.RetryBackoffBase << (attempt - 1)
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
		}
		out, err := uc.llm.Generate(ctx, messages, opts)
		if err == nil {
			return out, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
	}
	return "", lastErr
}

// finish applies the full sanitation pass and emits, used for canned text
// that has not been cleaned yet.
func (uc *AnswerUseCase) finish(ctx context.Context, ans domain.Answer, emit func(string) error) (domain.Answer, error) {
	ans.Text = Sanitize(ans.Text, uc.cfg.MarkdownOutput)
	return uc.deliver(ctx, ans, emit)
}

// finishClean formats text already passed through CleanLegalResponse.
func (uc *AnswerUseCase) finishClean(ctx context.Context, ans domain.Answer, emit func(string) error) (domain.Answer, error) {
	ans.Text = FormatOutput(ans.Text, uc.cfg.MarkdownOutput)
	return uc.deliver(ctx, ans, emit)
}

func (uc *AnswerUseCase) deliver(ctx context.Context, ans domain.Answer, emit func(string) error) (domain.Answer, error) {
	if emit != nil {
		if err := emit(ans.Text); err != nil {
			return ans, err
		}
	}
	if ctx.Err() != nil {
		return ans, ctx.Err()
	}
	return ans, nil
}

func ptr[T any](v T) *T { return &v }
