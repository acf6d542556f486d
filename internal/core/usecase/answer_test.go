package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/nyaysaathi/legal-assistant/internal/core/domain"
)

func TestAnswerGreetingSkipsRetrieval(t *testing.T) {
	emb := &fakeEmbedder{}
	vs := &fakeVectorStore{}
	llm := &fakeLLM{}
	uc := newTestUseCase(emb, vs, llm, nil)

	ans, err := uc.Answer(context.Background(), "hi")
	if err != nil {
		t.Fatal(err)
	}
	if ans.Tier != domain.TierGreeting {
		t.Errorf("Tier = %s, want greeting", ans.Tier)
	}
	if !strings.Contains(ans.Text, "NyaySaathi") {
		t.Errorf("unexpected greeting text: %q", ans.Text)
	}
	if vs.searchCount() != 0 || emb.queryCount() != 0 {
		t.Error("greeting must not touch retrieval")
	}
	if llm.callCount() != 0 {
		t.Error("greeting must not call the model")
	}
}

func TestAnswerGreetingLocalizedViaLanguagePass(t *testing.T) {
	// "namaste" carries no script signal; the model's language pass is what
	// localizes the greeting.
	llm := &fakeLLM{replies: []string{"hi"}}
	uc := NewAnswerUseCase(&fakeEmbedder{}, &fakeVectorStore{}, llm, nil, nil, nil,
		AnswerConfig{RetryBackoffBase: -1, LanguageLLMPass: true})

	ans, err := uc.Answer(context.Background(), "namaste")
	if err != nil {
		t.Fatal(err)
	}
	if ans.Language != "hi" {
		t.Errorf("Language = %s, want hi", ans.Language)
	}
	if !strings.Contains(ans.Text, "न्यायसाथी") {
		t.Errorf("greeting not localized: %q", ans.Text)
	}
}

func TestAnswerDeterministicEnumeration(t *testing.T) {
	emb := &fakeEmbedder{}
	vs := &fakeVectorStore{results: []domain.ContextChunk{chunk("d1", 1, 0.9, "Part III")}}
	llm := &fakeLLM{}
	uc := newTestUseCase(emb, vs, llm, nil)

	ans, err := uc.Answer(context.Background(), "list fundamental rights")
	if err != nil {
		t.Fatal(err)
	}
	if ans.Tier != domain.TierDeterministic {
		t.Fatalf("Tier = %s, want deterministic", ans.Tier)
	}
	for _, category := range []string{
		"Right to Equality", "Right to Freedom", "Right against Exploitation",
		"Right to Freedom of Religion", "Cultural and Educational Rights",
		"Right to Constitutional Remedies",
	} {
		if !strings.Contains(ans.Text, category) {
			t.Errorf("enumeration missing %q", category)
		}
	}
	if !strings.Contains(ans.Text, "21A") {
		t.Error("enumeration must include Article 21A")
	}
	if llm.callCount() != 0 {
		t.Error("deterministic enumeration must not call the model")
	}
}

func TestAnswerDeterministicEquality(t *testing.T) {
	vs := &fakeVectorStore{results: []domain.ContextChunk{chunk("d1", 1, 0.9, "equality")}}
	uc := newTestUseCase(&fakeEmbedder{}, vs, &fakeLLM{}, nil)

	ans, err := uc.Answer(context.Background(), "explain the right to equality")
	if err != nil {
		t.Fatal(err)
	}
	if ans.Tier != domain.TierDeterministic {
		t.Fatalf("Tier = %s, want deterministic", ans.Tier)
	}
	for _, a := range []string{"Article 14", "Article 15", "Article 16", "Article 17", "Article 18"} {
		if !strings.Contains(ans.Text, a) {
			t.Errorf("equality digest missing %q", a)
		}
	}
}

func TestAnswerDeterministicEqualityNonEnglishQuery(t *testing.T) {
	llm := &fakeLLM{replies: []string{"right to equality"}}
	uc := newTestUseCase(&fakeEmbedder{}, &fakeVectorStore{}, llm, nil)

	ans, err := uc.Answer(context.Background(), "right to equality kya hai")
	if err != nil {
		t.Fatal(err)
	}
	if ans.Tier != domain.TierDeterministic {
		t.Fatalf("Tier = %s, want deterministic", ans.Tier)
	}
	if ans.Language != "en" {
		t.Errorf("Language = %s, want en", ans.Language)
	}
	if !strings.Contains(ans.Text, "Article 14") {
		t.Error("equality digest missing Article 14")
	}
}

func TestAnswerGroundedPath(t *testing.T) {
	vs := &fakeVectorStore{results: []domain.ContextChunk{
		chunk("const", 1, 0.80, "freedom of speech and expression"),
	}}
	llm := &fakeLLM{replies: []string{"memo", "Article 19 protects speech."}}
	uc := newTestUseCase(&fakeEmbedder{}, vs, llm, nil)

	ans, err := uc.Answer(context.Background(), "can the state restrict my posts")
	if err != nil {
		t.Fatal(err)
	}
	if ans.Tier != domain.TierGrounded {
		t.Fatalf("Tier = %s, want grounded", ans.Tier)
	}
	if !strings.Contains(ans.Text, "Article 19 protects speech.") {
		t.Errorf("Text = %q", ans.Text)
	}
	if len(ans.Sources) != 1 || ans.Sources[0].DocID != "const" {
		t.Errorf("Sources = %+v", ans.Sources)
	}
	if ans.Degraded() {
		t.Error("grounded answer must not report degraded")
	}
}

func TestAnswerWeakScoresFallToFreeMode(t *testing.T) {
	vs := &fakeVectorStore{results: []domain.ContextChunk{
		chunk("const", 1, 0.20, "barely related text"),
	}}
	llm := &fakeLLM{replies: []string{"General legal overview."}}
	uc := newTestUseCase(&fakeEmbedder{}, vs, llm, nil)

	ans, err := uc.Answer(context.Background(), "some niche question")
	if err != nil {
		t.Fatal(err)
	}
	if ans.Tier != domain.TierFreeMode {
		t.Fatalf("Tier = %s, want free_mode", ans.Tier)
	}
	if len(ans.Sources) != 0 {
		t.Errorf("free mode must cite nothing, got %+v", ans.Sources)
	}
	if !ans.Degraded() {
		t.Error("free mode must report degraded")
	}
}

func TestAnswerFreeModeRetriesThenGuidance(t *testing.T) {
	vs := &fakeVectorStore{}
	llm := &fakeLLM{failures: 99}
	uc := newTestUseCase(&fakeEmbedder{}, vs, llm, nil)

	ans, err := uc.Answer(context.Background(), "some niche question")
	if err != nil {
		t.Fatal(err)
	}
	if ans.Tier != domain.TierGuidance {
		t.Fatalf("Tier = %s, want guidance", ans.Tier)
	}
	if !strings.Contains(ans.Text, "indiacode.nic.in") {
		t.Errorf("guidance must point at official sources: %q", ans.Text)
	}
	if got := llm.callCount(); got != 2 {
		t.Errorf("free mode attempts = %d, want 2", got)
	}
}

func TestAnswerGuidanceLocalized(t *testing.T) {
	vs := &fakeVectorStore{}
	llm := &fakeLLM{failures: 99}
	uc := newTestUseCase(&fakeEmbedder{}, vs, llm, nil)

	ans, err := uc.Answer(context.Background(), "अनुच्छेद 370 का इतिहास")
	if err != nil {
		t.Fatal(err)
	}
	if ans.Tier != domain.TierGuidance {
		t.Fatalf("Tier = %s, want guidance", ans.Tier)
	}
	if !strings.Contains(ans.Text, "क्षमा करें") {
		t.Errorf("guidance not localized: %q", ans.Text)
	}
}

func TestAnswerGroundedGenerationFailureDegrades(t *testing.T) {
	vs := &fakeVectorStore{results: []domain.ContextChunk{
		chunk("const", 1, 0.80, "freedom of speech"),
	}}
	llm := &fakeLLM{failures: 99}
	uc := newTestUseCase(&fakeEmbedder{}, vs, llm, nil)

	ans, err := uc.Answer(context.Background(), "can the state restrict my posts")
	if err != nil {
		t.Fatal(err)
	}
	if ans.Tier != domain.TierGuidance {
		t.Fatalf("Tier = %s, want guidance after full ladder, got text %q", ans.Tier, ans.Text)
	}
	if !strings.Contains(ans.Text, "can't complete this") {
		t.Errorf("transient guidance wording expected: %q", ans.Text)
	}
}

func TestAnswerTranslationFailureKeepsEnglish(t *testing.T) {
	vs := &fakeVectorStore{results: []domain.ContextChunk{
		chunk("const", 1, 0.80, "right to life"),
	}}
	// Replies: translate-to-English, compression memo, grounded answer. The
	// fourth call, the back-translation, fails.
	llm := &fakeLLM{
		replies:   []string{"what is article 21", "memo", "Article 21 guards life and liberty."},
		failAfter: 3,
	}
	uc := newTestUseCase(&fakeEmbedder{}, vs, llm, nil)

	ans, err := uc.Answer(context.Background(), "अनुच्छेद 21 क्या है")
	if err != nil {
		t.Fatal(err)
	}
	if ans.Tier != domain.TierGrounded {
		t.Fatalf("Tier = %s, want grounded", ans.Tier)
	}
	if ans.Language != "hi" {
		t.Errorf("Language = %s, want hi", ans.Language)
	}
	if !strings.Contains(ans.Text, "Article 21 guards life and liberty.") {
		t.Errorf("failed back-translation must keep the English text: %q", ans.Text)
	}
}

func TestAnswerStreamEmitsSingleFinalChunk(t *testing.T) {
	vs := &fakeVectorStore{results: []domain.ContextChunk{
		chunk("const", 1, 0.80, "freedom of speech"),
	}}
	llm := &fakeLLM{replies: []string{"memo", "Final answer."}}
	uc := newTestUseCase(&fakeEmbedder{}, vs, llm, nil)

	var emitted []string
	ans, err := uc.AnswerStream(context.Background(), "can the state restrict my posts", func(s string) error {
		emitted = append(emitted, s)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(emitted) != 1 {
		t.Fatalf("emitted %d chunks, want 1", len(emitted))
	}
	if emitted[0] != ans.Text {
		t.Errorf("emitted chunk %q differs from answer %q", emitted[0], ans.Text)
	}
}

func TestAnswerStreamFailureFallsBackToNonStream(t *testing.T) {
	vs := &fakeVectorStore{results: []domain.ContextChunk{
		chunk("const", 1, 0.80, "freedom of speech"),
	}}
	llm := &fakeLLM{replies: []string{"memo", "Recovered answer."}, streamErr: errFakeLLM}
	uc := newTestUseCase(&fakeEmbedder{}, vs, llm, nil)

	var emitted []string
	ans, err := uc.AnswerStream(context.Background(), "can the state restrict my posts", func(s string) error {
		emitted = append(emitted, s)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if ans.Tier != domain.TierGrounded {
		t.Fatalf("Tier = %s, want grounded via non-stream fallback", ans.Tier)
	}
	if len(emitted) != 1 || !strings.Contains(emitted[0], "Recovered answer.") {
		t.Errorf("emitted = %v", emitted)
	}
}

func TestAnswerCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	vs := &fakeVectorStore{results: []domain.ContextChunk{chunk("const", 1, 0.80, "x")}}
	uc := newTestUseCase(&fakeEmbedder{}, vs, &fakeLLM{failures: 99}, nil)

	if _, err := uc.Answer(ctx, "can the state restrict my posts"); err == nil {
		t.Error("cancelled context must surface an error")
	}
}
