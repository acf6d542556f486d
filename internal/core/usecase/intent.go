package usecase

import (
	"context"
	"strings"
	"unicode"

	"github.com/nyaysaathi/legal-assistant/internal/core/domain"
	"github.com/nyaysaathi/legal-assistant/internal/core/ports"
)

var smalltalkGreetings = map[string]struct{}{
	"hi": {}, "hello": {}, "hey": {}, "yo": {}, "sup": {}, "hola": {}, "namaste": {},
	"hi!": {}, "hello!": {}, "hey!": {}, "hi there": {}, "hello there": {},
}

var greetingWords = []string{"hi", "hello", "hey", "namaste", "hola"}

// IsSmalltalk reports whether the query is a greeting rather than a legal
// question: either a known greeting token, or at most three plain
// alphanumeric tokens containing a greeting word.
func IsSmalltalk(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return false
	}
	if _, ok := smalltalkGreetings[q]; ok {
		return true
	}
	if len(strings.Fields(q)) > 3 {
		return false
	}
	for _, r := range q {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsSpace(r) {
			return false
		}
	}
	for _, word := range greetingWords {
		if strings.Contains(q, word) {
			return true
		}
	}
	return false
}

// intentRule maps a set of case-insensitive substrings to an intent. Rules
// are additive configuration: a new language or phrasing is a new entry, not
// a new branch. Multiple intents may fire for one query.
type intentRule struct {
	intent   domain.Intent
	contains []string
}

var intentRules = []intentRule{
	// English
	{domain.IntentFundamentalRightsAll, []string{
		"all fundamental rights",
		"list fundamental rights",
		"enumerate fundamental rights",
		"give me all my fundamental rights",
		"what are all my fundamental rights",
		"what are my fundamental rights",
		"what are the fundamental rights",
		"fundamental rights list",
		"list of fundamental rights",
	}},
	// Hindi
	{domain.IntentFundamentalRightsAll, []string{"मौलिक अधिकार", "सभी मौलिक अधिकार", "मौलिक अधिकारों की सूची"}},
	// Romanized Hindi
	{domain.IntentFundamentalRightsAll, []string{
		"mool adhikar", "sabhi mool adhikar", "mool adhikar ki soochi", "mere mool adhikar",
		"mool adhikar kaunse", "mool adhikar kaun se", "mere kya mool adhikar",
	}},
	// Punjabi
	{domain.IntentFundamentalRightsAll, []string{"ਮੂਲ ਅਧਿਕਾਰ", "ਸਾਰੇ ਮੂਲ ਅਧਿਕਾਰ", "ਮੂਲ ਅਧਿਕਾਰਾਂ ਦੀ ਸੂਚੀ"}},
	// Bengali
	{domain.IntentFundamentalRightsAll, []string{"মৌলিক অধিকার", "সমস্ত মৌলিক অধিকার", "মৌলিক অধিকারের তালিকা"}},

	{domain.IntentRightToEquality, []string{
		"right to equality",
		"equality before law",
		"articles 14-18",
		"article 14",
		"article 15",
		"article 16",
		"article 17",
		"article 18",
	}},
}

// DetectIntents matches the query against the rule table by case-insensitive
// substring containment, OR-combined across language variants.
func DetectIntents(query string) map[domain.Intent]bool {
	q := strings.ToLower(query)
	intents := make(map[domain.Intent]bool, 2)
	for _, rule := range intentRules {
		if intents[rule.intent] {
			continue
		}
		for _, sub := range rule.contains {
			if strings.Contains(q, sub) {
				intents[rule.intent] = true
				break
			}
		}
	}
	return intents
}

// scriptRange maps a Unicode block to a language code for the fast detection
// path. First matching character wins.
type scriptRange struct {
	lo, hi rune
	code   string
}

var scriptRanges = []scriptRange{
	{0x0900, 0x097F, "hi"}, // Devanagari
	{0x0980, 0x09FF, "bn"}, // Bengali/Assamese
	{0x0A00, 0x0A7F, "pa"}, // Gurmukhi
	{0x0A80, 0x0AFF, "gu"}, // Gujarati
	{0x0B00, 0x0B7F, "or"}, // Oriya
	{0x0B80, 0x0BFF, "ta"}, // Tamil
	{0x0C00, 0x0C7F, "te"}, // Telugu
	{0x0C80, 0x0CFF, "kn"}, // Kannada
	{0x0D00, 0x0D7F, "ml"}, // Malayalam
	{0x0600, 0x06FF, "ur"}, // Arabic
	{0x0750, 0x077F, "ur"}, // Arabic Supplement
	{0x08A0, 0x08FF, "ur"}, // Arabic Extended-A
}

// Common romanized-Hindi tokens; checked before script scanning because a
// pure-ASCII Hinglish query carries no script signal at all.
var romanizedHindiMarkers = []string{
	"mool adhikar", "adhikar", "kaunse", "kaun si", "kya hai", "kya hain", "kya h",
	"mere", "mera", "hain", "hai", "nyay", "kanun", "adhiniyam", "dhara", "anuchhed",
}

// DetectLanguage is the fast, rule-based language pass. Defaults to "en".
func DetectLanguage(query string) string {
	ql := strings.ToLower(query)
	if isASCII(query) {
		for _, marker := range romanizedHindiMarkers {
			if strings.Contains(ql, marker) {
				return "hi"
			}
		}
	}
	for _, r := range query {
		for _, sr := range scriptRanges {
			if r >= sr.lo && r <= sr.hi {
				return sr.code
			}
		}
	}
	return "en"
}

func isASCII(s string) bool {
	for _, r := range s {
		if r > 0x7F {
			return false
		}
	}
	return true
}

// DetectLanguageLLM asks the model for a single ISO-639-1-ish code. The
// result only overrides the fast path when syntactically valid; any failure
// keeps the fast-path value.
func DetectLanguageLLM(ctx context.Context, llm ports.LLMProvider, query, fallback string) string {
	messages := []domain.PromptMessage{
		{Role: domain.RoleSystem, Content: "Given a user text, output ONLY the primary language code (BCP-47 / ISO 639-1/2), lowercase. " +
			"Examples: 'en', 'hi', 'bn', 'ta', 'te', 'mr', 'kn', 'ml', 'gu', 'pa', 'ur', 'or', 'as'. " +
			"If the text is romanized but clearly belongs to a language, return that language code (e.g., 'mere mool adhikar' -> 'hi')."},
		{Role: domain.RoleUser, Content: query},
	}
	topP := 1.0
	out, err := llm.Generate(ctx, messages, domain.GenerateOptions{Temperature: 0, TopP: &topP, MaxTokens: 8})
	if err != nil {
		return fallback
	}
	code := strings.ToLower(strings.TrimSpace(out))
	if !isValidLanguageCode(code) {
		return fallback
	}
	primary, _, _ := strings.Cut(code, "-")
	return primary
}

func isValidLanguageCode(code string) bool {
	if len(code) < 1 || len(code) > 10 {
		return false
	}
	for _, r := range code {
		if r == '-' {
			continue
		}
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return strings.Trim(code, "-") == code
}

// Classify builds the immutable per-request query view. The optional LLM
// second pass broadens coverage for romanized and unlisted languages.
func Classify(ctx context.Context, llm ports.LLMProvider, raw string) domain.Query {
	lang := DetectLanguage(raw)
	if llm != nil {
		lang = DetectLanguageLLM(ctx, llm, raw, lang)
	}
	return domain.Query{
		Raw:       raw,
		Language:  lang,
		Smalltalk: IsSmalltalk(raw),
		Intents:   DetectIntents(raw),
	}
}
