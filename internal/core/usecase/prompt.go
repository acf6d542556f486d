package usecase

import (
	"fmt"
	"strings"

	"github.com/nyaysaathi/legal-assistant/internal/core/domain"
)

var languageNames = map[string]string{
	"en": "English", "hi": "Hindi", "bn": "Bengali", "ta": "Tamil", "te": "Telugu",
	"mr": "Marathi", "kn": "Kannada", "ml": "Malayalam", "gu": "Gujarati", "pa": "Punjabi",
	"ur": "Urdu", "or": "Odia", "as": "Assamese",
}

func languageDirective(lang string) string {
	name, ok := languageNames[lang]
	if !ok {
		name = "English"
	}
	return fmt.Sprintf("Respond in %s. Use clear, simple sentences. ", name) +
		"Keep statute and case names in English with section numbers (e.g., Section 10, Indian Contract Act, 1872). " +
		"Translate explanations and examples to the target language. " +
		"Do not use Markdown characters like #, *, **, _, or code fences."
}

const groundedHeader = "Use the provided constitutional and statutory context to explain legal reasoning for the scenario.\n" +
	"Identify (1) applicable rights, (2) lawful restrictions, (3) relevant statutory powers, and (4) available remedies.\n" +
	"Distinguish what the Constitution guarantees and what the IT Act authorizes.\n" +
	"Apply reasonableness/proportionality tests. Be concise and factual.\n" +
	"If context is incomplete, note which law is missing.\n\n" +
	"Style (low-key): Prefer concise bullet points and minimal subheadings (e.g., 'Legal basis', 'Sources'). Avoid long essays.\n" +
	"Citations: Only from the provided context; no invented provisions or cases.\n" +
	"Safety: Not legal advice; suggest consulting an advocate for case-specific matters.\n" +
	"Fallback: If context is missing or unrelated, reply exactly: \"Sorry, I don't have the relevant information for your query right now. " +
	"Please refer to official Government of India legal resources: India Code (https://www.indiacode.nic.in/) for Acts and the Legislative Department (https://legislative.gov.in) for the Constitution of India.\"\n"

const enumerationGuidance = "\nWhen the user asks to list ALL fundamental rights, enumerate each category with accurate article ranges: " +
	"Right to Equality (Arts 14–18), Right to Freedom (Arts 19–22 including 21), Right against Exploitation (Arts 23–24), " +
	"Right to Freedom of Religion (Arts 25–28), Cultural and Educational Rights (Arts 29–30), Right to Constitutional Remedies (Art 32), " +
	"and include Article 21A (Right to Education). Keep it concise and accurate."

// BuildGroundedPrompt assembles the grounded-generation messages: persona and
// citation rules in the system turn, fenced context plus the query contract
// in the user turn.
func BuildGroundedPrompt(query string, q domain.Query, contexts []domain.ContextChunk) []domain.PromptMessage {
	header := languageDirective(q.Language) + "\n\n" + groundedHeader
	if q.HasIntent(domain.IntentFundamentalRightsAll) {
		header += enumerationGuidance
	}

	var ctx strings.Builder
	for i, c := range contexts {
		if i > 0 {
			ctx.WriteString("\n\n")
		}
		fmt.Fprintf(&ctx, "[%s:%d] %s", c.DocID, c.ChunkID, c.Text)
	}
	ctxText := ctx.String()
	if ctxText == "" {
		ctxText = "(no context)"
	}

	user := "<context>\n" + ctxText + "\n</context>\n\n" +
		"<instruction>\nUser Query: " + query + "\n\n" +
		"Use only the text in <context> to answer. If <context> is empty or unrelated, output only the fallback message exactly as defined in the system prompt.\n" +
		"Do not output both the fallback message and an answer in the same response.\n" +
		"Prefer bullet points for key points. Use a minimal subheading like 'Legal basis:' or 'Sources:' only if it improves clarity.\n" +
		"When statutes appear (e.g., IT Act s.69A), briefly link them to the relevant constitutional grounds (e.g., Art 19(2) public order/sovereignty/etc.) and state the test for reasonableness.\n" +
		"Avoid decorative headings or long templates; no long essays unless explicitly asked.\n" +
		"</instruction>"

	return []domain.PromptMessage{
		{Role: domain.RoleSystem, Content: header},
		{Role: domain.RoleUser, Content: user},
	}
}

// BuildFreePrompt builds the ungrounded prompt used when retrieval comes back
// empty: general Indian legal knowledge, same persona and style rules, no
// context fence.
func BuildFreePrompt(query, lang string) []domain.PromptMessage {
	header := languageDirective(lang) + "\n\n" +
		"You are NyaySaathi. Explain Indian law clearly and concisely.\n" +
		"Focus on: (1) relevant constitutional provisions, (2) statutory framework, (3) leading Supreme Court/HC cases, (4) practical examples/remedies.\n" +
		"Be conservative and avoid speculation. If uncertain, say so briefly and point to official sources (India Code; Legislative Dept.).\n" +
		"Style: bullets > short paragraphs. Minimal headings like 'Legal basis:' or 'Sources:'. Not legal advice."
	return []domain.PromptMessage{
		{Role: domain.RoleSystem, Content: header},
		{Role: domain.RoleUser, Content: query},
	}
}
