package usecase

import (
	"regexp"
	"strings"

	"github.com/nyaysaathi/legal-assistant/internal/core/domain"
)

var (
	articleRe = regexp.MustCompile(`article\s+(\d+[a-z]?(?:\([^)]+\))?)`)
	sectionRe = regexp.MustCompile(`section\s+(\d+[a-z]?)`)
	partRe    = regexp.MustCompile(`part\s+([ivxlcdm]+|\d+)`)
	chapterRe = regexp.MustCompile(`chapter\s+([ivxlcdm]+|\d+)`)
)

// ExtractReferences pulls explicit citations out of the query text. Matching
// is case-insensitive; captured values are normalized so "article 19(1)(A)"
// and "Article 19(1)(a)" produce one key.
func ExtractReferences(query string) domain.ReferenceSet {
	q := strings.ToLower(query)
	return domain.ReferenceSet{
		Articles: extractAll(articleRe, q, true),
		Sections: extractAll(sectionRe, q, true),
		Parts:    extractAll(partRe, q, false),
		Chapters: extractAll(chapterRe, q, false),
	}
}

func extractAll(re *regexp.Regexp, q string, normalize bool) []string {
	matches := re.FindAllStringSubmatch(q, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(matches))
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		key := m[1]
		if normalize {
			key = NormalizeCitation(key)
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	return out
}

// NormalizeCitation canonicalizes a citation key: trimmed, lowercase except
// for a trailing clause letter, which is uppercased ("21a" -> "21A",
// "19(1)(a)" stays "19(1)(a)").
func NormalizeCitation(ref string) string {
	ref = strings.ToLower(strings.TrimSpace(ref))
	if ref == "" {
		return ref
	}
	if last := ref[len(ref)-1]; last >= 'a' && last <= 'z' && !strings.ContainsRune(ref, '(') {
		return ref[:len(ref)-1] + strings.ToUpper(ref[len(ref)-1:])
	}
	return ref
}

// articleTrigger adds constitutional articles to the invoked set when the
// query uses doctrine vocabulary without citing a number.
type articleTrigger struct {
	phrases  []string
	articles []string
}

var articleTriggers = []articleTrigger{
	{[]string{"public order", "decency", "morality", "sovereignty", "security of the state",
		"free speech", "freedom of speech", "article 19"}, []string{"19"}},
	{[]string{"right to equality", "equality before law"}, []string{"14", "15", "16", "17", "18"}},
	{[]string{"right to freedom"}, []string{"19", "20", "21", "21A", "22"}},
	{[]string{"right against exploitation"}, []string{"23", "24"}},
	{[]string{"freedom of religion"}, []string{"25", "26", "27", "28"}},
	{[]string{"cultural and educational rights"}, []string{"29", "30"}},
	{[]string{"constitutional remedies"}, []string{"32"}},
}

// InvokedArticles returns the articles a query puts in play: every explicit
// article citation plus the trigger-phrase expansions.
func InvokedArticles(query string, refs domain.ReferenceSet) map[string]bool {
	invoked := make(map[string]bool, len(refs.Articles))
	for _, a := range refs.Articles {
		invoked[a] = true
		// "19(1)(a)" also invokes bare "19".
		if i := strings.IndexByte(a, '('); i > 0 {
			invoked[a[:i]] = true
		}
	}
	q := strings.ToLower(query)
	for _, t := range articleTriggers {
		for _, p := range t.phrases {
			if strings.Contains(q, p) {
				for _, a := range t.articles {
					invoked[a] = true
				}
				break
			}
		}
	}
	return invoked
}
