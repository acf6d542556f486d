package usecase

import (
	"sort"
	"strconv"
	"strings"

	"github.com/nyaysaathi/legal-assistant/internal/core/domain"
)

// Rerank score bonuses. An exact citation hit dominates; the softer signals
// break ties between doctrinally adjacent chunks.
const (
	bonusExactArticle  = 0.22
	bonusExactSection  = 0.18
	bonusExactPart     = 0.06
	bonusExactChapter  = 0.05
	bonusProximityMax  = 0.15
	bonusRestriction   = 0.10
	bonusProcedural    = 0.08
	bonusTagOverlap    = 0.10
	bonusLexicalMax    = 0.12
	bonusStatuteLink   = 0.12
)

var restrictionTerms = []string{
	"reasonable restriction", "subject to", "notwithstanding", "restriction",
	"exception", "reservation", "classification", "intelligible differentia",
	"rational nexus", "public order", "morality", "security of state",
}

var proceduralTerms = []string{
	"procedure", "safeguard", "reasons to be recorded in writing", "by order",
	"subject to the provisions of sub-section", "rules may be prescribed",
	"block", "blocking", "intercept", "monitor", "decrypt",
}

var safeguardTags = map[string]struct{}{
	"procedure": {}, "safeguard": {}, "blocking": {}, "interception": {},
}

// statuteBridge hard-codes the statute sections whose validity turns on a
// constitutional article, independent of the link map.
var statuteBridges = []struct {
	statute string
	section string
	article string
}{
	{"it act", "69", "19"},
	{"it act", "69A", "19"},
	{"crpc", "144", "19"},
}

// Rerank blends the vector score with citation, doctrine, and lexical
// signals, then orders by the blended score. The sort is stable so chunks
// the bonuses cannot separate keep their retrieval order. The invoked set is
// enriched in pass order: once a statutory chunk bridges to an article,
// later chunks citing that article earn proximity credit too.
func Rerank(query string, refs domain.ReferenceSet, invoked map[string]bool, m domain.LinkMap, chunks []domain.ContextChunk, topK int) []domain.ContextChunk {
	queryTokens := tokenSet(query)
	out := make([]domain.ContextChunk, len(chunks))
	copy(out, chunks)

	for i := range out {
		c := &out[i]
		meta := c.Meta
		text := strings.ToLower(c.Text)

		if meta.Article != "" && containsRef(refs.Articles, meta.Article) {
			c.Score += bonusExactArticle
		}
		if meta.Section != "" && containsRef(refs.Sections, meta.Section) {
			c.Score += bonusExactSection
		}
		if meta.Part != "" && containsRef(refs.Parts, meta.Part) {
			c.Score += bonusExactPart
		}
		if meta.Chapter != "" && containsRef(refs.Chapters, meta.Chapter) {
			c.Score += bonusExactChapter
		}

		if p := proximityBonus(meta.Article, invoked); p > 0 {
			c.Score += p
		}

		if containsAny(text, restrictionTerms) {
			c.Score += bonusRestriction
		}
		if containsAny(text, proceduralTerms) {
			c.Score += bonusProcedural
		}
		for _, tag := range meta.Tags {
			if _, ok := safeguardTags[strings.ToLower(tag)]; ok {
				c.Score += bonusTagOverlap
				break
			}
		}

		if overlap := lexicalOverlap(queryTokens, tokenSet(c.Text)); overlap > 0 {
			c.Score += bonusLexicalMax * overlap
		}

		if len(invoked) > 0 {
			linked := linkedArticles(meta, m)
			for _, article := range linked {
				if invoked[article] {
					c.Score += bonusStatuteLink
					break
				}
			}
			for _, article := range linked {
				invoked[article] = true
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if topK > 0 && len(out) > topK {
		out = out[:topK]
	}
	return out
}

// proximityBonus rewards articles numerically near the invoked set, scaled
// down linearly and vanishing at distance 10.
func proximityBonus(article string, invoked map[string]bool) float64 {
	n, ok := articleNumber(article)
	if !ok {
		return 0
	}
	best := 0.0
	for inv := range invoked {
		m, ok := articleNumber(inv)
		if !ok {
			continue
		}
		dist := n - m
		if dist < 0 {
			dist = -dist
		}
		if b := (1 - float64(dist)/10) * bonusProximityMax; b > best {
			best = b
		}
	}
	if best < 0 {
		return 0
	}
	return best
}

// linkedArticles reports the constitutional articles a statutory chunk
// operationalizes, via the link map first and the built-in bridges second.
// Discovery is independent of the invoked set; the caller decides whether a
// link earns a bonus.
func linkedArticles(meta domain.ChunkMeta, m domain.LinkMap) []string {
	if meta.Section == "" || meta.Statute == "" {
		return nil
	}
	label := strings.ToLower("Section " + meta.Section + " " + meta.Statute)
	seen := make(map[string]struct{})
	var out []string
	add := func(article string) {
		if _, dup := seen[article]; dup {
			return
		}
		seen[article] = struct{}{}
		out = append(out, article)
	}
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		article := clauseOf(key)
		if article == "" {
			article = key
		}
		for _, linked := range m[key].LinkedSections {
			parts := strings.Fields(strings.ToLower(linked))
			if len(parts) > 0 && matchesAll(label, parts) {
				add(article)
				break
			}
		}
	}
	statute := strings.ToLower(meta.Statute)
	for _, b := range statuteBridges {
		if strings.Contains(statute, b.statute) && strings.EqualFold(meta.Section, b.section) {
			add(b.article)
		}
	}
	return out
}

func matchesAll(label string, parts []string) bool {
	for _, p := range parts {
		if !strings.Contains(label, p) {
			return false
		}
	}
	return true
}

// articleNumber extracts the leading numeric run: "21A" -> 21, "19(1)(a)" -> 19.
func articleNumber(article string) (int, bool) {
	i := 0
	for i < len(article) && article[i] >= '0' && article[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(article[:i])
	if err != nil {
		return 0, false
	}
	return n, true
}

// tokenSet lowercases and keeps alphabetic runs of three or more characters.
func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	var run []rune
	flush := func() {
		if len(run) >= 3 {
			set[string(run)] = struct{}{}
		}
		run = run[:0]
	}
	for _, r := range strings.ToLower(s) {
		if r >= 'a' && r <= 'z' {
			run = append(run, r)
			continue
		}
		flush()
	}
	flush()
	return set
}

// lexicalOverlap is |intersection| over the smaller set, in [0, 1].
func lexicalOverlap(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	small, large := a, b
	if len(b) < len(a) {
		small, large = b, a
	}
	shared := 0
	for t := range small {
		if _, ok := large[t]; ok {
			shared++
		}
	}
	return float64(shared) / float64(len(small))
}

func containsRef(refs []string, v string) bool {
	for _, r := range refs {
		if strings.EqualFold(r, v) {
			return true
		}
	}
	return false
}

func containsAny(text string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(text, t) {
			return true
		}
	}
	return false
}
