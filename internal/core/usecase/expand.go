package usecase

import (
	"sort"
	"strings"

	"github.com/nyaysaathi/legal-assistant/internal/core/domain"
)

// ExpandQuery widens a cited query along the link map. The primary query
// grows a "related sections" suffix and, for blocking-power sections, the
// constitutional grounds they must satisfy; the keyword query appends the
// deduplicated doctrine vocabulary for lexical-leaning retrieval.
func ExpandQuery(query string, refs domain.ReferenceSet, m domain.LinkMap) domain.ExpandedQuery {
	entries := linkEntriesFor(m, refs)

	primary := query
	keywords := make(map[string]struct{})
	var linked []string
	linkedSeen := make(map[string]struct{})
	for _, e := range entries {
		for _, s := range e.LinkedSections {
			if _, dup := linkedSeen[s]; dup {
				continue
			}
			linkedSeen[s] = struct{}{}
			linked = append(linked, s)
		}
		for _, k := range e.Keywords {
			keywords[k] = struct{}{}
		}
	}
	if len(linked) > 0 {
		primary += "; related sections: " + strings.Join(linked, ", ")
	}

	for _, s := range refs.Sections {
		if s == "69" || s == "69A" {
			primary += "; constitutional grounds: Article 19(2) public order/sovereignty/decency/morality"
			for _, k := range []string{"public order", "reasonable restriction", "procedure", "safeguard"} {
				keywords[k] = struct{}{}
			}
			break
		}
	}

	keyword := query
	if len(keywords) > 0 {
		sorted := make([]string, 0, len(keywords))
		for k := range keywords {
			sorted = append(sorted, k)
		}
		sort.Strings(sorted)
		keyword = query + " " + strings.Join(sorted, " ")
	}

	return domain.ExpandedQuery{Primary: primary, Keyword: keyword}
}
