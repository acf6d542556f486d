package domain

// Intent is a recognized high-value query shape that is answered
// deterministically instead of through retrieval and generation.
type Intent string

const (
	IntentFundamentalRightsAll Intent = "fundamental_rights_all"
	IntentRightToEquality      Intent = "right_to_equality"
)

// Query is the immutable per-request view of the user input.
type Query struct {
	Raw       string
	Language  string
	Smalltalk bool
	Intents   map[Intent]bool
}

func (q Query) HasIntent(intent Intent) bool {
	return q.Intents[intent]
}

// ReferenceSet holds explicit legal citations extracted from a query.
// Articles keep their cited sub-clause form (e.g. "19(2)"), sections keep a
// trailing letter (e.g. "69a").
type ReferenceSet struct {
	Articles []string
	Sections []string
	Parts    []string
	Chapters []string
}

// HasRef reports whether the query cited any article or section. Part and
// chapter citations alone are too weak to narrow retrieval.
func (r ReferenceSet) HasRef() bool {
	return len(r.Articles) > 0 || len(r.Sections) > 0
}

// ExpandedQuery carries the two retrieval variants built from a query and the
// link map. Both degrade to the original query when no references matched.
type ExpandedQuery struct {
	Primary string
	Keyword string
}

// LinkEntry maps one constitutional article citation to the statutory
// sections and retrieval keywords commonly invoked alongside it.
type LinkEntry struct {
	LinkedSections []string `json:"Linked_Sections" yaml:"linked_sections"`
	Keywords       []string `json:"Keywords" yaml:"keywords"`
}

// LinkMap is the static article-citation → statute/keyword cross-reference
// table, keyed by citation form (e.g. "19(2)"). Read-only after load.
type LinkMap map[string]LinkEntry
