package usecase

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/nyaysaathi/legal-assistant/internal/core/domain"
)

// defaultLinkMap connects constitutional clauses to the statutory sections
// that operationalize them, plus doctrine keywords used for query widening.
func defaultLinkMap() domain.LinkMap {
	return domain.LinkMap{
		"19(1)(a)": {
			LinkedSections: []string{"69A IT Act", "69 IT Act"},
			Keywords:       []string{"speech", "publish", "ban", "expression", "censorship"},
		},
		"19(2)": {
			LinkedSections: []string{"69A IT Act"},
			Keywords: []string{"reasonable restriction", "public order", "decency", "morality",
				"security of the state", "sovereignty"},
		},
		"32":  {Keywords: []string{"writ", "remedy"}},
		"226": {Keywords: []string{"writ", "high court"}},
	}
}

// LinkMapCache serves a process-wide read-only link map. The file, when
// configured, replaces entries key by key on top of the built-ins. Loading is
// lazy; a broken or missing file degrades to the defaults.
type LinkMapCache struct {
	path string

	once sync.Once
	mu   sync.RWMutex
	m    domain.LinkMap
}

func NewLinkMapCache(path string) *LinkMapCache {
	return &LinkMapCache{path: path}
}

// Get returns the current link map. Callers must not mutate it.
func (c *LinkMapCache) Get() domain.LinkMap {
	c.once.Do(func() {
		m, err := loadLinkMap(c.path)
		if err != nil {
			m = defaultLinkMap()
		}
		c.mu.Lock()
		c.m = m
		c.mu.Unlock()
	})
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.m
}

// Reload re-reads the override file. Unlike Get it surfaces parse errors, so
// an operator editing the file sees the failure instead of silent defaults.
func (c *LinkMapCache) Reload() error {
	c.once.Do(func() {})
	m, err := loadLinkMap(c.path)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.m = m
	c.mu.Unlock()
	return nil
}

func loadLinkMap(path string) (domain.LinkMap, error) {
	base := defaultLinkMap()
	if path == "" {
		return base, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read link map %s: %w", path, err)
	}
	var overrides domain.LinkMap
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, &overrides)
	default:
		err = json.Unmarshal(raw, &overrides)
	}
	if err != nil {
		return nil, fmt.Errorf("parse link map %s: %w", path, err)
	}
	for key, entry := range overrides {
		base[NormalizeCitation(key)] = entry
	}
	return base, nil
}

// linkEntriesFor resolves the query's article references against the link
// map. A bare article number fans out to every clause key sharing that
// number, so "article 19" picks up both 19(1)(a) and 19(2).
func linkEntriesFor(m domain.LinkMap, refs domain.ReferenceSet) []domain.LinkEntry {
	var entries []domain.LinkEntry
	seen := make(map[string]struct{})
	add := func(key string) {
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		if e, ok := m[key]; ok {
			entries = append(entries, e)
		}
	}
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, a := range refs.Articles {
		add(a)
		for _, key := range keys {
			if clauseOf(key) == a {
				add(key)
			}
		}
	}
	return entries
}

// clauseOf returns the article number of a clause key: "19(1)(a)" -> "19".
func clauseOf(key string) string {
	for i := 0; i < len(key); i++ {
		if key[i] == '(' {
			return key[:i]
		}
	}
	return ""
}
