package usecase

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/nyaysaathi/legal-assistant/internal/core/domain"
)

// searchProbe is one fan-out leg: a probe query and its result budget.
type searchProbe struct {
	query string
	limit int
}

// rightsCategory is one of the six Part III groupings used for enumeration
// queries, where semantic search alone tends to return an uneven sample.
type rightsCategory struct {
	name     string
	articles []string
}

var fundamentalRightsCategories = []rightsCategory{
	{"Right to Equality", []string{"14", "15", "16", "17", "18"}},
	{"Right to Freedom", []string{"19", "20", "21", "21A", "22"}},
	{"Right against Exploitation", []string{"23", "24"}},
	{"Right to Freedom of Religion", []string{"25", "26", "27", "28"}},
	{"Cultural and Educational Rights", []string{"29", "30"}},
	{"Right to Constitutional Remedies", []string{"32"}},
}

func (uc *AnswerUseCase) search(ctx context.Context, query string, limit int) ([]domain.ContextChunk, error) {
	vector, err := uc.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	chunks, err := uc.vectors.Search(ctx, vector, limit)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}
	return chunks, nil
}

// mergeByIdentity deduplicates fan-out results on chunk identity, keeping the
// best score seen for each chunk. Merging twice is a no-op.
func mergeByIdentity(batches ...[]domain.ContextChunk) []domain.ContextChunk {
	best := make(map[string]domain.ContextChunk)
	var order []string
	for _, batch := range batches {
		for _, c := range batch {
			id := c.Identity()
			prev, seen := best[id]
			if !seen {
				best[id] = c
				order = append(order, id)
				continue
			}
			if c.Score > prev.Score {
				best[id] = c
			}
		}
	}
	out := make([]domain.ContextChunk, 0, len(order))
	for _, id := range order {
		out = append(out, best[id])
	}
	return out
}

// retrieveFundamentalRights fans out one probe per category plus one per
// article, so every grouping is represented before reranking. A combined
// catch-all probe tops up sparse corpora.
func (uc *AnswerUseCase) retrieveFundamentalRights(ctx context.Context, topK int) ([]domain.ContextChunk, error) {
	var probes []searchProbe
	for _, cat := range fundamentalRightsCategories {
		probes = append(probes, searchProbe{cat.name + " Part III Constitution of India fundamental rights", 3})
		for _, a := range cat.articles {
			probes = append(probes, searchProbe{"Article " + a + " Constitution of India Part III fundamental rights", 3})
		}
	}

	batches := make([][]domain.ContextChunk, len(probes))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.cfg.FanoutConcurrency)
	for i, p := range probes {
		i, p := i, p
		g.Go(func() error {
			chunks, err := uc.search(gctx, p.query, p.limit)
			if err != nil {
				return err
			}
			batches[i] = chunks
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := mergeByIdentity(batches...)
	if len(merged) < 12 {
		extra, err := uc.search(ctx, "fundamental rights Part III Constitution of India Articles 14 to 32", 12)
		if err != nil {
			return nil, err
		}
		merged = mergeByIdentity(merged, extra)
	}
	// Probe order is arbitrary, so rank by score before the cap or a strong
	// hit from a late probe is lost.
	sort.SliceStable(merged, func(i, j int) bool { return merged[i].Score > merged[j].Score })
	if limit := max(topK, 24); len(merged) > limit {
		merged = merged[:limit]
	}
	return merged, nil
}

// retrieveGeneral runs the three-probe fan-out: the link-expanded query, the
// verbatim query, and the keyword-widened query. Cited queries probe
// narrower because the citation already pins the target.
func (uc *AnswerUseCase) retrieveGeneral(ctx context.Context, query string, refs domain.ReferenceSet, expanded domain.ExpandedQuery, topK int) ([]domain.ContextChunk, error) {
	adaptiveK := 10
	if refs.HasRef() {
		adaptiveK = 5
	}

	probes := []searchProbe{
		{expanded.Primary, max(topK, adaptiveK)},
		{query, adaptiveK},
	}
	if expanded.Keyword != query {
		probes = append(probes, searchProbe{expanded.Keyword, adaptiveK})
	}

	batches := make([][]domain.ContextChunk, len(probes))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.cfg.FanoutConcurrency)
	for i, p := range probes {
		i, p := i, p
		g.Go(func() error {
			chunks, err := uc.search(gctx, p.query, p.limit)
			if err != nil {
				return err
			}
			batches[i] = chunks
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := mergeByIdentity(batches...)
	if len(merged) == 0 {
		return uc.search(ctx, query, topK)
	}
	return merged, nil
}
