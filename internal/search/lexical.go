package search

import (
	"context"
	"fmt"
)

// SearchLexical runs trigram similarity search over name_path and source
// content, bypassing vector search and RRF fusion entirely. This implements
// search_lexical: pure character-3-gram matching, distinct from Search's
// word-tokenized BM25 scoring, useful for fuzzy/partial identifier lookups.
// Falls back to the word-tokenized BM25 index when the engine has no
// trigram index configured (WithTrigramLexical).
func (e *Engine) SearchLexical(ctx context.Context, query string, opts SearchOptions) ([]*SearchResult, error) {
	opts = e.applyDefaults(opts)

	index := e.trigram
	if index == nil {
		index = e.bm25
	}

	bm25Results, err := index.Search(ctx, query, opts.Limit*2)
	if err != nil {
		return nil, fmt.Errorf("lexical search: %w", err)
	}

	fused := make([]*fusedResult, len(bm25Results))
	for i, r := range bm25Results {
		fused[i] = &fusedResult{
			chunkID:      r.DocID,
			rrfScore:     r.Score,
			bm25Score:    r.Score,
			bm25Rank:     i + 1,
			matchedTerms: r.MatchedTerms,
		}
	}

	enriched, err := e.enrichResults(ctx, fused)
	if err != nil {
		return nil, err
	}

	if len(enriched) > opts.Limit {
		enriched = enriched[:opts.Limit]
	}

	return enriched, nil
}
