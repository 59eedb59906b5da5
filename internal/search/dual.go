package search

import (
	"context"
	"fmt"

	"github.com/mnemolite/codecore/internal/embed"
	"github.com/mnemolite/codecore/internal/store"
)

// VectorDomain selects which embedding domain a vector search targets.
type VectorDomain string

const (
	// VectorDomainText searches the TEXT-domain vector index (the default,
	// always-present domain used by Search).
	VectorDomainText VectorDomain = "TEXT"

	// VectorDomainCode searches the CODE-domain vector index, present only
	// when the engine was built with WithCodeDomain.
	VectorDomainCode VectorDomain = "CODE"
)

// ErrCodeDomainNotConfigured is returned when a CODE-domain search is
// requested but the engine was never given WithCodeDomain.
var ErrCodeDomainNotConfigured = fmt.Errorf("code-domain vector index not configured")

// DomainSearchOptions configures a single-domain vector search.
type DomainSearchOptions struct {
	// Domain selects TEXT or CODE. Defaults to VectorDomainText.
	Domain VectorDomain

	// Limit is the maximum number of results (same defaulting as SearchOptions).
	Limit int

	// DistanceThreshold, when positive, discards results with a larger
	// distance than this value. 0 means no threshold.
	DistanceThreshold float32

	// Repository, when non-empty, restricts results to chunks scoped to it.
	Repository string
}

// SearchVector runs a k-nearest-neighbor search against a single embedding
// domain and returns enriched results, bypassing BM25 fusion entirely. This
// is the engine's implementation of a raw vector-similarity query, distinct
// from Search's hybrid BM25+semantic blend.
func (e *Engine) SearchVector(ctx context.Context, queryText string, opts DomainSearchOptions) ([]*SearchResult, error) {
	if opts.Domain == "" {
		opts.Domain = VectorDomainText
	}
	if opts.Limit <= 0 {
		opts.Limit = e.config.DefaultLimit
	}
	if opts.Limit > e.config.MaxLimit {
		opts.Limit = e.config.MaxLimit
	}

	vstore, embedder, err := e.domainDeps(opts.Domain)
	if err != nil {
		return nil, err
	}

	embedding, err := embedder.Embed(ctx, formatQueryForEmbedding(queryText))
	if err != nil {
		return nil, fmt.Errorf("embed query for %s domain: %w", opts.Domain, err)
	}

	vecResults, err := vstore.Search(ctx, embedding, opts.Limit*2)
	if err != nil {
		return nil, fmt.Errorf("%s domain vector search: %w", opts.Domain, err)
	}

	if opts.DistanceThreshold > 0 {
		filtered := vecResults[:0]
		for _, r := range vecResults {
			if r.Distance <= opts.DistanceThreshold {
				filtered = append(filtered, r)
			}
		}
		vecResults = filtered
	}

	fused := make([]*fusedResult, len(vecResults))
	for i, r := range vecResults {
		fused[i] = &fusedResult{
			chunkID:  r.ID,
			rrfScore: float64(r.Score),
			vecScore: float64(r.Score),
			vecRank:  i + 1,
		}
	}

	enriched, err := e.enrichResults(ctx, fused)
	if err != nil {
		return nil, err
	}

	if opts.Repository != "" {
		scoped := enriched[:0]
		for _, r := range enriched {
			if r.Chunk != nil && r.Chunk.Repository == opts.Repository {
				scoped = append(scoped, r)
			}
		}
		enriched = scoped
	}

	if len(enriched) > opts.Limit {
		enriched = enriched[:opts.Limit]
	}

	return enriched, nil
}

// domainDeps resolves the vector store and embedder for a given domain.
func (e *Engine) domainDeps(domain VectorDomain) (store.VectorStore, embed.Embedder, error) {
	switch domain {
	case VectorDomainText, "":
		return e.vector, e.embedder, nil
	case VectorDomainCode:
		if e.vectorCode == nil || e.codeEmbedder == nil {
			return nil, nil, ErrCodeDomainNotConfigured
		}
		return e.vectorCode, e.codeEmbedder, nil
	default:
		return nil, nil, fmt.Errorf("unknown vector domain %q", domain)
	}
}
