package codeintel

import (
	"context"

	"github.com/mnemolite/codecore/internal/search"
)

// EngineSearcher adapts internal/search's hybrid Engine onto the Searcher
// contract.
type EngineSearcher struct {
	engine *search.Engine
}

// NewEngineSearcher wraps an already-constructed search engine, typically
// obtained from ProjectIndexer.Engine so search and indexing share state.
func NewEngineSearcher(engine *search.Engine) *EngineSearcher {
	return &EngineSearcher{engine: engine}
}

// Search executes query against the underlying hybrid search engine.
func (s *EngineSearcher) Search(ctx context.Context, query Query) ([]Result, error) {
	if query.Domain == DomainCode || query.Domain == DomainText {
		domain := search.VectorDomainText
		if query.Domain == DomainCode {
			domain = search.VectorDomainCode
		}
		results, err := s.engine.SearchVector(ctx, query.Text, search.DomainSearchOptions{
			Domain:     domain,
			Limit:      query.Limit,
			Repository: query.Repository,
		})
		if err != nil {
			return nil, err
		}
		return toResults(results, ""), nil
	}

	if query.LexicalOnly {
		results, err := s.engine.SearchLexical(ctx, query.Text, search.SearchOptions{Limit: query.Limit})
		if err != nil {
			return nil, err
		}
		return toResults(results, query.Repository), nil
	}

	results, err := s.engine.Search(ctx, query.Text, search.SearchOptions{Limit: query.Limit})
	if err != nil {
		return nil, err
	}
	return toResults(results, query.Repository), nil
}

// toResults converts engine results to the public Result shape, optionally
// scoping to a single repository (empty string means no filtering).
func toResults(in []*search.SearchResult, repository string) []Result {
	out := make([]Result, 0, len(in))
	for _, r := range in {
		if r.Chunk == nil {
			continue
		}
		if repository != "" && r.Chunk.Repository != repository {
			continue
		}
		out = append(out, Result{
			ChunkID:    r.Chunk.ID,
			FilePath:   r.Chunk.FilePath,
			NamePath:   r.Chunk.NamePath,
			Content:    r.Chunk.Content,
			Score:      r.Score,
			Repository: r.Chunk.Repository,
		})
	}
	return out
}

var _ Searcher = (*EngineSearcher)(nil)
