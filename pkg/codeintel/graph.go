package codeintel

import (
	"context"
	"fmt"

	"github.com/mnemolite/codecore/internal/graph"
)

// FileGraphReader adapts a graph.Traverser, loaded from a persisted
// graph.json, onto the GraphReader contract.
type FileGraphReader struct {
	traverser *graph.Traverser
}

// NewFileGraphReader loads the graph persisted at path (written by
// internal/index's Runner.buildGraph) and wraps it for querying.
func NewFileGraphReader(path string) (*FileGraphReader, error) {
	data, err := graph.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load graph: %w", err)
	}
	return &FileGraphReader{traverser: graph.NewTraverser(data)}, nil
}

func toSymbols(results []graph.TraversalResult) []Symbol {
	out := make([]Symbol, 0, len(results))
	for _, r := range results {
		out = append(out, Symbol{
			ID:         r.Node.ID,
			Repository: r.Node.Repository,
			Kind:       string(r.Node.Type),
			Label:      r.Node.Label,
			FilePath:   r.Node.FilePath,
		})
	}
	return out
}

// Callers returns symbols that call symbolID, up to depth hops away.
func (g *FileGraphReader) Callers(ctx context.Context, symbolID string, depth int) ([]Symbol, error) {
	return toSymbols(g.traverser.Traverse(symbolID, graph.DirectionInbound, []graph.RelationType{graph.RelationCalls}, depth)), nil
}

// Callees returns symbols that symbolID calls, up to depth hops away.
func (g *FileGraphReader) Callees(ctx context.Context, symbolID string, depth int) ([]Symbol, error) {
	return toSymbols(g.traverser.Traverse(symbolID, graph.DirectionOutbound, []graph.RelationType{graph.RelationCalls}, depth)), nil
}

// Imports returns the modules symbolID's file imports.
func (g *FileGraphReader) Imports(ctx context.Context, symbolID string, depth int) ([]Symbol, error) {
	return toSymbols(g.traverser.Traverse(symbolID, graph.DirectionOutbound, []graph.RelationType{graph.RelationImports}, depth)), nil
}

// ImportedBy returns the modules that import symbolID's file.
func (g *FileGraphReader) ImportedBy(ctx context.Context, symbolID string, depth int) ([]Symbol, error) {
	return toSymbols(g.traverser.Traverse(symbolID, graph.DirectionInbound, []graph.RelationType{graph.RelationImports}, depth)), nil
}

// Neighborhood returns every symbol reachable from symbolID within depth
// hops, following calls and imports in both directions.
func (g *FileGraphReader) Neighborhood(ctx context.Context, symbolID string, depth int) ([]Symbol, error) {
	relations := []graph.RelationType{graph.RelationCalls, graph.RelationImports}
	out := g.traverser.Traverse(symbolID, graph.DirectionOutbound, relations, depth)
	out = append(out, g.traverser.Traverse(symbolID, graph.DirectionInbound, relations, depth)...)
	return toSymbols(dedupeResults(out)), nil
}

// dedupeResults removes duplicate nodes (same ID) keeping the first
// occurrence (outbound results precede inbound ones, whatever their depth) -
// Neighborhood's bidirectional scan can otherwise surface the same node via
// both directions.
func dedupeResults(in []graph.TraversalResult) []graph.TraversalResult {
	seen := make(map[string]bool, len(in))
	out := make([]graph.TraversalResult, 0, len(in))
	for _, r := range in {
		if seen[r.Node.ID] {
			continue
		}
		seen[r.Node.ID] = true
		out = append(out, r)
	}
	return out
}

var _ GraphReader = (*FileGraphReader)(nil)
