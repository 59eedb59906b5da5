package graph

import (
	"context"
	"fmt"
	"log/slog"
	"path"
)

// Builder constructs a repository's graph from its indexed chunks.
type Builder interface {
	// Build performs a full, idempotent rebuild of one repository's graph.
	// Re-running Build for the same chunks yields the same node and edge
	// set (node IDs are chunk IDs, and edges dedup by source/target/relation).
	Build(ctx context.Context, repository string, chunks []ChunkInput) (*Data, error)
}

type builder struct {
	log *slog.Logger
}

// NewBuilder returns a Builder. log may be nil, in which case a disabled
// logger is used.
func NewBuilder(log *slog.Logger) Builder {
	if log == nil {
		log = slog.New(slog.NewTextHandler(discardWriter{}, nil))
	}
	return &builder{log: log}
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

// Build runs in two phases: nodes first (one per chunk, skipping chunks
// whose Kind doesn't represent a callable/importable entity), then edges
// (resolved calls, then raw imports), mirroring the node-then-edge build
// shape used by reference graph builders in this codebase's lineage. A
// failure building one repository's graph never touches another's - the
// caller is expected to invoke Build once per repository and isolate
// failures at that granularity.
func (b *builder) Build(ctx context.Context, repository string, chunks []ChunkInput) (*Data, error) {
	nodes := make([]Node, 0, len(chunks))
	nodeByChunkID := make(map[string]Node, len(chunks))

	for _, c := range chunks {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("graph build canceled for repository %s: %w", repository, ctx.Err())
		}
		if c.Kind == "" {
			continue
		}
		n := Node{
			ID:         c.ChunkID,
			Repository: repository,
			Type:       c.Kind,
			Label:      c.ShortName,
			ChunkID:    c.ChunkID,
			FilePath:   c.FilePath,
		}
		nodes = append(nodes, n)
		nodeByChunkID[c.ChunkID] = n
	}

	res := newResolver(chunks)

	edgeSet := make(map[string]Edge)
	unresolved := 0
	ambiguous := 0

	for _, c := range chunks {
		if _, ok := nodeByChunkID[c.ChunkID]; !ok {
			continue
		}
		for _, callee := range c.Calls {
			target, strategy, ok, amb := res.resolve(c, callee)
			if !ok {
				if amb {
					ambiguous++
				} else {
					unresolved++
				}
				continue
			}
			if _, ok := nodeByChunkID[target.ChunkID]; !ok {
				continue
			}
			e := Edge{
				SourceNodeID: c.ChunkID,
				TargetNodeID: target.ChunkID,
				RelationType: RelationCalls,
				Strategy:     strategy,
			}
			edgeSet[e.key()] = e
		}
	}

	addImportEdges(chunks, nodeByChunkID, edgeSet)

	edges := make([]Edge, 0, len(edgeSet))
	for _, e := range edgeSet {
		edges = append(edges, e)
	}

	b.log.Debug("graph built",
		"repository", repository,
		"nodes", len(nodes),
		"edges", len(edges),
		"unresolved_calls", unresolved,
		"ambiguous_calls", ambiguous,
	)

	return &Data{Nodes: nodes, Edges: edges}, nil
}

// addImportEdges adds one edge per (importer module node, imported module
// node) pair found via the same token-matching heuristic the resolver uses
// for its imported-stage call resolution, from the importer's module-kind
// node to the imported module-kind node.
func addImportEdges(chunks []ChunkInput, nodeByChunkID map[string]Node, edgeSet map[string]Edge) {
	moduleNodeByToken := make(map[string]string) // directory token -> module chunk ID
	for _, c := range chunks {
		if c.Kind != NodeModule {
			continue
		}
		if _, ok := nodeByChunkID[c.ChunkID]; !ok {
			continue
		}
		moduleNodeByToken[moduleToken(c.FilePath)] = c.ChunkID
	}
	if len(moduleNodeByToken) == 0 {
		return
	}

	seenPerFile := make(map[string]bool)
	for _, c := range chunks {
		if c.Kind != NodeModule {
			continue
		}
		if seenPerFile[c.FilePath] || len(c.Imports) == 0 {
			continue
		}
		seenPerFile[c.FilePath] = true

		for token := range importedModuleTokens(c.Imports) {
			targetID, ok := moduleNodeByToken[token]
			if !ok || targetID == c.ChunkID {
				continue
			}
			e := Edge{
				SourceNodeID: c.ChunkID,
				TargetNodeID: targetID,
				RelationType: RelationImports,
			}
			edgeSet[e.key()] = e
		}
	}
}

func moduleToken(filePath string) string {
	return path.Base(path.Dir(filePath))
}
