package index

import (
	"path"
	"strings"

	"github.com/mnemolite/codecore/internal/graph"
	"github.com/mnemolite/codecore/internal/store"
)

// toGraphChunkInputs converts indexed chunks into the Graph Builder's input
// contract. One module-kind entry is synthesized per distinct file (from its
// first chunk) so import edges have a file-level node to attach to,
// alongside one entry per symbol-bearing chunk.
func toGraphChunkInputs(chunks []*store.Chunk) []graph.ChunkInput {
	inputs := make([]graph.ChunkInput, 0, len(chunks))
	seenModuleFile := make(map[string]bool, len(chunks))

	for _, c := range chunks {
		if !seenModuleFile[c.FilePath] {
			seenModuleFile[c.FilePath] = true
			inputs = append(inputs, graph.ChunkInput{
				ChunkID:    c.ID + ":module",
				Repository: c.Repository,
				FilePath:   c.FilePath,
				NamePath:   c.FilePath,
				ShortName:  moduleShortName(c.FilePath),
				Kind:       graph.NodeModule,
				Language:   c.Language,
				Imports:    c.Imports,
			})
		}

		kind := chunkKind(c)
		if kind == "" {
			continue
		}

		inputs = append(inputs, graph.ChunkInput{
			ChunkID:    c.ID,
			Repository: c.Repository,
			FilePath:   c.FilePath,
			NamePath:   c.NamePath,
			ShortName:  shortName(c.NamePath),
			Kind:       kind,
			Language:   c.Language,
			Calls:      c.Calls,
			Imports:    c.Imports,
		})
	}

	return inputs
}

// chunkKind derives a graph node kind from a chunk's leading symbol. Chunks
// with no symbols, or whose leading symbol isn't callable (variables,
// constants), produce no node - they never participate in call/import edges.
func chunkKind(c *store.Chunk) graph.NodeType {
	if len(c.Symbols) == 0 {
		return ""
	}
	switch c.Symbols[0].Type {
	case store.SymbolTypeFunction:
		return graph.NodeFunction
	case store.SymbolTypeMethod:
		return graph.NodeMethod
	case store.SymbolTypeClass, store.SymbolTypeInterface, store.SymbolTypeType:
		return graph.NodeClass
	default:
		return ""
	}
}

// shortName returns the last segment of a qualified NamePath (e.g.
// "pkg.Type.Method" -> "Method").
func shortName(namePath string) string {
	if namePath == "" {
		return ""
	}
	for _, sep := range []string{"::", "."} {
		if idx := strings.LastIndex(namePath, sep); idx != -1 {
			return namePath[idx+len(sep):]
		}
	}
	return namePath
}

// moduleShortName derives a module-level short name from a file path, the
// same directory-token shape resolveImported matches against.
func moduleShortName(filePath string) string {
	base := path.Base(filePath)
	return strings.TrimSuffix(base, path.Ext(base))
}
