package graph

import (
	"path"
	"strings"

	"github.com/mnemolite/codecore/internal/chunk"
)

// resolver resolves syntactic callee names against the set of nodes in a
// single repository, in three stages of decreasing precedence: a callee
// name is resolved by the first stage that matches, and later stages are
// never consulted once an earlier one succeeds.
//
//  1. Local   - another symbol defined in the same file.
//  2. Imported - a symbol in a different file whose enclosing package/module
//     segment is named by one of the importing file's import statements.
//  3. Global  - any symbol in the repository with a matching short name,
//     the fallback used when neither of the above narrows the candidate set.
//
// Built-in/stdlib callee names (chunk.Builtins) are filtered before any
// stage runs, since they never resolve to a repository node.
type resolver struct {
	byFile   map[string][]ChunkInput   // file path -> chunks defined in that file
	byName   map[string][]ChunkInput   // short name -> all chunks sharing it, repo-wide
	builtins map[string]map[string]bool
}

func newResolver(chunks []ChunkInput) *resolver {
	r := &resolver{
		byFile:   make(map[string][]ChunkInput),
		byName:   make(map[string][]ChunkInput),
		builtins: make(map[string]map[string]bool),
	}
	for _, c := range chunks {
		r.byFile[c.FilePath] = append(r.byFile[c.FilePath], c)
		r.byName[c.ShortName] = append(r.byName[c.ShortName], c)
	}
	return r
}

// resolve returns the best-matching target chunk for a callee name invoked
// from source, and the resolution strategy used, or ok=false when no stage
// could resolve it (including when the name is a filtered-out built-in).
// ambiguous is true only when the global stage found more than one
// same-repository candidate and therefore declined to pick one.
func (r *resolver) resolve(source ChunkInput, callee string) (target ChunkInput, strategy ResolutionStrategy, ok bool, ambiguous bool) {
	if chunk.Builtins(source.Language)[callee] {
		return ChunkInput{}, "", false, false
	}

	if t, found := r.resolveLocal(source, callee); found {
		return t, ResolutionLocal, true, false
	}
	if t, found := r.resolveImported(source, callee); found {
		return t, ResolutionImported, true, false
	}
	t, found, amb := r.resolveGlobal(source, callee)
	if found {
		return t, ResolutionGlobal, true, false
	}
	return ChunkInput{}, "", false, amb
}

func (r *resolver) resolveLocal(source ChunkInput, callee string) (ChunkInput, bool) {
	for _, c := range r.byFile[source.FilePath] {
		if c.ChunkID != source.ChunkID && c.ShortName == callee {
			return c, true
		}
	}
	return ChunkInput{}, false
}

// resolveImported matches callee against chunks defined in a different file
// whose directory segment is named in one of the source file's raw import
// lines - an approximation, since the syntactic callee name alone has
// already dropped its package qualifier by the time it reaches the resolver.
func (r *resolver) resolveImported(source ChunkInput, callee string) (ChunkInput, bool) {
	if len(source.Imports) == 0 {
		return ChunkInput{}, false
	}
	imported := importedModuleTokens(source.Imports)
	if len(imported) == 0 {
		return ChunkInput{}, false
	}

	for _, c := range r.byName[callee] {
		if c.FilePath == source.FilePath {
			continue
		}
		if imported[path.Base(path.Dir(c.FilePath))] {
			return c, true
		}
	}
	return ChunkInput{}, false
}

// resolveGlobal matches callee against every same-repository chunk sharing
// that short name, excluding source itself. A unique candidate resolves;
// two or more is reported as ambiguous rather than picking an arbitrary one.
func (r *resolver) resolveGlobal(source ChunkInput, callee string) (target ChunkInput, ok bool, ambiguous bool) {
	var candidates []ChunkInput
	for _, c := range r.byName[callee] {
		if c.ChunkID != source.ChunkID {
			candidates = append(candidates, c)
		}
	}
	switch len(candidates) {
	case 0:
		return ChunkInput{}, false, false
	case 1:
		return candidates[0], true, false
	default:
		return ChunkInput{}, false, true
	}
}

// importedModuleTokens extracts a set of bare identifiers from raw import
// statement text, tolerant of quotes, aliasing, and per-language punctuation
// ("use", "import", "from ... import", "::").
func importedModuleTokens(imports []string) map[string]bool {
	tokens := make(map[string]bool)
	for _, line := range imports {
		line = strings.Trim(line, " \t;")
		line = strings.NewReplacer(`"`, " ", "'", " ", "::", " ", "/", " ").Replace(line)
		for _, field := range strings.Fields(line) {
			switch field {
			case "import", "from", "use", "as", "pub":
				continue
			}
			tokens[field] = true
			tokens[path.Base(field)] = true
		}
	}
	return tokens
}
