// Package graph builds and traverses the call/import graph materialized
// from indexed chunks: one node per callable chunk, edges for resolved
// calls and imports between them.
package graph

// NodeType is the kind of callable/importable entity a node represents.
type NodeType string

const (
	NodeFunction NodeType = "function"
	NodeMethod   NodeType = "method"
	NodeClass    NodeType = "class"
	NodeModule   NodeType = "module"
)

// RelationType is the kind of directed relation an edge represents.
type RelationType string

const (
	RelationCalls   RelationType = "calls"
	RelationImports RelationType = "imports"
)

// ResolutionStrategy records which stage of the three-stage resolver
// produced an edge, in Local > Imported > Global precedence order.
type ResolutionStrategy string

const (
	ResolutionLocal    ResolutionStrategy = "local"
	ResolutionImported ResolutionStrategy = "imported"
	ResolutionGlobal   ResolutionStrategy = "global"
)

// Node is a graph node backed by a chunk.
type Node struct {
	ID         string // opaque identity, stable across rebuilds for the same chunk
	Repository string
	Type       NodeType
	Label      string // short display name (chunk's short name, not name_path)
	ChunkID    string // back-reference to the owning chunk
	FilePath   string
}

// Edge is a directed relation between two nodes.
type Edge struct {
	SourceNodeID string
	TargetNodeID string
	RelationType RelationType
	Strategy     ResolutionStrategy // how SourceNodeID -> TargetNodeID was resolved, empty for imports
}

// key returns the (source, target, relation) dedup key for an edge, per the
// "at most one edge per (source, target, relation_type) tuple" invariant.
func (e Edge) key() string {
	return e.SourceNodeID + "\x00" + e.TargetNodeID + "\x00" + string(e.RelationType)
}

// ChunkInput is the Graph Builder's input contract: one entry per indexed
// chunk, decoupled from the store package so this package has no dependency
// on chunk persistence.
type ChunkInput struct {
	ChunkID    string
	Repository string
	FilePath   string
	NamePath   string // qualified hierarchical name, used for short-name matching
	ShortName  string // last segment of NamePath
	Kind       NodeType
	Language   string
	Calls      []string // syntactic callee names from metadata extraction, unresolved
	Imports    []string // raw import/use statement text for the file
}

// Stats summarizes a repository's graph.
type Stats struct {
	NodeCount       int
	EdgeCount       int
	EdgesByRelation map[RelationType]int
	UnresolvedCalls int // callees that could not be resolved by any stage
}

// Data is the persisted/transient representation of a repository's graph.
type Data struct {
	Nodes []Node
	Edges []Edge
}
