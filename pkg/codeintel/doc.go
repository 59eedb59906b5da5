// Package codeintel exposes CodeCore's indexing, search, and call-graph
// capabilities as three narrow, composable interfaces: clean contracts
// hiding implementation details, with one concrete adapter per internal
// subsystem behind each.
//
// # Architecture
//
//	┌──────────────┐   ┌──────────────┐   ┌──────────────┐
//	│   Indexer    │   │   Searcher   │   │ GraphReader  │
//	└──────┬───────┘   └──────┬───────┘   └──────┬───────┘
//	       │                  │                  │
//	┌──────▼───────┐   ┌──────▼───────┐   ┌──────▼───────┐
//	│ internal/    │   │ internal/    │   │ internal/    │
//	│   index      │   │   search     │   │   graph      │
//	└──────────────┘   └──────────────┘   └──────────────┘
//
// Each interface is backed by a concrete adapter (ProjectIndexer,
// EngineSearcher, FileGraphReader) that wires the public contract onto the
// corresponding internal package, so callers outside this module never
// import internal/* directly.
package codeintel
