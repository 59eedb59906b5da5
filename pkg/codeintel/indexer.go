package codeintel

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sync"

	"github.com/mnemolite/codecore/internal/async"
	"github.com/mnemolite/codecore/internal/chunk"
	"github.com/mnemolite/codecore/internal/config"
	"github.com/mnemolite/codecore/internal/embed"
	"github.com/mnemolite/codecore/internal/index"
	"github.com/mnemolite/codecore/internal/search"
	"github.com/mnemolite/codecore/internal/store"
	"github.com/mnemolite/codecore/internal/ui"
	"github.com/mnemolite/codecore/internal/watcher"
)

// ProjectIndexer adapts internal/index's Runner (full-project passes) and
// Coordinator (single-file updates) onto the Indexer contract.
type ProjectIndexer struct {
	mu sync.Mutex

	root     string
	dataDir  string
	cfg      *config.Config
	metadata store.MetadataStore
	bm25     store.BM25Index
	vector   store.VectorStore
	embedder embed.Embedder
	engine   *search.Engine

	runner      *index.Runner
	coordinator *index.Coordinator

	lastStatus *IndexStatus
	bg         *async.BackgroundIndexer
}

// NewProjectIndexer wires a ProjectIndexer from on-disk stores rooted at
// dataDir, using offline (static, no-download) embeddings - the same
// embedder cmd/codecore uses for --backend=static or offline indexing.
func NewProjectIndexer(ctx context.Context, root, dataDir string, cfg *config.Config) (*ProjectIndexer, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}

	metadata, err := store.NewSQLiteStore(filepath.Join(dataDir, "metadata.db"))
	if err != nil {
		return nil, fmt.Errorf("create metadata store: %w", err)
	}

	bm25, err := store.NewBM25IndexWithBackend(filepath.Join(dataDir, "bm25"), store.DefaultBM25Config(), cfg.Search.BM25Backend)
	if err != nil {
		return nil, fmt.Errorf("create bm25 index: %w", err)
	}

	embedder := embed.NewStaticEmbedder768()

	vector, err := store.NewHNSWStore(store.DefaultVectorStoreConfig(embedder.Dimensions()))
	if err != nil {
		return nil, fmt.Errorf("create vector store: %w", err)
	}

	trigram, err := store.NewSQLiteTrigramIndex(filepath.Join(dataDir, "trigram.db"))
	if err != nil {
		return nil, fmt.Errorf("create trigram lexical index: %w", err)
	}

	engine, err := search.NewEngine(bm25, vector, embedder, metadata, search.DefaultConfig(),
		search.WithTrigramLexical(trigram))
	if err != nil {
		return nil, fmt.Errorf("create search engine: %w", err)
	}

	renderer := ui.NewPlainRenderer(ui.Config{Output: io.Discard})

	runner, err := index.NewRunner(index.RunnerDependencies{
		Renderer: renderer,
		Config:   cfg,
		Metadata: metadata,
		BM25:     bm25,
		Vector:   vector,
		Embedder: embedder,
	})
	if err != nil {
		return nil, fmt.Errorf("create index runner: %w", err)
	}

	coordinator := index.NewCoordinator(index.CoordinatorConfig{
		ProjectID:   projectID(root),
		RootPath:    root,
		DataDir:     dataDir,
		Engine:      engine,
		Metadata:    metadata,
		CodeChunker: chunk.NewCodeChunker(),
		MDChunker:   chunk.NewMarkdownChunker(),
	})

	return &ProjectIndexer{
		root:        root,
		dataDir:     dataDir,
		cfg:         cfg,
		metadata:    metadata,
		bm25:        bm25,
		vector:      vector,
		embedder:    embedder,
		engine:      engine,
		runner:      runner,
		coordinator: coordinator,
	}, nil
}

func projectID(root string) string {
	return fmt.Sprintf("%x", []byte(filepath.Clean(root)))[:16]
}

// IndexProject performs a full indexing pass over root.
func (p *ProjectIndexer) IndexProject(ctx context.Context, root string) (*IndexStatus, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	result, err := p.runner.Run(ctx, index.RunnerConfig{
		RootDir: root,
		DataDir: p.dataDir,
		Offline: true,
	})
	if err != nil {
		return nil, err
	}

	status := &IndexStatus{
		Files:    result.Files,
		Chunks:   result.Chunks,
		Duration: result.Duration,
		Errors:   result.Errors,
		Warnings: result.Warnings,
	}
	p.lastStatus = status
	return status, nil
}

// IndexFile incrementally re-indexes a single file via the Coordinator.
func (p *ProjectIndexer) IndexFile(ctx context.Context, relPath string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.coordinator.HandleEvents(ctx, []watcher.FileEvent{
		{Path: relPath, Operation: watcher.OpModify},
	})
}

// RemoveFile removes a single file's chunks from every index.
func (p *ProjectIndexer) RemoveFile(ctx context.Context, relPath string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.coordinator.HandleEvents(ctx, []watcher.FileEvent{
		{Path: relPath, Operation: watcher.OpDelete},
	})
}

// Status returns the most recent indexing outcome.
func (p *ProjectIndexer) Status(ctx context.Context) (*IndexStatus, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.lastStatus == nil {
		return nil, ErrProjectNotIndexed
	}
	status := *p.lastStatus
	return &status, nil
}

// IndexProjectAsync starts a full indexing pass in the background via
// internal/async's BackgroundIndexer, tracking coarse-grained progress
// (scanning while the pass runs, ready or error when it finishes) since
// the Runner it wraps reports only a final result, not per-stage hooks.
// A pass already running when called is left alone.
func (p *ProjectIndexer) IndexProjectAsync(ctx context.Context, root string) error {
	p.mu.Lock()
	if p.bg != nil && p.bg.IsRunning() {
		p.mu.Unlock()
		return nil
	}
	bg := async.NewBackgroundIndexer(async.IndexerConfig{DataDir: p.dataDir})
	bg.IndexFunc = func(ctx context.Context, progress *async.IndexProgress) error {
		progress.SetStage(async.StageIndexing, 0)
		status, err := p.IndexProject(ctx, root)
		if err != nil {
			return err
		}
		progress.UpdateFiles(status.Files)
		progress.SetChunksTotal(status.Chunks)
		progress.UpdateChunks(status.Chunks)
		return nil
	}
	p.bg = bg
	p.mu.Unlock()

	bg.Start(ctx)
	return nil
}

// Progress reports the state of the asynchronous indexing pass most
// recently started by IndexProjectAsync.
func (p *ProjectIndexer) Progress(ctx context.Context) (*IndexProgress, error) {
	p.mu.Lock()
	bg := p.bg
	p.mu.Unlock()

	if bg == nil {
		return nil, ErrProjectNotIndexed
	}
	snap := bg.Progress().Snapshot()
	return &IndexProgress{
		Status:         snap.Status,
		Stage:          snap.Stage,
		FilesTotal:     snap.FilesTotal,
		FilesProcessed: snap.FilesProcessed,
		ChunksTotal:    snap.ChunksTotal,
		ChunksIndexed:  snap.ChunksIndexed,
		ProgressPct:    snap.ProgressPct,
		ElapsedSeconds: snap.ElapsedSeconds,
		ErrorMessage:   snap.ErrorMessage,
	}, nil
}

// Engine exposes the underlying search engine, e.g. to build an
// EngineSearcher sharing the same indexed state.
func (p *ProjectIndexer) Engine() *search.Engine {
	return p.engine
}

// Close releases every store this indexer opened, stopping any in-flight
// asynchronous indexing pass first.
func (p *ProjectIndexer) Close() error {
	p.mu.Lock()
	bg := p.bg
	p.mu.Unlock()
	if bg != nil && bg.IsRunning() {
		bg.Stop()
	}

	var errs []error
	if err := p.runner.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := p.engine.Close(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}

var _ Indexer = (*ProjectIndexer)(nil)
