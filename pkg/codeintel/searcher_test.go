package codeintel

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnemolite/codecore/internal/embed"
	"github.com/mnemolite/codecore/internal/search"
	"github.com/mnemolite/codecore/internal/store"
)

func buildTestSearcher(t *testing.T) *EngineSearcher {
	t.Helper()

	tmpDir := t.TempDir()
	metadata, err := store.NewSQLiteStore(filepath.Join(tmpDir, "meta.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = metadata.Close() })

	bm25, err := store.NewBM25IndexWithBackend(filepath.Join(tmpDir, "bm25"), store.DefaultBM25Config(), "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = bm25.Close() })

	embedder := embed.NewStaticEmbedder768()
	vector, err := store.NewHNSWStore(store.DefaultVectorStoreConfig(embedder.Dimensions()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = vector.Close() })

	engine, err := search.NewEngine(bm25, vector, embedder, metadata, search.DefaultConfig())
	require.NoError(t, err)

	project := &store.Project{ID: "proj1", Name: "proj1", RootPath: "/tmp/proj1", IndexedAt: time.Now()}
	require.NoError(t, metadata.SaveProject(context.Background(), project))

	file := &store.File{ID: "file1", ProjectID: "proj1", Path: "widget.go", Language: "go", ContentType: "code", IndexedAt: time.Now()}
	require.NoError(t, metadata.SaveFiles(context.Background(), []*store.File{file}))

	chunks := []*store.Chunk{
		{
			ID:          "c1",
			FileID:      "file1",
			Repository:  "proj1",
			FilePath:    "widget.go",
			NamePath:    "Widget.Render",
			Content:     "func (w *Widget) Render() string { return \"widget render output\" }",
			ContentType: store.ContentTypeCode,
			Language:    "go",
			StartLine:   1,
			EndLine:     1,
		},
	}

	require.NoError(t, engine.Index(context.Background(), chunks))

	return NewEngineSearcher(engine)
}

func TestEngineSearcher_SearchHybridFindsMatchingChunk(t *testing.T) {
	searcher := buildTestSearcher(t)

	results, err := searcher.Search(context.Background(), Query{Text: "widget render", Limit: 5})
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "c1", results[0].ChunkID)
}

func TestEngineSearcher_SearchScopesToRepository(t *testing.T) {
	searcher := buildTestSearcher(t)

	results, err := searcher.Search(context.Background(), Query{Text: "widget render", Limit: 5, Repository: "other-repo"})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestEngineSearcher_SearchTextDomainFindsChunk(t *testing.T) {
	searcher := buildTestSearcher(t)

	results, err := searcher.Search(context.Background(), Query{Text: "widget render", Domain: DomainText, Limit: 5})
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "c1", results[0].ChunkID)
}
