package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteTrigramIndex_IndexAndSearch_FindsSubstringMatch(t *testing.T) {
	idx, err := NewSQLiteTrigramIndex("")
	require.NoError(t, err)
	defer func() { _ = idx.Close() }()

	docs := []*Document{
		{ID: "1", Content: "DataHandler"},
		{ID: "2", Content: "RequestProcessor"},
	}
	require.NoError(t, idx.Index(context.Background(), docs))

	results, err := idx.Search(context.Background(), "Handler", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "1", results[0].DocID)
}

func TestSQLiteTrigramIndex_Delete_RemovesDocument(t *testing.T) {
	idx, err := NewSQLiteTrigramIndex("")
	require.NoError(t, err)
	defer func() { _ = idx.Close() }()

	docs := []*Document{{ID: "1", Content: "DataHandler"}}
	require.NoError(t, idx.Index(context.Background(), docs))
	require.NoError(t, idx.Delete(context.Background(), []string{"1"}))

	results, err := idx.Search(context.Background(), "Handler", 10)
	require.NoError(t, err)
	assert.Empty(t, results)

	ids, err := idx.AllIDs()
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestSQLiteTrigramIndex_Search_EmptyQueryReturnsNoResults(t *testing.T) {
	idx, err := NewSQLiteTrigramIndex("")
	require.NoError(t, err)
	defer func() { _ = idx.Close() }()

	results, err := idx.Search(context.Background(), "", 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSQLiteTrigramIndex_Stats_ReportsDocumentCount(t *testing.T) {
	idx, err := NewSQLiteTrigramIndex("")
	require.NoError(t, err)
	defer func() { _ = idx.Close() }()

	docs := []*Document{
		{ID: "1", Content: "DataHandler"},
		{ID: "2", Content: "RequestProcessor"},
	}
	require.NoError(t, idx.Index(context.Background(), docs))

	stats := idx.Stats()
	assert.Equal(t, 2, stats.DocumentCount)
}
