package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolver_ImportedStageBeatsGlobalWhenBothMatch(t *testing.T) {
	source := ChunkInput{
		ChunkID:  "caller",
		FilePath: "service/handler.go",
		ShortName: "Handle",
		Language: "go",
		Imports:  []string{`"myapp/widget"`},
	}
	chunks := []ChunkInput{
		source,
		{ChunkID: "decoy", FilePath: "unrelated/helper.go", ShortName: "Render", Language: "go"},
		{ChunkID: "target", FilePath: "widget/render.go", ShortName: "Render", Language: "go"},
	}

	r := newResolver(chunks)
	target, strategy, ok, ambiguous := r.resolve(source, "Render")

	require.True(t, ok)
	assert.False(t, ambiguous)
	assert.Equal(t, ResolutionImported, strategy)
	assert.Equal(t, "target", target.ChunkID)
}

func TestResolver_LocalBeatsImportedAndGlobal(t *testing.T) {
	source := ChunkInput{
		ChunkID:  "caller",
		FilePath: "widget/handler.go",
		ShortName: "Handle",
		Language: "go",
		Imports:  []string{`"myapp/widget"`},
	}
	chunks := []ChunkInput{
		source,
		{ChunkID: "local", FilePath: "widget/handler.go", ShortName: "Render", Language: "go"},
		{ChunkID: "imported", FilePath: "widget/render.go", ShortName: "Render", Language: "go"},
	}

	r := newResolver(chunks)
	target, strategy, ok, ambiguous := r.resolve(source, "Render")

	require.True(t, ok)
	assert.False(t, ambiguous)
	assert.Equal(t, ResolutionLocal, strategy)
	assert.Equal(t, "local", target.ChunkID)
}

func TestResolver_UnresolvableCalleeReturnsNotOK(t *testing.T) {
	source := ChunkInput{ChunkID: "caller", FilePath: "a.go", ShortName: "Handle", Language: "go"}
	r := newResolver([]ChunkInput{source})

	_, _, ok, ambiguous := r.resolve(source, "nonexistentSymbol")
	assert.False(t, ok)
	assert.False(t, ambiguous)
}

func TestResolver_GlobalStageDeclinesAmbiguousMatch(t *testing.T) {
	source := ChunkInput{ChunkID: "caller", FilePath: "a.go", ShortName: "Handle", Language: "go", Calls: []string{"shared"}}
	chunks := []ChunkInput{
		source,
		{ChunkID: "b", FilePath: "b.go", ShortName: "shared", Language: "go"},
		{ChunkID: "c", FilePath: "c.go", ShortName: "shared", Language: "go"},
	}

	r := newResolver(chunks)
	_, _, ok, ambiguous := r.resolve(source, "shared")

	assert.False(t, ok)
	assert.True(t, ambiguous)
}

func TestResolver_GlobalStageResolvesUniqueMatch(t *testing.T) {
	source := ChunkInput{ChunkID: "caller", FilePath: "a.go", ShortName: "Handle", Language: "go"}
	chunks := []ChunkInput{
		source,
		{ChunkID: "b", FilePath: "b.go", ShortName: "shared", Language: "go"},
	}

	r := newResolver(chunks)
	target, strategy, ok, ambiguous := r.resolve(source, "shared")

	require.True(t, ok)
	assert.False(t, ambiguous)
	assert.Equal(t, ResolutionGlobal, strategy)
	assert.Equal(t, "b", target.ChunkID)
}
