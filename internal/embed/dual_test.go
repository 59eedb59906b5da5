package embed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticDualEmbedder_HybridReturnsBothDomainsAt768Dims(t *testing.T) {
	e := NewStaticDualEmbedder()
	defer e.Close()

	v, err := e.Generate(context.Background(), "func Render(widget Widget) error", DomainHybrid)
	require.NoError(t, err)

	require.Len(t, v.Text, 768)
	require.Len(t, v.Code, 768)
}

func TestStaticDualEmbedder_TextDomainOnlyPopulatesTextKey(t *testing.T) {
	e := NewStaticDualEmbedder()
	defer e.Close()

	v, err := e.Generate(context.Background(), "renders a widget", DomainText)
	require.NoError(t, err)

	assert.NotEmpty(t, v.Text)
	assert.Nil(t, v.Code)
}

func TestStaticDualEmbedder_DeterministicSameInputSameOutput(t *testing.T) {
	e := NewStaticDualEmbedder()
	defer e.Close()

	a, err := e.Generate(context.Background(), "renders a widget", DomainHybrid)
	require.NoError(t, err)
	b, err := e.Generate(context.Background(), "renders a widget", DomainHybrid)
	require.NoError(t, err)

	assert.Equal(t, a.Text, b.Text)
	assert.Equal(t, a.Code, b.Code)
}

func TestStaticDualEmbedder_TextAndCodeVectorsAreIndependent(t *testing.T) {
	e := NewStaticDualEmbedder()
	defer e.Close()

	v, err := e.Generate(context.Background(), "renders a widget", DomainHybrid)
	require.NoError(t, err)

	assert.NotEqual(t, v.Text, v.Code)
}

func TestStaticDualEmbedder_EmptyInputYieldsZeroVector(t *testing.T) {
	e := NewStaticDualEmbedder()
	defer e.Close()

	v, err := e.Generate(context.Background(), "   ", DomainHybrid)
	require.NoError(t, err)

	for _, f := range v.Text {
		assert.Zero(t, f)
	}
	for _, f := range v.Code {
		assert.Zero(t, f)
	}
}

func TestStaticDualEmbedder_UnknownDomainIsAnError(t *testing.T) {
	e := NewStaticDualEmbedder()
	defer e.Close()

	_, err := e.Generate(context.Background(), "anything", Domain("bogus"))
	assert.Error(t, err)
}

func TestStaticDualEmbedder_ClosedEmbedderRejectsGenerate(t *testing.T) {
	e := NewStaticDualEmbedder()
	require.NoError(t, e.Close())

	_, err := e.Generate(context.Background(), "anything", DomainHybrid)
	assert.Error(t, err)
}

func TestCompositeDualEmbedder_HybridCallsBothUnderlyingEmbedders(t *testing.T) {
	e := NewCompositeDualEmbedder(NewStaticEmbedder768(), NewStaticEmbedder768())
	defer e.Close()

	v, err := e.Generate(context.Background(), "widget render", DomainHybrid)
	require.NoError(t, err)
	assert.Len(t, v.Text, 768)
	assert.Len(t, v.Code, 768)
}

func TestCompositeDualEmbedder_MissingDomainReportsUnavailable(t *testing.T) {
	e := NewCompositeDualEmbedder(NewStaticEmbedder768(), nil)
	defer e.Close()

	_, err := e.Generate(context.Background(), "widget render", DomainCode)
	assert.Error(t, err)

	v, err := e.Generate(context.Background(), "widget render", DomainText)
	require.NoError(t, err)
	assert.Len(t, v.Text, 768)
}

func TestCompositeDualEmbedder_AvailableWhenAtLeastOneDomainIsReady(t *testing.T) {
	e := NewCompositeDualEmbedder(NewStaticEmbedder768(), nil)
	defer e.Close()

	assert.True(t, e.Available(context.Background()))
}
