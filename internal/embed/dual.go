package embed

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Domain selects which embedding space(s) DualEmbedder.Generate produces.
type Domain string

const (
	DomainText   Domain = "TEXT"
	DomainCode   Domain = "CODE"
	DomainHybrid Domain = "HYBRID"
)

// DualVector holds the embeddings Generate produced. Exactly the keys their
// domain calls for are set: TEXT/CODE populate one, HYBRID populates both.
// A DualVector with both fields nil is never returned without an error.
type DualVector struct {
	Text []float32
	Code []float32
}

// DualEmbedder produces independent TEXT and CODE domain embeddings for the
// same input text, per the Dual Embedding Service contract: given
// (text, domain), return a deterministic fixed-dimension vector per
// requested domain. Empty input is valid and yields a zero vector of the
// correct dimension, not an error.
type DualEmbedder interface {
	// Generate embeds text in the requested domain(s).
	Generate(ctx context.Context, text string, domain Domain) (*DualVector, error)

	// Dimensions returns the dimension shared by both domains.
	Dimensions() int

	// ModelName returns the model identifier.
	ModelName() string

	// Available reports whether the embedder is ready to serve requests.
	Available(ctx context.Context) bool

	Close() error
}

// StaticDualEmbedder is the Mock mode of the Dual Embedding Service:
// deterministic hash-based pseudo-embeddings, identical input always
// producing identical output, with no model to load. TEXT and CODE vectors
// for the same input are independent - each domain salts the token/n-gram
// hash so the two 768-dim vectors do not collide - approximating the real
// service's two distinct models without requiring either to exist.
type StaticDualEmbedder struct {
	mu     sync.RWMutex
	closed bool
}

// NewStaticDualEmbedder creates a new mock dual embedder.
func NewStaticDualEmbedder() *StaticDualEmbedder {
	return &StaticDualEmbedder{}
}

// Generate implements DualEmbedder.
func (e *StaticDualEmbedder) Generate(ctx context.Context, text string, domain Domain) (*DualVector, error) {
	e.mu.RLock()
	if e.closed {
		e.mu.RUnlock()
		return nil, fmt.Errorf("embedder is closed")
	}
	e.mu.RUnlock()

	switch domain {
	case DomainText:
		v, err := e.embedDomain(text, DomainText)
		if err != nil {
			return nil, err
		}
		return &DualVector{Text: v}, nil
	case DomainCode:
		v, err := e.embedDomain(text, DomainCode)
		if err != nil {
			return nil, err
		}
		return &DualVector{Code: v}, nil
	case DomainHybrid:
		textVec, err := e.embedDomain(text, DomainText)
		if err != nil {
			return nil, err
		}
		codeVec, err := e.embedDomain(text, DomainCode)
		if err != nil {
			return nil, err
		}
		return &DualVector{Text: textVec, Code: codeVec}, nil
	default:
		return nil, fmt.Errorf("unknown embedding domain %q", domain)
	}
}

func (e *StaticDualEmbedder) embedDomain(text string, domain Domain) ([]float32, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return make([]float32, Static768Dimensions), nil
	}

	vector := make([]float32, Static768Dimensions)

	tokens := filterStopWords(tokenize(trimmed))
	for _, token := range tokens {
		salted := string(domain) + ":" + token
		index := hashToIndex(salted, Static768Dimensions)
		vector[index] += tokenWeight
	}

	normalized := normalizeForNgrams(trimmed)
	ngrams := extractNgrams(normalized, ngramSize)
	for _, ngram := range ngrams {
		salted := string(domain) + ":" + ngram
		index := hashToIndex(salted, Static768Dimensions)
		vector[index] += ngramWeight
	}

	return normalizeVector(vector), nil
}

// Dimensions implements DualEmbedder.
func (e *StaticDualEmbedder) Dimensions() int { return Static768Dimensions }

// ModelName implements DualEmbedder.
func (e *StaticDualEmbedder) ModelName() string { return "static-dual-768" }

// Available implements DualEmbedder.
func (e *StaticDualEmbedder) Available(_ context.Context) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return !e.closed
}

// Close implements DualEmbedder.
func (e *StaticDualEmbedder) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	return nil
}

// CompositeDualEmbedder is the Real mode of the Dual Embedding Service: it
// composes two independently-loaded single-domain Embedders (one per
// domain, each lazily loaded exactly once under its own
// double-checked-lock, per model.go/lock.go) rather than implementing model
// loading itself. If one domain's model failed to load, Generate still
// serves the other domain and reports the missing one as degraded.
type CompositeDualEmbedder struct {
	text Embedder
	code Embedder
}

// NewCompositeDualEmbedder wraps a TEXT-domain and a CODE-domain embedder.
// Either may be nil, in which case that domain always reports unavailable.
func NewCompositeDualEmbedder(text, code Embedder) *CompositeDualEmbedder {
	return &CompositeDualEmbedder{text: text, code: code}
}

// Generate implements DualEmbedder.
func (e *CompositeDualEmbedder) Generate(ctx context.Context, text string, domain Domain) (*DualVector, error) {
	var out DualVector

	if domain == DomainText || domain == DomainHybrid {
		if e.text == nil {
			return nil, fmt.Errorf("text domain unavailable: no model loaded")
		}
		v, err := e.text.Embed(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("text domain embed failed: %w", err)
		}
		out.Text = v
	}
	if domain == DomainCode || domain == DomainHybrid {
		if e.code == nil {
			return nil, fmt.Errorf("code domain unavailable: no model loaded")
		}
		v, err := e.code.Embed(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("code domain embed failed: %w", err)
		}
		out.Code = v
	}
	if out.Text == nil && out.Code == nil {
		return nil, fmt.Errorf("unknown embedding domain %q", domain)
	}
	return &out, nil
}

// Dimensions implements DualEmbedder, reporting the TEXT model's dimension
// (the two models are configured to share a dimension in every supported
// deployment; a mismatch is caught at startup, not here).
func (e *CompositeDualEmbedder) Dimensions() int {
	if e.text != nil {
		return e.text.Dimensions()
	}
	if e.code != nil {
		return e.code.Dimensions()
	}
	return 0
}

// ModelName implements DualEmbedder.
func (e *CompositeDualEmbedder) ModelName() string {
	textName, codeName := "none", "none"
	if e.text != nil {
		textName = e.text.ModelName()
	}
	if e.code != nil {
		codeName = e.code.ModelName()
	}
	return fmt.Sprintf("text=%s,code=%s", textName, codeName)
}

// Available implements DualEmbedder: true if at least one domain is ready,
// since a partial result is still a valid response per the Dual Embedding
// Service's degrade-and-continue contract.
func (e *CompositeDualEmbedder) Available(ctx context.Context) bool {
	return (e.text != nil && e.text.Available(ctx)) || (e.code != nil && e.code.Available(ctx))
}

// Close implements DualEmbedder, closing both underlying embedders and
// returning the first error encountered, if any.
func (e *CompositeDualEmbedder) Close() error {
	var firstErr error
	if e.text != nil {
		if err := e.text.Close(); err != nil {
			firstErr = err
		}
	}
	if e.code != nil {
		if err := e.code.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// NewDualEmbedder mirrors NewEmbedder's provider selection, but produces a
// DualEmbedder: ProviderStatic (or any provider whose model fails to load)
// yields StaticDualEmbedder, and anything else loads one model per domain
// and composes them via CompositeDualEmbedder. textModel/codeModel may name
// the same model when a deployment has only one embedding model available.
func NewDualEmbedder(ctx context.Context, provider ProviderType, textModel, codeModel string) (DualEmbedder, error) {
	if provider == ProviderStatic {
		return NewStaticDualEmbedder(), nil
	}

	textEmbedder, err := NewEmbedder(ctx, provider, textModel)
	if err != nil {
		return NewStaticDualEmbedder(), nil
	}
	codeEmbedder, err := NewEmbedder(ctx, provider, codeModel)
	if err != nil {
		_ = textEmbedder.Close()
		return NewStaticDualEmbedder(), nil
	}

	return NewCompositeDualEmbedder(textEmbedder, codeEmbedder), nil
}
