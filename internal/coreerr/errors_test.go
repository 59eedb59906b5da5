package coreerr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TS01: Error wrapping preserves original error
func TestCoreError_Unwrap_PreservesOriginalError(t *testing.T) {
	// Given: an original error
	originalErr := errors.New("original error")

	// When: wrapping with CoreError
	coreErr := New(ErrCodeParseFailed, "could not parse file.go", originalErr)

	// Then: unwrapping returns original error
	require.NotNil(t, coreErr)
	assert.Equal(t, originalErr, errors.Unwrap(coreErr))
	assert.True(t, errors.Is(coreErr, originalErr))
}

func TestCoreError_Error_ReturnsFormattedMessage(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		message  string
		expected string
	}{
		{
			name:     "invalid input error",
			code:     ErrCodeInvalidInput,
			message:  "query cannot be empty",
			expected: "[ERR_101_INVALID_INPUT] query cannot be empty",
		},
		{
			name:     "parse error",
			code:     ErrCodeParseFailed,
			message:  "file.go could not be parsed",
			expected: "[ERR_201_PARSE_FAILED] file.go could not be parsed",
		},
		{
			name:     "timeout error",
			code:     ErrCodeTimeout,
			message:  "embedding request timed out",
			expected: "[ERR_401_TIMEOUT] embedding request timed out",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code, tt.message, nil)
			assert.Equal(t, tt.expected, err.Error())
		})
	}
}

func TestCoreError_Is_MatchesByCode(t *testing.T) {
	// Given: two errors with same code
	err1 := New(ErrCodeNotFound, "chunk A not found", nil)
	err2 := New(ErrCodeNotFound, "chunk B not found", nil)

	// Then: they match by code
	assert.True(t, errors.Is(err1, err2))
}

func TestCoreError_Is_DoesNotMatchDifferentCodes(t *testing.T) {
	// Given: two errors with different codes
	err1 := New(ErrCodeNotFound, "chunk not found", nil)
	err2 := New(ErrCodeConflict, "chunk id conflict", nil)

	// Then: they don't match
	assert.False(t, errors.Is(err1, err2))
}

func TestCoreError_WithDetails_AddsContext(t *testing.T) {
	// Given: a base error
	err := New(ErrCodeNotFound, "chunk not found", nil)

	// When: adding details
	err = err.WithDetail("chunk_id", "abc123")
	err = err.WithDetail("file_path", "/foo/bar.go")

	// Then: details are available
	assert.Equal(t, "abc123", err.Details["chunk_id"])
	assert.Equal(t, "/foo/bar.go", err.Details["file_path"])
}

func TestCoreError_WithSuggestion_AddsSuggestion(t *testing.T) {
	// Given: a timeout error
	err := New(ErrCodeTimeout, "embedding request timed out", nil)

	// When: adding suggestion
	err = err.WithSuggestion("retry with a smaller batch")

	// Then: suggestion is available
	assert.Equal(t, "retry with a smaller batch", err.Suggestion)
}

func TestCoreError_CategoryFromCode(t *testing.T) {
	tests := []struct {
		code         string
		wantCategory Category
	}{
		{ErrCodeInvalidInput, CategoryInvalidInput},
		{ErrCodeDimensionMismatch, CategoryInvalidInput},
		{ErrCodeParseFailed, CategoryParse},
		{ErrCodeUnsupportedLang, CategoryParse},
		{ErrCodeResolutionAmbiguous, CategoryResolution},
		{ErrCodeCyclicGraph, CategoryResolution},
		{ErrCodeTimeout, CategoryTimeout},
		{ErrCodeCircuitOpen, CategoryCircuit},
		{ErrCodeConflict, CategoryConflict},
		{ErrCodeNotFound, CategoryNotFound},
		{ErrCodeInternal, CategoryInternal},
		{ErrCodeEmbeddingFailed, CategoryInternal},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			err := New(tt.code, "test message", nil)
			assert.Equal(t, tt.wantCategory, err.Category)
		})
	}
}

func TestCoreError_SeverityFromCode(t *testing.T) {
	tests := []struct {
		code         string
		wantSeverity Severity
	}{
		{ErrCodeCorruptIndex, SeverityFatal},
		{ErrCodeInvariantViolated, SeverityFatal},
		{ErrCodeNotFound, SeverityError},
		{ErrCodeTimeout, SeverityWarning}, // Retryable, so warning
		{ErrCodeCircuitOpen, SeverityWarning},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			err := New(tt.code, "test message", nil)
			assert.Equal(t, tt.wantSeverity, err.Severity)
		})
	}
}

func TestCoreError_RetryableFromCode(t *testing.T) {
	tests := []struct {
		code          string
		wantRetryable bool
	}{
		{ErrCodeTimeout, true},
		{ErrCodeCircuitOpen, true},
		{ErrCodeNotFound, false},
		{ErrCodeInvalidInput, false},
		{ErrCodeCorruptIndex, false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			err := New(tt.code, "test message", nil)
			assert.Equal(t, tt.wantRetryable, err.Retryable)
		})
	}
}

func TestWrap_CreatesCoreErrorFromError(t *testing.T) {
	// Given: a standard error
	originalErr := errors.New("something went wrong")

	// When: wrapping with a code
	coreErr := Wrap(ErrCodeInternal, originalErr)

	// Then: creates proper CoreError
	require.NotNil(t, coreErr)
	assert.Equal(t, ErrCodeInternal, coreErr.Code)
	assert.Equal(t, "something went wrong", coreErr.Message)
	assert.Equal(t, originalErr, coreErr.Cause)
}

func TestInvalidInput_CreatesInvalidInputCategoryError(t *testing.T) {
	err := InvalidInput("query cannot be empty", nil)

	assert.Equal(t, CategoryInvalidInput, err.Category)
	assert.Contains(t, err.Code, "INVALID_INPUT")
}

func TestParseFailed_CreatesParseCategoryError(t *testing.T) {
	err := ParseFailed("cannot parse file.go", nil)

	assert.Equal(t, CategoryParse, err.Category)
}

func TestTimeoutError_CreatesRetryableError(t *testing.T) {
	err := TimeoutError("embedding call timed out", nil)

	assert.Equal(t, CategoryTimeout, err.Category)
	assert.True(t, err.Retryable)
}

func TestResolutionAmbiguous_CreatesResolutionCategoryError(t *testing.T) {
	err := ResolutionAmbiguous("multiple candidates for symbol", nil)

	assert.Equal(t, CategoryResolution, err.Category)
}

func TestIsRetryable_ChecksRetryableFlag(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "retryable CoreError",
			err:      New(ErrCodeTimeout, "timeout", nil),
			expected: true,
		},
		{
			name:     "non-retryable CoreError",
			err:      New(ErrCodeNotFound, "not found", nil),
			expected: false,
		},
		{
			name:     "wrapped retryable error",
			err:      Wrap(ErrCodeCircuitOpen, errors.New("wrapped")),
			expected: true,
		},
		{
			name:     "standard error",
			err:      errors.New("standard error"),
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsRetryable(tt.err))
		})
	}
}

func TestIsFatal_ChecksFatalSeverity(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "fatal error",
			err:      New(ErrCodeCorruptIndex, "index corrupt", nil),
			expected: true,
		},
		{
			name:     "invariant violation",
			err:      New(ErrCodeInvariantViolated, "symbol containment violated", nil),
			expected: true,
		},
		{
			name:     "non-fatal error",
			err:      New(ErrCodeNotFound, "not found", nil),
			expected: false,
		},
		{
			name:     "standard error",
			err:      errors.New("standard error"),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsFatal(tt.err))
		})
	}
}
