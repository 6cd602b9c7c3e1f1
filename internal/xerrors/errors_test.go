package xerrors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/docmind/docmind/internal/xerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDerivesCategoryAndSeverity(t *testing.T) {
	err := xerrors.New(xerrors.ErrCodeFSNotFound, "missing file", nil)
	assert.Equal(t, xerrors.CategoryFS, err.Category)
	assert.Equal(t, xerrors.SeverityError, err.Severity)
	assert.False(t, err.Retryable)
}

func TestStoreCorruptionIsFatal(t *testing.T) {
	err := xerrors.New(xerrors.ErrCodeStoreCorruption, "fts5 missing", nil)
	assert.True(t, xerrors.IsFatal(err))
}

func TestStoreIOIsRetryable(t *testing.T) {
	err := xerrors.StoreIO("disk busy", nil)
	assert.True(t, xerrors.IsRetryable(err))
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("boom")
	wrapped := xerrors.Wrap(xerrors.ErrCodeDecodeError, cause)
	require.NotNil(t, wrapped)
	assert.ErrorIs(t, wrapped, cause)
}

func TestWrapNilReturnsNil(t *testing.T) {
	assert.Nil(t, xerrors.Wrap(xerrors.ErrCodeInternal, nil))
}

func TestIsMatchesByCode(t *testing.T) {
	a := xerrors.New(xerrors.ErrCodeFSNotFound, "a", nil)
	b := xerrors.New(xerrors.ErrCodeFSNotFound, "different message", nil)
	assert.True(t, errors.Is(a, b))
}

func TestWithDetailChains(t *testing.T) {
	err := xerrors.New(xerrors.ErrCodeInvalidConfig, "bad", nil).
		WithDetail("field", "chunk_size").
		WithSuggestion("set chunk_size >= 1")
	assert.Equal(t, "chunk_size", err.Details["field"])
	assert.Equal(t, "set chunk_size >= 1", err.Suggestion)
}

func TestCodeExtractsFromWrappedChain(t *testing.T) {
	inner := xerrors.New(xerrors.ErrCodeFSTooLarge, "big file", nil)
	outer := fmt.Errorf("ingest failed: %w", inner)
	assert.Equal(t, xerrors.ErrCodeFSTooLarge, xerrors.Code(outer))
}
