package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New("test error")
	require.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestWrap(t *testing.T) {
	original := New("original")
	wrapped := Wrap(original, "wrapped")

	assert.Contains(t, wrapped.Error(), "wrapped")
	assert.Contains(t, wrapped.Error(), "original")
	assert.True(t, Is(wrapped, original))
}

func TestReject(t *testing.T) {
	err := Rejectf("template arguments count mismatch: %d != %d", 1, 2)
	assert.True(t, IsCandidateRejection(err))
	assert.Equal(t, "template arguments count mismatch: 1 != 2", err.Error())

	// The mark survives further wrapping
	wrapped := Wrap(err, "QVector<T>::append")
	assert.True(t, IsCandidateRejection(wrapped))
	assert.False(t, IsNamingError(wrapped))
	assert.False(t, IsFatal(wrapped))
}

func TestNamingError(t *testing.T) {
	err := NewNamingError("constructor %s needs an allocation place", "QRect")
	assert.True(t, IsNamingError(err))
	assert.False(t, IsCandidateRejection(err))
	assert.False(t, IsFatal(err))
}

func TestIsFatal(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		fatal bool
	}{
		{"nil", nil, false},
		{"plain", New("plain"), false},
		{"assertion", AssertionFailedf("index %d out of range", 3), true},
		{"wrapped assertion", Wrap(AssertionFailedf("broken"), "substitution"), true},
		{"pipeline config", NewPipelineConfigError("cycle: %s", "a -> b -> a"), true},
		{"rejection", Rejectf("nope"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.fatal, IsFatal(tt.err))
		})
	}
}

func TestStandardErrorCompatibility(t *testing.T) {
	stdErr := fmt.Errorf("standard error")
	wrapped := Wrap(stdErr, "wrapped")
	assert.True(t, Is(wrapped, stdErr))

	notFound := WrapNotFound(stdErr, "library moqt_core")
	assert.True(t, IsNotFoundError(notFound))
	assert.Contains(t, notFound.Error(), "library moqt_core")
}
