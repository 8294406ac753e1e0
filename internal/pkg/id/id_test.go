package id

import (
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_IsValidULID(t *testing.T) {
	s := New()
	_, err := ulid.ParseStrict(s)
	require.NoError(t, err)
	assert.Len(t, s, 26)
}

func TestNew_Unique(t *testing.T) {
	assert.NotEqual(t, New(), New())
}
