package models

import (
	"testing"

	"craft-assistant/internal/resolvers/locale"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQuery(t *testing.T) {
	q := NewQuery("  Who is the founder?\n")
	assert.Equal(t, "Who is the founder?", q.Text)
	assert.False(t, q.IsEmpty())

	_, err := uuid.Parse(q.ID)
	require.NoError(t, err)

	assert.NotEqual(t, q.ID, NewQuery("Who is the founder?").ID)
}

func TestNewQuery_Blank(t *testing.T) {
	assert.True(t, NewQuery(" \t\n").IsEmpty())
	assert.True(t, NewQuery("").IsEmpty())
}

func TestQuery_LocaleIsCached(t *testing.T) {
	q := NewQuery("नमस्ते")
	assert.Equal(t, locale.Secondary, q.Locale())

	q.Text = "hello"
	assert.Equal(t, locale.Secondary, q.Locale())
}
