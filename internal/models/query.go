package models

import (
	"strings"
	"sync"

	"craft-assistant/internal/resolvers/locale"

	"github.com/google/uuid"
)

// Query is a single customer question. It lives for one resolution.
type Query struct {
	ID   string
	Text string

	localeOnce sync.Once
	locale     locale.Locale
}

// NewQuery trims text and assigns a fresh ID. An empty Text means the
// query must be rejected.
func NewQuery(text string) *Query {
	return &Query{
		ID:   uuid.NewString(),
		Text: strings.TrimSpace(text),
	}
}

func (q *Query) IsEmpty() bool {
	return q.Text == ""
}

// Locale is computed on first use and cached for the rest of the resolution.
func (q *Query) Locale() locale.Locale {
	q.localeOnce.Do(func() {
		q.locale = locale.Detect(q.Text)
	})
	return q.locale
}
