package models

// ContentRecord is one brand page returned by the content store.
type ContentRecord struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Content string `json:"content"`
}

// RankedSentence is a content sentence scored against a query.
type RankedSentence struct {
	Text     string
	Score    int
	Position int
}
