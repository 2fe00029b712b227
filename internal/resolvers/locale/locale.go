// Package locale picks the response language of a query from its script.
package locale

// Locale is the response language selected for a query.
type Locale string

const (
	Default   Locale = "en"
	Secondary Locale = "hi"
)

// Devanagari block.
const (
	secondaryLow  = '\u0900'
	secondaryHigh = '\u097F'
)

// Detect returns Secondary when any rune of text is Devanagari.
func Detect(text string) Locale {
	for _, r := range text {
		if r >= secondaryLow && r <= secondaryHigh {
			return Secondary
		}
	}
	return Default
}

func (l Locale) IsSecondary() bool {
	return l == Secondary
}
