// Package normalize turns the loosely-typed text an extractor produces into
// the typed values the catalog stores. Parsing here is deliberately
// best-effort: malformed numeric text becomes 0, never an error. The sites
// format prices with locale punctuation ("3.995.000 kr.") and wrap some
// values in stray quotes, so the coercion discards everything but digits.
package normalize

import (
	"strconv"
	"strings"

	"house-tracker/classify"
	"house-tracker/models"
)

// StripQuotes removes a single layer of enclosing double quotes, if present.
func StripQuotes(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

// DigitsToInt extracts the decimal digits from s and parses them as one
// integer, discarding thousands separators, currency symbols and whitespace.
// "3.995.000" parses to 3995000. Text without digits parses to 0.
func DigitsToInt(s string) int {
	var b strings.Builder
	for _, r := range StripQuotes(s) {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0
	}
	n, err := strconv.Atoi(b.String())
	if err != nil {
		// Only possible on overflow; treat like any other unparseable input.
		return 0
	}
	return n
}

// IntList applies DigitsToInt to each element, preserving order.
func IntList(values []string) []int {
	if len(values) == 0 {
		return nil
	}
	out := make([]int, 0, len(values))
	for _, v := range values {
		out = append(out, DigitsToInt(v))
	}
	return out
}

// ScalarString renders a decoded embedded-JSON scalar as text. Each variant
// has its own rendering: strings pass through, numbers drop a trailing
// ".0", booleans become "true"/"false" and null becomes the empty string.
// Objects and arrays have no text form and render empty.
func ScalarString(v interface{}) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case bool:
		return strconv.FormatBool(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return ""
	}
}

// ToProperty converts one raw record into a typed catalog entry, deriving
// its identity and classifying its category and agent with the supplied
// classifiers.
func ToProperty(raw models.RawProperty, categories *classify.CategoryClassifier, agents *classify.AgentClassifier) models.Property {
	address := StripQuotes(raw.Address)
	city := StripQuotes(raw.City)
	postal := StripQuotes(raw.PostalArea)

	return models.Property{
		ID:             classify.DeriveID(address, city, postal),
		Agent:          agents.Classify(raw.SourceSite),
		Category:       categories.Classify(raw.Category),
		Address:        address,
		City:           city,
		PostalArea:     postal,
		Price:          DigitsToInt(raw.Price),
		PreviousPrices: IntList(raw.PreviousPrices),
		LatestOffer:    DigitsToInt(raw.LatestOffer),
		ValidUntil:     strings.TrimSpace(StripQuotes(raw.ValidUntil)),
		BuiltYear:      strings.TrimSpace(StripQuotes(raw.BuiltYear)),
		LivingAreaM2:   DigitsToInt(raw.LivingArea),
		LandAreaM2:     DigitsToInt(raw.LandArea),
		Rooms:          DigitsToInt(raw.Rooms),
		Floors:         DigitsToInt(raw.Floors),
		ImageURL:       strings.TrimSpace(StripQuotes(raw.ImageURL)),
	}
}

// ToProperties maps a whole extractor batch, preserving order.
func ToProperties(raws []models.RawProperty, categories *classify.CategoryClassifier, agents *classify.AgentClassifier) []models.Property {
	props := make([]models.Property, 0, len(raws))
	for _, raw := range raws {
		props = append(props, ToProperty(raw, categories, agents))
	}
	return props
}
