// Package meklarin extracts listings from meklarin.fo, which ships its
// whole inventory as an embedded JSON array: a <script> block assigns
// `var ALL_PROPERTIES = JSON.parse('[ ... ]')`. The extractor finds that
// script, recovers the array literal with a quote-aware bracket scan, and
// maps the array elements onto raw records. Field values may be strings,
// numbers, booleans or null, so everything goes through the scalar
// rendering in normalize before landing in the all-text raw record.
package meklarin

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"house-tracker/models"
	"house-tracker/normalize"
	"house-tracker/utils"
)

// marker identifies the script block carrying the inventory.
const marker = "var ALL_PROPERTIES"

// parseCall precedes the single-quoted JSON array literal.
const parseCall = "JSON.parse('"

// Extractor pulls raw records out of Meklarin pages.
type Extractor struct {
	logger *utils.Logger
}

// New creates a Meklarin extractor.
func New(logger *utils.Logger) *Extractor {
	return &Extractor{logger: logger}
}

// listing mirrors one element of the embedded array. Values are kept
// untyped; the sites flip fields between string and number freely.
type listing map[string]interface{}

func (l listing) text(key string) string {
	return normalize.ScalarString(l[key])
}

// Extract returns one raw record per element of the embedded inventory
// array. Pages without the marker script, or with an array that does not
// parse, yield an empty batch.
func (e *Extractor) Extract(content, category string) []models.RawProperty {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		e.logger.Warn("[meklarin] Unparseable page content: %v", err)
		return nil
	}

	var script string
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if text := s.Text(); strings.Contains(text, marker) {
			script = text
			return false
		}
		return true
	})
	if script == "" {
		e.logger.Warn("[meklarin] No %q script found — zero records", marker)
		return nil
	}

	rawJSON := extractArrayLiteral(script)
	if rawJSON == "" {
		e.logger.Warn("[meklarin] Could not locate embedded JSON array — zero records")
		return nil
	}

	var items []listing
	if err := json.Unmarshal([]byte(rawJSON), &items); err != nil {
		e.logger.Warn("[meklarin] Embedded JSON did not parse: %v", err)
		return nil
	}

	raws := make([]models.RawProperty, 0, len(items))
	for _, item := range items {
		raw := models.RawProperty{
			ID:          item.text("ID"),
			Agent:       string(models.AgentMeklarin),
			Category:    item.text("types"),
			Address:     item.text("address"),
			HouseNumber: item.text("address"),
			City:        item.text("city"),
			PostalArea:  item.text("areas"),
			Price:       item.text("price"),
			LatestOffer: item.text("bid"),
			ValidUntil:  item.text("bid_valid_until"),
			BuiltYear:   item.text("build"),
			LivingArea:  item.text("house_area"),
			LandArea:    item.text("area_size"),
			Rooms:       item.text("bedrooms"),
			Floors:      "0",
			ImageURL:    item.text("featured_image"),
		}
		if raw.Category == "" {
			raw.Category = category
		}
		raws = append(raws, raw)
	}
	return raws
}

// extractArrayLiteral recovers the JSON array passed to JSON.parse. The
// literal sits inside a single-quoted JS string, so the scan starts at the
// first '[' after the parse call and walks brackets while skipping
// double-quoted strings and their escapes. The JS-level \' escape is
// unwound before the result is handed to the JSON decoder.
func extractArrayLiteral(script string) string {
	at := strings.Index(script, parseCall)
	if at < 0 {
		return ""
	}
	rest := script[at+len(parseCall):]

	start := strings.IndexByte(rest, '[')
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(rest); i++ {
		c := rest[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return strings.ReplaceAll(rest[start:i+1], `\'`, `'`)
			}
		}
	}
	return ""
}
