// Package betri extracts listings from betriheim.fo search result pages.
// Each listing is an <article class="c-property c-card grid"> card whose
// descendant elements carry field values in their class attribute, so
// extraction is a walk over the card assigning text by class. The field
// table is plain data handed to the extractor at construction.
package betri

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"house-tracker/models"
	"house-tracker/utils"
)

// cardSelector matches one listing card.
const cardSelector = "article.c-property.c-card.grid"

// imageSelector finds the lead photo: the first <img> inside the first
// slide of the card's slider.
const imageSelector = `li.slide[data-slider-id="1"] img`

// FieldTable maps an exact class attribute value to the setter for the raw
// field that element supplies.
type FieldTable map[string]func(*models.RawProperty, string)

// DefaultFieldTable covers the classes betriheim.fo uses today.
func DefaultFieldTable() FieldTable {
	return FieldTable{
		"price":         func(p *models.RawProperty, v string) { p.Price = v },
		"latest-offer":  func(p *models.RawProperty, v string) { p.LatestOffer = v },
		"valid":         func(p *models.RawProperty, v string) { p.ValidUntil = v },
		"date":          func(p *models.RawProperty, v string) { p.BuiltYear = v },
		"building-size": func(p *models.RawProperty, v string) { p.LivingArea = v },
		"land-size":     func(p *models.RawProperty, v string) { p.LandArea = v },
		"rooms":         func(p *models.RawProperty, v string) { p.Rooms = v },
		"floors":        func(p *models.RawProperty, v string) { p.Floors = v },
		"medium":        func(p *models.RawProperty, v string) { p.Address = v },
	}
}

// Extractor pulls raw records out of Betri search result markup.
type Extractor struct {
	logger *utils.Logger
	fields FieldTable
}

// New creates an Extractor with the default field table.
func New(logger *utils.Logger) *Extractor {
	return &Extractor{logger: logger, fields: DefaultFieldTable()}
}

// NewWithFields creates an Extractor with a caller-supplied field table.
func NewWithFields(logger *utils.Logger, fields FieldTable) *Extractor {
	return &Extractor{logger: logger, fields: fields}
}

// Extract parses the page and returns one raw record per listing card.
// Content without cards — including garbage that is not markup at all —
// yields an empty batch.
func (e *Extractor) Extract(content, category string) []models.RawProperty {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		e.logger.Warn("[betri] Unparseable page content: %v", err)
		return nil
	}

	var raws []models.RawProperty
	doc.Find(cardSelector).Each(func(_ int, card *goquery.Selection) {
		raw := models.RawProperty{
			Agent:    string(models.AgentBetri),
			Category: category,
		}

		card.Find("[class]").Each(func(_ int, s *goquery.Selection) {
			class, _ := s.Attr("class")
			set, ok := e.fields[strings.TrimSpace(class)]
			if !ok {
				return
			}
			set(&raw, strings.TrimSpace(s.Text()))
		})

		if img := card.Find(imageSelector).First(); img.Length() > 0 {
			raw.ImageURL, _ = img.Attr("src")
		}

		raws = append(raws, raw)
	})
	return raws
}
