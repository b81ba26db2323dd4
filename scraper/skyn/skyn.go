// Package skyn extracts listings from skyn.fo. The listing grid is a
// wrapper whose class contains the word "ognlist"; every child card has
// the class word "ogn". Field classes are messier than Betri's: most are
// matched by substring, a few only as an exact class token, and for the
// icon rows (size, rooms, floors, build year) the value lives in the
// matched node's parent element.
package skyn

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"house-tracker/models"
	"house-tracker/utils"
)

// imageBase makes the relative getimage links absolute.
const imageBase = "https://www.skyn.fo"

// imageMarker identifies listing photos among the card's images.
const imageMarker = "/admin/public/getimage"

// FieldRule describes how one class pattern fills one raw field.
type FieldRule struct {
	// Class is the pattern looked for in the element's class attribute.
	Class string
	// Exact requires Class to be a whole class token, not a substring.
	Exact bool
	// FromParent takes the value from the parent element's text, used for
	// the icon rows where the matched span is just the icon.
	FromParent bool
	Set        func(*models.RawProperty, string)
}

// DefaultFieldRules covers the classes skyn.fo uses today. Order matters:
// the first matching rule for an element wins.
func DefaultFieldRules() []FieldRule {
	return []FieldRule{
		{Class: "ogn_headline", Set: func(p *models.RawProperty, v string) { p.Address = v }},
		{Class: "ogn_adress", Set: func(p *models.RawProperty, v string) { p.City = v }},
		{Class: "prop-size", FromParent: true, Set: func(p *models.RawProperty, v string) { p.LivingArea = v }},
		{Class: "prop-ground", FromParent: true, Set: func(p *models.RawProperty, v string) { p.LandArea = v }},
		{Class: "prop-bedrooms", FromParent: true, Set: func(p *models.RawProperty, v string) { p.Rooms = v }},
		{Class: "prop-floors", FromParent: true, Set: func(p *models.RawProperty, v string) { p.Floors = v }},
		{Class: "prop-buildyear", FromParent: true, Set: func(p *models.RawProperty, v string) { p.BuiltYear = v }},
		{Class: "latestoffer", Exact: true, Set: func(p *models.RawProperty, v string) { p.LatestOffer = v }},
		{Class: "validto", Set: func(p *models.RawProperty, v string) { p.ValidUntil = v }},
		{Class: "listprice", Exact: true, Set: func(p *models.RawProperty, v string) { p.Price = v }},
	}
}

// Extractor pulls raw records out of Skyn listing pages.
type Extractor struct {
	logger *utils.Logger
	rules  []FieldRule
}

// New creates an Extractor with the default field rules.
func New(logger *utils.Logger) *Extractor {
	return &Extractor{logger: logger, rules: DefaultFieldRules()}
}

// NewWithRules creates an Extractor with caller-supplied field rules.
func NewWithRules(logger *utils.Logger, rules []FieldRule) *Extractor {
	return &Extractor{logger: logger, rules: rules}
}

// Extract parses the page and returns one raw record per listing card.
// Pages without the ognlist wrapper yield an empty batch.
func (e *Extractor) Extract(content, category string) []models.RawProperty {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		e.logger.Warn("[skyn] Unparseable page content: %v", err)
		return nil
	}

	var raws []models.RawProperty
	doc.Find(".ognlist").First().ChildrenFiltered(".ogn").Each(func(_ int, card *goquery.Selection) {
		raw := models.RawProperty{
			Agent:    string(models.AgentSkyn),
			Category: category,
		}

		card.Find("[class]").Each(func(_ int, s *goquery.Selection) {
			class, _ := s.Attr("class")
			for _, rule := range e.rules {
				if !rule.matches(class) {
					continue
				}
				target := s
				if rule.FromParent {
					target = s.Parent()
				}
				rule.Set(&raw, strings.TrimSpace(target.Text()))
				break
			}
		})

		card.Find("img").EachWithBreak(func(_ int, img *goquery.Selection) bool {
			src, ok := img.Attr("src")
			if !ok || !strings.Contains(src, imageMarker) {
				return true
			}
			raw.ImageURL = imageBase + src
			return false
		})

		raws = append(raws, raw)
	})
	return raws
}

func (r FieldRule) matches(class string) bool {
	if r.Exact {
		for _, token := range strings.Fields(class) {
			if token == r.Class {
				return true
			}
		}
		return false
	}
	return strings.Contains(class, r.Class)
}
