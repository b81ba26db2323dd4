// Package classify derives catalog identity and maps free-text labels onto
// the closed category and agent sets. Both classifiers are table-driven:
// the synonym tables are handed in at construction so a new source means
// new data, not new matching code.
package classify

import (
	"strings"
	"unicode"

	"house-tracker/models"
)

// DeriveID builds the canonical catalog key for a listing from its
// location fields. The concatenation is lowercased and reduced to letters
// and digits (Faroese letters included), so incidental punctuation,
// whitespace and casing differences between runs or sites do not split one
// property into several entries. Two distinct units sharing the same
// address text will collide; identity cannot tell them apart.
func DeriveID(address, city, postalArea string) string {
	var b strings.Builder
	for _, r := range address + city + postalArea {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// CategoryRule maps substring markers to one category. Markers are matched
// against lowercased input.
type CategoryRule struct {
	Category models.PropertyCategory
	Markers  []string
}

// CategoryClassifier resolves free-text category labels, first matching
// rule wins.
type CategoryClassifier struct {
	rules []CategoryRule
}

// NewCategoryClassifier builds a classifier from an ordered rule table.
func NewCategoryClassifier(rules []CategoryRule) *CategoryClassifier {
	return &CategoryClassifier{rules: rules}
}

// Classify lowercases the input and returns the category of the first rule
// with a marker contained in it, or CategoryUnknown when nothing matches.
func (c *CategoryClassifier) Classify(text string) models.PropertyCategory {
	lower := strings.ToLower(text)
	for _, rule := range c.rules {
		for _, marker := range rule.Markers {
			if strings.Contains(lower, marker) {
				return rule.Category
			}
		}
	}
	return models.CategoryUnknown
}

// AgentRule maps a URL substring to one agent.
type AgentRule struct {
	Agent   models.Agent
	Pattern string
}

// AgentClassifier resolves a capture's source URL to the agent that
// published it, first matching rule wins.
type AgentClassifier struct {
	rules []AgentRule
}

// NewAgentClassifier builds a classifier from an ordered rule table.
func NewAgentClassifier(rules []AgentRule) *AgentClassifier {
	return &AgentClassifier{rules: rules}
}

// Classify returns the agent whose pattern occurs in the URL, or
// AgentUnknown when none does.
func (c *AgentClassifier) Classify(sourceURL string) models.Agent {
	lower := strings.ToLower(sourceURL)
	for _, rule := range c.rules {
		if rule.Pattern != "" && strings.Contains(lower, rule.Pattern) {
			return rule.Agent
		}
	}
	return models.AgentUnknown
}

// DefaultCategoryRules covers the category spellings seen across the three
// sites: the canonical names Betri captures are labelled with, and the
// Faroese free-text variants Meklarin embeds in its "types" field.
func DefaultCategoryRules() []CategoryRule {
	return []CategoryRule{
		{models.Sethus, []string{"sethús", "sethus"}},
		{models.Tvihus, []string{"tvíhús", "tvihus"}},
		{models.Radhus, []string{"raðhús", "radhus", "randarhús", "randarhus"}},
		{models.Ibud, []string{"íbúð", "ibud"}},
		{models.Summarhus, []string{"summarhús", "summarhus", "frítíðarhús", "fritidarhus"}},
		{models.Vinnubygningur, []string{"vinnubygningur"}},
		{models.Grundstykki, []string{"grundstykki"}},
		{models.Jord, []string{"jørð", "jord"}},
		{models.Neyst, []string{"neyst"}},
	}
}

// DefaultAgentRules matches the production site domains.
func DefaultAgentRules() []AgentRule {
	return []AgentRule{
		{models.AgentBetri, "betriheim.fo"},
		{models.AgentMeklarin, "meklarin.fo"},
		{models.AgentSkyn, "skyn.fo"},
	}
}
