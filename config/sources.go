package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"house-tracker/classify"
	"house-tracker/models"
)

// Endpoint is one URL to fetch for a source, with the category label the
// capture is stored under. Betri exposes one filter endpoint per category;
// Meklarin and Skyn serve everything from one page.
type Endpoint struct {
	URL      string `yaml:"url"`
	Category string `yaml:"category"`
}

// SourceDef describes one listing site in the sources file.
type SourceDef struct {
	Agent     string     `yaml:"agent"`
	Endpoints []Endpoint `yaml:"endpoints"`
}

// CategoryDef is one entry of the ordered category synonym table.
type CategoryDef struct {
	Category string   `yaml:"category"`
	Markers  []string `yaml:"markers"`
}

// AgentDef maps a URL substring to an agent name.
type AgentDef struct {
	Agent   string `yaml:"agent"`
	Pattern string `yaml:"pattern"`
}

// Sources is the data-driven part of the pipeline: which pages to fetch
// and the synonym tables the classifiers are built from. New sites and new
// category spellings are edits to this file, not to matching code.
type Sources struct {
	Sources    []SourceDef   `yaml:"sources"`
	Categories []CategoryDef `yaml:"categories"`
	Agents     []AgentDef    `yaml:"agents"`
}

// LoadSources reads the YAML sources file. A missing file falls back to
// the built-in defaults so the pipeline can run without any setup.
func LoadSources(path string) (*Sources, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSources(), nil
		}
		return nil, fmt.Errorf("config: read sources %q: %w", path, err)
	}

	var s Sources
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("config: parse sources %q: %w", path, err)
	}

	defaults := DefaultSources()
	if len(s.Categories) == 0 {
		s.Categories = defaults.Categories
	}
	if len(s.Agents) == 0 {
		s.Agents = defaults.Agents
	}
	return &s, nil
}

// CategoryRules converts the synonym table for the category classifier,
// preserving order.
func (s *Sources) CategoryRules() []classify.CategoryRule {
	rules := make([]classify.CategoryRule, 0, len(s.Categories))
	for _, def := range s.Categories {
		rules = append(rules, classify.CategoryRule{
			Category: models.PropertyCategory(def.Category),
			Markers:  def.Markers,
		})
	}
	return rules
}

// AgentRules converts the pattern table for the agent classifier,
// preserving order.
func (s *Sources) AgentRules() []classify.AgentRule {
	rules := make([]classify.AgentRule, 0, len(s.Agents))
	for _, def := range s.Agents {
		rules = append(rules, classify.AgentRule{
			Agent:   models.Agent(def.Agent),
			Pattern: def.Pattern,
		})
	}
	return rules
}

// DefaultSources returns the production Faroese site set.
func DefaultSources() *Sources {
	betriFilter := "https://www.betriheim.fo/api/properties/filter?area=&type=%s&skip=0,0"

	var categories []CategoryDef
	for _, rule := range classify.DefaultCategoryRules() {
		categories = append(categories, CategoryDef{
			Category: string(rule.Category),
			Markers:  rule.Markers,
		})
	}

	var agents []AgentDef
	for _, rule := range classify.DefaultAgentRules() {
		agents = append(agents, AgentDef{
			Agent:   string(rule.Agent),
			Pattern: rule.Pattern,
		})
	}

	return &Sources{
		Sources: []SourceDef{
			{
				Agent: string(models.AgentBetri),
				Endpoints: []Endpoint{
					{URL: fmt.Sprintf(betriFilter, "Seth%C3%BAs"), Category: string(models.Sethus)},
					{URL: fmt.Sprintf(betriFilter, "Tv%C3%ADh%C3%BAs"), Category: string(models.Tvihus)},
					{URL: fmt.Sprintf(betriFilter, "Ra%C3%B0h%C3%BAs%20/%20Randarh%C3%BAs"), Category: string(models.Radhus)},
					{URL: fmt.Sprintf(betriFilter, "%C3%8Db%C3%BA%C3%B0"), Category: string(models.Ibud)},
					{URL: fmt.Sprintf(betriFilter, "Summarh%C3%BAs%20/%20Fr%C3%ADt%C3%AD%C3%B0arh%C3%BAs"), Category: string(models.Summarhus)},
					{URL: fmt.Sprintf(betriFilter, "Vinnubygningur"), Category: string(models.Vinnubygningur)},
					{URL: fmt.Sprintf(betriFilter, "Grundstykki"), Category: string(models.Grundstykki)},
					{URL: fmt.Sprintf(betriFilter, "J%C3%B8r%C3%B0"), Category: string(models.Jord)},
					{URL: fmt.Sprintf(betriFilter, "Neyst"), Category: string(models.Neyst)},
				},
			},
			{
				Agent: string(models.AgentMeklarin),
				Endpoints: []Endpoint{
					{URL: "https://www.meklarin.fo/"},
				},
			},
			{
				Agent: string(models.AgentSkyn),
				Endpoints: []Endpoint{
					{URL: "https://www.skyn.fo/ognir-til-soelu"},
				},
			},
		},
		Categories: categories,
		Agents:     agents,
	}
}
