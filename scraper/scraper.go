// Package scraper dispatches captured page content to the extractor for
// the site that produced it. The known sources are an explicit enumeration
// — each entry pairs an agent with its extractor — so adding a site means
// registering one more entry, not sprinkling URL checks through the
// pipeline.
package scraper

import (
	"house-tracker/capture"
	"house-tracker/classify"
	"house-tracker/models"
	"house-tracker/scraper/betri"
	"house-tracker/scraper/meklarin"
	"house-tracker/scraper/skyn"
	"house-tracker/utils"
)

// Extractor turns raw page content fetched under a category label into raw
// records. Extractors are pure: they never mutate the content, and
// unusable content yields an empty batch, not an error.
type Extractor interface {
	Extract(content, category string) []models.RawProperty
}

// Source is one known listing site and the extractor that understands it.
type Source struct {
	Agent     models.Agent
	Extractor Extractor
}

// Registry resolves a capture to its source and runs the extraction.
type Registry struct {
	logger  *utils.Logger
	agents  *classify.AgentClassifier
	sources map[models.Agent]Source
}

// NewRegistry builds the production source set.
func NewRegistry(logger *utils.Logger, agents *classify.AgentClassifier) *Registry {
	r := &Registry{
		logger:  logger,
		agents:  agents,
		sources: make(map[models.Agent]Source),
	}
	r.Register(Source{Agent: models.AgentBetri, Extractor: betri.New(logger)})
	r.Register(Source{Agent: models.AgentMeklarin, Extractor: meklarin.New(logger)})
	r.Register(Source{Agent: models.AgentSkyn, Extractor: skyn.New(logger)})
	return r
}

// Register adds or replaces the source for an agent.
func (r *Registry) Register(s Source) {
	r.sources[s.Agent] = s
}

// ExtractCapture classifies the capture's URL, runs the matching extractor
// and stamps every record with the capture's source URL. Captures from
// unknown sources or with empty content produce zero records.
func (r *Registry) ExtractCapture(c capture.Capture) []models.RawProperty {
	agent := r.agents.Classify(c.URL)
	src, ok := r.sources[agent]
	if !ok {
		r.logger.Warn("[scraper] No extractor for capture %s — skipping", c.URL)
		return nil
	}
	if c.HTML == "" {
		r.logger.Warn("[scraper] Empty capture for %s — skipping", c.URL)
		return nil
	}

	raws := src.Extractor.Extract(c.HTML, c.Category)
	for i := range raws {
		raws[i].SourceSite = c.URL
	}
	return raws
}
