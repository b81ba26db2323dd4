// Package fetch downloads source pages and files them into the capture
// store. It is a thin wrapper: everything interesting happens later, when
// the pipeline re-reads the captures.
package fetch

import (
	"fmt"
	"time"

	"github.com/gocolly/colly"

	"house-tracker/capture"
	"house-tracker/config"
	"house-tracker/utils"
)

// Fetcher downloads configured endpoints and saves one capture per page.
type Fetcher struct {
	logger  *utils.Logger
	store   *capture.Store
	agent   string
	timeout time.Duration
	retry   utils.RetryConfig
}

// New creates a Fetcher writing captures to store.
func New(logger *utils.Logger, store *capture.Store, cfg *config.Config) *Fetcher {
	return &Fetcher{
		logger:  logger,
		store:   store,
		agent:   cfg.UserAgent,
		timeout: time.Duration(cfg.FetchTimeoutS) * time.Second,
		retry: utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		},
	}
}

// FetchAll downloads every endpoint of every source. A failed endpoint is
// logged and skipped; the other endpoints still run. Returns how many
// captures were saved.
func (f *Fetcher) FetchAll(sources []config.SourceDef) int {
	saved := 0
	for _, src := range sources {
		for _, ep := range src.Endpoints {
			body, err := f.fetch(ep.URL)
			if err != nil {
				f.logger.Error("[fetch] %s %s: %v", src.Agent, ep.URL, err)
				continue
			}

			path, err := f.store.Save(capture.Capture{
				URL:       ep.URL,
				Category:  ep.Category,
				Timestamp: time.Now().Unix(),
				HTML:      body,
			})
			if err != nil {
				f.logger.Error("[fetch] Saving capture for %s: %v", ep.URL, err)
				continue
			}

			f.logger.Info("[fetch] Saved capture %s (%d bytes)", path, len(body))
			saved++
		}
	}
	return saved
}

func (f *Fetcher) fetch(url string) (string, error) {
	var body string

	err := f.retry.Do("fetch "+url, func() error {
		c := colly.NewCollector(colly.UserAgent(f.agent))
		c.SetRequestTimeout(f.timeout)

		var visitErr error
		c.OnResponse(func(r *colly.Response) {
			body = string(r.Body)
		})
		c.OnError(func(_ *colly.Response, err error) {
			visitErr = err
		})

		if err := c.Visit(url); err != nil {
			return err
		}
		if visitErr != nil {
			return visitErr
		}
		if body == "" {
			return fmt.Errorf("empty response body")
		}
		return nil
	})
	return body, err
}
