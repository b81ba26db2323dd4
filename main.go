package main

import (
	"flag"
	"os"
	"time"

	"house-tracker/capture"
	"house-tracker/catalog"
	"house-tracker/classify"
	"house-tracker/config"
	"house-tracker/fetch"
	"house-tracker/models"
	"house-tracker/normalize"
	"house-tracker/scraper"
	"house-tracker/schedule"
	"house-tracker/services"
	"house-tracker/storage"
	"house-tracker/utils"
	"house-tracker/web"
)

func main() {
	fetchFlag := flag.Bool("fetch", false, "download fresh captures before processing")
	serveFlag := flag.Bool("serve", false, "serve the catalog over HTTP instead of running the pipeline")
	daemonFlag := flag.Bool("daemon", false, "keep running, re-fetching and re-processing on the daily schedule")
	flag.Parse()

	logger := utils.NewLogger()
	cfg := config.Load()

	logger.Info("=== Faroese house tracker starting ===")

	sources, err := config.LoadSources(cfg.SourcesPath)
	if err != nil {
		logger.Error("Loading sources config: %v", err)
		os.Exit(1)
	}

	categories := classify.NewCategoryClassifier(sources.CategoryRules())
	agents := classify.NewAgentClassifier(sources.AgentRules())

	captureStore, err := capture.NewStore(cfg.CaptureDir, logger)
	if err != nil {
		logger.Error("Opening capture store: %v", err)
		os.Exit(1)
	}

	registry := scraper.NewRegistry(logger, agents)

	if *serveFlag {
		server := web.NewServer(logger, cfg.CatalogPath)
		if err := server.ListenAndServe(cfg.ServeAddr); err != nil {
			logger.Error("Web server: %v", err)
			os.Exit(1)
		}
		return
	}

	runOnce := func() {
		if *fetchFlag || *daemonFlag {
			fetcher := fetch.New(logger, captureStore, cfg)
			saved := fetcher.FetchAll(sources.Sources)
			logger.Info("Fetched %d captures", saved)
		}

		if err := runPipeline(logger, cfg, captureStore, registry, categories, agents); err != nil {
			logger.Error("Pipeline run failed: %v", err)
			if !*daemonFlag {
				os.Exit(1)
			}
		}
	}

	runOnce()

	if !*daemonFlag {
		return
	}

	for {
		next := schedule.NextRun(time.Now(), cfg.ScheduleHour)
		logger.Info("Next run scheduled for %s", next.Format("2006-01-02 15:04"))
		time.Sleep(time.Until(next))
		runOnce()
	}
}

// runPipeline executes one batch run: load the catalog, extract every
// capture, reconcile in capture order, persist the snapshot and report.
// Extraction fans out over a worker pool; reconciliation stays on this
// goroutine because merges into the same id are order-dependent.
func runPipeline(
	logger *utils.Logger,
	cfg *config.Config,
	captureStore *capture.Store,
	registry *scraper.Registry,
	categories *classify.CategoryClassifier,
	agents *classify.AgentClassifier,
) error {
	entries, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return err
	}
	logger.Info("Loaded catalog with %d properties", len(entries))

	captures, err := captureStore.List()
	if err != nil {
		return err
	}
	if len(captures) == 0 {
		logger.Warn("No captures found in %s — nothing to do (run with -fetch?)", cfg.CaptureDir)
		return nil
	}
	logger.Info("Processing %d captures", len(captures))

	batches := make([][]models.RawProperty, len(captures))
	pool := utils.NewWorkerPool(cfg.MaxConcurrency)
	for i := range captures {
		i := i
		pool.Submit(func() {
			batches[i] = registry.ExtractCapture(captures[i])
		})
	}
	pool.Wait()

	var changeLog storage.ChangeLogger
	changeLog, err = storage.NewChangeLogWriter(cfg.ChangeLog)
	if err != nil {
		return err
	}
	defer changeLog.Close()

	totalEvents := 0
	for i, batch := range batches {
		if len(batch) == 0 {
			continue
		}

		props := normalize.ToProperties(batch, categories, agents)

		var events []models.ChangeEvent
		entries, events = catalog.Merge(entries, props)

		for _, ev := range events {
			logger.Info("[merge] %s", ev.String())
		}
		if err := changeLog.Log(events); err != nil {
			logger.Warn("Writing change log: %v", err)
		}

		logger.Debug("Capture %s: %d records, %d changes",
			captures[i].Path, len(props), len(events))
		totalEvents += len(events)
	}

	if err := catalog.Save(cfg.CatalogPath, entries); err != nil {
		return err
	}
	logger.Info("Wrote %d properties to %s (%d changes this run)",
		len(entries), cfg.CatalogPath, totalEvents)

	if cfg.PostgresMirror {
		var mirror storage.CatalogMirror
		mirror, err = storage.NewPostgresWriter(cfg.DSN())
		if err != nil {
			logger.Error("Postgres mirror unavailable: %v", err)
		} else {
			defer mirror.Close()
			if err := mirror.Write(entries); err != nil {
				logger.Error("Postgres mirror write failed: %v", err)
			} else {
				logger.Info("Catalog mirrored to PostgreSQL (table: properties)")
			}
		}
	}

	reportSvc := services.NewReportService(logger)
	reportSvc.Print(reportSvc.Generate(entries))
	return nil
}
