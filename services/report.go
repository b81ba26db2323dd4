package services

import (
	"fmt"

	"house-tracker/models"
	"house-tracker/utils"
)

// CatalogReport holds the summary computed over the catalog after a run.
type CatalogReport struct {
	TotalProperties int
	WithOffers      int
	AveragePrice    float64
	MinPrice        int
	MaxPrice        int
	MostExpensive   *models.Property
	ByAgent         map[models.Agent]int
	ByCategory      map[models.PropertyCategory]int
}

// ReportService computes and prints run summaries for operators.
type ReportService struct {
	logger *utils.Logger
}

// NewReportService creates a ReportService with the given logger.
func NewReportService(logger *utils.Logger) *ReportService {
	return &ReportService{logger: logger}
}

// Generate computes the summary over the full catalog. Entries with a zero
// price are counted but excluded from the price aggregates — zero means
// "unparseable", not "free".
func (s *ReportService) Generate(props []models.Property) *CatalogReport {
	report := &CatalogReport{
		TotalProperties: len(props),
		ByAgent:         make(map[models.Agent]int),
		ByCategory:      make(map[models.PropertyCategory]int),
	}

	var sum, priced int
	for i := range props {
		p := &props[i]
		report.ByAgent[p.Agent]++
		report.ByCategory[p.Category]++

		if p.LatestOffer > 0 {
			report.WithOffers++
		}
		if p.Price <= 0 {
			continue
		}

		sum += p.Price
		priced++
		if report.MinPrice == 0 || p.Price < report.MinPrice {
			report.MinPrice = p.Price
		}
		if p.Price > report.MaxPrice {
			report.MaxPrice = p.Price
			report.MostExpensive = p
		}
	}

	if priced > 0 {
		report.AveragePrice = float64(sum) / float64(priced)
	}
	return report
}

// Print writes the report through the logger.
func (s *ReportService) Print(r *CatalogReport) {
	s.logger.Info("=== Catalog summary ===")
	s.logger.Info("Properties tracked: %d (%d with active offers)", r.TotalProperties, r.WithOffers)

	for agent, n := range r.ByAgent {
		s.logger.Info("  %-10s %d", agent, n)
	}
	for category, n := range r.ByCategory {
		s.logger.Info("  %-15s %d", category, n)
	}

	if r.AveragePrice > 0 {
		s.logger.Info("Prices: avg %.0f | min %d | max %d", r.AveragePrice, r.MinPrice, r.MaxPrice)
	}
	if r.MostExpensive != nil {
		s.logger.Info("Most expensive: %s (%s)", r.MostExpensive.Address,
			fmt.Sprintf("%d kr", r.MostExpensive.Price))
	}
}
