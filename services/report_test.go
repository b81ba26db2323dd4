package services

import (
	"testing"

	"house-tracker/models"
	"house-tracker/utils"
)

func TestGenerate(t *testing.T) {
	props := []models.Property{
		{ID: "a", Agent: models.AgentBetri, Category: models.Sethus, Address: "A", Price: 1000000, LatestOffer: 900000},
		{ID: "b", Agent: models.AgentBetri, Category: models.Ibud, Address: "B", Price: 3000000},
		{ID: "c", Agent: models.AgentSkyn, Category: models.Sethus, Address: "C", Price: 0},
	}

	r := NewReportService(utils.NewLogger()).Generate(props)

	if r.TotalProperties != 3 {
		t.Errorf("TotalProperties = %d; want 3", r.TotalProperties)
	}
	if r.WithOffers != 1 {
		t.Errorf("WithOffers = %d; want 1", r.WithOffers)
	}
	// The unpriced entry is counted but excluded from the aggregates.
	if r.AveragePrice != 2000000 {
		t.Errorf("AveragePrice = %f; want 2000000", r.AveragePrice)
	}
	if r.MinPrice != 1000000 || r.MaxPrice != 3000000 {
		t.Errorf("Min/Max = %d/%d; want 1000000/3000000", r.MinPrice, r.MaxPrice)
	}
	if r.MostExpensive == nil || r.MostExpensive.ID != "b" {
		t.Errorf("MostExpensive = %+v; want entry b", r.MostExpensive)
	}
	if r.ByAgent[models.AgentBetri] != 2 || r.ByAgent[models.AgentSkyn] != 1 {
		t.Errorf("ByAgent = %v", r.ByAgent)
	}
	if r.ByCategory[models.Sethus] != 2 || r.ByCategory[models.Ibud] != 1 {
		t.Errorf("ByCategory = %v", r.ByCategory)
	}
}

func TestGenerateEmptyCatalog(t *testing.T) {
	r := NewReportService(utils.NewLogger()).Generate(nil)

	if r.TotalProperties != 0 || r.AveragePrice != 0 || r.MostExpensive != nil {
		t.Errorf("empty catalog report = %+v", r)
	}
}
