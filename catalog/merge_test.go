package catalog

import (
	"reflect"
	"testing"

	"house-tracker/models"
)

func sampleProperty() models.Property {
	return models.Property{
		ID:             "marknagilsvegur50tórshavn100",
		Agent:          models.AgentBetri,
		Category:       models.Sethus,
		Address:        "Marknagilsvegur 50",
		City:           "Tórshavn",
		PostalArea:     "100",
		Price:          3995000,
		PreviousPrices: []int{},
		LatestOffer:    3100000,
		ValidUntil:     "2025-01-01",
		BuiltYear:      "1999",
		LivingAreaM2:   160,
		LandAreaM2:     450,
		Rooms:          4,
		Floors:         2,
		ImageURL:       "https://www.betriheim.fo/img/1.jpg",
	}
}

func TestMergeAddsNewProperty(t *testing.T) {
	cand := sampleProperty()

	updated, events := Merge(nil, []models.Property{cand})

	if len(updated) != 1 {
		t.Fatalf("catalog size = %d; want 1", len(updated))
	}
	if len(events) != 1 || events[0].Kind != models.ChangeAdded {
		t.Fatalf("events = %v; want a single added event", events)
	}
	if len(updated[0].PreviousPrices) != 0 {
		t.Errorf("new property history = %v; want empty", updated[0].PreviousPrices)
	}
	if updated[0].LatestOffer != 3100000 {
		t.Errorf("LatestOffer = %d; want 3100000", updated[0].LatestOffer)
	}
}

func TestMergeIsIdempotent(t *testing.T) {
	batch := []models.Property{sampleProperty()}

	first, _ := Merge(nil, batch)
	second, events := Merge(first, batch)

	if len(events) != 0 {
		t.Errorf("re-merging the same batch produced %d events; want 0", len(events))
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("re-merging the same batch changed the catalog:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestMergeOfferChangeAppendsHistory(t *testing.T) {
	existing := sampleProperty()
	existing.LatestOffer = 100
	existing.Price = 100

	cand := sampleProperty()
	cand.LatestOffer = 120
	cand.Price = 120

	updated, events := Merge([]models.Property{existing}, []models.Property{cand})

	got := updated[0]
	if !reflect.DeepEqual(got.PreviousPrices, []int{100}) {
		t.Errorf("PreviousPrices = %v; want [100]", got.PreviousPrices)
	}
	if got.LatestOffer != 120 || got.Price != 120 {
		t.Errorf("LatestOffer/Price = %d/%d; want 120/120", got.LatestOffer, got.Price)
	}
	if len(events) != 1 || events[0].Kind != models.ChangePrice {
		t.Fatalf("events = %v; want a single price event", events)
	}
	if events[0].Old != "100" || events[0].New != "120" {
		t.Errorf("price event %q -> %q; want 100 -> 120", events[0].Old, events[0].New)
	}
}

func TestMergeOfferDropStillRecorded(t *testing.T) {
	existing := sampleProperty()
	existing.LatestOffer = 3100000

	cand := sampleProperty()
	cand.LatestOffer = 2900000

	updated, events := Merge([]models.Property{existing}, []models.Property{cand})

	if !reflect.DeepEqual(updated[0].PreviousPrices, []int{3100000}) {
		t.Errorf("PreviousPrices = %v; want [3100000]", updated[0].PreviousPrices)
	}
	if len(events) != 1 || events[0].Kind != models.ChangePrice {
		t.Errorf("a lowered offer must still produce a price event, got %v", events)
	}
}

func TestMergePriceChangeWithoutOfferChange(t *testing.T) {
	existing := sampleProperty()
	cand := sampleProperty()
	cand.Price = 4200000

	updated, events := Merge([]models.Property{existing}, []models.Property{cand})

	if updated[0].Price != 4200000 {
		t.Errorf("Price = %d; want 4200000", updated[0].Price)
	}
	if len(updated[0].PreviousPrices) != 0 {
		t.Errorf("asking-price change must not touch history, got %v", updated[0].PreviousPrices)
	}
	if len(events) != 1 || events[0].Kind != models.ChangePrice {
		t.Errorf("events = %v; want a single price event", events)
	}
}

func TestMergeKeepsFirstSeenStructuralFields(t *testing.T) {
	existing := sampleProperty()

	cand := sampleProperty()
	cand.Rooms = 99
	cand.Floors = 9
	cand.LivingAreaM2 = 1
	cand.LandAreaM2 = 1
	cand.BuiltYear = "2024"
	cand.ValidUntil = "2030-12-31"
	cand.ImageURL = "https://www.betriheim.fo/img/2.jpg"

	updated, events := Merge([]models.Property{existing}, []models.Property{cand})

	got := updated[0]
	if got.Rooms != 4 || got.Floors != 2 || got.LivingAreaM2 != 160 || got.LandAreaM2 != 450 {
		t.Errorf("structural fields were overwritten: %+v", got)
	}
	if got.BuiltYear != "1999" || got.ValidUntil != "2025-01-01" {
		t.Errorf("first-seen fields were overwritten: %+v", got)
	}
	if got.ImageURL != "https://www.betriheim.fo/img/2.jpg" {
		t.Errorf("ImageURL = %q; image is volatile and should update", got.ImageURL)
	}
	if len(events) != 1 || events[0].Kind != models.ChangeImage {
		t.Errorf("events = %v; want a single image event", events)
	}
}

func TestMergeCategoryAndAgentEvents(t *testing.T) {
	existing := sampleProperty()

	cand := sampleProperty()
	cand.Category = models.Ibud
	cand.Agent = models.AgentSkyn

	updated, events := Merge([]models.Property{existing}, []models.Property{cand})

	if updated[0].Category != models.Ibud || updated[0].Agent != models.AgentSkyn {
		t.Errorf("category/agent not updated: %+v", updated[0])
	}

	kinds := map[models.ChangeKind]bool{}
	for _, ev := range events {
		kinds[ev.Kind] = true
	}
	if !kinds[models.ChangeCategory] || !kinds[models.ChangeAgent] {
		t.Errorf("events = %v; want category and agent events", events)
	}
}

func TestMergeNeverDeletes(t *testing.T) {
	a := sampleProperty()
	b := sampleProperty()
	b.ID = "otherid"
	b.Address = "Heygsvegur 12"

	// b is absent from the incoming batch; it must survive.
	updated, _ := Merge([]models.Property{a, b}, []models.Property{a})

	if len(updated) != 2 {
		t.Fatalf("catalog size = %d; want 2 (absent entries are kept)", len(updated))
	}
}

func TestMergeDoesNotMutateInputs(t *testing.T) {
	existing := []models.Property{sampleProperty()}
	cand := sampleProperty()
	cand.LatestOffer = 9999999

	Merge(existing, []models.Property{cand})

	if existing[0].LatestOffer != 3100000 {
		t.Errorf("input slice was mutated: %+v", existing[0])
	}
}
