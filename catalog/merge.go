// Package catalog owns the persistent property catalog: the reconciliation
// engine that folds freshly extracted batches into it, and the JSON
// snapshot store that persists it between runs.
package catalog

import (
	"strconv"

	"house-tracker/models"
)

// Merge reconciles one normalized batch into the catalog and reports what
// changed. It is the catalog's only mutator and it never deletes: unseen
// ids are appended, known ids are updated in place. Only the volatile
// commercial fields (price, latest offer, category, agent, image) are
// overwritten on later sightings; rooms, floors, areas and the address
// fields keep their first-seen value.
//
// A history entry is appended whenever the observed latest offer differs
// from the stored one — the old offer is pushed onto PreviousPrices before
// the overwrite, so history only ever grows. Running Merge twice with the
// same batch is a no-op the second time.
//
// The inputs are not mutated; the returned slice is a fresh catalog with
// new entries appended at the end in batch order.
func Merge(existing []models.Property, incoming []models.Property) ([]models.Property, []models.ChangeEvent) {
	updated := make([]models.Property, len(existing))
	copy(updated, existing)

	index := make(map[string]int, len(updated))
	for i, p := range updated {
		index[p.ID] = i
	}

	var events []models.ChangeEvent

	for _, cand := range incoming {
		i, ok := index[cand.ID]
		if !ok {
			index[cand.ID] = len(updated)
			updated = append(updated, cand)
			events = append(events, models.ChangeEvent{
				Kind:    models.ChangeAdded,
				ID:      cand.ID,
				Address: cand.Address,
			})
			continue
		}

		entry := updated[i]

		if cand.LatestOffer != entry.LatestOffer {
			history := make([]int, 0, len(entry.PreviousPrices)+1)
			history = append(history, entry.PreviousPrices...)
			entry.PreviousPrices = append(history, entry.LatestOffer)
			events = append(events, priceEvent(entry, entry.LatestOffer, cand.LatestOffer))
			entry.LatestOffer = cand.LatestOffer
			entry.Price = cand.Price
		} else if cand.Price != entry.Price {
			events = append(events, priceEvent(entry, entry.Price, cand.Price))
			entry.Price = cand.Price
		}

		if cand.Category != entry.Category {
			events = append(events, models.ChangeEvent{
				Kind:    models.ChangeCategory,
				ID:      entry.ID,
				Address: entry.Address,
				Old:     string(entry.Category),
				New:     string(cand.Category),
			})
			entry.Category = cand.Category
		}

		if cand.Agent != entry.Agent {
			events = append(events, models.ChangeEvent{
				Kind:    models.ChangeAgent,
				ID:      entry.ID,
				Address: entry.Address,
				Old:     string(entry.Agent),
				New:     string(cand.Agent),
			})
			entry.Agent = cand.Agent
		}

		if cand.ImageURL != entry.ImageURL {
			events = append(events, models.ChangeEvent{
				Kind:    models.ChangeImage,
				ID:      entry.ID,
				Address: entry.Address,
				Old:     entry.ImageURL,
				New:     cand.ImageURL,
			})
			entry.ImageURL = cand.ImageURL
		}

		updated[i] = entry
	}

	return updated, events
}

func priceEvent(entry models.Property, oldValue, newValue int) models.ChangeEvent {
	return models.ChangeEvent{
		Kind:    models.ChangePrice,
		ID:      entry.ID,
		Address: entry.Address,
		Old:     strconv.Itoa(oldValue),
		New:     strconv.Itoa(newValue),
	}
}
