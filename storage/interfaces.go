package storage

import "house-tracker/models"

// CatalogMirror is the interface any secondary catalog sink must satisfy.
// The JSON snapshot stays the source of truth; mirrors get a full replace
// each run.
type CatalogMirror interface {
	Write(props []models.Property) error
	Close() error
}

// ChangeLogger persists reconciliation events for operators.
type ChangeLogger interface {
	Log(events []models.ChangeEvent) error
	Close() error
}
