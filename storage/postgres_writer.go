package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"house-tracker/models"
)

// PostgresWriter mirrors the catalog into PostgreSQL for ad-hoc querying.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection to PostgreSQL, runs schema
// migrations, and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(dsn string) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	pw := &PostgresWriter{db: db}
	if err := pw.migrate(); err != nil {
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.Exec(`
		CREATE TABLE IF NOT EXISTS properties (
			id              TEXT PRIMARY KEY,
			agent           VARCHAR(50) NOT NULL,
			category        VARCHAR(50) NOT NULL,
			address         TEXT        NOT NULL DEFAULT '',
			city            TEXT        NOT NULL DEFAULT '',
			postal_area     TEXT        NOT NULL DEFAULT '',
			price           BIGINT      NOT NULL DEFAULT 0,
			previous_prices BIGINT[]    NOT NULL DEFAULT '{}',
			latest_offer    BIGINT      NOT NULL DEFAULT 0,
			valid_until     TEXT        NOT NULL DEFAULT '',
			built_year      TEXT        NOT NULL DEFAULT '',
			living_area_m2  INT         NOT NULL DEFAULT 0,
			land_area_m2    INT         NOT NULL DEFAULT 0,
			rooms           INT         NOT NULL DEFAULT 0,
			floors          INT         NOT NULL DEFAULT 0,
			image_url       TEXT        NOT NULL DEFAULT '',
			updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_properties_agent    ON properties(agent);
		CREATE INDEX IF NOT EXISTS idx_properties_category ON properties(category);
		CREATE INDEX IF NOT EXISTS idx_properties_city     ON properties(city);
	`)
	return err
}

// Clear deletes all mirrored rows.
func (pw *PostgresWriter) Clear() error {
	_, err := pw.db.Exec(`DELETE FROM properties`)
	if err != nil {
		return fmt.Errorf("postgres: clear: %w", err)
	}
	return nil
}

// Write replaces the mirror with the given catalog. The snapshot file is
// authoritative, so a full replace keeps the two trivially consistent.
func (pw *PostgresWriter) Write(props []models.Property) error {
	if len(props) == 0 {
		return nil
	}

	if err := pw.Clear(); err != nil {
		return err
	}

	const batchSize = 50
	for i := 0; i < len(props); i += batchSize {
		end := i + batchSize
		if end > len(props) {
			end = len(props)
		}
		if err := pw.insertBatch(props[i:end]); err != nil {
			return err
		}
	}
	return nil
}

func (pw *PostgresWriter) insertBatch(batch []models.Property) error {
	const cols = 16
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*cols)

	for idx, p := range batch {
		base := idx * cols
		placeholders := make([]string, cols)
		for j := range placeholders {
			placeholders[j] = fmt.Sprintf("$%d", base+j+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ",")+")")

		history := make(pq.Int64Array, 0, len(p.PreviousPrices))
		for _, v := range p.PreviousPrices {
			history = append(history, int64(v))
		}

		valueArgs = append(valueArgs,
			p.ID, string(p.Agent), string(p.Category), p.Address, p.City,
			p.PostalArea, p.Price, history, p.LatestOffer, p.ValidUntil,
			p.BuiltYear, p.LivingAreaM2, p.LandAreaM2, p.Rooms, p.Floors,
			p.ImageURL)
	}

	query := fmt.Sprintf(`
		INSERT INTO properties (
			id, agent, category, address, city, postal_area, price,
			previous_prices, latest_offer, valid_until, built_year,
			living_area_m2, land_area_m2, rooms, floors, image_url
		)
		VALUES %s
		ON CONFLICT (id) DO NOTHING
	`, strings.Join(valueStrings, ","))

	_, err := pw.db.Exec(query, valueArgs...)
	return err
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}
