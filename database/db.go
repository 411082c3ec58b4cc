package database

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// DBTX deckt *sqlx.DB und *sqlx.Tx ab, damit Abfragen wahlweise in einer
// Transaktion laufen können.
type DBTX interface {
	Get(dest interface{}, query string, args ...interface{}) error
	Select(dest interface{}, query string, args ...interface{}) error
	Exec(query string, args ...interface{}) (sql.Result, error)
}

// Open öffnet die SQLite-Datei. WAL und Busy-Timeout, ein Prozess, eine
// Verbindung; der Aufrufer besitzt das Handle und schließt es beim Ende.
func Open(path string) (*sqlx.DB, error) {
	dsn := path + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"
	db, err := sqlx.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open %s: %w", path, err)
	}
	return db, nil
}

// InitSchema wendet schema.sql an und legt Demodaten an, falls die
// Datenbank noch leer ist. Läuft vor dem ersten Request, genau einmal.
func InitSchema(db *sqlx.DB) error {
	schemaBytes, err := os.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("could not read schema.sql: %w", err)
	}
	if _, err := db.Exec(string(schemaBytes)); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM immobilien`); err != nil {
		return fmt.Errorf("failed to count immobilien: %w", err)
	}
	if n > 0 {
		return nil
	}

	log.Info().Msg("empty database, seeding demo Immobilie")
	return seedDemo(db)
}

// seedDemo legt eine Beispiel-Immobilie mit zwei Einheiten und drei
// Zählern an, damit die Oberfläche nach dem ersten Start nicht leer ist.
func seedDemo(db *sqlx.DB) (err error) {
	tx, err := db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	res, err := tx.Exec(`INSERT INTO immobilien (bezeichnung, strasse, plz, ort)
		VALUES ('WEG Musterstraße 1', 'Musterstraße 1', '50667', 'Köln')`)
	if err != nil {
		return fmt.Errorf("failed to seed immobilie: %w", err)
	}
	immobilieID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read seed immobilie id: %w", err)
	}

	einheiten := []struct {
		bezeichnung, lage, eigentuemer string
	}{
		{"Wohnung 1", "EG links", "Familie Brandt"},
		{"Wohnung 2", "1. OG rechts", "Frau Özdemir"},
	}
	einheitIDs := make([]int64, 0, len(einheiten))
	for _, e := range einheiten {
		res, err = tx.Exec(`INSERT INTO einheiten (immobilie_id, bezeichnung, lage, eigentuemer)
			VALUES (?, ?, ?, ?)`, immobilieID, e.bezeichnung, e.lage, e.eigentuemer)
		if err != nil {
			return fmt.Errorf("failed to seed einheit %s: %w", e.bezeichnung, err)
		}
		id, idErr := res.LastInsertId()
		if idErr != nil {
			return fmt.Errorf("failed to read seed einheit id: %w", idErr)
		}
		einheitIDs = append(einheitIDs, id)
	}

	zaehler := []struct {
		einheit       *int64
		bezeichnung   string
		zaehlernummer string
		typ           string
		standort      string
	}{
		{nil, "Hauszähler Strom", "1EMH0012345", "strom", "Keller, Hausanschlussraum"},
		{&einheitIDs[0], "Kaltwasser Wohnung 1", "KW-2021-001", "wasser", "Bad"},
		{&einheitIDs[1], "Kaltwasser Wohnung 2", "KW-2021-002", "wasser", "Küche"},
	}
	for _, z := range zaehler {
		_, err = tx.Exec(`INSERT INTO zaehler (immobilie_id, einheit_id, bezeichnung, zaehlernummer, zaehlertyp, standort)
			VALUES (?, ?, ?, ?, ?, ?)`,
			immobilieID, z.einheit, z.bezeichnung, z.zaehlernummer, z.typ, z.standort)
		if err != nil {
			return fmt.Errorf("failed to seed zaehler %s: %w", z.bezeichnung, err)
		}
	}
	return nil
}
