package database

import (
	"fmt"

	"wegverwalter/model"
)

// GetEinheitenByImmobilie liefert die Einheiten einer Immobilie für den
// Einheitenfilter und die Gruppierung des Ableseprotokolls.
func GetEinheitenByImmobilie(dbtx DBTX, immobilieID int64) ([]model.Einheit, error) {
	var einheiten []model.Einheit
	const q = `
		SELECT id, immobilie_id, bezeichnung, lage, eigentuemer
		FROM einheiten
		WHERE immobilie_id = ?
		ORDER BY id`
	if err := dbtx.Select(&einheiten, q, immobilieID); err != nil {
		return nil, fmt.Errorf("failed to get einheiten for immobilie %d: %w", immobilieID, err)
	}
	return einheiten, nil
}

func CreateEinheit(dbtx DBTX, e model.Einheit) (int64, error) {
	const q = `
		INSERT INTO einheiten (immobilie_id, bezeichnung, lage, eigentuemer)
		VALUES (?, ?, ?, ?)`
	res, err := dbtx.Exec(q, e.ImmobilieID, e.Bezeichnung, e.Lage, e.Eigentuemer)
	if err != nil {
		return 0, fmt.Errorf("failed to create einheit %s: %w", e.Bezeichnung, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read einheit id: %w", err)
	}
	return id, nil
}
