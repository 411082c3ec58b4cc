package database

import (
	"fmt"

	"wegverwalter/model"
)

func InsertProtokollExport(dbtx DBTX, e model.ProtokollExport) error {
	const q = `
		INSERT INTO protokoll_exporte (id, immobilie_id, zeitraum_von, zeitraum_bis, format, dateiname, erstellt_am)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := dbtx.Exec(q, e.ID, e.ImmobilieID, e.ZeitraumVon, e.ZeitraumBis, e.Format, e.Dateiname, e.ErstelltAm)
	if err != nil {
		return fmt.Errorf("failed to insert protokoll export %s: %w", e.ID, err)
	}
	return nil
}

func GetProtokollExporte(dbtx DBTX, immobilieID int64) ([]model.ProtokollExport, error) {
	var exporte []model.ProtokollExport
	const q = `
		SELECT id, immobilie_id, zeitraum_von, zeitraum_bis, format, dateiname, erstellt_am
		FROM protokoll_exporte
		WHERE immobilie_id = ?
		ORDER BY erstellt_am DESC`
	if err := dbtx.Select(&exporte, q, immobilieID); err != nil {
		return nil, fmt.Errorf("failed to get protokoll exporte for immobilie %d: %w", immobilieID, err)
	}
	return exporte, nil
}
