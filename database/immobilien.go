package database

import (
	"fmt"

	"wegverwalter/model"
)

func GetAllImmobilien(dbtx DBTX) ([]model.Immobilie, error) {
	var immobilien []model.Immobilie
	const q = `SELECT id, bezeichnung, strasse, plz, ort FROM immobilien ORDER BY id`
	if err := dbtx.Select(&immobilien, q); err != nil {
		return nil, fmt.Errorf("failed to get immobilien: %w", err)
	}
	return immobilien, nil
}

func GetImmobilieByID(dbtx DBTX, id int64) (*model.Immobilie, error) {
	var immobilie model.Immobilie
	const q = `SELECT id, bezeichnung, strasse, plz, ort FROM immobilien WHERE id = ?`
	if err := dbtx.Get(&immobilie, q, id); err != nil {
		return nil, fmt.Errorf("failed to get immobilie %d: %w", id, err)
	}
	return &immobilie, nil
}
