package database

import (
	"database/sql"
	"fmt"

	"wegverwalter/model"
)

// GetZaehlerByImmobilie liefert alle Zähler einer Immobilie in
// Anlage-Reihenfolge.
func GetZaehlerByImmobilie(dbtx DBTX, immobilieID int64) ([]model.Zaehler, error) {
	var zaehler []model.Zaehler
	const q = `
		SELECT id, immobilie_id, einheit_id, bezeichnung, zaehlernummer, zaehlertyp, standort
		FROM zaehler
		WHERE immobilie_id = ?
		ORDER BY id`
	if err := dbtx.Select(&zaehler, q, immobilieID); err != nil {
		return nil, fmt.Errorf("failed to get zaehler for immobilie %d: %w", immobilieID, err)
	}
	return zaehler, nil
}

func GetZaehlerByID(dbtx DBTX, id int64) (*model.Zaehler, error) {
	var z model.Zaehler
	const q = `
		SELECT id, immobilie_id, einheit_id, bezeichnung, zaehlernummer, zaehlertyp, standort
		FROM zaehler
		WHERE id = ?`
	err := dbtx.Get(&z, q, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get zaehler %d: %w", id, err)
	}
	return &z, nil
}

func CreateZaehler(dbtx DBTX, in model.ZaehlerInput) (int64, error) {
	const q = `
		INSERT INTO zaehler (immobilie_id, einheit_id, bezeichnung, zaehlernummer, zaehlertyp, standort)
		VALUES (?, ?, ?, ?, ?, ?)`
	res, err := dbtx.Exec(q, in.ImmobilieID, in.EinheitID, in.Bezeichnung, in.Zaehlernummer, in.Zaehlertyp, in.Standort)
	if err != nil {
		return 0, fmt.Errorf("failed to create zaehler %s: %w", in.Bezeichnung, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read zaehler id: %w", err)
	}
	return id, nil
}

// UpdateZaehlerMetadaten ändert nur die Metadaten eines Zählers. ID,
// Immobilie und Einheitszuordnung bleiben unangetastet.
func UpdateZaehlerMetadaten(dbtx DBTX, id int64, in model.ZaehlerInput) error {
	const q = `
		UPDATE zaehler
		SET bezeichnung = ?, zaehlernummer = ?, zaehlertyp = ?, standort = ?
		WHERE id = ?`
	res, err := dbtx.Exec(q, in.Bezeichnung, in.Zaehlernummer, in.Zaehlertyp, in.Standort, id)
	if err != nil {
		return fmt.Errorf("failed to update zaehler %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update of zaehler %d: %w", id, err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListZaehlerstaende ist die Registry-Abfrage: eine Zeile je Zähler der
// Immobilie, per LEFT JOIN ergänzt um die Ablesung für exakt den
// angefragten Zeitraum (Felder NULL, wenn noch nichts erfasst wurde).
// Keine Seiteneffekte; Reihenfolge ist die Anlage-Reihenfolge der Zähler.
func ListZaehlerstaende(dbtx DBTX, immobilieID int64, von, bis string) ([]model.ZaehlerstandRow, error) {
	var rows []model.ZaehlerstandRow
	const q = `
		SELECT
			z.id            AS zaehler_id,
			z.einheit_id    AS einheit_id,
			e.bezeichnung   AS einheit_name,
			z.bezeichnung   AS bezeichnung,
			z.zaehlernummer AS zaehlernummer,
			z.zaehlertyp    AS zaehlertyp,
			z.standort      AS standort,
			a.startwert     AS startwert,
			a.endwert       AS endwert,
			a.verbrauch     AS verbrauch,
			a.notiz         AS notiz
		FROM zaehler z
		LEFT JOIN einheiten e ON e.id = z.einheit_id
		LEFT JOIN ablesungen a
			ON a.zaehler_id = z.id
			AND a.zeitraum_von = ?
			AND a.zeitraum_bis = ?
		WHERE z.immobilie_id = ?
		ORDER BY z.id`
	if err := dbtx.Select(&rows, q, von, bis, immobilieID); err != nil {
		return nil, fmt.Errorf("failed to list zaehlerstaende for immobilie %d (%s..%s): %w", immobilieID, von, bis, err)
	}
	return rows, nil
}
