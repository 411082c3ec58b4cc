package database

import (
	"database/sql"
	"fmt"

	"wegverwalter/model"
)

// GetAblesungForZeitraum liefert die Ablesung eines Zählers für exakt den
// angegebenen Zeitraum, oder nil wenn keine existiert.
func GetAblesungForZeitraum(dbtx DBTX, zaehlerID int64, von, bis string) (*model.Ablesung, error) {
	var a model.Ablesung
	const q = `
		SELECT id, zaehler_id, zeitraum_von, zeitraum_bis, startwert, endwert, verbrauch, notiz
		FROM ablesungen
		WHERE zaehler_id = ? AND zeitraum_von = ? AND zeitraum_bis = ?`
	err := dbtx.Get(&a, q, zaehlerID, von, bis)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ablesung for zaehler %d (%s..%s): %w", zaehlerID, von, bis, err)
	}
	return &a, nil
}

// UpsertAblesungInTx schreibt eine Ablesung unter dem Schlüssel
// (zaehler_id, zeitraum_von, zeitraum_bis). Existiert die Zeile, werden
// ihre Felder überschrieben; Ablesungen werden nie implizit gelöscht.
// Der Verbrauchswert kommt fertig entschieden vom Aufrufer.
func UpsertAblesungInTx(tx DBTX, a model.Ablesung) error {
	const q = `
		INSERT INTO ablesungen (zaehler_id, zeitraum_von, zeitraum_bis, startwert, endwert, verbrauch, notiz)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(zaehler_id, zeitraum_von, zeitraum_bis) DO UPDATE SET
			startwert = excluded.startwert,
			endwert   = excluded.endwert,
			verbrauch = excluded.verbrauch,
			notiz     = excluded.notiz`
	_, err := tx.Exec(q, a.ZaehlerID, a.ZeitraumVon, a.ZeitraumBis, a.Startwert, a.Endwert, a.Verbrauch, a.Notiz)
	if err != nil {
		return fmt.Errorf("failed to upsert ablesung for zaehler %d (%s..%s): %w", a.ZaehlerID, a.ZeitraumVon, a.ZeitraumBis, err)
	}
	return nil
}

// CountAblesungenForZaehler wird von Tests und vom Stammdaten-Check
// genutzt, um Duplikate unter demselben Zeitraumschlüssel auszuschließen.
func CountAblesungenForZaehler(dbtx DBTX, zaehlerID int64) (int, error) {
	var n int
	if err := dbtx.Get(&n, `SELECT COUNT(*) FROM ablesungen WHERE zaehler_id = ?`, zaehlerID); err != nil {
		return 0, fmt.Errorf("failed to count ablesungen for zaehler %d: %w", zaehlerID, err)
	}
	return n, nil
}
