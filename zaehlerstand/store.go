package zaehlerstand

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"wegverwalter/database"
	"wegverwalter/model"
)

// SpeichereAblesung validiert und schreibt eine Ablesung als Upsert unter
// (Zähler, Zeitraum). Validierungsfehler kommen als OK=false zurück und
// schreiben nichts; nur echte Speicherfehler werden als error gemeldet,
// damit der Handler beide Fälle getrennt behandeln kann.
func SpeichereAblesung(db *sqlx.DB, in model.AblesungInput) (model.SpeichernErgebnis, error) {
	if fehler := validiere(in); fehler != "" {
		return model.SpeichernErgebnis{OK: false, Fehler: fehler}, nil
	}

	tx, err := db.Beginx()
	if err != nil {
		return model.SpeichernErgebnis{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	zaehler, err := database.GetZaehlerByID(tx, in.ZaehlerID)
	if err != nil {
		return model.SpeichernErgebnis{}, err
	}
	if zaehler == nil {
		return model.SpeichernErgebnis{OK: false, Fehler: fmt.Sprintf("Zähler %d ist nicht bekannt.", in.ZaehlerID)}, nil
	}

	bestehend, err := database.GetAblesungForZeitraum(tx, in.ZaehlerID, in.ZeitraumVon, in.ZeitraumBis)
	if err != nil {
		return model.SpeichernErgebnis{}, err
	}

	// Verbrauchsregel: beide Werte vorhanden => neu berechnen. Genau einer
	// vorhanden => früher gespeicherten Verbrauch behalten (laufende
	// Bearbeitung löscht nichts). Beide leer => Verbrauch explizit leeren.
	var verbrauch *float64
	if v, ok := BerechneVerbrauch(in.Startwert, in.Endwert); ok {
		verbrauch = &v
	} else if (in.Startwert != nil || in.Endwert != nil) && bestehend != nil {
		verbrauch = bestehend.Verbrauch
	}

	a := model.Ablesung{
		ZaehlerID:   in.ZaehlerID,
		ZeitraumVon: in.ZeitraumVon,
		ZeitraumBis: in.ZeitraumBis,
		Startwert:   in.Startwert,
		Endwert:     in.Endwert,
		Verbrauch:   verbrauch,
		Notiz:       in.Notiz,
	}
	if err := database.UpsertAblesungInTx(tx, a); err != nil {
		return model.SpeichernErgebnis{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.SpeichernErgebnis{}, fmt.Errorf("failed to commit ablesung: %w", err)
	}

	ergebnis := model.SpeichernErgebnis{OK: true, Verbrauch: verbrauch}
	if verbrauch != nil && *verbrauch < 0 {
		ergebnis.Hinweis = "Negativer Verbrauch – Zählerwechsel oder Zeitraum prüfen."
	}
	return ergebnis, nil
}

// validiere prüft die Payload, bevor irgendetwas angefasst wird.
func validiere(in model.AblesungInput) string {
	if in.ZaehlerID <= 0 {
		return "Es wurde kein Zähler angegeben."
	}
	von, err := time.Parse("2006-01-02", in.ZeitraumVon)
	if err != nil {
		return fmt.Sprintf("Zeitraumbeginn '%s' ist kein gültiges Datum.", in.ZeitraumVon)
	}
	bis, err := time.Parse("2006-01-02", in.ZeitraumBis)
	if err != nil {
		return fmt.Sprintf("Zeitraumende '%s' ist kein gültiges Datum.", in.ZeitraumBis)
	}
	if von.After(bis) {
		return "Das Zeitraumende liegt vor dem Zeitraumbeginn."
	}
	// Zählerstände sind monotone Zählwerte und können nicht negativ sein.
	// Negativer *Verbrauch* bleibt dagegen zulässig (Zählerwechsel).
	if in.Startwert != nil && (!istEndlich(*in.Startwert) || *in.Startwert < 0) {
		return "Der Startwert muss eine Zahl größer oder gleich 0 sein."
	}
	if in.Endwert != nil && (!istEndlich(*in.Endwert) || *in.Endwert < 0) {
		return "Der Endwert muss eine Zahl größer oder gleich 0 sein."
	}
	return ""
}
