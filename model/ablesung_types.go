package model

// Ablesung ist ein Zählerstand-Paar (Start/Ende) für genau einen Zähler
// und genau einen Abrechnungszeitraum. Eindeutig über
// (zaehler_id, zeitraum_von, zeitraum_bis).
type Ablesung struct {
	ID          int64    `db:"id" json:"id"`
	ZaehlerID   int64    `db:"zaehler_id" json:"zaehlerId"`
	ZeitraumVon string   `db:"zeitraum_von" json:"zeitraumVon"`
	ZeitraumBis string   `db:"zeitraum_bis" json:"zeitraumBis"`
	Startwert   *float64 `db:"startwert" json:"startwert"`
	Endwert     *float64 `db:"endwert" json:"endwert"`
	Verbrauch   *float64 `db:"verbrauch" json:"verbrauch"`
	Notiz       string   `db:"notiz" json:"notiz"`
}

// ZaehlerstandRow ist eine Zeile aus dem LEFT JOIN Zähler × Ablesung für
// einen angefragten Zeitraum. Die Ablesungsfelder sind NULL, wenn für den
// Zeitraum noch nichts erfasst wurde. Einzige Normalisierungsstelle für
// Spaltennamen; alle Aufrufer arbeiten nur mit diesem Typ.
type ZaehlerstandRow struct {
	ZaehlerID     int64    `db:"zaehler_id" json:"zaehlerId"`
	EinheitID     *int64   `db:"einheit_id" json:"einheitId"`
	EinheitName   *string  `db:"einheit_name" json:"einheitName"`
	Bezeichnung   string   `db:"bezeichnung" json:"bezeichnung"`
	Zaehlernummer string   `db:"zaehlernummer" json:"zaehlernummer"`
	Zaehlertyp    string   `db:"zaehlertyp" json:"zaehlertyp"`
	Standort      string   `db:"standort" json:"standort"`
	Startwert     *float64 `db:"startwert" json:"startwert"`
	Endwert       *float64 `db:"endwert" json:"endwert"`
	Verbrauch     *float64 `db:"verbrauch" json:"verbrauch"`
	Notiz         *string  `db:"notiz" json:"notiz"`
}

// AblesungInput ist die Speichern-Payload aus dem Frontend.
type AblesungInput struct {
	ZaehlerID   int64    `json:"zaehlerId"`
	ZeitraumVon string   `json:"zeitraumVon"`
	ZeitraumBis string   `json:"zeitraumBis"`
	Startwert   *float64 `json:"startwert"`
	Endwert     *float64 `json:"endwert"`
	Notiz       string   `json:"notiz"`
}

// SpeichernErgebnis ist die Antwort auf einen Speichern-Aufruf.
// OK=false bedeutet Validierungsfehler (Fehler gesetzt, nichts geschrieben).
// Hinweis trägt fachliche Auffälligkeiten wie negativen Verbrauch.
type SpeichernErgebnis struct {
	OK        bool     `json:"ok"`
	Verbrauch *float64 `json:"verbrauch,omitempty"`
	Hinweis   string   `json:"hinweis,omitempty"`
	Fehler    string   `json:"fehler,omitempty"`
}

// ZaehlerGruppe ist eine Anzeigegruppe des Ableseprotokolls: alle Zähler
// einer Einheit bzw. die Hauszähler, in Registry-Reihenfolge.
type ZaehlerGruppe struct {
	Label  string            `json:"label"`
	Zeilen []ZaehlerstandRow `json:"zeilen"`
}

// ProtokollExport ist ein Eintrag im Exportverlauf.
type ProtokollExport struct {
	ID          string `db:"id" json:"id"`
	ImmobilieID int64  `db:"immobilie_id" json:"immobilieId"`
	ZeitraumVon string `db:"zeitraum_von" json:"zeitraumVon"`
	ZeitraumBis string `db:"zeitraum_bis" json:"zeitraumBis"`
	Format      string `db:"format" json:"format"`
	Dateiname   string `db:"dateiname" json:"dateiname"`
	ErstelltAm  string `db:"erstellt_am" json:"erstelltAm"`
}
