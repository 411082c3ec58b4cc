package model

// Zählertypen. Werden als Text in der Spalte zaehler.zaehlertyp gespeichert.
const (
	ZaehlertypStrom    = "strom"
	ZaehlertypWasser   = "wasser"
	ZaehlertypHeizung  = "heizung"
	ZaehlertypSonstige = "sonstige"
)

// Immobilie ist eine verwaltete WEG-Liegenschaft.
type Immobilie struct {
	ID          int64  `db:"id" json:"id"`
	Bezeichnung string `db:"bezeichnung" json:"bezeichnung"`
	Strasse     string `db:"strasse" json:"strasse"`
	PLZ         string `db:"plz" json:"plz"`
	Ort         string `db:"ort" json:"ort"`
}

// Einheit ist eine Wohn- oder Gewerbeeinheit einer Immobilie.
type Einheit struct {
	ID          int64  `db:"id" json:"id"`
	ImmobilieID int64  `db:"immobilie_id" json:"immobilieId"`
	Bezeichnung string `db:"bezeichnung" json:"bezeichnung"`
	Lage        string `db:"lage" json:"lage"`
	Eigentuemer string `db:"eigentuemer" json:"eigentuemer"`
}

// Zaehler ist ein Messgerät einer Immobilie. EinheitID ist NULL für
// Hauszähler (Allgemeinstrom, Kaltwasser Keller usw.).
type Zaehler struct {
	ID            int64  `db:"id" json:"id"`
	ImmobilieID   int64  `db:"immobilie_id" json:"immobilieId"`
	EinheitID     *int64 `db:"einheit_id" json:"einheitId"`
	Bezeichnung   string `db:"bezeichnung" json:"bezeichnung"`
	Zaehlernummer string `db:"zaehlernummer" json:"zaehlernummer"`
	Zaehlertyp    string `db:"zaehlertyp" json:"zaehlertyp"`
	Standort      string `db:"standort" json:"standort"`
}

// ZaehlerInput sind die änderbaren Metadaten eines Zählers. Die Identität
// (ID, Immobilie) wird beim Anlegen vergeben und danach nie geändert.
type ZaehlerInput struct {
	ImmobilieID   int64  `json:"immobilieId"`
	EinheitID     *int64 `json:"einheitId"`
	Bezeichnung   string `json:"bezeichnung"`
	Zaehlernummer string `json:"zaehlernummer"`
	Zaehlertyp    string `json:"zaehlertyp"`
	Standort      string `json:"standort"`
}
