package protokoll

import (
	"bytes"
	"strings"
	"testing"

	"wegverwalter/model"
)

func f(v float64) *float64 { return &v }

func TestBuildCSV(t *testing.T) {
	notiz := "Zähler getauscht"
	gruppen := []model.ZaehlerGruppe{
		{
			Label: "Wohnung 1",
			Zeilen: []model.ZaehlerstandRow{
				{Bezeichnung: "Kaltwasser Bad", Zaehlernummer: "KW-001", Zaehlertyp: "wasser",
					Startwert: f(10), Endwert: f(35.5), Verbrauch: f(25.5), Notiz: &notiz},
			},
		},
		{
			Label: "Hauszähler",
			Zeilen: []model.ZaehlerstandRow{
				{Bezeichnung: "Hauszähler Strom", Zaehlertyp: "strom"},
			},
		},
	}

	data := BuildCSV(gruppen, "2024-01-01", "2024-12-31")

	if !bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}) {
		t.Error("expected UTF-8 BOM prefix")
	}

	lines := strings.Split(strings.TrimRight(string(data[3:]), "\r\n"), "\r\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "Einheit;Zähler;") {
		t.Errorf("unexpected header: %q", lines[0])
	}
	// Dezimalkomma für deutsche Excel-Installationen.
	if !strings.Contains(lines[1], ";25,50;") {
		t.Errorf("expected decimal comma verbrauch in %q", lines[1])
	}
	if !strings.Contains(lines[1], `"Wohnung 1"`) || !strings.Contains(lines[2], `"Hauszähler"`) {
		t.Error("expected group labels in rows")
	}
	// Fehlende Werte bleiben leer, nicht 0.
	if !strings.Contains(lines[2], ";;;") {
		t.Errorf("expected empty value fields for missing reading in %q", lines[2])
	}
}

func TestDateiname(t *testing.T) {
	got := Dateiname("WEG Musterstraße 1", "2024-01-01", "2024-12-31", "pdf")
	want := "Ableseprotokoll_WEG Musterstraße 1_2024-01-01_2024-12-31.pdf"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestDateiname_ErsetztSonderzeichen(t *testing.T) {
	got := Dateiname(`Haus "A"/B`, "2024-01-01", "2024-12-31", "csv")
	if strings.ContainsAny(got, `/\:*?"<>|`) {
		t.Errorf("expected unsafe characters to be replaced, got %q", got)
	}
}
