package protokoll

import (
	"bytes"
	"fmt"
	"strings"

	"wegverwalter/model"
	"wegverwalter/render"
	"wegverwalter/zaehlertypen"
)

func quoteAll(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// BuildCSV baut das Ableseprotokoll als CSV (Semikolon, UTF-8 mit BOM,
// CRLF), damit deutsche Excel-Installationen die Datei direkt öffnen.
func BuildCSV(gruppen []model.ZaehlerGruppe, von, bis string) []byte {
	var buf bytes.Buffer
	buf.Write([]byte{0xEF, 0xBB, 0xBF}) // UTF-8 BOM

	header := []string{"Einheit", "Zähler", "Zählernummer", "Typ", "Standort", "Startwert", "Endwert", "Verbrauch", "Zeitraum von", "Zeitraum bis", "Notiz"}
	buf.WriteString(strings.Join(header, ";") + "\r\n")

	for _, gruppe := range gruppen {
		for _, zeile := range gruppe.Zeilen {
			notiz := ""
			if zeile.Notiz != nil {
				notiz = *zeile.Notiz
			}
			record := []string{
				quoteAll(gruppe.Label),
				quoteAll(zeile.Bezeichnung),
				quoteAll(zeile.Zaehlernummer),
				quoteAll(zaehlertypen.Name(zeile.Zaehlertyp)),
				quoteAll(zeile.Standort),
				csvWert(zeile.Startwert),
				csvWert(zeile.Endwert),
				csvWert(zeile.Verbrauch),
				von,
				bis,
				quoteAll(notiz),
			}
			buf.WriteString(strings.Join(record, ";") + "\r\n")
		}
	}
	return buf.Bytes()
}

// csvWert formatiert Werte mit Dezimalkomma; leere Werte bleiben leer.
func csvWert(v *float64) string {
	if v == nil {
		return ""
	}
	return strings.ReplaceAll(render.FormatWert(v), ".", ",")
}

// Dateiname baut den Exportdateinamen für ein Protokoll.
func Dateiname(immobilie string, von, bis, ext string) string {
	safe := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, immobilie)
	return fmt.Sprintf("Ableseprotokoll_%s_%s_%s.%s", safe, von, bis, ext)
}
