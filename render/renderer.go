package render

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"wegverwalter/model"
	"wegverwalter/zaehlertypen"
)

// RenderProtokollTableHTML erzeugt die Tabellen des Ableseprotokolls aus
// den gruppierten Registry-Zeilen. Wird von der Protokollseite und vom
// PDF-Export gemeinsam genutzt.
func RenderProtokollTableHTML(gruppen []model.ZaehlerGruppe) string {
	var sb strings.Builder

	if len(gruppen) == 0 {
		sb.WriteString(`<p class="leer">Für diese Auswahl sind keine Zähler vorhanden.</p>`)
		return sb.String()
	}

	for _, gruppe := range gruppen {
		sb.WriteString(fmt.Sprintf(`<h2 class="gruppe">%s</h2>`, html.EscapeString(gruppe.Label)))
		sb.WriteString(`<table class="protokoll">`)
		sb.WriteString(`
    <thead>
        <tr>
            <th class="col-bezeichnung">Zähler</th>
            <th class="col-nummer">Zählernummer</th>
            <th class="col-typ">Typ</th>
            <th class="col-standort">Standort</th>
            <th class="col-wert">Startwert</th>
            <th class="col-wert">Endwert</th>
            <th class="col-wert">Verbrauch</th>
            <th class="col-notiz">Notiz</th>
        </tr>
    </thead>`)
		sb.WriteString(`<tbody>`)
		for _, zeile := range gruppe.Zeilen {
			verbrauchClass := "col-wert"
			if zeile.Verbrauch != nil && *zeile.Verbrauch < 0 {
				verbrauchClass = "col-wert negativ"
			}
			sb.WriteString(`<tr>`)
			sb.WriteString(fmt.Sprintf(`<td class="col-bezeichnung">%s</td>`, html.EscapeString(zeile.Bezeichnung)))
			sb.WriteString(fmt.Sprintf(`<td class="col-nummer">%s</td>`, html.EscapeString(zeile.Zaehlernummer)))
			sb.WriteString(fmt.Sprintf(`<td class="col-typ">%s</td>`, html.EscapeString(zaehlertypen.Name(zeile.Zaehlertyp))))
			sb.WriteString(fmt.Sprintf(`<td class="col-standort">%s</td>`, html.EscapeString(zeile.Standort)))
			sb.WriteString(fmt.Sprintf(`<td class="right col-wert">%s</td>`, FormatWert(zeile.Startwert)))
			sb.WriteString(fmt.Sprintf(`<td class="right col-wert">%s</td>`, FormatWert(zeile.Endwert)))
			sb.WriteString(fmt.Sprintf(`<td class="right %s">%s</td>`, verbrauchClass, FormatWert(zeile.Verbrauch)))
			notiz := ""
			if zeile.Notiz != nil {
				notiz = *zeile.Notiz
			}
			sb.WriteString(fmt.Sprintf(`<td class="col-notiz">%s</td>`, html.EscapeString(notiz)))
			sb.WriteString(`</tr>`)
		}
		sb.WriteString(`</tbody></table>`)
	}

	return sb.String()
}

// FormatWert formatiert einen Zählerwert mit zwei Nachkommastellen,
// Geviertstrich für fehlende Werte.
func FormatWert(v *float64) string {
	if v == nil {
		return "—"
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}
