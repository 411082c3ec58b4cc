package zaehlerstand

import (
	"fmt"

	"wegverwalter/model"
)

// HauszaehlerLabel ist die Sammelgruppe für Zähler ohne Einheitszuordnung.
const HauszaehlerLabel = "Hauszähler"

// GruppiereNachEinheit ordnet Registry-Zeilen nach Einheit, Hauszähler in
// eine eigene Gruppe am Ort ihres ersten Auftretens. Reine Funktion ohne
// Datenbank- oder UI-Abhängigkeit.
//
// Gruppen und Zeilen behalten die Reihenfolge der Eingabe (first-seen,
// nicht sortiert), damit das Protokoll der Registry-Reihenfolge folgt.
// Ist einheitID gesetzt, fallen Zeilen anderer Einheiten weg; Hauszähler
// bleiben immer sichtbar, sie betreffen jede Einheit.
func GruppiereNachEinheit(rows []model.ZaehlerstandRow, einheitID *int64) []model.ZaehlerGruppe {
	var gruppen []model.ZaehlerGruppe
	index := make(map[string]int)

	for _, row := range rows {
		if einheitID != nil && row.EinheitID != nil && *row.EinheitID != *einheitID {
			continue
		}

		label := HauszaehlerLabel
		if row.EinheitID != nil {
			if row.EinheitName != nil && *row.EinheitName != "" {
				label = *row.EinheitName
			} else {
				label = fmt.Sprintf("Einheit %d", *row.EinheitID)
			}
		}

		i, ok := index[label]
		if !ok {
			i = len(gruppen)
			index[label] = i
			gruppen = append(gruppen, model.ZaehlerGruppe{Label: label})
		}
		gruppen[i].Zeilen = append(gruppen[i].Zeilen, row)
	}
	return gruppen
}
