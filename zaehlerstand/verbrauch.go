// Package zaehlerstand enthält die Ablesungserfassung: Validierung und
// Speichern von Zählerständen, Verbrauchsberechnung und die Gruppierung
// der Registry-Zeilen für das Ableseprotokoll.
package zaehlerstand

import "math"

// Runde2 rundet kaufmännisch auf zwei Nachkommastellen.
func Runde2(v float64) float64 {
	return math.Round(v*100) / 100
}

// BerechneVerbrauch liefert Endwert − Startwert auf zwei Nachkommastellen,
// sofern beide Werte vorliegen. Fehlt einer, ist der Verbrauch nicht
// berechenbar (ok=false) und der Aufrufer lässt einen früher gespeicherten
// Wert unangetastet.
//
// Negative Ergebnisse sind gültig und werden nicht gekappt: sie deuten auf
// Zählerwechsel oder verschobene Abrechnungszeiträume hin und werden dem
// Aufrufer nur als Hinweis gemeldet, nie als Fehler.
func BerechneVerbrauch(startwert, endwert *float64) (float64, bool) {
	if startwert == nil || endwert == nil {
		return 0, false
	}
	if !istEndlich(*startwert) || !istEndlich(*endwert) {
		return 0, false
	}
	return Runde2(*endwert - *startwert), true
}

// istEndlich prüft auf NaN und ±Inf. JSON transportiert beides nicht,
// CSV-Importe schon.
func istEndlich(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
