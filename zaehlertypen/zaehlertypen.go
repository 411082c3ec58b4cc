// Package zaehlertypen löst Zählertyp-Codes in Anzeigenamen auf. Die
// eingebauten Namen lassen sich über stammdaten/zaehlertypen.csv
// (Windows-1252, Code;Name) ersetzen oder ergänzen.
package zaehlertypen

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"wegverwalter/model"
)

var eingebaut = map[string]string{
	model.ZaehlertypStrom:    "Strom",
	model.ZaehlertypWasser:   "Wasser",
	model.ZaehlertypHeizung:  "Heizung",
	model.ZaehlertypSonstige: "Sonstige",
}

var geladen map[string]string

// LadeDatei liest eine optionale Überschreibungsdatei ein. Fehlt die
// Datei, gelten die eingebauten Namen; der Aufrufer loggt nur eine
// Warnung und fährt fort.
func LadeDatei(path string) (map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("LadeDatei: open %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(transform.NewReader(file, charmap.Windows1252.NewDecoder()))
	reader.Comma = ';'
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	m := make(map[string]string)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("LadeDatei: read %s: %w", path, err)
		}
		if len(record) < 2 {
			continue
		}
		m[record[0]] = record[1]
	}
	geladen = m
	return m, nil
}

// Name löst einen Typ-Code in den Anzeigenamen auf. Unbekannte Codes
// kommen unverändert zurück.
func Name(code string) string {
	if geladen != nil {
		if name, ok := geladen[code]; ok {
			return name
		}
	}
	if name, ok := eingebaut[code]; ok {
		return name
	}
	return code
}

// IstBekannt prüft, ob ein Code zu den eingebauten Zählertypen gehört.
func IstBekannt(code string) bool {
	_, ok := eingebaut[code]
	return ok
}
