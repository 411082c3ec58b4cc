package parsers

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// ParsedZaehlerRecord ist eine Zeile der Zähler-Stammdaten-CSV.
// einheit bleibt leer für Hauszähler.
type ParsedZaehlerRecord struct {
	Einheit       string
	Bezeichnung   string
	Zaehlernummer string
	Zaehlertyp    string
	Standort      string
}

// ParseZaehlerCSV liest eine Zähler-Stammdaten-CSV (Semikolon-getrennt,
// Windows-1252, wie sie aus deutschen Excel-Exporten kommt). Fehlerhafte
// Zeilen werden mit Warnung übersprungen; nur ein unlesbarer Header
// bricht ab.
func ParseZaehlerCSV(r io.Reader) ([]ParsedZaehlerRecord, error) {
	reader := csv.NewReader(transform.NewReader(SkipBOM(r), charmap.Windows1252.NewDecoder()))
	reader.Comma = ';'
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("die CSV-Datei ist leer")
	}
	if err != nil {
		return nil, fmt.Errorf("CSV-Header konnte nicht gelesen werden: %w", err)
	}

	requiredHeaders := []string{"bezeichnung", "zaehlertyp"}
	colIndex, err := getColIndex(header, requiredHeaders)
	if err != nil {
		return nil, err
	}

	var records []ParsedZaehlerRecord
	line := 1

	for {
		line++
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Warn().Int("zeile", line).Err(err).Msg("zaehler csv row skipped")
			continue
		}

		get := func(key string) string {
			if idx, ok := colIndex[key]; ok && idx < len(rec) {
				return strings.TrimSpace(rec[idx])
			}
			return ""
		}

		bezeichnung := get("bezeichnung")
		if bezeichnung == "" {
			log.Warn().Int("zeile", line).Msg("zaehler csv row without bezeichnung skipped")
			continue
		}

		records = append(records, ParsedZaehlerRecord{
			Einheit:       get("einheit"),
			Bezeichnung:   bezeichnung,
			Zaehlernummer: get("zaehlernummer"),
			Zaehlertyp:    get("zaehlertyp"),
			Standort:      get("standort"),
		})
	}

	return records, nil
}
