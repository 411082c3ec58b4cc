// Package stammdaten bündelt die Verwaltungs-Endpunkte für Immobilien,
// Einheiten und Zähler inklusive CSV-Import.
package stammdaten

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"wegverwalter/database"
	"wegverwalter/model"
	"wegverwalter/parsers"
)

// ListImmobilienHandler liefert alle Immobilien für die Auswahlliste.
func ListImmobilienHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		immobilien, err := database.GetAllImmobilien(db)
		if err != nil {
			log.Error().Err(err).Msg("list immobilien failed")
			http.Error(w, "Immobilien konnten nicht geladen werden", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(immobilien)
	}
}

// ListEinheitenHandler liefert die Einheiten einer Immobilie.
func ListEinheitenHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		immobilieID, err := strconv.ParseInt(r.URL.Query().Get("immobilie"), 10, 64)
		if err != nil || immobilieID <= 0 {
			http.Error(w, "immobilie ist erforderlich", http.StatusBadRequest)
			return
		}
		einheiten, err := database.GetEinheitenByImmobilie(db, immobilieID)
		if err != nil {
			log.Error().Err(err).Int64("immobilie", immobilieID).Msg("list einheiten failed")
			http.Error(w, "Einheiten konnten nicht geladen werden", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(einheiten)
	}
}

// CreateZaehlerHandler legt einen Zähler an. Die Identität (ID) wird hier
// einmalig vergeben und ist danach unveränderlich.
func CreateZaehlerHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		var in model.ZaehlerInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "Ungültiger Request-Body", http.StatusBadRequest)
			return
		}
		if in.ImmobilieID <= 0 || strings.TrimSpace(in.Bezeichnung) == "" {
			http.Error(w, "Immobilie und Bezeichnung sind erforderlich", http.StatusBadRequest)
			return
		}
		if in.Zaehlertyp == "" {
			in.Zaehlertyp = model.ZaehlertypSonstige
		}
		id, err := database.CreateZaehler(db, in)
		if err != nil {
			log.Error().Err(err).Str("bezeichnung", in.Bezeichnung).Msg("create zaehler failed")
			http.Error(w, "Der Zähler konnte nicht angelegt werden", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"id": id})
	}
}

// UpdateZaehlerHandler ändert die Metadaten eines bestehenden Zählers.
func UpdateZaehlerHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		var payload struct {
			ID int64 `json:"id"`
			model.ZaehlerInput
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "Ungültiger Request-Body", http.StatusBadRequest)
			return
		}
		if payload.ID <= 0 {
			http.Error(w, "id ist erforderlich", http.StatusBadRequest)
			return
		}
		err := database.UpdateZaehlerMetadaten(db, payload.ID, payload.ZaehlerInput)
		if err == sql.ErrNoRows {
			http.Error(w, fmt.Sprintf("Zähler %d ist nicht bekannt", payload.ID), http.StatusNotFound)
			return
		}
		if err != nil {
			log.Error().Err(err).Int64("zaehler", payload.ID).Msg("update zaehler failed")
			http.Error(w, "Der Zähler konnte nicht gespeichert werden", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "Gespeichert."})
	}
}

// ImportZaehlerCSVHandler importiert Zähler-Stammdaten aus einer CSV.
// Einheiten werden über ihre Bezeichnung zugeordnet und bei Bedarf neu
// angelegt; leere Einheit bedeutet Hauszähler. Alles läuft in einer
// Transaktion, der Import ist ganz oder gar nicht.
func ImportZaehlerCSVHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		immobilieID, err := strconv.ParseInt(r.URL.Query().Get("immobilie"), 10, 64)
		if err != nil || immobilieID <= 0 {
			http.Error(w, "immobilie ist erforderlich", http.StatusBadRequest)
			return
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "CSV-Datei konnte nicht gelesen werden: "+err.Error(), http.StatusBadRequest)
			return
		}
		defer file.Close()

		records, err := parsers.ParseZaehlerCSV(file)
		if err != nil {
			http.Error(w, "CSV-Datei konnte nicht verarbeitet werden: "+err.Error(), http.StatusBadRequest)
			return
		}
		if len(records) == 0 {
			http.Error(w, "Die CSV enthält keine importierbaren Zeilen.", http.StatusBadRequest)
			return
		}

		tx, err := db.Beginx()
		if err != nil {
			http.Error(w, "Transaktion konnte nicht gestartet werden", http.StatusInternalServerError)
			return
		}
		defer tx.Rollback()

		einheiten, err := database.GetEinheitenByImmobilie(tx, immobilieID)
		if err != nil {
			log.Error().Err(err).Msg("import: load einheiten failed")
			http.Error(w, "Einheiten konnten nicht geladen werden", http.StatusInternalServerError)
			return
		}
		einheitIDByName := make(map[string]int64, len(einheiten))
		for _, e := range einheiten {
			einheitIDByName[e.Bezeichnung] = e.ID
		}

		imported := 0
		for _, rec := range records {
			var einheitID *int64
			if rec.Einheit != "" {
				id, ok := einheitIDByName[rec.Einheit]
				if !ok {
					id, err = database.CreateEinheit(tx, model.Einheit{
						ImmobilieID: immobilieID,
						Bezeichnung: rec.Einheit,
					})
					if err != nil {
						log.Error().Err(err).Str("einheit", rec.Einheit).Msg("import: create einheit failed")
						http.Error(w, "Einheit konnte nicht angelegt werden", http.StatusInternalServerError)
						return
					}
					einheitIDByName[rec.Einheit] = id
				}
				einheitID = &id
			}

			typ := rec.Zaehlertyp
			if typ == "" {
				typ = model.ZaehlertypSonstige
			}
			_, err := database.CreateZaehler(tx, model.ZaehlerInput{
				ImmobilieID:   immobilieID,
				EinheitID:     einheitID,
				Bezeichnung:   rec.Bezeichnung,
				Zaehlernummer: rec.Zaehlernummer,
				Zaehlertyp:    typ,
				Standort:      rec.Standort,
			})
			if err != nil {
				log.Error().Err(err).Str("zaehler", rec.Bezeichnung).Msg("import: create zaehler failed")
				http.Error(w, "Zähler konnte nicht angelegt werden", http.StatusInternalServerError)
				return
			}
			imported++
		}

		if err := tx.Commit(); err != nil {
			http.Error(w, "Import konnte nicht abgeschlossen werden", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"message": fmt.Sprintf("Import abgeschlossen. %d Zähler übernommen.", imported),
		})
	}
}
