package zaehlerstand

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"wegverwalter/database"
	"wegverwalter/model"
)

// zeitraumParams liest immobilie/von/bis aus der Query. Die Datumsgrenzen
// sind hier nur Auswahlschlüssel und werden nicht interpretiert.
func zeitraumParams(r *http.Request) (immobilieID int64, von, bis string, ok bool) {
	q := r.URL.Query()
	immobilieID, err := strconv.ParseInt(q.Get("immobilie"), 10, 64)
	if err != nil || immobilieID <= 0 {
		return 0, "", "", false
	}
	von = q.Get("von")
	bis = q.Get("bis")
	if von == "" || bis == "" {
		return 0, "", "", false
	}
	return immobilieID, von, bis, true
}

// ListHandler liefert die Registry-Zeilen einer Immobilie für einen
// Zeitraum (eine Zeile je Zähler, Ablesungsfelder NULL ohne Erfassung).
func ListHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		immobilieID, von, bis, ok := zeitraumParams(r)
		if !ok {
			http.Error(w, "immobilie, von und bis sind erforderlich", http.StatusBadRequest)
			return
		}
		rows, err := database.ListZaehlerstaende(db, immobilieID, von, bis)
		if err != nil {
			log.Error().Err(err).Int64("immobilie", immobilieID).Msg("list zaehlerstaende failed")
			http.Error(w, "Zählerstände konnten nicht geladen werden", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(rows)
	}
}

// GruppiertHandler liefert dieselben Zeilen nach Einheit gruppiert, mit
// optionalem Einheitenfilter (Hauszähler bleiben immer enthalten).
func GruppiertHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		immobilieID, von, bis, ok := zeitraumParams(r)
		if !ok {
			http.Error(w, "immobilie, von und bis sind erforderlich", http.StatusBadRequest)
			return
		}
		var einheitID *int64
		if s := r.URL.Query().Get("einheit"); s != "" {
			id, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				http.Error(w, "einheit muss eine Zahl sein", http.StatusBadRequest)
				return
			}
			einheitID = &id
		}
		rows, err := database.ListZaehlerstaende(db, immobilieID, von, bis)
		if err != nil {
			log.Error().Err(err).Int64("immobilie", immobilieID).Msg("list zaehlerstaende failed")
			http.Error(w, "Zählerstände konnten nicht geladen werden", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(GruppiereNachEinheit(rows, einheitID))
	}
}

// SpeichernHandler ist der einzige Schreibpfad für Ablesungen.
// Validierungsfehler kommen als ok=false mit Status 200 zurück, damit das
// Frontend sie als korrigierbare Eingabefehler anzeigen kann; nur
// Speicherfehler werden zu einem 500.
func SpeichernHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		var in model.AblesungInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "Ungültiger Request-Body", http.StatusBadRequest)
			return
		}
		ergebnis, err := SpeichereAblesung(db, in)
		if err != nil {
			log.Error().Err(err).Int64("zaehler", in.ZaehlerID).Msg("save ablesung failed")
			http.Error(w, "Die Ablesung konnte nicht gespeichert werden", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(ergebnis)
	}
}
