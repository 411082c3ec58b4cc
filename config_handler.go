package main

import (
	"encoding/json"
	"net/http"
	"time"

	"wegverwalter/config"
)

// GetConfigHandler liefert die wirksame Konfiguration plus den
// Standardzeitraum (aktuelles Kalenderjahr) für das Frontend. Die
// Zeitraumgrenzen sind hier reine Vorbelegung; der Kern rechnet nicht
// mit ihnen.
func GetConfigHandler(cfg config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jahr := time.Now().Year()
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"port":           cfg.Port,
			"exportPfad":     cfg.ExportPfad,
			"stammdatenPfad": cfg.StammdatenPfad,
			"zeitraumVon":    time.Date(jahr, 1, 1, 0, 0, 0, 0, time.Local).Format("2006-01-02"),
			"zeitraumBis":    time.Date(jahr, 12, 31, 0, 0, 0, 0, time.Local).Format("2006-01-02"),
		})
	}
}
