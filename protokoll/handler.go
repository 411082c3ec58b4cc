// Package protokoll erzeugt das Ableseprotokoll einer Immobilie als
// druckbare HTML-Seite, als CSV-Download und als PDF-Datei, und führt den
// Exportverlauf.
package protokoll

import (
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"wegverwalter/config"
	"wegverwalter/database"
	"wegverwalter/model"
	"wegverwalter/render"
	"wegverwalter/zaehlerstand"
)

var pageTemplate = template.Must(template.New("protokoll").Parse(`<!DOCTYPE html>
<html lang="de">
<head>
<meta charset="utf-8">
<title>Ableseprotokoll {{.Immobilie.Bezeichnung}}</title>
<style>
body { font-family: "Segoe UI", sans-serif; margin: 2em; color: #222; }
h1 { font-size: 1.4em; margin-bottom: 0.2em; }
h2.gruppe { font-size: 1.1em; margin-top: 1.5em; border-bottom: 1px solid #999; }
p.meta { color: #555; margin-top: 0; }
table.protokoll { border-collapse: collapse; width: 100%; margin-top: 0.5em; }
table.protokoll th, table.protokoll td { border: 1px solid #bbb; padding: 4px 8px; font-size: 0.85em; }
table.protokoll th { background: #f0f0f0; text-align: left; }
td.right { text-align: right; }
td.negativ { color: #b00020; font-weight: bold; }
p.leer { color: #777; }
@media print { body { margin: 0.5em; } }
</style>
</head>
<body>
<h1>Ableseprotokoll – {{.Immobilie.Bezeichnung}}</h1>
<p class="meta">{{.Immobilie.Strasse}}, {{.Immobilie.PLZ}} {{.Immobilie.Ort}} · Zeitraum {{.Von}} bis {{.Bis}} · erstellt am {{.Erstellt}}</p>
{{.Tabelle}}
</body>
</html>`))

type pageDaten struct {
	Immobilie model.Immobilie
	Von       string
	Bis       string
	Erstellt  string
	Tabelle   template.HTML
}

// ladeGruppen lädt und gruppiert die Protokollzeilen für die Parameter
// immobilie/von/bis/einheit eines Requests.
func ladeGruppen(db *sqlx.DB, r *http.Request) (*model.Immobilie, []model.ZaehlerGruppe, string, string, error) {
	q := r.URL.Query()
	immobilieID, err := strconv.ParseInt(q.Get("immobilie"), 10, 64)
	if err != nil || immobilieID <= 0 {
		return nil, nil, "", "", fmt.Errorf("immobilie ist erforderlich")
	}
	von, bis := q.Get("von"), q.Get("bis")
	if von == "" || bis == "" {
		return nil, nil, "", "", fmt.Errorf("von und bis sind erforderlich")
	}
	var einheitID *int64
	if s := q.Get("einheit"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, nil, "", "", fmt.Errorf("einheit muss eine Zahl sein")
		}
		einheitID = &id
	}

	immobilie, err := database.GetImmobilieByID(db, immobilieID)
	if err != nil {
		return nil, nil, "", "", err
	}
	rows, err := database.ListZaehlerstaende(db, immobilieID, von, bis)
	if err != nil {
		return nil, nil, "", "", err
	}
	return immobilie, zaehlerstand.GruppiereNachEinheit(rows, einheitID), von, bis, nil
}

// PageHandler liefert die druckbare Protokollseite. Sie ist zugleich die
// Quelle für den PDF-Export.
func PageHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		immobilie, gruppen, von, bis, err := ladeGruppen(db, r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		daten := pageDaten{
			Immobilie: *immobilie,
			Von:       von,
			Bis:       bis,
			Erstellt:  time.Now().Format("02.01.2006 15:04"),
			Tabelle:   template.HTML(render.RenderProtokollTableHTML(gruppen)),
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := pageTemplate.Execute(w, daten); err != nil {
			log.Error().Err(err).Msg("render protokoll page failed")
		}
	}
}

// ExportCSVHandler liefert das Protokoll als CSV-Download und vermerkt
// den Export im Verlauf.
func ExportCSVHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		immobilie, gruppen, von, bis, err := ladeGruppen(db, r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		dateiname := Dateiname(immobilie.Bezeichnung, von, bis, "csv")
		if err := verlaufEintragen(db, immobilie.ID, von, bis, "csv", dateiname); err != nil {
			log.Error().Err(err).Msg("log csv export failed")
			http.Error(w, "Der Export konnte nicht vermerkt werden", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(dateiname))
		w.Write(BuildCSV(gruppen, von, bis))
	}
}

// ExportPDFHandler druckt die Protokollseite über Chrome in den
// Exportordner und vermerkt den Export im Verlauf.
func ExportPDFHandler(db *sqlx.DB, cfg config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		immobilie, _, von, bis, err := ladeGruppen(db, r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		pageURL := fmt.Sprintf("http://localhost:%s/protokoll?%s", cfg.Port, r.URL.RawQuery)
		dateiname := Dateiname(immobilie.Bezeichnung, von, bis, "pdf")
		zielPfad := filepath.Join(cfg.ExportPfad, dateiname)

		if err := DruckePDF(pageURL, zielPfad, cfg.PDFHeadless); err != nil {
			log.Error().Err(err).Str("datei", zielPfad).Msg("pdf export failed")
			http.Error(w, "Das PDF konnte nicht erstellt werden", http.StatusInternalServerError)
			return
		}
		if err := verlaufEintragen(db, immobilie.ID, von, bis, "pdf", dateiname); err != nil {
			log.Error().Err(err).Msg("log pdf export failed")
			http.Error(w, "Der Export konnte nicht vermerkt werden", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"message":   "PDF wurde erstellt.",
			"dateiname": dateiname,
			"pfad":      zielPfad,
		})
	}
}

// ExporteHandler liefert den Exportverlauf einer Immobilie.
func ExporteHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		immobilieID, err := strconv.ParseInt(r.URL.Query().Get("immobilie"), 10, 64)
		if err != nil || immobilieID <= 0 {
			http.Error(w, "immobilie ist erforderlich", http.StatusBadRequest)
			return
		}
		exporte, err := database.GetProtokollExporte(db, immobilieID)
		if err != nil {
			log.Error().Err(err).Msg("list exporte failed")
			http.Error(w, "Der Exportverlauf konnte nicht geladen werden", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(exporte)
	}
}

func verlaufEintragen(db *sqlx.DB, immobilieID int64, von, bis, format, dateiname string) error {
	return database.InsertProtokollExport(db, model.ProtokollExport{
		ID:          uuid.NewString(),
		ImmobilieID: immobilieID,
		ZeitraumVon: von,
		ZeitraumBis: bis,
		Format:      format,
		Dateiname:   dateiname,
		ErstelltAm:  time.Now().Format(time.RFC3339),
	})
}
