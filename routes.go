package main

import (
	"net/http"

	"github.com/jmoiron/sqlx"

	"wegverwalter/config"
	"wegverwalter/protokoll"
	"wegverwalter/stammdaten"
	"wegverwalter/zaehlerstand"
)

func SetupRoutes(mux *http.ServeMux, dbConn *sqlx.DB, cfg config.Config) {

	// Zählerstände (Kern)
	mux.HandleFunc("/api/zaehlerstaende", zaehlerstand.ListHandler(dbConn))
	mux.HandleFunc("/api/zaehlerstaende/gruppiert", zaehlerstand.GruppiertHandler(dbConn))
	mux.HandleFunc("/api/zaehlerstaende/save", zaehlerstand.SpeichernHandler(dbConn))

	// Stammdaten
	mux.HandleFunc("/api/immobilien", stammdaten.ListImmobilienHandler(dbConn))
	mux.HandleFunc("/api/einheiten", stammdaten.ListEinheitenHandler(dbConn))
	mux.HandleFunc("/api/zaehler/create", stammdaten.CreateZaehlerHandler(dbConn))
	mux.HandleFunc("/api/zaehler/update", stammdaten.UpdateZaehlerHandler(dbConn))
	mux.HandleFunc("/api/stammdaten/import", stammdaten.ImportZaehlerCSVHandler(dbConn))

	// Ableseprotokoll
	mux.HandleFunc("/protokoll", protokoll.PageHandler(dbConn))
	mux.HandleFunc("/api/protokoll/export_csv", protokoll.ExportCSVHandler(dbConn))
	mux.HandleFunc("/api/protokoll/export_pdf", protokoll.ExportPDFHandler(dbConn, cfg))
	mux.HandleFunc("/api/protokoll/exporte", protokoll.ExporteHandler(dbConn))

	mux.HandleFunc("/api/config", GetConfigHandler(cfg))
}
