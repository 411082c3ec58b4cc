package main

import (
	"html/template"
	"io/fs"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"wegverwalter/config"
	"wegverwalter/database"
	"wegverwalter/zaehlertypen"
)

var (
	appTemplate *template.Template
	viewsFS     fs.FS
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})

	cfg := config.Load()

	log.Info().Str("db", cfg.DBPath).Msg("connecting to database")
	dbConn, err := database.Open(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("db open failed")
	}
	defer dbConn.Close()

	if err := database.InitSchema(dbConn); err != nil {
		log.Fatal().Err(err).Msg("database initialization failed")
	}
	log.Info().Msg("database initialization complete")

	typenPfad := filepath.Join(cfg.StammdatenPfad, "zaehlertypen.csv")
	if _, err := zaehlertypen.LadeDatei(typenPfad); err != nil {
		log.Warn().Err(err).Msg("zaehlertypen.csv not loaded, using built-in labels")
	} else {
		log.Info().Str("datei", typenPfad).Msg("zaehlertypen loaded")
	}

	staticFS := os.DirFS("static")
	viewsFS, err = fs.Sub(staticFS, "views")
	if err != nil {
		log.Warn().Err(err).Msg("'static/views' directory not found, will only load index.html")
	}

	appTemplate, err = template.ParseFS(staticFS, "index.html")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to parse index.html")
	}
	if viewsFS != nil {
		appTemplate, err = appTemplate.ParseFS(viewsFS, "*.html")
		if err != nil {
			log.Fatal().Err(err).Msg("failed to parse views/*.html")
		}
	}
	log.Info().Msg("html templates loaded and parsed")

	mux := http.NewServeMux()

	mux.Handle("/static/", http.StripPrefix("/static/",
		http.FileServer(http.Dir("./static"))))

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}

		viewFiles := []string{}
		if viewsFS != nil {
			files, err := fs.Glob(viewsFS, "*.html")
			if err != nil {
				log.Error().Err(err).Msg("error globbing view files")
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}
			viewFiles = files
		}

		viewMap := make(map[string]template.HTML)
		for _, file := range viewFiles {
			key := strings.TrimSuffix(file, filepath.Ext(file))

			var viewContent strings.Builder
			if err := appTemplate.ExecuteTemplate(&viewContent, file, nil); err != nil {
				log.Error().Err(err).Str("view", file).Msg("error executing view template")
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}
			viewMap[key] = template.HTML(viewContent.String())
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		err = appTemplate.ExecuteTemplate(w, "index.html", struct {
			Views map[string]template.HTML
		}{
			Views: viewMap,
		})
		if err != nil {
			log.Error().Err(err).Msg("error executing main template")
		}
	})

	SetupRoutes(mux, dbConn, cfg)

	addr := "localhost:" + cfg.Port
	log.Info().Str("addr", "http://"+addr).Msg("starting server")

	if cfg.BrowserOeffnen {
		openBrowser("http://" + addr)
	}

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatal().Err(err).Msg("server start failed")
	}
}

func openBrowser(url string) {
	var err error
	switch runtime.GOOS {
	case "windows":
		err = exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	case "darwin":
		err = exec.Command("open", url).Start()
	default:
		err = exec.Command("xdg-open", url).Start()
	}
	if err != nil {
		log.Warn().Err(err).Msg("failed to open browser")
	}
}
