package config

import (
	"os"
	"sync"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/rs/zerolog/log"
)

// Config ist die Prozesskonfiguration. Quelle ist config.yml neben der
// Binärdatei, jede Einstellung ist zusätzlich per Umgebungsvariable
// überschreibbar. Zur Laufzeit nicht änderbar; veränderliche Stammdaten
// liegen in der Datenbank.
type Config struct {
	Port           string `yaml:"port" env:"WEG_PORT" env-default:"8090"`
	DBPath         string `yaml:"db_path" env:"WEG_DB_PATH" env-default:"./wegverwalter.db"`
	StammdatenPfad string `yaml:"stammdaten_pfad" env:"WEG_STAMMDATEN_PFAD" env-default:"./stammdaten"`
	ExportPfad     string `yaml:"export_pfad" env:"WEG_EXPORT_PFAD" env-default:"./export"`
	PDFHeadless    bool   `yaml:"pdf_headless" env:"WEG_PDF_HEADLESS" env-default:"true"`
	BrowserOeffnen bool   `yaml:"browser_oeffnen" env:"WEG_BROWSER_OEFFNEN" env-default:"true"`
}

const configFilePath = "./config.yml"

var (
	instance Config
	once     sync.Once
)

// Load liest die Konfiguration genau einmal ein. Fehlt config.yml, gelten
// die Defaults bzw. die Umgebung.
func Load() Config {
	once.Do(func() {
		var err error
		if _, statErr := os.Stat(configFilePath); statErr == nil {
			err = cleanenv.ReadConfig(configFilePath, &instance)
		} else {
			err = cleanenv.ReadEnv(&instance)
		}
		if err != nil {
			log.Warn().Err(err).Msg("config read failed, using defaults")
			instance = Config{}
			_ = cleanenv.ReadEnv(&instance)
		}
	})
	return instance
}

// Get liefert die bereits geladene Konfiguration.
func Get() Config {
	return Load()
}
