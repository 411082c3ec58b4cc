package protokoll

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DruckePDF lädt die Protokollseite in einem (standardmäßig headless)
// Chrome und druckt sie als PDF in die Zieldatei. Leakless(false) wegen
// Virenscanner-Fehlalarmen auf Verwaltungsrechnern.
func DruckePDF(url, zielPfad string, headless bool) error {
	if err := os.MkdirAll(filepath.Dir(zielPfad), 0755); err != nil {
		return fmt.Errorf("Exportordner konnte nicht angelegt werden: %w", err)
	}

	l := launcher.New().
		Headless(headless).
		Leakless(false)
	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("Browser konnte nicht gestartet werden: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		return fmt.Errorf("Browserverbindung fehlgeschlagen: %w", err)
	}
	defer browser.Close()

	page, err := browser.Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		return fmt.Errorf("Protokollseite konnte nicht geöffnet werden: %w", err)
	}
	page = page.Timeout(30 * time.Second)
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("Protokollseite wurde nicht fertig geladen: %w", err)
	}

	reader, err := page.PDF(&proto.PagePrintToPDF{
		PrintBackground: true,
	})
	if err != nil {
		return fmt.Errorf("PDF-Druck fehlgeschlagen: %w", err)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("PDF-Daten konnten nicht gelesen werden: %w", err)
	}

	if err := os.WriteFile(zielPfad, data, 0644); err != nil {
		return fmt.Errorf("PDF konnte nicht gespeichert werden: %w", err)
	}
	return nil
}
