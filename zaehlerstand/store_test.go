package zaehlerstand

import (
	"os"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"wegverwalter/database"
	"wegverwalter/model"
)

// testDB öffnet eine In-Memory-Datenbank mit Schema und einer Immobilie
// mit einem Hauszähler (ID 1) und einem Einheitenzähler (ID 2).
func testDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := sqlx.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	schema, err := os.ReadFile("../schema.sql")
	if err != nil {
		t.Fatalf("failed to read schema.sql: %v", err)
	}
	if _, err := db.Exec(string(schema)); err != nil {
		t.Fatalf("failed to apply schema: %v", err)
	}

	mustExec := func(q string, args ...interface{}) {
		t.Helper()
		if _, err := db.Exec(q, args...); err != nil {
			t.Fatalf("failed to seed test db: %v", err)
		}
	}
	mustExec(`INSERT INTO immobilien (id, bezeichnung) VALUES (1, 'WEG Teststraße 5')`)
	mustExec(`INSERT INTO einheiten (id, immobilie_id, bezeichnung) VALUES (1, 1, 'Wohnung 1')`)
	mustExec(`INSERT INTO zaehler (id, immobilie_id, einheit_id, bezeichnung, zaehlertyp)
		VALUES (1, 1, NULL, 'Hauszähler Strom', 'strom')`)
	mustExec(`INSERT INTO zaehler (id, immobilie_id, einheit_id, bezeichnung, zaehlertyp)
		VALUES (2, 1, 1, 'Kaltwasser Wohnung 1', 'wasser')`)
	return db
}

const (
	von = "2024-01-01"
	bis = "2024-12-31"
)

func TestSpeichereAblesung_EndeZuEnde(t *testing.T) {
	db := testDB(t)

	ergebnis, err := SpeichereAblesung(db, model.AblesungInput{
		ZaehlerID: 1, ZeitraumVon: von, ZeitraumBis: bis,
		Startwert: f(100.00), Endwert: f(342.50),
	})
	if err != nil {
		t.Fatalf("unexpected storage error: %v", err)
	}
	if !ergebnis.OK {
		t.Fatalf("expected ok, got fehler %q", ergebnis.Fehler)
	}
	if ergebnis.Verbrauch == nil || *ergebnis.Verbrauch != 242.50 {
		t.Fatalf("expected verbrauch 242.50, got %v", ergebnis.Verbrauch)
	}

	rows, err := database.ListZaehlerstaende(db, 1, von, bis)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 registry rows, got %d", len(rows))
	}
	m1 := rows[0]
	if m1.Bezeichnung != "Hauszähler Strom" {
		t.Fatalf("expected hauszähler first, got %q", m1.Bezeichnung)
	}
	if m1.Startwert == nil || *m1.Startwert != 100.00 {
		t.Errorf("expected startwert 100.00, got %v", m1.Startwert)
	}
	if m1.Endwert == nil || *m1.Endwert != 342.50 {
		t.Errorf("expected endwert 342.50, got %v", m1.Endwert)
	}
	if m1.Verbrauch == nil || *m1.Verbrauch != 242.50 {
		t.Errorf("expected verbrauch 242.50, got %v", m1.Verbrauch)
	}
	// Der zweite Zähler hat für den Zeitraum noch keine Ablesung.
	if rows[1].Startwert != nil || rows[1].Verbrauch != nil {
		t.Error("expected empty reading fields for zaehler without ablesung")
	}
}

func TestSpeichereAblesung_Idempotent(t *testing.T) {
	db := testDB(t)
	in := model.AblesungInput{
		ZaehlerID: 1, ZeitraumVon: von, ZeitraumBis: bis,
		Startwert: f(10), Endwert: f(20), Notiz: "Ablesung vor Ort",
	}

	for i := 0; i < 2; i++ {
		if ergebnis, err := SpeichereAblesung(db, in); err != nil || !ergebnis.OK {
			t.Fatalf("save %d failed: %v / %+v", i, err, ergebnis)
		}
	}

	n, err := database.CountAblesungenForZaehler(db, 1)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected exactly one row for the period key, got %d", n)
	}
}

func TestSpeichereAblesung_UpdateStattDuplikat(t *testing.T) {
	db := testDB(t)

	if _, err := SpeichereAblesung(db, model.AblesungInput{
		ZaehlerID: 1, ZeitraumVon: von, ZeitraumBis: bis,
		Startwert: f(10), Endwert: f(20),
	}); err != nil {
		t.Fatalf("first save failed: %v", err)
	}
	ergebnis, err := SpeichereAblesung(db, model.AblesungInput{
		ZaehlerID: 1, ZeitraumVon: von, ZeitraumBis: bis,
		Startwert: f(10), Endwert: f(35.5),
	})
	if err != nil || !ergebnis.OK {
		t.Fatalf("second save failed: %v / %+v", err, ergebnis)
	}
	if ergebnis.Verbrauch == nil || *ergebnis.Verbrauch != 25.5 {
		t.Errorf("expected recomputed verbrauch 25.5, got %v", ergebnis.Verbrauch)
	}

	n, _ := database.CountAblesungenForZaehler(db, 1)
	if n != 1 {
		t.Errorf("expected update of the existing row, got %d rows", n)
	}
}

func TestSpeichereAblesung_ZeitraumValidierung(t *testing.T) {
	db := testDB(t)

	ergebnis, err := SpeichereAblesung(db, model.AblesungInput{
		ZaehlerID: 1, ZeitraumVon: "2024-12-31", ZeitraumBis: "2024-01-01",
		Startwert: f(1), Endwert: f(2),
	})
	if err != nil {
		t.Fatalf("validation must not be a storage error: %v", err)
	}
	if ergebnis.OK {
		t.Fatal("expected ok=false for end before start")
	}
	if ergebnis.Fehler == "" {
		t.Error("expected fehler message")
	}

	n, _ := database.CountAblesungenForZaehler(db, 1)
	if n != 0 {
		t.Errorf("expected no write on validation failure, got %d rows", n)
	}
}

func TestSpeichereAblesung_UnbekannterZaehler(t *testing.T) {
	db := testDB(t)

	ergebnis, err := SpeichereAblesung(db, model.AblesungInput{
		ZaehlerID: 99, ZeitraumVon: von, ZeitraumBis: bis,
	})
	if err != nil {
		t.Fatalf("unknown meter must not be a storage error: %v", err)
	}
	if ergebnis.OK {
		t.Error("expected ok=false for unknown zaehler")
	}
}

func TestSpeichereAblesung_NegativerRohwert(t *testing.T) {
	db := testDB(t)

	ergebnis, err := SpeichereAblesung(db, model.AblesungInput{
		ZaehlerID: 1, ZeitraumVon: von, ZeitraumBis: bis,
		Startwert: f(-5),
	})
	if err != nil {
		t.Fatalf("unexpected storage error: %v", err)
	}
	if ergebnis.OK {
		t.Error("expected ok=false for negative meter value")
	}
}

func TestSpeichereAblesung_TeilEingabeBehaeltVerbrauch(t *testing.T) {
	db := testDB(t)

	if _, err := SpeichereAblesung(db, model.AblesungInput{
		ZaehlerID: 1, ZeitraumVon: von, ZeitraumBis: bis,
		Startwert: f(100), Endwert: f(150),
	}); err != nil {
		t.Fatalf("setup save failed: %v", err)
	}

	// Endwert während der Bearbeitung geleert: der gespeicherte Verbrauch
	// bleibt stehen.
	ergebnis, err := SpeichereAblesung(db, model.AblesungInput{
		ZaehlerID: 1, ZeitraumVon: von, ZeitraumBis: bis,
		Startwert: f(110),
	})
	if err != nil || !ergebnis.OK {
		t.Fatalf("partial save failed: %v / %+v", err, ergebnis)
	}

	a, err := database.GetAblesungForZeitraum(db, 1, von, bis)
	if err != nil || a == nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if a.Verbrauch == nil || *a.Verbrauch != 50 {
		t.Errorf("expected prior verbrauch 50 to survive partial edit, got %v", a.Verbrauch)
	}
	if a.Startwert == nil || *a.Startwert != 110 {
		t.Errorf("expected startwert updated to 110, got %v", a.Startwert)
	}
	if a.Endwert != nil {
		t.Errorf("expected endwert cleared, got %v", a.Endwert)
	}
}

func TestSpeichereAblesung_BeideLeerLoeschtVerbrauch(t *testing.T) {
	db := testDB(t)

	if _, err := SpeichereAblesung(db, model.AblesungInput{
		ZaehlerID: 1, ZeitraumVon: von, ZeitraumBis: bis,
		Startwert: f(100), Endwert: f(150),
	}); err != nil {
		t.Fatalf("setup save failed: %v", err)
	}
	if _, err := SpeichereAblesung(db, model.AblesungInput{
		ZaehlerID: 1, ZeitraumVon: von, ZeitraumBis: bis,
	}); err != nil {
		t.Fatalf("clearing save failed: %v", err)
	}

	a, err := database.GetAblesungForZeitraum(db, 1, von, bis)
	if err != nil || a == nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if a.Verbrauch != nil {
		t.Errorf("expected verbrauch cleared by explicit empty save, got %v", a.Verbrauch)
	}
}

func TestSpeichereAblesung_NegativerVerbrauchHinweis(t *testing.T) {
	db := testDB(t)

	ergebnis, err := SpeichereAblesung(db, model.AblesungInput{
		ZaehlerID: 1, ZeitraumVon: von, ZeitraumBis: bis,
		Startwert: f(500), Endwert: f(12.3),
	})
	if err != nil {
		t.Fatalf("unexpected storage error: %v", err)
	}
	if !ergebnis.OK {
		t.Fatalf("negative verbrauch must not be rejected: %+v", ergebnis)
	}
	if ergebnis.Verbrauch == nil || *ergebnis.Verbrauch != -487.7 {
		t.Errorf("expected verbrauch -487.7, got %v", ergebnis.Verbrauch)
	}
	if ergebnis.Hinweis == "" {
		t.Error("expected advisory hinweis for negative verbrauch")
	}
}
