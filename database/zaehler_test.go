package database

import (
	"database/sql"
	"os"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"wegverwalter/model"
)

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
	if _, err := db.Exec(`INSERT INTO immobilien (id, bezeichnung) VALUES (1, 'WEG Teststraße 5')`); err != nil {
		t.Fatalf("failed to seed immobilie: %v", err)
	}
	return db
}

func TestCreateUndUpdateZaehler(t *testing.T) {
	db := testDB(t)

	id, err := CreateZaehler(db, model.ZaehlerInput{
		ImmobilieID: 1, Bezeichnung: "Hauszähler Strom", Zaehlertyp: "strom",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	err = UpdateZaehlerMetadaten(db, id, model.ZaehlerInput{
		Bezeichnung: "Hauszähler Strom (neu)", Zaehlernummer: "1EMH999", Zaehlertyp: "strom", Standort: "Keller",
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	z, err := GetZaehlerByID(db, id)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if z == nil || z.Bezeichnung != "Hauszähler Strom (neu)" || z.Zaehlernummer != "1EMH999" {
		t.Fatalf("unexpected zaehler after update: %+v", z)
	}
	// Identität bleibt unangetastet.
	if z.ImmobilieID != 1 || z.EinheitID != nil {
		t.Errorf("expected identity fields untouched, got %+v", z)
	}
}

func TestUpdateZaehlerMetadaten_Unbekannt(t *testing.T) {
	db := testDB(t)
	if err := UpdateZaehlerMetadaten(db, 42, model.ZaehlerInput{Bezeichnung: "x"}); err != sql.ErrNoRows {
		t.Errorf("expected sql.ErrNoRows for unknown zaehler, got %v", err)
	}
}

func TestGetZaehlerByID_Unbekannt(t *testing.T) {
	db := testDB(t)
	z, err := GetZaehlerByID(db, 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if z != nil {
		t.Errorf("expected nil for unknown zaehler, got %+v", z)
	}
}

func TestListZaehlerstaende_NurPassenderZeitraum(t *testing.T) {
	db := testDB(t)

	id, err := CreateZaehler(db, model.ZaehlerInput{
		ImmobilieID: 1, Bezeichnung: "Hauszähler Strom", Zaehlertyp: "strom",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	w := 99.5
	if err := UpsertAblesungInTx(db, model.Ablesung{
		ZaehlerID: id, ZeitraumVon: "2023-01-01", ZeitraumBis: "2023-12-31",
		Startwert: &w, Endwert: &w,
	}); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	rows, err := ListZaehlerstaende(db, 1, "2024-01-01", "2024-12-31")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	// Die 2023er-Ablesung darf der 2024er-Abfrage nicht zugeordnet werden.
	if rows[0].Startwert != nil {
		t.Errorf("expected no reading for other period, got %v", rows[0].Startwert)
	}
}
