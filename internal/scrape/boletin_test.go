package scrape

import (
	"os"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func loadFixture(t *testing.T, name string) *goquery.Document {
	t.Helper()
	data, err := os.ReadFile("testdata/" + name)
	if err != nil {
		t.Fatalf("failed to load fixture: %v", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(data)))
	if err != nil {
		t.Fatalf("failed to parse fixture: %v", err)
	}
	return doc
}

func TestBoletinTable_Parse(t *testing.T) {
	doc := loadFixture(t, "boletin_remates.html")

	s := NewBoletinTable(Options{BoletinBaseURL: "https://boletinconcursal.cl"})
	records, err := s.parse(doc, "https://boletinconcursal.cl/boletin/remates")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	// 5 rows: one too short, one duplicate.
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}

	first := records[0]
	if first.DeudorNombre != "Comercial Andina SpA" {
		t.Errorf("deudor = %q", first.DeudorNombre)
	}
	if first.Martillero != "Juan Soto Martínez" {
		t.Errorf("martillero = %q", first.Martillero)
	}
	if first.FechaRemate != "2025-10-14" {
		t.Errorf("fecha dd-mm-yyyy not normalized: %q", first.FechaRemate)
	}
	if first.SourceURL != "https://boletinconcursal.cl/boletin/downloadDocumentoByCodigo?codigoValidacion=AAA111" {
		t.Errorf("relative href not resolved: %q", first.SourceURL)
	}
	if first.Source != SourceBoletin {
		t.Errorf("source = %q", first.Source)
	}

	// Absolute hrefs pass through untouched.
	second := records[1]
	if !strings.HasPrefix(second.SourceURL, "https://boletinconcursal.cl/") {
		t.Errorf("absolute href mangled: %q", second.SourceURL)
	}

	// Unparseable date survives as verbatim text.
	third := records[2]
	if third.FechaRemate != "" || third.FechaTexto != "por confirmar" {
		t.Errorf("date handling wrong: remate=%q texto=%q", third.FechaRemate, third.FechaTexto)
	}
	// Row without a document link points at the page itself.
	if third.SourceURL != "https://boletinconcursal.cl/boletin/remates" {
		t.Errorf("fallback URL wrong: %q", third.SourceURL)
	}

	for _, rec := range records {
		if rec.ID == "" {
			t.Error("every record needs an ID")
		}
		if rec.TipoRemate != "Remate concursal" {
			t.Errorf("tipo_remate = %q", rec.TipoRemate)
		}
	}
}

func TestBoletinTable_ParseNoTable(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<html><body><p>mantención</p></body></html>"))
	if err != nil {
		t.Fatal(err)
	}

	s := NewBoletinTable(Options{BoletinBaseURL: "https://boletinconcursal.cl"})
	if _, err := s.parse(doc, "x"); err == nil {
		t.Error("expected error when the table is missing")
	}
}
