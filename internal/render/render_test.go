package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"rematierra/internal/facets"
	"rematierra/internal/listing"
)

func int64Ptr(v int64) *int64 { return &v }

func sampleResult() *Result {
	records := []*listing.Listing{
		{
			ID:               "a",
			TipoBien:         "inmueble",
			Descripcion:      "Casa habitación en Viña del Mar",
			Region:           "Valparaíso",
			Comuna:           "Viña del Mar",
			FechaPublicacion: "2025-10-14",
			FechaRemate:      "2025-11-03 10:00",
			ValorMinimo:      int64Ptr(45000000),
			Source:           "boletin_concursal",
			SourceURL:        "https://boletinconcursal.cl/doc?c=a",
		},
		{
			ID:          "b",
			TipoRemate:  "Remate concursal",
			FechaTexto:  "por confirmar",
			Source:      "boletin_concursal",
			SourceURL:   "https://boletinconcursal.cl/remates",
			Descripcion: "Camión tolva",
		},
	}
	return &Result{
		GeneratedAt: time.Date(2025, 10, 15, 3, 0, 0, 0, time.UTC),
		Total:       5,
		Shown:       2,
		Records:     records,
		Facets:      facets.Build(records),
	}
}

func TestWriteOutput_Text(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOutput(&buf, sampleResult(), FormatText); err != nil {
		t.Fatalf("WriteOutput failed: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"2 de 5 remates:",
		"2025-10-14 | remate 2025-11-03 10:00 | inmueble | Valparaíso / Viña del Mar",
		"minimo $45.000.000",
		"URL: https://boletinconcursal.cl/doc?c=a",
		"remate por confirmar",
		"Tipos de bien:",
		"- inmueble: 1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteOutput_TextEmpty(t *testing.T) {
	var buf bytes.Buffer
	result := &Result{Total: 3, Shown: 0}
	if err := WriteOutput(&buf, result, FormatText); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "0 de 3 remates") {
		t.Errorf("unexpected empty output: %q", buf.String())
	}

	buf.Reset()
	if err := WriteOutput(&buf, &Result{}, FormatText); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "No hay remates") {
		t.Errorf("unexpected empty output: %q", buf.String())
	}
}

func TestWriteOutput_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOutput(&buf, sampleResult(), FormatJSON); err != nil {
		t.Fatalf("WriteOutput failed: %v", err)
	}

	var decoded struct {
		Total   int                       `json:"total"`
		Shown   int                       `json:"shown"`
		Records []*listing.Listing        `json:"records"`
		Facets  map[string][]facets.Count `json:"facets"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Total != 5 || decoded.Shown != 2 || len(decoded.Records) != 2 {
		t.Errorf("counts wrong: %+v", decoded)
	}
	if len(decoded.Facets["tipo_bien"]) == 0 {
		t.Error("facets missing from JSON output")
	}
}

func TestWriteOutput_Table(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOutput(&buf, sampleResult(), FormatTable); err != nil {
		t.Fatalf("WriteOutput failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Viña del Mar") || !strings.Contains(out, "$45.000.000") {
		t.Errorf("table output incomplete:\n%s", out)
	}
	if !strings.Contains(out, "Mostrando 2 de 5 remates.") {
		t.Errorf("summary line missing:\n%s", out)
	}
}

func TestParseFormat(t *testing.T) {
	for _, ok := range []string{"text", "TABLE", "json", "html"} {
		if _, err := ParseFormat(ok); err != nil {
			t.Errorf("ParseFormat(%q) failed: %v", ok, err)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestPesos(t *testing.T) {
	tests := []struct {
		name   string
		amount *int64
		want   string
	}{
		{"nil", nil, "-"},
		{"small", int64Ptr(950), "$950"},
		{"thousands", int64Ptr(12500), "$12.500"},
		{"millions", int64Ptr(45000000), "$45.000.000"},
		{"exact groups", int64Ptr(1000), "$1.000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Pesos(tt.amount); got != tt.want {
				t.Errorf("Pesos() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestShorten(t *testing.T) {
	long := strings.Repeat("palabra ", 40)
	got := shorten(long, 60)
	if len([]rune(got)) > 60 {
		t.Errorf("shorten produced %d runes", len([]rune(got)))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("expected ellipsis, got %q", got)
	}
	if shorten("corto", 60) != "corto" {
		t.Error("short text should pass through")
	}
}
