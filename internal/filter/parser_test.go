package filter

import (
	"strings"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	f, err := Parse(`region:Valparaíso tipo:inmueble q:"casa quinta" q:sitio modo:all desde:2025-10-01 hasta:2025-10-31 min:1000000 max:90000000`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(f.Regiones) != 1 || f.Regiones[0] != "Valparaíso" {
		t.Errorf("Regiones = %v", f.Regiones)
	}
	if len(f.Tipos) != 1 || f.Tipos[0] != "inmueble" {
		t.Errorf("Tipos = %v", f.Tipos)
	}
	if len(f.Keywords) != 2 || f.Keywords[0] != "casa quinta" || f.Keywords[1] != "sitio" {
		t.Errorf("Keywords = %v", f.Keywords)
	}
	if f.MatchMode != MatchAll {
		t.Errorf("MatchMode = %q", f.MatchMode)
	}
	wantFrom := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	if f.DateFrom == nil || !f.DateFrom.Equal(wantFrom) {
		t.Errorf("DateFrom = %v", f.DateFrom)
	}
	// hasta is inclusive: end of day.
	if f.DateTo == nil || f.DateTo.Day() != 31 || f.DateTo.Hour() != 23 {
		t.Errorf("DateTo = %v", f.DateTo)
	}
	if f.MinPrice != 1000000 || f.MaxPrice != 90000000 {
		t.Errorf("prices = %d, %d", f.MinPrice, f.MaxPrice)
	}
}

func TestParse_Empty(t *testing.T) {
	f, err := Parse("")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !f.IsEmpty() {
		t.Error("empty expression should produce empty filter")
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want string
	}{
		{"unknown key", "color:rojo", "clave desconocida"},
		{"missing value", "region:", "clave:valor"},
		{"bad mode", "modo:some", "modo inválido"},
		{"bad date", "desde:mañana", "fecha inválida"},
		{"bad amount", "min:mucho", "monto inválido"},
		{"unclosed quote", `q:"casa`, "comillas"},
		{"inverted range", "desde:2025-12-01 hasta:2025-11-01", "posterior"},
		{"inverted prices", "min:100 max:50", "mayor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.expr)
			if err == nil {
				t.Fatalf("expected error for %q", tt.expr)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestParse_SourceAlias(t *testing.T) {
	f, err := Parse("fuente:boletin_concursal source:bienes_nacionales")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(f.Sources) != 2 {
		t.Errorf("Sources = %v", f.Sources)
	}
}
