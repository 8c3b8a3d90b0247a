package filter

import (
	"testing"
	"time"

	"rematierra/internal/listing"
)

func int64Ptr(v int64) *int64 { return &v }

func timePtr(t time.Time) *time.Time { return &t }

func TestFilter_IsEmpty(t *testing.T) {
	tests := []struct {
		name   string
		filter *Filter
		want   bool
	}{
		{
			name:   "empty filter",
			filter: NewFilter(),
			want:   true,
		},
		{
			name: "filter with region",
			filter: &Filter{
				Regiones: []string{"Valparaíso"},
			},
			want: false,
		},
		{
			name: "filter with date from",
			filter: &Filter{
				DateFrom: timePtr(time.Now()),
			},
			want: false,
		},
		{
			name: "filter with con fecha",
			filter: &Filter{
				ConFecha: true,
			},
			want: false,
		},
		{
			name: "filter with max price",
			filter: &Filter{
				MaxPrice: 50000000,
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.IsEmpty(); got != tt.want {
				t.Errorf("Filter.IsEmpty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilter_Matches(t *testing.T) {
	casa := &listing.Listing{
		ID:           "a",
		TipoBien:     "inmueble",
		Descripcion:  "Casa habitación en Viña del Mar",
		Region:       "Región de Valparaíso",
		Comuna:       "Viña del Mar",
		FechaRemate:  "2025-11-03 10:00",
		ValorMinimo:  int64Ptr(45000000),
		Source:       "boletin_concursal",
		DeudorNombre: "Comercial Andina SpA",
	}
	camion := &listing.Listing{
		ID:          "b",
		TipoBien:    "mueble",
		Descripcion: "Camión tolva año 2018",
		TipoBienes:  "Vehículos",
		Region:      "Metropolitana",
		Comuna:      "Santiago",
		FechaTexto:  "por confirmar",
		Source:      "boletin_concursal",
	}
	// Published on a known date, auction date never parsed.
	bodega := &listing.Listing{
		ID:               "c",
		TipoBien:         "inmueble",
		Descripcion:      "Bodega en Quilicura",
		Region:           "Metropolitana",
		FechaPublicacion: "2025-10-14",
		FechaTexto:       "segunda quincena de noviembre",
		Source:           "boletin_concursal",
	}

	tests := []struct {
		name   string
		filter *Filter
		rec    *listing.Listing
		want   bool
	}{
		{
			name:   "empty filter matches all",
			filter: NewFilter(),
			rec:    camion,
			want:   true,
		},
		{
			name:   "region substring, accent-insensitive",
			filter: &Filter{Regiones: []string{"valparaiso"}},
			rec:    casa,
			want:   true,
		},
		{
			name:   "region mismatch",
			filter: &Filter{Regiones: []string{"valparaiso"}},
			rec:    camion,
			want:   false,
		},
		{
			name:   "tipo exact match",
			filter: &Filter{Tipos: []string{"Inmueble"}},
			rec:    casa,
			want:   true,
		},
		{
			name:   "tipo is not a substring match",
			filter: &Filter{Tipos: []string{"mueble"}},
			rec:    casa,
			want:   false,
		},
		{
			name:   "comuna accent folded",
			filter: &Filter{Comunas: []string{"viña"}},
			rec:    casa,
			want:   true,
		},
		{
			name:   "keyword any mode",
			filter: &Filter{Keywords: []string{"tolva", "bodega"}},
			rec:    camion,
			want:   true,
		},
		{
			name:   "keyword all mode fails on partial",
			filter: &Filter{Keywords: []string{"tolva", "bodega"}, MatchMode: MatchAll},
			rec:    camion,
			want:   false,
		},
		{
			name:   "keyword all mode passes",
			filter: &Filter{Keywords: []string{"camion", "vehiculos"}, MatchMode: MatchAll},
			rec:    camion,
			want:   true,
		},
		{
			name:   "keyword over custom field",
			filter: &Filter{Keywords: []string{"andina"}, MatchFields: []string{"deudor_nombre"}},
			rec:    casa,
			want:   true,
		},
		{
			name:   "keyword not searched outside match fields",
			filter: &Filter{Keywords: []string{"andina"}},
			rec:    casa,
			want:   false,
		},
		{
			name: "date range includes",
			filter: &Filter{
				DateFrom: timePtr(time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)),
				DateTo:   timePtr(time.Date(2025, 11, 30, 0, 0, 0, 0, time.UTC)),
			},
			rec:  casa,
			want: true,
		},
		{
			name: "date range excludes",
			filter: &Filter{
				DateFrom: timePtr(time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)),
			},
			rec:  casa,
			want: false,
		},
		{
			name: "no parseable date passes date range",
			filter: &Filter{
				DateFrom: timePtr(time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)),
			},
			rec:  camion,
			want: true,
		},
		{
			name:   "con fecha drops dateless records",
			filter: &Filter{ConFecha: true},
			rec:    camion,
			want:   false,
		},
		{
			name:   "con fecha ignores the publication fallback",
			filter: &Filter{ConFecha: true},
			rec:    bodega,
			want:   false,
		},
		{
			name:   "date range still uses the publication fallback",
			filter: &Filter{DateFrom: timePtr(time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC))},
			rec:    bodega,
			want:   false,
		},
		{
			name:   "min price",
			filter: &Filter{MinPrice: 40000000},
			rec:    casa,
			want:   true,
		},
		{
			name:   "max price excludes",
			filter: &Filter{MaxPrice: 40000000},
			rec:    casa,
			want:   false,
		},
		{
			name:   "price criteria exclude records without price",
			filter: &Filter{MinPrice: 1},
			rec:    camion,
			want:   false,
		},
		{
			name:   "source filter",
			filter: &Filter{Sources: []string{"boletin_concursal"}},
			rec:    casa,
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Matches(tt.rec); got != tt.want {
				t.Errorf("Filter.Matches() = %v, want %v (filter %s)", got, tt.want, tt.filter)
			}
		})
	}
}

func TestFilter_Apply(t *testing.T) {
	records := []*listing.Listing{
		{ID: "1", TipoBien: "inmueble", Region: "Valparaíso"},
		{ID: "2", TipoBien: "mueble", Region: "Valparaíso"},
		{ID: "3", TipoBien: "inmueble", Region: "Biobío"},
	}

	// Empty filter returns the same slice.
	empty := NewFilter()
	if got := empty.Apply(records); len(got) != 3 {
		t.Errorf("empty filter should pass everything, got %d", len(got))
	}

	f := &Filter{Tipos: []string{"inmueble"}}
	got := f.Apply(records)
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(got))
	}
	// Order preserved.
	if got[0].ID != "1" || got[1].ID != "3" {
		t.Errorf("input order not preserved: %s, %s", got[0].ID, got[1].ID)
	}
}

func TestFilter_Clone(t *testing.T) {
	from := time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)
	orig := &Filter{
		Tipos:    []string{"inmueble"},
		Regiones: []string{"Valparaíso"},
		Keywords: []string{"casa"},
		DateFrom: &from,
		MinPrice: 1000,
	}

	clone := orig.Clone()
	clone.Tipos[0] = "mueble"
	*clone.DateFrom = clone.DateFrom.AddDate(1, 0, 0)

	if orig.Tipos[0] != "inmueble" {
		t.Error("mutating clone slice affected original")
	}
	if !orig.DateFrom.Equal(from) {
		t.Error("mutating clone date affected original")
	}
}

func TestResolveMatchFields(t *testing.T) {
	valid, invalid := ResolveMatchFields([]string{"descripcion", "telefono", "region"})
	if len(valid) != 2 || valid[0] != "descripcion" || valid[1] != "region" {
		t.Errorf("valid = %v", valid)
	}
	if len(invalid) != 1 || invalid[0] != "telefono" {
		t.Errorf("invalid = %v", invalid)
	}

	// All invalid falls back to descripcion.
	valid, _ = ResolveMatchFields([]string{"no", "tampoco"})
	if len(valid) != 1 || valid[0] != "descripcion" {
		t.Errorf("fallback = %v", valid)
	}
}
