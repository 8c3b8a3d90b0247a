// Package filter provides the multi-criteria filter engine for remate
// listings.
//
// Criteria form a conjunction: a record must satisfy every active
// criterion. Within a criterion, values are alternatives (a record matches
// the region criterion when its region matches any of the requested
// regions). All text comparison is accent- and case-insensitive.
//
// Example:
//
//	f := filter.NewFilter()
//	f.Regiones = []string{"Valparaíso"}
//	f.Keywords = []string{"casa", "sitio"}
//	matches := f.Apply(records)
package filter

import (
	"fmt"
	"strings"
	"time"

	"rematierra/internal/listing"
)

// MatchMode selects how multiple keywords combine.
const (
	MatchAny = "any"
	MatchAll = "all"
)

// DefaultMatchFields are the Listing fields searched by keyword criteria
// when the caller does not choose its own set.
var DefaultMatchFields = []string{"descripcion", "tipo_bienes", "tipo_bien", "tipo_procedimiento"}

// Filter represents listing filter criteria.
type Filter struct {
	// Exact (folded) match against Categoria()
	Tipos []string `json:"tipos,omitempty"`

	// Substring match (folded) against region / comuna
	Regiones []string `json:"regiones,omitempty"`
	Comunas  []string `json:"comunas,omitempty"`

	// Exact match against the record's source tag
	Sources []string `json:"sources,omitempty"`

	// Keyword search over MatchFields, combined per MatchMode
	Keywords    []string `json:"keywords,omitempty"`
	MatchFields []string `json:"match_fields,omitempty"`
	MatchMode   string   `json:"match_mode,omitempty"`

	// Auction-date range, inclusive; falls back to the publication date
	// for records without an auction date
	DateFrom *time.Time `json:"date_from,omitempty"`
	DateTo   *time.Time `json:"date_to,omitempty"`

	// Minimum-price bounds in CLP, 0 = unset
	MinPrice int64 `json:"min_price,omitempty"`
	MaxPrice int64 `json:"max_price,omitempty"`

	// Only records with a parseable auction date
	ConFecha bool `json:"con_fecha,omitempty"`
}

// NewFilter creates an empty filter that matches every record.
func NewFilter() *Filter {
	return &Filter{
		Tipos:    []string{},
		Regiones: []string{},
		Comunas:  []string{},
		Sources:  []string{},
		Keywords: []string{},
	}
}

// IsEmpty reports whether the filter has any active criteria.
func (f *Filter) IsEmpty() bool {
	return len(f.Tipos) == 0 &&
		len(f.Regiones) == 0 &&
		len(f.Comunas) == 0 &&
		len(f.Sources) == 0 &&
		len(f.Keywords) == 0 &&
		f.DateFrom == nil &&
		f.DateTo == nil &&
		f.MinPrice == 0 &&
		f.MaxPrice == 0 &&
		!f.ConFecha
}

// Matches checks whether a record satisfies every active criterion.
// An empty filter matches all records. Records whose auction date could
// not be parsed are not excluded by the date range (use ConFecha to drop
// them).
func (f *Filter) Matches(l *listing.Listing) bool {
	if f.IsEmpty() {
		return true
	}

	date := l.RemateTime()

	// ConFecha wants a parseable auction date proper; the publication
	// fallback only serves the range criteria below.
	if f.ConFecha && listing.ParseDate(l.FechaRemate).IsZero() {
		return false
	}

	if f.DateFrom != nil && !date.IsZero() && date.Before(*f.DateFrom) {
		return false
	}
	if f.DateTo != nil && !date.IsZero() && date.After(*f.DateTo) {
		return false
	}

	if len(f.Tipos) > 0 && !matchExact(l.Categoria(), f.Tipos) {
		return false
	}
	if len(f.Regiones) > 0 && !matchSubstring(l.Region, f.Regiones) {
		return false
	}
	if len(f.Comunas) > 0 && !matchSubstring(l.Comuna, f.Comunas) {
		return false
	}
	if len(f.Sources) > 0 && !matchExact(l.Source, f.Sources) {
		return false
	}

	if len(f.Keywords) > 0 && !f.matchKeywords(l) {
		return false
	}

	if f.MinPrice > 0 {
		if l.ValorMinimo == nil || *l.ValorMinimo < f.MinPrice {
			return false
		}
	}
	if f.MaxPrice > 0 {
		if l.ValorMinimo == nil || *l.ValorMinimo > f.MaxPrice {
			return false
		}
	}

	return true
}

// Apply filters a record list. The input slice is returned unchanged for
// an empty filter; otherwise the result is a new slice preserving input
// order.
func (f *Filter) Apply(records []*listing.Listing) []*listing.Listing {
	if f.IsEmpty() {
		return records
	}

	var filtered []*listing.Listing
	for _, rec := range records {
		if f.Matches(rec) {
			filtered = append(filtered, rec)
		}
	}
	return filtered
}

// matchKeywords builds the folded haystack from the configured match
// fields and applies the any/all combination rule.
func (f *Filter) matchKeywords(l *listing.Listing) bool {
	fields := f.MatchFields
	if len(fields) == 0 {
		fields = DefaultMatchFields
	}

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, listing.FieldText(l, field))
	}
	haystack := listing.Fold(strings.Join(parts, " "))
	if haystack == "" {
		return false
	}

	all := f.MatchMode == MatchAll
	for _, kw := range f.Keywords {
		needle := listing.Fold(kw)
		if needle == "" {
			continue
		}
		found := strings.Contains(haystack, needle)
		if all && !found {
			return false
		}
		if !all && found {
			return true
		}
	}
	return all
}

// ResolveMatchFields validates a requested field set against the known
// Listing fields. Invalid names are returned separately; an all-invalid
// request falls back to descripcion.
func ResolveMatchFields(requested []string) (valid, invalid []string) {
	known := make(map[string]bool)
	for _, f := range listing.KnownFields() {
		known[f] = true
	}

	for _, field := range requested {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		if known[field] {
			valid = append(valid, field)
		} else {
			invalid = append(invalid, field)
		}
	}

	if len(valid) == 0 {
		valid = []string{"descripcion"}
	}
	return valid, invalid
}

// String returns a human-readable description of the active criteria.
func (f *Filter) String() string {
	if f.IsEmpty() {
		return "sin filtros activos"
	}

	var parts []string
	if len(f.Tipos) > 0 {
		parts = append(parts, fmt.Sprintf("tipo: %s", strings.Join(f.Tipos, ", ")))
	}
	if len(f.Regiones) > 0 {
		parts = append(parts, fmt.Sprintf("region: %s", strings.Join(f.Regiones, ", ")))
	}
	if len(f.Comunas) > 0 {
		parts = append(parts, fmt.Sprintf("comuna: %s", strings.Join(f.Comunas, ", ")))
	}
	if len(f.Sources) > 0 {
		parts = append(parts, fmt.Sprintf("fuente: %s", strings.Join(f.Sources, ", ")))
	}
	if len(f.Keywords) > 0 {
		mode := f.MatchMode
		if mode == "" {
			mode = MatchAny
		}
		parts = append(parts, fmt.Sprintf("palabras (%s): %s", mode, strings.Join(f.Keywords, ", ")))
	}
	if f.DateFrom != nil {
		parts = append(parts, fmt.Sprintf("desde: %s", f.DateFrom.Format("2006-01-02")))
	}
	if f.DateTo != nil {
		parts = append(parts, fmt.Sprintf("hasta: %s", f.DateTo.Format("2006-01-02")))
	}
	if f.MinPrice > 0 {
		parts = append(parts, fmt.Sprintf("minimo: $%d", f.MinPrice))
	}
	if f.MaxPrice > 0 {
		parts = append(parts, fmt.Sprintf("maximo: $%d", f.MaxPrice))
	}
	if f.ConFecha {
		parts = append(parts, "solo con fecha")
	}

	return strings.Join(parts, " | ")
}

// Clone creates a deep copy of the filter.
func (f *Filter) Clone() *Filter {
	clone := &Filter{
		MatchMode: f.MatchMode,
		MinPrice:  f.MinPrice,
		MaxPrice:  f.MaxPrice,
		ConFecha:  f.ConFecha,
	}

	if f.DateFrom != nil {
		df := *f.DateFrom
		clone.DateFrom = &df
	}
	if f.DateTo != nil {
		dt := *f.DateTo
		clone.DateTo = &dt
	}

	clone.Tipos = append([]string{}, f.Tipos...)
	clone.Regiones = append([]string{}, f.Regiones...)
	clone.Comunas = append([]string{}, f.Comunas...)
	clone.Sources = append([]string{}, f.Sources...)
	clone.Keywords = append([]string{}, f.Keywords...)
	clone.MatchFields = append([]string(nil), f.MatchFields...)

	return clone
}

func matchExact(value string, wanted []string) bool {
	folded := listing.Fold(value)
	for _, w := range wanted {
		if folded == listing.Fold(w) {
			return true
		}
	}
	return false
}

func matchSubstring(value string, wanted []string) bool {
	folded := listing.Fold(value)
	for _, w := range wanted {
		needle := listing.Fold(w)
		if needle != "" && strings.Contains(folded, needle) {
			return true
		}
	}
	return false
}
