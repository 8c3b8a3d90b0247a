// Package render maps a filtered record list to its output form: text
// cards, a summary table, JSON, or a standalone HTML report.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"rematierra/internal/facets"
	"rematierra/internal/listing"
)

// Format selects the output form.
type Format string

const (
	FormatText  Format = "text"
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatHTML  Format = "html"
)

// ParseFormat validates a format flag value.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatText:
		return FormatText, nil
	case FormatTable:
		return FormatTable, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatHTML:
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("formato desconocido %q (text, table, json, html)", s)
	}
}

// Result is the renderable outcome of a list operation.
type Result struct {
	GeneratedAt time.Time          `json:"generated_at"`
	Total       int                `json:"total"`
	Shown       int                `json:"shown"`
	Criteria    string             `json:"criteria,omitempty"`
	Records     []*listing.Listing `json:"records"`

	// Facet summaries, optional
	Facets *facets.Index `json:"-"`
}

// resultJSON adds the exported facet map to the JSON form.
type resultJSON struct {
	*Result
	Facets map[string][]facets.Count `json:"facets,omitempty"`
}

// WriteOutput writes the result in the requested format. HTML output goes
// through WriteHTMLReport instead; requesting it here is an error.
func WriteOutput(w io.Writer, result *Result, format Format) error {
	switch format {
	case FormatText:
		return writeText(w, result)
	case FormatTable:
		return writeTable(w, result)
	case FormatJSON:
		return writeJSON(w, result)
	default:
		return fmt.Errorf("formato no soportado para salida directa: %s", format)
	}
}

func writeJSON(w io.Writer, result *Result) error {
	out := resultJSON{Result: result}
	if result.Facets != nil {
		out.Facets = result.Facets.MarshalFields()
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(out)
}

// Pesos formats a CLP amount with dot thousands separators: $12.345.678.
// A nil amount renders as "-".
func Pesos(amount *int64) string {
	if amount == nil {
		return "-"
	}

	digits := fmt.Sprintf("%d", *amount)
	negative := strings.HasPrefix(digits, "-")
	if negative {
		digits = digits[1:]
	}

	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)

	out := "$" + strings.Join(groups, ".")
	if negative {
		out = "-" + out
	}
	return out
}

// shorten trims text to width runes on a word boundary, appending "..."
// when something was cut.
func shorten(text string, width int) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}

	cut := string(runes[:width-3])
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return cut + "..."
}
