package render

import (
	"encoding/json"
	"fmt"
	"io"

	"rematierra/internal/facets"
)

// writeText prints the original CLI's card form: one summary line plus the
// source URL per record, then the optional facet summaries.
func writeText(w io.Writer, result *Result) error {
	if result.Shown == 0 {
		if result.Total > 0 {
			fmt.Fprintf(w, "0 de %d remates coinciden con el filtro.\n", result.Total)
		} else {
			fmt.Fprintln(w, "No hay remates para mostrar.")
		}
		return nil
	}

	if result.Total != result.Shown {
		fmt.Fprintf(w, "%d de %d remates:\n", result.Shown, result.Total)
	} else {
		fmt.Fprintf(w, "%d remates:\n", result.Shown)
	}

	for _, rec := range result.Records {
		fechaRemate := rec.FechaRemate
		if fechaRemate == "" {
			if rec.FechaTexto != "" {
				fechaRemate = rec.FechaTexto
			} else {
				fechaRemate = "sin fecha remate"
			}
		}
		fechaPub := rec.FechaPublicacion
		if fechaPub == "" {
			fechaPub = "sin publicacion"
		}
		region := rec.Region
		if region == "" {
			region = "Sin region"
		}
		comuna := rec.Comuna
		if comuna == "" {
			comuna = "Sin comuna"
		}

		fmt.Fprintf(w, "- %s | remate %s | %s | %s / %s | %s",
			fechaPub, fechaRemate, rec.Categoria(), region, comuna,
			shorten(rec.Titulo(), 140))
		if rec.ValorMinimo != nil {
			fmt.Fprintf(w, " | minimo %s", Pesos(rec.ValorMinimo))
		}
		fmt.Fprintln(w)
		fmt.Fprintf(w, "  URL: %s\n", rec.SourceURL)
	}

	if result.Facets != nil {
		writeFacetsText(w, result.Facets)
	}

	return nil
}

// writeFacetsText prints the category summaries the way the original CLI
// did: full tipo list, top-10 everything else.
func writeFacetsText(w io.Writer, idx *facets.Index) {
	writeFacetBlock(w, "Tipos de bien", idx, "tipo_bien", 0)
	writeFacetBlock(w, "Categorias de bienes (top 10)", idx, "tipo_bienes", 10)
	writeFacetBlock(w, "Regiones (top 10)", idx, "region", 10)
	writeFacetBlock(w, "Fuentes", idx, "source", 0)
}

// WriteFacets prints only the category summaries, every value included.
// Supports the text and json formats.
func WriteFacets(w io.Writer, idx *facets.Index, total int, format Format) error {
	switch format {
	case FormatJSON:
		out := struct {
			Total  int                       `json:"total"`
			Facets map[string][]facets.Count `json:"facets"`
		}{Total: total, Facets: idx.MarshalFields()}
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		encoder.SetEscapeHTML(false)
		return encoder.Encode(out)
	case FormatText:
		fmt.Fprintf(w, "%d remates en el dataset.\n", total)
		for _, field := range facets.Fields {
			writeFacetBlock(w, facetLabel(field), idx, field, 0)
		}
		return nil
	default:
		return fmt.Errorf("formato no soportado para facetas: %s", format)
	}
}

func facetLabel(field string) string {
	switch field {
	case "tipo_bien":
		return "Tipos de bien"
	case "tipo_bienes":
		return "Categorias de bienes"
	case "region":
		return "Regiones"
	case "comuna":
		return "Comunas"
	case "source":
		return "Fuentes"
	case "moneda":
		return "Monedas"
	default:
		return field
	}
}

func writeFacetBlock(w io.Writer, label string, idx *facets.Index, field string, limit int) {
	values, rest := idx.Top(field, limit)

	fmt.Fprintln(w)
	if len(values) == 0 {
		fmt.Fprintf(w, "%s: sin datos\n", label)
		return
	}

	fmt.Fprintf(w, "%s:\n", label)
	for _, count := range values {
		name := count.Value
		if name == "" {
			name = "(sin valor)"
		}
		fmt.Fprintf(w, "- %s: %d\n", name, count.N)
	}
	if rest > 0 {
		fmt.Fprintf(w, "... y %d categorias mas\n", rest)
	}
}
