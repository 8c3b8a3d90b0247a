package render

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"rematierra/internal/facets"
	"rematierra/internal/listing"
)

// htmlRow is one table row of the report.
type htmlRow struct {
	Search           string
	FechaPublicacion string
	FechaRemate      string
	Tipo             string
	Procedimiento    string
	Deudor           string
	Martillero       string
	Region           string
	Comuna           string
	Direccion        string
	TipoBienes       string
	Descripcion      string
	ValorMinimo      string
	URL              string
}

type htmlFacet struct {
	Label  string
	Values []facets.Count
	Rest   int
}

type htmlReport struct {
	Title       string
	GeneratedAt string
	Criteria    string
	Total       int
	Facets      []htmlFacet
	Rows        []htmlRow
}

// WriteHTMLReport writes the standalone HTML report to path, creating
// parent directories.
func WriteHTMLReport(path string, result *Result) error {
	report := htmlReport{
		Title:       fmt.Sprintf("Remates (%d)", result.Shown),
		GeneratedAt: result.GeneratedAt.UTC().Format("2006-01-02 15:04 UTC"),
		Criteria:    result.Criteria,
		Total:       result.Shown,
	}
	if report.Criteria == "" {
		report.Criteria = "(sin filtros)"
	}

	if result.Facets != nil {
		for _, block := range []struct {
			label string
			field string
			limit int
		}{
			{"Tipos de bien", "tipo_bien", 0},
			{"Categorías de bienes", "tipo_bienes", 10},
			{"Regiones", "region", 10},
		} {
			values, rest := result.Facets.Top(block.field, block.limit)
			if len(values) == 0 {
				continue
			}
			shown := make([]facets.Count, 0, len(values))
			for _, count := range values {
				if count.Value == "" {
					count.Value = "(sin valor)"
				}
				shown = append(shown, count)
			}
			report.Facets = append(report.Facets, htmlFacet{Label: block.label, Values: shown, Rest: rest})
		}
	}

	for _, rec := range result.Records {
		report.Rows = append(report.Rows, buildRow(rec))
	}

	var buf strings.Builder
	if err := reportTemplate.Execute(&buf, report); err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating report directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(buf.String()), 0644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

func buildRow(rec *listing.Listing) htmlRow {
	fechaRemate := rec.FechaRemate
	if fechaRemate == "" {
		fechaRemate = rec.FechaTexto
	}
	if fechaRemate == "" {
		fechaRemate = "-"
	}

	search := listing.Fold(strings.Join([]string{
		rec.Titulo(), rec.TipoBienes, rec.Categoria(), rec.TipoProcedimiento,
		rec.DeudorNombre, rec.Martillero, rec.Region, rec.Comuna, rec.Direccion,
	}, " "))

	return htmlRow{
		Search:           search,
		FechaPublicacion: orDash(rec.FechaPublicacion),
		FechaRemate:      fechaRemate,
		Tipo:             orDash(rec.Categoria()),
		Procedimiento:    orDash(rec.TipoProcedimiento),
		Deudor:           orDash(rec.DeudorNombre),
		Martillero:       orDash(firstNonEmpty(rec.Martillero, rec.Liquidador)),
		Region:           orDash(rec.Region),
		Comuna:           orDash(rec.Comuna),
		Direccion:        orDash(rec.Direccion),
		TipoBienes:       orDash(rec.TipoBienes),
		Descripcion:      rec.Titulo(),
		ValorMinimo:      Pesos(rec.ValorMinimo),
		URL:              rec.SourceURL,
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="es">
<head>
  <meta charset="utf-8">
  <title>{{.Title}}</title>
  <style>
    body { font-family: Arial, sans-serif; margin: 2rem; color: #1f2933; background-color: #f8fafc; }
    h1 { margin-bottom: 0.25rem; }
    .meta { margin: 0.25rem 0; font-size: 0.95rem; color: #52606d; }
    .summary { margin: 1.5rem 0; display: grid; gap: 1rem; grid-template-columns: repeat(auto-fit, minmax(220px, 1fr)); }
    .summary article { background: #fff; border: 1px solid #d2d6dc; border-radius: 6px; padding: 0.75rem 1rem; box-shadow: 0 1px 2px rgba(15, 23, 42, 0.12); }
    .summary h2 { margin: 0 0 0.5rem 0; font-size: 1rem; color: #0f172a; }
    .summary ul { margin: 0; padding-left: 1.1rem; color: #364152; }
    .filters { margin: 1rem 0; }
    input[type='search'] { padding: 0.5rem; width: 320px; }
    table { width: 100%; border-collapse: collapse; background: white; }
    thead { background: #0f172a; color: white; }
    th, td { padding: 0.5rem; border: 1px solid #cbd2d9; vertical-align: top; }
    tbody tr:nth-child(even) { background: #f1f5f9; }
    tbody tr[hidden] { display: none; }
    .count { margin-bottom: 0.5rem; font-size: 0.9rem; color: #364152; }
  </style>
</head>
<body>
  <h1>{{.Title}}</h1>
  <p class="meta">Generado el {{.GeneratedAt}}</p>
  <p class="meta">Filtro: {{.Criteria}}</p>
{{- if .Facets}}
  <section class="summary">
{{- range .Facets}}
    <article>
      <h2>{{.Label}}</h2>
      <ul>
{{- range .Values}}
        <li>{{.Value}}: {{.N}}</li>
{{- end}}
{{- if gt .Rest 0}}
        <li>... y {{.Rest}} categorías más</li>
{{- end}}
      </ul>
    </article>
{{- end}}
  </section>
{{- end}}
  <div class="filters">
    <label for="text-filter">Filtrar en esta página:</label>
    <input id="text-filter" type="search" placeholder="Escribe para filtrar...">
  </div>
  <p class="count">Mostrando <span id="visible-count">{{.Total}}</span> de {{.Total}} remates.</p>
  <div class="table-wrapper">
    <table>
      <thead>
        <tr>
          <th>Publicación</th>
          <th>Fecha remate</th>
          <th>Tipo</th>
          <th>Procedimiento</th>
          <th>Deudor</th>
          <th>Martillero</th>
          <th>Región</th>
          <th>Comuna</th>
          <th>Dirección</th>
          <th>Tipo bienes</th>
          <th>Descripción</th>
          <th>Valor mínimo</th>
          <th>Documento</th>
        </tr>
      </thead>
      <tbody>
{{- range .Rows}}
        <tr data-search="{{.Search}}">
          <td>{{.FechaPublicacion}}</td>
          <td>{{.FechaRemate}}</td>
          <td>{{.Tipo}}</td>
          <td>{{.Procedimiento}}</td>
          <td>{{.Deudor}}</td>
          <td>{{.Martillero}}</td>
          <td>{{.Region}}</td>
          <td>{{.Comuna}}</td>
          <td>{{.Direccion}}</td>
          <td>{{.TipoBienes}}</td>
          <td>{{.Descripcion}}</td>
          <td>{{.ValorMinimo}}</td>
          <td><a href="{{.URL}}" target="_blank" rel="noopener noreferrer">Ver</a></td>
        </tr>
{{- end}}
      </tbody>
    </table>
  </div>
  <script>
    const filterInput = document.querySelector('#text-filter');
    const rows = Array.from(document.querySelectorAll('tbody tr'));
    const visibleCount = document.querySelector('#visible-count');
    filterInput.addEventListener('input', () => {
      const needle = filterInput.value.trim().toLowerCase();
      let visible = 0;
      rows.forEach((row) => {
        const text = row.dataset.search || '';
        const shouldShow = !needle || text.includes(needle);
        row.hidden = !shouldShow;
        if (shouldShow) visible += 1;
      });
      visibleCount.textContent = visible;
    });
  </script>
</body>
</html>
`))
