package render

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

// writeTable prints a compact summary table.
func writeTable(w io.Writer, result *Result) error {
	if result.Shown == 0 {
		fmt.Fprintln(w, "No hay remates para mostrar.")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Fecha remate", "Tipo", "Región", "Comuna", "Descripción", "Mínimo"})

	for _, rec := range result.Records {
		fecha := rec.FechaRemate
		if fecha == "" {
			fecha = rec.FechaTexto
		}
		t.AppendRow(table.Row{
			fecha,
			rec.Categoria(),
			rec.Region,
			rec.Comuna,
			shorten(rec.Titulo(), 60),
			Pesos(rec.ValorMinimo),
		})
	}

	t.SetStyle(table.StyleRounded)
	t.Render()

	fmt.Fprintf(w, "Mostrando %d de %d remates.\n", result.Shown, result.Total)
	return nil
}
