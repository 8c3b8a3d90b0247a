package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"rematierra/internal/facets"
	"rematierra/internal/render"
)

func newReportCmd() *cobra.Command {
	var (
		in     inputFlags
		ff     filterFlags
		limit  int
		output string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Genera un informe HTML autónomo con buscador",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := ff.build()
			if err != nil {
				return err
			}

			records, err := in.load(cmd.Context())
			if err != nil {
				return err
			}

			matched := f.Apply(records)
			shown := matched
			if limit > 0 && len(shown) > limit {
				shown = shown[:limit]
			}

			result := &render.Result{
				GeneratedAt: time.Now(),
				Total:       len(records),
				Shown:       len(shown),
				Criteria:    f.String(),
				Records:     shown,
				Facets:      facets.Build(matched),
			}
			if err := render.WriteHTMLReport(output, result); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Informe HTML escrito en %s\n", output)
			return nil
		},
	}

	in.register(cmd)
	ff.register(cmd)
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Include at most N records (0 = all)")
	cmd.Flags().StringVar(&output, "output", "remates.html", "Report file to write")

	return cmd
}
