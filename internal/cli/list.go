package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"rematierra/internal/facets"
	"rematierra/internal/logger"
	"rematierra/internal/render"
)

func newListCmd() *cobra.Command {
	var (
		in         inputFlags
		ff         filterFlags
		format     string
		limit      int
		showFacets bool
		output     string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Lista los remates del dataset, con filtros opcionales",
		RunE: func(cmd *cobra.Command, args []string) error {
			outFormat, err := render.ParseFormat(format)
			if err != nil {
				return err
			}

			f, err := ff.build()
			if err != nil {
				return err
			}

			records, err := in.load(cmd.Context())
			if err != nil {
				return err
			}

			matched := f.Apply(records)
			logger.L().Debug("filtered dataset",
				zap.Int("total", len(records)),
				zap.Int("matched", len(matched)))

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
			}
			if showFacets {
				result.Facets = facets.Build(matched)
			}

			if outFormat == render.FormatHTML {
				if output == "" {
					return fmt.Errorf("el formato html requiere --output")
				}
				if err := render.WriteHTMLReport(output, result); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Informe HTML escrito en %s\n", output)
				return nil
			}

			w, closeOutput, err := openOutput(output)
			if err != nil {
				return err
			}
			defer closeOutput()
			return render.WriteOutput(w, result, outFormat)
		},
	}

	in.register(cmd)
	ff.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "o", "text", "Output format: text, table, json or html")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show at most N records (0 = all)")
	cmd.Flags().BoolVar(&showFacets, "facets", false, "Include category summaries")
	cmd.Flags().StringVar(&output, "output", "", "Write to a file instead of stdout")

	return cmd
}
