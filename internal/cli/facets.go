package cli

import (
	"github.com/spf13/cobra"

	"rematierra/internal/facets"
	"rematierra/internal/render"
)

func newFacetsCmd() *cobra.Command {
	var (
		in     inputFlags
		format string
	)

	cmd := &cobra.Command{
		Use:   "facets",
		Short: "Resume las categorías del dataset (tipo, región, comuna, fuente)",
		RunE: func(cmd *cobra.Command, args []string) error {
			outFormat, err := render.ParseFormat(format)
			if err != nil {
				return err
			}

			records, err := in.load(cmd.Context())
			if err != nil {
				return err
			}

			idx := facets.Build(records)
			return render.WriteFacets(cmd.OutOrStdout(), idx, len(records), outFormat)
		},
	}

	in.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "o", "text", "Output format: text or json")

	return cmd
}
