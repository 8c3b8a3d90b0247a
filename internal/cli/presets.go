package cli

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"rematierra/internal/filter"
)

func newPresetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "Administra filtros guardados",
	}

	cmd.AddCommand(newPresetsSaveCmd())
	cmd.AddCommand(newPresetsListCmd())
	cmd.AddCommand(newPresetsDeleteCmd())

	return cmd
}

func newPresetsSaveCmd() *cobra.Command {
	var ff filterFlags

	cmd := &cobra.Command{
		Use:   "save NAME",
		Short: "Guarda el filtro indicado bajo un nombre",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := ff.build()
			if err != nil {
				return err
			}
			if f.IsEmpty() {
				return fmt.Errorf("el filtro está vacío; indique al menos un criterio")
			}

			store, err := presetStore()
			if err != nil {
				return err
			}
			if err := store.Save(filter.NewPreset(args[0], f)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Filtro %q guardado: %s\n", args[0], f.String())
			return nil
		},
	}

	ff.register(cmd)
	return cmd
}

func newPresetsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Lista los filtros guardados",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := presetStore()
			if err != nil {
				return err
			}
			presets, err := store.List()
			if err != nil {
				return err
			}
			if len(presets) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No hay filtros guardados.")
				return nil
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleRounded)
			t.AppendHeader(table.Row{"Nombre", "Criterios", "Actualizado"})
			for _, p := range presets {
				t.AppendRow(table.Row{
					p.Name,
					p.Filter.String(),
					p.UpdatedAt.Format("2006-01-02 15:04"),
				})
			}
			t.Render()
			return nil
		},
	}
}

func newPresetsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete NAME",
		Short: "Elimina un filtro guardado",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := presetStore()
			if err != nil {
				return err
			}
			if err := store.Delete(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Filtro %q eliminado.\n", args[0])
			return nil
		},
	}
}
