package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-flowfeat/dsp/wavelet"
)

func newWaveletsCmd(_ *app) *cobra.Command {
	var length int

	cmd := &cobra.Command{
		Use:   "wavelets",
		Short: "list supported wavelet bases",
		Long: `List the supported wavelet bases with their filter length and the
shortest sequence a decomposition accepts. With --length the deepest useful
decomposition level for sequences of that length is shown as well.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)

			header := "Wavelet\tFamily\tFilter\tMin length"
			if length > 0 {
				header += "\tMax level"
			}
			if _, err := fmt.Fprintln(tw, header); err != nil {
				return err
			}

			for _, name := range wavelet.Names() {
				w, err := wavelet.Lookup(name)
				if err != nil {
					return err
				}

				row := fmt.Sprintf("%s\t%s\t%d\t%d", w.Name, w.Family, w.Len(), max(w.Len()-1, 1))
				if length > 0 {
					row += fmt.Sprintf("\t%d", wavelet.MaxLevel(length, w.Len()))
				}

				if _, err := fmt.Fprintln(tw, row); err != nil {
					return err
				}
			}

			return tw.Flush()
		},
	}

	cmd.Flags().IntVarP(&length, "length", "n", 0, "sequence length for the max level column")

	return cmd
}
