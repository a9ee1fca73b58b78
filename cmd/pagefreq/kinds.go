package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hyperifyio/pagefreq/internal/chart"
	"github.com/hyperifyio/pagefreq/internal/export"
)

// NewKindsCmd creates the kinds command.
func NewKindsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List chart kinds and output formats",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			w := cmd.OutOrStdout()
			for _, k := range chart.Kinds() {
				fmt.Fprintf(w, "%-10s %s\n", k, k.Label())
			}
			fmt.Fprint(w, "\nformats:")
			for _, f := range export.Formats() {
				fmt.Fprintf(w, " %s", f)
			}
			fmt.Fprintln(w)
		},
	}
}
