package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// listCmd prints every sector without opening the console.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print all sectors",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	sectors, err := cfg.Client().ListSectors(cmd.Context())
	if err != nil {
		return fmt.Errorf("list sectors: %w", err)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME")
	for _, s := range sectors {
		fmt.Fprintf(w, "%d\t%s\n", s.ID, s.Name)
	}
	return w.Flush()
}
