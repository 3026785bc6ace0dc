package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ripdoctor/internal/deps"
)

func newDepsCommand(opts *rootOptions) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "deps",
		Short: "Check availability of the external tool binaries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadEnvironment(opts)
			if err != nil {
				return err
			}
			results := deps.CheckBinaries(deps.Requirements(cfg))
			if jsonOutput {
				return writeJSON(cmd, results)
			}

			headers := []string{"Tool", "Command", "Status", "Notes"}
			rows := make([][]string, 0, len(results))
			missing := 0
			for _, res := range results {
				status := "available"
				notes := res.Description
				if !res.Available {
					status = "missing"
					notes = res.Detail
					missing++
				}
				rows = append(rows, []string{res.Name, res.Command, status, notes})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, []columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft}))

			if missing > 0 {
				return fmt.Errorf("%d required tool(s) missing", missing)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "print the results as JSON")
	return cmd
}
