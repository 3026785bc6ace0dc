package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"ripdoctor/internal/history"
)

func newHistoryCommand(opts *rootOptions) *cobra.Command {
	var (
		limit      int
		forPath    string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded analysis runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadEnvironment(opts)
			if err != nil {
				return err
			}
			if !cfg.History.Enabled {
				return fmt.Errorf("history is disabled in the configuration")
			}

			store, err := history.Open(cfg.History.Path)
			if err != nil {
				return err
			}
			defer store.Close()

			var runs []history.Run
			if forPath != "" {
				runs, err = store.ForPath(cmd.Context(), forPath, limit)
			} else {
				runs, err = store.Recent(cmd.Context(), limit)
			}
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, runs)
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no recorded runs")
				return nil
			}

			headers := []string{"When", "Path", "Mode", "Issues", "Findings"}
			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					run.CreatedAt.Local().Format(time.DateTime),
					run.Path,
					run.Mode,
					strconv.Itoa(run.TotalIssues),
					strconv.Itoa(run.Findings),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight}))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of runs to show")
	cmd.Flags().StringVarP(&forPath, "path", "p", "", "show runs for one file only")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "print the runs as JSON")
	return cmd
}
