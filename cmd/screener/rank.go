package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Recompute and show the ranking for a job",
	Long:  "Recompute ranks for every application to a job. Fraud-flagged applications stay unranked. Safe to run repeatedly.",
	RunE:  runRank,
}

var rankJobID string

func init() {
	rankCmd.Flags().StringVar(&rankJobID, "job-id", "", "Job ID (required)")

	if err := rankCmd.MarkFlagRequired("job-id"); err != nil {
		panic(fmt.Sprintf("failed to mark job-id flag as required: %v", err))
	}

	rootCmd.AddCommand(rankCmd)
}

func runRank(cmd *cobra.Command, _ []string) error {
	jobID, err := parseID("job-id", rankJobID)
	if err != nil {
		return err
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	svc, err := a.openService(cmd.Context(), false)
	if err != nil {
		return err
	}

	ranked, err := svc.RecomputeRanks(cmd.Context(), jobID)
	if err != nil {
		return err
	}

	return a.output(ranked, func() {
		if len(ranked) == 0 {
			fmt.Println("No applications for this job")
			return
		}
		a.printer.PrintRanking(ranked)
	})
}
