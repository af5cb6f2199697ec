package main

import (
	"fmt"

	"github.com/spf13/cobra"

	schemafiles "github.com/jonathan/candidate-screener/schemas"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Summarize all applications to a job",
	Long:  "Print the decision breakdown, average scores, fraud statistics and top candidates for a job.",
	RunE:  runReport,
}

var reportJobID string

func init() {
	reportCmd.Flags().StringVar(&reportJobID, "job-id", "", "Job ID (required)")

	if err := reportCmd.MarkFlagRequired("job-id"); err != nil {
		panic(fmt.Sprintf("failed to mark job-id flag as required: %v", err))
	}

	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, _ []string) error {
	jobID, err := parseID("job-id", reportJobID)
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

	report, err := svc.JobReport(cmd.Context(), jobID)
	if err != nil {
		return err
	}

	a.checkSchema(schemafiles.JobReport, report)
	return a.output(report, func() {
		a.printer.PrintJobReport(report)
	})
}
