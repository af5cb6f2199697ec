package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/candidate-screener/internal/pipeline"
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit a candidate to a job and evaluate the application",
	Long: `Evaluate a registered candidate against a registered job, store the application and
recompute the job's ranking.

If the application is stored but ranking fails, the application is printed and the
command exits with an error; run 'screener rank' for the job to retry.`,
	RunE: runSubmit,
}

var (
	submitJobID       string
	submitCandidateID string
)

func init() {
	submitCmd.Flags().StringVar(&submitJobID, "job-id", "", "Job ID (required)")
	submitCmd.Flags().StringVar(&submitCandidateID, "candidate-id", "", "Candidate ID (required)")

	if err := submitCmd.MarkFlagRequired("job-id"); err != nil {
		panic(fmt.Sprintf("failed to mark job-id flag as required: %v", err))
	}
	if err := submitCmd.MarkFlagRequired("candidate-id"); err != nil {
		panic(fmt.Sprintf("failed to mark candidate-id flag as required: %v", err))
	}

	rootCmd.AddCommand(submitCmd)
}

func runSubmit(cmd *cobra.Command, _ []string) error {
	jobID, err := parseID("job-id", submitJobID)
	if err != nil {
		return err
	}
	candidateID, err := parseID("candidate-id", submitCandidateID)
	if err != nil {
		return err
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	svc, err := a.openService(cmd.Context(), true)
	if err != nil {
		return err
	}

	application, err := svc.Submit(cmd.Context(), jobID, candidateID)
	var rankErr *pipeline.RankingError
	if err != nil && !errors.As(err, &rankErr) {
		return fmt.Errorf("submission failed: %w", err)
	}

	if outErr := a.output(application, func() {
		fmt.Printf("Application %s\n", application.ID)
		if application.Rank != nil {
			fmt.Printf("Rank: %d\n", *application.Rank)
		}
		a.printer.PrintEvaluation(&pipeline.Evaluation{
			Match:      application.SkillMatch,
			Scores:     application.Scores,
			Experience: application.Experience,
			Fraud:      application.Fraud,
			Decision:   application.Decision,
			Reason:     application.DecisionReason,
			Evidence:   application.Evidence,
		})
	}); outErr != nil {
		return outErr
	}

	if rankErr != nil {
		fmt.Fprintf(os.Stderr, "Warning: application stored but ranking failed; retry with: screener rank --job-id %s\n", rankErr.JobID)
		return rankErr
	}
	return nil
}

// parseID parses a UUID flag value.
func parseID(flag, value string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid --%s %q: %w", flag, value, err)
	}
	return id, nil
}
