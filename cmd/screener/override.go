package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/candidate-screener/internal/types"
)

var overrideCmd = &cobra.Command{
	Use:   "override",
	Short: "Replace an application's decision by hand",
	Long: `Replace the decision of an application. Scores are not recomputed. The original and
new decisions, the actor and the reason are written to the audit log.

Valid decisions: "Fast-Track Selected", "Selected", "Hire-Pooled", "Rejected", "Review Required".`,
	RunE: runOverride,
}

var (
	overrideApplicationID string
	overrideDecision      string
	overrideActor         string
	overrideReason        string
)

func init() {
	overrideCmd.Flags().StringVar(&overrideApplicationID, "application-id", "", "Application ID (required)")
	overrideCmd.Flags().StringVar(&overrideDecision, "decision", "", "New decision (required)")
	overrideCmd.Flags().StringVar(&overrideActor, "actor", "", "Who is making the change (required)")
	overrideCmd.Flags().StringVar(&overrideReason, "reason", "", "Why the decision is changed (required)")

	for _, name := range []string{"application-id", "decision", "actor", "reason"} {
		if err := overrideCmd.MarkFlagRequired(name); err != nil {
			panic(fmt.Sprintf("failed to mark %s flag as required: %v", name, err))
		}
	}

	rootCmd.AddCommand(overrideCmd)
}

func runOverride(cmd *cobra.Command, _ []string) error {
	applicationID, err := parseID("application-id", overrideApplicationID)
	if err != nil {
		return err
	}

	req := types.OverrideRequest{
		ApplicationID: applicationID,
		Decision:      types.Decision(overrideDecision),
		Actor:         overrideActor,
		Reason:        overrideReason,
	}
	if err := req.Validate(); err != nil {
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

	application, err := svc.OverrideDecision(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("override failed: %w", err)
	}

	return a.output(application, func() {
		fmt.Printf("Application %s is now %q\n", application.ID, application.Decision)
		fmt.Println(application.DecisionReason)
	})
}
