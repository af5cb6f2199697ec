package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/candidate-screener/internal/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the audit trail of a job, candidate or application",
	RunE:  runHistory,
}

var (
	historyEntityType string
	historyID         string
)

func init() {
	historyCmd.Flags().StringVar(&historyEntityType, "entity", types.EntityApplication, "Entity type: job, candidate or application")
	historyCmd.Flags().StringVar(&historyID, "id", "", "Entity ID (required)")

	if err := historyCmd.MarkFlagRequired("id"); err != nil {
		panic(fmt.Sprintf("failed to mark id flag as required: %v", err))
	}

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	switch historyEntityType {
	case types.EntityJob, types.EntityCandidate, types.EntityApplication:
	default:
		return fmt.Errorf("unknown --entity %q: must be job, candidate or application", historyEntityType)
	}

	id, err := parseID("id", historyID)
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

	events, err := svc.History(cmd.Context(), historyEntityType, id)
	if err != nil {
		return err
	}

	return a.output(events, func() {
		if len(events) == 0 {
			fmt.Println("No audit events")
			return
		}
		for _, e := range events {
			line := fmt.Sprintf("%s  %-24s %s", e.Timestamp.Format("2006-01-02 15:04:05"), e.EventType, e.Action)
			if e.Actor != "" {
				line += " by " + e.Actor
			}
			fmt.Println(line)
		}
	})
}
