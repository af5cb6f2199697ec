package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var auditReportCmd = &cobra.Command{
	Use:   "audit-report",
	Short: "Summarize audit events over a time window",
	Long: `Count audit events by type over a time window, with the decision distribution,
fraud flags and overrides.

The window is either --since (a duration back from now, e.g. 168h) or --start and
--end as RFC 3339 timestamps. The default is the last 7 days.`,
	RunE: runAuditReport,
}

var (
	auditSince time.Duration
	auditStart string
	auditEnd   string
)

func init() {
	auditReportCmd.Flags().DurationVar(&auditSince, "since", 7*24*time.Hour, "Report on this much time before now")
	auditReportCmd.Flags().StringVar(&auditStart, "start", "", "Window start (RFC 3339)")
	auditReportCmd.Flags().StringVar(&auditEnd, "end", "", "Window end (RFC 3339, defaults to now)")

	rootCmd.AddCommand(auditReportCmd)
}

func runAuditReport(cmd *cobra.Command, _ []string) error {
	start, end, err := auditWindow(time.Now().UTC())
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

	report, err := svc.AuditReport(cmd.Context(), start, end)
	if err != nil {
		return err
	}

	return a.output(report, func() {
		a.printer.PrintAuditReport(&report)
	})
}

// auditWindow resolves the report window from the flags.
func auditWindow(now time.Time) (time.Time, time.Time, error) {
	end := now
	if auditEnd != "" {
		parsed, err := time.Parse(time.RFC3339, auditEnd)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --end: %w", err)
		}
		end = parsed
	}

	if auditStart == "" {
		return end.Add(-auditSince), end, nil
	}
	start, err := time.Parse(time.RFC3339, auditStart)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid --start: %w", err)
	}
	return start, end, nil
}
