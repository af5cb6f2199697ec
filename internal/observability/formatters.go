// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jonathan/candidate-screener/internal/pipeline"
	"github.com/jonathan/candidate-screener/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// writeList writes up to limit items as bullets followed by an overflow line.
func writeList(sb *strings.Builder, label string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(label + ":\n")
	count := min(len(items), limit)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > limit {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-limit))
	}
}

// PrintSkillSet outputs the skills extracted from one text.
func (p *Printer) PrintSkillSet(title string, set *types.SkillSet) {
	if set == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Skills found: %d\n\n", set.SkillCount))
	writeList(&sb, "Technical", set.Technical, maxItemsToShow*2)
	if len(set.Technical) > 0 && len(set.Soft) > 0 {
		sb.WriteString("\n")
	}
	writeList(&sb, "Soft", set.Soft, maxItemsToShow)

	p.printBox(strings.ToUpper(title), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintEvaluation outputs the scores, fraud check and decision of one evaluation.
func (p *Printer) PrintEvaluation(ev *pipeline.Evaluation) {
	if ev == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Composite:  %.4f\n", ev.Scores.Composite))
	sb.WriteString(fmt.Sprintf("  RFS %.4f  DCS %.4f  ELC %.4f\n", ev.Scores.RFS, ev.Scores.DCS, ev.Scores.ELC))
	sb.WriteString(fmt.Sprintf("Experience: %d of %d years\n", ev.Experience.Candidate, ev.Experience.Required))
	sb.WriteString(fmt.Sprintf("Required skills matched: %d/%d\n",
		ev.Match.Breakdown.RequiredMatched, ev.Match.Breakdown.RequiredTotal))
	sb.WriteString("\n")
	writeList(&sb, "Missing required", ev.Match.MissingRequired, maxItemsToShow)
	p.printBox("SCORES", strings.TrimSuffix(sb.String(), "\n"))

	p.PrintFraud(&ev.Fraud)

	sb.Reset()
	sb.WriteString(fmt.Sprintf("Decision: %s\n\n", ev.Decision))
	sb.WriteString(wrap(ev.Reason, boxWidth-4))
	p.printBox("DECISION", sb.String())
}

// PrintFraud outputs the fraud check, or a single line when nothing was flagged.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintFraud(report *types.FraudReport) {
	if report == nil || (!report.FraudFlag && len(report.RiskFactors) == 0) {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ NO FRAUD SIGNALS")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Overall risk:     %s\n", report.OverallRisk))
	sb.WriteString(fmt.Sprintf("Similarity index: %.4f\n", report.SimilarityIndex))
	sb.WriteString(fmt.Sprintf("Flagged:          %t\n\n", report.FraudFlag))
	for _, factor := range report.RiskFactors {
		sb.WriteString(fmt.Sprintf("⚠ %s\n", factor))
	}

	p.printBox("FRAUD CHECK", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRanking outputs ranked applications in rank order.
func (p *Printer) PrintRanking(apps []*types.Application) {
	if len(apps) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Ranked applications: %d\n\n", len(apps)))
	count := min(len(apps), maxItemsToShow*2)
	for i := 0; i < count; i++ {
		app := apps[i]
		rank := "-"
		if app.Rank != nil {
			rank = fmt.Sprintf("%d", *app.Rank)
		}
		sb.WriteString(fmt.Sprintf("#%-3s %.4f  %s\n", rank, app.Scores.Composite, app.Decision))
		sb.WriteString(fmt.Sprintf("     %s\n", app.CandidateID))
	}
	if len(apps) > count {
		sb.WriteString(fmt.Sprintf("\n... and %d more", len(apps)-count))
	}

	p.printBox("RANKING", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintJobReport outputs the aggregate view of a job's applications.
func (p *Printer) PrintJobReport(report *types.JobReport) {
	if report == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Job:          %s\n", report.JobID))
	sb.WriteString(fmt.Sprintf("Applications: %d\n", report.TotalApplications))
	sb.WriteString(fmt.Sprintf("Fraud:        %d (%.1f%%)\n\n", report.FraudStatistics.Total, report.FraudStatistics.Percentage))

	sb.WriteString("Average scores:\n")
	avg := report.AverageScores
	sb.WriteString(fmt.Sprintf("  Composite %.4f  RFS %.4f\n", avg.Composite, avg.RFS))
	sb.WriteString(fmt.Sprintf("  DCS %.4f        ELC %.4f\n", avg.DCS, avg.ELC))

	if len(report.DecisionBreakdown) > 0 {
		sb.WriteString("\nDecisions:\n")
		decisions := make([]string, 0, len(report.DecisionBreakdown))
		for d := range report.DecisionBreakdown {
			decisions = append(decisions, string(d))
		}
		sort.Strings(decisions)
		for _, d := range decisions {
			sb.WriteString(fmt.Sprintf("  %-20s %d\n", d, report.DecisionBreakdown[types.Decision(d)]))
		}
	}

	if report.TopCandidate != nil {
		sb.WriteString(fmt.Sprintf("\nTop candidate: %s (%.4f)\n", report.TopCandidate.CandidateID, report.TopCandidate.Composite))
	}

	p.printBox("JOB REPORT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintAuditReport outputs the audit summary for a period.
func (p *Printer) PrintAuditReport(report *types.AuditReport) {
	if report == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("From: %s\n", report.Period.Start.Format("2006-01-02 15:04")))
	sb.WriteString(fmt.Sprintf("To:   %s\n\n", report.Period.End.Format("2006-01-02 15:04")))
	sb.WriteString(fmt.Sprintf("Events:                %d\n", report.TotalEvents))
	sb.WriteString(fmt.Sprintf("Applications processed: %d\n", report.ApplicationsProcessed))
	sb.WriteString(fmt.Sprintf("Jobs created:          %d\n", report.JobsCreated))
	sb.WriteString(fmt.Sprintf("Candidates registered: %d\n", report.CandidatesRegistered))
	sb.WriteString(fmt.Sprintf("Fraud flags:           %d\n", report.FraudFlags))
	sb.WriteString(fmt.Sprintf("Overrides:             %d", report.Overrides))

	p.printBox("AUDIT REPORT", sb.String())
}

// PrintProgress writes a single progress line.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintProgress(event pipeline.ProgressEvent) {
	if event.EntityID != "" {
		fmt.Fprintf(p.out, "[%s] %s (%s)\n", event.Stage, event.Message, event.EntityID)
		return
	}
	fmt.Fprintf(p.out, "[%s] %s\n", event.Stage, event.Message)
}

// wrap breaks text into lines no wider than width, splitting on spaces.
func wrap(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	var sb strings.Builder
	lineLen := 0
	for i, w := range words {
		if i > 0 {
			if lineLen+1+len(w) > width {
				sb.WriteString("\n")
				lineLen = 0
			} else {
				sb.WriteString(" ")
				lineLen++
			}
		}
		sb.WriteString(w)
		lineLen += len(w)
	}
	return sb.String()
}
