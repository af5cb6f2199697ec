package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/candidate-screener/internal/ingestion"
	"github.com/jonathan/candidate-screener/internal/skills"
	"github.com/jonathan/candidate-screener/internal/types"
	schemafiles "github.com/jonathan/candidate-screener/schemas"
)

var extractSkillsCmd = &cobra.Command{
	Use:   "extract-skills",
	Short: "Extract normalized skills from a job description or resume",
	Long: `Extract technical and soft skills from a text file, normalize them and add implied skills.

With --against, the skills are also compared with a second file (typically a job
description) using the unweighted match.`,
	RunE: runExtractSkills,
}

var (
	extractFile    string
	extractAgainst string
)

// extractOutput is the JSON shape of extract-skills.
type extractOutput struct {
	Skills  *types.SkillSet       `json:"skills"`
	Quality ingestion.Quality     `json:"quality"`
	Match   *types.FlatSkillMatch `json:"match,omitempty"`
}

func init() {
	extractSkillsCmd.Flags().StringVarP(&extractFile, "file", "f", "", "Path to text or HTML file (required)")
	extractSkillsCmd.Flags().StringVar(&extractAgainst, "against", "", "Path to a job description to compare against")

	if err := extractSkillsCmd.MarkFlagRequired("file"); err != nil {
		panic(fmt.Sprintf("failed to mark file flag as required: %v", err))
	}

	rootCmd.AddCommand(extractSkillsCmd)
}

func runExtractSkills(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	text, _, err := ingestion.IngestFromFile(extractFile)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	set, err := skills.Extract(text)
	if err != nil {
		return err
	}
	a.checkSchema(schemafiles.SkillSet, set)

	out := extractOutput{Skills: set, Quality: ingestion.AnalyzeQuality(text)}
	if extractAgainst != "" {
		jobText, _, err := ingestion.IngestFromFile(extractAgainst)
		if err != nil {
			return fmt.Errorf("failed to read comparison file: %w", err)
		}
		jobSet, err := skills.Extract(jobText)
		if err != nil {
			return err
		}
		out.Match = skills.MatchUnweighted(jobSet.Technical, set.Technical)
	}

	return a.output(out, func() {
		a.printer.PrintSkillSet("extracted skills", set)
		if out.Match != nil {
			fmt.Printf("\nMatch: %.1f%% (%d of %d job skills)\n",
				out.Match.MatchPercentage, len(out.Match.MatchedSkills), out.Match.TotalJobSkills)
			if len(out.Match.MissingSkills) > 0 {
				fmt.Printf("Missing: %s\n", strings.Join(out.Match.MissingSkills, ", "))
			}
		}
	})
}
