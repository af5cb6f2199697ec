package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/candidate-screener/internal/ingestion"
	"github.com/jonathan/candidate-screener/internal/pipeline"
	schemafiles "github.com/jonathan/candidate-screener/schemas"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate one resume against one job description",
	Long: `Evaluate a resume against a job description without storing anything.

Both files may be plain text or HTML; the job may also be fetched with --job-url.
When --experience or --email are omitted they are read from the resume text.`,
	RunE: runEvaluate,
}

var (
	evalJobFile            string
	evalJobURL             string
	evalResumeFile         string
	evalRequiredExperience int
	evalExperience         int
	evalEmail              string
)

func init() {
	evaluateCmd.Flags().StringVarP(&evalJobFile, "job", "j", "", "Path to job description file (mutually exclusive with --job-url)")
	evaluateCmd.Flags().StringVar(&evalJobURL, "job-url", "", "URL of the job posting (mutually exclusive with --job)")
	evaluateCmd.Flags().StringVarP(&evalResumeFile, "resume", "r", "", "Path to resume file (required)")
	evaluateCmd.Flags().IntVar(&evalRequiredExperience, "required-experience", 0, "Years of experience the job requires (read from the job text if omitted)")
	evaluateCmd.Flags().IntVar(&evalExperience, "experience", 0, "Candidate years of experience (read from the resume if omitted)")
	evaluateCmd.Flags().StringVar(&evalEmail, "email", "", "Candidate email (read from the resume if omitted)")

	evaluateCmd.MarkFlagsOneRequired("job", "job-url")
	evaluateCmd.MarkFlagsMutuallyExclusive("job", "job-url")
	if err := evaluateCmd.MarkFlagRequired("resume"); err != nil {
		panic(fmt.Sprintf("failed to mark resume flag as required: %v", err))
	}

	rootCmd.AddCommand(evaluateCmd)
}

func runEvaluate(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	jobText, err := readJobText(cmd.Context(), evalJobFile, evalJobURL)
	if err != nil {
		return err
	}
	resumeText, _, err := ingestion.IngestFromFile(evalResumeFile)
	if err != nil {
		return fmt.Errorf("failed to read resume: %w", err)
	}

	req := pipeline.ScreenRequest{
		JobText:             jobText,
		ResumeText:          resumeText,
		RequiredExperience:  evalRequiredExperience,
		CandidateExperience: evalExperience,
		Email:               evalEmail,
	}
	if !cmd.Flags().Changed("required-experience") {
		req.RequiredExperience = ingestion.ExtractExperience(jobText).Years
	}
	if !cmd.Flags().Changed("experience") {
		req.CandidateExperience = ingestion.ExtractExperience(resumeText).Years
	}
	if req.Email == "" {
		req.Email = ingestion.ExtractContact(resumeText).Email
	}

	ctx := cmd.Context()
	embedder, err := a.openEmbedder(ctx)
	if err != nil {
		return err
	}
	evaluator, err := a.newEvaluator()
	if err != nil {
		return err
	}

	a.logger.Debug("screening",
		zap.Int("required_experience", req.RequiredExperience),
		zap.Int("candidate_experience", req.CandidateExperience),
		zap.Float64("similarity_threshold", evaluator.SimilarityThreshold()),
	)

	result, err := pipeline.Screen(ctx, embedder, evaluator, req)
	if err != nil {
		return fmt.Errorf("evaluation failed: %w", err)
	}

	a.checkSchema(schemafiles.Evaluation, result)
	return a.output(result, func() {
		a.printer.PrintSkillSet("job skills", result.JobSkills)
		a.printer.PrintSkillSet("resume skills", result.CandidateSkills)
		a.printer.PrintEvaluation(result)
	})
}
