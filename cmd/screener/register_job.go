package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/candidate-screener/internal/ingestion"
	"github.com/jonathan/candidate-screener/internal/types"
)

var registerJobCmd = &cobra.Command{
	Use:   "register-job",
	Short: "Register a job description",
	Long: `Register a job description from a text or HTML file, or from a job board URL.
Skills and the embedding are computed once and stored with the job.`,
	RunE: runRegisterJob,
}

var (
	jobFile               string
	jobURL                string
	jobRole               string
	jobCompany            string
	jobRequiredExperience int
)

func init() {
	registerJobCmd.Flags().StringVarP(&jobFile, "file", "f", "", "Path to job description file (mutually exclusive with --url)")
	registerJobCmd.Flags().StringVarP(&jobURL, "url", "u", "", "URL of the job posting (mutually exclusive with --file)")
	registerJobCmd.Flags().StringVar(&jobRole, "role", "", "Role title (required)")
	registerJobCmd.Flags().StringVar(&jobCompany, "company", "", "Company name")
	registerJobCmd.Flags().IntVar(&jobRequiredExperience, "required-experience", 0, "Years of experience required (read from the text if omitted)")

	if err := registerJobCmd.MarkFlagRequired("role"); err != nil {
		panic(fmt.Sprintf("failed to mark role flag as required: %v", err))
	}

	rootCmd.AddCommand(registerJobCmd)
}

func runRegisterJob(cmd *cobra.Command, _ []string) error {
	// Validate mutually exclusive flags
	if jobFile == "" && jobURL == "" {
		return fmt.Errorf("either --file or --url must be provided")
	}
	if jobFile != "" && jobURL != "" {
		return fmt.Errorf("--file and --url are mutually exclusive; provide only one")
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	text, err := readJobText(cmd.Context(), jobFile, jobURL)
	if err != nil {
		return err
	}

	in := types.JobInput{
		Company:            jobCompany,
		Role:               jobRole,
		Text:               text,
		RequiredExperience: jobRequiredExperience,
	}
	if !cmd.Flags().Changed("required-experience") {
		in.RequiredExperience = ingestion.ExtractExperience(text).Years
	}

	svc, err := a.openService(cmd.Context(), true)
	if err != nil {
		return err
	}

	job, err := svc.RegisterJob(cmd.Context(), in)
	if err != nil {
		return fmt.Errorf("failed to register job: %w", err)
	}

	return a.output(job, func() {
		fmt.Printf("Registered job %s\n", job.ID)
		fmt.Printf("Role: %s  Required experience: %d years\n", job.Role, job.RequiredExperience)
		a.printer.PrintSkillSet("job skills", job.Skills)
	})
}

// readJobText loads a job description from a file or a URL, whichever is set.
func readJobText(ctx context.Context, path, rawURL string) (string, error) {
	if rawURL != "" {
		text, _, err := ingestion.IngestFromURL(ctx, rawURL, nil)
		if err != nil {
			return "", err
		}
		return text, nil
	}

	text, _, err := ingestion.IngestFromFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read job description: %w", err)
	}
	return text, nil
}
