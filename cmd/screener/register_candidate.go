package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/candidate-screener/internal/ingestion"
	"github.com/jonathan/candidate-screener/internal/types"
)

var registerCandidateCmd = &cobra.Command{
	Use:   "register-candidate",
	Short: "Register one candidate, or many from a manifest",
	Long: `Register a candidate from a resume file. Email, phone and years of experience are
read from the resume when their flags are omitted.

With --manifest, a JSON array of candidates is registered concurrently. Each entry
takes name, email, phone, experience and either resume_text or resume_file.`,
	RunE: runRegisterCandidate,
}

var (
	candResumeFile string
	candName       string
	candEmail      string
	candPhone      string
	candExperience int
	candManifest   string
)

// manifestEntry is one candidate in a --manifest file.
type manifestEntry struct {
	types.CandidateInput
	ResumeFile string `json:"resume_file,omitempty"`
}

func init() {
	registerCandidateCmd.Flags().StringVarP(&candResumeFile, "resume", "r", "", "Path to resume file")
	registerCandidateCmd.Flags().StringVarP(&candName, "name", "n", "", "Candidate name")
	registerCandidateCmd.Flags().StringVar(&candEmail, "email", "", "Candidate email (read from the resume if omitted)")
	registerCandidateCmd.Flags().StringVar(&candPhone, "phone", "", "Candidate phone (read from the resume if omitted)")
	registerCandidateCmd.Flags().IntVar(&candExperience, "experience", 0, "Years of experience (read from the resume if omitted)")
	registerCandidateCmd.Flags().StringVar(&candManifest, "manifest", "", "Path to a JSON manifest of candidates (mutually exclusive with --resume)")

	rootCmd.AddCommand(registerCandidateCmd)
}

func runRegisterCandidate(cmd *cobra.Command, _ []string) error {
	if candResumeFile == "" && candManifest == "" {
		return fmt.Errorf("either --resume or --manifest must be provided")
	}
	if candResumeFile != "" && candManifest != "" {
		return fmt.Errorf("--resume and --manifest are mutually exclusive; provide only one")
	}
	if candResumeFile != "" && candName == "" {
		return fmt.Errorf("--name is required with --resume")
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	var inputs []types.CandidateInput
	if candManifest != "" {
		inputs, err = loadManifest(candManifest)
		if err != nil {
			return err
		}
	} else {
		text, _, err := ingestion.IngestFromFile(candResumeFile)
		if err != nil {
			return fmt.Errorf("failed to read resume: %w", err)
		}
		in := types.CandidateInput{
			Name:       candName,
			Email:      candEmail,
			Phone:      candPhone,
			ResumeText: text,
			Experience: candExperience,
		}
		fillFromResume(&in, !cmd.Flags().Changed("experience"))
		inputs = []types.CandidateInput{in}
	}

	svc, err := a.openService(cmd.Context(), true)
	if err != nil {
		return err
	}

	candidates, err := svc.RegisterCandidates(cmd.Context(), inputs)
	if err != nil {
		return fmt.Errorf("failed to register candidates: %w", err)
	}

	var out any = candidates
	if len(candidates) == 1 {
		out = candidates[0]
	}
	return a.output(out, func() {
		for _, c := range candidates {
			fmt.Printf("Registered candidate %s (%s, %d years)\n", c.ID, c.Email, c.Experience)
		}
		if len(candidates) == 1 {
			a.printer.PrintSkillSet("resume skills", candidates[0].Skills)
		}
	})
}

// loadManifest reads candidates from a JSON array, loading resume_file entries from disk.
func loadManifest(path string) ([]types.CandidateInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var entries []manifestEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("manifest %s has no candidates", path)
	}

	inputs := make([]types.CandidateInput, 0, len(entries))
	for i, e := range entries {
		in := e.CandidateInput
		if e.ResumeFile != "" {
			text, _, err := ingestion.IngestFromFile(e.ResumeFile)
			if err != nil {
				return nil, fmt.Errorf("manifest entry %d: failed to read resume: %w", i, err)
			}
			in.ResumeText = text
		}
		fillFromResume(&in, in.Experience == 0)
		inputs = append(inputs, in)
	}
	return inputs, nil
}

// fillFromResume fills empty contact fields, and experience when asked, from the resume text.
func fillFromResume(in *types.CandidateInput, experience bool) {
	contact := ingestion.ExtractContact(in.ResumeText)
	if in.Email == "" {
		in.Email = contact.Email
	}
	if in.Phone == "" {
		in.Phone = contact.Phone
	}
	if experience {
		in.Experience = ingestion.ExtractExperience(in.ResumeText).Years
	}
}
