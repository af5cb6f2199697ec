package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/candidate-screener/internal/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a saved JSON document against a schema",
	Long: `Validate a JSON document, such as saved --json output, against a schema.

--schema is an embedded schema name (evaluation, skill_set, job_report) or a path
to a schema file.`,
	RunE: runValidate,
}

var (
	validateSchema string
	validateFile   string
)

func init() {
	validateCmd.Flags().StringVarP(&validateSchema, "schema", "s", "", "Schema name or schema file path (required)")
	validateCmd.Flags().StringVarP(&validateFile, "file", "f", "", "Path to the JSON document (required)")

	if err := validateCmd.MarkFlagRequired("schema"); err != nil {
		panic(fmt.Sprintf("failed to mark schema flag as required: %v", err))
	}
	if err := validateCmd.MarkFlagRequired("file"); err != nil {
		panic(fmt.Sprintf("failed to mark file flag as required: %v", err))
	}

	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, _ []string) error {
	err := schemas.ValidateFile(validateSchema, validateFile)
	if err == nil {
		fmt.Printf("✅ %s matches %s\n", validateFile, validateSchema)
		return nil
	}

	var validationErr *schemas.ValidationError
	if errors.As(err, &validationErr) {
		fmt.Fprintf(os.Stderr, "❌ %s does not match %s\n", validateFile, validateSchema)
		for _, fe := range validationErr.Errors {
			fmt.Fprintf(os.Stderr, "  - %s: %s\n", fe.Field, fe.Message)
		}
		return fmt.Errorf("%d validation error(s)", len(validationErr.Errors))
	}
	return err
}
