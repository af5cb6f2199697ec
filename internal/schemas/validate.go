// Package schemas validates screener documents against JSON Schemas, either the embedded
// ones or schema files on disk.
package schemas

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	schemafiles "github.com/jonathan/candidate-screener/schemas"
)

// ResolveSchemaPath finds a schema file given relative to the working directory or to one
// of its two parents, so commands and tests find schemas/ from any package directory.
// It returns an absolute path, or "" when nothing matches.
func ResolveSchemaPath(relativePath string) string {
	for _, dir := range []string{".", "..", filepath.Join("..", "..")} {
		abs, err := filepath.Abs(filepath.Join(dir, relativePath))
		if err != nil {
			continue
		}
		if info, err := os.Stat(abs); err == nil && !info.IsDir() {
			return abs
		}
	}
	return ""
}

// ValidationError lists every field that failed validation.
type ValidationError struct {
	Errors []FieldError
}

// FieldError is one failed field.
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		fmt.Fprintf(&sb, "  %d. %s: %s\n", i+1, err.Field, err.Message)
	}
	return sb.String()
}

// SchemaLoadError is returned when the schema or the document cannot be loaded at all.
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// ValidateJSON validates the JSON file at jsonPath against the schema file at schemaPath.
func ValidateJSON(schemaPath, jsonPath string) error {
	schemaAbs, err := existingFile(schemaPath, "schema")
	if err != nil {
		return err
	}
	jsonAbs, err := existingFile(jsonPath, "JSON")
	if err != nil {
		return err
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewReferenceLoader("file://"+schemaAbs),
		gojsonschema.NewReferenceLoader("file://"+jsonAbs),
	)
	if err != nil {
		return &SchemaLoadError{Path: schemaAbs, Message: "schema validation failed during load", Cause: err}
	}
	return resultError(result)
}

// ValidateJSONString validates JSON content against schema content.
func ValidateJSONString(schemaContent, jsonContent string) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schemaContent),
		gojsonschema.NewStringLoader(jsonContent),
	)
	if err != nil {
		return &SchemaLoadError{Path: "(string schema)", Message: "schema validation failed during load", Cause: err}
	}
	return resultError(result)
}

// ValidateFile checks a saved document against schema, which is either the name of an
// embedded schema ("evaluation", "evaluation.schema.json") or a path to a schema file.
func ValidateFile(schema, jsonPath string) error {
	if name, ok := embeddedName(schema); ok {
		content, err := os.ReadFile(jsonPath)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", jsonPath, err)
		}
		schemaContent, err := schemafiles.Files.ReadFile(name)
		if err != nil {
			return &SchemaLoadError{Path: name, Message: "unknown schema", Cause: err}
		}
		return ValidateJSONString(string(schemaContent), string(content))
	}

	schemaPath := schema
	if !filepath.IsAbs(schema) {
		if resolved := ResolveSchemaPath(schema); resolved != "" {
			schemaPath = resolved
		}
	}
	return ValidateJSON(schemaPath, jsonPath)
}

// ValidateDocument validates doc, marshaled as JSON, against the embedded schema name.
func ValidateDocument(name string, doc any) error {
	schema, err := schemafiles.Files.ReadFile(name)
	if err != nil {
		return &SchemaLoadError{Path: name, Message: "unknown schema", Cause: err}
	}

	result, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(schema), gojsonschema.NewGoLoader(doc))
	if err != nil {
		return &SchemaLoadError{Path: name, Message: "schema validation failed during load", Cause: err}
	}
	return resultError(result)
}

// embeddedName maps a short or full schema name to an embedded file.
func embeddedName(schema string) (string, bool) {
	name := schema
	if !strings.HasSuffix(name, ".schema.json") {
		name += ".schema.json"
	}
	if _, err := fs.Stat(schemafiles.Files, name); err != nil {
		return "", false
	}
	return name, true
}

func existingFile(path, kind string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s path: %w", kind, err)
	}
	if _, err := os.Stat(abs); os.IsNotExist(err) {
		return "", fmt.Errorf("%s file not found: %s", kind, abs)
	}
	return abs, nil
}

// resultError converts a failed result into a ValidationError; a valid result yields nil.
func resultError(result *gojsonschema.Result) error {
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}
