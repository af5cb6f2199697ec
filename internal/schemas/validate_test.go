package schemas

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/candidate-screener/internal/pipeline"
	"github.com/jonathan/candidate-screener/internal/ranking"
	"github.com/jonathan/candidate-screener/internal/types"
	schemafiles "github.com/jonathan/candidate-screener/schemas"
)

const personSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["name"],
	"properties": {
		"name": {"type": "string"},
		"age": {"type": "integer"}
	}
}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestValidateJSON_ValidJSON(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "schema.json", personSchema)
	jsonPath := writeFile(t, dir, "doc.json", `{"name": "Ada", "age": 36}`)

	assert.NoError(t, ValidateJSON(schemaPath, jsonPath))
}

func TestValidateJSON_InvalidJSON_MissingField(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "schema.json", personSchema)
	jsonPath := writeFile(t, dir, "doc.json", `{"age": 36}`)

	err := ValidateJSON(schemaPath, jsonPath)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidateJSON_InvalidJSON_WrongType(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "schema.json", personSchema)
	jsonPath := writeFile(t, dir, "doc.json", `{"name": "Ada", "age": "old"}`)

	err := ValidateJSON(schemaPath, jsonPath)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	assert.Equal(t, "age", validationErr.Errors[0].Field)
}

func TestValidateJSON_NonExistentFiles(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "schema.json", personSchema)
	jsonPath := writeFile(t, dir, "doc.json", `{"name": "Ada"}`)

	err := ValidateJSON(filepath.Join(dir, "missing.json"), jsonPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	err = ValidateJSON(schemaPath, filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateJSON_MalformedJSON(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "schema.json", personSchema)
	jsonPath := writeFile(t, dir, "doc.json", "{ invalid json }")

	err := ValidateJSON(schemaPath, jsonPath)
	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestValidateJSONString(t *testing.T) {
	assert.NoError(t, ValidateJSONString(personSchema, `{"name": "test"}`))

	err := ValidateJSONString(personSchema, `{"age": 30}`)
	require.Error(t, err)
	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, "(root)", validationErr.Errors[0].Field)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Errors: []FieldError{
			{Field: "name", Message: "is required"},
			{Field: "age", Message: "must be a number"},
		},
	}

	errorMsg := err.Error()
	assert.Contains(t, errorMsg, "validation failed")
	assert.Contains(t, errorMsg, "1. name: is required")
	assert.Contains(t, errorMsg, "2. age: must be a number")
}

func TestResolveSchemaPath(t *testing.T) {
	path := ResolveSchemaPath(filepath.Join("schemas", schemafiles.Evaluation))
	require.NotEmpty(t, path)
	assert.True(t, filepath.IsAbs(path))

	assert.Empty(t, ResolveSchemaPath("does/not/exist.json"))
}

func TestEmbeddedSchemas_Load(t *testing.T) {
	for _, name := range schemafiles.Names {
		t.Run(name, func(t *testing.T) {
			data, err := schemafiles.Files.ReadFile(name)
			require.NoError(t, err)
			// Validating an empty object compiles the schema; a missing-field error is expected.
			err = ValidateJSONString(string(data), `{}`)
			_, isLoadErr := err.(*SchemaLoadError)
			assert.False(t, isLoadErr, "schema %s failed to load: %v", name, err)
		})
	}
}

func TestValidateDocument_UnknownSchema(t *testing.T) {
	err := ValidateDocument("nope.schema.json", map[string]any{})
	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestValidateDocument_Evaluation(t *testing.T) {
	ev, err := pipeline.NewEvaluator(pipeline.EvaluatorOptions{})
	require.NoError(t, err)

	tech := []string{"go", "kubernetes"}
	job := &types.Job{
		Text:               "Requirements: Go and Kubernetes.",
		Embedding:          []float32{0.2, 0.9},
		RequiredExperience: 4,
		Skills:             &types.SkillSet{Technical: tech, Soft: []string{}, All: tech, SkillCount: 2},
	}
	cand := &types.Candidate{
		ResumeText: "Go engineer.",
		Embedding:  []float32{0.3, 0.8},
		Experience: 2,
		Skills:     &types.SkillSet{Technical: []string{"go"}, Soft: []string{}, All: []string{"go"}, SkillCount: 1},
	}

	result, err := ev.Evaluate(job, cand, nil)
	require.NoError(t, err)
	assert.NoError(t, ValidateDocument(schemafiles.Evaluation, result))

	result.Decision = "Maybe"
	assert.Error(t, ValidateDocument(schemafiles.Evaluation, result))
}

func TestValidateDocument_SkillSet(t *testing.T) {
	set := types.SkillSet{Technical: []string{"go"}, Soft: []string{"leadership"}, All: []string{"go", "leadership"}, SkillCount: 2}
	assert.NoError(t, ValidateDocument(schemafiles.SkillSet, set))

	set.SkillCount = -1
	assert.Error(t, ValidateDocument(schemafiles.SkillSet, set))
}

func TestValidateDocument_JobReport(t *testing.T) {
	jobID := uuid.New()
	assert.NoError(t, ValidateDocument(schemafiles.JobReport, ranking.BuildJobReport(jobID, nil)))

	rank := 1
	apps := []*types.Application{{
		ID:          uuid.New(),
		JobID:       jobID,
		CandidateID: uuid.New(),
		Scores:      types.ScoreBundle{Composite: 0.8, RFS: 0.7, DCS: 0.9, ELC: 0.8},
		Decision:    types.DecisionSelected,
		Rank:        &rank,
	}}
	assert.NoError(t, ValidateDocument(schemafiles.JobReport, ranking.BuildJobReport(jobID, apps)))
}

func TestValidateFile_EmbeddedSchema(t *testing.T) {
	dir := t.TempDir()
	valid := writeFile(t, dir, "skills.json", `{"technical_skills": ["go"], "soft_skills": [], "all_skills": ["go"], "skill_count": 1}`)
	invalid := writeFile(t, dir, "bad.json", `{"technical_skills": ["go"]}`)

	assert.NoError(t, ValidateFile("skill_set", valid))
	assert.NoError(t, ValidateFile(schemafiles.SkillSet, valid))

	err := ValidateFile("skill_set", invalid)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.NotEmpty(t, validationErr.Errors)

	err = ValidateFile("skill_set", filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestValidateFile_SchemaPath(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "person.json", personSchema)
	doc := writeFile(t, dir, "doc.json", `{"name": "Ada"}`)

	assert.NoError(t, ValidateFile(schemaPath, doc))

	err := ValidateFile(filepath.Join(dir, "nope.json"), doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
