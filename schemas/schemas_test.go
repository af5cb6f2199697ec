package schemas_test

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	validate "github.com/jonathan/candidate-screener/internal/schemas"
	"github.com/jonathan/candidate-screener/schemas"
)

func TestAllSchemaFiles_ValidJSON(t *testing.T) {
	for _, name := range schemas.Names {
		t.Run(name, func(t *testing.T) {
			data, err := schemas.Files.ReadFile(name)
			require.NoError(t, err, "should be able to read embedded schema")

			var schemaObj map[string]any
			require.NoError(t, json.Unmarshal(data, &schemaObj), "schema file should be valid JSON: %s", name)

			assert.Contains(t, schemaObj, "$schema")
			assert.Equal(t, "object", schemaObj["type"])
			assert.Contains(t, schemaObj, "properties")
		})
	}
}

func TestEmbeddedMatchesDisk(t *testing.T) {
	for _, name := range schemas.Names {
		embedded, err := schemas.Files.ReadFile(name)
		require.NoError(t, err)
		onDisk, err := os.ReadFile(name)
		require.NoError(t, err)
		assert.Equal(t, string(onDisk), string(embedded), name)
	}
}

func TestSkillSetSchema_RejectsMissingFields(t *testing.T) {
	data, err := schemas.Files.ReadFile(schemas.SkillSet)
	require.NoError(t, err)

	err = validate.ValidateJSONString(string(data), `{"technical_skills": ["go"]}`)
	var vErr *validate.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.NotEmpty(t, vErr.Errors)

	err = validate.ValidateJSONString(string(data), `{"technical_skills": ["go"], "soft_skills": [], "all_skills": ["go"], "skill_count": 1}`)
	assert.NoError(t, err)
}

func TestEvaluationSchema_DecisionEnum(t *testing.T) {
	data, err := schemas.Files.ReadFile(schemas.Evaluation)
	require.NoError(t, err)

	var schemaObj map[string]any
	require.NoError(t, json.Unmarshal(data, &schemaObj))

	props := schemaObj["properties"].(map[string]any)
	decision := props["decision"].(map[string]any)
	assert.ElementsMatch(t, []any{"Fast-Track Selected", "Selected", "Hire-Pooled", "Rejected", "Review Required"}, decision["enum"])
}
