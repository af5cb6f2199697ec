package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateCommand_OfflineJSON(t *testing.T) {
	binaryPath := getBinaryPath(t)
	jobPath := writeTempFile(t, "job.txt", sampleJob)
	resumePath := writeTempFile(t, "resume.txt", sampleResume)

	cmd := offlineCommand(binaryPath, "evaluate", "--embedding-provider", "hash", "--json",
		"--job", jobPath, "--resume", resumePath)
	output, err := cmd.Output()
	require.NoError(t, err)

	var result map[string]any
	require.NoError(t, json.Unmarshal(output, &result))
	assert.Contains(t, result, "decision")
	assert.Contains(t, result, "scores")

	experience := result["experience_details"].(map[string]any)
	assert.Equal(t, float64(5), experience["required"])
	assert.Equal(t, float64(6), experience["candidate"])
}

func TestEvaluateCommand_Text(t *testing.T) {
	binaryPath := getBinaryPath(t)
	jobPath := writeTempFile(t, "job.txt", sampleJob)
	resumePath := writeTempFile(t, "resume.txt", sampleResume)

	cmd := offlineCommand(binaryPath, "evaluate", "--embedding-provider", "hash", "--job", jobPath, "--resume", resumePath)
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, string(output))

	assert.Contains(t, string(output), "SCORES")
	assert.Contains(t, string(output), "DECISION")
}

func TestEvaluateCommand_JobURL(t *testing.T) {
	binaryPath := getBinaryPath(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html><body><nav>Jobs</nav><div class=\"job-description\"><pre>" + sampleJob + "</pre></div></body></html>"))
	}))
	defer server.Close()
	resumePath := writeTempFile(t, "resume.txt", sampleResume)

	cmd := offlineCommand(binaryPath, "evaluate", "--embedding-provider", "hash", "--json",
		"--job-url", server.URL, "--resume", resumePath)
	output, err := cmd.Output()
	require.NoError(t, err)

	var result struct {
		JobSkills struct {
			Technical []string `json:"technical_skills"`
		} `json:"job_skills"`
	}
	require.NoError(t, json.Unmarshal(output, &result))
	assert.Contains(t, result.JobSkills.Technical, "go")
}

func TestEvaluateCommand_GeminiWithoutKey(t *testing.T) {
	binaryPath := getBinaryPath(t)
	jobPath := writeTempFile(t, "job.txt", sampleJob)
	resumePath := writeTempFile(t, "resume.txt", sampleResume)

	cmd := offlineCommand(binaryPath, "evaluate", "--embedding-provider", "gemini", "--job", jobPath, "--resume", resumePath)
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "GEMINI_API_KEY")
}

func TestExtractSkillsCommand_Against(t *testing.T) {
	binaryPath := getBinaryPath(t)
	jobPath := writeTempFile(t, "job.txt", sampleJob)
	resumePath := writeTempFile(t, "resume.txt", sampleResume)

	cmd := offlineCommand(binaryPath, "extract-skills", "--json", "--file", resumePath, "--against", jobPath)
	output, err := cmd.Output()
	require.NoError(t, err)

	var result struct {
		Skills struct {
			Technical []string `json:"technical_skills"`
		} `json:"skills"`
		Match map[string]any `json:"match"`
	}
	require.NoError(t, json.Unmarshal(output, &result))
	assert.Contains(t, result.Skills.Technical, "kubernetes")
	assert.NotNil(t, result.Match)
}

func TestValidateCommand_SavedEvaluation(t *testing.T) {
	binaryPath := getBinaryPath(t)
	jobPath := writeTempFile(t, "job.txt", sampleJob)
	resumePath := writeTempFile(t, "resume.txt", sampleResume)

	output, err := offlineCommand(binaryPath, "evaluate", "--embedding-provider", "hash", "--json",
		"--job", jobPath, "--resume", resumePath).Output()
	require.NoError(t, err)
	savedPath := writeTempFile(t, "evaluation.json", string(output))

	result, err := offlineCommand(binaryPath, "validate", "--schema", "evaluation", "--file", savedPath).CombinedOutput()
	require.NoError(t, err, string(result))
	assert.Contains(t, string(result), "matches evaluation")

	result, err = offlineCommand(binaryPath, "validate", "--schema", "job_report", "--file", savedPath).CombinedOutput()
	assert.Error(t, err)
	assert.Contains(t, string(result), "does not match job_report")
}

func TestCommands_MissingFlags(t *testing.T) {
	binaryPath := getBinaryPath(t)

	tests := []struct {
		name        string
		args        []string
		errorString string
	}{
		{"evaluate without --resume", []string{"evaluate", "--job", "job.txt"}, "required"},
		{"extract-skills without --file", []string{"extract-skills"}, "required"},
		{"register-job without --role", []string{"register-job", "--file", "job.txt"}, "required"},
		{"register-job without input", []string{"register-job", "--role", "Engineer"}, "either --file or --url"},
		{"evaluate with both job sources", []string{"evaluate", "--job", "a.txt", "--job-url", "https://example.com", "--resume", "r.txt"}, "none of the others can be"},
		{"register-candidate without input", []string{"register-candidate"}, "either --resume or --manifest"},
		{"register-candidate with both inputs", []string{"register-candidate", "--resume", "a.txt", "--manifest", "b.json"}, "mutually exclusive"},
		{"submit without --candidate-id", []string{"submit", "--job-id", "6f1c1c2e-8a53-4c0e-9d0b-2a3f4e5d6c7b"}, "required"},
		{"submit with bad id", []string{"submit", "--job-id", "nope", "--candidate-id", "nope"}, "invalid --job-id"},
		{"override with unknown decision", []string{"override", "--application-id", "6f1c1c2e-8a53-4c0e-9d0b-2a3f4e5d6c7b", "--decision", "Maybe", "--actor", "a", "--reason", "r"}, "unknown decision"},
		{"history with unknown entity", []string{"history", "--entity", "user", "--id", "6f1c1c2e-8a53-4c0e-9d0b-2a3f4e5d6c7b"}, "unknown --entity"},
		{"migrate without action", []string{"migrate"}, "at least one of the flags"},
		{"validate without --file", []string{"validate", "--schema", "evaluation"}, "required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := offlineCommand(binaryPath, tt.args...)
			output, err := cmd.CombinedOutput()

			assert.Error(t, err)
			assert.Contains(t, string(output), tt.errorString)
		})
	}
}

func TestPersistentCommands_RequireDatabase(t *testing.T) {
	binaryPath := getBinaryPath(t)

	for _, args := range [][]string{
		{"rank", "--job-id", "6f1c1c2e-8a53-4c0e-9d0b-2a3f4e5d6c7b"},
		{"report", "--job-id", "6f1c1c2e-8a53-4c0e-9d0b-2a3f4e5d6c7b"},
		{"audit-report"},
		{"migrate", "--version"},
	} {
		t.Run(args[0], func(t *testing.T) {
			cmd := offlineCommand(binaryPath, args...)
			output, err := cmd.CombinedOutput()

			assert.Error(t, err)
			assert.Contains(t, string(output), "DATABASE_URL")
		})
	}
}
