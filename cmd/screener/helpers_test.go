package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// getBinaryPath returns the path to the screener binary for testing
func getBinaryPath(t *testing.T) string {
	binaryName := "screener"
	if testing.Short() {
		t.Skip("Skipping CLI tests in short mode")
	}

	binaryPath := filepath.Join("..", "..", "bin", binaryName)
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		t.Skipf("Binary not found at %s, build it first with 'go build -o bin/screener ./cmd/screener'", binaryPath)
	}

	return binaryPath
}

// writeTempFile writes content into a new file under t.TempDir.
func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// offlineCommand builds a command that never reaches a database or the Gemini API.
func offlineCommand(binaryPath string, args ...string) *exec.Cmd {
	cmd := exec.Command(binaryPath, args...)
	env := make([]string, 0, len(os.Environ()))
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, "DATABASE_URL=") || strings.HasPrefix(kv, "GEMINI_API_KEY=") {
			continue
		}
		env = append(env, kv)
	}
	cmd.Env = env
	return cmd
}

const sampleJob = `Senior Backend Engineer

Requirements:
- 5+ years of experience building services in Go
- Kubernetes and PostgreSQL in production
- Strong communication skills

Nice to have:
- Terraform
- Kafka`

const sampleResume = `Jane Doe
jane.doe@example.com | (555) 123-4567

Backend engineer with 6 years of experience.
Built Go microservices on Kubernetes backed by PostgreSQL.
Led a team of four engineers; mentored juniors and improved communication with product.

Education: B.S. Computer Science`
