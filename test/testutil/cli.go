// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package testutil

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	scoutOnce sync.Once
	scoutPath string
	scoutErr  error
)

// scoutBinary compiles cmd/scout once per test process and returns the
// path of the executable.
func scoutBinary(t *testing.T) string {
	t.Helper()

	scoutOnce.Do(func() {
		// testutil lives two levels below the module root.
		_, file, _, _ := runtime.Caller(0)
		root := filepath.Join(filepath.Dir(file), "..", "..")

		dir, err := os.MkdirTemp("", "sirseer-scout-bin")
		if err != nil {
			scoutErr = err
			return
		}
		scoutPath = filepath.Join(dir, "sirseer-scout")

		build := exec.Command("go", "build", "-o", scoutPath, "./cmd/scout")
		build.Dir = root
		if out, err := build.CombinedOutput(); err != nil {
			scoutErr = errors.Join(err, errors.New(string(out)))
		}
	})

	require.NoError(t, scoutErr, "building sirseer-scout")
	return scoutPath
}

// CLIResult is the outcome of one sirseer-scout invocation.
type CLIResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Err      error
}

// RunCLI runs sirseer-scout with args in an empty working directory. HOME
// and the gh config dir point at that directory and ambient tokens are
// cleared, so only env supplies credentials.
func RunCLI(t *testing.T, args []string, env map[string]string) CLIResult {
	t.Helper()

	dir := t.TempDir()
	cmd := exec.Command(scoutBinary(t), args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "HOME="+dir, "GH_CONFIG_DIR="+dir, "GH_TOKEN=", "GITHUB_TOKEN=")
	for k, v := range env {
		cmd.Env = append(cmd.Env, k+"="+v)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	result := CLIResult{Err: cmd.Run()}
	result.Stdout, result.Stderr = stdout.String(), stderr.String()

	var exitErr *exec.ExitError
	switch {
	case errors.As(result.Err, &exitErr):
		result.ExitCode = exitErr.ExitCode()
	case result.Err != nil:
		result.ExitCode = -1
	}
	return result
}

// RunSearch runs `search text` against server as test-user with a test
// token. The working directory is fresh, so file flags need absolute paths.
func RunSearch(t *testing.T, server *CodeSearchServer, text string, args ...string) CLIResult {
	t.Helper()

	return RunCLI(t, append([]string{"search", text, "--user", "test-user"}, args...), map[string]string{
		"GITHUB_TOKEN":            "test-token",
		"GITHUB_API_ENDPOINT":     server.URL,
		"GITHUB_GRAPHQL_ENDPOINT": server.URL + "/graphql",
	})
}

// AssertCLISuccess stops the test unless the command exited cleanly.
func AssertCLISuccess(t *testing.T, result CLIResult) {
	t.Helper()
	require.NoError(t, result.Err, "stderr:\n%s", result.Stderr)
}

// AssertCLIError stops the test unless the command failed, then checks
// stderr for want.
func AssertCLIError(t *testing.T, result CLIResult, want string) {
	t.Helper()
	require.Error(t, result.Err, "command succeeded:\n%s", result.Stdout)
	if want != "" {
		assert.Contains(t, result.Stderr, want)
	}
}

// AssertExitCode checks the process exit status.
func AssertExitCode(t *testing.T, result CLIResult, want int) {
	t.Helper()
	assert.Equal(t, want, result.ExitCode, "stderr:\n%s", result.Stderr)
}
