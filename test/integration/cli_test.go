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

package integration

import (
	"strings"
	"testing"

	"github.com/sirseerhq/sirseer-scout/test/testutil"
)

func TestCLI_Help(t *testing.T) {
	result := testutil.RunCLI(t, []string{"--help"}, nil)
	testutil.AssertCLISuccess(t, result)

	for _, sub := range []string{"search", "urls", "query"} {
		if !strings.Contains(result.Stdout, sub) {
			t.Errorf("help output missing %q command:\n%s", sub, result.Stdout)
		}
	}
}

func TestCLI_Version(t *testing.T) {
	result := testutil.RunCLI(t, []string{"--version"}, nil)
	testutil.AssertCLISuccess(t, result)

	if !strings.Contains(result.Stdout, "sirseer-scout version") {
		t.Errorf("unexpected version output: %s", result.Stdout)
	}
}

func TestCLI_ExitCodes(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(*testutil.CodeSearchServer)
		args     []string
		wantCode int
		wantErr  string
	}{
		{
			name:     "bad credentials",
			setup:    func(s *testutil.CodeSearchServer) { s.Username, s.Token = "someone", "else" },
			wantCode: 2,
			wantErr:  "Bad credentials",
		},
		{
			name:     "rate limited on first page",
			setup:    func(s *testutil.CodeSearchServer) { s.BrokenPage = 1 },
			wantCode: 2,
			wantErr:  "rate limit",
		},
		{
			name: "query rejected",
			setup: func(s *testutil.CodeSearchServer) {
				s.BrokenPage, s.BrokenStatus, s.BrokenMessage = 1, 422, "Validation Failed"
			},
			wantCode: 2,
			wantErr:  "search query rejected",
		},
		{
			name:     "invalid page size",
			args:     []string{"--page-size", "101"},
			wantCode: 1,
			wantErr:  "exceeds GitHub API limit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := testutil.NewCodeSearchServer(t, testutil.GenerateRecords(3))
			if tt.setup != nil {
				tt.setup(server)
			}

			args := append([]string{"--output", t.TempDir() + "/urls.txt"}, tt.args...)
			result := testutil.RunSearch(t, server, "needle", args...)

			testutil.AssertExitCode(t, result, tt.wantCode)
			testutil.AssertCLIError(t, result, tt.wantErr)
		})
	}
}

func TestCLI_NetworkFailure(t *testing.T) {
	server := testutil.NewCodeSearchServer(t, nil)
	server.Close()

	result := testutil.RunSearch(t, server, "needle", "--output", t.TempDir()+"/urls.txt")

	testutil.AssertExitCode(t, result, 3)
	testutil.AssertCLIError(t, result, "network error")
}

func TestCLI_MissingToken(t *testing.T) {
	// stdin is not a terminal, so no prompt is offered
	result := testutil.RunCLI(t, []string{"search", "needle", "--user", "u"}, nil)

	testutil.AssertExitCode(t, result, 2)
	testutil.AssertCLIError(t, result, "no GitHub token found")
}
