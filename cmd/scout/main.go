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

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	scouterrors "github.com/sirseerhq/sirseer-scout/internal/errors"
	"github.com/sirseerhq/sirseer-scout/pkg/version"
)

func main() {
	rootCmd := newRootCommand()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(mapErrorToExitCode(err))
	}
}

// rootFlags are shared by every subcommand.
type rootFlags struct {
	configPath string
	logLevel   string
	logFormat  string
	logFile    string
}

func newRootCommand() *cobra.Command {
	var rf rootFlags

	rootCmd := &cobra.Command{
		Use:   "sirseer-scout",
		Short: "Search GitHub code and collect the matching file URLs",
		Long: `SirSeer Scout runs a GitHub code search, walks every reachable result
page and keeps a de-duplicated list of the matching file URLs on disk.
Matched fragments can be printed with highlighting or saved as NDJSON.`,
		Version:       version.Version,
		SilenceUsage:  true, // Don't show usage on error
		SilenceErrors: true, // We'll handle error printing ourselves
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rf.configPath, "config", "", "Path to configuration file")
	pf.StringVar(&rf.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	pf.StringVar(&rf.logFormat, "log-format", "", "Log format (console, json)")
	pf.StringVar(&rf.logFile, "log-file", "", "Also write logs to this file, rotated by size")

	rootCmd.AddCommand(
		newSearchCommand(&rf),
		newURLsCommand(&rf),
		newQueryCommand(&rf),
	)

	return rootCmd
}

// mapErrorToExitCode maps internal errors to appropriate exit codes
func mapErrorToExitCode(err error) int {
	if err == nil {
		return 0
	}

	if errors.Is(err, scouterrors.ErrInvalidToken) ||
		errors.Is(err, scouterrors.ErrRepoNotFound) ||
		errors.Is(err, scouterrors.ErrRateLimit) ||
		errors.Is(err, scouterrors.ErrInvalidQuery) ||
		errors.Is(err, scouterrors.ErrBrokenResponse) {
		return 2 // Authentication/authorization errors and refused searches
	}

	if errors.Is(err, scouterrors.ErrNetworkFailure) {
		return 3 // Network errors
	}

	return 1 // General error
}
