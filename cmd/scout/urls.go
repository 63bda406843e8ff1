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
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/sirseerhq/sirseer-scout/internal/state"
)

func newURLsCommand(rf *rootFlags) *cobra.Command {
	var count bool

	cmd := &cobra.Command{
		Use:   "urls [file]",
		Short: "Print the URLs collected by previous searches",
		Long: `Print the URLs collected by previous searches, one per line, in the order
they were first found. Without an argument the configured URL file is read.
A missing file prints nothing.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd.Flags(), rf)
			if err != nil {
				return err
			}

			path := cfg.Output.URLsFile
			if len(args) > 0 {
				path = args[0]
			}

			out := cmd.OutOrStdout()
			n := 0
			for line, err := range state.LoadLines(path) {
				if err != nil {
					return fmt.Errorf("failed to read %s: %w", path, err)
				}
				n++
				if !count {
					fmt.Fprintln(out, line)
				}
			}

			if count {
				fmt.Fprintln(out, n)
			} else {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s URLs in %s\n", humanize.Comma(int64(n)), path)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&count, "count", false, "Print only the number of URLs")

	return cmd
}
