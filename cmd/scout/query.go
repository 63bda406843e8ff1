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

	"github.com/spf13/cobra"

	"github.com/sirseerhq/sirseer-scout/internal/github"
)

func newQueryCommand(rf *rootFlags) *cobra.Command {
	var (
		f    filterFlags
		page int
	)

	cmd := &cobra.Command{
		Use:   "query [text]",
		Short: "Print the search query and request URL without calling the API",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fs := cmd.Flags()
			cfg, err := loadConfig(fs, rf)
			if err != nil {
				return err
			}
			q, err := buildQuery(fs, cfg, &f, args)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			if page < 1 {
				return fmt.Errorf("page must be at least 1, got: %d", page)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "query: %s\n", q.String())
			fmt.Fprintf(out, "url:   %s\n", github.SearchCodeURL(cfg.GitHub.APIEndpoint, q, cfg.Search.Sort, page, cfg.Search.PageSize))
			return nil
		},
	}

	addFilterFlags(cmd.Flags(), &f)
	cmd.Flags().IntVar(&page, "page", 1, "Page number to build the URL for")

	return cmd
}
