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

// Package github talks to the GitHub code search REST API. It builds
// request URLs, issues authenticated requests, walks result pages and turns
// each page into match records.
//
// The package includes:
//   - URL construction with deterministic, sorted query parameters
//   - A REST client using basic authentication
//   - Page enumeration driven by the total_count of the first page
//   - A result parser that models broken pages explicitly
//   - Default-branch resolution through the GraphQL API
//   - A mock Searcher for testing
//
// Basic usage:
//
//	client := github.NewRESTClient(github.Options{Username: "me", Token: token})
//	q := query.Build("ReadPassword", []string{"go"}, nil, nil)
//	result, err := client.SearchCode(ctx, q, 1)
//	if err != nil {
//	    // Transport failure
//	}
//	switch r := result.(type) {
//	case *github.Broken:
//	    // Stop paginating, report r.Err()
//	case *github.Page:
//	    for record, err := range r.Records() {
//	        // ...
//	    }
//	}
package github
