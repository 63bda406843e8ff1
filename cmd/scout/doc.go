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

// Package main implements the sirseer-scout command-line interface.
// It runs GitHub code searches, pages through every reachable result and
// keeps the URLs of matching files in a plain text file, one per line.
//
// Commands:
//   - search: run a search and update the URL file
//   - urls: print the URLs collected so far
//   - query: print the query and request URL a search would use
//
// Usage:
//
//	sirseer-scout search <text> [flags]
//
// Example:
//
//	export GITHUB_TOKEN=your_token
//	sirseer-scout search "http.Client" --ext go --exclude-org golang --user octocat
//
// Exit codes:
//   - 0: Success
//   - 1: General error
//   - 2: Authentication error, rate limit or broken search response
//   - 3: Network error
package main
