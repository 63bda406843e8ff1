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

// Package state persists the list of file URLs discovered by previous
// searches.
//
// The on-disk format is plain UTF-8 text with one URL per line, each line
// newline-terminated. Loading a file that does not exist is not an error;
// it yields nothing. Every write replaces the whole file atomically using
// a write-to-temp-and-rename pattern, so an interrupted run leaves either
// the old list or the new one, never a torn file.
//
// Example usage:
//
//	seen, err := state.LoadURLSet("urls.txt")
//	if err != nil {
//	    return err
//	}
//	seen.Add("https://github.com/u/r/tree/master/a.py")
//	err = state.DumpLines(seen.All(), "urls.txt")
package state
