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

package github

import "iter"

// PageCount returns how many pages of step items cover total items.
func PageCount(total, step int) int {
	if total <= 0 {
		return 0
	}
	if step <= 0 {
		step = DefaultPageSize
	}
	return (total + step - 1) / step
}

// Pages yields the 1-indexed page numbers needed to cover total items.
// A non-positive step falls back to DefaultPageSize.
func Pages(total, step int) iter.Seq[int] {
	return func(yield func(int) bool) {
		n := PageCount(total, step)
		for page := 1; page <= n; page++ {
			if !yield(page) {
				return
			}
		}
	}
}

// ReachableTotal caps total at the number of results the API will serve.
func ReachableTotal(total int) int {
	return min(total, MaxReachableResults)
}
