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

package state

import (
	"fmt"
	"path/filepath"
	"testing"
)

func benchmarkURLs(n int) []string {
	urls := make([]string, n)
	for i := range urls {
		urls[i] = fmt.Sprintf("https://github.com/user%d/repo%d/tree/master/pkg/file%d.go", i%97, i%13, i)
	}
	return urls
}

// BenchmarkDumpLines benchmarks writing URL lists of increasing size
func BenchmarkDumpLines(b *testing.B) {
	for _, n := range []int{100, 1000, 10000} {
		b.Run(fmt.Sprintf("%dURLs", n), func(b *testing.B) {
			path := filepath.Join(b.TempDir(), "urls.txt")
			set := NewURLSet()
			for _, u := range benchmarkURLs(n) {
				set.Add(u)
			}

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if err := DumpLines(set.All(), path); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkLoadURLSet benchmarks reading URL lists of increasing size
func BenchmarkLoadURLSet(b *testing.B) {
	for _, n := range []int{100, 1000, 10000} {
		b.Run(fmt.Sprintf("%dURLs", n), func(b *testing.B) {
			path := filepath.Join(b.TempDir(), "urls.txt")
			set := NewURLSet()
			for _, u := range benchmarkURLs(n) {
				set.Add(u)
			}
			if err := DumpLines(set.All(), path); err != nil {
				b.Fatal(err)
			}

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := LoadURLSet(path); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
