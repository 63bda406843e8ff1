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
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, path string) []string {
	t.Helper()
	var lines []string
	for line, err := range LoadLines(path) {
		require.NoError(t, err)
		lines = append(lines, line)
	}
	return lines
}

func TestDumpAndLoadLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")

	require.NoError(t, DumpLines(slices.Values([]string{"u1", "u2", "u3"}), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "u1\nu2\nu3\n", string(data))

	assert.Equal(t, []string{"u1", "u2", "u3"}, collect(t, path))
}

func TestLoadLines_FileNotExist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.txt")
	assert.Empty(t, collect(t, path))
}

func TestLoadLines_StripsTerminators(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	require.NoError(t, os.WriteFile(path, []byte("a\r\nb\n\nc"), 0o644))

	assert.Equal(t, []string{"a", "b", "", "c"}, collect(t, path))
}

func TestLoadLines_LongLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	long := strings.Repeat("x", 2<<20)
	require.NoError(t, os.WriteFile(path, []byte("u1\n"+long+"\nu3\n"), 0o644))

	assert.Equal(t, []string{"u1", long, "u3"}, collect(t, path))
}

func TestLoadLines_Directory(t *testing.T) {
	dir := t.TempDir()

	var gotErr error
	for _, err := range LoadLines(dir) {
		gotErr = err
	}
	assert.Error(t, gotErr)
}

func TestLoadLines_EarlyStop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	require.NoError(t, DumpLines(slices.Values([]string{"a", "b", "c"}), path))

	var first string
	for line, err := range LoadLines(path) {
		require.NoError(t, err)
		first = line
		break
	}
	assert.Equal(t, "a", first)
}

func TestDumpLines_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")

	require.NoError(t, DumpLines(slices.Values([]string{"old1", "old2", "old3"}), path))
	require.NoError(t, DumpLines(slices.Values([]string{"new"}), path))

	assert.Equal(t, []string{"new"}, collect(t, path))

	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file should be gone")
}

func TestDumpLines_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "urls.txt")

	require.NoError(t, DumpLines(slices.Values([]string{"x"}), path))
	assert.Equal(t, []string{"x"}, collect(t, path))
}

func TestDumpLines_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")

	require.NoError(t, DumpLines(slices.Values([]string(nil)), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestURLSet(t *testing.T) {
	set := NewURLSet()

	assert.True(t, set.Add("b"))
	assert.True(t, set.Add("a"))
	assert.False(t, set.Add("b"))
	assert.False(t, set.Add(""))

	assert.Equal(t, 2, set.Len())
	assert.True(t, set.Contains("a"))
	assert.False(t, set.Contains("c"))
	assert.Equal(t, []string{"b", "a"}, slices.Collect(set.All()))
}

func TestLoadURLSet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	require.NoError(t, os.WriteFile(path, []byte("u1\nu2\n\nu1\nu3\n"), 0o644))

	set, err := LoadURLSet(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"u1", "u2", "u3"}, slices.Collect(set.All()))

	empty, err := LoadURLSet(filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Len())
}
