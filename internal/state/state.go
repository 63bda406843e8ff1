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
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"
)

// DefaultURLFile is the file URLs are written to when none is configured.
const DefaultURLFile = "urls.txt"

// DumpLines replaces the file at path with one line per element of lines.
// Parent directories are created as needed.
func DumpLines(lines iter.Seq[string], path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", path, err)
		}
	}

	tempFile := path + ".tmp"
	file, err := os.OpenFile(tempFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	w := bufio.NewWriter(file)
	for line := range lines {
		if _, err := w.WriteString(line); err != nil {
			return abortWrite(file, tempFile, err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return abortWrite(file, tempFile, err)
		}
	}

	if err := w.Flush(); err != nil {
		return abortWrite(file, tempFile, err)
	}
	if err := file.Sync(); err != nil {
		return abortWrite(file, tempFile, err)
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(tempFile)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tempFile, path); err != nil {
		_ = os.Remove(tempFile)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}

func abortWrite(file *os.File, tempFile string, err error) error {
	_ = file.Close()
	_ = os.Remove(tempFile)
	return fmt.Errorf("failed to write %s: %w", tempFile, err)
}

// LoadLines yields each line of the file at path without its line
// terminator. A missing file yields nothing. The file is opened when
// iteration starts and closed when it ends, so the sequence can be
// ranged over again to re-read the file.
func LoadLines(path string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		file, err := os.Open(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return
			}
			yield("", fmt.Errorf("failed to open %s: %w", path, err))
			return
		}
		defer file.Close()

		// Lines have no length limit.
		r := bufio.NewReader(file)
		for {
			line, err := r.ReadString('\n')
			if line != "" {
				line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
				if !yield(line, nil) {
					return
				}
			}
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield("", fmt.Errorf("failed to read %s: %w", path, err))
				return
			}
		}
	}
}
