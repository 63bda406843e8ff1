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

package output

import (
	"bytes"
	"errors"
	"testing"
)

// Compile-time checks that the writers implement RecordWriter
var (
	_ RecordWriter = (*Writer)(nil)
	_ RecordWriter = (*MatchPrinter)(nil)
)

type failingWriter struct {
	writes   int
	closeErr error
}

func (f *failingWriter) Write(Record) error {
	f.writes++
	return errors.New("disk full")
}

func (f *failingWriter) Close() error { return f.closeErr }

func TestMulti(t *testing.T) {
	var ndjson, text bytes.Buffer
	w := Multi(NewWriter(&ndjson), NewMatchPrinter(&text, nil))

	if err := w.Write(testRecord("u", "a.go", 1)); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if ndjson.Len() == 0 {
		t.Error("expected NDJSON output")
	}
	if text.Len() == 0 {
		t.Error("expected printed output")
	}
}

func TestMulti_StopsAtFirstError(t *testing.T) {
	first := &failingWriter{}
	second := &failingWriter{}

	w := Multi(first, second)
	if err := w.Write(testRecord("u", "a.go", 1)); err == nil {
		t.Fatal("expected error")
	}
	if first.writes != 1 || second.writes != 0 {
		t.Errorf("writes = %d, %d; want 1, 0", first.writes, second.writes)
	}
}

func TestMulti_CloseJoinsErrors(t *testing.T) {
	errA := errors.New("a")
	errB := errors.New("b")

	err := Multi(&failingWriter{closeErr: errA}, &failingWriter{closeErr: errB}).Close()
	if !errors.Is(err, errA) || !errors.Is(err, errB) {
		t.Errorf("Close() = %v, want both errors", err)
	}
}
