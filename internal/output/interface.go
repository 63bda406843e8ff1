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
	"errors"

	"github.com/sirseerhq/sirseer-scout/internal/github"
)

// Record is one output line: a match record plus where it was found.
type Record struct {
	github.MatchRecord
	URL  string `json:"url"`
	Page int    `json:"page"`
}

// RecordWriter defines the interface for emitting match records.
type RecordWriter interface {
	// Write emits a single record.
	// The record should be immediately flushed to avoid memory accumulation.
	Write(record Record) error

	// Close closes the underlying writer and releases any resources.
	// This should be called when all writing is complete.
	Close() error
}

// Multi returns a RecordWriter that writes every record to each of writers
// in order and stops at the first error.
func Multi(writers ...RecordWriter) RecordWriter {
	return multiWriter(writers)
}

type multiWriter []RecordWriter

func (m multiWriter) Write(record Record) error {
	for _, w := range m {
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}

func (m multiWriter) Close() error {
	var errs []error
	for _, w := range m {
		if err := w.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
