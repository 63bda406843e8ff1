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

package giterror

import (
	"fmt"
	"net/http"
	"strings"
)

// APIError is an error GitHub reported in a response body.
type APIError struct {
	StatusCode       int
	Message          string
	DocumentationURL string
}

// Error implements error.
func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("github api: %d %s", e.StatusCode, msg)
}

// IsAuthError reports a rejected or missing credential.
func (e *APIError) IsAuthError() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// IsNotFoundError reports a missing resource.
func (e *APIError) IsNotFoundError() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsRateLimitError reports a primary or secondary rate limit.
func (e *APIError) IsRateLimitError() bool {
	if e.StatusCode == http.StatusTooManyRequests {
		return true
	}
	msg := strings.ToLower(e.Message)
	return e.StatusCode == http.StatusForbidden &&
		(strings.Contains(msg, "rate limit") || strings.Contains(msg, "abuse detection"))
}

// IsValidationError reports a query GitHub refused to run.
func (e *APIError) IsValidationError() bool {
	return e.StatusCode == http.StatusUnprocessableEntity
}

// IsNetworkError is always false: a body was received.
func (e *APIError) IsNetworkError() bool {
	return false
}
