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

// Package giterror classifies errors returned while talking to the GitHub
// REST and GraphQL APIs.
//
// Transport failures arrive as opaque errors from net/http, so the default
// Inspector classifies them by message. API failures reported in a response
// body are turned into *APIError values, which classify themselves; the
// ErrorChainInspector checks for those first and falls back to the string
// heuristics.
package giterror
