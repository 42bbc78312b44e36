// Copyright 2026 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package search runs compiled queries against a note repository.
//
// The Searcher is the reference consumer of the query compiler: it
// parses a raw query string, narrows candidates through the storage
// indexes (creation-date range or tag), evaluates the compiled model
// against each candidate on a worker pool, and returns scored results
// honoring the query's MinScore, Limit and Offset.
//
// The in-process matcher mirrors the semantics of the relational
// lowering, so results here agree with what an external store would
// return for the same WHERE clause.
package search
