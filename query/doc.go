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


// Package query compiles free-form search strings into structured queries.
//
// A raw query may mix field filters (tag:work, -status:draft), quoted
// phrases ("machine learning"), Boolean operators (AND, OR, NOT), glob
// wildcards (pyth*, re?d) and date expressions (created:today,
// date:2024-01-01..2024-01-31, updated:last-2-weeks).
//
// The Parser scans the string once into typed tokens and builds a
// core.SearchQuery. Two lowering functions translate that model into
// executable forms: WhereClause produces a parameterized relational
// filter, FTSQuery produces a full-text engine expression.
//
// Parsing is deliberately permissive: unknown field names degrade to
// plain-text terms, unparseable date values drop the filter, and empty
// input yields an empty always-matching query. The only error a caller
// sees is ErrQueryTooLong.
//
// A Parser is stateless per call and safe for concurrent use.
package query
