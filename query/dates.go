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


package query

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/poiesic/notesearch/core"
)

const dayLayout = "2006-01-02"

var relativePattern = regexp.MustCompile(`^(last|past|next)-(\d+)-(day|week|month|year)s?$`)

// namedWindows maps shortcut names to the (amount, unit) pairs fed into
// the same window computation as the relative syntax.
var namedWindows = map[string]struct {
	amount int
	unit   string
}{
	"today":      {0, "day"},
	"yesterday":  {-1, "day"},
	"this-week":  {0, "week"},
	"last-week":  {-1, "week"},
	"this-month": {0, "month"},
	"last-month": {-1, "month"},
	"this-year":  {0, "year"},
	"last-year":  {-1, "year"},
}

// resolveDateRange turns a raw date-field value into a DateRange.
// Strategies are tried in a fixed order, first match wins:
//
//  1. explicit range YYYY-MM-DD..YYYY-MM-DD (both bounds taken literally
//     at midnight)
//  2. relative range (last|past|next)-N-(day|week|month|year)s
//  3. named shortcut (today, yesterday, this-week, ...)
//  4. single date YYYY-MM-DD (whole-day window through 23:59:59)
//
// Returns false when nothing matches; the caller drops the filter.
func resolveDateRange(field core.Field, value string, now time.Time) (core.DateRange, bool) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return core.DateRange{}, false
	}

	if first, second, found := strings.Cut(value, ".."); found {
		start, err := time.ParseInLocation(dayLayout, first, now.Location())
		if err != nil {
			return core.DateRange{}, false
		}
		end, err := time.ParseInLocation(dayLayout, second, now.Location())
		if err != nil {
			return core.DateRange{}, false
		}
		return core.DateRange{Field: field, Start: &start, End: &end}, true
	}

	if m := relativePattern.FindStringSubmatch(value); m != nil {
		amount, err := strconv.Atoi(m[2])
		if err != nil {
			return core.DateRange{}, false
		}
		if m[1] == "last" || m[1] == "past" {
			amount = -amount
		}
		start, end := relativeWindow(amount, m[3], now)
		return core.DateRange{Field: field, Start: &start, End: &end}, true
	}

	if w, ok := namedWindows[value]; ok {
		start, end := relativeWindow(w.amount, w.unit, now)
		return core.DateRange{Field: field, Start: &start, End: &end}, true
	}

	if day, err := time.ParseInLocation(dayLayout, value, now.Location()); err == nil {
		end := day.Add(24*time.Hour - time.Second) // 23:59:59
		return core.DateRange{Field: field, Start: &day, End: &end}, true
	}

	return core.DateRange{}, false
}

// relativeWindow computes the (start, end) pair for an (amount, unit)
// offset anchored at now.
//
// A zero amount means "the current period": the start snaps to midnight,
// the most recent Monday, the first of the month, or January 1. A
// non-zero amount offsets from now without time-of-day normalization.
// Months count as 30 days and years as 365, an approximation kept for
// predictability over calendar accuracy.
//
// The anchor end is now; a future window ("next-...") comes back with
// the bounds ordered.
func relativeWindow(amount int, unit string, now time.Time) (time.Time, time.Time) {
	end := now
	var start time.Time

	switch unit {
	case "day":
		if amount == 0 {
			start = midnight(now)
		} else {
			start = now.AddDate(0, 0, amount)
		}
	case "week":
		if amount == 0 {
			// Most recent Monday.
			offset := (int(now.Weekday()) + 6) % 7
			start = midnight(now).AddDate(0, 0, -offset)
		} else {
			start = now.AddDate(0, 0, 7*amount)
		}
	case "month":
		if amount == 0 {
			start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		} else {
			start = now.AddDate(0, 0, 30*amount)
		}
	case "year":
		if amount == 0 {
			start = time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
		} else {
			start = now.AddDate(0, 0, 365*amount)
		}
	default:
		start = now
	}

	if start.After(end) {
		start, end = end, start
	}
	return start, end
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
