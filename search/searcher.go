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


package search

import (
	"context"
	"log/slog"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/notesearch/core"
	"github.com/poiesic/notesearch/query"
	"github.com/poiesic/notesearch/storage"
)

// verbatimBoost is added to the score of hits containing every query
// word literally.
const verbatimBoost = 0.3

// Searcher runs compiled queries against stored notes.
type Searcher struct {
	noteRepository storage.NoteRepository
	parser         *query.Parser
	pool           *ants.Pool
	logger         *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithParser sets the query parser, letting callers control the clock
// and maximum query length.
func WithParser(parser *query.Parser) Option {
	return func(s *Searcher) error {
		if parser != nil {
			s.parser = parser
		}
		return nil
	}
}

// WithPoolSize sets the worker pool size for concurrent candidate matching.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(s *Searcher) error {
		if size < 1 {
			size = 1
		}
		if s.pool != nil {
			s.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		s.pool = pool
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(noteRepository storage.NoteRepository, opts ...Option) (*Searcher, error) {
	if noteRepository == nil {
		return nil, ErrNoteRepositoryRequired
	}

	parser, err := query.NewParser()
	if err != nil {
		return nil, err
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	s := &Searcher{
		noteRepository: noteRepository,
		parser:         parser,
		pool:           pool,
		logger:         slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			pool.Release()
			return nil, err
		}
	}

	return s, nil
}

// Close releases the worker pool.
func (s *Searcher) Close() error {
	s.pool.Release()
	return nil
}

// Search parses rawQuery and returns the matching notes, ranked by score.
func (s *Searcher) Search(ctx context.Context, rawQuery string) ([]*core.SearchResult, error) {
	return s.SearchWithMonitor(ctx, rawQuery, nil)
}

// SearchWithMonitor searches with monitoring.
// The monitor receives callbacks at each stage of the search process.
func (s *Searcher) SearchWithMonitor(ctx context.Context, rawQuery string, monitor SearchMonitor) ([]*core.SearchResult, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	monitor.Start(rawQuery)

	q, err := s.parser.Parse(rawQuery)
	if err != nil {
		s.logger.Error("error parsing query", "query", rawQuery, "err", err)
		return nil, err
	}
	monitor.AfterParse(q)

	candidates, err := s.candidates(ctx, q)
	if err != nil {
		s.logger.Error("error fetching candidate notes", "err", err)
		return nil, err
	}
	monitor.AfterCandidateFetch(len(candidates))

	boost := boostWords(positiveTermValues(q))

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results []*core.SearchResult
	)

	evaluate := func(note *core.Note) {
		if !matchQuery(q, note) {
			return
		}
		score := 1.0
		if containsAllWords(note, boost) {
			score += verbatimBoost
		}
		mu.Lock()
		results = append(results, &core.SearchResult{Note: note, Score: score})
		monitor.Hit(note, score)
		mu.Unlock()
	}

	for _, note := range candidates {
		note := note
		wg.Add(1)
		if err := s.pool.Submit(func() {
			defer wg.Done()
			evaluate(note)
		}); err != nil {
			// Pool unavailable; evaluate on the caller's goroutine.
			evaluate(note)
			wg.Done()
		}
	}
	wg.Wait()

	// Score descending, then newest first, then ID for a stable order.
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		if !results[i].Note.Created.Equal(results[j].Note.Created) {
			return results[i].Note.Created.After(results[j].Note.Created)
		}
		return results[i].Note.Id < results[j].Note.Id
	})

	results = window(results, q)
	monitor.Finish(results)

	return results, nil
}

// candidates fetches the notes worth evaluating, narrowing through the
// storage indexes where the query allows it.
func (s *Searcher) candidates(ctx context.Context, q *core.SearchQuery) ([]*core.Note, error) {
	if start, end, ok := creationWindow(q); ok {
		return s.noteRepository.GetNotesByDateRange(ctx, start, end)
	}

	if tags := q.Filters[core.FieldTag]; len(tags) > 0 {
		ids, err := s.noteRepository.GetNotesByTag(ctx, tags[0])
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			return nil, nil
		}
		return s.noteRepository.GetNotes(ctx, ids...)
	}

	// Full walk of the date index.
	return s.noteRepository.GetNotesByDateRange(ctx, time.Unix(0, 0).UTC(), maxScanTime)
}

var maxScanTime = time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC)

// creationWindow intersects the query's creation-time ranges into one
// scan window. Ranges on the updated field cannot use the creation-date
// index and are left to the matcher.
func creationWindow(q *core.SearchQuery) (time.Time, time.Time, bool) {
	start := time.Unix(0, 0).UTC()
	end := maxScanTime
	found := false

	for _, r := range q.Dates {
		if r.IsZero() || r.DateField() == core.FieldUpdated {
			continue
		}
		found = true
		if r.Start != nil && r.Start.After(start) {
			start = *r.Start
		}
		if r.End != nil && r.End.Before(end) {
			end = *r.End
		}
	}

	return start, end, found
}

// positiveTermValues returns the non-negated, non-wildcard term values,
// the raw material for the verbatim-match boost.
func positiveTermValues(q *core.SearchQuery) []string {
	var values []string
	for _, term := range q.Terms {
		if !term.Negated && !term.IsWildcard {
			values = append(values, term.Value)
		}
	}
	return values
}

// window applies MinScore, Offset and Limit.
func window(results []*core.SearchResult, q *core.SearchQuery) []*core.SearchResult {
	if q.MinScore > 0 {
		kept := results[:0]
		for _, r := range results {
			if r.Score >= q.MinScore {
				kept = append(kept, r)
			}
		}
		results = kept
	}

	if q.Offset > 0 {
		if q.Offset >= len(results) {
			return nil
		}
		results = results[q.Offset:]
	}
	if q.Limit > 0 && len(results) > q.Limit {
		results = results[:q.Limit]
	}
	return results
}
