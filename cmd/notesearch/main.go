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


package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/poiesic/notesearch"
	"github.com/poiesic/notesearch/core"
	"github.com/poiesic/notesearch/query"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "notesearch",
		Usage: "Advanced search over note collections",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "explain",
				Usage:     "Parse a query and print its compiled forms",
				ArgsUsage: "QUERY",
				Action:    explainCommand,
			},
			{
				Name:      "search",
				Usage:     "Run a query against a note database",
				ArgsUsage: "QUERY",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to the note database directory",
						Required: true,
					},
				},
			},
			{
				Name:   "import",
				Usage:  "Import notes from a JSON-lines file",
				Action: importCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to the note database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "file",
						Aliases: []string{"f"},
						Usage:   "Input file (defaults to stdin)",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func explainCommand(c *cli.Context) error {
	raw := strings.Join(c.Args().Slice(), " ")
	if raw == "" {
		return fmt.Errorf("missing query argument")
	}

	parser, err := query.NewParser()
	if err != nil {
		return err
	}
	q, err := parser.Parse(raw)
	if err != nil {
		return err
	}

	fmt.Printf("terms (%d):\n", len(q.Terms))
	for _, term := range q.Terms {
		flags := make([]string, 0, 3)
		if term.Negated {
			flags = append(flags, "negated")
		}
		if term.IsPhrase {
			flags = append(flags, "phrase")
		}
		if term.IsWildcard {
			flags = append(flags, "wildcard")
		}
		field := string(term.Field)
		if field == "" {
			field = "<any>"
		}
		fmt.Printf("  %-4s %-8s %q %s\n", term.Operator, field, term.Value, strings.Join(flags, ","))
	}

	if len(q.Dates) > 0 {
		fmt.Printf("dates (%d):\n", len(q.Dates))
		for _, r := range q.Dates {
			start, end := "-", "-"
			if r.Start != nil {
				start = r.Start.Format(core.ISOLayout)
			}
			if r.End != nil {
				end = r.End.Format(core.ISOLayout)
			}
			fmt.Printf("  %-8s %s .. %s\n", r.DateField(), start, end)
		}
	}

	if len(q.Filters) > 0 {
		fmt.Println("filters:")
		fields := make([]string, 0, len(q.Filters))
		for f := range q.Filters {
			fields = append(fields, string(f))
		}
		sort.Strings(fields)
		for _, f := range fields {
			fmt.Printf("  %s: %s\n", f, strings.Join(q.Filters[core.Field(f)], ", "))
		}
	}

	filter := query.WhereClause(q)
	fmt.Printf("where: %s\n", filter.Clause)
	if len(filter.Params) > 0 {
		names := make([]string, 0, len(filter.Params))
		for name := range filter.Params {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("  :%s = %q\n", name, filter.Params[name])
		}
	}
	fmt.Printf("fts: %s\n", query.FTSQuery(q))

	return nil
}

func searchCommand(c *cli.Context) error {
	raw := strings.Join(c.Args().Slice(), " ")
	if raw == "" {
		return fmt.Errorf("missing query argument")
	}

	db, err := notesearch.NewDatabase(c.String("db"))
	if err != nil {
		return err
	}
	defer db.Close()

	searcher, err := db.NewSearcher()
	if err != nil {
		return err
	}
	defer searcher.Close()

	results, err := searcher.Search(c.Context, raw)
	if err != nil {
		return err
	}

	fmt.Printf("Found %d hits\n", len(results))
	for i, hit := range results {
		title := hit.Note.Title
		if title == "" {
			title = firstLine(hit.Note.Content)
		}
		fmt.Printf("%d: %q (%d)[%0.3f]\n", i, title, hit.Note.Id, hit.Score)
	}

	return nil
}

// noteDTO is the JSON-lines import shape.
type noteDTO struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
	Type    string   `json:"type"`
	Author  string   `json:"author"`
	Status  string   `json:"status"`
	Source  string   `json:"source"`
	Created string   `json:"created"`
}

func importCommand(c *cli.Context) error {
	var in io.Reader = os.Stdin
	if path := c.String("file"); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	db, err := notesearch.NewDatabase(c.String("db"))
	if err != nil {
		return err
	}
	defer db.Close()

	var notes []*core.Note
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		var dto noteDTO
		if err := json.Unmarshal([]byte(text), &dto); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}

		note := &core.Note{
			Title:   dto.Title,
			Content: dto.Content,
			Tags:    dto.Tags,
			Type:    dto.Type,
			Author:  dto.Author,
			Status:  dto.Status,
			Source:  dto.Source,
		}
		if dto.Created != "" {
			created, err := time.Parse(core.ISOLayout, dto.Created)
			if err != nil {
				return fmt.Errorf("line %d: bad created timestamp: %w", line, err)
			}
			note.Created = created
		}
		if err := core.ValidateNote(note); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		notes = append(notes, note)
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	added, err := db.NoteRepository().AddNotes(c.Context, notes...)
	if err != nil {
		return err
	}
	fmt.Printf("Imported %d notes\n", len(added))

	return nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if len(s) > 60 {
		s = s[:60] + "..."
	}
	return s
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
