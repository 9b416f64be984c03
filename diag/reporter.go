// Copyright (c) 2024 The accgo Contributors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

// Package diag is the ordered diagnostics sink shared by the scanner,
// parser, and analyzer. It only buffers and orders records; formatting
// and presentation are left to the caller of Flush.
package diag

import (
	"fmt"
	"io"
	"sort"
)

// Kind identifies which stage raised a diagnostic. Ordinal order is
// significant: it is the tie-breaker when two reports share a position.
type Kind int

const (
	Scanner Kind = iota
	Parser
	Analysis
)

func (k Kind) String() string {
	switch k {
	case Scanner:
		return "scanner"
	case Parser:
		return "parser"
	case Analysis:
		return "analysis"
	default:
		return "unknown"
	}
}

// Record is one diagnostic: a kind, a source position, a short title,
// and an optional longer description.
type Record struct {
	Kind        Kind
	Line        int
	Col         int
	Title       string
	Description string
}

func (r Record) String() string {
	if r.Description == "" {
		return fmt.Sprintf("%s:%d:%d: %s", r.Kind, r.Line, r.Col, r.Title)
	}
	return fmt.Sprintf("%s:%d:%d: %s: %s", r.Kind, r.Line, r.Col, r.Title, r.Description)
}

// Reporter buffers diagnostic records until the caller is ready to
// flush them. Records are sorted by (line, column, kind) ascending.
type Reporter struct {
	records []Record
}

// NewReporter returns an empty Reporter.
func NewReporter() *Reporter {
	return &Reporter{}
}

// Report appends a diagnostic record. description may be empty.
func (r *Reporter) Report(kind Kind, line, col int, title, description string) {
	r.records = append(r.records, Record{
		Kind:        kind,
		Line:        line,
		Col:         col,
		Title:       title,
		Description: description,
	})
}

// HasErrors reports whether any diagnostic has been recorded. Every
// record this package accepts is fatal to code generation; there is no
// separate warning severity.
func (r *Reporter) HasErrors() bool {
	return len(r.records) > 0
}

// Records returns a sorted copy of the buffered diagnostics, ordered by
// (line, column, kind) ascending.
func (r *Reporter) Records() []Record {
	sorted := make([]Record, len(r.records))
	copy(sorted, r.records)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Col != b.Col {
			return a.Col < b.Col
		}
		return a.Kind < b.Kind
	})
	return sorted
}

// Flush writes every buffered diagnostic to w, one per line, in sorted
// order.
func (r *Reporter) Flush(w io.Writer) {
	for _, rec := range r.Records() {
		fmt.Fprintln(w, rec.String())
	}
}
