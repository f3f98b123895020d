// Package translator moves data between generic rows of values and typed
// catalog entities, addressed by column name.
//
// A row has one slot per requested column plus a final Hidden slot that holds
// the entity itself:
//
//	tr, err := translator.ForTitles(translator.TitleText, translator.Rank, translator.Hidden)
//	row := tr.Row(title)        // []any{"Dune", 3, title}
//	row[1] = 1
//	err = tr.Apply(row)         // title.Rank == 1
//
// Column names come from a closed vocabulary per entity type; unknown names
// fail at construction.
package translator

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownColumn = errors.New("unknown column")
	ErrBadLayout     = errors.New("bad column layout")
	ErrRowLength     = errors.New("row length mismatch")
	ErrTypeMismatch  = errors.New("type mismatch")
)

// Column names one field of an entity.
type Column string

// Hidden is the reserved last column carrying the entity itself.
const Hidden Column = "hidden"

// Accessor reads and writes one field of E.
type Accessor[E any] struct {
	Kind Kind
	Get  func(e *E) any
	Set  func(e *E, value any) error
}

// Vocabulary is the closed set of columns recognized for E.
type Vocabulary[E any] map[Column]Accessor[E]

// Columns lists the recognized names, hidden marker excluded.
func (v Vocabulary[E]) Columns() []Column {
	cols := make([]Column, 0, len(v))
	for c := range v {
		cols = append(cols, c)
	}
	return cols
}

// Translator is built for one ordered column layout.
type Translator[E any] struct {
	columns []Column
	kinds   []Kind
	getters []func(*E) any
	setters []func(*E, any) error
}

// New validates columns against vocab and builds the index tables. The last
// column must be Hidden and Hidden may appear nowhere else.
func New[E any](vocab Vocabulary[E], columns ...Column) (*Translator[E], error) {
	if len(columns) == 0 || columns[len(columns)-1] != Hidden {
		return nil, fmt.Errorf("%w: last column must be %q", ErrBadLayout, Hidden)
	}

	n := len(columns) - 1
	t := &Translator[E]{
		columns: append([]Column(nil), columns...),
		kinds:   make([]Kind, n),
		getters: make([]func(*E) any, n),
		setters: make([]func(*E, any) error, n),
	}
	for i, col := range columns[:n] {
		if col == Hidden {
			return nil, fmt.Errorf("%w: %q only allowed as the last column", ErrBadLayout, Hidden)
		}
		acc, ok := vocab[col]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, col)
		}
		t.kinds[i] = acc.Kind
		t.getters[i] = acc.Get
		t.setters[i] = acc.Set
	}
	return t, nil
}

// ParseColumns splits a comma separated list of names and appends Hidden.
func ParseColumns(raw string) []Column {
	var cols []Column
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			cols = append(cols, Column(part))
		}
	}
	return append(cols, Hidden)
}

// Columns returns the layout, Hidden included.
func (t *Translator[E]) Columns() []Column {
	return append([]Column(nil), t.columns...)
}

// Kind returns the value kind of the i-th column. It panics for the hidden
// column and beyond.
func (t *Translator[E]) Kind(i int) Kind {
	return t.kinds[i]
}

// Width is the row length the translator produces and accepts.
func (t *Translator[E]) Width() int {
	return len(t.columns)
}

// Row reads e into a new row. The last slot holds e itself.
func (t *Translator[E]) Row(e *E) []any {
	row := make([]any, len(t.columns))
	for i, get := range t.getters {
		row[i] = get(e)
	}
	row[len(row)-1] = e
	return row
}

// Rows is the batch form of Row.
func (t *Translator[E]) Rows(es []*E) [][]any {
	rows := make([][]any, len(es))
	for i, e := range es {
		rows[i] = t.Row(e)
	}
	return rows
}

// Apply writes the row's values into the entity found in its last slot,
// in column order. The first failing setter aborts.
func (t *Translator[E]) Apply(row []any) error {
	if len(row) != len(t.columns) {
		return fmt.Errorf("%w: want %d values, got %d", ErrRowLength, len(t.columns), len(row))
	}
	e, ok := row[len(row)-1].(*E)
	if !ok || e == nil {
		var zero E
		return fmt.Errorf("%w: hidden column must hold *%T, got %T", ErrTypeMismatch, zero, row[len(row)-1])
	}
	for i, set := range t.setters {
		if err := set(e, row[i]); err != nil {
			return fmt.Errorf("column %q: %w", t.columns[i], err)
		}
	}
	return nil
}

// ApplyAll is the batch form of Apply and stops at the first bad row.
func (t *Translator[E]) ApplyAll(rows [][]any) error {
	for i, row := range rows {
		if err := t.Apply(row); err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
	}
	return nil
}
