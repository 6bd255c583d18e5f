// Package query implements the admin dashboard's in-memory query
// engine: a case-insensitive substring filter and a lexical column
// sort over an already-fetched registration snapshot. No call here
// ever refetches data.
package query

import (
	"sort"
	"strings"

	"github.com/simoncdt/vericoupon/internal/model"
)

// Column names a sortable registration column.
type Column string

const (
	ColSurname      Column = "surname"
	ColGivenName    Column = "givenName"
	ColProviderName Column = "providerName"
	ColCreatedAt    Column = "createdAt"
)

// Direction is a sort direction.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// Engine derives filtered, sorted views over one registration snapshot.
type Engine struct {
	regs   []model.Registration
	filter string
	sortBy Column
	dir    Direction
}

// NewEngine snapshots the given registrations. The default view sorts
// by creation time, newest first.
func NewEngine(regs []model.Registration) *Engine {
	snapshot := make([]model.Registration, len(regs))
	copy(snapshot, regs)
	return &Engine{
		regs:   snapshot,
		sortBy: ColCreatedAt,
		dir:    Descending,
	}
}

// SetFilter sets the substring filter. An empty filter shows all rows.
func (e *Engine) SetFilter(filter string) {
	e.filter = filter
}

// ToggleSort selects a sort column. Selecting the active column flips
// its direction; selecting a different column starts ascending.
func (e *Engine) ToggleSort(col Column) {
	if e.sortBy == col {
		if e.dir == Ascending {
			e.dir = Descending
		} else {
			e.dir = Ascending
		}
		return
	}
	e.sortBy = col
	e.dir = Ascending
}

// SortState returns the active sort column and direction.
func (e *Engine) SortState() (Column, Direction) {
	return e.sortBy, e.dir
}

// Rows re-derives the current view: filter, then a stable lexical sort.
func (e *Engine) Rows() []model.Registration {
	needle := strings.ToLower(e.filter)

	rows := make([]model.Registration, 0, len(e.regs))
	for _, reg := range e.regs {
		if needle == "" || matches(&reg, needle) {
			rows = append(rows, reg)
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := sortKey(&rows[i], e.sortBy), sortKey(&rows[j], e.sortBy)
		if e.dir == Descending {
			return a > b
		}
		return a < b
	})

	return rows
}

// matches reports whether the lowercased needle occurs in any of the
// three searchable fields.
func matches(reg *model.Registration, needle string) bool {
	return strings.Contains(strings.ToLower(reg.Surname), needle) ||
		strings.Contains(strings.ToLower(reg.GivenName), needle) ||
		strings.Contains(strings.ToLower(reg.ProviderName), needle)
}

// sortKey returns the string the active column compares on.
func sortKey(reg *model.Registration, col Column) string {
	switch col {
	case ColSurname:
		return reg.Surname
	case ColGivenName:
		return reg.GivenName
	case ColProviderName:
		return reg.ProviderName
	default:
		return reg.CreatedAtKey()
	}
}
