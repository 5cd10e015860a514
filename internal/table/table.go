// Package table derives the visible ticket rows from the full fetched
// collection: substring filter, single-column stable sort, fixed-size
// pagination. Pure functions over in-memory data; no I/O.
package table

import (
	"sort"
	"strconv"
	"strings"

	"github.com/soft-network/deskpro/internal/api"
)

// DefaultPageSize matches the dashboard table.
const DefaultPageSize = 10

type Direction int

const (
	None Direction = iota
	Asc
	Desc
)

func (d Direction) String() string {
	switch d {
	case Asc:
		return "asc"
	case Desc:
		return "desc"
	}
	return ""
}

// ParseDirection maps a query-parameter value to a Direction. Anything
// unrecognized is treated as unsorted.
func ParseDirection(s string) Direction {
	switch s {
	case "asc":
		return Asc
	case "desc":
		return Desc
	}
	return None
}

// Sort is the single-column sort state of the table.
type Sort struct {
	Column string
	Dir    Direction
}

// NextSort advances the sort state for a click on col: a new column starts
// ascending, repeated clicks cycle asc → desc → unsorted.
func NextSort(cur Sort, col string) Sort {
	if cur.Column != col {
		return Sort{Column: col, Dir: Asc}
	}
	switch cur.Dir {
	case Asc:
		return Sort{Column: col, Dir: Desc}
	case Desc:
		return Sort{} // back to fetch order
	}
	return Sort{Column: col, Dir: Asc}
}

// Columns enumerates the sortable/filterable columns in display order.
var Columns = []string{"id", "subject", "customer", "status", "priority", "channel", "assignee", "created"}

// cellValue returns the rendered value of one column for filtering/sorting.
func cellValue(t api.Ticket, col string) string {
	switch col {
	case "id":
		return strconv.Itoa(t.ID)
	case "subject":
		return t.Subject
	case "customer":
		return t.CustomerName
	case "status":
		return t.Status
	case "priority":
		return t.Priority
	case "channel":
		return t.Channel
	case "assignee":
		return t.Assignee
	case "created":
		return t.CreatedAt
	}
	return ""
}

// Page is one derived view of the ticket collection.
type Page struct {
	Rows          []api.Ticket
	Index         int // zero-based, clamped
	Count         int // total pages over the filtered set, at least 1
	TotalFiltered int
	HasPrev       bool
	HasNext       bool
}

// View derives the visible page. Filtering is a case-insensitive substring
// match across all visible column values. Sorting is lexicographic on the
// cell value (numeric for the ID column) and stable, so rows with equal keys
// keep their fetched order. Page index is clamped to the valid range.
func View(tickets []api.Ticket, s Sort, filter string, pageIndex, pageSize int) Page {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	rows := tickets
	if q := strings.ToLower(strings.TrimSpace(filter)); q != "" {
		rows = make([]api.Ticket, 0, len(tickets))
		for _, t := range tickets {
			if matches(t, q) {
				rows = append(rows, t)
			}
		}
	}

	if s.Dir != None && sortable(s.Column) {
		sorted := make([]api.Ticket, len(rows))
		copy(sorted, rows)
		less := lessFunc(s.Column)
		sort.SliceStable(sorted, func(i, j int) bool {
			if s.Dir == Desc {
				return less(sorted[j], sorted[i])
			}
			return less(sorted[i], sorted[j])
		})
		rows = sorted
	}

	total := len(rows)
	count := (total + pageSize - 1) / pageSize
	if count < 1 {
		count = 1
	}
	idx := pageIndex
	if idx < 0 {
		idx = 0
	}
	if idx > count-1 {
		idx = count - 1
	}

	lo := idx * pageSize
	hi := lo + pageSize
	if lo > total {
		lo = total
	}
	if hi > total {
		hi = total
	}

	return Page{
		Rows:          rows[lo:hi],
		Index:         idx,
		Count:         count,
		TotalFiltered: total,
		HasPrev:       idx > 0,
		HasNext:       idx < count-1,
	}
}

func matches(t api.Ticket, q string) bool {
	for _, col := range Columns {
		if strings.Contains(strings.ToLower(cellValue(t, col)), q) {
			return true
		}
	}
	return false
}

func sortable(col string) bool {
	for _, c := range Columns {
		if c == col {
			return true
		}
	}
	return false
}

func lessFunc(col string) func(a, b api.Ticket) bool {
	if col == "id" {
		return func(a, b api.Ticket) bool { return a.ID < b.ID }
	}
	return func(a, b api.Ticket) bool {
		return cellValue(a, col) < cellValue(b, col)
	}
}
