package core

import (
	"sort"
	"strings"
	"time"
)

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SortDirection is the amount-sort direction toggled by the records view.
// The default is descending.
type SortDirection string

// Toggle flips the direction. An unset or unknown direction toggles to
// ascending, matching a first click on a descending-by-default column.
func (d SortDirection) Toggle() SortDirection {
	if d == SortAsc {
		return SortDesc
	}
	return SortAsc
}

// IsValid returns true for the two known directions.
func (d SortDirection) IsValid() bool {
	return d == SortAsc || d == SortDesc
}

// FilterByCategory returns the records whose category exactly matches cat.
// An empty cat or the FilterAll sentinel returns records unchanged. The
// input slice is never mutated.
func FilterByCategory(records []FinancialRecord, cat string) []FinancialRecord {
	if cat == "" || cat == FilterAll {
		return records
	}
	out := make([]FinancialRecord, 0, len(records))
	for _, r := range records {
		if string(r.Category) == cat {
			out = append(out, r)
		}
	}
	return out
}

// SortByAmount returns a new slice ordered by amount in the given
// direction. The sort is stable: ties keep their prior relative order.
func SortByAmount(records []FinancialRecord, dir SortDirection) []FinancialRecord {
	out := make([]FinancialRecord, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		if dir == SortAsc {
			return out[i].Amount < out[j].Amount
		}
		return out[i].Amount > out[j].Amount
	})
	return out
}

// SortByDateDesc returns a new slice ordered newest-first. This is the
// default ordering applied at load time; an amount sort replaces it rather
// than refining it. Records with unparseable dates sort last.
func SortByDateDesc(records []FinancialRecord) []FinancialRecord {
	out := make([]FinancialRecord, len(records))
	copy(out, records)
	parsed := make([]time.Time, len(out))
	for i, r := range out {
		d, err := ParseDate(r.Date)
		if err != nil {
			d = time.Time{}
		}
		parsed[i] = d
	}
	idx := make([]int, len(out))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		return parsed[idx[i]].After(parsed[idx[j]])
	})
	sorted := make([]FinancialRecord, len(out))
	for i, k := range idx {
		sorted[i] = out[k]
	}
	return sorted
}

// FilterProjectsByName returns the projects whose name contains query,
// case-insensitively. An empty query returns projects unchanged.
func FilterProjectsByName(projects []Project, query string) []Project {
	query = strings.TrimSpace(strings.ToLower(query))
	if query == "" {
		return projects
	}
	out := make([]Project, 0, len(projects))
	for _, p := range projects {
		if strings.Contains(strings.ToLower(p.Name), query) {
			out = append(out, p)
		}
	}
	return out
}

// SortProjectsByID returns a new slice ordered newest project first.
func SortProjectsByID(projects []Project) []Project {
	out := make([]Project, len(projects))
	copy(out, projects)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ID > out[j].ID
	})
	return out
}

// Total sums record amounts.
func Total(records []FinancialRecord) float64 {
	var sum float64
	for _, r := range records {
		sum += r.Amount
	}
	return sum
}

// TotalsByCategory aggregates record amounts per category, in the closed
// enumeration's display order. Categories with no records are omitted.
func TotalsByCategory(records []FinancialRecord) []CategoryAmount {
	sums := make(map[Category]float64, len(records))
	for _, r := range records {
		sums[r.Category] += r.Amount
	}
	out := make([]CategoryAmount, 0, len(sums))
	for _, c := range Categories() {
		if amount, ok := sums[c]; ok {
			out = append(out, CategoryAmount{Category: c, Amount: amount})
		}
	}
	return out
}

// CategoryAmount is an amount aggregated by category.
type CategoryAmount struct {
	Category Category
	Amount   float64
}
