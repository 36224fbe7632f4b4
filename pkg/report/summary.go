package report

import (
	"math"
	"sort"
)

// SummaryTable is the merged type-count table across environments.
// Categories is the lexicographically sorted union of type names from every
// reachable environment; Counts, Pct, and Waffle hold one value per category
// for each environment, in Categories order.
type SummaryTable struct {
	Envs       []string
	Categories []string
	Counts     map[string][]int
	Pct        map[string][]float64
	Waffle     map[string][]int
}

// BuildSummary merges per-environment tallies into one table. Environment
// order is preserved from envs; environments without a tally (unreachable)
// contribute no columns.
func BuildSummary(envs []string, tallies map[string]TypeTally) *SummaryTable {
	table := &SummaryTable{
		Counts: make(map[string][]int),
		Pct:    make(map[string][]float64),
		Waffle: make(map[string][]int),
	}

	categorySet := make(map[string]struct{})
	for _, env := range envs {
		tally, ok := tallies[env]
		if !ok {
			continue
		}
		table.Envs = append(table.Envs, env)
		for name := range tally {
			categorySet[name] = struct{}{}
		}
	}

	table.Categories = make([]string, 0, len(categorySet))
	for name := range categorySet {
		table.Categories = append(table.Categories, name)
	}
	sort.Strings(table.Categories)

	for _, env := range table.Envs {
		tally := tallies[env]
		total := tally.Total()

		counts := make([]int, len(table.Categories))
		pct := make([]float64, len(table.Categories))
		waffle := make([]int, len(table.Categories))

		for i, category := range table.Categories {
			counts[i] = tally[category]
			pct[i], waffle[i] = shareOf(tally[category], total)
		}

		table.Counts[env] = counts
		table.Pct[env] = pct
		table.Waffle[env] = waffle
	}

	return table
}

// shareOf returns the percentage of total (rounded to 2 decimals) and the
// waffle cell count (the same ratio rounded to the nearest integer, one cell
// per percent on a 10x10 grid). A zero total yields zeros instead of a
// division error.
//
// Waffle cells are rounded independently per row, so a column is not
// guaranteed to sum to exactly 100.
func shareOf(n, total int) (float64, int) {
	if total == 0 {
		return 0, 0
	}
	pct := float64(n) / float64(total) * 100
	return math.Round(pct*100) / 100, int(math.Round(pct))
}
