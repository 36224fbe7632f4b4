package report

import (
	"sort"
	"strings"
)

// TreemapRow is one (category, region, count) output row.
type TreemapRow struct {
	Category string
	Region   string
	Count    int
}

// TreemapSheet is one environment's rows plus the sheet it is written to.
type TreemapSheet struct {
	Name string
	Rows []TreemapRow
}

// BuildTreemap flattens a (type, region) tally into rows sorted by category
// then region.
func BuildTreemap(tally TypeRegionTally) []TreemapRow {
	rows := make([]TreemapRow, 0, len(tally))
	for key, count := range tally {
		rows = append(rows, TreemapRow{
			Category: key.Type,
			Region:   key.Region,
			Count:    count,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Category != rows[j].Category {
			return rows[i].Category < rows[j].Category
		}
		return rows[i].Region < rows[j].Region
	})

	return rows
}

// SheetName returns the spreadsheet sheet name for an environment, the
// environment name with its first letter capitalized.
func SheetName(env string) string {
	if env == "" {
		return env
	}
	return strings.ToUpper(env[:1]) + env[1:]
}
