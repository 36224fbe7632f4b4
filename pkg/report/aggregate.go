// Package report classifies fetched records, tallies them, and assembles the
// spreadsheet reports.
package report

import (
	"fmt"
	"sort"

	"github.com/ifrc-go/localunits-report/pkg/goapi"
)

// Sentinel categories for records whose classification data is missing.
// Unknown values are bucketed here, never dropped.
const (
	// UnknownNoType is the summary-report bucket for records without a type.
	UnknownNoType = "Unknown / No Type"

	// UnknownType is the treemap-report bucket for records without a type.
	UnknownType = "Unknown Type"

	// UnknownRegion is the bucket for records whose country id has no
	// region mapping.
	UnknownRegion = "Unknown Region"
)

// regionNames is the fixed region-code table used by the GO API.
var regionNames = map[int]string{
	0: "Africa",
	1: "Americas",
	2: "Asia Pacific",
	3: "Europe",
	4: "MENA",
}

// RegionName resolves a region code to its name. Codes outside the fixed
// table render a placeholder label carrying the code.
func RegionName(code int) string {
	if name, ok := regionNames[code]; ok {
		return name
	}
	return fmt.Sprintf("Unknown (%d)", code)
}

// TypeTally maps a local-unit type name to its occurrence count.
type TypeTally map[string]int

// Total returns the sum of all counts.
func (t TypeTally) Total() int {
	total := 0
	for _, n := range t {
		total += n
	}
	return total
}

// CountTypes tallies records by their type name. Records without a usable
// type name land under UnknownNoType, so every record lands in exactly one
// bucket. Keys are exact strings, no normalization.
func CountTypes(units []goapi.LocalUnit) TypeTally {
	tally := make(TypeTally)
	for _, unit := range units {
		name := unit.TypeName()
		if name == "" {
			name = UnknownNoType
		}
		tally[name]++
	}
	return tally
}

// BuildCountryRegions builds the country-id to region-name mapping from the
// country listing. Countries missing an id or region code are skipped.
func BuildCountryRegions(countries []goapi.Country) map[int]string {
	mapping := make(map[int]string, len(countries))
	for _, c := range countries {
		if c.ID == nil || c.Region == nil {
			continue
		}
		mapping[*c.ID] = RegionName(*c.Region)
	}
	return mapping
}

// TypeRegion is the classification key for the treemap report.
type TypeRegion struct {
	Type   string
	Region string
}

// TypeRegionTally maps (type, region) pairs to occurrence counts.
type TypeRegionTally map[TypeRegion]int

// Total returns the sum of all counts.
func (t TypeRegionTally) Total() int {
	total := 0
	for _, n := range t {
		total += n
	}
	return total
}

// CountTypeRegions tallies records by (type, region). Records without a type
// bucket under UnknownType; records whose country id is absent from the
// mapping bucket under UnknownRegion. The second return value is the sorted,
// deduplicated set of country identifiers that could not be resolved, with a
// missing country rendered as "<none>"; callers report it as a diagnostic.
func CountTypeRegions(units []goapi.LocalUnit, regions map[int]string) (TypeRegionTally, []string) {
	tally := make(TypeRegionTally)
	unresolvedIDs := make(map[int]struct{})
	unresolvedNil := false

	for _, unit := range units {
		typeName := unit.TypeName()
		if typeName == "" {
			typeName = UnknownType
		}

		regionName := ""
		if unit.Country != nil {
			regionName = regions[*unit.Country]
		}
		if regionName == "" {
			if unit.Country != nil {
				unresolvedIDs[*unit.Country] = struct{}{}
			} else {
				unresolvedNil = true
			}
			regionName = UnknownRegion
		}

		tally[TypeRegion{Type: typeName, Region: regionName}]++
	}

	ids := make([]int, 0, len(unresolvedIDs))
	for id := range unresolvedIDs {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	unresolved := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		unresolved = append(unresolved, fmt.Sprintf("%d", id))
	}
	if unresolvedNil {
		unresolved = append(unresolved, "<none>")
	}

	return tally, unresolved
}
