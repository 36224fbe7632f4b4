package report

import (
	"reflect"
	"testing"

	"github.com/ifrc-go/localunits-report/pkg/goapi"
)

func intPtr(n int) *int { return &n }

func unitWithType(name string) goapi.LocalUnit {
	return goapi.LocalUnit{TypeDetails: &goapi.TypeDetails{Name: name}}
}

func unitWithTypeAndCountry(name string, country int) goapi.LocalUnit {
	u := unitWithType(name)
	u.Country = intPtr(country)
	return u
}

func TestRegionName(t *testing.T) {
	tests := []struct {
		code     int
		expected string
	}{
		{0, "Africa"},
		{1, "Americas"},
		{2, "Asia Pacific"},
		{3, "Europe"},
		{4, "MENA"},
		{5, "Unknown (5)"},
		{-1, "Unknown (-1)"},
	}

	for _, tt := range tests {
		if got := RegionName(tt.code); got != tt.expected {
			t.Errorf("RegionName(%d) = %q, want %q", tt.code, got, tt.expected)
		}
	}
}

func TestCountTypes(t *testing.T) {
	units := []goapi.LocalUnit{
		unitWithType("Hospital"),
		unitWithType("Hospital"),
		unitWithType("Branch Office"),
		unitWithType(""),       // empty name
		{},                     // nil type_details
	}

	tally := CountTypes(units)

	expected := TypeTally{
		"Hospital":      2,
		"Branch Office": 1,
		UnknownNoType:   2,
	}
	if !reflect.DeepEqual(tally, expected) {
		t.Errorf("CountTypes() = %v, want %v", tally, expected)
	}

	// Every record lands in exactly one bucket.
	if tally.Total() != len(units) {
		t.Errorf("Total() = %d, want %d", tally.Total(), len(units))
	}
}

func TestCountTypes_Empty(t *testing.T) {
	tally := CountTypes(nil)
	if len(tally) != 0 || tally.Total() != 0 {
		t.Errorf("CountTypes(nil) = %v, want empty", tally)
	}
}

func TestBuildCountryRegions(t *testing.T) {
	countries := []goapi.Country{
		{ID: intPtr(14), Region: intPtr(2)},
		{ID: intPtr(27), Region: intPtr(0)},
		{ID: intPtr(31), Region: intPtr(9)}, // code outside the table
		{ID: intPtr(40)},                    // missing region, skipped
		{Region: intPtr(3)},                 // missing id, skipped
	}

	mapping := BuildCountryRegions(countries)

	expected := map[int]string{
		14: "Asia Pacific",
		27: "Africa",
		31: "Unknown (9)",
	}
	if !reflect.DeepEqual(mapping, expected) {
		t.Errorf("BuildCountryRegions() = %v, want %v", mapping, expected)
	}
}

func TestCountTypeRegions(t *testing.T) {
	regions := map[int]string{
		14: "Asia Pacific",
		27: "Africa",
	}

	units := []goapi.LocalUnit{
		unitWithTypeAndCountry("Hospital", 14),
		unitWithTypeAndCountry("Hospital", 14),
		unitWithTypeAndCountry("Hospital", 27),
		unitWithTypeAndCountry("", 14),      // no type
		unitWithTypeAndCountry("Clinic", 99), // unmapped country
		unitWithType("Clinic"),               // no country at all
	}

	tally, unresolved := CountTypeRegions(units, regions)

	expected := TypeRegionTally{
		{Type: "Hospital", Region: "Asia Pacific"}: 2,
		{Type: "Hospital", Region: "Africa"}:       1,
		{Type: UnknownType, Region: "Asia Pacific"}: 1,
		{Type: "Clinic", Region: UnknownRegion}:     2,
	}
	if !reflect.DeepEqual(tally, expected) {
		t.Errorf("CountTypeRegions() = %v, want %v", tally, expected)
	}

	if tally.Total() != len(units) {
		t.Errorf("Total() = %d, want %d", tally.Total(), len(units))
	}

	expectedUnresolved := []string{"99", "<none>"}
	if !reflect.DeepEqual(unresolved, expectedUnresolved) {
		t.Errorf("unresolved = %v, want %v", unresolved, expectedUnresolved)
	}
}

func TestCountTypeRegions_UnresolvedDeduplicated(t *testing.T) {
	units := []goapi.LocalUnit{
		unitWithTypeAndCountry("Hospital", 99),
		unitWithTypeAndCountry("Clinic", 99),
		unitWithTypeAndCountry("Clinic", 42),
	}

	_, unresolved := CountTypeRegions(units, map[int]string{})

	expected := []string{"42", "99"}
	if !reflect.DeepEqual(unresolved, expected) {
		t.Errorf("unresolved = %v, want %v", unresolved, expected)
	}
}
