package report

import (
	"path/filepath"
	"strconv"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestWriteSummary(t *testing.T) {
	table := BuildSummary([]string{"production", "staging"}, map[string]TypeTally{
		"production": {"A": 3, "B": 1},
		"staging":    {"A": 1},
	})

	path := filepath.Join(t.TempDir(), SummaryFile)
	if err := WriteSummary(path, table); err != nil {
		t.Fatalf("WriteSummary() failed: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile() failed: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 1 || sheets[0] != "Local Unit Types" {
		t.Fatalf("sheets = %v, want [Local Unit Types]", sheets)
	}

	rows, err := f.GetRows("Local Unit Types")
	if err != nil {
		t.Fatalf("GetRows() failed: %v", err)
	}

	expectedHeader := []string{
		"categories",
		"count_production", "count_staging",
		"pct_production", "waffle_cells_production",
		"pct_staging", "waffle_cells_staging",
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3 (header + 2 categories)", len(rows))
	}
	for i, want := range expectedHeader {
		if rows[0][i] != want {
			t.Errorf("header[%d] = %q, want %q", i, rows[0][i], want)
		}
	}

	// Row for category A: counts 3 and 1, production pct 75.
	if rows[1][0] != "A" {
		t.Errorf("first category = %q, want A", rows[1][0])
	}
	if rows[1][1] != "3" || rows[1][2] != "1" {
		t.Errorf("counts for A = %q/%q, want 3/1", rows[1][1], rows[1][2])
	}
	pct, err := strconv.ParseFloat(rows[1][3], 64)
	if err != nil || pct != 75 {
		t.Errorf("pct_production for A = %q, want 75", rows[1][3])
	}
}

func TestWriteSummary_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), SummaryFile)

	first := BuildSummary([]string{"production"}, map[string]TypeTally{
		"production": {"A": 1, "B": 1, "C": 1},
	})
	if err := WriteSummary(path, first); err != nil {
		t.Fatalf("WriteSummary() failed: %v", err)
	}

	second := BuildSummary([]string{"production"}, map[string]TypeTally{
		"production": {"A": 1},
	})
	if err := WriteSummary(path, second); err != nil {
		t.Fatalf("WriteSummary() overwrite failed: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile() failed: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Local Unit Types")
	if err != nil {
		t.Fatalf("GetRows() failed: %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("rows = %d, want 2 (no merge with prior run)", len(rows))
	}
}

func TestWriteTreemap(t *testing.T) {
	sheets := []TreemapSheet{
		{
			Name: "Production",
			Rows: []TreemapRow{
				{Category: "Clinic", Region: "Africa", Count: 2},
				{Category: "Hospital", Region: "Europe", Count: 4},
			},
		},
		{
			Name: "Staging",
			Rows: []TreemapRow{
				{Category: "Clinic", Region: UnknownRegion, Count: 1},
			},
		},
	}

	path := filepath.Join(t.TempDir(), TreemapFile)
	if err := WriteTreemap(path, sheets); err != nil {
		t.Fatalf("WriteTreemap() failed: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile() failed: %v", err)
	}
	defer f.Close()

	got := f.GetSheetList()
	if len(got) != 2 || got[0] != "Production" || got[1] != "Staging" {
		t.Fatalf("sheets = %v, want [Production Staging]", got)
	}

	rows, err := f.GetRows("Production")
	if err != nil {
		t.Fatalf("GetRows() failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("Production rows = %d, want 3", len(rows))
	}
	if rows[0][0] != "categories" || rows[0][1] != "Region" || rows[0][2] != "count" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][0] != "Clinic" || rows[1][1] != "Africa" || rows[1][2] != "2" {
		t.Errorf("first row = %v", rows[1])
	}
}

func TestWriteTreemap_NoSheets(t *testing.T) {
	path := filepath.Join(t.TempDir(), TreemapFile)
	if err := WriteTreemap(path, nil); err == nil {
		t.Error("WriteTreemap() with no sheets should fail")
	}
}
