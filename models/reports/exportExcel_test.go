package reports

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestExportWorkbook(t *testing.T) {
	snap := dashboardFixture(t)
	path := filepath.Join(t.TempDir(), "export.xlsx")

	if err := ExportWorkbook(snap, path); err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	sheets := make(map[string]bool)
	for _, s := range f.GetSheetList() {
		sheets[s] = true
	}
	for _, want := range []string{"Weekly Summary", "KPIs", "Categories", "Alerts"} {
		if !sheets[want] {
			t.Fatalf("missing sheet %q in %v", want, f.GetSheetList())
		}
	}
	if sheets["Sheet1"] {
		t.Fatal("default sheet should be removed")
	}

	week, err := f.GetCellValue("Weekly Summary", "A2")
	if err != nil {
		t.Fatal(err)
	}
	if week == "" {
		t.Fatal("weekly summary has no data rows")
	}
}
