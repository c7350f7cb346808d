package reports

import (
	"testing"

	"bitbucket.org/mmdatafocus/cafe_metrics/models"
	"github.com/shopspring/decimal"
)

func categoryFixture(t *testing.T) []models.InventoryLineItem {
	return []models.InventoryLineItem{
		testItem(t, "2026-01-02", "Metro", "PROTEIN", "Beef", "Brisket", 10, 30, 300),
		testItem(t, "2026-01-02", "Metro", "PROTEIN", "Poultry", "Chicken Thigh", 20, 5, 100),
		testItem(t, "2026-01-03", "GreenCo", "PRODUCE", "Greens", "Kale", 5, 20, 100),
		testItem(t, "2026-01-03", "PaperPlus", "SUPPLIES", "Paper", "Napkins", 50, 1, 50),
	}
}

func TestVendorBreakdown(t *testing.T) {
	vendors := VendorBreakdown(categoryFixture(t))
	if len(vendors) != 3 {
		t.Fatalf("vendors = %d, want 3", len(vendors))
	}
	if vendors[0].Vendor != "Metro" {
		t.Fatalf("largest vendor first, got %s", vendors[0].Vendor)
	}
	requireDecimal(t, vendors[0].Spend, "400", "metro spend")
	requireDecimal(t, vendors[0].SharePct, "72.7", "metro share")
}

func TestCategoryBreakdown(t *testing.T) {
	cats := CategoryBreakdown(categoryFixture(t), decimal.NewFromInt(2000), decimal.NewFromInt(2500))
	if len(cats) != 3 || cats[0].Category != "PROTEIN" {
		t.Fatalf("categories = %+v", cats)
	}
	requireDecimal(t, cats[0].Spend, "400", "protein spend")
	requireDecimal(t, cats[0].ShareOfInvPct, "72.7", "protein share of inv")
	requireDecimal(t, cats[0].ShareOfNetPct, "20", "protein share of net")
	requireDecimal(t, cats[0].ShareOfGrossPct, "16", "protein share of gross")
}

func TestSubcategoryBreakdown(t *testing.T) {
	subs := SubcategoryBreakdown(categoryFixture(t), "PROTEIN")
	if len(subs) != 2 {
		t.Fatalf("subcategories = %d, want 2", len(subs))
	}
	if subs[0].Subcategory != "Beef" || subs[1].Subcategory != "Poultry" {
		t.Fatalf("subcategory order = %s, %s", subs[0].Subcategory, subs[1].Subcategory)
	}
}

func TestTopItemsBySpend(t *testing.T) {
	top := TopItemsBySpend(categoryFixture(t), 2)
	if len(top) != 2 {
		t.Fatalf("top items = %d, want 2", len(top))
	}
	if top[0].Item != "Brisket" {
		t.Fatalf("largest item first, got %s", top[0].Item)
	}
	requireDecimal(t, top[0].Qty, "10", "brisket qty")
}

func TestCategoryConsistencies(t *testing.T) {
	// PRODUCE buys evenly (100, 100); PROTEIN swings (100, 300).
	items := []models.InventoryLineItem{
		testItem(t, "2026-01-02", "Metro", "PROTEIN", "Beef", "Brisket", 2, 50, 100),
		testItem(t, "2026-01-09", "Metro", "PROTEIN", "Beef", "Brisket", 6, 50, 300),
		testItem(t, "2026-01-02", "GreenCo", "PRODUCE", "Greens", "Kale", 5, 20, 100),
		testItem(t, "2026-01-09", "GreenCo", "PRODUCE", "Greens", "Kale", 5, 20, 100),
	}
	consistencies := CategoryConsistencies(items)
	if len(consistencies) != 2 {
		t.Fatalf("consistencies = %d, want 2", len(consistencies))
	}

	protein := consistencies[0]
	if protein.Category != "PROTEIN" {
		t.Fatalf("highest CV first, got %s", protein.Category)
	}
	requireDecimal(t, protein.AvgWeeklySpend, "200", "protein avg weekly")
	requireDecimal(t, protein.StdDev, "141.42", "protein stddev")
	requireDecimal(t, protein.CVPct, "70.7", "protein CV")
	if protein.Risk != RiskHigh {
		t.Fatalf("CV above 50 is high risk, got %s", protein.Risk)
	}

	produce := consistencies[1]
	requireDecimal(t, produce.CVPct, "0", "produce CV")
	if produce.Risk != RiskConsistent {
		t.Fatalf("even buying is consistent, got %s", produce.Risk)
	}
}

func TestCategoryConsistenciesSingleWeek(t *testing.T) {
	items := []models.InventoryLineItem{
		testItem(t, "2026-01-02", "Metro", "PROTEIN", "Beef", "Brisket", 2, 50, 100),
	}
	consistencies := CategoryConsistencies(items)
	if len(consistencies) != 1 {
		t.Fatalf("consistencies = %d, want 1", len(consistencies))
	}
	if !consistencies[0].StdDev.IsZero() || consistencies[0].Risk != RiskConsistent {
		t.Fatalf("one observed week carries no dispersion: %+v", consistencies[0])
	}
}

func TestPerishablesWatch(t *testing.T) {
	items := categoryFixture(t)
	// Second invoice for Brisket on another date.
	items = append(items, testItem(t, "2026-01-05", "Metro", "PROTEIN", "Beef", "Brisket", 4, 30, 120))

	watch := PerishablesWatch(items, 10)
	if len(watch) != 3 {
		t.Fatalf("watch list = %d, want 3 (SUPPLIES excluded)", len(watch))
	}

	brisket := watch[0]
	if brisket.Item != "Brisket" || brisket.Category != "PROTEIN" {
		t.Fatalf("largest perishable first, got %+v", brisket)
	}
	requireDecimal(t, brisket.TotalSpend, "420", "brisket spend")
	requireDecimal(t, brisket.TotalQty, "14", "brisket qty")
	if brisket.Orders != 2 {
		t.Fatalf("brisket orders = %d, want 2 distinct invoices", brisket.Orders)
	}

	capped := PerishablesWatch(items, 1)
	if len(capped) != 1 {
		t.Fatalf("cap not applied: %d", len(capped))
	}
}
