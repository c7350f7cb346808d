package reports

import (
	"testing"

	"bitbucket.org/mmdatafocus/cafe_metrics/models"
)

func proteinFixture(t *testing.T) []models.InventoryLineItem {
	return []models.InventoryLineItem{
		// Week of Jan 1: protein 300 of 500 spent.
		testItem(t, "2026-01-02", "Metro", "PROTEIN", "Beef", "Brisket", 10, 30, 300),
		testItem(t, "2026-01-03", "GreenCo", "PRODUCE", "Greens", "Kale", 5, 40, 200),
		// Week of Jan 8: protein 100 of 400 spent.
		testItem(t, "2026-01-09", "Metro", "PROTEIN", "Poultry", "Chicken Thigh", 20, 5, 100),
		testItem(t, "2026-01-10", "PaperPlus", "SUPPLIES", "Paper", "Napkins", 300, 1, 300),
	}
}

func TestBuildProteinReport(t *testing.T) {
	report := BuildProteinReport(proteinFixture(t), 4)

	requireDecimal(t, report.TotalSpend, "400", "protein total")
	requireDecimal(t, report.SharePct, "44.4", "protein share")
	requireDecimal(t, report.AvgWeeklySpend, "200", "avg weekly spend")
	requireDecimal(t, report.LatestWeekPct, "25", "latest week pct")

	if len(report.Weekly) != 2 {
		t.Fatalf("weekly = %d, want 2", len(report.Weekly))
	}
	if !report.Weekly[0].WeekStart.Before(report.Weekly[1].WeekStart) {
		t.Fatalf("weekly series must be ascending")
	}
	requireDecimal(t, report.Weekly[0].Spend, "300", "week 1 spend")
	requireDecimal(t, report.Weekly[0].PctOfInv, "60", "week 1 pct of inv")
	requireDecimal(t, report.Weekly[1].PctOfInv, "25", "week 2 pct of inv")

	if len(report.TopItems) != 2 || report.TopItems[0].Item != "Brisket" {
		t.Fatalf("top items = %+v", report.TopItems)
	}
}

func TestBuildProteinReportPriceTrends(t *testing.T) {
	items := []models.InventoryLineItem{
		testItem(t, "2026-01-02", "Metro", "PROTEIN", "Beef", "Brisket", 10, 30, 300),
		// Same date, different price point on a second line: they average.
		testItem(t, "2026-01-02", "Metro", "PROTEIN", "Beef", "Brisket", 10, 34, 340),
		testItem(t, "2026-01-09", "Metro", "PROTEIN", "Beef", "Brisket", 10, 36, 360),
	}
	report := BuildProteinReport(items, 4)

	if len(report.PriceTrends) != 1 {
		t.Fatalf("price trends = %d, want 1", len(report.PriceTrends))
	}
	trend := report.PriceTrends[0]
	if trend.Item != "Brisket" || len(trend.Points) != 2 {
		t.Fatalf("trend = %+v", trend)
	}
	requireDecimal(t, trend.Points[0].AvgUnitPrice, "32", "first price point")
	requireDecimal(t, trend.Points[1].AvgUnitPrice, "36", "second price point")
	if !trend.Points[0].Date.Before(trend.Points[1].Date) {
		t.Fatalf("price points must be ascending by date")
	}
}

func TestBuildProteinReportTrendCap(t *testing.T) {
	items := []models.InventoryLineItem{
		testItem(t, "2026-01-02", "Metro", "PROTEIN", "Beef", "Brisket", 10, 30, 300),
		testItem(t, "2026-01-02", "Metro", "PROTEIN", "Poultry", "Chicken Thigh", 20, 5, 100),
	}
	report := BuildProteinReport(items, 1)
	if len(report.PriceTrends) != 1 || report.PriceTrends[0].Item != "Brisket" {
		t.Fatalf("trend cap must keep the top spender only: %+v", report.PriceTrends)
	}
}

func TestBuildProteinReportNoProtein(t *testing.T) {
	items := []models.InventoryLineItem{
		testItem(t, "2026-01-03", "GreenCo", "PRODUCE", "Greens", "Kale", 5, 40, 200),
	}
	report := BuildProteinReport(items, 4)
	if !report.TotalSpend.IsZero() || len(report.Weekly) != 0 {
		t.Fatalf("no protein lines means an empty report: %+v", report)
	}
	requireDecimal(t, report.SharePct, "0", "share with no protein")
}
