package reports

import (
	"testing"

	"bitbucket.org/mmdatafocus/cafe_metrics/config"
	"bitbucket.org/mmdatafocus/cafe_metrics/models"
)

func slotFixture(t *testing.T) []models.TimeSlotRecord {
	return []models.TimeSlotRecord{
		testSlot(t, "2026-01-01", "12:00 PM - 12:15 PM", 500, 10),
		testSlot(t, "2026-01-01", "8:00 AM - 8:15 AM", 10, 10),
		testSlot(t, "2026-01-01", "9:30 AM - 9:45 AM", 100, 10),
		testSlot(t, "2026-01-01", "11:00 AM - 11:15 AM", 200, 10),
		testSlot(t, "2026-01-01", "10:15 AM - 10:30 AM", 50, 10),
		// Different day, must not leak into the report.
		testSlot(t, "2026-01-02", "8:00 AM - 8:15 AM", 9999, 10),
	}
}

func TestBuildDaySlotReport(t *testing.T) {
	report := BuildDaySlotReport(testDate(t, "2026-01-01"), slotFixture(t), config.DefaultSettings())
	if report == nil {
		t.Fatal("expected a report for a day with slots")
	}
	if len(report.Slots) != 5 {
		t.Fatalf("slots = %d, want 5", len(report.Slots))
	}

	// Chronological, not input, order.
	if report.Slots[0].Slot != "8:00 AM - 8:15 AM" || report.Slots[4].Slot != "12:00 PM - 12:15 PM" {
		t.Fatalf("slots out of order: %s ... %s", report.Slots[0].Slot, report.Slots[4].Slot)
	}

	tiers := make(map[string]SlotTier)
	for _, s := range report.Slots {
		tiers[s.Slot] = s.Tier
	}
	if tiers["12:00 PM - 12:15 PM"] != SlotPeak {
		t.Fatalf("strongest slot must be Peak, got %s", tiers["12:00 PM - 12:15 PM"])
	}
	if tiers["8:00 AM - 8:15 AM"] != SlotSlow {
		t.Fatalf("weakest slot must be Slow, got %s", tiers["8:00 AM - 8:15 AM"])
	}
	if tiers["9:30 AM - 9:45 AM"] != SlotMid {
		t.Fatalf("middle slot must be Mid, got %s", tiers["9:30 AM - 9:45 AM"])
	}

	requireDecimal(t, report.TotalSales, "860", "total sales")
	requireDecimal(t, report.TotalTxns, "50", "total txns")
	requireDecimal(t, report.AvgTicket, "17.2", "avg ticket")
}

func TestBuildDaySlotReportNoSlots(t *testing.T) {
	if report := BuildDaySlotReport(testDate(t, "2026-03-01"), slotFixture(t), config.DefaultSettings()); report != nil {
		t.Fatalf("a day without slots yields no report, got %+v", report)
	}
}
