package reports

import (
	"sort"
	"time"

	"bitbucket.org/mmdatafocus/cafe_metrics/config"
	"bitbucket.org/mmdatafocus/cafe_metrics/models"
	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"
)

type SlotTier string

const (
	SlotPeak SlotTier = "Peak"
	SlotMid  SlotTier = "Mid"
	SlotSlow SlotTier = "Slow"
)

// ClassifiedSlot is one intraday slot with its tier for the day.
type ClassifiedSlot struct {
	models.TimeSlotRecord
	Tier SlotTier `json:"tier"`
}

// DaySlotReport is the intraday drill-down for one date. Tier thresholds
// are quantiles of that day's slot sales (top PeakSlotTopPct% is Peak,
// bottom SlowSlotBottomPct% is Slow), not fixed dollar cutoffs.
type DaySlotReport struct {
	Date          time.Time        `json:"date"`
	Slots         []ClassifiedSlot `json:"slots"`
	TotalSales    decimal.Decimal  `json:"total_sales"`
	TotalTxns     decimal.Decimal  `json:"total_txns"`
	AvgTicket     decimal.Decimal  `json:"avg_ticket"`
	PeakThreshold decimal.Decimal  `json:"peak_threshold"`
	SlowThreshold decimal.Decimal  `json:"slow_threshold"`
}

// BuildDaySlotReport classifies one day's slots. Returns nil when the day
// has no slot rows.
func BuildDaySlotReport(date time.Time, slots []models.TimeSlotRecord, settings config.Settings) *DaySlotReport {
	var daySlots []models.TimeSlotRecord
	for _, s := range slots {
		if sameDay(s.Date, date) {
			daySlots = append(daySlots, s)
		}
	}
	if len(daySlots) == 0 {
		return nil
	}
	sort.SliceStable(daySlots, func(i, j int) bool {
		return daySlots[i].SortKey() < daySlots[j].SortKey()
	})

	sales := make([]float64, len(daySlots))
	for i, s := range daySlots {
		sales[i] = s.Sales.InexactFloat64()
	}
	peakT, err := stats.Percentile(sales, 100-float64(settings.PeakSlotTopPct))
	if err != nil {
		peakT = sales[len(sales)-1]
	}
	slowT, err := stats.Percentile(sales, float64(settings.SlowSlotBottomPct))
	if err != nil {
		slowT = sales[0]
	}

	report := &DaySlotReport{
		Date:          date,
		PeakThreshold: decimal.NewFromFloat(peakT),
		SlowThreshold: decimal.NewFromFloat(slowT),
	}
	for _, s := range daySlots {
		tier := SlotMid
		switch v := s.Sales.InexactFloat64(); {
		case v >= peakT:
			tier = SlotPeak
		case v <= slowT:
			tier = SlotSlow
		}
		report.Slots = append(report.Slots, ClassifiedSlot{TimeSlotRecord: s, Tier: tier})
		report.TotalSales = report.TotalSales.Add(s.Sales)
		report.TotalTxns = report.TotalTxns.Add(s.Txns)
	}
	if report.TotalTxns.IsPositive() {
		report.AvgTicket = report.TotalSales.Div(report.TotalTxns)
	}
	return report
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
