package reports

import (
	"time"

	"bitbucket.org/mmdatafocus/cafe_metrics/config"
	"bitbucket.org/mmdatafocus/cafe_metrics/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DashboardSnapshot is the result of one full pipeline run and the only
// query surface the presentation layer sees. Every accessor returns a copy;
// the snapshot itself never changes after construction, so two reads of the
// same snapshot always agree.
type DashboardSnapshot struct {
	runId    string
	settings config.Settings

	days  []models.DailySalesRecord
	slots []models.TimeSlotRecord
	items []models.InventoryLineItem

	weekly    []WeeklyRollup
	stock     []WeeklyStockStatus
	breakEven []BreakEvenGap
	kpi       *KPIReport
	protein   *ProteinReport
	alerts    []Alert
	recovery  []Recommendation
}

// LoadDashboard runs the whole pipeline: ingest both sources (through the
// cache), aggregate, derive KPIs, evaluate alerts, build recommendations.
// Stages run strictly in sequence; nothing downstream sees a half-loaded
// source. A SchemaError from either ingestor is returned as-is so the
// caller decides whether the run halts.
func LoadDashboard(settings config.Settings, cache *models.LoaderCache) (*DashboardSnapshot, error) {
	logger := config.GetLogger()

	sales, err := models.LoadSalesWorkbook(settings.SalesWorkbookPath, cache)
	if err != nil {
		config.LogError(logger, "reports", "LoadDashboard", "sales ingestion", settings.SalesWorkbookPath, err)
		return nil, err
	}
	items, err := models.LoadInventoryLedger(settings.InventoryLedgerPath, cache)
	if err != nil {
		config.LogError(logger, "reports", "LoadDashboard", "inventory ingestion", settings.InventoryLedgerPath, err)
		return nil, err
	}

	snap := BuildDashboard(settings, sales.Days, sales.Slots, items)
	logger.WithFields(map[string]any{
		"runId":     snap.runId,
		"days":      len(snap.days),
		"slots":     len(snap.slots),
		"lineItems": len(snap.items),
		"weeks":     len(snap.weekly),
	}).Info("dashboard snapshot built")
	return snap, nil
}

// BuildDashboard assembles a snapshot from already-parsed records. Split
// out from LoadDashboard so fixtures can bypass the file ingestors.
func BuildDashboard(settings config.Settings, days []models.DailySalesRecord, slots []models.TimeSlotRecord, items []models.InventoryLineItem) *DashboardSnapshot {
	snap := &DashboardSnapshot{
		runId:    uuid.NewString(),
		settings: settings,
		days:     days,
		slots:    slots,
		items:    items,
	}
	snap.weekly = BuildWeeklyRollups(days, items)
	snap.stock = BuildStockStatuses(snap.weekly)
	snap.breakEven = BuildBreakEvenGaps(days, decimal.NewFromFloat(settings.DailyFixedCost))
	snap.kpi = BuildKPIReport(days, items, settings)
	snap.protein = BuildProteinReport(items, 4)
	snap.alerts = EvaluateAlerts(snap.weekly, snap.kpi, settings)
	snap.recovery = BuildRecovery(snap.kpi, settings)
	return snap
}

func (s *DashboardSnapshot) RunId() string             { return s.runId }
func (s *DashboardSnapshot) Settings() config.Settings { return s.settings }

func (s *DashboardSnapshot) Days() []models.DailySalesRecord {
	return copySlice(s.days)
}

func (s *DashboardSnapshot) Slots() []models.TimeSlotRecord {
	return copySlice(s.slots)
}

func (s *DashboardSnapshot) Items() []models.InventoryLineItem {
	return copySlice(s.items)
}

func (s *DashboardSnapshot) Weekly() []WeeklyRollup {
	return copySlice(s.weekly)
}

func (s *DashboardSnapshot) StockStatuses() []WeeklyStockStatus {
	return copySlice(s.stock)
}

func (s *DashboardSnapshot) BreakEvenGaps() []BreakEvenGap {
	return copySlice(s.breakEven)
}

func (s *DashboardSnapshot) KPIs() KPIReport {
	kpi := *s.kpi
	kpi.WeekdayStats = copySlice(s.kpi.WeekdayStats)
	return kpi
}

func (s *DashboardSnapshot) Protein() ProteinReport {
	p := *s.protein
	p.Weekly = copySlice(s.protein.Weekly)
	p.TopItems = copySlice(s.protein.TopItems)
	p.PriceTrends = make([]ItemPriceTrend, len(s.protein.PriceTrends))
	for i, t := range s.protein.PriceTrends {
		p.PriceTrends[i] = ItemPriceTrend{Item: t.Item, Points: copySlice(t.Points)}
	}
	return p
}

func (s *DashboardSnapshot) Alerts() []Alert {
	return copySlice(s.alerts)
}

func (s *DashboardSnapshot) Recommendations() []Recommendation {
	recs := copySlice(s.recovery)
	for i := range recs {
		recs[i].Suggestions = copySlice(recs[i].Suggestions)
	}
	return recs
}

// DaySlots builds the intraday drill-down for one date on demand.
func (s *DashboardSnapshot) DaySlots(date time.Time) *DaySlotReport {
	return BuildDaySlotReport(date, s.slots, s.settings)
}

// The spend breakdowns below are built on demand from the snapshot's
// ledger; each call returns a fresh slice.

func (s *DashboardSnapshot) Vendors() []VendorSpend {
	return VendorBreakdown(s.items)
}

func (s *DashboardSnapshot) Categories() []CategorySpend {
	return CategoryBreakdown(s.items, s.kpi.TotalNet, s.kpi.TotalGross)
}

func (s *DashboardSnapshot) Subcategories(category string) []SubcategorySpend {
	return SubcategoryBreakdown(s.items, category)
}

func (s *DashboardSnapshot) TopItems(n int) []ItemSpend {
	return TopItemsBySpend(s.items, n)
}

func (s *DashboardSnapshot) Consistencies() []CategoryConsistency {
	return CategoryConsistencies(s.items)
}

func (s *DashboardSnapshot) Perishables(n int) []PerishableItem {
	return PerishablesWatch(s.items, n)
}

func copySlice[T any](src []T) []T {
	if src == nil {
		return nil
	}
	dst := make([]T, len(src))
	copy(dst, src)
	return dst
}
