package reports

import (
	"time"

	"bitbucket.org/mmdatafocus/cafe_metrics/config"
	"bitbucket.org/mmdatafocus/cafe_metrics/models"
	"bitbucket.org/mmdatafocus/cafe_metrics/utils"
	"github.com/shopspring/decimal"
)

type AlertKind string

const (
	AlertFoodCost      AlertKind = "food_cost"
	AlertProteinBudget AlertKind = "protein_budget"
	AlertStockLevel    AlertKind = "stock_level"
	AlertWasteRisk     AlertKind = "waste_risk"
	AlertBreakEven     AlertKind = "break_even"
)

type Severity string

const (
	SeverityOK       Severity = "ok"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

type StockStatus string

const (
	StockOver   StockStatus = "Over"
	StockNormal StockStatus = "Normal"
	StockUnder  StockStatus = "Under"
)

// Alert is one rule violation instance. Fields are numbers, not rendered
// text; the presentation layer owns the wording. Alerts are immutable once
// built and carry no history: every evaluation starts from scratch.
type Alert struct {
	Kind      AlertKind       `json:"kind"`
	Severity  Severity        `json:"severity"`
	Subject   string          `json:"subject"`
	Value     decimal.Decimal `json:"value"`
	Threshold decimal.Decimal `json:"threshold"`
}

// FoodCostTier classifies a week's food-cost % against the target:
// more than 8 points over is critical, anything over is a warning.
// Both comparisons are exclusive.
func FoodCostTier(foodCostPct, target decimal.Decimal) Severity {
	switch {
	case foodCostPct.GreaterThan(target.Add(decimal.NewFromInt(8))):
		return SeverityCritical
	case foodCostPct.GreaterThan(target):
		return SeverityWarning
	default:
		return SeverityOK
	}
}

// WasteRiskTier is the wider-band variant used per week: critical only
// beyond target+15.
func WasteRiskTier(foodCostPct, target decimal.Decimal) Severity {
	switch {
	case foodCostPct.GreaterThan(target.Add(decimal.NewFromInt(15))):
		return SeverityCritical
	case foodCostPct.GreaterThan(target):
		return SeverityWarning
	default:
		return SeverityOK
	}
}

// ProteinBreach fires only strictly above the threshold; a share exactly at
// the threshold is within budget.
func ProteinBreach(sharePct, thresholdPct decimal.Decimal) bool {
	return sharePct.GreaterThan(thresholdPct)
}

var stockBand = decimal.NewFromInt(20)

// StockStatusFor classifies a week's inventory spend deviation from the
// period mean: strictly above +20% is Over, strictly below -20% is Under.
// Exactly ±20% is Normal.
func StockStatusFor(spendVsAvgPct decimal.Decimal) StockStatus {
	switch {
	case spendVsAvgPct.GreaterThan(stockBand):
		return StockOver
	case spendVsAvgPct.LessThan(stockBand.Neg()):
		return StockUnder
	default:
		return StockNormal
	}
}

// WeeklyStockStatus is one week's position against the mean-spend baseline.
type WeeklyStockStatus struct {
	WeekLabel     string          `json:"week_label"`
	InvSpend      decimal.Decimal `json:"inv_spend"`
	SpendVsAvgPct decimal.Decimal `json:"spend_vs_avg_pct"`
	Status        StockStatus     `json:"status"`
}

func BuildStockStatuses(rollups []WeeklyRollup) []WeeklyStockStatus {
	spends := make([]decimal.Decimal, len(rollups))
	for i, r := range rollups {
		spends[i] = r.InvSpend
	}
	mean := utils.MeanDecimal(spends)

	statuses := make([]WeeklyStockStatus, len(rollups))
	for i, r := range rollups {
		vsAvg := decimal.Zero
		if !mean.IsZero() {
			vsAvg = r.InvSpend.Sub(mean).Div(mean).Mul(decimal.NewFromInt(100)).Round(1)
		}
		statuses[i] = WeeklyStockStatus{
			WeekLabel:     r.WeekLabel,
			InvSpend:      r.InvSpend,
			SpendVsAvgPct: vsAvg,
			Status:        StockStatusFor(vsAvg),
		}
	}
	return statuses
}

// BreakEvenGap is one day's net sales against the fixed-cost baseline.
// A negative gap means the day did not cover fixed costs.
type BreakEvenGap struct {
	Date time.Time       `json:"date"`
	Day  string          `json:"day"`
	Gap  decimal.Decimal `json:"gap"`
}

func BuildBreakEvenGaps(days []models.DailySalesRecord, dailyFixedCost decimal.Decimal) []BreakEvenGap {
	gaps := make([]BreakEvenGap, len(days))
	for i, d := range days {
		gaps[i] = BreakEvenGap{Date: d.Date, Day: d.Day, Gap: d.NetSales.Sub(dailyFixedCost)}
	}
	return gaps
}

// EvaluateAlerts runs every rule against the current snapshot. Each rule is
// independent; evaluating twice on the same inputs yields identical alerts.
//
// The food-cost and protein rules always emit (including at SeverityOK, so
// the consumer can show the healthy state); stock and waste-risk rules emit
// only the weeks that are out of band.
func EvaluateAlerts(rollups []WeeklyRollup, kpi *KPIReport, settings config.Settings) []Alert {
	var alerts []Alert

	target := decimal.NewFromFloat(settings.TargetFoodCostPct)
	if n := len(rollups); n > 0 {
		latest := rollups[n-1]
		if latest.FoodCostPct != nil {
			alerts = append(alerts, Alert{
				Kind:      AlertFoodCost,
				Severity:  FoodCostTier(*latest.FoodCostPct, target),
				Subject:   latest.WeekLabel,
				Value:     *latest.FoodCostPct,
				Threshold: target,
			})
		}
	}

	proteinThreshold := decimal.NewFromFloat(settings.ProteinAlertPct)
	proteinSeverity := SeverityOK
	if ProteinBreach(kpi.ProteinSharePct, proteinThreshold) {
		proteinSeverity = SeverityCritical
	}
	alerts = append(alerts, Alert{
		Kind:      AlertProteinBudget,
		Severity:  proteinSeverity,
		Subject:   models.CategoryProtein,
		Value:     kpi.ProteinSharePct,
		Threshold: proteinThreshold,
	})

	for _, st := range BuildStockStatuses(rollups) {
		if st.Status == StockNormal {
			continue
		}
		threshold := stockBand
		if st.Status == StockUnder {
			threshold = stockBand.Neg()
		}
		alerts = append(alerts, Alert{
			Kind:      AlertStockLevel,
			Severity:  SeverityWarning,
			Subject:   st.WeekLabel,
			Value:     st.SpendVsAvgPct,
			Threshold: threshold,
		})
	}

	for _, r := range rollups {
		if r.FoodCostPct == nil {
			continue
		}
		if tier := WasteRiskTier(*r.FoodCostPct, target); tier != SeverityOK {
			alerts = append(alerts, Alert{
				Kind:      AlertWasteRisk,
				Severity:  tier,
				Subject:   r.WeekLabel,
				Value:     *r.FoodCostPct,
				Threshold: target,
			})
		}
	}

	fixedCost := decimal.NewFromFloat(settings.DailyFixedCost)
	avgGap := kpi.AvgDailyNet.Sub(fixedCost)
	if avgGap.IsNegative() {
		alerts = append(alerts, Alert{
			Kind:      AlertBreakEven,
			Severity:  SeverityCritical,
			Subject:   "average day",
			Value:     avgGap,
			Threshold: fixedCost,
		})
	}

	return alerts
}
