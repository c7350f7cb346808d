package reports

import (
	"fmt"

	"bitbucket.org/mmdatafocus/cafe_metrics/config"
	"bitbucket.org/mmdatafocus/cafe_metrics/models"
	"bitbucket.org/mmdatafocus/cafe_metrics/utils"
	"github.com/shopspring/decimal"
)

// weekdayOrder fixes the presentation order of the weekday stats.
var weekdayOrder = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// WeekdayStat is the mean performance of one weekday across the period.
type WeekdayStat struct {
	Day             string          `json:"day"`
	AvgGross        decimal.Decimal `json:"avg_gross"`
	AvgNet          decimal.Decimal `json:"avg_net"`
	AvgDiscountRate decimal.Decimal `json:"avg_discount_rate"`
	Count           int             `json:"count"`
}

// KPIReport is the scalar, whole-period KPI set. Every ratio here defaults
// to zero when its denominator is zero.
type KPIReport struct {
	TotalGross     decimal.Decimal `json:"total_gross"`
	TotalNet       decimal.Decimal `json:"total_net"`
	TotalDiscounts decimal.Decimal `json:"total_discounts"`
	TotalInvSpend  decimal.Decimal `json:"total_inv_spend"`

	// FoodCostPctNet is the operational view (inventory spend against net
	// sales); FoodCostPctGross is the contract view (against gross).
	FoodCostPctNet   decimal.Decimal `json:"food_cost_pct_net"`
	FoodCostPctGross decimal.Decimal `json:"food_cost_pct_gross"`

	ContractDiscountPct decimal.Decimal `json:"contract_discount_pct"`
	CreditCardSharePct  decimal.Decimal `json:"credit_card_share_pct"`

	ProteinSpend    decimal.Decimal `json:"protein_spend"`
	ProteinSharePct decimal.Decimal `json:"protein_share_pct"`

	AvgDailyNet   decimal.Decimal `json:"avg_daily_net"`
	AvgDailyGross decimal.Decimal `json:"avg_daily_gross"`
	OperatingDays int             `json:"operating_days"`
	DateRange     string          `json:"date_range"`

	UniqueItems      int `json:"unique_items"`
	UniqueCategories int `json:"unique_categories"`
	UniqueVendors    int `json:"unique_vendors"`

	// Break-even coverage against the configured daily fixed cost.
	DaysAboveBreakEvenGross int `json:"days_above_break_even_gross"`
	DaysAboveBreakEvenNet   int `json:"days_above_break_even_net"`

	// Net-after-fees view. Commission applies to net sales, the card fee to
	// the credit-card total; food-cost ratios never include either.
	CommissionFee decimal.Decimal `json:"commission_fee"`
	CreditCardFee decimal.Decimal `json:"credit_card_fee"`
	NetAfterFees  decimal.Decimal `json:"net_after_fees"`
	NetMarginPct  decimal.Decimal `json:"net_margin_pct"`

	WeekdayStats       []WeekdayStat `json:"weekday_stats"`
	BestDay            string        `json:"best_day"`
	WorstDay           string        `json:"worst_day"`
	HighestDiscountDay string        `json:"highest_discount_day"`
}

// BuildKPIReport aggregates over the full record set, not per week.
func BuildKPIReport(days []models.DailySalesRecord, items []models.InventoryLineItem, settings config.Settings) *KPIReport {
	kpi := &KPIReport{OperatingDays: len(days)}

	ccTotal := decimal.Zero
	fixedCost := decimal.NewFromFloat(settings.DailyFixedCost)
	for _, d := range days {
		kpi.TotalGross = kpi.TotalGross.Add(d.GrossBefore)
		kpi.TotalNet = kpi.TotalNet.Add(d.NetSales)
		kpi.TotalDiscounts = kpi.TotalDiscounts.Add(d.Discounts)
		ccTotal = ccTotal.Add(d.CreditCard)
		if d.GrossBefore.GreaterThanOrEqual(fixedCost) {
			kpi.DaysAboveBreakEvenGross++
		}
		if d.NetSales.GreaterThanOrEqual(fixedCost) {
			kpi.DaysAboveBreakEvenNet++
		}
	}

	itemNames := make(map[string]struct{})
	categories := make(map[string]struct{})
	vendors := make(map[string]struct{})
	for _, it := range items {
		kpi.TotalInvSpend = kpi.TotalInvSpend.Add(it.TotalPrice)
		if it.Category == models.CategoryProtein {
			kpi.ProteinSpend = kpi.ProteinSpend.Add(it.TotalPrice)
		}
		itemNames[it.StandardItemName] = struct{}{}
		categories[it.Category] = struct{}{}
		vendors[it.Vendor] = struct{}{}
	}
	kpi.UniqueItems = len(itemNames)
	kpi.UniqueCategories = len(categories)
	kpi.UniqueVendors = len(vendors)

	kpi.FoodCostPctNet = utils.RatioPct(kpi.TotalInvSpend, kpi.TotalNet).Round(1)
	kpi.FoodCostPctGross = utils.RatioPct(kpi.TotalInvSpend, kpi.TotalGross).Round(1)
	kpi.ContractDiscountPct = utils.RatioPct(kpi.TotalDiscounts, kpi.TotalGross).Round(1)
	kpi.CreditCardSharePct = utils.RatioPct(ccTotal, kpi.TotalGross).Round(1)
	kpi.ProteinSharePct = utils.RatioPct(kpi.ProteinSpend, kpi.TotalInvSpend).Round(1)

	if len(days) > 0 {
		n := decimal.NewFromInt(int64(len(days)))
		kpi.AvgDailyNet = kpi.TotalNet.Div(n)
		kpi.AvgDailyGross = kpi.TotalGross.Div(n)
		kpi.DateRange = fmt.Sprintf("%s – %s",
			days[0].Date.Format("Jan 02"), days[len(days)-1].Date.Format("Jan 02, 2006"))
	}

	kpi.CommissionFee = kpi.TotalNet.Mul(pctFraction(settings.CommissionRatePct))
	kpi.CreditCardFee = ccTotal.Mul(pctFraction(settings.CreditCardFeePct))
	kpi.NetAfterFees = kpi.TotalNet.Sub(kpi.TotalInvSpend).Sub(kpi.CommissionFee).Sub(kpi.CreditCardFee)
	kpi.NetMarginPct = utils.RatioPct(kpi.NetAfterFees, kpi.TotalNet).Round(1)

	kpi.WeekdayStats = buildWeekdayStats(days)
	kpi.BestDay, kpi.WorstDay, kpi.HighestDiscountDay = pickDays(kpi.WeekdayStats)
	return kpi
}

func pctFraction(pct float64) decimal.Decimal {
	return decimal.NewFromFloat(pct).Div(decimal.NewFromInt(100))
}

// buildWeekdayStats averages per weekday name, Monday through Sunday;
// weekdays with no observed day are omitted.
func buildWeekdayStats(days []models.DailySalesRecord) []WeekdayStat {
	type acc struct {
		gross, net, disc decimal.Decimal
		count            int64
	}
	byDay := make(map[string]*acc)
	for _, d := range days {
		a, ok := byDay[d.Day]
		if !ok {
			a = &acc{}
			byDay[d.Day] = a
		}
		a.gross = a.gross.Add(d.GrossBefore)
		a.net = a.net.Add(d.NetSales)
		a.disc = a.disc.Add(d.DiscountRate)
		a.count++
	}

	stats := make([]WeekdayStat, 0, len(byDay))
	for _, day := range weekdayOrder {
		a, ok := byDay[day]
		if !ok {
			continue
		}
		n := decimal.NewFromInt(a.count)
		stats = append(stats, WeekdayStat{
			Day:             day,
			AvgGross:        a.gross.Div(n),
			AvgNet:          a.net.Div(n),
			AvgDiscountRate: a.disc.Div(n),
			Count:           int(a.count),
		})
	}
	return stats
}

func pickDays(stats []WeekdayStat) (best, worst, highestDisc string) {
	for i, s := range stats {
		if i == 0 {
			best, worst, highestDisc = s.Day, s.Day, s.Day
			continue
		}
		if s.AvgNet.GreaterThan(statFor(stats, best).AvgNet) {
			best = s.Day
		}
		if s.AvgNet.LessThan(statFor(stats, worst).AvgNet) {
			worst = s.Day
		}
		if s.AvgDiscountRate.GreaterThan(statFor(stats, highestDisc).AvgDiscountRate) {
			highestDisc = s.Day
		}
	}
	return best, worst, highestDisc
}

func statFor(stats []WeekdayStat, day string) WeekdayStat {
	for _, s := range stats {
		if s.Day == day {
			return s
		}
	}
	return WeekdayStat{}
}
