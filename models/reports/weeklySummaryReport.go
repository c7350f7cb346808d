package reports

import (
	"sort"
	"time"

	"bitbucket.org/mmdatafocus/cafe_metrics/models"
	"bitbucket.org/mmdatafocus/cafe_metrics/utils"
	"github.com/shopspring/decimal"
)

// WeeklyRollup is one business week's merged sales and inventory totals.
//
// FoodCostPct is nil when the week has no net sales (a ratio against zero
// is meaningless, not zero). WoWNet/WoWGross are nil for the first week and
// for a week whose predecessor had a zero base.
type WeeklyRollup struct {
	WeekLabel string    `json:"week_label"`
	WeekStart time.Time `json:"week_start"`

	GrossBefore decimal.Decimal `json:"gross_before"`
	NetSales    decimal.Decimal `json:"net_sales"`
	Discounts   decimal.Decimal `json:"discounts"`
	CreditCard  decimal.Decimal `json:"credit_card"`
	Cash        decimal.Decimal `json:"cash"`
	InvSpend    decimal.Decimal `json:"inv_spend"`

	FoodCostPct  *decimal.Decimal `json:"food_cost_pct"`
	GrossProfit  decimal.Decimal  `json:"gross_profit"`
	DiscountRate decimal.Decimal  `json:"discount_rate"`
	WoWNet       *decimal.Decimal `json:"wow_net"`
	WoWGross     *decimal.Decimal `json:"wow_gross"`
}

// BuildWeeklyRollups groups both series by business week, sums each side,
// and outer-joins them on the week label: a week present in only one source
// still gets a rollup, with the other side at zero. The result is sorted
// ascending by week start; the WoW deltas depend on that order.
func BuildWeeklyRollups(days []models.DailySalesRecord, items []models.InventoryLineItem) []WeeklyRollup {
	byWeek := make(map[string]*WeeklyRollup)

	get := func(label string, start time.Time) *WeeklyRollup {
		if r, ok := byWeek[label]; ok {
			return r
		}
		r := &WeeklyRollup{WeekLabel: label, WeekStart: start}
		byWeek[label] = r
		return r
	}

	for _, d := range days {
		r := get(d.WeekLabel, d.WeekStart)
		r.GrossBefore = r.GrossBefore.Add(d.GrossBefore)
		r.NetSales = r.NetSales.Add(d.NetSales)
		r.Discounts = r.Discounts.Add(d.Discounts)
		r.CreditCard = r.CreditCard.Add(d.CreditCard)
		r.Cash = r.Cash.Add(d.Cash)
	}
	for _, it := range items {
		r := get(it.WeekLabel, it.WeekStart)
		r.InvSpend = r.InvSpend.Add(it.TotalPrice)
	}

	rollups := make([]WeeklyRollup, 0, len(byWeek))
	for _, r := range byWeek {
		rollups = append(rollups, *r)
	}
	sort.Slice(rollups, func(i, j int) bool {
		return rollups[i].WeekStart.Before(rollups[j].WeekStart)
	})

	for i := range rollups {
		r := &rollups[i]
		r.FoodCostPct = utils.RatioPctPtr(r.InvSpend, r.NetSales)
		r.GrossProfit = r.NetSales.Sub(r.InvSpend)
		r.DiscountRate = utils.RatioPct(r.Discounts, r.GrossBefore).Round(1)
		if i > 0 {
			r.WoWNet = pctChange(rollups[i-1].NetSales, r.NetSales)
			r.WoWGross = pctChange(rollups[i-1].GrossBefore, r.GrossBefore)
		}
	}
	return rollups
}

func pctChange(prev, curr decimal.Decimal) *decimal.Decimal {
	if prev.IsZero() {
		return nil
	}
	v := curr.Sub(prev).Div(prev).Mul(decimal.NewFromInt(100))
	return &v
}
