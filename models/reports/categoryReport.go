package reports

import (
	"sort"

	"bitbucket.org/mmdatafocus/cafe_metrics/models"
	"bitbucket.org/mmdatafocus/cafe_metrics/utils"
	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"
)

// VendorSpend is one vendor's total with its share of inventory spend.
type VendorSpend struct {
	Vendor   string          `json:"vendor"`
	Spend    decimal.Decimal `json:"spend"`
	SharePct decimal.Decimal `json:"share_pct"`
}

// CategorySpend relates one category's spend to the three revenue bases.
type CategorySpend struct {
	Category        string          `json:"category"`
	Spend           decimal.Decimal `json:"spend"`
	ShareOfInvPct   decimal.Decimal `json:"share_of_inv_pct"`
	ShareOfNetPct   decimal.Decimal `json:"share_of_net_pct"`
	ShareOfGrossPct decimal.Decimal `json:"share_of_gross_pct"`
}

type SubcategorySpend struct {
	Subcategory string          `json:"subcategory"`
	Spend       decimal.Decimal `json:"spend"`
}

type ItemSpend struct {
	Item  string          `json:"item"`
	Spend decimal.Decimal `json:"spend"`
	Qty   decimal.Decimal `json:"qty"`
}

type RiskTier string

const (
	RiskHigh       RiskTier = "High"
	RiskModerate   RiskTier = "Moderate"
	RiskConsistent RiskTier = "Consistent"
)

// CategoryConsistency measures how evenly a category is purchased week to
// week. CVPct is the coefficient of variation of weekly spend; above 50 is
// high waste risk, above 25 moderate.
type CategoryConsistency struct {
	Category       string          `json:"category"`
	AvgWeeklySpend decimal.Decimal `json:"avg_weekly_spend"`
	StdDev         decimal.Decimal `json:"std_dev"`
	CVPct          decimal.Decimal `json:"cv_pct"`
	Risk           RiskTier        `json:"risk"`
}

// PerishableItem is one spoilage-watch line: a high-volume item in a
// perishable category.
type PerishableItem struct {
	Item       string          `json:"item"`
	Category   string          `json:"category"`
	TotalSpend decimal.Decimal `json:"total_spend"`
	TotalQty   decimal.Decimal `json:"total_qty"`
	Orders     int             `json:"orders"`
}

func VendorBreakdown(items []models.InventoryLineItem) []VendorSpend {
	totals := make(map[string]decimal.Decimal)
	grand := decimal.Zero
	for _, it := range items {
		totals[it.Vendor] = totals[it.Vendor].Add(it.TotalPrice)
		grand = grand.Add(it.TotalPrice)
	}
	out := make([]VendorSpend, 0, len(totals))
	for vendor, spend := range totals {
		out = append(out, VendorSpend{
			Vendor:   vendor,
			Spend:    spend,
			SharePct: utils.RatioPct(spend, grand).Round(1),
		})
	}
	sortBySpendDesc(out, func(v VendorSpend) decimal.Decimal { return v.Spend }, func(v VendorSpend) string { return v.Vendor })
	return out
}

func CategoryBreakdown(items []models.InventoryLineItem, totalNet, totalGross decimal.Decimal) []CategorySpend {
	totals := make(map[string]decimal.Decimal)
	grand := decimal.Zero
	for _, it := range items {
		totals[it.Category] = totals[it.Category].Add(it.TotalPrice)
		grand = grand.Add(it.TotalPrice)
	}
	out := make([]CategorySpend, 0, len(totals))
	for category, spend := range totals {
		out = append(out, CategorySpend{
			Category:        category,
			Spend:           spend,
			ShareOfInvPct:   utils.RatioPct(spend, grand).Round(1),
			ShareOfNetPct:   utils.RatioPct(spend, totalNet).Round(1),
			ShareOfGrossPct: utils.RatioPct(spend, totalGross).Round(1),
		})
	}
	sortBySpendDesc(out, func(c CategorySpend) decimal.Decimal { return c.Spend }, func(c CategorySpend) string { return c.Category })
	return out
}

func SubcategoryBreakdown(items []models.InventoryLineItem, category string) []SubcategorySpend {
	totals := make(map[string]decimal.Decimal)
	for _, it := range items {
		if it.Category != category {
			continue
		}
		totals[it.Subcategory] = totals[it.Subcategory].Add(it.TotalPrice)
	}
	out := make([]SubcategorySpend, 0, len(totals))
	for sub, spend := range totals {
		out = append(out, SubcategorySpend{Subcategory: sub, Spend: spend})
	}
	sortBySpendDesc(out, func(s SubcategorySpend) decimal.Decimal { return s.Spend }, func(s SubcategorySpend) string { return s.Subcategory })
	return out
}

func TopItemsBySpend(items []models.InventoryLineItem, n int) []ItemSpend {
	out := itemTotals(items)
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

func itemTotals(items []models.InventoryLineItem) []ItemSpend {
	type acc struct{ spend, qty decimal.Decimal }
	totals := make(map[string]*acc)
	for _, it := range items {
		a, ok := totals[it.StandardItemName]
		if !ok {
			a = &acc{}
			totals[it.StandardItemName] = a
		}
		a.spend = a.spend.Add(it.TotalPrice)
		a.qty = a.qty.Add(it.Qty)
	}
	out := make([]ItemSpend, 0, len(totals))
	for item, a := range totals {
		out = append(out, ItemSpend{Item: item, Spend: a.spend, Qty: a.qty})
	}
	sortBySpendDesc(out, func(i ItemSpend) decimal.Decimal { return i.Spend }, func(i ItemSpend) string { return i.Item })
	return out
}

// CategoryConsistencies computes per-category weekly spend dispersion.
// Categories seen in a single week get a zero stddev (no dispersion
// evidence), matching how a first observation carries no risk signal.
func CategoryConsistencies(items []models.InventoryLineItem) []CategoryConsistency {
	weekly := make(map[string]map[string]decimal.Decimal)
	for _, it := range items {
		weeks, ok := weekly[it.Category]
		if !ok {
			weeks = make(map[string]decimal.Decimal)
			weekly[it.Category] = weeks
		}
		weeks[it.WeekLabel] = weeks[it.WeekLabel].Add(it.TotalPrice)
	}

	out := make([]CategoryConsistency, 0, len(weekly))
	for category, weeks := range weekly {
		spends := make([]float64, 0, len(weeks))
		for _, spend := range weeks {
			spends = append(spends, spend.InexactFloat64())
		}
		mean, _ := stats.Mean(spends)
		sd := 0.0
		if len(spends) > 1 {
			sd, _ = stats.StandardDeviationSample(spends)
		}
		c := CategoryConsistency{
			Category:       category,
			AvgWeeklySpend: decimal.NewFromFloat(mean).Round(2),
			StdDev:         decimal.NewFromFloat(sd).Round(2),
		}
		c.CVPct = utils.RatioPct(c.StdDev, c.AvgWeeklySpend).Round(1)
		c.Risk = riskTierFor(c.CVPct)
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CVPct.Equal(out[j].CVPct) {
			return out[i].CVPct.GreaterThan(out[j].CVPct)
		}
		return out[i].Category < out[j].Category
	})
	return out
}

func riskTierFor(cvPct decimal.Decimal) RiskTier {
	switch {
	case cvPct.GreaterThan(decimal.NewFromInt(50)):
		return RiskHigh
	case cvPct.GreaterThan(decimal.NewFromInt(25)):
		return RiskModerate
	default:
		return RiskConsistent
	}
}

// PerishablesWatch lists the top-n perishable items by spend with their
// quantity and distinct-invoice counts.
func PerishablesWatch(items []models.InventoryLineItem, n int) []PerishableItem {
	type acc struct {
		category string
		spend    decimal.Decimal
		qty      decimal.Decimal
		invoices map[string]struct{}
	}
	totals := make(map[string]*acc)
	for _, it := range items {
		if !it.IsPerishable() {
			continue
		}
		key := it.StandardItemName + "\x00" + it.Category
		a, ok := totals[key]
		if !ok {
			a = &acc{category: it.Category, invoices: make(map[string]struct{})}
			totals[key] = a
		}
		a.spend = a.spend.Add(it.TotalPrice)
		a.qty = a.qty.Add(it.Qty)
		a.invoices[it.InvoiceNo] = struct{}{}
	}

	out := make([]PerishableItem, 0, len(totals))
	for key, a := range totals {
		name := key[:len(key)-len(a.category)-1]
		out = append(out, PerishableItem{
			Item:       name,
			Category:   a.category,
			TotalSpend: a.spend,
			TotalQty:   a.qty,
			Orders:     len(a.invoices),
		})
	}
	sortBySpendDesc(out, func(p PerishableItem) decimal.Decimal { return p.TotalSpend }, func(p PerishableItem) string { return p.Item })
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// sortBySpendDesc orders by spend descending with a name tiebreak so equal
// spends stay deterministic run to run.
func sortBySpendDesc[T any](s []T, spend func(T) decimal.Decimal, name func(T) string) {
	sort.Slice(s, func(i, j int) bool {
		if !spend(s[i]).Equal(spend(s[j])) {
			return spend(s[i]).GreaterThan(spend(s[j]))
		}
		return name(s[i]) < name(s[j])
	})
}
