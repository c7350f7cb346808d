package reports

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// ExportWorkbook writes the snapshot's weekly summary, KPI set and alert
// list to an xlsx file for hand-off outside the dashboard.
func ExportWorkbook(snap *DashboardSnapshot, filename string) error {
	f := excelize.NewFile()
	defer f.Close()

	weeklySheet := "Weekly Summary"
	idx, err := f.NewSheet(weeklySheet)
	if err != nil {
		return err
	}
	f.SetActiveSheet(idx)

	// Add headers
	headers := []string{"Week", "Gross Sales", "Net Sales", "Discounts", "Contract Disc %",
		"Inv Spend", "Food Cost % (Net)", "Gross Profit", "Net WoW %", "Gross WoW %"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(weeklySheet, cell, h)
	}

	// Add data
	for i, w := range snap.Weekly() {
		row := i + 2
		f.SetCellValue(weeklySheet, "A"+fmt.Sprint(row), w.WeekLabel)
		f.SetCellValue(weeklySheet, "B"+fmt.Sprint(row), w.GrossBefore.InexactFloat64())
		f.SetCellValue(weeklySheet, "C"+fmt.Sprint(row), w.NetSales.InexactFloat64())
		f.SetCellValue(weeklySheet, "D"+fmt.Sprint(row), w.Discounts.InexactFloat64())
		f.SetCellValue(weeklySheet, "E"+fmt.Sprint(row), w.DiscountRate.InexactFloat64())
		f.SetCellValue(weeklySheet, "F"+fmt.Sprint(row), w.InvSpend.InexactFloat64())
		setOptionalPct(f, weeklySheet, "G"+fmt.Sprint(row), w.FoodCostPct)
		f.SetCellValue(weeklySheet, "H"+fmt.Sprint(row), w.GrossProfit.InexactFloat64())
		setOptionalPct(f, weeklySheet, "I"+fmt.Sprint(row), w.WoWNet)
		setOptionalPct(f, weeklySheet, "J"+fmt.Sprint(row), w.WoWGross)
	}

	kpiSheet := "KPIs"
	if _, err := f.NewSheet(kpiSheet); err != nil {
		return err
	}
	kpi := snap.KPIs()
	kpiRows := []struct {
		label string
		value any
	}{
		{"Date Range", kpi.DateRange},
		{"Operating Days", kpi.OperatingDays},
		{"Gross Sales", kpi.TotalGross.InexactFloat64()},
		{"Net Sales", kpi.TotalNet.InexactFloat64()},
		{"Discounts", kpi.TotalDiscounts.InexactFloat64()},
		{"Inventory Spend", kpi.TotalInvSpend.InexactFloat64()},
		{"Food Cost % vs Net", kpi.FoodCostPctNet.InexactFloat64()},
		{"Food Cost % vs Gross", kpi.FoodCostPctGross.InexactFloat64()},
		{"Contract Discount %", kpi.ContractDiscountPct.InexactFloat64()},
		{"Credit Card Share %", kpi.CreditCardSharePct.InexactFloat64()},
		{"Protein Share %", kpi.ProteinSharePct.InexactFloat64()},
		{"Commission Fee", kpi.CommissionFee.InexactFloat64()},
		{"Credit Card Fee", kpi.CreditCardFee.InexactFloat64()},
		{"Net After Fees", kpi.NetAfterFees.InexactFloat64()},
		{"Net Margin %", kpi.NetMarginPct.InexactFloat64()},
	}
	for i, r := range kpiRows {
		f.SetCellValue(kpiSheet, "A"+fmt.Sprint(i+1), r.label)
		f.SetCellValue(kpiSheet, "B"+fmt.Sprint(i+1), r.value)
	}

	categorySheet := "Categories"
	if _, err := f.NewSheet(categorySheet); err != nil {
		return err
	}
	f.SetCellValue(categorySheet, "A1", "Category")
	f.SetCellValue(categorySheet, "B1", "Spend")
	f.SetCellValue(categorySheet, "C1", "Share of Inv %")
	f.SetCellValue(categorySheet, "D1", "Share of Net %")
	f.SetCellValue(categorySheet, "E1", "Share of Gross %")
	for i, c := range snap.Categories() {
		row := i + 2
		f.SetCellValue(categorySheet, "A"+fmt.Sprint(row), c.Category)
		f.SetCellValue(categorySheet, "B"+fmt.Sprint(row), c.Spend.InexactFloat64())
		f.SetCellValue(categorySheet, "C"+fmt.Sprint(row), c.ShareOfInvPct.InexactFloat64())
		f.SetCellValue(categorySheet, "D"+fmt.Sprint(row), c.ShareOfNetPct.InexactFloat64())
		f.SetCellValue(categorySheet, "E"+fmt.Sprint(row), c.ShareOfGrossPct.InexactFloat64())
	}

	alertSheet := "Alerts"
	if _, err := f.NewSheet(alertSheet); err != nil {
		return err
	}
	f.SetCellValue(alertSheet, "A1", "Kind")
	f.SetCellValue(alertSheet, "B1", "Severity")
	f.SetCellValue(alertSheet, "C1", "Subject")
	f.SetCellValue(alertSheet, "D1", "Value")
	f.SetCellValue(alertSheet, "E1", "Threshold")
	for i, a := range snap.Alerts() {
		row := i + 2
		f.SetCellValue(alertSheet, "A"+fmt.Sprint(row), string(a.Kind))
		f.SetCellValue(alertSheet, "B"+fmt.Sprint(row), string(a.Severity))
		f.SetCellValue(alertSheet, "C"+fmt.Sprint(row), a.Subject)
		f.SetCellValue(alertSheet, "D"+fmt.Sprint(row), a.Value.InexactFloat64())
		f.SetCellValue(alertSheet, "E"+fmt.Sprint(row), a.Threshold.InexactFloat64())
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}
	return f.SaveAs(filename)
}

func setOptionalPct(f *excelize.File, sheet, cell string, v *decimal.Decimal) {
	if v == nil {
		return
	}
	f.SetCellValue(sheet, cell, v.InexactFloat64())
}
