package models

import (
	"os"
	"strings"

	"bitbucket.org/mmdatafocus/cafe_metrics/utils"
	"github.com/xuri/excelize/v2"
)

// The inventory ledger lives on one sheet with a fixed header row.
const inventorySheet = "ALL_DATA"

const (
	colInvoiceDate = "Invoice_Date"
	colSource      = "Source"
	colCategory    = "Category/Class"
	colSubcategory = "Subcategory"
	colItemName    = "Standard_Item_Name"
	colQty         = "Qty"
	colUnitPrice   = "Unit_Price"
	colTotalPrice  = "Total_Price"
	colInvoiceNo   = "Invoice_No"
)

var requiredColumns = []string{
	colInvoiceDate, colSource, colCategory, colSubcategory,
	colItemName, colQty, colUnitPrice, colTotalPrice, colInvoiceNo,
}

// LoadInventoryLedger parses the ALL_DATA table into line items. Unlike the
// free-form sales sheets the ledger is machine-produced, so a missing sheet,
// a missing column, or a row whose date or amounts do not parse is a
// SchemaError rather than a silent skip.
func LoadInventoryLedger(path string, cache *LoaderCache) ([]InventoryLineItem, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, utils.NewSchemaError("inventory ledger", "cannot stat %s: %v", path, err)
	}
	if v, ok := cache.lookup(path, info); ok {
		return v.([]InventoryLineItem), nil
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, utils.NewSchemaError("inventory ledger", "cannot open %s: %v", path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(inventorySheet)
	if err != nil || len(rows) == 0 {
		return nil, utils.NewSchemaError("inventory ledger", "sheet %q is missing in %s", inventorySheet, path)
	}

	cols, err := headerIndex(rows[0])
	if err != nil {
		return nil, err
	}

	items := make([]InventoryLineItem, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		item, err := parseLedgerRow(row, cols, i+2)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	cache.store(path, info, items)
	return items, nil
}

func headerIndex(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, utils.NewSchemaError("inventory ledger", "required column %q is missing", name)
		}
	}
	return cols, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func cellAt(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}

func parseLedgerRow(row []string, cols map[string]int, rowNo int) (InventoryLineItem, error) {
	var item InventoryLineItem

	date, ok := parseCellDate(cellAt(row, cols[colInvoiceDate]))
	if !ok {
		return item, utils.NewSchemaError("inventory ledger", "row %d: %s %q does not parse as a date",
			rowNo, colInvoiceDate, cellAt(row, cols[colInvoiceDate]))
	}
	item.InvoiceDate = date
	item.Vendor = strings.TrimSpace(cellAt(row, cols[colSource]))
	item.StandardItemName = strings.TrimSpace(cellAt(row, cols[colItemName]))
	item.InvoiceNo = strings.TrimSpace(cellAt(row, cols[colInvoiceNo]))

	item.Category = strings.TrimSpace(cellAt(row, cols[colCategory]))
	if item.Category == "" {
		item.Category = DefaultCategory
	}
	item.Subcategory = strings.TrimSpace(cellAt(row, cols[colSubcategory]))
	if item.Subcategory == "" {
		item.Subcategory = DefaultSubcategory
	}

	qty, ok := utils.CellDecimal(cellAt(row, cols[colQty]))
	if !ok {
		return item, utils.NewSchemaError("inventory ledger", "row %d: %s is not numeric", rowNo, colQty)
	}
	unit, ok := utils.CellDecimal(cellAt(row, cols[colUnitPrice]))
	if !ok {
		return item, utils.NewSchemaError("inventory ledger", "row %d: %s is not numeric", rowNo, colUnitPrice)
	}
	total, ok := utils.CellDecimal(cellAt(row, cols[colTotalPrice]))
	if !ok {
		return item, utils.NewSchemaError("inventory ledger", "row %d: %s is not numeric", rowNo, colTotalPrice)
	}
	if total.IsNegative() {
		return item, utils.NewSchemaError("inventory ledger", "row %d: %s is negative", rowNo, colTotalPrice)
	}
	item.Qty, item.UnitPrice, item.TotalPrice = qty, unit, total

	item.Derive()
	return item, nil
}
