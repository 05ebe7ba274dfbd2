// Package importer reads POS workbook uploads into typed transaction rows.
package importer

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/credit-ledger/backend/internal/domain/entity"
	domainerror "github.com/credit-ledger/backend/internal/domain/error"
)

// Column names expected in the POS export.
const (
	colReceiptID      = "ReceiptId"
	colDate           = "Date"
	colCustomerName   = "CustomerName"
	colCustomerNumber = "CustomerNumber"
	colTotal          = "Total"
	colPaymentMode    = "PaymentMode"
	colEntryType      = "EntryType"
	colItemName       = "ItemName"
	colQuantity       = "Quantity"
	colRate           = "Rate"
	colAmount         = "Amount"
)

var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"01-02-06",
	"2006-01-02 15:04:05",
	"02-01-2006",
	"2-Jan-06",
	"02-Jan-2006",
}

// POSExcelReader parses the monthly POS workbook. The workbook carries two
// sheets: one receipt per row, and one line per receipt entry.
type POSExcelReader struct {
	receiptsSheet string
	itemsSheet    string
}

// NewPOSExcelReader creates a new POSExcelReader for the given sheet names.
func NewPOSExcelReader(receiptsSheet, itemsSheet string) *POSExcelReader {
	return &POSExcelReader{
		receiptsSheet: receiptsSheet,
		itemsSheet:    itemsSheet,
	}
}

// Read parses the workbook and returns the typed rows of both sheets. Rows
// stay in sheet order. No filtering happens here; the import use case decides
// what is kept.
func (p *POSExcelReader) Read(r io.Reader) ([]*entity.RawTransaction, []*entity.ReceiptItem, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, domainerror.NewImportError(
			domainerror.ErrCodeMissingSheet,
			"failed to open workbook",
			err,
		)
	}
	defer f.Close()

	transactions, err := p.readReceipts(f)
	if err != nil {
		return nil, nil, err
	}

	items, err := p.readItems(f)
	if err != nil {
		return nil, nil, err
	}

	return transactions, items, nil
}

func (p *POSExcelReader) readReceipts(f *excelize.File) ([]*entity.RawTransaction, error) {
	rows, header, err := sheetRows(f, p.receiptsSheet)
	if err != nil {
		return nil, err
	}

	required := []string{colReceiptID, colDate, colCustomerName, colCustomerNumber, colTotal, colPaymentMode}
	if err := checkColumns(p.receiptsSheet, header, required); err != nil {
		return nil, err
	}

	transactions := make([]*entity.RawTransaction, 0, len(rows))
	for _, row := range rows {
		if isEmptyRow(row) {
			continue
		}

		date, err := parseDate(cell(row, header[colDate]))
		if err != nil {
			return nil, domainerror.NewImportError(
				domainerror.ErrCodeMissingColumn,
				fmt.Sprintf("sheet %q: %v", p.receiptsSheet, err),
				err,
			)
		}

		transactions = append(transactions, &entity.RawTransaction{
			ReceiptID:        cell(row, header[colReceiptID]),
			Date:             date,
			CustomerName:     cell(row, header[colCustomerName]),
			CustomerPhoneRaw: cell(row, header[colCustomerNumber]),
			Total:            parseAmount(cell(row, header[colTotal])),
			PaymentMode:      entity.PaymentMode(cell(row, header[colPaymentMode])),
		})
	}

	return transactions, nil
}

func (p *POSExcelReader) readItems(f *excelize.File) ([]*entity.ReceiptItem, error) {
	rows, header, err := sheetRows(f, p.itemsSheet)
	if err != nil {
		return nil, err
	}

	required := []string{colReceiptID, colEntryType, colItemName, colQuantity, colRate, colAmount}
	if err := checkColumns(p.itemsSheet, header, required); err != nil {
		return nil, err
	}

	items := make([]*entity.ReceiptItem, 0, len(rows))
	for _, row := range rows {
		if isEmptyRow(row) {
			continue
		}

		items = append(items, &entity.ReceiptItem{
			ReceiptID: cell(row, header[colReceiptID]),
			EntryType: cell(row, header[colEntryType]),
			ItemName:  cell(row, header[colItemName]),
			Quantity:  parseAmount(cell(row, header[colQuantity])),
			Rate:      parseAmount(cell(row, header[colRate])),
			Amount:    parseAmount(cell(row, header[colAmount])),
		})
	}

	return items, nil
}

// sheetRows returns the data rows and a header index map for the sheet.
func sheetRows(f *excelize.File, sheet string) ([][]string, map[string]int, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, domainerror.NewImportError(
			domainerror.ErrCodeMissingSheet,
			fmt.Sprintf("workbook is missing sheet %q", sheet),
			err,
		)
	}
	if len(rows) == 0 {
		return nil, map[string]int{}, nil
	}

	header := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		header[strings.TrimSpace(name)] = i
	}

	return rows[1:], header, nil
}

func checkColumns(sheet string, header map[string]int, required []string) error {
	for _, name := range required {
		if _, ok := header[name]; !ok {
			return domainerror.NewImportError(
				domainerror.ErrCodeMissingColumn,
				fmt.Sprintf("sheet %q is missing column %q", sheet, name),
				domainerror.ErrMissingColumn,
			)
		}
	}
	return nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseAmount reads a numeric cell leniently. Blank or unparseable cells
// become zero; a bad amount never aborts an import.
func parseAmount(raw string) decimal.Decimal {
	cleaned := strings.ReplaceAll(raw, ",", "")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" || cleaned == "-" {
		return decimal.Zero
	}

	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return amount
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date %q", raw)
}

func isEmptyRow(row []string) bool {
	for _, field := range row {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}
