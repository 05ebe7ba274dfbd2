package importer

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/credit-ledger/backend/internal/domain/entity"
	domainerror "github.com/credit-ledger/backend/internal/domain/error"
)

const (
	testReceiptsSheet = "receipts"
	testItemsSheet    = "receiptsWithItems"
)

func buildWorkbook(t *testing.T, receipts, items [][]interface{}) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName("Sheet1", testReceiptsSheet))
	_, err := f.NewSheet(testItemsSheet)
	require.NoError(t, err)

	writeRows(t, f, testReceiptsSheet, receipts)
	writeRows(t, f, testItemsSheet, items)

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return &buf
}

func writeRows(t *testing.T, f *excelize.File, sheet string, rows [][]interface{}) {
	t.Helper()
	for i, row := range rows {
		for j, value := range row {
			cellRef, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cellRef, value))
		}
	}
}

func receiptHeader() []interface{} {
	return []interface{}{"ReceiptId", "Date", "CustomerName", "CustomerNumber", "Total", "PaymentMode"}
}

func itemHeader() []interface{} {
	return []interface{}{"ReceiptId", "EntryType", "ItemName", "Quantity", "Rate", "Amount"}
}

func TestReadParsesBothSheets(t *testing.T) {
	buf := buildWorkbook(t,
		[][]interface{}{
			receiptHeader(),
			{"R1", "2025-03-01", "Asha", "917234002022", "160.50", "Credit"},
			{"R2", "2025-03-02", "Ravi", "9898989898", "1,050", "Cash"},
		},
		[][]interface{}{
			itemHeader(),
			{"R1", "Item", "Milk 500ml", "2", "30", "60"},
			{"R1", "Charge", "Delivery", "", "", "10"},
		},
	)

	reader := NewPOSExcelReader(testReceiptsSheet, testItemsSheet)
	transactions, items, err := reader.Read(buf)
	require.NoError(t, err)

	require.Len(t, transactions, 2)
	first := transactions[0]
	assert.Equal(t, "R1", first.ReceiptID)
	assert.Equal(t, "Asha", first.CustomerName)
	assert.Equal(t, "917234002022", first.CustomerPhoneRaw)
	assert.True(t, first.Total.Equal(decimal.RequireFromString("160.50")))
	assert.Equal(t, entity.PaymentModeCredit, first.PaymentMode)
	assert.Equal(t, 2025, first.Date.Year())

	// Thousands separators are tolerated.
	assert.True(t, transactions[1].Total.Equal(decimal.NewFromInt(1050)))

	require.Len(t, items, 2)
	assert.Equal(t, "Item", items[0].EntryType)
	assert.True(t, items[0].Quantity.Equal(decimal.NewFromInt(2)))
	// Charge lines are parsed too; filtering happens downstream.
	assert.Equal(t, "Charge", items[1].EntryType)
	assert.True(t, items[1].Quantity.IsZero())
}

func TestReadMissingSheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName("Sheet1", testReceiptsSheet))
	writeRows(t, f, testReceiptsSheet, [][]interface{}{receiptHeader()})

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	reader := NewPOSExcelReader(testReceiptsSheet, testItemsSheet)
	_, _, err := reader.Read(&buf)
	require.Error(t, err)

	var importErr *domainerror.ImportError
	require.ErrorAs(t, err, &importErr)
	assert.Equal(t, domainerror.ErrCodeMissingSheet, importErr.Code)
}

func TestReadMissingColumn(t *testing.T) {
	buf := buildWorkbook(t,
		[][]interface{}{
			{"ReceiptId", "Date", "CustomerName", "Total", "PaymentMode"}, // no CustomerNumber
			{"R1", "2025-03-01", "Asha", "160", "Credit"},
		},
		[][]interface{}{itemHeader()},
	)

	reader := NewPOSExcelReader(testReceiptsSheet, testItemsSheet)
	_, _, err := reader.Read(buf)
	require.ErrorIs(t, err, domainerror.ErrMissingColumn)

	var importErr *domainerror.ImportError
	require.ErrorAs(t, err, &importErr)
	assert.Equal(t, domainerror.ErrCodeMissingColumn, importErr.Code)
	assert.Contains(t, importErr.Message, "CustomerNumber")
}

func TestReadSkipsEmptyRowsAndLenientAmounts(t *testing.T) {
	buf := buildWorkbook(t,
		[][]interface{}{
			receiptHeader(),
			{"R1", "2025-03-01", "Asha", "7234002022", "", "Credit"},
			{"", "", "", "", "", ""},
			{"R2", "02/03/2025", "Ravi", "9898989898", "garbage", "Credit"},
		},
		[][]interface{}{itemHeader()},
	)

	reader := NewPOSExcelReader(testReceiptsSheet, testItemsSheet)
	transactions, _, err := reader.Read(buf)
	require.NoError(t, err)

	require.Len(t, transactions, 2)
	assert.True(t, transactions[0].Total.IsZero(), "blank totals read as zero")
	assert.True(t, transactions[1].Total.IsZero(), "unparseable totals read as zero")
}

func TestReadNotAWorkbook(t *testing.T) {
	reader := NewPOSExcelReader(testReceiptsSheet, testItemsSheet)
	_, _, err := reader.Read(bytes.NewBufferString("this is not a zip archive"))
	require.Error(t, err)

	var importErr *domainerror.ImportError
	require.ErrorAs(t, err, &importErr)
	assert.Equal(t, domainerror.ErrCodeMissingSheet, importErr.Code)
}
