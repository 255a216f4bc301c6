package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/digipos/sellthru-api/internal/application/dto"
)

// ExcelExporter writes the reconciliation report as XLSX.
type ExcelExporter struct{}

// NewExcelExporter builds the exporter.
func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{}
}

// ReconciliationXLSX renders a two-column metric sheet and returns the file bytes.
func (e *ExcelExporter) ReconciliationXLSX(report *dto.ReconciliationReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Reconciliation"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("xlsx: new sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	rows := []struct {
		label string
		value any
	}{
		{"Generated at", report.GeneratedAt.Format("2006-01-02 15:04:05")},
		{"Total sold", report.TotalSold},
		{"Matched sales", report.MatchedSales},
		{"Securing", report.Securing},
		{"Topup total", report.TopupTotal.String()},
		{"Sales total", report.SalesTotal.String()},
		{"Outstanding balance", report.OutstandingBalance.String()},
	}

	f.SetCellValue(sheet, "A1", "Metric")
	f.SetCellValue(sheet, "B1", "Value")
	for i, r := range rows {
		f.SetCellValue(sheet, "A"+fmt.Sprint(i+2), r.label)
		f.SetCellValue(sheet, "B"+fmt.Sprint(i+2), r.value)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: write: %w", err)
	}
	return buf.Bytes(), nil
}
