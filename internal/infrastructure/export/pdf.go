package export

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/digipos/sellthru-api/internal/application/dto"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// PDFExporter writes the reconciliation report as PDF using Maroto v2.
type PDFExporter struct{}

// NewPDFExporter builds the exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// ReconciliationPDF generates the PDF and returns its bytes.
func (g *PDFExporter) ReconciliationPDF(report *dto.ReconciliationReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reconciliation Report", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(
		metricRow("Total sold", fmt.Sprint(report.TotalSold)),
		metricRow("Matched sales", fmt.Sprint(report.MatchedSales)),
		metricRow("Securing", fmt.Sprint(report.Securing)),
	)
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(
		metricRow("Topup total", report.TopupTotal.String()),
		metricRow("Sales total", report.SalesTotal.String()),
		metricRow("Outstanding balance", report.OutstandingBalance.String()),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(report *dto.ReconciliationReport) core.Row {
	return row.New(12).Add(
		col.New(8).Add(
			text.New("Reconciliation Report", props.Text{
				Size: 14, Style: fontstyle.Bold, Color: colorPrimary,
			}),
		),
		col.New(4).Add(
			text.New(report.GeneratedAt.Format("2006-01-02 15:04"), props.Text{
				Size: 9, Align: align.Right, Color: colorGray,
			}),
		),
	)
}

func metricRow(label, value string) core.Row {
	return row.New(7).Add(
		col.New(8).Add(text.New(label, props.Text{Size: 9})),
		col.New(4).Add(text.New(value, props.Text{Size: 9, Align: align.Right, Style: fontstyle.Bold})),
	)
}
