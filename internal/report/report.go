// Package report renders an IntelligenceData aggregate into a branded PDF.
// It is a pure formatter: every number comes precomputed from the engine.
package report

import (
	"fmt"
	"io"

	"github.com/phpdave11/gofpdf"

	"github.com/yudhistira-dev/orgintel/internal/domain"
)

// Fixed brand palette (RGB).
var (
	headerColor = [3]int{31, 64, 104}  // deep blue band
	accentColor = [3]int{235, 140, 52} // orange highlights
	tableGray   = [3]int{240, 240, 240}
)

// Writer renders intelligence reports.
type Writer struct {
	orgName string
}

// NewWriter creates a report writer branded with the organization name.
func NewWriter(orgName string) *Writer {
	if orgName == "" {
		orgName = "Organization"
	}
	return &Writer{orgName: orgName}
}

// Render writes the full report PDF to out.
func (w *Writer) Render(data *domain.IntelligenceData, out io.Writer) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("%s - Intelligence Report", w.orgName), true)
	pdf.AliasNbPages("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(0, 10,
			fmt.Sprintf("CONFIDENTIAL - internal use only - page %d/{nb}", pdf.PageNo()),
			"", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	w.renderHeader(pdf, data)
	w.renderRiskTable(pdf, data)
	w.renderAnomalies(pdf, data)
	w.renderActionPlan(pdf, data)

	return pdf.Output(out)
}

func (w *Writer) renderHeader(pdf *gofpdf.Fpdf, data *domain.IntelligenceData) {
	pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 14, fmt.Sprintf("%s - Intelligence Report", w.orgName), "", 1, "L", true, 0, "")

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 8, fmt.Sprintf("Generated %s", data.GeneratedAt.Format("2 January 2006 15:04 MST")), "", 1, "L", false, 0, "")
	if data.LearningMode {
		pdf.SetTextColor(accentColor[0], accentColor[1], accentColor[2])
		pdf.CellFormat(0, 8, "Engine is still learning: insights are withheld until more history accrues.", "", 1, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}
	pdf.Ln(4)
}

func (w *Writer) renderRiskTable(pdf *gofpdf.Fpdf, data *domain.IntelligenceData) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 10, fmt.Sprintf("Composite risk: %d/100 (%s)", data.Risk.Overall, data.Risk.Trend), "", 1, "L", false, 0, "")

	rows := []struct {
		label string
		value int
	}{
		{"Financial", data.Risk.Financial},
		{"Compliance", data.Risk.Compliance},
		{"Operational", data.Risk.Operational},
		{"Document", data.Risk.Document},
	}

	pdf.SetFont("Helvetica", "", 10)
	fill := false
	for _, row := range rows {
		pdf.SetFillColor(tableGray[0], tableGray[1], tableGray[2])
		pdf.CellFormat(60, 8, row.label, "1", 0, "L", fill, 0, "")
		pdf.CellFormat(30, 8, fmt.Sprintf("%d", row.value), "1", 1, "R", fill, 0, "")
		fill = !fill
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 7, fmt.Sprintf("Efficiency: %d (%s) - compliance rate: %d%% (%s)",
		data.Efficiency.Score, data.Efficiency.Status, data.Compliance.Rate, data.Compliance.Trend), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Expense forecast: %d (%s, %s) - attendance forecast: %d%% (%s, %s)",
		data.ExpenseForecast.Prediction, data.ExpenseForecast.Confidence, data.ExpenseForecast.Trend,
		data.AttendanceForecast.PredictedRate, data.AttendanceForecast.Confidence, data.AttendanceForecast.Trend), "", 1, "L", false, 0, "")
	pdf.Ln(4)
}

func (w *Writer) renderAnomalies(pdf *gofpdf.Fpdf, data *domain.IntelligenceData) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 10, fmt.Sprintf("Anomalies (%d)", len(data.Anomalies)), "", 1, "L", false, 0, "")

	if len(data.Anomalies) == 0 {
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 7, "No anomalies detected.", "", 1, "L", false, 0, "")
		pdf.Ln(4)
		return
	}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(25, 8, "Severity", "1", 0, "L", true, 0, "")
	pdf.CellFormat(55, 8, "Title", "1", 0, "L", true, 0, "")
	pdf.CellFormat(40, 8, "Transaction", "1", 0, "L", true, 0, "")
	pdf.CellFormat(35, 8, "Amount", "1", 1, "R", true, 0, "")

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 9)
	fill := false
	for _, a := range data.Anomalies {
		pdf.SetFillColor(tableGray[0], tableGray[1], tableGray[2])
		pdf.CellFormat(25, 8, string(a.Severity), "1", 0, "L", fill, 0, "")
		pdf.CellFormat(55, 8, a.Title, "1", 0, "L", fill, 0, "")
		pdf.CellFormat(40, 8, a.TransactionID, "1", 0, "L", fill, 0, "")
		pdf.CellFormat(35, 8, fmt.Sprintf("%d", a.Amount), "1", 1, "R", fill, 0, "")
		fill = !fill
	}
	pdf.Ln(4)
}

func (w *Writer) renderActionPlan(pdf *gofpdf.Fpdf, data *domain.IntelligenceData) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 10, "Action plan", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for i, step := range data.ActionPlan {
		pdf.MultiCell(0, 7, fmt.Sprintf("%d. %s", i+1, step), "", "L", false)
	}
}
