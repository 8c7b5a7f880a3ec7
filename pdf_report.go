package main

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"
)

// Page layout (mm)
const (
	marginLeft   = 14.0
	marginTop    = 20.0
	marginRight  = 14.0
	marginBottom = 15.0
	contentWidth = 210.0 - marginLeft - marginRight
	labelWidth   = 95.0
)

// Report file names offered for download
const (
	SIPReportFilename        = "WealthLens_SIP_Report.pdf"
	ComparisonReportFilename = "WealthLens_Comparison_Report.pdf"
)

// PDFReport renders displayed figures to a document. It never computes
// anything: every value comes from the snapshot or the recorded inputs.
type PDFReport struct {
	pdf      *fpdf.Fpdf
	tr       func(string) string
	currency string
}

func newPDFReport(currency string) *PDFReport {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(marginLeft, marginTop, marginRight)
	pdf.SetAutoPageBreak(true, marginBottom)
	pdf.AddPage()

	if currency == "" {
		currency = "Rs"
	}
	return &PDFReport{
		pdf:      pdf,
		tr:       pdf.UnicodeTranslatorFromDescriptor(""),
		currency: currency,
	}
}

// GenerateSIPReport renders the plan inputs and the displayed results and
// hidden costs
func GenerateSIPReport(snapshot DisplaySnapshot, params PlanParameters, currency string) ([]byte, error) {
	r := newPDFReport(currency)

	r.drawTitle("WealthLens – SIP Report")
	r.drawCommonInputs(params)

	r.drawSectionHeader("Results")
	r.drawMoneyRow("Final Value", snapshot.Text(FieldFinalValue))
	r.drawMoneyRow("Returns", snapshot.Text(FieldReturns))
	r.drawMoneyRow("Total Invested", snapshot.Text(FieldTotalInvested))
	r.drawMoneyRow("Real Value (After Inflation)", snapshot.Text(FieldRealValue))
	r.pdf.Ln(4)

	r.drawSectionHeader("Hidden Costs")
	r.drawMoneyRow("Expense Ratio Cost", snapshot.Text(FieldExpenseCost))
	r.drawMoneyRow("Exit Load", snapshot.Text(FieldExitCost))
	r.drawMoneyRow("Inflation Erosion", snapshot.Text(FieldInflationCost))
	r.drawRow("Total Hidden Cost", r.money(snapshot.Text(FieldTotalHiddenCost)), true)

	r.drawFooter()
	return r.output()
}

// GenerateComparisonReport renders both strategies and the wealth difference
func GenerateComparisonReport(snapshot DisplaySnapshot, inputs ComparisonInputs, currency string) ([]byte, error) {
	r := newPDFReport(currency)

	r.drawTitle("WealthLens – Strategy Comparison Report")
	r.drawCommonInputs(inputs.Base)

	r.drawStrategy("Strategy A", inputs.StrategyA, snapshot.Text(FieldStrategyAFinal))
	r.drawStrategy("Strategy B", inputs.StrategyB, snapshot.Text(FieldStrategyBFinal))

	r.drawSectionHeader("Wealth Difference")
	r.setSignColor(snapshot.Classes[FieldDifference])
	r.drawRow("Difference", r.money(snapshot.Text(FieldDifference)), true)
	r.pdf.SetTextColor(50, 50, 50)

	r.drawFooter()
	return r.output()
}

func (r *PDFReport) drawTitle(title string) {
	r.pdf.SetFont("Helvetica", "B", 18)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(contentWidth, 10, r.tr(title), "", 1, "L", false, 0, "")

	r.pdf.SetFont("Helvetica", "I", 10)
	r.pdf.SetTextColor(110, 110, 110)
	r.pdf.CellFormat(contentWidth, 6, fmt.Sprintf("Generated: %s", time.Now().Format("2 January 2006")), "", 1, "L", false, 0, "")
	r.pdf.Ln(6)
}

func (r *PDFReport) drawCommonInputs(p PlanParameters) {
	r.drawSectionHeader("Inputs")
	r.drawRow("Monthly Investment", r.money(formatInput(p.MonthlyAmount)), false)
	r.drawRow("Years", strconv.Itoa(p.Years), false)
	r.drawRow("Expected Return", formatInput(p.ExpectedReturnPercent)+"%", false)
	r.drawRow("Inflation", formatInput(p.InflationPercent)+"%", false)
	r.pdf.Ln(4)
}

func (r *PDFReport) drawStrategy(title string, costs StrategyCosts, finalText string) {
	r.drawSectionHeader(title)
	r.drawRow("Expense Ratio", formatInput(costs.ExpenseRatioPercent)+"%", false)
	r.drawRow("Exit Load", formatInput(costs.ExitLoadPercent)+"%", false)
	r.drawRow("Tax", formatInput(costs.TaxPercent)+"%", false)
	r.drawMoneyRow("Final Value", finalText)
	r.pdf.Ln(4)
}

func (r *PDFReport) drawSectionHeader(title string) {
	r.pdf.SetFont("Helvetica", "B", 14)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(contentWidth, 9, r.tr(title), "", 1, "L", false, 0, "")
	r.pdf.SetDrawColor(0, 51, 102)
	r.pdf.Line(marginLeft, r.pdf.GetY(), marginLeft+contentWidth, r.pdf.GetY())
	r.pdf.Ln(3)
	r.pdf.SetTextColor(50, 50, 50)
}

func (r *PDFReport) drawMoneyRow(label, displayed string) {
	r.drawRow(label, r.money(displayed), false)
}

func (r *PDFReport) drawRow(label, value string, isBold bool) {
	style := ""
	if isBold {
		style = "B"
	}
	r.pdf.SetFont("Helvetica", style, 12)
	r.pdf.CellFormat(labelWidth, 8, r.tr(label+":"), "", 0, "L", false, 0, "")
	r.pdf.CellFormat(contentWidth-labelWidth, 8, r.tr(value), "", 1, "L", false, 0, "")
}

func (r *PDFReport) setSignColor(class string) {
	switch class {
	case SignPositive.String():
		r.pdf.SetTextColor(22, 130, 60)
	case SignNegative.String():
		r.pdf.SetTextColor(190, 30, 45)
	}
}

func (r *PDFReport) drawFooter() {
	r.pdf.Ln(10)
	r.pdf.SetFont("Helvetica", "I", 9)
	r.pdf.SetTextColor(120, 120, 120)
	r.pdf.MultiCell(contentWidth, 5,
		"Projections come from the calculation service; hidden costs are simplified estimates. "+
			"This is not financial advice.", "", "L", false)
}

// money prefixes a displayed amount; an empty display shows as a dash
func (r *PDFReport) money(displayed string) string {
	if displayed == "" {
		return "-"
	}
	return r.currency + " " + displayed
}

func (r *PDFReport) output() ([]byte, error) {
	var buf bytes.Buffer
	if err := r.pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// formatInput prints an input value the way it was entered
func formatInput(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
