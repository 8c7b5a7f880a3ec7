package main

import (
	"bytes"
	"html/template"
	"time"
)

// HTMLReportFilename is the single-page report offered alongside the PDFs
const HTMLReportFilename = "WealthLens_Report.html"

type htmlRow struct {
	Label string
	Value string
	Class string
}

type htmlReportData struct {
	Generated  string
	Plan       []htmlRow
	Results    []htmlRow
	Costs      []htmlRow
	Comparison []htmlRow
	Bar        []htmlBarSegment
}

type htmlBarSegment struct {
	Class   string
	Percent float64
}

var htmlReportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>WealthLens Report</title>
    <style>
        :root {
            --primary: #0f172a;
            --gold: #d4af37;
            --success: #16a34a;
            --danger: #dc2626;
            --bg: #f8fafc;
            --card-bg: #ffffff;
            --text: #1e293b;
            --text-muted: #64748b;
            --border: #e2e8f0;
        }
        * { box-sizing: border-box; margin: 0; padding: 0; }
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            background: var(--bg);
            color: var(--text);
            line-height: 1.6;
            padding: 2rem;
        }
        .container { max-width: 900px; margin: 0 auto; }
        h1 { font-size: 1.75rem; color: var(--primary); }
        h2 {
            font-size: 1.15rem;
            margin: 1.5rem 0 0.75rem;
            padding-bottom: 0.4rem;
            border-bottom: 2px solid var(--gold);
        }
        .subtitle { color: var(--text-muted); margin-bottom: 1.5rem; }
        .card {
            background: var(--card-bg);
            border-radius: 8px;
            box-shadow: 0 1px 3px rgba(0,0,0,0.1);
            padding: 1.25rem 1.5rem;
            margin-bottom: 1rem;
        }
        table { width: 100%; border-collapse: collapse; }
        td { padding: 0.35rem 0; border-bottom: 1px solid var(--border); }
        td.value { text-align: right; font-variant-numeric: tabular-nums; }
        .positive { color: var(--success); font-weight: 600; }
        .negative { color: var(--danger); font-weight: 600; }
        .bar { display: flex; height: 14px; border-radius: 7px; overflow: hidden; margin-top: 0.75rem; }
        .bar .invested { background: #94a3b8; }
        .bar .returns { background: var(--gold); }
        .footer { color: var(--text-muted); font-size: 0.8rem; margin-top: 2rem; }
    </style>
</head>
<body>
<div class="container">
    <h1>WealthLens Report</h1>
    <p class="subtitle">Generated {{.Generated}}</p>
{{- define "rows"}}
        <table>
        {{- range .}}
            <tr><td>{{.Label}}</td><td class="value {{.Class}}">{{.Value}}</td></tr>
        {{- end}}
        </table>
{{- end}}
{{- if .Plan}}
    <h2>Plan</h2>
    <div class="card">{{template "rows" .Plan}}</div>
{{- end}}
{{- if .Results}}
    <h2>Results</h2>
    <div class="card">{{template "rows" .Results}}
        {{- if .Bar}}
        <div class="bar">
        {{- range .Bar}}
            <div class="{{.Class}}" style="width: {{printf "%.1f" .Percent}}%"></div>
        {{- end}}
        </div>
        {{- end}}
    </div>
    <h2>Hidden Costs</h2>
    <div class="card">{{template "rows" .Costs}}</div>
{{- end}}
{{- if .Comparison}}
    <h2>Strategy Comparison</h2>
    <div class="card">{{template "rows" .Comparison}}</div>
{{- end}}
    <p class="footer">Projections come from the calculation service; hidden costs are simplified estimates. This is not financial advice.</p>
</div>
</body>
</html>
`))

// GenerateHTMLReport renders everything currently displayed to a single
// page. Sections without data are left out. dataset may be nil when no
// chart has been drawn yet.
func GenerateHTMLReport(snapshot DisplaySnapshot, dataset *ChartDataset, currency string) ([]byte, error) {
	if currency == "" {
		currency = "Rs"
	}
	money := func(f Field) string {
		if v := snapshot.Text(f); v != "" {
			return currency + " " + v
		}
		return "-"
	}
	rows := func(labels map[Field]string, order []Field) []htmlRow {
		out := make([]htmlRow, 0, len(order))
		for _, f := range order {
			out = append(out, htmlRow{Label: labels[f], Value: money(f), Class: snapshot.Classes[f]})
		}
		return out
	}

	data := htmlReportData{Generated: time.Now().Format("02 Jan 2006 15:04")}

	if p := snapshot.Plan; p != nil {
		data.Plan = []htmlRow{
			{Label: "Monthly Investment", Value: currency + " " + formatInput(p.MonthlyAmount)},
			{Label: "Years", Value: formatInput(float64(p.Years))},
			{Label: "Expected Return", Value: formatInput(p.ExpectedReturnPercent) + "%"},
			{Label: "Annual Step-up", Value: formatInput(p.StepUpPercent) + "%"},
			{Label: "Inflation", Value: formatInput(p.InflationPercent) + "%"},
			{Label: "Expense Ratio", Value: formatInput(p.ExpenseRatioPercent) + "%"},
			{Label: "Exit Load", Value: formatInput(p.ExitLoadPercent) + "%"},
		}
		data.Results = rows(resultLabels, ResultFields[:4])
		data.Costs = rows(resultLabels, ResultFields[4:])
	}

	if dataset != nil {
		shares := dataset.Share()
		for i, s := range dataset.Slices {
			if shares[i] > 0 {
				data.Bar = append(data.Bar, htmlBarSegment{Class: barClass(s.Label), Percent: min(shares[i], 1) * 100})
			}
		}
	}

	if snapshot.Comparison != nil {
		data.Comparison = rows(resultLabels, ComparisonFields)
	}

	var buf bytes.Buffer
	if err := htmlReportTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// resultLabels are the captions shown next to each displayed field
var resultLabels = map[Field]string{
	FieldTotalInvested:   "Total Invested",
	FieldReturns:         "Returns",
	FieldFinalValue:      "Final Value",
	FieldRealValue:       "Real Value (After Inflation)",
	FieldExpenseCost:     "Expense Ratio Cost",
	FieldExitCost:        "Exit Load",
	FieldInflationCost:   "Inflation Erosion",
	FieldTotalHiddenCost: "Total Hidden Cost",
	FieldStrategyAFinal:  "Strategy A Final Value",
	FieldStrategyBFinal:  "Strategy B Final Value",
	FieldDifference:      "Difference (B - A)",
}

func barClass(label string) string {
	if label == "Invested" {
		return "invested"
	}
	return "returns"
}
