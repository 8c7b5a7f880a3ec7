package main

import (
	"net/http"
	"strings"
	"testing"
)

func TestGenerateHTMLReport_EmptyDisplay(t *testing.T) {
	data, err := GenerateHTMLReport(NewBoard().Snapshot(), nil, "")
	if err != nil {
		t.Fatalf("GenerateHTMLReport: %v", err)
	}
	html := string(data)
	if !strings.Contains(html, "<title>WealthLens Report</title>") {
		t.Error("missing title")
	}
	for _, section := range []string{"<h2>Plan</h2>", "<h2>Results</h2>", "<h2>Strategy Comparison</h2>"} {
		if strings.Contains(html, section) {
			t.Errorf("empty display rendered %s", section)
		}
	}
}

func TestGenerateHTMLReport_ResultsAndComparison(t *testing.T) {
	board := NewBoard()
	params, _ := samplePlan()
	board.SetPlanInputs(params)
	board.SetText(FieldFinalValue, "5,00,000")
	board.SetText(FieldTotalHiddenCost, "70,000")
	board.SetText(FieldDifference, "-25,000")
	board.SetClass(FieldDifference, "negative")
	board.SetComparisonInputs(ComparisonInputs{Base: params})

	dataset := ProportionDataset(100000, 400000, "", "")
	data, err := GenerateHTMLReport(board.Snapshot(), &dataset, "Rs")
	if err != nil {
		t.Fatalf("GenerateHTMLReport: %v", err)
	}
	html := string(data)

	for _, want := range []string{
		"Rs 5,00,000",
		"Rs 70,000",
		`class="value negative">Rs -25,000`,
		"width: 20.0%",
		"width: 80.0%",
		"Rs 10000",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestWebServer_ExportHTML(t *testing.T) {
	_, result := samplePlan()
	engine := &fakeEngine{}
	engine.respond(result)
	_, sched, h := newTestServer(t, engine)

	doRequest(h, http.MethodPost, "/api/calculate", `{"monthly_amount": 10000, "years": 10, "expense_ratio": 1, "exit_load": 2}`)
	sched.settle(t, t0)

	w := doRequest(h, http.MethodGet, "/api/export-html", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, HTMLReportFilename) {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if !strings.Contains(w.Body.String(), "5,00,000") {
		t.Error("report does not show the final value")
	}
}
