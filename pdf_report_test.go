package main

import (
	"bytes"
	"testing"
)

func TestGenerateSIPReport(t *testing.T) {
	board := NewBoard()
	for f, v := range map[Field]string{
		FieldTotalInvested:   "1,00,000",
		FieldReturns:         "4,00,000",
		FieldFinalValue:      "5,00,000",
		FieldRealValue:       "4,50,000",
		FieldExpenseCost:     "10,000",
		FieldExitCost:        "10,000",
		FieldInflationCost:   "50,000",
		FieldTotalHiddenCost: "70,000",
	} {
		board.SetText(f, v)
	}
	params, _ := samplePlan()

	data, err := GenerateSIPReport(board.Snapshot(), params, "Rs")
	if err != nil {
		t.Fatalf("GenerateSIPReport: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Error("output is not a PDF")
	}
}

func TestGenerateComparisonReport(t *testing.T) {
	board := NewBoard()
	board.SetText(FieldStrategyAFinal, "10,00,000")
	board.SetText(FieldStrategyBFinal, "10,50,000")
	board.SetText(FieldDifference, "50,000")
	board.SetClass(FieldDifference, "positive")

	base, _ := samplePlan()
	inputs := ComparisonInputs{
		Base:      base,
		StrategyA: StrategyCosts{ExpenseRatioPercent: 1.5, ExitLoadPercent: 1, TaxPercent: 10},
		StrategyB: StrategyCosts{ExpenseRatioPercent: 0.5, TaxPercent: 10},
	}

	data, err := GenerateComparisonReport(board.Snapshot(), inputs, "")
	if err != nil {
		t.Fatalf("GenerateComparisonReport: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Error("output is not a PDF")
	}
}

func TestPDFReport_EmptyDisplayStillRenders(t *testing.T) {
	params, _ := samplePlan()
	if _, err := GenerateSIPReport(NewBoard().Snapshot(), params, "Rs"); err != nil {
		t.Errorf("empty display: %v", err)
	}
}
