package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseMoney(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"5000", 5000},
		{"5k", 5000},
		{"2.5L", 250000},
		{"1cr", 10000000},
		{"Rs 12,500", 12500},
		{"₹1,00,000", 100000},
	}
	for _, tc := range tests {
		got, err := parseMoney(tc.in)
		if err != nil {
			t.Errorf("parseMoney(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("parseMoney(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}

	if _, err := parseMoney("lots"); err == nil {
		t.Error("expected an error for non-numeric input")
	}
}

func TestParsePercent(t *testing.T) {
	for in, want := range map[string]float64{"12": 12, "12%": 12, " 0.5 % ": 0.5, "-2%": -2} {
		got, err := parsePercent(in)
		if err != nil || got != want {
			t.Errorf("parsePercent(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
}

func TestPlanPrompter_PromptPlan(t *testing.T) {
	defaults, _ := samplePlan()
	// monthly, years, return, step-up, inflation, expense, exit
	input := strings.Join([]string{"25k", "", "14%", "abc", "", "0.5", "1"}, "\n") + "\n"
	var out bytes.Buffer

	got := NewPlanPrompter(strings.NewReader(input), &out).PromptPlan(defaults)

	want := PlanParameters{
		MonthlyAmount:         25000,
		Years:                 defaults.Years,
		ExpectedReturnPercent: 14,
		StepUpPercent:         defaults.StepUpPercent,
		InflationPercent:      defaults.InflationPercent,
		ExpenseRatioPercent:   0.5,
		ExitLoadPercent:       1,
	}
	if got != want {
		t.Errorf("PromptPlan = %+v, want %+v", got, want)
	}
	if !strings.Contains(out.String(), "Invalid percentage") {
		t.Error("expected a warning for the invalid step-up answer")
	}
}

func TestPlanPrompter_EOFKeepsDefaults(t *testing.T) {
	defaults := StrategyCosts{ExpenseRatioPercent: 1, ExitLoadPercent: 0.5, TaxPercent: 10}
	p := NewPlanPrompter(strings.NewReader(""), &bytes.Buffer{})

	if got := p.PromptStrategy("Strategy A", defaults); got != defaults {
		t.Errorf("PromptStrategy = %+v, want defaults", got)
	}
	if p.promptYesNo("Again?", false) {
		t.Error("expected default no on EOF")
	}
}

func TestPlanPrompter_YesNo(t *testing.T) {
	p := NewPlanPrompter(strings.NewReader("y\nNO\nmaybe\n"), &bytes.Buffer{})
	if !p.promptYesNo("q1", false) {
		t.Error("y should be yes")
	}
	if p.promptYesNo("q2", true) {
		t.Error("NO should be no")
	}
	if !p.promptYesNo("q3", true) {
		t.Error("unrecognised answer should keep the default")
	}
}
