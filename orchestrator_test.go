package main

import (
	"context"
	"errors"
	"maps"
	"testing"
	"time"
)

func TestPlanCalculator_DisplaysResultsAndCosts(t *testing.T) {
	params, result := samplePlan()
	engine := &fakeEngine{}
	engine.respond(result)
	app, sched := newTestApp(t, engine)

	costs, err := app.Calculator.Calculate(context.Background(), params)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if costs.TotalHiddenCost != 70000 {
		t.Errorf("total hidden cost = %v, want 70000", costs.TotalHiddenCost)
	}

	// Itemised costs are static: visible before any frame runs
	for f, want := range map[Field]string{
		FieldExpenseCost:   "10,000",
		FieldExitCost:      "10,000",
		FieldInflationCost: "50,000",
	} {
		if got := app.Board.Text(f); got != want {
			t.Errorf("%s = %q before frames, want %q", f, got, want)
		}
	}
	if got := app.Board.Text(FieldFinalValue); got != "" {
		t.Errorf("final value written before the first frame: %q", got)
	}

	sched.settle(t, t0)

	want := map[Field]string{
		FieldTotalInvested:   "1,00,000",
		FieldReturns:         "4,00,000",
		FieldFinalValue:      "5,00,000",
		FieldRealValue:       "4,50,000",
		FieldExpenseCost:     "10,000",
		FieldExitCost:        "10,000",
		FieldInflationCost:   "50,000",
		FieldTotalHiddenCost: "70,000",
	}
	snap := app.Snapshot()
	for f, w := range want {
		if got := snap.Text(f); got != w {
			t.Errorf("%s = %q, want %q", f, got, w)
		}
	}
	if snap.Animating {
		t.Error("snapshot still reports animating after settle")
	}
	if snap.Pulse != 1 {
		t.Errorf("pulse = %d, want 1", snap.Pulse)
	}
	if snap.Plan == nil || snap.Plan.MonthlyAmount != params.MonthlyAmount {
		t.Errorf("plan inputs not recorded: %+v", snap.Plan)
	}

	calls := engine.Calls()
	if len(calls) != 1 || calls[0].TaxPercent != nil {
		t.Errorf("expected one call without tax, got %+v", calls)
	}
}

func TestPlanCalculator_ResultAnimationsStartFromZero(t *testing.T) {
	params, result := samplePlan()
	engine := &fakeEngine{}
	engine.respond(result)
	app, sched := newTestApp(t, engine)

	if _, err := app.Calculator.Calculate(context.Background(), params); err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	sched.settle(t, t0)

	// Second run: result fields restart at zero
	if _, err := app.Calculator.Calculate(context.Background(), params); err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	sched.Step(t0.Add(time.Hour))
	for _, f := range []Field{FieldTotalInvested, FieldReturns, FieldFinalValue, FieldRealValue} {
		if got := app.Board.Text(f); got != "0" {
			t.Errorf("%s first frame = %q, want 0", f, got)
		}
	}
}

func TestPlanCalculator_HiddenCostContinuesFromPreviousTotal(t *testing.T) {
	params, result := samplePlan()
	engine := &fakeEngine{}
	engine.respond(result)
	app, sched := newTestApp(t, engine)

	if got := app.Board.PreviousHiddenCost(); got != 0 {
		t.Fatalf("previous hidden cost starts at %v, want 0", got)
	}

	if _, err := app.Calculator.Calculate(context.Background(), params); err != nil {
		t.Fatalf("first Calculate: %v", err)
	}
	sched.Step(t0)
	if got := app.Board.Text(FieldTotalHiddenCost); got != "0" {
		t.Errorf("first run starts hidden cost at %q, want 0", got)
	}
	now := sched.settle(t, t0)

	// Second run with a bigger plan: total = 20,000 + 20,000 + 1,00,000
	engine.respond(PlanResult{TotalInvested: 200000, FinalValue: 1000000, RealValueAfterInflation: 900000})
	costs, err := app.Calculator.Calculate(context.Background(), params)
	if err != nil {
		t.Fatalf("second Calculate: %v", err)
	}
	if costs.TotalHiddenCost != 140000 {
		t.Fatalf("second total = %v, want 140000", costs.TotalHiddenCost)
	}

	sched.Step(now.Add(time.Second))
	if got := app.Board.Text(FieldTotalHiddenCost); got != "70,000" {
		t.Errorf("second run starts hidden cost at %q, want the previous total 70,000", got)
	}

	sched.settle(t, now.Add(2*time.Second))
	if got := app.Board.Text(FieldTotalHiddenCost); got != "1,40,000" {
		t.Errorf("hidden cost settles at %q, want 1,40,000", got)
	}
	if got := app.Board.PreviousHiddenCost(); got != 140000 {
		t.Errorf("previous hidden cost = %v, want 140000", got)
	}
}

func TestPlanCalculator_FailureLeavesDisplayUntouched(t *testing.T) {
	params, result := samplePlan()
	engine := &fakeEngine{}
	engine.respond(result)
	app, sched := newTestApp(t, engine)

	if _, err := app.Calculator.Calculate(context.Background(), params); err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	now := sched.settle(t, t0)
	before := app.Board.Snapshot()
	chartBefore, _ := app.Chart.Current()

	engine.fail()
	_, err := app.Calculator.Calculate(context.Background(), params)
	if !errors.Is(err, ErrTransportOrParse) {
		t.Fatalf("expected ErrTransportOrParse, got %v", err)
	}
	sched.settle(t, now.Add(time.Second))

	after := app.Board.Snapshot()
	if !maps.Equal(before.Fields, after.Fields) {
		t.Errorf("fields changed on failure:\nbefore %v\nafter  %v", before.Fields, after.Fields)
	}
	if after.Pulse != before.Pulse {
		t.Errorf("pulse changed on failure: %d -> %d", before.Pulse, after.Pulse)
	}
	if after.Notice != CalculationFailedNotice || after.NoticeSeq != before.NoticeSeq+1 {
		t.Errorf("notice = %q (seq %d), want %q", after.Notice, after.NoticeSeq, CalculationFailedNotice)
	}
	if got := app.Board.PreviousHiddenCost(); got != 70000 {
		t.Errorf("previous hidden cost changed on failure: %v", got)
	}
	chartAfter, _ := app.Chart.Current()
	if chartAfter.ID() != chartBefore.ID() {
		t.Error("chart replaced on failure")
	}
}

func TestPlanCalculator_FailureOnFirstRunWritesNothing(t *testing.T) {
	engine := &fakeEngine{}
	engine.fail()
	app, sched := newTestApp(t, engine)

	params, _ := samplePlan()
	if _, err := app.Calculator.Calculate(context.Background(), params); err == nil {
		t.Fatal("expected an error")
	}
	if sched.Pending() != 0 {
		t.Errorf("animations scheduled on failure: %d", sched.Pending())
	}
	if snap := app.Board.Snapshot(); len(snap.Fields) != 0 || snap.Plan != nil {
		t.Errorf("display written on failure: %+v", snap)
	}
	if _, ok := app.Chart.Current(); ok {
		t.Error("chart created on failure")
	}
}

func TestPlanCalculator_ReplacesChart(t *testing.T) {
	params, result := samplePlan()
	engine := &fakeEngine{}
	engine.respond(result)
	app, _ := newTestApp(t, engine)

	if _, ok := app.Chart.Current(); ok {
		t.Fatal("chart exists before the first calculation")
	}

	if _, err := app.Calculator.Calculate(context.Background(), params); err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	first, ok := app.Chart.Current()
	if !ok {
		t.Fatal("no chart after the first calculation")
	}
	ds := first.Dataset()
	if len(ds.Slices) != 2 || ds.Slices[0].Value != 100000 || ds.Slices[1].Value != 400000 {
		t.Errorf("dataset = %+v, want invested 100000 / returns 400000", ds)
	}
	if ds.Slices[0].Color != app.Config.Display.InvestedColor || ds.Slices[1].Color != app.Config.Display.ReturnsColor {
		t.Errorf("slice colours = %q/%q", ds.Slices[0].Color, ds.Slices[1].Color)
	}

	if _, err := app.Calculator.Calculate(context.Background(), params); err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	second, _ := app.Chart.Current()
	if second.ID() == first.ID() {
		t.Error("chart was not replaced")
	}
	if !first.(*ChartInstance).Destroyed() {
		t.Error("previous chart was not destroyed")
	}
	if second.(*ChartInstance).Destroyed() {
		t.Error("current chart is destroyed")
	}
}
