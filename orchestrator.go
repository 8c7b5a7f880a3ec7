package main

import (
	"context"
	"log/slog"
)

// Notices shown when an orchestration fails
const (
	CalculationFailedNotice = "Calculation failed. Check backend connection."
	ComparisonFailedNotice  = "Comparison failed."
)

// PlanCalculator turns plan parameters into displayed results: it calls the
// engine, derives the hidden costs, animates the result fields and rebuilds
// the proportion chart. A failed call leaves the display untouched.
type PlanCalculator struct {
	engine    Engine
	board     *Board
	animator  *Animator
	chart     *ChartSlot
	formatter *LocaleFormatter
	notifier  Notifier
	display   DisplayConfig
	logger    *slog.Logger
}

// NewPlanCalculator wires a calculator. notifier defaults to the board.
func NewPlanCalculator(engine Engine, board *Board, animator *Animator, chart *ChartSlot,
	formatter *LocaleFormatter, notifier Notifier, display DisplayConfig, logger *slog.Logger) *PlanCalculator {
	if notifier == nil {
		notifier = board
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PlanCalculator{
		engine:    engine,
		board:     board,
		animator:  animator,
		chart:     chart,
		formatter: formatter,
		notifier:  notifier,
		display:   display,
		logger:    logger,
	}
}

// Calculate runs one plan calculation and returns the derived costs
func (pc *PlanCalculator) Calculate(ctx context.Context, params PlanParameters) (DerivedCosts, error) {
	result, err := pc.engine.Calculate(ctx, params)
	if err != nil {
		pc.logger.Error("plan calculation failed", "error", err)
		pc.notifier.Notify(CalculationFailedNotice)
		return DerivedCosts{}, err
	}

	returns := Returns(result)
	costs := ComputeDerivedCosts(result, params)
	previousTotal := pc.board.SwapPreviousHiddenCost(costs.TotalHiddenCost)

	pc.animator.AnimateBatch(
		pc.animator.NewSession(FieldTotalInvested, 0, result.TotalInvested),
		pc.animator.NewSession(FieldReturns, 0, returns),
		pc.animator.NewSession(FieldFinalValue, 0, result.FinalValue),
		pc.animator.NewSession(FieldRealValue, 0, result.RealValueAfterInflation),
		pc.animator.NewSession(FieldTotalHiddenCost, previousTotal, costs.TotalHiddenCost),
	)

	pc.board.SetText(FieldExpenseCost, pc.formatter.Format(costs.ExpenseCost))
	pc.board.SetText(FieldExitCost, pc.formatter.Format(costs.ExitCost))
	pc.board.SetText(FieldInflationCost, pc.formatter.Format(costs.InflationCost))
	pc.board.SetPlanInputs(params)
	pc.board.Pulse()

	dataset := ProportionDataset(result.TotalInvested, returns, pc.display.InvestedColor, pc.display.ReturnsColor)
	if err := pc.chart.Replace(dataset); err != nil {
		pc.logger.Warn("chart rebuild failed", "error", err)
	}

	pc.logger.Info("plan calculated",
		"final_value", result.FinalValue,
		"returns", returns,
		"total_hidden_cost", costs.TotalHiddenCost)
	return costs, nil
}
