package main

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// StrategyComparator runs the same plan under two cost strategies and
// shows how far apart their final values land
type StrategyComparator struct {
	engine    Engine
	board     *Board
	formatter *LocaleFormatter
	notifier  Notifier
	logger    *slog.Logger
}

// NewStrategyComparator wires a comparator. notifier defaults to the board.
func NewStrategyComparator(engine Engine, board *Board, formatter *LocaleFormatter, notifier Notifier, logger *slog.Logger) *StrategyComparator {
	if notifier == nil {
		notifier = board
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &StrategyComparator{
		engine:    engine,
		board:     board,
		formatter: formatter,
		notifier:  notifier,
		logger:    logger,
	}
}

// Compare issues both engine calls concurrently. If either fails nothing is
// written to the display.
func (sc *StrategyComparator) Compare(ctx context.Context, base PlanParameters, a, b StrategyCosts) (ComparisonOutcome, error) {
	var resultA, resultB PlanResult

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		resultA, err = sc.engine.Calculate(gctx, base.WithCosts(a))
		return err
	})
	g.Go(func() error {
		var err error
		resultB, err = sc.engine.Calculate(gctx, base.WithCosts(b))
		return err
	})

	if err := g.Wait(); err != nil {
		sc.logger.Error("strategy comparison failed", "error", err)
		sc.notifier.Notify(ComparisonFailedNotice)
		return ComparisonOutcome{}, err
	}

	outcome := NewComparisonOutcome(resultA.FinalValue, resultB.FinalValue)

	sc.board.SetText(FieldStrategyAFinal, sc.formatter.Format(outcome.StrategyAFinal))
	sc.board.SetText(FieldStrategyBFinal, sc.formatter.Format(outcome.StrategyBFinal))
	sc.board.SetText(FieldDifference, sc.formatter.Format(outcome.Difference))
	sc.board.SetClass(FieldDifference, outcome.Sign.String())
	sc.board.SetComparisonInputs(ComparisonInputs{Base: base, StrategyA: a, StrategyB: b})

	sc.logger.Info("strategies compared",
		"strategy_a_final", outcome.StrategyAFinal,
		"strategy_b_final", outcome.StrategyBFinal,
		"difference", outcome.Difference,
		"sign", outcome.Sign.String())
	return outcome, nil
}
