package main

import (
	"math"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ComputeDerivedCosts derives the hidden costs of a plan from the engine's
// result and the request parameters.
//
// Expense cost is a flat approximation: total invested × ratio × years, not
// a compounding drag. Nothing is clamped, so a real value above the final
// value gives a negative inflation cost.
func ComputeDerivedCosts(result PlanResult, params PlanParameters) DerivedCosts {
	var costs DerivedCosts
	if allFinite(result.TotalInvested, result.FinalValue, result.RealValueAfterInflation,
		params.ExpenseRatioPercent, params.ExitLoadPercent) {
		costs = decimalCosts(result, params)
	} else {
		// decimal cannot represent NaN or Inf; let them propagate as floats
		costs = DerivedCosts{
			ExpenseCost:   result.TotalInvested * (params.ExpenseRatioPercent / 100) * float64(params.Years),
			ExitCost:      result.FinalValue * (params.ExitLoadPercent / 100),
			InflationCost: result.FinalValue - result.RealValueAfterInflation,
		}
	}
	costs.TotalHiddenCost = costs.ExpenseCost + costs.ExitCost + costs.InflationCost
	return costs
}

func decimalCosts(result PlanResult, params PlanParameters) DerivedCosts {
	invested := decimal.NewFromFloat(result.TotalInvested)
	final := decimal.NewFromFloat(result.FinalValue)
	realValue := decimal.NewFromFloat(result.RealValueAfterInflation)

	expense := invested.
		Mul(decimal.NewFromFloat(params.ExpenseRatioPercent).Div(hundred)).
		Mul(decimal.NewFromInt(int64(params.Years)))
	exit := final.Mul(decimal.NewFromFloat(params.ExitLoadPercent).Div(hundred))
	inflation := final.Sub(realValue)

	return DerivedCosts{
		ExpenseCost:   expense.InexactFloat64(),
		ExitCost:      exit.InexactFloat64(),
		InflationCost: inflation.InexactFloat64(),
	}
}

func allFinite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Returns is the growth on top of what was invested
func Returns(result PlanResult) float64 {
	return result.FinalValue - result.TotalInvested
}
