package main

import "fmt"

// PlanParameters are the inputs of a recurring investment plan.
// Percentages are whole numbers (12 means 12%): the engine receives them
// as-is and local derivations divide by 100.
type PlanParameters struct {
	MonthlyAmount         float64  `json:"monthly_amount"`
	Years                 int      `json:"years"`
	ExpectedReturnPercent float64  `json:"expected_return"`
	StepUpPercent         float64  `json:"step_up_percent"`
	InflationPercent      float64  `json:"inflation_percentage"`
	ExpenseRatioPercent   float64  `json:"expense_ratio"`
	ExitLoadPercent       float64  `json:"exit_load"`
	TaxPercent            *float64 `json:"tax_percentage,omitempty"` // Comparison only
}

// WithCosts returns a copy of p carrying one strategy's cost parameters
func (p PlanParameters) WithCosts(c StrategyCosts) PlanParameters {
	tax := c.TaxPercent
	p.ExpenseRatioPercent = c.ExpenseRatioPercent
	p.ExitLoadPercent = c.ExitLoadPercent
	p.TaxPercent = &tax
	return p
}

func (p PlanParameters) String() string {
	return fmt.Sprintf("%.0f/month for %d years @ %g%% (step-up %g%%, inflation %g%%)",
		p.MonthlyAmount, p.Years, p.ExpectedReturnPercent, p.StepUpPercent, p.InflationPercent)
}

// StrategyCosts is one side of a strategy comparison
type StrategyCosts struct {
	ExpenseRatioPercent float64 `json:"expense_ratio"`
	ExitLoadPercent     float64 `json:"exit_load"`
	TaxPercent          float64 `json:"tax_percentage"`
}

// PlanResult is what the remote engine computed for a plan
type PlanResult struct {
	TotalInvested           float64 `json:"total_invested"`
	FinalValue              float64 `json:"final_value"`
	RealValueAfterInflation float64 `json:"real_value_after_inflation"`
}

// DerivedCosts are the locally derived hidden costs of a plan.
// Values are not clamped and may be negative.
type DerivedCosts struct {
	ExpenseCost     float64 `json:"expense_cost"`
	ExitCost        float64 `json:"exit_cost"`
	InflationCost   float64 `json:"inflation_cost"`
	TotalHiddenCost float64 `json:"total_hidden_cost"`
}

// Sign classifies a comparison difference
type Sign int

const (
	SignPositive Sign = iota // difference >= 0
	SignNegative
)

func (s Sign) String() string {
	switch s {
	case SignPositive:
		return "positive"
	case SignNegative:
		return "negative"
	default:
		return "unknown"
	}
}

// ClassifyDifference returns positive for zero or more, negative otherwise
func ClassifyDifference(diff float64) Sign {
	if diff >= 0 {
		return SignPositive
	}
	return SignNegative
}

// ComparisonOutcome is the result of comparing two strategies
type ComparisonOutcome struct {
	StrategyAFinal float64 `json:"strategy_a_final"`
	StrategyBFinal float64 `json:"strategy_b_final"`
	Difference     float64 `json:"difference"` // B - A
	Sign           Sign    `json:"-"`
}

// NewComparisonOutcome builds an outcome from both final values
func NewComparisonOutcome(aFinal, bFinal float64) ComparisonOutcome {
	diff := bFinal - aFinal
	return ComparisonOutcome{
		StrategyAFinal: aFinal,
		StrategyBFinal: bFinal,
		Difference:     diff,
		Sign:           ClassifyDifference(diff),
	}
}

// Field identifies a displayed value
type Field string

const (
	FieldTotalInvested   Field = "totalInvested"
	FieldReturns         Field = "returnsValue"
	FieldFinalValue      Field = "finalValue"
	FieldRealValue       Field = "realValue"
	FieldExpenseCost     Field = "expenseCost"
	FieldExitCost        Field = "exitCost"
	FieldInflationCost   Field = "inflationCost"
	FieldTotalHiddenCost Field = "totalHiddenCost"
	FieldStrategyAFinal  Field = "a_final"
	FieldStrategyBFinal  Field = "b_final"
	FieldDifference      Field = "difference"
)

// ResultFields are the plan result cards, in display order
var ResultFields = []Field{
	FieldTotalInvested, FieldReturns, FieldFinalValue, FieldRealValue,
	FieldExpenseCost, FieldExitCost, FieldInflationCost, FieldTotalHiddenCost,
}

// ComparisonFields are the comparison panel values
var ComparisonFields = []Field{FieldStrategyAFinal, FieldStrategyBFinal, FieldDifference}
