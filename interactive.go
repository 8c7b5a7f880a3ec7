package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// PlanPrompter asks for plan inputs on a terminal. Empty answers keep the
// default; unparseable answers keep it too, with a warning.
type PlanPrompter struct {
	reader *bufio.Reader
	out    io.Writer
}

// NewPlanPrompter creates a prompter reading answers from in
func NewPlanPrompter(in io.Reader, out io.Writer) *PlanPrompter {
	return &PlanPrompter{reader: bufio.NewReader(in), out: out}
}

// parseMoney parses amounts like "5000", "5k", "2.5L" (lakh) or "1cr" (crore)
func parseMoney(input string) (float64, error) {
	input = strings.TrimSpace(strings.ToLower(input))
	input = strings.TrimPrefix(input, "rs")
	input = strings.TrimPrefix(input, "₹")
	input = strings.ReplaceAll(strings.TrimSpace(input), ",", "")

	multiplier := 1.0
	switch {
	case strings.HasSuffix(input, "cr"):
		multiplier = 10000000
		input = strings.TrimSuffix(input, "cr")
	case strings.HasSuffix(input, "l"):
		multiplier = 100000
		input = strings.TrimSuffix(input, "l")
	case strings.HasSuffix(input, "k"):
		multiplier = 1000
		input = strings.TrimSuffix(input, "k")
	}

	val, err := strconv.ParseFloat(strings.TrimSpace(input), 64)
	if err != nil {
		return 0, err
	}
	return val * multiplier, nil
}

// parsePercent parses "12" or "12%" as the whole-number percentage 12
func parsePercent(input string) (float64, error) {
	input = strings.TrimSuffix(strings.TrimSpace(input), "%")
	return strconv.ParseFloat(strings.TrimSpace(input), 64)
}

func (p *PlanPrompter) ask(prompt, defaultVal string) string {
	fmt.Fprintf(p.out, "%s [%s]: ", prompt, defaultVal)
	input, _ := p.reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func (p *PlanPrompter) promptMoney(prompt string, defaultVal float64) float64 {
	input := p.ask(prompt, formatInput(defaultVal))
	if input == "" {
		return defaultVal
	}
	val, err := parseMoney(input)
	if err != nil {
		fmt.Fprintf(p.out, "  ✗ Invalid amount, using default: %s\n", formatInput(defaultVal))
		return defaultVal
	}
	return val
}

func (p *PlanPrompter) promptInt(prompt string, defaultVal int) int {
	input := p.ask(prompt, strconv.Itoa(defaultVal))
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil {
		fmt.Fprintf(p.out, "  ✗ Invalid number, using default: %d\n", defaultVal)
		return defaultVal
	}
	return val
}

func (p *PlanPrompter) promptPercent(prompt string, defaultVal float64) float64 {
	input := p.ask(prompt+" (%)", formatInput(defaultVal))
	if input == "" {
		return defaultVal
	}
	val, err := parsePercent(input)
	if err != nil {
		fmt.Fprintf(p.out, "  ✗ Invalid percentage, using default: %s%%\n", formatInput(defaultVal))
		return defaultVal
	}
	return val
}

// promptYesNo returns defaultVal on an empty answer
func (p *PlanPrompter) promptYesNo(prompt string, defaultVal bool) bool {
	def := "y/N"
	if defaultVal {
		def = "Y/n"
	}
	switch strings.ToLower(p.ask(prompt, def)) {
	case "y", "yes":
		return true
	case "n", "no":
		return false
	default:
		return defaultVal
	}
}

// PromptPlan asks for every plan input
func (p *PlanPrompter) PromptPlan(defaults PlanParameters) PlanParameters {
	fmt.Fprintln(p.out, "SIP plan")
	fmt.Fprintln(p.out, "────────")
	return PlanParameters{
		MonthlyAmount:         p.promptMoney("Monthly investment", defaults.MonthlyAmount),
		Years:                 p.promptInt("Years", defaults.Years),
		ExpectedReturnPercent: p.promptPercent("Expected return", defaults.ExpectedReturnPercent),
		StepUpPercent:         p.promptPercent("Annual step-up", defaults.StepUpPercent),
		InflationPercent:      p.promptPercent("Inflation", defaults.InflationPercent),
		ExpenseRatioPercent:   p.promptPercent("Expense ratio", defaults.ExpenseRatioPercent),
		ExitLoadPercent:       p.promptPercent("Exit load", defaults.ExitLoadPercent),
	}
}

// PromptStrategy asks for one comparison side's costs
func (p *PlanPrompter) PromptStrategy(label string, defaults StrategyCosts) StrategyCosts {
	fmt.Fprintln(p.out, label)
	return StrategyCosts{
		ExpenseRatioPercent: p.promptPercent("  Expense ratio", defaults.ExpenseRatioPercent),
		ExitLoadPercent:     p.promptPercent("  Exit load", defaults.ExitLoadPercent),
		TaxPercent:          p.promptPercent("  Tax", defaults.TaxPercent),
	}
}
