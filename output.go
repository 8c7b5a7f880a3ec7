package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"
)

// PrintHeader prints the console banner
func PrintHeader(w io.Writer, config *Config) {
	fmt.Fprintln(w, "╔══════════════════════════════════════════════════════════════════════════════╗")
	fmt.Fprintln(w, "║                 WEALTHLENS – SIP PROJECTION & HIDDEN COSTS                   ║")
	fmt.Fprintln(w, "╚══════════════════════════════════════════════════════════════════════════════╝")
	fmt.Fprintf(w, "  Calculation service: %s\n\n", config.Engine.APIBase)
}

// TerminalNotifier prints notices to the console
type TerminalNotifier struct {
	Out io.Writer
}

func (n TerminalNotifier) Notify(message string) {
	fmt.Fprintf(n.Out, "\n  ✗ %s\n", message)
}

// animatedLine is the one-line live view redrawn while values settle
func animatedLine(snap DisplaySnapshot) string {
	return fmt.Sprintf("  Invested %s │ Returns %s │ Final %s │ Real %s │ Hidden %s",
		orDash(snap.Text(FieldTotalInvested)),
		orDash(snap.Text(FieldReturns)),
		orDash(snap.Text(FieldFinalValue)),
		orDash(snap.Text(FieldRealValue)),
		orDash(snap.Text(FieldTotalHiddenCost)))
}

// WatchAnimation redraws the live line every interval until no animation is
// running or ctx ends
func WatchAnimation(ctx context.Context, app *App, w io.Writer, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		snap := app.Snapshot()
		fmt.Fprintf(w, "\r\033[K%s", animatedLine(snap))
		if !snap.Animating {
			fmt.Fprintln(w)
			return
		}
		select {
		case <-ctx.Done():
			fmt.Fprintln(w)
			return
		case <-ticker.C:
		}
	}
}

// PrintResults prints the settled result cards and hidden costs
func PrintResults(w io.Writer, snap DisplaySnapshot, currency string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Results")
	fmt.Fprintln(w, "───────")
	printRow(w, "Total Invested", currency, snap.Text(FieldTotalInvested))
	printRow(w, "Returns", currency, snap.Text(FieldReturns))
	printRow(w, "Final Value", currency, snap.Text(FieldFinalValue))
	printRow(w, "Real Value (After Inflation)", currency, snap.Text(FieldRealValue))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Hidden Costs")
	fmt.Fprintln(w, "────────────")
	printRow(w, "Expense Ratio Cost", currency, snap.Text(FieldExpenseCost))
	printRow(w, "Exit Load", currency, snap.Text(FieldExitCost))
	printRow(w, "Inflation Erosion", currency, snap.Text(FieldInflationCost))
	printRow(w, "Total Hidden Cost", currency, snap.Text(FieldTotalHiddenCost))
}

// PrintChart prints the invested/returns split as a bar
func PrintChart(w io.Writer, dataset ChartDataset, width int) {
	if len(dataset.Slices) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", ShareBar(dataset, width))
	for i, share := range dataset.Share() {
		fmt.Fprintf(w, "  %s %-9s %5.1f%%\n", barGlyphs[i%len(barGlyphs)], dataset.Slices[i].Label, share*100)
	}
}

var barGlyphs = []string{"█", "░"}

// ShareBar draws each slice's share of width cells. Negative shares draw
// as empty.
func ShareBar(dataset ChartDataset, width int) string {
	var sb strings.Builder
	used := 0
	shares := dataset.Share()
	for i, share := range shares {
		cells := int(share*float64(width) + 0.5)
		if i == len(shares)-1 {
			cells = width - used
		}
		cells = max(0, min(cells, width-used))
		sb.WriteString(strings.Repeat(barGlyphs[i%len(barGlyphs)], cells))
		used += cells
	}
	return sb.String()
}

// PrintComparison prints the comparison panel
func PrintComparison(w io.Writer, snap DisplaySnapshot, currency string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Strategy Comparison")
	fmt.Fprintln(w, "───────────────────")
	printRow(w, "Strategy A Final Value", currency, snap.Text(FieldStrategyAFinal))
	printRow(w, "Strategy B Final Value", currency, snap.Text(FieldStrategyBFinal))

	marker := "▲"
	if snap.Classes[FieldDifference] == SignNegative.String() {
		marker = "▼"
	}
	fmt.Fprintf(w, "  %-30s %s %s %s\n", "Difference (B − A)", currency, orDash(snap.Text(FieldDifference)), marker)
}

func printRow(w io.Writer, label, currency, value string) {
	fmt.Fprintf(w, "  %-30s %s %s\n", label, currency, orDash(value))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
