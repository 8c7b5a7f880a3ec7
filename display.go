package main

import (
	"maps"
	"sync"
)

// Notifier surfaces a failure to the user
type Notifier interface {
	Notify(message string)
}

// ComparisonInputs are the parameters of the last successful comparison
type ComparisonInputs struct {
	Base      PlanParameters `json:"base"`
	StrategyA StrategyCosts  `json:"strategy_a"`
	StrategyB StrategyCosts  `json:"strategy_b"`
}

// DisplaySnapshot is a read-only copy of what is on screen
type DisplaySnapshot struct {
	Fields     map[Field]string  `json:"fields"`
	Classes    map[Field]string  `json:"classes"`
	Notice     string            `json:"notice,omitempty"`
	NoticeSeq  uint64            `json:"notice_seq"`
	Pulse      uint64            `json:"pulse"`
	Plan       *PlanParameters   `json:"plan,omitempty"`
	Comparison *ComparisonInputs `json:"comparison,omitempty"`
	Animating  bool              `json:"animating"`
}

// Text returns a field's text, or "" if it was never written
func (s DisplaySnapshot) Text(field Field) string {
	return s.Fields[field]
}

// Board holds the application's display state: field text, field classes,
// the card pulse counter, the last notice, and the previous total hidden
// cost that the next hidden-cost animation starts from.
type Board struct {
	mu sync.RWMutex

	fields    map[Field]string
	classes   map[Field]string
	notice    string
	noticeSeq uint64
	pulse     uint64

	previousHiddenCost float64
	plan               *PlanParameters
	comparison         *ComparisonInputs
}

// NewBoard creates an empty board
func NewBoard() *Board {
	return &Board{
		fields:  make(map[Field]string),
		classes: make(map[Field]string),
	}
}

// SetText writes a field
func (b *Board) SetText(field Field, text string) {
	b.mu.Lock()
	b.fields[field] = text
	b.mu.Unlock()
}

// Text reads a field
func (b *Board) Text(field Field) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.fields[field]
}

// SetClass sets a field's presentation class (e.g. "positive")
func (b *Board) SetClass(field Field, class string) {
	b.mu.Lock()
	b.classes[field] = class
	b.mu.Unlock()
}

// Class reads a field's presentation class
func (b *Board) Class(field Field) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.classes[field]
}

// Pulse re-triggers the result card entrance effect
func (b *Board) Pulse() {
	b.mu.Lock()
	b.pulse++
	b.mu.Unlock()
}

// Notify records a user-visible notice
func (b *Board) Notify(message string) {
	b.mu.Lock()
	b.notice = message
	b.noticeSeq++
	b.mu.Unlock()
}

// SwapPreviousHiddenCost stores the new total hidden cost and returns the
// one it replaces
func (b *Board) SwapPreviousHiddenCost(total float64) float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	prev := b.previousHiddenCost
	b.previousHiddenCost = total
	return prev
}

// PreviousHiddenCost returns the last committed total hidden cost
func (b *Board) PreviousHiddenCost() float64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.previousHiddenCost
}

// SetPlanInputs records the parameters behind the displayed plan
func (b *Board) SetPlanInputs(p PlanParameters) {
	b.mu.Lock()
	b.plan = &p
	b.mu.Unlock()
}

// SetComparisonInputs records the parameters behind the displayed comparison
func (b *Board) SetComparisonInputs(in ComparisonInputs) {
	b.mu.Lock()
	b.comparison = &in
	b.mu.Unlock()
}

// Snapshot copies the current display state
func (b *Board) Snapshot() DisplaySnapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()

	snap := DisplaySnapshot{
		Fields:    maps.Clone(b.fields),
		Classes:   maps.Clone(b.classes),
		Notice:    b.notice,
		NoticeSeq: b.noticeSeq,
		Pulse:     b.pulse,
	}
	if b.plan != nil {
		p := *b.plan
		snap.Plan = &p
	}
	if b.comparison != nil {
		c := *b.comparison
		snap.Comparison = &c
	}
	return snap
}
