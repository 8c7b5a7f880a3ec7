package main

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ChartSlice is one labelled segment of a chart
type ChartSlice struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

// ChartDataset is what a chart draws
type ChartDataset struct {
	Kind   string       `json:"kind"`
	Slices []ChartSlice `json:"slices"`
}

// Share returns each slice's fraction of the total, or zeros if the total is zero
func (d ChartDataset) Share() []float64 {
	total := 0.0
	for _, s := range d.Slices {
		total += s.Value
	}
	shares := make([]float64, len(d.Slices))
	if total == 0 {
		return shares
	}
	for i, s := range d.Slices {
		shares[i] = s.Value / total
	}
	return shares
}

// ProportionDataset builds the invested vs returns doughnut
func ProportionDataset(invested, returns float64, investedColor, returnsColor string) ChartDataset {
	return ChartDataset{
		Kind: "doughnut",
		Slices: []ChartSlice{
			{Label: "Invested", Value: invested, Color: investedColor},
			{Label: "Returns", Value: returns, Color: returnsColor},
		},
	}
}

// Chart is a live chart instance
type Chart interface {
	ID() string
	Dataset() ChartDataset
	Destroy()
}

// ChartRenderer creates chart instances
type ChartRenderer interface {
	Create(dataset ChartDataset) (Chart, error)
}

// ChartInstance is a chart published to front ends by ID
type ChartInstance struct {
	mu        sync.Mutex
	id        string
	dataset   ChartDataset
	destroyed bool
}

// ID identifies the instance to front ends
func (c *ChartInstance) ID() string { return c.id }

// Dataset returns what the instance draws; empty once destroyed
func (c *ChartInstance) Dataset() ChartDataset {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dataset
}

// Destroy releases the instance. Destroying twice is a no-op.
func (c *ChartInstance) Destroy() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.destroyed = true
	c.dataset = ChartDataset{}
}

// Destroyed reports whether Destroy was called
func (c *ChartInstance) Destroyed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.destroyed
}

// DatasetRenderer creates ChartInstances
type DatasetRenderer struct{}

// Create builds a new instance with a fresh ID
func (DatasetRenderer) Create(dataset ChartDataset) (Chart, error) {
	return &ChartInstance{id: uuid.NewString(), dataset: dataset}, nil
}

// ChartSlot owns the single chart instance. Replace destroys the current
// instance before creating its successor, so at most one is alive.
type ChartSlot struct {
	mu       sync.Mutex
	renderer ChartRenderer
	current  Chart
}

// NewChartSlot creates an empty slot; the first Replace creates the chart
func NewChartSlot(renderer ChartRenderer) *ChartSlot {
	if renderer == nil {
		renderer = DatasetRenderer{}
	}
	return &ChartSlot{renderer: renderer}
}

// Replace swaps in a chart for dataset. If the new chart cannot be created
// the previous dataset is drawn again, so a slot that had a chart keeps one
// unless the renderer fails for both.
func (s *ChartSlot) Replace(dataset ChartDataset) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var previous *ChartDataset
	if s.current != nil {
		ds := s.current.Dataset()
		previous = &ds
		s.current.Destroy()
		s.current = nil
	}

	chart, err := s.renderer.Create(dataset)
	if err == nil {
		s.current = chart
		return nil
	}

	if previous != nil {
		if restored, rerr := s.renderer.Create(*previous); rerr == nil {
			s.current = restored
		} else {
			err = errors.Join(err, rerr)
		}
	}
	return err
}

// Current returns the live chart, if any
func (s *ChartSlot) Current() (Chart, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current, s.current != nil
}

// Close destroys the live chart on shutdown
func (s *ChartSlot) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil {
		s.current.Destroy()
		s.current = nil
	}
}
