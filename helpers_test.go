package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"
)

// manualScheduler delivers frames only when the test steps it
type manualScheduler struct {
	mu      sync.Mutex
	pending []FrameCallback
}

func (m *manualScheduler) RequestFrame(callbacks ...FrameCallback) {
	m.mu.Lock()
	m.pending = append(m.pending, callbacks...)
	m.mu.Unlock()
}

// Step runs one frame at now and returns how many callbacks ran
func (m *manualScheduler) Step(now time.Time) int {
	m.mu.Lock()
	batch := m.pending
	m.pending = nil
	m.mu.Unlock()

	for _, cb := range batch {
		cb(now)
	}
	return len(batch)
}

func (m *manualScheduler) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

// settle steps frames 100ms apart until nothing is pending
func (m *manualScheduler) settle(t *testing.T, start time.Time) time.Time {
	t.Helper()
	now := start
	for i := 0; i < 200; i++ {
		if m.Step(now) == 0 {
			return now
		}
		now = now.Add(100 * time.Millisecond)
	}
	t.Fatal("animations did not settle within 200 frames")
	return now
}

// fakeEngine answers Calculate with a function
type fakeEngine struct {
	mu    sync.Mutex
	calls []PlanParameters
	fn    func(ctx context.Context, p PlanParameters) (PlanResult, error)
}

func (f *fakeEngine) Calculate(ctx context.Context, p PlanParameters) (PlanResult, error) {
	f.mu.Lock()
	f.calls = append(f.calls, p)
	fn := f.fn
	f.mu.Unlock()
	return fn(ctx, p)
}

func (f *fakeEngine) Calls() []PlanParameters {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]PlanParameters(nil), f.calls...)
}

func (f *fakeEngine) respond(result PlanResult) {
	f.mu.Lock()
	f.fn = func(context.Context, PlanParameters) (PlanResult, error) { return result, nil }
	f.mu.Unlock()
}

func (f *fakeEngine) fail() {
	f.mu.Lock()
	f.fn = func(context.Context, PlanParameters) (PlanResult, error) {
		return PlanResult{}, &EngineError{Op: "request", RequestID: "test", Err: errors.New("connection refused")}
	}
	f.mu.Unlock()
}

// recordingWriter keeps every write per field
type recordingWriter struct {
	mu     sync.Mutex
	writes map[Field][]string
}

func newRecordingWriter() *recordingWriter {
	return &recordingWriter{writes: make(map[Field][]string)}
}

func (r *recordingWriter) SetText(field Field, text string) {
	r.mu.Lock()
	r.writes[field] = append(r.writes[field], text)
	r.mu.Unlock()
}

func (r *recordingWriter) Writes(field Field) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.writes[field]...)
}

func (r *recordingWriter) Last(field Field) string {
	w := r.Writes(field)
	if len(w) == 0 {
		return ""
	}
	return w[len(w)-1]
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig(t *testing.T) *Config {
	t.Helper()
	config, err := LoadDefaultConfig()
	if err != nil {
		t.Fatalf("LoadDefaultConfig: %v", err)
	}
	config.Engine.APIBase = "http://engine.invalid"
	return config
}

func newTestApp(t *testing.T, engine Engine) (*App, *manualScheduler) {
	t.Helper()
	sched := &manualScheduler{}
	app := newApp(testConfig(t), engine, sched, nil, discardLogger())
	t.Cleanup(app.Close)
	return app, sched
}

var t0 = time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)

// samplePlan: invested 1,00,000 / final 5,00,000 / real 4,50,000 with
// 1% expense over 10 years and 2% exit load
func samplePlan() (PlanParameters, PlanResult) {
	return PlanParameters{
			MonthlyAmount:         10000,
			Years:                 10,
			ExpectedReturnPercent: 12,
			StepUpPercent:         10,
			InflationPercent:      6,
			ExpenseRatioPercent:   1,
			ExitLoadPercent:       2,
		}, PlanResult{
			TotalInvested:           100000,
			FinalValue:              500000,
			RealValueAfterInflation: 450000,
		}
}
