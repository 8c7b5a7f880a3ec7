package main

import "log/slog"

// App wires the calculator, comparator and their shared display state
type App struct {
	Config     *Config
	Board      *Board
	Formatter  *LocaleFormatter
	Animator   *Animator
	Chart      *ChartSlot
	Calculator *PlanCalculator
	Comparator *StrategyComparator
	Logger     *slog.Logger

	scheduler *TickerScheduler
}

// NewApp builds an App talking to the configured engine.
// notifier may be nil, in which case notices only land on the board.
func NewApp(config *Config, notifier Notifier, logger *slog.Logger) *App {
	scheduler := NewTickerScheduler(config.Animation.FrameInterval())
	app := newApp(config, NewEngineClient(config.Engine, logger), scheduler, notifier, logger)
	app.scheduler = scheduler
	return app
}

func newApp(config *Config, engine Engine, scheduler FrameScheduler, notifier Notifier, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	board := NewBoard()
	if notifier == nil {
		notifier = board
	} else {
		notifier = teeNotifier{board, notifier}
	}

	formatter := NewLocaleFormatter(config.Display.Locale)
	animator := NewAnimator(scheduler, formatter, board, config.Animation.Duration(), config.Animation.LegacyOverlap)
	chart := NewChartSlot(DatasetRenderer{})

	return &App{
		Config:     config,
		Board:      board,
		Formatter:  formatter,
		Animator:   animator,
		Chart:      chart,
		Calculator: NewPlanCalculator(engine, board, animator, chart, formatter, notifier, config.Display, logger),
		Comparator: NewStrategyComparator(engine, board, formatter, notifier, logger),
		Logger:     logger,
	}
}

// Snapshot returns the display state including whether animations are running
func (a *App) Snapshot() DisplaySnapshot {
	snap := a.Board.Snapshot()
	snap.Animating = a.Animator.Running() > 0
	return snap
}

// Close stops frame delivery and releases the chart
func (a *App) Close() {
	if a.scheduler != nil {
		a.scheduler.Stop()
	}
	a.Chart.Close()
}

// teeNotifier records a notice on the board and passes it on
type teeNotifier []Notifier

func (t teeNotifier) Notify(message string) {
	for _, n := range t {
		n.Notify(message)
	}
}
