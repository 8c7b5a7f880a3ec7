package main

import (
	"sync"
	"time"
)

// FrameCallback runs once on the next display refresh
type FrameCallback func(now time.Time)

// FrameScheduler hands out display-refresh callbacks. Callbacks requested
// together run in the same frame, in request order, on a single goroutine.
type FrameScheduler interface {
	RequestFrame(callbacks ...FrameCallback)
}

// TickerScheduler drives frames from a fixed-rate ticker
type TickerScheduler struct {
	mu      sync.Mutex
	pending []FrameCallback

	interval time.Duration
	stop     chan struct{}
	done     chan struct{}
	once     sync.Once
}

// NewTickerScheduler starts a scheduler refreshing every interval
func NewTickerScheduler(interval time.Duration) *TickerScheduler {
	if interval <= 0 {
		interval = time.Second / 60
	}
	s := &TickerScheduler{
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go s.loop()
	return s
}

// RequestFrame queues callbacks for the next tick
func (s *TickerScheduler) RequestFrame(callbacks ...FrameCallback) {
	s.mu.Lock()
	s.pending = append(s.pending, callbacks...)
	s.mu.Unlock()
}

func (s *TickerScheduler) loop() {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			s.runFrame(now)
		case <-s.stop:
			return
		}
	}
}

// runFrame runs the callbacks queued before this frame. Anything they
// request lands in the next one.
func (s *TickerScheduler) runFrame(now time.Time) {
	s.mu.Lock()
	batch := s.pending
	s.pending = nil
	s.mu.Unlock()

	for _, cb := range batch {
		cb(now)
	}
}

// Stop halts the ticker and drops pending callbacks
func (s *TickerScheduler) Stop() {
	s.once.Do(func() {
		close(s.stop)
		<-s.done
		s.mu.Lock()
		s.pending = nil
		s.mu.Unlock()
	})
}
