package main

import (
	"math"
	"sync"
	"time"
)

// DefaultAnimationDuration is used when the config leaves it unset
const DefaultAnimationDuration = 900 * time.Millisecond

// FieldWriter receives rendered field text
type FieldWriter interface {
	SetText(field Field, text string)
}

// AnimationSession interpolates one field from Start to End.
// The start time is taken from the first frame it sees.
type AnimationSession struct {
	Field    Field
	Start    float64
	End      float64
	Duration time.Duration

	startTime  time.Time
	started    bool
	generation uint64
}

// Progress returns how far through the session now is, clamped to [0, 1].
// A session with nothing to move completes on its first frame.
func (s *AnimationSession) Progress(now time.Time) float64 {
	if s.Duration <= 0 || s.Start == s.End {
		return 1
	}
	p := float64(now.Sub(s.startTime)) / float64(s.Duration)
	return math.Max(0, math.Min(p, 1))
}

// ValueAt returns the floored value shown at a given progress
func (s *AnimationSession) ValueAt(progress float64) float64 {
	if progress >= 1 {
		return math.Floor(s.End)
	}
	return math.Floor(s.Start + progress*(s.End-s.Start))
}

// Animator runs value animations against a frame scheduler.
//
// By default a new session for a field supersedes the one already running
// for it: the old session stops before its next write. In legacy mode
// overlapping sessions all keep writing until each finishes, and the last
// write in a frame wins.
type Animator struct {
	scheduler FrameScheduler
	formatter *LocaleFormatter
	out       FieldWriter
	duration  time.Duration
	legacy    bool

	mu          sync.Mutex
	generations map[Field]uint64
	running     int
}

// NewAnimator creates an animator writing formatted values to out
func NewAnimator(scheduler FrameScheduler, formatter *LocaleFormatter, out FieldWriter, duration time.Duration, legacy bool) *Animator {
	if duration == 0 {
		duration = DefaultAnimationDuration
	}
	return &Animator{
		scheduler:   scheduler,
		formatter:   formatter,
		out:         out,
		duration:    duration,
		legacy:      legacy,
		generations: make(map[Field]uint64),
	}
}

// NewSession builds a session with the animator's duration
func (a *Animator) NewSession(field Field, start, end float64) *AnimationSession {
	return &AnimationSession{Field: field, Start: start, End: end, Duration: a.duration}
}

// Animate starts a single animation
func (a *Animator) Animate(field Field, start, end float64) {
	a.AnimateBatch(a.NewSession(field, start, end))
}

// AnimateBatch starts several sessions so that their first frames coincide
func (a *Animator) AnimateBatch(sessions ...*AnimationSession) {
	callbacks := make([]FrameCallback, 0, len(sessions))

	a.mu.Lock()
	for _, s := range sessions {
		a.generations[s.Field]++
		s.generation = a.generations[s.Field]
		a.running++
		callbacks = append(callbacks, a.step(s))
	}
	a.mu.Unlock()

	a.scheduler.RequestFrame(callbacks...)
}

// Running returns the number of sessions that have not yet finished
func (a *Animator) Running() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.running
}

func (a *Animator) step(s *AnimationSession) FrameCallback {
	var frame FrameCallback
	frame = func(now time.Time) {
		if a.superseded(s) {
			a.finish()
			return
		}
		if !s.started {
			s.startTime = now
			s.started = true
		}

		progress := s.Progress(now)
		a.out.SetText(s.Field, a.formatter.Format(s.ValueAt(progress)))

		if progress < 1 {
			a.scheduler.RequestFrame(frame)
			return
		}
		a.finish()
	}
	return frame
}

func (a *Animator) superseded(s *AnimationSession) bool {
	if a.legacy {
		return false
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.generations[s.Field] != s.generation
}

func (a *Animator) finish() {
	a.mu.Lock()
	a.running--
	a.mu.Unlock()
}
