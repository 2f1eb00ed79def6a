package playground

import (
	"github.com/pkg/errors"
)

// Timer fires on some ticks; the playground then calls OnTimer on each target
type Timer interface {
	Step() bool
	Reset()
	Targets() []TimerTarget
}

type timerBase struct {
	targets []TimerTarget
}

func (t *timerBase) Targets() []TimerTarget {
	return t.targets
}

// AddTarget registers an element driven by the timer
func (t *timerBase) AddTarget(target TimerTarget) {
	t.targets = append(t.targets, target)
}

// CountDownTimer fires once, duration ticks after a reset
type CountDownTimer struct {
	timerBase
	duration int
	elapsed  int
	fired    bool
}

func NewCountDownTimer(duration int, targets ...TimerTarget) (*CountDownTimer, error) {
	if duration <= 0 {
		return nil, errors.Wrapf(ErrInvalidConfig, "timer duration must be positive, got %d", duration)
	}

	return &CountDownTimer{timerBase: timerBase{targets: targets}, duration: duration}, nil
}

func (t *CountDownTimer) Step() bool {
	if t.fired {
		return false
	}

	t.elapsed++
	if t.elapsed < t.duration {
		return false
	}

	t.fired = true
	return true
}

func (t *CountDownTimer) Reset() {
	t.elapsed = 0
	t.fired = false
}

// PeriodicTimer fires at the end of each duration, cycling through them
type PeriodicTimer struct {
	timerBase
	durations []int
	current   int
	elapsed   int
}

func NewPeriodicTimer(durations []int, targets ...TimerTarget) (*PeriodicTimer, error) {
	if len(durations) == 0 {
		return nil, errors.Wrap(ErrInvalidConfig, "periodic timer needs durations")
	}

	for _, d := range durations {
		if d <= 0 {
			return nil, errors.Wrapf(ErrInvalidConfig, "timer duration must be positive, got %d", d)
		}
	}

	return &PeriodicTimer{
		timerBase: timerBase{targets: targets},
		durations: append([]int(nil), durations...),
	}, nil
}

func (t *PeriodicTimer) Step() bool {
	t.elapsed++
	if t.elapsed < t.durations[t.current] {
		return false
	}

	t.elapsed = 0
	t.current = (t.current + 1) % len(t.durations)
	return true
}

func (t *PeriodicTimer) Reset() {
	t.elapsed = 0
	t.current = 0
}
