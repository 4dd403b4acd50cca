// Package timer runs pomodoro and break countdowns and drives the session
// cycle: pomodoro, break, prompt, repeat.
package timer

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/pomo/internal/domain"
	"github.com/alexanderramin/pomo/internal/notify"
	"github.com/alexanderramin/pomo/internal/observe"
)

// Machine owns the timer configuration and the count of pomodoros completed
// in this process. It is not safe for concurrent use.
type Machine struct {
	cfg   Config
	count int
	state State

	clock      Clock
	recorder   Recorder
	tasks      TaskCounter
	notifier   notify.Notifier
	display    Display
	prompter   Prompter
	interrupts InterruptSource
	observer   observe.UseCaseObserver
}

type Option func(*Machine)

func WithConfig(cfg Config) Option {
	return func(m *Machine) { m.cfg = cfg }
}

func WithClock(c Clock) Option {
	return func(m *Machine) { m.clock = c }
}

// WithTaskCounter credits finished pomodoros to their task.
func WithTaskCounter(t TaskCounter) Option {
	return func(m *Machine) { m.tasks = t }
}

func WithNotifier(n notify.Notifier) Option {
	return func(m *Machine) { m.notifier = n }
}

func WithDisplay(d Display) Option {
	return func(m *Machine) { m.display = d }
}

func WithPrompter(p Prompter) Option {
	return func(m *Machine) { m.prompter = p }
}

// WithInterrupts sets the interrupt source. The CLI installs one built on
// signal.NotifyContext so Ctrl+C stops only the running countdown.
func WithInterrupts(src InterruptSource) Option {
	return func(m *Machine) { m.interrupts = src }
}

func WithObserver(obs observe.UseCaseObserver) Option {
	return func(m *Machine) { m.observer = observe.OrNoop(obs) }
}

// New builds a Machine that records finished pomodoros through rec.
func New(rec Recorder, opts ...Option) (*Machine, error) {
	m := &Machine{
		cfg:        DefaultConfig(),
		clock:      realClock{},
		recorder:   rec,
		notifier:   notify.None{},
		display:    noDisplay{},
		prompter:   declinePrompter{},
		interrupts: noInterrupts,
		observer:   observe.Noop{},
	}
	for _, opt := range opts {
		opt(m)
	}
	if err := m.cfg.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Machine) Config() Config { return m.cfg }

// SetConfig replaces the configuration. It takes effect from the next
// countdown.
func (m *Machine) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	m.cfg = cfg
	return nil
}

// ResetToDefault restores the default durations and keeps the long-break
// cadence.
func (m *Machine) ResetToDefault() {
	def := DefaultConfig()
	m.cfg.Pomodoro = def.Pomodoro
	m.cfg.ShortBreak = def.ShortBreak
	m.cfg.LongBreak = def.LongBreak
}

// Count is the number of pomodoros completed since the machine was built.
func (m *Machine) Count() int { return m.count }

func (m *Machine) State() State { return m.state }

// NextBreak picks the break that follows the latest pomodoro.
func (m *Machine) NextBreak() Kind {
	if m.count > 0 && m.count%m.cfg.PomodorosUntilLongBreak == 0 {
		return KindLongBreak
	}
	return KindShortBreak
}

// RunPomodoro counts down one pomodoro for task, which may be nil for
// unattributed work. A non-nil error means ctx itself was cancelled.
func (m *Machine) RunPomodoro(ctx context.Context, task *domain.Task) (Outcome, error) {
	name := domain.GeneralWork
	if task != nil {
		name = task.Name
	}

	var outcome Outcome
	fields := map[string]any{"task": name}
	err := observe.Track(ctx, m.observer, "timer.pomodoro", fields, func() error {
		defer func() { fields["outcome"] = outcome.String() }()
		m.alert(ctx, "Pomodoro Started!", "Time to focus! 🍅", notify.SoundStart)

		finished, err := m.countdown(ctx, KindPomodoro, m.cfg.Pomodoro, name)
		if err != nil {
			outcome = OutcomeCancelled
			return err
		}
		if finished {
			m.complete(ctx, task, name)
			m.display.Show(Event{Kind: EventPomodoroComplete, Count: m.count})
			m.alert(ctx, "Pomodoro Complete!", "Great work! Time for a break! 🎉", notify.SoundComplete)
			outcome = OutcomeCompleted
			return nil
		}

		m.display.Show(Event{Kind: EventPaused, Count: m.count})
		keep, err := m.prompter.Confirm(ctx, "Do you want to mark this session as complete?")
		if err != nil {
			m.warn(fmt.Errorf("reading answer: %w", err))
			keep = false
		}
		if keep {
			m.complete(ctx, task, name)
			m.display.Show(Event{Kind: EventCountedAfterInterrupt, Count: m.count})
			m.state = StateIdle
			outcome = OutcomeCountedAfterInterrupt
			return nil
		}
		m.state = StateIdle
		m.display.Show(Event{Kind: EventCancelled, Count: m.count})
		outcome = OutcomeCancelled
		return nil
	})
	return outcome, err
}

// RunBreak counts down a break. Breaks are never recorded.
func (m *Machine) RunBreak(ctx context.Context, kind Kind) (Outcome, error) {
	var outcome Outcome
	err := observe.Track(ctx, m.observer, "timer.break", map[string]any{"kind": string(kind)}, func() error {
		m.display.Show(Event{Kind: EventBreakStarted, Count: m.count, Break: kind})
		finished, err := m.countdown(ctx, kind, m.cfg.DurationFor(kind), "")
		if err != nil {
			outcome = OutcomeCancelled
			return err
		}
		if !finished {
			m.state = StateIdle
			m.display.Show(Event{Kind: EventBreakInterrupted, Break: kind})
			outcome = OutcomeCancelled
			return nil
		}
		m.display.Show(Event{Kind: EventBreakComplete, Break: kind})
		m.alert(ctx, "Break Over!", "Ready for another pomodoro? 🍅", notify.SoundBreak)
		m.state = StateIdle
		outcome = OutcomeCompleted
		return nil
	})
	return outcome, err
}

// Run cycles pomodoro and break until the user declines another round or a
// pomodoro is interrupted.
func (m *Machine) Run(ctx context.Context, task *domain.Task) error {
	for {
		outcome, err := m.RunPomodoro(ctx, task)
		if err != nil {
			return err
		}
		if outcome != OutcomeCompleted {
			return nil
		}

		kind := m.NextBreak()
		m.display.Show(Event{Kind: EventBreakSelected, Count: m.count, Break: kind})
		if err := m.prompter.Acknowledge(ctx, fmt.Sprintf("Press ENTER to start %s...", Label(kind))); err != nil {
			m.state = StateIdle
			return nil
		}
		if _, err := m.RunBreak(ctx, kind); err != nil {
			return err
		}

		again, err := m.prompter.Confirm(ctx, "Start another pomodoro?")
		if err != nil || !again {
			return nil
		}
	}
}

// countdown ticks down d, reporting to the display once per second. It
// returns finished=false when the interrupt source fires.
func (m *Machine) countdown(ctx context.Context, kind Kind, d time.Duration, task string) (bool, error) {
	ictx, cancel := m.interrupts(ctx)
	defer cancel()

	start := m.clock.Now()
	end := start.Add(d)
	m.state = StateRunning
	status := Status{Kind: kind, State: StateRunning, Total: d, Task: task, Count: m.count, StartedAt: start}

	for {
		if err := ctx.Err(); err != nil {
			m.state = StateIdle
			return false, err
		}
		if ictx.Err() != nil {
			m.state = StateInterrupted
			return false, nil
		}

		status.Remaining = max(end.Sub(m.clock.Now()), 0)
		m.display.Tick(status)
		if status.Remaining == 0 {
			m.state = StateCompleted
			return true, nil
		}

		wait := status.Remaining % time.Second
		if wait == 0 {
			wait = time.Second
		}
		select {
		case <-ictx.Done():
		case <-m.clock.After(wait):
		}
	}
}

func (m *Machine) complete(ctx context.Context, task *domain.Task, name string) {
	m.count++
	m.state = StateCompleted
	rec := domain.NewPomodoroRecord(name, m.cfg.Pomodoro, m.clock.Now())
	if err := m.recorder.Append(ctx, rec); err != nil {
		m.warn(fmt.Errorf("saving session: %w", err))
	}
	if task != nil && m.tasks != nil {
		if err := m.tasks.IncrementPomodoro(ctx, task.ID); err != nil {
			m.warn(fmt.Errorf("updating task: %w", err))
		}
	}
}

// alert sends a notification and sound. Failures are logged and otherwise
// ignored.
func (m *Machine) alert(ctx context.Context, title, message string, sound notify.Sound) {
	if err := m.notifier.Notify(title, message); err != nil {
		m.observer.ObserveUseCase(ctx, observe.UseCaseEvent{Name: "timer.notify", Err: err, StartedAt: m.clock.Now()})
	}
	if err := m.notifier.PlaySound(sound); err != nil {
		m.observer.ObserveUseCase(ctx, observe.UseCaseEvent{Name: "timer.sound", Err: err, StartedAt: m.clock.Now()})
	}
}

func (m *Machine) warn(err error) {
	m.display.Show(Event{Kind: EventWarning, Count: m.count, Err: err})
}
