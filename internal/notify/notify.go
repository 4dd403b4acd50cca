// Package notify delivers desktop notifications and alert sounds. Backends
// are chosen at startup; callers depend only on Notifier.
package notify

import (
	"fmt"
	"io"
	"runtime"
	"strings"
)

// Sound identifies an alert played alongside a notification.
type Sound string

const (
	SoundStart    Sound = "start"
	SoundComplete Sound = "complete"
	SoundBreak    Sound = "break"
)

// Notifier is the capability the timer needs from the desktop.
type Notifier interface {
	Notify(title, message string) error
	PlaySound(kind Sound) error
}

// Backend names accepted by New.
const (
	BackendAuto    = "auto"
	BackendDarwin  = "darwin"
	BackendLinux   = "linux"
	BackendWindows = "windows"
	BackendConsole = "console"
	BackendNone    = "none"
)

// Options configures New.
type Options struct {
	// Out receives console notifications and fallback messages.
	Out io.Writer
	// Sound enables PlaySound; when false it is a no-op.
	Sound bool
	// Runner starts external commands. Defaults to ExecRunner.
	Runner Runner
}

// New returns the notifier for backend. "auto" picks the backend for
// runtime.GOOS and falls back to the console on other systems. Desktop
// backends are wrapped so failures print the console message instead.
func New(backend string, opts Options) (Notifier, error) {
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.Runner == nil {
		opts.Runner = ExecRunner{}
	}
	console := &Console{Out: opts.Out, Bell: opts.Sound}

	name := strings.ToLower(strings.TrimSpace(backend))
	if name == "" || name == BackendAuto {
		name = runtime.GOOS
	}

	var desktop Notifier
	switch name {
	case BackendDarwin:
		desktop = &Darwin{run: opts.Runner, sound: opts.Sound}
	case BackendLinux:
		desktop = &Linux{run: opts.Runner, sound: opts.Sound}
	case BackendWindows:
		desktop = &Windows{run: opts.Runner, sound: opts.Sound}
	case BackendConsole:
		return console, nil
	case BackendNone:
		return None{}, nil
	default:
		if backend == "" || strings.EqualFold(backend, BackendAuto) {
			return console, nil
		}
		return nil, fmt.Errorf("unknown notification backend %q", backend)
	}
	return WithFallback(desktop, console), nil
}

// None discards everything.
type None struct{}

func (None) Notify(string, string) error { return nil }
func (None) PlaySound(Sound) error       { return nil }

// Console prints notifications as text and rings the terminal bell.
type Console struct {
	Out  io.Writer
	Bell bool
}

func (c *Console) Notify(title, message string) error {
	_, err := fmt.Fprintf(c.Out, "\n🔔 %s: %s\n", title, message)
	return err
}

func (c *Console) PlaySound(Sound) error {
	if !c.Bell {
		return nil
	}
	_, err := fmt.Fprint(c.Out, "\a")
	return err
}

type fallback struct {
	primary  Notifier
	fallback Notifier
}

// WithFallback sends through primary and, when it fails, through fb. Errors
// from fb are returned.
func WithFallback(primary, fb Notifier) Notifier {
	return &fallback{primary: primary, fallback: fb}
}

func (f *fallback) Notify(title, message string) error {
	if err := f.primary.Notify(title, message); err != nil {
		return f.fallback.Notify(title, message)
	}
	return nil
}

func (f *fallback) PlaySound(kind Sound) error {
	if err := f.primary.PlaySound(kind); err != nil {
		return f.fallback.PlaySound(kind)
	}
	return nil
}
