package notify

import (
	"fmt"
	"os/exec"
)

// Runner starts an external command without waiting for it to finish.
type Runner interface {
	Start(name string, args ...string) error
}

// ExecRunner starts commands with os/exec and reaps them in the background.
type ExecRunner struct{}

func (ExecRunner) Start(name string, args ...string) error {
	path, err := exec.LookPath(name)
	if err != nil {
		return fmt.Errorf("%s not available: %w", name, err)
	}
	cmd := exec.Command(path, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting %s: %w", name, err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
