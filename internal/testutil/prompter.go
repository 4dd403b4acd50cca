package testutil

import (
	"context"
	"errors"
	"sync"
)

// ErrNoAnswer is returned by ScriptedPrompter when its answers run out.
var ErrNoAnswer = errors.New("no scripted answer")

// ScriptedPrompter answers confirmations from a fixed list and records every
// question it was asked.
type ScriptedPrompter struct {
	mu        sync.Mutex
	answers   []bool
	Questions []string
	Acks      []string
	AckErr    error
}

func NewScriptedPrompter(answers ...bool) *ScriptedPrompter {
	return &ScriptedPrompter{answers: answers}
}

func (p *ScriptedPrompter) Confirm(_ context.Context, question string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Questions = append(p.Questions, question)
	if len(p.answers) == 0 {
		return false, ErrNoAnswer
	}
	answer := p.answers[0]
	p.answers = p.answers[1:]
	return answer, nil
}

func (p *ScriptedPrompter) Acknowledge(_ context.Context, message string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Acks = append(p.Acks, message)
	return p.AckErr
}
