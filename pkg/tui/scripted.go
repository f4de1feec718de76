package tui

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrymomot/formkit/pkg/validator"
)

// Abort, used as a scripted answer, makes the prompt fail with ErrAborted.
const Abort = "\x03"

// ScriptedDriver answers every prompt with the next string from a fixed list.
// Select answers name the option, Confirm answers are parsed as truthy values.
type ScriptedDriver struct {
	mu      sync.Mutex
	answers []string
	prompts []string
	infos   []string
}

var _ PromptDriver = (*ScriptedDriver)(nil)

// NewScriptedDriver returns a driver that replays answers in order.
func NewScriptedDriver(answers ...string) *ScriptedDriver {
	return &ScriptedDriver{answers: answers}
}

// Prompts returns the messages of every prompt asked so far.
func (d *ScriptedDriver) Prompts() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.prompts...)
}

// Infos returns every message passed to Info.
func (d *ScriptedDriver) Infos() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.infos...)
}

// Remaining returns the number of unused answers.
func (d *ScriptedDriver) Remaining() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.answers)
}

func (d *ScriptedDriver) next(ctx context.Context, message string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	d.prompts = append(d.prompts, message)
	if len(d.answers) == 0 {
		return "", fmt.Errorf("%w: %s", ErrScriptExhausted, message)
	}
	answer := d.answers[0]
	d.answers = d.answers[1:]
	if answer == Abort {
		return "", ErrAborted
	}
	return answer, nil
}

func (d *ScriptedDriver) Input(ctx context.Context, cfg InputConfig) (string, error) {
	return d.next(ctx, cfg.Message)
}

func (d *ScriptedDriver) Password(ctx context.Context, cfg InputConfig) (string, error) {
	return d.next(ctx, cfg.Message)
}

func (d *ScriptedDriver) Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error) {
	answer, err := d.next(ctx, cfg.Message)
	if err != nil {
		return false, err
	}
	return validator.IsTruthy(answer), nil
}

func (d *ScriptedDriver) Select(ctx context.Context, cfg SelectConfig) (int, error) {
	answer, err := d.next(ctx, cfg.Message)
	if err != nil {
		return -1, err
	}
	idx := indexOf(cfg.Options, answer)
	if idx < 0 {
		return -1, fmt.Errorf("%w: %q", ErrUnknownOption, answer)
	}
	return idx, nil
}

func (d *ScriptedDriver) Info(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.infos = append(d.infos, msg)
	return nil
}
