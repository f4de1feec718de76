package tui

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strconv"

	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/logger"
)

// Runner fills a form session through a PromptDriver.
type Runner struct {
	driver      PromptDriver
	log         *slog.Logger
	maxAttempts int
}

// Option configures a Runner.
type Option func(*Runner)

func WithLogger(log *slog.Logger) Option {
	return func(r *Runner) {
		if log != nil {
			r.log = log
		}
	}
}

// WithMaxAttempts bounds how many times a single field is asked in a row.
// Zero means no limit.
func WithMaxAttempts(n int) Option {
	return func(r *Runner) {
		if n >= 0 {
			r.maxAttempts = n
		}
	}
}

func NewRunner(driver PromptDriver, opts ...Option) *Runner {
	r := &Runner{driver: driver, log: logger.Discard()}
	for _, opt := range opts {
		opt(r)
	}
	r.log = r.log.With(logger.Component("tui"))
	return r
}

// Fill asks for every field of schema in definition order and returns the
// accepted record. Invalid answers are reported and asked again; answered
// fields that a later answer invalidates are asked again as well.
func (r *Runner) Fill(ctx context.Context, schema *form.Schema) (form.Record, error) {
	sess := schema.NewSession()
	fields := schema.Fields()

	position := make(map[string]int, len(fields))
	pending := make([]bool, len(fields))
	answered := make([]bool, len(fields))
	attempts := make([]int, len(fields))
	for i, f := range fields {
		position[f.Name] = i
		pending[i] = true
	}

	for {
		i := slices.Index(pending, true)
		if i < 0 {
			break
		}
		f := fields[i]

		if r.maxAttempts > 0 && attempts[i] >= r.maxAttempts {
			return form.Record{}, fmt.Errorf("%w: %s", ErrTooManyAttempts, f.Name)
		}
		attempts[i]++

		value, err := r.ask(ctx, f)
		if err != nil {
			return form.Record{}, err
		}
		if _, err := sess.SetValue(f.Name, value); err != nil {
			return form.Record{}, err
		}
		answered[i] = true

		if msg, _ := sess.ErrorsFor(f.Name); msg != "" {
			r.log.DebugContext(ctx, "invalid answer", logger.Form(schema.Name()), logger.Field(f.Name))
			if err := r.driver.Info(ctx, f.DisplayLabel()+": "+msg); err != nil {
				return form.Record{}, err
			}
			continue
		}
		pending[i] = false
		attempts[i] = 0

		dependents, err := schema.Dependents(f.Name)
		if err != nil {
			return form.Record{}, err
		}
		for _, name := range dependents {
			j := position[name]
			if !answered[j] || pending[j] {
				continue
			}
			if msg, _ := sess.ErrorsFor(name); msg != "" {
				pending[j] = true
				if err := r.driver.Info(ctx, fields[j].DisplayLabel()+": "+msg); err != nil {
					return form.Record{}, err
				}
			}
		}
	}

	rec, err := sess.TrySubmit()
	if err != nil {
		return form.Record{}, err
	}
	r.log.InfoContext(ctx, "form filled", logger.Form(schema.Name()))
	return rec, nil
}

func (r *Runner) ask(ctx context.Context, f form.Field) (string, error) {
	message := f.DisplayLabel()

	switch {
	case f.Secret:
		return r.driver.Password(ctx, InputConfig{Message: message})

	case len(f.Options) > 0:
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      message,
			Options:      f.Options,
			DefaultIndex: -1,
		})
		if err != nil {
			return "", err
		}
		if idx < 0 || idx >= len(f.Options) {
			return "", nil
		}
		return f.Options[idx], nil

	case f.Rule.Name == "required_acceptance":
		ok, err := r.driver.Confirm(ctx, ConfirmConfig{Message: message})
		if err != nil {
			return "", err
		}
		return strconv.FormatBool(ok), nil

	default:
		return r.driver.Input(ctx, InputConfig{Message: message})
	}
}
