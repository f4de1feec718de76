package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/formhttp"
	"github.com/dmitrymomot/formkit/pkg/forms"
	"github.com/dmitrymomot/formkit/pkg/kvstore"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/summary"
	"github.com/dmitrymomot/formkit/pkg/tui"
)

func newTestApp(t *testing.T, answers ...string) (*app, *kvstore.MemoryStore, *bytes.Buffer) {
	t.Helper()
	today := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	schemas, err := forms.Registry(form.WithClock(func() time.Time { return today }))
	require.NoError(t, err)

	store := kvstore.NewMemoryStore()
	out := &bytes.Buffer{}
	cfg := appConfig{Forms: formhttp.DefaultConfig(), Visitor: "local"}
	return &app{
		cfg:     cfg,
		log:     logger.Discard(),
		store:   store,
		schemas: schemas,
		out:     out,
		errOut:  &bytes.Buffer{},
		driver:  tui.NewScriptedDriver(answers...),
		sleep:   func(context.Context, time.Duration) error { return nil },
	}, store, out
}

var registrationAnswers = []string{
	"Ada Lovelace",
	"ada@example.com",
	"0300-1234567",
	"35201-1234567-1",
	"Engineering",
	"female",
	"Secret#123",
	"Secret#123",
}

func TestFillAndSummary(t *testing.T) {
	t.Parallel()

	a, store, out := newTestApp(t, registrationAnswers...)
	require.NoError(t, a.dispatch(context.Background(), []string{"fill", "registration"}))

	text := out.String()
	assert.Contains(t, text, "Submitted successfully. Showing summary in 2s...")
	assert.Contains(t, text, "Registration Summary")
	assert.Contains(t, text, "Ada Lovelace")
	assert.Contains(t, text, "03001234567")
	assert.NotContains(t, text, "Secret#123")

	stored, err := store.Get(context.Background(), "visitor:local:techSummitUser")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stored, "{"))

	out.Reset()
	require.NoError(t, a.dispatch(context.Background(), []string{"summary", "registration"}))
	assert.Contains(t, out.String(), "Full Name")

	out.Reset()
	require.NoError(t, a.dispatch(context.Background(), []string{"clear", "registration"}))
	assert.Equal(t, "Cleared registration records.\n", out.String())

	out.Reset()
	require.NoError(t, a.dispatch(context.Background(), []string{"summary", "registration"}))
	assert.Equal(t, summary.EmptyMessage+"\n", out.String())
}

func TestVisitorFlag(t *testing.T) {
	t.Parallel()

	a, store, _ := newTestApp(t, registrationAnswers...)
	require.NoError(t, a.dispatch(context.Background(), []string{"-visitor", "abc", "fill", "registration"}))

	_, err := store.Get(context.Background(), "visitor:abc:techSummitUser")
	assert.NoError(t, err)
}

func TestFillAborted(t *testing.T) {
	t.Parallel()

	a, store, _ := newTestApp(t, "Ada Lovelace", tui.Abort)
	err := a.dispatch(context.Background(), []string{"fill", "registration"})
	assert.ErrorIs(t, err, tui.ErrAborted)
	assert.Zero(t, store.Len())
}

func TestTheme(t *testing.T) {
	t.Parallel()

	a, _, out := newTestApp(t)
	ctx := context.Background()

	require.NoError(t, a.dispatch(ctx, []string{"theme"}))
	assert.Equal(t, "Theme: light\n", out.String())

	out.Reset()
	require.NoError(t, a.dispatch(ctx, []string{"theme", "toggle"}))
	assert.Equal(t, "Theme: dark\n", out.String())

	out.Reset()
	require.NoError(t, a.dispatch(ctx, []string{"theme"}))
	assert.Equal(t, "Theme: dark\n", out.String())
}

func TestListForms(t *testing.T) {
	t.Parallel()

	a, _, out := newTestApp(t)
	require.NoError(t, a.dispatch(context.Background(), []string{"forms"}))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[1], "enrollment"))
	assert.Contains(t, lines[1], "append")
	assert.True(t, strings.HasPrefix(lines[2], "registration"))
	assert.Contains(t, lines[2], "techSummitUser")
}

func TestDispatchErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		err  error
	}{
		{name: "no command", args: nil, err: errUsage},
		{name: "unknown command", args: []string{"launch"}, err: errUsage},
		{name: "missing form", args: []string{"summary"}, err: errUsage},
		{name: "unknown form", args: []string{"summary", "survey"}, err: forms.ErrUnknownForm},
		{name: "bad flag", args: []string{"-nope", "forms"}, err: errUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			a, _, _ := newTestApp(t)
			assert.ErrorIs(t, a.dispatch(context.Background(), tt.args), tt.err)
		})
	}
}
