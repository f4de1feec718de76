package formhttp_test

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/formhttp"
	"github.com/dmitrymomot/formkit/pkg/forms"
	"github.com/dmitrymomot/formkit/pkg/kvstore"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newClockedService(t *testing.T, capacity int, idle time.Duration) (*formhttp.Service, *fakeClock) {
	t.Helper()
	schemas, err := forms.Registry()
	require.NoError(t, err)

	clock := &fakeClock{now: today}
	cfg := formhttp.DefaultConfig()
	cfg.SessionCapacity = capacity
	cfg.SessionIdleTimeout = idle

	svc, err := formhttp.New(cfg, kvstore.NewMemoryStore(), formhttp.NewCatalog(schemas), formhttp.WithClock(clock.Now))
	require.NoError(t, err)
	return svc, clock
}

func TestNew_InvalidConfig(t *testing.T) {
	t.Parallel()
	schemas, err := forms.Registry()
	require.NoError(t, err)

	cfg := formhttp.DefaultConfig()
	cfg.CookieSecret = "short"
	_, err = formhttp.New(cfg, kvstore.NewMemoryStore(), formhttp.NewCatalog(schemas))
	assert.ErrorIs(t, err, formhttp.ErrSecretTooShort)

	cfg = formhttp.DefaultConfig()
	cfg.SessionCapacity = 0
	_, err = formhttp.New(cfg, kvstore.NewMemoryStore(), formhttp.NewCatalog(schemas))
	assert.Error(t, err)
}

func TestSessions_LeastRecentlyUsedEviction(t *testing.T) {
	t.Parallel()
	svc, _ := newClockedService(t, 2, time.Hour)
	b := newBrowser(t, svc.Handle())

	first := startSession(t, b, "registration")
	second := startSession(t, b, "registration")

	// Touch first so second becomes the least recently used.
	require.Equal(t, http.StatusOK, b.do(http.MethodGet, "/sessions/"+first.ID, "").Code)
	third := startSession(t, b, "enrollment")

	assert.Equal(t, 2, svc.Sessions())
	assert.Equal(t, http.StatusOK, b.do(http.MethodGet, "/sessions/"+first.ID, "").Code)
	assert.Equal(t, http.StatusNotFound, b.do(http.MethodGet, "/sessions/"+second.ID, "").Code)
	assert.Equal(t, http.StatusOK, b.do(http.MethodGet, "/sessions/"+third.ID, "").Code)
}

func TestSessions_IdleTimeout(t *testing.T) {
	t.Parallel()
	svc, clock := newClockedService(t, 10, time.Minute)
	b := newBrowser(t, svc.Handle())

	sess := startSession(t, b, "registration")
	clock.Advance(30 * time.Second)
	require.Equal(t, http.StatusOK, b.do(http.MethodGet, "/sessions/"+sess.ID, "").Code, "access refreshes idle time")

	clock.Advance(61 * time.Second)
	assert.Equal(t, http.StatusNotFound, b.do(http.MethodGet, "/sessions/"+sess.ID, "").Code)
	assert.Zero(t, svc.Sessions())
}

func TestSweepEvery(t *testing.T) {
	t.Parallel()
	svc, clock := newClockedService(t, 10, time.Minute)
	b := newBrowser(t, svc.Handle())

	startSession(t, b, "registration")
	startSession(t, b, "enrollment")
	clock.Advance(2 * time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.SweepEvery(ctx, 5*time.Millisecond) }()

	require.Eventually(t, func() bool { return svc.Sessions() == 0 }, time.Second, 5*time.Millisecond)
	cancel()
	assert.NoError(t, <-done)
}

func TestDeleteSession(t *testing.T) {
	t.Parallel()
	svc, _ := newClockedService(t, 10, time.Minute)
	b := newBrowser(t, svc.Handle())

	sess := startSession(t, b, "registration")
	assert.Equal(t, http.StatusNoContent, b.do(http.MethodDelete, "/sessions/"+sess.ID, "").Code)
	assert.Equal(t, http.StatusNotFound, b.do(http.MethodDelete, "/sessions/"+sess.ID, "").Code)
}

func TestSignedVisitorCookie(t *testing.T) {
	t.Parallel()
	schemas, err := forms.Registry()
	require.NoError(t, err)

	cfg := formhttp.DefaultConfig()
	cfg.CookieSecret = "0123456789abcdef0123456789abcdef"
	svc, err := formhttp.New(cfg, kvstore.NewMemoryStore(), formhttp.NewCatalog(schemas))
	require.NoError(t, err)

	b := newBrowser(t, svc.Handle())
	sess := startSession(t, b, "registration")
	issued := b.cookies["visitor_id"].Value
	assert.Contains(t, issued, ".")

	rec := b.do(http.MethodGet, "/sessions/"+sess.ID, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Result().Cookies(), "valid cookie is kept")

	b.cookies["visitor_id"].Value = issued[:len(issued)-2] + "xx"
	rec = b.do(http.MethodGet, "/sessions/"+sess.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code, "tampered cookie is a new visitor")
	assert.NotEqual(t, issued, b.cookies["visitor_id"].Value)
}
