package records_test

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/kvstore"
	"github.com/dmitrymomot/formkit/pkg/records"
)

func record(pairs ...string) form.Record {
	var r form.Record
	for i := 0; i+1 < len(pairs); i += 2 {
		r.Set(pairs[i], pairs[i+1])
	}
	return r
}

type failingStore struct {
	kvstore.Store
	err error
}

func (f failingStore) Get(context.Context, string) (string, error) { return "", f.err }

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("empty key", func(t *testing.T) {
		t.Parallel()
		_, err := records.New(kvstore.NewMemoryStore(), "", form.ModeAppend)
		assert.ErrorIs(t, err, kvstore.ErrEmptyKey)
	})

	t.Run("invalid mode", func(t *testing.T) {
		t.Parallel()
		_, err := records.New(kvstore.NewMemoryStore(), "k", form.Mode("merge"))
		assert.ErrorIs(t, err, records.ErrInvalidMode)
	})
}

func TestBook_Overwrite(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kvstore.NewMemoryStore()

	book, err := records.New(store, "techSummitUser", form.ModeOverwrite)
	require.NoError(t, err)

	require.NoError(t, book.Save(ctx, record("fullName", "Ada", "email", "ada@example.com")))
	require.NoError(t, book.Save(ctx, record("fullName", "Grace", "email", "grace@example.com")))

	raw, err := store.Get(ctx, "techSummitUser")
	require.NoError(t, err)
	assert.JSONEq(t, `{"fullName":"Grace","email":"grace@example.com"}`, raw)

	list, err := book.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, []string{"fullName", "email"}, list[0].Keys())

	latest, err := book.Latest(ctx)
	require.NoError(t, err)
	name, _ := latest.Get("fullName")
	assert.Equal(t, "Grace", name)
}

func TestBook_Append(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kvstore.NewMemoryStore()

	book, err := records.New(store, "enrollments", form.ModeAppend)
	require.NoError(t, err)

	list, err := book.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = book.Latest(ctx)
	assert.ErrorIs(t, err, records.ErrNoRecords)

	require.NoError(t, book.Save(ctx, record("fullName", "Ada", "course", "web-development")))
	require.NoError(t, book.Save(ctx, record("fullName", "Grace", "course", "data-science")))

	raw, err := store.Get(ctx, "enrollments")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"fullName":"Ada","course":"web-development"},{"fullName":"Grace","course":"data-science"}]`, raw)

	list, err = book.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	first, _ := list[0].Get("fullName")
	assert.Equal(t, "Ada", first)

	latest, err := book.Latest(ctx)
	require.NoError(t, err)
	course, _ := latest.Get("course")
	assert.Equal(t, "data-science", course)
}

func TestBook_ConcurrentAppendsFromSeparateBooks(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kvstore.Prefixed(kvstore.NewMemoryStore(), "visitor:abc")

	const n = 20
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			book, err := records.New(store, "enrollments", form.ModeAppend)
			if !assert.NoError(t, err) {
				return
			}
			assert.NoError(t, book.Save(ctx, record("n", strconv.Itoa(i))))
		}()
	}
	wg.Wait()

	book, err := records.New(store, "enrollments", form.ModeAppend)
	require.NoError(t, err)
	list, err := book.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, n)
}

func TestBook_AppendAfterOverwrite(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	require.NoError(t, store.Set(ctx, "k", `{"a":"1"}`))

	book, err := records.New(store, "k", form.ModeAppend)
	require.NoError(t, err)
	require.NoError(t, book.Save(ctx, record("a", "2")))

	raw, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"a":"1"},{"a":"2"}]`, raw)
}

func TestBook_Clear(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kvstore.NewMemoryStore()

	book, err := records.New(store, "enrollments", form.ModeAppend)
	require.NoError(t, err)
	require.NoError(t, book.Save(ctx, record("a", "1")))

	require.NoError(t, book.Clear(ctx))
	_, err = store.Get(ctx, "enrollments")
	assert.ErrorIs(t, err, kvstore.ErrNotFound)

	require.NoError(t, book.Clear(ctx), "clearing an empty key")
}

func TestBook_CorruptData(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	tests := []struct {
		name string
		raw  string
	}{
		{name: "not json", raw: "hello"},
		{name: "broken object", raw: `{"a":`},
		{name: "array of scalars", raw: `[1,2]`},
		{name: "nested value", raw: `{"a":{"b":"c"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			store := kvstore.NewMemoryStore()
			require.NoError(t, store.Set(ctx, "k", tt.raw))

			book, err := records.New(store, "k", form.ModeAppend)
			require.NoError(t, err)

			_, err = book.List(ctx)
			assert.ErrorIs(t, err, records.ErrCorruptData)

			err = book.Save(ctx, record("a", "1"))
			assert.ErrorIs(t, err, records.ErrCorruptData, "append must not overwrite corrupt data")
		})
	}
}

func TestBook_StoreError(t *testing.T) {
	t.Parallel()
	boom := errors.New("connection refused")

	book, err := records.New(failingStore{err: boom}, "k", form.ModeAppend)
	require.NoError(t, err)

	_, err = book.List(context.Background())
	assert.ErrorIs(t, err, boom)

	err = book.Save(context.Background(), record("a", "1"))
	assert.ErrorIs(t, err, boom)
}
