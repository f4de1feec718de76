package kvstore

import (
	"context"
	"strings"
)

// PrefixSeparator joins namespace segments.
const PrefixSeparator = ":"

type prefixed struct {
	next   Store
	prefix string
}

// Prefixed returns a view of store that namespaces every key with prefix.
// Nested prefixes are joined with PrefixSeparator.
func Prefixed(store Store, prefix string) Store {
	prefix = strings.Trim(prefix, PrefixSeparator)
	if prefix == "" {
		return store
	}
	if p, ok := store.(*prefixed); ok {
		return &prefixed{next: p.next, prefix: p.prefix + PrefixSeparator + prefix}
	}
	return &prefixed{next: store, prefix: prefix}
}

func (p *prefixed) key(key string) (string, error) {
	if key == "" {
		return "", ErrEmptyKey
	}
	return p.prefix + PrefixSeparator + key, nil
}

func (p *prefixed) Get(ctx context.Context, key string) (string, error) {
	k, err := p.key(key)
	if err != nil {
		return "", err
	}
	return p.next.Get(ctx, k)
}

func (p *prefixed) Set(ctx context.Context, key, value string) error {
	k, err := p.key(key)
	if err != nil {
		return err
	}
	return p.next.Set(ctx, k, value)
}

func (p *prefixed) Delete(ctx context.Context, key string) error {
	k, err := p.key(key)
	if err != nil {
		return err
	}
	return p.next.Delete(ctx, k)
}

func (p *prefixed) Update(ctx context.Context, key string, fn UpdateFunc) error {
	k, err := p.key(key)
	if err != nil {
		return err
	}
	return Update(ctx, p.next, k, fn)
}

func (p *prefixed) Healthcheck(ctx context.Context) error {
	return Ping(ctx, p.next)
}

func (p *prefixed) Close() error {
	return Close(p.next)
}
