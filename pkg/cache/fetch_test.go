package cache

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

type failingCache struct{}

func (failingCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, errors.New("backend down")
}
func (failingCache) Set(ctx context.Context, key string, value []byte) error {
	return errors.New("backend down")
}
func (failingCache) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return errors.New("backend down")
}
func (failingCache) Delete(ctx context.Context, key string) error { return errors.New("backend down") }
func (failingCache) Clear(ctx context.Context) error              { return errors.New("backend down") }

func TestFetchCachesResult(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	calls := 0
	fetch := func(ctx context.Context) (string, error) {
		calls++
		return fmt.Sprintf("value-%d", calls), nil
	}

	first, err := Fetch(ctx, m, "k", time.Hour, false, fetch)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Fetch(ctx, m, "k", time.Hour, false, fetch)
	if err != nil {
		t.Fatal(err)
	}
	if first != "value-1" || second != "value-1" {
		t.Errorf("values = %s, %s", first, second)
	}
	if calls != 1 {
		t.Errorf("fetch ran %d times, want 1", calls)
	}
}

func TestFetchRefreshBypassesCache(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	calls := 0
	fetch := func(ctx context.Context) (int, error) {
		calls++
		return calls, nil
	}

	if _, err := Fetch(ctx, m, "k", time.Hour, false, fetch); err != nil {
		t.Fatal(err)
	}
	got, err := Fetch(ctx, m, "k", time.Hour, true, fetch)
	if err != nil {
		t.Fatal(err)
	}
	if got != 2 {
		t.Errorf("refresh returned %d, want fresh value 2", got)
	}

	// The refreshed value replaces the cached one.
	got, err = Fetch(ctx, m, "k", time.Hour, false, fetch)
	if err != nil {
		t.Fatal(err)
	}
	if got != 2 || calls != 2 {
		t.Errorf("got %d with %d fetches", got, calls)
	}
}

func TestFetchErrorNotCached(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	calls := 0
	boom := errors.New("upstream broken")
	fetch := func(ctx context.Context) (string, error) {
		calls++
		if calls == 1 {
			return "", boom
		}
		return "recovered", nil
	}

	if _, err := Fetch(ctx, m, "k", time.Hour, false, fetch); !errors.Is(err, boom) {
		t.Fatalf("error = %v, want %v", err, boom)
	}
	got, err := Fetch(ctx, m, "k", time.Hour, false, fetch)
	if err != nil {
		t.Fatal(err)
	}
	if got != "recovered" {
		t.Errorf("got %q after failed first fetch", got)
	}
}

func TestFetchSurvivesBrokenBackend(t *testing.T) {
	ctx := context.Background()
	got, err := Fetch(ctx, failingCache{}, "k", time.Hour, false, func(ctx context.Context) (string, error) {
		return "direct", nil
	})
	if err != nil {
		t.Fatalf("Fetch with broken backend: %v", err)
	}
	if got != "direct" {
		t.Errorf("got %q", got)
	}
}

func TestFetchDiscardsUndecodableEntry(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	_ = m.Set(ctx, "k", []byte("not json at all {"))

	got, err := Fetch(ctx, m, "k", time.Hour, false, func(ctx context.Context) (int, error) {
		return 42, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if got != 42 {
		t.Errorf("got %d, want direct fetch result", got)
	}
}
