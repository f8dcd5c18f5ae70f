package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemorySetGet(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	if _, ok, _ := m.Get(ctx, "absent"); ok {
		t.Error("unexpected hit for absent key")
	}

	if err := m.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatal(err)
	}
	got, ok, err := m.Get(ctx, "k")
	if err != nil || !ok || string(got) != "v" {
		t.Errorf("Get = (%s, %v, %v)", got, ok, err)
	}

	if err := m.Delete(ctx, "k"); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := m.Get(ctx, "k"); ok {
		t.Error("key survived Delete")
	}
}

func TestMemoryTTLExpiry(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	current := time.Now()
	m.now = func() time.Time { return current }

	if err := m.SetWithTTL(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := m.Get(ctx, "k"); !ok {
		t.Fatal("entry missing before expiry")
	}

	current = current.Add(2 * time.Minute)
	if _, ok, _ := m.Get(ctx, "k"); ok {
		t.Error("entry visible after expiry")
	}
}

func TestMemoryClear(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	_ = m.Set(ctx, "a", []byte("1"))
	_ = m.Set(ctx, "b", []byte("2"))
	if err := m.Clear(ctx); err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"a", "b"} {
		if _, ok, _ := m.Get(ctx, k); ok {
			t.Errorf("key %s survived Clear", k)
		}
	}
}

func TestKey(t *testing.T) {
	tests := []struct {
		name       string
		components []string
		want       string
	}{
		{"all components", []string{"vm_routes", "sub1", "rg1", "vm1"}, "vm_routes:sub1:rg1:vm1"},
		{"empty components skipped", []string{"vnets", "sub1", ""}, "vnets:sub1"},
		{"single", []string{"subscriptions"}, "subscriptions"},
		{"none", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Key(tt.components...); got != tt.want {
				t.Errorf("Key = %q, want %q", got, tt.want)
			}
		})
	}
}
