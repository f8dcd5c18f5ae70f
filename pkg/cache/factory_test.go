package cache

import "testing"

func TestNewByType(t *testing.T) {
	tests := []struct {
		name      string
		cacheType string
		wantErr   bool
	}{
		{"memory", TypeMemory, false},
		{"empty defaults to memory", "", false},
		{"none", TypeNone, false},
		{"unknown", "memcached", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.cacheType, "", "")
			if (err != nil) != tt.wantErr {
				t.Fatalf("New(%q) error = %v, wantErr %v", tt.cacheType, err, tt.wantErr)
			}
			if !tt.wantErr && c == nil {
				t.Error("nil cache without error")
			}
		})
	}
}

func TestNewRedisFallsBackToMemory(t *testing.T) {
	// Nothing listens on this port; the factory must degrade rather
	// than fail startup.
	c, err := New(TypeRedis, "redis://127.0.0.1:1/0", "test:")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, ok := c.(*Memory); !ok {
		t.Errorf("fallback cache is %T, want *Memory", c)
	}
}
