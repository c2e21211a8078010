package querycache

import (
	"testing"
	"time"
)

func TestDefaultPolicy(t *testing.T) {
	p := DefaultPolicy()

	if p.StaleTimeMS() != 300000 {
		t.Errorf("staleTime = %d, want 300000", p.StaleTimeMS())
	}
	if p.GCTimeMS() != 600000 {
		t.Errorf("gcTime = %d, want 600000", p.GCTimeMS())
	}
	if p.StaleTime() != 5*time.Minute || p.GCTime() != 10*time.Minute {
		t.Errorf("durations = %v/%v", p.StaleTime(), p.GCTime())
	}
	if p.Retry() != 1 {
		t.Errorf("retry = %d, want 1", p.Retry())
	}
	if p.RefetchOnWindowFocus() {
		t.Error("refetchOnWindowFocus should be false")
	}
	if p.RefetchOnMount() {
		t.Error("refetchOnMount should be false")
	}
}

func TestDefaultPolicy_IsShared(t *testing.T) {
	a := DefaultPolicy()
	b := DefaultPolicy()
	if a != b {
		t.Errorf("DefaultPolicy() returned different values: %+v vs %+v", a, b)
	}
}
