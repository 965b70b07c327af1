package scheduler

import (
	"sync"
	"testing"
	"time"

	"StockPulse/internal/cache"
)

func TestPurgeInterval(t *testing.T) {
	tests := []struct {
		ttl  time.Duration
		want time.Duration
	}{
		{5 * time.Minute, time.Minute},
		{time.Hour, 12 * time.Minute},
		{2 * time.Second, time.Second},
		{0, time.Second},
		{7 * time.Second, time.Second},
	}
	for _, tt := range tests {
		if got := PurgeInterval(tt.ttl); got != tt.want {
			t.Errorf("PurgeInterval(%v): expected %v, got %v", tt.ttl, tt.want, got)
		}
	}
}

func TestRegisterCacheJobs(t *testing.T) {
	s := NewScheduler(cache.New(5 * time.Minute))
	if err := s.RegisterCacheJobs(5 * time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := len(s.Cron.Entries()); n != 2 {
		t.Errorf("expected 2 jobs, got %d", n)
	}

	s = NewScheduler(cache.New(time.Minute))
	if err := s.RegisterCacheJobs(0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := len(s.Cron.Entries()); n != 1 {
		t.Errorf("expected only the purge job, got %d", n)
	}
}

func TestAddJob_InvalidSpec(t *testing.T) {
	s := NewScheduler(cache.New(time.Minute))
	if err := s.AddJob("not a spec", "broken", func() {}); err == nil {
		t.Error("expected error for invalid spec")
	}
}

func TestPurgeJobRuns(t *testing.T) {
	now := time.Now()
	c := cache.New(time.Minute, cache.WithClock(func() time.Time { return now }))
	c.Set("old", []byte("x"), time.Millisecond)
	c.Set("fresh", []byte("y"), time.Hour)
	now = now.Add(time.Second)

	s := NewScheduler(c)
	s.purge()
	if keys := c.Keys(); len(keys) != 1 || keys[0] != "fresh" {
		t.Errorf("expected only fresh key, got %v", keys)
	}
	s.logStats()
}

func TestStartStop(t *testing.T) {
	s := NewScheduler(cache.New(time.Minute))
	done := make(chan struct{})
	var once sync.Once
	if err := s.AddJob("@every 1s", "tick", func() { once.Do(func() { close(done) }) }); err != nil {
		t.Fatal(err)
	}
	s.Start()
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Error("job did not run")
	}
	s.Stop()
}
