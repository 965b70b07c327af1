package scheduler

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"StockPulse/internal/cache"
)

// minPurgeInterval is the shortest period between expired-entry sweeps.
const minPurgeInterval = time.Second

// Scheduler runs periodic maintenance jobs.
type Scheduler struct {
	Cron  *cron.Cron
	Cache *cache.Cache
}

// NewScheduler creates a new Scheduler.
func NewScheduler(c *cache.Cache) *Scheduler {
	return &Scheduler{
		Cron:  cron.New(cron.WithSeconds()),
		Cache: c,
	}
}

// RegisterCacheJobs registers the stats snapshot and the expired-entry purge.
func (s *Scheduler) RegisterCacheJobs(statsInterval time.Duration) error {
	if statsInterval > 0 {
		if err := s.AddJob(every(statsInterval), "cache stats", s.logStats); err != nil {
			return err
		}
	}
	if err := s.AddJob(every(PurgeInterval(s.Cache.DefaultTTL())), "cache purge", s.purge); err != nil {
		return err
	}
	return nil
}

// AddJob registers fn under a cron spec (seconds field enabled).
func (s *Scheduler) AddJob(spec, name string, fn func()) error {
	if _, err := s.Cron.AddFunc(spec, fn); err != nil {
		return fmt.Errorf("register %s job: %w", name, err)
	}
	log.Printf("[INFO] scheduled %s job (%s)", name, spec)
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// PurgeInterval is a fifth of the default TTL, at least one second.
func PurgeInterval(defaultTTL time.Duration) time.Duration {
	d := defaultTTL / 5
	if d < minPurgeInterval {
		d = minPurgeInterval
	}
	return d.Truncate(time.Second)
}

func (s *Scheduler) logStats() {
	s.Cache.LogStats()
}

func (s *Scheduler) purge() {
	if n := s.Cache.Purge(); n > 0 {
		log.Printf("[INFO] cache purge: removed %d expired entries", n)
	}
}

func every(d time.Duration) string {
	return "@every " + d.String()
}
