package scheduler

import (
	"fmt"
	"log"

	"dashboard/internal/engine"

	"github.com/robfig/cron/v3"
)

// Scheduler regenerates the dashboard state on a cron schedule.
type Scheduler struct {
	Cron    *cron.Cron
	Store   *engine.Store
	Rebuild func() *engine.State
}

func NewScheduler(store *engine.Store, rebuild func() *engine.State) *Scheduler {
	return &Scheduler{
		Cron:    cron.New(cron.WithSeconds()),
		Store:   store,
		Rebuild: rebuild,
	}
}

// Register adds the refresh job. Expressions carry a leading seconds field.
func (s *Scheduler) Register(expr string) error {
	if _, err := s.Cron.AddFunc(expr, s.RefreshNow); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop waits for a running refresh to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

func (s *Scheduler) RefreshNow() {
	st := s.Rebuild()
	s.Store.Swap(st)
	log.Printf("[INFO] scheduled refresh: %d customers, %d charts", len(st.Customers), len(st.Panels))
}
