// Package jobs runs periodic background tasks.
package jobs

import (
	"fmt"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"github.com/xtding233/gem-gacha/internal/ledger"
)

// StatsSource reports ledger activity.
type StatsSource interface {
	Stats() ledger.Stats
}

// Scheduler owns the cron runner.
type Scheduler struct {
	cron  *cron.Cron
	stats StatsSource
}

func NewScheduler(stats StatsSource) *Scheduler {
	return &Scheduler{cron: cron.New(), stats: stats}
}

// Start registers the stats report on a cron schedule and starts the runner.
// An empty schedule starts nothing.
func (s *Scheduler) Start(schedule string) error {
	if schedule == "" {
		return nil
	}
	if _, err := s.cron.AddFunc(schedule, s.ReportStats); err != nil {
		return fmt.Errorf("schedule stats report: %w", err)
	}
	s.cron.Start()
	log.WithField("schedule", schedule).Info("scheduler started")
	return nil
}

// ReportStats logs one activity snapshot.
func (s *Scheduler) ReportStats() {
	st := s.stats.Stats()
	log.WithFields(log.Fields{
		"accounts":      st.Accounts,
		"logins":        st.Logins,
		"draws":         st.Draws,
		"points_spent":  st.PointsSpent,
		"prisms_spent":  st.PrismsSpent,
		"points_earned": st.PointsEarned,
		"prisms_earned": st.PrismsEarned,
		"extractions":   st.Extractions,
		"volumes_sold":  st.VolumesSold,
	}).Info("[CRON] ledger stats")
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info("scheduler stopped")
}
