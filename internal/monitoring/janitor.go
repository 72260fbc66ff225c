package monitoring

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/statushub/profiles-be/internal/services"
)

// Janitor prunes old audit events on a daily schedule.
type Janitor struct {
	eventSvc  services.EventServiceProvider
	retention time.Duration
	cron      *cron.Cron
}

// NewJanitor creates a janitor keeping events for retentionDays days.
func NewJanitor(eventSvc services.EventServiceProvider, retentionDays int) *Janitor {
	return &Janitor{
		eventSvc:  eventSvc,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
		cron:      cron.New(),
	}
}

// Run registers the daily pruning job and starts the cron runner.
func (j *Janitor) Run() {
	log.Info().Dur("retention", j.retention).Msg("Starting event log janitor...")

	j.cron.AddFunc("@daily", j.prune)
	j.cron.Start()
}

// Stop halts the cron runner, waiting for a running job to finish.
func (j *Janitor) Stop() {
	ctx := j.cron.Stop()
	<-ctx.Done()
	log.Info().Msg("Stopped event log janitor.")
}

func (j *Janitor) prune() {
	cutoff := time.Now().Add(-j.retention)
	removed, err := j.eventSvc.PruneOlderThan(cutoff)
	if err != nil {
		log.Error().Err(err).Msg("Janitor: failed to prune old events")
		return
	}
	log.Info().Int64("removed", removed).Time("cutoff", cutoff).Msg("Janitor: pruned old events")
}
