// Package jobs holds the background schedules that run alongside the
// HTTP server.
package jobs

import (
	"context"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/cargotrack/tracking-api/internal/core/ports"
)

// DelaySweeper periodically flags in-transit shipments whose ETA has
// passed without a delivery as delayed. It is the only automatic writer
// of the delayed status; reaching the destination is the only thing
// that clears it.
type DelaySweeper struct {
	service  ports.ShipmentService
	schedule string
	cron     *cron.Cron
	log      zerolog.Logger
}

// NewDelaySweeper creates the sweeper. schedule uses standard cron
// syntax plus the @every form, e.g. "@every 10m".
func NewDelaySweeper(service ports.ShipmentService, schedule string, log zerolog.Logger) *DelaySweeper {
	return &DelaySweeper{
		service:  service,
		schedule: schedule,
		cron:     cron.New(),
		log:      log,
	}
}

// Start registers the sweep and begins the schedule.
func (j *DelaySweeper) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		flagged, err := j.service.SweepOverdue(context.Background())
		if err != nil {
			j.log.Error().Err(err).Msg("delay sweep failed")
			return
		}
		if flagged > 0 {
			j.log.Info().Int("flagged", flagged).Msg("delay sweep completed")
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.log.Info().Str("schedule", j.schedule).Msg("delay sweeper started")
	return nil
}

// Stop halts the schedule and waits for a running sweep to finish.
func (j *DelaySweeper) Stop() {
	ctx := j.cron.Stop()
	<-ctx.Done()
	j.log.Info().Msg("delay sweeper stopped")
}
