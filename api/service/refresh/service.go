// Package refresh ticks on a cron schedule for views that redraw themselves.
package refresh

import (
	"github.com/harmony-one/abool"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"

	"github.com/mnee-network/explorer/core/types"
	"github.com/mnee-network/explorer/internal/utils"
)

// Service sends on C at every scheduled time. A tick is dropped when the
// previous one has not been received yet.
type Service struct {
	schedule string
	cron     *cron.Cron
	ticks    chan struct{}
	running  *abool.AtomicBool
}

// New returns a stopped service for the standard cron expression or descriptor
// (@every 10s, @hourly) in schedule.
func New(schedule string) (*Service, error) {
	s := &Service{
		schedule: schedule,
		cron:     cron.New(),
		ticks:    make(chan struct{}, 1),
		running:  abool.New(),
	}
	if _, err := s.cron.AddFunc(schedule, s.tick); err != nil {
		return nil, errors.Wrapf(types.ErrInvalidArgument, "refresh schedule %q: %v", schedule, err)
	}
	return s, nil
}

func (s *Service) tick() {
	select {
	case s.ticks <- struct{}{}:
	default:
		utils.Logger().Debug().Str("schedule", s.schedule).Msg("refresh tick dropped")
	}
}

// C returns the tick channel.
func (s *Service) C() <-chan struct{} {
	return s.ticks
}

// Start starts the scheduler.
func (s *Service) Start() error {
	utils.Logger().Info().Str("schedule", s.schedule).Msg("Starting refresh service")
	s.cron.Start()
	s.running.Set()
	return nil
}

// Stop stops the scheduler and waits for a running tick.
func (s *Service) Stop() error {
	s.running.UnSet()
	<-s.cron.Stop().Done()
	return nil
}

// Status reports a scheduler that is not running.
func (s *Service) Status() error {
	if !s.running.IsSet() {
		return errors.Errorf("refresh scheduler %q not running", s.schedule)
	}
	return nil
}
