// Package service runs the long-lived services of the watched dashboard.
package service

import (
	"github.com/harmony-one/abool"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"go.uber.org/multierr"

	"github.com/mnee-network/explorer/core/types"
	"github.com/mnee-network/explorer/internal/utils"
)

// Type is service type.
type Type byte

// Constants for Type.
const (
	Ops Type = iota
	Refresh
)

func (t Type) String() string {
	switch t {
	case Ops:
		return "Ops"
	case Refresh:
		return "Refresh"
	default:
		return "Unknown"
	}
}

// Service is the collection of functions any service needs to implement.
type Service interface {
	Start() error
	Stop() error
}

// StatusReporter is implemented by services that can fail after Start
// returned.
type StatusReporter interface {
	Status() error
}

type registered struct {
	t       Type
	service Service
}

// Manager starts services in registration order and stops them in reverse.
type Manager struct {
	services []registered
	running  *abool.AtomicBool

	logger zerolog.Logger
}

// NewManager creates a new manager
func NewManager() *Manager {
	return &Manager{
		running: abool.New(),
		logger:  utils.Logger().With().Str("module", "service").Logger(),
	}
}

// Register adds service under t. Each type can be registered once.
func (m *Manager) Register(t Type, service Service) error {
	for _, r := range m.services {
		if r.t == t {
			return errors.Wrapf(types.ErrInvalidArgument, "service %v already registered", t)
		}
	}
	m.logger.Info().Str("service", t.String()).Msg("Register Service")
	m.services = append(m.services, registered{t: t, service: service})
	return nil
}

// StartServices starts every service. When one fails the started ones are
// stopped again and the manager stays down.
func (m *Manager) StartServices() error {
	for i, r := range m.services {
		m.logger.Info().Str("type", r.t.String()).Msg("Starting service")
		if err := r.service.Start(); err != nil {
			err = errors.Wrapf(err, "cannot start service [%v]", r.t)
			return multierr.Append(err, m.stopServices(m.services[:i]))
		}
	}
	m.running.Set()
	return nil
}

// StopServices stops all services in the reverse order.
func (m *Manager) StopServices() error {
	m.running.UnSet()
	return m.stopServices(m.services)
}

func (m *Manager) stopServices(services []registered) error {
	var err error
	for i := len(services) - 1; i >= 0; i-- {
		r := services[i]
		m.logger.Info().Str("type", r.t.String()).Msg("Stopping service")
		if stopErr := r.service.Stop(); stopErr != nil {
			err = multierr.Append(err, errors.Wrapf(stopErr, "failed to stop service [%v]", r.t))
		}
	}
	return err
}

// Health is nil while the services run and none of them reports a failure.
func (m *Manager) Health() error {
	if !m.running.IsSet() {
		return errors.New("services not running")
	}
	var err error
	for _, r := range m.services {
		sr, ok := r.service.(StatusReporter)
		if !ok {
			continue
		}
		if status := sr.Status(); status != nil {
			err = multierr.Append(err, errors.Wrapf(status, "service [%v]", r.t))
		}
	}
	return err
}
