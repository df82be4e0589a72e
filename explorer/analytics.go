package explorer

import (
	"github.com/pkg/errors"

	"github.com/mnee-network/explorer/core/mockgen"
	"github.com/mnee-network/explorer/core/types"
)

// DashboardMetrics returns the dashboard metrics of tf.
func (s *Session) DashboardMetrics(tf types.Timeframe) (types.TimeframeMetrics, error) {
	m, ok := s.dashboard[tf]
	if !ok {
		return types.TimeframeMetrics{}, errors.Wrapf(types.ErrInvalidArgument, "unknown timeframe %q", tf)
	}
	return m, nil
}

// GeneralInfo returns the token snapshot taken when the session was built.
func (s *Session) GeneralInfo() types.GeneralInfo {
	return s.info
}

// Chart generates a fresh series on every call.
func (s *Session) Chart(days int, base, variance float64) ([]types.ChartDataPoint, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.gen.ChartData(days, base, variance)
}

// GrowthChart generates a fresh growth series on every call.
func (s *Session) GrowthChart(days int, base, variance, growth float64) ([]types.ChartDataPoint, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.gen.GrowthSeries(days, base, variance, growth)
}

// PresetChart generates a fresh series of the named chart preset.
func (s *Session) PresetChart(name string, days int) ([]types.ChartDataPoint, error) {
	p, err := mockgen.LookupPreset(name)
	if err != nil {
		return nil, err
	}
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.gen.PresetSeries(p, days)
}

// SupplyDistribution generates a fresh supply breakdown.
func (s *Session) SupplyDistribution(days int) ([]mockgen.SupplyShare, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.gen.SupplyDistribution(days)
}

// TimeRange returns the time range of the analytics view.
func (s *Session) TimeRange() types.TimeRange {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return s.timeRange
}

// Analytics returns the analytics series of the current time range.
func (s *Session) Analytics() mockgen.AnalyticsSeries {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return s.analytics
}

// SetTimeRange selects tr and regenerates the analytics series over it.
func (s *Session) SetTimeRange(tr types.TimeRange) error {
	defer countCommand("set_time_range")

	if tr.Days <= 0 {
		return errors.Wrapf(types.ErrInvalidArgument, "time range %q must span at least one day", tr.Label)
	}
	s.lock.Lock()
	defer s.lock.Unlock()

	series, err := s.gen.Analytics(tr)
	if err != nil {
		return err
	}
	s.timeRange = tr
	s.analytics = series
	s.log.Debug().Str("timeRange", tr.Label).Msg("analytics time range changed")
	return nil
}
