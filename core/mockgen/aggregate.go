package mockgen

import (
	"math"
	"sort"

	"github.com/pkg/errors"

	"github.com/mnee-network/explorer/core/types"
)

// TimeframeMetrics returns the activity summary of tf. Volume, count, mint
// and burn activity scale linearly with the timeframe multiplier, active
// addresses with its square root. Averages are not scaled.
func (g *Generator) TimeframeMetrics(tf types.Timeframe) (types.TimeframeMetrics, error) {
	if _, err := types.ParseTimeframe(string(tf)); err != nil {
		return types.TimeframeMetrics{}, err
	}
	m := tf.Multiplier()
	metrics := types.TimeframeMetrics{
		TransactionVolume:  g.uniform(1e6, 1.1e7) * m,
		TransactionCount:   int(float64(g.intRange(1000, 5999)) * m),
		ActiveAddresses:    int(float64(g.intRange(200, 1199)) * math.Sqrt(m)),
		MintActivity:       g.uniform(1e4, 1.1e5) * m,
		BurnActivity:       g.uniform(5e3, 5.5e4) * m,
		AvgTransactionFee:  g.uniform(0.001, 0.011),
		AvgMneeTransferred: g.uniform(100, 1100),
	}
	countGenerated("timeframe_metrics", 1)
	return metrics, nil
}

// DashboardMetrics returns the metrics of every timeframe.
func (g *Generator) DashboardMetrics() types.DashboardMetrics {
	dm := make(types.DashboardMetrics, len(types.AllTimeframes))
	for _, tf := range types.AllTimeframes {
		m, _ := g.TimeframeMetrics(tf)
		dm[tf] = m
	}
	return dm
}

// ResponseTimeMetrics returns the response time of tf in milliseconds. The
// three samples are scaled by the timeframe factor, rounded to one decimal
// and ordered so that Min <= Avg <= Max.
func (g *Generator) ResponseTimeMetrics(tf types.Timeframe) (types.ResponseTimeMetrics, error) {
	if _, err := types.ParseTimeframe(string(tf)); err != nil {
		return types.ResponseTimeMetrics{}, err
	}
	scale := tf.ResponseTimeScale()
	samples := []float64{
		round1(g.uniform(50, 150) * scale),
		round1(g.uniform(20, 70) * scale),
		round1(g.uniform(100, 300) * scale),
	}
	sort.Float64s(samples)
	return types.ResponseTimeMetrics{
		Min: samples[0],
		Avg: samples[1],
		Max: samples[2],
	}, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// GeneralInfo returns a token level snapshot. Market cap and fully diluted
// value are both TotalSupply * price.
func (g *Generator) GeneralInfo() types.GeneralInfo {
	price := g.uniform(0.998, 1.002)
	info := types.GeneralInfo{
		TotalSupply:       TotalSupply,
		HolderCount:       g.intRange(5000, 14999),
		CurrentPrice:      price,
		MarketCap:         TotalSupply * price,
		FullyDilutedValue: TotalSupply * price,
		PegDeviation:      (price - 1) * 100,
		TotalBurned:       g.uniform(1e6, 1.1e7),
		ResponseTimes:     make(map[types.Timeframe]types.ResponseTimeMetrics, len(types.AllTimeframes)),
	}
	for _, tf := range types.AllTimeframes {
		info.ResponseTimes[tf], _ = g.ResponseTimeMetrics(tf)
	}
	countGenerated("general_info", 1)
	return info
}

// ChartData returns days+1 points one day apart, ascending, the last one at
// now. Each value is baseValue plus uniform noise in [-variance/2, variance/2),
// floored at zero.
func (g *Generator) ChartData(days int, baseValue, variance float64) ([]types.ChartDataPoint, error) {
	if err := checkSeries(days, variance); err != nil {
		return nil, err
	}
	now := g.Now()
	points := make([]types.ChartDataPoint, 0, days+1)
	for i := days; i >= 0; i-- {
		value := baseValue + (g.rng.Float64()-0.5)*variance
		points = append(points, types.ChartDataPoint{
			Timestamp: daysAgo(now, i),
			Value:     math.Max(0, value),
		})
	}
	countGenerated("chart_point", len(points))
	return points, nil
}

// GrowthSeries returns days points one day apart, ascending, the last one at
// now. Point i is baseValue + growth*i plus uniform noise in
// [-variance/2, variance/2), floored at zero, and labelled with its date.
func (g *Generator) GrowthSeries(days int, baseValue, variance, growth float64) ([]types.ChartDataPoint, error) {
	if err := checkSeries(days, variance); err != nil {
		return nil, err
	}
	now := g.Now()
	points := make([]types.ChartDataPoint, 0, days)
	for i := 0; i < days; i++ {
		ts := daysAgo(now, days-i-1)
		noise := g.rng.Float64()*variance - variance/2
		points = append(points, types.ChartDataPoint{
			Timestamp: ts,
			Value:     math.Max(0, baseValue+growth*float64(i)+noise),
			Label:     types.MillisToTime(ts).Format("Jan 2"),
		})
	}
	countGenerated("chart_point", len(points))
	return points, nil
}

func checkSeries(days int, variance float64) error {
	if days < 0 {
		return errors.Wrapf(types.ErrInvalidArgument, "days must not be negative: %d", days)
	}
	if variance < 0 || math.IsNaN(variance) {
		return errors.Wrapf(types.ErrInvalidArgument, "variance must not be negative: %v", variance)
	}
	return nil
}

func daysAgo(now int64, days int) int64 {
	return now - int64(days)*day.Milliseconds()
}
