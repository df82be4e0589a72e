package mockgen

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/mnee-network/explorer/core/types"
)

// ChartPreset holds the parameters of a standalone chart series.
type ChartPreset struct {
	Name     string
	Title    string
	Base     float64
	Variance float64
	Growth   float64
}

// Chart presets
var (
	PresetDailyTransactions = ChartPreset{"daily-transactions", "Daily Transactions", 50000, 10000, 200}
	PresetMarketCap         = ChartPreset{"market-cap", "Market Cap", 1.2e9, 5e7, 5e5}
	PresetTotalSupply       = ChartPreset{"total-supply", "Total Supply", 1e9, 5e6, 1e5}
	PresetSupplyGrowth      = ChartPreset{"supply-growth", "Supply Growth", 5e6, 1e6, 5e4}
	PresetTotalAddresses    = ChartPreset{"total-addresses", "Total Addresses", 125000, 5000, 400}
	PresetUniqueAddresses   = ChartPreset{"unique-addresses", "Unique Addresses", 8000, 2000, 100}
	PresetCirculatingSupply = ChartPreset{"circulating", "Circulating Supply", 8e8, 5e6, 1e5}
	PresetLockedSupply      = ChartPreset{"locked", "Locked Supply", 1.5e8, 2e6, 5e4}
	PresetBurnedSupply      = ChartPreset{"burned", "Burned Supply", 5e7, 1e6, 2e4}
)

var presets = map[string]ChartPreset{}

func init() {
	for _, p := range []ChartPreset{
		PresetDailyTransactions, PresetMarketCap, PresetTotalSupply, PresetSupplyGrowth,
		PresetTotalAddresses, PresetUniqueAddresses,
		PresetCirculatingSupply, PresetLockedSupply, PresetBurnedSupply,
	} {
		presets[p.Name] = p
	}
}

// LookupPreset returns the preset registered under name.
func LookupPreset(name string) (ChartPreset, error) {
	p, ok := presets[name]
	if !ok {
		return ChartPreset{}, errors.Wrapf(types.ErrInvalidArgument, "unknown chart %q", name)
	}
	return p, nil
}

// PresetNames returns the sorted names of every preset.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PresetSeries generates the growth series of p over days.
func (g *Generator) PresetSeries(p ChartPreset, days int) ([]types.ChartDataPoint, error) {
	return g.GrowthSeries(days, p.Base, p.Variance, p.Growth)
}

// SupplyShare is one slice of the supply distribution.
type SupplyShare struct {
	Name    string  `json:"name"`
	Value   float64 `json:"value"`
	Percent float64 `json:"percent"`
}

// SupplyDistribution returns the latest circulating, locked and burned
// supply over days, each with its share of their sum.
func (g *Generator) SupplyDistribution(days int) ([]SupplyShare, error) {
	parts := []ChartPreset{PresetCirculatingSupply, PresetLockedSupply, PresetBurnedSupply}
	shares := make([]SupplyShare, 0, len(parts))
	total := 0.0
	for _, p := range parts {
		series, err := g.PresetSeries(p, days)
		if err != nil {
			return nil, err
		}
		var last float64
		if len(series) != 0 {
			last = series[len(series)-1].Value
		}
		total += last
		shares = append(shares, SupplyShare{Name: p.Title, Value: last})
	}
	if total > 0 {
		for i := range shares {
			shares[i].Percent = shares[i].Value / total * 100
		}
	}
	return shares, nil
}

// AnalyticsSeries are the series of the analytics view for one time range.
type AnalyticsSeries struct {
	TimeRange           types.TimeRange        `json:"timeRange"`
	NewAddresses        []types.ChartDataPoint `json:"newAddressesPerDay"`
	ActiveAddresses     []types.ChartDataPoint `json:"activeAddressesPerDay"`
	CumulativeAddresses []types.ChartDataPoint `json:"cumulativeAddressGrowth"`
	BlockTimeTrends     []types.ChartDataPoint `json:"blockTimeTrends"`
	BlockProductionRate []types.ChartDataPoint `json:"blockProductionRate"`
}

// Analytics generates the analytics series for tr.
func (g *Generator) Analytics(tr types.TimeRange) (AnalyticsSeries, error) {
	as := AnalyticsSeries{TimeRange: tr}
	for _, s := range []struct {
		dst            *[]types.ChartDataPoint
		base, variance float64
	}{
		{&as.NewAddresses, 100, 50},
		{&as.ActiveAddresses, 500, 200},
		{&as.CumulativeAddresses, 10000, 500},
		{&as.BlockTimeTrends, 600, 100},
		{&as.BlockProductionRate, 144, 20},
	} {
		series, err := g.ChartData(tr.Days, s.base, s.variance)
		if err != nil {
			return AnalyticsSeries{}, err
		}
		*s.dst = series
	}
	return as, nil
}
