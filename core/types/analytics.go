package types

import (
	"strings"

	"github.com/pkg/errors"
)

// Timeframe is the window a dashboard metric is aggregated over.
type Timeframe string

// Timeframes
const (
	Timeframe1D  Timeframe = "1"
	Timeframe7D  Timeframe = "7"
	Timeframe30D Timeframe = "30"
	Timeframe6M  Timeframe = "6M"
	TimeframeAll Timeframe = "all"
)

// AllTimeframes lists the timeframes from the narrowest to the widest.
var AllTimeframes = []Timeframe{Timeframe1D, Timeframe7D, Timeframe30D, Timeframe6M, TimeframeAll}

var timeframeMultipliers = map[Timeframe]float64{
	Timeframe1D:  1,
	Timeframe7D:  7,
	Timeframe30D: 30,
	Timeframe6M:  180,
	TimeframeAll: 365,
}

var responseTimeScales = map[Timeframe]float64{
	Timeframe1D:  1.0,
	Timeframe7D:  1.05,
	Timeframe30D: 1.1,
	Timeframe6M:  1.15,
	TimeframeAll: 1.2,
}

// ParseTimeframe parses the string form of a timeframe.
func ParseTimeframe(s string) (Timeframe, error) {
	tf := Timeframe(s)
	if _, ok := timeframeMultipliers[tf]; !ok {
		return "", errors.Wrapf(ErrInvalidArgument, "unknown timeframe %q", s)
	}
	return tf, nil
}

// Multiplier returns the nominal duration of the timeframe in days.
func (tf Timeframe) Multiplier() float64 {
	return timeframeMultipliers[tf]
}

// ResponseTimeScale returns the factor applied to response times of the timeframe.
func (tf Timeframe) ResponseTimeScale() float64 {
	return responseTimeScales[tf]
}

// TimeframeMetrics is the activity summary of one timeframe.
type TimeframeMetrics struct {
	TransactionVolume  float64 `json:"transactionVolume"`
	TransactionCount   int     `json:"transactionCount"`
	ActiveAddresses    int     `json:"activeAddresses"`
	MintActivity       float64 `json:"mintActivity"`
	BurnActivity       float64 `json:"burnActivity"`
	AvgTransactionFee  float64 `json:"avgTransactionFee"`
	AvgMneeTransferred float64 `json:"avgMneeTransferred"`
}

// DashboardMetrics maps every timeframe to its metrics.
type DashboardMetrics map[Timeframe]TimeframeMetrics

// ResponseTimeMetrics is the response time of the token API in milliseconds.
type ResponseTimeMetrics struct {
	Avg float64 `json:"avg"`
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// GeneralInfo is a token level snapshot.
type GeneralInfo struct {
	TotalSupply       float64                           `json:"totalSupply"`
	HolderCount       int                               `json:"holderCount"`
	CurrentPrice      float64                           `json:"currentPrice"`
	MarketCap         float64                           `json:"marketCap"`
	FullyDilutedValue float64                           `json:"fullyDilutedValue"`
	PegDeviation      float64                           `json:"pegDeviation"`
	TotalBurned       float64                           `json:"totalBurned"`
	ResponseTimes     map[Timeframe]ResponseTimeMetrics `json:"mneeV2ResponseTime"`
}

// ChartDataPoint is a single point of a time series.
type ChartDataPoint struct {
	Timestamp int64   `json:"timestamp"`
	Value     float64 `json:"value"`
	Label     string  `json:"label,omitempty"`
}

// TimeRange is a selectable chart window.
type TimeRange struct {
	Label string `json:"label"`
	Days  int    `json:"days"`
}

// Time ranges offered by the analytics views.
var (
	TimeRange1D  = TimeRange{Label: "1D", Days: 1}
	TimeRange7D  = TimeRange{Label: "7D", Days: 7}
	TimeRange30D = TimeRange{Label: "30D", Days: 30}
	TimeRange6M  = TimeRange{Label: "6M", Days: 180}
	TimeRangeAll = TimeRange{Label: "All", Days: 365}

	TimeRanges       = []TimeRange{TimeRange1D, TimeRange7D, TimeRange30D, TimeRange6M, TimeRangeAll}
	DefaultTimeRange = TimeRange30D
)

// ParseTimeRange parses a time range label, case insensitive.
func ParseTimeRange(label string) (TimeRange, error) {
	for _, tr := range TimeRanges {
		if strings.EqualFold(tr.Label, label) {
			return tr, nil
		}
	}
	return TimeRange{}, errors.Wrapf(ErrInvalidArgument, "unknown time range %q", label)
}

// Theme is the color theme preference.
type Theme string

// Themes
const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// DefaultTheme is used when no preference is stored.
const DefaultTheme = ThemeLight

// ParseTheme parses the string form of a theme.
func ParseTheme(s string) (Theme, error) {
	switch Theme(s) {
	case ThemeLight, ThemeDark:
		return Theme(s), nil
	}
	return "", errors.Wrapf(ErrInvalidArgument, "unknown theme %q", s)
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}
