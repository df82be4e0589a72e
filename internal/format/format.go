// Package format renders explorer values for display.
package format

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"github.com/mnee-network/explorer/core/types"
)

// Number abbreviates num with a K, M or B suffix.
func Number(num float64, decimals int) string {
	switch {
	case num >= 1e9:
		return fixed(num/1e9, decimals) + "B"
	case num >= 1e6:
		return fixed(num/1e6, decimals) + "M"
	case num >= 1e3:
		return fixed(num/1e3, decimals) + "K"
	}
	return fixed(num, decimals)
}

// Currency renders num in dollars with thousands separators.
func Currency(num float64, decimals int) string {
	if num < 0 {
		return "-$" + grouped(-num, decimals)
	}
	return "$" + grouped(num, decimals)
}

// MNEE renders a token amount with thousands separators.
func MNEE(num float64, decimals int) string {
	return grouped(num, decimals) + " 1sat"
}

// Address shortens addr to its first and last chars characters.
func Address(addr string, chars int) string {
	return ellipsis(addr, chars)
}

// Txid shortens a transaction id to its first and last chars characters.
func Txid(txid string, chars int) string {
	return ellipsis(txid, chars)
}

func ellipsis(s string, chars int) string {
	if chars <= 0 || len(s) < chars*2 {
		return s
	}
	return s[:chars] + "..." + s[len(s)-chars:]
}

// Date renders a millisecond timestamp as "Jan 2, 2006".
func Date(ms int64) string {
	return types.MillisToTime(ms).Format("Jan 2, 2006")
}

// DateTime renders a millisecond timestamp with seconds.
func DateTime(ms int64) string {
	return types.MillisToTime(ms).Format("Jan 2, 2006, 03:04:05 PM")
}

// TimeAgo renders the age of a millisecond timestamp relative to now.
func TimeAgo(ms int64, now time.Time) string {
	seconds := int64(now.Sub(types.MillisToTime(ms)) / time.Second)
	if seconds < 60 {
		return fmt.Sprintf("%ds ago", seconds)
	}
	minutes := seconds / 60
	if minutes < 60 {
		return fmt.Sprintf("%dm ago", minutes)
	}
	hours := minutes / 60
	if hours < 24 {
		return fmt.Sprintf("%dh ago", hours)
	}
	return fmt.Sprintf("%dd ago", hours/24)
}

// Duration renders milliseconds as "120ms" below one second and "1.50s" above.
func Duration(ms float64) string {
	if ms < 1000 {
		return fixed(ms, 0) + "ms"
	}
	return fixed(ms/1000, 2) + "s"
}

// Percentage renders num followed by a percent sign.
func Percentage(num float64, decimals int) string {
	return fixed(num, decimals) + "%"
}

func fixed(num float64, decimals int) string {
	return decimal.NewFromFloat(num).StringFixed(int32(decimals))
}

// grouped renders num with a fixed number of decimals and comma separated
// thousands.
func grouped(num float64, decimals int) string {
	s := fixed(num, decimals)
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	neg := strings.HasPrefix(intPart, "-")
	intPart = strings.TrimPrefix(intPart, "-")

	n, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return s
	}
	res := humanize.Comma(n) + frac
	if neg {
		res = "-" + res
	}
	return res
}
