// Package format renders raw record values as display strings.
package format

import (
	"math"
	"math/big"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

const (
	fiatPlaces = 2

	// DefaultIDLength is the number of characters kept by TruncateID.
	DefaultIDLength = 10
	ellipsis        = "..."
)

var satoshisPerCoin = decimal.NewFromInt(btcutil.SatoshiPerBitcoin)

// relativeMagnitudes mirror the phrasing of the dashboard templates: anything
// younger than ten seconds is "just now".
var relativeMagnitudes = []humanize.RelTimeMagnitude{
	{D: 10 * time.Second, Format: "just now", DivBy: time.Second},
	{D: time.Minute, Format: "%d seconds %s", DivBy: time.Second},
	{D: 2 * time.Minute, Format: "1 minute %s", DivBy: 1},
	{D: time.Hour, Format: "%d minutes %s", DivBy: time.Minute},
	{D: 2 * time.Hour, Format: "1 hour %s", DivBy: 1},
	{D: humanize.Day, Format: "%d hours %s", DivBy: time.Hour},
	{D: 2 * humanize.Day, Format: "1 day %s", DivBy: 1},
	{D: humanize.Week, Format: "%d days %s", DivBy: humanize.Day},
	{D: 2 * humanize.Week, Format: "1 week %s", DivBy: 1},
	{D: humanize.Month, Format: "%d weeks %s", DivBy: humanize.Week},
	{D: 2 * humanize.Month, Format: "1 month %s", DivBy: 1},
	{D: humanize.Year, Format: "%d months %s", DivBy: humanize.Month},
	{D: 2 * humanize.Year, Format: "1 year %s", DivBy: 1},
	{D: math.MaxInt64, Format: "%d years %s", DivBy: humanize.Year},
}

const (
	intervalMonth = 30 * humanize.Day
	intervalYear  = 365 * humanize.Day
)

// intervalMagnitudes phrase a span without a direction label; the trailing
// space left by the empty label is trimmed by HumanInterval.
var intervalMagnitudes = []humanize.RelTimeMagnitude{
	{D: 2 * time.Second, Format: "1 second %s", DivBy: 1},
	{D: time.Minute, Format: "%d seconds %s", DivBy: time.Second},
	{D: 2 * time.Minute, Format: "1 minute %s", DivBy: 1},
	{D: time.Hour, Format: "%d minutes %s", DivBy: time.Minute},
	{D: 2 * time.Hour, Format: "1 hour %s", DivBy: 1},
	{D: humanize.Day, Format: "%d hours %s", DivBy: time.Hour},
	{D: 2 * humanize.Day, Format: "1 day %s", DivBy: 1},
	{D: humanize.Week, Format: "%d days %s", DivBy: humanize.Day},
	{D: 2 * humanize.Week, Format: "1 week %s", DivBy: 1},
	{D: intervalMonth, Format: "%d weeks %s", DivBy: humanize.Week},
	{D: 2 * intervalMonth, Format: "1 month %s", DivBy: 1},
	{D: intervalYear, Format: "%d months %s", DivBy: intervalMonth},
	{D: 2 * intervalYear, Format: "1 year %s", DivBy: 1},
	{D: math.MaxInt64, Format: "%d years %s", DivBy: intervalYear},
}

// SatoshisToFiat converts an amount in satoshis to fiat at rate, rendered
// with exactly two fractional digits.
func SatoshisToFiat(value uint64, rate decimal.Decimal) string {
	return SatoshisToFiatDecimal(value, rate).StringFixed(fiatPlaces)
}

// SatoshisToFiatDecimal converts an amount in satoshis to fiat at rate with full precision.
func SatoshisToFiatDecimal(value uint64, rate decimal.Decimal) decimal.Decimal {
	satoshis := decimal.NewFromBigInt(new(big.Int).SetUint64(value), 0)
	return satoshis.Div(satoshisPerCoin).Mul(rate)
}

// Money renders a fiat amount rounded down to two fractional digits.
func Money(amount decimal.Decimal) string {
	return amount.Truncate(fiatPlaces).StringFixed(fiatPlaces)
}

// RelativeTime describes how long before now the unix timestamp lies.
func RelativeTime(unix int64, now time.Time) string {
	return humanize.CustomRelTime(time.Unix(unix, 0), now, "ago", "from now", relativeMagnitudes)
}

// HumanInterval describes a duration in seconds using its largest whole unit.
func HumanInterval(seconds int64) string {
	if seconds <= 0 {
		return "0 seconds"
	}
	start := time.Unix(0, 0)
	return strings.TrimSpace(humanize.CustomRelTime(start, time.Unix(seconds, 0), "", "", intervalMagnitudes))
}

// ThousandsSeparated formats n with comma grouping.
func ThousandsSeparated(n int64) string {
	return humanize.Comma(n)
}

// TruncateID keeps the first maxLen characters of s and marks the cut with an ellipsis.
func TruncateID(s string, maxLen int) string {
	if maxLen < 0 {
		maxLen = 0
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	return string([]rune(s)[:maxLen]) + ellipsis
}
