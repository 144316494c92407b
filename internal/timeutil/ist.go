// Package timeutil pins all market bookkeeping to Indian Standard Time.
// Entry dates, advance dates and settlement periods are calendar days at
// the flower market, so every parse and day-boundary computation happens
// in IST regardless of the server's zone.
package timeutil

import "time"

// IST is UTC+5:30. Asia/Kolkata has no DST, so the fixed-zone fallback
// for hosts without tzdata behaves identically.
var IST *time.Location

func init() {
	var err error
	IST, err = time.LoadLocation("Asia/Kolkata")
	if err != nil {
		IST = time.FixedZone("IST", 5*60*60+30*60)
	}
}

// Layouts used on the wire and in register filenames.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
)

// Now returns the current market time.
func Now() time.Time {
	return time.Now().In(IST)
}

// ParseInIST interprets a wire value as IST wall-clock time.
func ParseInIST(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, IST)
}

// FormatIST renders t as seen at the market.
func FormatIST(t time.Time, layout string) string {
	return t.In(IST).Format(layout)
}

// StartOfDay returns midnight IST of t's market day.
func StartOfDay(t time.Time) time.Time {
	ist := t.In(IST)
	return time.Date(ist.Year(), ist.Month(), ist.Day(), 0, 0, 0, 0, IST)
}

// EndOfDay returns the last instant of t's market day.
func EndOfDay(t time.Time) time.Time {
	ist := t.In(IST)
	return time.Date(ist.Year(), ist.Month(), ist.Day(), 23, 59, 59, 999999999, IST)
}
