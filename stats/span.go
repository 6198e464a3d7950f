package stats

import (
	"fmt"
	"time"
)

// Span is a named interval preset, mirroring the tabs the statistics view
// offers.
type Span string

const (
	SpanSession Span = "session"
	SpanDay     Span = "day"
	SpanWeek    Span = "week"
	SpanMonth   Span = "month"
	SpanAll     Span = "all"
)

// Start resolves the span to an interval-start instant. sessionStart is
// only consulted for SpanSession; SpanAll yields the zero time, which is at
// or before every trade.
func (s Span) Start(now, sessionStart time.Time) (time.Time, error) {
	switch s {
	case SpanSession:
		return sessionStart, nil
	case SpanDay:
		return now.Add(-24 * time.Hour), nil
	case SpanWeek:
		return now.Add(-7 * 24 * time.Hour), nil
	case SpanMonth:
		return now.AddDate(0, -1, 0), nil
	case SpanAll:
		return time.Time{}, nil
	default:
		return time.Time{}, fmt.Errorf("unknown span %q", string(s))
	}
}
