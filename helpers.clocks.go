package main

import (
	"time"
)

// Clocker provides the current time.
type Clocker interface {
	Now() time.Time
}

// TickerClocker matches zapcore.Clock so a Clocker can timestamp log entries.
type TickerClocker interface {
	Clocker
	NewTicker(time.Duration) *time.Ticker
}

var (
	_ Clocker       = (*Clock)(nil)
	_ TickerClocker = (*TickClock)(nil)
)

// Clock reads the system time in a fixed location: UTC in production
// and the local timezone otherwise.
type Clock struct {
	loc *time.Location
}

func NewClock(utc bool) *Clock {
	if utc {
		return &Clock{loc: time.UTC}
	}
	return &Clock{loc: time.Local}
}

func (c *Clock) Now() time.Time {
	return time.Now().In(c.loc)
}

// TickClock adds real tickers to any Clocker.
type TickClock struct {
	clock Clocker
}

func NewTickClock(c Clocker) *TickClock {
	return &TickClock{clock: c}
}

func (tc *TickClock) Now() time.Time {
	return tc.clock.Now()
}

func (tc *TickClock) NewTicker(d time.Duration) *time.Ticker {
	return time.NewTicker(d)
}
