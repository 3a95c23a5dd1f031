package settlement

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const batchNumberPrefix = "RTGSB"

// Config describes the RTGS operating window. All values are interpreted in the
// location of the timestamps passed to the calculator.
type Config struct {
	StartHour       int
	EndHour         int
	EndMinute       int
	CutoffHour      int
	CutoffMinute    int
	SettlementDelay time.Duration
	NextDayHour     int
}

// DefaultConfig is the standard 09:00-16:30 window with a 16:00 same-day
// cutoff, 30 minute expected settlement, and next-business-day opening at 10:00.
func DefaultConfig() Config {
	return Config{
		StartHour:       9,
		EndHour:         16,
		EndMinute:       30,
		CutoffHour:      16,
		CutoffMinute:    0,
		SettlementDelay: 30 * time.Minute,
		NextDayHour:     10,
	}
}

// Calculator computes operating hours, cutoffs, and expected settlement and
// batch timing. It is pure: every operation takes the reference time as a
// parameter and never reads the wall clock.
type Calculator struct {
	cfg Config
}

func NewCalculator(cfg Config) *Calculator {
	return &Calculator{cfg: cfg}
}

// IsWithinOperatingHours reports whether now falls inside the settlement
// window. Weekends are always outside the window.
func (c *Calculator) IsWithinOperatingHours(now time.Time) bool {
	if isWeekend(now) {
		return false
	}
	if now.Hour() < c.cfg.StartHour {
		return false
	}
	if now.Hour() < c.cfg.EndHour {
		return true
	}
	return now.Hour() == c.cfg.EndHour && now.Minute() <= c.cfg.EndMinute
}

// IsBeforeCutoff reports whether now is strictly before the same-day
// processing cutoff.
func (c *Calculator) IsBeforeCutoff(now time.Time) bool {
	cutoff := time.Date(now.Year(), now.Month(), now.Day(), c.cfg.CutoffHour, c.cfg.CutoffMinute, 0, 0, now.Location())
	return now.Before(cutoff)
}

// ExpectedSettlementTime returns when a transaction accepted at txnTime is
// expected to settle: inside the window and before cutoff it settles after the
// configured delay, otherwise it rolls to the next business day's opening slot.
func (c *Calculator) ExpectedSettlementTime(txnTime time.Time) time.Time {
	if c.IsWithinOperatingHours(txnTime) && c.IsBeforeCutoff(txnTime) {
		return txnTime.Add(c.cfg.SettlementDelay)
	}
	return c.nextBusinessDayOpen(txnTime)
}

func (c *Calculator) nextBusinessDayOpen(t time.Time) time.Time {
	next := t.AddDate(0, 0, 1)
	for isWeekend(next) {
		next = next.AddDate(0, 0, 1)
	}
	return time.Date(next.Year(), next.Month(), next.Day(), c.cfg.NextDayHour, 0, 0, 0, t.Location())
}

// GenerateBatchNumber derives a batch number from the scheduled time truncated
// to the minute, plus a random suffix so two batches scheduled in the same
// minute never collide.
func (c *Calculator) GenerateBatchNumber(batchTime time.Time) string {
	return fmt.Sprintf("%s%s-%s", batchNumberPrefix, batchTime.Format("200601021504"), uuid.NewString()[:6])
}

func isWeekend(t time.Time) bool {
	return t.Weekday() == time.Saturday || t.Weekday() == time.Sunday
}
