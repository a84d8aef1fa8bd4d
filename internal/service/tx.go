package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

const dateLayout = "2006-01-02"

// today returns the current business date in the restaurant's timezone.
// All closure keys and "today" aggregations use this, never UTC.
func today(loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return time.Now().In(loc).Format(dateLayout)
}

// dayBounds returns the half-open instant range [midnight, next midnight) of a
// business date in the restaurant's timezone. Day filtering always goes to the
// database as instants; letting the session timezone bucket timestamps would
// shift evening records onto the wrong closure date.
func dayBounds(date string, loc *time.Location) (time.Time, time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	start, err := time.ParseInLocation(dateLayout, date, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", date)
	}
	return start, start.AddDate(0, 0, 1), nil
}
