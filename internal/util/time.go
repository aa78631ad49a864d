package util

import (
	"time"

	log "github.com/sirupsen/logrus"
)

// HoldingsDate returns the trading day that a holdings file downloaded at
// input describes. Providers publish after the 4:30 PM New York close, so
// before that time (and on weekends) the file still reflects the previous
// weekday. The result is that calendar date at midnight UTC.
func HoldingsDate(input time.Time) time.Time {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		log.Errorf("Failed to load location 'America/New_York': %v. Falling back to UTC.", err)
		loc = time.UTC
	}
	nowET := input.In(loc)

	published := time.Date(nowET.Year(), nowET.Month(), nowET.Day(), 16, 30, 0, 0, loc)
	day := time.Date(nowET.Year(), nowET.Month(), nowET.Day(), 0, 0, 0, 0, time.UTC)

	// Today's file is not out yet
	if nowET.Before(published) {
		day = day.AddDate(0, 0, -1)
	}

	// Step back over weekends to the last business day
	for day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
		day = day.AddDate(0, 0, -1)
	}

	return day
}
