package services

import (
	"time"

	log "github.com/sirupsen/logrus"
)

// TrackTime logs how long funcName ran. Use as defer TrackTime("name", time.Now()).
func TrackTime(funcName string, start time.Time) {
	log.WithField("elapsed_ms", time.Since(start).Milliseconds()).Debugf("%s done", funcName)
}
