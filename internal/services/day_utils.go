package services

import (
	"time"

	"github.com/terraincognita07/fitledger/internal/models"
)

// Clock supplies wall-clock time. Day boundaries are taken in the location
// the services were built with.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

// DayKey is the calendar-date string of value in location.
func DayKey(value time.Time, location *time.Location) string {
	return DateAtLocation(value, location).Format(models.LogDateLayout)
}

// PreviousDayKey steps back one calendar day, DST safe.
func PreviousDayKey(value time.Time, location *time.Location) string {
	return DateAtLocation(value, location).AddDate(0, 0, -1).Format(models.LogDateLayout)
}

// ParseDayKey validates a YYYY-MM-DD string and returns it normalized.
func ParseDayKey(raw string, location *time.Location) (string, error) {
	if location == nil {
		location = time.UTC
	}
	parsed, err := time.ParseInLocation(models.LogDateLayout, raw, location)
	if err != nil {
		return "", err
	}
	return parsed.Format(models.LogDateLayout), nil
}
