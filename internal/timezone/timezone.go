package timezone

import (
	"sync"
	"time"

	// Containers built from scratch images ship without a zoneinfo database.
	_ "time/tzdata"
)

// DefaultTimezone is the clinic clock used when the configured zone is unusable.
const DefaultTimezone = "Asia/Kolkata"

var loaded sync.Map // zone name -> *time.Location

func load(tz string) (*time.Location, error) {
	if loc, ok := loaded.Load(tz); ok {
		return loc.(*time.Location), nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, err
	}
	loaded.Store(tz, loc)
	return loc, nil
}

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := load(tz)
	return err == nil
}

// Location resolves tz, falling back to DefaultTimezone and then UTC.
func Location(tz string) *time.Location {
	for _, name := range []string{tz, DefaultTimezone} {
		if name == "" {
			continue
		}
		if loc, err := load(name); err == nil {
			return loc
		}
	}
	return time.UTC
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// DayBounds returns [start of day, start of next day) for t in its own location.
func DayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}
