package mappers

import "time"

// utcPtr normalises driver-returned times, which may carry a local zone.
func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
