// services/availability/resolver.go
package availability

import "amedick/models"

// WeeklyAvailability maps a weekday (Sunday = 0) to the slot start times offered on it.
type WeeklyAvailability map[int][]string

// FromDays builds a template from the stored per-day entries.
// Should the store ever hold two entries for one weekday, their slots are merged.
func FromDays(days []models.DayAvailability) WeeklyAvailability {
	w := make(WeeklyAvailability, len(days))
	for _, d := range days {
		w[d.Day] = append(w[d.Day], d.Slots...)
	}
	return w
}

// ResolveAvailableSlots returns the template slots for date's weekday that
// are not in booked, sorted ascending. The result is never nil.
func ResolveAvailableSlots(template WeeklyAvailability, date string, booked []string) ([]string, error) {
	weekday, err := Weekday(date)
	if err != nil {
		return nil, err
	}

	taken := make(map[string]struct{}, len(booked))
	for _, b := range booked {
		taken[b] = struct{}{}
	}

	free := make([]string, 0, len(template[weekday]))
	for _, s := range template[weekday] {
		if _, ok := taken[s]; ok {
			continue
		}
		free = append(free, s)
	}
	return NormalizeSlots(free), nil
}
