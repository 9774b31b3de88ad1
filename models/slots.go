package models

// DayAvailability is one weekday entry of a doctor's weekly template.
// Day is 0-6 with Sunday = 0; Slots are HH:MM start times.
type DayAvailability struct {
	Day   int      `bson:"day" json:"day"`
	Slots []string `bson:"slots" json:"slots"`
}

// UpsertAvailabilityRequest replaces one weekday's slots wholesale.
// Either Slots or Ranges ("09:00-11:00, 14:00-15:30") may be given.
type UpsertAvailabilityRequest struct {
	Day    *int     `json:"day"`
	Slots  []string `json:"slots"`
	Ranges string   `json:"ranges"`
}

// AvailableSlotsResponse is what a doctor sees for one of their own dates.
type AvailableSlotsResponse struct {
	Date  string   `json:"date"`
	Slots []string `json:"slots"`
}
