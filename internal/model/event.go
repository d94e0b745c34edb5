package model

import "encoding/json"

// rawEvent tolerates the backend's field aliases.
type rawEvent struct {
	ID           string `json:"_id"`
	AltID        string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Venue        string `json:"venue"`
	Location     string `json:"location"`
	EventDate    string `json:"eventDate"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	Department   string `json:"department"`
	Status       string `json:"status"`
	Attendees    int    `json:"attendees"`
	MaxAttendees int    `json:"maxAttendees"`
}

// UnmarshalJSON folds the backend's alias pairs onto the canonical fields.
func (e *Event) UnmarshalJSON(data []byte) error {
	var raw rawEvent
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*e = Event{
		ID:           firstNonEmpty(raw.ID, raw.AltID),
		Title:        raw.Title,
		Description:  raw.Description,
		Venue:        firstNonEmpty(raw.Venue, raw.Location),
		EventDate:    firstNonEmpty(raw.EventDate, raw.Date),
		Time:         raw.Time,
		Department:   raw.Department,
		Status:       normalizeStatus(raw.Status),
		Attendees:    raw.Attendees,
		MaxAttendees: raw.MaxAttendees,
	}
	return nil
}

func normalizeStatus(s string) string {
	switch s {
	case EventUpcoming, EventOngoing, EventCompleted:
		return s
	default:
		return EventUpcoming
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
