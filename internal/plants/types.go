package plants

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// Status is the server-computed watering urgency of a plant.
type Status string

const (
	StatusUnknown Status = "unknown"
	StatusOK      Status = "ok"
	StatusDue     Status = "due"
	StatusOverdue Status = "overdue"
)

// ParseStatus maps a raw status tag onto the known set. Anything the server
// sends that is not recognised is treated as unknown.
func ParseStatus(raw string) Status {
	switch Status(strings.ToLower(strings.TrimSpace(raw))) {
	case StatusOK:
		return StatusOK
	case StatusDue:
		return StatusDue
	case StatusOverdue:
		return StatusOverdue
	default:
		return StatusUnknown
	}
}

// UnmarshalJSON normalises the status tag.
func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		*s = StatusUnknown
		return nil
	}
	*s = ParseStatus(raw)
	return nil
}

// Item mirrors one entry of /api/today. Nullable fields are pointers; none of
// them is guaranteed to be set for any status.
type Item struct {
	ID                    int64   `json:"id"`
	Name                  string  `json:"name"`
	NormDays              *int    `json:"norm_days"`
	LastWateredAt         *string `json:"last_watered_at"`
	DaysSinceLastWatering *int    `json:"days_since_last_watering"`
	DueInDays             *int    `json:"due_in_days"`
	Status                Status  `json:"status"`
}

// ParsedLastWatered returns the last watering time, or the zero time when the
// plant was never watered or the timestamp is unreadable.
func (i Item) ParsedLastWatered() time.Time {
	if i.LastWateredAt == nil {
		return time.Time{}
	}
	return parseTime(*i.LastWateredAt)
}

// TodayResponse mirrors /api/today.
type TodayResponse struct {
	Items []Item `json:"items"`
}

// WaterRequest is the body of POST /api/water.
type WaterRequest struct {
	PlantIDs []int64 `json:"plant_ids"`
}

// WaterResult mirrors the /api/water response.
type WaterResult struct {
	OK      bool `json:"ok"`
	Updated int  `json:"updated"`
}

// decodeTodayItems is lenient: an empty body, a body that is not JSON, or an
// items field that is missing or not a list all yield an empty list. A bare
// JSON array of items is accepted as well.
func decodeTodayItems(body []byte) []Item {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil
	}
	if trimmed[0] == '[' {
		var items []Item
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil
		}
		return normalizeItems(items)
	}
	var envelope struct {
		Items json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil || len(envelope.Items) == 0 {
		return nil
	}
	var items []Item
	if err := json.Unmarshal(envelope.Items, &items); err != nil {
		return nil
	}
	return normalizeItems(items)
}

// normalizeItems fills in the status of entries that omitted it.
func normalizeItems(items []Item) []Item {
	for i := range items {
		items[i].Status = ParseStatus(string(items[i].Status))
	}
	return items
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
