package api

import (
	"bytes"
	"encoding/json"
	"time"
)

const dateLayout = "2006-01-02"

var dateLayouts = []string{time.RFC3339Nano, dateLayout, "2006-01-02T15:04:05"}

// Date decodes a calendar date sent either as "2006-01-02" or as an RFC 3339
// timestamp. Values in any other form decode to the zero Date so one odd
// record cannot fail a whole batch.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(b []byte) error {
	d.Time = time.Time{}
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t
			return nil
		}
	}
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(dateLayout))
}
