package gameday

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// SeasonDate is a wrapper around time.Time that accepts both plain
// "YYYY-MM-DD" dates, as used for START_DATE and END_DATE, and full RFC3339
// timestamps.
type SeasonDate struct {
	time.Time
}

var seasonDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,             // 2006-01-02T15:04:05Z07:00
	"2006-01-02T15:04Z07:00", // 2006-01-02T15:04Z (no seconds)
}

// ParseSeasonDate parses s in loc when s carries no zone of its own.
// An empty string yields the zero date.
func ParseSeasonDate(s string, loc *time.Location) (SeasonDate, error) {
	s = strings.Trim(strings.TrimSpace(s), `"`)
	if s == "" || s == "null" {
		return SeasonDate{}, nil
	}
	if loc == nil {
		loc = time.UTC
	}

	var parseErr error
	for _, layout := range seasonDateLayouts {
		if parsed, err := time.ParseInLocation(layout, s, loc); err == nil {
			return SeasonDate{Time: parsed}, nil
		} else {
			parseErr = err
		}
	}
	return SeasonDate{}, fmt.Errorf("invalid season date %q: %w", s, parseErr)
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (d *SeasonDate) UnmarshalJSON(b []byte) error {
	parsed, err := ParseSeasonDate(string(b), time.UTC)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// UnmarshalYAML implements the yaml.Unmarshaler interface.
func (d *SeasonDate) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseSeasonDate(value.Value, time.UTC)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
