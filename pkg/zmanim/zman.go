package zmanim

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spencer-p/zmandash/pkg/geo"
)

// Zman is a named result: either an instant, like sunrise, or a duration,
// like a shaah zmanis.
type Zman struct {
	Label string
	// Time is set for instants.
	Time time.Time
	// Duration is set for durations.
	Duration time.Duration
	// Description is optional free text.
	Description string
}

// IsDuration reports whether z holds a duration rather than an instant.
func (z Zman) IsDuration() bool {
	return z.Time.IsZero()
}

func (z Zman) String() string {
	if z.IsDuration() {
		return fmt.Sprintf("%s: %s", z.Label, z.Duration)
	}
	return fmt.Sprintf("%s: %s", z.Label, z.Time.Format("2006-01-02 15:04:05 MST"))
}

// CompareTime orders zmanim by instant, earliest first.
func CompareTime(a, b Zman) int {
	return a.Time.Compare(b.Time)
}

// CompareDuration orders zmanim by duration, shortest first. Equal durations
// compare equal so a stable sort keeps their order.
func CompareDuration(a, b Zman) int {
	switch {
	case a.Duration < b.Duration:
		return -1
	case a.Duration > b.Duration:
		return 1
	}
	return 0
}

// CompareLabel orders zmanim by label, byte-wise and case sensitive.
func CompareLabel(a, b Zman) int {
	return strings.Compare(a.Label, b.Label)
}

// Comparison returns the ordering named "time", "label" or "duration". The
// empty name returns nil, meaning registry order.
func Comparison(name string) (func(a, b Zman) int, error) {
	switch name {
	case "":
		return nil, nil
	case "time":
		return CompareTime, nil
	case "label":
		return CompareLabel, nil
	case "duration":
		return CompareDuration, nil
	}
	return nil, fmt.Errorf("unknown ordering %q: %w", name, geo.ErrInvalidArgument)
}

type zmanJSON struct {
	Label       string     `json:"label"`
	Time        *time.Time `json:"time,omitempty"`
	DurationMS  *int64     `json:"duration_ms,omitempty"`
	Description string     `json:"description,omitempty"`
}

func (z Zman) MarshalJSON() ([]byte, error) {
	out := zmanJSON{Label: z.Label, Description: z.Description}
	if z.IsDuration() {
		ms := z.Duration.Milliseconds()
		out.DurationMS = &ms
	} else {
		out.Time = &z.Time
	}
	return json.Marshal(out)
}

// Row is a computed zman, or the reason it does not occur on the date.
type Row struct {
	Zman
	Err error
}

func (r Row) String() string {
	if r.Err != nil {
		return r.Label + ": none"
	}
	return r.Zman.String()
}

// MarshalJSON writes a failed row as its label and error.
func (r Row) MarshalJSON() ([]byte, error) {
	if r.Err == nil {
		return r.Zman.MarshalJSON()
	}
	return json.Marshal(struct {
		Label string `json:"label"`
		Error string `json:"error"`
	}{r.Label, r.Err.Error()})
}

// Rows lists zs in order, then the failures in errs sorted by name.
func Rows(zs []Zman, errs map[string]error) []Row {
	rows := make([]Row, 0, len(zs)+len(errs))
	for _, z := range zs {
		rows = append(rows, Row{Zman: z})
	}
	failed := make([]string, 0, len(errs))
	for name := range errs {
		failed = append(failed, name)
	}
	slices.Sort(failed)
	for _, name := range failed {
		rows = append(rows, Row{Zman: Zman{Label: name}, Err: errs[name]})
	}
	return rows
}
