package server

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// yearParam parses the "year" query parameter, falling back to def when it
// is absent.
func yearParam(q url.Values, def int) (int, error) {
	raw := strings.TrimSpace(q.Get("year"))
	if raw == "" {
		return def, nil
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid year %q", raw)
	}
	return year, nil
}

// statesParam returns the repeated "state" query parameter in request order.
func statesParam(q url.Values) []string {
	states := make([]string, 0, len(q["state"]))
	for _, s := range q["state"] {
		if s = strings.TrimSpace(s); s != "" {
			states = append(states, s)
		}
	}
	return states
}

// yearSignal is the year dropdown value. Bound selects may report it as a
// JSON number or a string.
type yearSignal int

func (y *yearSignal) UnmarshalJSON(b []byte) error {
	var n int
	if err := json.Unmarshal(b, &n); err == nil {
		*y = yearSignal(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("year must be a number or string: %w", err)
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("invalid year %q", s)
	}
	*y = yearSignal(n)
	return nil
}

// stateList is the state dropdown value: a list, or a single string when
// only one option is bound.
type stateList []string

func (l *stateList) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*l = stateList{}
		return nil
	}
	var many []string
	if err := json.Unmarshal(b, &many); err == nil {
		*l = many
		return nil
	}
	var one string
	if err := json.Unmarshal(b, &one); err != nil {
		return fmt.Errorf("states must be a string or list of strings: %w", err)
	}
	if one == "" {
		*l = stateList{}
		return nil
	}
	*l = stateList{one}
	return nil
}

// MapSignals are the page signals read by the map update handler.
type MapSignals struct {
	Year *yearSignal `json:"year"`
}

// LineSignals are the page signals read by the line chart update handler.
type LineSignals struct {
	States stateList `json:"states"`
}
