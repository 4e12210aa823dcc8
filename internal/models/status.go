// ABOUTME: Play status of a my-games entry
// ABOUTME: Closed enum with parsing and display labels

package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Status is the play state of a my-games entry.
type Status string

const (
	StatusNotPlayed Status = "NOT_PLAYED"
	StatusPlaying   Status = "PLAYING"
	StatusCompleted Status = "COMPLETED"
	StatusAbandoned Status = "ABANDONED"
	StatusOnHold    Status = "ON_HOLD"
	StatusWishlist  Status = "WISHLIST"
)

// Statuses lists every status in display order.
var Statuses = []Status{
	StatusNotPlayed,
	StatusPlaying,
	StatusCompleted,
	StatusAbandoned,
	StatusOnHold,
	StatusWishlist,
}

// ParseStatus accepts a status name in any case, with '-' or ' ' for '_'.
func ParseStatus(s string) (Status, error) {
	norm := strings.ToUpper(strings.TrimSpace(s))
	norm = strings.NewReplacer("-", "_", " ", "_").Replace(norm)
	for _, st := range Statuses {
		if string(st) == norm {
			return st, nil
		}
	}
	return "", fmt.Errorf("invalid status %q (must be one of %s)", s, joinStatuses(Statuses))
}

// Label returns the human-readable name.
func (s Status) Label() string {
	switch s {
	case StatusNotPlayed:
		return "Not played"
	case StatusPlaying:
		return "Playing"
	case StatusCompleted:
		return "Completed"
	case StatusAbandoned:
		return "Abandoned"
	case StatusOnHold:
		return "On hold"
	case StatusWishlist:
		return "Wishlist"
	default:
		return string(s)
	}
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	for _, st := range Statuses {
		if s == st {
			return true
		}
	}
	return false
}

// UnmarshalJSON rejects statuses outside the closed set.
func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == "" {
		*s = ""
		return nil
	}
	st, err := ParseStatus(raw)
	if err != nil {
		return err
	}
	*s = st
	return nil
}

// ParseStatusList parses a comma-separated list of statuses.
func ParseStatusList(csv string) ([]Status, error) {
	var out []Status
	for _, part := range strings.Split(csv, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		st, err := ParseStatus(part)
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, nil
}

func joinStatuses(list []Status) string {
	parts := make([]string, len(list))
	for i, st := range list {
		parts[i] = string(st)
	}
	return strings.Join(parts, ", ")
}
