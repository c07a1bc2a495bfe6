package fourcolor

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// EventKind discriminates trace events.
type EventKind string

const (
	// EventVariableSelected records the region the search chose to
	// color next.
	EventVariableSelected EventKind = "variable-selected"
	// EventValueTried records a candidate color committed to a region.
	EventValueTried EventKind = "value-tried"
	// EventValuePruned records a color removed from a region's domain,
	// with the region that caused the removal.
	EventValuePruned EventKind = "value-pruned"
	// EventAssignmentSucceeded records that every region is colored.
	// It is always the final event of a successful trace.
	EventAssignmentSucceeded EventKind = "assignment-succeeded"
	// EventBacktrack records the search abandoning a region's current
	// color after the subtree below it failed.
	EventBacktrack EventKind = "backtrack"
)

// Event is a single search decision. Events are flat records so that
// renderers can replay a search without understanding its internals.
//
// Fields present by kind:
//
//	variable-selected     Region
//	value-tried           Region, Color
//	value-pruned          Region, Color, Cause
//	assignment-succeeded  none
//	backtrack             Region
type Event struct {
	Seq    int       `json:"seq"`
	Kind   EventKind `json:"kind"`
	Region RegionID  `json:"region,omitempty"`
	Color  Color     `json:"color,omitempty"`
	Cause  RegionID  `json:"cause,omitempty"`
}

func (e Event) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%4d %-20s", e.Seq, e.Kind)
	if e.Region != "" {
		fmt.Fprintf(&b, " region=%s", e.Region)
	}
	if e.Color != "" {
		fmt.Fprintf(&b, " color=%s", e.Color)
	}
	if e.Cause != "" {
		fmt.Fprintf(&b, " cause=%s", e.Cause)
	}
	return b.String()
}

// WriteTrace writes events to w as one JSON object per line.
func WriteTrace(w io.Writer, events []Event) error {
	enc := json.NewEncoder(w)
	for i := range events {
		if err := enc.Encode(&events[i]); err != nil {
			return fmt.Errorf("writing trace: %w", err)
		}
	}
	return nil
}

// ReadTrace reads a trace written by WriteTrace.
func ReadTrace(r io.Reader) ([]Event, error) {
	dec := json.NewDecoder(r)
	var events []Event
	for {
		var e Event
		if err := dec.Decode(&e); err != nil {
			if errors.Is(err, io.EOF) {
				return events, nil
			}
			return nil, fmt.Errorf("reading trace: %w", err)
		}
		events = append(events, e)
	}
}
