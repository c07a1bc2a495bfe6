// Package runfile reads and writes recorded solver runs. A run file is
// JSON lines: one header record describing the problem, one record per
// trace event in order, and one trailer record carrying the verdict.
// The flat shape is the boundary contract toward renderers; nothing in
// a run file refers to solver internals.
package runfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fourcolor/fourcolor/pkg/fourcolor"
)

// Run is one recorded solve: the problem as posed plus its Result.
type Run struct {
	MapName string
	Regions []fourcolor.RegionID
	Borders [][2]fourcolor.RegionID
	Palette fourcolor.Palette
	Result  *fourcolor.Result
}

// Graph rebuilds the recorded problem graph.
func (r *Run) Graph() (*fourcolor.Graph, error) {
	borders := make(map[fourcolor.RegionID][]fourcolor.RegionID, len(r.Regions))
	for _, b := range r.Borders {
		borders[b[0]] = append(borders[b[0]], b[1])
		borders[b[1]] = append(borders[b[1]], b[0])
	}
	return fourcolor.NewGraph(r.Regions, borders)
}

const (
	recordRun    = "run"
	recordEvent  = "event"
	recordResult = "result"
)

type headerRecord struct {
	Record  string                  `json:"record"`
	MapName string                  `json:"map,omitempty"`
	Regions []fourcolor.RegionID    `json:"regions"`
	Borders [][2]fourcolor.RegionID `json:"borders"`
	Palette fourcolor.Palette       `json:"palette"`
}

type eventRecord struct {
	Record string `json:"record"`
	fourcolor.Event
}

type trailerRecord struct {
	Record     string               `json:"record"`
	RunID      string               `json:"run_id"`
	Outcome    fourcolor.Outcome    `json:"outcome"`
	Assignment fourcolor.Assignment `json:"assignment,omitempty"`
	Stats      fourcolor.Stats      `json:"stats"`
}

// Write writes run as JSON lines.
func Write(w io.Writer, run *Run) error {
	enc := json.NewEncoder(w)
	header := headerRecord{
		Record:  recordRun,
		MapName: run.MapName,
		Regions: run.Regions,
		Borders: run.Borders,
		Palette: run.Palette,
	}
	if err := enc.Encode(&header); err != nil {
		return fmt.Errorf("writing run header: %w", err)
	}
	for _, e := range run.Result.Events {
		if err := enc.Encode(&eventRecord{Record: recordEvent, Event: e}); err != nil {
			return fmt.Errorf("writing run event: %w", err)
		}
	}
	trailer := trailerRecord{
		Record:     recordResult,
		RunID:      run.Result.RunID,
		Outcome:    run.Result.Outcome,
		Assignment: run.Result.Assignment,
		Stats:      run.Result.Stats,
	}
	if err := enc.Encode(&trailer); err != nil {
		return fmt.Errorf("writing run trailer: %w", err)
	}
	return nil
}

// Read reads a run file written by Write. Records must arrive in
// order: header, events, trailer.
func Read(r io.Reader) (*Run, error) {
	dec := json.NewDecoder(r)

	var header headerRecord
	if err := dec.Decode(&header); err != nil {
		return nil, fmt.Errorf("reading run header: %w", err)
	}
	if header.Record != recordRun {
		return nil, fmt.Errorf("invalid run file: first record is %q, expected %q", header.Record, recordRun)
	}

	run := &Run{
		MapName: header.MapName,
		Regions: header.Regions,
		Borders: header.Borders,
		Palette: header.Palette,
		Result:  &fourcolor.Result{},
	}

	sawTrailer := false
	for {
		var raw struct {
			Record string `json:"record"`
		}
		var buf json.RawMessage
		if err := dec.Decode(&buf); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("reading run record: %w", err)
		}
		if err := json.Unmarshal(buf, &raw); err != nil {
			return nil, fmt.Errorf("reading run record: %w", err)
		}
		switch raw.Record {
		case recordEvent:
			if sawTrailer {
				return nil, fmt.Errorf("invalid run file: event after the result trailer")
			}
			var e eventRecord
			if err := json.Unmarshal(buf, &e); err != nil {
				return nil, fmt.Errorf("reading run event: %w", err)
			}
			run.Result.Events = append(run.Result.Events, e.Event)
		case recordResult:
			if sawTrailer {
				return nil, fmt.Errorf("invalid run file: duplicate result trailer")
			}
			var t trailerRecord
			if err := json.Unmarshal(buf, &t); err != nil {
				return nil, fmt.Errorf("reading run trailer: %w", err)
			}
			run.Result.RunID = t.RunID
			run.Result.Outcome = t.Outcome
			run.Result.Assignment = t.Assignment
			run.Result.Stats = t.Stats
			sawTrailer = true
		default:
			return nil, fmt.Errorf("invalid run file: unknown record kind %q", raw.Record)
		}
	}
	if !sawTrailer {
		return nil, fmt.Errorf("invalid run file: missing result trailer")
	}
	return run, nil
}
