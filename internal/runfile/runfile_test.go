package runfile

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fourcolor/fourcolor/pkg/fourcolor"
)

func sampleRun() *Run {
	return &Run{
		MapName: "triangle",
		Regions: []fourcolor.RegionID{"A", "B", "C"},
		Borders: [][2]fourcolor.RegionID{{"A", "B"}, {"A", "C"}, {"B", "C"}},
		Palette: fourcolor.Palette{"red", "green", "blue"},
		Result: &fourcolor.Result{
			RunID:   "run-1",
			Outcome: fourcolor.Succeeded,
			Assignment: fourcolor.Assignment{
				"A": "red", "B": "green", "C": "blue",
			},
			Events: []fourcolor.Event{
				{Seq: 1, Kind: fourcolor.EventVariableSelected, Region: "A"},
				{Seq: 2, Kind: fourcolor.EventValueTried, Region: "A", Color: "red"},
				{Seq: 3, Kind: fourcolor.EventValuePruned, Region: "B", Color: "red", Cause: "A"},
				{Seq: 4, Kind: fourcolor.EventAssignmentSucceeded},
			},
			Stats: fourcolor.Stats{Selections: 3, Attempts: 3, Prunes: 4},
		},
	}
}

func TestRoundTrip(t *testing.T) {
	assert := assert.New(t)

	run := sampleRun()
	var buf bytes.Buffer
	assert.NoError(Write(&buf, run))

	back, err := Read(&buf)
	assert.NoError(err)
	assert.Equal(run.MapName, back.MapName)
	assert.Equal(run.Regions, back.Regions)
	assert.Equal(run.Borders, back.Borders)
	assert.Equal(run.Palette, back.Palette)
	assert.Equal(run.Result, back.Result)

	g, err := back.Graph()
	assert.NoError(err)
	assert.True(run.Result.Assignment.Satisfies(g))
}

func TestWriteIsFlatRecords(t *testing.T) {
	assert := assert.New(t)

	var buf bytes.Buffer
	assert.NoError(Write(&buf, sampleRun()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	// header + four events + trailer
	assert.Len(lines, 6)
	assert.Contains(lines[0], `"record":"run"`)
	assert.Contains(lines[1], `"record":"event"`)
	assert.Contains(lines[5], `"record":"result"`)
}

func TestReadRejectsMalformedStreams(t *testing.T) {
	for _, tt := range []struct {
		Name  string
		Input string
	}{
		{
			Name:  "empty stream",
			Input: "",
		},
		{
			Name:  "wrong first record",
			Input: `{"record":"event","seq":1,"kind":"backtrack"}` + "\n",
		},
		{
			Name:  "unknown record kind",
			Input: `{"record":"run","regions":["A"],"borders":[],"palette":["red"]}` + "\n" + `{"record":"banana"}` + "\n",
		},
		{
			Name:  "missing trailer",
			Input: `{"record":"run","regions":["A"],"borders":[],"palette":["red"]}` + "\n",
		},
		{
			Name: "event after trailer",
			Input: `{"record":"run","regions":["A"],"borders":[],"palette":["red"]}` + "\n" +
				`{"record":"result","run_id":"x","outcome":"failed","stats":{}}` + "\n" +
				`{"record":"event","seq":1,"kind":"backtrack"}` + "\n",
		},
	} {
		t.Run(tt.Name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.Input))
			assert.Error(t, err)
		})
	}
}
