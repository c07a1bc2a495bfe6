package mapfile

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/fourcolor/fourcolor/pkg/fourcolor"
)

// Built-in sample maps, addressable by name from the command line so
// the solver can be tried without writing a map file first.
var samples = map[string]func() *Map{
	"australia":  australia,
	"petersen":   petersen,
	"wheel6":     wheel6,
	"western-us": westernUS,
}

// SampleNames returns the built-in map names, sorted.
func SampleNames() []string {
	names := make([]string, 0, len(samples))
	for name := range samples {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Sample returns the named built-in map.
func Sample(name string) (*Map, error) {
	build, ok := samples[name]
	if !ok {
		return nil, fmt.Errorf("unknown sample map %q (available: %v)", name, SampleNames())
	}
	return build(), nil
}

func mustMap(name string, regions []fourcolor.RegionID, pairs [][2]fourcolor.RegionID) *Map {
	g, err := buildGraph(regions, pairs)
	if err != nil {
		panic(fmt.Sprintf("sample map %s: %v", name, err))
	}
	return &Map{Name: name, Graph: g}
}

// australia is the classic CSP teaching map: the mainland states and
// territories plus Tasmania, which borders nothing.
func australia() *Map {
	return mustMap("australia",
		[]fourcolor.RegionID{"WA", "NT", "SA", "Q", "NSW", "V", "T"},
		[][2]fourcolor.RegionID{
			{"WA", "NT"}, {"WA", "SA"},
			{"NT", "SA"}, {"NT", "Q"},
			{"SA", "Q"}, {"SA", "NSW"}, {"SA", "V"},
			{"Q", "NSW"},
			{"NSW", "V"},
		})
}

// petersen is the Petersen graph, 3-chromatic and a stress test for
// the degree tie-break since every region has degree three.
func petersen() *Map {
	regions := make([]fourcolor.RegionID, 10)
	for i := range regions {
		regions[i] = fourcolor.RegionID(strconv.Itoa(i))
	}
	var pairs [][2]fourcolor.RegionID
	for i := 0; i < 5; i++ {
		// outer 5-cycle, spokes, and the inner pentagram
		pairs = append(pairs,
			[2]fourcolor.RegionID{regions[i], regions[(i+1)%5]},
			[2]fourcolor.RegionID{regions[i], regions[i+5]},
			[2]fourcolor.RegionID{regions[i+5], regions[(i+2)%5+5]},
		)
	}
	return mustMap("petersen", regions, pairs)
}

// wheel6 is a hub joined to a 6-cycle; even cycles make it
// 3-chromatic.
func wheel6() *Map {
	regions := []fourcolor.RegionID{"hub", "r1", "r2", "r3", "r4", "r5", "r6"}
	var pairs [][2]fourcolor.RegionID
	for i := 1; i <= 6; i++ {
		rim := regions[i]
		next := regions[i%6+1]
		pairs = append(pairs,
			[2]fourcolor.RegionID{"hub", rim},
			[2]fourcolor.RegionID{rim, next},
		)
	}
	return mustMap("wheel6", regions, pairs)
}

// westernUS covers the eleven contiguous western states.
func westernUS() *Map {
	return mustMap("western-us",
		[]fourcolor.RegionID{"WA", "OR", "CA", "ID", "NV", "UT", "AZ", "MT", "WY", "CO", "NM"},
		[][2]fourcolor.RegionID{
			{"WA", "OR"}, {"WA", "ID"},
			{"OR", "CA"}, {"OR", "ID"}, {"OR", "NV"},
			{"CA", "NV"}, {"CA", "AZ"},
			{"ID", "NV"}, {"ID", "UT"}, {"ID", "MT"}, {"ID", "WY"},
			{"NV", "UT"}, {"NV", "AZ"},
			{"UT", "AZ"}, {"UT", "WY"}, {"UT", "CO"},
			{"AZ", "NM"},
			{"MT", "WY"},
			{"WY", "CO"},
			{"CO", "NM"},
		})
}
