package mapfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/fourcolor/fourcolor/pkg/fourcolor"
)

// DecodePairs reads the line-oriented pairs format. Regions are the
// numbers 1..N and colors are indexes into the default palette:
//
//	c this is a comment
//	c header: p map <number of regions> <number of colors>
//	p map 4 3
//	c borders are region pairs, split on commas or whitespace
//	1-2 2-3
//	3-4,1-4
//	c 'd' restricts a region to the listed color indexes
//	d 2 0 1
//	c 'a' pre-colors a region
//	a 1 0
func DecodePairs(r io.Reader) (*Map, error) {
	reader := bufio.NewReader(r)

	commentLine := regexp.MustCompile(`^c(\s.*)?$`)
	headerLine := regexp.MustCompile(`^p map\s+\d+\s+\d+\s*$`)
	domainLine := regexp.MustCompile(`^d\s+\d+(\s+\d+)+\s*$`)
	assignLine := regexp.MustCompile(`^a\s+\d+\s+\d+\s*$`)
	borderSep := regexp.MustCompile(`[,\s]+`)

	numRegions := 0
	numColors := 0
	seenHeader := false
	var pairs [][2]fourcolor.RegionID
	domains := map[fourcolor.RegionID][]fourcolor.Color{}
	seeds := fourcolor.Assignment{}

	palette := fourcolor.DefaultPalette()

	region := func(field string) (fourcolor.RegionID, error) {
		n, err := strconv.Atoi(field)
		if err != nil || n < 1 || n > numRegions {
			return "", fmt.Errorf("region %s is out of range 1..%d", field, numRegions)
		}
		return fourcolor.RegionID(strconv.Itoa(n)), nil
	}
	color := func(field string) (fourcolor.Color, error) {
		n, err := strconv.Atoi(field)
		if err != nil || n < 0 || n >= numColors {
			return "", fmt.Errorf("color index %s is out of range 0..%d", field, numColors-1)
		}
		return palette[n], nil
	}

	for {
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("error reading map data: %w", err)
		}
		atEOF := errors.Is(err, io.EOF)
		line = strings.TrimSpace(line)

		switch {
		case line == "" || commentLine.MatchString(line):

		case headerLine.MatchString(line):
			if seenHeader {
				return nil, fmt.Errorf("duplicate header: %s", line)
			}
			fields := strings.Fields(line)
			numRegions, _ = strconv.Atoi(fields[2])
			numColors, _ = strconv.Atoi(fields[3])
			if numRegions < 1 {
				return nil, fmt.Errorf("invalid header (%s): need at least one region", line)
			}
			if numColors < 1 || numColors > len(palette) {
				return nil, fmt.Errorf("invalid header (%s): color count must be 1..%d", line, len(palette))
			}
			seenHeader = true

		case !seenHeader:
			return nil, fmt.Errorf("invalid map format: missing header 'p map <regions> <colors>'")

		case domainLine.MatchString(line):
			fields := strings.Fields(line)
			r, err := region(fields[1])
			if err != nil {
				return nil, fmt.Errorf("invalid domain line (%s): %w", line, err)
			}
			var colors []fourcolor.Color
			for _, f := range fields[2:] {
				c, err := color(f)
				if err != nil {
					return nil, fmt.Errorf("invalid domain line (%s): %w", line, err)
				}
				colors = append(colors, c)
			}
			domains[r] = colors

		case assignLine.MatchString(line):
			fields := strings.Fields(line)
			r, err := region(fields[1])
			if err != nil {
				return nil, fmt.Errorf("invalid assignment line (%s): %w", line, err)
			}
			c, err := color(fields[2])
			if err != nil {
				return nil, fmt.Errorf("invalid assignment line (%s): %w", line, err)
			}
			seeds[r] = c

		default:
			for _, token := range borderSep.Split(line, -1) {
				if token == "" {
					continue
				}
				left, right, err := splitPair(token)
				if err != nil {
					return nil, fmt.Errorf("invalid map command: %s", line)
				}
				a, err := region(string(left))
				if err != nil {
					return nil, fmt.Errorf("invalid border (%s): %w", token, err)
				}
				b, err := region(string(right))
				if err != nil {
					return nil, fmt.Errorf("invalid border (%s): %w", token, err)
				}
				pairs = append(pairs, [2]fourcolor.RegionID{a, b})
			}
		}

		if atEOF {
			break
		}
	}

	if !seenHeader {
		return nil, fmt.Errorf("invalid map format: missing header 'p map <regions> <colors>'")
	}

	regions := make([]fourcolor.RegionID, numRegions)
	for i := range regions {
		regions[i] = fourcolor.RegionID(strconv.Itoa(i + 1))
	}
	graph, err := buildGraph(regions, pairs)
	if err != nil {
		return nil, err
	}

	m := &Map{Graph: graph, Palette: palette[:numColors]}
	if len(domains) > 0 {
		m.Domains = domains
	}
	if len(seeds) > 0 {
		m.Seeds = seeds
	}
	return m, nil
}
