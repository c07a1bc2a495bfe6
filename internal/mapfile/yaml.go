package mapfile

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/fourcolor/fourcolor/pkg/fourcolor"
)

// document is the YAML shape of a map file. Borders list each border
// once as "A-B" pairs; direction does not matter.
type document struct {
	Name     string              `yaml:"name,omitempty"`
	Regions  []string            `yaml:"regions"`
	Borders  []string            `yaml:"borders"`
	Palette  []string            `yaml:"palette,omitempty"`
	Domains  map[string][]string `yaml:"domains,omitempty"`
	Assigned map[string]string   `yaml:"assigned,omitempty"`
}

// DecodeYAML reads one YAML map document. Graph structure is validated
// here; palette membership of domains and seeds is left to the solver,
// which reports it as a configuration error.
func DecodeYAML(r io.Reader) (*Map, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("error decoding map document: %w", err)
	}
	if len(doc.Regions) == 0 {
		return nil, fmt.Errorf("invalid map document: no regions")
	}

	regions := make([]fourcolor.RegionID, len(doc.Regions))
	for i, r := range doc.Regions {
		regions[i] = fourcolor.RegionID(r)
	}
	pairs := make([][2]fourcolor.RegionID, 0, len(doc.Borders))
	for _, token := range doc.Borders {
		a, b, err := splitPair(token)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, [2]fourcolor.RegionID{a, b})
	}
	graph, err := buildGraph(regions, pairs)
	if err != nil {
		return nil, err
	}

	m := &Map{Name: doc.Name, Graph: graph}
	if doc.Palette != nil {
		m.Palette = make(fourcolor.Palette, len(doc.Palette))
		for i, c := range doc.Palette {
			m.Palette[i] = fourcolor.Color(c)
		}
		if err := m.Palette.Validate(); err != nil {
			return nil, err
		}
	}
	if doc.Domains != nil {
		m.Domains = make(map[fourcolor.RegionID][]fourcolor.Color, len(doc.Domains))
		for r, cs := range doc.Domains {
			colors := make([]fourcolor.Color, len(cs))
			for i, c := range cs {
				colors[i] = fourcolor.Color(c)
			}
			m.Domains[fourcolor.RegionID(r)] = colors
		}
	}
	if doc.Assigned != nil {
		m.Seeds = make(fourcolor.Assignment, len(doc.Assigned))
		for r, c := range doc.Assigned {
			m.Seeds[fourcolor.RegionID(r)] = fourcolor.Color(c)
		}
	}
	return m, nil
}

// EncodeYAML writes m as a YAML map document readable by DecodeYAML.
func EncodeYAML(w io.Writer, m *Map) error {
	doc := document{Name: m.Name}
	for _, r := range m.Graph.Regions() {
		doc.Regions = append(doc.Regions, string(r))
	}
	for _, border := range m.Graph.Borders() {
		doc.Borders = append(doc.Borders, fmt.Sprintf("%s-%s", border[0], border[1]))
	}
	for _, c := range m.Palette {
		doc.Palette = append(doc.Palette, string(c))
	}
	if m.Domains != nil {
		doc.Domains = make(map[string][]string, len(m.Domains))
		for r, cs := range m.Domains {
			ss := make([]string, len(cs))
			for i, c := range cs {
				ss[i] = string(c)
			}
			doc.Domains[string(r)] = ss
		}
	}
	if m.Seeds != nil {
		doc.Assigned = make(map[string]string, len(m.Seeds))
		for r, c := range m.Seeds {
			doc.Assigned[string(r)] = string(c)
		}
	}

	enc := yaml.NewEncoder(w)
	defer enc.Close()
	if err := enc.Encode(&doc); err != nil {
		return fmt.Errorf("error encoding map document: %w", err)
	}
	return nil
}
