package graph

import (
	"embed"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var bundled embed.FS

// Names lists the bundled datasets in cycling order.
func Names() []string {
	entries, err := bundled.ReadDir("data")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names
}

// Load builds a bundled dataset by name.
func Load(name string) (*Graph, error) {
	data, err := bundled.ReadFile(path.Join("data", name+".yaml"))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDataset, name)
	}
	return Parse(data)
}

// LoadFile builds a dataset from a YAML file on disk.
func LoadFile(filename string) (*Graph, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	g, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return g, nil
}

// Resolve loads a bundled dataset when ref names one, otherwise treats ref
// as a file path.
func Resolve(ref string) (*Graph, error) {
	for _, n := range Names() {
		if n == ref {
			return Load(ref)
		}
	}
	if _, err := os.Stat(ref); err == nil {
		return LoadFile(ref)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownDataset, ref)
}

// Parse decodes YAML dataset bytes and builds the graph.
func Parse(data []byte) (*Graph, error) {
	var d Data
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("graph: decode: %w", err)
	}
	return New(d)
}

// Marshal encodes g back into the YAML dataset format.
func Marshal(g *Graph) ([]byte, error) {
	d := Data{
		Name:        g.name,
		Title:       g.title,
		Description: g.description,
		Nodes:       g.Nodes(),
		Sequence:    g.Sequence(),
	}
	for i, adj := range g.children {
		for _, a := range adj {
			d.Edges = append(d.Edges, Edge{From: g.nodes[i].ID, To: g.nodes[a.node].ID, Weight: a.weight})
		}
	}
	return yaml.Marshal(d)
}
