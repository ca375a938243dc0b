// Package graph holds the read-only node/edge datasets the visualisations
// walk. A Graph is built once, indexed by node id and never mutated; every
// query returns copies.
package graph

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrUnknownNode is returned when an edge or sequence entry names a node
	// that does not exist.
	ErrUnknownNode = errors.New("graph: unknown node")

	// ErrDuplicateNode is returned when two nodes share an id.
	ErrDuplicateNode = errors.New("graph: duplicate node id")

	// ErrUnknownDataset is returned by Load for names that are not bundled.
	ErrUnknownDataset = errors.New("graph: unknown dataset")

	// ErrEmpty is returned for datasets without nodes or with blank ids.
	ErrEmpty = errors.New("graph: empty dataset")
)

// GoldenAngle spaces default phase offsets so neighbouring nodes never
// oscillate in step.
var GoldenAngle = math.Pi * (3 - math.Sqrt(5))

// Node is one vertex. Type selects the box style ("concept", "domain",
// "resource"); Rank is free-form taxonomy text. A zero Phase is replaced
// by a golden-angle offset when the graph is built.
type Node struct {
	ID    string  `yaml:"id"`
	Label string  `yaml:"label"`
	Rank  string  `yaml:"rank,omitempty"`
	Type  string  `yaml:"type"`
	Phase float64 `yaml:"phase,omitempty"`
}

// Edge points from a container to what it contains.
type Edge struct {
	From   string  `yaml:"from"`
	To     string  `yaml:"to"`
	Weight float64 `yaml:"weight"`
}

// Link is a neighbour reached through an edge of the given weight.
type Link struct {
	Node   Node
	Weight float64
}

// Data is the serialised form of a dataset.
type Data struct {
	Name        string   `yaml:"name"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description,omitempty"`
	Nodes       []Node   `yaml:"nodes"`
	Edges       []Edge   `yaml:"edges"`
	Sequence    []string `yaml:"sequence"`
}

type adjacent struct {
	node   int
	weight float64
}

// Graph is an immutable adjacency structure queried by node id.
type Graph struct {
	name, title, description string

	nodes    []Node
	index    map[string]int
	children [][]adjacent
	parents  [][]adjacent
	sequence []string
	edges    int
}

// New validates d and builds its indexes. An empty sequence defaults to every
// node in declaration order.
func New(d Data) (*Graph, error) {
	if len(d.Nodes) == 0 {
		return nil, fmt.Errorf("%w: %q has no nodes", ErrEmpty, d.Name)
	}

	g := &Graph{
		name:        d.Name,
		title:       d.Title,
		description: d.Description,
		nodes:       make([]Node, len(d.Nodes)),
		index:       make(map[string]int, len(d.Nodes)),
		children:    make([][]adjacent, len(d.Nodes)),
		parents:     make([][]adjacent, len(d.Nodes)),
		edges:       len(d.Edges),
	}
	if g.title == "" {
		g.title = d.Name
	}

	for i, n := range d.Nodes {
		if n.ID == "" {
			return nil, fmt.Errorf("%w: node %d has no id", ErrEmpty, i)
		}
		if _, dup := g.index[n.ID]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateNode, n.ID)
		}
		if n.Label == "" {
			n.Label = n.ID
		}
		if n.Phase == 0 {
			n.Phase = math.Mod(float64(i)*GoldenAngle, 2*math.Pi)
		}
		g.nodes[i] = n
		g.index[n.ID] = i
	}

	for _, e := range d.Edges {
		from, ok := g.index[e.From]
		if !ok {
			return nil, fmt.Errorf("%w: edge from %q", ErrUnknownNode, e.From)
		}
		to, ok := g.index[e.To]
		if !ok {
			return nil, fmt.Errorf("%w: edge to %q", ErrUnknownNode, e.To)
		}
		g.children[from] = append(g.children[from], adjacent{node: to, weight: e.Weight})
		g.parents[to] = append(g.parents[to], adjacent{node: from, weight: e.Weight})
	}

	if len(d.Sequence) == 0 {
		for _, n := range g.nodes {
			g.sequence = append(g.sequence, n.ID)
		}
	} else {
		for _, id := range d.Sequence {
			if _, ok := g.index[id]; !ok {
				return nil, fmt.Errorf("%w: sequence entry %q", ErrUnknownNode, id)
			}
		}
		g.sequence = append([]string(nil), d.Sequence...)
	}

	return g, nil
}

// Name returns the dataset's short name.
func (g *Graph) Name() string { return g.name }

// Title returns the human-readable dataset title.
func (g *Graph) Title() string { return g.title }

// Description returns the dataset description.
func (g *Graph) Description() string { return g.description }

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return g.edges }

// Node looks up a node by id.
func (g *Graph) Node(id string) (Node, bool) {
	i, ok := g.index[id]
	if !ok {
		return Node{}, false
	}
	return g.nodes[i], true
}

// Nodes returns every node in declaration order.
func (g *Graph) Nodes() []Node {
	return append([]Node(nil), g.nodes...)
}

// Sequence returns the ordered subject ids the demo cycles through.
func (g *Graph) Sequence() []string {
	return append([]string(nil), g.sequence...)
}

func (g *Graph) links(adj []adjacent) []Link {
	if len(adj) == 0 {
		return nil
	}
	out := make([]Link, len(adj))
	for i, a := range adj {
		out[i] = Link{Node: g.nodes[a.node], Weight: a.weight}
	}
	return out
}

// Children returns the nodes id points to, in edge order.
func (g *Graph) Children(id string) []Link {
	i, ok := g.index[id]
	if !ok {
		return nil
	}
	return g.links(g.children[i])
}

// Parents returns the nodes pointing to id, in edge order.
func (g *Graph) Parents(id string) []Link {
	i, ok := g.index[id]
	if !ok {
		return nil
	}
	return g.links(g.parents[i])
}

// Connected returns children then parents of id, each neighbour once.
func (g *Graph) Connected(id string) []Link {
	seen := make(map[string]bool)
	var out []Link
	for _, l := range append(g.Children(id), g.Parents(id)...) {
		if seen[l.Node.ID] {
			continue
		}
		seen[l.Node.ID] = true
		out = append(out, l)
	}
	return out
}

// Peers returns nodes sharing a parent with id, excluding id itself.
func (g *Graph) Peers(id string) []Link {
	seen := map[string]bool{id: true}
	var out []Link
	for _, p := range g.Parents(id) {
		for _, s := range g.Children(p.Node.ID) {
			if seen[s.Node.ID] {
				continue
			}
			seen[s.Node.ID] = true
			out = append(out, s)
		}
	}
	return out
}
