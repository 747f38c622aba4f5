package graph

import (
	"encoding/json"
	"fmt"
	"os"
	"path"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/includeviz/pkg/errors"
	"github.com/matzehuels/includeviz/pkg/layout"
)

// EdgeTypeRoot marks the edges from the root to the first ring. They are not
// part of the classified include edges.
const EdgeTypeRoot = "root"

// =============================================================================
// Layout - Radial Layout Document
// =============================================================================

// Layout is the serialized result of a radial layout: every visible header
// with its ring, angle and Cartesian position, the classified edges, and the
// ring orderings.
//
// The synthetic root is stored as a node with ID [layout.RootID] at the
// origin. Layout documents are what the cache and the document store hold,
// and what the renderer consumes.
type Layout struct {
	ID        string    `json:"id" bson:"_id"`
	Root      string    `json:"root,omitempty" bson:"root,omitempty"`
	Placer    string    `json:"placer,omitempty" bson:"placer,omitempty"`
	Nodes     []Node    `json:"nodes" bson:"nodes"`
	Edges     []Edge    `json:"edges" bson:"edges"`
	Rings     []Ring    `json:"rings" bson:"rings"`
	Crossings int       `json:"crossings" bson:"crossings"`
	Warnings  []string  `json:"warnings,omitempty" bson:"warnings,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Node is one placed header.
type Node struct {
	ID           string  `json:"id" bson:"id"`
	Label        string  `json:"label" bson:"label"`
	Depth        int     `json:"depth" bson:"depth"`
	Angle        float64 `json:"angle" bson:"angle"`
	Radius       float64 `json:"radius" bson:"radius"`
	X            float64 `json:"x" bson:"x"`
	Y            float64 `json:"y" bson:"y"`
	IncludeCount int     `json:"include_count,omitempty" bson:"include_count,omitempty"`
	Intermediate bool    `json:"intermediate,omitempty" bson:"intermediate,omitempty"` // outside the prefixes, kept to connect visible headers
	Fallback     bool    `json:"fallback,omitempty" bson:"fallback,omitempty"`         // attached through a bridge chain
}

// IsRoot reports whether the node is the synthetic centre.
func (n *Node) IsRoot() bool { return n.ID == layout.RootID }

// Ring is the ordered header list of one depth.
type Ring struct {
	Depth   int      `json:"depth" bson:"depth"`
	Radius  float64  `json:"radius" bson:"radius"`
	Headers []string `json:"headers" bson:"headers"`
}

// Node returns the node with the given ID.
func (l *Layout) Node(id string) (Node, bool) {
	for _, n := range l.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// MaxRadius returns the radius of the outermost ring, or 0 without rings.
func (l *Layout) MaxRadius() float64 {
	r := 0.0
	for _, ring := range l.Rings {
		r = max(r, ring.Radius)
	}
	return r
}

// EdgeCounts returns the number of edges per type.
func (l *Layout) EdgeCounts() map[string]int {
	m := make(map[string]int)
	for _, e := range l.Edges {
		m[e.Type]++
	}
	return m
}

// FromResult builds a layout document for g from a computed layout.
// Headers in intermediate are flagged as such. The document gets a fresh ID.
func FromResult(g *Graph, res *layout.Result, intermediate map[string]bool) Layout {
	l := Layout{
		ID:        uuid.NewString(),
		Root:      g.Root,
		Placer:    res.Placer,
		Crossings: res.Crossings,
		CreatedAt: time.Now().UTC(),
		Nodes:     []Node{},
		Edges:     []Edge{},
		Rings:     []Ring{},
	}

	if pos, ok := res.Positions[layout.RootID]; ok {
		label := "root"
		if g.Root != "" {
			label = path.Base(g.Root)
		}
		l.Nodes = append(l.Nodes, Node{ID: layout.RootID, Label: label, Angle: pos.Angle})
	}

	includes := g.ResolvedIncludeCounts()
	for _, d := range res.Depths.RingIDs() {
		ids := res.Rings[d]
		if len(ids) == 0 {
			ids = res.Depths.Rings[d]
		}
		l.Rings = append(l.Rings, Ring{Depth: d, Radius: res.Radii[d], Headers: slices.Clone(ids)})
		for _, h := range ids {
			pos := res.Positions[h]
			l.Nodes = append(l.Nodes, Node{
				ID:           h,
				Label:        path.Base(h),
				Depth:        d,
				Angle:        pos.Angle,
				Radius:       pos.Radius,
				X:            pos.X,
				Y:            pos.Y,
				IncludeCount: includes[h],
				Intermediate: intermediate[h],
				Fallback:     res.Tree.IsFallback(h),
			})
			if d == 1 {
				l.Edges = append(l.Edges, Edge{From: layout.RootID, To: h, Type: EdgeTypeRoot})
			}
		}
	}

	for _, t := range layout.EdgeTypes {
		for _, e := range res.Classified[t] {
			l.Edges = append(l.Edges, Edge{From: e.From, To: e.To, Type: t.String()})
		}
	}
	return l
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
// Every node needs an ID and every edge a known type.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "unmarshal layout")
	}

	for _, n := range l.Nodes {
		if n.ID == "" {
			return Layout{}, errors.New(errors.ErrCodeInvalidFormat, "layout node without ID")
		}
	}
	for _, e := range l.Edges {
		if e.Type == EdgeTypeRoot {
			continue
		}
		if _, err := layout.ParseEdgeType(e.Type); err != nil {
			return Layout{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "edge %s -> %s", e.From, e.To)
		}
	}
	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
