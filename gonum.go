package causalgraph

import (
	"encoding/json"
	"fmt"
	"slices"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/encoding"
	"gonum.org/v1/gonum/graph/simple"
)

// Attribute keys carried by interchange nodes and edges.
const (
	attrKeyVariableType = "variable_type"
	attrKeyEdgeType     = "edge_type"
	attrKeyMeta         = "meta"
)

// GonumNode is the gonum view of a node. It implements graph.Node together
// with the DOT and attribute interfaces, so causal graphs survive both the
// in-memory interchange and the DOT markup round trip.
type GonumNode struct {
	id           int64
	identifier   string
	variableType VariableType
	meta         map[string]any
}

// ID returns the gonum node ID. IDs are assigned in node insertion order.
func (n *GonumNode) ID() int64 { return n.id }

// Identifier returns the causal-graph node identifier.
func (n *GonumNode) Identifier() string { return n.identifier }

// VariableType returns the statistical type of the variable.
func (n *GonumNode) VariableType() VariableType { return n.variableType }

// Meta returns the metadata carried by the node.
func (n *GonumNode) Meta() map[string]any { return n.meta }

// DOTID returns the identifier in quoted DOT form.
func (n *GonumNode) DOTID() string { return quoteDOTID(n.identifier) }

// SetDOTID sets the identifier from a DOT node ID, unquoting if needed.
func (n *GonumNode) SetDOTID(id string) { n.identifier = unquoteDOTID(id) }

// Attributes returns the DOT attributes of the node.
func (n *GonumNode) Attributes() []encoding.Attribute {
	attrs := []encoding.Attribute{{Key: attrKeyVariableType, Value: quoteDOTID(string(n.variableType))}}
	if len(n.meta) > 0 {
		if raw, err := json.Marshal(n.meta); err == nil {
			attrs = append(attrs, encoding.Attribute{Key: attrKeyMeta, Value: quoteDOTID(string(raw))})
		}
	}
	return attrs
}

// SetAttribute restores node state from a DOT attribute. Unknown keys are
// ignored so foreign markup stays readable.
func (n *GonumNode) SetAttribute(attr encoding.Attribute) error {
	switch attr.Key {
	case attrKeyVariableType:
		t, err := ParseVariableType(unquoteDOTID(attr.Value))
		if err != nil {
			return err
		}
		n.variableType = t
	case attrKeyMeta:
		var meta map[string]any
		if err := json.Unmarshal([]byte(unquoteDOTID(attr.Value)), &meta); err != nil {
			return fmt.Errorf("causalgraph: decoding meta attribute of node %q: %w", n.identifier, err)
		}
		n.meta = normalizeNodeMeta(meta)
	}
	return nil
}

// GonumEdge is the gonum view of an edge. The causal edge type rides along
// as an attribute, so a single arc carries symmetric types too.
type GonumEdge struct {
	from     graph.Node
	to       graph.Node
	edgeType EdgeType
	meta     map[string]any
}

// From returns the source endpoint in stored orientation.
func (e *GonumEdge) From() graph.Node { return e.from }

// To returns the destination endpoint in stored orientation.
func (e *GonumEdge) To() graph.Node { return e.to }

// ReversedEdge returns the edge with its endpoints swapped.
func (e *GonumEdge) ReversedEdge() graph.Edge {
	return &GonumEdge{from: e.to, to: e.from, edgeType: e.edgeType, meta: e.meta}
}

// Type returns the causal edge type.
func (e *GonumEdge) Type() EdgeType { return e.edgeType }

// Meta returns the metadata carried by the edge.
func (e *GonumEdge) Meta() map[string]any { return e.meta }

// Attributes returns the DOT attributes of the edge.
func (e *GonumEdge) Attributes() []encoding.Attribute {
	var attrs []encoding.Attribute
	if e.edgeType != "" {
		attrs = append(attrs, encoding.Attribute{Key: attrKeyEdgeType, Value: quoteDOTID(string(e.edgeType))})
	}
	if len(e.meta) > 0 {
		if raw, err := json.Marshal(e.meta); err == nil {
			attrs = append(attrs, encoding.Attribute{Key: attrKeyMeta, Value: quoteDOTID(string(raw))})
		}
	}
	return attrs
}

// SetAttribute restores edge state from a DOT attribute. Unknown keys are
// ignored.
func (e *GonumEdge) SetAttribute(attr encoding.Attribute) error {
	switch attr.Key {
	case attrKeyEdgeType:
		t, err := ParseEdgeType(unquoteDOTID(attr.Value))
		if err != nil {
			return err
		}
		e.edgeType = t
	case attrKeyMeta:
		var meta map[string]any
		if err := json.Unmarshal([]byte(unquoteDOTID(attr.Value)), &meta); err != nil {
			return fmt.Errorf("causalgraph: decoding meta attribute of an edge: %w", err)
		}
		e.meta = meta
	}
	return nil
}

// ToGonum converts the graph to a gonum directed graph of GonumNode and
// GonumEdge values. Node IDs follow insertion order; symmetric edge types
// are stored as a single arc in stored orientation with the type riding as
// an attribute, so directionality information is never lost.
func (g *CausalGraph) ToGonum() *simple.DirectedGraph {
	dg := simple.NewDirectedGraph()
	byID := make(map[string]*GonumNode, len(g.nodeOrder))
	for i, id := range g.nodeOrder {
		n := g.nodes[id]
		gn := &GonumNode{id: int64(i), identifier: id, variableType: n.variableType, meta: copyMeta(n.meta)}
		dg.AddNode(gn)
		byID[id] = gn
	}
	for _, pair := range g.edgeOrder {
		e := g.edges[pair]
		dg.SetEdge(&GonumEdge{
			from:     byID[pair.Source],
			to:       byID[pair.Destination],
			edgeType: e.edgeType,
			meta:     copyMeta(e.meta),
		})
	}
	return dg
}

// FromGonum builds a causal graph from a gonum directed graph. GonumNode
// and GonumEdge values round-trip exactly; foreign node types fall back to
// their DOT ID or, failing that, a positional identifier, and foreign arcs
// default to directed edges, with a reciprocal arc pair collapsing to one
// undirected edge. Nodes are ingested in ID order, so a graph produced by
// ToGonum reconstructs with its original insertion order.
func FromGonum(dg graph.Directed) (*CausalGraph, error) {
	if dg == nil {
		return nil, NewValidationError("graph", fmt.Errorf("graph cannot be nil"))
	}
	nodes := sortedNodes(dg)
	ident := make(map[int64]string, len(nodes))
	g := newGraph()
	for _, n := range nodes {
		id := nodeIdentifier(n)
		ident[n.ID()] = id
		var opts []NodeOption
		if gn, ok := n.(*GonumNode); ok {
			opts = append(opts, WithVariableType(documentVariableType(gn.variableType)), WithMeta(copyMeta(gn.meta)))
		}
		if _, err := g.AddNode(id, opts...); err != nil {
			return nil, err
		}
	}
	seen := make(map[EdgePair]bool)
	for _, u := range nodes {
		for _, v := range sortedIterNodes(dg.From(u.ID())) {
			e := dg.Edge(u.ID(), v.ID())
			from, to := ident[u.ID()], ident[v.ID()]
			ge, typed := e.(*GonumEdge)
			if typed && ge.edgeType != "" {
				opts := []EdgeOption{WithEdgeType(ge.edgeType)}
				if ge.meta != nil {
					opts = append(opts, WithEdgeMeta(copyMeta(ge.meta)))
				}
				if _, err := g.AddEdge(from, to, opts...); err != nil {
					return nil, err
				}
				continue
			}
			// Untyped arcs: a reciprocal pair is one undirected edge.
			if dg.HasEdgeFromTo(v.ID(), u.ID()) {
				pair := EdgePair{Source: from, Destination: to}
				if seen[pair] || seen[pair.Reversed()] {
					continue
				}
				seen[pair] = true
				if _, err := g.AddEdge(from, to, WithEdgeType(EdgeTypeUndirected)); err != nil {
					return nil, err
				}
				continue
			}
			if _, err := g.AddEdge(from, to); err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}

// ToGonum converts the skeleton to a gonum undirected graph of GonumNode
// and GonumEdge values. The concrete type is always undirected.
func (s *Skeleton) ToGonum() *simple.UndirectedGraph {
	ug := simple.NewUndirectedGraph()
	byID := make(map[string]*GonumNode, len(s.nodeOrder))
	for i, id := range s.nodeOrder {
		n := s.nodes[id]
		gn := &GonumNode{id: int64(i), identifier: id, variableType: n.variableType, meta: copyMeta(n.meta)}
		ug.AddNode(gn)
		byID[id] = gn
	}
	for _, pair := range s.edgeOrder {
		e := s.edges[pair]
		ug.SetEdge(&GonumEdge{
			from:     byID[pair.Source],
			to:       byID[pair.Destination],
			edgeType: EdgeTypeUndirected,
			meta:     copyMeta(e.meta),
		})
	}
	return ug
}

// SkeletonFromGonum builds a skeleton from a gonum undirected graph.
// Identifier and ordering rules follow FromGonum.
func SkeletonFromGonum(ug graph.Undirected) (*Skeleton, error) {
	if ug == nil {
		return nil, NewValidationError("graph", fmt.Errorf("graph cannot be nil"))
	}
	nodes := sortedNodes(ug)
	ident := make(map[int64]string, len(nodes))
	s := newSkeleton()
	for _, n := range nodes {
		id := nodeIdentifier(n)
		ident[n.ID()] = id
		t, meta := VariableUnspecified, map[string]any(nil)
		if gn, ok := n.(*GonumNode); ok {
			t = documentVariableType(gn.variableType)
			meta = copyMeta(gn.meta)
		}
		if _, err := s.addNode(id, t, meta); err != nil {
			return nil, err
		}
	}
	for _, u := range nodes {
		for _, v := range sortedIterNodes(ug.From(u.ID())) {
			if v.ID() <= u.ID() {
				continue
			}
			e := ug.Edge(u.ID(), v.ID())
			from, to := ident[u.ID()], ident[v.ID()]
			var meta map[string]any
			if ge, ok := e.(*GonumEdge); ok {
				// Keep the stored orientation as presentation order.
				from, to = ident[ge.from.ID()], ident[ge.to.ID()]
				meta = copyMeta(ge.meta)
			}
			if _, err := s.addEdge(from, to, meta); err != nil {
				return nil, err
			}
		}
	}
	return s, nil
}

// nodeIdentifier extracts a stable identifier from any gonum node.
func nodeIdentifier(n graph.Node) string {
	switch x := n.(type) {
	case *GonumNode:
		return x.identifier
	case interface{ DOTID() string }:
		return unquoteDOTID(x.DOTID())
	default:
		return fmt.Sprintf("node_%d", n.ID())
	}
}

// sortedNodes drains a graph's node iterator in ID order. gonum's map
// backed graphs iterate in random order; sorting keeps ingestion
// deterministic.
func sortedNodes(g graph.Graph) []graph.Node {
	return sortedIterNodes(g.Nodes())
}

func sortedIterNodes(it graph.Nodes) []graph.Node {
	var nodes []graph.Node
	for it.Next() {
		nodes = append(nodes, it.Node())
	}
	slices.SortFunc(nodes, func(a, b graph.Node) int {
		switch {
		case a.ID() < b.ID():
			return -1
		case a.ID() > b.ID():
			return 1
		default:
			return 0
		}
	})
	return nodes
}
