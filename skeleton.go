package causalgraph

import (
	"fmt"
	"slices"
)

// Skeleton is the undirected projection of a causal graph: the same nodes,
// with every edge collapsed to a single undirected edge per unordered pair.
// A skeleton is a detached snapshot; later mutation of the source graph does
// not show through. Lookups accept either endpoint order.
type Skeleton struct {
	nodes     map[string]*Node
	nodeOrder []string
	edges     map[EdgePair]*Edge
	edgeOrder []EdgePair
}

func newSkeleton() *Skeleton {
	return &Skeleton{
		nodes: make(map[string]*Node),
		edges: make(map[EdgePair]*Edge),
	}
}

// Skeleton materializes the undirected projection of the graph. Nodes are
// copied with deep-copied metadata; every edge becomes undirected, keeping
// its stored orientation as presentation order and a deep copy of its
// metadata.
func (g *CausalGraph) Skeleton() *Skeleton {
	s := newSkeleton()
	for _, id := range g.nodeOrder {
		s.nodes[id] = g.nodes[id].copy()
		s.nodeOrder = append(s.nodeOrder, id)
	}
	for _, pair := range g.edgeOrder {
		e := g.edges[pair].copyWithEndpoints(s.nodes[pair.Source], s.nodes[pair.Destination])
		e.setType(EdgeTypeUndirected)
		s.edges[pair] = e
		s.edgeOrder = append(s.edgeOrder, pair)
	}
	return s
}

// addNode inserts a snapshot node built from parts.
func (s *Skeleton) addNode(identifier string, t VariableType, meta map[string]any) (*Node, error) {
	if identifier == "" {
		return nil, NewValidationError("identifier", fmt.Errorf("identifier cannot be empty"))
	}
	if !t.Valid() {
		return nil, NewValidationError("variable_type", fmt.Errorf("unrecognized variable type %q", t))
	}
	if _, ok := s.nodes[identifier]; ok {
		return nil, NewNodeExistsError(identifier)
	}
	n := newNode(identifier, t, meta)
	s.nodes[identifier] = n
	s.nodeOrder = append(s.nodeOrder, identifier)
	return n, nil
}

// addEdge inserts an undirected edge between two existing nodes.
func (s *Skeleton) addEdge(source, destination string, meta map[string]any) (*Edge, error) {
	if source == destination {
		return nil, NewValidationError("edge", fmt.Errorf("self-loop on %q is not allowed", source))
	}
	src, ok := s.nodes[source]
	if !ok {
		return nil, NewNodeNotFoundError(source)
	}
	dst, ok := s.nodes[destination]
	if !ok {
		return nil, NewNodeNotFoundError(destination)
	}
	pair := EdgePair{Source: source, Destination: destination}
	if s.HasEdgePair(pair) {
		return nil, NewEdgeExistsError(source, destination)
	}
	e := newEdge(src, dst, EdgeTypeUndirected, meta)
	s.edges[pair] = e
	s.edgeOrder = append(s.edgeOrder, pair)
	return e, nil
}

// GetNode returns the node with the given identifier.
func (s *Skeleton) GetNode(identifier string) (*Node, error) {
	n, ok := s.nodes[identifier]
	if !ok {
		return nil, NewNodeNotFoundError(identifier)
	}
	return n, nil
}

// NodeExists reports whether a node with the given identifier is present.
func (s *Skeleton) NodeExists(identifier string) bool {
	_, ok := s.nodes[identifier]
	return ok
}

// Nodes returns all nodes in insertion order.
func (s *Skeleton) Nodes() []*Node {
	out := make([]*Node, len(s.nodeOrder))
	for i, id := range s.nodeOrder {
		out[i] = s.nodes[id]
	}
	return out
}

// NodeNames returns all node identifiers in insertion order.
func (s *Skeleton) NodeNames() []string {
	return slices.Clone(s.nodeOrder)
}

// NodeCount returns the number of nodes.
func (s *Skeleton) NodeCount() int {
	return len(s.nodes)
}

// Edges returns all edges in insertion order.
func (s *Skeleton) Edges() []*Edge {
	out := make([]*Edge, len(s.edgeOrder))
	for i, pair := range s.edgeOrder {
		out[i] = s.edges[pair]
	}
	return out
}

// EdgeCount returns the number of edges.
func (s *Skeleton) EdgeCount() int {
	return len(s.edges)
}

// GetEdge returns the edge between the two nodes, accepting either
// endpoint order.
func (s *Skeleton) GetEdge(a, b string) (*Edge, error) {
	pair := EdgePair{Source: a, Destination: b}
	if e, ok := s.edges[pair]; ok {
		return e, nil
	}
	if e, ok := s.edges[pair.Reversed()]; ok {
		return e, nil
	}
	return nil, NewEdgeNotFoundError(a, b)
}

// GetEdgeByPair returns the edge for the given pair, accepting either
// endpoint order.
func (s *Skeleton) GetEdgeByPair(pair EdgePair) (*Edge, error) {
	return s.GetEdge(pair.Source, pair.Destination)
}

// EdgeExists reports whether the two nodes are connected, in either
// endpoint order.
func (s *Skeleton) EdgeExists(a, b string) bool {
	pair := EdgePair{Source: a, Destination: b}
	if _, ok := s.edges[pair]; ok {
		return true
	}
	_, ok := s.edges[pair.Reversed()]
	return ok
}

// HasEdgePair reports whether the pair is connected, in either endpoint
// order. It always agrees with EdgeExists.
func (s *Skeleton) HasEdgePair(pair EdgePair) bool {
	return s.EdgeExists(pair.Source, pair.Destination)
}

// Equal reports whether both skeletons hold exactly the same node
// identifier set and connect exactly the same unordered pairs. Structure
// that is isomorphic but relabelled is not equal. Metadata does not
// participate; see DeepEqual.
func (s *Skeleton) Equal(other *Skeleton) bool {
	return s.equal(other, false)
}

// DeepEqual is Equal with node variable types and node and edge metadata
// compared as well.
func (s *Skeleton) DeepEqual(other *Skeleton) bool {
	return s.equal(other, true)
}

func (s *Skeleton) equal(other *Skeleton, deep bool) bool {
	if other == nil {
		return false
	}
	if len(s.nodes) != len(other.nodes) || len(s.edges) != len(other.edges) {
		return false
	}
	for id, n := range s.nodes {
		m, ok := other.nodes[id]
		if !ok {
			return false
		}
		if deep && (n.variableType != m.variableType || !metaEqual(n.meta, m.meta)) {
			return false
		}
	}
	for pair, e := range s.edges {
		f, err := other.GetEdgeByPair(pair)
		if err != nil {
			return false
		}
		if deep && !metaEqual(e.meta, f.meta) {
			return false
		}
	}
	return true
}

// String returns a short human-readable summary of the skeleton.
func (s *Skeleton) String() string {
	return fmt.Sprintf("Skeleton(nodes=%d, edges=%d)", len(s.nodes), len(s.edges))
}

// FromSkeleton builds a causal graph from a skeleton. Every edge of the
// result is undirected; nodes and metadata are deep copied.
func FromSkeleton(s *Skeleton) (*CausalGraph, error) {
	g := newGraph()
	for _, id := range s.nodeOrder {
		n := s.nodes[id]
		if _, err := g.AddNode(id, WithVariableType(n.variableType), WithMeta(copyMeta(n.meta))); err != nil {
			return nil, err
		}
	}
	for _, pair := range s.edgeOrder {
		e := s.edges[pair]
		if _, err := g.AddEdge(pair.Source, pair.Destination, WithEdgeType(EdgeTypeUndirected), WithEdgeMeta(copyMeta(e.meta))); err != nil {
			return nil, err
		}
	}
	return g, nil
}
