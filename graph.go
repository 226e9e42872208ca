package causalgraph

import (
	"fmt"
	"io"
	"log/slog"
	"slices"
)

// CausalGraph is a mutable mixed causal graph: a set of nodes joined by
// typed edges, at most one edge per unordered node pair. The graph is the
// sole owner of its nodes and edges; it maintains their edge lists and
// invalidates them on deletion.
//
// Iteration over nodes and edges is deterministic and follows insertion
// order. The graph performs no internal locking; callers that share a graph
// across goroutines own the synchronization.
type CausalGraph struct {
	nodes     map[string]*Node
	nodeOrder []string
	edges     map[EdgePair]*Edge
	edgeOrder []EdgePair
	logger    *slog.Logger
}

func newGraph() *CausalGraph {
	return &CausalGraph{
		nodes:  make(map[string]*Node),
		edges:  make(map[EdgePair]*Edge),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// New creates an empty causal graph with the given options applied.
func New(opts ...Option) (*CausalGraph, error) {
	g := newGraph()
	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// MustNew creates a new causal graph with the given options.
// It panics if any option fails.
func MustNew(opts ...Option) *CausalGraph {
	g, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return g
}

// AddNode creates a node with the given identifier and returns it. Empty
// identifiers are rejected with a validation error; identifiers already
// present fail with a NodeExistsError.
func (g *CausalGraph) AddNode(identifier string, opts ...NodeOption) (*Node, error) {
	if identifier == "" {
		return nil, NewValidationError("identifier", fmt.Errorf("identifier cannot be empty"))
	}
	if _, ok := g.nodes[identifier]; ok {
		return nil, NewNodeExistsError(identifier)
	}
	c, err := applyNodeOptions(opts)
	if err != nil {
		return nil, err
	}
	n := newNode(identifier, c.variableType, c.meta)
	g.nodes[identifier] = n
	g.nodeOrder = append(g.nodeOrder, identifier)
	g.logger.Debug("added node", "identifier", identifier, "variable_type", c.variableType)
	return n, nil
}

// AddNodesFrom creates one node per identifier, silently skipping
// identifiers already present. An empty identifier in the slice fails the
// whole call before any node is created.
func (g *CausalGraph) AddNodesFrom(identifiers []string) error {
	for _, id := range identifiers {
		if id == "" {
			return NewValidationError("identifier", fmt.Errorf("identifier cannot be empty"))
		}
	}
	for _, id := range identifiers {
		if _, ok := g.nodes[id]; ok {
			continue
		}
		if _, err := g.AddNode(id); err != nil {
			return err
		}
	}
	return nil
}

// GetNode returns the node with the given identifier.
func (g *CausalGraph) GetNode(identifier string) (*Node, error) {
	n, ok := g.nodes[identifier]
	if !ok {
		return nil, NewNodeNotFoundError(identifier)
	}
	return n, nil
}

// NodeExists reports whether a node with the given identifier is present.
func (g *CausalGraph) NodeExists(identifier string) bool {
	_, ok := g.nodes[identifier]
	return ok
}

// Nodes returns all nodes in insertion order.
func (g *CausalGraph) Nodes() []*Node {
	out := make([]*Node, len(g.nodeOrder))
	for i, id := range g.nodeOrder {
		out[i] = g.nodes[id]
	}
	return out
}

// NodeNames returns all node identifiers in insertion order. This is also
// the row and column order of AdjacencyMatrix.
func (g *CausalGraph) NodeNames() []string {
	return slices.Clone(g.nodeOrder)
}

// NodeCount returns the number of nodes.
func (g *CausalGraph) NodeCount() int {
	return len(g.nodes)
}

// DeleteNode removes the node with the given identifier together with every
// incident edge. Deleted handles are invalidated; an unknown identifier
// fails with a NodeNotFoundError and leaves the graph unchanged.
func (g *CausalGraph) DeleteNode(identifier string) error {
	n, ok := g.nodes[identifier]
	if !ok {
		return NewNodeNotFoundError(identifier)
	}
	incident := append(n.InboundEdges(), n.OutboundEdges()...)
	for _, e := range incident {
		if err := g.removeEdge(e); err != nil {
			return err
		}
	}
	delete(g.nodes, identifier)
	g.nodeOrder = slices.DeleteFunc(g.nodeOrder, func(id string) bool { return id == identifier })
	if err := n.invalidate(); err != nil {
		return err
	}
	g.logger.Debug("deleted node", "identifier", identifier, "cascaded_edges", len(incident))
	return nil
}

// AddEdge creates an edge from source to destination and returns it. Nodes
// missing from the graph are created implicitly. Self-loops are rejected
// with a validation error; a pair already connected in either orientation
// fails with an EdgeExistsError. On failure the graph is left unchanged.
func (g *CausalGraph) AddEdge(source, destination string, opts ...EdgeOption) (*Edge, error) {
	if source == "" || destination == "" {
		return nil, NewValidationError("identifier", fmt.Errorf("identifier cannot be empty"))
	}
	if source == destination {
		return nil, NewValidationError("edge", fmt.Errorf("self-loop on %q is not allowed", source))
	}
	c, err := applyEdgeOptions(opts)
	if err != nil {
		return nil, err
	}
	pair := EdgePair{Source: source, Destination: destination}
	if _, ok := g.edges[pair]; ok {
		return nil, NewEdgeExistsError(source, destination)
	}
	if _, ok := g.edges[pair.Reversed()]; ok {
		return nil, NewEdgeExistsError(source, destination)
	}
	src, ok := g.nodes[source]
	if !ok {
		if src, err = g.AddNode(source); err != nil {
			return nil, err
		}
	}
	dst, ok := g.nodes[destination]
	if !ok {
		if dst, err = g.AddNode(destination); err != nil {
			return nil, err
		}
	}
	e := newEdge(src, dst, c.edgeType, c.meta)
	src.attachOutbound(e)
	dst.attachInbound(e)
	g.edges[pair] = e
	g.edgeOrder = append(g.edgeOrder, pair)
	g.logger.Debug("added edge", "source", source, "destination", destination, "edge_type", c.edgeType)
	return e, nil
}

// GetEdge returns the edge stored under the exact ordered pair
// (source, destination).
func (g *CausalGraph) GetEdge(source, destination string) (*Edge, error) {
	e, ok := g.edges[EdgePair{Source: source, Destination: destination}]
	if !ok {
		return nil, NewEdgeNotFoundError(source, destination)
	}
	return e, nil
}

// GetEdgeByPair returns the edge stored under the exact ordered pair.
func (g *CausalGraph) GetEdgeByPair(pair EdgePair) (*Edge, error) {
	return g.GetEdge(pair.Source, pair.Destination)
}

// EdgeExists reports whether an edge is stored under the exact ordered pair
// (source, destination).
func (g *CausalGraph) EdgeExists(source, destination string) bool {
	_, ok := g.edges[EdgePair{Source: source, Destination: destination}]
	return ok
}

// Edges returns all edges in insertion order.
func (g *CausalGraph) Edges() []*Edge {
	out := make([]*Edge, len(g.edgeOrder))
	for i, pair := range g.edgeOrder {
		out[i] = g.edges[pair]
	}
	return out
}

// EdgePairs returns the ordered endpoint pairs of all edges in insertion
// order.
func (g *CausalGraph) EdgePairs() []EdgePair {
	return slices.Clone(g.edgeOrder)
}

// EdgeCount returns the number of edges.
func (g *CausalGraph) EdgeCount() int {
	return len(g.edges)
}

// DeleteEdge removes the edge stored under the exact ordered pair
// (source, destination) and invalidates its handle. An unknown pair fails
// with an EdgeNotFoundError and leaves the graph unchanged.
func (g *CausalGraph) DeleteEdge(source, destination string) error {
	e, ok := g.edges[EdgePair{Source: source, Destination: destination}]
	if !ok {
		return NewEdgeNotFoundError(source, destination)
	}
	if err := g.removeEdge(e); err != nil {
		return err
	}
	g.logger.Debug("deleted edge", "source", source, "destination", destination)
	return nil
}

// ChangeEdgeType replaces the type of the edge stored under the exact
// ordered pair, in place. The edge keeps its position in iteration order.
// This is the only sanctioned way to change an edge's type.
func (g *CausalGraph) ChangeEdgeType(source, destination string, t EdgeType) error {
	if !t.Valid() {
		return NewValidationError("edge_type", fmt.Errorf("unrecognized edge type %q", t))
	}
	e, ok := g.edges[EdgePair{Source: source, Destination: destination}]
	if !ok {
		return NewEdgeNotFoundError(source, destination)
	}
	e.setType(t)
	g.logger.Debug("changed edge type", "source", source, "destination", destination, "edge_type", t)
	return nil
}

// removeEdge detaches and invalidates an edge that is known to be present.
func (g *CausalGraph) removeEdge(e *Edge) error {
	pair := e.Pair()
	delete(g.edges, pair)
	g.edgeOrder = slices.DeleteFunc(g.edgeOrder, func(p EdgePair) bool { return p == pair })
	e.source.detach(e)
	e.destination.detach(e)
	return e.invalidate()
}

// Equal reports whether both graphs hold the same node identifier set and
// the same edge set under the edge equality rule: ordered pairs must match
// for directed edges, either orientation matches for symmetric types.
// Metadata does not participate; see DeepEqual.
func (g *CausalGraph) Equal(other *CausalGraph) bool {
	return g.equal(other, false)
}

// DeepEqual is Equal with node and edge metadata and variable types
// compared as well. Numeric metadata compares by value across the int and
// float encodings the wire formats produce.
func (g *CausalGraph) DeepEqual(other *CausalGraph) bool {
	return g.equal(other, true)
}

func (g *CausalGraph) equal(other *CausalGraph, deep bool) bool {
	if other == nil {
		return false
	}
	if len(g.nodes) != len(other.nodes) || len(g.edges) != len(other.edges) {
		return false
	}
	for id, n := range g.nodes {
		m, ok := other.nodes[id]
		if !ok {
			return false
		}
		if deep && (n.variableType != m.variableType || !metaEqual(n.meta, m.meta)) {
			return false
		}
	}
	for pair, e := range g.edges {
		f, ok := other.edges[pair]
		if !ok && e.Type().Symmetric() {
			f, ok = other.edges[pair.Reversed()]
		}
		if !ok || !e.Equal(f) {
			return false
		}
		if deep && !metaEqual(e.meta, f.meta) {
			return false
		}
	}
	return true
}

// Copy returns a deep copy of the graph, fully detached from the original.
// The copy uses the default (discarding) logger.
func (g *CausalGraph) Copy() *CausalGraph {
	out := newGraph()
	for _, id := range g.nodeOrder {
		n := g.nodes[id].copy()
		out.nodes[id] = n
		out.nodeOrder = append(out.nodeOrder, id)
	}
	for _, pair := range g.edgeOrder {
		e := g.edges[pair]
		c := e.copyWithEndpoints(out.nodes[pair.Source], out.nodes[pair.Destination])
		c.source.attachOutbound(c)
		c.destination.attachInbound(c)
		out.edges[pair] = c
		out.edgeOrder = append(out.edgeOrder, pair)
	}
	return out
}

// String returns a short human-readable summary of the graph.
func (g *CausalGraph) String() string {
	return fmt.Sprintf("CausalGraph(nodes=%d, edges=%d)", len(g.nodes), len(g.edges))
}
