package causalgraph

import "fmt"

// EdgePair is the ordered endpoint pair of an edge, named by identifier.
type EdgePair struct {
	Source      string
	Destination string
}

// Reversed returns the pair with its endpoints swapped.
func (p EdgePair) Reversed() EdgePair {
	return EdgePair{Source: p.Destination, Destination: p.Source}
}

// String returns the pair in its stored orientation. This string is also the
// edge identifier.
func (p EdgePair) String() string {
	return fmt.Sprintf("(%s, %s)", p.Source, p.Destination)
}

// Edge connects two nodes of a causal graph. The ordered pair
// (source, destination) as stored is the edge identity; whether orientation
// matters for equality depends on the edge type. Edges hold non-owning
// references to their endpoint nodes and are created and deleted through the
// owning CausalGraph.
type Edge struct {
	source      *Node
	destination *Node
	edgeType    EdgeType
	meta        map[string]any
	deleted     bool
}

func newEdge(source, destination *Node, t EdgeType, meta map[string]any) *Edge {
	if meta == nil {
		meta = make(map[string]any)
	}
	return &Edge{source: source, destination: destination, edgeType: t, meta: meta}
}

// Source returns the source node in stored orientation.
func (e *Edge) Source() *Node {
	return e.source
}

// Destination returns the destination node in stored orientation.
func (e *Edge) Destination() *Node {
	return e.destination
}

// Pair returns the ordered endpoint pair as stored.
func (e *Edge) Pair() EdgePair {
	return EdgePair{Source: e.source.Identifier(), Destination: e.destination.Identifier()}
}

// Identifier returns the string form of the ordered endpoint pair.
func (e *Edge) Identifier() string {
	return e.Pair().String()
}

// Type returns the edge type. Changing it goes through
// CausalGraph.ChangeEdgeType.
func (e *Edge) Type() EdgeType {
	return e.edgeType
}

// Meta returns the live metadata map of the edge.
func (e *Edge) Meta() map[string]any {
	return e.meta
}

// SetMetaValue sets a single metadata key.
func (e *Edge) SetMetaValue(key string, value any) error {
	if e.deleted {
		return NewEdgeNotFoundError(e.source.Identifier(), e.destination.Identifier())
	}
	e.meta[key] = value
	return nil
}

// Descriptor returns the edge rendered with its type between the endpoints,
// for example "(a -> b)".
func (e *Edge) Descriptor() string {
	return fmt.Sprintf("(%s %s %s)", e.source.Identifier(), e.edgeType, e.destination.Identifier())
}

// Equal reports whether two edges are interchangeable. Edges over the same
// ordered pair are equal iff their types match. Edges over reversed pairs
// are equal iff their types match and the type is symmetric; a directed edge
// is never equal to its reverse.
func (e *Edge) Equal(other *Edge) bool {
	if e == nil || other == nil {
		return e == other
	}
	if e.edgeType != other.edgeType {
		return false
	}
	p, q := e.Pair(), other.Pair()
	if p == q {
		return true
	}
	return p == q.Reversed() && e.edgeType.Symmetric()
}

// ToDocument returns the plain-data form of the edge with both endpoints
// embedded as full node documents.
func (e *Edge) ToDocument(includeMeta bool) *EdgeDocument {
	d := &EdgeDocument{
		Source:      e.source.ToDocument(includeMeta),
		Destination: e.destination.ToDocument(includeMeta),
		EdgeType:    e.edgeType,
	}
	if includeMeta {
		d.Meta = copyMeta(e.meta)
	}
	return d
}

// String returns a short human-readable form of the edge.
func (e *Edge) String() string {
	return fmt.Sprintf("Edge(%s %s %s)", e.source.Identifier(), e.edgeType, e.destination.Identifier())
}

// setType is the graph-internal half of ChangeEdgeType.
func (e *Edge) setType(t EdgeType) {
	e.edgeType = t
}

// invalidate marks the edge as deleted. Invalidating twice is a programming
// error and fails.
func (e *Edge) invalidate() error {
	if e.deleted {
		return fmt.Errorf("causalgraph: edge %s invalidated twice", e.Identifier())
	}
	e.deleted = true
	return nil
}

// copyWithEndpoints returns a detached deep copy wired to the given
// replacement endpoints.
func (e *Edge) copyWithEndpoints(source, destination *Node) *Edge {
	return &Edge{
		source:      source,
		destination: destination,
		edgeType:    e.edgeType,
		meta:        copyMeta(e.meta),
	}
}
