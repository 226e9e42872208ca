package causalgraph

import "fmt"

// NodeDocument is the plain-data form of a Node.
type NodeDocument struct {
	Identifier   string         `json:"identifier" yaml:"identifier" msgpack:"identifier"`
	VariableType VariableType   `json:"variable_type" yaml:"variable_type" msgpack:"variable_type"`
	Meta         map[string]any `json:"meta,omitempty" yaml:"meta,omitempty" msgpack:"meta,omitempty"`
}

// EdgeDocument is the standalone plain-data form of an Edge, with both
// endpoints embedded as full node documents.
type EdgeDocument struct {
	Source      *NodeDocument  `json:"source" yaml:"source" msgpack:"source"`
	Destination *NodeDocument  `json:"destination" yaml:"destination" msgpack:"destination"`
	EdgeType    EdgeType       `json:"edge_type" yaml:"edge_type" msgpack:"edge_type"`
	Meta        map[string]any `json:"meta,omitempty" yaml:"meta,omitempty" msgpack:"meta,omitempty"`
}

// GraphEdgeDocument is the edge form used inside Document. Endpoints are
// bare identifiers; the schema is deliberately distinct from EdgeDocument.
type GraphEdgeDocument struct {
	Source      string         `json:"source" yaml:"source" msgpack:"source"`
	Destination string         `json:"destination" yaml:"destination" msgpack:"destination"`
	EdgeType    EdgeType       `json:"edge_type" yaml:"edge_type" msgpack:"edge_type"`
	Meta        map[string]any `json:"meta,omitempty" yaml:"meta,omitempty" msgpack:"meta,omitempty"`
}

// Document is the plain-data form of a CausalGraph. Node and edge order is
// the graph's insertion order.
type Document struct {
	Nodes []*NodeDocument      `json:"nodes" yaml:"nodes" msgpack:"nodes"`
	Edges []*GraphEdgeDocument `json:"edges" yaml:"edges" msgpack:"edges"`
}

// SkeletonEdgeDocument is the edge form used inside SkeletonDocument.
// Endpoints are bare identifiers; skeleton edges are always undirected, so
// no type is carried.
type SkeletonEdgeDocument struct {
	Source      string         `json:"source" yaml:"source" msgpack:"source"`
	Destination string         `json:"destination" yaml:"destination" msgpack:"destination"`
	Meta        map[string]any `json:"meta,omitempty" yaml:"meta,omitempty" msgpack:"meta,omitempty"`
}

// SkeletonDocument is the plain-data form of a Skeleton.
type SkeletonDocument struct {
	Nodes []*NodeDocument         `json:"nodes" yaml:"nodes" msgpack:"nodes"`
	Edges []*SkeletonEdgeDocument `json:"edges" yaml:"edges" msgpack:"edges"`
}

// ToDocument returns the plain-data form of the graph. Metadata maps are
// deep copied; includeMeta=false omits them entirely, symmetrically with
// FromDocument.
func (g *CausalGraph) ToDocument(includeMeta bool) *Document {
	d := &Document{
		Nodes: make([]*NodeDocument, 0, len(g.nodeOrder)),
		Edges: make([]*GraphEdgeDocument, 0, len(g.edgeOrder)),
	}
	for _, n := range g.Nodes() {
		d.Nodes = append(d.Nodes, n.ToDocument(includeMeta))
	}
	for _, e := range g.Edges() {
		ed := &GraphEdgeDocument{
			Source:      e.source.Identifier(),
			Destination: e.destination.Identifier(),
			EdgeType:    e.edgeType,
		}
		if includeMeta {
			ed.Meta = copyMeta(e.meta)
		}
		d.Edges = append(d.Edges, ed)
	}
	return d
}

// FromDocument builds a causal graph from its plain-data form. Node order
// in the document becomes insertion order. Duplicate identifiers,
// unrecognized enum values and self-loops are rejected; an absent variable
// or edge type falls back to its default.
func FromDocument(d *Document) (*CausalGraph, error) {
	if d == nil {
		return nil, NewValidationError("document", fmt.Errorf("document cannot be nil"))
	}
	g := newGraph()
	for _, nd := range d.Nodes {
		if nd == nil {
			return nil, NewValidationError("document", fmt.Errorf("nil node document"))
		}
		opts := []NodeOption{WithVariableType(documentVariableType(nd.VariableType))}
		if nd.Meta != nil {
			opts = append(opts, WithMeta(normalizeNodeMeta(copyMeta(nd.Meta))))
		}
		if _, err := g.AddNode(nd.Identifier, opts...); err != nil {
			return nil, err
		}
	}
	for _, ed := range d.Edges {
		if ed == nil {
			return nil, NewValidationError("document", fmt.Errorf("nil edge document"))
		}
		opts := []EdgeOption{WithEdgeType(documentEdgeType(ed.EdgeType))}
		if ed.Meta != nil {
			opts = append(opts, WithEdgeMeta(copyMeta(ed.Meta)))
		}
		if _, err := g.AddEdge(ed.Source, ed.Destination, opts...); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// ToDocument returns the plain-data form of the skeleton, with bare
// identifier endpoints on the edges.
func (s *Skeleton) ToDocument(includeMeta bool) *SkeletonDocument {
	d := &SkeletonDocument{
		Nodes: make([]*NodeDocument, 0, len(s.nodeOrder)),
		Edges: make([]*SkeletonEdgeDocument, 0, len(s.edgeOrder)),
	}
	for _, n := range s.Nodes() {
		d.Nodes = append(d.Nodes, n.ToDocument(includeMeta))
	}
	for _, e := range s.Edges() {
		ed := &SkeletonEdgeDocument{
			Source:      e.source.Identifier(),
			Destination: e.destination.Identifier(),
		}
		if includeMeta {
			ed.Meta = copyMeta(e.meta)
		}
		d.Edges = append(d.Edges, ed)
	}
	return d
}

// SkeletonFromDocument builds a skeleton from its plain-data form. Every
// edge endpoint must be declared in the node list.
func SkeletonFromDocument(d *SkeletonDocument) (*Skeleton, error) {
	if d == nil {
		return nil, NewValidationError("document", fmt.Errorf("document cannot be nil"))
	}
	s := newSkeleton()
	for _, nd := range d.Nodes {
		if nd == nil {
			return nil, NewValidationError("document", fmt.Errorf("nil node document"))
		}
		var meta map[string]any
		if nd.Meta != nil {
			meta = normalizeNodeMeta(copyMeta(nd.Meta))
		}
		if _, err := s.addNode(nd.Identifier, documentVariableType(nd.VariableType), meta); err != nil {
			return nil, err
		}
	}
	for _, ed := range d.Edges {
		if ed == nil {
			return nil, NewValidationError("document", fmt.Errorf("nil edge document"))
		}
		var meta map[string]any
		if ed.Meta != nil {
			meta = copyMeta(ed.Meta)
		}
		if _, err := s.addEdge(ed.Source, ed.Destination, meta); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// EdgeFromDocument builds a detached edge from its standalone plain-data
// form. The endpoints are reconstructed from the embedded node documents;
// the result belongs to no graph.
func EdgeFromDocument(d *EdgeDocument) (*Edge, error) {
	if d == nil || d.Source == nil || d.Destination == nil {
		return nil, NewValidationError("document", fmt.Errorf("edge document needs both endpoints"))
	}
	if d.Source.Identifier == "" || d.Destination.Identifier == "" {
		return nil, NewValidationError("identifier", fmt.Errorf("identifier cannot be empty"))
	}
	if d.Source.Identifier == d.Destination.Identifier {
		return nil, NewValidationError("edge", fmt.Errorf("self-loop on %q is not allowed", d.Source.Identifier))
	}
	t := documentEdgeType(d.EdgeType)
	if !t.Valid() {
		return nil, NewValidationError("edge_type", fmt.Errorf("unrecognized edge type %q", d.EdgeType))
	}
	src, err := nodeFromDocument(d.Source)
	if err != nil {
		return nil, err
	}
	dst, err := nodeFromDocument(d.Destination)
	if err != nil {
		return nil, err
	}
	return newEdge(src, dst, t, copyMeta(d.Meta)), nil
}

func nodeFromDocument(d *NodeDocument) (*Node, error) {
	t := documentVariableType(d.VariableType)
	if !t.Valid() {
		return nil, NewValidationError("variable_type", fmt.Errorf("unrecognized variable type %q", d.VariableType))
	}
	return newNode(d.Identifier, t, normalizeNodeMeta(copyMeta(d.Meta))), nil
}

// documentVariableType maps an absent variable type to the default.
func documentVariableType(t VariableType) VariableType {
	if t == "" {
		return VariableUnspecified
	}
	return t
}

// documentEdgeType maps an absent edge type to the default.
func documentEdgeType(t EdgeType) EdgeType {
	if t == "" {
		return EdgeTypeDirected
	}
	return t
}

// normalizeNodeMeta re-coerces reserved metadata keys to their declared
// types after a trip through a wire format that widens integers.
func normalizeNodeMeta(meta map[string]any) map[string]any {
	if meta == nil {
		return nil
	}
	if v, ok := meta[MetaKeyTimeLag]; ok {
		if lag, ok := intFromAny(v); ok {
			meta[MetaKeyTimeLag] = lag
		}
	}
	return meta
}
