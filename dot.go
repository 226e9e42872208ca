package causalgraph

import (
	"fmt"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/encoding/dot"
	"gonum.org/v1/gonum/graph/simple"
)

// MarshalDOT renders the graph as DOT markup. A causal graph serializes as
// a digraph; the edge_type attribute keeps symmetric types distinguishable
// from plain arcs. The round trip through FromDOT preserves structure, not
// byte layout.
func (g *CausalGraph) MarshalDOT() ([]byte, error) {
	return dot.Marshal(g.ToGonum(), "", "", "  ")
}

// FromDOT builds a causal graph from DOT markup produced by MarshalDOT or
// by compatible tooling. Nodes missing a variable_type attribute default to
// unspecified; arcs missing an edge_type attribute follow the FromGonum
// defaulting rules.
func FromDOT(data []byte) (*CausalGraph, error) {
	b := newDOTDirectedBuilder()
	if err := dot.Unmarshal(data, b); err != nil {
		return nil, NewValidationError("dot", err)
	}
	if b.err != nil {
		return nil, NewValidationError("dot", b.err)
	}
	return FromGonum(b.DirectedGraph)
}

// MarshalDOT renders the skeleton as DOT markup. A skeleton serializes as
// an undirected graph.
func (s *Skeleton) MarshalDOT() ([]byte, error) {
	return dot.Marshal(s.ToGonum(), "", "", "  ")
}

// SkeletonFromDOT builds a skeleton from DOT markup produced by
// Skeleton.MarshalDOT or by compatible tooling.
func SkeletonFromDOT(data []byte) (*Skeleton, error) {
	b := newDOTUndirectedBuilder()
	if err := dot.Unmarshal(data, b); err != nil {
		return nil, NewValidationError("dot", err)
	}
	if b.err != nil {
		return nil, NewValidationError("dot", b.err)
	}
	return SkeletonFromGonum(b.UndirectedGraph)
}

// dotDirectedBuilder adapts simple.DirectedGraph so the DOT decoder
// produces GonumNode and GonumEdge values.
type dotDirectedBuilder struct {
	*simple.DirectedGraph
	err error
}

func newDOTDirectedBuilder() *dotDirectedBuilder {
	return &dotDirectedBuilder{DirectedGraph: simple.NewDirectedGraph()}
}

func (b *dotDirectedBuilder) NewNode() graph.Node {
	return &GonumNode{id: b.DirectedGraph.NewNode().ID(), variableType: VariableUnspecified}
}

func (b *dotDirectedBuilder) NewEdge(from, to graph.Node) graph.Edge {
	return &GonumEdge{from: from, to: to}
}

func (b *dotDirectedBuilder) SetEdge(e graph.Edge) {
	if e.From().ID() == e.To().ID() {
		b.err = fmt.Errorf("self-loop on node id %d is not allowed", e.From().ID())
		return
	}
	b.DirectedGraph.SetEdge(e)
}

// dotUndirectedBuilder is the undirected counterpart of
// dotDirectedBuilder.
type dotUndirectedBuilder struct {
	*simple.UndirectedGraph
	err error
}

func newDOTUndirectedBuilder() *dotUndirectedBuilder {
	return &dotUndirectedBuilder{UndirectedGraph: simple.NewUndirectedGraph()}
}

func (b *dotUndirectedBuilder) NewNode() graph.Node {
	return &GonumNode{id: b.UndirectedGraph.NewNode().ID(), variableType: VariableUnspecified}
}

func (b *dotUndirectedBuilder) NewEdge(from, to graph.Node) graph.Edge {
	return &GonumEdge{from: from, to: to, edgeType: EdgeTypeUndirected}
}

func (b *dotUndirectedBuilder) SetEdge(e graph.Edge) {
	if e.From().ID() == e.To().ID() {
		b.err = fmt.Errorf("self-loop on node id %d is not allowed", e.From().ID())
		return
	}
	b.UndirectedGraph.SetEdge(e)
}

// quoteDOTID renders a string as a double-quoted DOT ID. Identifiers with
// lag suffixes contain spaces and parentheses, so quoting is always on.
func quoteDOTID(s string) string {
	return strconv.Quote(s)
}

// unquoteDOTID undoes quoteDOTID. Decoders differ on whether attribute
// values arrive with their quotes, so unquoted input passes through as-is.
func unquoteDOTID(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		if out, err := strconv.Unquote(s); err == nil {
			return out
		}
	}
	return s
}
