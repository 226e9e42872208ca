package causalgraph

import "fmt"

// EdgeType describes the orientation semantics of an edge. The values are
// the canonical wire strings used by every serialized form.
type EdgeType string

// Edge types supported by the graph.
const (
	// EdgeTypeDirected is a directed edge: source -> destination.
	EdgeTypeDirected EdgeType = "->"

	// EdgeTypeUndirected is an undirected edge: source -- destination.
	EdgeTypeUndirected EdgeType = "--"

	// EdgeTypeBidirected is a bidirected edge: source <> destination,
	// conventionally read as a latent confounder between the two.
	EdgeTypeBidirected EdgeType = "<>"

	// EdgeTypeUnknown is an edge whose orientation has not been resolved.
	EdgeTypeUnknown EdgeType = "oo"
)

// String returns the canonical wire string of the edge type.
func (t EdgeType) String() string {
	return string(t)
}

// Valid reports whether t is one of the supported edge types.
func (t EdgeType) Valid() bool {
	switch t {
	case EdgeTypeDirected, EdgeTypeUndirected, EdgeTypeBidirected, EdgeTypeUnknown:
		return true
	}
	return false
}

// Symmetric reports whether t carries no orientation, that is, whether an
// edge of this type between a and b means the same as one between b and a.
// Directed is the only asymmetric type.
func (t EdgeType) Symmetric() bool {
	switch t {
	case EdgeTypeUndirected, EdgeTypeBidirected, EdgeTypeUnknown:
		return true
	}
	return false
}

// ParseEdgeType converts a wire string into an EdgeType.
func ParseEdgeType(s string) (EdgeType, error) {
	if t := EdgeType(s); t.Valid() {
		return t, nil
	}
	return "", NewValidationError("edge_type", fmt.Errorf("unrecognized edge type %q", s))
}

// VariableType describes the statistical type of the variable a node
// represents.
type VariableType string

// Variable types supported by nodes.
const (
	VariableUnspecified VariableType = "unspecified"
	VariableContinuous  VariableType = "continuous"
	VariableBinary      VariableType = "binary"
	VariableCategorical VariableType = "categorical"
)

// String returns the canonical wire string of the variable type.
func (t VariableType) String() string {
	return string(t)
}

// Valid reports whether t is one of the supported variable types.
func (t VariableType) Valid() bool {
	switch t {
	case VariableUnspecified, VariableContinuous, VariableBinary, VariableCategorical:
		return true
	}
	return false
}

// ParseVariableType converts a wire string into a VariableType.
func ParseVariableType(s string) (VariableType, error) {
	if t := VariableType(s); t.Valid() {
		return t, nil
	}
	return "", NewValidationError("variable_type", fmt.Errorf("unrecognized variable type %q", s))
}

// IdentifierOf resolves a node-like value to its identifier. A node-like
// value is either a raw identifier string or a *Node; resolution happens
// once, at the API boundary, so the rest of the package deals in plain
// identifiers only.
func IdentifierOf(v any) (string, error) {
	switch n := v.(type) {
	case string:
		return n, nil
	case *Node:
		if n == nil {
			return "", NewValidationError("node", fmt.Errorf("nil node"))
		}
		return n.Identifier(), nil
	default:
		return "", NewValidationError("node", fmt.Errorf("cannot resolve %T to a node identifier", v))
	}
}
