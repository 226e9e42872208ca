package causalgraph

import (
	"fmt"
	"slices"
)

// Reserved metadata keys maintained by the node accessors.
const (
	// MetaKeyVariableName holds the base variable name of a lagged node.
	MetaKeyVariableName = "variable_name"

	// MetaKeyTimeLag holds the time lag of a node relative to the current
	// time step. Absent means lag 0.
	MetaKeyTimeLag = "time_lag"
)

// Node is a single variable in a causal graph. Its identifier is immutable
// and is the sole carrier of identity: two nodes with the same identifier
// are equal no matter how their metadata or variable types differ.
//
// Nodes are created and deleted through their owning CausalGraph; the edge
// lists are maintained by the graph and must not be mutated elsewhere.
type Node struct {
	identifier   string
	variableType VariableType
	meta         map[string]any
	inbound      []*Edge
	outbound     []*Edge
	deleted      bool
}

func newNode(identifier string, variableType VariableType, meta map[string]any) *Node {
	if meta == nil {
		meta = make(map[string]any)
	}
	return &Node{identifier: identifier, variableType: variableType, meta: meta}
}

// Identifier returns the node identifier. It remains accessible after the
// node has been deleted from its graph.
func (n *Node) Identifier() string {
	return n.identifier
}

// VariableType returns the statistical type of the variable.
func (n *Node) VariableType() VariableType {
	return n.variableType
}

// SetVariableType updates the statistical type of the variable. Unrecognized
// values are rejected with a validation error.
func (n *Node) SetVariableType(t VariableType) error {
	if n.deleted {
		return NewNodeNotFoundError(n.identifier)
	}
	if !t.Valid() {
		return NewValidationError("variable_type", fmt.Errorf("unrecognized variable type %q", t))
	}
	n.variableType = t
	return nil
}

// Meta returns the live metadata map of the node. Mutating it never changes
// node identity.
func (n *Node) Meta() map[string]any {
	return n.meta
}

// SetMetaValue sets a single metadata key.
func (n *Node) SetMetaValue(key string, value any) error {
	if n.deleted {
		return NewNodeNotFoundError(n.identifier)
	}
	n.meta[key] = value
	return nil
}

// VariableName returns the base variable name stored in metadata, or the
// empty string when none has been set.
func (n *Node) VariableName() string {
	if v, ok := n.meta[MetaKeyVariableName].(string); ok {
		return v
	}
	return ""
}

// SetVariableName stores the base variable name in metadata. The name must
// decode to the same base variable as the node identifier.
func (n *Node) SetVariableName(name string) error {
	if n.deleted {
		return NewNodeNotFoundError(n.identifier)
	}
	base, _, err := VariableNameAndLag(name)
	if err != nil {
		return err
	}
	own, _, err := VariableNameAndLag(n.identifier)
	if err != nil {
		return NewValidationError("variable_name", fmt.Errorf("node identifier %q carries no variable name", n.identifier))
	}
	if base != own {
		return NewValidationError("variable_name", fmt.Errorf("variable name %q does not match node %q", name, n.identifier))
	}
	n.meta[MetaKeyVariableName] = name
	return nil
}

// TimeLag returns the time lag stored in metadata, defaulting to 0 when the
// key is absent.
func (n *Node) TimeLag() int {
	if v, ok := intFromAny(n.meta[MetaKeyTimeLag]); ok {
		return v
	}
	return 0
}

// SetTimeLag stores the time lag in metadata.
func (n *Node) SetTimeLag(lag int) error {
	if n.deleted {
		return NewNodeNotFoundError(n.identifier)
	}
	n.meta[MetaKeyTimeLag] = lag
	return nil
}

// InboundEdges returns the edges whose destination is this node.
func (n *Node) InboundEdges() []*Edge {
	return slices.Clone(n.inbound)
}

// OutboundEdges returns the edges whose source is this node.
func (n *Node) OutboundEdges() []*Edge {
	return slices.Clone(n.outbound)
}

// Equal reports whether both nodes carry the same identifier. Metadata and
// variable types do not participate in equality.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	return n.identifier == other.identifier
}

// ToDocument returns the plain-data form of the node. Metadata is deep
// copied; includeMeta=false omits it entirely.
func (n *Node) ToDocument(includeMeta bool) *NodeDocument {
	d := &NodeDocument{
		Identifier:   n.identifier,
		VariableType: n.variableType,
	}
	if includeMeta {
		d.Meta = copyMeta(n.meta)
	}
	return d
}

// String returns a short human-readable form of the node.
func (n *Node) String() string {
	return fmt.Sprintf("Node(%q)", n.identifier)
}

// invalidate marks the node as deleted. Invalidating twice is a programming
// error and fails.
func (n *Node) invalidate() error {
	if n.deleted {
		return fmt.Errorf("causalgraph: node %q invalidated twice", n.identifier)
	}
	n.deleted = true
	return nil
}

// copy returns a detached deep copy with empty edge lists. Edge wiring is
// the owning container's job.
func (n *Node) copy() *Node {
	return &Node{
		identifier:   n.identifier,
		variableType: n.variableType,
		meta:         copyMeta(n.meta),
	}
}

func (n *Node) attachInbound(e *Edge) {
	n.inbound = append(n.inbound, e)
}

func (n *Node) attachOutbound(e *Edge) {
	n.outbound = append(n.outbound, e)
}

func (n *Node) detach(e *Edge) {
	n.inbound = slices.DeleteFunc(n.inbound, func(x *Edge) bool { return x == e })
	n.outbound = slices.DeleteFunc(n.outbound, func(x *Edge) bool { return x == e })
}
