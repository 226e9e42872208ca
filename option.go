package causalgraph

import (
	"fmt"
	"log/slog"
)

// Option configures a new CausalGraph.
type Option func(*CausalGraph) error

// WithNodes pre-populates the graph with one node per identifier.
func WithNodes(identifiers ...string) Option {
	return func(g *CausalGraph) error {
		return g.AddNodesFrom(identifiers)
	}
}

// WithLogger sets the logger used for debug-level mutation logging.
// The default logger discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(g *CausalGraph) error {
		if l == nil {
			return NewValidationError("logger", fmt.Errorf("logger cannot be nil"))
		}
		g.logger = l
		return nil
	}
}

type nodeConfig struct {
	variableType VariableType
	meta         map[string]any
}

// NodeOption configures a node at creation time.
type NodeOption func(*nodeConfig) error

// WithVariableType sets the statistical type of the new node's variable.
func WithVariableType(t VariableType) NodeOption {
	return func(c *nodeConfig) error {
		if !t.Valid() {
			return NewValidationError("variable_type", fmt.Errorf("unrecognized variable type %q", t))
		}
		c.variableType = t
		return nil
	}
}

// WithMeta sets the initial metadata map of the new node. The map is
// retained, not copied.
func WithMeta(meta map[string]any) NodeOption {
	return func(c *nodeConfig) error {
		c.meta = meta
		return nil
	}
}

type edgeConfig struct {
	edgeType EdgeType
	meta     map[string]any
}

// EdgeOption configures an edge at creation time.
type EdgeOption func(*edgeConfig) error

// WithEdgeType sets the type of the new edge. The default is directed.
func WithEdgeType(t EdgeType) EdgeOption {
	return func(c *edgeConfig) error {
		if !t.Valid() {
			return NewValidationError("edge_type", fmt.Errorf("unrecognized edge type %q", t))
		}
		c.edgeType = t
		return nil
	}
}

// WithEdgeMeta sets the initial metadata map of the new edge. The map is
// retained, not copied.
func WithEdgeMeta(meta map[string]any) EdgeOption {
	return func(c *edgeConfig) error {
		c.meta = meta
		return nil
	}
}

func applyNodeOptions(opts []NodeOption) (*nodeConfig, error) {
	c := &nodeConfig{variableType: VariableUnspecified}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func applyEdgeOptions(opts []EdgeOption) (*edgeConfig, error) {
	c := &edgeConfig{edgeType: EdgeTypeDirected}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}
