package causalgraph

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// AdjacencyMatrix returns the 0/1 adjacency matrix of the graph, with rows
// and columns following node insertion order (see NodeNames). A directed
// edge sets the (source, destination) cell; symmetric edge types set both
// cells. Returns nil for a graph with no nodes.
func (g *CausalGraph) AdjacencyMatrix() *mat.Dense {
	n := len(g.nodeOrder)
	if n == 0 {
		return nil
	}
	index := make(map[string]int, n)
	for i, id := range g.nodeOrder {
		index[id] = i
	}
	m := mat.NewDense(n, n, nil)
	for _, pair := range g.edgeOrder {
		e := g.edges[pair]
		i, j := index[pair.Source], index[pair.Destination]
		m.Set(i, j, 1)
		if e.edgeType.Symmetric() {
			m.Set(j, i, 1)
		}
	}
	return m
}

// FromAdjacencyMatrix builds a causal graph from a 0/1 adjacency matrix.
// A cell set in one direction only yields a directed edge; cells set in
// both directions collapse to a single undirected edge. Nil names use the
// positional scheme node_0, node_1, and so on; otherwise the slice must
// match the matrix dimension exactly and carry no duplicates.
//
// Structural violations (non-square, entries other than 0 and 1, nonzero
// diagonal) fail with an InvalidAdjacencyMatrixError; a names slice that
// does not honor its contract fails with a ValidationError.
func FromAdjacencyMatrix(m mat.Matrix, names []string) (*CausalGraph, error) {
	n, err := validateAdjacency(m)
	if err != nil {
		return nil, err
	}
	names, err = resolveNodeNames(n, names)
	if err != nil {
		return nil, err
	}
	g := newGraph()
	if err := g.AddNodesFrom(names); err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			forward, backward := m.At(i, j) == 1, m.At(j, i) == 1
			switch {
			case forward && backward:
				_, err = g.AddEdge(names[i], names[j], WithEdgeType(EdgeTypeUndirected))
			case forward:
				_, err = g.AddEdge(names[i], names[j])
			case backward:
				_, err = g.AddEdge(names[j], names[i])
			default:
				continue
			}
			if err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}

// ToAdjacencyMatrix returns the symmetric 0/1 adjacency matrix of the
// skeleton, with rows and columns following node insertion order. Returns
// nil for a skeleton with no nodes.
func (s *Skeleton) ToAdjacencyMatrix() *mat.Dense {
	n := len(s.nodeOrder)
	if n == 0 {
		return nil
	}
	index := make(map[string]int, n)
	for i, id := range s.nodeOrder {
		index[id] = i
	}
	m := mat.NewDense(n, n, nil)
	for _, pair := range s.edgeOrder {
		i, j := index[pair.Source], index[pair.Destination]
		m.Set(i, j, 1)
		m.Set(j, i, 1)
	}
	return m
}

// SkeletonFromAdjacencyMatrix builds a skeleton from a 0/1 adjacency
// matrix. Orientation is ignored: a cell set in either direction connects
// the pair with a single undirected edge, so permuted but structurally
// identical matrices reconstruct equal skeletons. Name handling and the
// validation split follow FromAdjacencyMatrix.
func SkeletonFromAdjacencyMatrix(m mat.Matrix, names []string) (*Skeleton, error) {
	n, err := validateAdjacency(m)
	if err != nil {
		return nil, err
	}
	names, err = resolveNodeNames(n, names)
	if err != nil {
		return nil, err
	}
	s := newSkeleton()
	for _, name := range names {
		if _, err := s.addNode(name, VariableUnspecified, nil); err != nil {
			return nil, err
		}
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if m.At(i, j) == 1 || m.At(j, i) == 1 {
				if _, err := s.addEdge(names[i], names[j], nil); err != nil {
					return nil, err
				}
			}
		}
	}
	return s, nil
}

// validateAdjacency checks the structural contract of an adjacency matrix
// and returns its dimension.
func validateAdjacency(m mat.Matrix) (int, error) {
	if m == nil {
		return 0, NewValidationError("matrix", fmt.Errorf("matrix cannot be nil"))
	}
	rows, cols := m.Dims()
	if rows != cols {
		return 0, NewInvalidAdjacencyMatrixError("matrix is not square", rows, cols)
	}
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			switch v := m.At(i, j); {
			case v != 0 && v != 1:
				return 0, NewInvalidAdjacencyMatrixError(fmt.Sprintf("entry (%d, %d) is %v, want 0 or 1", i, j, v), rows, cols)
			case v == 1 && i == j:
				return 0, NewInvalidAdjacencyMatrixError(fmt.Sprintf("self-adjacency on the diagonal at (%d, %d)", i, j), rows, cols)
			}
		}
	}
	return rows, nil
}

// resolveNodeNames applies the positional default scheme and checks the
// caller-supplied names contract.
func resolveNodeNames(n int, names []string) ([]string, error) {
	if names == nil {
		names = make([]string, n)
		for i := range names {
			names[i] = fmt.Sprintf("node_%d", i)
		}
		return names, nil
	}
	if len(names) != n {
		return nil, NewValidationError("node_names", fmt.Errorf("got %d names for a %dx%d matrix", len(names), n, n))
	}
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if name == "" {
			return nil, NewValidationError("node_names", fmt.Errorf("identifier cannot be empty"))
		}
		if _, ok := seen[name]; ok {
			return nil, NewValidationError("node_names", fmt.Errorf("duplicate identifier %q", name))
		}
		seen[name] = struct{}{}
	}
	return names, nil
}
