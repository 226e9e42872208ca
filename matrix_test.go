package causalgraph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/corvid-labs/causalgraph"
)

func TestAdjacencyMatrix(t *testing.T) {
	t.Parallel()

	t.Run("Empty", func(t *testing.T) {
		t.Parallel()
		g := causalgraph.MustNew()
		assert.Nil(t, g.AdjacencyMatrix())
	})

	t.Run("DirectedChain", func(t *testing.T) {
		t.Parallel()
		g := causalgraph.MustNew()
		_, err := g.AddEdge("a", "b")
		require.NoError(t, err)
		_, err = g.AddEdge("b", "c")
		require.NoError(t, err)

		want := mat.NewDense(3, 3, []float64{
			0, 1, 0,
			0, 0, 1,
			0, 0, 0,
		})
		assert.True(t, mat.Equal(want, g.AdjacencyMatrix()))
	})

	t.Run("SymmetricTypesSetBothCells", func(t *testing.T) {
		t.Parallel()
		g := causalgraph.MustNew()
		_, err := g.AddEdge("a", "b", causalgraph.WithEdgeType(causalgraph.EdgeTypeUndirected))
		require.NoError(t, err)
		_, err = g.AddEdge("b", "c", causalgraph.WithEdgeType(causalgraph.EdgeTypeBidirected))
		require.NoError(t, err)
		_, err = g.AddEdge("a", "c")
		require.NoError(t, err)

		want := mat.NewDense(3, 3, []float64{
			0, 1, 1,
			1, 0, 1,
			0, 1, 0,
		})
		assert.True(t, mat.Equal(want, g.AdjacencyMatrix()))
	})

	t.Run("RowOrderFollowsNodeNames", func(t *testing.T) {
		t.Parallel()
		g := causalgraph.MustNew(causalgraph.WithNodes("z", "a"))
		_, err := g.AddEdge("z", "a")
		require.NoError(t, err)

		assert.Equal(t, []string{"z", "a"}, g.NodeNames())
		want := mat.NewDense(2, 2, []float64{
			0, 1,
			0, 0,
		})
		assert.True(t, mat.Equal(want, g.AdjacencyMatrix()))
	})
}

func TestFromAdjacencyMatrix(t *testing.T) {
	t.Parallel()

	t.Run("Directed", func(t *testing.T) {
		t.Parallel()
		g, err := causalgraph.FromAdjacencyMatrix(mat.NewDense(2, 2, []float64{
			0, 1,
			0, 0,
		}), []string{"rain", "wet"})
		require.NoError(t, err)

		e, err := g.GetEdge("rain", "wet")
		require.NoError(t, err)
		assert.Equal(t, causalgraph.EdgeTypeDirected, e.Type())
	})

	t.Run("BackwardCell", func(t *testing.T) {
		t.Parallel()
		g, err := causalgraph.FromAdjacencyMatrix(mat.NewDense(2, 2, []float64{
			0, 0,
			1, 0,
		}), []string{"rain", "wet"})
		require.NoError(t, err)

		e, err := g.GetEdge("wet", "rain")
		require.NoError(t, err)
		assert.Equal(t, causalgraph.EdgeTypeDirected, e.Type())
	})

	t.Run("BothCellsCollapseToUndirected", func(t *testing.T) {
		t.Parallel()
		g, err := causalgraph.FromAdjacencyMatrix(mat.NewDense(2, 2, []float64{
			0, 1,
			1, 0,
		}), []string{"a", "b"})
		require.NoError(t, err)

		assert.Equal(t, 1, g.EdgeCount())
		e, err := g.GetEdge("a", "b")
		require.NoError(t, err)
		assert.Equal(t, causalgraph.EdgeTypeUndirected, e.Type())
	})

	t.Run("DefaultNames", func(t *testing.T) {
		t.Parallel()
		g, err := causalgraph.FromAdjacencyMatrix(mat.NewDense(3, 3, []float64{
			0, 1, 0,
			0, 0, 1,
			0, 0, 0,
		}), nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"node_0", "node_1", "node_2"}, g.NodeNames())
	})

	t.Run("RoundTrip", func(t *testing.T) {
		t.Parallel()
		g := causalgraph.MustNew()
		_, err := g.AddEdge("a", "b")
		require.NoError(t, err)
		_, err = g.AddEdge("b", "c", causalgraph.WithEdgeType(causalgraph.EdgeTypeUndirected))
		require.NoError(t, err)

		back, err := causalgraph.FromAdjacencyMatrix(g.AdjacencyMatrix(), g.NodeNames())
		require.NoError(t, err)
		assert.True(t, g.Equal(back))
	})

	t.Run("ZeroMatrix", func(t *testing.T) {
		t.Parallel()
		g, err := causalgraph.FromAdjacencyMatrix(mat.NewDense(2, 2, nil), []string{"a", "b"})
		require.NoError(t, err)
		assert.Equal(t, 2, g.NodeCount())
		assert.Equal(t, 0, g.EdgeCount())
	})
}

func TestFromAdjacencyMatrixErrors(t *testing.T) {
	t.Parallel()

	t.Run("Nil", func(t *testing.T) {
		t.Parallel()
		_, err := causalgraph.FromAdjacencyMatrix(nil, nil)
		require.Error(t, err)
		assert.True(t, causalgraph.IsValidationError(err))
	})

	t.Run("NonSquare", func(t *testing.T) {
		t.Parallel()
		_, err := causalgraph.FromAdjacencyMatrix(mat.NewDense(2, 3, nil), nil)
		require.Error(t, err)
		assert.True(t, causalgraph.IsInvalidAdjacencyMatrix(err))

		var invalid *causalgraph.InvalidAdjacencyMatrixError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, "matrix is not square", invalid.Reason())
		rows, cols := invalid.Dims()
		assert.Equal(t, 2, rows)
		assert.Equal(t, 3, cols)
	})

	t.Run("NonBinaryEntry", func(t *testing.T) {
		t.Parallel()
		_, err := causalgraph.FromAdjacencyMatrix(mat.NewDense(2, 2, []float64{
			0, 1.1,
			0, 0,
		}), nil)
		require.Error(t, err)
		assert.True(t, causalgraph.IsInvalidAdjacencyMatrix(err))
		assert.Contains(t, err.Error(), "entry (0, 1) is 1.1, want 0 or 1")
	})

	t.Run("NonzeroDiagonal", func(t *testing.T) {
		t.Parallel()
		_, err := causalgraph.FromAdjacencyMatrix(mat.NewDense(2, 2, []float64{
			1, 0,
			0, 0,
		}), nil)
		require.Error(t, err)
		assert.True(t, causalgraph.IsInvalidAdjacencyMatrix(err))
		assert.Contains(t, err.Error(), "self-adjacency on the diagonal at (0, 0)")
	})

	t.Run("WrongNameCount", func(t *testing.T) {
		t.Parallel()
		_, err := causalgraph.FromAdjacencyMatrix(mat.NewDense(2, 2, nil), []string{"a"})
		require.Error(t, err)
		assert.True(t, causalgraph.IsValidationError(err))

		var v *causalgraph.ValidationError
		require.ErrorAs(t, err, &v)
		assert.Equal(t, "node_names", v.Name)
	})

	t.Run("DuplicateNames", func(t *testing.T) {
		t.Parallel()
		_, err := causalgraph.FromAdjacencyMatrix(mat.NewDense(2, 2, nil), []string{"a", "a"})
		require.Error(t, err)
		assert.True(t, causalgraph.IsValidationError(err))
	})

	t.Run("EmptyName", func(t *testing.T) {
		t.Parallel()
		_, err := causalgraph.FromAdjacencyMatrix(mat.NewDense(2, 2, nil), []string{"a", ""})
		require.Error(t, err)
		assert.True(t, causalgraph.IsValidationError(err))
	})
}

func TestSkeletonAdjacencyMatrix(t *testing.T) {
	t.Parallel()

	t.Run("AlwaysSymmetric", func(t *testing.T) {
		t.Parallel()
		g := causalgraph.MustNew()
		_, err := g.AddEdge("a", "b")
		require.NoError(t, err)
		_, err = g.AddEdge("b", "c")
		require.NoError(t, err)

		m := g.Skeleton().ToAdjacencyMatrix()
		want := mat.NewDense(3, 3, []float64{
			0, 1, 0,
			1, 0, 1,
			0, 1, 0,
		})
		assert.True(t, mat.Equal(want, m))
	})

	t.Run("Empty", func(t *testing.T) {
		t.Parallel()
		s := causalgraph.MustNew().Skeleton()
		assert.Nil(t, s.ToAdjacencyMatrix())
	})
}

func TestSkeletonFromAdjacencyMatrix(t *testing.T) {
	t.Parallel()

	t.Run("OrientationIgnored", func(t *testing.T) {
		t.Parallel()
		// An asymmetric matrix is fine here: either cell connects the pair.
		s, err := causalgraph.SkeletonFromAdjacencyMatrix(mat.NewDense(3, 3, []float64{
			0, 1, 0,
			0, 0, 0,
			1, 0, 0,
		}), []string{"a", "b", "c"})
		require.NoError(t, err)

		assert.Equal(t, 2, s.EdgeCount())
		assert.True(t, s.EdgeExists("a", "b"))
		assert.True(t, s.EdgeExists("a", "c"))
		assert.False(t, s.EdgeExists("b", "c"))
	})

	t.Run("DefaultNames", func(t *testing.T) {
		t.Parallel()
		s, err := causalgraph.SkeletonFromAdjacencyMatrix(mat.NewDense(2, 2, []float64{
			0, 1,
			1, 0,
		}), nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"node_0", "node_1"}, s.NodeNames())
	})

	t.Run("RoundTrip", func(t *testing.T) {
		t.Parallel()
		g := causalgraph.MustNew()
		_, err := g.AddEdge("rain", "wet")
		require.NoError(t, err)
		_, err = g.AddEdge("sprinkler", "wet", causalgraph.WithEdgeType(causalgraph.EdgeTypeBidirected))
		require.NoError(t, err)

		s := g.Skeleton()
		back, err := causalgraph.SkeletonFromAdjacencyMatrix(s.ToAdjacencyMatrix(), s.NodeNames())
		require.NoError(t, err)
		assert.True(t, s.Equal(back))
	})

	t.Run("StructuralErrors", func(t *testing.T) {
		t.Parallel()
		_, err := causalgraph.SkeletonFromAdjacencyMatrix(mat.NewDense(2, 3, nil), nil)
		require.Error(t, err)
		assert.True(t, causalgraph.IsInvalidAdjacencyMatrix(err))

		_, err = causalgraph.SkeletonFromAdjacencyMatrix(mat.NewDense(2, 2, []float64{
			1, 0,
			0, 0,
		}), nil)
		require.Error(t, err)
		assert.True(t, causalgraph.IsInvalidAdjacencyMatrix(err))

		_, err = causalgraph.SkeletonFromAdjacencyMatrix(mat.NewDense(2, 2, nil), []string{"a", "a"})
		require.Error(t, err)
		assert.True(t, causalgraph.IsValidationError(err))
	})
}
