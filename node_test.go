package causalgraph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corvid-labs/causalgraph"
)

func TestNodeAccessors(t *testing.T) {
	t.Parallel()

	t.Run("Defaults", func(t *testing.T) {
		t.Parallel()
		g := causalgraph.MustNew()
		n, err := g.AddNode("rain")
		require.NoError(t, err)

		assert.Equal(t, "rain", n.Identifier())
		assert.Equal(t, causalgraph.VariableUnspecified, n.VariableType())
		assert.Empty(t, n.Meta())
		assert.Equal(t, `Node("rain")`, n.String())
	})

	t.Run("Options", func(t *testing.T) {
		t.Parallel()
		g := causalgraph.MustNew()
		n, err := g.AddNode("rain",
			causalgraph.WithVariableType(causalgraph.VariableBinary),
			causalgraph.WithMeta(map[string]any{"source": "sensor"}),
		)
		require.NoError(t, err)

		assert.Equal(t, causalgraph.VariableBinary, n.VariableType())
		assert.Equal(t, "sensor", n.Meta()["source"])
	})

	t.Run("SetVariableType", func(t *testing.T) {
		t.Parallel()
		g := causalgraph.MustNew()
		n, err := g.AddNode("rain")
		require.NoError(t, err)

		require.NoError(t, n.SetVariableType(causalgraph.VariableContinuous))
		assert.Equal(t, causalgraph.VariableContinuous, n.VariableType())

		err = n.SetVariableType(causalgraph.VariableType("ordinal"))
		require.Error(t, err)
		assert.True(t, causalgraph.IsValidationError(err))
		assert.Equal(t, causalgraph.VariableContinuous, n.VariableType())
	})

	t.Run("SetMetaValue", func(t *testing.T) {
		t.Parallel()
		g := causalgraph.MustNew()
		n, err := g.AddNode("rain")
		require.NoError(t, err)

		require.NoError(t, n.SetMetaValue("weight", 0.5))
		assert.Equal(t, 0.5, n.Meta()["weight"])
	})
}

func TestNodeTimeSeries(t *testing.T) {
	t.Parallel()

	t.Run("LagDefaults", func(t *testing.T) {
		t.Parallel()
		g := causalgraph.MustNew()
		n, err := g.AddNode("x lag(n=2)")
		require.NoError(t, err)

		// Lag and variable name live in metadata only; an unannotated node
		// reports the zero values regardless of its identifier.
		assert.Equal(t, 0, n.TimeLag())
		assert.Equal(t, "", n.VariableName())
	})

	t.Run("SetTimeLag", func(t *testing.T) {
		t.Parallel()
		g := causalgraph.MustNew()
		n, err := g.AddNode("x lag(n=2)")
		require.NoError(t, err)

		require.NoError(t, n.SetTimeLag(-2))
		assert.Equal(t, -2, n.TimeLag())
		assert.Equal(t, -2, n.Meta()[causalgraph.MetaKeyTimeLag])
	})

	t.Run("TimeLagFromWideNumeric", func(t *testing.T) {
		t.Parallel()
		g := causalgraph.MustNew()
		n, err := g.AddNode("x lag(n=2)")
		require.NoError(t, err)

		// Decoded documents may carry the lag as float64.
		require.NoError(t, n.SetMetaValue(causalgraph.MetaKeyTimeLag, float64(-2)))
		assert.Equal(t, -2, n.TimeLag())

		require.NoError(t, n.SetMetaValue(causalgraph.MetaKeyTimeLag, 2.5))
		assert.Equal(t, 0, n.TimeLag())
	})

	t.Run("SetVariableName", func(t *testing.T) {
		t.Parallel()
		g := causalgraph.MustNew()
		n, err := g.AddNode("x lag(n=2)")
		require.NoError(t, err)

		require.NoError(t, n.SetVariableName("x"))
		assert.Equal(t, "x", n.VariableName())

		// A lagged spelling of the same base variable is accepted.
		require.NoError(t, n.SetVariableName("x lag(n=5)"))
		assert.Equal(t, "x lag(n=5)", n.VariableName())
	})

	t.Run("SetVariableNameMismatch", func(t *testing.T) {
		t.Parallel()
		g := causalgraph.MustNew()
		n, err := g.AddNode("x lag(n=2)")
		require.NoError(t, err)

		err = n.SetVariableName("y")
		require.Error(t, err)
		assert.True(t, causalgraph.IsValidationError(err))
		assert.Equal(t, "", n.VariableName())
	})

	t.Run("SetVariableNameMalformed", func(t *testing.T) {
		t.Parallel()
		g := causalgraph.MustNew()
		n, err := g.AddNode("x")
		require.NoError(t, err)

		err = n.SetVariableName("not a name")
		require.Error(t, err)
		assert.True(t, causalgraph.IsValidationError(err))
	})
}

func TestNodeEqual(t *testing.T) {
	t.Parallel()

	g1 := causalgraph.MustNew()
	a1, err := g1.AddNode("a", causalgraph.WithVariableType(causalgraph.VariableBinary))
	require.NoError(t, err)
	b1, err := g1.AddNode("b")
	require.NoError(t, err)

	g2 := causalgraph.MustNew()
	a2, err := g2.AddNode("a", causalgraph.WithMeta(map[string]any{"k": "v"}))
	require.NoError(t, err)

	// Identity is the identifier alone.
	assert.True(t, a1.Equal(a2))
	assert.False(t, a1.Equal(b1))
	assert.False(t, a1.Equal(nil))

	var nilNode *causalgraph.Node
	assert.True(t, nilNode.Equal(nil))
}

func TestNodeEdgeLists(t *testing.T) {
	t.Parallel()

	g := causalgraph.MustNew()
	_, err := g.AddEdge("rain", "wet")
	require.NoError(t, err)
	_, err = g.AddEdge("sprinkler", "wet")
	require.NoError(t, err)
	_, err = g.AddEdge("wet", "slippery")
	require.NoError(t, err)

	wet, err := g.GetNode("wet")
	require.NoError(t, err)

	inbound := wet.InboundEdges()
	require.Len(t, inbound, 2)
	assert.Equal(t, "rain", inbound[0].Source().Identifier())
	assert.Equal(t, "sprinkler", inbound[1].Source().Identifier())

	outbound := wet.OutboundEdges()
	require.Len(t, outbound, 1)
	assert.Equal(t, "slippery", outbound[0].Destination().Identifier())

	// The returned slices are snapshots.
	inbound[0] = nil
	assert.NotNil(t, wet.InboundEdges()[0])
}

func TestNodeDeletedHandle(t *testing.T) {
	t.Parallel()

	g := causalgraph.MustNew()
	n, err := g.AddNode("rain")
	require.NoError(t, err)
	require.NoError(t, g.DeleteNode("rain"))

	// Reads still work on a stale handle.
	assert.Equal(t, "rain", n.Identifier())

	// Mutations fail.
	err = n.SetVariableType(causalgraph.VariableBinary)
	assert.True(t, causalgraph.IsNodeNotFound(err))

	err = n.SetMetaValue("k", "v")
	assert.True(t, causalgraph.IsNodeNotFound(err))

	err = n.SetVariableName("rain")
	assert.True(t, causalgraph.IsNodeNotFound(err))

	err = n.SetTimeLag(-1)
	assert.True(t, causalgraph.IsNodeNotFound(err))
}
