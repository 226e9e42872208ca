package causalgraph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corvid-labs/causalgraph"
)

func TestEdgeType(t *testing.T) {
	t.Parallel()

	t.Run("String", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "->", causalgraph.EdgeTypeDirected.String())
		assert.Equal(t, "--", causalgraph.EdgeTypeUndirected.String())
		assert.Equal(t, "<>", causalgraph.EdgeTypeBidirected.String())
		assert.Equal(t, "oo", causalgraph.EdgeTypeUnknown.String())
	})

	t.Run("Valid", func(t *testing.T) {
		t.Parallel()
		for _, et := range []causalgraph.EdgeType{
			causalgraph.EdgeTypeDirected,
			causalgraph.EdgeTypeUndirected,
			causalgraph.EdgeTypeBidirected,
			causalgraph.EdgeTypeUnknown,
		} {
			assert.True(t, et.Valid(), "edge type %q", et)
		}
		assert.False(t, causalgraph.EdgeType("=>").Valid())
		assert.False(t, causalgraph.EdgeType("").Valid())
	})

	t.Run("Symmetric", func(t *testing.T) {
		t.Parallel()
		assert.False(t, causalgraph.EdgeTypeDirected.Symmetric())
		assert.True(t, causalgraph.EdgeTypeUndirected.Symmetric())
		assert.True(t, causalgraph.EdgeTypeBidirected.Symmetric())
		assert.True(t, causalgraph.EdgeTypeUnknown.Symmetric())
		assert.False(t, causalgraph.EdgeType("=>").Symmetric())
	})
}

func TestParseEdgeType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  causalgraph.EdgeType
		ok    bool
	}{
		{name: "Directed", input: "->", want: causalgraph.EdgeTypeDirected, ok: true},
		{name: "Undirected", input: "--", want: causalgraph.EdgeTypeUndirected, ok: true},
		{name: "Bidirected", input: "<>", want: causalgraph.EdgeTypeBidirected, ok: true},
		{name: "Unknown", input: "oo", want: causalgraph.EdgeTypeUnknown, ok: true},
		{name: "Unrecognized", input: "=>", ok: false},
		{name: "Empty", input: "", ok: false},
		{name: "ReversedArrow", input: "<-", ok: false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := causalgraph.ParseEdgeType(tt.input)
			if !tt.ok {
				require.Error(t, err)
				assert.True(t, causalgraph.IsValidationError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVariableType(t *testing.T) {
	t.Parallel()

	t.Run("String", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "unspecified", causalgraph.VariableUnspecified.String())
		assert.Equal(t, "continuous", causalgraph.VariableContinuous.String())
		assert.Equal(t, "binary", causalgraph.VariableBinary.String())
		assert.Equal(t, "categorical", causalgraph.VariableCategorical.String())
	})

	t.Run("Valid", func(t *testing.T) {
		t.Parallel()
		for _, vt := range []causalgraph.VariableType{
			causalgraph.VariableUnspecified,
			causalgraph.VariableContinuous,
			causalgraph.VariableBinary,
			causalgraph.VariableCategorical,
		} {
			assert.True(t, vt.Valid(), "variable type %q", vt)
		}
		assert.False(t, causalgraph.VariableType("ordinal").Valid())
		assert.False(t, causalgraph.VariableType("").Valid())
	})
}

func TestParseVariableType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  causalgraph.VariableType
		ok    bool
	}{
		{name: "Unspecified", input: "unspecified", want: causalgraph.VariableUnspecified, ok: true},
		{name: "Continuous", input: "continuous", want: causalgraph.VariableContinuous, ok: true},
		{name: "Binary", input: "binary", want: causalgraph.VariableBinary, ok: true},
		{name: "Categorical", input: "categorical", want: causalgraph.VariableCategorical, ok: true},
		{name: "Unrecognized", input: "ordinal", ok: false},
		{name: "Empty", input: "", ok: false},
		{name: "CaseSensitive", input: "Binary", ok: false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := causalgraph.ParseVariableType(tt.input)
			if !tt.ok {
				require.Error(t, err)
				assert.True(t, causalgraph.IsValidationError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIdentifierOf(t *testing.T) {
	t.Parallel()

	t.Run("String", func(t *testing.T) {
		t.Parallel()
		id, err := causalgraph.IdentifierOf("rain")
		require.NoError(t, err)
		assert.Equal(t, "rain", id)
	})

	t.Run("Node", func(t *testing.T) {
		t.Parallel()
		g := causalgraph.MustNew()
		n, err := g.AddNode("sprinkler")
		require.NoError(t, err)

		id, err := causalgraph.IdentifierOf(n)
		require.NoError(t, err)
		assert.Equal(t, "sprinkler", id)
	})

	t.Run("NilNode", func(t *testing.T) {
		t.Parallel()
		_, err := causalgraph.IdentifierOf((*causalgraph.Node)(nil))
		require.Error(t, err)
		assert.True(t, causalgraph.IsValidationError(err))
	})

	t.Run("UnsupportedType", func(t *testing.T) {
		t.Parallel()
		_, err := causalgraph.IdentifierOf(42)
		require.Error(t, err)
		assert.True(t, causalgraph.IsValidationError(err))
		assert.Contains(t, err.Error(), "int")
	})
}
