// Package integration exercises the public causalgraph API the way an
// external module consumes it: graphs built through exported constructors
// only, persisted through graphstore against a live SQLite database.
package integration

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corvid-labs/causalgraph"
	"github.com/corvid-labs/causalgraph/codec"
	"github.com/corvid-labs/causalgraph/graphstore"
)

// openStore opens an in-memory SQLite catalog scoped to the test.
func openStore(t *testing.T, opts ...graphstore.Option) *graphstore.Store {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	store, err := graphstore.Open(graphstore.SQLite, dsn, opts...)
	require.NoError(t, err)
	// A single pooled connection keeps the shared in-memory database
	// alive between statements.
	store.DB().SetMaxOpenConns(1)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Init(context.Background()))
	return store
}

func sprinklerGraph(t *testing.T) *causalgraph.CausalGraph {
	t.Helper()
	g := causalgraph.MustNew()
	for _, id := range []string{"rain", "sprinkler", "wet", "slippery"} {
		_, err := g.AddNode(id, causalgraph.WithVariableType(causalgraph.VariableBinary))
		require.NoError(t, err)
	}
	_, err := g.AddEdge("rain", "sprinkler", causalgraph.WithEdgeType(causalgraph.EdgeTypeBidirected))
	require.NoError(t, err)
	_, err = g.AddEdge("rain", "wet", causalgraph.WithEdgeMeta(map[string]any{"weight": 0.8}))
	require.NoError(t, err)
	_, err = g.AddEdge("sprinkler", "wet")
	require.NoError(t, err)
	_, err = g.AddEdge("wet", "slippery")
	require.NoError(t, err)
	return g
}

func temperatureChain(t *testing.T) *causalgraph.CausalGraph {
	t.Helper()
	g := causalgraph.MustNew()
	for lag := -2; lag <= 0; lag++ {
		id := causalgraph.NameWithLag("temp", lag)
		n, err := g.AddNode(id, causalgraph.WithVariableType(causalgraph.VariableContinuous))
		require.NoError(t, err)
		require.NoError(t, n.SetTimeLag(lag))
		require.NoError(t, n.SetVariableName("temp"))
	}
	_, err := g.AddEdge("temp lag(n=2)", "temp lag(n=1)")
	require.NoError(t, err)
	_, err = g.AddEdge("temp lag(n=1)", "temp")
	require.NoError(t, err)
	return g
}

func TestCatalogLifecycle(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	g := sprinklerGraph(t)

	rec, err := store.Save(ctx, "sprinkler", g)
	require.NoError(t, err)
	assert.Equal(t, "sprinkler", rec.Name)
	assert.Equal(t, "msgpack", rec.Format)

	loaded, err := store.LoadByName(ctx, "sprinkler")
	require.NoError(t, err)
	assert.True(t, g.DeepEqual(loaded))

	byID, err := store.Load(ctx, rec.ID)
	require.NoError(t, err)
	assert.True(t, g.DeepEqual(byID))

	_, err = store.Save(ctx, "sprinkler", g)
	require.Error(t, err)
	assert.True(t, graphstore.IsNameTaken(err))

	records, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, rec.ID, records[0].ID)

	require.NoError(t, store.Rename(ctx, rec.ID, "lawn"))
	_, err = store.LoadByName(ctx, "sprinkler")
	assert.True(t, graphstore.IsNotFound(err))
	renamed, err := store.LoadByName(ctx, "lawn")
	require.NoError(t, err)
	assert.True(t, g.DeepEqual(renamed))

	require.NoError(t, store.Delete(ctx, rec.ID))
	assert.True(t, graphstore.IsNotFound(store.Delete(ctx, rec.ID)))
	records, err = store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestCatalogMixedFormats(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	jsonStore, err := graphstore.NewStore(store.DB(), graphstore.SQLite, graphstore.WithCodec(codec.JSON))
	require.NoError(t, err)

	g := sprinklerGraph(t)
	_, err = store.Save(ctx, "packed", g)
	require.NoError(t, err)
	_, err = jsonStore.Save(ctx, "plain", g)
	require.NoError(t, err)

	// Loading honors the format recorded with each row, not the codec of
	// the store doing the reading.
	for _, name := range []string{"packed", "plain"} {
		loaded, err := store.LoadByName(ctx, name)
		require.NoError(t, err)
		assert.True(t, g.DeepEqual(loaded), "graph %q", name)
	}

	records, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "packed", records[0].Name)
	assert.Equal(t, "msgpack", records[0].Format)
	assert.Equal(t, "plain", records[1].Name)
	assert.Equal(t, "json", records[1].Format)
}

func TestCatalogImport(t *testing.T) {
	ctx := context.Background()
	cache := graphstore.NewMemCache()
	store := openStore(t, graphstore.WithCache(cache))

	graphs := map[string]*causalgraph.CausalGraph{
		"sprinkler": sprinklerGraph(t),
		"chain":     temperatureChain(t),
	}
	records, err := store.Import(ctx, graphs)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "chain", records[0].Name)
	assert.Equal(t, "sprinkler", records[1].Name)

	for name, g := range graphs {
		loaded, err := store.LoadByName(ctx, name)
		require.NoError(t, err)
		assert.True(t, g.DeepEqual(loaded), "graph %q", name)
	}
	assert.Equal(t, 2, cache.Len())

	// A clashing name rolls the whole batch back.
	_, err = store.Import(ctx, map[string]*causalgraph.CausalGraph{
		"fresh": temperatureChain(t),
		"chain": temperatureChain(t),
	})
	require.Error(t, err)
	assert.True(t, graphstore.IsNameTaken(err))
	_, err = store.LoadByName(ctx, "fresh")
	assert.True(t, graphstore.IsNotFound(err))
}

func TestTimeSeriesSurvivesCatalog(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	g := temperatureChain(t)

	rec, err := store.Save(ctx, "temperature", g)
	require.NoError(t, err)
	loaded, err := store.Load(ctx, rec.ID)
	require.NoError(t, err)

	n, err := loaded.GetNode("temp lag(n=2)")
	require.NoError(t, err)
	assert.Equal(t, -2, n.TimeLag())
	assert.Equal(t, "temp", n.VariableName())
	assert.Equal(t, causalgraph.VariableContinuous, n.VariableType())
}
