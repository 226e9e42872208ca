// Package causalgraph implements a mixed causal-graph data model: nodes
// joined by typed edges, a derived undirected skeleton view, and lossless
// conversion between the in-memory graph and several external forms.
//
// # Key Types
//
//   - CausalGraph: mutable container owning all nodes and edges
//   - Node: a variable, identified by an immutable string identifier
//   - Edge: a typed connection between two nodes, identified by its ordered
//     endpoint pair
//   - EdgeType: directed ("->"), undirected ("--"), bidirected ("<>") or
//     unknown ("oo"); every type except directed is symmetric
//   - Skeleton: detached undirected projection of a graph
//   - Document, SkeletonDocument: plain-data forms for serialization
//
// # Identity and Equality
//
// A node's identity is its identifier, nothing else: metadata and variable
// types never affect equality. An edge's identity is its ordered endpoint
// pair; whether orientation matters for equality depends on the edge type:
//
//	edge(a, b, t) == edge(a, b, t)  for every type t
//	edge(a, b, t) == edge(b, a, t)  iff t is symmetric
//
// # Conversions
//
// Each supported external form pairs a serializer with a constructor, and
// every pairing round-trips: documents (ToDocument and FromDocument), gonum
// graphs (ToGonum and FromGonum), DOT markup (MarshalDOT and FromDOT), and
// dense adjacency matrices (AdjacencyMatrix and FromAdjacencyMatrix).
// Skeletons carry the same set through their own constructors. Wire-format
// encoding of documents lives in the codec subpackage; persistent storage
// of serialized graphs lives in graphstore.
//
// # Time-Series Names
//
// VariableNameAndLag and NameWithLag translate between node identifiers
// and (variable, lag) pairs using the "X", "X lag(n=2)", "X future(n=2)"
// naming scheme.
//
// # Concurrency
//
// Nothing locks internally; callers sharing a graph across goroutines own
// the synchronization.
package causalgraph
