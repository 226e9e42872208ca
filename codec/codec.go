// Package codec provides named wire formats for causal-graph documents.
// Every codec serializes the same plain-data document schemas, so a graph
// written in one format reconstructs identically from any other.
package codec

import (
	"encoding/json"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/corvid-labs/causalgraph"
)

// Codec is a named wire format over the document schemas.
type Codec interface {
	// Name returns the format name, usable with ByName.
	Name() string

	// Marshal encodes a document value.
	Marshal(v any) ([]byte, error)

	// Unmarshal decodes data into a document value.
	Unmarshal(data []byte, v any) error
}

// The supported wire formats.
var (
	JSON    Codec = jsonCodec{}
	YAML    Codec = yamlCodec{}
	Msgpack Codec = msgpackCodec{}
)

// ByName returns the codec registered under the given format name.
func ByName(name string) (Codec, error) {
	switch name {
	case JSON.Name():
		return JSON, nil
	case YAML.Name():
		return YAML, nil
	case Msgpack.Name():
		return Msgpack, nil
	default:
		return nil, fmt.Errorf("codec: unknown format %q", name)
	}
}

type jsonCodec struct{}

func (jsonCodec) Name() string                       { return "json" }
func (jsonCodec) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

type yamlCodec struct{}

func (yamlCodec) Name() string                       { return "yaml" }
func (yamlCodec) Marshal(v any) ([]byte, error)      { return yaml.Marshal(v) }
func (yamlCodec) Unmarshal(data []byte, v any) error { return yaml.Unmarshal(data, v) }

type msgpackCodec struct{}

func (msgpackCodec) Name() string                       { return "msgpack" }
func (msgpackCodec) Marshal(v any) ([]byte, error)      { return msgpack.Marshal(v) }
func (msgpackCodec) Unmarshal(data []byte, v any) error { return msgpack.Unmarshal(data, v) }

// MarshalGraph encodes a graph's document form in the given format.
func MarshalGraph(c Codec, g *causalgraph.CausalGraph, includeMeta bool) ([]byte, error) {
	if c == nil {
		return nil, fmt.Errorf("codec: nil codec")
	}
	if g == nil {
		return nil, fmt.Errorf("codec: nil graph")
	}
	return c.Marshal(g.ToDocument(includeMeta))
}

// UnmarshalGraph decodes a graph from its document form in the given
// format. Reconstruction failures surface the root package's error types.
func UnmarshalGraph(c Codec, data []byte) (*causalgraph.CausalGraph, error) {
	if c == nil {
		return nil, fmt.Errorf("codec: nil codec")
	}
	var d causalgraph.Document
	if err := c.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("codec: decoding %s graph: %w", c.Name(), err)
	}
	return causalgraph.FromDocument(&d)
}

// MarshalSkeleton encodes a skeleton's document form in the given format.
func MarshalSkeleton(c Codec, s *causalgraph.Skeleton, includeMeta bool) ([]byte, error) {
	if c == nil {
		return nil, fmt.Errorf("codec: nil codec")
	}
	if s == nil {
		return nil, fmt.Errorf("codec: nil skeleton")
	}
	return c.Marshal(s.ToDocument(includeMeta))
}

// UnmarshalSkeleton decodes a skeleton from its document form in the given
// format.
func UnmarshalSkeleton(c Codec, data []byte) (*causalgraph.Skeleton, error) {
	if c == nil {
		return nil, fmt.Errorf("codec: nil codec")
	}
	var d causalgraph.SkeletonDocument
	if err := c.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("codec: decoding %s skeleton: %w", c.Name(), err)
	}
	return causalgraph.SkeletonFromDocument(&d)
}

// MarshalEdge encodes a standalone edge document in the given format, with
// both endpoints embedded as full node documents.
func MarshalEdge(c Codec, e *causalgraph.Edge, includeMeta bool) ([]byte, error) {
	if c == nil {
		return nil, fmt.Errorf("codec: nil codec")
	}
	if e == nil {
		return nil, fmt.Errorf("codec: nil edge")
	}
	return c.Marshal(e.ToDocument(includeMeta))
}

// UnmarshalEdge decodes a detached edge from its standalone document form
// in the given format.
func UnmarshalEdge(c Codec, data []byte) (*causalgraph.Edge, error) {
	if c == nil {
		return nil, fmt.Errorf("codec: nil codec")
	}
	var d causalgraph.EdgeDocument
	if err := c.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("codec: decoding %s edge: %w", c.Name(), err)
	}
	return causalgraph.EdgeFromDocument(&d)
}
