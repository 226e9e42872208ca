package causalgraph

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for common operations.
var (
	// ErrNodeNotFound is returned when a referenced node does not exist in
	// the graph, or has already been deleted from it.
	ErrNodeNotFound = errors.New("causalgraph: node not found")

	// ErrEdgeNotFound is returned when a referenced edge does not exist in
	// the graph, or has already been deleted from it.
	ErrEdgeNotFound = errors.New("causalgraph: edge not found")

	// ErrNodeExists is returned when adding a node whose identifier is
	// already present in the graph.
	ErrNodeExists = errors.New("causalgraph: node already exists")

	// ErrEdgeExists is returned when adding an edge between a pair of nodes
	// that is already connected, in either orientation.
	ErrEdgeExists = errors.New("causalgraph: edge already exists")

	// ErrInvalidAdjacencyMatrix is returned when a matrix handed to an
	// adjacency constructor is not a valid 0/1 adjacency matrix.
	ErrInvalidAdjacencyMatrix = errors.New("causalgraph: invalid adjacency matrix")
)

// NodeNotFoundError reports an operation that referenced a node which is not
// present in the graph.
type NodeNotFoundError struct {
	identifier string
}

// Error returns the error string.
func (e *NodeNotFoundError) Error() string {
	return fmt.Sprintf("causalgraph: node %q not found", e.identifier)
}

// Is reports whether the target error matches NodeNotFoundError.
// This allows errors.Is(err, ErrNodeNotFound) to return true.
func (e *NodeNotFoundError) Is(err error) bool {
	return err == ErrNodeNotFound
}

// Identifier returns the node identifier that was looked up.
func (e *NodeNotFoundError) Identifier() string {
	return e.identifier
}

// NewNodeNotFoundError returns a new NodeNotFoundError for the given identifier.
func NewNodeNotFoundError(identifier string) *NodeNotFoundError {
	return &NodeNotFoundError{identifier: identifier}
}

// IsNodeNotFound returns true if the error is a NodeNotFoundError.
func IsNodeNotFound(err error) bool {
	if err == nil {
		return false
	}
	var e *NodeNotFoundError
	return errors.As(err, &e) || errors.Is(err, ErrNodeNotFound)
}

// EdgeNotFoundError reports an operation that referenced an edge which is not
// present in the graph.
type EdgeNotFoundError struct {
	source      string
	destination string
}

// Error returns the error string.
func (e *EdgeNotFoundError) Error() string {
	return fmt.Sprintf("causalgraph: edge (%s, %s) not found", e.source, e.destination)
}

// Is reports whether the target error matches EdgeNotFoundError.
// This allows errors.Is(err, ErrEdgeNotFound) to return true.
func (e *EdgeNotFoundError) Is(err error) bool {
	return err == ErrEdgeNotFound
}

// Source returns the source identifier of the missing edge.
func (e *EdgeNotFoundError) Source() string {
	return e.source
}

// Destination returns the destination identifier of the missing edge.
func (e *EdgeNotFoundError) Destination() string {
	return e.destination
}

// NewEdgeNotFoundError returns a new EdgeNotFoundError for the given pair.
func NewEdgeNotFoundError(source, destination string) *EdgeNotFoundError {
	return &EdgeNotFoundError{source: source, destination: destination}
}

// IsEdgeNotFound returns true if the error is an EdgeNotFoundError.
func IsEdgeNotFound(err error) bool {
	if err == nil {
		return false
	}
	var e *EdgeNotFoundError
	return errors.As(err, &e) || errors.Is(err, ErrEdgeNotFound)
}

// NodeExistsError reports an attempt to add a node whose identifier is
// already taken.
type NodeExistsError struct {
	identifier string
}

// Error returns the error string.
func (e *NodeExistsError) Error() string {
	return fmt.Sprintf("causalgraph: node %q already exists", e.identifier)
}

// Is reports whether the target error matches NodeExistsError.
// This allows errors.Is(err, ErrNodeExists) to return true.
func (e *NodeExistsError) Is(err error) bool {
	return err == ErrNodeExists
}

// Identifier returns the duplicated node identifier.
func (e *NodeExistsError) Identifier() string {
	return e.identifier
}

// NewNodeExistsError returns a new NodeExistsError for the given identifier.
func NewNodeExistsError(identifier string) *NodeExistsError {
	return &NodeExistsError{identifier: identifier}
}

// IsNodeExists returns true if the error is a NodeExistsError.
func IsNodeExists(err error) bool {
	if err == nil {
		return false
	}
	var e *NodeExistsError
	return errors.As(err, &e) || errors.Is(err, ErrNodeExists)
}

// EdgeExistsError reports an attempt to add an edge between a pair of nodes
// that is already connected in either orientation.
type EdgeExistsError struct {
	source      string
	destination string
}

// Error returns the error string.
func (e *EdgeExistsError) Error() string {
	return fmt.Sprintf("causalgraph: edge between %q and %q already exists", e.source, e.destination)
}

// Is reports whether the target error matches EdgeExistsError.
// This allows errors.Is(err, ErrEdgeExists) to return true.
func (e *EdgeExistsError) Is(err error) bool {
	return err == ErrEdgeExists
}

// Source returns the source identifier of the duplicated edge.
func (e *EdgeExistsError) Source() string {
	return e.source
}

// Destination returns the destination identifier of the duplicated edge.
func (e *EdgeExistsError) Destination() string {
	return e.destination
}

// NewEdgeExistsError returns a new EdgeExistsError for the given pair.
func NewEdgeExistsError(source, destination string) *EdgeExistsError {
	return &EdgeExistsError{source: source, destination: destination}
}

// IsEdgeExists returns true if the error is an EdgeExistsError.
func IsEdgeExists(err error) bool {
	if err == nil {
		return false
	}
	var e *EdgeExistsError
	return errors.As(err, &e) || errors.Is(err, ErrEdgeExists)
}

// InvalidAdjacencyMatrixError reports a matrix that cannot be interpreted as
// a 0/1 adjacency matrix.
type InvalidAdjacencyMatrixError struct {
	reason string
	rows   int
	cols   int
}

// Error returns the error string.
func (e *InvalidAdjacencyMatrixError) Error() string {
	return fmt.Sprintf("causalgraph: invalid %dx%d adjacency matrix: %s", e.rows, e.cols, e.reason)
}

// Is reports whether the target error matches InvalidAdjacencyMatrixError.
// This allows errors.Is(err, ErrInvalidAdjacencyMatrix) to return true.
func (e *InvalidAdjacencyMatrixError) Is(err error) bool {
	return err == ErrInvalidAdjacencyMatrix
}

// Reason returns a short description of the structural violation.
func (e *InvalidAdjacencyMatrixError) Reason() string {
	return e.reason
}

// Dims returns the dimensions of the rejected matrix.
func (e *InvalidAdjacencyMatrixError) Dims() (rows, cols int) {
	return e.rows, e.cols
}

// NewInvalidAdjacencyMatrixError returns a new InvalidAdjacencyMatrixError
// for a matrix with the given dimensions.
func NewInvalidAdjacencyMatrixError(reason string, rows, cols int) *InvalidAdjacencyMatrixError {
	return &InvalidAdjacencyMatrixError{reason: reason, rows: rows, cols: cols}
}

// IsInvalidAdjacencyMatrix returns true if the error is an
// InvalidAdjacencyMatrixError.
func IsInvalidAdjacencyMatrix(err error) bool {
	if err == nil {
		return false
	}
	var e *InvalidAdjacencyMatrixError
	return errors.As(err, &e) || errors.Is(err, ErrInvalidAdjacencyMatrix)
}

// ValidationError represents a caller-contract violation: a malformed
// identifier, an unrecognized enum value, a self-loop, a node-names slice
// that does not match its matrix, and the like.
type ValidationError struct {
	Name string // Argument or entity name
	Err  error  // Underlying validation error
}

// Error returns the error string.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("causalgraph: validation failed for %q: %s", e.Name, e.Err)
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError returns a new ValidationError for the given argument.
func NewValidationError(name string, err error) *ValidationError {
	return &ValidationError{Name: name, Err: err}
}

// IsValidationError returns true if the error is a ValidationError.
func IsValidationError(err error) bool {
	if err == nil {
		return false
	}
	var e *ValidationError
	return errors.As(err, &e)
}
