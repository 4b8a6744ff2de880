package plan

import (
	"errors"
	"fmt"
)

// Metadata extraction errors.
var (
	// ErrMalformedMetadata indicates the document contains no recognizable
	// metadata block.
	ErrMalformedMetadata = errors.New("no plan metadata block found")

	// ErrStageNotFound indicates a stage id is not present in the plan.
	ErrStageNotFound = errors.New("stage not found in plan")
)

// SchemaError reports a metadata block that is valid JSON but violates the
// plan schema: a missing required field, a wrong-typed value, or an unknown
// status value.
type SchemaError struct {
	Field  string // JSON field, possibly qualified (e.g. "stages[1].branch")
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("invalid plan metadata: %s: %s", e.Field, e.Reason)
}

// ConflictError reports a document whose metadata block cannot be located
// unambiguously at serialization time, so an in-place update would risk
// clobbering the wrong block.
type ConflictError struct {
	Blocks int // number of metadata blocks found
}

func (e *ConflictError) Error() string {
	if e.Blocks == 0 {
		return "cannot update plan metadata: block no longer present in document"
	}
	return fmt.Sprintf("cannot update plan metadata: %d metadata blocks in document", e.Blocks)
}
