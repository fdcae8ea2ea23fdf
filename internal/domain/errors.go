package domain

import "fmt"

// The ingestion error taxonomy. All four kinds are caught at the
// per-provider boundary inside the sync orchestrator and converted into a
// recorded failure entry; none propagate past it.

// TransportError reports a failed fetch: transport failure, timeout, or a
// non-success HTTP status.
type TransportError struct {
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("http request failed with status: %d", e.Status)
	}
	return fmt.Sprintf("http request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ParseError reports a byte stream that is not well-formed for the declared
// format, or an unparsable per-item value such as a date.
type ParseError struct {
	Format string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid %s data: %v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// StructureError reports a well-formed document missing required structure,
// such as an absent contents array or items/item element.
type StructureError struct {
	Format string
	Detail string
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("invalid %s structure: %s", e.Format, e.Detail)
}

// MappingError reports a required per-item field absent during
// normalization. It fails the whole provider batch.
type MappingError struct {
	Field string
	Index int
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("item %d: missing required field %q", e.Index, e.Field)
}
