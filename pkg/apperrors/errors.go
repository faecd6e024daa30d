package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrUnknownDistribution = errors.New("unknown distribution kind")
	ErrUnknownParameter    = errors.New("unknown distribution parameter")
	ErrActivityNotFound    = errors.New("activity not found in process model")
)

// EntityNotFound wraps ErrNotFound with the entity kind and id, so the
// calling tool layer can surface a resolvable message. Raised by compound
// service operations before any row is written.
func EntityNotFound(kind string, id int64) error {
	return fmt.Errorf("%s with ID %d: %w", kind, id, ErrNotFound)
}

// UnknownDistributionKind wraps ErrUnknownDistribution with the offending name.
func UnknownDistributionKind(name string) error {
	return fmt.Errorf("%q: %w", name, ErrUnknownDistribution)
}

// UnknownParameterKind wraps ErrUnknownParameter with the offending name.
func UnknownParameterKind(name string) error {
	return fmt.Errorf("%q: %w", name, ErrUnknownParameter)
}

// ActivityNotFound wraps ErrActivityNotFound with the BPMN id that is
// missing from the process-model name map. Fatal to the whole import.
func ActivityNotFound(bpmnID string) error {
	return fmt.Errorf("BPMN id %q: %w", bpmnID, ErrActivityNotFound)
}
