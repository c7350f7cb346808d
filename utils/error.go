package utils

import (
	"errors"
	"fmt"
)

// SchemaError means a source file is missing a structural requirement
// (no parsable sales sheet, missing inventory table or column). It is fatal
// for that source; whether the whole run halts is the caller's decision.
//
// Single bad rows or sheets never surface as errors: they are absorbed into
// reduced-completeness output by the ingestors.
type SchemaError struct {
	Source      string
	Requirement string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: %s", e.Source, e.Requirement)
}

func NewSchemaError(source string, format string, args ...any) error {
	return &SchemaError{Source: source, Requirement: fmt.Sprintf(format, args...)}
}

func IsSchemaError(err error) bool {
	var se *SchemaError
	return errors.As(err, &se)
}
