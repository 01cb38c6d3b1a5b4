package errors

import (
	"errors"
	"fmt"
)

// Code identifies a distinct reason for rejecting an ordering specification
type Code string

const (
	CodeEmptyGroup        Code = "EMPTY_GROUP"
	CodeDuplicateWildcard Code = "DUPLICATE_WILDCARD"
	CodeDuplicatePattern  Code = "DUPLICATE_PATTERN"
	CodeMalformedSegment  Code = "MALFORMED_SEGMENT"
	CodeBadDelimiter      Code = "BAD_DELIMITER"
)

// Message constants for the import-order application
const (
	// Specification rejection reasons
	ErrMsgEmptyGroup         = "pattern group is empty"
	ErrMsgDuplicateWildcard  = "more than one wildcard group"
	ErrMsgDuplicatePattern   = "pattern group declared twice"
	ErrMsgEmbeddedWildcard   = "wildcard character inside a literal group"
	ErrMsgEmbeddedWhitespace = "whitespace inside a pattern group"
	ErrMsgDoubledDelimiter   = "consecutive delimiters inside a pattern group"
	ErrMsgEdgeDelimiter      = "leading or trailing delimiter in a pattern group"

	// CLI errors
	ErrMsgInvalidOrderSpec  = "invalid ordering specification"
	ErrMsgFailedToReadInput = "failed to read directive list"

	// Info messages
	InfoMsgSpecValid = "ordering specification is valid: %d pattern groups"
)

// ParseError describes why an ordering specification was rejected.
// Any failing group invalidates the whole specification; Group carries
// the offending group text when one can be named.
type ParseError struct {
	Code    Code
	Message string
	Group   string
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.Group == "" {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %q", e.Code, e.Message, e.Group)
}

// Is matches any ParseError carrying the same code
func (e *ParseError) Is(target error) bool {
	var targetErr *ParseError
	if !errors.As(target, &targetErr) {
		return false
	}
	return e.Code == targetErr.Code
}

// NewParse creates a ParseError with the given code and offending group text
func NewParse(code Code, message, group string) *ParseError {
	return &ParseError{
		Code:    code,
		Message: message,
		Group:   group,
	}
}
