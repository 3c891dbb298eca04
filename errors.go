package xmlfab

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidArgument          = errors.New("invalid argument")
	ErrAttributeInPath          = errors.New("the attribute marker (@) is not allowed in an element path")
	ErrEmptySegment             = errors.New("empty path segment")
	ErrEmptyAttributeName       = errors.New("empty attribute name")
	ErrInvalidAttributeName     = errors.New("invalid attribute name")
	ErrMultipleAttributeMarkers = errors.New("multiple attribute markers in path")

	ErrDocumentEnd      = errors.New("extra content at document end")
	ErrEmptyDocument    = errors.New("start tag expected, '<' not found")
	ErrInvalidAttrValue = errors.New("invalid attribute value")
	ErrInvalidCharRef   = errors.New("invalid character reference")
	ErrInvalidComment   = errors.New("invalid comment section")
	ErrInvalidName      = errors.New("invalid xml name")
	ErrInvalidXMLDecl   = errors.New("invalid XML declaration")
	ErrMismatchedTag    = errors.New("start and end tag mismatch")
	ErrUnexpectedEOF    = errors.New("unexpected end of document")
)

type ErrParseError struct {
	Err        error
	Line       string
	LineNumber int
	Column     int
}

func (e ErrParseError) Error() string {
	return fmt.Sprintf(
		"%s at line %d, column %d\n -> '%s' <-- around here",
		e.Err,
		e.LineNumber,
		e.Column,
		e.Line,
	)
}

func (e ErrParseError) Unwrap() error {
	return e.Err
}
