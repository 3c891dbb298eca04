package xmlfab

import (
	"strings"

	"github.com/lestrrat-go/strcursor"
	"github.com/pkg/errors"
)

// Segment is one step of an element path.
type Segment struct {
	// Name is the tag name to look up or create.
	Name string
	// ForceNew indicates that a new element must be created for this
	// step even when a sibling with the same tag already exists. It is
	// set by a trailing "+" on the segment.
	ForceNew bool
}

// Path is the parsed form of a path expression such as
// "alpha/bravo+/charlie@class": a sequence of segments separated by
// "/", optionally followed by "@" and an attribute name.
type Path struct {
	Segments  []Segment
	Attribute string
}

// HasAttribute reports if the path targets an attribute rather than
// the element's text content.
func (p *Path) HasAttribute() bool {
	return p.Attribute != ""
}

// ParsePath parses a path expression. The empty path is valid and
// resolves to the element the factory currently wraps. Empty segments
// (leading, trailing, or doubled slashes), a bare force marker, an
// empty attribute name, and more than one attribute marker are all
// rejected.
func ParsePath(path string) (*Path, error) {
	var p Path
	if path == "" {
		return &p, nil
	}

	cur := strcursor.NewRuneCursor(strings.NewReader(path))
	var buf strings.Builder
	inAttr := false

	flushSegment := func() error {
		name := buf.String()
		buf.Reset()
		var force bool
		if strings.HasSuffix(name, "+") {
			force = true
			name = name[:len(name)-1]
		}
		if name == "" {
			return errors.Wrapf(ErrEmptySegment, "path %q", path)
		}
		p.Segments = append(p.Segments, Segment{Name: name, ForceNew: force})
		return nil
	}

	for !cur.Done() {
		r := cur.Peek()
		if err := cur.Advance(1); err != nil {
			break
		}
		switch r {
		case '/':
			if inAttr {
				return nil, errors.Wrapf(ErrInvalidAttributeName, "path %q", path)
			}
			if err := flushSegment(); err != nil {
				return nil, err
			}
		case '@':
			if inAttr {
				return nil, errors.Wrapf(ErrMultipleAttributeMarkers, "path %q", path)
			}
			if err := flushSegment(); err != nil {
				return nil, err
			}
			inAttr = true
		default:
			buf.WriteRune(r)
		}
	}

	if inAttr {
		if buf.Len() == 0 {
			return nil, errors.Wrapf(ErrEmptyAttributeName, "path %q", path)
		}
		p.Attribute = buf.String()
		return &p, nil
	}

	if err := flushSegment(); err != nil {
		return nil, err
	}
	return &p, nil
}
