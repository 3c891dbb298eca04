// Package xmlfab provides fast and easy XML document construction.
//
// Elements and attributes are addressed by slash separated paths, and
// intermediate elements are created as needed:
//
//	f, _ := xmlfab.New("root")
//	f.Get("alpha/bravo/charlie")        // create intermediate elements
//	f.Set("alpha/bravo@class", "CLS")   // set an attribute on alpha/bravo
//	f.Set("alpha/delta", "XXX")         // create delta with text contents
//	f.Write("filename.xml")             // always written pretty-printed
//
// A trailing "+" on a path segment forces a new element to be created
// even when a sibling with the same tag exists, which is how repeated
// elements like list items are built.
package xmlfab

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/lestrrat-go/pdebug"
	"github.com/lestrrat-go/xmlfab/node"
	"github.com/lestrrat-go/xmlfab/s11n"
	"github.com/pkg/errors"
)

// Factory wraps a single element of a tree and resolves path
// expressions relative to it. It is a view, not an owner: several
// factories may wrap elements of the same tree.
type Factory struct {
	doc     *node.Document
	current *node.Element
}

// New creates a Factory. The root argument is either a tag name, in
// which case a fresh document with a root element of that name is
// created, or an existing *node.Element to wrap. Anything else fails
// with ErrInvalidArgument.
func New(root interface{}, options ...ConstructOption) (*Factory, error) {
	version := ""
	for _, option := range options {
		switch option.Ident() {
		case identVersion{}:
			version = option.Value().(string)
		}
	}

	switch v := root.(type) {
	case string:
		doc := node.NewDocument()
		if version != "" {
			doc.SetVersion(version)
		}
		e := doc.CreateElement(v)
		if err := doc.SetRootElement(e); err != nil {
			return nil, err
		}
		return &Factory{doc: doc, current: e}, nil
	case *node.Element:
		doc := v.OwnerDocument()
		if doc == nil {
			doc = node.NewDocument()
		}
		if version != "" {
			doc.SetVersion(version)
		}
		return &Factory{doc: doc, current: v}, nil
	default:
		return nil, errors.Wrapf(ErrInvalidArgument, "cannot create a factory from %T", root)
	}
}

// Element returns the element the factory currently wraps.
func (f *Factory) Element() *node.Element {
	return f.current
}

// ObtainElement resolves a path expression relative to the wrapped
// element, creating missing elements along the way. The empty path
// resolves to the wrapped element itself. The path must not contain
// an attribute marker.
func (f *Factory) ObtainElement(path string) (*node.Element, error) {
	p, err := ParsePath(path)
	if err != nil {
		return nil, err
	}
	if p.HasAttribute() {
		return nil, errors.Wrapf(ErrAttributeInPath, "path %q", path)
	}
	return f.resolve(p.Segments)
}

func (f *Factory) resolve(segments []Segment) (*node.Element, error) {
	parent := f.current
	for _, seg := range segments {
		if !seg.ForceNew {
			if found, ok := parent.FindChild(seg.Name); ok {
				parent = found
				continue
			}
		}
		child := f.createElement(seg.Name)
		if err := parent.AddChild(child); err != nil {
			return nil, err
		}
		parent = child
	}
	return parent, nil
}

func (f *Factory) createElement(name string) *node.Element {
	if f.doc != nil {
		return f.doc.CreateElement(name)
	}
	return node.NewElement(name)
}

// Set assigns a value through a path expression. When the path ends
// with an attribute marker ("elementPath@attrName") the attribute is
// set on the resolved element; otherwise the resolved element's text
// content is replaced. The value is stringified either way. Set
// returns a factory wrapping the affected element.
func (f *Factory) Set(name string, value interface{}) (*Factory, error) {
	if pdebug.Enabled {
		g := pdebug.Marker("Factory.Set %s", name)
		defer g.End()
	}

	p, err := ParsePath(name)
	if err != nil {
		return nil, err
	}

	e, err := f.resolve(p.Segments)
	if err != nil {
		return nil, err
	}

	if p.HasAttribute() {
		e.SetAttribute(p.Attribute, stringify(value))
	} else {
		if err := e.SetContent([]byte(stringify(value))); err != nil {
			return nil, err
		}
	}
	return &Factory{doc: f.doc, current: e}, nil
}

// Get resolves a path expression and returns a factory wrapping the
// resolved element, creating it (and any missing intermediates) as
// needed. Attribute markers are not permitted here.
func (f *Factory) Get(name string) (*Factory, error) {
	e, err := f.ObtainElement(name)
	if err != nil {
		return nil, err
	}
	return &Factory{doc: f.doc, current: e}, nil
}

// Print writes the pretty-printed tree rooted at the wrapped element
// to out. WithHeader(true) prepends the XML declaration line, and
// WithIndent overrides the two-space indentation, with WithIndent("")
// disabling it altogether.
func (f *Factory) Print(out io.Writer, options ...OutputOption) error {
	withHeader := false
	indent := s11n.DefaultIndent
	for _, option := range options {
		switch option.Ident() {
		case identHeader{}:
			withHeader = option.Value().(bool)
		case identIndent{}:
			indent = option.Value().(string)
		}
	}

	if withHeader {
		version := "1.0"
		if f.doc != nil && f.doc.Version() != "" {
			version = f.doc.Version()
		}
		if _, err := fmt.Fprintf(out, "<?xml version=%q ?>\n", version); err != nil {
			return err
		}
	}

	d := s11n.Dumper{Indent: indent}
	return d.DumpNode(out, f.current)
}

// GetContents renders the tree to a string via Print.
func (f *Factory) GetContents(options ...OutputOption) (string, error) {
	var buf bytes.Buffer
	if err := f.Print(&buf, options...); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Write renders the tree and writes it to the named file, creating or
// truncating it. The file handle is released on all exit paths.
func (f *Factory) Write(filename string, options ...OutputOption) error {
	if pdebug.Enabled {
		g := pdebug.Marker("Factory.Write %s", filename)
		defer g.End()
	}

	contents, err := f.GetContents(options...)
	if err != nil {
		return err
	}

	fh, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "failed to open %s for writing", filename)
	}
	defer fh.Close()

	if _, err := io.WriteString(fh, contents); err != nil {
		return errors.Wrapf(err, "failed to write to %s", filename)
	}
	if err := fh.Close(); err != nil {
		return errors.Wrapf(err, "failed to close %s", filename)
	}
	return nil
}

// stringify is the single coercion point for values assigned through
// Set: attributes and text content always store the string form.
func stringify(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	case fmt.Stringer:
		return s.String()
	}
	return fmt.Sprintf("%v", v)
}
