// Package s11n renders a node tree as indented, human-readable XML.
package s11n

import (
	"bytes"
	"io"
	"strings"

	"github.com/lestrrat-go/xmlfab/node"
)

// DefaultIndent is the indent string callers normally want; it is not
// applied implicitly so that flat output stays expressible.
const DefaultIndent = "  "

// Dumper writes a pretty-printed rendition of a tree. Nested elements
// are indented by Indent per level; the zero value writes every
// element at column zero.
type Dumper struct {
	Indent string
}

// DumpDoc writes the XML declaration followed by the document's
// children.
func (d *Dumper) DumpDoc(out io.Writer, doc *node.Document) error {
	if err := d.dumpDocContent(out, doc); err != nil {
		return err
	}

	for e := doc.FirstChild(); e != nil; e = e.NextSibling() {
		if err := d.DumpNode(out, e); err != nil {
			return err
		}
	}
	return nil
}

func (d *Dumper) dumpDocContent(out io.Writer, doc *node.Document) error {
	_, _ = io.WriteString(out, `<?xml version="`)
	version := doc.Version()
	if version == "" {
		version = "1.0"
	}
	_, _ = io.WriteString(out, version+`"`)

	if encoding := doc.Encoding(); encoding != "" && encoding != "utf8" && encoding != "utf-8" {
		_, _ = io.WriteString(out, ` encoding="`+encoding+`"`)
	}

	switch doc.Standalone() {
	case node.StandaloneExplicitNo:
		_, _ = io.WriteString(out, ` standalone="no"`)
	case node.StandaloneExplicitYes:
		_, _ = io.WriteString(out, ` standalone="yes"`)
	}
	_, _ = io.WriteString(out, " ?>\n")
	return nil
}

// DumpNode writes n and its descendants. Elements are placed on their
// own lines, nested one indent level per depth; an element whose only
// content is text is written on a single line, and an element with no
// content at all self-closes.
func (d *Dumper) DumpNode(out io.Writer, n node.Node) error {
	if doc, ok := n.(*node.Document); ok {
		return d.DumpDoc(out, doc)
	}
	return d.dumpNode(out, n, 0)
}

func (d *Dumper) dumpNode(out io.Writer, n node.Node, depth int) error {
	prefix := strings.Repeat(d.Indent, depth)

	switch n.Type() {
	case node.CommentNodeType:
		content, err := n.Content(nil)
		if err != nil {
			return err
		}
		_, _ = io.WriteString(out, prefix+"<!--")
		_, _ = out.Write(content)
		_, _ = io.WriteString(out, "-->\n")
		return nil
	case node.TextNodeType:
		content, err := n.Content(nil)
		if err != nil {
			return err
		}
		if len(bytes.TrimSpace(content)) == 0 {
			return nil
		}
		_, _ = io.WriteString(out, prefix)
		if err := EscapeText(out, bytes.TrimSpace(content), false); err != nil {
			return err
		}
		_, _ = io.WriteString(out, "\n")
		return nil
	case node.ElementNodeType:
		return d.dumpElement(out, n.(*node.Element), depth, prefix)
	}

	return node.ErrInvalidOperation
}

func (d *Dumper) dumpElement(out io.Writer, e *node.Element, depth int, prefix string) error {
	_, _ = io.WriteString(out, prefix+"<")
	_, _ = io.WriteString(out, e.Name())

	for _, attr := range e.Attributes(nil) {
		_, _ = io.WriteString(out, " ")
		_, _ = io.WriteString(out, attr.Name())
		_, _ = io.WriteString(out, `="`)
		if err := EscapeAttrValue(out, []byte(attr.Value())); err != nil {
			return err
		}
		_, _ = io.WriteString(out, `"`)
	}

	if e.FirstChild() == nil {
		_, _ = io.WriteString(out, "/>\n")
		return nil
	}

	if textOnly(e) {
		content, err := e.Content(nil)
		if err != nil {
			return err
		}
		_, _ = io.WriteString(out, ">")
		if err := EscapeText(out, content, false); err != nil {
			return err
		}
		_, _ = io.WriteString(out, "</"+e.Name()+">\n")
		return nil
	}

	_, _ = io.WriteString(out, ">\n")
	for child := e.FirstChild(); child != nil; child = child.NextSibling() {
		if err := d.dumpNode(out, child, depth+1); err != nil {
			return err
		}
	}
	_, _ = io.WriteString(out, prefix+"</"+e.Name()+">\n")
	return nil
}

// textOnly reports if all of the element's children are text nodes.
func textOnly(e *node.Element) bool {
	for child := e.FirstChild(); child != nil; child = child.NextSibling() {
		if child.Type() != node.TextNodeType {
			return false
		}
	}
	return true
}
