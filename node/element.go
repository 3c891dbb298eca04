package node

import (
	"github.com/lestrrat-go/xmlfab/internal/orderedmap"
)

type Element struct {
	treeNode
	name  string
	attrs *orderedmap.Map[string, *Attribute]
}

var _ Node = (*Element)(nil)

// NewElement creates a new Element with the given name. Please note
// that elements created this way is an orphan node. You normally want to
// create an element using the Document.CreateElement method, which will
// automatically initialize some data, such as setting the owner document
// for the element.
func NewElement(name string) *Element {
	return &Element{
		name:  name,
		attrs: orderedmap.New[string, *Attribute](),
	}
}

func (Element) Type() NodeType {
	return ElementNodeType
}

func (e *Element) Name() string {
	return e.name
}

func (e *Element) LocalName() string {
	return e.name
}

func (e *Element) AddChild(child Node) error {
	return addChild(e, child)
}

func (e *Element) AddContent(b []byte) error {
	return addContent(e, b)
}

func (e *Element) AddSibling(sibling Node) error {
	return addSibling(e, sibling)
}

func (e *Element) RemoveChild(child Node) error {
	return removeChild(e, child)
}

func (e *Element) Replace(cur Node) error {
	return replaceNode(e, cur)
}

func (e *Element) SetNextSibling(sibling Node) error {
	return setNextSibling(e, sibling)
}

func (e *Element) SetPrevSibling(sibling Node) error {
	return setPrevSibling(e, sibling)
}

// SetAttribute sets the attribute with the given name. If an attribute
// with the same name already exists its value is replaced, but the
// attribute keeps its position among the element's attributes.
func (e *Element) SetAttribute(name, value string) {
	var attr *Attribute
	if e.doc != nil {
		attr = e.doc.CreateAttribute(name, value)
	} else {
		attr = newAttribute(name, value)
	}
	e.attrs.Set(name, attr)
}

// Attribute returns the attribute with the given name.
func (e *Element) Attribute(name string) (*Attribute, bool) {
	return e.attrs.Get(name)
}

// Attributes populates the given slice with the attributes
// of the element. If the slice is nil, it will create a new slice
// and return it. If the element has no attributes, it will return
// an empty slice.
func (e *Element) Attributes(dst []*Attribute) []*Attribute {
	if dst == nil {
		dst = make([]*Attribute, 0, e.attrs.Len())
	} else {
		dst = dst[:0]
	}
	for _, attr := range e.attrs.Range() {
		dst = append(dst, attr)
	}
	return dst
}

// FindChild returns the first direct child element with the given
// name, in document order.
func (e *Element) FindChild(name string) (*Element, bool) {
	for c := e.firstChild; c != nil; c = c.NextSibling() {
		if c.Type() != ElementNodeType {
			continue
		}
		child := c.(*Element)
		if child.name == name {
			return child, true
		}
	}
	return nil, false
}

// SetContent replaces the element's text content with b. Any existing
// text children are removed; the first one determines where the new
// text ends up, so replacing text does not reorder mixed content.
// Non-text children are left alone.
func (e *Element) SetContent(b []byte) error {
	var first *Text
	c := e.firstChild
	for c != nil {
		next := c.NextSibling()
		if t, ok := c.(*Text); ok {
			if first == nil {
				first = t
			} else {
				if err := e.RemoveChild(t); err != nil {
					return err
				}
			}
		}
		c = next
	}

	if first != nil {
		first.content = append(first.content[:0], b...)
		return nil
	}

	t := NewText(b)
	if e.doc != nil {
		_ = t.SetOwnerDocument(e.doc)
	}
	return e.AddChild(t)
}
