package node

type Attribute struct {
	treeNode
	name string
}

var _ Node = (*Attribute)(nil)

func newAttribute(name, value string) *Attribute {
	attr := &Attribute{
		name: name,
	}
	if value != "" {
		_ = attr.AddContent([]byte(value))
	}
	return attr
}

func (Attribute) Type() NodeType {
	return AttributeNodeType
}

func (n *Attribute) Name() string {
	return n.name
}

func (n *Attribute) LocalName() string {
	return n.name
}

func (n *Attribute) AddChild(cur Node) error {
	return addChild(n, cur)
}

func (n *Attribute) AddContent(b []byte) error {
	return addContent(n, b)
}

func (n *Attribute) AddSibling(cur Node) error {
	return addSibling(n, cur)
}

func (n *Attribute) RemoveChild(cur Node) error {
	return removeChild(n, cur)
}

func (n *Attribute) Replace(cur Node) error {
	return replaceNode(n, cur)
}

func (n *Attribute) SetNextSibling(sibling Node) error {
	return setNextSibling(n, sibling)
}

func (n *Attribute) SetPrevSibling(sibling Node) error {
	return setPrevSibling(n, sibling)
}

// SetValue replaces the attribute's value.
func (n *Attribute) SetValue(value string) {
	n.firstChild = nil
	n.lastChild = nil
	_ = n.AddContent([]byte(value))
}

func (n *Attribute) Value() string {
	content, err := n.Content(nil)
	if err != nil {
		return ""
	}
	return string(content)
}
