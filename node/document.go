package node

// Document represents the root document node
type Document struct {
	treeNode
	version    string
	encoding   string
	standalone DocumentStandaloneType
}

var _ Node = (*Document)(nil)

func NewDocument() *Document {
	doc := &Document{}
	doc.treeNode = treeNode{
		doc: doc,
	}
	doc.version = "1.0"
	doc.encoding = "utf-8"
	doc.standalone = StandaloneImplicitNo
	return doc
}

func NewDocumentWithOptions(version, encoding string, standalone DocumentStandaloneType) *Document {
	doc := &Document{
		version:    version,
		encoding:   encoding,
		standalone: standalone,
	}
	doc.treeNode = treeNode{
		doc: doc,
	}
	return doc
}

func (d *Document) CreateElement(name string) *Element {
	e := NewElement(name)
	_ = e.SetOwnerDocument(d)
	return e
}

func (d *Document) CreateComment(content []byte) *Comment {
	c := NewComment(content)
	_ = c.SetOwnerDocument(d)
	return c
}

func (d *Document) CreateText(content []byte) *Text {
	t := NewText(content)
	_ = t.SetOwnerDocument(d)
	return t
}

func (d *Document) CreateAttribute(name, value string) *Attribute {
	attr := newAttribute(name, value)
	_ = attr.SetOwnerDocument(d)
	return attr
}

func (Document) Type() NodeType {
	return DocumentNodeType
}

func (d *Document) LocalName() string {
	return "#document"
}

func (d *Document) Version() string {
	return d.version
}

func (d *Document) SetVersion(version string) {
	d.version = version
}

func (d *Document) Encoding() string {
	return d.encoding
}

func (d *Document) SetEncoding(encoding string) {
	d.encoding = encoding
}

func (d *Document) Standalone() DocumentStandaloneType {
	return d.standalone
}

func (d *Document) SetStandalone(standalone DocumentStandaloneType) {
	d.standalone = standalone
}

// SetRootElement appends e as the document element.
func (d *Document) SetRootElement(e *Element) error {
	_ = e.SetOwnerDocument(d)
	return d.AddChild(e)
}

// RootElement returns the document element, which is the first
// element child of the document node.
func (d *Document) RootElement() *Element {
	for c := d.firstChild; c != nil; c = c.NextSibling() {
		if e, ok := c.(*Element); ok {
			return e
		}
	}
	return nil
}

func (d *Document) AddChild(child Node) error {
	return addChild(d, child)
}

func (d *Document) AddContent(b []byte) error {
	return addContent(d, b)
}

func (d *Document) AddSibling(sibling Node) error {
	return addSibling(d, sibling)
}

func (d *Document) RemoveChild(child Node) error {
	return removeChild(d, child)
}

func (d *Document) Replace(cur Node) error {
	return replaceNode(d, cur)
}

func (d *Document) SetNextSibling(sibling Node) error {
	return setNextSibling(d, sibling)
}

func (d *Document) SetPrevSibling(sibling Node) error {
	return setPrevSibling(d, sibling)
}
