package xmlfab_test

import (
	"bytes"
	"testing"

	"github.com/lestrrat-go/xmlfab"
	"github.com/lestrrat-go/xmlfab/node"
	"github.com/lestrrat-go/xmlfab/s11n"
	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	t.Run("Simple", func(t *testing.T) {
		doc, err := xmlfab.Parse([]byte(`<root><child id="1">text</child></root>`))
		if !assert.NoError(t, err, "Parse succeeds") {
			return
		}

		root := doc.RootElement()
		if !assert.Equal(t, "root", root.Name()) {
			return
		}

		child, ok := root.FindChild("child")
		if !assert.True(t, ok, "child present") {
			return
		}
		attr, ok := child.Attribute("id")
		if !assert.True(t, ok, "id present") {
			return
		}
		if !assert.Equal(t, "1", attr.Value()) {
			return
		}

		content, err := child.Content(nil)
		if !assert.NoError(t, err, "Content succeeds") {
			return
		}
		if !assert.Equal(t, []byte("text"), content) {
			return
		}
	})

	t.Run("Declaration", func(t *testing.T) {
		doc, err := xmlfab.Parse([]byte("<?xml version=\"1.1\" standalone=\"yes\" ?>\n<root/>\n"))
		if !assert.NoError(t, err, "Parse succeeds") {
			return
		}
		if !assert.Equal(t, "1.1", doc.Version()) {
			return
		}
		if !assert.Equal(t, node.DocumentStandaloneType(node.StandaloneExplicitYes), doc.Standalone()) {
			return
		}
	})

	t.Run("SelfClosing", func(t *testing.T) {
		doc, err := xmlfab.Parse([]byte(`<root><leaf a="1"/><leaf a="2"/></root>`))
		if !assert.NoError(t, err, "Parse succeeds") {
			return
		}

		count := 0
		for c := doc.RootElement().FirstChild(); c != nil; c = c.NextSibling() {
			if e, ok := c.(*node.Element); ok && e.Name() == "leaf" {
				count++
			}
		}
		if !assert.Equal(t, 2, count) {
			return
		}
	})

	t.Run("References", func(t *testing.T) {
		doc, err := xmlfab.Parse([]byte(`<root attr="a&quot;b">1 &lt; 2 &amp; &#65;&#x42;</root>`))
		if !assert.NoError(t, err, "Parse succeeds") {
			return
		}

		root := doc.RootElement()
		attr, ok := root.Attribute("attr")
		if !assert.True(t, ok, "attr present") {
			return
		}
		if !assert.Equal(t, `a"b`, attr.Value()) {
			return
		}

		content, err := root.Content(nil)
		if !assert.NoError(t, err, "Content succeeds") {
			return
		}
		if !assert.Equal(t, []byte("1 < 2 & AB"), content) {
			return
		}
	})

	t.Run("Comments", func(t *testing.T) {
		doc, err := xmlfab.Parse([]byte("<!-- prolog -->\n<root>\n  <!-- inner -->\n</root>\n"))
		if !assert.NoError(t, err, "Parse succeeds") {
			return
		}

		first := doc.FirstChild()
		if !assert.Equal(t, node.CommentNodeType, first.Type(), "prolog comment kept on the document") {
			return
		}

		inner := doc.RootElement().FirstChild()
		if !assert.NotNil(t, inner, "inner comment kept") {
			return
		}
		if !assert.Equal(t, node.CommentNodeType, inner.Type()) {
			return
		}
	})

	t.Run("WhitespaceOnlyTextDropped", func(t *testing.T) {
		doc, err := xmlfab.Parse([]byte("<root>\n  <a/>\n  <b/>\n</root>"))
		if !assert.NoError(t, err, "Parse succeeds") {
			return
		}

		for c := doc.RootElement().FirstChild(); c != nil; c = c.NextSibling() {
			if !assert.NotEqual(t, node.TextNodeType, c.Type(), "no text nodes between elements") {
				return
			}
		}
	})

	t.Run("TextPaddingPreserved", func(t *testing.T) {
		doc, err := xmlfab.Parse([]byte("<root> x </root>"))
		if !assert.NoError(t, err, "Parse succeeds") {
			return
		}

		content, err := doc.RootElement().Content(nil)
		if !assert.NoError(t, err, "Content succeeds") {
			return
		}
		if !assert.Equal(t, []byte(" x "), content, "surrounding whitespace kept on real text") {
			return
		}
	})

	t.Run("DeclaredEncoding", func(t *testing.T) {
		// "café" with an ISO-8859-1 e-acute
		input := append([]byte(`<?xml version="1.0" encoding="iso-8859-1" ?><root>caf`), 0xe9, '<', '/', 'r', 'o', 'o', 't', '>')
		doc, err := xmlfab.Parse(input)
		if !assert.NoError(t, err, "Parse succeeds") {
			return
		}
		if !assert.Equal(t, "iso-8859-1", doc.Encoding()) {
			return
		}

		content, err := doc.RootElement().Content(nil)
		if !assert.NoError(t, err, "Content succeeds") {
			return
		}
		if !assert.Equal(t, []byte("café"), content) {
			return
		}
	})

	t.Run("Errors", func(t *testing.T) {
		testcases := []struct {
			Name  string
			Input string
			Err   error
		}{
			{Name: "Empty", Input: "", Err: xmlfab.ErrEmptyDocument},
			{Name: "NoElement", Input: "   ", Err: xmlfab.ErrEmptyDocument},
			{Name: "MismatchedTag", Input: "<a>text</b>", Err: xmlfab.ErrMismatchedTag},
			{Name: "ExtraContent", Input: "<a/><b/>", Err: xmlfab.ErrDocumentEnd},
			{Name: "UnterminatedComment", Input: "<root><!-- oops</root>", Err: xmlfab.ErrInvalidComment},
			{Name: "UnknownEntity", Input: "<root>&bogus;</root>", Err: xmlfab.ErrInvalidCharRef},
			{Name: "NullCharRef", Input: "<root>&#0;</root>", Err: xmlfab.ErrInvalidCharRef},
			{Name: "SurrogateCharRef", Input: "<root>&#xD800;</root>", Err: xmlfab.ErrInvalidCharRef},
			{Name: "OverflowingCharRef", Input: "<root>&#99999999999;</root>", Err: xmlfab.ErrInvalidCharRef},
			{Name: "OverflowingHexCharRef", Input: "<root>&#xFFFFFFFFFF;</root>", Err: xmlfab.ErrInvalidCharRef},
			{Name: "TruncatedElement", Input: "<root><child", Err: xmlfab.ErrUnexpectedEOF},
		}

		for _, tc := range testcases {
			t.Run(tc.Name, func(t *testing.T) {
				_, err := xmlfab.Parse([]byte(tc.Input))
				if !assert.ErrorIs(t, err, tc.Err, "Parse fails with the expected error") {
					return
				}
			})
		}
	})

	t.Run("ErrorHasPosition", func(t *testing.T) {
		_, err := xmlfab.Parse([]byte("<root>\n<child>oops</mismatch>\n</root>"))
		if !assert.Error(t, err, "Parse fails") {
			return
		}

		var perr xmlfab.ErrParseError
		if !assert.ErrorAs(t, err, &perr, "error carries position info") {
			return
		}
		if !assert.Equal(t, 2, perr.LineNumber, "error points at the second line") {
			return
		}
	})
}

func TestParseDumpRoundTrip(t *testing.T) {
	const input = `<?xml version="1.0" ?>
<catalog>
  <book id="bk101">
    <author>Gambardella, Matthew</author>
    <title>XML Developer's Guide</title>
    <price>44.95</price>
  </book>
  <book id="bk102">
    <author>Ralls, Kim</author>
    <title>Midnight Rain</title>
    <price>5.95</price>
  </book>
</catalog>
`

	doc, err := xmlfab.Parse([]byte(input))
	if !assert.NoError(t, err, "Parse succeeds") {
		return
	}

	var buf bytes.Buffer
	d := s11n.Dumper{Indent: s11n.DefaultIndent}
	if !assert.NoError(t, d.DumpDoc(&buf, doc), "DumpDoc succeeds") {
		return
	}

	if !assert.Equal(t, input, buf.String(), "pretty output is a fixed point") {
		return
	}
}
