package s11n_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lestrrat-go/xmlfab/node"
	"github.com/lestrrat-go/xmlfab/s11n"
	"github.com/stretchr/testify/assert"
)

func TestDumpEmptyElement(t *testing.T) {
	doc := node.NewDocument()
	root := doc.CreateElement("root")

	var buf bytes.Buffer
	d := s11n.Dumper{}
	if !assert.NoError(t, d.DumpNode(&buf, root), "DumpNode succeeds") {
		return
	}

	if !assert.Equal(t, "<root/>\n", buf.String(), "empty element self-closes") {
		return
	}
}

func TestDumpTextOnlyElement(t *testing.T) {
	doc := node.NewDocument()
	root := doc.CreateElement("greeting")
	root.SetAttribute("lang", "en")
	if !assert.NoError(t, root.SetContent([]byte("Hello, World!")), "SetContent succeeds") {
		return
	}

	var buf bytes.Buffer
	d := s11n.Dumper{}
	if !assert.NoError(t, d.DumpNode(&buf, root), "DumpNode succeeds") {
		return
	}

	if !assert.Equal(t, "<greeting lang=\"en\">Hello, World!</greeting>\n", buf.String(), "text-only element on a single line") {
		return
	}
}

func TestDumpNestedElements(t *testing.T) {
	doc := node.NewDocument()
	root := doc.CreateElement("root")
	alpha := doc.CreateElement("alpha")
	bravo := doc.CreateElement("bravo")
	if !assert.NoError(t, root.AddChild(alpha), "AddChild succeeds") {
		return
	}
	if !assert.NoError(t, alpha.AddChild(bravo), "AddChild succeeds") {
		return
	}
	if !assert.NoError(t, bravo.SetContent([]byte("deep")), "SetContent succeeds") {
		return
	}

	var buf bytes.Buffer
	d := s11n.Dumper{Indent: s11n.DefaultIndent}
	if !assert.NoError(t, d.DumpNode(&buf, root), "DumpNode succeeds") {
		return
	}

	expected := strings.Join([]string{
		"<root>",
		"  <alpha>",
		"    <bravo>deep</bravo>",
		"  </alpha>",
		"</root>",
		"",
	}, "\n")
	if !assert.Equal(t, expected, buf.String(), "nesting reflected by indentation") {
		return
	}
}

func TestDumpCustomIndent(t *testing.T) {
	doc := node.NewDocument()
	root := doc.CreateElement("root")
	child := doc.CreateElement("child")
	if !assert.NoError(t, root.AddChild(child), "AddChild succeeds") {
		return
	}

	var buf bytes.Buffer
	d := s11n.Dumper{Indent: "\t"}
	if !assert.NoError(t, d.DumpNode(&buf, root), "DumpNode succeeds") {
		return
	}

	if !assert.Equal(t, "<root>\n\t<child/>\n</root>\n", buf.String(), "custom indent honored") {
		return
	}
}

func TestDumpFlat(t *testing.T) {
	doc := node.NewDocument()
	root := doc.CreateElement("root")
	child := doc.CreateElement("child")
	if !assert.NoError(t, root.AddChild(child), "AddChild succeeds") {
		return
	}
	if !assert.NoError(t, child.SetContent([]byte("v")), "SetContent succeeds") {
		return
	}

	var buf bytes.Buffer
	d := s11n.Dumper{}
	if !assert.NoError(t, d.DumpNode(&buf, root), "DumpNode succeeds") {
		return
	}

	if !assert.Equal(t, "<root>\n<child>v</child>\n</root>\n", buf.String(), "zero value writes without indentation") {
		return
	}
}

func TestDumpComment(t *testing.T) {
	doc := node.NewDocument()
	root := doc.CreateElement("root")
	if !assert.NoError(t, root.AddChild(doc.CreateComment([]byte(" hi "))), "AddChild succeeds") {
		return
	}

	var buf bytes.Buffer
	d := s11n.Dumper{Indent: s11n.DefaultIndent}
	if !assert.NoError(t, d.DumpNode(&buf, root), "DumpNode succeeds") {
		return
	}

	if !assert.Equal(t, "<root>\n  <!-- hi -->\n</root>\n", buf.String()) {
		return
	}
}

func TestDumpDoc(t *testing.T) {
	doc := node.NewDocument()
	root := doc.CreateElement("root")
	if !assert.NoError(t, doc.SetRootElement(root), "SetRootElement succeeds") {
		return
	}

	var buf bytes.Buffer
	d := s11n.Dumper{}
	if !assert.NoError(t, d.DumpDoc(&buf, doc), "DumpDoc succeeds") {
		return
	}

	if !assert.Equal(t, "<?xml version=\"1.0\" ?>\n<root/>\n", buf.String()) {
		return
	}
}

func TestDumpEscaping(t *testing.T) {
	doc := node.NewDocument()
	root := doc.CreateElement("root")
	root.SetAttribute("q", `a"b<c`)
	if !assert.NoError(t, root.SetContent([]byte("1 < 2 & 3 > 2")), "SetContent succeeds") {
		return
	}

	var buf bytes.Buffer
	d := s11n.Dumper{}
	if !assert.NoError(t, d.DumpNode(&buf, root), "DumpNode succeeds") {
		return
	}

	expected := "<root q=\"a&#34;b&lt;c\">1 &lt; 2 &amp; 3 &gt; 2</root>\n"
	if !assert.Equal(t, expected, buf.String(), "attribute and text content escaped") {
		return
	}
}
