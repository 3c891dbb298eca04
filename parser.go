package xmlfab

import (
	"bytes"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/lestrrat-go/pdebug"
	"github.com/lestrrat-go/strcursor"
	"github.com/lestrrat-go/xmlfab/encoding"
	"github.com/lestrrat-go/xmlfab/internal/debug"
	"github.com/lestrrat-go/xmlfab/node"
	"github.com/pkg/errors"
)

// Parse reads XML text into a node.Document. It understands what the
// serializer produces: a declaration, elements with attributes,
// character data with entity and character references, comments, and
// self-closing tags. Runs of text consisting only of whitespace, which
// pretty-printing inserts freely between elements, are discarded; any
// other text is kept verbatim, surrounding whitespace included.
// Documents declaring a non-UTF-8 encoding are decoded first.
func Parse(data []byte) (*node.Document, error) {
	if pdebug.Enabled {
		g := pdebug.Marker("Parse")
		defer g.End()
	}

	data, err := decodeInput(stripBOM(data))
	if err != nil {
		return nil, err
	}

	ctx := &parserCtx{
		cursor: strcursor.NewRuneCursor(bytes.NewReader(data)),
		doc:    node.NewDocument(),
	}
	if err := ctx.parseDocument(); err != nil {
		return nil, err
	}
	return ctx.doc, nil
}

type parserCtx struct {
	cursor strcursor.Cursor
	doc    *node.Document
}

func stripBOM(data []byte) []byte {
	return bytes.TrimPrefix(data, []byte{0xef, 0xbb, 0xbf})
}

// declaredEncoding extracts the encoding pseudo-attribute from an XML
// declaration, or returns "" when the input does not start with one.
func declaredEncoding(data []byte) string {
	if !bytes.HasPrefix(data, []byte("<?xml")) {
		return ""
	}
	end := bytes.Index(data, []byte("?>"))
	if end < 0 {
		return ""
	}
	decl := data[:end]

	i := bytes.Index(decl, []byte("encoding"))
	if i < 0 {
		return ""
	}
	rest := bytes.TrimLeft(decl[i+len("encoding"):], " \t\r\n")
	if len(rest) == 0 || rest[0] != '=' {
		return ""
	}
	rest = bytes.TrimLeft(rest[1:], " \t\r\n")
	if len(rest) < 2 || (rest[0] != '"' && rest[0] != '\'') {
		return ""
	}
	if j := bytes.IndexByte(rest[1:], rest[0]); j >= 0 {
		return string(rest[1 : 1+j])
	}
	return ""
}

// decodeInput converts input declaring a non-UTF-8 encoding to UTF-8
// before the cursor ever sees it. The declaration itself is ASCII, so
// it survives the conversion and is re-read by parseXMLDecl.
func decodeInput(data []byte) ([]byte, error) {
	name := declaredEncoding(data)
	if name == "" || strings.EqualFold(name, "utf-8") || strings.EqualFold(name, "utf8") {
		return data, nil
	}

	enc := encoding.Load(name)
	if enc == nil {
		return nil, errors.Errorf("encoding '%s' not supported", name)
	}
	converted, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode input as %s", name)
	}
	return converted, nil
}

func (ctx *parserCtx) error(err error) error {
	// If it's wrapped, just return as is
	if _, ok := err.(ErrParseError); ok {
		return err
	}

	return ErrParseError{
		Err:        err,
		Line:       ctx.cursor.Line(),
		LineNumber: ctx.cursor.LineNumber(),
		Column:     ctx.cursor.Column(),
	}
}

func (ctx *parserCtx) curDone() bool {
	return ctx.cursor.Done()
}

func (ctx *parserCtx) curPeek() rune {
	return ctx.cursor.Peek()
}

// curNext consumes and returns the current rune. The second return
// value is false at end of input.
func (ctx *parserCtx) curNext() (rune, bool) {
	if ctx.cursor.Done() {
		return utf8.RuneError, false
	}
	r := ctx.cursor.Peek()
	if err := ctx.cursor.Advance(1); err != nil {
		return utf8.RuneError, false
	}
	return r, true
}

func (ctx *parserCtx) curConsumePrefix(s string) bool {
	return ctx.cursor.ConsumeString(s)
}

func (ctx *parserCtx) curHasPrefix(s string) bool {
	return ctx.cursor.HasPrefixString(s)
}

func isBlankCh(c rune) bool {
	return c == 0x20 || (0x9 <= c && c <= 0xa) || c == 0xd
}

// isChar reports if r is a character the XML grammar allows in
// content. NUL, most other control characters, surrogate halves and
// the BMP non-characters are all excluded.
func isChar(r rune) bool {
	if r == utf8.RuneError {
		return false
	}

	c := uint32(r)
	if c < 0x100 {
		return (0x9 <= c && c <= 0xa) || c == 0xd || 0x20 <= c
	}
	return (0x100 <= c && c <= 0xd7ff) || (0xe000 <= c && c <= 0xfffd) || (0x10000 <= c && c <= 0x10ffff)
}

func (ctx *parserCtx) skipBlanks() {
	for !ctx.curDone() && isBlankCh(ctx.curPeek()) {
		if _, ok := ctx.curNext(); !ok {
			return
		}
	}
}

func (ctx *parserCtx) parseDocument() error {
	if debug.Enabled {
		debug.Printf("START parseDocument")
		defer debug.Printf("END   parseDocument")
	}

	if ctx.curDone() {
		return ctx.error(ErrEmptyDocument)
	}

	if ctx.curHasPrefix("<?xml") {
		if err := ctx.parseXMLDecl(); err != nil {
			return err
		}
	}

	if err := ctx.parseMisc(ctx.doc); err != nil {
		return err
	}

	if ctx.curDone() || ctx.curPeek() != '<' {
		return ctx.error(ErrEmptyDocument)
	}

	root, err := ctx.parseElement()
	if err != nil {
		return err
	}
	if err := ctx.doc.SetRootElement(root); err != nil {
		return ctx.error(err)
	}

	if err := ctx.parseMisc(ctx.doc); err != nil {
		return err
	}
	if !ctx.curDone() {
		return ctx.error(ErrDocumentEnd)
	}
	return nil
}

// parseMisc consumes whitespace, comments and processing instructions
// between markup. Comments are kept as children of parent;
// processing instructions are discarded.
func (ctx *parserCtx) parseMisc(parent node.Node) error {
	for {
		ctx.skipBlanks()
		switch {
		case ctx.curHasPrefix("<!--"):
			comment, err := ctx.parseComment()
			if err != nil {
				return err
			}
			if err := parent.AddChild(comment); err != nil {
				return ctx.error(err)
			}
		case ctx.curHasPrefix("<?"):
			if err := ctx.skipPI(); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func (ctx *parserCtx) parseXMLDecl() error {
	if !ctx.curConsumePrefix("<?xml") {
		return ctx.error(ErrInvalidXMLDecl)
	}

	for {
		ctx.skipBlanks()
		if ctx.curConsumePrefix("?>") {
			break
		}
		if ctx.curDone() {
			return ctx.error(ErrInvalidXMLDecl)
		}

		name, err := ctx.parseName()
		if err != nil {
			return err
		}
		ctx.skipBlanks()
		if !ctx.curConsumePrefix("=") {
			return ctx.error(ErrInvalidXMLDecl)
		}
		ctx.skipBlanks()
		value, err := ctx.parseQuoted()
		if err != nil {
			return err
		}

		switch name {
		case "version":
			ctx.doc.SetVersion(value)
		case "encoding":
			// decodeInput already converted the data by the time the
			// cursor gets here; just record the declared name.
			ctx.doc.SetEncoding(value)
		case "standalone":
			switch value {
			case "yes":
				ctx.doc.SetStandalone(node.StandaloneExplicitYes)
			case "no":
				ctx.doc.SetStandalone(node.StandaloneExplicitNo)
			default:
				return ctx.error(ErrInvalidXMLDecl)
			}
		default:
			return ctx.error(ErrInvalidXMLDecl)
		}
	}

	return nil
}

func (ctx *parserCtx) parseComment() (*node.Comment, error) {
	if !ctx.curConsumePrefix("<!--") {
		return nil, ctx.error(ErrInvalidComment)
	}

	var buf strings.Builder
	for {
		if ctx.curConsumePrefix("-->") {
			break
		}
		r, ok := ctx.curNext()
		if !ok {
			return nil, ctx.error(ErrInvalidComment)
		}
		buf.WriteRune(r)
	}
	return ctx.doc.CreateComment([]byte(buf.String())), nil
}

func (ctx *parserCtx) skipPI() error {
	if !ctx.curConsumePrefix("<?") {
		return ctx.error(ErrEmptyDocument)
	}
	for {
		if ctx.curConsumePrefix("?>") {
			return nil
		}
		if _, ok := ctx.curNext(); !ok {
			return ctx.error(ErrUnexpectedEOF)
		}
	}
}

func isNameStartChar(r rune) bool {
	return r == '_' || r == ':' || unicode.IsLetter(r)
}

func isNameChar(r rune) bool {
	return isNameStartChar(r) || r == '-' || r == '.' || unicode.IsDigit(r)
}

func (ctx *parserCtx) parseName() (string, error) {
	if ctx.curDone() || !isNameStartChar(ctx.curPeek()) {
		return "", ctx.error(ErrInvalidName)
	}

	var buf strings.Builder
	for !ctx.curDone() && isNameChar(ctx.curPeek()) {
		r, ok := ctx.curNext()
		if !ok {
			break
		}
		buf.WriteRune(r)
	}
	return buf.String(), nil
}

func (ctx *parserCtx) parseQuoted() (string, error) {
	quote, ok := ctx.curNext()
	if !ok || (quote != '"' && quote != '\'') {
		return "", ctx.error(ErrInvalidAttrValue)
	}

	var buf strings.Builder
	for {
		if ctx.curDone() {
			return "", ctx.error(ErrUnexpectedEOF)
		}
		if ctx.curPeek() == '&' {
			decoded, err := ctx.parseReference()
			if err != nil {
				return "", err
			}
			buf.WriteString(decoded)
			continue
		}
		r, ok := ctx.curNext()
		if !ok {
			return "", ctx.error(ErrUnexpectedEOF)
		}
		if r == quote {
			break
		}
		buf.WriteRune(r)
	}
	return buf.String(), nil
}

// parseReference decodes an entity or character reference starting at
// the '&'. Only the five predefined entities and numeric character
// references are supported.
func (ctx *parserCtx) parseReference() (string, error) {
	if !ctx.curConsumePrefix("&") {
		return "", ctx.error(ErrInvalidCharRef)
	}

	var buf strings.Builder
	for {
		r, ok := ctx.curNext()
		if !ok {
			return "", ctx.error(ErrInvalidCharRef)
		}
		if r == ';' {
			break
		}
		buf.WriteRune(r)
	}

	ref := buf.String()
	switch ref {
	case "amp":
		return "&", nil
	case "lt":
		return "<", nil
	case "gt":
		return ">", nil
	case "quot":
		return `"`, nil
	case "apos":
		return "'", nil
	}

	if strings.HasPrefix(ref, "#") {
		return ctx.decodeCharRef(ref[1:])
	}
	return "", ctx.error(errors.Wrapf(ErrInvalidCharRef, "unknown entity '&%s;'", ref))
}

func (ctx *parserCtx) decodeCharRef(ref string) (string, error) {
	var val int32
	var err error
	if strings.HasPrefix(ref, "x") || strings.HasPrefix(ref, "X") {
		if len(ref) == 1 {
			return "", ctx.error(ErrInvalidCharRef)
		}
		for _, c := range ref[1:] {
			val, err = accumulateHexCharRef(val, c)
			if err != nil {
				return "", ctx.error(err)
			}
		}
	} else {
		if ref == "" {
			return "", ctx.error(ErrInvalidCharRef)
		}
		for _, c := range ref {
			val, err = accumulateDecimalCharRef(val, c)
			if err != nil {
				return "", ctx.error(err)
			}
		}
	}

	if val > unicode.MaxRune || !isChar(rune(val)) {
		return "", ctx.error(errors.Wrapf(ErrInvalidCharRef, "#%d is not a valid XML character", val))
	}
	return string(rune(val)), nil
}

func accumulateDecimalCharRef(val int32, c rune) (int32, error) {
	if c >= '0' && c <= '9' {
		val = val*10 + (c - '0')
	} else {
		return 0, errors.Wrap(ErrInvalidCharRef, "invalid decimal character reference")
	}
	// Reject before the accumulator can wrap around.
	if val > unicode.MaxRune {
		return 0, errors.Wrap(ErrInvalidCharRef, "character reference out of range")
	}
	return val, nil
}

func accumulateHexCharRef(val int32, c rune) (int32, error) {
	if c >= '0' && c <= '9' {
		val = val*16 + (c - '0')
	} else if c >= 'a' && c <= 'f' {
		val = val*16 + (c - 'a') + 10
	} else if c >= 'A' && c <= 'F' {
		val = val*16 + (c - 'A') + 10
	} else {
		return 0, errors.Wrap(ErrInvalidCharRef, "invalid hex character reference")
	}
	if val > unicode.MaxRune {
		return 0, errors.Wrap(ErrInvalidCharRef, "character reference out of range")
	}
	return val, nil
}

func (ctx *parserCtx) parseElement() (*node.Element, error) {
	if !ctx.curConsumePrefix("<") {
		return nil, ctx.error(ErrEmptyDocument)
	}

	name, err := ctx.parseName()
	if err != nil {
		return nil, err
	}
	if debug.Enabled {
		debug.Printf(" --> element %s", name)
	}
	e := ctx.doc.CreateElement(name)

	for {
		ctx.skipBlanks()
		if ctx.curDone() {
			return nil, ctx.error(ErrUnexpectedEOF)
		}
		if ctx.curConsumePrefix("/>") {
			return e, nil
		}
		if ctx.curConsumePrefix(">") {
			break
		}

		attrName, err := ctx.parseName()
		if err != nil {
			return nil, err
		}
		ctx.skipBlanks()
		if !ctx.curConsumePrefix("=") {
			return nil, ctx.error(ErrInvalidAttrValue)
		}
		ctx.skipBlanks()
		value, err := ctx.parseQuoted()
		if err != nil {
			return nil, err
		}
		e.SetAttribute(attrName, value)
	}

	if err := ctx.parseContent(e); err != nil {
		return nil, err
	}

	if !ctx.curConsumePrefix("</") {
		return nil, ctx.error(ErrUnexpectedEOF)
	}
	endName, err := ctx.parseName()
	if err != nil {
		return nil, err
	}
	if endName != name {
		return nil, ctx.error(errors.Wrapf(ErrMismatchedTag, "<%s> closed by </%s>", name, endName))
	}
	ctx.skipBlanks()
	if !ctx.curConsumePrefix(">") {
		return nil, ctx.error(ErrUnexpectedEOF)
	}
	return e, nil
}

func (ctx *parserCtx) parseContent(e *node.Element) error {
	for {
		if ctx.curDone() {
			return ctx.error(ErrUnexpectedEOF)
		}

		switch {
		case ctx.curHasPrefix("</"):
			return nil
		case ctx.curHasPrefix("<!--"):
			comment, err := ctx.parseComment()
			if err != nil {
				return err
			}
			if err := e.AddChild(comment); err != nil {
				return ctx.error(err)
			}
		case ctx.curHasPrefix("<?"):
			if err := ctx.skipPI(); err != nil {
				return err
			}
		case ctx.curHasPrefix("<"):
			child, err := ctx.parseElement()
			if err != nil {
				return err
			}
			if err := e.AddChild(child); err != nil {
				return ctx.error(err)
			}
		default:
			if err := ctx.parseCharData(e); err != nil {
				return err
			}
		}
	}
}

// parseCharData reads text up to the next markup. Whitespace-only
// runs, which pretty-printing inserts freely, are dropped; anything
// else is kept exactly as written, surrounding whitespace included.
func (ctx *parserCtx) parseCharData(e *node.Element) error {
	var buf strings.Builder
	for !ctx.curDone() && ctx.curPeek() != '<' {
		if ctx.curPeek() == '&' {
			decoded, err := ctx.parseReference()
			if err != nil {
				return err
			}
			buf.WriteString(decoded)
			continue
		}
		r, ok := ctx.curNext()
		if !ok {
			break
		}
		buf.WriteRune(r)
	}

	content := buf.String()
	if strings.TrimSpace(content) == "" {
		return nil
	}
	return e.AddChild(ctx.doc.CreateText([]byte(content)))
}
