package gen

import "strings"

const indentUnit = "    "

// Writer is the emission buffer: accumulated output plus an explicit stack
// of indent units. Generation code composes nested Block calls; the writer
// guarantees consistent indentation regardless of how the source text passed
// in was indented at its call site.
type Writer struct {
	buf    []byte
	indent []string
}

func NewWriter() *Writer {
	return &Writer{}
}

func (w *Writer) String() string { return string(w.buf) }

// Depth is the current indentation depth in units.
func (w *Writer) Depth() int { return len(w.indent) }

func (w *Writer) PushIndent() {
	w.indent = append(w.indent, indentUnit)
}

func (w *Writer) PopIndent() {
	w.indent = w.indent[:len(w.indent)-1]
}

func (w *Writer) prefix() string {
	return strings.Join(w.indent, "")
}

// WriteLine re-indents every line of text to the current depth and
// terminates it with a newline. Leading whitespace on each line is stripped
// so call sites may indent their literals freely; lines beginning with a
// block-comment continuation marker keep their spacing. Whitespace-only text
// is written verbatim to preserve deliberate blank lines.
func (w *Writer) WriteLine(text string) {
	if strings.TrimSpace(text) == "" {
		w.buf = append(w.buf, text...)
		return
	}
	for _, line := range strings.Split(text, "\n") {
		stripped := strings.TrimLeft(line, " \t")
		if stripped == "" {
			w.buf = append(w.buf, '\n')
			continue
		}
		if strings.HasPrefix(stripped, "*") {
			stripped = " " + stripped
		}
		w.buf = append(w.buf, w.prefix()...)
		w.buf = append(w.buf, stripped...)
		w.buf = append(w.buf, '\n')
	}
}

// BlankLine emits one empty line.
func (w *Writer) BlankLine() {
	w.buf = append(w.buf, '\n')
}

// WriteInline deletes trailing whitespace and newlines, then appends text
// directly, joining it onto the previous content line.
func (w *Writer) WriteInline(text string) {
	w.trimRight(" \t\n")
	w.buf = append(w.buf, text...)
}

// RemoveTrailingBlankLine trims trailing spaces, then one empty trailing
// line if present. Used before closing a block so it never ends on a blank.
func (w *Writer) RemoveTrailingBlankLine() {
	w.trimRight(" \t")
	if strings.HasSuffix(string(w.buf), "\n\n") {
		w.buf = w.buf[:len(w.buf)-1]
	}
}

func (w *Writer) trimRight(cutset string) {
	for len(w.buf) > 0 && strings.ContainsRune(cutset, rune(w.buf[len(w.buf)-1])) {
		w.buf = w.buf[:len(w.buf)-1]
	}
}

// Block writes header, runs body at increased depth, and closes the block
// according to the header's shape:
//
//   - header ends in "(": an argument list. The body is indented two units
//     and the list is closed with ")" on its last content line.
//   - header ends in "{" or ")": a braced member or statement body. A brace
//     opener is added when missing, the body is indented one unit, and the
//     closing brace gets its own line. Member-like blocks are followed by a
//     blank line; control-flow blocks are not.
//   - anything else: the body just runs two units deeper, with no closer.
//
// Indentation depth after Block always equals the depth before it.
func (w *Writer) Block(header string, body func()) {
	switch {
	case strings.HasSuffix(header, "("):
		w.WriteLine(header)
		w.PushIndent()
		w.PushIndent()
		body()
		w.WriteInline(")")
		w.buf = append(w.buf, '\n')
		w.PopIndent()
		w.PopIndent()
	case strings.HasSuffix(header, "{"), strings.HasSuffix(header, ")"):
		if !strings.HasSuffix(header, "{") {
			header += " {"
		}
		w.WriteLine(header)
		w.PushIndent()
		body()
		w.RemoveTrailingBlankLine()
		w.PopIndent()
		w.WriteLine("}")
		if !isControlFlow(header) {
			w.BlankLine()
		}
	default:
		w.WriteLine(header)
		w.PushIndent()
		w.PushIndent()
		body()
		w.PopIndent()
		w.PopIndent()
	}
}

// isControlFlow separates statement blocks from member bodies: members get a
// trailing blank line for breathing room, nested control flow does not.
func isControlFlow(header string) bool {
	switch {
	case strings.HasPrefix(header, "if "), strings.HasPrefix(header, "if("),
		strings.HasPrefix(header, "switch "), strings.HasPrefix(header, "switch("),
		strings.HasPrefix(header, "synchronized"),
		strings.Contains(header, "else"),
		strings.Contains(header, "new "),
		strings.Contains(header, "return "):
		return true
	}
	return false
}

// EachComma invokes fn for every item and then strips trailing whitespace,
// newlines and one trailing comma, so emitted comma-separated lists never
// carry a dangling separator.
func EachComma[T any](w *Writer, items []T, fn func(T)) {
	for _, item := range items {
		fn(item)
	}
	if len(items) == 0 {
		return
	}
	w.trimRight(" \t\n")
	if len(w.buf) > 0 && w.buf[len(w.buf)-1] == ',' {
		w.buf = w.buf[:len(w.buf)-1]
	}
}
