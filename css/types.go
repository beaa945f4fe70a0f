package css

import (
	"io"
	"strings"

	"cssedit/utils/debug"
)

// Span is a half-open byte range [Start, End) into the stylesheet text.
type Span struct {
	Start int
	End   int
}

// Len returns number of bytes covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Block is a single top-level rule block: selector prelude, opening brace,
// body and matching closing brace.
type Block struct {
	Selector string // whitespace normalized prelude (e.g. ".hero", "@media screen")
	Text     string // raw text from the first prelude byte through the closing brace
	Open     int    // index of the opening brace in Text
	Close    int    // index of the closing brace in Text
	Nested   bool   // body contains nested blocks
}

// Prelude returns raw text preceding the opening brace.
func (b *Block) Prelude() string {
	return b.Text[:b.Open]
}

// Body returns raw text between the braces.
func (b *Block) Body() string {
	return b.Text[b.Open+1 : b.Close]
}

// Lines returns body split into lines. Blank remainders of the brace lines
// (text right after "{" and right before "}") are not included, so
// ".a {\n  x: 1;\n}" yields a single line.
func (b *Block) Lines() []string {
	lines := strings.Split(b.Body(), "\n")
	if len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	if len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return nil
	}
	return lines
}

// StylesheetItem is a single top-level item of a stylesheet. When Block is nil
// the item is interstitial text (whitespace, comments, @import statements and
// such) which is carried through verbatim.
type StylesheetItem struct {
	Text  string
	Block *Block
}

func (it StylesheetItem) raw() string {
	if it.Block != nil {
		return it.Block.Text
	}
	return it.Text
}

// Stylesheet is a stylesheet split into top-level blocks and the text between
// them. Concatenating items in order reproduces the source byte for byte.
// Stylesheet is never modified after creation, edits produce new values.
type Stylesheet struct {
	Items []StylesheetItem
}

// Blocks returns all top-level blocks in source order.
func (s *Stylesheet) Blocks() []*Block {
	var blocks []*Block
	for _, item := range s.Items {
		if item.Block != nil {
			blocks = append(blocks, item.Block)
		}
	}
	return blocks
}

// Span returns the current position of the item with index idx.
func (s *Stylesheet) Span(idx int) Span {
	start := 0
	for i := range idx {
		start += len(s.Items[i].raw())
	}
	return Span{Start: start, End: start + len(s.Items[idx].raw())}
}

// Len returns length of the stylesheet text in bytes.
func (s *Stylesheet) Len() int {
	n := 0
	for _, item := range s.Items {
		n += len(item.raw())
	}
	return n
}

// WriteTo writes the stylesheet to w in source order, implementing io.WriterTo.
func (s *Stylesheet) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, item := range s.Items {
		n, err := io.WriteString(w, item.raw())
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// String returns the CSS text of the stylesheet.
func (s *Stylesheet) String() string {
	var sb strings.Builder
	sb.Grow(s.Len())
	s.WriteTo(&sb) //nolint:errcheck
	return sb.String()
}

// Dump returns human readable outline of the stylesheet structure.
func (s *Stylesheet) Dump() string {
	tw := debug.NewTreeWriter()
	tw.Line(0, "stylesheet: %d items, %d bytes", len(s.Items), s.Len())
	for i, item := range s.Items {
		span := s.Span(i)
		if item.Block == nil {
			tw.Line(1, "[%d] text [%d:%d)", i, span.Start, span.End)
			continue
		}
		b := item.Block
		tw.Line(1, "[%d] block [%d:%d) nested=%t", i, span.Start, span.End, b.Nested)
		tw.TextBlock(2, "selector", b.Selector)
		for _, line := range b.Lines() {
			tw.TextBlock(2, "line", line)
		}
	}
	return tw.String()
}

// normalizeSelector collapses whitespace runs so selectors written differently
// across lines compare equal.
func normalizeSelector(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
