package css

import (
	"fmt"
	"strings"
	"unicode"
)

// LinePredicate reports whether body line has to be dropped.
type LinePredicate func(line string) bool

// ContainsAny returns predicate matching lines containing any of the patterns.
func ContainsAny(patterns ...string) LinePredicate {
	return func(line string) bool {
		for _, p := range patterns {
			if p != "" && strings.Contains(line, p) {
				return true
			}
		}
		return false
	}
}

func (s *Stylesheet) check(op string, loc Located) error {
	if loc.sheet != s || loc.Block == nil {
		return &BlockError{Op: op, Selector: selectorOf(loc), Err: ErrStaleLocation}
	}
	return nil
}

func selectorOf(loc Located) string {
	if loc.Block == nil {
		return ""
	}
	return loc.Selector
}

// Replace substitutes the whole located block (selector, body and braces) with
// text. Bytes outside of the block span are not touched. Text may hold any
// number of blocks, but must close every brace it opens.
func (s *Stylesheet) Replace(loc Located, text string) (*Stylesheet, error) {
	if err := s.check("replace", loc); err != nil {
		return nil, err
	}
	items, err := segment([]byte(text))
	if err != nil {
		return nil, &BlockError{Op: "replace", Selector: loc.Selector, Err: fmt.Errorf("%w: %w", ErrUnbalancedReplacement, err)}
	}
	next, err := rebuild(s.splice(loc.Index, items))
	if err != nil {
		return nil, &BlockError{Op: "replace", Selector: loc.Selector, Err: fmt.Errorf("%w: %w", ErrUnbalancedReplacement, err)}
	}
	return next, nil
}

// Remove deletes the located block together with a single line break following it.
func (s *Stylesheet) Remove(loc Located) (*Stylesheet, error) {
	if err := s.check("remove", loc); err != nil {
		return nil, err
	}
	items := make([]StylesheetItem, 0, len(s.Items))
	items = append(items, s.Items[:loc.Index]...)
	rest := s.Items[loc.Index+1:]
	if len(rest) > 0 && rest[0].Block == nil {
		text := rest[0].Text
		switch {
		case strings.HasPrefix(text, "\r\n"):
			text = text[2:]
		case strings.HasPrefix(text, "\n"):
			text = text[1:]
		}
		items = append(items, StylesheetItem{Text: text})
		rest = rest[1:]
	}
	items = append(items, rest...)
	next, err := rebuild(compact(items))
	if err != nil {
		return nil, &BlockError{Op: "remove", Selector: loc.Selector, Err: err}
	}
	return next, nil
}

// FilterLines drops body lines for which drop returns true, keeping the rest in
// original order. Trailing whitespace left after removal is trimmed and the
// body is rewrapped with original prelude and braces using line break of the
// body ("\r\n" or "\n"). Dropping every line is legal and produces empty
// block "S {\n}".
func (s *Stylesheet) FilterLines(loc Located, drop LinePredicate) (*Stylesheet, error) {
	if err := s.check("filter", loc); err != nil {
		return nil, err
	}
	if loc.Nested {
		return nil, &BlockError{Op: "filter", Selector: loc.Selector, Err: ErrNestedBlock}
	}

	lines := strings.Split(loc.Body(), "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if !drop(line) {
			kept = append(kept, line)
		}
	}
	body := strings.TrimRightFunc(strings.Join(kept, "\n"), unicode.IsSpace)

	eol := "\n"
	if strings.Contains(loc.Body(), "\r\n") {
		eol = "\r\n"
	}

	b := *loc.Block
	b.Text = loc.Text[:loc.Open+1] + body + eol + loc.Text[loc.Close:]
	b.Close = loc.Open + 1 + len(body) + len(eol)

	items := make([]StylesheetItem, len(s.Items))
	copy(items, s.Items)
	items[loc.Index] = StylesheetItem{Block: &b}

	next, err := rebuild(items)
	if err != nil {
		return nil, &BlockError{Op: "filter", Selector: loc.Selector, Err: err}
	}
	return next, nil
}

// splice returns items of s with item idx replaced by repl.
func (s *Stylesheet) splice(idx int, repl []StylesheetItem) []StylesheetItem {
	items := make([]StylesheetItem, 0, len(s.Items)-1+len(repl))
	items = append(items, s.Items[:idx]...)
	items = append(items, repl...)
	items = append(items, s.Items[idx+1:]...)
	return compact(items)
}

// rebuild segments text of edited items again and returns the result, so the
// next edit never works on structure the text does not have. Dropping the end
// of a comment or a dangling selector in front of the next block changes
// structure and is reported as malformed.
func rebuild(items []StylesheetItem) (*Stylesheet, error) {
	text := (&Stylesheet{Items: items}).String()
	parsed, err := segment([]byte(text))
	if err != nil {
		return nil, err
	}
	if len(parsed) != len(items) {
		return nil, fmt.Errorf("%w: edit changes number of items from %d to %d", ErrMalformedDocument, len(items), len(parsed))
	}
	for i := range items {
		if (items[i].Block == nil) != (parsed[i].Block == nil) || items[i].raw() != parsed[i].raw() {
			span := (&Stylesheet{Items: parsed}).Span(i)
			return nil, fmt.Errorf("%w: edit changes structure at offset %d", ErrMalformedDocument, span.Start)
		}
	}
	return &Stylesheet{Items: parsed}, nil
}

// compact merges adjacent text items and drops empty ones.
func compact(items []StylesheetItem) []StylesheetItem {
	out := items[:0]
	for _, item := range items {
		if item.Block == nil {
			if item.Text == "" {
				continue
			}
			if n := len(out); n > 0 && out[n-1].Block == nil {
				out[n-1].Text += item.Text
				continue
			}
		}
		out = append(out, item)
	}
	return out
}
