package css

import (
	"fmt"

	"go.uber.org/zap"
)

// Located is a block found in a particular stylesheet. It is only valid for
// the stylesheet which produced it, edits return new stylesheets and blocks
// have to be located again.
type Located struct {
	*Block
	Index int  // item index in the stylesheet
	Span  Span // full block span including selector and braces

	sheet *Stylesheet
}

// Locate finds the only top-level block with given selector. Selector is a
// literal, whitespace differences are ignored.
func (s *Stylesheet) Locate(selector string) (Located, error) {
	want := normalizeSelector(selector)
	if want == "" {
		return Located{}, &BlockError{Op: "locate", Selector: selector, Err: ErrEmptySelector}
	}

	found := -1
	count := 0
	for i, item := range s.Items {
		if item.Block == nil || item.Block.Selector != want {
			continue
		}
		if found < 0 {
			found = i
		}
		count++
	}

	switch {
	case count == 0:
		return Located{}, &BlockError{Op: "locate", Selector: selector, Err: ErrBlockNotFound}
	case count > 1:
		return Located{}, &BlockError{Op: "locate", Selector: selector,
			Err: fmt.Errorf("%w: %d blocks share this selector", ErrAmbiguousBlock, count)}
	}

	return Located{
		Block: s.Items[found].Block,
		Index: found,
		Span:  s.Span(found),
		sheet: s,
	}, nil
}

// Locate parses document and finds the only top-level block with given selector.
func Locate(document, selector string) (Located, error) {
	sheet, err := NewParser(zap.NewNop()).Parse([]byte(document))
	if err != nil {
		return Located{}, err
	}
	return sheet.Locate(selector)
}
