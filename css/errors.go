package css

import (
	"errors"
	"fmt"
)

var (
	ErrEmptySelector         = errors.New("empty selector")
	ErrBlockNotFound         = errors.New("block not found")
	ErrAmbiguousBlock        = errors.New("ambiguous block")
	ErrNestedBlock           = errors.New("block body contains nested blocks")
	ErrUnbalancedReplacement = errors.New("replacement text does not close its braces")
	ErrMalformedDocument     = errors.New("malformed stylesheet")
	ErrStaleLocation         = errors.New("location does not belong to this stylesheet")
)

// BlockError records failed operation on a block with a particular selector.
type BlockError struct {
	Op       string
	Selector string
	Err      error
}

func (e *BlockError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, e.Selector, e.Err)
}

func (e *BlockError) Unwrap() error {
	return e.Err
}
