// Package plan describes ordered stylesheet edits and runs them.
package plan

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"

	validator "github.com/go-playground/validator/v10"
	"github.com/rupor-github/gencfg"
	"go.uber.org/multierr"
	yaml "gopkg.in/yaml.v3"

	"cssedit/css"
)

//go:embed example.yaml
var ExampleTmpl []byte

type (
	// Edit is a single block edit. Text is used by replace, Contains by filter.
	Edit struct {
		Selector string   `yaml:"selector" validate:"required"`
		Kind     EditKind `yaml:"kind"`
		Text     string   `yaml:"text,omitempty"`
		Contains []string `yaml:"contains,omitempty" validate:"omitempty,dive,required"`
	}

	// Substitution is literal document wide replacement.
	Substitution struct {
		Old string `yaml:"old" validate:"required"`
		New string `yaml:"new"`
	}

	Plan struct {
		Version       int            `yaml:"version" validate:"eq=1"`
		Blocks        []Edit         `yaml:"blocks" validate:"dive"`
		Substitutions []Substitution `yaml:"substitutions" validate:"dive"`
	}
)

// Pairs returns substitutions in order of application.
func (p *Plan) Pairs() []css.Pair {
	pairs := make([]css.Pair, 0, len(p.Substitutions))
	for _, s := range p.Substitutions {
		pairs = append(pairs, css.Pair{Old: s.Old, New: s.New})
	}
	return pairs
}

// Parse decodes plan and validates it. Every problem found is reported.
func Parse(data []byte) (*Plan, error) {
	// only fields we defined are allowed
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	p := &Plan{}
	if err := dec.Decode(p); err != nil {
		return nil, fmt.Errorf("failed to decode edit plan: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid edit plan: %w", err)
	}
	return p, nil
}

// Load reads plan from file.
func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read edit plan: %w", err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Example returns embedded example plan.
func Example() (*Plan, error) {
	return Parse(ExampleTmpl)
}

// Validate checks the plan before any text is touched. Replacement text is
// parsed, so unbalanced braces are reported here rather than halfway through
// the edits.
func (p *Plan) Validate() (err error) {
	if verr := gencfg.Validate(p, gencfg.WithAdditionalChecks(kindChecks)); verr != nil {
		var fields validator.ValidationErrors
		if !errors.As(verr, &fields) {
			return verr
		}
		for _, fe := range fields {
			err = multierr.Append(err, fmt.Errorf("%s: failed '%s' check", fe.Namespace(), fe.Tag()))
		}
	}

	parser := css.NewParser(nil)
	for i, e := range p.Blocks {
		if e.Kind != EditKindReplace || e.Text == "" {
			continue
		}
		if _, perr := parser.Parse([]byte(e.Text)); perr != nil {
			err = multierr.Append(err, fmt.Errorf("block edit #%d (%s): %w: %w", i+1, e.Selector, css.ErrUnbalancedReplacement, perr))
		}
	}
	return err
}

// kindChecks verifies each edit carries what its kind requires.
func kindChecks(sl validator.StructLevel) {
	p := sl.Current().Interface().(Plan)
	for i, e := range p.Blocks {
		field := fmt.Sprintf("Blocks[%d]", i)
		switch e.Kind {
		case EditKindReplace:
			if e.Text == "" {
				sl.ReportError(e.Text, field+".Text", "Text", "required_for_replace", "")
			}
		case EditKindFilter:
			if len(e.Contains) == 0 {
				sl.ReportError(e.Contains, field+".Contains", "Contains", "required_for_filter", "")
			}
		case EditKindRemove:
			if e.Text != "" || len(e.Contains) != 0 {
				sl.ReportError(e.Kind, field+".Kind", "Kind", "remove_takes_no_arguments", "")
			}
		default:
			sl.ReportError(e.Kind, field+".Kind", "Kind", "oneof_replace_filter_remove", "")
		}
	}
}
