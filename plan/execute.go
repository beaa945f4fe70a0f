package plan

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"cssedit/css"
)

// EditResult records block text before and after single edit. After is empty
// when block was removed.
type EditResult struct {
	Edit
	Before string
	After  string
}

// SubstitutionResult records how many times substitution was applied.
type SubstitutionResult struct {
	Substitution
	Count int
}

type Result struct {
	Source        *css.Stylesheet
	Edits         []EditResult
	Substitutions []SubstitutionResult
}

// Execute applies the plan to the stylesheet text. Block edits run in plan
// order, each against the re-segmented result of the previous one,
// substitutions follow. Final text is parsed once more before it is returned.
// Nothing is returned on error, so caller never sees partially edited text.
func Execute(ctx context.Context, text string, p *Plan, log *zap.Logger) (string, *Result, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("plan")

	sheet, err := css.NewParser(log).Parse([]byte(text), "source")
	if err != nil {
		return "", nil, fmt.Errorf("unable to parse stylesheet: %w", err)
	}
	res := &Result{Source: sheet}

	for i, e := range p.Blocks {
		if err := ctx.Err(); err != nil {
			return "", nil, err
		}
		next, er, err := apply(sheet, e)
		if err != nil {
			return "", nil, fmt.Errorf("block edit #%d (%s): %w", i+1, e.Kind, err)
		}
		log.Debug("Block edited", zap.Int("edit", i+1), zap.Stringer("kind", e.Kind), zap.String("selector", e.Selector),
			zap.Int("before", len(er.Before)), zap.Int("after", len(er.After)))
		res.Edits = append(res.Edits, er)
		sheet = next
	}

	if err := ctx.Err(); err != nil {
		return "", nil, err
	}
	out, counts := css.Substitute(sheet.String(), p.Pairs())
	for i, s := range p.Substitutions {
		if counts[i] == 0 {
			log.Debug("Substitution did not match", zap.Int("substitution", i+1), zap.String("old", s.Old))
		}
		res.Substitutions = append(res.Substitutions, SubstitutionResult{Substitution: s, Count: counts[i]})
	}
	// substitutions are blind to structure, result has to stay a stylesheet
	if _, err := css.NewParser(log).Parse([]byte(out), "result"); err != nil {
		return "", nil, fmt.Errorf("substitutions produced malformed stylesheet: %w", err)
	}
	return out, res, nil
}

func apply(sheet *css.Stylesheet, e Edit) (*css.Stylesheet, EditResult, error) {
	er := EditResult{Edit: e}

	loc, err := sheet.Locate(e.Selector)
	if err != nil {
		return nil, er, err
	}
	er.Before = loc.Text

	var next *css.Stylesheet
	switch e.Kind {
	case EditKindReplace:
		next, err = sheet.Replace(loc, e.Text)
		er.After = e.Text
	case EditKindFilter:
		next, err = sheet.FilterLines(loc, css.ContainsAny(e.Contains...))
		if err == nil {
			er.After = next.Items[loc.Index].Block.Text
		}
	case EditKindRemove:
		next, err = sheet.Remove(loc)
	default:
		err = fmt.Errorf("unsupported edit kind %s", e.Kind)
	}
	if err != nil {
		return nil, er, err
	}
	return next, er, nil
}
