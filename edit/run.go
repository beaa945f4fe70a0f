// Package edit implements program actions working on stylesheet files.
package edit

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/maruel/natural"
	"github.com/pmezard/go-difflib/difflib"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"cssedit/css"
	"cssedit/plan"
	"cssedit/state"
)

// Apply runs edit plan against stylesheet.
func Apply(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("apply")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input stylesheet has been specified")
	}
	if src, err = filepath.Abs(src); err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		dst = src
	} else if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	env.PlanPath, env.DryRun, env.Backup = cmd.String("plan"), cmd.Bool("dry-run"), cmd.Bool("backup")

	p, err := loadPlan(env)
	if err != nil {
		return err
	}

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst), zap.Bool("dry-run", env.DryRun))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return process(ctx, src, dst, p, os.Stdout, log)
}

func loadPlan(env *state.LocalEnv) (*plan.Plan, error) {
	path := env.Document().PlanPath
	if len(path) == 0 {
		return nil, errors.New("no edit plan has been specified")
	}
	p, err := plan.Load(path)
	if err != nil {
		return nil, err
	}
	if err := env.Rpt.StoreCopy("plan.yaml", path); err != nil {
		env.Log.Warn("Unable to store edit plan in report", zap.Error(err))
	}
	return p, nil
}

// process handles the edit independently of CLI framework. Source is read
// once, destination is written once, and only when every step succeeded.
func process(ctx context.Context, src, dst string, p *plan.Plan, out io.Writer, log *zap.Logger) error {
	env := state.EnvFromContext(ctx)
	opts := env.Document()

	// every run gets its own id so results of several runs in the report do not mix
	runID, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("unable to generate run id: %w", err)
	}
	log = log.With(zap.Stringer("run", runID))

	source, err := readDocument(src)
	if err != nil {
		return fmt.Errorf("unable to read stylesheet: %w", err)
	}
	env.Rpt.StoreData("source"+filepath.Ext(src), source.raw)

	text, res, err := plan.Execute(ctx, source.text, p, log)
	if err != nil {
		return fmt.Errorf("unable to edit %s: %w", src, err)
	}
	storeResult(env.Rpt, res, text)

	for _, s := range res.Substitutions {
		log.Debug("Substitution applied", zap.String("old", s.Old), zap.Int("count", s.Count))
	}
	log.Info("Stylesheet edited", zap.Int("blocks", len(res.Edits)), zap.Int("substitutions", len(res.Substitutions)),
		zap.Int("before", len(source.text)), zap.Int("after", len(text)))

	if env.DryRun {
		diff, err := unifiedDiff(src, dst, source.text, text)
		if err != nil {
			return fmt.Errorf("unable to prepare difference: %w", err)
		}
		if _, err := io.WriteString(out, diff); err != nil {
			return fmt.Errorf("unable to output difference: %w", err)
		}
		log.Info("Dry run, nothing was written")
		return nil
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := source.encode(text, opts.KeepBOM)
	if err != nil {
		return err
	}
	// dropping byte order mark alone is a change
	if src == dst && bytes.Equal(data, source.raw) {
		log.Info("Stylesheet is not changed, nothing to write")
		return nil
	}

	if opts.Backup {
		backup, err := backupName(src, opts.BackupNameTemplate, time.Now())
		if err != nil {
			return err
		}
		if err := writeFile(backup, source.raw, source.mode); err != nil {
			return fmt.Errorf("unable to save backup: %w", err)
		}
		log.Info("Backup saved", zap.String("file", backup))
	}

	mode := source.mode
	if fi, err := os.Stat(dst); err == nil {
		mode = fi.Mode().Perm()
	}
	if err := writeFile(dst, data, mode); err != nil {
		return err
	}
	env.Rpt.Store(fmt.Sprintf("result-%s%s", runID, filepath.Ext(dst)), dst)
	return nil
}

func unifiedDiff(src, dst, before, after string) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: src,
		ToFile:   dst,
		Context:  3,
	})
}

// Locate prints block found by selector.
func Locate(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("locate")

	selector, src := cmd.Args().Get(0), cmd.Args().Get(1)
	if len(selector) == 0 || len(src) == 0 {
		return errors.New("both selector and stylesheet have to be specified")
	}
	if src, err = filepath.Abs(src); err != nil {
		return err
	}
	return locate(selector, src, cmd.Bool("tree"), os.Stdout, log)
}

func locate(selector, src string, tree bool, out io.Writer, log *zap.Logger) error {
	source, err := readDocument(src)
	if err != nil {
		return fmt.Errorf("unable to read stylesheet: %w", err)
	}
	sheet, err := css.NewParser(log).Parse([]byte(source.text), src)
	if err != nil {
		return fmt.Errorf("unable to parse %s: %w", src, err)
	}
	if tree {
		fmt.Fprint(out, sheet.Dump())
	}

	loc, err := sheet.Locate(selector)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "selector: %s\nspan: [%d:%d)\nlines: %d\n%s\n", loc.Selector, loc.Span.Start, loc.Span.End, len(loc.Lines()), loc.Text)
	return nil
}

// Blocks lists top-level blocks of the stylesheet.
func Blocks(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("blocks")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input stylesheet has been specified")
	}
	if src, err = filepath.Abs(src); err != nil {
		return err
	}
	return listBlocks(src, cmd.Bool("sort"), os.Stdout, log)
}

func listBlocks(src string, sorted bool, out io.Writer, log *zap.Logger) error {
	source, err := readDocument(src)
	if err != nil {
		return fmt.Errorf("unable to read stylesheet: %w", err)
	}
	sheet, err := css.NewParser(log).Parse([]byte(source.text), src)
	if err != nil {
		return fmt.Errorf("unable to parse %s: %w", src, err)
	}

	type entry struct {
		selector string
		span     css.Span
		nested   bool
	}
	var (
		entries []entry
		seen    = make(map[string]int)
	)
	for i, item := range sheet.Items {
		if item.Block == nil {
			continue
		}
		entries = append(entries, entry{selector: item.Block.Selector, span: sheet.Span(i), nested: item.Block.Nested})
		seen[item.Block.Selector]++
	}
	if sorted {
		// ".col-2" goes before ".col-10"
		sort.SliceStable(entries, func(i, j int) bool {
			return natural.Less(entries[i].selector, entries[j].selector)
		})
	}

	for _, e := range entries {
		var flags string
		if e.nested {
			flags += " nested"
		}
		if seen[e.selector] > 1 {
			flags += " duplicate"
		}
		fmt.Fprintf(out, "[%d:%d)\t%s%s\n", e.span.Start, e.span.End, e.selector, flags)
	}
	return nil
}
