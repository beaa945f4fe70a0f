// Package state defines shared program state.
package state

import (
	"context"
	"time"

	"go.uber.org/zap"

	"cssedit/config"
)

type envKey struct{}

// LocalEnv keeps everything program needs in a single place.
type LocalEnv struct {
	Cfg *config.Config
	Rpt *config.Report
	Log *zap.Logger

	// used by apply subcommand
	PlanPath string
	DryRun   bool
	Backup   bool

	start         time.Time
	restoreStdLog func()
}

func EnvFromContext(ctx context.Context) *LocalEnv {
	if env, ok := ctx.Value(envKey{}).(*LocalEnv); ok {
		return env
	}
	// this should never happen
	panic("localenv not found in context")
}

func ContextWithEnv(ctx context.Context) context.Context {
	return context.WithValue(ctx, envKey{}, newLocalEnv())
}

func (e *LocalEnv) Uptime() time.Duration {
	return time.Since(e.start)
}

func (e *LocalEnv) RedirectStdLog() {
	if e.Log == nil {
		return
	}
	e.restoreStdLog = zap.RedirectStdLog(e.Log)
}

func (e *LocalEnv) RestoreStdLog() {
	if e.Log != nil {
		_ = e.Log.Sync()
	}
	if e.restoreStdLog != nil {
		e.restoreStdLog()
	}
}

// Document returns document settings with command line overrides applied.
func (e *LocalEnv) Document() config.DocumentConfig {
	var doc config.DocumentConfig
	if e.Cfg != nil {
		doc = e.Cfg.Document
	}
	if e.PlanPath != "" {
		doc.PlanPath = e.PlanPath
	}
	doc.Backup = doc.Backup || e.Backup
	if doc.BackupNameTemplate == "" {
		doc.BackupNameTemplate = "{{ .Name }}.bak"
	}
	return doc
}
