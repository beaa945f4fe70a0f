package edit

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	sprig "github.com/go-task/slim-sprig/v3"

	"cssedit/config"
)

// Values is a struct that holds variables we make available for backup name
// template expansion.
type Values struct {
	Name string // source file name
	Stem string // source file name without extension
	Ext  string
	Time time.Time
}

// backupName expands name template for the copy of src. Copy always goes into
// the source directory.
func backupName(src, field string, now time.Time) (string, error) {
	tmpl, err := template.New(config.BackupNameTemplateFieldName).Funcs(sprig.FuncMap()).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", config.BackupNameTemplateFieldName, err)
	}

	name := filepath.Base(src)
	values := Values{
		Name: name,
		Stem: strings.TrimSuffix(name, filepath.Ext(name)),
		Ext:  filepath.Ext(name),
		Time: now,
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", fmt.Errorf("unable to expand template field %s: %w", config.BackupNameTemplateFieldName, err)
	}

	res := strings.TrimSpace(buf.String())
	switch {
	case res == "", res == ".", res == "..":
		return "", fmt.Errorf("backup name template produced unusable name %q", res)
	case strings.ContainsAny(res, `/\`):
		return "", fmt.Errorf("backup name %q must not contain path separators", res)
	case res == name:
		return "", fmt.Errorf("backup name %q is the same as source", res)
	}
	return filepath.Join(filepath.Dir(src), res), nil
}
