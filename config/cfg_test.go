package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rupor-github/gencfg"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfiguration_NoFile(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() with empty path error = %v", err)
	}
	if cfg == nil {
		t.Fatal("LoadConfiguration() returned nil config")
	}
	if cfg.Version != 1 {
		t.Errorf("Default config version = %d, want 1", cfg.Version)
	}
}

func TestConfig_DefaultValues(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if cfg.Document.PlanPath != "" {
		t.Errorf("PlanPath = %q, want empty", cfg.Document.PlanPath)
	}
	if cfg.Document.Backup {
		t.Error("Backup should be off by default")
	}
	if cfg.Document.BackupNameTemplate != "{{ .Name }}.bak" {
		t.Errorf("BackupNameTemplate = %q, want unexpanded template", cfg.Document.BackupNameTemplate)
	}
	if !cfg.Document.KeepBOM {
		t.Error("KeepBOM should be on by default")
	}
	if cfg.Logging.ConsoleLogger.Level != "normal" {
		t.Errorf("console level = %q, want normal", cfg.Logging.ConsoleLogger.Level)
	}
	if cfg.Logging.FileLogger.Level != "none" {
		t.Errorf("file level = %q, want none", cfg.Logging.FileLogger.Level)
	}
}

func TestLoadConfiguration_WithFile(t *testing.T) {
	dir := t.TempDir()
	planPath := filepath.Join(dir, "plan.yaml")
	if err := os.WriteFile(planPath, []byte("version: 1\n"), 0644); err != nil {
		t.Fatalf("Failed to write plan file: %v", err)
	}

	configPath := writeConfig(t, `version: 1
document:
  plan_path: `+planPath+`
  backup: true
  backup_name_template: "{{ .Stem }}.orig{{ .Ext }}"
  keep_bom: false
logging:
  console:
    level: debug
  file:
    level: debug
    destination: `+filepath.Join(dir, "test.log")+`
    mode: append
reporting:
  destination: `+filepath.Join(dir, "test-report.zip")+`
`)

	cfg, err := LoadConfiguration(configPath)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if cfg.Document.PlanPath != planPath {
		t.Errorf("PlanPath = %q, want %q", cfg.Document.PlanPath, planPath)
	}
	if !cfg.Document.Backup {
		t.Error("Expected Backup to be true")
	}
	if cfg.Document.BackupNameTemplate != "{{ .Stem }}.orig{{ .Ext }}" {
		t.Errorf("BackupNameTemplate = %q", cfg.Document.BackupNameTemplate)
	}
	if cfg.Document.KeepBOM {
		t.Error("Expected KeepBOM to be false")
	}
	if cfg.Logging.FileLogger.Mode != "append" {
		t.Errorf("file mode = %q, want append", cfg.Logging.FileLogger.Mode)
	}
}

func TestLoadConfiguration_MergeWithDefaults(t *testing.T) {
	configPath := writeConfig(t, `version: 1
document:
  backup: true
`)

	cfg, err := LoadConfiguration(configPath)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if !cfg.Document.Backup {
		t.Error("Expected Backup from file")
	}
	if cfg.Document.BackupNameTemplate != "{{ .Name }}.bak" {
		t.Errorf("BackupNameTemplate = %q, want default", cfg.Document.BackupNameTemplate)
	}
	if cfg.Reporting.Destination == "" {
		t.Error("Reporting destination default lost")
	}
}

func TestLoadConfiguration_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid yaml", "version: 1\ndocument:\n  backup: true\n  invalid indent\n"},
		{"unknown field", "version: 1\nunknown_field: value\n"},
		{"unknown document field", "version: 1\ndocument:\n  fix_zip: true\n"},
		{"bad version", "version: 2\n"},
		{"empty backup name", "version: 1\ndocument:\n  backup_name_template: \"\"\n"},
		{"old backup field", "version: 1\ndocument:\n  backup_suffix: .bak\n"},
		{"bad console level", "version: 1\nlogging:\n  console:\n    level: loud\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadConfiguration(writeConfig(t, tt.content)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadConfiguration_NonExistentFile(t *testing.T) {
	if _, err := LoadConfiguration("/nonexistent/config.yaml"); err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestLoadConfiguration_WithOptions(t *testing.T) {
	option := func(opts *gencfg.ProcessingOptions) {}

	cfg, err := LoadConfiguration("", option)
	if err != nil {
		t.Fatalf("LoadConfiguration() with options error = %v", err)
	}
	if cfg == nil {
		t.Fatal("LoadConfiguration() returned nil config")
	}
}

func TestPrepare(t *testing.T) {
	data, err := Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if len(data) == 0 {
		t.Fatal("Prepare() returned empty data")
	}
	if _, err := unmarshalConfig(data, &Config{}, true); err != nil {
		t.Errorf("Prepared config is not valid: %v", err)
	}
}

func TestDump(t *testing.T) {
	cfg := &Config{
		Version: 1,
		Document: DocumentConfig{
			Backup:             true,
			BackupNameTemplate: "{{ .Name }}.old",
			KeepBOM:            true,
		},
	}

	data, err := Dump(cfg)
	if err != nil {
		t.Fatalf("Dump() error = %v", err)
	}

	cfg2, err := unmarshalConfig(data, &Config{}, false)
	if err != nil {
		t.Fatalf("Dumped config cannot be loaded: %v", err)
	}
	if cfg2.Document != cfg.Document {
		t.Errorf("Document mismatch after dump/load: got %+v, want %+v", cfg2.Document, cfg.Document)
	}
}

func TestUnmarshalConfig_WrapsValidationError(t *testing.T) {
	_, err := unmarshalConfig([]byte("version: 99\n"), &Config{}, true)
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
	if !strings.Contains(err.Error(), "validat") {
		t.Errorf("expected error to mention validation, got: %v", err)
	}
	if errors.Unwrap(err) == nil {
		t.Errorf("expected wrapped error, got bare error: %v", err)
	}
}
