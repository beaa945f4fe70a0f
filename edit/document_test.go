package edit

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDecodeDocument(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		text    string
		bom     bool
		wantErr bool
	}{
		{name: "plain", data: []byte("a {}\n"), text: "a {}\n"},
		{name: "empty", data: nil, text: ""},
		{name: "bom", data: []byte("\xEF\xBB\xBFa {}\n"), text: "a {}\n", bom: true},
		{name: "bom only", data: []byte("\xEF\xBB\xBF"), text: "", bom: true},
		{name: "invalid utf8", data: []byte("a { content: \"\xC0\"; }"), wantErr: true},
		{name: "png", data: []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), wantErr: true},
		{name: "gzip", data: []byte("\x1f\x8b\x08\x00\x00\x00\x00\x00"), wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := decodeDocument(tt.data)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("decodeDocument() error = %v", err)
			}
			if doc.text != tt.text || doc.bom != tt.bom {
				t.Errorf("got text %q bom %t, want %q %t", doc.text, doc.bom, tt.text, tt.bom)
			}
		})
	}
}

func TestDocument_Encode(t *testing.T) {
	doc, err := decodeDocument([]byte("\xEF\xBB\xBFa {}\n"))
	if err != nil {
		t.Fatal(err)
	}

	data, err := doc.encode("b {}\n", true)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "\xEF\xBB\xBFb {}\n" {
		t.Errorf("encode() with BOM = %q", data)
	}

	data, err = doc.encode("b {}\n", false)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "b {}\n" {
		t.Errorf("encode() without BOM = %q", data)
	}

	plain, err := decodeDocument([]byte("a {}\n"))
	if err != nil {
		t.Fatal(err)
	}
	if data, _ := plain.encode("b {}\n", true); string(data) != "b {}\n" {
		t.Errorf("BOM added to document which had none: %q", data)
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.css")

	if err := writeFile(path, []byte("first"), 0600); err != nil {
		t.Fatalf("writeFile() error = %v", err)
	}
	if err := writeFile(path, []byte("second"), 0644); err != nil {
		t.Fatalf("writeFile() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "second" {
		t.Errorf("content = %q, want second", data)
	}
	fi, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if fi.Mode().Perm() != 0644 {
		t.Errorf("mode = %v, want 0644", fi.Mode().Perm())
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("temporary files left behind: %v", entries)
	}
}

func TestWriteFile_Failure(t *testing.T) {
	dir := t.TempDir()
	// renaming over directory fails, temporary file has to go away
	target := filepath.Join(dir, "target")
	if err := os.Mkdir(target, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(target, "keep"), nil, 0644); err != nil {
		t.Fatal(err)
	}

	if err := writeFile(target, []byte("data"), 0644); err == nil {
		t.Fatal("expected error")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "target" {
		t.Errorf("unexpected directory content: %v", entries)
	}

	if err := writeFile(filepath.Join(dir, "missing", "out.css"), []byte("data"), 0644); err == nil {
		t.Error("expected error for missing directory")
	}
}
