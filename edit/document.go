package edit

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/h2non/filetype"
	"go.uber.org/multierr"
	"golang.org/x/text/encoding/unicode"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// document is stylesheet as it was read from disk.
type document struct {
	raw  []byte
	text string // without BOM
	bom  bool
	mode fs.FileMode
}

// readDocument reads the whole file at once, handle is released before any
// editing starts.
func readDocument(path string) (*document, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("not a regular file (%s)", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := decodeDocument(data)
	if err != nil {
		return nil, err
	}
	doc.mode = fi.Mode().Perm()
	return doc, nil
}

func decodeDocument(data []byte) (*document, error) {
	if kind, err := filetype.Match(data); err == nil && kind != filetype.Unknown {
		return nil, fmt.Errorf("binary content detected (%s)", kind.Extension)
	}
	if !utf8.Valid(data) {
		return nil, errors.New("content is not valid UTF-8")
	}
	text, err := unicode.UTF8BOM.NewDecoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("unable to decode content: %w", err)
	}
	return &document{
		raw:  data,
		text: string(text),
		bom:  bytes.HasPrefix(data, utf8BOM),
		mode: 0644,
	}, nil
}

// encode prepares edited text for writing, byte order mark is restored if
// source had one and keepBOM is set.
func (d *document) encode(text string, keepBOM bool) ([]byte, error) {
	if !d.bom || !keepBOM {
		return []byte(text), nil
	}
	data, err := unicode.UTF8BOM.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("unable to encode content: %w", err)
	}
	return data, nil
}

// writeFile replaces content of path atomically. Data is written to temporary
// file in the same directory, synced and renamed over path, so readers see
// either old or new content and failure leaves old content in place.
func writeFile(path string, data []byte, mode fs.FileMode) (err error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("unable to create temporary file: %w", err)
	}
	tmp := f.Name()
	defer func() {
		if err == nil {
			return
		}
		if er := os.Remove(tmp); er != nil && !errors.Is(er, fs.ErrNotExist) {
			err = multierr.Append(err, fmt.Errorf("unable to remove temporary file: %w", er))
		}
	}()

	if _, err = f.Write(data); err == nil {
		err = f.Sync()
	}
	if err = multierr.Append(err, f.Close()); err != nil {
		return fmt.Errorf("unable to write temporary file: %w", err)
	}
	if err = os.Chmod(tmp, mode); err != nil {
		return fmt.Errorf("unable to set file mode: %w", err)
	}
	if err = os.Rename(tmp, path); err != nil {
		return fmt.Errorf("unable to replace %s: %w", path, err)
	}
	return nil
}
