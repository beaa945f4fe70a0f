package css

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Parser splits stylesheets into top-level blocks.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// Parse splits CSS text into a Stylesheet.
// The optional source parameter identifies what's being parsed (for debug logging).
func (p *Parser) Parse(data []byte, source ...string) (*Stylesheet, error) {
	name := ""
	if len(source) > 0 {
		name = source[0]
	}

	items, err := segment(data)
	if err != nil {
		p.log.Debug("CSS parse error", zap.String("source", name), zap.Error(err))
		return nil, err
	}

	sheet := &Stylesheet{Items: items}
	if name != "" {
		p.log.Debug("Parsed CSS", zap.String("source", name), zap.Int("bytes", len(data)),
			zap.Int("items", len(items)), zap.Int("blocks", len(sheet.Blocks())))
	}
	return sheet, nil
}

// segment tokenizes data and cuts it into interstitial text and top-level
// blocks. Only brace tokens are structural, so braces inside comments, strings
// and urls do not affect block boundaries. Block ends are found by depth
// counting which keeps nested groups (@media, @supports) whole. Comments and
// strings left open at the end of data are errors, as they would swallow
// anything appended later.
func segment(data []byte) ([]StylesheetItem, error) {
	var (
		items      []StylesheetItem
		lexer      = css.NewLexer(parse.NewInput(bytes.NewReader(data)))
		pos        int
		depth      int
		textStart  int
		blockStart = -1 // first significant byte since the last top-level boundary
		openAt     = -1
		nested     bool
		prelude    strings.Builder // selector text without comments
		selector   string
	)

	for {
		tt, text := lexer.Next()
		if tt == css.ErrorToken {
			if err := lexer.Err(); err != nil && err != io.EOF {
				return nil, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
			}
			break
		}
		start := pos
		pos += len(text)

		switch tt {
		case css.CommentToken:
			if len(text) < 4 || !bytes.HasSuffix(text, []byte("*/")) {
				return nil, fmt.Errorf("%w: comment started at offset %d is never closed", ErrMalformedDocument, start)
			}
		case css.StringToken:
			if len(text) < 2 || text[len(text)-1] != text[0] {
				return nil, fmt.Errorf("%w: string started at offset %d is never closed", ErrMalformedDocument, start)
			}
		}

		switch tt {
		case css.CommentToken, css.CDOToken, css.CDCToken:
			// never starts a prelude
		case css.WhitespaceToken:
			if depth == 0 {
				prelude.Write(text)
			}
		case css.LeftBraceToken:
			if depth == 0 {
				if blockStart < 0 {
					blockStart = start
				}
				openAt = start
				nested = false
				selector = normalizeSelector(prelude.String())
				prelude.Reset()
			} else {
				nested = true
			}
			depth++
		case css.RightBraceToken:
			if depth == 0 {
				return nil, fmt.Errorf("%w: unexpected '}' at offset %d", ErrMalformedDocument, start)
			}
			depth--
			if depth > 0 {
				continue
			}
			if blockStart > textStart {
				items = append(items, StylesheetItem{Text: string(data[textStart:blockStart])})
			}
			raw := string(data[blockStart:pos])
			items = append(items, StylesheetItem{Block: &Block{
				Selector: selector,
				Text:     raw,
				Open:     openAt - blockStart,
				Close:    start - blockStart,
				Nested:   nested,
			}})
			textStart, blockStart = pos, -1
		case css.SemicolonToken:
			if depth == 0 {
				// end of top-level statement (@import, @charset)
				blockStart = -1
				prelude.Reset()
			}
		default:
			if depth == 0 {
				if blockStart < 0 {
					blockStart = start
				}
				prelude.Write(text)
			}
		}
	}

	if depth > 0 {
		return nil, fmt.Errorf("%w: block opened at offset %d is never closed", ErrMalformedDocument, openAt)
	}
	if pos != len(data) {
		return nil, fmt.Errorf("%w: unable to tokenize past offset %d", ErrMalformedDocument, pos)
	}
	if textStart < len(data) {
		items = append(items, StylesheetItem{Text: string(data[textStart:])})
	}
	return items, nil
}
