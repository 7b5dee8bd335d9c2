package extract

import (
	"encoding/hex"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/docforge/outliner/internal/model"
)

// pageContent extracts the decoded content stream of one page (1-based) via
// pdfcpu. The stream is written to a temp dir and read back; pdfcpu offers no
// in-memory variant at this API level.
func pageContent(path string, pageNr int, conf *pdfmodel.Configuration) ([]byte, error) {
	tmpDir, err := os.MkdirTemp("", "outliner-content-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	pages := []string{strconv.Itoa(pageNr)}
	if err := api.ExtractContentFile(path, tmpDir, pages, conf); err != nil {
		return nil, fmt.Errorf("failed to extract content for page %d: %w", pageNr, err)
	}

	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read temp dir: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		return os.ReadFile(filepath.Join(tmpDir, entry.Name()))
	}
	return nil, nil
}

// pageFonts maps font resource names (e.g. "F1") to their BaseFont names so
// span styling survives extraction. Resolution is best-effort: on any failure
// the resource name itself is used and boldness detection degrades.
func pageFonts(ctx *pdfmodel.Context, pageNr int) map[string]string {
	fonts := make(map[string]string)
	if ctx == nil {
		return fonts
	}

	pageDict, _, _, err := ctx.PageDict(pageNr, false)
	if err != nil || pageDict == nil {
		return fonts
	}
	resources, err := ctx.DereferenceDict(pageDict["Resources"])
	if err != nil || resources == nil {
		return fonts
	}
	fontDict, err := ctx.DereferenceDict(resources["Font"])
	if err != nil || fontDict == nil {
		return fonts
	}

	for name, ref := range fontDict {
		d, err := ctx.DereferenceDict(ref)
		if err != nil || d == nil {
			continue
		}
		if base := d.NameEntry("BaseFont"); base != nil {
			fonts[name] = *base
		}
	}
	return fonts
}

// textShow is one positioned text-showing operation from a content stream.
type textShow struct {
	text string
	x, y float64 // baseline origin, bottom-left page coordinates
	size float64
	font string
}

// scanContent walks a page content stream and reconstructs positioned spans,
// lines, and blocks. It understands the common text operators (BT/ET, Tf,
// Td/TD/Tm/T*, Tj/TJ/'/") and approximates glyph widths; that is enough for
// the layout statistics downstream, which depend on positions and sizes, not
// exact advance widths.
func scanContent(content []byte, fonts map[string]string, page int, width, height float64) []*model.Block {
	shows := collectShows(content, fonts)
	if len(shows) == 0 {
		return nil
	}

	// Top-left origin with y growing downward, like the rest of the pipeline.
	for i := range shows {
		shows[i].y = height - shows[i].y
	}

	sort.SliceStable(shows, func(i, j int) bool {
		if math.Abs(shows[i].y-shows[j].y) > 0.5 {
			return shows[i].y < shows[j].y
		}
		return shows[i].x < shows[j].x
	})

	lines := groupLines(shows)
	return groupBlocks(lines, page, width, height)
}

// collectShows interprets the text operators of a content stream.
func collectShows(content []byte, fonts map[string]string) []textShow {
	var shows []textShow

	lex := newLexer(content)
	var operands []token

	// Graphics state relevant to text layout.
	var x, y float64
	var lineX, lineY float64
	var leading float64
	fontSize := 12.0
	fontName := ""

	emit := func(text string) {
		if text == "" {
			return
		}
		shows = append(shows, textShow{
			text: text,
			x:    x,
			y:    y,
			size: fontSize,
			font: fontName,
		})
		// Approximate advance; downstream consumers use positions, not widths.
		x += float64(len(text)) * fontSize * 0.5
	}

	num := func(t token) float64 {
		v, _ := strconv.ParseFloat(t.value, 64)
		return v
	}

	for {
		t, ok := lex.next()
		if !ok {
			break
		}
		if t.kind != tokOperator {
			operands = append(operands, t)
			continue
		}

		switch t.value {
		case "BT":
			x, y, lineX, lineY = 0, 0, 0, 0
		case "Tf":
			if len(operands) >= 2 {
				name := operands[len(operands)-2].value
				if base, ok := fonts[name]; ok {
					fontName = base
				} else {
					fontName = name
				}
				fontSize = num(operands[len(operands)-1])
			}
		case "TL":
			if len(operands) >= 1 {
				leading = num(operands[len(operands)-1])
			}
		case "Td":
			if len(operands) >= 2 {
				lineX += num(operands[len(operands)-2])
				lineY += num(operands[len(operands)-1])
				x, y = lineX, lineY
			}
		case "TD":
			if len(operands) >= 2 {
				leading = -num(operands[len(operands)-1])
				lineX += num(operands[len(operands)-2])
				lineY += num(operands[len(operands)-1])
				x, y = lineX, lineY
			}
		case "Tm":
			if len(operands) >= 6 {
				lineX = num(operands[len(operands)-2])
				lineY = num(operands[len(operands)-1])
				x, y = lineX, lineY
			}
		case "T*":
			lineY -= leading
			x, y = lineX, lineY
		case "Tj":
			if len(operands) >= 1 && operands[len(operands)-1].kind == tokString {
				emit(operands[len(operands)-1].value)
			}
		case "'", "\"":
			lineY -= leading
			x, y = lineX, lineY
			if len(operands) >= 1 && operands[len(operands)-1].kind == tokString {
				emit(operands[len(operands)-1].value)
			}
		case "TJ":
			for _, op := range operands {
				if op.kind == tokString {
					emit(op.value)
				}
			}
		}
		operands = operands[:0]
	}

	return shows
}

// groupLines merges shows sharing a baseline (0.5 unit tolerance) into lines.
func groupLines(shows []textShow) []model.Line {
	var lines []model.Line
	var current []textShow

	flush := func() {
		if len(current) == 0 {
			return
		}
		line := model.Line{}
		for i, s := range current {
			span := model.Span{
				Text: s.text,
				Size: s.size,
				Font: s.font,
				BBox: model.BBox{
					X0: s.x,
					Y0: s.y - s.size,
					X1: s.x + float64(len(s.text))*s.size*0.5,
					Y1: s.y,
				},
			}
			line.Spans = append(line.Spans, span)
			if i == 0 {
				line.BBox = span.BBox
			} else {
				line.BBox = line.BBox.Union(span.BBox)
			}
		}
		lines = append(lines, line)
		current = current[:0]
	}

	for _, s := range shows {
		if len(current) > 0 && math.Abs(s.y-current[len(current)-1].y) > 0.5 {
			flush()
		}
		current = append(current, s)
	}
	flush()
	return lines
}

// groupBlocks splits consecutive lines into blocks at paragraph-sized gaps.
func groupBlocks(lines []model.Line, page int, width, height float64) []*model.Block {
	var blocks []*model.Block
	var current []model.Line

	flush := func() {
		if len(current) == 0 {
			return
		}
		b := &model.Block{
			Lines:      append([]model.Line(nil), current...),
			BBox:       current[0].BBox,
			Page:       page,
			PageWidth:  width,
			PageHeight: height,
			Source:     model.SourceNative,
			Type:       model.BlockTypeText,
		}
		for _, line := range current[1:] {
			b.BBox = b.BBox.Union(line.BBox)
		}
		blocks = append(blocks, b)
		current = current[:0]
	}

	for _, line := range lines {
		if len(current) > 0 {
			prev := current[len(current)-1]
			gap := line.BBox.Y0 - prev.BBox.Y1
			if gap > prev.BBox.Height()*1.8 {
				flush()
			}
		}
		current = append(current, line)
	}
	flush()
	return blocks
}

// token kinds produced by the content lexer.
type tokenKind int

const (
	tokNumber tokenKind = iota
	tokString
	tokName
	tokOperator
)

type token struct {
	kind  tokenKind
	value string
}

// lexer is a minimal scanner for decoded PDF content streams. It recognizes
// literal and hex strings, names, numbers, and operators; nested structures
// it does not understand are skipped.
type lexer struct {
	data []byte
	pos  int
}

func newLexer(data []byte) *lexer {
	return &lexer{data: data}
}

func (l *lexer) next() (token, bool) {
	l.skipSpace()
	if l.pos >= len(l.data) {
		return token{}, false
	}

	c := l.data[l.pos]
	switch {
	case c == '(':
		return token{tokString, l.readLiteralString()}, true
	case c == '<' && l.pos+1 < len(l.data) && l.data[l.pos+1] != '<':
		return token{tokString, l.readHexString()}, true
	case c == '/':
		return token{tokName, l.readName()}, true
	case c == '[' || c == ']' || c == '{' || c == '}':
		l.pos++
		return l.next()
	case c == '<' || c == '>':
		// Dictionary delimiters inside marked content; skip.
		l.pos++
		return l.next()
	case c == '-' || c == '+' || c == '.' || (c >= '0' && c <= '9'):
		return token{tokNumber, l.readNumber()}, true
	case c == '%':
		l.skipComment()
		return l.next()
	default:
		return token{tokOperator, l.readOperator()}, true
	}
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.data) {
		switch l.data[l.pos] {
		case ' ', '\t', '\r', '\n', '\f', 0:
			l.pos++
		default:
			return
		}
	}
}

func (l *lexer) skipComment() {
	for l.pos < len(l.data) && l.data[l.pos] != '\n' {
		l.pos++
	}
}

func (l *lexer) readLiteralString() string {
	l.pos++ // consume '('
	var out []byte
	depth := 1
	for l.pos < len(l.data) {
		c := l.data[l.pos]
		switch c {
		case '\\':
			l.pos++
			if l.pos < len(l.data) {
				out = append(out, unescape(l.data[l.pos]))
				l.pos++
			}
			continue
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				l.pos++
				return string(out)
			}
		}
		out = append(out, c)
		l.pos++
	}
	return string(out)
}

func unescape(c byte) byte {
	switch c {
	case 'n':
		return '\n'
	case 'r':
		return '\r'
	case 't':
		return '\t'
	default:
		return c
	}
}

func (l *lexer) readHexString() string {
	l.pos++ // consume '<'
	start := l.pos
	for l.pos < len(l.data) && l.data[l.pos] != '>' {
		l.pos++
	}
	raw := l.data[start:l.pos]
	if l.pos < len(l.data) {
		l.pos++
	}

	var clean []byte
	for _, c := range raw {
		if (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F') {
			clean = append(clean, c)
		}
	}
	if len(clean)%2 == 1 {
		clean = append(clean, '0')
	}
	decoded, err := hex.DecodeString(string(clean))
	if err != nil {
		return ""
	}
	return string(decoded)
}

func (l *lexer) readName() string {
	l.pos++ // consume '/'
	start := l.pos
	for l.pos < len(l.data) && !isDelim(l.data[l.pos]) {
		l.pos++
	}
	return string(l.data[start:l.pos])
}

func (l *lexer) readNumber() string {
	start := l.pos
	l.pos++
	for l.pos < len(l.data) {
		c := l.data[l.pos]
		if (c >= '0' && c <= '9') || c == '.' || c == '-' || c == '+' {
			l.pos++
			continue
		}
		break
	}
	return string(l.data[start:l.pos])
}

func (l *lexer) readOperator() string {
	start := l.pos
	for l.pos < len(l.data) && !isDelim(l.data[l.pos]) {
		l.pos++
	}
	if l.pos == start {
		l.pos++
	}
	return string(l.data[start:l.pos])
}

func isDelim(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '\f', 0, '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}
