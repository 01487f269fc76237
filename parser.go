package dialectcsv

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// Parser assembles tokens from a lexer into Records and owns the header
// map and comment accumulators, per spec §4.3. Grounded on the teacher's
// sqlparser.Parser (sqlparser/parser.go), which plays the analogous role
// of driving a Scanner and folding its tokens into higher-level nodes;
// adapted here to produce flat Records instead of a document tree, and to
// be resumable from a mid-stream offset (§8.2 S8) rather than always
// starting at the top of a file.
type Parser struct {
	lex *lexer
	f   Format
	tok token
	src io.Reader

	recordNum int64
	closed    bool

	headerMap   map[string]int
	headerNames []string
	headerLen   int
	headerSet   bool

	headerComment     string
	hasHeaderComment  bool
	trailerComment    string
	hasTrailerComment bool

	log logrus.FieldLogger
}

// ParserOption configures optional Parser behavior beyond the dialect
// itself, mirroring the teacher's functional-option constructors.
type ParserOption func(*Parser)

// WithLogger attaches a structured logger the parser (and its lexer) uses to
// warn about lex errors and about lenient-EOF and trailing-data recoveries.
// Defaults to logrus's standard logger.
func WithLogger(l logrus.FieldLogger) ParserOption {
	return func(p *Parser) { p.log = l }
}

// NewParser constructs a Parser reading from src under Format f, starting
// at record number 1 and character offset 0.
func NewParser(src io.Reader, f Format, opts ...ParserOption) (*Parser, error) {
	return newParser(src, f, 1, 0, opts...)
}

// NewResumedParser constructs a Parser positioned to continue a previous
// read: src must already be positioned at characterOffset (the core has no
// seek capability of its own over an io.Reader), and the first record
// produced is numbered recordNumber. This is the resume path of §8.2 S8.
func NewResumedParser(src io.Reader, f Format, recordNumber, characterOffset int64, opts ...ParserOption) (*Parser, error) {
	return newParser(src, f, recordNumber, characterOffset, opts...)
}

func newParser(src io.Reader, f Format, recordNumber, characterOffset int64, opts ...ParserOption) (*Parser, error) {
	p := &Parser{
		f:         f,
		src:       src,
		recordNum: recordNumber,
		log:       logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(p)
	}

	cr := newCharReader(src)
	cr.charPos = characterOffset
	p.lex = newLexer(cr, f, p.log)

	if err := p.processHeader(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Parser) nextToken() error {
	return p.lex.Next(&p.tok)
}

// assembleRecord pulls tokens until a record is complete (EndOfRecord) or
// the stream is exhausted (EOF), collecting any COMMENT tokens that
// precede it. startOffset is the reader position immediately before the
// first non-comment token. ok is false only when the stream is genuinely
// exhausted with no further field content (§4.3 "EOF: ... otherwise
// return no record").
func (p *Parser) assembleRecord() (fields []string, raws []string, comments []string, startOffset int64, ok bool, err error) {
	startOffset = -1
	for {
		pos := p.lex.r.getPosition()
		if err := p.nextToken(); err != nil {
			p.log.WithError(err).WithField("record", p.recordNum).Warn("lex error")
			return nil, nil, comments, 0, false, err
		}

		if p.tok.kind == tokenComment {
			comments = append(comments, p.tok.comment)
			continue
		}
		if startOffset < 0 {
			startOffset = pos
		}

		switch p.tok.kind {
		case tokenField:
			fields = append(fields, p.tok.Text())
			raws = append(raws, p.tok.RawText())

		case tokenEndOfRecord:
			fields = append(fields, p.tok.Text())
			raws = append(raws, p.tok.RawText())
			return fields, raws, comments, startOffset, true, nil

		case tokenEOF:
			if len(fields) > 0 || p.tok.Text() != "" {
				fields = append(fields, p.tok.Text())
				raws = append(raws, p.tok.RawText())
				return fields, raws, comments, startOffset, true, nil
			}
			return nil, nil, comments, 0, false, nil
		}
	}
}

// processHeader implements the three header modes of §4.3's Construction
// section.
func (p *Parser) processHeader() error {
	h := p.f.Header()
	switch {
	case h.isUnset():
		return nil

	case h.isAuto():
		fields, _, comments, _, ok, err := p.assembleRecord()
		if err != nil {
			return err
		}
		p.captureHeaderComment(comments)
		if !ok {
			fields = nil
		}
		return p.buildHeaderIndex(fields)

	case h.isExplicit():
		names := append([]string(nil), h.names...)
		if p.f.SkipHeaderRecord() {
			_, _, comments, _, _, err := p.assembleRecord()
			if err != nil {
				return err
			}
			p.captureHeaderComment(comments)
		}
		return p.buildHeaderIndex(names)
	}
	return nil
}

func (p *Parser) captureHeaderComment(comments []string) {
	if len(comments) == 0 {
		return
	}
	p.headerComment = strings.Join(comments, "\n")
	p.hasHeaderComment = true
}

func (p *Parser) buildHeaderIndex(names []string) error {
	if !p.f.allowMissingCols {
		for i, n := range names {
			if strings.TrimSpace(n) == "" {
				return newHeaderError("header column %d is empty but allowMissingColumnNames is false", i+1)
			}
		}
	}

	if p.f.duplicateMode != AllowAllDuplicates {
		seen := map[string]int{}
		for _, n := range names {
			seen[n]++
		}
		for n, c := range seen {
			if c <= 1 {
				continue
			}
			if n == "" && p.f.duplicateMode == AllowEmptyDuplicates {
				continue
			}
			return newHeaderError("duplicate header name %q in %v", n, names)
		}
	}

	idx := make(map[string]int, len(names))
	for i, n := range names {
		if n == "" {
			continue // reserved slot, not addressable by name
		}
		key := n
		if p.f.ignoreHeaderCase {
			key = foldCase(n)
		}
		idx[key] = i
	}

	p.headerNames = append([]string(nil), names...)
	p.headerMap = idx
	p.headerLen = len(names)
	p.headerSet = true
	return nil
}

// NextRecord returns the next Record, or ok=false once the stream is
// exhausted. It is the sole producer; concurrent callers on the same
// Parser are a usage error per the concurrency model (§5).
func (p *Parser) NextRecord() (Record, bool, error) {
	if p.closed {
		return Record{}, false, nil
	}

	fields, raws, comments, startOffset, ok, err := p.assembleRecord()
	if err != nil {
		return Record{}, false, err
	}
	if !ok {
		if len(comments) > 0 {
			p.trailerComment = strings.Join(comments, "\n")
			p.hasTrailerComment = true
		}
		return Record{}, false, nil
	}

	if p.f.ignoreEmptyLines && len(fields) == 1 && fields[0] == "" && raws[0] == "" {
		return p.NextRecord()
	}

	rec := Record{
		fields:      fields,
		number:      p.recordNum,
		startOffset: startOffset,
		header:      p.headerMap,
		headerLen:   p.headerLen,
		headerCase:  p.f.ignoreHeaderCase,
	}
	if len(comments) > 0 {
		rec.comment, rec.hasComment = strings.Join(comments, "\n"), true
	}
	if null, hasNull := p.f.NullString(); hasNull {
		rec.nulls = make([]bool, len(raws))
		for i, raw := range raws {
			rec.nulls[i] = raw == null
		}
	}

	p.recordNum++
	return rec, true, nil
}

// Records returns a single-use iterator function (Go 1.23 range-over-func
// style) over NextRecord, matching the spec's "lazy, finite,
// non-restartable sequence" contract (§4.3): ranging twice over the result
// of two separate Records() calls is fine, but the same Parser only ever
// advances forward.
func (p *Parser) Records() func(yield func(Record, error) bool) {
	return func(yield func(Record, error) bool) {
		for {
			rec, ok, err := p.NextRecord()
			if err != nil {
				yield(Record{}, err)
				return
			}
			if !ok {
				return
			}
			if !yield(rec, nil) {
				return
			}
		}
	}
}

// HeaderMap returns a defensive copy of the name→index header mapping;
// nil when no header is configured. Mutating the result does not affect
// the parser (§4.3 "read-only views").
func (p *Parser) HeaderMap() map[string]int {
	if p.headerMap == nil {
		return nil
	}
	cp := make(map[string]int, len(p.headerMap))
	for k, v := range p.headerMap {
		cp[k] = v
	}
	return cp
}

// HeaderNames returns a defensive copy of the ordered header names,
// preserving duplicates, in declaration order.
func (p *Parser) HeaderNames() []string {
	return append([]string(nil), p.headerNames...)
}

// HeaderComment returns the comment text collected before the header row.
func (p *Parser) HeaderComment() (string, bool) { return p.headerComment, p.hasHeaderComment }

// TrailerComment returns the comment text collected after the last record.
func (p *Parser) TrailerComment() (string, bool) { return p.trailerComment, p.hasTrailerComment }

// CurrentLineNumber reports the reader's current line number.
func (p *Parser) CurrentLineNumber() int { return p.lex.r.getLineNumber() }

// RecordNumber reports the sequence number that will be assigned to the
// next record returned by NextRecord.
func (p *Parser) RecordNumber() int64 { return p.recordNum }

// FirstEndOfLine returns the first record-terminator form encountered
// (one of "\n", "\r", "\r\n"), if any record has been read yet.
func (p *Parser) FirstEndOfLine() (string, bool) { return p.lex.FirstEndOfLine() }

// Close releases the underlying reader exactly once. Idempotent; further
// NextRecord calls return ok=false as if at EOF (§4.3 "close()").
func (p *Parser) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	if c, ok := p.src.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
