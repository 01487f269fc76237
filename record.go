package dialectcsv

// Record is one logical row produced by a Parser: an ordered field-string
// sequence plus the metadata spec §3 requires (sequence number, starting
// character offset, optional attached comment) and the owning parser's
// header index for name-indexed access. Per DESIGN NOTES ("Weak parser
// reference from record"), Record holds no reference to the parser itself —
// the parser (and its reader) may be closed or garbage collected while
// records outlive it. The header map is shared with the parser and its
// other records, not copied; the parser never changes it after
// construction.
type Record struct {
	fields []string
	// nulls[i] is true when fields[i]'s *raw* source text (before escape
	// decoding) exactly matched the configured null-string. Null detection
	// must happen once, at assembly time, against the raw text — comparing
	// the decoded value instead would conflate an escaped literal that
	// happens to decode to the same text as the sentinel (see token.go).
	nulls []bool

	number      int64
	startOffset int64
	comment     string
	hasComment  bool

	header     map[string]int // nil when no header
	headerLen  int            // number of header columns (may exceed len(header) under duplicate names)
	headerCase bool           // true when lookups fold case
}

// Number returns the record's 1-based sequence number.
func (r Record) Number() int64 { return r.number }

// StartOffset returns the absolute character offset where the record began.
func (r Record) StartOffset() int64 { return r.startOffset }

// Comment returns the comment text attached to this record, if any.
func (r Record) Comment() (string, bool) { return r.comment, r.hasComment }

// Len returns the number of fields in the record.
func (r Record) Len() int { return len(r.fields) }

// Values returns a defensive copy of the record's decoded field strings
// (quotes stripped, escapes resolved), without null-sentinel translation.
func (r Record) Values() []string {
	cp := make([]string, len(r.fields))
	copy(cp, r.fields)
	return cp
}

// Get returns the decoded field at the given 0-based index. isNull is true
// when the field's raw source text exactly equals the configured
// null-string (§4.3 "Record field access"); value is returned unchanged
// either way. Out-of-range access returns ("", false, false).
func (r Record) Get(index int) (value string, isNull bool, ok bool) {
	if index < 0 || index >= len(r.fields) {
		return "", false, false
	}
	isNull = index < len(r.nulls) && r.nulls[index]
	return r.fields[index], isNull, true
}

// GetByName looks up a field by header column name, honoring case folding
// when the parser was built with ignoreHeaderCase. It returns a usage
// error if no header is mapped or the name is unknown.
func (r Record) GetByName(name string) (value string, isNull bool, err error) {
	idx, ok := r.indexOf(name)
	if !ok {
		return "", false, newUsageError("no such header column %q", name)
	}
	v, isNull, ok := r.Get(idx)
	if !ok {
		return "", false, newUsageError("record has no field at header column %q (index %d)", name, idx)
	}
	return v, isNull, nil
}

func (r Record) indexOf(name string) (int, bool) {
	if r.header == nil {
		return 0, false
	}
	key := name
	if r.headerCase {
		key = foldCase(name)
	}
	idx, ok := r.header[key]
	return idx, ok
}

// IsMapped reports whether name is a known header column, independent of
// whether this particular record has that many fields.
func (r Record) IsMapped(name string) bool {
	_, ok := r.indexOf(name)
	return ok
}

// IsSet reports whether name is a known header column and this record
// actually has a field at that position.
func (r Record) IsSet(name string) bool {
	idx, ok := r.indexOf(name)
	if !ok {
		return false
	}
	return idx >= 0 && idx < len(r.fields)
}

// IsConsistent reports whether the record's field count matches the
// header length (when a header is mapped; always true otherwise).
func (r Record) IsConsistent() bool {
	if r.header == nil {
		return true
	}
	return len(r.fields) == r.headerLen
}

func foldCase(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r >= 'A' && r <= 'Z' {
			r = r - 'A' + 'a'
		}
		out = append(out, r)
	}
	return string(out)
}
