package pyast

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// tabSize is the column width CPython uses to expand tabs in indentation.
const tabSize = 8

type tokenKind uint8

const (
	tokName tokenKind = iota
	tokNumber
	tokString
	tokOp
)

// token is a lexical token. Only the facts the statement parser needs are kept.
type token struct {
	kind tokenKind
	text string

	// line and endLine are 1-based; they differ for multi-line strings.
	line    int
	endLine int

	// depth is the bracket nesting depth outside this token.
	depth int
}

func (t token) is(kind tokenKind, text string) bool {
	return t.kind == kind && t.text == text
}

// logicalLine is one NEWLINE-terminated statement line after joining
// bracketed and backslash continuations.
type logicalLine struct {
	indent    int
	startLine int
	endLine   int
	tokens    []token
}

type bracket struct {
	char byte
	line int
}

type scanner struct {
	src  string
	pos  int
	line int

	atLineStart bool
	indent      int
	tokens      []token
	brackets    []bracket

	lines []logicalLine
}

// threeCharOps and twoCharOps are matched longest first.
//
//nolint:gochecknoglobals // Read-only lookup tables.
var (
	threeCharOps = []string{"**=", "//=", ">>=", "<<=", "..."}
	twoCharOps   = []string{
		"**", "//", ">>", "<<", "<=", ">=", "==", "!=", "->", ":=",
		"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "@=",
	}
	stringPrefixes = map[string]bool{
		"r": true, "u": true, "b": true, "f": true, "t": true,
		"br": true, "rb": true, "fr": true, "rf": true, "tr": true, "rt": true,
	}
)

// scanLogicalLines splits normalized source into logical lines.
func scanLogicalLines(src string) ([]logicalLine, error) {
	s := &scanner{src: src, line: 1, atLineStart: true}
	if err := s.run(); err != nil {
		return nil, err
	}
	return s.lines, nil
}

func (s *scanner) run() error {
	for {
		if s.atLineStart {
			indent, ok := s.readIndent()
			if !ok {
				if s.pos >= len(s.src) {
					break
				}
				continue
			}
			s.indent = indent
			s.atLineStart = false
		}

		if s.pos >= len(s.src) {
			break
		}

		char := s.src[s.pos]
		switch {
		case char == ' ' || char == '\t' || char == '\f':
			s.pos++
		case char == '#':
			s.skipComment()
		case char == '\\':
			if err := s.continuation(); err != nil {
				return err
			}
		case char == '\n':
			s.pos++
			if len(s.brackets) == 0 {
				s.endLogicalLine()
				s.atLineStart = true
			}
			s.line++
		default:
			if err := s.scanToken(); err != nil {
				return err
			}
		}
	}

	if len(s.brackets) > 0 {
		open := s.brackets[len(s.brackets)-1]
		return syntaxErrorf(open.line, "'%c' was never closed", open.char)
	}
	s.endLogicalLine()
	return nil
}

// readIndent measures the indentation of a physical line. It consumes blank
// and comment-only lines entirely and reports ok=false for them.
func (s *scanner) readIndent() (int, bool) {
	col := 0
measure:
	for s.pos < len(s.src) {
		switch s.src[s.pos] {
		case ' ':
			col++
		case '\t':
			col = (col/tabSize + 1) * tabSize
		case '\f':
			col = 0
		default:
			break measure
		}
		s.pos++
	}

	if s.pos >= len(s.src) {
		return 0, false
	}

	switch s.src[s.pos] {
	case '#':
		s.skipComment()
		if s.pos < len(s.src) {
			s.pos++
			s.line++
		}
		return 0, false
	case '\n':
		s.pos++
		s.line++
		return 0, false
	}
	return col, true
}

func (s *scanner) skipComment() {
	for s.pos < len(s.src) && s.src[s.pos] != '\n' {
		s.pos++
	}
}

func (s *scanner) continuation() error {
	if s.pos+1 >= len(s.src) {
		return syntaxErrorf(s.line, "unexpected EOF while parsing")
	}
	if s.src[s.pos+1] != '\n' {
		return syntaxErrorf(s.line, "unexpected character after line continuation character")
	}
	s.pos += 2
	s.line++
	if s.pos >= len(s.src) {
		return syntaxErrorf(s.line-1, "unexpected EOF while parsing")
	}
	return nil
}

func (s *scanner) endLogicalLine() {
	if len(s.tokens) == 0 {
		return
	}
	s.lines = append(s.lines, logicalLine{
		indent:    s.indent,
		startLine: s.tokens[0].line,
		endLine:   s.tokens[len(s.tokens)-1].endLine,
		tokens:    s.tokens,
	})
	s.tokens = nil
}

func (s *scanner) emit(kind tokenKind, text string, startLine int) {
	s.tokens = append(s.tokens, token{
		kind:    kind,
		text:    text,
		line:    startLine,
		endLine: s.line,
		depth:   len(s.brackets),
	})
}

func (s *scanner) scanToken() error {
	char := s.src[s.pos]

	switch {
	case char == '"' || char == '\'':
		return s.scanStringToken("")
	case isDigit(char) || (char == '.' && s.pos+1 < len(s.src) && isDigit(s.src[s.pos+1])):
		s.scanNumber()
		return nil
	case char == '(' || char == '[' || char == '{':
		s.emit(tokOp, string(char), s.line)
		s.brackets = append(s.brackets, bracket{char: char, line: s.line})
		s.pos++
		return nil
	case char == ')' || char == ']' || char == '}':
		return s.closeBracket(char)
	case char == '$' || char == '?' || char == '`':
		return syntaxErrorf(s.line, "invalid syntax")
	case char < utf8.RuneSelf && (char < ' ' || char == 0x7f):
		return syntaxErrorf(s.line, "invalid non-printable character U+%04X", char)
	}

	if r, size := utf8.DecodeRuneInString(s.src[s.pos:]); isIdentStart(r) {
		return s.scanName(size)
	} else if r >= utf8.RuneSelf {
		return syntaxErrorf(s.line, "invalid character '%c' (U+%04X)", r, r)
	}

	s.scanOperator()
	return nil
}

func (s *scanner) scanName(firstSize int) error {
	start := s.pos
	s.pos += firstSize
	for s.pos < len(s.src) {
		r, size := utf8.DecodeRuneInString(s.src[s.pos:])
		if !isIdentPart(r) {
			break
		}
		s.pos += size
	}

	name := s.src[start:s.pos]
	if s.pos < len(s.src) && (s.src[s.pos] == '"' || s.src[s.pos] == '\'') &&
		stringPrefixes[strings.ToLower(name)] {
		return s.scanStringToken(name)
	}

	s.emit(tokName, name, s.line)
	return nil
}

func (s *scanner) scanNumber() {
	start := s.pos
	hex := strings.HasPrefix(strings.ToLower(s.src[s.pos:min(s.pos+2, len(s.src))]), "0x")
	for s.pos < len(s.src) {
		char := s.src[s.pos]
		switch {
		case isDigit(char) || isASCIILetter(char) || char == '_' || char == '.':
			s.pos++
		case (char == '+' || char == '-') && !hex && s.pos > start &&
			(s.src[s.pos-1] == 'e' || s.src[s.pos-1] == 'E'):
			s.pos++
		default:
			s.emit(tokNumber, s.src[start:s.pos], s.line)
			return
		}
	}
	s.emit(tokNumber, s.src[start:s.pos], s.line)
}

func (s *scanner) closeBracket(char byte) error {
	if len(s.brackets) == 0 {
		return syntaxErrorf(s.line, "unmatched '%c'", char)
	}

	open := s.brackets[len(s.brackets)-1]
	if matchingBracket(open.char) != char {
		if open.line != s.line {
			return syntaxErrorf(s.line, "closing parenthesis '%c' does not match opening parenthesis '%c' on line %d",
				char, open.char, open.line)
		}
		return syntaxErrorf(s.line, "closing parenthesis '%c' does not match opening parenthesis '%c'",
			char, open.char)
	}

	s.brackets = s.brackets[:len(s.brackets)-1]
	s.emit(tokOp, string(char), s.line)
	s.pos++
	return nil
}

func (s *scanner) scanOperator() {
	rest := s.src[s.pos:]
	for _, ops := range [][]string{threeCharOps, twoCharOps} {
		for _, op := range ops {
			if strings.HasPrefix(rest, op) {
				s.emit(tokOp, op, s.line)
				s.pos += len(op)
				return
			}
		}
	}
	s.emit(tokOp, rest[:1], s.line)
	s.pos++
}

// scanStringToken scans a string literal starting at the opening quote and
// emits a single token spanning all of its lines.
func (s *scanner) scanStringToken(prefix string) error {
	startLine := s.line
	if err := s.scanString(prefix); err != nil {
		return err
	}
	s.emit(tokString, "", startLine)
	return nil
}

// replacementField tracks one open f-string replacement field.
type replacementField struct {
	// depth is the bracket nesting inside the field's expression.
	depth int

	// spec is set once the top-level ':' starts the format spec, whose text
	// is literal apart from nested fields.
	spec bool
}

// scanString consumes a string literal body. Formatted strings track
// replacement fields so nested literals may reuse the enclosing quote.
func (s *scanner) scanString(prefix string) error {
	quote := s.src[s.pos]
	startLine := s.line
	triple := s.pos+2 < len(s.src) && s.src[s.pos+1] == quote && s.src[s.pos+2] == quote
	lower := strings.ToLower(prefix)
	formatted := strings.ContainsAny(lower, "ft")

	if triple {
		s.pos += 3
	} else {
		s.pos++
	}

	var fields []replacementField
	for {
		if s.pos >= len(s.src) {
			if triple {
				return syntaxErrorf(startLine, "unterminated triple-quoted string literal (detected at line %d)", s.line)
			}
			return syntaxErrorf(startLine, "unterminated string literal (detected at line %d)", s.line)
		}

		var field *replacementField
		if len(fields) > 0 {
			field = &fields[len(fields)-1]
		}
		literal := field == nil || field.spec

		char := s.src[s.pos]
		switch {
		case char == '\\' && formatted && literal && s.pos+1 < len(s.src) &&
			(s.src[s.pos+1] == '{' || s.src[s.pos+1] == '}'):
			// A backslash does not escape braces; they are examined on their own.
			s.pos++
		case char == '\\':
			if s.pos+1 < len(s.src) && s.src[s.pos+1] == '\n' {
				s.line++
			}
			s.pos += 2
		case char == '\n':
			if !triple && field == nil {
				return syntaxErrorf(startLine, "unterminated string literal (detected at line %d)", startLine)
			}
			s.line++
			s.pos++
		case field != nil && !field.spec:
			if err := s.scanFieldExpr(field, &fields); err != nil {
				return err
			}
		case formatted && char == '{':
			if field == nil && s.pos+1 < len(s.src) && s.src[s.pos+1] == '{' {
				s.pos += 2
				continue
			}
			fields = append(fields, replacementField{})
			s.pos++
		case formatted && char == '}':
			switch {
			case field != nil:
				fields = fields[:len(fields)-1]
			case s.pos+1 < len(s.src) && s.src[s.pos+1] == '}':
				s.pos++
			}
			s.pos++
		case char == quote:
			if !triple {
				s.pos++
				return nil
			}
			if strings.HasPrefix(s.src[s.pos:], strings.Repeat(string(quote), 3)) {
				s.pos += 3
				return nil
			}
			s.pos++
		default:
			s.pos++
		}
	}
}

// scanFieldExpr consumes one element of a replacement field's expression.
func (s *scanner) scanFieldExpr(field *replacementField, fields *[]replacementField) error {
	switch s.src[s.pos] {
	case '(', '[', '{':
		field.depth++
	case ')', ']':
		if field.depth > 0 {
			field.depth--
		}
	case '}':
		if field.depth > 0 {
			field.depth--
		} else {
			*fields = (*fields)[:len(*fields)-1]
		}
	case ':':
		if field.depth == 0 {
			field.spec = true
		}
	default:
		return s.scanFieldChar()
	}
	s.pos++
	return nil
}

// scanFieldChar consumes one element of an f-string replacement field.
func (s *scanner) scanFieldChar() error {
	char := s.src[s.pos]
	if char == '"' || char == '\'' {
		return s.scanString("")
	}

	r, size := utf8.DecodeRuneInString(s.src[s.pos:])
	if !isIdentStart(r) {
		s.pos++
		return nil
	}

	start := s.pos
	s.pos += size
	for s.pos < len(s.src) {
		r, size = utf8.DecodeRuneInString(s.src[s.pos:])
		if !isIdentPart(r) {
			break
		}
		s.pos += size
	}
	name := s.src[start:s.pos]
	if s.pos < len(s.src) && (s.src[s.pos] == '"' || s.src[s.pos] == '\'') &&
		stringPrefixes[strings.ToLower(name)] {
		return s.scanString(name)
	}
	return nil
}

func matchingBracket(open byte) byte {
	switch open {
	case '(':
		return ')'
	case '[':
		return ']'
	default:
		return '}'
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.Is(unicode.Nl, r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r) ||
		unicode.Is(unicode.Mc, r) || unicode.Is(unicode.Pc, r)
}
