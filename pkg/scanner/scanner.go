// Package scanner implements a cursor based reader over Java source text.
//
// The scanner never copies: every token it returns is a substring of the
// input, so parse results can hold on to source text without allocating.
package scanner

import (
	"strings"

	"github.com/siyuan-infoblox/java-imports-group/pkg/errors"
	"github.com/siyuan-infoblox/java-imports-group/pkg/grammar"
)

// Scanner reads an immutable source string with a single cursor that only
// moves forward.
type Scanner struct {
	source string
	cursor int
}

// New creates a Scanner positioned at the start of source
func New(source string) *Scanner {
	return &Scanner{source: source}
}

// IsIdentChar reports whether ch may appear inside an identifier
func IsIdentChar(ch byte) bool {
	return ch == '_' || IsIdentStart(ch) || isDigit(ch)
}

// IsIdentStart reports whether ch may start an identifier
func IsIdentStart(ch byte) bool {
	return ch == '_' || ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z')
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isWhitespace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\f'
}

// Source returns the whole input
func (s *Scanner) Source() string {
	return s.source
}

// Cursor returns the current byte offset
func (s *Scanner) Cursor() int {
	return s.cursor
}

// Finished reports whether the cursor reached the end of the input
func (s *Scanner) Finished() bool {
	return s.cursor >= len(s.source)
}

// Peek returns the byte under the cursor, or 0 at the end of the input
func (s *Scanner) Peek() byte {
	if s.Finished() {
		return 0
	}
	return s.source[s.cursor]
}

// SkipWhitespace advances past blanks, line comments and block comments.
// A line comment always ends at the next newline.
func (s *Scanner) SkipWhitespace() {
	inComment := false
	for !s.Finished() {
		ch := s.source[s.cursor]
		switch {
		case ch == '\n':
			inComment = false
			s.cursor++
		case inComment:
			s.cursor++
		case s.Check("//"):
			inComment = true
			s.cursor += 2
		case s.Check("/*"):
			s.skipBlockComment()
		case isWhitespace(ch):
			s.cursor++
		default:
			return
		}
	}
}

// SkipBlanks advances past spaces, tabs and newlines but stops at comments
func (s *Scanner) SkipBlanks() {
	for !s.Finished() && (isWhitespace(s.source[s.cursor]) || s.source[s.cursor] == '\n') {
		s.cursor++
	}
}

func (s *Scanner) skipBlockComment() {
	end := strings.Index(s.source[s.cursor+2:], "*/")
	if end < 0 {
		s.cursor = len(s.source)
		return
	}
	s.cursor += 2 + end + 2
}

// Check reports whether the input at the cursor starts with next. It never
// consumes.
func (s *Scanner) Check(next string) bool {
	return strings.HasPrefix(s.source[s.cursor:], next)
}

// CheckMatching returns the longest run of bytes at the cursor satisfying
// match, or "" when the run is empty. It never consumes.
func (s *Scanner) CheckMatching(match func(byte) bool) string {
	end := s.cursor
	for end < len(s.source) && match(s.source[end]) {
		end++
	}
	return s.source[s.cursor:end]
}

// CheckIdent returns the identifier at the cursor, or ""
func (s *Scanner) CheckIdent() string {
	ident := s.CheckMatching(IsIdentChar)
	if ident == "" || !IsIdentStart(ident[0]) {
		return ""
	}
	return ident
}

// CheckKeyword reports whether keyword is at the cursor and is not just the
// prefix of a longer identifier.
func (s *Scanner) CheckKeyword(keyword string) bool {
	end := s.cursor + len(keyword)
	return s.Check(keyword) && (end == len(s.source) || !IsIdentChar(s.source[end]))
}

// Skip consumes next and any whitespace after it
func (s *Scanner) Skip(next string) bool {
	if !s.SkipOnly(next) {
		return false
	}
	s.SkipWhitespace()
	return true
}

// SkipOnly consumes next but leaves the whitespace after it alone
func (s *Scanner) SkipOnly(next string) bool {
	if !s.Check(next) {
		return false
	}
	s.cursor += len(next)
	return true
}

// SkipMatching consumes the run CheckMatching would return, plus whitespace
func (s *Scanner) SkipMatching(match func(byte) bool) string {
	run := s.CheckMatching(match)
	if run != "" {
		s.cursor += len(run)
		s.SkipWhitespace()
	}
	return run
}

// SkipIdent consumes an identifier and the whitespace after it
func (s *Scanner) SkipIdent() string {
	ident := s.CheckIdent()
	if ident != "" {
		s.cursor += len(ident)
		s.SkipWhitespace()
	}
	return ident
}

// SkipKeyword consumes keyword and the whitespace after it
func (s *Scanner) SkipKeyword(keyword string) bool {
	if !s.CheckKeyword(keyword) {
		return false
	}
	s.cursor += len(keyword)
	s.SkipWhitespace()
	return true
}

// Expect is Skip that fails with a SyntaxError
func (s *Scanner) Expect(next string) error {
	if !s.Skip(next) {
		return s.Fail(next)
	}
	return nil
}

// ExpectOnly is SkipOnly that fails with a SyntaxError
func (s *Scanner) ExpectOnly(next string) error {
	if !s.SkipOnly(next) {
		return s.Fail(next)
	}
	return nil
}

// ExpectKeyword is SkipKeyword that fails with a SyntaxError
func (s *Scanner) ExpectKeyword(keyword string) error {
	if !s.SkipKeyword(keyword) {
		return s.Fail(keyword)
	}
	return nil
}

// ExpectIdent is SkipIdent that fails with a SyntaxError
func (s *Scanner) ExpectIdent() (string, error) {
	ident := s.SkipIdent()
	if ident == "" {
		return "", s.Fail("identifier")
	}
	return ident, nil
}

// Fail builds a SyntaxError at the cursor describing what was expected and
// what was found instead.
func (s *Scanner) Fail(expected string) error {
	line, column := s.Position(s.cursor)
	return &errors.SyntaxError{
		Offset:   s.cursor,
		Line:     line,
		Column:   column,
		Expected: expected,
		Found:    s.found(),
	}
}

func (s *Scanner) found() string {
	if s.Finished() {
		return errors.EndOfInput
	}
	if ident := s.CheckMatching(IsIdentChar); ident != "" {
		return ident
	}
	return s.source[s.cursor : s.cursor+1]
}

// Position converts a byte offset into a 1-based line and column
func (s *Scanner) Position(offset int) (line, column int) {
	if offset > len(s.source) {
		offset = len(s.source)
	}
	prefix := s.source[:offset]
	line = strings.Count(prefix, "\n") + 1
	column = offset - strings.LastIndexByte(prefix, '\n')
	return line, column
}

// SkipAround consumes a balanced region starting with opener and ending
// with closer, whitespace after the closer included.
func (s *Scanner) SkipAround(opener, closer byte, soup *grammar.SymbolSoup) error {
	if err := s.Expect(string(opener)); err != nil {
		return err
	}
	if err := s.SkipInside(opener, closer, soup); err != nil {
		return err
	}
	return s.Expect(string(closer))
}

// SkipInside advances to the closer that balances an opener already
// consumed. The closer itself is left under the cursor. Identifiers met on
// the way are added to soup when it is not nil; literals and comments are
// skipped whole.
func (s *Scanner) SkipInside(opener, closer byte, soup *grammar.SymbolSoup) error {
	nesting := 1
	for !s.Finished() {
		switch ch := s.source[s.cursor]; ch {
		case opener:
			nesting++
			s.cursor++
		case closer:
			nesting--
			if nesting == 0 {
				return nil
			}
			s.cursor++
		default:
			s.skipOpaque(soup)
		}
	}
	return s.Fail(string(closer))
}

// SkipUntil advances to the first byte from stops found outside of any
// (), [] or {} nesting and leaves it under the cursor. An unbalanced closing
// bracket also ends the scan.
func (s *Scanner) SkipUntil(stops string, soup *grammar.SymbolSoup) error {
	depth := 0
	for !s.Finished() {
		ch := s.source[s.cursor]
		if depth == 0 && strings.IndexByte(stops, ch) >= 0 {
			return nil
		}
		switch ch {
		case '(', '[', '{':
			depth++
			s.cursor++
		case ')', ']', '}':
			if depth == 0 {
				return nil
			}
			depth--
			s.cursor++
		default:
			s.skipOpaque(soup)
		}
	}
	return s.Fail(stops[:1])
}

// skipOpaque consumes one token of an unmodeled region
func (s *Scanner) skipOpaque(soup *grammar.SymbolSoup) {
	ch := s.source[s.cursor]
	switch {
	case s.Check("//"):
		end := strings.IndexByte(s.source[s.cursor:], '\n')
		if end < 0 {
			s.cursor = len(s.source)
		} else {
			s.cursor += end
		}
	case s.Check("/*"):
		s.skipBlockComment()
	case s.Check(`"""`):
		s.skipTextBlock()
	case ch == '"' || ch == '\'':
		s.skipQuoted(ch)
	case IsIdentStart(ch):
		ident := s.CheckMatching(IsIdentChar)
		if soup != nil {
			soup.Add(ident)
		}
		s.cursor += len(ident)
	case isDigit(ch):
		s.cursor += len(s.CheckMatching(IsIdentChar))
	default:
		s.cursor++
	}
}

func (s *Scanner) skipQuoted(quote byte) {
	s.cursor++
	for !s.Finished() {
		switch s.source[s.cursor] {
		case '\\':
			s.cursor += 2
		case quote:
			s.cursor++
			return
		case '\n':
			return
		default:
			s.cursor++
		}
	}
	if s.cursor > len(s.source) {
		s.cursor = len(s.source)
	}
}

func (s *Scanner) skipTextBlock() {
	s.cursor += 3
	for !s.Finished() {
		if s.source[s.cursor] == '\\' {
			s.cursor += 2
			continue
		}
		if s.SkipOnly(`"""`) {
			return
		}
		s.cursor++
	}
	if s.cursor > len(s.source) {
		s.cursor = len(s.source)
	}
}
