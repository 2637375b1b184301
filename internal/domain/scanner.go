package domain

import (
	"errors"
	"fmt"

	m "meowcode.dev/pkg/meowcode/internal/model"
)

const (
	keywordUsing  = "using"
	keywordClass  = "class"
	keywordStruct = "struct"
	keywordWhere  = "where"
	keywordVoid   = "void"
	keywordStatic = "static"

	releaseMethodName   = "Dispose"
	manualReleaseMarker = "IDisposable"
)

var visibilityQualifiers = map[string]struct{}{
	"public":    {},
	"protected": {},
	"private":   {},
	"internal":  {},
}

// ErrMalformed is wrapped by every StructureError.
var ErrMalformed = errors.New("malformed structure")

// StructureError reports a type declaration the scanner could not follow.
// Line is zero-based.
type StructureError struct {
	Type   string
	Line   int
	Token  string
	Reason string
}

func (e *StructureError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("%s: %s at line %d (end of file)", e.Type, e.Reason, e.Line+1)
	}

	return fmt.Sprintf("%s: %s at line %d, got %q", e.Type, e.Reason, e.Line+1, e.Token)
}

// Unwrap lets errors.Is match ErrMalformed.
func (e *StructureError) Unwrap() error {
	return ErrMalformed
}

type cursor struct {
	tokens []m.Token
	pos    int
}

func (c *cursor) done() bool {
	return c.pos >= len(c.tokens)
}

func (c *cursor) text() string {
	if c.done() {
		return ""
	}

	return c.tokens[c.pos].Text
}

func (c *cursor) line() int {
	switch {
	case len(c.tokens) == 0:
		return 0
	case c.done():
		return c.tokens[len(c.tokens)-1].Line
	default:
		return c.tokens[c.pos].Line
	}
}

func (c *cursor) peek() string {
	if c.pos+1 >= len(c.tokens) {
		return ""
	}

	return c.tokens[c.pos+1].Text
}

func (c *cursor) prev() string {
	if c.pos == 0 || c.pos > len(c.tokens) {
		return ""
	}

	return c.tokens[c.pos-1].Text
}

func (c *cursor) next() bool {
	if !c.done() {
		c.pos++
	}

	return !c.done()
}

type scanner struct {
	cur      cursor
	registry m.Registry
	result   m.ScanResult
}

// Scan walks tokens looking for the first type declaration and, when that
// type is registered, records its constructors and release method.
// A file that is not a target yields a result with Target unset; only
// malformed declarations return an error.
func Scan(tokens []m.Token, registry m.Registry) (m.ScanResult, error) {
	s := &scanner{
		cur:      cursor{tokens: tokens},
		registry: registry,
	}

	for !s.cur.done() {
		switch s.cur.text() {
		case keywordUsing:
			s.skipPast(";")
		case keywordClass, keywordStruct:
			return s.scanType()
		default:
			s.cur.next()
		}
	}

	return m.ScanResult{Skip: m.SkipNoType}, nil
}

func (s *scanner) scanType() (m.ScanResult, error) {
	s.result.Kind = m.TypeKind(s.cur.text())

	if !s.cur.next() {
		return m.ScanResult{}, s.malformed("expected type name")
	}

	s.result.TypeName = s.cur.text()

	if _, ok := s.registry.Lookup(s.result.TypeName); !ok {
		s.result.Skip = m.SkipNotRegistered
		return s.result, nil
	}

	s.cur.next()

	if s.cur.text() == "<" {
		if err := s.skipGenericList(); err != nil {
			return m.ScanResult{}, err
		}
	}

	if s.cur.text() == ":" {
		manual, err := s.scanBaseList()
		if err != nil {
			return m.ScanResult{}, err
		}

		if manual {
			s.result.Skip = m.SkipManualRelease
			return s.result, nil
		}
	}

	if err := s.scanConstraints(); err != nil {
		return m.ScanResult{}, err
	}

	if s.cur.text() != "{" {
		return m.ScanResult{}, s.malformed("expected type body")
	}

	if err := s.scanBody(); err != nil {
		return m.ScanResult{}, err
	}

	if !s.result.HasReleaseMethod {
		s.result.Skip = m.SkipNoReleaseMethod
		return s.result, nil
	}

	s.result.Target = true

	return s.result, nil
}

// scanBaseList reports whether the base list names the manual release
// contract. The cursor starts on ':' and ends after the last base.
func (s *scanner) scanBaseList() (bool, error) {
	for {
		if !s.cur.next() {
			return false, s.malformed("expected base type name")
		}

		if s.qualifiedName() == manualReleaseMarker {
			return true, nil
		}

		if s.cur.text() == "<" {
			if err := s.skipGenericList(); err != nil {
				return false, err
			}
		}

		if s.cur.text() != "," {
			return false, nil
		}
	}
}

// scanConstraints consumes "where T : bound, bound" clauses.
func (s *scanner) scanConstraints() error {
	for s.cur.text() == keywordWhere {
		s.cur.next()
		param := s.cur.text()
		s.cur.next()

		if s.cur.text() != ":" {
			return s.malformed(fmt.Sprintf("expected ':' after where %s", param))
		}

		for {
			if !s.cur.next() {
				return s.malformed("expected constraint bound")
			}

			s.qualifiedName()

			if s.cur.text() == "<" {
				if err := s.skipGenericList(); err != nil {
					return err
				}
			}

			if s.cur.text() == "(" {
				s.skipPast(")")
			}

			if s.cur.text() != "," {
				break
			}
		}
	}

	return nil
}

// scanBody walks the members of the type. The cursor starts on the body
// opener and ends after its closer.
func (s *scanner) scanBody() error {
	s.cur.next()

	for s.cur.text() != "}" {
		if s.cur.done() {
			return s.malformed("unterminated type body")
		}

		text := s.cur.text()

		switch {
		case isVisibility(text):
			s.cur.next()
		case text == keywordVoid:
			s.cur.next()

			if s.isReleaseSignature() {
				if err := s.scanReleaseMethod(); err != nil {
					return err
				}
			}
		case text == s.result.TypeName && s.cur.peek() == "(" && s.cur.prev() != keywordStatic:
			if err := s.scanConstructor(); err != nil {
				return err
			}
		case text == "{":
			if err := s.skipBlock(); err != nil {
				return err
			}

			s.cur.next()
		default:
			s.cur.next()
		}
	}

	s.cur.next()

	return nil
}

func isVisibility(text string) bool {
	_, ok := visibilityQualifiers[text]
	return ok
}

// isReleaseSignature matches the parameterless release method so that a
// user written Dispose(bool) overload is treated as an ordinary method.
func (s *scanner) isReleaseSignature() bool {
	if s.cur.text() != releaseMethodName || s.cur.peek() != "(" {
		return false
	}

	if s.cur.pos+2 >= len(s.cur.tokens) {
		return false
	}

	return s.cur.tokens[s.cur.pos+2].Text == ")" && !s.result.HasReleaseMethod
}

func (s *scanner) scanReleaseMethod() error {
	if !s.seekBodyOpener() {
		return s.malformed("expected release method body")
	}

	start := s.cur.line()

	if err := s.skipBlock(); err != nil {
		return err
	}

	end := s.cur.line()
	if end == start {
		return s.malformed("release method body must not close on the line it opens")
	}

	s.result.HasReleaseMethod = true
	s.result.ReleaseMethodStart = start
	s.result.ReleaseMethodEnd = end

	s.cur.next()

	return nil
}

func (s *scanner) scanConstructor() error {
	// Expression bodied constructors have nothing to anchor on.
	if !s.seekBodyOpener() {
		s.cur.next()
		return nil
	}

	line := s.cur.line()

	if err := s.skipBlock(); err != nil {
		return err
	}

	if s.cur.line() == line {
		return s.malformed("constructor body must not close on the line it opens")
	}

	s.result.ConstructorLines = append(s.result.ConstructorLines, line)
	s.cur.next()

	return nil
}

// seekBodyOpener advances to the next '{' of the current member. It stops on
// ';' and reports false when the member has no block body.
func (s *scanner) seekBodyOpener() bool {
	for !s.cur.done() {
		switch s.cur.text() {
		case "{":
			return true
		case ";":
			return false
		}

		s.cur.next()
	}

	return false
}

// skipBlock moves from an opening brace to its matching closing brace.
func (s *scanner) skipBlock() error {
	for s.cur.next() {
		switch s.cur.text() {
		case "}":
			return nil
		case "{":
			if err := s.skipBlock(); err != nil {
				return err
			}
		}
	}

	return s.malformed("unterminated block")
}

// skipGenericList moves from '<' past its matching '>'.
func (s *scanner) skipGenericList() error {
	depth := 0

	for !s.cur.done() {
		switch s.cur.text() {
		case "<":
			depth++
		case ">":
			depth--
			if depth == 0 {
				s.cur.next()
				return nil
			}
		}

		s.cur.next()
	}

	return s.malformed("unterminated generic parameter list")
}

// qualifiedName consumes a dotted name and returns its last segment.
func (s *scanner) qualifiedName() string {
	last := s.cur.text()
	s.cur.next()

	for s.cur.text() == "." {
		s.cur.next()
		last = s.cur.text()
		s.cur.next()
	}

	return last
}

// skipPast advances past the next occurrence of text.
func (s *scanner) skipPast(text string) {
	for !s.cur.done() {
		found := s.cur.text() == text
		s.cur.next()

		if found {
			return
		}
	}
}

func (s *scanner) malformed(reason string) error {
	return &StructureError{
		Type:   s.result.TypeName,
		Line:   s.cur.line(),
		Token:  s.cur.text(),
		Reason: reason,
	}
}
