package model

// Token is a lexeme of a source line. Line is the zero-based index of the
// line it came from, counted after generated blocks were stripped.
type Token struct {
	Text string
	Line int
}
