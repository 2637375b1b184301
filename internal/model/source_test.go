package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocument_Bytes(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
		want string
	}{
		{"lf with trailing newline", Document{Lines: []string{"a", "b"}, Ending: LF, TrailingNewline: true}, "a\nb\n"},
		{"crlf without trailing newline", Document{Lines: []string{"a", "b"}, Ending: CRLF}, "a\r\nb"},
		{"default ending", Document{Lines: []string{"a", ""}, TrailingNewline: true}, "a\n\n"},
		{"empty", Document{}, ""},
		{
			"mixed endings",
			Document{Lines: []string{"a", "b", "c"}, Endings: []LineEnding{CRLF, LF, CRLF}, Ending: CRLF, TrailingNewline: true},
			"a\r\nb\nc\r\n",
		},
		{
			"short endings fall back",
			Document{Lines: []string{"a", "b", "c"}, Endings: []LineEnding{LF}, Ending: CRLF, TrailingNewline: true},
			"a\nb\r\nc\r\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, string(tt.doc.Bytes()))
		})
	}
}

func TestDocument_EndingAt(t *testing.T) {
	doc := Document{Lines: []string{"a", "b"}, Endings: []LineEnding{LF, ""}, Ending: CRLF}

	assert.Equal(t, LF, doc.EndingAt(0))
	assert.Equal(t, CRLF, doc.EndingAt(1))
	assert.Equal(t, CRLF, doc.EndingAt(-1))
	assert.Equal(t, CRLF, doc.EndingAt(5))
	assert.Equal(t, LF, Document{}.EndingAt(0))
}

func TestDocument_WithLines(t *testing.T) {
	doc := Document{Lines: []string{"a"}, Endings: []LineEnding{CRLF}, Ending: CRLF, TrailingNewline: true}

	got := doc.WithLines([]string{"x", "y"}, nil)

	assert.Equal(t, []string{"x", "y"}, got.Lines)
	assert.Nil(t, got.Endings)
	assert.Equal(t, "x\r\ny\r\n", string(got.Bytes()))
	assert.Equal(t, []string{"a"}, doc.Lines)
}
