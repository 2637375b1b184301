// Package model defines the data structures shared by the code generator.
package model

// Path represents a file system path.
type Path string

// File represents a discovered source file.
type File struct {
	FullPath  Path
	ShortPath Path
}

// LineEnding is the newline convention of a source file.
type LineEnding string

const (
	// LF is the Unix newline convention.
	LF LineEnding = "\n"
	// CRLF is the Windows newline convention.
	CRLF LineEnding = "\r\n"
)

// Document is the line view of a source file. Lines never carry their
// terminator. Endings holds the terminator that follows each line, so files
// mixing conventions are reproduced byte for byte; Ending is the convention
// of the first line break and the fallback for lines without an entry.
type Document struct {
	Lines           []string
	Endings         []LineEnding
	Ending          LineEnding
	TrailingNewline bool
}

// EndingAt returns the terminator written after line i.
func (d Document) EndingAt(i int) LineEnding {
	if i >= 0 && i < len(d.Endings) && d.Endings[i] != "" {
		return d.Endings[i]
	}

	if d.Ending == "" {
		return LF
	}

	return d.Ending
}

// Bytes joins the document back into file content.
func (d Document) Bytes() []byte {
	size := 0
	for _, line := range d.Lines {
		size += len(line) + len(CRLF)
	}

	out := make([]byte, 0, size)

	for i, line := range d.Lines {
		out = append(out, line...)
		if i < len(d.Lines)-1 || d.TrailingNewline {
			out = append(out, d.EndingAt(i)...)
		}
	}

	return out
}

// WithLines returns a copy of d carrying lines and their terminators. A nil
// endings falls back to d's convention for every line.
func (d Document) WithLines(lines []string, endings []LineEnding) Document {
	return Document{
		Lines:           lines,
		Endings:         endings,
		Ending:          d.Ending,
		TrailingNewline: d.TrailingNewline,
	}
}
