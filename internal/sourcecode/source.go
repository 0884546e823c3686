package sourcecode

import (
	"fmt"
	"io"
	"sync"
)

// A File is a named piece of Python source text. Position helpers are
// 1-based for lines and 0-based for columns, matching the token and node
// positions produced by the parser.
type File struct {
	FileName string
	Code     string

	runesLock sync.Mutex
	runes     []rune
}

func NewFile(name, code string) *File {
	return &File{
		FileName: name,
		Code:     code,
	}
}

func (f *File) Name() string {
	return f.FileName
}

// Runes returns the source decoded to runes; the result must not be
// modified.
func (f *File) Runes() []rune {
	f.runesLock.Lock()
	defer f.runesLock.Unlock()

	if f.Code != "" && len(f.runes) == 0 {
		f.runes = []rune(f.Code)
	}
	return f.runes
}

type PositionRange struct {
	SourceName  string `json:"sourceName"`
	StartLine   int32  `json:"line"`
	StartColumn int32  `json:"column"`
	EndLine     int32  `json:"endLine"`
	EndColumn   int32  `json:"endColumn"`
}

func (r PositionRange) String() string {
	return fmt.Sprintf("%s:%d:%d", r.SourceName, r.StartLine, r.StartColumn)
}

func (f *File) FormatLocation(w io.Writer, line, column int32) (int, error) {
	return fmt.Fprintf(w, "%s:%d:%d:", f.Name(), line, column)
}

// OffsetOf converts a (line, column) position to a rune offset.
func (f *File) OffsetOf(line, column int32) int32 {
	runes := f.Runes()
	length := int32(len(runes))

	i := int32(0)
	line--
	for i < length && line > 0 {
		if runes[i] == '\n' {
			line--
		}
		i++
	}
	return i + column
}

// LineColumnOf converts a rune offset to a (line, column) position.
func (f *File) LineColumnOf(offset int32) (int32, int32) {
	runes := f.Runes()

	line := int32(1)
	col := int32(0)
	for i := int32(0); i < offset && i < int32(len(runes)); i++ {
		if runes[i] == '\n' {
			line++
			col = 0
		} else {
			col++
		}
	}
	return line, col
}

// LineCut splits the line containing the given rune offset at that offset.
// Diagnostics use it to print the offending line with a caret.
func (f *File) LineCut(offset int32) (before string, after string) {
	runes := f.Runes()
	length := int32(len(runes))

	if offset > length {
		offset = length
	}

	i := offset
	for i > 0 && runes[i-1] != '\n' {
		i--
	}
	before = string(runes[i:offset])

	i = offset
	for i < length && runes[i] != '\n' {
		i++
	}
	after = string(runes[offset:i])

	return before, after
}
