package syntax

import (
	"fmt"
	"strconv"
	"strings"
)

// Pos represents a position in a source file.
// The zero value (NoPos) means the node has no location.
type Pos struct {
	filename string // source file name
	line     uint32 // 1-based line number
	col      uint32 // 1-based column number
}

// NoPos is the missing position.
var NoPos Pos

// NewPos creates a new Pos with the given filename, line, and column.
// Line and column numbers are 1-based.
func NewPos(filename string, line, col uint32) Pos {
	return Pos{filename: filename, line: line, col: col}
}

// String returns "filename:line:col", "line:col" if the filename is
// empty, or "-" for NoPos.
func (p Pos) String() string {
	if !p.IsValid() {
		return "-"
	}
	if p.filename != "" {
		return fmt.Sprintf("%s:%d:%d", p.filename, p.line, p.col)
	}
	return fmt.Sprintf("%d:%d", p.line, p.col)
}

// IsValid reports whether the position is known.
func (p Pos) IsValid() bool {
	return p.line > 0
}

// Line returns the 1-based line number.
func (p Pos) Line() uint32 {
	return p.line
}

// Col returns the 1-based column number.
func (p Pos) Col() uint32 {
	return p.col
}

// Filename returns the source file name.
func (p Pos) Filename() string {
	return p.filename
}

// Before reports whether p comes strictly before q in the same file.
func (p Pos) Before(q Pos) bool {
	if p.line != q.line {
		return p.line < q.line
	}
	return p.col < q.col
}

// ParsePos parses the output of Pos.String.
func ParsePos(s string) (Pos, error) {
	if s == "" || s == "-" {
		return NoPos, nil
	}
	i := strings.LastIndexByte(s, ':')
	if i < 0 {
		return NoPos, fmt.Errorf("invalid position %q", s)
	}
	col, err := strconv.ParseUint(s[i+1:], 10, 32)
	if err != nil {
		return NoPos, fmt.Errorf("invalid position %q", s)
	}
	rest := s[:i]
	file := ""
	// Filenames may contain colons; the line is the last field before col.
	if j := strings.LastIndexByte(rest, ':'); j >= 0 {
		file, rest = rest[:j], rest[j+1:]
	}
	line, err := strconv.ParseUint(rest, 10, 32)
	if err != nil {
		return NoPos, fmt.Errorf("invalid position %q", s)
	}
	return NewPos(file, uint32(line), uint32(col)), nil
}
