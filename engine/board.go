package engine

import (
	"fmt"
	"strings"
)

const (
	BoardSize = 4
	NumCells  = BoardSize * BoardSize
	NumLines  = 2*BoardSize + 2
)

// Cell is a board coordinate packed as row*4 + col.
type Cell uint8

// NoCell represents the absence of a cell.
const NoCell Cell = 0xFF

// NewCell constructs a Cell from row and column (both 0..3).
func NewCell(row, col int) Cell { return Cell(row*BoardSize + col) }

func (c Cell) Row() int    { return int(c) / BoardSize }
func (c Cell) Col() int    { return int(c) % BoardSize }
func (c Cell) Valid() bool { return c < NumCells }

// String returns the column-letter/row-number form: NewCell(0, 0) is "A1",
// NewCell(3, 3) is "D4".
func (c Cell) String() string {
	if !c.Valid() {
		return "--"
	}
	return fmt.Sprintf("%c%d", 'A'+c.Col(), c.Row()+1)
}

// ParseCell parses "A1".."D4" (case-insensitive).
func ParseCell(s string) (Cell, error) {
	in := strings.ToUpper(strings.TrimSpace(s))
	if len(in) != 2 {
		return NoCell, fmt.Errorf("%w: %q", ErrInvalidCell, s)
	}
	col := int(in[0]) - 'A'
	row := int(in[1]) - '1'
	if col < 0 || col >= BoardSize || row < 0 || row >= BoardSize {
		return NoCell, fmt.Errorf("%w: %q out of range A1-D4", ErrInvalidCell, s)
	}
	return NewCell(row, col), nil
}

// Line is one of the 10 winning sequences of four cells.
type Line [BoardSize]Cell

// lines holds rows 0..3, columns 0..3, the main diagonal and the
// anti-diagonal, in that order.
var lines = buildLines()

// linesThrough[c] lists the indices into lines that contain cell c.
var linesThrough = buildLinesThrough()

func buildLines() [NumLines]Line {
	var out [NumLines]Line
	n := 0
	for r := 0; r < BoardSize; r++ {
		for c := 0; c < BoardSize; c++ {
			out[n][c] = NewCell(r, c)
		}
		n++
	}
	for c := 0; c < BoardSize; c++ {
		for r := 0; r < BoardSize; r++ {
			out[n][r] = NewCell(r, c)
		}
		n++
	}
	for i := 0; i < BoardSize; i++ {
		out[n][i] = NewCell(i, i)
		out[n+1][i] = NewCell(i, BoardSize-1-i)
	}
	return out
}

func buildLinesThrough() [NumCells][]uint8 {
	var out [NumCells][]uint8
	for li, l := range lines {
		for _, c := range l {
			out[c] = append(out[c], uint8(li))
		}
	}
	return out
}

// Lines returns the fixed set of 10 lines. Every call returns the same
// values in the same order.
func Lines() [NumLines]Line { return lines }

// LinesThrough returns the row, the column and any diagonal containing c.
func LinesThrough(c Cell) []Line {
	if !c.Valid() {
		return nil
	}
	idx := linesThrough[c]
	out := make([]Line, len(idx))
	for i, li := range idx {
		out[i] = lines[li]
	}
	return out
}

// Board is the 4×4 grid of placed tokens. The zero value is not an empty
// board; use NewBoard.
type Board struct {
	Cells [NumCells]Token
}

// NewBoard returns a board with every cell empty.
func NewBoard() Board {
	var b Board
	for i := range b.Cells {
		b.Cells[i] = NoToken
	}
	return b
}

// Lines returns the board's line set.
func (b *Board) Lines() [NumLines]Line { return lines }

// Get returns the token at c, or NoToken when empty.
func (b *Board) Get(c Cell) Token {
	if !c.Valid() {
		return NoToken
	}
	return b.Cells[c]
}

// IsEmpty reports whether c holds no token.
func (b *Board) IsEmpty(c Cell) bool { return c.Valid() && b.Cells[c] == NoToken }

// Place stores t at c. A cell that already holds a token is never changed.
func (b *Board) Place(c Cell, t Token) error {
	if !c.Valid() {
		return fmt.Errorf("%w: cell %d out of range", ErrInvalidPlacement, c)
	}
	if !t.Valid() {
		return fmt.Errorf("%w: token %d out of range", ErrInvalidPlacement, t)
	}
	if b.Cells[c] != NoToken {
		return fmt.Errorf("%w: %s holds %s", ErrCellOccupied, c, b.Cells[c])
	}
	b.Cells[c] = t
	return nil
}

// IsFull reports whether all four cells of l are occupied.
func (b *Board) IsFull(l Line) bool {
	for _, c := range l {
		if b.Cells[c] == NoToken {
			return false
		}
	}
	return true
}

// Placed returns the number of occupied cells.
func (b *Board) Placed() int {
	n := 0
	for _, t := range b.Cells {
		if t != NoToken {
			n++
		}
	}
	return n
}

// EmptyCells returns the unoccupied cells in index order.
func (b *Board) EmptyCells() []Cell {
	out := make([]Cell, 0, NumCells)
	for i, t := range b.Cells {
		if t == NoToken {
			out = append(out, Cell(i))
		}
	}
	return out
}

// OnBoard returns the set of placed tokens.
func (b *Board) OnBoard() Pool {
	var p Pool
	for _, t := range b.Cells {
		if t != NoToken {
			p = p.With(t)
		}
	}
	return p
}

// Snapshot returns the grid indexed [row][col].
func (b *Board) Snapshot() [BoardSize][BoardSize]Token {
	var out [BoardSize][BoardSize]Token
	for i, t := range b.Cells {
		out[i/BoardSize][i%BoardSize] = t
	}
	return out
}

// String renders the board with codes, "...." for empty cells.
func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteString("    A    B    C    D\n")
	for r := 0; r < BoardSize; r++ {
		fmt.Fprintf(&sb, "%d", r+1)
		for c := 0; c < BoardSize; c++ {
			t := b.Cells[NewCell(r, c)]
			if t == NoToken {
				sb.WriteString(" ....")
			} else {
				sb.WriteString(" " + t.Code())
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
