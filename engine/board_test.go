package engine

import (
	"errors"
	"testing"
)

// TestLines verifies the fixed set of 10 lines.
func TestLines(t *testing.T) {
	ls := Lines()
	if len(ls) != 10 {
		t.Fatalf("len(Lines()) = %d, want 10", len(ls))
	}
	want := []Line{
		{NewCell(0, 0), NewCell(0, 1), NewCell(0, 2), NewCell(0, 3)},
		{NewCell(3, 0), NewCell(3, 1), NewCell(3, 2), NewCell(3, 3)},
		{NewCell(0, 2), NewCell(1, 2), NewCell(2, 2), NewCell(3, 2)},
		{NewCell(0, 0), NewCell(1, 1), NewCell(2, 2), NewCell(3, 3)},
		{NewCell(0, 3), NewCell(1, 2), NewCell(2, 1), NewCell(3, 0)},
	}
	for _, w := range want {
		found := false
		for _, l := range ls {
			if l == w {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("line %v missing from Lines()", w)
		}
	}
	seen := make(map[Line]bool)
	for _, l := range ls {
		if seen[l] {
			t.Errorf("duplicate line %v", l)
		}
		seen[l] = true
	}
	b := NewBoard()
	if b.Lines() != ls || Lines() != ls {
		t.Error("Lines() is not stable across calls")
	}
}

// TestLinesThrough verifies per-cell line counts: corners and inner diagonal
// cells have 3, others 2.
func TestLinesThrough(t *testing.T) {
	tests := []struct {
		cell string
		want int
	}{
		{"A1", 3}, {"D1", 3}, {"A4", 3}, {"D4", 3},
		{"B2", 3}, {"C2", 3}, {"B3", 3}, {"C3", 3},
		{"B1", 2}, {"A2", 2}, {"D3", 2}, {"C4", 2},
	}
	for _, tt := range tests {
		c, err := ParseCell(tt.cell)
		if err != nil {
			t.Fatalf("ParseCell(%q): %v", tt.cell, err)
		}
		ls := LinesThrough(c)
		if len(ls) != tt.want {
			t.Errorf("LinesThrough(%s) has %d lines, want %d", tt.cell, len(ls), tt.want)
		}
		for _, l := range ls {
			in := false
			for _, lc := range l {
				if lc == c {
					in = true
				}
			}
			if !in {
				t.Errorf("LinesThrough(%s) returned %v which does not contain it", tt.cell, l)
			}
		}
	}
	if LinesThrough(NoCell) != nil {
		t.Error("LinesThrough(NoCell) should be nil")
	}
}

// TestParseCell verifies column-letter/row-number addressing.
func TestParseCell(t *testing.T) {
	tests := []struct {
		in       string
		row, col int
	}{
		{"A1", 0, 0},
		{"D1", 0, 3},
		{"A4", 3, 0},
		{"d4", 3, 3},
		{" b3 ", 2, 1},
	}
	for _, tt := range tests {
		c, err := ParseCell(tt.in)
		if err != nil {
			t.Fatalf("ParseCell(%q): %v", tt.in, err)
		}
		if c.Row() != tt.row || c.Col() != tt.col {
			t.Errorf("ParseCell(%q) = (%d,%d), want (%d,%d)", tt.in, c.Row(), c.Col(), tt.row, tt.col)
		}
	}
	for c := Cell(0); c < NumCells; c++ {
		back, err := ParseCell(c.String())
		if err != nil || back != c {
			t.Errorf("round trip %d -> %q -> %d (%v)", c, c.String(), back, err)
		}
	}
	for _, bad := range []string{"", "A", "E1", "A0", "A5", "11", "AA", "A10"} {
		if _, err := ParseCell(bad); !errors.Is(err, ErrInvalidCell) {
			t.Errorf("ParseCell(%q) err = %v, want ErrInvalidCell", bad, err)
		}
	}
}

// TestBoardPlace verifies placement and the occupied-cell rule.
func TestBoardPlace(t *testing.T) {
	b := NewBoard()
	if b.Placed() != 0 || len(b.EmptyCells()) != NumCells {
		t.Fatalf("new board not empty: placed=%d empty=%d", b.Placed(), len(b.EmptyCells()))
	}
	c := NewCell(1, 2)
	if err := b.Place(c, 5); err != nil {
		t.Fatalf("Place: %v", err)
	}
	if b.Get(c) != 5 || b.IsEmpty(c) {
		t.Errorf("Get(%s) = %s, want token 5", c, b.Get(c))
	}

	err := b.Place(c, 6)
	if !errors.Is(err, ErrCellOccupied) {
		t.Errorf("second Place err = %v, want ErrCellOccupied", err)
	}
	if b.Get(c) != 5 {
		t.Error("occupied cell changed token")
	}

	if err := b.Place(NoCell, 6); !errors.Is(err, ErrInvalidPlacement) {
		t.Errorf("Place(NoCell) err = %v, want ErrInvalidPlacement", err)
	}
	if err := b.Place(0, NoToken); !errors.Is(err, ErrInvalidPlacement) {
		t.Errorf("Place(NoToken) err = %v, want ErrInvalidPlacement", err)
	}
	if b.Placed() != 1 {
		t.Errorf("Placed() = %d, want 1", b.Placed())
	}
	if !b.OnBoard().Has(5) || b.OnBoard().Len() != 1 {
		t.Errorf("OnBoard() = %016b", b.OnBoard())
	}
}

// TestBoardIsFull verifies full-line detection.
func TestBoardIsFull(t *testing.T) {
	b := NewBoard()
	row := Lines()[0]
	for i, c := range row {
		if b.IsFull(row) {
			t.Fatalf("row full after %d placements", i)
		}
		if err := b.Place(c, Token(i)); err != nil {
			t.Fatal(err)
		}
	}
	if !b.IsFull(row) {
		t.Error("row not full after 4 placements")
	}
	if b.IsFull(Lines()[4]) {
		t.Error("column 0 reported full with one token")
	}
}

// TestBoardSnapshotIdempotent verifies Snapshot has no side effects.
func TestBoardSnapshotIdempotent(t *testing.T) {
	b := NewBoard()
	_ = b.Place(NewCell(2, 3), 11)
	s1 := b.Snapshot()
	s2 := b.Snapshot()
	if s1 != s2 {
		t.Error("Snapshot() changed between calls")
	}
	if s1[2][3] != 11 || s1[0][0] != NoToken {
		t.Errorf("Snapshot contents wrong: %v", s1)
	}
}
