package engine

// CellMask is a set of cells; bit i is set when Cell(i) is a member.
type CellMask uint16

func (m CellMask) Has(c Cell) bool { return c.Valid() && m&(1<<c) != 0 }

// Cells returns the members in index order.
func (m CellMask) Cells() []Cell {
	var out []Cell
	for c := Cell(0); c < NumCells; c++ {
		if m.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// Len returns the number of cells in the mask.
func (m CellMask) Len() int { return Pool(m).Len() }

// emptyMask returns the empty cells of b as a bitmask.
func (b *Board) emptyMask() CellMask {
	var m CellMask
	for i, t := range b.Cells {
		if t == NoToken {
			m |= 1 << i
		}
	}
	return m
}

// LegalSelectionMask returns the tokens the acting player may select. Empty
// outside PhaseSelect. Zero heap allocation.
func (g *GameState) LegalSelectionMask() Pool {
	if g.Phase != PhaseSelect || g.IsTerminal() {
		return 0
	}
	return g.Pool
}

// LegalPlacementMask returns the cells the pending token may go to. Empty
// outside PhasePlace.
func (g *GameState) LegalPlacementMask() CellMask {
	if g.Phase != PhasePlace || g.IsTerminal() {
		return 0
	}
	return g.Board.emptyMask()
}

// LegalSelections returns legal selections as a slice (allocates).
func (g *GameState) LegalSelections() []Token { return g.LegalSelectionMask().Tokens() }

// LegalPlacements returns legal placements as a slice (allocates).
func (g *GameState) LegalPlacements() []Cell { return g.LegalPlacementMask().Cells() }
