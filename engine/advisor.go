package engine

// Piece-selection heuristic for the computer-controlled selector.
//
// A token is unsafe when the receiving player could win with it on at least
// one empty cell. The receiver picks the cell, so one winning cell is enough.

// IsSafe reports whether t cannot complete a uniform line on any empty cell
// of b.
func IsSafe(b *Board, t Token) bool {
	scratch := *b
	for i, cur := range scratch.Cells {
		if cur != NoToken {
			continue
		}
		if scratch.wouldWin(Cell(i), t) {
			return false
		}
	}
	return true
}

// SafeTokens returns the members of pool that are safe to hand over, in
// catalog order.
func SafeTokens(b *Board, pool Pool) []Token {
	var out []Token
	for _, t := range pool.Tokens() {
		if IsSafe(b, t) {
			out = append(out, t)
		}
	}
	return out
}

// ChooseToken picks a token from pool to hand to the other player: uniform
// among the safe tokens, or uniform over the whole pool when none is safe.
// pool must be non-empty.
func ChooseToken(b *Board, pool Pool, rng Rand) Token {
	candidates := SafeTokens(b, pool)
	if len(candidates) == 0 {
		candidates = pool.Tokens()
	}
	if len(candidates) == 0 {
		panic("engine: ChooseToken called with an empty pool")
	}
	return candidates[rng.IntN(len(candidates))]
}

// AdviseSelection runs ChooseToken for the current position using the
// game's own RNG. It does not select the token.
func (g *GameState) AdviseSelection() (Token, error) {
	if g.IsTerminal() {
		return NoToken, ErrGameOver
	}
	if g.Phase != PhaseSelect {
		return NoToken, ErrInvalidSelection
	}
	return ChooseToken(&g.Board, g.Pool, &g.RNG), nil
}
