package engine

import (
	"errors"
	"fmt"
)

// Select hands t from the pool to the other player. The acting player
// becomes the opponent, who must now place t.
func (g *GameState) Select(t Token) error {
	if g.IsTerminal() {
		return ErrGameOver
	}
	if g.Phase != PhaseSelect || g.Pending != NoToken {
		return fmt.Errorf("%w: %s is already pending", ErrInvalidSelection, g.Pending)
	}
	if !t.Valid() {
		return fmt.Errorf("%w: token %d out of range", ErrInvalidSelection, uint8(t))
	}
	if !g.Pool.Has(t) {
		return fmt.Errorf("%w: %s is not in the unplaced pool", ErrInvalidSelection, t)
	}

	selector := g.Actor
	g.Pool = g.Pool.Without(t)
	g.Pending = t
	g.Actor = g.OpponentOf(selector)
	g.Phase = PhasePlace
	g.HalfTurns++

	g.LastAction = LastActionInfo{Kind: ActionSelect, Player: selector, Token: t, Cell: NoCell}
	return nil
}

// Place puts the pending token on c and evaluates the board. The placer
// stays the acting player and selects next, unless the game ended.
func (g *GameState) Place(c Cell) (Outcome, error) {
	if g.IsTerminal() {
		return OutcomeContinue, ErrGameOver
	}
	if g.Phase != PhasePlace || g.Pending == NoToken {
		return OutcomeContinue, fmt.Errorf("%w: no token is pending", ErrInvalidPlacement)
	}
	if err := g.Board.Place(c, g.Pending); err != nil {
		// Board.Place leaves the board untouched on error.
		if errors.Is(err, ErrCellOccupied) {
			return OutcomeContinue, fmt.Errorf("%w: %w", ErrInvalidPlacement, err)
		}
		return OutcomeContinue, err
	}

	placer := g.Actor
	t := g.Pending
	g.Pending = NoToken
	g.HalfTurns++
	g.LastAction = LastActionInfo{Kind: ActionPlace, Player: placer, Token: t, Cell: c}

	if w, ok := g.Board.WinThrough(c); ok {
		g.Winner = int8(placer)
		g.WinLine = w
		g.Flags |= FlagGameOver
		g.Phase = PhaseGameOver
		return OutcomeWin, nil
	}
	if g.Pool == 0 {
		g.Flags |= FlagGameOver | FlagDraw
		g.Phase = PhaseGameOver
		return OutcomeDraw, nil
	}

	g.Phase = PhaseSelect
	return OutcomeContinue, nil
}
