package engine

import (
	"fmt"
	"strings"
)

// PlacementStrategy chooses where the computer places a token it received.
// ChoosePlacement must return an empty cell of b; b has at least one.
type PlacementStrategy interface {
	ChoosePlacement(b *Board, t Token) Cell
}

// RandomPlacement picks a uniform empty cell.
type RandomPlacement struct {
	Rand Rand
}

func (s RandomPlacement) ChoosePlacement(b *Board, _ Token) Cell {
	empty := b.EmptyCells()
	return empty[s.Rand.IntN(len(empty))]
}

// WinningPlacement takes a winning cell when one exists and otherwise
// falls back to a uniform empty cell.
type WinningPlacement struct {
	Rand Rand
}

func (s WinningPlacement) ChoosePlacement(b *Board, t Token) Cell {
	scratch := *b
	var wins []Cell
	for _, c := range scratch.EmptyCells() {
		if scratch.wouldWin(c, t) {
			wins = append(wins, c)
		}
	}
	if len(wins) > 0 {
		return wins[s.Rand.IntN(len(wins))]
	}
	return RandomPlacement(s).ChoosePlacement(b, t)
}

// StrategyByName resolves "random" or "winning".
func StrategyByName(name string, rng Rand) (PlacementStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "random", "":
		return RandomPlacement{Rand: rng}, nil
	case "winning":
		return WinningPlacement{Rand: rng}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// gameRand lets a strategy draw from the GameState RNG.
type gameRand struct{ g *GameState }

func (r gameRand) IntN(n int) int { return r.g.RNG.IntN(n) }

// GameRand returns a Rand backed by the game's own RNG, so computer moves
// are reproducible from the NewGame seed.
func (g *GameState) GameRand() Rand { return gameRand{g: g} }

// ApplyComputerTurn plays the acting computer player's half-turn: in
// PhaseSelect it selects the advisor's token, in PhasePlace it places the
// pending token where s chooses. The returned token is the one selected or
// placed; cell is NoCell for a selection.
func (g *GameState) ApplyComputerTurn(s PlacementStrategy) (Token, Cell, Outcome, error) {
	if g.IsTerminal() {
		return NoToken, NoCell, OutcomeContinue, ErrGameOver
	}
	if g.ActingKind() != Computer {
		return NoToken, NoCell, OutcomeContinue, fmt.Errorf("%w: player %d", ErrNotComputerTurn, g.Actor)
	}

	saved := g.Save()
	switch g.Phase {
	case PhaseSelect:
		t, err := g.AdviseSelection()
		if err == nil {
			err = g.Select(t)
		}
		if err != nil {
			g.Restore(saved)
			return NoToken, NoCell, OutcomeContinue, err
		}
		return t, NoCell, OutcomeContinue, nil

	case PhasePlace:
		t := g.Pending
		c := s.ChoosePlacement(&g.Board, t)
		out, err := g.Place(c)
		if err != nil {
			// The strategy may have drawn from g.RNG.
			g.Restore(saved)
			return NoToken, NoCell, OutcomeContinue, fmt.Errorf("strategy chose %s: %w", c, err)
		}
		return t, c, out, nil
	}
	return NoToken, NoCell, OutcomeContinue, fmt.Errorf("unexpected phase %s", g.Phase)
}
