package engine

import (
	"errors"
	"testing"
)

// TestSelectPassesTurnToPlacer verifies the selector hands the piece to the
// other player.
func TestSelectPassesTurnToPlacer(t *testing.T) {
	g := newHumanGame(t)
	selector := g.Actor
	if err := g.Select(6); err != nil {
		t.Fatalf("Select: %v", err)
	}
	if g.Phase != PhasePlace {
		t.Errorf("Phase = %s, want place", g.Phase)
	}
	if g.Actor != g.OpponentOf(selector) {
		t.Errorf("Actor = %d, want placer %d", g.Actor, g.OpponentOf(selector))
	}
	if g.Selector() != selector {
		t.Errorf("Selector() = %d during place, want %d", g.Selector(), selector)
	}
	if g.Pending != 6 || g.Pool.Has(6) {
		t.Errorf("Pending = %s, pool has 6 = %v", g.Pending, g.Pool.Has(6))
	}
	if g.LastAction.Kind != ActionSelect || g.LastAction.Player != selector || g.LastAction.Token != 6 {
		t.Errorf("LastAction = %+v", g.LastAction)
	}
}

// TestRolesAlternate verifies give -> place -> give -> place with the placer
// becoming the next selector.
func TestRolesAlternate(t *testing.T) {
	g := newHumanGame(t)
	for i := 0; i < 6; i++ {
		selector := g.Actor
		if err := g.Select(mustToken(t, drawLayout[i/4][i%4])); err != nil {
			t.Fatalf("round %d Select: %v", i, err)
		}
		placer := g.Actor
		if placer == selector {
			t.Fatalf("round %d: selector %d also places", i, selector)
		}
		if _, err := g.Place(NewCell(i/4, i%4)); err != nil {
			t.Fatalf("round %d Place: %v", i, err)
		}
		if g.Actor != placer || g.Phase != PhaseSelect {
			t.Fatalf("round %d: after place Actor=%d phase=%s, want placer %d selecting", i, g.Actor, g.Phase, placer)
		}
	}
	if g.HalfTurns != 12 {
		t.Errorf("HalfTurns = %d, want 12", g.HalfTurns)
	}
}

// TestPlaceWithoutSelect verifies placement requires a pending token.
func TestPlaceWithoutSelect(t *testing.T) {
	g := newHumanGame(t)
	before := g.Save()
	_, err := g.Place(0)
	if !errors.Is(err, ErrInvalidPlacement) {
		t.Fatalf("Place without select err = %v, want ErrInvalidPlacement", err)
	}
	if GameState(before) != *g {
		t.Error("failed Place changed state")
	}

	// Also after a completed round.
	_ = g.Select(1)
	_, _ = g.Place(0)
	if _, err := g.Place(1); !errors.Is(err, ErrInvalidPlacement) {
		t.Errorf("second Place err = %v, want ErrInvalidPlacement", err)
	}
}

// TestSelectErrors verifies selection failures and that state is unchanged.
func TestSelectErrors(t *testing.T) {
	g := newHumanGame(t)
	_ = g.Select(2)
	_, _ = g.Place(NewCell(0, 0))

	tests := []struct {
		name string
		tok  Token
	}{
		{"already placed", 2},
		{"out of range", 16},
		{"no token", NoToken},
	}
	for _, tt := range tests {
		before := g.Save()
		err := g.Select(tt.tok)
		if !errors.Is(err, ErrInvalidSelection) {
			t.Errorf("%s: err = %v, want ErrInvalidSelection", tt.name, err)
		}
		if GameState(before) != *g {
			t.Errorf("%s: failed Select changed state", tt.name)
		}
	}

	// A second selection while one is pending.
	if err := g.Select(3); err != nil {
		t.Fatal(err)
	}
	before := g.Save()
	if err := g.Select(4); !errors.Is(err, ErrInvalidSelection) {
		t.Errorf("double select err = %v, want ErrInvalidSelection", err)
	}
	if GameState(before) != *g {
		t.Error("double select changed state")
	}
}

// TestPlaceOccupied verifies occupied cells are rejected with both error kinds.
func TestPlaceOccupied(t *testing.T) {
	g := newHumanGame(t)
	_ = g.Select(0)
	_, _ = g.Place(NewCell(2, 2))
	_ = g.Select(1)

	before := g.Save()
	_, err := g.Place(NewCell(2, 2))
	if !errors.Is(err, ErrInvalidPlacement) || !errors.Is(err, ErrCellOccupied) {
		t.Fatalf("err = %v, want ErrInvalidPlacement wrapping ErrCellOccupied", err)
	}
	if GameState(before) != *g {
		t.Error("failed Place changed state")
	}
	if _, err := g.Place(NoCell); !errors.Is(err, ErrInvalidPlacement) {
		t.Errorf("Place(NoCell) err = %v, want ErrInvalidPlacement", err)
	}
	if g.Pending != 1 {
		t.Errorf("pending lost after failed placements: %s", g.Pending)
	}
}

// TestGameOverRejectsMoves verifies terminal state is final.
func TestGameOverRejectsMoves(t *testing.T) {
	g := newHumanGame(t)
	for i, code := range []string{"SCRF", "LQRH", "SQRH", "LCRF"} {
		_ = g.Select(mustToken(t, code))
		_, _ = g.Place(NewCell(0, i))
	}
	if !g.IsTerminal() {
		t.Fatal("expected a win")
	}
	before := g.Save()
	if err := g.Select(0); !errors.Is(err, ErrGameOver) {
		t.Errorf("Select after win err = %v, want ErrGameOver", err)
	}
	if _, err := g.Place(5); !errors.Is(err, ErrGameOver) {
		t.Errorf("Place after win err = %v, want ErrGameOver", err)
	}
	if GameState(before) != *g {
		t.Error("rejected moves changed terminal state")
	}
}
