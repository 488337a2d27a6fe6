package engine

import (
	"math/rand/v2"
	"testing"
)

// boardFromRows builds a board from [row][col] codes; "" is empty.
func boardFromRows(t *testing.T, rows [4][4]string) Board {
	t.Helper()
	b := NewBoard()
	for r := range rows {
		for c, code := range rows[r] {
			if code == "" {
				continue
			}
			if err := b.Place(NewCell(r, c), mustToken(t, code)); err != nil {
				t.Fatal(err)
			}
		}
	}
	return b
}

// bruteForceUnsafe reports whether placing tok on some empty cell wins,
// using a board copy and the reference scan.
func bruteForceUnsafe(b Board, tok Token) bool {
	for i := range b.Cells {
		if b.Cells[i] != NoToken {
			continue
		}
		sim := b
		sim.Cells[i] = tok
		if bruteForceWin(sim.Snapshot()) {
			return true
		}
	}
	return false
}

// TestSafeTokensEmptyBoard verifies every token is safe on an empty board.
func TestSafeTokensEmptyBoard(t *testing.T) {
	b := NewBoard()
	if got := SafeTokens(&b, FullPool); len(got) != NumTokens {
		t.Errorf("SafeTokens on empty board = %d tokens, want %d", len(got), NumTokens)
	}
}

// TestSafeTokensExcludesWinners verifies a red-completing token is unsafe.
func TestSafeTokensExcludesWinners(t *testing.T) {
	b := boardFromRows(t, [4][4]string{
		{"SCRF", "LQRH", "SQRH", ""},
	})
	pool := FullPool &^ b.OnBoard()
	safe := SafeTokens(&b, pool)
	for _, tok := range safe {
		if tok.Color() == ColorRed {
			t.Errorf("red token %s reported safe with three reds in row 1", tok)
		}
	}
	if len(safe) == 0 {
		t.Fatal("expected blue tokens to be safe")
	}
	for _, tok := range pool.Tokens() {
		if IsSafe(&b, tok) == bruteForceUnsafe(b, tok) {
			t.Errorf("IsSafe(%s) disagrees with reference", tok)
		}
	}
}

// TestChooseTokenNeverUnsafe plays random positions and checks the advisor
// against the reference oracle whenever a safe token exists.
func TestChooseTokenNeverUnsafe(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	checked := 0
	for game := 0; game < 200; game++ {
		g := NewGame(uint64(game)+10, humanOptions())
		for !g.IsTerminal() {
			haveSafe := false
			for _, tok := range g.Pool.Tokens() {
				if !bruteForceUnsafe(g.Board, tok) {
					haveSafe = true
					break
				}
			}
			before := g.Board
			choice := ChooseToken(&g.Board, g.Pool, rng)
			if g.Board != before {
				t.Fatal("ChooseToken modified the board")
			}
			if !g.Pool.Has(choice) {
				t.Fatalf("ChooseToken returned %s not in pool", choice)
			}
			if haveSafe && bruteForceUnsafe(g.Board, choice) {
				t.Fatalf("advisor handed over unsafe %s while a safe token existed\n%s", choice, g.Board.String())
			}
			checked++

			if err := g.Select(choice); err != nil {
				t.Fatal(err)
			}
			cells := g.LegalPlacements()
			if _, err := g.Place(cells[rng.IntN(len(cells))]); err != nil {
				t.Fatal(err)
			}
		}
	}
	if checked == 0 {
		t.Fatal("no positions checked")
	}
}

// TestChooseTokenForcedConcessionLastCell: one empty cell at D4 and the
// only remaining token wins there; the advisor still returns it.
func TestChooseTokenForcedConcessionLastCell(t *testing.T) {
	b := boardFromRows(t, [4][4]string{
		{"LQRH", "SQRH", "LCBH", "LQBF"},
		{"SCRF", "SQBF", "LQBH", "LCRF"},
		{"LCBF", "LCRH", "SQRF", "SCRH"},
		{"SCBH", "SCBF", "SQBH", ""},
	})
	if b.AnyWin() {
		t.Fatal("fixture already has a win")
	}
	pool := FullPool &^ b.OnBoard()
	if pool.Len() != 1 {
		t.Fatalf("pool has %d tokens, want 1", pool.Len())
	}
	last := mustToken(t, "LQRF")
	if !pool.Has(last) {
		t.Fatalf("pool = %v, want [LQRF]", pool.Tokens())
	}
	if IsSafe(&b, last) {
		t.Fatal("LQRF at D4 should complete a line")
	}
	if safe := SafeTokens(&b, pool); len(safe) != 0 {
		t.Fatalf("SafeTokens = %v, want none", safe)
	}
	x := NewXorShift64(9)
	if got := ChooseToken(&b, pool, &x); got != last {
		t.Errorf("ChooseToken = %s, want %s", got, last)
	}
}

// TestChooseTokenForcedConcessionUniform: every pool token is unsafe, so the
// choice is spread over the whole pool.
func TestChooseTokenForcedConcessionUniform(t *testing.T) {
	b := boardFromRows(t, [4][4]string{
		{"LQBF", "SCBF", "LQRF", "SQBH"},
		{"LCRH", "", "", "SQRH"},
		{"LQRH", "LCBF", "SCRH", "LCBH"},
		{"", "SCBH", "SCRF", "LCRF"},
	})
	pool := FullPool &^ b.OnBoard()
	if pool.Len() != 3 {
		t.Fatalf("pool has %d tokens, want 3", pool.Len())
	}
	if safe := SafeTokens(&b, pool); len(safe) != 0 {
		t.Fatalf("SafeTokens = %v, want none", safe)
	}
	counts := make(map[Token]int)
	rng := rand.New(rand.NewPCG(5, 6))
	for i := 0; i < 3000; i++ {
		counts[ChooseToken(&b, pool, rng)]++
	}
	for _, tok := range pool.Tokens() {
		if counts[tok] < 800 {
			t.Errorf("token %s chosen %d/3000 times; want roughly a third", tok, counts[tok])
		}
	}
	if len(counts) != 3 {
		t.Errorf("choices outside pool: %v", counts)
	}
}

// TestChooseTokenDeterministic verifies equal seeds give equal choices.
func TestChooseTokenDeterministic(t *testing.T) {
	b := NewBoard()
	for i := 0; i < 20; i++ {
		x1, x2 := NewXorShift64(uint64(i)), NewXorShift64(uint64(i))
		if ChooseToken(&b, FullPool, &x1) != ChooseToken(&b, FullPool, &x2) {
			t.Fatalf("seed %d: choices differ", i)
		}
	}
}

// TestAdviseSelection verifies the GameState wrapper and its phase check.
func TestAdviseSelection(t *testing.T) {
	g := newHumanGame(t)
	tok, err := g.AdviseSelection()
	if err != nil || !g.Pool.Has(tok) {
		t.Fatalf("AdviseSelection = %s, %v", tok, err)
	}
	if g.Phase != PhaseSelect || g.Pending != NoToken {
		t.Error("AdviseSelection selected the token")
	}
	_ = g.Select(tok)
	if _, err := g.AdviseSelection(); err == nil {
		t.Error("AdviseSelection during PhasePlace should fail")
	}
}
