// Package engine implements the Quarto rules.
//
// GameState is a flat value type: copying it copies the whole game, which
// the advisor and the session rely on for cheap snapshots. All mutation
// goes through Select and Place.
package engine

// Phase is the turn-protocol state.
type Phase uint8

const (
	PhaseSelect   Phase = iota // 0: Actor hands a piece to the other player
	PhasePlace                 // 1: Actor places the pending piece
	PhaseGameOver              // 2
)

func (p Phase) String() string {
	switch p {
	case PhaseSelect:
		return "select"
	case PhasePlace:
		return "place"
	case PhaseGameOver:
		return "game_over"
	}
	return "unknown"
}

// Outcome is the result of a successful placement.
type Outcome uint8

const (
	OutcomeContinue Outcome = iota // 0
	OutcomeWin                     // 1
	OutcomeDraw                    // 2
)

func (o Outcome) String() string {
	switch o {
	case OutcomeContinue:
		return "continue"
	case OutcomeWin:
		return "win"
	case OutcomeDraw:
		return "draw"
	}
	return "unknown"
}

// ActionKind identifies the last applied action.
type ActionKind uint8

const (
	ActionNone ActionKind = iota
	ActionSelect
	ActionPlace
)

// LastActionInfo is a summary of the most recent successful action.
type LastActionInfo struct {
	Kind   ActionKind
	Player uint8
	Token  Token
	Cell   Cell // NoCell for selections
}

const (
	FlagGameOver uint8 = 1 << 0
	FlagDraw     uint8 = 1 << 1
)

// GameState holds the complete state of one Quarto game.
type GameState struct {
	Board      Board
	Pool       Pool  // unplaced tokens, excluding Pending
	Pending    Token // selected but not yet placed, or NoToken
	Phase      Phase
	Actor      uint8 // player index who must act in Phase
	Kinds      [2]PlayerKind
	FirstActor uint8
	HalfTurns  uint8 // successful Select + Place calls
	Flags      uint8
	Winner     int8 // -1 until a win
	WinLine    Win
	LastAction LastActionInfo
	RNG        XorShift64
}

// NewGame returns a game awaiting the first selection.
func NewGame(seed uint64, opts Options) GameState {
	first := opts.firstSelector()
	return GameState{
		Board:      NewBoard(),
		Pool:       FullPool,
		Pending:    NoToken,
		Phase:      PhaseSelect,
		Actor:      first,
		Kinds:      opts.Kinds,
		FirstActor: first,
		Winner:     -1,
		LastAction: LastActionInfo{Kind: ActionNone, Token: NoToken, Cell: NoCell},
		RNG:        NewXorShift64(seed),
	}
}

// ---------------------------------------------------------------------------
// Query methods
// ---------------------------------------------------------------------------

func (g *GameState) IsTerminal() bool { return g.Flags&FlagGameOver != 0 }
func (g *GameState) IsDraw() bool     { return g.Flags&FlagDraw != 0 }

// OpponentOf returns the other player index.
func (g *GameState) OpponentOf(player uint8) uint8 { return 1 - player }

// ActingKind reports whether the acting player is human or computer.
func (g *GameState) ActingKind() PlayerKind { return g.Kinds[g.Actor] }

// Selector returns the player who hands over the next (or current) piece.
// During PhasePlace that is the opponent of the placer.
func (g *GameState) Selector() uint8 {
	if g.Phase == PhasePlace {
		return g.OpponentOf(g.Actor)
	}
	return g.Actor
}

// WinnerIdx returns the winning player index, if any.
func (g *GameState) WinnerIdx() (uint8, bool) {
	if g.Winner < 0 {
		return 0, false
	}
	return uint8(g.Winner), true
}

// Unplaced returns every token not on the board: the pool plus the pending
// token.
func (g *GameState) Unplaced() Pool {
	if g.Pending.Valid() {
		return g.Pool.With(g.Pending)
	}
	return g.Pool
}

// Snapshot returns the board grid indexed [row][col].
func (g *GameState) Snapshot() [BoardSize][BoardSize]Token { return g.Board.Snapshot() }

// ---------------------------------------------------------------------------
// Snapshot Undo (Save / Restore)
// ---------------------------------------------------------------------------

// SavedState is a complete value copy of GameState.
type SavedState GameState

// Save returns a copy of the current game state.
func (g *GameState) Save() SavedState { return SavedState(*g) }

// Restore replaces the game state with s.
func (g *GameState) Restore(s SavedState) { *g = GameState(s) }

// ActingPlayer returns the index of the player who must act next.
func (g *GameState) ActingPlayer() uint8 { return g.Actor }

// PlacedCount returns the number of tokens on the board.
func (g *GameState) PlacedCount() int { return g.Board.Placed() }
