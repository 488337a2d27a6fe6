// internal/session/state.go
package session

import (
	"github.com/google/uuid"
	"github.com/jordanlassers22/quarto/engine"
)

// PlayerView is the public state of one seat.
type PlayerView struct {
	PlayerID      uuid.UUID `json:"playerId"`
	Name          string    `json:"name"`
	Computer      bool      `json:"computer"`
	IsCurrentTurn bool      `json:"isCurrentTurn"`
}

// StateView is a JSON-ready snapshot of the session for hosts.
type StateView struct {
	SessionID        uuid.UUID       `json:"sessionId"`
	Game             int             `json:"game"`
	Seed             uint64          `json:"seed"`
	Phase            string          `json:"phase"`
	CurrentPlayerID  uuid.UUID       `json:"currentPlayerId,omitempty"`
	Pending          string          `json:"pending,omitempty"` // token awaiting placement
	Board            [4][4]string    `json:"board"`             // [row][col], "" when empty
	Pool             []string        `json:"pool"`              // selectable tokens
	Unplaced         []string        `json:"unplaced"`          // pool plus pending
	Placed           int             `json:"placed"`
	HalfTurns        int             `json:"halfTurns"`
	GameOver         bool            `json:"gameOver"`
	Draw             bool            `json:"draw"`
	WinnerID         *uuid.UUID      `json:"winnerId,omitempty"`
	WinningLine      []string        `json:"winningLine,omitempty"`
	WinningAttribute string          `json:"winningAttribute,omitempty"`
	Players          [2]PlayerView   `json:"players"`
	LastAction       *LastActionView `json:"lastAction,omitempty"`
}

// LastActionView describes the most recent successful move.
type LastActionView struct {
	Kind     string    `json:"kind"` // "select" or "place"
	PlayerID uuid.UUID `json:"playerId"`
	Token    string    `json:"token"`
	Cell     string    `json:"cell,omitempty"`
}

// State returns a snapshot of the session.
func (s *Session) State() StateView {
	s.Mu.Lock()
	defer s.Mu.Unlock()

	g := &s.Engine
	v := StateView{
		SessionID: s.ID,
		Game:      s.GameNumber,
		Seed:      s.Seed,
		Phase:     g.Phase.String(),
		Board:     s.boardSnapshot(),
		Pool:      codes(g.Pool),
		Unplaced:  codes(g.Unplaced()),
		Placed:    g.PlacedCount(),
		HalfTurns: int(g.HalfTurns),
		GameOver:  g.IsTerminal(),
		Draw:      g.IsDraw(),
	}
	if g.Pending.Valid() {
		v.Pending = g.Pending.Code()
	}
	if !v.GameOver {
		v.CurrentPlayerID = s.Players[g.ActingPlayer()].ID
	}
	if winner, ok := g.WinnerIdx(); ok {
		id := s.Players[winner].ID
		v.WinnerID = &id
		for _, c := range g.WinLine.Line {
			v.WinningLine = append(v.WinningLine, c.String())
		}
		v.WinningAttribute = g.WinLine.Attribute.String()
	}
	for i, p := range s.Players {
		v.Players[i] = PlayerView{
			PlayerID:      p.ID,
			Name:          p.Name,
			Computer:      p.Computer,
			IsCurrentTurn: !v.GameOver && int(g.ActingPlayer()) == i,
		}
	}
	switch la := g.LastAction; la.Kind {
	case engine.ActionSelect, engine.ActionPlace:
		lv := &LastActionView{
			Kind:     "select",
			PlayerID: s.Players[la.Player].ID,
			Token:    la.Token.Code(),
		}
		if la.Kind == engine.ActionPlace {
			lv.Kind = "place"
			lv.Cell = la.Cell.String()
		}
		v.LastAction = lv
	}
	return v
}

// BoardSnapshot returns the board as token codes indexed [row][col], with ""
// for empty cells.
func (s *Session) BoardSnapshot() [4][4]string {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	return s.boardSnapshot()
}

// UnplacedTokens returns the codes of every token not on the board, in
// catalog order. A selected token still counts until it is placed.
func (s *Session) UnplacedTokens() []string {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	return codes(s.Engine.Unplaced())
}

// BoardText renders the board as the engine's ASCII grid.
func (s *Session) BoardText() string {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	return s.Engine.Board.String()
}

// Assumes lock is held by caller.
func (s *Session) boardSnapshot() [4][4]string {
	var out [4][4]string
	for r, row := range s.Engine.Snapshot() {
		for c, t := range row {
			if t.Valid() {
				out[r][c] = t.Code()
			}
		}
	}
	return out
}

func codes(p engine.Pool) []string {
	toks := p.Tokens()
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = t.Code()
	}
	return out
}
