// internal/session/session.go
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jordanlassers22/quarto/engine"
	"github.com/sirupsen/logrus"
)

// EventType represents the type of a session event delivered to OnEvent.
type EventType string

// Constants defining the event types a Session emits.
const (
	EventTokenSelected  EventType = "token_selected"       // A player handed a token to the opponent.
	EventTokenPlaced    EventType = "token_placed"         // A player placed the pending token.
	EventGameWon        EventType = "game_won"             // The last placement completed a uniform line.
	EventGameDraw       EventType = "game_draw"            // The pool ran out without a win.
	EventPlayerTurn     EventType = "player_turn"          // Notification of who must act next, and how.
	EventComputerFailed EventType = "computer_turn_failed" // A scheduled computer turn returned an error.
)

// EventPlayer identifies a player within an Event payload.
type EventPlayer struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Computer bool      `json:"computer,omitempty"`
}

// Event is the structure broadcast for every state change of a session.
type Event struct {
	Type      EventType    `json:"type"`
	Game      int          `json:"game"`
	Player    *EventPlayer `json:"player,omitempty"`    // Acting player, or the winner for game_won.
	Phase     string       `json:"phase,omitempty"`     // For player_turn: "select" or "place".
	Token     string       `json:"token,omitempty"`     // Token code involved.
	Cell      string       `json:"cell,omitempty"`      // Cell involved, e.g. "B3".
	Line      []string     `json:"line,omitempty"`      // Winning line cells.
	Attribute string       `json:"attribute,omitempty"` // Shared characteristic of the winning line.
	Message   string       `json:"message,omitempty"`
}

// Player is one seat of a session.
type Player struct {
	ID       uuid.UUID
	Name     string
	Computer bool
}

// PlayerOptions configures one seat.
type PlayerOptions struct {
	Name     string
	Computer bool
}

// Options configures a new Session.
type Options struct {
	Seed          uint64 // 0 picks a time-based seed.
	Players       [2]PlayerOptions
	FirstSelector uint8
	Placement     string // placement strategy name, see engine.StrategyByName

	// AutoPlay schedules computer turns automatically after every move,
	// each delayed by ComputerDelay.
	AutoPlay      bool
	ComputerDelay time.Duration

	Logger *logrus.Logger // nil uses logrus.StandardLogger()
}

// Session owns one Quarto game at a time and the two players sitting at it.
// All access to Engine goes through the exported methods, which take Mu.
type Session struct {
	ID      uuid.UUID
	Players [2]*Player

	Engine     engine.GameState // The authoritative game state.
	GameNumber int              // 1 for the first game, incremented by Restart.
	Seed       uint64           // Seed of the current game.

	placement     string
	strategy      engine.PlacementStrategy
	autoPlay      bool
	computerDelay time.Duration
	computerTimer *time.Timer
	closed        bool

	Mu sync.Mutex

	// OnEvent receives every event. It is called with Mu held and must not
	// call back into the Session.
	OnEvent func(ev Event)

	logger *logrus.Logger
	log    *logrus.Entry
}

// New creates a session and its first game. The game does not advance until
// Start is called.
func New(opts Options) (*Session, error) {
	id, _ := uuid.NewRandom()
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	s := &Session{
		ID:            id,
		placement:     opts.Placement,
		autoPlay:      opts.AutoPlay,
		computerDelay: opts.ComputerDelay,
		logger:        logger,
	}
	for i, po := range opts.Players {
		name := po.Name
		if name == "" {
			name = defaultName(i, po.Computer)
		}
		s.Players[i] = &Player{ID: uuid.New(), Name: name, Computer: po.Computer}
	}

	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	if err := s.newGame(seed, opts.FirstSelector); err != nil {
		return nil, err
	}
	return s, nil
}

func defaultName(idx int, computer bool) string {
	if computer {
		return "Computer"
	}
	if idx == 0 {
		return "Player 1"
	}
	return "Player 2"
}

// newGame replaces the engine state with a fresh game.
// Assumes lock is held by caller (or the session is not yet shared).
func (s *Session) newGame(seed uint64, firstSelector uint8) error {
	var kinds [2]engine.PlayerKind
	for i, p := range s.Players {
		if p.Computer {
			kinds[i] = engine.Computer
		}
	}
	s.Engine = engine.NewGame(seed, engine.Options{FirstSelector: firstSelector, Kinds: kinds})
	strategy, err := engine.StrategyByName(s.placement, s.Engine.GameRand())
	if err != nil {
		return err
	}
	s.strategy = strategy
	s.Seed = seed
	s.GameNumber++
	s.log = s.logger.WithFields(logrus.Fields{"session": s.ID, "game": s.GameNumber})
	s.log.WithFields(logrus.Fields{
		"seed":     seed,
		"selector": s.Players[s.Engine.Actor].Name,
	}).Info("Game created.")
	return nil
}

// Start announces the first turn and, with AutoPlay, schedules the computer
// if it selects first.
func (s *Session) Start() {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	s.onTurnAdvanced()
}

// Restart begins a new game in the same session. The player who did not
// select first last game selects first now. The new seed is drawn from the
// finished game's RNG so a whole session replays from its first seed.
func (s *Session) Restart() error {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	s.stopComputerTimer()
	next := s.Engine.OpponentOf(s.Engine.FirstActor)
	if err := s.newGame(s.Engine.RNG.Next(), next); err != nil {
		return err
	}
	s.onTurnAdvanced()
	return nil
}

// Close stops any pending computer turn. Moves after Close still work but
// nothing is scheduled anymore.
func (s *Session) Close() {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	s.closed = true
	s.stopComputerTimer()
}

// CurrentPlayer returns the player who must act, or nil once the game ended.
func (s *Session) CurrentPlayer() *Player {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	if s.Engine.IsTerminal() {
		return nil
	}
	return s.Players[s.Engine.ActingPlayer()]
}

// fireEvent delivers ev through OnEvent.
// Assumes lock is held by caller.
func (s *Session) fireEvent(ev Event) {
	ev.Game = s.GameNumber
	if s.OnEvent != nil {
		s.OnEvent(ev)
	}
}

func (s *Session) eventPlayer(idx uint8) *EventPlayer {
	p := s.Players[idx]
	return &EventPlayer{ID: p.ID, Name: p.Name, Computer: p.Computer}
}

// onTurnAdvanced runs after every successful move: it announces the end of
// the game or the next turn, and schedules the computer when AutoPlay is on.
// Assumes lock is held by caller.
func (s *Session) onTurnAdvanced() {
	if s.Engine.IsTerminal() {
		s.stopComputerTimer()
		s.announceResult()
		return
	}
	s.broadcastPlayerTurn()
	if s.autoPlay {
		s.scheduleComputerTurn(s.computerDelay)
	}
}

// broadcastPlayerTurn notifies listeners of the acting player and phase.
// Assumes lock is held by caller.
func (s *Session) broadcastPlayerTurn() {
	actor := s.Engine.ActingPlayer()
	s.log.WithFields(logrus.Fields{
		"player": s.Players[actor].Name,
		"phase":  s.Engine.Phase.String(),
	}).Debug("Turn starting.")
	s.fireEvent(Event{
		Type:   EventPlayerTurn,
		Phase:  s.Engine.Phase.String(),
		Player: s.eventPlayer(actor),
	})
}

// announceResult fires game_won or game_draw.
// Assumes lock is held by caller.
func (s *Session) announceResult() {
	if winner, ok := s.Engine.WinnerIdx(); ok {
		w := s.Engine.WinLine
		line := make([]string, len(w.Line))
		for i, c := range w.Line {
			line[i] = c.String()
		}
		s.log.WithFields(logrus.Fields{
			"winner":    s.Players[winner].Name,
			"line":      line,
			"attribute": w.Attribute.String(),
		}).Info("Game won.")
		s.fireEvent(Event{
			Type:      EventGameWon,
			Player:    s.eventPlayer(winner),
			Line:      line,
			Attribute: w.Attribute.String(),
		})
		return
	}
	s.log.Info("Game drawn.")
	s.fireEvent(Event{Type: EventGameDraw})
}
