// internal/session/actions.go
package session

import (
	"fmt"
	"time"

	"github.com/jordanlassers22/quarto/engine"
	"github.com/sirupsen/logrus"
)

// SelectToken hands the token with the given code (e.g. "LQRH") to the
// opponent on behalf of the acting player. Returns engine.ErrInvalidToken,
// engine.ErrInvalidSelection or engine.ErrGameOver; the game is unchanged on
// error.
func (s *Session) SelectToken(code string) error {
	s.Mu.Lock()
	defer s.Mu.Unlock()

	tok, err := engine.ParseToken(code)
	if err != nil {
		s.rejected("select", code, err)
		return err
	}
	selector := s.Engine.ActingPlayer()
	if err := s.Engine.Select(tok); err != nil {
		s.rejected("select", code, err)
		return err
	}
	s.afterSelect(selector, tok)
	return nil
}

// PlaceToken places the pending token on the named cell (e.g. "B3").
// Returns engine.ErrInvalidCell, engine.ErrInvalidPlacement or
// engine.ErrGameOver; the game is unchanged on error.
func (s *Session) PlaceToken(cell string) (engine.Outcome, error) {
	s.Mu.Lock()
	defer s.Mu.Unlock()

	c, err := engine.ParseCell(cell)
	if err != nil {
		s.rejected("place", cell, err)
		return engine.OutcomeContinue, err
	}
	placer := s.Engine.ActingPlayer()
	tok := s.Engine.Pending
	out, err := s.Engine.Place(c)
	if err != nil {
		s.rejected("place", cell, err)
		return engine.OutcomeContinue, err
	}
	s.afterPlace(placer, tok, c, out)
	return out, nil
}

// RequestComputerTurn plays the acting computer player's half-turn now:
// a selection from the opponent advisor, or a placement from the configured
// strategy. It returns the token selected or placed.
func (s *Session) RequestComputerTurn() (engine.Token, error) {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	s.stopComputerTimer()
	return s.applyComputerTurn()
}

// ScheduleComputerTurn plays the computer's half-turn after delay. It
// reports false, scheduling nothing, when the game is over, the session is
// closed or a human must act. A later move or Close cancels the turn.
func (s *Session) ScheduleComputerTurn(delay time.Duration) bool {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	return s.scheduleComputerTurn(delay)
}

// scheduleComputerTurn arms the computer timer for the current half-turn.
// Assumes lock is held by caller.
func (s *Session) scheduleComputerTurn(delay time.Duration) bool {
	s.stopComputerTimer()
	if s.closed || s.Engine.IsTerminal() || s.Engine.ActingKind() != engine.Computer {
		return false
	}

	expectedTurn := s.Engine.HalfTurns
	expectedGame := s.GameNumber
	s.computerTimer = time.AfterFunc(delay, func() {
		s.Mu.Lock()
		defer s.Mu.Unlock()

		if s.closed || s.GameNumber != expectedGame || s.Engine.HalfTurns != expectedTurn {
			return
		}
		s.computerTimer = nil
		if _, err := s.applyComputerTurn(); err != nil {
			s.fireEvent(Event{
				Type:    EventComputerFailed,
				Player:  s.eventPlayer(s.Engine.ActingPlayer()),
				Message: err.Error(),
			})
		}
	})
	return true
}

// stopComputerTimer cancels a pending computer turn.
// Assumes lock is held by caller.
func (s *Session) stopComputerTimer() {
	if s.computerTimer != nil {
		s.computerTimer.Stop()
		s.computerTimer = nil
	}
}

// applyComputerTurn runs one engine computer half-turn and broadcasts it.
// Assumes lock is held by caller.
func (s *Session) applyComputerTurn() (engine.Token, error) {
	actor := s.Engine.ActingPlayer()
	phase := s.Engine.Phase
	tok, c, out, err := s.Engine.ApplyComputerTurn(s.strategy)
	if err != nil {
		s.log.WithError(err).WithField("player", s.Players[actor].Name).Warn("Computer turn refused.")
		return engine.NoToken, fmt.Errorf("computer turn: %w", err)
	}

	entry := s.log.WithFields(logrus.Fields{"player": s.Players[actor].Name, "token": tok.Code()})
	if phase == engine.PhaseSelect {
		entry.WithField("safe", engine.IsSafe(&s.Engine.Board, tok)).Debug("Computer chose token.")
		s.afterSelect(actor, tok)
	} else {
		entry.WithField("cell", c.String()).Debug("Computer chose cell.")
		s.afterPlace(actor, tok, c, out)
	}
	return tok, nil
}

// afterSelect logs and broadcasts a successful selection.
// Assumes lock is held by caller.
func (s *Session) afterSelect(selector uint8, tok engine.Token) {
	s.log.WithFields(logrus.Fields{
		"player": s.Players[selector].Name,
		"token":  tok.Code(),
	}).Info("Token selected.")
	s.fireEvent(Event{
		Type:   EventTokenSelected,
		Player: s.eventPlayer(selector),
		Token:  tok.Code(),
	})
	s.onTurnAdvanced()
}

// afterPlace logs and broadcasts a successful placement.
// Assumes lock is held by caller.
func (s *Session) afterPlace(placer uint8, tok engine.Token, c engine.Cell, out engine.Outcome) {
	s.log.WithFields(logrus.Fields{
		"player":  s.Players[placer].Name,
		"token":   tok.Code(),
		"cell":    c.String(),
		"outcome": out.String(),
	}).Info("Token placed.")
	s.fireEvent(Event{
		Type:   EventTokenPlaced,
		Player: s.eventPlayer(placer),
		Token:  tok.Code(),
		Cell:   c.String(),
	})
	s.onTurnAdvanced()
}

// rejected logs a refused move.
// Assumes lock is held by caller.
func (s *Session) rejected(action, arg string, err error) {
	s.log.WithError(err).WithFields(logrus.Fields{
		"action": action,
		"arg":    arg,
		"phase":  s.Engine.Phase.String(),
	}).Warn("Move rejected.")
}
