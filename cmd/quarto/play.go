package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jordanlassers22/quarto/engine"
	"github.com/jordanlassers22/quarto/internal/config"
	"github.com/jordanlassers22/quarto/internal/session"
	"github.com/sirupsen/logrus"
)

var errQuit = errors.New("quit")

// run plays the configured number of games in one session.
func run(cfg config.Config, games int, logger *logrus.Logger, in io.Reader, out io.Writer) error {
	s, err := session.New(session.Options{
		Seed: cfg.Seed,
		Players: [2]session.PlayerOptions{
			{Name: cfg.PlayerNames[0], Computer: cfg.Computer[0]},
			{Name: cfg.PlayerNames[1], Computer: cfg.Computer[1]},
		},
		FirstSelector: cfg.FirstSelector,
		Placement:     cfg.Placement,
		AutoPlay:      true,
		ComputerDelay: cfg.ComputerDelay,
		Logger:        logger,
	})
	if err != nil {
		return err
	}
	defer s.Close()

	t := newTerminal(s, in, out)
	fmt.Fprintf(out, "Quarto: %s vs %s, seed %d\n", s.Players[0].Name, s.Players[1].Name, s.Seed)

	var score [2]int
	for game := 0; game < games; game++ {
		if game == 0 {
			s.Start()
		} else {
			fmt.Fprintln(out)
			if err := s.Restart(); err != nil {
				return err
			}
		}
		end, err := t.playGame()
		if errors.Is(err, errQuit) {
			fmt.Fprintln(out, "Bye.")
			return nil
		}
		if err != nil {
			return err
		}
		if end.Type == session.EventGameWon {
			for i, p := range s.Players {
				if p.ID == end.Player.ID {
					score[i]++
				}
			}
		}
	}
	if games > 1 {
		fmt.Fprintf(out, "Final score: %s %d, %s %d\n", s.Players[0].Name, score[0], s.Players[1].Name, score[1])
	}
	return nil
}

// terminal drives a session from a line-oriented reader and prints every
// event it receives.
type terminal struct {
	s      *session.Session
	in     *bufio.Scanner
	out    io.Writer
	events chan session.Event
}

func newTerminal(s *session.Session, in io.Reader, out io.Writer) *terminal {
	t := &terminal{
		s:   s,
		in:  bufio.NewScanner(in),
		out: out,
		// A whole game of events fits, so OnEvent never blocks under the
		// session lock.
		events: make(chan session.Event, 4*engine.NumTokens+8),
	}
	s.OnEvent = func(ev session.Event) { t.events <- ev }
	return t
}

// playGame consumes events until the current game ends.
func (t *terminal) playGame() (session.Event, error) {
	for {
		ev := <-t.events
		switch ev.Type {
		case session.EventTokenSelected:
			fmt.Fprintf(t.out, "%s hands over %s.\n", ev.Player.Name, describeCode(ev.Token))
		case session.EventTokenPlaced:
			fmt.Fprintf(t.out, "%s places %s on %s.\n", ev.Player.Name, ev.Token, ev.Cell)
			fmt.Fprint(t.out, t.s.BoardText())
		case session.EventGameWon:
			fmt.Fprintf(t.out, "Quarto! %s wins with %s sharing %s.\n",
				ev.Player.Name, strings.Join(ev.Line, " "), ev.Attribute)
			return ev, nil
		case session.EventGameDraw:
			fmt.Fprintln(t.out, "The board is full. Draw.")
			return ev, nil
		case session.EventComputerFailed:
			return ev, fmt.Errorf("computer turn failed: %s", ev.Message)
		case session.EventPlayerTurn:
			if ev.Player.Computer {
				continue
			}
			if err := t.humanTurn(ev); err != nil {
				return ev, err
			}
		}
	}
}

// humanTurn prompts until the player makes a legal move or quits.
func (t *terminal) humanTurn(ev session.Event) error {
	if ev.Phase == engine.PhaseSelect.String() && t.s.State().HalfTurns == 0 {
		fmt.Fprint(t.out, t.s.BoardText())
	}
	for {
		st := t.s.State()
		if ev.Phase == engine.PhaseSelect.String() {
			fmt.Fprintf(t.out, "%s, choose a token for your opponent: ", ev.Player.Name)
		} else {
			fmt.Fprintf(t.out, "%s, place %s on a cell: ", ev.Player.Name, describeCode(st.Pending))
		}
		if !t.in.Scan() {
			fmt.Fprintln(t.out)
			return errQuit
		}
		line := strings.TrimSpace(t.in.Text())

		switch strings.ToLower(line) {
		case "":
			continue
		case "quit", "exit":
			return errQuit
		case "help", "?":
			t.help()
			continue
		case "board":
			fmt.Fprint(t.out, t.s.BoardText())
			continue
		case "pool", "tokens":
			fmt.Fprintf(t.out, "Available: %s\n", strings.Join(st.Pool, " "))
			continue
		}

		var err error
		if ev.Phase == engine.PhaseSelect.String() {
			err = t.s.SelectToken(line)
		} else {
			_, err = t.s.PlaceToken(line)
		}
		if err == nil {
			return nil
		}
		fmt.Fprintf(t.out, "Not allowed: %s\n", reason(err))
	}
}

func (t *terminal) help() {
	fmt.Fprintln(t.out, "Tokens are size S/L, shape C/Q, color B/R, solid F or hollow H: e.g. LQRH.")
	fmt.Fprintln(t.out, "Cells are a column A-D and a row 1-4: e.g. B3.")
	fmt.Fprintln(t.out, "Commands: board, pool, help, quit.")
}

// reason turns an engine error into a short hint for the prompt.
func reason(err error) string {
	switch {
	case errors.Is(err, engine.ErrInvalidToken):
		return "that is not a token code (try 'help')"
	case errors.Is(err, engine.ErrInvalidCell):
		return "that is not a cell (A1 to D4)"
	case errors.Is(err, engine.ErrCellOccupied):
		return "that cell is taken"
	case errors.Is(err, engine.ErrInvalidSelection):
		return "that token is not available (try 'pool')"
	}
	return err.Error()
}

func describe(t engine.Token) string {
	return strings.ReplaceAll(t.Name(), "_", " ")
}

func describeCode(code string) string {
	t, err := engine.ParseToken(code)
	if err != nil {
		return code
	}
	return fmt.Sprintf("%s (%s)", code, describe(t))
}
