package engine

// PlayerKind says who drives a player's half-turns.
type PlayerKind uint8

const (
	Human    PlayerKind = iota // 0
	Computer                   // 1
)

func (k PlayerKind) String() string {
	if k == Computer {
		return "computer"
	}
	return "human"
}

// Options holds the per-game settings fixed at NewGame.
type Options struct {
	FirstSelector uint8         // player index (0 or 1) who hands over the first piece
	Kinds         [2]PlayerKind // human or computer, per player index
}

// DefaultOptions returns a human-vs-computer game where the computer hands
// over the first piece.
func DefaultOptions() Options {
	return Options{
		FirstSelector: 1,
		Kinds:         [2]PlayerKind{Human, Computer},
	}
}

// firstSelector returns the effective first selector, treating anything
// other than 1 as 0.
func (o *Options) firstSelector() uint8 {
	if o.FirstSelector == 1 {
		return 1
	}
	return 0
}
