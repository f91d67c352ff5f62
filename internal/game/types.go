package game

// RoundState is the state of the current round
type RoundState int

const (
	Playing RoundState = iota
	Paused
	GameOver
)

func (s RoundState) String() string {
	switch s {
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case GameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Event is a discrete input signal, fired once per physical press
type Event int

const (
	Quit Event = iota
	TogglePause
	Restart
)

func (e Event) String() string {
	switch e {
	case Quit:
		return "quit"
	case TogglePause:
		return "toggle_pause"
	case Restart:
		return "restart"
	default:
		return "unknown"
	}
}

// ParseEvent maps an event name back to an Event.
func ParseEvent(name string) (Event, bool) {
	for _, ev := range []Event{Quit, TogglePause, Restart} {
		if ev.String() == name {
			return ev, true
		}
	}
	return 0, false
}

// Key is a continuously sampled movement control
type Key int

const (
	MoveP1Up Key = iota
	MoveP1Down
	MoveP2Up
	MoveP2Down
)

var keyNames = [...]string{"p1_up", "p1_down", "p2_up", "p2_down"}

func (k Key) String() string {
	if k < 0 || int(k) >= len(keyNames) {
		return "unknown"
	}
	return keyNames[k]
}

// ParseKey maps a key name (as used in config and scripts) back to a Key.
func ParseKey(name string) (Key, bool) {
	for i, n := range keyNames {
		if n == name {
			return Key(i), true
		}
	}
	return 0, false
}

// KeySet is the set of movement keys held during a frame
type KeySet uint8

// NewKeySet builds a set from the given keys.
func NewKeySet(keys ...Key) KeySet {
	var s KeySet
	for _, k := range keys {
		s = s.With(k)
	}
	return s
}

func (s KeySet) With(k Key) KeySet { return s | 1<<uint(k) }
func (s KeySet) Without(k Key) KeySet { return s &^ (1 << uint(k)) }
func (s KeySet) Has(k Key) bool { return s&(1<<uint(k)) != 0 }
func (s KeySet) Empty() bool { return s == 0 }

// PaddleSide identifies one of the two paddles
type PaddleSide int

const (
	Left PaddleSide = iota
	Right
)

func (s PaddleSide) String() string {
	if s == Left {
		return "left"
	}
	return "right"
}

// Player returns the 1-based player number controlling the side.
func (s PaddleSide) Player() int {
	return int(s) + 1
}

// Controls maps each side to its up and down keys.
var Controls = [2]struct{ Up, Down Key }{
	Left:  {Up: MoveP1Up, Down: MoveP1Down},
	Right: {Up: MoveP2Up, Down: MoveP2Down},
}

// Rect is an axis-aligned rectangle in playfield units
type Rect struct {
	X, Y, W, H float64
}

// Intersects reports whether two rectangles overlap. Touching edges count.
func (r Rect) Intersects(o Rect) bool {
	return r.X <= o.X+o.W && o.X <= r.X+r.W &&
		r.Y <= o.Y+o.H && o.Y <= r.Y+r.H
}

// Paddle is a player's bat. X is fixed per side; Y moves.
type Paddle struct {
	Rect
}

// Ball holds position and velocity. Each velocity component has magnitude
// SpeedUnit; its sign is the travel direction on that axis.
type Ball struct {
	Rect
	VX, VY float64
}

// Direction returns the travel sign on each axis (+1 or -1).
func (b Ball) Direction() (int, int) {
	return sign(b.VX), sign(b.VY)
}

func sign(v float64) int {
	if v < 0 {
		return -1
	}
	return 1
}

// Score is the running point count for both players
type Score struct {
	P1, P2 int
}

// ScorePopup is the transient "+1" overlay shown after a point
type ScorePopup struct {
	Scorer    int // 1 or 2, 0 before anyone has scored
	Remaining float64
}

// Visible reports whether the popup should be drawn.
func (p ScorePopup) Visible() bool {
	return p.Remaining > 0
}

// State is a frame-consistent copy of everything a renderer may read
type State struct {
	Width, Height float64
	Paddles       [2]Paddle
	Ball          Ball
	BallSpeed     float64
	Score         Score
	Round         RoundState
	Popup         ScorePopup
}

// Winner returns the winning player number once the round is over, or 0.
func (s State) Winner() int {
	if s.Round != GameOver {
		return 0
	}
	if s.Score.P1 > s.Score.P2 {
		return 1
	}
	return 2
}
