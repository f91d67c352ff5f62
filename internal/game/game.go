package game

import (
	"io"
	"math"

	"github.com/charmbracelet/log"
)

// Option configures a Game during creation.
type Option func(*Game)

// WithLogger attaches a logger for round transitions and scoring.
func WithLogger(logger *log.Logger) Option {
	return func(g *Game) {
		g.logger = logger.WithPrefix("game")
	}
}

// Game owns all mutable match state and advances it one frame at a time.
// It is not safe for concurrent use; the frame loop is its only caller.
type Game struct {
	paddles   [2]Paddle
	ball      Ball
	ballSpeed float64
	score     Score
	round     RoundState
	popup     ScorePopup
	logger    *log.Logger
}

// New returns a game in the Playing state with both paddles centred and the
// ball served from the centre.
func New(opts ...Option) *Game {
	g := &Game{
		logger: log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(g)
	}

	paddleY := (FieldHeight - PaddleHeight) / 2
	g.paddles[Left] = Paddle{Rect{X: PaddleInset, Y: paddleY, W: PaddleWidth, H: PaddleHeight}}
	g.paddles[Right] = Paddle{Rect{X: FieldWidth - PaddleInset - PaddleWidth, Y: paddleY, W: PaddleWidth, H: PaddleHeight}}
	g.serve(1, 1)
	return g
}

// HandleDiscreteEvents applies events in arrival order and reports whether a
// Quit was seen. Events after a Quit are not processed.
func (g *Game) HandleDiscreteEvents(events []Event) bool {
	for _, ev := range events {
		switch ev {
		case Quit:
			g.logger.Debug("Quit requested")
			return true
		case TogglePause:
			g.togglePause()
		case Restart:
			g.Restart()
		}
	}
	return false
}

func (g *Game) togglePause() {
	switch g.round {
	case Playing:
		g.round = Paused
	case Paused:
		g.round = Playing
	default:
		// only Restart leaves GameOver
		return
	}
	g.logger.Debug("Pause toggled", "round", g.round)
}

// Restart zeroes the score and re-serves from the centre at base speed. The
// paddles stay where they are.
func (g *Game) Restart() {
	g.score = Score{}
	g.round = Playing
	g.popup = ScorePopup{}
	g.serve(1, 1)
	g.logger.Info("Match restarted")
}

// Update advances the match by dt seconds using the held keys. It does
// nothing unless the round is Playing. dt is used as given.
func (g *Game) Update(dt float64, keys KeySet) {
	if g.round != Playing {
		return
	}

	for side := range g.paddles {
		g.movePaddle(PaddleSide(side), dt, keys)
	}

	step := dt * (g.ballSpeed / SpeedUnit)
	g.ball.X += g.ball.VX * step
	g.ball.Y += g.ball.VY * step

	if g.ball.Y <= 0 || g.ball.Y+g.ball.H >= FieldHeight {
		g.ball.VY = -g.ball.VY
	}

	// Both checks always run. When the ball overlaps both paddles the right
	// paddle is evaluated last and decides the direction.
	if g.ball.Intersects(g.paddles[Left].Rect) {
		g.ball.VX = math.Abs(g.ball.VX)
		g.ballSpeed += SpeedIncrement
	}
	if g.ball.Intersects(g.paddles[Right].Rect) {
		g.ball.VX = -math.Abs(g.ball.VX)
		g.ballSpeed += SpeedIncrement
	}

	if g.ball.X <= 0 {
		g.point(2)
	} else if g.ball.X+g.ball.W >= FieldWidth {
		g.point(1)
	}

	if g.score.P1 >= WinScore || g.score.P2 >= WinScore {
		g.round = GameOver
		g.logger.Info("Match over", "p1", g.score.P1, "p2", g.score.P2)
	}

	if g.popup.Remaining > 0 {
		g.popup.Remaining -= dt
	}
}

func (g *Game) movePaddle(side PaddleSide, dt float64, keys KeySet) {
	p := &g.paddles[side]
	maxY := FieldHeight - p.H
	ctl := Controls[side]

	if keys.Has(ctl.Up) && p.Y > 0 {
		p.Y -= PaddleSpeed * dt
	}
	if keys.Has(ctl.Down) && p.Y < maxY {
		p.Y += PaddleSpeed * dt
	}
	p.Y = math.Max(0, math.Min(p.Y, maxY))
}

// point credits a player and re-serves. The ball heads right after player 2
// scores and left after player 1 scores; vertical direction carries over.
func (g *Game) point(player int) {
	dirX := 1.0
	if player == 1 {
		g.score.P1++
		dirX = -1
	} else {
		g.score.P2++
	}
	g.popup = ScorePopup{Scorer: player, Remaining: PopupDuration}

	_, dirY := g.ball.Direction()
	g.serve(dirX, float64(dirY))

	g.logger.Info("Point scored", "player", player, "p1", g.score.P1, "p2", g.score.P2)
}

func (g *Game) serve(dirX, dirY float64) {
	g.ball = Ball{
		Rect: Rect{X: FieldWidth / 2, Y: FieldHeight / 2, W: BallSize, H: BallSize},
		VX:   dirX * SpeedUnit,
		VY:   dirY * SpeedUnit,
	}
	g.ballSpeed = BaseBallSpeed
}

// Round returns the current round state.
func (g *Game) Round() RoundState {
	return g.round
}

// Snapshot returns a copy of the state for rendering.
func (g *Game) Snapshot() State {
	return State{
		Width:     FieldWidth,
		Height:    FieldHeight,
		Paddles:   g.paddles,
		Ball:      g.ball,
		BallSpeed: g.ballSpeed,
		Score:     g.score,
		Round:     g.round,
		Popup:     g.popup,
	}
}
