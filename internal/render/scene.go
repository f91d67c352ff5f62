package render

import (
	"fmt"
	"strconv"

	"github.com/lox/pong/internal/game"
)

const (
	dividerWidth = 4
	scoreTop     = 30
)

// DrawFrame paints s in a fixed order: background, divider, paddles, ball,
// scores, then the popup, game-over and paused overlays when they apply.
func DrawFrame(r Renderer, s game.State, theme Theme) {
	r.Clear(theme.Background)

	r.DrawRect(s.Width/2-dividerWidth/2, 0, dividerWidth, s.Height, theme.Divider)

	left, right := s.Paddles[game.Left], s.Paddles[game.Right]
	r.DrawRect(left.X, left.Y, left.W, left.H, theme.Left)
	r.DrawRect(right.X, right.Y, right.W, right.H, theme.Right)

	r.DrawRect(s.Ball.X, s.Ball.Y, s.Ball.W, s.Ball.H, theme.Ball)

	drawCentered(r, strconv.Itoa(s.Score.P1), s.Width/4, scoreTop, theme.Score)
	drawCentered(r, strconv.Itoa(s.Score.P2), s.Width*3/4, scoreTop, theme.Score)

	if s.Popup.Visible() {
		c := theme.Left
		if s.Popup.Scorer == 2 {
			c = theme.Right
		}
		text := fmt.Sprintf("PLAYER %d +1", s.Popup.Scorer)
		_, h := r.MeasureText(text)
		drawCentered(r, text, s.Width/2, s.Height/2-h/2, c)
	}

	if s.Round == game.GameOver {
		title := fmt.Sprintf("PLAYER %d WINS!", s.Winner())
		_, h := r.MeasureText(title)
		drawCentered(r, title, s.Width/2, s.Height/2-h*1.5, theme.Winner)
		drawCentered(r, "Press R to Restart", s.Width/2, s.Height/2+h/2, theme.Hint)
	}

	if s.Round == game.Paused {
		_, h := r.MeasureText("PAUSED")
		drawCentered(r, "PAUSED", s.Width/2, s.Height/2-h/2, theme.Paused)
	}

	r.Present()
}

func drawCentered(r Renderer, text string, cx, y float64, c Color) {
	w, _ := r.MeasureText(text)
	r.DrawText(text, cx-w/2, y, c)
}
