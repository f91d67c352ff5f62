// Package game implements the Pong match state machine.
//
// The main type is Game, which owns both paddles, the ball, the score, the
// round state and the score popup. A frame loop drives it in two steps:
//
//	quit := g.HandleDiscreteEvents(events) // pause, restart, quit presses
//	if !quit {
//	    g.Update(dt, held)                 // physics, collisions, scoring
//	}
//	state := g.Snapshot()                  // read-only copy for rendering
//
// # Rules
//
// Paddles move at PaddleSpeed while their key is held and stay inside the
// playfield. The ball bounces off the top and bottom walls, speeds up by
// SpeedIncrement on every paddle contact, and re-serves from the centre at
// BaseBallSpeed after a point. The first player to WinScore ends the round;
// only Restart starts a new one.
//
// Update is deterministic and never fails. It does not validate dt; callers
// clamp it at the loop boundary.
package game
