package game

// Playfield and rule constants. Positions and sizes are in playfield units
// (the 800x600 calibration space); speeds are units per second.
const (
	FieldWidth  = 800.0
	FieldHeight = 600.0

	PaddleWidth  = 20.0
	PaddleHeight = 100.0
	PaddleInset  = 50.0 // distance from a side wall to the paddle's outer edge
	PaddleSpeed  = 400.0

	BallSize = 15.0

	// SpeedUnit is the magnitude of each velocity component. Ball travel per
	// second on an axis is velocity * (speed / SpeedUnit), so a freshly served
	// ball covers BaseBallSpeed units per second on each axis.
	SpeedUnit      = 4.0
	BaseBallSpeed  = 400.0
	SpeedIncrement = 50.0

	WinScore = 5

	PopupDuration = 1.0
)
