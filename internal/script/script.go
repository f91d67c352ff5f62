// Package script replays a timed input sequence described in HCL, for
// running matches without a terminal.
//
//	step     = 0.016
//	duration = 12
//
//	hold "p1_down" {
//	  from = 0.5
//	  to   = 1.2
//	}
//
//	press "toggle_pause" {
//	  at = 3
//	}
//
// Times are seconds from the start of the run. A Quit is emitted once the run
// reaches duration.
package script

import (
	"fmt"
	"os"
	"sort"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/pong/internal/game"
)

// DefaultStep is the frame step used when a script does not set one.
const DefaultStep = 1.0 / 60

type scriptFile struct {
	Step     float64      `hcl:"step,optional"`
	Duration float64      `hcl:"duration"`
	Holds    []holdBlock  `hcl:"hold,block"`
	Presses  []pressBlock `hcl:"press,block"`
}

type holdBlock struct {
	Key  string  `hcl:"key,label"`
	From float64 `hcl:"from"`
	To   float64 `hcl:"to"`
}

type pressBlock struct {
	Event string  `hcl:"event,label"`
	At    float64 `hcl:"at"`
}

// Hold keeps a movement key down over [From, To)
type Hold struct {
	Key      game.Key
	From, To float64
}

// Press fires a discrete event at a point in time
type Press struct {
	Event game.Event
	At    float64
}

// Script is a validated input timeline
type Script struct {
	Step     float64
	Duration float64
	Holds    []Hold
	Presses  []Press // sorted by At, file order kept for ties
}

// Load reads and validates a script file.
func Load(filename string) (*Script, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes and validates script source.
func Parse(src []byte, filename string) (*Script, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse script: %s", diags.Error())
	}

	var sf scriptFile
	diags = gohcl.DecodeBody(file.Body, nil, &sf)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode script: %s", diags.Error())
	}

	s := &Script{Step: sf.Step, Duration: sf.Duration}
	if s.Step == 0 {
		s.Step = DefaultStep
	}
	if s.Step < 0 {
		return nil, fmt.Errorf("step must be positive")
	}
	if s.Duration <= 0 {
		return nil, fmt.Errorf("duration must be positive")
	}

	for _, hb := range sf.Holds {
		k, ok := game.ParseKey(hb.Key)
		if !ok {
			return nil, fmt.Errorf("unknown key %q", hb.Key)
		}
		if hb.From < 0 || hb.To <= hb.From {
			return nil, fmt.Errorf("hold %q: need 0 <= from < to, got %v..%v", hb.Key, hb.From, hb.To)
		}
		s.Holds = append(s.Holds, Hold{Key: k, From: hb.From, To: hb.To})
	}

	for _, pb := range sf.Presses {
		ev, ok := game.ParseEvent(pb.Event)
		if !ok {
			return nil, fmt.Errorf("unknown event %q", pb.Event)
		}
		if pb.At < 0 {
			return nil, fmt.Errorf("press %q: at cannot be negative", pb.Event)
		}
		s.Presses = append(s.Presses, Press{Event: ev, At: pb.At})
	}
	sort.SliceStable(s.Presses, func(i, j int) bool {
		return s.Presses[i].At < s.Presses[j].At
	})

	return s, nil
}

// Timer reports the current run time in seconds.
type Timer interface {
	Now() float64
}

// Player feeds a script to a frame loop as its input source.
type Player struct {
	script *Script
	timer  Timer
	next   int
	ended  bool
}

// NewPlayer replays s against the given timer.
func NewPlayer(s *Script, timer Timer) *Player {
	return &Player{script: s, timer: timer}
}

// HeldKeys returns the keys whose hold range covers the current time.
func (p *Player) HeldKeys() game.KeySet {
	now := p.timer.Now()
	var held game.KeySet
	for _, h := range p.script.Holds {
		if now >= h.From && now < h.To {
			held = held.With(h.Key)
		}
	}
	return held
}

// PollDiscreteEvents returns presses that have come due since the last call,
// followed by Quit once the duration is reached.
func (p *Player) PollDiscreteEvents() []game.Event {
	now := p.timer.Now()
	var events []game.Event
	for p.next < len(p.script.Presses) && p.script.Presses[p.next].At <= now {
		events = append(events, p.script.Presses[p.next].Event)
		p.next++
	}
	if !p.ended && now >= p.script.Duration {
		p.ended = true
		events = append(events, game.Quit)
	}
	return events
}
