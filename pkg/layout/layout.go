// Package layout describes the editor geometry attached to a machine.
//
// espalier never interprets the geometry; it only carries it between a
// property list (the representation editors exchange) and a bundle on disk.
package layout

import (
	"fmt"

	"github.com/aretw0/espalier/pkg/domain"
)

// Point is a position in editor coordinates.
type Point struct {
	X float64 `mapstructure:"x" yaml:"x"`
	Y float64 `mapstructure:"y" yaml:"y"`
}

// Curve is a cubic Bezier curve.
type Curve struct {
	Start    Point `mapstructure:"start" yaml:"start"`
	Control1 Point `mapstructure:"control1" yaml:"control1"`
	Control2 Point `mapstructure:"control2" yaml:"control2"`
	End      Point `mapstructure:"end" yaml:"end"`
}

// Line returns the straight curve from a to b.
func Line(a, b Point) Curve {
	return Curve{
		Start:    a,
		Control1: lerp(a, b, 1.0/3),
		Control2: lerp(a, b, 2.0/3),
		End:      b,
	}
}

func lerp(a, b Point, t float64) Point {
	return Point{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
}

// At evaluates the curve at t in [0, 1].
func (c Curve) At(t float64) Point {
	u := 1 - t
	b0 := u * u * u
	b1 := 3 * u * u * t
	b2 := 3 * u * t * t
	b3 := t * t * t
	return Point{
		X: b0*c.Start.X + b1*c.Control1.X + b2*c.Control2.X + b3*c.End.X,
		Y: b0*c.Start.Y + b1*c.Control1.Y + b2*c.Control2.Y + b3*c.End.Y,
	}
}

// TransitionLayout is the geometry of one transition.
type TransitionLayout struct {
	Curve Curve `mapstructure:"curve" yaml:"curve"`
}

// StateLayout is the geometry of one state and its outgoing transitions.
type StateLayout struct {
	Name        string             `mapstructure:"name" yaml:"name"`
	Position    Point              `mapstructure:"position" yaml:"position"`
	Width       float64            `mapstructure:"width" yaml:"width"`
	Height      float64            `mapstructure:"height" yaml:"height"`
	Expanded    bool               `mapstructure:"expanded" yaml:"expanded"`
	Transitions []TransitionLayout `mapstructure:"transitions" yaml:"transitions"`
}

// Center returns the middle of the state's bounding box.
func (s StateLayout) Center() Point {
	return Point{X: s.Position.X + s.Width/2, Y: s.Position.Y + s.Height/2}
}

// Layout is the geometry of a whole machine, one entry per state in StateID order.
type Layout struct {
	States []StateLayout `mapstructure:"states" yaml:"states"`
}

// Grid defaults.
const (
	StateWidth  = 150
	StateHeight = 100
	Spacing     = 50
	Columns     = 4
)

// Default places the states of m on a grid and draws every resolved
// transition as a straight line between state centres.
func Default(m domain.FSM) Layout {
	states := m.States()
	l := Layout{States: make([]StateLayout, len(states))}
	for i, s := range states {
		col, row := i%Columns, i/Columns
		l.States[i] = StateLayout{
			Name: s.Name,
			Position: Point{
				X: float64(col * (StateWidth + Spacing)),
				Y: float64(row * (StateHeight + Spacing)),
			},
			Width:       StateWidth,
			Height:      StateHeight,
			Transitions: make([]TransitionLayout, 0),
		}
	}
	for _, t := range m.Transitions() {
		if int(t.Source) < 0 || int(t.Source) >= len(l.States) {
			continue
		}
		src := &l.States[t.Source]
		end := src.Center()
		if id, ok := t.Target.Get(); ok && id >= 0 && int(id) < len(l.States) {
			end = l.States[id].Center()
		}
		src.Transitions = append(src.Transitions, TransitionLayout{Curve: Line(src.Center(), end)})
	}
	return l
}

// Check reports whether l has one entry per state of m, in order, and one
// transition layout per transition.
func (l Layout) Check(m domain.FSM) error {
	states := m.States()
	if len(l.States) != len(states) {
		return fmt.Errorf("layout has %d states, machine has %d", len(l.States), len(states))
	}
	for i, s := range states {
		if l.States[i].Name != s.Name {
			return fmt.Errorf("layout state %d is %q, machine state is %q", i, l.States[i].Name, s.Name)
		}
		want := 0
		for _, t := range m.Transitions() {
			if int(t.Source) == i {
				want++
			}
		}
		if got := len(l.States[i].Transitions); got != want {
			return fmt.Errorf("layout of %s has %d transitions, machine has %d", s.Name, got, want)
		}
	}
	return nil
}
