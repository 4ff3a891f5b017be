package layout

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// PropertyListCodec converts a Layout to and from the generic property list
// (nested map[string]any and []any) exchanged with editors.
type PropertyListCodec interface {
	Encode(l Layout) map[string]any
	Decode(plist map[string]any) (Layout, error)
}

// MapCodec is the default PropertyListCodec.
type MapCodec struct{}

var _ PropertyListCodec = MapCodec{}

func point(p Point) map[string]any {
	return map[string]any{"x": p.X, "y": p.Y}
}

// Encode returns the property list of l.
func (MapCodec) Encode(l Layout) map[string]any {
	states := make([]any, len(l.States))
	for i, s := range l.States {
		transitions := make([]any, len(s.Transitions))
		for j, t := range s.Transitions {
			transitions[j] = map[string]any{
				"curve": map[string]any{
					"start":    point(t.Curve.Start),
					"control1": point(t.Curve.Control1),
					"control2": point(t.Curve.Control2),
					"end":      point(t.Curve.End),
				},
			}
		}
		states[i] = map[string]any{
			"name":        s.Name,
			"position":    point(s.Position),
			"width":       s.Width,
			"height":      s.Height,
			"expanded":    s.Expanded,
			"transitions": transitions,
		}
	}
	return map[string]any{"states": states}
}

// Decode parses a property list. Numbers may be any numeric type or numeric
// string; unknown keys are rejected.
func (MapCodec) Decode(plist map[string]any) (Layout, error) {
	var l Layout
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &l,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return Layout{}, err
	}
	if err := dec.Decode(plist); err != nil {
		return Layout{}, fmt.Errorf("invalid layout property list: %w", err)
	}
	return l, nil
}
