package playground

import (
	"github.com/gaorkl/simple-playgrounds-sub000/common/utils/vector"
	"github.com/gaorkl/simple-playgrounds-sub000/game/config"
)

type Wall struct {
	element
}

func NewWall(overrides config.Params) (*Wall, error) {
	cfg, err := decodeElement(KindWall, overrides)
	if err != nil {
		return nil, err
	}

	base, err := makeElement(KindWall, cfg.EntityConfig, CategoryNone)
	if err != nil {
		return nil, err
	}

	return &Wall{element: base}, nil
}

// NewWallBetween builds a wall whose axis runs exactly from start to end,
// along with the coordinates it must be added at
func NewWallBetween(start, end vector.Vector2, depth float64, overrides config.Params) (*Wall, FixedCoordinates, error) {
	params := config.Merge(overrides, config.Params{
		"physical_shape": string(ShapeRectangle),
		"size":           []interface{}{start.Dist(end), depth},
	})

	wall, err := NewWall(params)
	if err != nil {
		return nil, FixedCoordinates{}, err
	}

	coordinates := FixedCoordinates{
		Position: start.Lerp(end, 0.5),
		Angle:    end.Sub(start).Angle(),
	}

	return wall, coordinates, nil
}

// BasicElement is an inert object; the movable kind can be pushed and grasped
type BasicElement struct {
	element
}

func NewBasicElement(kind ElementKind, overrides config.Params) (*BasicElement, error) {
	cfg, err := decodeElement(kind, overrides)
	if err != nil {
		return nil, err
	}

	base, err := makeElement(kind, cfg.EntityConfig, CategoryNone)
	if err != nil {
		return nil, err
	}

	return &BasicElement{element: base}, nil
}

// Door is opened by taking it out of the playground and closed by putting it
// back where it was first placed
type Door struct {
	element
}

func NewDoor(overrides config.Params) (*Door, error) {
	cfg, err := decodeElement(KindDoor, overrides)
	if err != nil {
		return nil, err
	}

	base, err := makeElement(KindDoor, cfg.EntityConfig, CategoryNone)
	if err != nil {
		return nil, err
	}

	return &Door{element: base}, nil
}

func (d *Door) IsOpen() bool {
	return !d.InWorld()
}

// toggle opens a closed door and closes an open one
func (d *Door) toggle() Outcome {
	if d.InWorld() {
		return Outcome{Remove: []SceneElement{d}}
	}

	return Outcome{Add: []Placement{{
		Element:          d,
		Coordinates:      FixedCoordinates{Position: d.initialPosition, Angle: d.initialAngle},
		AllowOverlapping: true,
	}}}
}

func (d *Door) OnTimer() Outcome {
	return d.toggle()
}
