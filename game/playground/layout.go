package playground

import (
	"github.com/gaorkl/simple-playgrounds-sub000/common/utils/vector"
	"github.com/gaorkl/simple-playgrounds-sub000/game/config"
	"github.com/pkg/errors"
)

const (
	LayoutSingleRoom     = "single_room"
	LayoutConnectedRooms = "connected_rooms"
)

// Room is an area enclosed by walls
type Room struct {
	Center        vector.Vector2
	Width, Length float64
}

// Sampler draws uniformly in the room, keeping margin away from its walls
func (r Room) Sampler(margin float64, randomAngle bool) RectangleSampler {
	return RectangleSampler{
		Center:      r.Center,
		Width:       r.Width - 2*margin,
		Length:      r.Length - 2*margin,
		RandomAngle: randomAngle,
	}
}

// Layout builds a walled playground from the defaults of the given layout
type Layout struct {
	Playground *Playground
	Rooms      [][]Room
	Walls      []*Wall
}

// NewPlayground builds the playground of layout, walls included. The walls
// lie outside [0, width] x [0, length].
func NewPlayground(layout string, overrides config.Params) (*Layout, error) {
	var cfg Config
	if err := config.Default().Decode("playground", layout, overrides, &cfg); err != nil {
		return nil, errors.Wrapf(ErrInvalidConfig, "%s", err)
	}

	if cfg.Size[0] <= 0 || cfg.Size[1] <= 0 {
		return nil, errors.Wrapf(ErrInvalidConfig, "playground size %v", cfg.Size)
	}

	if cfg.WallDepth <= 0 {
		return nil, errors.Wrapf(ErrInvalidConfig, "wall depth %v", cfg.WallDepth)
	}

	cols, rows := cfg.Rooms[0], cfg.Rooms[1]
	if layout == LayoutSingleRoom || (cols == 0 && rows == 0) {
		cols, rows = 1, 1
	}

	if cols <= 0 || rows <= 0 {
		return nil, errors.Wrapf(ErrInvalidConfig, "rooms %v", cfg.Rooms)
	}

	l := &Layout{Playground: New(cfg)}

	wallParams := config.Params{}
	if tex := textureParams(cfg); tex != nil {
		wallParams["texture"] = tex
	}
	for _, segment := range outerWalls(cfg.Size[0], cfg.Size[1], cfg.WallDepth) {
		if err := l.addWall(segment[0], segment[1], cfg.WallDepth, wallParams); err != nil {
			return nil, err
		}
	}

	roomWidth := cfg.Size[0] / float64(cols)
	roomLength := cfg.Size[1] / float64(rows)

	for c := 1; c < cols; c++ {
		x := float64(c) * roomWidth
		for r := 0; r < rows; r++ {
			start := vector.MakeVector2(x, float64(r)*roomLength)
			end := vector.MakeVector2(x, float64(r+1)*roomLength)
			for _, segment := range splitWall(start, end, cfg.DoorstepSize) {
				if err := l.addWall(segment[0], segment[1], cfg.WallDepth, wallParams); err != nil {
					return nil, err
				}
			}
		}
	}

	for r := 1; r < rows; r++ {
		y := float64(r) * roomLength
		for c := 0; c < cols; c++ {
			start := vector.MakeVector2(float64(c)*roomWidth, y)
			end := vector.MakeVector2(float64(c+1)*roomWidth, y)
			for _, segment := range splitWall(start, end, cfg.DoorstepSize) {
				if err := l.addWall(segment[0], segment[1], cfg.WallDepth, wallParams); err != nil {
					return nil, err
				}
			}
		}
	}

	l.Rooms = make([][]Room, cols)
	for c := 0; c < cols; c++ {
		l.Rooms[c] = make([]Room, rows)
		for r := 0; r < rows; r++ {
			l.Rooms[c][r] = Room{
				Center: vector.MakeVector2((float64(c)+0.5)*roomWidth, (float64(r)+0.5)*roomLength),
				Width:  roomWidth,
				Length: roomLength,
			}
		}
	}

	return l, nil
}

func (l *Layout) addWall(start, end vector.Vector2, depth float64, params config.Params) error {
	wall, coordinates, err := NewWallBetween(start, end, depth, params)
	if err != nil {
		return err
	}

	if err := l.Playground.AddElement(wall, coordinates, true, 1); err != nil {
		return err
	}

	l.Walls = append(l.Walls, wall)
	return nil
}

// Room returns the room at column c and row r, counted from the bottom left
func (l *Layout) Room(c, r int) (Room, error) {
	if c < 0 || c >= len(l.Rooms) || r < 0 || r >= len(l.Rooms[c]) {
		return Room{}, errors.Errorf("no room at (%d, %d)", c, r)
	}

	return l.Rooms[c][r], nil
}

// outerWalls run along the outside of the playground, overlapping at corners
func outerWalls(width, length, depth float64) [][2]vector.Vector2 {
	h := depth / 2
	return [][2]vector.Vector2{
		{vector.MakeVector2(-depth, -h), vector.MakeVector2(width+depth, -h)},
		{vector.MakeVector2(-depth, length+h), vector.MakeVector2(width+depth, length+h)},
		{vector.MakeVector2(-h, 0), vector.MakeVector2(-h, length)},
		{vector.MakeVector2(width+h, 0), vector.MakeVector2(width+h, length)},
	}
}

// splitWall leaves a doorstep gap in the middle of the wall from start to end
func splitWall(start, end vector.Vector2, doorstep float64) [][2]vector.Vector2 {
	length := start.Dist(end)
	if doorstep <= 0 || doorstep >= length {
		if doorstep >= length {
			return nil
		}
		return [][2]vector.Vector2{{start, end}}
	}

	dir := end.Sub(start).Normalize()
	middle := start.Lerp(end, 0.5)
	half := dir.Scale(doorstep / 2)

	return [][2]vector.Vector2{
		{start, middle.Sub(half)},
		{middle.Add(half), end},
	}
}

func textureParams(cfg Config) config.Params {
	tex := cfg.WallTexture
	if tex.Type == "" {
		return nil
	}

	return config.Params{
		"type":      tex.Type,
		"color":     rgbList(tex.Color),
		"color_min": rgbList(tex.ColorMin),
		"color_max": rgbList(tex.ColorMax),
		"size":      tex.Size,
		"seed":      tex.Seed,
	}
}

func rgbList(c [3]uint8) []interface{} {
	return []interface{}{int(c[0]), int(c[1]), int(c[2])}
}
