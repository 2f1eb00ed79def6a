package playground

import (
	"github.com/gaorkl/simple-playgrounds-sub000/common/utils/vector"
	"golang.org/x/exp/rand"
)

// Trajectory moves an entity along waypoints at a constant speed (units per
// tick). Looped trajectories close the polyline, others go back and forth.
type Trajectory struct {
	points []vector.Vector2
	index  int
}

func NewTrajectory(waypoints []vector.Vector2, speed float64, loop bool) *Trajectory {
	path := append([]vector.Vector2(nil), waypoints...)
	if loop && len(path) > 1 {
		path = append(path, path[0])
	}

	points := make([]vector.Vector2, 0)
	if len(path) > 0 {
		points = append(points, path[0])
	}

	for i := 1; i < len(path); i++ {
		from, to := path[i-1], path[i]
		dist := from.Dist(to)
		n := 1
		if speed > 0 {
			n = int(dist / speed)
			if n < 1 {
				n = 1
			}
		}
		for k := 1; k <= n; k++ {
			points = append(points, from.Lerp(to, float64(k)/float64(n)))
		}
	}

	if loop && len(points) > 1 {
		// the last point repeats the first
		points = points[:len(points)-1]
	}

	t := &Trajectory{points: points}
	if !loop && len(points) > 1 {
		// walking back skips the end points
		for i := len(points) - 2; i > 0; i-- {
			t.points = append(t.points, points[i])
		}
	}

	return t
}

// Sample returns the current point, so a trajectory is also where its entity
// is first placed
func (t *Trajectory) Sample(src rand.Source) (vector.Vector2, float64) {
	return t.Current(), 0
}

func (t *Trajectory) Current() vector.Vector2 {
	if len(t.points) == 0 {
		return vector.MakeNullVector2()
	}

	return t.points[t.index]
}

// Next advances one tick and returns the new point
func (t *Trajectory) Next() vector.Vector2 {
	if len(t.points) > 0 {
		t.index = (t.index + 1) % len(t.points)
	}

	return t.Current()
}

func (t *Trajectory) Len() int {
	return len(t.points)
}

func (t *Trajectory) Reset() {
	t.index = 0
}
