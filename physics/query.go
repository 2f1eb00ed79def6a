package physics

import (
	"math"
	"sort"

	"github.com/gaorkl/simple-playgrounds-sub000/common/utils/vector"
	"github.com/jakecoffman/cp"
)

// QueryFilter selects the fixtures a query may return; nil accepts all
type QueryFilter func(f *Fixture) bool

// overlapTolerance is the depth under which shapes are considered touching only
const overlapTolerance = 1e-6

var queryAll = cp.ShapeFilter{Categories: ^uint(0), Mask: ^uint(0)}

type SegmentHit struct {
	Fixture  *Fixture
	Point    vector.Vector2
	Normal   vector.Vector2
	Fraction float64
}

type PointHit struct {
	Fixture  *Fixture
	Point    vector.Vector2
	Distance float64
}

func (s *Space) accept(f *Fixture, filter QueryFilter) bool {
	if f == nil || f.body.destroyed {
		return false
	}

	return filter == nil || filter(f)
}

// SegmentQueryFirst returns the first fixture struck by a disc of the given
// radius swept from start to end. A disc starting on a fixture strikes it at
// fraction 0.
func (s *Space) SegmentQueryFirst(start, end vector.Vector2, radius float64, filter QueryFilter) (SegmentHit, bool) {
	best := SegmentHit{Fraction: math.Inf(1)}
	found := false

	keep := func(f *Fixture, normal vector.Vector2, fraction float64) {
		if fraction >= best.Fraction {
			return
		}

		best = SegmentHit{
			Fixture:  f,
			Point:    start.Lerp(end, fraction),
			Normal:   normal,
			Fraction: fraction,
		}
		found = true
	}

	for _, hit := range s.PointQuery(start, radius, filter) {
		keep(hit.Fixture, start.Sub(hit.Fixture.body.GetPosition()).Normalize(), 0)
	}

	if found {
		return best, true
	}

	a, b := toVect(start), toVect(end)
	s.space.SegmentQuery(a, b, radius, queryAll, func(shape *cp.Shape, _ cp.Vector, normal cp.Vector, alpha float64, _ interface{}) {
		f := s.fixtures[shape]
		if !s.accept(f, filter) {
			return
		}

		if f.skin > 0 {
			var info cp.SegmentQueryInfo
			if !shape.SegmentQuery(a, b, radius-f.skin, &info) {
				return
			}
			normal, alpha = info.Normal, info.Alpha
		}

		keep(f, fromVect(normal), alpha)
	}, nil)

	return best, found
}

// PointQuery returns every fixture within radius of center, nearest first
func (s *Space) PointQuery(center vector.Vector2, radius float64, filter QueryFilter) []PointHit {
	hits := make([]PointHit, 0)

	// the index is searched with the sensor skin so that grown shapes at the
	// boundary are not missed
	s.space.PointQuery(toVect(center), radius+s.sensorSkin, queryAll, func(shape *cp.Shape, _ cp.Vector, _ float64, _ cp.Vector, _ interface{}) {
		f := s.fixtures[shape]
		if !s.accept(f, filter) {
			return
		}

		point, dist := f.NearestPoint(center)
		if dist > radius {
			return
		}

		hits = append(hits, PointHit{Fixture: f, Point: point, Distance: dist})
	}, nil)

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})

	return hits
}

// Overlaps is an exact test: touching shapes do not overlap
func Overlaps(a, b *Fixture) bool {
	set := cp.ShapesCollide(a.cpShape, b.cpShape)
	for i := 0; i < set.Count; i++ {
		if set.Points[i].Distance < -(a.skin + b.skin + overlapTolerance) {
			return true
		}
	}

	return false
}

// OverlappingFixtures returns the fixtures of other bodies overlapping f
func (s *Space) OverlappingFixtures(f *Fixture, filter QueryFilter) []*Fixture {
	res := make([]*Fixture, 0)
	s.space.BBQuery(f.GetAABB().toBB(), queryAll, func(shape *cp.Shape, _ interface{}) {
		other := s.fixtures[shape]
		if other == nil || other.body == f.body || !s.accept(other, filter) {
			return
		}

		if Overlaps(f, other) {
			res = append(res, other)
		}
	}, nil)

	return res
}
