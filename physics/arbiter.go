package physics

import (
	"github.com/jakecoffman/cp"
)

// PreSolveFunc is called for every touching pair of a registered collision
// type pair, during the step. Returning false skips the contact response.
type PreSolveFunc func(arb *Arbiter, space *Space) bool

// Arbiter is a touching pair, ordered as the handler was registered
type Arbiter struct {
	fixtureA, fixtureB *Fixture
}

func (arb *Arbiter) Fixtures() (*Fixture, *Fixture) {
	return arb.fixtureA, arb.fixtureB
}

func (arb *Arbiter) Bodies() (*Body, *Body) {
	return arb.fixtureA.body, arb.fixtureB.body
}

func (s *Space) AddCollisionHandler(a, b CollisionType, handler PreSolveFunc) {
	h := s.space.NewCollisionHandler(cp.CollisionType(a), cp.CollisionType(b))
	h.PreSolveFunc = func(arb *cp.Arbiter, _ *cp.Space, _ interface{}) bool {
		shapeA, shapeB := arb.Shapes()

		fa, fb := s.fixtures[shapeA], s.fixtures[shapeB]
		if fa == nil || fb == nil || fa.body.destroyed || fb.body.destroyed {
			return false
		}

		return handler(&Arbiter{fixtureA: fa, fixtureB: fb}, s)
	}
}
