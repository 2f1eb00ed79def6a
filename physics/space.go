package physics

import (
	"github.com/gaorkl/simple-playgrounds-sub000/common/utils/vector"
	"github.com/jakecoffman/cp"
)

// Space owns the rigid-body world. Bodies and joints may be created or
// destroyed from collision handlers: they are flagged at once and the
// underlying world catches up when the step ends.
type Space struct {
	space      *cp.Space
	sensorSkin float64

	bodies   []*Body
	joints   []Joint
	fixtures map[*cp.Shape]*Fixture

	locked   bool
	deferred []func()

	fixtureSeq uint64
}

func NewSpace() *Space {
	space := cp.NewSpace()
	space.Iterations = 10
	space.SetDamping(0.9)

	return &Space{
		space:      space,
		sensorSkin: 1.0,
		fixtures:   make(map[*cp.Shape]*Fixture),
	}
}

func (s *Space) SetGravity(gravity vector.Vector2) {
	s.space.SetGravity(toVect(gravity))
}

// SetDamping sets the fraction of velocity kept after one unit of time
func (s *Space) SetDamping(damping float64) {
	s.space.SetDamping(damping)
}

func (s *Space) SetIterations(iterations int) {
	s.space.Iterations = uint(iterations)
}

// SetSensorSkin sets the distance under which sensor fixtures report a
// touch; fixtures created earlier keep their skin
func (s *Space) SetSensorSkin(skin float64) {
	s.sensorSkin = skin
}

func (s *Space) IsLocked() bool {
	return s.locked
}

func (s *Space) nextFixtureID() uint64 {
	s.fixtureSeq++
	return s.fixtureSeq
}

// unlocked runs fn now, or once the current step is over
func (s *Space) unlocked(fn func()) {
	if s.locked {
		s.deferred = append(s.deferred, fn)
		return
	}

	fn()
}

func (s *Space) CreateBody(def BodyDef) *Body {
	body := newBody(s, def)
	s.bodies = append(s.bodies, body)

	s.unlocked(func() {
		if !body.destroyed {
			s.space.AddBody(body.body)
			body.added = true
		}
	})

	return body
}

// DestroyBody removes the body with its fixtures and joints
func (s *Space) DestroyBody(body *Body) {
	if body == nil || body.space != s || body.destroyed {
		return
	}

	body.destroyed = true
	for _, j := range append([]Joint(nil), body.joints...) {
		s.DestroyJoint(j)
	}

	for _, f := range body.fixtures {
		delete(s.fixtures, f.cpShape)
	}

	for i, b := range s.bodies {
		if b == body {
			s.bodies = append(s.bodies[:i], s.bodies[i+1:]...)
			break
		}
	}

	s.unlocked(func() {
		for _, f := range body.fixtures {
			if f.added {
				s.space.RemoveShape(f.cpShape)
				f.added = false
			}
		}

		if body.added {
			s.space.RemoveBody(body.body)
			body.added = false
		}
	})
}

func (s *Space) CreateJoint(joint Joint) Joint {
	j := joint.base()
	j.a.joints = append(j.a.joints, joint)
	j.b.joints = append(j.b.joints, joint)
	s.joints = append(s.joints, joint)

	s.unlocked(func() {
		if !j.destroyed {
			s.space.AddConstraint(j.constraint)
			j.added = true
		}
	})

	return joint
}

func (s *Space) DestroyJoint(joint Joint) {
	if joint == nil || joint.base().destroyed {
		return
	}

	j := joint.base()
	j.destroyed = true
	j.a.detachJoint(joint)
	j.b.detachJoint(joint)

	for i, other := range s.joints {
		if other == joint {
			s.joints = append(s.joints[:i], s.joints[i+1:]...)
			break
		}
	}

	s.unlocked(func() {
		if j.added {
			s.space.RemoveConstraint(j.constraint)
			j.added = false
		}
	})
}

func (s *Space) BodyCount() int {
	return len(s.bodies)
}

func (s *Space) JointCount() int {
	return len(s.joints)
}

func (s *Space) FixtureCount() int {
	return len(s.fixtures)
}

func (s *Space) Step(dt float64) {
	if dt <= 0 {
		return
	}

	s.locked = true
	s.space.Step(dt)
	s.locked = false

	for len(s.deferred) > 0 {
		pending := s.deferred
		s.deferred = nil
		for _, fn := range pending {
			fn()
		}
	}
}
