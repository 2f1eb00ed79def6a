package playground

import (
	"github.com/gaorkl/simple-playgrounds-sub000/game/config"
)

// ContactElement grants its reward to the agent touching it. Candies and
// poisons vanish on contact, goal and death zones end the episode.
type ContactElement struct {
	interactiveElement
	removeOnContact bool
}

func newContactElement(kind ElementKind, overrides config.Params, remove, terminate bool) (*ContactElement, error) {
	cfg, err := decodeElement(kind, overrides)
	if err != nil {
		return nil, err
	}

	base, err := makeInteractiveElement(kind, cfg, CategoryContact)
	if err != nil {
		return nil, err
	}
	base.terminate = terminate

	return &ContactElement{interactiveElement: base, removeOnContact: remove}, nil
}

func NewCandy(overrides config.Params) (*ContactElement, error) {
	return newContactElement(KindCandy, overrides, true, false)
}

func NewPoison(overrides config.Params) (*ContactElement, error) {
	return newContactElement(KindPoison, overrides, true, false)
}

func NewGoalZone(overrides config.Params) (*ContactElement, error) {
	return newContactElement(KindGoalZone, overrides, false, true)
}

func NewDeathZone(overrides config.Params) (*ContactElement, error) {
	return newContactElement(KindDeathZone, overrides, false, true)
}

func (e *ContactElement) Activate(agent *Agent) Outcome {
	if !e.begin() {
		return Outcome{}
	}

	out := Outcome{Terminate: e.terminate}
	if e.removeOnContact {
		out.Remove = []SceneElement{e}
	}

	return out
}

// RewardZone pays its reward every tick an agent stands in it, until its
// total is spent
type RewardZone struct {
	interactiveElement
	total     float64
	remaining float64
}

func NewRewardZone(overrides config.Params) (*RewardZone, error) {
	cfg, err := decodeElement(KindRewardZone, overrides)
	if err != nil {
		return nil, err
	}

	base, err := makeInteractiveElement(KindRewardZone, cfg, CategoryContact)
	if err != nil {
		return nil, err
	}

	return &RewardZone{interactiveElement: base, total: cfg.TotalReward, remaining: cfg.TotalReward}, nil
}

func (z *RewardZone) Remaining() float64 {
	return z.remaining
}

func (z *RewardZone) Activate(agent *Agent) Outcome {
	z.begin()
	return Outcome{}
}

func (z *RewardZone) TakeReward() (float64, bool) {
	if z.rewardProvided || z.remaining <= 0 {
		return 0, false
	}

	z.rewardProvided = true

	amount := z.reward
	if amount > z.remaining {
		amount = z.remaining
	}
	z.remaining -= amount

	return amount, true
}

func (z *RewardZone) Reset() {
	z.interactiveElement.Reset()
	z.remaining = z.total
}
