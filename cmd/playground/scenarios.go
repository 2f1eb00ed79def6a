package main

import (
	"github.com/gaorkl/simple-playgrounds-sub000/game/config"
	"github.com/gaorkl/simple-playgrounds-sub000/game/playground"
	"github.com/gaorkl/simple-playgrounds-sub000/game/sensor"
)

type scenario struct {
	description string
	build       func() (*playground.Playground, error)
}

var scenarios = map[string]scenario{
	"goal": {
		description: "single room, a goal zone and fields of candies and poison",
		build:       buildGoal,
	},
	"rooms": {
		description: "2x2 connected rooms, a locked door and a chest",
		build:       buildRooms,
	},
	"market": {
		description: "two agents, a coin dispenser and a vending machine",
		build:       buildMarket,
	},
}

func explorer(name string, kinds ...sensor.Kind) (*playground.Agent, error) {
	agent, err := playground.NewBaseAgent(name, playground.KindForwardBackwardBase, nil)
	if err != nil {
		return nil, err
	}

	for _, kind := range kinds {
		s, err := sensor.New(kind, agent.Base(), nil)
		if err != nil {
			return nil, err
		}
		agent.AddSensor(s)
	}

	grasp, err := playground.NewGrasp(agent.Base(), playground.Discrete)
	if err != nil {
		return nil, err
	}
	agent.Base().AddActuator(grasp)

	activate, err := playground.NewActivate(agent.Base(), playground.Discrete)
	if err != nil {
		return nil, err
	}
	agent.Base().AddActuator(activate)

	return agent, nil
}

func buildGoal() (*playground.Playground, error) {
	layout, err := playground.NewPlayground(playground.LayoutSingleRoom, config.Params{"size": []interface{}{300, 300}})
	if err != nil {
		return nil, err
	}
	pg := layout.Playground

	goal, err := playground.NewGoalZone(nil)
	if err != nil {
		return nil, err
	}
	if err := pg.AddElement(goal, playground.At(270, 270, 0), false, 1); err != nil {
		return nil, err
	}

	room, err := layout.Room(0, 0)
	if err != nil {
		return nil, err
	}

	for _, kind := range []playground.ElementKind{playground.KindCandy, playground.KindPoison} {
		field, err := playground.NewField(playground.KindFactory(kind, nil), room.Sampler(20, false), 0.05, 5, 50)
		if err != nil {
			return nil, err
		}
		pg.AddSpawner(field)
	}

	agent, err := explorer("explorer", sensor.KindLidar, sensor.KindPerfectSemantic, sensor.KindPosition)
	if err != nil {
		return nil, err
	}

	return pg, pg.AddAgent(agent, playground.At(40, 40, 0), false, 1)
}

func buildRooms() (*playground.Playground, error) {
	layout, err := playground.NewPlayground(playground.LayoutConnectedRooms, config.Params{
		"size":  []interface{}{400, 400},
		"rooms": []interface{}{2, 2},
	})
	if err != nil {
		return nil, err
	}
	pg := layout.Playground

	door, err := playground.NewDoor(nil)
	if err != nil {
		return nil, err
	}
	if err := pg.AddElement(door, playground.At(200, 300, 0), true, 1); err != nil {
		return nil, err
	}

	place := func(element playground.SceneElement, col, row int) error {
		room, err := layout.Room(col, row)
		if err != nil {
			return err
		}
		return pg.AddElement(element, room.Sampler(30, true), false, 0)
	}

	// locks and chests are built against keys already in the playground
	key, err := playground.NewKey(nil)
	if err != nil {
		return nil, err
	}
	if err := place(key, 0, 0); err != nil {
		return nil, err
	}
	lock, err := playground.NewLock(door, key, nil)
	if err != nil {
		return nil, err
	}
	if err := place(lock, 0, 1); err != nil {
		return nil, err
	}

	chestKey, err := playground.NewKey(nil)
	if err != nil {
		return nil, err
	}
	if err := place(chestKey, 1, 0); err != nil {
		return nil, err
	}
	treasure, err := playground.NewCandy(nil)
	if err != nil {
		return nil, err
	}
	chest, err := playground.NewChest(chestKey, treasure, nil)
	if err != nil {
		return nil, err
	}
	if err := place(chest, 1, 1); err != nil {
		return nil, err
	}

	start, err := layout.Room(0, 0)
	if err != nil {
		return nil, err
	}

	agent, err := explorer("explorer", sensor.KindSemanticCones, sensor.KindTopdownLocal, sensor.KindTouch)
	if err != nil {
		return nil, err
	}

	return pg, pg.AddAgent(agent, start.Sampler(30, true), false, 0)
}

func buildMarket() (*playground.Playground, error) {
	layout, err := playground.NewPlayground(playground.LayoutSingleRoom, config.Params{"size": []interface{}{300, 200}})
	if err != nil {
		return nil, err
	}
	pg := layout.Playground

	dispenser, err := playground.NewDispenserOf(playground.KindFactory(playground.KindCoin, nil), nil)
	if err != nil {
		return nil, err
	}
	if err := pg.AddElement(dispenser, playground.At(60, 100, 0), false, 1); err != nil {
		return nil, err
	}

	machine, err := playground.NewVendingMachine(nil)
	if err != nil {
		return nil, err
	}
	if err := pg.AddElement(machine, playground.At(240, 100, 0), false, 1); err != nil {
		return nil, err
	}

	room, err := layout.Room(0, 0)
	if err != nil {
		return nil, err
	}

	for _, name := range []string{"alice", "bob"} {
		agent, err := explorer(name, sensor.KindRgbCamera, sensor.KindVelocity)
		if err != nil {
			return nil, err
		}
		agent.AddCommunication(playground.NewCommunication(100, 2))

		if err := pg.AddAgent(agent, room.Sampler(40, true), false, 0); err != nil {
			return nil, err
		}
	}

	return pg, nil
}
