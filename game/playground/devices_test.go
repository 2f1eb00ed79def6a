package playground

import (
	"testing"

	"github.com/gaorkl/simple-playgrounds-sub000/game/sensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func talker(t *testing.T, pg *Playground, x, y, commRange float64) *Agent {
	t.Helper()

	agent, err := NewBaseAgent("", KindFixedBase, nil)
	require.NoError(t, err)
	agent.AddCommunication(NewCommunication(commRange, 0))
	require.NoError(t, pg.AddAgent(agent, At(x, y, 0), false, 1))

	return agent
}

func TestMessagesStayInRange(t *testing.T) {
	pg := newRoom(t, 300, 200)

	a := talker(t, pg, 50, 100, 60)
	b := talker(t, pg, 100, 100, 60)
	c := talker(t, pg, 200, 100, 60)

	a.Communication().Broadcast("hello")
	c.Communication().Send(a, "far away")
	pg.Update(0)

	require.Len(t, b.Communication().Received(), 1)
	assert.Equal(t, a, b.Communication().Received()[0].Sender)
	assert.Equal(t, "hello", b.Communication().Received()[0].Content)
	assert.Empty(t, a.Communication().Received(), "no echo")
	assert.Empty(t, c.Communication().Received())

	// inboxes only hold the last tick
	pg.Update(0)
	assert.Empty(t, b.Communication().Received())
}

func TestCommunicationBlackout(t *testing.T) {
	pg := newRoom(t, 300, 200)

	blackout, err := NewCommunicationBlackout(nil)
	require.NoError(t, err)
	addElement(t, pg, blackout, 100, 100)

	a := talker(t, pg, 50, 100, 60)
	b := talker(t, pg, 100, 100, 60)

	a.Communication().Broadcast("hello")
	b.Communication().Broadcast("hello back")
	pg.Update(0)

	assert.True(t, b.Communication().IsDisabled())
	assert.Empty(t, b.Communication().Received())
	assert.Empty(t, a.Communication().Received())
}

func TestSensorBlackout(t *testing.T) {
	pg := newRoom(t, 200, 200)

	blackout, err := NewSensorBlackout(nil)
	require.NoError(t, err)
	addElement(t, pg, blackout, 50, 50)

	candy, err := NewCandy(nil)
	require.NoError(t, err)
	addElement(t, pg, candy, 140, 100)

	watcher, err := NewBaseAgent("watcher", KindFixedBase, nil)
	require.NoError(t, err)
	s, err := sensor.New(sensor.KindPerfectSemantic, watcher.Base(), nil)
	require.NoError(t, err)
	watcher.AddSensor(s)
	require.NoError(t, pg.AddAgent(watcher, At(100, 100, 0), false, 1))

	blind, err := NewBaseAgent("blind", KindFixedBase, nil)
	require.NoError(t, err)
	sb, err := sensor.New(sensor.KindPerfectSemantic, blind.Base(), nil)
	require.NoError(t, err)
	blind.AddSensor(sb)
	require.NoError(t, pg.AddAgent(blind, At(50, 50, 0), false, 1))

	pg.Update(0)
	for _, a := range pg.Agents() {
		for _, d := range a.Sensors() {
			d.Update(pg)
		}
	}

	assert.False(t, s.IsDisabled())
	assert.True(t, sb.IsDisabled())

	detections := s.(sensor.SemanticSensor).Detections()
	require.NotEmpty(t, detections)
	assert.Equal(t, sensor.Entity(candy.Base()), detections[0].Entity)
	assert.InDelta(t, 36, detections[0].Distance, 1)

	assert.Empty(t, sb.(sensor.SemanticSensor).Detections())
	assert.Equal(t, s, watcher.Sensor("perfect_semantic"))
}
