package carwars

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestConnection(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	conn := NewTestConnection(ctx)
	defer conn.Close()
	c := NewClient(conn)

	reward, state, err := c.ReadSensors()
	require.NoError(t, err)
	assert.Equal(t, 0.0, reward)
	assert.Equal(t, 0.0, state[1])
	// straight ahead is the arena wall at x=50
	assert.InDelta(t, 50, state[5], 1e-4)

	result, err := c.Step(ActionAccelerate10)
	require.NoError(t, err)
	assert.InDelta(t, 10, result.Reward, 1e-4)
	assert.InDelta(t, 10*testTickSeconds, result.State[1], 1e-4)

	result, err = c.Step(ActionTurnPositive30)
	require.NoError(t, err)
	assert.InDelta(t, math.Sin(math.Pi/12), result.State[3], 1e-4)

	result, err = c.Step(ActionDecelerate10)
	require.NoError(t, err)
	assert.InDelta(t, 0, result.Reward, 1e-4)

	require.NoError(t, c.Restart())
	frame, err := c.ReadSensorFrame()
	require.NoError(t, err)
	assert.Equal(t, SensorFrame{Sensor1: frame.Sensor1, Sensor2: frame.Sensor2, Sensor3: frame.Sensor3}, frame)
}

func TestTestConnectionClosed(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	conn := NewTestConnection(ctx)
	require.NoError(t, conn.Close())

	c := NewClient(conn)
	_, _, err := c.ReadSensors()
	assert.True(t, IsKind(err, ErrWriteFailed))
}

func TestSimulatorApply(t *testing.T) {
	sim := &testSimulator{}
	sim.apply(ActionTurnNegative30)
	assert.Equal(t, -30.0, sim.heading)
	sim.apply(Action(42))
	assert.Equal(t, -30.0, sim.heading)
	assert.Equal(t, 0.0, sim.velocity)
	for i := 0; i < 12; i++ {
		sim.apply(ActionTurnPositive30)
	}
	assert.Equal(t, 330.0, sim.heading)
}

func TestWallDistance(t *testing.T) {
	assert.InDelta(t, 50, wallDistance(0, 0, 0), 1e-9)
	assert.InDelta(t, 60, wallDistance(-10, 0, 0), 1e-9)
	assert.InDelta(t, 40, wallDistance(0, 10, math.Pi/2), 1e-9)
	assert.InDelta(t, 50*math.Sqrt2, wallDistance(0, 0, math.Pi/4), 1e-9)
}
