package carwars

import (
	"context"
	"encoding/binary"
	"io"
	"math"
	"net"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	testTickSeconds = 0.02
	// half width of the square test arena
	testArenaSize = 50.0
	testSpeedStep = 10.0
	testTurnStep  = 30.0
)

// sensor ray directions relative to the heading, in degrees
var testSensorAngles = [3]float64{-45, 0, 45}

// testSimulator serves the simulator side of the protocol with synthetic
// data so the client can be driven without the real environment.
type testSimulator struct {
	velocity float64
	x, y     float64
	heading  float64
}

// NewTestConnection returns a connection to an in-process test simulator.
// The simulator stops when ctx is done or the connection is closed.
func NewTestConnection(ctx context.Context) net.Conn {
	client, server := net.Pipe()
	sim := &testSimulator{}
	go func() {
		<-ctx.Done()
		server.Close()
	}()
	go func() {
		if err := sim.serve(server); err != nil && errors.Cause(err) != io.EOF {
			log.WithField("err", err).Warn("test simulator stopped")
		}
		server.Close()
	}()
	return client
}

func (sim *testSimulator) serve(rw io.ReadWriter) error {
	var tag [1]byte
	for {
		if _, err := io.ReadFull(rw, tag[:]); err != nil {
			return err
		}
		switch tag[0] {
		case RequestReadSensors:
			sim.tick()
			frame := sim.frame()
			if _, err := rw.Write(EncodeSensorFrame(&frame)); err != nil {
				return errors.Wrap(err, "unable to write sensor frame")
			}
		case RequestWriteAction:
			var payload [4]byte
			if _, err := io.ReadFull(rw, payload[:]); err != nil {
				return errors.Wrap(err, "unable to read action payload")
			}
			sim.apply(Action(int32(binary.BigEndian.Uint32(payload[:]))))
		case RequestRestart:
			log.Debug("test simulator restart")
			*sim = testSimulator{}
		default:
			return errors.Errorf("unknown request type %d", tag[0])
		}
	}
}

func (sim *testSimulator) apply(action Action) {
	switch action {
	case ActionTurnPositive30:
		sim.heading += testTurnStep
	case ActionTurnNegative30:
		sim.heading -= testTurnStep
	case ActionAccelerate10:
		sim.velocity += testSpeedStep
	case ActionDecelerate10:
		sim.velocity -= testSpeedStep
	}
	sim.heading = math.Mod(sim.heading, 360)
}

func (sim *testSimulator) tick() {
	rad := sim.heading * math.Pi / 180
	sim.x = clamp(sim.x+sim.velocity*math.Cos(rad)*testTickSeconds, testArenaSize)
	sim.y = clamp(sim.y+sim.velocity*math.Sin(rad)*testTickSeconds, testArenaSize)
}

func (sim *testSimulator) frame() SensorFrame {
	rad := sim.heading * math.Pi / 180
	var sensors [3]float64
	for i, angle := range testSensorAngles {
		sensors[i] = wallDistance(sim.x, sim.y, rad+angle*math.Pi/180)
	}
	return SensorFrame{
		RewardRaw: sim.velocity,
		Velocity:  sim.velocity,
		PositionX: sim.x,
		PositionY: sim.y,
		// z component of the rotation quaternion about the z axis
		RotationZ: math.Sin(rad / 2),
		Sensor1:   sensors[0],
		Sensor2:   sensors[1],
		Sensor3:   sensors[2],
	}
}

// wallDistance casts a ray from (x, y) to the edge of the arena.
func wallDistance(x, y, rad float64) float64 {
	dx, dy := math.Cos(rad), math.Sin(rad)
	dist := math.Inf(1)
	if dx > 1e-9 {
		dist = math.Min(dist, (testArenaSize-x)/dx)
	} else if dx < -1e-9 {
		dist = math.Min(dist, (-testArenaSize-x)/dx)
	}
	if dy > 1e-9 {
		dist = math.Min(dist, (testArenaSize-y)/dy)
	} else if dy < -1e-9 {
		dist = math.Min(dist, (-testArenaSize-y)/dy)
	}
	return dist
}

func clamp(v, limit float64) float64 {
	return math.Max(-limit, math.Min(limit, v))
}
