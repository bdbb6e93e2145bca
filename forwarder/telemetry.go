package forwarder

import (
	"github.com/jd3nn1s/carwars"
)

type Header struct {
	Type uint8
}

const (
	TypeSensors = 1
)

// SensorPacket is the little-endian payload following a TypeSensors header.
type SensorPacket struct {
	RewardRaw float32
	Velocity  float32
	PositionX float32
	PositionY float32
	RotationZ float32
	Sensor1   float32
	Sensor2   float32
	Sensor3   float32
}

func newSensorPacket(f *carwars.SensorFrame) SensorPacket {
	return SensorPacket{
		RewardRaw: float32(f.RewardRaw),
		Velocity:  float32(f.Velocity),
		PositionX: float32(f.PositionX),
		PositionY: float32(f.PositionY),
		RotationZ: float32(f.RotationZ),
		Sensor1:   float32(f.Sensor1),
		Sensor2:   float32(f.Sensor2),
		Sensor3:   float32(f.Sensor3),
	}
}
