package carwars

const (
	// number of int32 fields in a sensor response
	sensorFieldCount = 8
	SensorFrameSize  = sensorFieldCount * 4

	// length of the state vector handed to the caller, every field but the reward echo
	StateSize = sensorFieldCount - 1
)

// SensorFrame is one decoded telemetry snapshot, in wire order.
type SensorFrame struct {
	RewardRaw float64
	Velocity  float64
	PositionX float64
	PositionY float64
	RotationZ float64
	Sensor1   float64
	Sensor2   float64
	Sensor3   float64
}

type State [StateSize]float64

type RewardResult struct {
	Reward float64
	State  State
}

func (f *SensorFrame) State() State {
	return State{
		f.Velocity,
		f.PositionX,
		f.PositionY,
		f.RotationZ,
		f.Sensor1,
		f.Sensor2,
		f.Sensor3,
	}
}

func (f *SensorFrame) values() [sensorFieldCount]float64 {
	return [sensorFieldCount]float64{
		f.RewardRaw,
		f.Velocity,
		f.PositionX,
		f.PositionY,
		f.RotationZ,
		f.Sensor1,
		f.Sensor2,
		f.Sensor3,
	}
}

func sensorFrameFromValues(v [sensorFieldCount]float64) SensorFrame {
	return SensorFrame{
		RewardRaw: v[0],
		Velocity:  v[1],
		PositionX: v[2],
		PositionY: v[3],
		RotationZ: v[4],
		Sensor1:   v[5],
		Sensor2:   v[6],
		Sensor3:   v[7],
	}
}
