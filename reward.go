package carwars

// CalcReward derives the scalar reward for one tick. finished does not
// currently change the reward.
func CalcReward(disqualified, finished bool, velocity float64) float64 {
	if disqualified {
		return 0
	}
	return velocity
}

// sensorReward is the reward for a decoded frame. The frame carries no
// disqualification signal so the velocity always counts.
func sensorReward(f *SensorFrame) float64 {
	return CalcReward(false, false, f.Velocity)
}
