package carwars

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	RequestReadSensors uint8 = 1
	RequestWriteAction uint8 = 2
	RequestRestart     uint8 = 3

	// real values travel as round(v * fixedPointScale) in an int32
	fixedPointScale = 0xffff

	writeActionRequestSize = 5
)

type Action int32

const (
	ActionNoOp Action = iota
	ActionTurnPositive30
	ActionTurnNegative30
	ActionAccelerate10
	ActionDecelerate10
)

var actionNames = [...]string{
	ActionNoOp:           "noop",
	ActionTurnPositive30: "turn+30",
	ActionTurnNegative30: "turn-30",
	ActionAccelerate10:   "accelerate",
	ActionDecelerate10:   "decelerate",
}

func (a Action) Valid() bool {
	return a >= ActionNoOp && a <= ActionDecelerate10
}

func (a Action) String() string {
	if !a.Valid() {
		return fmt.Sprintf("action(%d)", int32(a))
	}
	return actionNames[a]
}

// ParseAction accepts either an action name or its ordinal. Ordinals outside
// the known range are returned as-is so they can still be put on the wire.
func ParseAction(s string) (Action, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range actionNames {
		if s == name {
			return Action(i), nil
		}
	}
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, errors.Errorf("unknown action %q", s)
	}
	return Action(n), nil
}

func EncodeFixed(v float64) int32 {
	return int32(math.Round(v * fixedPointScale))
}

func DecodeFixed(v int32) float64 {
	return float64(v) / fixedPointScale
}

func encodeReadSensors() []byte {
	return []byte{RequestReadSensors}
}

func encodeRestart() []byte {
	return []byte{RequestRestart}
}

func encodeWriteAction(action Action) []byte {
	buf := make([]byte, writeActionRequestSize)
	buf[0] = RequestWriteAction
	binary.BigEndian.PutUint32(buf[1:], uint32(int32(action)))
	return buf
}

func decodeRawFields(buf []byte) ([sensorFieldCount]int32, error) {
	var raw [sensorFieldCount]int32
	if len(buf) != SensorFrameSize {
		return raw, errors.Errorf("incorrect sensor frame size: %v", len(buf))
	}
	for i := range raw {
		raw[i] = int32(binary.BigEndian.Uint32(buf[i*4:]))
	}
	return raw, nil
}

// DecodeSensorFrame converts a 32 byte response into a SensorFrame.
func DecodeSensorFrame(buf []byte) (SensorFrame, error) {
	raw, err := decodeRawFields(buf)
	if err != nil {
		return SensorFrame{}, err
	}
	var values [sensorFieldCount]float64
	for i, v := range raw {
		values[i] = DecodeFixed(v)
	}
	return sensorFrameFromValues(values), nil
}

func EncodeSensorFrame(f *SensorFrame) []byte {
	buf := make([]byte, SensorFrameSize)
	for i, v := range f.values() {
		binary.BigEndian.PutUint32(buf[i*4:], uint32(EncodeFixed(v)))
	}
	return buf
}
