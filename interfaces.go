package carwars

import (
	"io"
)

// Stream is an established, reliable, ordered byte stream to the simulator,
// usually a *net.TCPConn.
type Stream interface {
	io.Reader
	io.Writer
}

type Forwarder interface {
	Forward(frame *SensorFrame) error
}
