package carwars

import (
	"bytes"
	"io"

	"github.com/pkg/errors"
)

// streamStub hands out its response at most chunkSize bytes per Read and
// records everything written to it.
type streamStub struct {
	response  *bytes.Reader
	chunkSize int
	written   bytes.Buffer
	writes    int

	// fail writes with this error when set
	writeErr error
	// accept at most this many bytes per Write when non zero
	maxWrite int
}

func newStreamStub(response []byte, chunkSize int) *streamStub {
	return &streamStub{
		response:  bytes.NewReader(response),
		chunkSize: chunkSize,
	}
}

func (s *streamStub) Read(p []byte) (int, error) {
	if s.chunkSize > 0 && len(p) > s.chunkSize {
		p = p[:s.chunkSize]
	}
	return s.response.Read(p)
}

func (s *streamStub) Write(p []byte) (int, error) {
	s.writes++
	if s.writeErr != nil {
		return 0, s.writeErr
	}
	if s.maxWrite > 0 && len(p) > s.maxWrite {
		p = p[:s.maxWrite]
	}
	return s.written.Write(p)
}

// resetStream fails every read as if the peer reset the connection.
type resetStream struct {
	bytes.Buffer
}

func (s *resetStream) Read([]byte) (int, error) {
	return 0, errors.New("connection reset by peer")
}

var _ Stream = &streamStub{}
var _ Stream = &resetStream{}
var _ io.ReadWriter = &streamStub{}

type forwarderStub struct {
	frames []SensorFrame
	err    error
}

func (fwd *forwarderStub) Forward(frame *SensorFrame) error {
	fwd.frames = append(fwd.frames, *frame)
	return fwd.err
}
