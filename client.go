package carwars

import (
	"context"
	"fmt"
	"io"
	"net"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Client speaks the simulator protocol over a single stream. It is not safe
// for concurrent use; callers sharing one must serialize access.
type Client struct {
	// reject out of range actions instead of sending them verbatim
	StrictActions bool

	stream     Stream
	forwarders []Forwarder
}

func NewClient(stream Stream) *Client {
	return &Client{
		stream: stream,
	}
}

// to allow testing
var dialContext = func(ctx context.Context, addr string) (net.Conn, error) {
	d := net.Dialer{}
	return d.DialContext(ctx, "tcp", addr)
}

// Dial opens a TCP connection to the simulator. The returned connection is
// owned by the caller.
func Dial(ctx context.Context, host string, port int) (net.Conn, error) {
	addr := net.JoinHostPort(host, fmt.Sprint(port))
	conn, err := dialContext(ctx, addr)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to connect to simulator at %s", addr)
	}
	log.WithField("addr", addr).Info("connected to simulator")
	return conn, nil
}

func (c *Client) AddForwarder(fwd Forwarder) {
	c.forwarders = append(c.forwarders, fwd)
}

func (c *Client) ReadSensors() (float64, State, error) {
	frame, err := c.ReadSensorFrame()
	if err != nil {
		return 0, State{}, err
	}
	return sensorReward(&frame), frame.State(), nil
}

// ReadSensorFrame performs the read sensors round trip and returns the whole
// decoded frame, including the reward echo.
func (c *Client) ReadSensorFrame() (SensorFrame, error) {
	const op = "read sensors"
	if err := c.send(op, encodeReadSensors()); err != nil {
		return SensorFrame{}, err
	}

	buf := make([]byte, SensorFrameSize)
	if n, err := io.ReadFull(c.stream, buf); err != nil {
		return SensorFrame{}, &ProtocolError{
			Kind: ErrIncompleteFrame,
			Op:   op,
			Err:  errors.Wrapf(err, "received %d of %d bytes", n, SensorFrameSize),
		}
	}

	frame, err := DecodeSensorFrame(buf)
	if err != nil {
		return SensorFrame{}, &ProtocolError{Kind: ErrIncompleteFrame, Op: op, Err: err}
	}
	log.WithField("velocity", frame.Velocity).
		WithField("x", frame.PositionX).
		WithField("y", frame.PositionY).
		Debug("received sensor frame")

	c.forward(&frame)
	return frame, nil
}

func (c *Client) WriteAction(action Action) error {
	const op = "write action"
	if c.StrictActions && !action.Valid() {
		return &ProtocolError{
			Kind: ErrInvalidAction,
			Op:   op,
			Err:  errors.Errorf("action %d out of range", int32(action)),
		}
	}
	log.WithField("action", action).Debug("sending action")
	return c.send(op, encodeWriteAction(action))
}

func (c *Client) Restart() error {
	log.Debug("sending restart")
	return c.send("restart", encodeRestart())
}

// Step applies an action and reads back the resulting state.
func (c *Client) Step(action Action) (RewardResult, error) {
	if err := c.WriteAction(action); err != nil {
		return RewardResult{}, err
	}
	reward, state, err := c.ReadSensors()
	if err != nil {
		return RewardResult{}, err
	}
	return RewardResult{Reward: reward, State: state}, nil
}

// send writes the whole request or fails.
func (c *Client) send(op string, req []byte) error {
	for len(req) > 0 {
		n, err := c.stream.Write(req)
		if err == nil && n == 0 {
			err = io.ErrShortWrite
		}
		if err != nil {
			return &ProtocolError{
				Kind: ErrWriteFailed,
				Op:   op,
				Err:  errors.Wrap(err, "unable to write request"),
			}
		}
		req = req[n:]
	}
	return nil
}

func (c *Client) forward(frame *SensorFrame) {
	for _, fwd := range c.forwarders {
		// each forwarder gets its own copy
		frameCopy := *frame
		if err := fwd.Forward(&frameCopy); err != nil {
			log.WithField("err", err).Error("unable to forward sensor frame")
		}
	}
}
