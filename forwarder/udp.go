package forwarder

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"io/ioutil"
	"net"
	"os"
	"sync"
	"time"
	"unsafe"

	"github.com/BurntSushi/toml"
	"github.com/jd3nn1s/carwars"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var maxPacketSize = int(unsafe.Sizeof(Header{}) + unsafe.Sizeof(SensorPacket{}))

var sendInterval = 100 * time.Millisecond

type UDPConfig struct {
	Server string
	Port   int
}

type UDPForwarder struct {
	Config *UDPConfig

	conn      net.Conn
	fwdChan   chan *carwars.SensorFrame
	closeOnce sync.Once
}

func NewUDPForwarder(fileName string) (*UDPForwarder, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open file %s", fileName)
	}
	defer file.Close()
	return NewUDPForwarderFromReader(file)
}

func NewUDPForwarderFromReader(configReader io.Reader) (*UDPForwarder, error) {
	configData, err := ioutil.ReadAll(configReader)
	if err != nil {
		return nil, errors.Wrap(err, "unable to read config reader")
	}
	config := UDPConfig{}
	if _, err := toml.Decode(string(configData), &config); err != nil {
		return nil, errors.Wrapf(err, "unable to load udp forwarder configuration")
	}
	udp := &UDPForwarder{
		Config:  &config,
		fwdChan: make(chan *carwars.SensorFrame, 1),
	}
	if err = udp.connect(); err != nil {
		return nil, err
	}
	return udp, nil
}

func (udp *UDPForwarder) Close() error {
	var err error
	udp.closeOnce.Do(func() {
		err = udp.conn.Close()
	})
	return err
}

// Forward queues a frame for sending. Frames arriving while one is still
// queued are dropped.
func (udp *UDPForwarder) Forward(frame *carwars.SensorFrame) error {
	select {
	case udp.fwdChan <- frame:
	default:
	}
	return nil
}

func (udp *UDPForwarder) Start(ctx context.Context) error {
	limiter := time.NewTicker(sendInterval)
	defer limiter.Stop()
	for {
		select {
		case <-limiter.C:
		case <-ctx.Done():
			return ctx.Err()
		}
		select {
		case f := <-udp.fwdChan:
			if err := udp.forward(f); err != nil {
				log.Error("unable to forward sensor frame to server ", err)
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (udp *UDPForwarder) forward(frame *carwars.SensorFrame) error {
	buf := bytes.NewBuffer(make([]byte, 0, maxPacketSize))
	hdr := Header{
		Type: TypeSensors,
	}
	if err := binary.Write(buf, binary.LittleEndian, &hdr); err != nil {
		return errors.Wrap(err, "unable to write udp packet header")
	}
	packet := newSensorPacket(frame)
	if err := binary.Write(buf, binary.LittleEndian, &packet); err != nil {
		return errors.Wrap(err, "unable to write sensor udp packet")
	}
	_, err := udp.conn.Write(buf.Bytes())
	return err
}

func (udp *UDPForwarder) connect() error {
	writeBufSize := maxPacketSize * 2

	conn, err := net.Dial("udp", fmt.Sprintf("%s:%d",
		udp.Config.Server,
		udp.Config.Port))
	if err != nil {
		return err
	}
	udpConn := conn.(*net.UDPConn)
	if err = udpConn.SetWriteBuffer(writeBufSize); err != nil {
		conn.Close()
		return errors.Wrapf(err, "unable to set OS write buffer to %v", writeBufSize)
	}

	udp.conn = conn
	return nil
}
