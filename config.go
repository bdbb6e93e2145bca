package carwars

import (
	"io"
	"io/ioutil"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

const (
	DefaultHost = "127.0.0.1"
	// port the simulator listens on unless started with --port
	DefaultPort = 2851
)

type Config struct {
	Host          string
	Port          int
	StrictActions bool
	// path of a UDP forwarder configuration, empty to disable forwarding
	Forwarder string
}

func DefaultConfig() *Config {
	return &Config{
		Host: DefaultHost,
		Port: DefaultPort,
	}
}

func LoadConfig(fileName string) (*Config, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open file %s", fileName)
	}
	defer file.Close()
	return LoadConfigFromReader(file)
}

func LoadConfigFromReader(configReader io.Reader) (*Config, error) {
	configData, err := ioutil.ReadAll(configReader)
	if err != nil {
		return nil, errors.Wrap(err, "unable to read config reader")
	}
	config := DefaultConfig()
	if _, err := toml.Decode(string(configData), config); err != nil {
		return nil, errors.Wrap(err, "unable to load configuration")
	}
	if config.Port <= 0 || config.Port > 65535 {
		return nil, errors.Errorf("invalid simulator port %d", config.Port)
	}
	return config, nil
}
