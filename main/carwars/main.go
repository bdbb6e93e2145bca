package main

import (
	"context"
	"fmt"
	"net"
	"os"

	"github.com/jd3nn1s/carwars"
	"github.com/jd3nn1s/carwars/forwarder"
	log "github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"
)

var (
	configFile   = flag.String("config", "", "TOML configuration file")
	host         = flag.String("host", carwars.DefaultHost, "simulator host")
	port         = flag.Int("port", carwars.DefaultPort, "simulator port")
	fwdConfig    = flag.String("forwarder", "", "UDP forwarder TOML configuration file")
	steps        = flag.Int("steps", 100, "number of steps to run")
	actionName   = flag.String("action", "noop", "action applied on every step, name or ordinal")
	restart      = flag.Bool("restart", false, "restart the simulation before stepping")
	strict       = flag.Bool("strict", false, "reject out of range actions")
	testMode     = flag.Bool("testmode", false, "drive the built in test simulator")
	printState   = flag.Bool("print-state", false, "print reward and state to stdout")
	debugLogging = flag.Bool("debug", false, "enable debug logging")
)

func main() {
	flag.Parse()
	log.SetLevel(log.InfoLevel)
	if *debugLogging {
		log.SetLevel(log.DebugLevel)
	}

	config := carwars.DefaultConfig()
	if *configFile != "" {
		var err error
		if config, err = carwars.LoadConfig(*configFile); err != nil {
			log.Fatal("unable to load configuration: ", err)
		}
	}
	applyFlags(config)

	action, err := carwars.ParseAction(*actionName)
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var conn net.Conn
	if *testMode {
		conn = carwars.NewTestConnection(ctx)
	} else if conn, err = carwars.Dial(ctx, config.Host, config.Port); err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	c := carwars.NewClient(conn)
	c.StrictActions = config.StrictActions

	if config.Forwarder != "" {
		fwder, err := forwarder.NewUDPForwarder(config.Forwarder)
		if err != nil {
			log.Fatal("unable to load UDP forwarder: ", err)
		}
		defer fwder.Close()
		go fwder.Start(ctx)
		c.AddForwarder(fwder)
	}

	if err := run(c, action); err != nil {
		log.WithField("action", action).Error(err)
		os.Exit(1)
	}
}

// flags only override the file when given explicitly
func applyFlags(config *carwars.Config) {
	if flag.CommandLine.Changed("host") {
		config.Host = *host
	}
	if flag.CommandLine.Changed("port") {
		config.Port = *port
	}
	if flag.CommandLine.Changed("strict") {
		config.StrictActions = *strict
	}
	if flag.CommandLine.Changed("forwarder") {
		config.Forwarder = *fwdConfig
	}
}

func run(c *carwars.Client, action carwars.Action) error {
	if *restart {
		if err := c.Restart(); err != nil {
			return err
		}
	}
	total := 0.0
	for i := 0; i < *steps; i++ {
		result, err := c.Step(action)
		if err != nil {
			return err
		}
		total += result.Reward
		if *printState {
			fmt.Printf("%d reward=%.4f state=%v\n", i, result.Reward, result.State)
		}
	}
	log.WithField("steps", *steps).
		WithField("totalReward", total).
		Info("done")
	return nil
}
