package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minefield/internal/app"
	"github.com/vancomm/minefield/internal/config"
	"github.com/vancomm/minefield/internal/logging"
)

var configPath string

func init() {
	const usage = "config file path, MINEFIELD_* env variables override it"
	flag.StringVar(&configPath, "config", "", usage)
	flag.StringVar(&configPath, "c", "", usage+" (shorthand)")
}

func main() {
	mainCtx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	flag.Parse()

	c, err := config.Load(configPath)
	if err != nil {
		logrus.Fatal("unable to load config: ", err)
	}

	log, err := logging.New(c, os.Stderr)
	if err != nil {
		logrus.Fatal("unable to set up logging: ", err)
	}

	log.Info("starting up, mode = ", c.Mode)
	log.WithFields(c.Fields()).Debug("config")

	a, err := app.New(log, c)
	if err != nil {
		log.Fatal("unable to create app: ", err)
	}

	if err := a.Start(mainCtx); err != nil {
		log.Error("exit reason: ", err)
		os.Exit(1)
	}
}
