package main

import (
	"os"

	nested "github.com/antonfisher/nested-logrus-formatter"
	"github.com/shiena/ansicolor"
	log "github.com/sirupsen/logrus"
)

func initLog(logLevel string) {
	log.SetFormatter(&nested.Formatter{
		HideKeys:        true,
		ShowFullLevel:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})
	log.SetOutput(ansicolor.NewAnsiColorWriter(os.Stdout))

	level, err := log.ParseLevel(logLevel)
	if err != nil {
		log.Warnf("unknown log level %q, using info", logLevel)
		level = log.InfoLevel
	}
	log.SetLevel(level)
}
