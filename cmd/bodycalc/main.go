// Command bodycalc derives body composition metrics from the command line,
// using the same calculator the server does.
package main

import (
	"os"

	log "github.com/sirupsen/logrus"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.WithError(err).Error("bodycalc failed")
		os.Exit(1)
	}
}
