package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		logrus.New().WithError(err).Error("ownership failed")
		os.Exit(1)
	}
}
