// Command tigo is a small command-line front end exercising the
// locator, parser and expander together against real terminfo
// databases.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		logrus.WithError(err).Error("tigo failed")
		os.Exit(1)
	}
}
