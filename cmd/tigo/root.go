package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/charithe/terminfo-go"
	"github.com/charithe/terminfo-go/locate"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "tigo",
	Short: "tigo inspects and expands compiled terminfo databases",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logrus.SetLevel(logrus.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(expandCmd)
}

// loadTerminfo locates and parses the database for term, the one
// piece of plumbing shared by both subcommands.
func loadTerminfo(term string) (*terminfo.Terminfo, error) {
	path, err := locate.Locate(term)
	if err != nil {
		return nil, fmt.Errorf("locating %q: %w", term, err)
	}
	logrus.WithFields(logrus.Fields{"term": term, "path": path}).Debug("located terminfo database")

	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}

	ti, err := terminfo.Parse(buf)
	if err != nil {
		return nil, fmt.Errorf("parsing %q: %w", path, err)
	}
	return ti, nil
}
