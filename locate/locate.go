// Package locate resolves the filesystem path to a terminal's
// compiled terminfo database file, given a terminal name and the
// ambient environment. It does no parsing.
package locate

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

var (
	// ErrInvalidTerminalName is returned for an empty terminal name.
	ErrInvalidTerminalName = errors.New("locate: invalid terminal name")

	// ErrFileNotFound is returned when no search root yields an
	// existing file.
	ErrFileNotFound = errors.New("locate: terminfo database not found")
)

// defaultDirs is the fixed fallback search list, tried in order.
var defaultDirs = []string{
	"/etc/terminfo",
	"/lib/terminfo",
	"/usr/share/terminfo",
	"/usr/lib/terminfo",
	"/boot/system/data/terminfo", // haiku
}

// EnvLookup mirrors os.LookupEnv's (value, present) signature, letting
// tests substitute a fixed environment without mutating process state.
type EnvLookup func(key string) (string, bool)

// SearchDirectories returns the ordered list of candidate terminfo
// root directories, built from the real process environment. It does
// not check whether any of them exist.
func SearchDirectories() []string {
	return searchDirectories(os.LookupEnv)
}

// SearchDirectoriesWithEnv is SearchDirectories parameterized over an
// environment lookup, for testing.
func SearchDirectoriesWithEnv(lookup EnvLookup) []string {
	return searchDirectories(lookup)
}

// searchDirectories builds the additive, non-short-circuiting search
// order: $TERMINFO, then $HOME/.terminfo, then each $TERMINFO_DIRS
// entry (an empty entry splices in the entire remaining default
// list), then whatever defaults were not already consumed. The
// default list is drained from a single cursor so two empty
// TERMINFO_DIRS entries do not duplicate it.
func searchDirectories(lookup EnvLookup) []string {
	var dirs []string
	drained := 0
	drainDefaults := func() {
		dirs = append(dirs, defaultDirs[drained:]...)
		drained = len(defaultDirs)
	}

	if v, ok := lookup("TERMINFO"); ok {
		dirs = append(dirs, v)
	}

	if home, ok := lookup("HOME"); ok {
		dirs = append(dirs, filepath.Join(home, ".terminfo"))
	}

	if v, ok := lookup("TERMINFO_DIRS"); ok {
		for _, d := range strings.Split(v, ":") {
			if d == "" {
				drainDefaults()
			} else {
				dirs = append(dirs, d)
			}
		}
	}

	drainDefaults()

	return dirs
}

// Locate finds the terminfo database file for termName by walking
// SearchDirectories against the real filesystem.
func Locate(termName string) (string, error) {
	return LocateFS(afero.NewOsFs(), os.LookupEnv, termName)
}

// LocateFS is Locate parameterized over a filesystem and an
// environment lookup, for testing against an in-memory afero.Fs.
func LocateFS(fs afero.Fs, lookup EnvLookup, termName string) (string, error) {
	dirs := searchDirectories(lookup)
	logrus.WithFields(logrus.Fields{"term": termName, "dirs": dirs}).Debug("searching for terminfo database")

	for _, dir := range dirs {
		path, err := findInDirectory(fs, termName, dir)
		switch {
		case err == nil:
			logrus.WithField("path", path).Debug("found terminfo database")
			return path, nil
		case errors.Is(err, ErrFileNotFound):
			continue
		default:
			return "", err
		}
	}
	return "", ErrFileNotFound
}

// findInDirectory tries the two filename layouts ncurses uses under
// one search root: <dir>/<c>/<name> where c is the name's first byte
// as an ASCII character, then <dir>/<hh>/<name> where hh is that byte
// in lowercase hex (for case-insensitive filesystems).
func findInDirectory(fs afero.Fs, termName, dir string) (string, error) {
	if termName == "" {
		return "", ErrInvalidTerminalName
	}
	firstByte := termName[0]

	candidate := filepath.Join(dir, string(firstByte), termName)
	if pathExists(fs, candidate) {
		return candidate, nil
	}

	candidate = filepath.Join(dir, fmt.Sprintf("%02x", firstByte), termName)
	if pathExists(fs, candidate) {
		return candidate, nil
	}

	return "", ErrFileNotFound
}

func pathExists(fs afero.Fs, path string) bool {
	ok, err := afero.Exists(fs, path)
	return err == nil && ok
}
