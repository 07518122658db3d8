package locate

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTermName = "no-such-terminal-123"

func envLookup(env map[string]string) EnvLookup {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestLocateEmptyName(t *testing.T) {
	_, err := LocateFS(afero.NewMemMapFs(), envLookup(nil), "")
	assert.ErrorIs(t, err, ErrInvalidTerminalName)
}

func TestLocateMissingFile(t *testing.T) {
	_, err := LocateFS(afero.NewMemMapFs(), envLookup(nil), testTermName)
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestLocateFoundStandardLayoutTerminfoDirs(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := "/tmp/custom/n/" + testTermName
	require.NoError(t, afero.WriteFile(fs, path, nil, 0o644))

	env := envLookup(map[string]string{
		"TERMINFO_DIRS": "foo:/tmp/custom:bar",
	})

	got, err := LocateFS(fs, env, testTermName)
	require.NoError(t, err)
	assert.Equal(t, path, got)
}

func TestLocateFoundHexLayoutTerminfoDirs(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := "/tmp/custom/6e/" + testTermName
	require.NoError(t, afero.WriteFile(fs, path, nil, 0o644))

	env := envLookup(map[string]string{
		"TERMINFO_DIRS": "foo:/tmp/custom:bar",
	})

	got, err := LocateFS(fs, env, testTermName)
	require.NoError(t, err)
	assert.Equal(t, path, got)
}

func TestLocateFoundStandardLayoutTerminfoVariable(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := "/tmp/custom/n/" + testTermName
	require.NoError(t, afero.WriteFile(fs, path, nil, 0o644))

	env := envLookup(map[string]string{"TERMINFO": "/tmp/custom"})

	got, err := LocateFS(fs, env, testTermName)
	require.NoError(t, err)
	assert.Equal(t, path, got)
}

func TestLocateDotTerminfoStandardLayout(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := "/home/someone/.terminfo/n/" + testTermName
	require.NoError(t, afero.WriteFile(fs, path, nil, 0o644))

	env := envLookup(map[string]string{"HOME": "/home/someone"})

	got, err := LocateFS(fs, env, testTermName)
	require.NoError(t, err)
	assert.Equal(t, path, got)
}

func TestSearchOrder(t *testing.T) {
	env := envLookup(map[string]string{
		"TERMINFO_DIRS": "/my/terminfo1:/my/terminfo2",
		"TERMINFO":      "/my/terminfo",
		"HOME":          "/home/user",
	})

	expected := []string{
		"/my/terminfo",
		"/home/user/.terminfo",
		"/my/terminfo1",
		"/my/terminfo2",
		"/etc/terminfo",
		"/lib/terminfo",
		"/usr/share/terminfo",
		"/usr/lib/terminfo",
		"/boot/system/data/terminfo",
	}
	assert.Equal(t, expected, SearchDirectoriesWithEnv(env))
}

func TestSearchOrderWithEmptyElement(t *testing.T) {
	env := envLookup(map[string]string{
		"TERMINFO_DIRS": "/my/terminfo1::/my/terminfo2",
		"TERMINFO":      "/my/terminfo",
		"HOME":          "/home/user",
	})

	expected := []string{
		"/my/terminfo",
		"/home/user/.terminfo",
		"/my/terminfo1",
		"/etc/terminfo",
		"/lib/terminfo",
		"/usr/share/terminfo",
		"/usr/lib/terminfo",
		"/boot/system/data/terminfo",
		"/my/terminfo2",
	}
	assert.Equal(t, expected, SearchDirectoriesWithEnv(env))
}
