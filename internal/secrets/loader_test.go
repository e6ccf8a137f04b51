package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	keyFile := filepath.Join(dir, "key")
	require.NoError(t, os.WriteFile(keyFile, []byte("  from-file\n"), 0o600))
	t.Setenv("RANKER_TEST_KEY", " from-env ")

	got, err := Load(Source{Name: "api key", File: keyFile, Value: "inline", Env: "RANKER_TEST_KEY"})
	require.NoError(t, err)
	assert.Equal(t, "from-file", got)

	got, err = Load(Source{Value: " inline ", Env: "RANKER_TEST_KEY"})
	require.NoError(t, err)
	assert.Equal(t, "inline", got)

	got, err = Load(Source{Env: "RANKER_TEST_KEY"})
	require.NoError(t, err)
	assert.Equal(t, "from-env", got)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty")
	require.NoError(t, os.WriteFile(empty, []byte("\n"), 0o600))

	_, err := Load(Source{Name: "api key", File: empty})
	assert.ErrorContains(t, err, "is empty")

	_, err = Load(Source{Name: "api key", File: filepath.Join(dir, "missing")})
	assert.ErrorIs(t, err, os.ErrNotExist)

	t.Setenv("RANKER_TEST_UNSET", "")
	_, err = Load(Source{Name: "api key", Env: "RANKER_TEST_UNSET"})
	assert.EqualError(t, err, "api key is not configured (checked $RANKER_TEST_UNSET)")

	_, err = Load(Source{})
	assert.EqualError(t, err, "secret is not configured")
}
