package profile

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContainsName(t *testing.T) {
	names := []string{" bob ", "DEE"}

	assert.True(t, ContainsName(names, "Bob"))
	assert.True(t, ContainsName(names, "dee"))
	assert.False(t, ContainsName(names, "Ada"))
	assert.False(t, ContainsName(nil, "Ada"))
}

func TestCandidatesFindByName(t *testing.T) {
	pool := &Candidates{Items: []*CandidateProfile{{Name: "Ada Lovelace"}}}

	assert.NotNil(t, pool.FindByName("ada lovelace"))
	assert.Nil(t, pool.FindByName("Grace"))
}

func TestExcludedCandidatesRoundTripThroughFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "excluded.json")

	empty, err := ReadExcludedFile(path)
	require.NoError(t, err)
	assert.Empty(t, empty.Items)

	pool := &Candidates{Items: []*CandidateProfile{{Name: "Ada"}, {Name: "Bob"}}}
	empty.Append(pool.ToExcluded("Backend Engineer", "contacted"))
	require.NoError(t, empty.ToFile(path))

	shorter := &ExcludedCandidates{Items: empty.Items[:1]}
	require.NoError(t, shorter.ToFile(path))

	loaded, err := ReadExcludedFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ada"}, loaded.Names())
	assert.Equal(t, "Backend Engineer", loaded.Items[0].JobTitle)
	assert.Equal(t, "contacted", loaded.Items[0].Reason)
}
