package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSeed(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "challenges.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadSeedFile(t *testing.T) {
	path := writeSeed(t, `
challenges:
  - title: FizzBuzz
    description: Print one to a hundred with substitutions.
    category: coding
    difficulty: easy
    expected_output: "1, 2, Fizz"
  - title: Walk
    description: Walk ten thousand steps.
    category: life
    difficulty: medium
`)
	items, err := LoadSeedFile(path)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "FizzBuzz", items[0].Title)
	assert.Equal(t, "1, 2, Fizz", items[0].ExpectedOutput)
	assert.Equal(t, "medium", items[1].Difficulty)
	assert.True(t, items[1].ActiveDate.IsZero(), "dates are assigned on import")
}

func TestLoadSeedFileErrors(t *testing.T) {
	_, err := LoadSeedFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadSeedFile(writeSeed(t, "challenges: []\n"))
	assert.ErrorContains(t, err, "no challenges")

	_, err = LoadSeedFile(writeSeed(t, "challenges:\n  - title: only a title\n"))
	assert.ErrorContains(t, err, "needs a title and a description")

	_, err = LoadSeedFile(writeSeed(t, "challenges: [unterminated\n"))
	assert.Error(t, err)
}

func TestExampleCatalogueParses(t *testing.T) {
	items, err := LoadSeedFile(filepath.Join("..", "config", "challenges.example.yaml"))
	require.NoError(t, err)
	assert.NotEmpty(t, items)
}

func TestRootCommandTree(t *testing.T) {
	root := NewRootCommand()
	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"serve", "rotate", "seed", "migrate"}, names)

	seed, _, err := root.Find([]string{"seed"})
	require.NoError(t, err)
	assert.NotNil(t, seed.Flags().Lookup("start"))
}
