package casefile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "case.json")
	data := `{
		"characters": [{"id": "c1", "name": "Vera", "tier": "Core"}],
		"elements": [{"id": "e1", "name": "Key", "owner_id": "c1"}],
		"puzzles": [],
		"timeline": []
	}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cols, err := Load(path)
	require.NoError(t, err)
	require.Len(t, cols.Characters, 1)
	assert.Equal(t, "Vera", cols.Characters[0].Name)
	require.Len(t, cols.Elements, 1)
	assert.Equal(t, "c1", cols.Elements[0].OwnerID)
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})

	t.Run("malformed json", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte("{nope"), 0o600))
		_, err := Load(path)
		assert.Error(t, err)
	})
}
