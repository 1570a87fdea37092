package lookup

import (
	"testing"

	"github.com/caseboard/caseboard/api/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	t.Parallel()

	cols := schemas.EntityCollections{
		Characters: []schemas.Character{{ID: "c1", Name: "Vera"}},
		Elements:   []schemas.Element{{ID: "e1", Name: "Key"}, {ID: "e2", Name: "Letter"}},
		Puzzles:    []schemas.Puzzle{{ID: "p1", Name: "Safe"}},
		Timeline:   []schemas.TimelineEvent{{ID: "t1", Description: "The fire"}},
	}
	m := Build(cols)

	t.Run("indexes every collection by id", func(t *testing.T) {
		t.Parallel()
		assert.Len(t, m.Characters, 1)
		assert.Len(t, m.Elements, 2)
		assert.Len(t, m.Puzzles, 1)
		assert.Len(t, m.Timeline, 1)
		assert.Equal(t, "Key", m.Elements["e1"].Name)
	})

	t.Run("resolves any id through Entity", func(t *testing.T) {
		t.Parallel()
		e, ok := m.Entity("p1")
		require.True(t, ok)
		assert.Equal(t, schemas.KindPuzzle, e.Kind())

		_, ok = m.Entity("ghost")
		assert.False(t, ok)
	})
}

func TestBuildDuplicates(t *testing.T) {
	t.Parallel()

	m := Build(schemas.EntityCollections{
		Elements: []schemas.Element{
			{ID: "e1", Name: "First"},
			{ID: "e1", Name: "Second"},
		},
	})

	require.Len(t, m.Duplicates, 1)
	assert.Equal(t, schemas.CodeDuplicateID, m.Duplicates[0].Code)
	// Last occurrence wins.
	assert.Equal(t, "Second", m.Elements["e1"].Name)
}
