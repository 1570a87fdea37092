// Package lookup indexes the four entity collections by ID so the resolver
// can cross-reference in O(1) instead of rescanning slices.
package lookup

import (
	"fmt"

	"github.com/caseboard/caseboard/api/schemas"
)

// Maps holds per-collection ID indexes for a single resolver run.
type Maps struct {
	Characters map[string]schemas.Character
	Elements   map[string]schemas.Element
	Puzzles    map[string]schemas.Puzzle
	Timeline   map[string]schemas.TimelineEvent

	// Duplicates records IDs that appeared more than once within a
	// collection. The last occurrence wins in the index.
	Duplicates []schemas.Diagnostic
}

// Build constructs the lookup maps from the raw collections.
func Build(cols schemas.EntityCollections) *Maps {
	m := &Maps{
		Characters: make(map[string]schemas.Character, len(cols.Characters)),
		Elements:   make(map[string]schemas.Element, len(cols.Elements)),
		Puzzles:    make(map[string]schemas.Puzzle, len(cols.Puzzles)),
		Timeline:   make(map[string]schemas.TimelineEvent, len(cols.Timeline)),
	}

	for _, c := range cols.Characters {
		m.noteDuplicate(c, m.has(c.ID, schemas.KindCharacter))
		m.Characters[c.ID] = c
	}
	for _, e := range cols.Elements {
		m.noteDuplicate(e, m.has(e.ID, schemas.KindElement))
		m.Elements[e.ID] = e
	}
	for _, p := range cols.Puzzles {
		m.noteDuplicate(p, m.has(p.ID, schemas.KindPuzzle))
		m.Puzzles[p.ID] = p
	}
	for _, t := range cols.Timeline {
		m.noteDuplicate(t, m.has(t.ID, schemas.KindTimelineEvent))
		m.Timeline[t.ID] = t
	}

	return m
}

// Entity resolves an ID against all four indexes. The collections share one
// ID namespace, so the first hit wins.
func (m *Maps) Entity(id string) (schemas.Entity, bool) {
	if c, ok := m.Characters[id]; ok {
		return c, true
	}
	if e, ok := m.Elements[id]; ok {
		return e, true
	}
	if p, ok := m.Puzzles[id]; ok {
		return p, true
	}
	if t, ok := m.Timeline[id]; ok {
		return t, true
	}
	return nil, false
}

func (m *Maps) has(id string, kind schemas.EntityKind) bool {
	switch kind {
	case schemas.KindCharacter:
		_, ok := m.Characters[id]
		return ok
	case schemas.KindElement:
		_, ok := m.Elements[id]
		return ok
	case schemas.KindPuzzle:
		_, ok := m.Puzzles[id]
		return ok
	case schemas.KindTimelineEvent:
		_, ok := m.Timeline[id]
		return ok
	}
	return false
}

func (m *Maps) noteDuplicate(e schemas.Entity, dup bool) {
	if !dup {
		return
	}
	m.Duplicates = append(m.Duplicates, schemas.Diagnostic{
		Severity: schemas.SeverityWarning,
		Code:     schemas.CodeDuplicateID,
		Message:  fmt.Sprintf("duplicate %s id '%s'; later entry wins", e.Kind(), e.EntityID()),
		Context:  map[string]string{"id": e.EntityID(), "kind": string(e.Kind())},
	})
}
