package schemas

// -- Canonical Entity Data Model --

// EntityKind identifies which of the four source collections an entity
// belongs to. The set is closed: every entity in a case file is exactly one
// of these kinds.
type EntityKind string

const (
	KindCharacter     EntityKind = "CHARACTER"
	KindPuzzle        EntityKind = "PUZZLE"
	KindElement       EntityKind = "ELEMENT"
	KindTimelineEvent EntityKind = "TIMELINE_EVENT"
)

// CharacterTier ranks how central a character is to the investigation.
// Tier affects ownership edge strength and node importance.
type CharacterTier string

const (
	TierCore      CharacterTier = "Core"
	TierSecondary CharacterTier = "Secondary"
	TierTertiary  CharacterTier = "Tertiary"
)

// Entity is implemented by exactly the four concrete entity kinds. Callers
// recover the concrete type with a type switch; there is no dynamic property
// probing anywhere in the core.
type Entity interface {
	// EntityID returns the unique string identifier of the entity.
	EntityID() string
	// Kind returns the entity's collection kind.
	Kind() EntityKind
	// DisplayName returns the human-readable name used for node labels.
	DisplayName() string
}

// Character is a person in the investigation: suspect, victim, witness.
type Character struct {
	ID   string        `json:"id"`
	Name string        `json:"name"`
	Tier CharacterTier `json:"tier,omitempty"`
	// Act groups characters by the act of the story they first appear in.
	Act string `json:"act,omitempty"`
	// OwnedElementIDs is the reverse of Element.OwnerID and is not used to
	// derive edges (the element side is authoritative).
	OwnedElementIDs []string `json:"owned_element_ids,omitempty"`
}

func (c Character) EntityID() string    { return c.ID }
func (c Character) Kind() EntityKind    { return KindCharacter }
func (c Character) DisplayName() string { return c.Name }

// Puzzle is a challenge players solve; it consumes elements and rewards others.
type Puzzle struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Act  string `json:"act,omitempty"`
	// PuzzleElementIDs are the elements required to solve this puzzle.
	PuzzleElementIDs []string `json:"puzzle_element_ids,omitempty"`
	// RewardIDs are the elements granted on solving.
	RewardIDs []string `json:"reward_ids,omitempty"`
	// SubPuzzleIDs chain this puzzle to follow-up puzzles.
	SubPuzzleIDs []string `json:"sub_puzzle_ids,omitempty"`
}

func (p Puzzle) EntityID() string    { return p.ID }
func (p Puzzle) Kind() EntityKind    { return KindPuzzle }
func (p Puzzle) DisplayName() string { return p.Name }

// Element is a physical or memory item: a prop, document, or clue.
type Element struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	// BasicType distinguishes prop / document / memory token style items.
	BasicType string `json:"basic_type,omitempty"`
	Act       string `json:"act,omitempty"`
	// OwnerID links the element to the character who holds it.
	OwnerID string `json:"owner_id,omitempty"`
	// ContainerID points at the element this one is stored inside.
	ContainerID string `json:"container_id,omitempty"`
	// ContentIDs lists elements stored inside this one.
	ContentIDs []string `json:"content_ids,omitempty"`
	// TimelineEventID associates the element with a moment in the timeline.
	TimelineEventID string `json:"timeline_event_id,omitempty"`
	// RequiredForPuzzleIDs / RewardedByPuzzleIDs mirror the puzzle-side
	// fields; the puzzle side is authoritative for edge derivation.
	RequiredForPuzzleIDs []string `json:"required_for_puzzle_ids,omitempty"`
	RewardedByPuzzleIDs  []string `json:"rewarded_by_puzzle_ids,omitempty"`
}

func (e Element) EntityID() string    { return e.ID }
func (e Element) Kind() EntityKind    { return KindElement }
func (e Element) DisplayName() string { return e.Name }

// TimelineEvent is a moment in the case's backstory.
type TimelineEvent struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Date        string `json:"date,omitempty"`
	Act         string `json:"act,omitempty"`
	// CharacterIDs are the characters involved in the event.
	CharacterIDs []string `json:"character_ids,omitempty"`
}

func (t TimelineEvent) EntityID() string { return t.ID }
func (t TimelineEvent) Kind() EntityKind { return KindTimelineEvent }
func (t TimelineEvent) DisplayName() string {
	return t.Description
}

// EntityCollections bundles the four immutable input collections for a single
// resolver run.
type EntityCollections struct {
	Characters []Character     `json:"characters"`
	Elements   []Element       `json:"elements"`
	Puzzles    []Puzzle        `json:"puzzles"`
	Timeline   []TimelineEvent `json:"timeline"`
}
