package story

// CharacterID names a cast member.
type CharacterID string

const (
	CharNarrator   CharacterID = "narrator"
	CharApprentice CharacterID = "kei"
	CharMaster     CharacterID = "genzo"
	CharCustomer   CharacterID = "customer"
)

// CharacterKind splits the cast into members with an on-screen presence
// and the disembodied narrator voice.
type CharacterKind string

const (
	KindSprited  CharacterKind = "sprited"
	KindNarrator CharacterKind = "narrator"
)

// Position is the slot a sprited character occupies on screen.
type Position string

const (
	PosLeft   Position = "left"
	PosCenter Position = "center"
	PosRight  Position = "right"
)

// Character is one cast member. The narrator carries no position.
type Character struct {
	ID          CharacterID
	DisplayName string
	Kind        CharacterKind
	Position    Position
}

var cast = map[CharacterID]Character{
	CharNarrator:   {ID: CharNarrator, DisplayName: "", Kind: KindNarrator},
	CharApprentice: {ID: CharApprentice, DisplayName: "Kei", Kind: KindSprited, Position: PosLeft},
	CharMaster:     {ID: CharMaster, DisplayName: "Old Man Genzo", Kind: KindSprited, Position: PosRight},
	CharCustomer:   {ID: CharCustomer, DisplayName: "Customer", Kind: KindSprited, Position: PosCenter},
}

// Lookup resolves a character by ID. Unknown IDs return ok=false rather
// than a zero Character so callers can distinguish an empty narrator.
func Lookup(id CharacterID) (Character, bool) {
	c, ok := cast[id]
	return c, ok
}

// SpeakerName maps a character to the name shown above its dialogue
// line. Narrator lines render without a name tag.
func SpeakerName(id CharacterID) string {
	c, ok := cast[id]
	if !ok || c.Kind == KindNarrator {
		return ""
	}
	return c.DisplayName
}
