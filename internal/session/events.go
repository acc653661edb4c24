package session

import (
	"github.com/IsekaiAgile/chef-game-sub001/internal/dialogue"
	"github.com/IsekaiAgile/chef-game-sub001/internal/engine"
	"github.com/IsekaiAgile/chef-game-sub001/internal/story"
)

// Event is a notification the session emits toward the presentation
// layer. Events describe what happened; they carry no instructions.
type Event interface{ event() }

// Sink consumes session events. Emission is synchronous and ordered;
// implementations must not call back into the session.
type Sink interface {
	Emit(Event)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Event)

func (f SinkFunc) Emit(e Event) { f(e) }

// DialogueStarted fires when a scene sequence begins playing.
type DialogueStarted struct {
	Scene   story.NodeID
	Variant engine.DialogueVariant
}

// DialogueLineShown fires when a line starts revealing and again when
// its reveal completes.
type DialogueLineShown struct {
	Line     dialogue.Line
	Complete bool
}

// DialogueCompleted fires when the active sequence finishes or is
// skipped.
type DialogueCompleted struct {
	Variant engine.DialogueVariant
}

// SceneChanged fires when playback enters a new scene node.
type SceneChanged struct {
	Scene story.NodeID
	Title string
}

// BackgroundChanged fires when the backdrop key changes.
type BackgroundChanged struct {
	Background string
}

// CharacterShown fires for each cast member placed on stage by a scene.
type CharacterShown struct {
	Character story.Character
}

// CharacterHidden fires when a scene removes a cast member from stage.
type CharacterHidden struct {
	Character story.CharacterID
}

// CharacterSpeaking fires when a named character's line begins.
type CharacterSpeaking struct {
	Speaker string
}

// ChoicePresented fires when a choice node blocks on player input.
type ChoicePresented struct {
	Scene  story.NodeID
	Prompt string
	Labels []string
}

// ChoiceSelected fires after a valid pick, before the branch plays.
type ChoiceSelected struct {
	Scene story.NodeID
	Index int
	Label string
}

// ActionResolved carries the full resolution report for a day.
type ActionResolved struct {
	Report engine.Report
}

// MeterStateChanged carries a snapshot after any mutation of the meters.
type MeterStateChanged struct {
	Snapshot engine.Snapshot
}

// EpisodeCleared fires when an episode goal is met.
type EpisodeCleared struct {
	Episode int
	Message string
}

// GameOver fires on a defeat transition.
type GameOver struct {
	Message string
}

// Victory fires when the final goal is met.
type Victory struct {
	Message string
}

func (DialogueStarted) event()   {}
func (DialogueLineShown) event() {}
func (DialogueCompleted) event() {}
func (SceneChanged) event()      {}
func (BackgroundChanged) event() {}
func (CharacterShown) event()    {}
func (CharacterHidden) event()   {}
func (CharacterSpeaking) event() {}
func (ChoicePresented) event()   {}
func (ChoiceSelected) event()    {}
func (ActionResolved) event()    {}
func (MeterStateChanged) event() {}
func (EpisodeCleared) event()    {}
func (GameOver) event()          {}
func (Victory) event()           {}
