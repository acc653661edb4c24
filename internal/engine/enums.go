package engine

// String backed enums, matching the rest of the codebase and keeping
// archive rows readable without a lookup table.

type ActionID string
type Phase string
type EventKind string
type DialogueVariant string

const (
	ActionTasteIteration ActionID = "taste_iteration"
	ActionMaintenance    ActionID = "maintenance"
	ActionFeedback       ActionID = "feedback"
)

var AllActions = []ActionID{ActionTasteIteration, ActionMaintenance, ActionFeedback}

const (
	PhaseEpisode1 Phase = "episode_1"
	PhaseEpisode2 Phase = "episode_2"
	PhaseEpisode3 Phase = "episode_3"
	PhaseVictory  Phase = "victory"
	PhaseDefeat   Phase = "defeat"
)

var AllPhases = []Phase{PhaseEpisode1, PhaseEpisode2, PhaseEpisode3, PhaseVictory, PhaseDefeat}

const (
	EventRequirementChange EventKind = "requirement_change"
	EventQualityDrop       EventKind = "quality_drop"
	EventMoodDrop          EventKind = "mood_drop"
	EventStagnationSpike   EventKind = "stagnation_spike"
	EventDebtCreep         EventKind = "debt_creep"
	EventCustomerArrival   EventKind = "customer_arrival"
)

var AllEventKinds = []EventKind{EventRequirementChange, EventQualityDrop, EventMoodDrop, EventStagnationSpike, EventDebtCreep, EventCustomerArrival}

const (
	VariantIntro        DialogueVariant = "intro"
	VariantInterlude    DialogueVariant = "interlude"
	VariantEpisodeClear DialogueVariant = "episode_clear"
	VariantEnding       DialogueVariant = "ending"
)

var AllDialogueVariants = []DialogueVariant{VariantIntro, VariantInterlude, VariantEpisodeClear, VariantEnding}

// Generic helpers
func contains[T ~string](list []T, v T) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

func (a ActionID) Validate() bool        { return contains(AllActions, a) }
func (p Phase) Validate() bool           { return contains(AllPhases, p) }
func (e EventKind) Validate() bool       { return contains(AllEventKinds, e) }
func (v DialogueVariant) Validate() bool { return contains(AllDialogueVariants, v) }

// DisplayName returns the label shown for an action in menus and logs.
func (a ActionID) DisplayName() string {
	switch a {
	case ActionTasteIteration:
		return "Taste Iteration"
	case ActionMaintenance:
		return "Maintenance"
	case ActionFeedback:
		return "Customer Feedback"
	default:
		return string(a)
	}
}

// Icon returns the marker used by the TUI action row.
func (a ActionID) Icon() string {
	switch a {
	case ActionTasteIteration:
		return "🍜"
	case ActionMaintenance:
		return "🔧"
	case ActionFeedback:
		return "💬"
	default:
		return "?"
	}
}

// IsTerminal reports whether a phase accepts no further actions.
func (p Phase) IsTerminal() bool { return p == PhaseVictory || p == PhaseDefeat }

// EpisodeNumber maps an episode phase to its 1-based number, 0 for terminal phases.
func (p Phase) EpisodeNumber() int {
	switch p {
	case PhaseEpisode1:
		return 1
	case PhaseEpisode2:
		return 2
	case PhaseEpisode3:
		return 3
	default:
		return 0
	}
}
