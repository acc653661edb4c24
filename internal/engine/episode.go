package engine

// TransitionKind tags what an episode evaluation produced.
type TransitionKind string

const (
	TransitionEpisodeClear TransitionKind = "episode_clear"
	TransitionVictory      TransitionKind = "victory"
	TransitionDefeat       TransitionKind = "defeat"
)

// Transition is emitted when an episode goal or terminal condition fires.
type Transition struct {
	Kind    TransitionKind
	From    Phase
	To      Phase
	Episode int // episode cleared, for TransitionEpisodeClear
	Message string
}

// Episode goal thresholds.
const (
	episode1GrowthGoal   = 20
	episode1TraditionLo  = 35
	episode1TraditionHi  = 65
	episode2ChallengeBar = 2
	victoryMoodBar       = 80
)

// Episodes is the goal/terminal state machine over the three story
// episodes plus the two terminal outcomes. Transitions are one-way;
// Victory and Defeat absorb.
type Episodes struct {
	phase        Phase
	pendingClear int // episode whose clear screen awaits an explicit advance
}

func NewEpisodes() *Episodes { return &Episodes{phase: PhaseEpisode1} }

func (e *Episodes) Phase() Phase { return e.phase }

// AwaitingAdvance reports whether an episode-clear screen is up and the
// next episode starts only on an explicit advance.
func (e *Episodes) AwaitingAdvance() bool { return e.pendingClear != 0 }

// Evaluate inspects the meters after a resolution. Defeat is checked
// first and beats forward progress on the same turn.
func (e *Episodes) Evaluate(m *Meters) *Transition {
	if e.phase.IsTerminal() {
		return nil
	}
	if m.Defeated() {
		from := e.phase
		e.phase = PhaseDefeat
		e.pendingClear = 0
		return &Transition{
			Kind:    TransitionDefeat,
			From:    from,
			To:      PhaseDefeat,
			Message: defeatMessage(m),
		}
	}
	switch e.phase {
	case PhaseEpisode1:
		if e.pendingClear == 0 && m.Growth >= episode1GrowthGoal &&
			m.TraditionScore >= episode1TraditionLo && m.TraditionScore <= episode1TraditionHi {
			// the clear screen awards the knife now; episode 2 starts on advance
			m.HasChefKnife = true
			e.pendingClear = 1
			return &Transition{
				Kind:    TransitionEpisodeClear,
				From:    PhaseEpisode1,
				To:      PhaseEpisode2,
				Episode: 1,
				Message: "Growth without abandoning the broth. The old man hands over his knife.",
			}
		}
	case PhaseEpisode2:
		if m.SpecialChallengeSuccess >= episode2ChallengeBar {
			e.phase = PhaseEpisode3
			m.CurrentEpisode = 3
			return &Transition{
				Kind:    TransitionEpisodeClear,
				From:    PhaseEpisode2,
				To:      PhaseEpisode3,
				Episode: 2,
				Message: "Two impossible customers, two empty bowls. Word is getting around.",
			}
		}
	case PhaseEpisode3:
		if m.Growth >= MaxGrowth && m.OldManMood >= victoryMoodBar {
			e.phase = PhaseVictory
			return &Transition{
				Kind:    TransitionVictory,
				From:    PhaseEpisode3,
				To:      PhaseVictory,
				Message: "The shop is full, the broth is new, and the old man is smiling.",
			}
		}
	}
	return nil
}

// AdvanceAfterClear applies the deferred Episode 1 -> 2 transition once
// the player dismisses the clear screen: tradition and the special
// challenge counter reset and the hybrid-moment flag clears. The hybrid
// moment itself is Episode-1-only, so clearing the flag is bookkeeping.
func (e *Episodes) AdvanceAfterClear(m *Meters) {
	if e.pendingClear != 1 {
		return
	}
	e.pendingClear = 0
	e.phase = PhaseEpisode2
	m.CurrentEpisode = 2
	m.TraditionScore = 50
	m.SpecialChallengeSuccess = 0
	m.HybridMomentSeen = false
}

func defeatMessage(m *Meters) string {
	switch {
	case m.Stagnation >= 90:
		return "The menu never changed. Neither did the empty seats."
	case m.IngredientQuality <= 0:
		return "You cannot iterate on spoiled stock."
	default:
		return "The old man unties his apron and points at the door."
	}
}
