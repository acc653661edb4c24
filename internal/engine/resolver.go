package engine

// Tunables for the action pipeline. Values mirror the shop's balance
// sheet: a base success rate just under a coin flip, dragged down by poor
// ingredients, a sour master, an empty pantry or accumulated debt.
const (
	baseSuccessChance    = 0.45
	qualityPenalty       = 0.30
	moodPenalty          = 0.15
	noIngredientsPenalty = 0.20
	debtPenalty          = 0.10

	repetitionStagnation = 12
	repetitionMood       = -5
	repetitionDebt       = 2
	repetitionTradition  = 5
	varietyStagnation    = -7

	universalQualityDecay = -5
	crisisStagnationFloor = 60
	hybridMomentDay       = 6
)

// Episode 1 tradition drift per action.
var traditionDeltas = map[ActionID]int{
	ActionTasteIteration: -8,
	ActionMaintenance:    3,
	ActionFeedback:       -5,
}

// Report summarizes one resolved action for the session and its UI.
type Report struct {
	Ignored bool // terminal condition already held; nothing changed

	Action        ActionID
	Day           int
	Success       bool
	SuccessChance float64 // not floored at zero; a negative chance never succeeds

	Repeated      bool
	CrisisWarning bool

	PerfectCycle  bool
	PerfectStreak int

	HybridMoment    bool
	CustomerCleared bool

	Events     []EventNote
	Transition *Transition
}

// Resolver applies player actions to the meters. It owns no state beyond
// its collaborators; the meters record is the single mutable session state.
type Resolver struct {
	meters   *Meters
	rand     Rand
	episodes *Episodes
}

// NewResolver wires a resolver to a session's meters, random stream and
// episode controller.
func NewResolver(m *Meters, r Rand, ep *Episodes) *Resolver {
	return &Resolver{meters: m, rand: r, episodes: ep}
}

// ResolveAction runs the full action pipeline: day advance, debt drag,
// tradition drift, repetition penalty, combo check, success roll, the
// outcome table, universal decay, random events and episode evaluation.
// If a terminal condition already holds the call is a silent no-op.
func (rv *Resolver) ResolveAction(action ActionID) Report {
	m := rv.meters
	if m.Terminal() || rv.episodes.Phase().IsTerminal() {
		return Report{Ignored: true, Action: action, Day: m.Day}
	}

	rep := Report{Action: action}

	// 1. advance the day, record the action, clear the requirement flash
	m.Day++
	m.pushHistory(action)
	m.RequirementChangeActive = false
	rep.Day = m.Day

	// 2. technical debt drags stagnation
	m.AddStagnation(m.TechnicalDebt / 5)

	// 3. episode 1: tradition drift and the one-time hybrid moment
	if m.CurrentEpisode == 1 {
		m.AddTradition(traditionDeltas[action])
		if m.Day == hybridMomentDay && !m.HybridMomentSeen {
			m.HybridMomentSeen = true
			rep.HybridMoment = true
		}
	}

	// 4. repetition penalty vs. variety reward
	if action == m.LastAction {
		rep.Repeated = true
		m.AddStagnation(repetitionStagnation)
		m.AddMood(repetitionMood)
		m.AddDebt(repetitionDebt)
		m.AddTradition(repetitionTradition)
		m.PerfectCycleCount = 0
		if m.Stagnation >= crisisStagnationFloor {
			rep.CrisisWarning = true
		}
	} else {
		m.AddStagnation(varietyStagnation)
	}

	// 5. perfect cycle check
	if IsPerfectCycle(m.ActionHistory) {
		m.PerfectCycleCount++
		rep.PerfectCycle = true
		rep.PerfectStreak = m.PerfectCycleCount
		g, s, mood, debt := perfectCycleBonus(m.PerfectCycleCount)
		m.AddGrowth(g)
		m.AddStagnation(s)
		m.AddMood(mood)
		m.AddDebt(debt)
	} else if !rep.Repeated {
		m.PerfectCycleCount = 0
	}

	// 6. remember the action for tomorrow's repetition check
	m.LastAction = action

	// 7. success roll; stacked penalties can push the chance below zero,
	// in which case the draw can never land (preserved source behavior)
	rep.SuccessChance = rv.successChance(action)
	rep.Success = rv.rand.Float64() < rep.SuccessChance

	// 8. outcome table, universal decay, random events
	rep.CustomerCleared = rv.applyOutcome(action, rep.Success)
	m.AddQuality(universalQualityDecay)
	rep.Events = TriggerRandomEvents(m, rv.rand)

	// 9. growth is clamped by AddGrowth throughout; nothing left to cap

	// 10. goal and terminal evaluation
	rep.Transition = rv.episodes.Evaluate(m)
	return rep
}

func (rv *Resolver) successChance(action ActionID) float64 {
	m := rv.meters
	chance := baseSuccessChance
	if m.IngredientQuality < 30 {
		chance -= qualityPenalty
	}
	if m.OldManMood < 30 {
		chance -= moodPenalty
	}
	if m.CurrentIngredients == 0 && action != ActionMaintenance {
		chance -= noIngredientsPenalty
	}
	if m.TechnicalDebt > 10 {
		chance -= debtPenalty
	}
	return chance
}

// applyOutcome applies the per-action success/failure table. Returns true
// when a special customer was satisfied and cleared.
func (rv *Resolver) applyOutcome(action ActionID, success bool) bool {
	m := rv.meters
	cleared := false
	switch action {
	case ActionTasteIteration:
		if success {
			if m.SpecialCustomer != nil {
				m.AddGrowth(m.SpecialCustomer.Bonus)
				m.SpecialChallengeSuccess++
				m.SpecialCustomer = nil
				m.RequirementChangeActive = false
				cleared = true
			} else {
				m.AddGrowth(15)
				m.AddStagnation(-15)
				m.AddMood(10)
			}
		} else {
			m.AddMood(-15)
			m.AddDebt(1)
		}
		// a taste test burns an ingredient either way
		m.AddIngredients(-1)
	case ActionMaintenance:
		if success {
			m.AddQuality(30)
			m.AddStagnation(-5)
			m.AddIngredients(2)
			m.AddDebt(-2)
		} else {
			m.AddQuality(-10)
		}
	case ActionFeedback:
		if success {
			m.AddGrowth(20)
			m.AddMood(5)
		}
		// failed feedback rounds change nothing; the regulars just shrug
	}
	return cleared
}
