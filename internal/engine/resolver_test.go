package engine

import "testing"

func TestRepetitionPenaltyAllActions(t *testing.T) {
	for _, action := range AllActions {
		m := NewMeters()
		rv, _ := newTestResolver(m, quietRand())
		rv.ResolveAction(action)
		stagBefore, moodBefore := m.Stagnation, m.OldManMood
		rep := rv.ResolveAction(action)
		if !rep.Repeated {
			t.Fatalf("%s: second identical action not flagged as repeat", action)
		}
		if m.Stagnation <= stagBefore {
			t.Fatalf("%s: stagnation did not increase on repeat (%d -> %d)", action, stagBefore, m.Stagnation)
		}
		if m.OldManMood >= moodBefore {
			t.Fatalf("%s: mood did not decrease on repeat (%d -> %d)", action, moodBefore, m.OldManMood)
		}
		if m.PerfectCycleCount != 0 {
			t.Fatalf("%s: perfect cycle count not reset on repeat", action)
		}
	}
}

func TestPerfectCycleScenario(t *testing.T) {
	m := NewMeters()
	rv, _ := newTestResolver(m, quietRand())
	rv.ResolveAction(ActionTasteIteration)
	rv.ResolveAction(ActionMaintenance)
	rep := rv.ResolveAction(ActionFeedback)
	if !rep.PerfectCycle {
		t.Fatalf("three distinct actions should trigger a perfect cycle")
	}
	if rep.PerfectStreak != 1 {
		t.Fatalf("first cycle streak should be 1, got %d", rep.PerfectStreak)
	}
	if m.PerfectCycleCount != 1 {
		t.Fatalf("meters should record one perfect cycle, got %d", m.PerfectCycleCount)
	}
}

func TestMetersStayBounded(t *testing.T) {
	seed, _ := NewRunSeed("bounds-seed")
	patterns := [][]ActionID{
		{ActionTasteIteration, ActionTasteIteration, ActionTasteIteration},
		{ActionMaintenance, ActionMaintenance, ActionMaintenance},
		{ActionTasteIteration, ActionMaintenance, ActionFeedback},
		{ActionFeedback, ActionFeedback, ActionTasteIteration},
	}
	for pi, pattern := range patterns {
		m := NewMeters()
		rv, _ := newTestResolver(m, seed.Stream("bounds").Child(string(pattern[0])))
		for i := 0; i < 200; i++ {
			rv.ResolveAction(pattern[i%len(pattern)])
			checkBounds(t, pi, i, m)
			if m.Terminal() {
				break
			}
		}
	}
}

func checkBounds(t *testing.T, pattern, step int, m *Meters) {
	t.Helper()
	if m.Stagnation < 0 || m.Stagnation > 100 {
		t.Fatalf("pattern %d step %d: stagnation out of range: %d", pattern, step, m.Stagnation)
	}
	if m.Growth < 0 || m.Growth > MaxGrowth {
		t.Fatalf("pattern %d step %d: growth out of range: %d", pattern, step, m.Growth)
	}
	if m.OldManMood < 0 || m.OldManMood > 100 {
		t.Fatalf("pattern %d step %d: mood out of range: %d", pattern, step, m.OldManMood)
	}
	if m.IngredientQuality < 0 || m.IngredientQuality > 100 {
		t.Fatalf("pattern %d step %d: quality out of range: %d", pattern, step, m.IngredientQuality)
	}
	if m.TraditionScore < 0 || m.TraditionScore > 100 {
		t.Fatalf("pattern %d step %d: tradition out of range: %d", pattern, step, m.TraditionScore)
	}
	if m.CurrentIngredients < 0 || m.CurrentIngredients > 5 {
		t.Fatalf("pattern %d step %d: ingredients out of range: %d", pattern, step, m.CurrentIngredients)
	}
	if m.TechnicalDebt < 0 {
		t.Fatalf("pattern %d step %d: negative debt: %d", pattern, step, m.TechnicalDebt)
	}
	if len(m.ActionHistory) > HistoryWindow {
		t.Fatalf("pattern %d step %d: history window exceeded: %d", pattern, step, len(m.ActionHistory))
	}
}

func TestStackedPenaltiesNeverSucceed(t *testing.T) {
	m := NewMeters()
	m.IngredientQuality = 10
	m.OldManMood = 10
	m.CurrentIngredients = 0
	m.TechnicalDebt = 20
	// a zero draw is the most favorable sample possible
	rv, _ := newTestResolver(m, &scriptedRand{floats: []float64{0.0, 0.99, 0.99}})
	rep := rv.ResolveAction(ActionTasteIteration)
	if rep.SuccessChance >= 0 {
		t.Fatalf("expected negative success chance, got %.2f", rep.SuccessChance)
	}
	if rep.Success {
		t.Fatalf("negative success chance must never succeed")
	}
}

func TestTerminalStateIsNoOp(t *testing.T) {
	m := NewMeters()
	m.Stagnation = 95
	rv, _ := newTestResolver(m, quietRand())
	before := *m
	rep := rv.ResolveAction(ActionMaintenance)
	if !rep.Ignored {
		t.Fatalf("resolution past a terminal condition must be ignored")
	}
	if m.Day != before.Day || m.Stagnation != before.Stagnation {
		t.Fatalf("ignored resolution mutated state")
	}
}

func TestTasteAlwaysConsumesIngredient(t *testing.T) {
	// failure path
	m := NewMeters()
	rv, _ := newTestResolver(m, &scriptedRand{floats: []float64{0.99, 0.99}})
	rv.ResolveAction(ActionTasteIteration)
	if m.CurrentIngredients != 2 {
		t.Fatalf("failed taste should still consume an ingredient, have %d", m.CurrentIngredients)
	}
	// success path
	m = NewMeters()
	rv, _ = newTestResolver(m, &scriptedRand{floats: []float64{0.0, 0.99, 0.99}})
	rv.ResolveAction(ActionTasteIteration)
	if m.CurrentIngredients != 2 {
		t.Fatalf("successful taste should consume an ingredient, have %d", m.CurrentIngredients)
	}
}

func TestMaintenanceSuccessRestocks(t *testing.T) {
	m := NewMeters()
	m.IngredientQuality = 40
	m.TechnicalDebt = 4
	rv, _ := newTestResolver(m, &scriptedRand{floats: []float64{0.0, 0.99, 0.99}})
	rv.ResolveAction(ActionMaintenance)
	// +30 repair, -5 universal decay
	if m.IngredientQuality != 65 {
		t.Fatalf("quality after successful maintenance: want 65, got %d", m.IngredientQuality)
	}
	if m.CurrentIngredients != 5 {
		t.Fatalf("ingredients should cap at 5, got %d", m.CurrentIngredients)
	}
	if m.TechnicalDebt != 2 {
		t.Fatalf("debt should drop by 2, got %d", m.TechnicalDebt)
	}
}

func TestSpecialCustomerSatisfied(t *testing.T) {
	m := NewMeters()
	m.CurrentEpisode = 2
	m.SpecialCustomer = &SpecialCustomer{Name: "The Food Critic", Requirement: "the old broth", Bonus: 18}
	growthBefore := m.Growth
	rv, _ := newTestResolver(m, &scriptedRand{floats: []float64{0.0, 0.99, 0.99, 0.99}})
	rep := rv.ResolveAction(ActionTasteIteration)
	if !rep.Success || !rep.CustomerCleared {
		t.Fatalf("expected satisfied customer, got success=%v cleared=%v", rep.Success, rep.CustomerCleared)
	}
	if m.SpecialCustomer != nil {
		t.Fatalf("customer should be cleared")
	}
	if m.SpecialChallengeSuccess != 1 {
		t.Fatalf("challenge counter should be 1, got %d", m.SpecialChallengeSuccess)
	}
	if m.Growth != growthBefore+18 {
		t.Fatalf("growth should rise by the customer bonus, got %d", m.Growth-growthBefore)
	}
}

func TestHybridMomentFiresOnceOnDaySix(t *testing.T) {
	m := NewMeters()
	rv, _ := newTestResolver(m, quietRand())
	order := []ActionID{ActionMaintenance, ActionFeedback, ActionMaintenance, ActionFeedback, ActionMaintenance, ActionFeedback, ActionMaintenance}
	var fired int
	for _, a := range order {
		rep := rv.ResolveAction(a)
		if rep.HybridMoment {
			fired++
			if rep.Day != 6 {
				t.Fatalf("hybrid moment fired on day %d", rep.Day)
			}
		}
	}
	if fired != 1 {
		t.Fatalf("hybrid moment should fire exactly once, fired %d times", fired)
	}
}

func TestDebtDragFeedsStagnation(t *testing.T) {
	m := NewMeters()
	m.TechnicalDebt = 25
	rv, _ := newTestResolver(m, quietRand())
	before := m.Stagnation
	rv.ResolveAction(ActionFeedback)
	// +5 drag (25/5), -7 variety
	if got := m.Stagnation - before; got != -2 {
		t.Fatalf("expected net stagnation -2 from drag and variety, got %+d", got)
	}
}

func TestRequirementFlashClearsOnNextAction(t *testing.T) {
	m := NewMeters()
	m.RequirementChangeActive = true
	rv, _ := newTestResolver(m, quietRand())
	rv.ResolveAction(ActionFeedback)
	if m.RequirementChangeActive {
		t.Fatalf("requirement flash should reset at the start of a resolution")
	}
}
