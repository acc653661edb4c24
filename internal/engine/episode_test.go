package engine

import "testing"

func TestEpisode1ClearBoundary(t *testing.T) {
	ep := NewEpisodes()
	m := NewMeters()
	m.Growth = 20
	m.TraditionScore = 70
	if tr := ep.Evaluate(m); tr != nil {
		t.Fatalf("tradition 70 must not clear episode 1, got %+v", tr)
	}
	m.TraditionScore = 65
	tr := ep.Evaluate(m)
	if tr == nil || tr.Kind != TransitionEpisodeClear || tr.Episode != 1 {
		t.Fatalf("growth 20 / tradition 65 should clear episode 1, got %+v", tr)
	}
	if !m.HasChefKnife {
		t.Fatalf("episode 1 clear should award the chef knife")
	}
	if ep.Phase() != PhaseEpisode1 || !ep.AwaitingAdvance() {
		t.Fatalf("episode 2 must wait for an explicit advance")
	}
}

func TestAdvanceAfterClearResets(t *testing.T) {
	ep := NewEpisodes()
	m := NewMeters()
	m.Growth = 25
	m.TraditionScore = 40
	m.SpecialChallengeSuccess = 1
	m.HybridMomentSeen = true
	if tr := ep.Evaluate(m); tr == nil {
		t.Fatalf("expected episode 1 clear")
	}
	ep.AdvanceAfterClear(m)
	if ep.Phase() != PhaseEpisode2 || m.CurrentEpisode != 2 {
		t.Fatalf("advance should enter episode 2")
	}
	if m.TraditionScore != 50 || m.SpecialChallengeSuccess != 0 || m.HybridMomentSeen {
		t.Fatalf("advance should reset tradition, challenge counter and hybrid flag")
	}
}

func TestEpisode2To3KeepsTradition(t *testing.T) {
	ep := &Episodes{phase: PhaseEpisode2}
	m := NewMeters()
	m.CurrentEpisode = 2
	m.TraditionScore = 72
	m.SpecialChallengeSuccess = 2
	tr := ep.Evaluate(m)
	if tr == nil || tr.Kind != TransitionEpisodeClear || tr.Episode != 2 {
		t.Fatalf("two special successes should clear episode 2, got %+v", tr)
	}
	if ep.Phase() != PhaseEpisode3 || m.CurrentEpisode != 3 {
		t.Fatalf("episode 3 should start immediately")
	}
	if m.TraditionScore != 72 || m.SpecialChallengeSuccess != 2 {
		t.Fatalf("episode 2 -> 3 must not reset tradition or the challenge counter")
	}
}

func TestEpisode3Victory(t *testing.T) {
	ep := &Episodes{phase: PhaseEpisode3}
	m := NewMeters()
	m.CurrentEpisode = 3
	m.Growth = MaxGrowth
	m.OldManMood = 79
	if tr := ep.Evaluate(m); tr != nil {
		t.Fatalf("mood 79 must not win, got %+v", tr)
	}
	m.OldManMood = 80
	tr := ep.Evaluate(m)
	if tr == nil || tr.Kind != TransitionVictory {
		t.Fatalf("full growth and mood 80 should win, got %+v", tr)
	}
	if !ep.Phase().IsTerminal() {
		t.Fatalf("victory must be terminal")
	}
}

func TestDefeatBeatsForwardProgress(t *testing.T) {
	ep := NewEpisodes()
	m := NewMeters()
	m.Growth = 30
	m.TraditionScore = 50
	m.Stagnation = 92
	tr := ep.Evaluate(m)
	if tr == nil || tr.Kind != TransitionDefeat {
		t.Fatalf("defeat should beat the clear check on the same turn, got %+v", tr)
	}
	if ep.Phase() != PhaseDefeat {
		t.Fatalf("phase should be defeat")
	}
	// terminal phases absorb
	if tr := ep.Evaluate(m); tr != nil {
		t.Fatalf("defeat must absorb further evaluations")
	}
}
