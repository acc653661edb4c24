package ui

import (
	"strings"
	"testing"

	"github.com/IsekaiAgile/chef-game-sub001/internal/engine"
)

func TestThemeCyclingWraps(t *testing.T) {
	names := themeNames()
	if len(names) < 2 {
		t.Fatalf("need at least two themes")
	}
	cur := names[0]
	seen := map[string]bool{}
	for i := 0; i < len(names); i++ {
		seen[cur] = true
		cur = nextThemeName(cur, 1)
	}
	if cur != names[0] {
		t.Fatalf("cycling should wrap back to %q, got %q", names[0], cur)
	}
	if len(seen) != len(names) {
		t.Fatalf("cycle visited %d of %d themes", len(seen), len(names))
	}
	if nextThemeName(names[0], -1) != names[len(names)-1] {
		t.Fatalf("stepping back from the first theme should wrap")
	}
}

func TestUnknownThemeFallsBack(t *testing.T) {
	if paletteFor("no-such-theme") != palettes["miso"] {
		t.Fatalf("unknown theme should fall back to the house palette")
	}
}

func TestBarBounds(t *testing.T) {
	if got := bar(0); strings.Contains(got, "█") {
		t.Fatalf("empty bar should have no fill: %q", got)
	}
	if got := bar(100); strings.Contains(got, "·") {
		t.Fatalf("full bar should have no empty cells: %q", got)
	}
	if len([]rune(bar(250))) != 10 {
		t.Fatalf("overflow must not widen the bar")
	}
}

func TestWorkbenchLabels(t *testing.T) {
	if workbenchLabel(0) != "tidy" || workbenchLabel(7) != "cluttered" || workbenchLabel(20) != "chaos" {
		t.Fatalf("unexpected workbench labels: %q %q %q", workbenchLabel(0), workbenchLabel(7), workbenchLabel(20))
	}
}

func TestComboHintSkipsFreshAndFullHistories(t *testing.T) {
	if comboHint(nil) != "" {
		t.Fatalf("no history should produce no hint")
	}
	hint := comboHint([]engine.ActionID{engine.ActionTasteIteration, engine.ActionMaintenance})
	if !strings.Contains(hint, engine.ActionFeedback.DisplayName()) {
		t.Fatalf("hint should name the untouched action, got %q", hint)
	}
}
