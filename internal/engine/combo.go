package engine

// IsPerfectCycle reports whether the trailing three entries of the action
// history are all distinct, i.e. one Taste Iteration, one Maintenance and
// one Customer Feedback in any order. Shorter histories never qualify.
func IsPerfectCycle(history []ActionID) bool {
	if len(history) < HistoryWindow {
		return false
	}
	tail := history[len(history)-HistoryWindow:]
	seen := make(map[ActionID]bool, HistoryWindow)
	for _, a := range tail {
		if seen[a] {
			return false
		}
		seen[a] = true
	}
	return true
}

// MissingActions returns the actions absent from the trailing two history
// entries, in catalog order. The UI uses this as a combo hint; gameplay
// never reads it.
func MissingActions(history []ActionID) []ActionID {
	start := len(history) - 2
	if start < 0 {
		start = 0
	}
	recent := make(map[ActionID]bool, 2)
	for _, a := range history[start:] {
		recent[a] = true
	}
	var out []ActionID
	for _, a := range AllActions {
		if !recent[a] {
			out = append(out, a)
		}
	}
	return out
}

// perfectCycleBonus returns the meter deltas for the nth consecutive
// perfect cycle (1-based). The first cycle is worth growth +10 and
// stagnation -15; each consecutive cycle escalates growth and the mood
// and debt kickbacks.
func perfectCycleBonus(streak int) (growth, stagnation, mood, debt int) {
	if streak < 1 {
		streak = 1
	}
	growth = 10 + 5*(streak-1)
	stagnation = -15
	mood = 5 * streak
	debt = -streak
	return growth, stagnation, mood, debt
}
