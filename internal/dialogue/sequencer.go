package dialogue

// DefaultCharInterval is the typewriter reveal rate: ticks per character.
const DefaultCharInterval Ticks = 30

// Line is one dialogue beat: who says it and what they say. An empty
// speaker means the narrator.
type Line struct {
	Speaker string
	Text    string
}

// State enumerates the sequencer's finite states.
type State string

const (
	StateIdle            State = "idle"
	StateTyping          State = "typing"
	StateAwaitingAdvance State = "awaiting_advance"
)

// Observer receives sequencer notifications. The session translates
// these into the events the presentation layer consumes.
type Observer interface {
	// LineShown fires when a line starts revealing (complete=false) and
	// again when its reveal finishes (complete=true).
	LineShown(line Line, complete bool)
}

// Sequencer plays an ordered queue of lines with a per-character reveal.
// At most one sequence is active; starting a new one replaces the old.
// All methods must be called from the single logical game thread.
type Sequencer struct {
	sched    *Scheduler
	interval Ticks
	observer Observer

	queue      []Line
	variant    string
	idx        int
	revealed   int // runes of the current line shown so far
	state      State
	typing     *Handle
	onComplete func()
}

// NewSequencer builds a sequencer on the given scheduler. interval <= 0
// selects the default reveal rate.
func NewSequencer(sched *Scheduler, interval Ticks) *Sequencer {
	if interval <= 0 {
		interval = DefaultCharInterval
	}
	return &Sequencer{sched: sched, interval: interval, state: StateIdle}
}

// SetObserver registers the notification target. A nil observer is valid.
func (sq *Sequencer) SetObserver(o Observer) { sq.observer = o }

func (sq *Sequencer) State() State { return sq.state }

// Busy reports whether a sequence is in flight. The session gates action
// resolution and reentrant starts on this.
func (sq *Sequencer) Busy() bool { return sq.state != StateIdle }

// Variant returns the label the active sequence was started with.
func (sq *Sequencer) Variant() string { return sq.variant }

// Start begins playing queue under the given variant label. An already
// active sequence is replaced; its completion callback is dropped, not
// invoked. An empty queue completes immediately with no line shown.
func (sq *Sequencer) Start(queue []Line, variant string, onComplete func()) {
	sq.stopTyping()
	sq.queue = queue
	sq.variant = variant
	sq.idx = 0
	sq.revealed = 0
	sq.onComplete = onComplete
	if len(queue) == 0 {
		sq.finish()
		return
	}
	sq.state = StateTyping
	sq.notifyLine(false)
	sq.armTyping()
}

// Advance handles the player's advance signal. While typing it completes
// the current line's reveal in place; once a line is fully shown it moves
// to the next line, or completes the sequence when the queue is spent.
func (sq *Sequencer) Advance() {
	switch sq.state {
	case StateTyping:
		sq.stopTyping()
		sq.revealed = len([]rune(sq.queue[sq.idx].Text))
		sq.state = StateAwaitingAdvance
		sq.notifyLine(true)
	case StateAwaitingAdvance:
		sq.idx++
		if sq.idx >= len(sq.queue) {
			sq.finish()
			return
		}
		sq.revealed = 0
		sq.state = StateTyping
		sq.notifyLine(false)
		sq.armTyping()
	}
}

// Skip jumps to the end of the whole sequence from any active state and
// fires the completion callback. Idle skips are no-ops.
func (sq *Sequencer) Skip() {
	if sq.state == StateIdle {
		return
	}
	sq.stopTyping()
	sq.idx = len(sq.queue)
	sq.finish()
}

// Visible returns the current line, the revealed prefix, and whether the
// reveal is complete. ok is false when no sequence is active.
func (sq *Sequencer) Visible() (line Line, shown string, complete bool, ok bool) {
	if sq.state == StateIdle || sq.idx >= len(sq.queue) {
		return Line{}, "", false, false
	}
	line = sq.queue[sq.idx]
	runes := []rune(line.Text)
	n := sq.revealed
	if n > len(runes) {
		n = len(runes)
	}
	return line, string(runes[:n]), n == len(runes), true
}

// armTyping schedules the next character reveal. The handle must be
// canceled before any competing reveal is armed, otherwise two timers
// race and the text garbles.
func (sq *Sequencer) armTyping() {
	sq.typing = sq.sched.After(sq.interval, sq.step)
}

func (sq *Sequencer) step() {
	sq.typing = nil
	if sq.state != StateTyping {
		return
	}
	sq.revealed++
	if sq.revealed >= len([]rune(sq.queue[sq.idx].Text)) {
		sq.state = StateAwaitingAdvance
		sq.notifyLine(true)
		return
	}
	sq.armTyping()
}

func (sq *Sequencer) stopTyping() {
	if sq.typing != nil {
		sq.typing.Cancel()
		sq.typing = nil
	}
}

func (sq *Sequencer) finish() {
	sq.state = StateIdle
	cb := sq.onComplete
	sq.onComplete = nil
	if cb != nil {
		cb()
	}
}

func (sq *Sequencer) notifyLine(complete bool) {
	if sq.observer == nil || sq.idx >= len(sq.queue) {
		return
	}
	sq.observer.LineShown(sq.queue[sq.idx], complete)
}
